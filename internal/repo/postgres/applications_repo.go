package postgres

import (
	"context"

	"github.com/geocoder89/devjobs/internal/db"
	"github.com/geocoder89/devjobs/internal/domain/application"
)

type ApplicationsRepo struct {
	gw    *db.Gateway
	users *UsersRepo
}

func NewApplicationsRepo(gw *db.Gateway, users *UsersRepo) *ApplicationsRepo {
	return &ApplicationsRepo{
		gw:    gw,
		users: users,
	}
}

// ListByRecruiter returns the applications sent to recruiter, newest first.
func (r *ApplicationsRepo) ListByRecruiter(ctx context.Context, recruiter string) ([]application.Listing, error) {
	out := make([]application.Listing, 0)

	err := r.gw.Do(ctx, "applications.list_by_recruiter", func(ctx context.Context, q db.Querier) error {
		rows, err := q.Query(ctx,
			`SELECT a.application_id, u.user_id,
				COALESCE(u.firstname, ''), COALESCE(u.lastname, ''), COALESCE(u.email, '')
			FROM application a
			JOIN "user" u ON u.user_id = a.applier
			WHERE a.recruiter = $1
			ORDER BY a.application_id DESC`,
			recruiter,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var l application.Listing
			if err := rows.Scan(&l.ApplicationID, &l.UserID, &l.Firstname, &l.Lastname, &l.Email); err != nil {
				return err
			}
			out = append(out, l)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Create records an application, creating the applier first when no user has
// that email. The two statements are not atomic: if the insert fails the new
// user stays behind without an application.
func (r *ApplicationsRepo) Create(ctx context.Context, c application.Create) error {
	applierID, err := r.users.FindOrCreateApplier(ctx, c.Email, c.Firstname, c.Lastname)
	if err != nil {
		return err
	}

	return r.gw.Do(ctx, "applications.create", func(ctx context.Context, q db.Querier) error {
		_, err := q.Exec(ctx,
			`INSERT INTO application (applier, recruiter, email) VALUES ($1, $2, $3)`,
			applierID, c.Recruiter, c.Email,
		)
		return err
	})
}
