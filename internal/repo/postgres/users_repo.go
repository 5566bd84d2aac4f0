package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/devjobs/internal/db"
	"github.com/geocoder89/devjobs/internal/domain/user"
	"github.com/geocoder89/devjobs/internal/schema"
	"github.com/jackc/pgx/v5"
)

const userEmailKey = "user_email_key"

// Legacy rows may hold NULLs, clients expect strings and zeros.
const userColumns = `user_id,
	COALESCE(firstname, ''),
	COALESCE(lastname, ''),
	COALESCE(email, ''),
	COALESCE(phone, ''),
	COALESCE(adress, ''),
	COALESCE(zipcode, 0),
	COALESCE(country, ''),
	COALESCE(password, ''),
	COALESCE(active, 0),
	COALESCE(ville, '')`

type UsersRepo struct {
	gw     *db.Gateway
	schema *schema.Resolver
}

func NewUsersRepo(gw *db.Gateway, resolver *schema.Resolver) *UsersRepo {
	return &UsersRepo{
		gw:     gw,
		schema: resolver,
	}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.Firstname,
		&u.Lastname,
		&u.Email,
		&u.Phone,
		&u.Adress,
		&u.Zipcode,
		&u.Country,
		&u.Password,
		&u.Active,
		&u.Ville,
	)

	return u, err
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := r.gw.Do(ctx, "users.get_by_id", func(ctx context.Context, q db.Querier) error {
		var err error
		u, err = scanUser(q.QueryRow(ctx,
			`SELECT `+userColumns+`
			FROM "user"
			WHERE user_id = $1
			LIMIT 1`,
			id,
		))
		return err
	})

	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

// Login matches email and password exactly. Passwords are stored in clear.
func (r *UsersRepo) Login(ctx context.Context, email, password string) (user.User, error) {
	var u user.User

	err := r.gw.Do(ctx, "users.login", func(ctx context.Context, q db.Querier) error {
		var err error
		u, err = scanUser(q.QueryRow(ctx,
			`SELECT `+userColumns+`
			FROM "user"
			WHERE email = $1 AND password = $2
			LIMIT 1`,
			email, password,
		))
		return err
	})

	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) idByEmail(ctx context.Context, email string) (int64, error) {
	var id int64

	err := r.gw.Do(ctx, "users.id_by_email", func(ctx context.Context, q db.Querier) error {
		return q.QueryRow(ctx,
			`SELECT user_id FROM "user" WHERE email = $1 ORDER BY user_id LIMIT 1`,
			email,
		).Scan(&id)
	})

	if errors.Is(err, pgx.ErrNoRows) {
		return 0, user.ErrNotFound
	}

	return id, err
}

// Register inserts an active user. The pre-check gives the common case a clean
// conflict, the unique index settles concurrent registrations.
func (r *UsersRepo) Register(ctx context.Context, p user.Profile) (user.User, error) {
	_, err := r.idByEmail(ctx, p.Email)
	switch {
	case err == nil:
		return user.User{}, user.ErrEmailExists
	case !errors.Is(err, user.ErrNotFound):
		return user.User{}, err
	}

	var u user.User

	err = r.gw.Do(ctx, "users.register", func(ctx context.Context, q db.Querier) error {
		var err error
		u, err = scanUser(q.QueryRow(ctx,
			`INSERT INTO "user" (firstname, lastname, email, phone, adress, zipcode, country, password, active, ville)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, $9)
			RETURNING `+userColumns,
			p.Firstname, p.Lastname, p.Email, p.Phone, p.Adress, p.Zipcode, p.Country, p.Password, p.Ville,
		))
		return err
	})

	if isUniqueViolation(err, userEmailKey) {
		return user.User{}, user.ErrEmailExists
	}
	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

// FindOrCreateApplier returns the id of the user owning email, inserting an
// inactive user with blank profile fields when there is none.
func (r *UsersRepo) FindOrCreateApplier(ctx context.Context, email, firstname, lastname string) (int64, error) {
	id, err := r.idByEmail(ctx, email)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return 0, err
	}

	err = r.gw.Do(ctx, "users.create_applier", func(ctx context.Context, q db.Querier) error {
		return q.QueryRow(ctx,
			`INSERT INTO "user" (firstname, lastname, email, phone, adress, zipcode, country, password, active, ville)
			VALUES ($1, $2, $3, '', '', 0, '', '', 0, '')
			RETURNING user_id`,
			firstname, lastname, email,
		).Scan(&id)
	})

	// lost a race with another submission for the same email
	if isUniqueViolation(err, userEmailKey) {
		return r.idByEmail(ctx, email)
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Update overwrites every mutable field. A missing user is not an error: the
// returned pointer is nil.
func (r *UsersRepo) Update(ctx context.Context, id int64, p user.Profile) (*user.User, error) {
	var u user.User

	err := r.gw.Do(ctx, "users.update", func(ctx context.Context, q db.Querier) error {
		var err error
		u, err = scanUser(q.QueryRow(ctx,
			`UPDATE "user"
			SET firstname = $1, lastname = $2, email = $3, phone = $4, adress = $5,
				zipcode = $6, country = $7, password = $8, ville = $9
			WHERE user_id = $10
			RETURNING `+userColumns,
			p.Firstname, p.Lastname, p.Email, p.Phone, p.Adress, p.Zipcode, p.Country, p.Password, p.Ville, id,
		))
		return err
	})

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if isUniqueViolation(err, userEmailKey) {
		return nil, user.ErrEmailExists
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id int64) error {
	return r.gw.Do(ctx, "users.delete", func(ctx context.Context, q db.Querier) error {
		_, err := q.Exec(ctx, `DELETE FROM "user" WHERE user_id = $1`, id)
		return err
	})
}

// SetActive writes the ban flag: 0 for banned, 1 otherwise.
func (r *UsersRepo) SetActive(ctx context.Context, id int64, active bool) error {
	flag := 0
	if active {
		flag = 1
	}

	return r.gw.Do(ctx, "users.set_active", func(ctx context.Context, q db.Querier) error {
		_, err := q.Exec(ctx, `UPDATE "user" SET active = $1 WHERE user_id = $2`, flag, id)
		return err
	})
}

// ListForAdmin selects role and active only when the live schema has them.
func (r *UsersRepo) ListForAdmin(ctx context.Context) ([]user.AdminRow, error) {
	cols, err := r.schema.UserColumns(ctx)
	if err != nil {
		return nil, err
	}

	query := adminUsersQuery(cols)
	out := make([]user.AdminRow, 0)

	err = r.gw.Do(ctx, "users.list_admin", func(ctx context.Context, q db.Querier) error {
		rows, err := q.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				u      user.AdminRow
				role   *string
				active *int
			)

			dest := []any{&u.ID, &u.Firstname, &u.Lastname, &u.Email}
			if cols.Role {
				dest = append(dest, &role)
			}
			if cols.Active {
				dest = append(dest, &active)
			}

			if err := rows.Scan(dest...); err != nil {
				return err
			}

			if cols.Role {
				u.Role = user.Some(role)
			}
			if cols.Active {
				u.Active = user.Some(active)
			}

			out = append(out, u)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func adminUsersQuery(cols schema.UserColumns) string {
	selects := []string{
		"user_id",
		"COALESCE(firstname, '')",
		"COALESCE(lastname, '')",
		"COALESCE(email, '')",
	}
	if cols.Role {
		selects = append(selects, pgx.Identifier{schema.ColumnRole}.Sanitize()+"::text")
	}
	if cols.Active {
		selects = append(selects, pgx.Identifier{schema.ColumnActive}.Sanitize()+"::int")
	}

	return "SELECT " + strings.Join(selects, ", ") +
		" FROM " + pgx.Identifier{schema.UserTable}.Sanitize() +
		" ORDER BY user_id DESC"
}
