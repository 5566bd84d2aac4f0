package postgres

import (
	"context"

	"github.com/geocoder89/devjobs/internal/db"
	"github.com/geocoder89/devjobs/internal/domain/company"
)

type CompaniesRepo struct {
	gw *db.Gateway
}

func NewCompaniesRepo(gw *db.Gateway) *CompaniesRepo {
	return &CompaniesRepo{gw: gw}
}

// List returns every company, newest first.
func (r *CompaniesRepo) List(ctx context.Context) ([]company.Company, error) {
	out := make([]company.Company, 0)

	err := r.gw.Do(ctx, "companies.list", func(ctx context.Context, q db.Querier) error {
		rows, err := q.Query(ctx,
			`SELECT company_id, nom, domaine, email
			FROM company
			ORDER BY company_id DESC`,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c company.Company
			if err := rows.Scan(&c.ID, &c.Nom, &c.Domaine, &c.Email); err != nil {
				return err
			}
			out = append(out, c)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
