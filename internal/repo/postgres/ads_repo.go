package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/devjobs/internal/db"
	"github.com/geocoder89/devjobs/internal/domain/ad"
	"github.com/geocoder89/devjobs/internal/schema"
	"github.com/jackc/pgx/v5"
)

type AdsRepo struct {
	gw     *db.Gateway
	schema *schema.Resolver
}

func NewAdsRepo(gw *db.Gateway, resolver *schema.Resolver) *AdsRepo {
	return &AdsRepo{
		gw:     gw,
		schema: resolver,
	}
}

func scanAd(row pgx.Row) (ad.Row, error) {
	var a ad.Row

	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.ShortDesc,
		&a.LongDesc,
		&a.Localisation,
		&a.ContractType,
		&a.CompanyID,
		&a.CompanyName,
	)

	return a, err
}

func collectAds(rows pgx.Rows, limit int) ([]ad.Row, error) {
	defer rows.Close()

	out := make([]ad.Row, 0, limit)

	for rows.Next() {
		a, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

// likePattern wraps s for a substring match. Wildcards typed by the client
// are passed through.
func likePattern(s string) string {
	return "%" + s + "%"
}

// Search matches the query against title, descriptions and company name, and
// the location filter against the ad location, newest first.
func (r *AdsRepo) Search(ctx context.Context, f ad.SearchFilter) ([]ad.Row, error) {
	var out []ad.Row

	err := r.gw.Do(ctx, "ads.search", func(ctx context.Context, q db.Querier) error {
		rows, err := q.Query(ctx,
			`SELECT a.ad_id, a.title, a.short_desc, a.long_desc, a.localisation, a.contract_type,
				c.company_id, COALESCE(c.nom, '')
			FROM advertisement a
			LEFT JOIN company c ON c.company_id = a.company
			WHERE (a.title ILIKE $1
				OR a.short_desc ILIKE $1
				OR a.long_desc ILIKE $1
				OR COALESCE(c.nom, '') ILIKE $1)
			AND COALESCE(a.localisation, '') ILIKE $2
			ORDER BY a.ad_id DESC
			LIMIT $3`,
			likePattern(f.Query), likePattern(f.Lieu), ad.SearchLimit,
		)
		if err != nil {
			return err
		}

		out, err = collectAds(rows, ad.SearchLimit)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *AdsRepo) GetByID(ctx context.Context, id int64) (ad.Row, error) {
	var a ad.Row

	err := r.gw.Do(ctx, "ads.get_by_id", func(ctx context.Context, q db.Querier) error {
		var err error
		a, err = scanAd(q.QueryRow(ctx,
			`SELECT a.ad_id, a.title, a.short_desc, a.long_desc, a.localisation, a.contract_type,
				a.company, COALESCE(c.nom, '')
			FROM advertisement a
			LEFT JOIN company c ON c.company_id = a.company
			WHERE a.ad_id = $1`,
			id,
		))
		return err
	})

	if errors.Is(err, pgx.ErrNoRows) {
		return ad.Row{}, ad.ErrNotFound
	}
	if err != nil {
		return ad.Row{}, err
	}

	return a, nil
}

// Delete removes the ad if present. Deleting a missing id succeeds.
func (r *AdsRepo) Delete(ctx context.Context, id int64) error {
	return r.gw.Do(ctx, "ads.delete", func(ctx context.Context, q db.Querier) error {
		_, err := q.Exec(ctx, `DELETE FROM advertisement WHERE ad_id = $1`, id)
		return err
	})
}

// ListForAdmin reads every ad from whichever ads table the schema has,
// preferring advertisement over the legacy spelling.
func (r *AdsRepo) ListForAdmin(ctx context.Context) ([]ad.Row, error) {
	table, err := r.schema.AdsTable(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT a.ad_id, a.title, a.short_desc, a.long_desc, a.localisation, a.contract_type,
			a.company, COALESCE(c.nom, '')
		FROM ` + pgx.Identifier{table}.Sanitize() + ` a
		LEFT JOIN company c ON c.company_id = a.company
		ORDER BY a.ad_id DESC`

	var out []ad.Row

	err = r.gw.Do(ctx, "ads.list_admin:"+table, func(ctx context.Context, q db.Querier) error {
		rows, err := q.Query(ctx, query)
		if err != nil {
			return err
		}

		out, err = collectAds(rows, 0)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
