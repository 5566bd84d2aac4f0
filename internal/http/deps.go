package http

import (
	"github.com/geocoder89/devjobs/internal/config"
	"github.com/geocoder89/devjobs/internal/db"
	"github.com/geocoder89/devjobs/internal/observability"
	"github.com/geocoder89/devjobs/internal/repo/postgres"
	"github.com/geocoder89/devjobs/internal/schema"
)

// NewPostgresDeps wires the repositories over one gateway. The resolver is
// shared so every schema-dependent query sees the same cached snapshot.
func NewPostgresDeps(q db.Querier, cfg config.Config, prom *observability.Prom) (Deps, *schema.Resolver) {
	gw := db.NewGateway(q, cfg.DB.QueryTimeout, prom)
	resolver := schema.NewResolver(schema.NewProbe(gw, prom), cfg.SchemaCacheTTL)

	users := postgres.NewUsersRepo(gw, resolver)

	return Deps{
		Ads:          postgres.NewAdsRepo(gw, resolver),
		Users:        users,
		Applications: postgres.NewApplicationsRepo(gw, users),
		Companies:    postgres.NewCompaniesRepo(gw),
		Schema:       resolver,
		DB:           gw,
		Prom:         prom,
	}, resolver
}
