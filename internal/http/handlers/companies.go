package handlers

import (
	"context"

	"github.com/geocoder89/devjobs/internal/domain/company"
	"github.com/gin-gonic/gin"
)

type CompaniesStore interface {
	List(ctx context.Context) ([]company.Company, error)
}

type CompaniesHandler struct {
	repo CompaniesStore
}

func NewCompaniesHandler(repo CompaniesStore) *CompaniesHandler {
	return &CompaniesHandler{repo: repo}
}

func (h *CompaniesHandler) List(ctx *gin.Context) {
	rows, err := h.repo.List(ctx.Request.Context())
	if err != nil {
		RespondStoreError(ctx, err)
		return
	}

	RespondData(ctx, rows)
}

// Mutate backs the declared company create/update/delete routes, which have
// no implementation yet.
func (h *CompaniesHandler) Mutate(ctx *gin.Context) {
	RespondNotImplemented(ctx)
}
