package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/geocoder89/devjobs/internal/domain/application"
	"github.com/gin-gonic/gin"
)

type ApplicationsStore interface {
	ListByRecruiter(ctx context.Context, recruiter string) ([]application.Listing, error)
	Create(ctx context.Context, c application.Create) error
}

type ApplicationsHandler struct {
	repo ApplicationsStore
}

func NewApplicationsHandler(repo ApplicationsStore) *ApplicationsHandler {
	return &ApplicationsHandler{repo: repo}
}

func (h *ApplicationsHandler) List(ctx *gin.Context) {
	recruiter := strings.TrimSpace(ctx.Query("recruiter"))
	if recruiter == "" {
		RespondBadRequest(ctx, "missing_recruiter", "recruiter is required", nil)
		return
	}

	rows, err := h.repo.ListByRecruiter(ctx.Request.Context(), recruiter)
	if err != nil {
		RespondStoreError(ctx, err)
		return
	}

	RespondData(ctx, rows)
}

func (h *ApplicationsHandler) Create(ctx *gin.Context) {
	var req application.CreateRequest

	if !BindJSON(ctx, &req, codeMissingFields) {
		return
	}

	if err := h.repo.Create(ctx.Request.Context(), req.ToCreate()); err != nil {
		RespondStoreError(ctx, err)
		return
	}

	RespondOK(ctx, http.StatusCreated, nil)
}
