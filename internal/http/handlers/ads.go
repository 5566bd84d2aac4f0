package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/geocoder89/devjobs/internal/domain/ad"
	"github.com/geocoder89/devjobs/internal/utils"
	"github.com/gin-gonic/gin"
)

type AdsStore interface {
	Search(ctx context.Context, f ad.SearchFilter) ([]ad.Row, error)
	GetByID(ctx context.Context, id int64) (ad.Row, error)
	Delete(ctx context.Context, id int64) error
	ListForAdmin(ctx context.Context) ([]ad.Row, error)
}

type AdsHandler struct {
	repo AdsStore
}

func NewAdsHandler(repo AdsStore) *AdsHandler {
	return &AdsHandler{repo: repo}
}

// Search handles GET /api/ads?q=&lieu=.
func (h *AdsHandler) Search(ctx *gin.Context) {
	rows, err := h.repo.Search(ctx.Request.Context(), ad.SearchFilter{
		Query: ctx.Query("q"),
		Lieu:  ctx.Query("lieu"),
	})
	if err != nil {
		RespondStoreError(ctx, err)
		return
	}

	RespondData(ctx, ad.ShapeSearch(rows))
}

func (h *AdsHandler) GetByID(ctx *gin.Context) {
	row, err := h.repo.GetByID(ctx.Request.Context(), utils.ParseID(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, ad.ErrNotFound) {
			RespondNotFound(ctx, "Ad not found")
			return
		}
		RespondStoreError(ctx, err)
		return
	}

	RespondData(ctx, row.ToDetail())
}

func (h *AdsHandler) Delete(ctx *gin.Context) {
	err := h.repo.Delete(ctx.Request.Context(), utils.ParseID(ctx.Param("id")))
	if err != nil {
		RespondStoreError(ctx, err)
		return
	}

	RespondOK(ctx, http.StatusOK, nil)
}

// ListForAdmin returns unshaped rows from whichever ads table the schema has.
func (h *AdsHandler) ListForAdmin(ctx *gin.Context) {
	rows, err := h.repo.ListForAdmin(ctx.Request.Context())
	if err != nil {
		RespondStoreError(ctx, err)
		return
	}

	RespondData(ctx, rows)
}
