package handlers

import (
	"context"
	"log/slog"

	"github.com/geocoder89/devjobs/internal/schema"
	"github.com/gin-gonic/gin"
)

type SchemaInspector interface {
	Snapshot(ctx context.Context) (schema.Snapshot, error)
	Invalidate()
}

type AdminHandler struct {
	schema SchemaInspector
}

func NewAdminHandler(inspector SchemaInspector) *AdminHandler {
	return &AdminHandler{schema: inspector}
}

func (h *AdminHandler) Schema(ctx *gin.Context) {
	snap, err := h.schema.Snapshot(ctx.Request.Context())
	if err != nil {
		RespondStoreError(ctx, err)
		return
	}

	RespondData(ctx, snap)
}

// RefreshSchema drops cached catalog answers and probes again.
func (h *AdminHandler) RefreshSchema(ctx *gin.Context) {
	h.schema.Invalidate()

	snap, err := h.schema.Snapshot(ctx.Request.Context())
	if err != nil {
		RespondStoreError(ctx, err)
		return
	}

	slog.Default().InfoContext(ctx.Request.Context(), "schema refreshed",
		"ads_table", snap.AdsTable,
		"user_role", snap.UserColumns.Role,
		"user_active", snap.UserColumns.Active,
	)

	RespondData(ctx, snap)
}
