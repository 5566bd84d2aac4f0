package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/geocoder89/devjobs/internal/domain/user"
	"github.com/geocoder89/devjobs/internal/utils"
	"github.com/gin-gonic/gin"
)

type UsersStore interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
	Login(ctx context.Context, email, password string) (user.User, error)
	Register(ctx context.Context, p user.Profile) (user.User, error)
	Update(ctx context.Context, id int64, p user.Profile) (*user.User, error)
	Delete(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) error
	ListForAdmin(ctx context.Context) ([]user.AdminRow, error)
}

const (
	codeMissingFields = "missing_fields"
	codeMissingUserID = "missing_user_id"
)

type UsersHandler struct {
	repo UsersStore
}

func NewUsersHandler(repo UsersStore) *UsersHandler {
	return &UsersHandler{repo: repo}
}

func (h *UsersHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req, codeMissingFields) {
		return
	}

	u, err := h.repo.Register(ctx.Request.Context(), req.Profile())
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			RespondConflict(ctx, "email_exists", "An account already uses this email")
			return
		}
		RespondStoreError(ctx, err)
		return
	}

	RespondUser(ctx, u)
}

// Login compares the password as stored. Any mismatch gets the same answer.
func (h *UsersHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req, codeMissingFields) {
		return
	}

	u, err := h.repo.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondError(ctx, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)
			return
		}
		RespondStoreError(ctx, err)
		return
	}

	RespondUser(ctx, u)
}

func (h *UsersHandler) GetMe(ctx *gin.Context) {
	raw := strings.TrimSpace(ctx.Query("user_id"))
	if raw == "" {
		RespondBadRequest(ctx, codeMissingUserID, "user_id is required", nil)
		return
	}

	u, err := h.repo.GetByID(ctx.Request.Context(), utils.ParseID(raw))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondStoreError(ctx, err)
		return
	}

	RespondUser(ctx, u)
}

// UpdateMe overwrites the whole profile. An unknown user_id answers ok with a
// null user.
func (h *UsersHandler) UpdateMe(ctx *gin.Context) {
	var req user.UpdateRequest

	if !BindJSON(ctx, &req, codeMissingUserID) {
		return
	}

	u, err := h.repo.Update(ctx.Request.Context(), utils.ParseID(req.UserID.Trimmed()), req.Profile())
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			RespondConflict(ctx, "email_exists", "An account already uses this email")
			return
		}
		RespondStoreError(ctx, err)
		return
	}

	RespondUser(ctx, u)
}

// Delete serves both DELETE /api/me and the admin POST /api/users/delete.
func (h *UsersHandler) Delete(ctx *gin.Context) {
	var req user.IDRequest

	if !BindJSON(ctx, &req, codeMissingUserID) {
		return
	}

	if err := h.repo.Delete(ctx.Request.Context(), utils.ParseID(req.UserID.Trimmed())); err != nil {
		RespondStoreError(ctx, err)
		return
	}

	RespondOK(ctx, http.StatusOK, nil)
}

// Ban sets active to 0 when banned is truthy and back to 1 otherwise.
func (h *UsersHandler) Ban(ctx *gin.Context) {
	var req user.BanRequest

	if !BindJSON(ctx, &req, codeMissingUserID) {
		return
	}

	err := h.repo.SetActive(ctx.Request.Context(), utils.ParseID(req.UserID.Trimmed()), !bool(req.Banned))
	if err != nil {
		RespondStoreError(ctx, err)
		return
	}

	RespondOK(ctx, http.StatusOK, nil)
}

func (h *UsersHandler) ListForAdmin(ctx *gin.Context) {
	rows, err := h.repo.ListForAdmin(ctx.Request.Context())
	if err != nil {
		RespondStoreError(ctx, err)
		return
	}

	RespondData(ctx, rows)
}
