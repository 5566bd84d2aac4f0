package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/devjobs/internal/db"
	"github.com/geocoder89/devjobs/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func requestIDFrom(ctx *gin.Context) string {
	if id := ctx.GetString(middlewares.CtxRequestID); id != "" {
		return id
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondOK(ctx *gin.Context, status int, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}

	ctx.JSON(status, body)
}

// RespondData answers {"ok":true,"data":data} with an ETag so unchanged lists
// can come back as 304.
func RespondData(ctx *gin.Context, data any) {
	RespondJSONWithETag(ctx, http.StatusOK, gin.H{"ok": true, "data": data})
}

func RespondUser(ctx *gin.Context, u any) {
	ctx.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

func RespondError(ctx *gin.Context, status int, code, message string, details any) {
	body := gin.H{
		"ok":    false,
		"error": code,
	}
	if message != "" {
		body["message"] = message
	}
	if id := requestIDFrom(ctx); id != "" {
		body["requestId"] = id
	}
	if details != nil {
		body["details"] = details
	}

	ctx.JSON(status, body)
}

func RespondBadRequest(ctx *gin.Context, code, message string, details any) {
	RespondError(ctx, http.StatusBadRequest, code, message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondConflict(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusConflict, code, message, nil)
}

// RespondStoreError turns a repository failure into the 500 envelope. The
// store message is passed through and "where" names the failing operation.
// A query that hit its deadline is reported as 504 query_timeout instead.
func RespondStoreError(ctx *gin.Context, err error) {
	op := db.OpOf(err)

	slog.Default().ErrorContext(ctx.Request.Context(), "db_error",
		"op", op,
		"err", err,
		"request_id", requestIDFrom(ctx),
	)

	status, code := http.StatusInternalServerError, "DB_ERROR"

	var qe *db.QueryError
	switch {
	case errors.Is(err, db.ErrQueryTimeout):
		status, code = http.StatusGatewayTimeout, "query_timeout"
	case !errors.As(err, &qe):
		code = "server_error"
	}

	body := gin.H{
		"ok":      false,
		"error":   code,
		"message": err.Error(),
	}
	if op != "" {
		body["where"] = op
	}
	if id := requestIDFrom(ctx); id != "" {
		body["requestId"] = id
	}

	ctx.JSON(status, body)
}

func RespondNotImplemented(ctx *gin.Context) {
	RespondError(ctx, http.StatusNotImplemented, "not_implemented", "this operation is not available", nil)
}
