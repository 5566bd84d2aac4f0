package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/geocoder89/devjobs/internal/config"
	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

const readyTimeout = time.Second

type HealthHandler struct {
	db           Pinger
	shuttingDown func() bool
	now          func() time.Time
}

// NewHealthHandler builds the probe handlers. shuttingDown may be nil; when it
// reports true readiness fails so load balancers stop routing here first.
func NewHealthHandler(db Pinger, shuttingDown func() bool) *HealthHandler {
	if shuttingDown == nil {
		shuttingDown = func() bool { return false }
	}

	return &HealthHandler{
		db:           db,
		shuttingDown: shuttingDown,
		now:          time.Now,
	}
}

// Ping answers with the server clock in unix milliseconds.
func (h *HealthHandler) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"ok": true, "t": h.now().UnixMilli()})
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(ctx *gin.Context) {
	if h.shuttingDown() {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting_down"})
		return
	}

	if h.db == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}

	pctx, cancel := config.WithTimeout(ctx.Request.Context(), readyTimeout)
	defer cancel()

	if err := h.db.Ping(pctx); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Whoami tells which binary and working directory serve requests.
func (h *HealthHandler) Whoami(ctx *gin.Context) {
	file, _ := os.Executable()
	cwd, _ := os.Getwd()

	ctx.JSON(http.StatusOK, gin.H{"file": file, "cwd": cwd, "ts": h.now().UnixMilli()})
}
