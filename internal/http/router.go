package http

import (
	"log/slog"
	"net/http"

	"github.com/geocoder89/devjobs/internal/config"
	"github.com/geocoder89/devjobs/internal/http/handlers"
	"github.com/geocoder89/devjobs/internal/http/middlewares"
	"github.com/geocoder89/devjobs/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps are the stores and probes the routes are served from.
type Deps struct {
	Ads          handlers.AdsStore
	Users        handlers.UsersStore
	Applications handlers.ApplicationsStore
	Companies    handlers.CompaniesStore
	Schema       handlers.SchemaInspector
	DB           handlers.Pinger

	Prom *observability.Prom
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// ShuttingDown flips readiness to 503 while the server drains.
	ShuttingDown func() bool
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	gate := middlewares.NewAdminGate(cfg.AdminPassword, cfg.AdminHeader, deps.Prom, log)

	// middleware

	r.Use(gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		log.ErrorContext(ctx.Request.Context(), "panic recovered", "panic", recovered, "path", ctx.Request.URL.Path)
		handlers.RespondError(ctx, http.StatusInternalServerError, "server_error", "internal server error", nil)
		ctx.Abort()
	}))
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins, gate.Header()))
	r.Use(gate.Middleware())
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondNotFound(ctx, "Route not found")
	})

	// health
	health := handlers.NewHealthHandler(deps.DB, deps.ShuttingDown)
	r.GET("/ping", health.Ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	if cfg.Env == "dev" {
		r.GET("/__whoami", health.Whoami)
	}
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	ads := handlers.NewAdsHandler(deps.Ads)
	users := handlers.NewUsersHandler(deps.Users)
	applications := handlers.NewApplicationsHandler(deps.Applications)
	companies := handlers.NewCompaniesHandler(deps.Companies)
	admin := handlers.NewAdminHandler(deps.Schema)

	api := r.Group("/api")
	{
		api.GET("/ads", ads.Search)
		api.GET("/ads/:id", ads.GetByID)
		api.DELETE("/ads/:id", ads.Delete)

		api.GET("/applications", applications.List)
		api.POST("/applications", applications.Create)

		api.POST("/register", users.Register)
		api.POST("/login", users.Login)
		api.GET("/me", users.GetMe)
		api.PUT("/me", users.UpdateMe)
		api.DELETE("/me", users.Delete)

		// the admin console reads users from here
		api.GET("/users", users.ListForAdmin)
		api.POST("/users/ban", users.Ban)
		api.POST("/users/delete", users.Delete)

		api.GET("/companies", companies.List)
		api.POST("/companies/create", companies.Mutate)
		api.POST("/companies/update", companies.Mutate)
		api.POST("/companies/delete", companies.Mutate)
	}

	adminGroup := api.Group("/admin")
	{
		adminGroup.GET("/ads", ads.ListForAdmin)
		adminGroup.GET("/users", users.ListForAdmin)
		adminGroup.GET("/companies", companies.List)
		adminGroup.GET("/schema", admin.Schema)
		adminGroup.POST("/schema/refresh", admin.RefreshSchema)
	}

	return r
}
