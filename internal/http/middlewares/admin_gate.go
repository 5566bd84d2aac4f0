package middlewares

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/geocoder89/devjobs/internal/observability"
	"github.com/gin-gonic/gin"
)

const (
	GateAllowed       = "allowed"
	GateUnauthorized  = "unauthorized"
	GateNotConfigured = "not_configured"

	adminPrefix = "/api/admin"
)

type protectedRoute struct {
	// empty method matches any verb
	method string
	path   *regexp.Regexp
}

var protectedRoutes = []protectedRoute{
	{path: regexp.MustCompile(`^/api/users/(ban|delete)`)},
	{method: http.MethodDelete, path: regexp.MustCompile(`^/api/ads/\d+$`)},
	{path: regexp.MustCompile(`^/api/companies/(create|update|delete)`)},
}

// protectedTemplates are matched against the gin route template so an id the
// path patterns reject ("+5", " 5") still reaches the gate.
var protectedTemplates = map[string]struct{}{
	http.MethodDelete + " /api/ads/:id": {},
}

// IsProtectedRoute reports whether the matched route template is protected.
func IsProtectedRoute(method, fullPath string) bool {
	if fullPath == "" {
		return false
	}
	_, ok := protectedTemplates[method+" "+fullPath]
	return ok
}

// IsProtected reports whether a request needs the admin secret.
func IsProtected(method, path string) bool {
	if strings.HasPrefix(path, adminPrefix) {
		return true
	}

	for _, r := range protectedRoutes {
		if r.method != "" && r.method != method {
			continue
		}
		if r.path.MatchString(path) {
			return true
		}
	}

	return false
}

type AdminGate struct {
	secret string
	header string
	prom   *observability.Prom
	log    *slog.Logger
}

// NewAdminGate builds the gate. An empty secret leaves admin access
// unconfigured: protected requests fail with admin_not_configured whatever
// header they carry.
func NewAdminGate(secret, header string, prom *observability.Prom, log *slog.Logger) *AdminGate {
	if header == "" {
		header = "X-Admin"
	}
	if log == nil {
		log = slog.Default()
	}

	return &AdminGate{
		secret: secret,
		header: header,
		prom:   prom,
		log:    log,
	}
}

func (g *AdminGate) Header() string {
	return g.header
}

func (g *AdminGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsProtected(c.Request.Method, c.Request.URL.Path) && !IsProtectedRoute(c.Request.Method, c.FullPath()) {
			c.Next()
			return
		}

		outcome := g.check(c.GetHeader(g.header))
		c.Set(CtxAdminGate, outcome)
		g.prom.ObserveGate(outcome)

		switch outcome {
		case GateNotConfigured:
			g.log.ErrorContext(c.Request.Context(), "admin secret not configured",
				"path", c.Request.URL.Path,
				"request_id", c.GetString(CtxRequestID),
			)
			abort(c, http.StatusInternalServerError, "admin_not_configured", "admin access is not configured on this server")
			return
		case GateUnauthorized:
			g.log.WarnContext(c.Request.Context(), "admin gate denied",
				"path", c.Request.URL.Path,
				"request_id", c.GetString(CtxRequestID),
			)
			abort(c, http.StatusUnauthorized, "unauthorized", "missing or invalid admin credential")
			return
		}

		c.Next()
	}
}

func (g *AdminGate) check(presented string) string {
	if g.secret == "" {
		return GateNotConfigured
	}

	if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(g.secret)) != 1 {
		return GateUnauthorized
	}

	return GateAllowed
}
