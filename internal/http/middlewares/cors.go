package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware answers for the listed origins, or for any origin when the
// list holds "*". Extra headers (the admin header) are added to the allowed
// request headers.
func CORSMiddleware(allowedOrigins []string, extraHeaders ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	allowAll := false

	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	headers := strings.Join(append([]string{"Content-Type", requestIDHeader}, extraHeaders...), ",")

	return func(ctx *gin.Context) {
		origin := ctx.GetHeader("Origin")
		if origin != "" {
			_, ok := allowed[origin]

			switch {
			case ok:
				ctx.Header("Access-Control-Allow-Origin", origin)
				ctx.Header("Vary", "Origin")
			case allowAll:
				ctx.Header("Access-Control-Allow-Origin", "*")
			}

			if ok || allowAll {
				ctx.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
				ctx.Header("Access-Control-Allow-Headers", headers)
				ctx.Header("Access-Control-Expose-Headers", requestIDHeader)
			}
		}

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
