package middlewares

import "github.com/gin-gonic/gin"

// abort stops the chain with the same error envelope the handlers use.
func abort(c *gin.Context, status int, code, message string) {
	body := gin.H{
		"ok":      false,
		"error":   code,
		"message": message,
	}
	if id := c.GetString(CtxRequestID); id != "" {
		body["requestId"] = id
	}

	c.AbortWithStatusJSON(status, body)
}
