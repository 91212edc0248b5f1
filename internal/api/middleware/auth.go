package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenAuth checks the auth token query parameter resource clients send on
// every request. An empty expected token disables the check.
func TokenAuth(param, expected string) gin.HandlerFunc {
	if expected == "" {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		got := c.Query(param)
		if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "invalid or missing auth token",
				"code":    "rest_forbidden",
			})
			return
		}
		c.Next()
	}
}
