package middlewares

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireCSRF rejects a mutating admin request unless the X-CSRF-Token
// header matches the session-bound token. Runs after AuthMiddleware; a
// mismatch aborts before any storage mutation, so no audit row is written.
func RequireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		want := c.GetString("csrfToken")

		got := strings.TrimSpace(c.GetHeader("X-CSRF-Token"))
		if got == "" {
			got = strings.TrimSpace(c.PostForm("csrf_token"))
		}

		if want == "" || subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
			c.JSON(http.StatusForbidden, gin.H{"error": "CSRF token invalid"})
			c.Abort()
			return
		}
		c.Next()
	}
}
