package middlewares

import (
	"net/http"

	"vinfreak-api/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the admin session cookie and puts the actor and
// the session-bound CSRF token into the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.LoadConfig()
		accessToken, err := c.Cookie("access_token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing access token"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		actor, _ := claims["actor"].(string)
		if actor == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session actor"})
			c.Abort()
			return
		}
		csrfToken, _ := claims["csrf"].(string)

		c.Set("actor", actor)
		c.Set("csrfToken", csrfToken)
		c.Next()
	}
}

// Actor returns the authenticated operator set by AuthMiddleware.
func Actor(c *gin.Context) string {
	return c.GetString("actor")
}
