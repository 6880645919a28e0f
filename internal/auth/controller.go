package auth

import (
	"errors"
	"net/http"

	"vinfreak-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *AuthService
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := ac.AuthService.Login(c.ClientIP(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts. Try again later."})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "access_token",
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	c.JSON(http.StatusOK, LoginResponse{
		Actor:     session.Actor,
		CSRFToken: session.CSRFToken,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session echoes the authenticated actor and CSRF token back to a console
// that reloaded and lost them.
func (ac *AuthController) Session(c *gin.Context) {
	c.JSON(http.StatusOK, LoginResponse{
		Actor:     middlewares.Actor(c),
		CSRFToken: c.GetString("csrfToken"),
	})
}
