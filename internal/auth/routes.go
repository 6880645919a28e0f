package auth

import (
	"vinfreak-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, authService *AuthService) {
	authController := &AuthController{AuthService: authService}

	r.POST("/admin/login", authController.Login)
	r.POST("/admin/logout", authController.Logout)
	r.GET("/api/admin/session", middlewares.AuthMiddleware(), authController.Session)
}
