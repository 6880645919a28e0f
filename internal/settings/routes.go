package settings

import (
	"vinfreak-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, settingsService *SettingsService) {
	settingsController := &SettingsController{SettingsService: settingsService}

	r.GET("/public/settings", settingsController.PublicSettings)

	adminGroup := r.Group("/api/admin/settings")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("", settingsController.GetSettings)
		adminGroup.POST("", middlewares.RequireCSRF(), settingsController.SaveSettings)
	}
}
