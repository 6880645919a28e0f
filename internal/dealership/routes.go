package dealership

import (
	"vinfreak-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, dealershipService *DealershipService) {
	dealershipController := &DealershipController{DealershipService: dealershipService}

	r.GET("/dealerships", dealershipController.ListDealerships)

	adminGroup := r.Group("/api/admin/dealerships")
	adminGroup.Use(middlewares.AuthMiddleware(), middlewares.RequireCSRF())
	{
		adminGroup.POST("", dealershipController.CreateDealership)
		adminGroup.PUT("/:id", dealershipController.UpdateDealership)
		adminGroup.DELETE("/:id", dealershipController.DeleteDealership)
	}
}
