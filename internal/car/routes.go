package car

import (
	"vinfreak-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, carService *CarService) {
	carController := &CarController{CarService: carService}

	// public listing surface
	r.GET("/cars", carController.ListCars)
	r.GET("/cars/:ref", carController.GetCar)

	adminGroup := r.Group("/api/admin/cars")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("", carController.AdminListCars)
		adminGroup.GET("/export", carController.ExportCars)

		mutating := adminGroup.Group("")
		mutating.Use(middlewares.RequireCSRF())
		{
			mutating.POST("", carController.CreateCar)
			mutating.PUT("/:id", carController.UpdateCar)
			mutating.DELETE("/:id", carController.DeleteCar)
			mutating.POST("/bulk", carController.BulkAction)
		}
	}
}
