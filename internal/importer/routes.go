package importer

import (
	"vinfreak-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, importService *ImportService) {
	importController := &ImportController{ImportService: importService}

	// scraper-facing batch ingest
	r.POST("/cars/bulk", importController.BulkImport)

	adminGroup := r.Group("/api/admin/cars")
	adminGroup.Use(middlewares.AuthMiddleware(), middlewares.RequireCSRF())
	{
		adminGroup.POST("/import", importController.UploadImport)
	}
}
