package importjob

import (
	"vinfreak-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, jobService *JobService) {
	jobController := &JobController{JobService: jobService}

	adminGroup := r.Group("/api/admin/import-jobs")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("", jobController.ListJobs)
		adminGroup.POST("/:id/cancel", middlewares.RequireCSRF(), jobController.CancelJob)
	}
}
