package audit

import (
	"vinfreak-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, auditService *AuditService) {
	auditController := &AuditController{AuditService: auditService}

	auditGroup := r.Group("/api/admin/audit")
	auditGroup.Use(middlewares.AuthMiddleware())
	{
		auditGroup.POST("/search", auditController.GetAudits)
	}
}
