package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuditController struct {
	AuditService *AuditService
}

func (ac *AuditController) GetAudits(c *gin.Context) {
	var input AuditFilterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, total, totalPages, err := ac.AuditService.GetAudits(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        rows,
		"page":        input.Page,
		"page_size":   input.PageSize,
		"total":       total,
		"total_pages": totalPages,
	})
}
