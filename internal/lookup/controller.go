package lookup

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type LookupController struct {
	Service LookupServiceAPI
}

func (lc *LookupController) GetAllMakes(c *gin.Context) {
	makes, err := lc.Service.GetAllMakes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"makes": makes})
}

func (lc *LookupController) GetModelsByMake(c *gin.Context) {
	makeIDStr := strings.TrimSpace(c.Param("make"))
	makeID, err := strconv.Atoi(makeIDStr)
	if err != nil || makeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid make id is required"})
		return
	}

	models, err := lc.Service.GetModelsByMake(makeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": models})
}

func (lc *LookupController) GetAllCategories(c *gin.Context) {
	categories, err := lc.Service.GetAllCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
