package dealership

import (
	"errors"
	"net/http"
	"strconv"

	"vinfreak-api/internal/middlewares"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DealershipController struct {
	DealershipService *DealershipService
}

func (dc *DealershipController) ListDealerships(c *gin.Context) {
	rows, err := dc.DealershipService.ListDealerships()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (dc *DealershipController) CreateDealership(c *gin.Context) {
	var input DealershipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := dc.DealershipService.CreateDealership(middlewares.Actor(c), c.ClientIP(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mutation failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (dc *DealershipController) UpdateDealership(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dealership id"})
		return
	}

	var input DealershipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := dc.DealershipService.UpdateDealership(middlewares.Actor(c), c.ClientIP(), uint(id), input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dealership not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mutation failed"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (dc *DealershipController) DeleteDealership(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dealership id"})
		return
	}

	if err := dc.DealershipService.DeleteDealership(middlewares.Actor(c), c.ClientIP(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dealership not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mutation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "dealership deleted"})
}
