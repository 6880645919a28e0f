package car

import (
	"errors"
	"net/http"
	"strconv"

	"vinfreak-api/internal/middlewares"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CarController struct {
	CarService *CarService
}

func (cc *CarController) ListCars(c *gin.Context) {
	var dealershipID *uint
	if raw := c.Query("dealership_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dealership_id"})
			return
		}
		u := uint(id)
		dealershipID = &u
	}

	views, err := cc.CarService.ListCars(dealershipID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

func (cc *CarController) GetCar(c *gin.Context) {
	view, err := cc.CarService.GetCar(c.Param("ref"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "car not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (cc *CarController) AdminListCars(c *gin.Context) {
	input := AdminCarFilterInput{
		Q:      c.Query("q"),
		Make:   c.Query("make"),
		Status: c.Query("status"),
		Sort:   c.Query("sort"),
	}
	input.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	input.Per, _ = strconv.Atoi(c.DefaultQuery("per", "25"))
	if raw := c.Query("year_min"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			input.YearMin = &n
		}
	}
	if raw := c.Query("year_max"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			input.YearMax = &n
		}
	}

	rows, total, lastPage, err := cc.CarService.AdminListCars(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      rows,
		"page":      input.Page,
		"per":       input.Per,
		"total":     total,
		"last_page": lastPage,
	})
}

func (cc *CarController) CreateCar(c *gin.Context) {
	var input CarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := cc.CarService.CreateCar(middlewares.Actor(c), c.ClientIP(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mutation failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (cc *CarController) UpdateCar(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
		return
	}

	var input CarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := cc.CarService.UpdateCar(middlewares.Actor(c), c.ClientIP(), uint(id), input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "car not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mutation failed"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (cc *CarController) DeleteCar(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
		return
	}

	if err := cc.CarService.DeleteCar(middlewares.Actor(c), c.ClientIP(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "car not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mutation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "car deleted"})
}

func (cc *CarController) BulkAction(c *gin.Context) {
	var input BulkActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	affected, err := cc.CarService.BulkAction(middlewares.Actor(c), c.ClientIP(), input)
	if err != nil {
		if errors.Is(err, ErrUnsupportedBulkAction) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mutation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"affected": affected, "action": input.Action})
}

func (cc *CarController) ExportCars(c *gin.Context) {
	format, err := ParseFormat(c.DefaultQuery("fmt", "csv"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentType, filename, data, err := cc.CarService.ExportCars(format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename=`+filename)
	c.Data(http.StatusOK, contentType, data)
}
