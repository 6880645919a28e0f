package settings

import (
	"errors"
	"net/http"

	"vinfreak-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	SettingsService *SettingsService
}

// PublicSettings backs the site frontend; same payload as the admin read.
func (sc *SettingsController) PublicSettings(c *gin.Context) {
	values, err := sc.SettingsService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, values)
}

func (sc *SettingsController) GetSettings(c *gin.Context) {
	values, err := sc.SettingsService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": values})
}

func (sc *SettingsController) SaveSettings(c *gin.Context) {
	var input SaveSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := sc.SettingsService.SaveSettings(middlewares.Actor(c), c.ClientIP(), input.Values)
	if err != nil {
		if errors.Is(err, ErrUnknownKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mutation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "settings saved"})
}
