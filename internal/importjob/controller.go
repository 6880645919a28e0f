package importjob

import (
	"errors"
	"net/http"
	"strconv"

	"vinfreak-api/internal/middlewares"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type JobController struct {
	JobService *JobService
}

func (jc *JobController) ListJobs(c *gin.Context) {
	jobs, err := jc.JobService.ListJobs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (jc *JobController) CancelJob(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	err = jc.JobService.Cancel(middlewares.Actor(c), c.ClientIP(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "import job not found"})
		case errors.Is(err, ErrNotCancellable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mutation failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "import job cancelled"})
}
