package importer

import (
	"net/http"
	"path/filepath"
	"strings"

	"vinfreak-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type ImportController struct {
	ImportService *ImportService
}

// BulkImport is the scraper's batch endpoint. Anything other than a JSON
// array is rejected before any row is touched.
func (ic *ImportController) BulkImport(c *gin.Context) {
	var records []RawRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected a JSON array of listings"})
		return
	}

	report, err := ic.ImportService.ImportJSON(c.ClientIP(), records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// UploadImport handles the admin spreadsheet upload, dispatching on the
// file extension.
func (ic *ImportController) UploadImport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer src.Close()

	actor := middlewares.Actor(c)
	var report *ImportReport
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		report, err = ic.ImportService.ImportCSV(actor, c.ClientIP(), src)
	case ".xlsx":
		report, err = ic.ImportService.ImportXLSX(actor, c.ClientIP(), src)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type, expected .csv or .xlsx"})
		return
	}
	if err != nil {
		if err == ErrEmptyFile {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file has no data rows"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}
