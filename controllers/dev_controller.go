package controllers

import (
	"net/http"

	"github.com/jaychung003/food-tracker/services"

	"github.com/gin-gonic/gin"
)

// DevController hosts local-development helpers: sample-data seeding and CSV
// import. Not meant for production traffic.
type DevController struct {
	Samples  *services.SampleDataService
	Importer *services.CSVImportService
}

func NewDevController(samples *services.SampleDataService, importer *services.CSVImportService) *DevController {
	return &DevController{Samples: samples, Importer: importer}
}

func (h *DevController) GenerateSampleData(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	report, err := h.Samples.Generate(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate sample data"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// ImportCSV accepts multipart form files "food" and/or "symptoms".
func (h *DevController) ImportCSV(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	report := services.ImportReport{}
	imported := false

	if file, err := c.FormFile("food"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open food csv"})
			return
		}
		defer f.Close()
		if err := h.Importer.ImportFoodEntries(c.Request.Context(), userID, f, &report); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		imported = true
	}

	if file, err := c.FormFile("symptoms"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open symptoms csv"})
			return
		}
		defer f.Close()
		if err := h.Importer.ImportSymptomEntries(c.Request.Context(), userID, f, &report); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		imported = true
	}

	if !imported {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide a 'food' and/or 'symptoms' csv file"})
		return
	}
	c.JSON(http.StatusOK, report)
}
