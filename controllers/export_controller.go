package controllers

import (
	"net/http"

	"github.com/jaychung003/food-tracker/services"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	Svc *services.ExportService
}

func NewExportController(svc *services.ExportService) *ExportController {
	return &ExportController{Svc: svc}
}

// Export returns the user's raw logs as JSON (default) or CSV.
func (h *ExportController) Export(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	bundle, err := h.Svc.Bundle(c.Request.Context(), userID, intQuery(c, "days", 30))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export data"})
		return
	}

	if c.DefaultQuery("format", "json") == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="digesttrack-export.csv"`)
		if err := h.Svc.WriteCSV(c.Writer, bundle); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export data"})
		}
		return
	}
	c.JSON(http.StatusOK, bundle)
}
