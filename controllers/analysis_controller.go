package controllers

import (
	"net/http"
	"strings"

	"github.com/jaychung003/food-tracker/services"

	"github.com/gin-gonic/gin"
)

type AnalysisController struct {
	Correlations *services.CorrelationService
	Patterns     *services.PatternService
}

func NewAnalysisController(correlations *services.CorrelationService, patterns *services.PatternService) *AnalysisController {
	return &AnalysisController{Correlations: correlations, Patterns: patterns}
}

// RunCorrelations triggers a full derived-table regeneration plus the
// multi-window correlation computation. Settings validation failures return
// 400 before anything is written.
func (h *AnalysisController) RunCorrelations(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	settings := services.DefaultCorrelationSettings()
	if c.Request.ContentLength > 0 {
		settings = services.CorrelationAnalysisSettings{}
		if err := c.ShouldBindJSON(&settings); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	analysis, err := h.Correlations.Run(c.Request.Context(), userID, settings)
	if err != nil {
		if strings.HasPrefix(err.Error(), "analysis failed") {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *AnalysisController) GetCoverage(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	report, err := h.Correlations.Coverage(c.Request.Context(), userID, intQuery(c, "days", 90))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch coverage"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AnalysisController) GetPatterns(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	analysis, err := h.Patterns.Analyze(c.Request.Context(), userID, intQuery(c, "days", 7))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze patterns"})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *AnalysisController) GetRecommendations(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	analysis, err := h.Patterns.Analyze(c.Request.Context(), userID, intQuery(c, "days", 7))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze patterns"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": services.Recommendations(analysis)})
}
