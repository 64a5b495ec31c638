package controllers

import (
	"net/http"
	"strings"

	"github.com/jaychung003/food-tracker/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Detector    *services.DetectorService
	Ingredients *services.IngredientService
}

func NewFoodController(detector *services.DetectorService, ingredients *services.IngredientService) *FoodController {
	return &FoodController{Detector: detector, Ingredients: ingredients}
}

// AnalyzeDish guesses ingredients and triggers for a dish name. Detector
// failures degrade to keyword matches, so this endpoint never 5xxes on AI
// trouble.
func (h *FoodController) AnalyzeDish(c *gin.Context) {
	var body struct {
		DishName string `json:"dishName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dish name is required"})
		return
	}
	c.JSON(http.StatusOK, h.Detector.AnalyzeDish(strings.TrimSpace(body.DishName)))
}

func (h *FoodController) AnalyzeTriggers(c *gin.Context) {
	var body struct {
		Ingredients []string `json:"ingredients" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients array is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"triggerIngredients": h.Detector.AnalyzeTriggers(body.Ingredients)})
}

func (h *FoodController) ListIngredients(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		out, err := h.Ingredients.ListByCategory(c.Request.Context(), category)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients"})
			return
		}
		c.JSON(http.StatusOK, out)
		return
	}
	out, err := h.Ingredients.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *FoodController) SearchIngredients(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}
	out, err := h.Ingredients.Search(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search ingredients"})
		return
	}
	c.JSON(http.StatusOK, out)
}
