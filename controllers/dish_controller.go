package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jaychung003/food-tracker/models"
	"github.com/jaychung003/food-tracker/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DishController struct {
	Svc *services.SavedDishService
}

func NewDishController(svc *services.SavedDishService) *DishController {
	return &DishController{Svc: svc}
}

func (h *DishController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	dishes, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch saved dishes"})
		return
	}
	c.JSON(http.StatusOK, dishes)
}

func (h *DishController) Create(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var body struct {
		DishName           string   `json:"dish_name" binding:"required"`
		Ingredients        []string `json:"ingredients"`
		TriggerIngredients []string `json:"trigger_ingredients"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dish := &models.SavedDish{
		UserID:             userID,
		DishName:           body.DishName,
		Ingredients:        datatypes.NewJSONSlice(body.Ingredients),
		TriggerIngredients: datatypes.NewJSONSlice(body.TriggerIngredients),
	}
	if err := h.Svc.Create(c.Request.Context(), dish); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create saved dish"})
		return
	}
	c.JSON(http.StatusCreated, dish)
}

func (h *DishController) MarkUsed(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Svc.MarkUsed(c.Request.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "saved dish not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update saved dish"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "saved dish usage updated"})
}

func (h *DishController) Delete(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "saved dish not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete saved dish"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "saved dish deleted"})
}
