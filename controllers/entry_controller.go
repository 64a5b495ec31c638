package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jaychung003/food-tracker/models"
	"github.com/jaychung003/food-tracker/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EntryController struct {
	Svc *services.EntryService
}

func NewEntryController(svc *services.EntryService) *EntryController {
	return &EntryController{Svc: svc}
}

// ---------- Food entries ----------

type foodEntryRequest struct {
	DishName           string    `json:"dish_name" binding:"required"`
	Ingredients        []string  `json:"ingredients"`
	TriggerIngredients []string  `json:"trigger_ingredients"`
	Portion            string    `json:"portion"`
	Notes              string    `json:"notes"`
	MealTime           time.Time `json:"meal_time" binding:"required"`
}

func (h *EntryController) CreateFoodEntry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var body foodEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry := &models.FoodEntry{
		UserID:             userID,
		DishName:           body.DishName,
		Ingredients:        datatypes.NewJSONSlice(body.Ingredients),
		TriggerIngredients: datatypes.NewJSONSlice(body.TriggerIngredients),
		Portion:            body.Portion,
		Notes:              body.Notes,
		MealTime:           body.MealTime,
	}
	if err := h.Svc.CreateFoodEntry(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create food entry"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *EntryController) ListFoodEntries(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	entries, err := h.Svc.ListFoodEntries(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch food entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *EntryController) ListFoodEntriesByRange(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	from, to, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entries, err := h.Svc.ListFoodEntriesByDateRange(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch food entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *EntryController) DeleteFoodEntry(c *gin.Context) {
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
	if err := h.Svc.DeleteFoodEntry(c.Request.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete food entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "food entry deleted"})
}

// ---------- Symptom entries ----------

type symptomEntryRequest struct {
	BristolType     int       `json:"bristol_type" binding:"required,min=1,max=7"`
	Symptoms        []string  `json:"symptoms"`
	Severity        int       `json:"severity" binding:"omitempty,min=1,max=10"`
	UrgencySeverity int       `json:"urgency_severity" binding:"omitempty,min=0,max=3"`
	BloodSeverity   int       `json:"blood_severity" binding:"omitempty,min=0,max=3"`
	PainSeverity    int       `json:"pain_severity" binding:"omitempty,min=0,max=3"`
	Notes           string    `json:"notes"`
	OccurredAt      time.Time `json:"occurred_at" binding:"required"`
}

func (h *EntryController) CreateSymptomEntry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var body symptomEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry := &models.SymptomEntry{
		UserID:          userID,
		BristolType:     body.BristolType,
		Symptoms:        datatypes.NewJSONSlice(body.Symptoms),
		Severity:        body.Severity,
		UrgencySeverity: body.UrgencySeverity,
		BloodSeverity:   body.BloodSeverity,
		PainSeverity:    body.PainSeverity,
		Notes:           body.Notes,
		OccurredAt:      body.OccurredAt,
	}
	if err := h.Svc.CreateSymptomEntry(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create symptom entry"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *EntryController) ListSymptomEntries(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	entries, err := h.Svc.ListSymptomEntries(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch symptom entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *EntryController) ListSymptomEntriesByRange(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	from, to, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entries, err := h.Svc.ListSymptomEntriesByDateRange(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch symptom entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *EntryController) DeleteSymptomEntry(c *gin.Context) {
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
	if err := h.Svc.DeleteSymptomEntry(c.Request.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "symptom entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete symptom entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "symptom entry deleted"})
}

func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, errors.New("startDate and endDate are required")
	}
	from, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid startDate")
	}
	to, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid endDate")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("endDate must be on/after startDate")
	}
	return from, to, nil
}
