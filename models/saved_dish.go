package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SavedDish remembers a frequently logged dish so it can be re-logged in one tap.
type SavedDish struct {
	gorm.Model
	UserID             uint                        `gorm:"index;not null" json:"user_id"`
	DishName           string                      `gorm:"not null" json:"dish_name"`
	Ingredients        datatypes.JSONSlice[string] `json:"ingredients"`
	TriggerIngredients datatypes.JSONSlice[string] `json:"trigger_ingredients"`
	UseCount           int                         `json:"use_count"`
	LastUsedAt         time.Time                   `json:"last_used_at"`
}
