package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FoodEntry is one logged meal. Immutable once created except for deletion.
type FoodEntry struct {
	gorm.Model
	UserID             uint                       `gorm:"index;not null" json:"user_id"`
	DishName           string                     `gorm:"not null" json:"dish_name"`
	Ingredients        datatypes.JSONSlice[string] `json:"ingredients"`
	TriggerIngredients datatypes.JSONSlice[string] `json:"trigger_ingredients"`
	Portion            string                     `json:"portion"` // "S" | "M" | "L"
	Notes              string                     `json:"notes,omitempty"`
	MealTime           time.Time                  `gorm:"index;not null" json:"meal_time"`
}
