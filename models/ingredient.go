package models

import "gorm.io/gorm"

// Ingredient is a catalog entry for known ingredients and whether they are
// common gut triggers.
type Ingredient struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Category    string `json:"category"` // 'gluten', 'dairy', 'fodmap', ...
	IsTrigger   bool   `json:"is_trigger"`
	Description string `json:"description"`
}
