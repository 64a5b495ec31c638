package models

import (
	"time"

	"gorm.io/gorm"
)

// Derived analysis tables. Every row below is recomputed wholesale from
// FoodEntry + SymptomEntry on each analysis run and must never be hand-edited.

// DayCoverage estimates how completely a calendar day was logged. Only days
// meeting the coverage threshold are stored; excluded days have no row.
type DayCoverage struct {
	gorm.Model
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	Date          time.Time `gorm:"index;not null" json:"date"` // truncated to YYYY-MM-DD
	MealCoverage  int       `json:"meal_coverage"`              // percent, capped at 100
	BMCoverage    int       `json:"bm_coverage"`                // percent, capped at 100
	TotalCoverage int       `json:"total_coverage"`             // rounded mean of the two
}

// MealSymptomLink records that a symptom occurred within a lag window after a
// meal. One symptom may link to many meals and vice versa.
type MealSymptomLink struct {
	gorm.Model
	UserID          uint `gorm:"index;not null" json:"user_id"`
	WindowHours     int  `gorm:"index;not null" json:"window_hours"`
	FoodEntryID     uint `gorm:"index;not null" json:"food_entry_id"`
	SymptomEntryID  uint `gorm:"index;not null" json:"symptom_entry_id"`
	TimeDiffMinutes int  `json:"time_diff_minutes"`
}

// DailyWindowSeverity aggregates linked symptom severity per valid day and
// window. Days with zero linked symptoms have no row.
type DailyWindowSeverity struct {
	gorm.Model
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	WindowHours int       `gorm:"index;not null" json:"window_hours"`
	SeveritySum float64   `json:"severity_sum"`
	SeverityMax float64   `json:"severity_max"`
	BMCount     int       `json:"bm_count"`
}

// TagExposure records, per valid day and window, whether a food tag was eaten
// that day and the day's severity apportioned evenly across that day's tags.
// Unexposed rows carry the same per-day share and serve as the tag's control
// sample.
type TagExposure struct {
	gorm.Model
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	Date          time.Time `gorm:"index;not null" json:"date"`
	Tag           string    `gorm:"index;not null" json:"tag"`
	WindowHours   int       `gorm:"index;not null" json:"window_hours"`
	Exposed       bool      `json:"exposed"`
	SeverityShare float64   `json:"severity_share"`
}
