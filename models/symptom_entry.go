package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SymptomEntry is one logged bowel-movement/symptom event.
// Immutable once created except for deletion.
type SymptomEntry struct {
	gorm.Model
	UserID      uint                        `gorm:"index;not null" json:"user_id"`
	BristolType int                         `gorm:"not null" json:"bristol_type"` // 1-7
	Symptoms    datatypes.JSONSlice[string] `json:"symptoms"`

	// Severity is the legacy 1-10 overall rating. Kept for old clients;
	// the correlation engine works from the sub-severities below.
	Severity int `json:"severity"`

	UrgencySeverity int `json:"urgency_severity"` // 0-3
	BloodSeverity   int `json:"blood_severity"`   // semantically 0/1, column allows 0-3
	PainSeverity    int `json:"pain_severity"`    // 0-3

	Notes      string    `json:"notes,omitempty"`
	OccurredAt time.Time `gorm:"index;not null" json:"occurred_at"`
}
