package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jaychung003/food-tracker/models"

	"gorm.io/gorm"
)

// ExportService bundles a user's raw entries for download.
type ExportService struct {
	entries *EntryService
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{entries: NewEntryService(db)}
}

type ExportBundle struct {
	ExportDate time.Time `json:"export_date"`
	DateRange  struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	} `json:"date_range"`
	FoodEntries    []models.FoodEntry    `json:"food_entries"`
	SymptomEntries []models.SymptomEntry `json:"symptom_entries"`
}

func (s *ExportService) Bundle(ctx context.Context, userID uint, days int) (*ExportBundle, error) {
	if days <= 0 {
		days = 30
	}
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	foods, err := s.entries.ListFoodEntriesByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	symptoms, err := s.entries.ListSymptomEntriesByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	out := &ExportBundle{ExportDate: time.Now(), FoodEntries: foods, SymptomEntries: symptoms}
	out.DateRange.Start = start
	out.DateRange.End = end
	return out, nil
}

// WriteCSV streams the bundle as a flat CSV timeline.
func (s *ExportService) WriteCSV(w io.Writer, bundle *ExportBundle) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Type", "Date", "Name/Description", "Details"}); err != nil {
		return err
	}
	for _, entry := range bundle.FoodEntries {
		if err := cw.Write([]string{
			"Food",
			entry.MealTime.Format(time.RFC3339),
			entry.DishName,
			strings.Join(entry.Ingredients, ", "),
		}); err != nil {
			return err
		}
	}
	for _, entry := range bundle.SymptomEntries {
		if err := cw.Write([]string{
			"Symptom",
			entry.OccurredAt.Format(time.RFC3339),
			fmt.Sprintf("Bristol Type %d", entry.BristolType),
			fmt.Sprintf("Severity: %d, Symptoms: %s", entry.Severity, strings.Join(entry.Symptoms, ", ")),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
