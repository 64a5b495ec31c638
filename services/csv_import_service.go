package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jaychung003/food-tracker/models"
	"github.com/jaychung003/food-tracker/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CSVImportService loads food and symptom logs from CSV exports. Rows that
// fail to parse are skipped and counted, matching the forgiving importer the
// app has always shipped with.
type CSVImportService struct {
	db      *gorm.DB
	entries *EntryService
}

func NewCSVImportService(db *gorm.DB) *CSVImportService {
	return &CSVImportService{db: db, entries: NewEntryService(db)}
}

type ImportReport struct {
	FoodEntries    int `json:"food_entries"`
	SymptomEntries int `json:"symptom_entries"`
	SkippedRows    int `json:"skipped_rows"`
}

// ImportFoodEntries expects columns: dishName, ingredients (JSON array),
// triggerIngredients (JSON array), mealTime (RFC3339).
func (s *CSVImportService) ImportFoodEntries(ctx context.Context, userID uint, r io.Reader, report *ImportReport) error {
	rows, err := readCSVRecords(r)
	if err != nil {
		return err
	}
	for _, row := range rows {
		mealTime, err := time.Parse(time.RFC3339, row["mealTime"])
		if err != nil {
			utils.Log().Warnw("skipping food row with bad mealTime", "value", row["mealTime"])
			report.SkippedRows++
			continue
		}
		var ingredients, triggers []string
		if err := json.Unmarshal([]byte(orDefault(row["ingredients"], "[]")), &ingredients); err != nil {
			report.SkippedRows++
			continue
		}
		if err := json.Unmarshal([]byte(orDefault(row["triggerIngredients"], "[]")), &triggers); err != nil {
			report.SkippedRows++
			continue
		}
		entry := &models.FoodEntry{
			UserID:             userID,
			DishName:           row["dishName"],
			Ingredients:        datatypes.NewJSONSlice(ingredients),
			TriggerIngredients: datatypes.NewJSONSlice(triggers),
			Portion:            orDefault(row["portion"], "M"),
			Notes:              row["notes"],
			MealTime:           mealTime,
		}
		if err := s.entries.CreateFoodEntry(ctx, entry); err != nil {
			return err
		}
		report.FoodEntries++
	}
	return nil
}

// ImportSymptomEntries expects columns: bristolType, symptoms (JSON array),
// severity, urgencySeverity, bloodSeverity, painSeverity, occurredAt, notes.
func (s *CSVImportService) ImportSymptomEntries(ctx context.Context, userID uint, r io.Reader, report *ImportReport) error {
	rows, err := readCSVRecords(r)
	if err != nil {
		return err
	}
	for _, row := range rows {
		occurredAt, err := time.Parse(time.RFC3339, row["occurredAt"])
		if err != nil {
			report.SkippedRows++
			continue
		}
		bristol, err := strconv.Atoi(row["bristolType"])
		if err != nil {
			report.SkippedRows++
			continue
		}
		var symptoms []string
		if err := json.Unmarshal([]byte(orDefault(row["symptoms"], "[]")), &symptoms); err != nil {
			report.SkippedRows++
			continue
		}
		entry := &models.SymptomEntry{
			UserID:          userID,
			BristolType:     bristol,
			Symptoms:        datatypes.NewJSONSlice(symptoms),
			Severity:        atoiOrZero(row["severity"]),
			UrgencySeverity: atoiOrZero(row["urgencySeverity"]),
			BloodSeverity:   atoiOrZero(row["bloodSeverity"]),
			PainSeverity:    atoiOrZero(row["painSeverity"]),
			Notes:           row["notes"],
			OccurredAt:      occurredAt,
		}
		if err := s.entries.CreateSymptomEntry(ctx, entry); err != nil {
			return err
		}
		report.SymptomEntries++
	}
	return nil
}

func readCSVRecords(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(headers) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			row[header] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func atoiOrZero(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}
