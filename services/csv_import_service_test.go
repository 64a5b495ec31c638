package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportFoodEntries(t *testing.T) {
	db := newTestDB(t)
	svc := NewCSVImportService(db)
	entries := NewEntryService(db)
	ctx := context.Background()

	input := strings.Join([]string{
		`dishName,ingredients,triggerIngredients,portion,notes,mealTime`,
		`Oatmeal,"[""oats"",""milk""]","[""dairy""]",M,breakfast,2026-08-01T08:00:00Z`,
		`Rice Bowl,"[""rice""]",,,,2026-08-01T12:30:00Z`,
		`Broken Row,"[""x""]",,,,not-a-timestamp`,
	}, "\n")

	var report ImportReport
	require.NoError(t, svc.ImportFoodEntries(ctx, 1, strings.NewReader(input), &report))
	assert.Equal(t, 2, report.FoodEntries)
	assert.Equal(t, 1, report.SkippedRows)

	stored, err := entries.ListFoodEntries(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Rice Bowl", stored[0].DishName) // meal_time DESC
	assert.Equal(t, "M", stored[0].Portion)          // blank portion defaults
	assert.Equal(t, []string{"oats", "milk"}, []string(stored[1].Ingredients))
	assert.Equal(t, []string{"dairy"}, []string(stored[1].TriggerIngredients))
}

func TestImportSymptomEntries(t *testing.T) {
	db := newTestDB(t)
	svc := NewCSVImportService(db)
	entries := NewEntryService(db)
	ctx := context.Background()

	input := strings.Join([]string{
		`bristolType,symptoms,severity,urgencySeverity,bloodSeverity,painSeverity,notes,occurredAt`,
		`6,"[""bloating""]",7,2,0,1,after lunch,2026-08-01T15:00:00Z`,
		`not-a-number,[],1,0,0,0,,2026-08-01T16:00:00Z`,
		`4,[],2,0,0,0,,bad-time`,
	}, "\n")

	var report ImportReport
	require.NoError(t, svc.ImportSymptomEntries(ctx, 1, strings.NewReader(input), &report))
	assert.Equal(t, 1, report.SymptomEntries)
	assert.Equal(t, 2, report.SkippedRows)

	stored, err := entries.ListSymptomEntries(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 6, stored[0].BristolType)
	assert.Equal(t, 2, stored[0].UrgencySeverity)
	assert.Equal(t, []string{"bloating"}, []string(stored[0].Symptoms))
}

func TestImportEmptyCSV(t *testing.T) {
	db := newTestDB(t)
	svc := NewCSVImportService(db)

	var report ImportReport
	require.NoError(t, svc.ImportFoodEntries(context.Background(), 1, strings.NewReader(""), &report))
	assert.Zero(t, report.FoodEntries)
	assert.Zero(t, report.SkippedRows)
}
