package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportBundleAndCSV(t *testing.T) {
	db := newTestDB(t)
	svc := NewExportService(db)
	ctx := context.Background()

	seedMeal(t, db, 1, time.Now().Add(-24*time.Hour), "Oatmeal", []string{"oats", "milk"}, []string{"dairy"})
	seedSymptom(t, db, 1, time.Now().Add(-20*time.Hour), 6, 1, 0, 2)
	// Outside the 30-day range: excluded.
	seedMeal(t, db, 1, time.Now().AddDate(0, 0, -45), "Old Meal", nil, nil)

	bundle, err := svc.Bundle(ctx, 1, 30)
	require.NoError(t, err)
	assert.Len(t, bundle.FoodEntries, 1)
	assert.Len(t, bundle.SymptomEntries, 1)
	assert.True(t, bundle.DateRange.Start.Before(bundle.DateRange.End))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(&buf, bundle))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + one row per entry
	assert.Equal(t, []string{"Type", "Date", "Name/Description", "Details"}, records[0])
	assert.Equal(t, "Food", records[1][0])
	assert.Equal(t, "Oatmeal", records[1][2])
	assert.Equal(t, "oats, milk", records[1][3])
	assert.Equal(t, "Symptom", records[2][0])
	assert.Equal(t, "Bristol Type 6", records[2][2])
}
