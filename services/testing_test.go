package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jaychung003/food-tracker/config"
	"github.com/jaychung003/food-tracker/models"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory SQLite database with the full schema.
// The shared-cache DSN keeps every pooled connection pointed at the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func seedMeal(t *testing.T, db *gorm.DB, userID uint, at time.Time, dish string, ingredients, triggers []string) models.FoodEntry {
	t.Helper()
	entry := models.FoodEntry{
		UserID:             userID,
		DishName:           dish,
		Ingredients:        datatypes.NewJSONSlice(ingredients),
		TriggerIngredients: datatypes.NewJSONSlice(triggers),
		Portion:            "M",
		MealTime:           at,
	}
	require.NoError(t, db.Create(&entry).Error)
	return entry
}

func seedSymptom(t *testing.T, db *gorm.DB, userID uint, at time.Time, bristol, urgency, blood, pain int) models.SymptomEntry {
	t.Helper()
	entry := models.SymptomEntry{
		UserID:          userID,
		BristolType:     bristol,
		UrgencySeverity: urgency,
		BloodSeverity:   blood,
		PainSeverity:    pain,
		OccurredAt:      at,
	}
	require.NoError(t, db.Create(&entry).Error)
	return entry
}
