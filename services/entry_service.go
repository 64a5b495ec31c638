package services

import (
	"context"
	"time"

	"github.com/jaychung003/food-tracker/models"

	"gorm.io/gorm"
)

// EntryService is the raw-entry store: food and symptom logs, owner-scoped.
type EntryService struct{ db *gorm.DB }

func NewEntryService(db *gorm.DB) *EntryService { return &EntryService{db: db} }

// ---------- Food entries ----------

func (s *EntryService) CreateFoodEntry(ctx context.Context, entry *models.FoodEntry) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *EntryService) ListFoodEntries(ctx context.Context, userID uint) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("meal_time DESC").
		Find(&entries).Error
	return entries, err
}

func (s *EntryService) ListFoodEntriesByDateRange(ctx context.Context, userID uint, from, to time.Time) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND meal_time >= ? AND meal_time <= ?", userID, from, to).
		Order("meal_time DESC").
		Find(&entries).Error
	return entries, err
}

// DeleteFoodEntry removes an entry iff it belongs to userID. Returns
// gorm.ErrRecordNotFound when nothing matched.
func (s *EntryService) DeleteFoodEntry(ctx context.Context, userID, entryID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.FoodEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ---------- Symptom entries ----------

func (s *EntryService) CreateSymptomEntry(ctx context.Context, entry *models.SymptomEntry) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *EntryService) ListSymptomEntries(ctx context.Context, userID uint) ([]models.SymptomEntry, error) {
	var entries []models.SymptomEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Find(&entries).Error
	return entries, err
}

func (s *EntryService) ListSymptomEntriesByDateRange(ctx context.Context, userID uint, from, to time.Time) ([]models.SymptomEntry, error) {
	var entries []models.SymptomEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND occurred_at >= ? AND occurred_at <= ?", userID, from, to).
		Order("occurred_at DESC").
		Find(&entries).Error
	return entries, err
}

func (s *EntryService) DeleteSymptomEntry(ctx context.Context, userID, entryID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.SymptomEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
