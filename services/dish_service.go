package services

import (
	"context"
	"time"

	"github.com/jaychung003/food-tracker/models"

	"gorm.io/gorm"
)

type SavedDishService struct{ db *gorm.DB }

func NewSavedDishService(db *gorm.DB) *SavedDishService { return &SavedDishService{db: db} }

func (s *SavedDishService) List(ctx context.Context, userID uint) ([]models.SavedDish, error) {
	var dishes []models.SavedDish
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("use_count DESC, last_used_at DESC").
		Find(&dishes).Error
	return dishes, err
}

func (s *SavedDishService) Create(ctx context.Context, dish *models.SavedDish) error {
	if dish.LastUsedAt.IsZero() {
		dish.LastUsedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(dish).Error
}

// MarkUsed bumps the usage counter when a saved dish is re-logged.
func (s *SavedDishService) MarkUsed(ctx context.Context, userID, dishID uint) error {
	res := s.db.WithContext(ctx).
		Model(&models.SavedDish{}).
		Where("id = ? AND user_id = ?", dishID, userID).
		Updates(map[string]any{
			"use_count":    gorm.Expr("use_count + 1"),
			"last_used_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *SavedDishService) Delete(ctx context.Context, userID, dishID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", dishID, userID).
		Delete(&models.SavedDish{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
