package services

import (
	"context"
	"strings"

	"github.com/jaychung003/food-tracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IngredientService struct{ db *gorm.DB }

func NewIngredientService(db *gorm.DB) *IngredientService { return &IngredientService{db: db} }

// Seed upserts the built-in catalog of common trigger ingredients. Safe to run
// on every startup.
func (s *IngredientService) Seed(ctx context.Context) error {
	common := []models.Ingredient{
		{Name: "wheat", Category: "gluten", IsTrigger: true, Description: "Contains gluten"},
		{Name: "barley", Category: "gluten", IsTrigger: true, Description: "Contains gluten"},
		{Name: "rye", Category: "gluten", IsTrigger: true, Description: "Contains gluten"},
		{Name: "milk", Category: "dairy", IsTrigger: true, Description: "Contains lactose"},
		{Name: "cheese", Category: "dairy", IsTrigger: true, Description: "Contains lactose"},
		{Name: "yogurt", Category: "dairy", IsTrigger: false, Description: "Lower lactose content"},
		{Name: "onions", Category: "fodmap", IsTrigger: true, Description: "High FODMAP"},
		{Name: "garlic", Category: "fodmap", IsTrigger: true, Description: "High FODMAP"},
		{Name: "apples", Category: "fodmap", IsTrigger: true, Description: "High FODMAP"},
		{Name: "beans", Category: "fodmap", IsTrigger: true, Description: "High FODMAP"},
		{Name: "rice", Category: "safe", IsTrigger: false, Description: "Generally well tolerated"},
		{Name: "chicken", Category: "protein", IsTrigger: false, Description: "Lean protein"},
		{Name: "carrots", Category: "vegetable", IsTrigger: false, Description: "Low FODMAP"},
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&common).Error
}

func (s *IngredientService) List(ctx context.Context) ([]models.Ingredient, error) {
	var out []models.Ingredient
	err := s.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (s *IngredientService) ListByCategory(ctx context.Context, category string) ([]models.Ingredient, error) {
	var out []models.Ingredient
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

func (s *IngredientService) Search(ctx context.Context, query string) ([]models.Ingredient, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var out []models.Ingredient
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

func (s *IngredientService) Create(ctx context.Context, ing *models.Ingredient) error {
	ing.Name = strings.ToLower(strings.TrimSpace(ing.Name))
	return s.db.WithContext(ctx).Create(ing).Error
}
