package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/jaychung003/food-tracker/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SampleDataService seeds a realistic two-month log so the analysis pipeline
// can be exercised without real data. Dev tooling only.
type SampleDataService struct {
	db      *gorm.DB
	entries *EntryService
}

func NewSampleDataService(db *gorm.DB) *SampleDataService {
	return &SampleDataService{db: db, entries: NewEntryService(db)}
}

type SampleDataReport struct {
	FoodEntries    int `json:"food_entries"`
	SymptomEntries int `json:"symptom_entries"`
	DaysOfData     int `json:"days_of_data"`
}

type sampleMeal struct {
	dish        string
	ingredients []string
	triggers    []string
}

var sampleMeals = []sampleMeal{
	{"Oatmeal with milk", []string{"oats", "milk"}, []string{"dairy"}},
	{"Toast with jam", []string{"wheat bread", "jam"}, []string{"gluten"}},
	{"Grilled chicken salad", []string{"chicken", "spinach", "carrots"}, nil},
	{"Pasta with cheese", []string{"wheat pasta", "cheese", "garlic"}, []string{"gluten", "dairy", "fodmap"}},
	{"Bean and rice bowl", []string{"beans", "rice", "onions"}, []string{"fodmap"}},
	{"Apple slices", []string{"apples"}, []string{"fodmap"}},
	{"Scrambled eggs", []string{"eggs"}, nil},
	{"Quinoa bowl", []string{"quinoa", "sweet potato", "spinach"}, nil},
	{"Chicken sandwich", []string{"chicken", "wheat bread"}, []string{"gluten"}},
	{"Banana smoothie", []string{"banana", "milk"}, []string{"dairy"}},
}

// Generate writes ~60 days of plausible logs with imperfect coverage, biasing
// symptom severity upward on trigger-heavy days so correlations emerge.
func (s *SampleDataService) Generate(ctx context.Context, userID uint) (*SampleDataReport, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	end := time.Now()
	start := end.AddDate(0, 0, -60)

	report := &SampleDataReport{DaysOfData: 60}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if rng.Float64() < 0.25 {
			continue // skip some days for realistic coverage
		}

		mealsPerDay := rng.Intn(4) + 1
		var dayTriggers []string
		for meal := 0; meal < mealsPerDay; meal++ {
			mealTime := time.Date(day.Year(), day.Month(), day.Day(),
				7+meal*4+rng.Intn(3), rng.Intn(60), 0, 0, day.Location())

			chosen := sampleMeals[rng.Intn(len(sampleMeals))]
			entry := &models.FoodEntry{
				UserID:             userID,
				DishName:           chosen.dish,
				Ingredients:        datatypes.NewJSONSlice(chosen.ingredients),
				TriggerIngredients: datatypes.NewJSONSlice(chosen.triggers),
				Portion:            []string{"S", "M", "L"}[rng.Intn(3)],
				MealTime:           mealTime,
			}
			if err := s.entries.CreateFoodEntry(ctx, entry); err != nil {
				return nil, err
			}
			report.FoodEntries++
			dayTriggers = append(dayTriggers, chosen.triggers...)
		}

		symptomsPerDay := rng.Intn(4)
		for i := 0; i < symptomsPerDay; i++ {
			occurredAt := time.Date(day.Year(), day.Month(), day.Day(),
				9+rng.Intn(12), rng.Intn(60), 0, 0, day.Location())

			bristol := rng.Intn(7) + 1
			urgency := rng.Intn(4)
			blood := 0
			if rng.Float64() > 0.8 {
				blood = 1
			}
			pain := rng.Intn(4)

			// Legacy 1-10 severity: nudged up on trigger-heavy days.
			legacy := 1
			if len(dayTriggers) > 0 {
				legacy = 2 + len(dayTriggers)/2
			}
			if legacy > 10 {
				legacy = 10
			}

			entry := &models.SymptomEntry{
				UserID:          userID,
				BristolType:     bristol,
				Symptoms:        datatypes.NewJSONSlice([]string{}),
				Severity:        legacy,
				UrgencySeverity: urgency,
				BloodSeverity:   blood,
				PainSeverity:    pain,
				OccurredAt:      occurredAt,
			}
			if err := s.entries.CreateSymptomEntry(ctx, entry); err != nil {
				return nil, err
			}
			report.SymptomEntries++
		}
	}
	return report, nil
}
