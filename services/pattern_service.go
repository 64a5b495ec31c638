package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

// PatternService is the legacy single-window trigger analysis: for each
// declared trigger ingredient, what share of symptoms followed it within 24
// hours. It predates the multi-window engine and backs the recommendation
// text; the engine in CorrelationService is the statistical source of truth.
type PatternService struct {
	entries *EntryService
}

func NewPatternService(db *gorm.DB) *PatternService {
	return &PatternService{entries: NewEntryService(db)}
}

type TriggerPattern struct {
	Ingredient      string  `json:"ingredient"`
	Correlation     float64 `json:"correlation"` // percent, capped at 95
	AverageSeverity float64 `json:"average_severity"`
	Occurrences     int     `json:"occurrences"`
}

type PatternAnalysis struct {
	Patterns       []TriggerPattern `json:"patterns"`
	TotalDays      int              `json:"total_days"`
	FoodEntries    int              `json:"food_entries"`
	SymptomEntries int              `json:"symptom_entries"`
}

const patternWindow = 24 * time.Hour

func (s *PatternService) Analyze(ctx context.Context, userID uint, days int) (*PatternAnalysis, error) {
	if days <= 0 {
		days = 7
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

	type bucket struct {
		count    int
		severity int
	}
	correlations := map[string]*bucket{}

	for _, symptom := range symptoms {
		for _, food := range foods {
			diff := symptom.OccurredAt.Sub(food.MealTime)
			if diff < 0 || diff > patternWindow {
				continue
			}
			for _, trigger := range food.TriggerIngredients {
				b := correlations[trigger]
				if b == nil {
					b = &bucket{}
					correlations[trigger] = b
				}
				b.count++
				b.severity += symptom.Severity
			}
		}
	}

	patterns := make([]TriggerPattern, 0, len(correlations))
	for trigger, b := range correlations {
		denom := len(symptoms)
		if denom < 1 {
			denom = 1
		}
		patterns = append(patterns, TriggerPattern{
			Ingredient:      trigger,
			Correlation:     math.Min(95, float64(b.count)/float64(denom)*100),
			AverageSeverity: round2(float64(b.severity) / float64(b.count)),
			Occurrences:     b.count,
		})
	}
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Correlation != patterns[j].Correlation {
			return patterns[i].Correlation > patterns[j].Correlation
		}
		return patterns[i].Ingredient < patterns[j].Ingredient
	})

	return &PatternAnalysis{
		Patterns:       patterns,
		TotalDays:      days,
		FoodEntries:    len(foods),
		SymptomEntries: len(symptoms),
	}, nil
}

// Recommendations renders the static, pre-authored advisory strings gated on
// correlation thresholds: >70% high risk, 40-70% monitor. This is
// presentation logic on top of the numbers, not part of the engine.
func Recommendations(analysis *PatternAnalysis) []string {
	var recs []string

	var high, medium []TriggerPattern
	for _, p := range analysis.Patterns {
		switch {
		case p.Correlation > 70:
			high = append(high, p)
		case p.Correlation > 40:
			medium = append(medium, p)
		}
	}

	if len(high) > 0 {
		top := high[0]
		recs = append(recs, fmt.Sprintf(
			"Consider eliminating %s for 2-4 weeks to confirm sensitivity (%d%% correlation)",
			top.Ingredient, int(math.Round(top.Correlation))))
	}
	if len(medium) > 0 {
		names := make([]string, 0, len(medium))
		for _, p := range medium {
			names = append(names, p.Ingredient)
		}
		recs = append(recs, fmt.Sprintf("Monitor your intake of %s more closely", strings.Join(names, ", ")))
	}

	for _, p := range analysis.Patterns {
		if strings.Contains(strings.ToLower(p.Ingredient), "dairy") {
			recs = append(recs, "Try lactose-free alternatives if dairy appears problematic")
			break
		}
	}
	for _, p := range analysis.Patterns {
		if strings.Contains(strings.ToLower(p.Ingredient), "gluten") {
			recs = append(recs, "Consider a gluten-free trial period")
			break
		}
	}

	if analysis.SymptomEntries > 0 && len(analysis.Patterns) > 0 {
		recs = append(recs, "Share this analysis with your healthcare provider for professional guidance")
	}

	if len(recs) == 0 {
		recs = append(recs,
			"Continue consistent logging to identify patterns over time",
			"Consider keeping portion sizes and meal timing consistent for better analysis")
	}
	return recs
}
