package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jaychung003/food-tracker/models"
	"github.com/jaychung003/food-tracker/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reliability tiers. Sample-size heuristic only: no variance or
// confidence-interval math happens anywhere in this engine.
const (
	ReliabilityHigh   = "High"
	ReliabilityMedium = "Medium"
	ReliabilityLow    = "Low"
)

const (
	// DefaultCoverageThreshold is the minimum total coverage percent for a
	// day to take part in analysis.
	DefaultCoverageThreshold = 70
	// DefaultMinExposures is the minimum exposed-day count for a tag/window
	// pair to be trusted at all.
	DefaultMinExposures = 3

	expectedMealsPerDay    = 3
	expectedSymptomsPerDay = 1
	coverageLookbackDays   = 90

	// coOccurrenceFraction is the minimum exposed-day overlap for another tag
	// to be surfaced as a co-occurring confound.
	coOccurrenceFraction = 0.5
)

// DefaultWindows are the lag windows considered when the caller provides none.
var DefaultWindows = []int{6, 24, 48}

// CorrelationAnalysisSettings controls one analysis run.
type CorrelationAnalysisSettings struct {
	Windows []int `json:"windows"` // lag windows in hours

	// Aggregation is reserved for a max-based variant; the engine currently
	// always derives severity shares from daily sums.
	Aggregation string `json:"aggregation"` // "sum" | "max"

	CoverageThreshold int `json:"coverage_threshold"` // percent
	MinExposures      int `json:"min_exposures"`
}

func DefaultCorrelationSettings() CorrelationAnalysisSettings {
	return CorrelationAnalysisSettings{
		Windows:           append([]int(nil), DefaultWindows...),
		Aggregation:       "sum",
		CoverageThreshold: DefaultCoverageThreshold,
		MinExposures:      DefaultMinExposures,
	}
}

// Normalize fills unset fields with defaults. A nil Windows slice means "not
// provided"; an explicit empty list is left alone so Validate can reject it.
func (s *CorrelationAnalysisSettings) Normalize() {
	if s.Windows == nil {
		s.Windows = append([]int(nil), DefaultWindows...)
	}
	if s.Aggregation == "" {
		s.Aggregation = "sum"
	}
	if s.CoverageThreshold == 0 {
		s.CoverageThreshold = DefaultCoverageThreshold
	}
	if s.MinExposures == 0 {
		s.MinExposures = DefaultMinExposures
	}
}

// Validate fails fast, before any derived-table write.
func (s CorrelationAnalysisSettings) Validate() error {
	if len(s.Windows) == 0 {
		return errors.New("windows list must not be empty")
	}
	for _, w := range s.Windows {
		if w <= 0 {
			return fmt.Errorf("window must be positive, got %d", w)
		}
	}
	if s.Aggregation != "sum" && s.Aggregation != "max" {
		return fmt.Errorf("aggregation must be 'sum' or 'max', got %q", s.Aggregation)
	}
	if s.CoverageThreshold <= 0 || s.CoverageThreshold > 100 {
		return fmt.Errorf("coverage threshold must be in (0,100], got %d", s.CoverageThreshold)
	}
	if s.MinExposures < 1 {
		return fmt.Errorf("min exposures must be >= 1, got %d", s.MinExposures)
	}
	return nil
}

// WindowComparison summarizes how a non-primary window's effect relates to the
// primary window's.
type WindowComparison struct {
	WindowHours int     `json:"window_hours"`
	Effect      float64 `json:"effect"`
	Relation    string  `json:"relation"` // higher|lower|similar|unclear
}

// TagCorrelationResult is the ranked output for one food tag.
type TagCorrelationResult struct {
	Tag             string             `json:"tag"`
	PrimaryWindow   int                `json:"primary_window"`
	Effect          float64            `json:"effect"`
	UpliftRatio     float64            `json:"uplift_ratio"`
	Reliability     string             `json:"reliability"`
	ExposureCount   int                `json:"exposure_count"`
	MeanExposed     float64            `json:"mean_exposed"`
	MeanControl     float64            `json:"mean_control"`
	OtherWindows    []WindowComparison `json:"other_windows"`
	CoOccurringTags []string           `json:"co_occurring_tags"`
}

// CorrelationAnalysis is the full result of one run.
type CorrelationAnalysis struct {
	RunID       string                      `json:"run_id"`
	Results     []TagCorrelationResult      `json:"results"`
	Settings    CorrelationAnalysisSettings `json:"settings"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

// CoverageReport is the answer to the coverage query entrypoint.
type CoverageReport struct {
	Days            []models.DayCoverage `json:"days"`
	ValidDays       int                  `json:"valid_days"`
	TotalDays       int                  `json:"total_days"`
	AverageCoverage float64              `json:"average_coverage"`
}

// CorrelationService owns the derivation pipeline: coverage -> links ->
// daily aggregates -> tag exposures -> ranked correlation results.
type CorrelationService struct {
	db    *gorm.DB
	locks sync.Map // userID -> *sync.Mutex
}

func NewCorrelationService(db *gorm.DB) *CorrelationService {
	return &CorrelationService{db: db}
}

func (s *CorrelationService) userLock(userID uint) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Run regenerates every derived table for the user and computes the ranked
// correlation results. At most one run per user executes at a time; runs for
// different users proceed independently. The rebuild happens inside one
// transaction so readers never observe half-regenerated state.
func (s *CorrelationService) Run(ctx context.Context, userID uint, settings CorrelationAnalysisSettings) (*CorrelationAnalysis, error) {
	settings.Normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	var exposures []models.TagExposure
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		exposures, txErr = s.regenerate(tx, userID, settings, time.Now())
		return txErr
	})
	if err != nil {
		utils.Log().Errorw("analysis regeneration failed", "user_id", userID, "err", err)
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	results := analyzeExposures(exposures, settings)
	return &CorrelationAnalysis{
		RunID:       uuid.NewString(),
		Results:     results,
		Settings:    settings,
		GeneratedAt: time.Now(),
	}, nil
}

// Coverage serves the coverage query entrypoint over the stored rows from the
// latest regeneration.
func (s *CorrelationService) Coverage(ctx context.Context, userID uint, lookbackDays int) (*CoverageReport, error) {
	if lookbackDays <= 0 {
		lookbackDays = coverageLookbackDays
	}
	since := utils.DayStart(time.Now().AddDate(0, 0, -lookbackDays))

	var days []models.DayCoverage
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}

	report := &CoverageReport{
		Days:      days,
		ValidDays: len(days),
		TotalDays: lookbackDays,
	}
	if len(days) > 0 {
		var sum float64
		for _, d := range days {
			sum += float64(d.TotalCoverage)
		}
		report.AverageCoverage = round2(sum / float64(len(days)))
	}
	return report, nil
}

// ---------- Derivation pipeline ----------

// dayState carries everything the pipeline knows about one valid calendar day.
type dayState struct {
	date  time.Time
	meals []models.FoodEntry
	tags  []string // distinct, normalized, sorted
}

func (s *CorrelationService) regenerate(tx *gorm.DB, userID uint, settings CorrelationAnalysisSettings, now time.Time) ([]models.TagExposure, error) {
	start := utils.DayStart(now.AddDate(0, 0, -coverageLookbackDays))

	var meals []models.FoodEntry
	if err := tx.
		Where("user_id = ? AND meal_time >= ? AND meal_time <= ?", userID, start, now).
		Order("meal_time ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	var symptoms []models.SymptomEntry
	if err := tx.
		Where("user_id = ? AND occurred_at >= ? AND occurred_at <= ?", userID, start, now).
		Order("occurred_at ASC").
		Find(&symptoms).Error; err != nil {
		return nil, err
	}

	coverage, validDays := computeCoverage(userID, meals, symptoms, start, now, settings.CoverageThreshold)

	days := buildDayStates(meals, validDays)

	var links []models.MealSymptomLink
	var severities []models.DailyWindowSeverity
	var exposures []models.TagExposure
	for _, window := range settings.Windows {
		windowLinks := linkMealsToSymptoms(userID, meals, symptoms, window)
		links = append(links, windowLinks...)

		daily := aggregateDailySeverity(userID, window, days, symptoms, windowLinks)
		severities = append(severities, daily...)

		exposures = append(exposures, deriveTagExposures(userID, window, days, daily)...)
	}

	// Replace-all: every derived row for the user is rebuilt each run.
	for _, model := range []any{
		&models.DayCoverage{}, &models.MealSymptomLink{},
		&models.DailyWindowSeverity{}, &models.TagExposure{},
	} {
		if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
			return nil, err
		}
	}
	if len(coverage) > 0 {
		if err := tx.CreateInBatches(&coverage, 200).Error; err != nil {
			return nil, err
		}
	}
	if len(links) > 0 {
		if err := tx.CreateInBatches(&links, 500).Error; err != nil {
			return nil, err
		}
	}
	if len(severities) > 0 {
		if err := tx.CreateInBatches(&severities, 200).Error; err != nil {
			return nil, err
		}
	}
	if len(exposures) > 0 {
		if err := tx.CreateInBatches(&exposures, 500).Error; err != nil {
			return nil, err
		}
	}
	return exposures, nil
}

// computeCoverage estimates logging completeness for every calendar day in
// [start, now] and keeps only days meeting the threshold. Denominators: 3
// expected meals and 1 expected symptom log per day.
func computeCoverage(userID uint, meals []models.FoodEntry, symptoms []models.SymptomEntry, start, now time.Time, threshold int) ([]models.DayCoverage, map[string]time.Time) {
	mealCounts := map[string]int{}
	for _, m := range meals {
		mealCounts[utils.DayKey(m.MealTime)]++
	}
	symptomCounts := map[string]int{}
	for _, e := range symptoms {
		symptomCounts[utils.DayKey(e.OccurredAt)]++
	}

	var rows []models.DayCoverage
	validDays := map[string]time.Time{}
	for d := start; !d.After(now); d = d.AddDate(0, 0, 1) {
		key := utils.DayKey(d)
		mealPct := capPct(float64(mealCounts[key]) / expectedMealsPerDay * 100)
		bmPct := capPct(float64(symptomCounts[key]) / expectedSymptomsPerDay * 100)
		total := int(math.Round((mealPct + bmPct) / 2))
		if total < threshold {
			continue // excluded days yield no record at all
		}
		rows = append(rows, models.DayCoverage{
			UserID:        userID,
			Date:          utils.DayStart(d),
			MealCoverage:  int(mealPct),
			BMCoverage:    int(bmPct),
			TotalCoverage: total,
		})
		validDays[key] = utils.DayStart(d)
	}
	return rows, validDays
}

// linkMealsToSymptoms emits a link for every (meal, symptom) pair where the
// symptom occurred within the lag window after the meal. No causal dedup.
func linkMealsToSymptoms(userID uint, meals []models.FoodEntry, symptoms []models.SymptomEntry, windowHours int) []models.MealSymptomLink {
	window := time.Duration(windowHours) * time.Hour
	var links []models.MealSymptomLink
	for _, meal := range meals {
		for _, symptom := range symptoms {
			delta := symptom.OccurredAt.Sub(meal.MealTime)
			if delta < 0 || delta > window {
				continue
			}
			links = append(links, models.MealSymptomLink{
				UserID:          userID,
				WindowHours:     windowHours,
				FoodEntryID:     meal.ID,
				SymptomEntryID:  symptom.ID,
				TimeDiffMinutes: int(delta.Minutes()),
			})
		}
	}
	return links
}

// buildDayStates groups meals by valid calendar day and computes each day's
// distinct tag set (ingredients and declared triggers share one namespace).
func buildDayStates(meals []models.FoodEntry, validDays map[string]time.Time) map[string]*dayState {
	days := map[string]*dayState{}
	for _, meal := range meals {
		key := utils.DayKey(meal.MealTime)
		date, ok := validDays[key]
		if !ok {
			continue
		}
		st := days[key]
		if st == nil {
			st = &dayState{date: date}
			days[key] = st
		}
		st.meals = append(st.meals, meal)
	}
	for _, st := range days {
		seen := map[string]bool{}
		for _, meal := range st.meals {
			for _, raw := range append(append([]string{}, meal.Ingredients...), meal.TriggerIngredients...) {
				tag := strings.ToLower(strings.TrimSpace(raw))
				if tag == "" || seen[tag] {
					continue
				}
				seen[tag] = true
				st.tags = append(st.tags, tag)
			}
		}
		sort.Strings(st.tags)
	}
	return days
}

// aggregateDailySeverity sums/maxes the severity of all symptoms linked to a
// valid day's meals. Days with zero linked symptoms get no row: absence, not a
// zero row, so no-data days stay out of downstream control means.
func aggregateDailySeverity(userID uint, windowHours int, days map[string]*dayState, symptoms []models.SymptomEntry, links []models.MealSymptomLink) []models.DailyWindowSeverity {
	severityByID := make(map[uint]float64, len(symptoms))
	for _, e := range symptoms {
		severityByID[e.ID] = utils.SymptomSeverity(e.BristolType, e.UrgencySeverity, e.BloodSeverity, e.PainSeverity)
	}
	linksByMeal := map[uint][]models.MealSymptomLink{}
	for _, l := range links {
		linksByMeal[l.FoodEntryID] = append(linksByMeal[l.FoodEntryID], l)
	}

	keys := make([]string, 0, len(days))
	for key := range days {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var rows []models.DailyWindowSeverity
	for _, key := range keys {
		st := days[key]
		linked := map[uint]bool{}
		for _, meal := range st.meals {
			for _, l := range linksByMeal[meal.ID] {
				linked[l.SymptomEntryID] = true
			}
		}
		if len(linked) == 0 {
			continue
		}
		var sum, max float64
		for id := range linked {
			sev := severityByID[id]
			sum += sev
			if sev > max {
				max = sev
			}
		}
		rows = append(rows, models.DailyWindowSeverity{
			UserID:      userID,
			Date:        st.date,
			WindowHours: windowHours,
			SeveritySum: sum,
			SeverityMax: max,
			BMCount:     len(linked),
		})
	}
	return rows
}

// deriveTagExposures apportions each day's window severity evenly across the
// distinct tags eaten that day. The even split is a deliberate approximation,
// not causal attribution. Unexposed rows (tags from the user's observed
// universe that were absent that day) carry the same per-day share and form
// the control sample for that tag.
func deriveTagExposures(userID uint, windowHours int, days map[string]*dayState, daily []models.DailyWindowSeverity) []models.TagExposure {
	severityByDay := make(map[string]float64, len(daily))
	for _, row := range daily {
		severityByDay[utils.DayKey(row.Date)] = row.SeveritySum
	}

	universe := map[string]bool{}
	for key, st := range days {
		if _, ok := severityByDay[key]; !ok {
			continue
		}
		for _, tag := range st.tags {
			universe[tag] = true
		}
	}
	allTags := make([]string, 0, len(universe))
	for tag := range universe {
		allTags = append(allTags, tag)
	}
	sort.Strings(allTags)

	keys := make([]string, 0, len(days))
	for key := range days {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var rows []models.TagExposure
	for _, key := range keys {
		st := days[key]
		sum, ok := severityByDay[key]
		if !ok || len(st.tags) == 0 {
			// No severity data or a zero-tag day: contributes no exposure
			// rows rather than dividing by zero.
			continue
		}
		share := math.Round(sum / float64(len(st.tags)))
		present := map[string]bool{}
		for _, tag := range st.tags {
			present[tag] = true
		}
		for _, tag := range allTags {
			rows = append(rows, models.TagExposure{
				UserID:        userID,
				Date:          st.date,
				Tag:           tag,
				WindowHours:   windowHours,
				Exposed:       present[tag],
				SeverityShare: share,
			})
		}
	}
	return rows
}

// ---------- Correlation analyzer ----------

type windowStats struct {
	windowHours int
	effect      float64
	meanExposed float64
	meanControl float64
	exposures   int
	reliability string
	exposedDays map[string]bool
}

func (w windowStats) score() float64 {
	return math.Abs(w.effect) * reliabilityWeight(w.reliability)
}

func reliabilityTier(exposures int) string {
	switch {
	case exposures >= 10:
		return ReliabilityHigh
	case exposures >= 5:
		return ReliabilityMedium
	default:
		return ReliabilityLow
	}
}

func reliabilityWeight(tier string) float64 {
	switch tier {
	case ReliabilityHigh:
		return 1.0
	case ReliabilityMedium:
		return 0.7
	default:
		return 0.4
	}
}

// analyzeExposures turns the exposure table into ranked per-tag results.
func analyzeExposures(exposures []models.TagExposure, settings CorrelationAnalysisSettings) []TagCorrelationResult {
	type sample struct {
		exposedShares []float64
		controlShares []float64
		exposedDays   map[string]bool
	}
	byTag := map[string]map[int]*sample{}
	for _, row := range exposures {
		windows := byTag[row.Tag]
		if windows == nil {
			windows = map[int]*sample{}
			byTag[row.Tag] = windows
		}
		sm := windows[row.WindowHours]
		if sm == nil {
			sm = &sample{exposedDays: map[string]bool{}}
			windows[row.WindowHours] = sm
		}
		if row.Exposed {
			sm.exposedShares = append(sm.exposedShares, row.SeverityShare)
			sm.exposedDays[utils.DayKey(row.Date)] = true
		} else {
			// Control pool: valid days with severity data where this tag
			// specifically was absent.
			sm.controlShares = append(sm.controlShares, row.SeverityShare)
		}
	}

	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	qualified := map[string][]windowStats{}
	for _, tag := range tags {
		for _, window := range settings.Windows {
			sm := byTag[tag][window]
			if sm == nil || len(sm.exposedShares) < settings.MinExposures {
				continue
			}
			meanExposed := mean(sm.exposedShares)
			meanControl := 0.0
			if len(sm.controlShares) > 0 {
				meanControl = mean(sm.controlShares)
			}
			qualified[tag] = append(qualified[tag], windowStats{
				windowHours: window,
				effect:      round2(meanExposed - meanControl),
				meanExposed: round2(meanExposed),
				meanControl: round2(meanControl),
				exposures:   len(sm.exposedShares),
				reliability: reliabilityTier(len(sm.exposedShares)),
				exposedDays: sm.exposedDays,
			})
		}
	}

	var results []TagCorrelationResult
	for _, tag := range tags {
		windows := qualified[tag]
		if len(windows) == 0 {
			continue // tags with zero qualifying windows are dropped
		}

		primary := windows[0]
		for _, w := range windows[1:] {
			if w.score() > primary.score() {
				primary = w
			}
		}

		uplift := 1.0
		if primary.meanControl != 0 {
			uplift = round2(primary.meanExposed / primary.meanControl)
		}

		var others []WindowComparison
		for _, w := range windows {
			if w.windowHours == primary.windowHours {
				continue
			}
			others = append(others, WindowComparison{
				WindowHours: w.windowHours,
				Effect:      w.effect,
				Relation:    classifyWindow(w.effect, primary.effect),
			})
		}

		results = append(results, TagCorrelationResult{
			Tag:             tag,
			PrimaryWindow:   primary.windowHours,
			Effect:          primary.effect,
			UpliftRatio:     uplift,
			Reliability:     primary.reliability,
			ExposureCount:   primary.exposures,
			MeanExposed:     primary.meanExposed,
			MeanControl:     primary.meanControl,
			OtherWindows:    others,
			CoOccurringTags: coOccurringTags(tag, primary, qualified),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		si := math.Abs(results[i].Effect) * reliabilityWeight(results[i].Reliability)
		sj := math.Abs(results[j].Effect) * reliabilityWeight(results[j].Reliability)
		if si != sj {
			return si > sj
		}
		return results[i].Tag < results[j].Tag
	})
	return results
}

// classifyWindow relates a secondary window's effect magnitude to the
// primary's. The [0.8, 1.2] band is inclusive on both ends so every ratio
// maps to exactly one relation.
func classifyWindow(effect, primaryEffect float64) string {
	if primaryEffect == 0 {
		return "unclear"
	}
	ratio := math.Abs(effect) / math.Abs(primaryEffect)
	switch {
	case ratio > 1.2:
		return "higher"
	case ratio < 0.8:
		return "lower"
	default:
		return "similar"
	}
}

// coOccurringTags lists other tags whose exposed days overlap this tag's
// exposed days (on the primary window) by more than coOccurrenceFraction —
// a caution that the attribution may be confounded.
func coOccurringTags(tag string, primary windowStats, qualified map[string][]windowStats) []string {
	if len(primary.exposedDays) == 0 {
		return nil
	}
	var out []string
	for other, windows := range qualified {
		if other == tag {
			continue
		}
		for _, w := range windows {
			if w.windowHours != primary.windowHours {
				continue
			}
			overlap := 0
			for day := range w.exposedDays {
				if primary.exposedDays[day] {
					overlap++
				}
			}
			if float64(overlap)/float64(len(primary.exposedDays)) > coOccurrenceFraction {
				out = append(out, other)
			}
		}
	}
	sort.Strings(out)
	return out
}

// ---------- small helpers ----------

func capPct(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
