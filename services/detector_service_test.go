package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offlineDetector() *DetectorService {
	return &DetectorService{client: &http.Client{Timeout: time.Second}, model: "gpt-4o"}
}

func TestAnalyzeDishFallback(t *testing.T) {
	d := offlineDetector()

	analysis := d.AnalyzeDish("Pepperoni Pizza")
	assert.Contains(t, analysis.Ingredients, "wheat flour")
	assert.Contains(t, analysis.Ingredients, "mozzarella cheese")

	categories := map[string]bool{}
	for _, trigger := range analysis.TriggerIngredients {
		categories[trigger.Category] = true
		assert.Equal(t, 0.7, trigger.Confidence)
	}
	assert.True(t, categories["gluten"], "flour should flag gluten")
	assert.True(t, categories["dairy"], "cheese should flag dairy")
}

func TestAnalyzeDishFallbackUnknownDish(t *testing.T) {
	analysis := offlineDetector().AnalyzeDish("Mystery Stew")
	assert.NotNil(t, analysis.Ingredients)
	assert.Empty(t, analysis.Ingredients)
	assert.NotNil(t, analysis.TriggerIngredients)
	assert.Empty(t, analysis.TriggerIngredients)
}

func TestAnalyzeTriggersFallback(t *testing.T) {
	triggers := offlineDetector().AnalyzeTriggers([]string{"milk", "white rice"})

	require.NotEmpty(t, triggers)
	for _, trigger := range triggers {
		assert.Equal(t, "milk", trigger.Ingredient)
		assert.Equal(t, "dairy", trigger.Category)
		assert.NotEmpty(t, trigger.Reason)
	}
}

func TestDetectorUsesAPIWhenAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		content := `{"ingredients": ["tofu", "soy sauce"], "triggerIngredients": [{"ingredient": "soy sauce", "category": "fodmap", "confidence": 0.9, "reason": "fermented soy"}]}`
		fmt.Fprintf(w, `{"choices": [{"message": {"content": %q}}]}`, content)
	}))
	defer srv.Close()

	d := &DetectorService{client: srv.Client(), token: "test-token", model: "gpt-4o", baseURL: srv.URL}

	analysis := d.AnalyzeDish("Tofu Stir Fry")
	assert.Equal(t, []string{"tofu", "soy sauce"}, analysis.Ingredients)
	require.Len(t, analysis.TriggerIngredients, 1)
	assert.Equal(t, "fodmap", analysis.TriggerIngredients[0].Category)
	assert.Equal(t, 0.9, analysis.TriggerIngredients[0].Confidence)
}

func TestDetectorFallsBackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"message": "rate limited"}}`)
	}))
	defer srv.Close()

	d := &DetectorService{client: srv.Client(), token: "test-token", model: "gpt-4o", baseURL: srv.URL}

	analysis := d.AnalyzeDish("pasta carbonara")
	assert.Contains(t, analysis.Ingredients, "wheat flour") // keyword fallback kicked in
}
