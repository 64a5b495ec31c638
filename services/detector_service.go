package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jaychung003/food-tracker/utils"
)

// TriggerIngredient is one suspected gut trigger from the detector.
type TriggerIngredient struct {
	Ingredient string  `json:"ingredient"`
	Category   string  `json:"category"` // gluten|dairy|fodmap|spicy|high_fat|processed|high_fiber|artificial|caffeine|alcohol
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// IngredientAnalysis is the detector output for a dish.
type IngredientAnalysis struct {
	Ingredients        []string            `json:"ingredients"`
	TriggerIngredients []TriggerIngredient `json:"triggerIngredients"`
}

// DetectorService guesses the ingredients of a dish and which of them are
// common gut triggers. It calls the OpenAI chat API and degrades to a keyword
// lookup when the API is unavailable; callers never see an error from it.
type DetectorService struct {
	client  *http.Client
	token   string
	model   string
	baseURL string
}

func NewDetectorService() *DetectorService {
	return &DetectorService{
		client:  &http.Client{Timeout: 20 * time.Second},
		token:   os.Getenv("OPENAI_API_KEY"),
		model:   "gpt-4o",
		baseURL: "https://api.openai.com/v1",
	}
}

// AnalyzeDish returns the typical ingredients of a dish plus suspected triggers.
func (d *DetectorService) AnalyzeDish(dishName string) IngredientAnalysis {
	prompt := fmt.Sprintf(`Analyze the food or drink %q and provide:
1. A comprehensive list of typical ingredients used in it
2. Any ingredients that could trigger gut symptoms (gluten, dairy, FODMAPs, spicy, high-fat, processed meats, high-fiber, artificial sweeteners, caffeine, alcohol)

Respond in JSON: {"ingredients": ["..."], "triggerIngredients": [{"ingredient": "...", "category": "gluten|dairy|fodmap|spicy|high_fat|processed|high_fiber|artificial|caffeine|alcohol", "confidence": 0.8, "reason": "..."}]}`, dishName)

	var out IngredientAnalysis
	if err := d.complete(prompt, &out); err != nil {
		utils.Log().Warnw("dish analysis fell back to keyword lookup", "dish", dishName, "err", err)
		return analyzeDishFallback(dishName)
	}
	if out.Ingredients == nil {
		out.Ingredients = []string{}
	}
	if out.TriggerIngredients == nil {
		out.TriggerIngredients = []TriggerIngredient{}
	}
	return out
}

// AnalyzeTriggers classifies an already-known ingredient list.
func (d *DetectorService) AnalyzeTriggers(ingredients []string) []TriggerIngredient {
	prompt := fmt.Sprintf(`Analyze this ingredient list for common gut triggers: %s

Respond in JSON: {"triggerIngredients": [{"ingredient": "...", "category": "gluten|dairy|fodmap|spicy|high_fat|processed|high_fiber|artificial|caffeine|alcohol", "confidence": 0.8, "reason": "..."}]}`,
		strings.Join(ingredients, ", "))

	var out struct {
		TriggerIngredients []TriggerIngredient `json:"triggerIngredients"`
	}
	if err := d.complete(prompt, &out); err != nil {
		utils.Log().Warnw("trigger analysis fell back to keyword lookup", "err", err)
		return analyzeTriggersFallback(ingredients)
	}
	if out.TriggerIngredients == nil {
		return []TriggerIngredient{}
	}
	return out.TriggerIngredients
}

func (d *DetectorService) complete(prompt string, out any) error {
	if d.token == "" {
		return fmt.Errorf("OPENAI_API_KEY not set")
	}

	body := map[string]any{
		"model": d.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are an expert dietitian specializing in gut-symptom triggers. Always respond with valid JSON."},
			{"role": "user", "content": prompt},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     0.3,
	}
	b, _ := json.Marshal(body)

	req, err := http.NewRequest("POST", d.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+d.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read openai response error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("openai api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("openai api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &completion); err != nil {
		return fmt.Errorf("decode openai response error: %w", err)
	}
	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return fmt.Errorf("empty completion")
	}
	return json.Unmarshal([]byte(completion.Choices[0].Message.Content), out)
}

// ---------- Keyword fallback (used when the API is unreachable) ----------

var dishIngredientMap = map[string][]string{
	"pizza":        {"wheat flour", "mozzarella cheese", "tomato sauce", "olive oil"},
	"pasta":        {"wheat flour", "olive oil", "garlic", "tomato"},
	"salad":        {"lettuce", "tomato", "cucumber", "olive oil"},
	"sandwich":     {"wheat bread", "meat", "lettuce", "tomato"},
	"soup":         {"broth", "vegetables", "onion", "garlic"},
	"rice":         {"rice", "water", "salt"},
	"chicken":      {"chicken breast", "salt", "pepper"},
	"beer":         {"malt barley", "hops", "yeast", "water", "alcohol"},
	"wine":         {"grapes", "yeast", "alcohol", "sulfites"},
	"cocktail":     {"alcohol", "mixers", "sugar", "citrus"},
	"coffee":       {"coffee beans", "water", "caffeine"},
	"tea":          {"tea leaves", "water", "caffeine"},
	"soda":         {"carbonated water", "high fructose corn syrup", "artificial flavors", "caffeine"},
	"smoothie":     {"fruit", "yogurt", "milk", "sugar"},
	"energy drink": {"caffeine", "taurine", "sugar", "artificial flavors"},
}

var triggerKeywordMap = map[string][]string{
	"gluten":     {"wheat", "flour", "bread", "pasta", "barley", "rye", "malt"},
	"dairy":      {"cheese", "milk", "butter", "cream", "yogurt"},
	"fodmap":     {"onion", "garlic", "beans", "apple", "wheat"},
	"alcohol":    {"alcohol", "beer", "wine", "vodka", "whiskey", "rum", "gin", "tequila"},
	"caffeine":   {"coffee", "caffeine", "tea", "energy"},
	"artificial": {"high fructose corn syrup", "artificial flavors", "artificial sweeteners"},
}

func analyzeDishFallback(dishName string) IngredientAnalysis {
	lower := strings.ToLower(dishName)

	var ingredients []string
	for key, list := range dishIngredientMap {
		if strings.Contains(lower, key) {
			ingredients = list
			break
		}
	}
	if ingredients == nil {
		ingredients = []string{}
	}

	return IngredientAnalysis{
		Ingredients:        ingredients,
		TriggerIngredients: analyzeTriggersFallback(ingredients),
	}
}

func analyzeTriggersFallback(ingredients []string) []TriggerIngredient {
	triggers := []TriggerIngredient{}
	for _, ingredient := range ingredients {
		lower := strings.ToLower(ingredient)
		for category, words := range triggerKeywordMap {
			for _, word := range words {
				if strings.Contains(lower, word) {
					triggers = append(triggers, TriggerIngredient{
						Ingredient: ingredient,
						Category:   category,
						Confidence: 0.7,
						Reason:     fmt.Sprintf("Contains %s, which is a known %s trigger", word, category),
					})
				}
			}
		}
	}
	return triggers
}
