package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/culina/backend/internal/metrics"
	"github.com/culina/backend/internal/types"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultRecipeCount = 5
	generatedCacheTTL  = 24 * time.Hour

	chatPersona = "You are Culina, a cheerful and supportive AI kitchen assistant! Always respond with " +
		"enthusiasm, warmth, and encouragement. Use cheerful language, emojis when appropriate, and show " +
		"genuine excitement about helping with cooking. Be supportive and make users feel confident in " +
		"their kitchen adventures."

	recipeSystemPrompt = `You are a professional chef. Respond only with a JSON object of this exact shape:
{
  "recipes": [
    {
      "title": "Recipe title",
      "ingredients": ["ingredient 1", "ingredient 2"],
      "instructions": ["Step 1: ...", "Step 2: ..."],
      "cookingTime": "30 minutes",
      "difficulty": "Easy",
      "servings": 2
    }
  ]
}
difficulty is one of Easy, Medium or Hard. servings is a number.`
)

// LLMConfig configures the OpenAI-compatible chat completions endpoint
type LLMConfig struct {
	APIKey     string
	APIURL     string
	Model      string
	HTTPClient *http.Client
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat completions request
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
}

// LLMService generates recipes from the pantry and answers kitchen questions
type LLMService struct {
	cfg         LLMConfig
	client      *http.Client
	redis       *redis.Client
	profiles    IProfileService
	ingredients IIngredientService
	logger      *zap.Logger
}

var _ ILLMService = (*LLMService)(nil)

// NewLLMService creates a new LLMService instance. redisClient may be nil, which disables the generated-recipe cache.
func NewLLMService(cfg LLMConfig, redisClient *redis.Client, profiles IProfileService, ingredients IIngredientService, logger *zap.Logger) *LLMService {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &LLMService{
		cfg:         cfg,
		client:      client,
		redis:       redisClient,
		profiles:    profiles,
		ingredients: ingredients,
		logger:      logger,
	}
}

func generatedKey(userID uuid.UUID) string {
	return fmt.Sprintf("culina:generated:%s", userID)
}

// GenerateRecipes asks the model for recipes using the given ingredients, or the user's pantry when none are given
func (s *LLMService) GenerateRecipes(ctx context.Context, userID uuid.UUID, req *types.GenerateRecipesRequest) ([]types.GeneratedRecipe, error) {
	names := make([]string, 0, len(req.Ingredients))
	for _, name := range req.Ingredients {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		pantry, err := s.ingredients.ListIngredients(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, ing := range pantry {
			names = append(names, ing.Name)
		}
	}
	if len(names) == 0 {
		return nil, invalidInput("no ingredients to cook with")
	}

	preferences := ""
	profile, err := s.profiles.GetUserProfile(ctx, userID)
	switch {
	case err == nil:
		preferences = PreferencesPrompt(profile.DietaryLifestyle, profile.Allergies, profile.ReligiousPractice, profile.CalorieGoal)
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	count := req.Count
	if count <= 0 {
		count = defaultRecipeCount
	}

	content, err := s.complete(ctx, []Message{
		{Role: "system", Content: recipeSystemPrompt},
		{Role: "user", Content: RecipePrompt(names, preferences, count)},
	}, true)
	if err != nil {
		metrics.RecipeGenerations.WithLabelValues("error").Inc()
		return nil, err
	}

	recipes, err := ParseGeneratedRecipes(content)
	if err != nil {
		metrics.RecipeGenerations.WithLabelValues("parse_failure").Inc()
		s.logger.Warn("unparseable recipe response",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, err
	}
	metrics.RecipeGenerations.WithLabelValues("ok").Inc()

	if s.redis != nil {
		if data, err := json.Marshal(recipes); err == nil {
			if err := s.redis.Set(ctx, generatedKey(userID), data, generatedCacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache generated recipes", zap.Error(err))
			}
		}
	}

	return recipes, nil
}

// RecentGenerated returns the last batch generated for the user, or an empty list
func (s *LLMService) RecentGenerated(ctx context.Context, userID uuid.UUID) ([]types.GeneratedRecipe, error) {
	recipes := []types.GeneratedRecipe{}
	if s.redis == nil {
		return recipes, nil
	}

	data, err := s.redis.Get(ctx, generatedKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return recipes, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get generated recipes: %w: %w", ErrStoreUnavailable, err)
	}
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("decode generated recipes: %w", err)
	}
	return recipes, nil
}

// Chat answers a single message in the Culina persona
func (s *LLMService) Chat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", invalidInput("message is required")
	}
	reply, err := s.complete(ctx, []Message{
		{Role: "system", Content: chatPersona},
		{Role: "user", Content: message},
	}, false)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("%w: empty reply", ErrParseFailure)
	}
	return reply, nil
}

// PreferencesPrompt describes the user's dietary constraints. Values of "None" are skipped.
func PreferencesPrompt(lifestyle string, allergies []string, practice, calorieGoal string) string {
	set := func(v string) bool {
		v = strings.TrimSpace(v)
		return v != "" && !strings.EqualFold(v, "none")
	}

	var b strings.Builder
	if set(lifestyle) {
		fmt.Fprintf(&b, "Dietary Lifestyle: %s. ", lifestyle)
	}
	if len(allergies) > 0 {
		fmt.Fprintf(&b, "Allergies to avoid: %s. ", strings.Join(allergies, ", "))
	}
	if set(practice) {
		fmt.Fprintf(&b, "Religious/Cultural Practice: %s. ", practice)
	}
	if set(calorieGoal) {
		fmt.Fprintf(&b, "Calorie Goal: %s. ", calorieGoal)
	}
	return strings.TrimSpace(b.String())
}

// RecipePrompt builds the user message for recipe generation
func RecipePrompt(ingredients []string, preferences string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d different and diverse recipes based on the following ingredients and user preferences.\n", count)
	b.WriteString("Each recipe should be unique and use different combinations of the provided ingredients.\n")
	b.WriteString("Make sure to respect all dietary restrictions and preferences.\n")
	b.WriteString("You MUST ONLY use ingredients from the list below. Do NOT suggest buying or adding new ingredients.\n\n")
	fmt.Fprintf(&b, "Ingredients: %s\n", strings.Join(ingredients, ", "))
	if preferences != "" {
		fmt.Fprintf(&b, "User Preferences: %s\n", preferences)
	}
	b.WriteString("\nEach instruction is a separate, complete step starting with \"Step X:\".")
	return b.String()
}

// ParseGeneratedRecipes validates the model output against the recipes schema
func ParseGeneratedRecipes(content string) ([]types.GeneratedRecipe, error) {
	var resp types.GenerateRecipesResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
	if len(resp.Recipes) == 0 {
		return nil, fmt.Errorf("%w: no recipes", ErrParseFailure)
	}
	for i, r := range resp.Recipes {
		if strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("%w: recipe %d has no title", ErrParseFailure, i)
		}
		if len(r.Ingredients) == 0 {
			return nil, fmt.Errorf("%w: recipe %d has no ingredients", ErrParseFailure, i)
		}
		if len(r.Instructions) == 0 {
			return nil, fmt.Errorf("%w: recipe %d has no instructions", ErrParseFailure, i)
		}
	}
	return resp.Recipes, nil
}

func (s *LLMService) complete(ctx context.Context, messages []Message, jsonMode bool) (string, error) {
	if s.cfg.APIKey == "" {
		return "", fmt.Errorf("llm: %w", ErrNotConfigured)
	}

	reqBody := Request{
		Model:       s.cfg.Model,
		Messages:    messages,
		Temperature: 0.9,
	}
	if jsonMode {
		reqBody.ResponseFormat = map[string]string{"type": "json_object"}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.cfg.APIKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request: %w: %w", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm response: %w: %w", ErrStoreUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("llm request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return "", fmt.Errorf("llm status %d: %w", resp.StatusCode, ErrStoreUnavailable)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrParseFailure)
	}

	return result.Choices[0].Message.Content, nil
}
