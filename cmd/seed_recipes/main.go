package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/culina/backend/config"
	"github.com/culina/backend/internal/database"
	"github.com/culina/backend/internal/models"
	"github.com/culina/backend/internal/service"
	"github.com/culina/backend/internal/types"
	"github.com/culina/backend/pkg/logger"
)

const seedPassword = "testpassword123"

var seedUsers = []types.RegisterRequest{
	{Email: "john.doe@example.com", Username: "johndoe", DietaryLifestyle: "Omnivore"},
	{Email: "jane.smith@example.com", Username: "janesmith", DietaryLifestyle: "Vegetarian", Allergies: []string{"peanuts"}},
	{Email: "bob.wilson@example.com", Username: "bobwilson", DietaryLifestyle: "Vegan", CalorieGoal: "1800"},
	{Email: "alice.cooper@example.com", Username: "alicecooper", ReligiousPractice: "Halal"},
}

var seedPantry = []models.Ingredient{
	{ID: "eggs", Name: "Eggs", Quantity: "12", Category: "Dairy"},
	{ID: "rice", Name: "Rice", Quantity: "1", Unit: "kg", Category: "Grains"},
	{ID: "tomatoes", Name: "Tomatoes", Quantity: "6", Category: "Produce"},
	{ID: "onion", Name: "Onion", Quantity: "3", Category: "Produce"},
	{ID: "garlic", Name: "Garlic", Quantity: "1", Unit: "bulb", Category: "Produce"},
	{ID: "chickpeas", Name: "Chickpeas", Quantity: "2", Unit: "cans", Category: "Pantry"},
}

var seedRecipes = []types.RecipeContent{
	{
		Title:        "Shakshuka",
		Ingredients:  []string{"4 eggs", "6 tomatoes", "1 onion", "2 cloves garlic", "1 tsp cumin"},
		Instructions: []string{"Soften the onion and garlic.", "Add chopped tomatoes and cumin, simmer 10 minutes.", "Make wells, crack in the eggs, cover until set."},
		CookingTime:  "25 minutes",
		Difficulty:   "Easy",
		Servings:     2,
		Calories:     "320 per serving",
	},
	{
		Title:        "Egg Fried Rice",
		Ingredients:  []string{"2 cups cooked rice", "2 eggs", "1 onion", "2 tbsp soy sauce"},
		Instructions: []string{"Scramble the eggs and set aside.", "Fry the onion, add rice and soy sauce.", "Fold the eggs back in."},
		CookingTime:  "15 minutes",
		Difficulty:   "Easy",
		Servings:     2,
	},
	{
		Title:        "Chickpea Tomato Stew",
		Ingredients:  []string{"2 cans chickpeas", "4 tomatoes", "1 onion", "3 cloves garlic", "1 tsp paprika"},
		Instructions: []string{"Sweat the onion and garlic.", "Add tomatoes, paprika and chickpeas.", "Simmer 20 minutes and season."},
		CookingTime:  "35 minutes",
		Difficulty:   "Easy",
		Servings:     4,
	},
}

func main() {
	generate := flag.Bool("generate", false, "generate extra recipes from each pantry with the AI model")
	share := flag.Bool("share", true, "share every seeded recipe to the public feed")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logr := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Development: true})
	defer func() { _ = logr.Sync() }()

	db, err := database.New(cfg, logr)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, logr); err != nil {
		logr.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seeding does not fan out to live feed subscribers in other processes
	notifier := service.NewLocalNotifier()
	auth := service.NewAuthService(db, cfg.JWTSecret, logr)
	profiles := service.NewProfileService(db, logr)
	ingredients := service.NewIngredientService(db, logr)
	recipes := service.NewRecipeService(db, notifier, logr)
	llm := service.NewLLMService(service.LLMConfig{
		APIKey: cfg.LLMAPIKey,
		APIURL: cfg.LLMAPIURL,
		Model:  cfg.LLMModel,
	}, nil, profiles, ingredients, logr)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	for _, req := range seedUsers {
		req := req
		req.Password = seedPassword
		userID, err := ensureUser(ctx, auth, &req)
		if err != nil {
			logr.Fatal("failed to seed user", zap.String("email", req.Email), zap.Error(err))
		}
		ulog := logr.With(zap.String("user", req.Username))

		for _, item := range seedPantry {
			item := item
			if _, err := ingredients.UpsertIngredient(ctx, userID, &item); err != nil {
				ulog.Fatal("failed to seed pantry", zap.String("ingredient", item.ID), zap.Error(err))
			}
		}

		batch := append([]types.RecipeContent(nil), seedRecipes...)
		if *generate {
			generated, err := llm.GenerateRecipes(ctx, userID, &types.GenerateRecipesRequest{Count: 3})
			if err != nil {
				ulog.Warn("recipe generation failed, seeding static recipes only", zap.Error(err))
			}
			for _, g := range generated {
				batch = append(batch, g.Content())
			}
		}

		for i := range batch {
			saved, err := recipes.SaveRecipe(ctx, userID, &batch[i])
			if errors.Is(err, service.ErrAlreadySaved) {
				ulog.Debug("recipe already saved", zap.String("title", batch[i].Title))
				continue
			}
			if err != nil {
				ulog.Fatal("failed to save recipe", zap.String("title", batch[i].Title), zap.Error(err))
			}
			if *share {
				if _, err := recipes.ShareRecipe(ctx, userID, saved.ID); err != nil {
					ulog.Fatal("failed to share recipe", zap.String("title", saved.Title), zap.Error(err))
				}
			}
		}
		ulog.Info("seeded user", zap.Int("recipes", len(batch)))
	}

	logr.Info("seeding complete", zap.String("password", seedPassword))
}

// ensureUser registers the account, or logs in when it already exists
func ensureUser(ctx context.Context, auth *service.AuthService, req *types.RegisterRequest) (uuid.UUID, error) {
	resp, err := auth.Register(ctx, req)
	if errors.Is(err, service.ErrAlreadyExists) {
		resp, err = auth.Login(ctx, &types.LoginRequest{Email: req.Email, Password: req.Password})
	}
	if err != nil {
		return uuid.Nil, err
	}
	return resp.Profile.UserID, nil
}
