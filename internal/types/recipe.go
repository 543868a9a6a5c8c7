package types

// RecipeContent is the caller-supplied body of a recipe, as produced by the generator
type RecipeContent struct {
	Title        string   `json:"title" binding:"required,notblank"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1"`
	Instructions []string `json:"instructions"`
	CookingTime  string   `json:"cookingTime"`
	Difficulty   string   `json:"difficulty"`
	Servings     int      `json:"servings"`
	Calories     string   `json:"calories,omitempty"`
}

// GeneratedRecipe is one recipe returned by the AI model
type GeneratedRecipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	CookingTime  string   `json:"cookingTime"`
	Difficulty   string   `json:"difficulty"`
	Servings     int      `json:"servings"`
}

// Content converts a generated recipe into saveable content
func (g GeneratedRecipe) Content() RecipeContent {
	return RecipeContent{
		Title:        g.Title,
		Ingredients:  g.Ingredients,
		Instructions: g.Instructions,
		CookingTime:  g.CookingTime,
		Difficulty:   g.Difficulty,
		Servings:     g.Servings,
	}
}
