package types

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Email             string   `json:"email" binding:"required,email"`
	Password          string   `json:"password" binding:"required,min=8"`
	Username          string   `json:"username" binding:"required,notblank,max=50"`
	DietaryLifestyle  string   `json:"dietary_lifestyle"`
	Allergies         []string `json:"allergies"`
	ReligiousPractice string   `json:"religious_practice"`
	CalorieGoal       string   `json:"calorie_goal"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// UpsertIngredientRequest represents the request body for adding or replacing a pantry item
type UpsertIngredientRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Image    string `json:"image"`
	Calories string `json:"calories"`
}

// ImageUploadRequest asks for a presigned upload URL
type ImageUploadRequest struct {
	ContentType string `json:"content_type" binding:"omitempty,oneof=image/jpeg image/png image/webp image/heic"`
}

// ImageUploadResponse carries the presigned URL and the object key to store on the ingredient
type ImageUploadResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}

// ImageDownloadResponse carries a presigned URL for reading the ingredient photo
type ImageDownloadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// GenerateRecipesRequest represents a request to the recipe generator
type GenerateRecipesRequest struct {
	// Ingredients overrides the pantry when non-empty
	Ingredients []string `json:"ingredients"`
	Count       int      `json:"count" binding:"omitempty,min=1,max=10"`
}

// GenerateRecipesResponse is the strict shape the AI model must return
type GenerateRecipesResponse struct {
	Recipes []GeneratedRecipe `json:"recipes"`
}

// ChatRequest represents a single message to the kitchen assistant
type ChatRequest struct {
	Message string `json:"message" binding:"required,notblank,max=2000"`
}

// ChatResponse carries the assistant's reply
type ChatResponse struct {
	Reply string `json:"reply"`
}

// IsSavedResponse answers the saved-recipe check
type IsSavedResponse struct {
	Saved bool `json:"saved"`
}
