package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culina/backend/internal/service"
	"github.com/culina/backend/internal/types"
)

// RecipeHandler serves the caller's saved recipes
type RecipeHandler struct {
	recipeService service.IRecipeService
}

func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.SaveRecipe)
		recipes.POST("/check", h.CheckSaved)
		recipes.GET("/:id", h.GetRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/share", h.ShareRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	recipes, err := h.recipeService.ListSavedRecipes(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// SaveRecipe stores a copy of the recipe; a recipe with the same content is rejected with 409
func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.RecipeContent
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.SaveRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) CheckSaved(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.RecipeContent
	if !bindJSON(c, &req) {
		return
	}

	saved, err := h.recipeService.IsRecipeSaved(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.IsSavedResponse{Saved: saved})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetSavedRecipe(c.Request.Context(), userID, recipeID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.DeleteSavedRecipe(c.Request.Context(), userID, recipeID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ShareRecipe publishes a saved recipe to the public feed
func (h *RecipeHandler) ShareRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	shared, err := h.recipeService.ShareRecipe(c.Request.Context(), userID, recipeID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, shared)
}
