package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culina/backend/internal/models"
	"github.com/culina/backend/internal/service"
	"github.com/culina/backend/internal/types"
)

// IngredientHandler serves the caller's pantry
type IngredientHandler struct {
	ingredientService service.IIngredientService
	imageService      service.IImageService
}

func NewIngredientHandler(ingredientService service.IIngredientService, imageService service.IImageService) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
		imageService:      imageService,
	}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.PUT("/:id", h.UpsertIngredient)
		ingredients.DELETE("/:id", h.DeleteIngredient)
		ingredients.GET("/:id/image", h.DownloadImage)
		ingredients.POST("/:id/image", h.UploadImage)
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ingredients, err := h.ingredientService.ListIngredients(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// UpsertIngredient adds the ingredient or replaces the one stored under the same id
func (h *IngredientHandler) UpsertIngredient(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.UpsertIngredientRequest
	if !bindJSON(c, &req) {
		return
	}

	ingredient, err := h.ingredientService.UpsertIngredient(c.Request.Context(), userID, &models.Ingredient{
		ID:       c.Param("id"),
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Category: req.Category,
		Image:    req.Image,
		Calories: req.Calories,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.ingredientService.DeleteIngredient(c.Request.Context(), userID, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage returns a presigned URL the client uploads the ingredient photo to
func (h *IngredientHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	req := types.ImageUploadRequest{ContentType: "image/jpeg"}
	if !bindOptionalJSON(c, &req) {
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	resp, err := h.imageService.PresignUpload(c.Request.Context(), userID, c.Param("id"), req.ContentType)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DownloadImage returns a presigned URL for the photo stored on the ingredient
func (h *IngredientHandler) DownloadImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ingredient, err := h.ingredientService.GetIngredient(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if ingredient.Image == "" {
		_ = c.Error(service.ErrNotFound)
		return
	}

	url, err := h.imageService.PresignDownload(c.Request.Context(), ingredient.Image)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.ImageDownloadResponse{URL: url, Key: ingredient.Image})
}
