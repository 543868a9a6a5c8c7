package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culina/backend/internal/middleware"
	"github.com/culina/backend/internal/service"
	"github.com/culina/backend/internal/types"
)

// LLMHandler serves AI recipe generation and the kitchen assistant
type LLMHandler struct {
	llmService service.ILLMService
	limiter    *middleware.RateLimiter
}

// NewLLMHandler creates the handler. limiter may be nil to disable generation quotas.
func NewLLMHandler(llmService service.ILLMService, limiter *middleware.RateLimiter) *LLMHandler {
	return &LLMHandler{
		llmService: llmService,
		limiter:    limiter,
	}
}

func (h *LLMHandler) RegisterRoutes(router *gin.RouterGroup) {
	llm := router.Group("/llm")
	{
		generate := []gin.HandlerFunc{h.GenerateRecipes}
		if h.limiter != nil {
			generate = append([]gin.HandlerFunc{h.limiter.RateLimitMiddleware()}, generate...)
		}
		llm.POST("/recipes", generate...)
		llm.GET("/recipes/recent", h.RecentRecipes)
		llm.POST("/chat", h.Chat)
	}
}

// GenerateRecipes asks the model for recipes built from the request ingredients or the pantry
func (h *LLMHandler) GenerateRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.GenerateRecipesRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	recipes, err := h.llmService.GenerateRecipes(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.GenerateRecipesResponse{Recipes: recipes})
}

func (h *LLMHandler) RecentRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	recipes, err := h.llmService.RecentGenerated(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.GenerateRecipesResponse{Recipes: recipes})
}

func (h *LLMHandler) Chat(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var req types.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	reply, err := h.llmService.Chat(c.Request.Context(), req.Message)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.ChatResponse{Reply: reply})
}
