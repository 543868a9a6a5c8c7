package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culina/backend/internal/service"
)

// FeedHandler serves the public shared-recipe feed
type FeedHandler struct {
	feedService service.IFeedService
}

func NewFeedHandler(feedService service.IFeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

func (h *FeedHandler) RegisterRoutes(router *gin.RouterGroup) {
	feed := router.Group("/shared-recipes")
	{
		feed.GET("", h.ListSharedRecipes)
		feed.GET("/stream", h.Stream)
	}
}

func (h *FeedHandler) ListSharedRecipes(c *gin.Context) {
	recipes, err := h.feedService.ListSharedRecipes(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// Stream pushes the full feed as a server-sent event on subscribe and after every change
func (h *FeedHandler) Stream(c *gin.Context) {
	updates, err := h.feedService.Subscribe(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case recipes, ok := <-updates:
			if !ok {
				return
			}
			c.SSEvent("shared_recipes", recipes)
			c.Writer.Flush()
		}
	}
}
