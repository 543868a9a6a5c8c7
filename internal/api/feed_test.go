package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/culina/backend/internal/mocks"
	"github.com/culina/backend/internal/models"
	"github.com/culina/backend/internal/service"
)

func newFeedRouter(t *testing.T) (*gin.Engine, *mocks.MockFeedService) {
	feed := new(mocks.MockFeedService)
	router := newTestRouter(t, uuid.New(), func(g *gin.RouterGroup) {
		NewFeedHandler(feed).RegisterRoutes(g)
	})
	return router, feed
}

func TestListSharedRecipes(t *testing.T) {
	router, feed := newFeedRouter(t)
	feed.On("ListSharedRecipes", mock.Anything).Return([]models.SharedRecipe{
		{ID: uuid.New(), Title: "Newest"},
		{ID: uuid.New(), Title: "Oldest"},
	}, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/shared-recipes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes []models.SharedRecipe `json:"recipes"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Recipes, 2)
	assert.Equal(t, "Newest", resp.Recipes[0].Title)
}

func TestStreamSharedRecipes(t *testing.T) {
	router, feed := newFeedRouter(t)

	updates := make(chan []models.SharedRecipe, 2)
	updates <- []models.SharedRecipe{}
	updates <- []models.SharedRecipe{{ID: uuid.New(), Title: "Pancakes"}}
	close(updates)
	var readOnly <-chan []models.SharedRecipe = updates
	feed.On("Subscribe", mock.Anything).Return(readOnly, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/shared-recipes/stream", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	body := w.Body.String()
	assert.Contains(t, body, "event:shared_recipes")
	assert.Contains(t, body, "data:[]")
	assert.Contains(t, body, `"title":"Pancakes"`)
}

func TestStreamSharedRecipesSubscribeFailure(t *testing.T) {
	router, feed := newFeedRouter(t)
	feed.On("Subscribe", mock.Anything).Return(nil, service.ErrStoreUnavailable)

	w := doJSON(t, router, http.MethodGet, "/api/v1/shared-recipes/stream", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
