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
	"github.com/culina/backend/internal/types"
)

func newProfileRouter(t *testing.T, userID uuid.UUID) (*gin.Engine, *mocks.MockProfileService, *mocks.MockOnboardingService) {
	profiles := new(mocks.MockProfileService)
	onboarding := new(mocks.MockOnboardingService)
	router := newTestRouter(t, userID, func(g *gin.RouterGroup) {
		NewProfileHandler(profiles, onboarding).RegisterRoutes(g)
	})
	return router, profiles, onboarding
}

func TestGetProfile(t *testing.T) {
	userID := uuid.New()
	router, profiles, onboarding := newProfileRouter(t, userID)

	profiles.On("GetUserProfile", mock.Anything, userID).Return(&models.UserProfile{
		UserID:    userID,
		Username:  "alice",
		Allergies: models.StringList{"peanuts"},
		Version:   3,
	}, nil)
	onboarding.On("IsComplete", mock.Anything, userID).Return(true, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.ProfileResponse
	decode(t, w, &resp)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, []string{"peanuts"}, resp.Allergies)
	assert.Equal(t, int64(3), resp.Version)
	require.NotNil(t, resp.OnboardingDone)
	assert.True(t, *resp.OnboardingDone)
}

func TestGetProfileWithoutOnboardingStore(t *testing.T) {
	userID := uuid.New()
	router, profiles, onboarding := newProfileRouter(t, userID)

	profiles.On("GetUserProfile", mock.Anything, userID).Return(&models.UserProfile{UserID: userID, Username: "alice"}, nil)
	onboarding.On("IsComplete", mock.Anything, userID).Return(false, service.ErrNotConfigured)

	w := doJSON(t, router, http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.ProfileResponse
	decode(t, w, &resp)
	assert.Nil(t, resp.OnboardingDone)
}

func TestGetProfileNotFound(t *testing.T) {
	userID := uuid.New()
	router, profiles, _ := newProfileRouter(t, userID)
	profiles.On("GetUserProfile", mock.Anything, userID).Return(nil, service.ErrNotFound)

	w := doJSON(t, router, http.MethodGet, "/api/v1/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProfileUnauthenticated(t *testing.T) {
	router, profiles, _ := newProfileRouter(t, uuid.Nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	profiles.AssertNotCalled(t, "GetUserProfile", mock.Anything, mock.Anything)
}

func TestUpdateProfile(t *testing.T) {
	userID := uuid.New()
	router, profiles, _ := newProfileRouter(t, userID)

	profiles.On("UpdateUserProfile", mock.Anything, userID, mock.MatchedBy(func(req *types.UpdateProfileRequest) bool {
		return req.DietaryLifestyle != nil && *req.DietaryLifestyle == "Vegan" &&
			req.ExpectedVersion != nil && *req.ExpectedVersion == 1 && req.Username == nil
	})).Return(&models.UserProfile{UserID: userID, DietaryLifestyle: "Vegan", Version: 2}, nil)

	w := doJSON(t, router, http.MethodPatch, "/api/v1/profile", map[string]interface{}{
		"dietary_lifestyle": "Vegan",
		"expected_version":  1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.ProfileResponse
	decode(t, w, &resp)
	assert.Equal(t, "Vegan", resp.DietaryLifestyle)
	assert.Equal(t, int64(2), resp.Version)
	profiles.AssertExpectations(t)
}

func TestUpdateProfileVersionConflict(t *testing.T) {
	userID := uuid.New()
	router, profiles, _ := newProfileRouter(t, userID)
	profiles.On("UpdateUserProfile", mock.Anything, userID, mock.Anything).Return(nil, service.ErrVersionConflict)

	w := doJSON(t, router, http.MethodPatch, "/api/v1/profile", map[string]interface{}{
		"calorie_goal":     "2000",
		"expected_version": 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateProfileBlankUsername(t *testing.T) {
	userID := uuid.New()
	router, profiles, _ := newProfileRouter(t, userID)

	w := doJSON(t, router, http.MethodPatch, "/api/v1/profile", map[string]interface{}{"username": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	profiles.AssertNotCalled(t, "UpdateUserProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetProfileHistory(t *testing.T) {
	userID := uuid.New()
	router, profiles, _ := newProfileRouter(t, userID)
	profiles.On("GetProfileHistory", mock.Anything, userID).Return([]models.ProfileHistory{
		{UserID: userID, Field: "username", OldValue: "alice", NewValue: "alicia", ChangedBy: userID},
	}, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/profile/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		History []models.ProfileHistory `json:"history"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "alicia", resp.History[0].NewValue)
}

func TestOnboardingEndpoints(t *testing.T) {
	userID := uuid.New()
	router, _, onboarding := newProfileRouter(t, userID)
	onboarding.On("IsComplete", mock.Anything, userID).Return(false, nil).Once()
	onboarding.On("MarkComplete", mock.Anything, userID).Return(nil)
	onboarding.On("Reset", mock.Anything, userID).Return(nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/profile/onboarding", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]bool
	decode(t, w, &resp)
	assert.False(t, resp["complete"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/profile/onboarding", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/profile/onboarding", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	onboarding.AssertExpectations(t)
}

func TestOnboardingNotConfigured(t *testing.T) {
	userID := uuid.New()
	router, _, onboarding := newProfileRouter(t, userID)
	onboarding.On("MarkComplete", mock.Anything, userID).Return(service.ErrNotConfigured)

	w := doJSON(t, router, http.MethodPost, "/api/v1/profile/onboarding", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
