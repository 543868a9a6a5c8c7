package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culina/backend/internal/service"
	"github.com/culina/backend/internal/types"
)

// ProfileHandler serves the caller's profile, its change history and the onboarding flag
type ProfileHandler struct {
	profileService    service.IProfileService
	onboardingService service.IOnboardingService
}

func NewProfileHandler(profileService service.IProfileService, onboardingService service.IOnboardingService) *ProfileHandler {
	return &ProfileHandler{
		profileService:    profileService,
		onboardingService: onboardingService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PATCH("", h.UpdateProfile)
		profile.GET("/history", h.GetProfileHistory)
		profile.GET("/onboarding", h.GetOnboarding)
		profile.POST("/onboarding", h.CompleteOnboarding)
		profile.DELETE("/onboarding", h.ResetOnboarding)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetUserProfile(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := service.ProfileResponse(profile)
	done, err := h.onboardingService.IsComplete(c.Request.Context(), userID)
	switch {
	case err == nil:
		resp.OnboardingDone = &done
	case !errors.Is(err, service.ErrNotConfigured) && !errors.Is(err, service.ErrStoreUnavailable):
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateUserProfile(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, service.ProfileResponse(profile))
}

func (h *ProfileHandler) GetProfileHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	history, err := h.profileService.GetProfileHistory(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *ProfileHandler) GetOnboarding(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	done, err := h.onboardingService.IsComplete(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"complete": done})
}

func (h *ProfileHandler) CompleteOnboarding(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.onboardingService.MarkComplete(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) ResetOnboarding(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.onboardingService.Reset(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
