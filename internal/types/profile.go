package types

import "github.com/google/uuid"

// CreateProfileRequest carries the fields written when a profile is first created
type CreateProfileRequest struct {
	Email             string   `json:"email"`
	Username          string   `json:"username"`
	DietaryLifestyle  string   `json:"dietary_lifestyle"`
	Allergies         []string `json:"allergies"`
	ReligiousPractice string   `json:"religious_practice"`
	CalorieGoal       string   `json:"calorie_goal"`
}

// UpdateProfileRequest is a partial update. Nil fields are left untouched.
type UpdateProfileRequest struct {
	Username          *string   `json:"username,omitempty" binding:"omitempty,notblank,max=50"`
	DietaryLifestyle  *string   `json:"dietary_lifestyle,omitempty" binding:"omitempty,max=100"`
	Allergies         *[]string `json:"allergies,omitempty"`
	ReligiousPractice *string   `json:"religious_practice,omitempty" binding:"omitempty,max=100"`
	CalorieGoal       *string   `json:"calorie_goal,omitempty" binding:"omitempty,max=50"`
	// ExpectedVersion, when set, must equal the stored version or the update is rejected
	ExpectedVersion *int64 `json:"expected_version,omitempty"`
}

// Empty reports whether the request changes nothing
func (r UpdateProfileRequest) Empty() bool {
	return r.Username == nil && r.DietaryLifestyle == nil && r.Allergies == nil &&
		r.ReligiousPractice == nil && r.CalorieGoal == nil
}

// ProfileResponse is returned by the profile endpoints
type ProfileResponse struct {
	UserID            uuid.UUID `json:"user_id"`
	Email             string    `json:"email"`
	Username          string    `json:"username"`
	DietaryLifestyle  string    `json:"dietary_lifestyle"`
	Allergies         []string  `json:"allergies"`
	ReligiousPractice string    `json:"religious_practice"`
	CalorieGoal       string    `json:"calorie_goal"`
	Version           int64     `json:"version"`
	OnboardingDone    *bool     `json:"onboarding_complete,omitempty"`
}
