package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadySaved       = errors.New("recipe already saved")
	ErrAlreadyExists      = errors.New("already exists")
	ErrVersionConflict    = errors.New("profile was modified concurrently")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrParseFailure       = errors.New("could not parse AI response")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrNotConfigured      = errors.New("service not configured")
)

// storeError maps a database error onto the service error kinds
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
