package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/culina/backend/internal/models"
	"github.com/culina/backend/internal/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// AuthService registers identities and issues JWTs
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	logger    *zap.Logger
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(db *gorm.DB, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Register creates the identity and its profile in one transaction
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, invalidInput("email and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	var profile *models.UserProfile
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return storeError("register", err)
		}
		if count > 0 {
			return fmt.Errorf("email %s: %w", email, ErrAlreadyExists)
		}

		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("email %s: %w", email, ErrAlreadyExists)
			}
			return storeError("register", err)
		}

		profile, err = createProfile(tx, user.ID, &types.CreateProfileRequest{
			Email:             email,
			Username:          req.Username,
			DietaryLifestyle:  req.DietaryLifestyle,
			Allergies:         req.Allergies,
			ReligiousPractice: req.ReligiousPractice,
			CalorieGoal:       req.CalorieGoal,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return s.authResponse(profile)
}

// Login verifies the password and returns a fresh token
func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		return nil, storeError("login", err)
	}

	return s.authResponse(&profile)
}

func (s *AuthService) authResponse(profile *models.UserProfile) (*types.AuthResponse, error) {
	token, err := s.GenerateToken(&types.TokenClaims{
		UserID:   profile.UserID,
		Username: profile.Username,
	})
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{Token: token, Profile: ProfileResponse(profile)}, nil
}

// GenerateToken signs the claims with HS256. Expiry defaults to 24 hours.
func (s *AuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	now := time.Now()
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(tokenTTL))
	}
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(now)
	}
	claims.Subject = claims.UserID.String()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// ProfileResponse converts a stored profile into its API shape
func ProfileResponse(p *models.UserProfile) types.ProfileResponse {
	allergies := []string(p.Allergies)
	if allergies == nil {
		allergies = []string{}
	}
	return types.ProfileResponse{
		UserID:            p.UserID,
		Email:             p.Email,
		Username:          p.Username,
		DietaryLifestyle:  p.DietaryLifestyle,
		Allergies:         allergies,
		ReligiousPractice: p.ReligiousPractice,
		CalorieGoal:       p.CalorieGoal,
		Version:           p.Version,
	}
}
