package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/spotlight/internal/helpers"
	"github.com/joshua-takyi/spotlight/internal/models"
	"github.com/supabase-community/gotrue-go/types"
)

const GoogleProvider = "google"

type UserService struct {
	userRepo models.UserRepo
}

// NewUserService accepts a nil repo; every call then fails with
// models.ErrAuthUnavailable.
func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) Enabled() bool {
	return us != nil && us.userRepo != nil
}

func (us *UserService) SignUp(ctx context.Context, req models.SignupRequest) (*types.SignupResponse, error) {
	if !us.Enabled() {
		return nil, models.ErrAuthUnavailable
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := models.Validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}
	if !helpers.IsPasswordStrong(req.Password) {
		return nil, fmt.Errorf("password is not strong enough: %w", models.ErrInvalidInput)
	}
	return us.userRepo.SignUp(ctx, req.Email, req.Password)
}

func (us *UserService) SignIn(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	if !us.Enabled() {
		return nil, models.ErrAuthUnavailable
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid email format: %w", models.ErrInvalidInput)
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, fmt.Errorf("invalid password format: %w", models.ErrInvalidInput)
	}
	return us.userRepo.SignIn(ctx, email, password)
}

func (us *UserService) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	if !us.Enabled() {
		return nil, models.ErrAuthUnavailable
	}
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required: %w", models.ErrUnauthorized)
	}
	return us.userRepo.RefreshToken(ctx, refreshToken)
}

// GoogleAuthURL returns the consent URL that starts federated sign-in.
func (us *UserService) GoogleAuthURL(ctx context.Context, redirectTo string) (string, error) {
	if !us.Enabled() {
		return "", models.ErrAuthUnavailable
	}
	return us.userRepo.AuthorizeURL(ctx, GoogleProvider, redirectTo)
}

// GetProfile returns the user's profile, or nil without error when the user
// has not completed it yet.
func (us *UserService) GetProfile(ctx context.Context, id uuid.UUID, accessToken string) (*models.Profile, error) {
	if !us.Enabled() {
		return nil, models.ErrAuthUnavailable
	}
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID: %w", models.ErrInvalidInput)
	}
	profile, err := us.userRepo.GetProfile(ctx, id, accessToken)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// AuthState reports the signup step of a signed-in user.
func (us *UserService) AuthState(ctx context.Context, id uuid.UUID, accessToken string) (string, *models.Profile, error) {
	profile, err := us.GetProfile(ctx, id, accessToken)
	if err != nil {
		return "", nil, err
	}
	return models.AuthState(profile), profile, nil
}

// CompleteProfile stores username, full name and city and marks the profile
// complete, moving the user out of the profile-completion state.
func (us *UserService) CompleteProfile(ctx context.Context, id uuid.UUID, email string, req models.ProfileCompletion, accessToken string) (*models.Profile, error) {
	if !us.Enabled() {
		return nil, models.ErrAuthUnavailable
	}
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID: %w", models.ErrInvalidInput)
	}
	req.Username = strings.TrimSpace(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)
	req.City = strings.TrimSpace(req.City)
	if err := models.Validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	existing, err := us.GetProfile(ctx, id, accessToken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile := &models.Profile{ID: id, Email: email, CreatedAt: now}
	if existing != nil {
		profile = existing
	}
	profile.Username = req.Username
	profile.FullName = req.FullName
	profile.City = req.City
	profile.ProfileCompleted = true
	profile.UpdatedAt = now

	return us.userRepo.UpsertProfile(ctx, profile, accessToken)
}
