package models

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
)

const ProfileTable = "profiles"

const profileColumns = "id,email,username,fullname,city,avatar_url,provider,profile_completed,created_at,updated_at"

type UserRepo interface {
	SignUp(ctx context.Context, email, password string) (*types.SignupResponse, error)
	SignIn(ctx context.Context, email, password string) (*types.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error)
	AuthorizeURL(ctx context.Context, provider, redirectTo string) (string, error)
	GetProfile(ctx context.Context, id uuid.UUID, accessToken string) (*Profile, error)
	UpsertProfile(ctx context.Context, profile *Profile, accessToken string) (*Profile, error)
}

func (su *SupabaseRepo) SignUp(ctx context.Context, email, password string) (*types.SignupResponse, error) {
	res, err := su.supabaseClient.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		errMsg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(errMsg, "already registered"), strings.Contains(errMsg, "unique constraint"):
			return nil, fmt.Errorf("email already in use: %w", ErrInvalidInput)
		case strings.Contains(errMsg, "invalid input syntax"):
			return nil, fmt.Errorf("invalid input format: %w", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to create user: %v", err)
	}
	return res, nil
}

func (su *SupabaseRepo) SignIn(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate user: %v: %w", err, ErrUnauthorized)
	}
	return resp, nil
}

func (su *SupabaseRepo) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %v: %w", err, ErrUnauthorized)
	}
	return resp, nil
}

// AuthorizeURL returns the provider consent URL for federated sign-in.
func (su *SupabaseRepo) AuthorizeURL(ctx context.Context, provider, redirectTo string) (string, error) {
	resp, err := su.supabaseClient.Auth.Authorize(types.AuthorizeRequest{
		Provider: types.Provider(provider),
		FlowType: types.FlowImplicit,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build %s authorize url: %v", provider, err)
	}
	if redirectTo == "" {
		return resp.AuthorizationURL, nil
	}

	u, err := url.Parse(resp.AuthorizationURL)
	if err != nil {
		return "", fmt.Errorf("invalid authorize url: %v", err)
	}
	q := u.Query()
	q.Set("redirect_to", redirectTo)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (su *SupabaseRepo) GetProfile(ctx context.Context, id uuid.UUID, accessToken string) (*Profile, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID: %w", ErrInvalidInput)
	}

	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %v", err)
	}

	raw, status, err := client.From(ProfileTable).
		Select(profileColumns, "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		if status != 0 {
			return nil, fmt.Errorf("postgrest error: status=%d body=%s err=%v", status, string(raw), err)
		}
		return nil, fmt.Errorf("failed to get profile by ID: %v", err)
	}

	// Supabase returns an array even for single results
	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile rows: %v", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return &profiles[0], nil
}

func (su *SupabaseRepo) UpsertProfile(ctx context.Context, profile *Profile, accessToken string) (*Profile, error) {
	if profile == nil || profile.ID == uuid.Nil {
		return nil, fmt.Errorf("invalid profile: %w", ErrInvalidInput)
	}

	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %v", err)
	}

	raw, _, err := client.From(ProfileTable).
		Upsert(profile, "id", "representation", "exact").
		Execute()
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "unique constraint") && strings.Contains(errMsg, "username") {
			return nil, fmt.Errorf("username already taken: %w", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to save profile: %v", err)
	}

	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal saved profile: %v", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profile data returned after save")
	}
	return &profiles[0], nil
}
