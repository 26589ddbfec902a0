package apiclient

import (
	"context"
	"net/http"

	"github.com/joshua-takyi/spotlight/internal/models"
)

type Session struct {
	UserID    string `json:"user_id"`
	State     string `json:"state"`
	ExpiresIn int    `json:"expires_in"`
}

type Status struct {
	UserID string `json:"user_id"`
	State  string `json:"state"`
}

type completion struct {
	State   string          `json:"state"`
	Profile *models.Profile `json:"profile"`
}

func (c *Client) SignUp(ctx context.Context, email, password string) error {
	_, err := do[any](ctx, c, http.MethodPost, "/auth/signup", nil, models.SignupRequest{Email: email, Password: password})
	return err
}

// Login signs in; the session cookies are kept by the client's cookie jar.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	res, err := do[Session](ctx, c, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := do[any](ctx, c, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

func (c *Client) AuthStatus(ctx context.Context) (*Status, error) {
	res, err := do[Status](ctx, c, http.MethodGet, "/auth/status", nil, nil)
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (c *Client) CompleteProfile(ctx context.Context, req models.ProfileCompletion) (*models.Profile, error) {
	res, err := do[completion](ctx, c, http.MethodPost, "/auth/complete-profile", nil, req)
	if err != nil {
		return nil, err
	}
	return res.Data.Profile, nil
}
