// Package testutil provides in-memory repositories and token helpers for
// handler, middleware and service tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joshua-takyi/spotlight/internal/catalog"
	"github.com/joshua-takyi/spotlight/internal/discovery"
	"github.com/joshua-takyi/spotlight/internal/helpers"
	"github.com/joshua-takyi/spotlight/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/gotrue-go/types"
)

const (
	JWTSecret    = "test-secret"
	GoodPassword = "Secret#123"
)

// Catalog returns a small fixed store of posts.
func Catalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]discovery.Record{
		{ID: "1", Title: "Afrobeats Night", Date: "Saturday, May 10th", Location: "Lekki, Lagos", Price: "Free", Category: "Music"},
		{ID: "2", Title: "Lagos Tech Fest", Date: "Sunday, June 1st", Location: "Victoria Island, Lagos", Price: "₦5,000", Category: "Tech", Image: "https://cdn.example.com/tech.jpg"},
		{ID: "3", Title: "Suya Spot", Date: "Friday, June 20th", Location: "Wuse, Abuja", Price: "₦2,500", Category: "Food"},
		{ID: "4", Title: "Eko Hotel", Date: "Monday, July 7th", Location: "Victoria Island, Lagos", Price: "₦85,000", Category: "Hotel"},
	})
	require.NoError(t, err)
	return c
}

// Token signs an HS256 access token for sub that HMACValidator(JWTSecret) accepts.
func Token(t *testing.T, sub uuid.UUID, email string, ttl time.Duration) string {
	t.Helper()
	claims := &helpers.CustomClaims{Email: email, Role: "authenticated"}
	claims.Subject = sub.String()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(JWTSecret))
	require.NoError(t, err)
	return tok
}

type Comments struct {
	mu       sync.Mutex
	comments []*models.Comment
}

func (m *Comments) CreateComment(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments = append(m.comments, c)
	return c, nil
}

// GetCommentsByPost returns newest first, like the Mongo repo.
func (m *Comments) GetCommentsByPost(ctx context.Context, postId string, limit int) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Comment{}
	for i := len(m.comments) - 1; i >= 0; i-- {
		if m.comments[i].PostID == postId {
			out = append(out, m.comments[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type Saved struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*models.SavedPosts
	tick time.Time
}

func NewSaved() *Saved {
	return &Saved{
		docs: map[uuid.UUID]*models.SavedPosts{},
		tick: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *Saved) SavePost(ctx context.Context, userId uuid.UUID, postId string) (*models.SavedPosts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[userId]
	if !ok {
		doc = &models.SavedPosts{UserID: userId, Items: map[string]models.SavedItem{}}
		m.docs[userId] = doc
	}
	// each save is a minute after the previous one so ordering is observable
	m.tick = m.tick.Add(time.Minute)
	doc.Items[postId] = models.SavedItem{PostID: postId, SavedAt: m.tick}
	return doc, nil
}

func (m *Saved) UnsavePost(ctx context.Context, userId uuid.UUID, postId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc, ok := m.docs[userId]; ok {
		delete(doc.Items, postId)
	}
	return nil
}

func (m *Saved) GetSavedPosts(ctx context.Context, userId uuid.UUID) (*models.SavedPosts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc, ok := m.docs[userId]; ok {
		return doc, nil
	}
	return &models.SavedPosts{UserID: userId, Items: map[string]models.SavedItem{}}, nil
}

// Users is an identity provider double. SignIn accepts GoodPassword for any
// signed-up email and issues tokens signed with JWTSecret.
type Users struct {
	t        *testing.T
	mu       sync.Mutex
	accounts map[string]uuid.UUID
	profiles map[uuid.UUID]*models.Profile
	// RefreshTokens maps refresh tokens to users.
	RefreshTokens map[string]uuid.UUID
}

func NewUsers(t *testing.T) *Users {
	return &Users{
		t:             t,
		accounts:      map[string]uuid.UUID{},
		profiles:      map[uuid.UUID]*models.Profile{},
		RefreshTokens: map[string]uuid.UUID{},
	}
}

// Account registers email and returns its user id.
func (m *Users) Account(email string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.accounts[email]; ok {
		return id
	}
	id := uuid.New()
	m.accounts[email] = id
	return id
}

func (m *Users) SignUp(ctx context.Context, email, password string) (*types.SignupResponse, error) {
	m.mu.Lock()
	_, exists := m.accounts[email]
	m.mu.Unlock()
	if exists {
		return nil, fmt.Errorf("email already in use: %w", models.ErrInvalidInput)
	}
	m.Account(email)
	return &types.SignupResponse{}, nil
}

func (m *Users) SignIn(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	m.mu.Lock()
	id, ok := m.accounts[email]
	m.mu.Unlock()
	if !ok || password != GoodPassword {
		return nil, fmt.Errorf("invalid login credentials: %w", models.ErrUnauthorized)
	}
	return m.issue(id, email), nil
}

func (m *Users) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	m.mu.Lock()
	id, ok := m.RefreshTokens[refreshToken]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("invalid refresh token: %w", models.ErrUnauthorized)
	}
	return m.issue(id, ""), nil
}

func (m *Users) issue(id uuid.UUID, email string) *types.TokenResponse {
	resp := &types.TokenResponse{}
	resp.AccessToken = Token(m.t, id, email, time.Hour)
	resp.RefreshToken = "refresh-" + id.String()
	resp.ExpiresIn = 3600
	resp.User.ID = id
	resp.User.Email = email
	m.mu.Lock()
	m.RefreshTokens[resp.RefreshToken] = id
	m.mu.Unlock()
	return resp
}

func (m *Users) AuthorizeURL(ctx context.Context, provider, redirectTo string) (string, error) {
	return "https://auth.example.com/authorize?provider=" + provider + "&redirect_to=" + redirectTo, nil
}

func (m *Users) GetProfile(ctx context.Context, id uuid.UUID, accessToken string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, fmt.Errorf("profile %s: %w", id, models.ErrNotFound)
}

func (m *Users) UpsertProfile(ctx context.Context, profile *models.Profile, accessToken string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *profile
	m.profiles[profile.ID] = &cp
	return profile, nil
}

// Usernames lists stored usernames, sorted.
func (m *Users) Usernames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p.Username)
	}
	sort.Strings(out)
	return out
}
