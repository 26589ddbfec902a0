package helpers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenValidator checks an access token issued by the identity provider.
type TokenValidator interface {
	ValidateToken(tokenStr string) (*CustomClaims, error)
}

// JWKSValidator verifies asymmetric tokens against the provider's published
// keys. Keys are fetched once and refreshed in the background.
type JWKSValidator struct {
	jwks *keyfunc.JWKS
}

func JWKSURL(supabaseURL string) string {
	return strings.TrimRight(supabaseURL, "/") + "/auth/v1/.well-known/jwks.json"
}

func NewJWKSValidator(ctx context.Context, supabaseURL string, onRefreshError func(error)) (*JWKSValidator, error) {
	if supabaseURL == "" {
		return nil, errors.New("SUPABASE_URL not set")
	}

	jwks, err := keyfunc.Get(JWKSURL(supabaseURL), keyfunc.Options{
		Ctx:                 ctx,
		RefreshInterval:     time.Hour,
		RefreshRateLimit:    5 * time.Minute,
		RefreshTimeout:      10 * time.Second,
		RefreshUnknownKID:   true,
		RefreshErrorHandler: onRefreshError,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS: %v", err)
	}
	return &JWKSValidator{jwks: jwks}, nil
}

func (v *JWKSValidator) ValidateToken(tokenStr string) (*CustomClaims, error) {
	return parseClaims(tokenStr, v.jwks.Keyfunc)
}

func (v *JWKSValidator) Close() {
	v.jwks.EndBackground()
}

// HMACValidator verifies tokens signed with the project's shared JWT secret.
type HMACValidator struct {
	secret []byte
}

func NewHMACValidator(secret string) *HMACValidator {
	return &HMACValidator{secret: []byte(secret)}
}

func (v *HMACValidator) ValidateToken(tokenStr string) (*CustomClaims, error) {
	return parseClaims(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
}

func parseClaims(tokenStr string, keyFunc jwt.Keyfunc) (*CustomClaims, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return nil, errors.New("empty token")
	}
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, keyFunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

var (
	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	numberRe  = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[@$!%*?&#._-]`)
)

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	return lowerRe.MatchString(password) &&
		upperRe.MatchString(password) &&
		numberRe.MatchString(password) &&
		specialRe.MatchString(password)
}
