package helpers

import (
	"testing"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/spotlight/internal/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestHMACValidator(t *testing.T) {
	v := NewHMACValidator("s3cret")

	claims := &CustomClaims{Email: "ada@example.com"}
	claims.Subject = "3f1f0d4e-6f55-4a57-a2a0-1f5b1f7f0c11"
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))

	got, err := v.ValidateToken(signed(t, "s3cret", claims))
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, claims.Subject, got.Subject)

	_, err = v.ValidateToken(signed(t, "other", claims))
	assert.Error(t, err)

	expired := &CustomClaims{}
	expired.Subject = claims.Subject
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	_, err = v.ValidateToken(signed(t, "s3cret", expired))
	assert.Error(t, err)

	noSub := &CustomClaims{}
	noSub.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	_, err = v.ValidateToken(signed(t, "s3cret", noSub))
	assert.Error(t, err)

	_, err = v.ValidateToken("")
	assert.Error(t, err)
}

func TestJWKSURL(t *testing.T) {
	assert.Equal(t, "https://abc.supabase.co/auth/v1/.well-known/jwks.json", JWKSURL("https://abc.supabase.co/"))
}

func TestIsPasswordStrong(t *testing.T) {
	assert.True(t, IsPasswordStrong("Sup3r$ecret"))
	assert.False(t, IsPasswordStrong("short1!"))
	assert.False(t, IsPasswordStrong("alllowercase1!"))
	assert.False(t, IsPasswordStrong("NoDigits!!"))
}

func TestImageResolver(t *testing.T) {
	var none *ImageResolver
	assert.Equal(t, discovery.PlaceholderImage, none.Resolve(""))
	assert.Equal(t, "cover.jpg", none.Resolve("cover.jpg"))

	cld, err := cloudinary.NewFromParams("demo", "key", "secret")
	require.NoError(t, err)
	r := NewImageResolver(cld)

	assert.Equal(t, "https://cdn.example.com/a.jpg", r.Resolve("https://cdn.example.com/a.jpg"))
	assert.Equal(t, "/images/local.png", r.Resolve("/images/local.png"))

	url := r.Resolve("events/party")
	assert.Contains(t, url, "res.cloudinary.com/demo")
	assert.Contains(t, url, "events/party")

	rec := r.ResolveRecord(discovery.Record{ID: "1", Title: "x"})
	assert.Equal(t, discovery.PlaceholderImage, rec.Image)
	assert.Equal(t, discovery.PriceFree, rec.Price)
}

func TestEnhancedClaims(t *testing.T) {
	c := &EnhancedClaims{UserID: "u1"}
	assert.True(t, c.CanActFor("u1"))
	assert.False(t, c.CanActFor("u2"))

	c.Role = "admin"
	assert.True(t, c.CanActFor("u2"))
}
