package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/spotlight/internal/helpers"
	"github.com/joshua-takyi/spotlight/internal/models"
	"github.com/joshua-takyi/spotlight/internal/services"
	"github.com/supabase-community/gotrue-go/types"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
	refreshTokenMaxAge = 3600 * 24 * 30 // 30 days

	claimsKey = "user"
)

// Auth authenticates requests with the identity provider's tokens.
type Auth struct {
	validator     helpers.TokenValidator
	users         *services.UserService
	logger        *slog.Logger
	secureCookies bool
}

// NewAuth returns an authenticator. A nil validator or a disabled user
// service leaves auth unavailable: protected routes answer 503.
func NewAuth(validator helpers.TokenValidator, users *services.UserService, logger *slog.Logger, secureCookies bool) *Auth {
	return &Auth{
		validator:     validator,
		users:         users,
		logger:        logger,
		secureCookies: secureCookies,
	}
}

func (a *Auth) Enabled() bool {
	return a != nil && a.validator != nil && a.users.Enabled()
}

// RequireEnabled answers 503 when no identity provider is configured.
func (a *Auth) RequireEnabled() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, models.ErrorResponse(models.ErrAuthUnavailable.Error()))
			return
		}
		c.Next()
	}
}

// Required rejects requests without a valid session.
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, models.ErrorResponse(models.ErrAuthUnavailable.Error()))
			return
		}
		claims, err := a.authenticate(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ApiResponse{
				Success: false,
				Message: "Unauthorized access",
				Error:   err.Error(),
			})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Optional attaches claims when a valid session is present and otherwise
// lets the request through anonymously.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.Enabled() {
			if claims, err := a.authenticate(c); err == nil {
				c.Set(claimsKey, claims)
			}
		}
		c.Next()
	}
}

func (a *Auth) authenticate(c *gin.Context) (*helpers.EnhancedClaims, error) {
	token := bearerOrCookie(c)
	var claims *helpers.CustomClaims
	var err error
	if token != "" {
		claims, err = a.validator.ValidateToken(token)
	}

	if token == "" || err != nil {
		// Token missing or invalid, try to refresh
		refreshToken, cookieErr := c.Cookie(RefreshTokenCookie)
		if cookieErr != nil || refreshToken == "" {
			if err == nil {
				err = models.ErrUnauthorized
			}
			return nil, err
		}

		tokens, refreshErr := a.users.RefreshToken(c.Request.Context(), refreshToken)
		if refreshErr != nil || tokens.AccessToken == "" {
			a.logger.Info("Token refresh failed", "error", refreshErr)
			return nil, models.ErrUnauthorized
		}
		SetAuthCookies(c, tokens, a.secureCookies)

		token = tokens.AccessToken
		claims, err = a.validator.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		a.logger.Info("Token refreshed successfully", "user_id", claims.Subject)
	}

	return a.enrich(c, claims, token), nil
}

// enrich adds profile data and the signup state to the token claims.
func (a *Auth) enrich(c *gin.Context, claims *helpers.CustomClaims, token string) *helpers.EnhancedClaims {
	enhanced := &helpers.EnhancedClaims{
		CustomClaims: claims,
		Role:         claims.Role,
		UserID:       claims.Subject,
		Email:        claims.Email,
		AccessToken:  token,
		AuthState:    models.AuthStateProfileCompletion,
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		a.logger.Error("Invalid user ID in token", "user_id", claims.Subject, "error", err)
		return enhanced
	}
	state, profile, err := a.users.AuthState(c.Request.Context(), userID, token)
	if err != nil {
		a.logger.Info("Profile lookup failed", "user_id", claims.Subject, "error", err)
		return enhanced
	}
	enhanced.AuthState = state
	if profile != nil {
		enhanced.Username = profile.Username
		enhanced.Fullname = profile.FullName
		enhanced.City = profile.City
		enhanced.AvatarURL = profile.AvatarURL
	}
	return enhanced
}

func bearerOrCookie(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	token, _ := c.Cookie(AccessTokenCookie)
	return token
}

// GetClaims returns the claims set by Required or Optional.
func GetClaims(c *gin.Context) (*helpers.EnhancedClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*helpers.EnhancedClaims)
	return claims, ok
}

func SetAuthCookies(c *gin.Context, tokens *types.TokenResponse, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, tokens.AccessToken, tokens.ExpiresIn, "/", "", secure, true)
	if tokens.RefreshToken != "" {
		c.SetCookie(RefreshTokenCookie, tokens.RefreshToken, refreshTokenMaxAge, "/", "", secure, true)
	}
}

func ClearAuthCookies(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", secure, true)
}
