package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/spotlight/internal/middleware"
	"github.com/joshua-takyi/spotlight/internal/models"
	"github.com/joshua-takyi/spotlight/internal/services"
)

// AuthOptions carries the deployment settings auth handlers depend on.
type AuthOptions struct {
	FrontendURL   string
	SecureCookies bool
}

func (o AuthOptions) frontend(path string) string {
	return strings.TrimRight(o.FrontendURL, "/") + path
}

func SignUp(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		if _, err := u.SignUp(c.Request.Context(), req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"state": models.AuthStateAuth,
		}, "Account created, please sign in"))
	}
}

// Login signs in with email and password. Tokens are only set as cookies;
// the body reports which signup step the user is at.
func Login(u *services.UserService, opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		tokens, err := u.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		if tokens.AccessToken == "" {
			respondError(c, models.ErrUnauthorized)
			return
		}
		middleware.SetAuthCookies(c, tokens, opts.SecureCookies)

		state, _, err := u.AuthState(c.Request.Context(), tokens.User.ID, tokens.AccessToken)
		if err != nil {
			state = models.AuthStateProfileCompletion
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"user_id":    tokens.User.ID,
			"state":      state,
			"expires_in": tokens.ExpiresIn,
		}, "Signed in"))
	}
}

// GoogleAuth redirects to the identity provider's Google consent page.
func GoogleAuth(u *services.UserService, opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		redirectTo := c.Query("redirect_to")
		if redirectTo == "" {
			redirectTo = opts.frontend("/auth/callback")
		}

		authURL, err := u.GoogleAuthURL(c.Request.Context(), redirectTo)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

// GoogleAuthCallback forwards provider errors to the sign-in page. Tokens
// arrive as URL fragments, which only the browser can read, so successful
// sign-ins are forwarded to the frontend callback page.
func GoogleAuthCallback(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if errCode := c.Query("error"); errCode != "" {
			q := url.Values{}
			q.Set("error", errCode)
			q.Set("error_description", c.Query("error_description"))
			c.Redirect(http.StatusTemporaryRedirect, opts.frontend("/auth/signin?"+q.Encode()))
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, opts.frontend("/auth/callback"))
	}
}

func Logout(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.ClearAuthCookies(c, opts.SecureCookies)
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Logged out successfully"))
	}
}

func CompleteProfile(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, userId, ok := currentUser(c)
		if !ok {
			return
		}

		var req models.ProfileCompletion
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		profile, err := u.CompleteProfile(c.Request.Context(), userId, claims.Email, req, claims.AccessToken)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"state":   models.AuthState(profile),
			"profile": profile,
		}, "Profile completed"))
	}
}

// AuthStatus reports the signup step of the signed-in user.
func AuthStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := currentUser(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"state":   claims.AuthState,
			"user_id": claims.UserID,
		}, ""))
	}
}

func Profile() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := currentUser(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(claims, ""))
	}
}
