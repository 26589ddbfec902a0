package routes

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/spotlight/internal/container"
	"github.com/joshua-takyi/spotlight/internal/handlers"
	"github.com/joshua-takyi/spotlight/internal/metrics"
	"github.com/joshua-takyi/spotlight/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	cfg := container.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	origins := allowedOrigins(cfg.FrontendURL)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(metrics.Middleware())
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := container.Auth
	authOpts := handlers.AuthOptions{
		FrontendURL:   origins[0],
		SecureCookies: cfg.IsProduction(),
	}

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "spotlight-api",
				"auth":    auth.Enabled(),
				"cache":   container.Cache != nil,
			})
		})

		// public routes
		api.GET("/posts", handlers.ListPosts(container.PostService))
		api.GET("/posts/:id", handlers.GetPost(container.PostService))
		api.GET("/posts/:id/comments", handlers.ListComments(container.CommentService))
		api.GET("/cities", handlers.ListCities(container.PostService))
		api.GET("/search", handlers.Search(container.PostService))
	}

	authRoutes := api.Group("/auth")
	authRoutes.Use(auth.RequireEnabled())
	{
		authRoutes.POST("/signup", handlers.SignUp(container.UserService))
		authRoutes.POST("/login", handlers.Login(container.UserService, authOpts))
		authRoutes.GET("/google", handlers.GoogleAuth(container.UserService, authOpts))
		authRoutes.GET("/callback", handlers.GoogleAuthCallback(authOpts))
		authRoutes.POST("/logout", handlers.Logout(authOpts))
		authRoutes.POST("/complete-profile", auth.Required(), handlers.CompleteProfile(container.UserService))
		authRoutes.GET("/status", auth.Required(), handlers.AuthStatus())
	}

	protected := api.Group("/")
	protected.Use(auth.Required())
	{
		protected.GET("/profile", handlers.Profile())
		protected.POST("/posts/:id/comments", handlers.AddComment(container.CommentService))
	}

	userRoutes := protected.Group("/users/:uid")
	{
		userRoutes.POST("/save", handlers.SavePost(container.SavedService))
		userRoutes.DELETE("/save/:postId", handlers.UnsavePost(container.SavedService))
		userRoutes.GET("/saved-posts", handlers.ListSaved(container.SavedService))
	}

	return r
}

// allowedOrigins splits a comma-separated FRONTEND_URL list.
func allowedOrigins(frontendURL string) []string {
	var origins []string
	for _, o := range strings.Split(frontendURL, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return origins
}
