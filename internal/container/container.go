package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/spotlight/internal/cache"
	"github.com/joshua-takyi/spotlight/internal/config"
	"github.com/joshua-takyi/spotlight/internal/helpers"
	"github.com/joshua-takyi/spotlight/internal/middleware"
	"github.com/joshua-takyi/spotlight/internal/models"
	"github.com/joshua-takyi/spotlight/internal/services"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary
	// Database clients
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client
	Cache          *cache.Client

	Auth           *middleware.Auth
	UserService    *services.UserService
	PostService    *services.PostService
	CommentService *services.CommentService
	SavedService   *services.SavedService
}

// Deps are the external clients the container wires together. Supabase,
// Cache, Cloudinary and Validator are optional. Posts, Comments, Saved and
// Users replace the default MongoDB and Supabase stores, for example with a
// static catalog.
type Deps struct {
	Cloudinary     *cloudinary.Cloudinary
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client
	Cache          *cache.Client
	Validator      helpers.TokenValidator

	Posts    models.PostsRepo
	Comments models.CommentsRepo
	Saved    models.SavedRepo
	Users    models.UserRepo
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger, deps Deps) *Container {
	// Initialize repositories
	mongoRepo := models.MongodbNewRepo(deps.MongoDBClient, cfg.MongoDBDatabase)

	var posts models.PostsRepo = mongoRepo
	if deps.Posts != nil {
		posts = deps.Posts
	}
	var comments models.CommentsRepo = mongoRepo
	if deps.Comments != nil {
		comments = deps.Comments
	}
	var saved models.SavedRepo = mongoRepo
	if deps.Saved != nil {
		saved = deps.Saved
	}

	users := deps.Users
	if users == nil && deps.SupabaseClient != nil {
		users = models.SupabaseNewRepo(deps.SupabaseClient, cfg.SupabaseURL, cfg.SupabaseAnonKey)
	}

	postService := services.NewPostService(posts,
		services.WithCache(deps.Cache, cfg.CacheTTLList),
		services.WithImageResolver(helpers.NewImageResolver(deps.Cloudinary)),
		services.WithPageSize(cfg.PageSize),
	)
	userService := services.NewUserService(users)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Cloudinary:     deps.Cloudinary,
		SupabaseClient: deps.SupabaseClient,
		MongoDBClient:  deps.MongoDBClient,
		Cache:          deps.Cache,
		Auth:           middleware.NewAuth(deps.Validator, userService, logger, cfg.IsProduction()),
		UserService:    userService,
		PostService:    postService,
		CommentService: services.NewCommentService(comments, postService),
		SavedService:   services.NewSavedService(saved, postService),
	}
}
