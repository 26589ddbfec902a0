package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/spotlight/internal/discovery"
	"github.com/joshua-takyi/spotlight/internal/models"
)

type SavedService struct {
	savedRepo models.SavedRepo
	posts     *PostService
}

func NewSavedService(savedRepo models.SavedRepo, posts *PostService) *SavedService {
	return &SavedService{
		savedRepo: savedRepo,
		posts:     posts,
	}
}

// validPostID rejects ids that cannot be used as a document field name.
func validPostID(postId string) error {
	if strings.TrimSpace(postId) == "" {
		return fmt.Errorf("post id cannot be empty: %w", models.ErrInvalidInput)
	}
	if strings.ContainsAny(postId, ".$") {
		return fmt.Errorf("post id contains invalid characters: %w", models.ErrInvalidInput)
	}
	return nil
}

// SavePost adds postId to the user's saved posts. Saving twice is a no-op.
func (ss *SavedService) SavePost(ctx context.Context, userId uuid.UUID, postId string) (*models.SavedPosts, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID: %w", models.ErrInvalidInput)
	}
	postId = strings.TrimSpace(postId)
	if err := validPostID(postId); err != nil {
		return nil, err
	}

	exists, err := ss.posts.Exists(ctx, postId)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("post %s: %w", postId, models.ErrNotFound)
	}

	return ss.savedRepo.SavePost(ctx, userId, postId)
}

func (ss *SavedService) UnsavePost(ctx context.Context, userId uuid.UUID, postId string) error {
	if userId == uuid.Nil {
		return fmt.Errorf("invalid user ID: %w", models.ErrInvalidInput)
	}
	postId = strings.TrimSpace(postId)
	if err := validPostID(postId); err != nil {
		return err
	}
	return ss.savedRepo.UnsavePost(ctx, userId, postId)
}

// ListSaved returns the user's saved posts, most recently saved first.
// Saved ids whose post was removed from the store are skipped.
func (ss *SavedService) ListSaved(ctx context.Context, userId uuid.UUID) ([]discovery.Record, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID: %w", models.ErrInvalidInput)
	}
	saved, err := ss.savedRepo.GetSavedPosts(ctx, userId)
	if err != nil {
		return nil, err
	}
	return ss.posts.GetPostsByIDs(ctx, saved.PostIDs())
}
