package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joshua-takyi/spotlight/internal/models"
)

type CommentService struct {
	commentsRepo models.CommentsRepo
	posts        *PostService
}

func NewCommentService(commentsRepo models.CommentsRepo, posts *PostService) *CommentService {
	return &CommentService{
		commentsRepo: commentsRepo,
		posts:        posts,
	}
}

// ListComments returns the newest comments of a post first.
func (cs *CommentService) ListComments(ctx context.Context, postId string, limit int) ([]*models.Comment, error) {
	postId = strings.TrimSpace(postId)
	if postId == "" {
		return nil, fmt.Errorf("post id is required: %w", models.ErrInvalidInput)
	}
	return cs.commentsRepo.GetCommentsByPost(ctx, postId, limit)
}

func (cs *CommentService) AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if comment == nil {
		return nil, fmt.Errorf("comment is required: %w", models.ErrInvalidInput)
	}
	comment.Sanitize()
	comment.BeforeCreate(time.Now())
	if err := comment.ValidateComment(); err != nil {
		return nil, err
	}

	exists, err := cs.posts.Exists(ctx, comment.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("post %s: %w", comment.PostID, models.ErrNotFound)
	}

	return cs.commentsRepo.CreateComment(ctx, comment)
}
