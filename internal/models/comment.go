package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CommentsColName = "comments"
	MaxCommentsPage = 200
)

type Comment struct {
	ID        uuid.UUID `bson:"id" json:"id"`
	PostID    string    `bson:"post_id" json:"post_id" validate:"required"`
	UserID    uuid.UUID `bson:"user_id" json:"user_id" validate:"required"`
	Username  string    `bson:"username,omitempty" json:"username,omitempty"`
	Rating    int       `bson:"rating,omitempty" json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Text      string    `bson:"text" json:"text" validate:"required,max=2000"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type CommentsRepo interface {
	CreateComment(ctx context.Context, comment *Comment) (*Comment, error)
	GetCommentsByPost(ctx context.Context, postId string, limit int) ([]*Comment, error)
}

func (c *Comment) BeforeCreate(now time.Time) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
}

// Sanitize trims free text before validation.
func (c *Comment) Sanitize() {
	c.PostID = strings.TrimSpace(c.PostID)
	c.Username = strings.TrimSpace(c.Username)
	c.Text = strings.TrimSpace(c.Text)
}

func (c *Comment) ValidateComment() error {
	if err := Validate.Struct(c); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	return nil
}

func (mdb *MongodbRepo) CreateComment(ctx context.Context, comment *Comment) (*Comment, error) {
	col, err := mdb.GetCollection(CommentsColName)
	if err != nil {
		return nil, err
	}
	if _, err := col.InsertOne(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to insert comment into database: %w", err)
	}
	return comment, nil
}

func (mdb *MongodbRepo) GetCommentsByPost(ctx context.Context, postId string, limit int) ([]*Comment, error) {
	col, err := mdb.GetCollection(CommentsColName)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > MaxCommentsPage {
		limit = MaxCommentsPage
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{"post_id": postId}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := make([]*Comment, 0)
	for cursor.Next(ctx) {
		var c Comment
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("error decoding comment: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return comments, nil
}
