package models

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SavedColName = "saved_posts"

type SavedItem struct {
	PostID  string    `bson:"post_id" json:"post_id"`
	SavedAt time.Time `bson:"saved_at" json:"saved_at"`
}

// SavedPosts is one document per user; items are keyed by post id so saving
// twice is a no-op.
type SavedPosts struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    uuid.UUID            `bson:"user_id" json:"user_id"`
	Items     map[string]SavedItem `bson:"items" json:"items"`
	CreatedAt time.Time            `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time            `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// PostIDs returns the saved post ids, most recently saved first.
func (s *SavedPosts) PostIDs() []string {
	if s == nil {
		return []string{}
	}
	items := make([]SavedItem, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].SavedAt.Equal(items[j].SavedAt) {
			return items[i].PostID < items[j].PostID
		}
		return items[i].SavedAt.After(items[j].SavedAt)
	})
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.PostID
	}
	return ids
}

type SavedRepo interface {
	SavePost(ctx context.Context, userId uuid.UUID, postId string) (*SavedPosts, error)
	UnsavePost(ctx context.Context, userId uuid.UUID, postId string) error
	GetSavedPosts(ctx context.Context, userId uuid.UUID) (*SavedPosts, error)
}

func (mdb *MongodbRepo) SavePost(ctx context.Context, userId uuid.UUID, postId string) (*SavedPosts, error) {
	col, err := mdb.GetCollection(SavedColName)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	filter := bson.M{"user_id": userId}

	update := bson.M{
		"$set": bson.M{
			"updated_at": now,
			fmt.Sprintf("items.%s", postId): SavedItem{
				PostID:  postId,
				SavedAt: now,
			},
		},
		"$setOnInsert": bson.M{
			"user_id":    userId,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result SavedPosts
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("error upserting saved post: %w", err)
	}
	return &result, nil
}

func (mdb *MongodbRepo) UnsavePost(ctx context.Context, userId uuid.UUID, postId string) error {
	col, err := mdb.GetCollection(SavedColName)
	if err != nil {
		return err
	}

	filter := bson.M{"user_id": userId}
	update := bson.M{
		"$unset": bson.M{
			fmt.Sprintf("items.%s", postId): "",
		},
		"$set": bson.M{
			"updated_at": time.Now(),
		},
	}

	if _, err := col.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error removing saved post: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetSavedPosts(ctx context.Context, userId uuid.UUID) (*SavedPosts, error) {
	col, err := mdb.GetCollection(SavedColName)
	if err != nil {
		return nil, err
	}

	var saved SavedPosts
	err = col.FindOne(ctx, bson.M{"user_id": userId}).Decode(&saved)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &SavedPosts{UserID: userId, Items: map[string]SavedItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding saved posts: %w", err)
	}
	return &saved, nil
}
