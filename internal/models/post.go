package models

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/joshua-takyi/spotlight/internal/discovery"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PostsColName = "posts"
	// MaxStorePosts bounds how many posts one listing pulls into memory.
	MaxStorePosts = 2000
)

// PostsRepo is the event store the listing pipeline reads from.
type PostsRepo interface {
	ListPosts(ctx context.Context) ([]discovery.Record, error)
	GetPost(ctx context.Context, id string) (*discovery.Record, error)
	GetPostsByIDs(ctx context.Context, ids []string) ([]discovery.Record, error)
	ListCities(ctx context.Context) ([]string, error)
}

func (mdb *MongodbRepo) ListPosts(ctx context.Context) ([]discovery.Record, error) {
	col, err := mdb.GetCollection(PostsColName)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(MaxStorePosts)

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := make([]discovery.Record, 0)
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("error decoding posts: %w", err)
	}
	return posts, nil
}

func (mdb *MongodbRepo) GetPost(ctx context.Context, id string) (*discovery.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("post id is required: %w", ErrInvalidInput)
	}
	col, err := mdb.GetCollection(PostsColName)
	if err != nil {
		return nil, err
	}

	var post discovery.Record
	err = col.FindOne(ctx, bson.M{"id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error finding post: %w", err)
	}
	return &post, nil
}

// GetPostsByIDs returns the posts that exist among ids, in the order of ids.
func (mdb *MongodbRepo) GetPostsByIDs(ctx context.Context, ids []string) ([]discovery.Record, error) {
	if len(ids) == 0 {
		return []discovery.Record{}, nil
	}
	col, err := mdb.GetCollection(PostsColName)
	if err != nil {
		return nil, err
	}

	cursor, err := col.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("error finding posts: %w", err)
	}
	defer cursor.Close(ctx)

	var found []discovery.Record
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("error decoding posts: %w", err)
	}
	return OrderByIDs(found, ids), nil
}

func (mdb *MongodbRepo) ListCities(ctx context.Context) ([]string, error) {
	col, err := mdb.GetCollection(PostsColName)
	if err != nil {
		return nil, err
	}

	values, err := col.Distinct(ctx, "city", bson.M{"city": bson.M{"$nin": bson.A{"", nil}}})
	if err != nil {
		return nil, fmt.Errorf("error listing cities: %w", err)
	}

	cities := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			cities = append(cities, s)
		}
	}
	return SortCities(cities), nil
}

// OrderByIDs arranges records in the order their ids appear in ids,
// dropping ids with no record.
func OrderByIDs(records []discovery.Record, ids []string) []discovery.Record {
	byID := make(map[string]discovery.Record, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	out := make([]discovery.Record, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// SortCities trims, de-duplicates case-insensitively and sorts city names.
func SortCities(cities []string) []string {
	seen := make(map[string]bool, len(cities))
	out := make([]string, 0, len(cities))
	for _, c := range cities {
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out
}
