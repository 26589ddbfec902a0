package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/spotlight/internal/cache"
	"github.com/joshua-takyi/spotlight/internal/discovery"
	"github.com/joshua-takyi/spotlight/internal/helpers"
	"github.com/joshua-takyi/spotlight/internal/metrics"
	"github.com/joshua-takyi/spotlight/internal/models"
)

const citiesTTL = 10 * time.Minute

type PostService struct {
	postsRepo models.PostsRepo
	pipeline  *discovery.Pipeline
	cache     *cache.Client
	images    *helpers.ImageResolver
	listTTL   time.Duration
	pageSize  int
}

type PostServiceOption func(*PostService)

// WithCache caches first pages and the city list. A nil client disables caching.
func WithCache(c *cache.Client, ttl time.Duration) PostServiceOption {
	return func(ps *PostService) {
		ps.cache = c
		ps.listTTL = ttl
	}
}

func WithImageResolver(r *helpers.ImageResolver) PostServiceOption {
	return func(ps *PostService) { ps.images = r }
}

func WithPageSize(size int) PostServiceOption {
	return func(ps *PostService) { ps.pageSize = size }
}

func WithClock(clock discovery.Clock) PostServiceOption {
	return func(ps *PostService) { ps.pipeline.Clock = clock }
}

func NewPostService(postsRepo models.PostsRepo, opts ...PostServiceOption) *PostService {
	ps := &PostService{
		postsRepo: postsRepo,
		pipeline:  discovery.NewPipeline(),
		pageSize:  discovery.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(ps)
	}
	return ps
}

// ListPosts runs the listing pipeline for sel. Only first pages are cached;
// later pages are cheap to recompute and rarely repeated.
func (ps *PostService) ListPosts(ctx context.Context, sel discovery.Selection) (*discovery.Page, error) {
	if sel.PageSize == 0 {
		sel.PageSize = ps.pageSize
	}
	sel = sel.Normalize()

	cacheable := ps.cache != nil && sel.Page == 1
	viewKey := sel.Key()
	if discovery.IsRelativeDate(sel.Date) {
		viewKey += "|month=" + ps.pipeline.Now().Format("2006-01")
	}
	key := cache.ListKey(viewKey, sel.Page)
	if cacheable {
		var cached discovery.Page
		found, err := ps.cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			metrics.CacheLookups.WithLabelValues("error").Inc()
			slog.Warn("listing cache read failed", "error", err)
		case found:
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return &cached, nil
		default:
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		}
	}

	records, err := ps.postsRepo.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	page := ps.pipeline.Query(records, sel)
	metrics.PostsListed.Observe(float64(page.Total))
	for i := range page.Items {
		page.Items[i] = ps.images.ResolveRecord(page.Items[i])
	}

	if cacheable {
		if err := ps.cache.Set(ctx, key, page, ps.listTTL); err != nil {
			slog.Warn("listing cache write failed", "error", err)
		}
	}
	return &page, nil
}

// Search is ListPosts with a free-text query. An empty query is rejected so
// that search never degrades into an unfiltered listing.
func (ps *PostService) Search(ctx context.Context, q string, sel discovery.Selection) (*discovery.Page, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("search query is required: %w", models.ErrInvalidInput)
	}
	sel.Query = q
	return ps.ListPosts(ctx, sel)
}

func (ps *PostService) GetPost(ctx context.Context, id string) (*discovery.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("post id is required: %w", models.ErrInvalidInput)
	}
	post, err := ps.postsRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	resolved := ps.images.ResolveRecord(*post)
	return &resolved, nil
}

// GetPostsByIDs resolves ids to records in the order given, skipping ids
// that no longer exist.
func (ps *PostService) GetPostsByIDs(ctx context.Context, ids []string) ([]discovery.Record, error) {
	posts, err := ps.postsRepo.GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i] = ps.images.ResolveRecord(posts[i])
	}
	return posts, nil
}

func (ps *PostService) Cities(ctx context.Context) ([]string, error) {
	if ps.cache != nil {
		var cached []string
		found, err := ps.cache.Get(ctx, cache.CitiesKey, &cached)
		switch {
		case err != nil:
			metrics.CacheLookups.WithLabelValues("error").Inc()
			slog.Warn("cities cache read failed", "error", err)
		case found:
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		}
	}

	cities, err := ps.postsRepo.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	if ps.cache != nil {
		if err := ps.cache.Set(ctx, cache.CitiesKey, cities, citiesTTL); err != nil {
			slog.Warn("cities cache write failed", "error", err)
		}
	}
	return cities, nil
}

// Exists reports whether a post with id is in the store.
func (ps *PostService) Exists(ctx context.Context, id string) (bool, error) {
	_, err := ps.postsRepo.GetPost(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	return false, err
}
