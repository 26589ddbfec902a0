package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/joshua-takyi/spotlight/internal/discovery"
	"github.com/joshua-takyi/spotlight/internal/models"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel requests in CommentsForPosts.
const DefaultConcurrency = 4

func selectionQuery(sel discovery.Selection) url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("category", sel.Category)
	set("date", sel.Date)
	set("neighborhood", sel.Neighborhood)
	set("price", sel.Price)
	set("city", sel.City)
	set("name", sel.Name)
	set("q", sel.Query)
	if sel.Sort != "" && sel.Sort != discovery.SortNone {
		q.Set("sort", string(sel.Sort))
	}
	if sel.Page > 0 {
		q.Set("page", strconv.Itoa(sel.Page))
	}
	if sel.PageSize > 0 {
		q.Set("limit", strconv.Itoa(sel.PageSize))
	}
	return q
}

func toPage(res *Result[[]discovery.Record]) *discovery.Page {
	page := &discovery.Page{Items: res.Data}
	if page.Items == nil {
		page.Items = []discovery.Record{}
	}
	if m := res.Meta; m != nil {
		page.Page = m.Page
		page.PageSize = m.Limit
		page.Total = m.Total
		page.TotalPages = m.TotalPages
		page.HasMore = m.HasMore
	}
	return page
}

func (c *Client) ListPosts(ctx context.Context, sel discovery.Selection) (*discovery.Page, error) {
	res, err := do[[]discovery.Record](ctx, c, http.MethodGet, "/posts", selectionQuery(sel), nil)
	if err != nil {
		return nil, err
	}
	return toPage(res), nil
}

func (c *Client) Search(ctx context.Context, q string, sel discovery.Selection) (*discovery.Page, error) {
	sel.Query = q
	res, err := do[[]discovery.Record](ctx, c, http.MethodGet, "/search", selectionQuery(sel), nil)
	if err != nil {
		return nil, err
	}
	return toPage(res), nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*discovery.Record, error) {
	res, err := do[discovery.Record](ctx, c, http.MethodGet, "/posts/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (c *Client) Cities(ctx context.Context) ([]string, error) {
	res, err := do[[]string](ctx, c, http.MethodGet, "/cities", nil, nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	res, err := do[[]models.Comment](ctx, c, http.MethodGet, "/posts/"+url.PathEscape(postID)+"/comments", nil, nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// CommentsForPosts fetches the comments of several posts with at most
// concurrency requests in flight. Results are in the order of postIDs; the
// first failure cancels the remaining requests.
func (c *Client) CommentsForPosts(ctx context.Context, postIDs []string, concurrency int) ([][]models.Comment, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	out := make([][]models.Comment, len(postIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range postIDs {
		i, id := i, id
		g.Go(func() error {
			comments, err := c.Comments(ctx, id)
			if err != nil {
				return err
			}
			out[i] = comments
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddComment(ctx context.Context, postID, text string, rating int) (*models.Comment, error) {
	body := map[string]any{"text": text}
	if rating > 0 {
		body["rating"] = rating
	}
	res, err := do[models.Comment](ctx, c, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/comments", nil, body)
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// SavePost saves postID for userID and returns the saved ids, newest first.
func (c *Client) SavePost(ctx context.Context, userID, postID string) ([]string, error) {
	res, err := do[[]string](ctx, c, http.MethodPost, "/users/"+url.PathEscape(userID)+"/save", nil, map[string]string{"post_id": postID})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) UnsavePost(ctx context.Context, userID, postID string) error {
	_, err := do[any](ctx, c, http.MethodDelete, "/users/"+url.PathEscape(userID)+"/save/"+url.PathEscape(postID), nil, nil)
	return err
}

func (c *Client) SavedPosts(ctx context.Context, userID string) ([]discovery.Record, error) {
	res, err := do[[]discovery.Record](ctx, c, http.MethodGet, "/users/"+url.PathEscape(userID)+"/saved-posts", nil, nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}
