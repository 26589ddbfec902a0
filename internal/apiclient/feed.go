package apiclient

import (
	"context"
	"sync"
	"time"

	"github.com/joshua-takyi/spotlight/internal/discovery"
)

// Feed is a "load more" list backed by the API. Each LoadMore fetches the
// next page and appends it; Apply with a different selection starts over.
// Responses that arrive after the selection changed are discarded.
type Feed struct {
	client *Client
	delay  time.Duration
	search bool

	mu  sync.Mutex
	sel discovery.Selection
	acc *discovery.Accumulator
	gen int
}

type FeedOption func(*Feed)

// WithLoadDelay waits d before each page request.
func WithLoadDelay(d time.Duration) FeedOption {
	return func(f *Feed) { f.delay = d }
}

// AsSearch makes the feed page through /search using the selection's Query.
func AsSearch() FeedOption {
	return func(f *Feed) { f.search = true }
}

func NewFeed(client *Client, sel discovery.Selection, opts ...FeedOption) *Feed {
	f := &Feed{
		client: client,
		sel:    sel,
		acc:    discovery.NewAccumulator(sel),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Apply switches to sel and reports whether the list was reset.
func (f *Feed) Apply(sel discovery.Selection) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sel = sel
	if !f.acc.Apply(sel) {
		return false
	}
	f.gen++
	return true
}

// LoadMore fetches and appends the next page, returning only the new items.
// It returns nil once everything has been loaded.
func (f *Feed) LoadMore(ctx context.Context) ([]discovery.Record, error) {
	f.mu.Lock()
	if !f.acc.HasMore() {
		f.mu.Unlock()
		return nil, nil
	}
	sel := f.sel
	sel.Page = f.acc.Next()
	sel.PageSize = f.acc.Size()
	gen := f.gen
	f.mu.Unlock()

	if f.delay > 0 {
		timer := time.NewTimer(f.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	var page *discovery.Page
	var err error
	if f.search {
		page, err = f.client.Search(ctx, sel.Query, sel)
	} else {
		page, err = f.client.ListPosts(ctx, sel)
	}
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return nil, nil
	}
	return f.acc.Add(*page), nil
}

func (f *Feed) Items() []discovery.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return discovery.Clone(f.acc.Shown())
}

func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acc.HasMore()
}
