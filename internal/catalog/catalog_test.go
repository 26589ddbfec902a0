package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshua-takyi/spotlight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
events:
  - id: "1"
    title: Afrobeats Night
    date: Saturday, May 10th
    location: Lekki, Lagos
    price: Free
    category: Music
  - id: "2"
    title: Suya Spot
    date: Friday, June 20th
    location: Wuse, Abuja
    city: Abuja
    price: "₦2,500"
    category: Food
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	ctx := context.Background()
	posts, err := c.ListPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Afrobeats Night", posts[0].Title)
	assert.Equal(t, "₦2,500", posts[1].Price)

	p, err := c.GetPost(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Suya Spot", p.Title)

	_, err = c.GetPost(ctx, "9")
	assert.True(t, errors.Is(err, models.ErrNotFound))

	cities, err := c.ListCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Abuja", "Lagos"}, cities)

	byIDs, err := c.GetPostsByIDs(ctx, []string{"2", "7", "1"})
	require.NoError(t, err)
	require.Len(t, byIDs, 2)
	assert.Equal(t, "2", byIDs[0].ID)
}

func TestListPostsReturnsCopy(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	posts, _ := c.ListPosts(context.Background())
	posts[0].Title = "changed"

	again, _ := c.ListPosts(context.Background())
	assert.Equal(t, "Afrobeats Night", again[0].Title)
}

func TestParseRejectsBadEntries(t *testing.T) {
	_, err := Parse([]byte("events:\n  - id: \"1\"\n    title: A\n  - id: \"1\"\n    title: B\n"))
	assert.ErrorContains(t, err, "duplicate id")

	_, err = Parse([]byte("events:\n  - id: \"1\"\n"))
	assert.ErrorContains(t, err, "missing title")

	_, err = Parse([]byte("events: [\n"))
	assert.Error(t, err)
}
