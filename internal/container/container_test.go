package container

import (
	"io"
	"log/slog"
	"testing"

	"github.com/joshua-takyi/spotlight/internal/config"
	"github.com/joshua-takyi/spotlight/internal/helpers"
	"github.com/joshua-takyi/spotlight/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNewContainer_AuthDisabledWithoutProvider(t *testing.T) {
	c := NewContainer(&config.Config{PageSize: 12}, discard, Deps{Posts: testutil.Catalog(t)})

	assert.False(t, c.UserService.Enabled())
	assert.False(t, c.Auth.Enabled())
	assert.Nil(t, c.Cache)
	assert.NotNil(t, c.PostService)
	assert.NotNil(t, c.CommentService)
	assert.NotNil(t, c.SavedService)
}

func TestNewContainer_Overrides(t *testing.T) {
	c := NewContainer(&config.Config{PageSize: 12}, discard, Deps{
		Posts:     testutil.Catalog(t),
		Users:     testutil.NewUsers(t),
		Comments:  &testutil.Comments{},
		Saved:     testutil.NewSaved(),
		Validator: helpers.NewHMACValidator(testutil.JWTSecret),
	})

	assert.True(t, c.UserService.Enabled())
	assert.True(t, c.Auth.Enabled())
}
