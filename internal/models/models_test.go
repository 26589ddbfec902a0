package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/spotlight/internal/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderByIDs(t *testing.T) {
	records := []discovery.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := OrderByIDs(records, []string{"c", "missing", "a"})
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestSortCities(t *testing.T) {
	got := SortCities([]string{" lagos", "Abuja", "Lagos", "", "port harcourt"})
	assert.Equal(t, []string{"Abuja", "lagos", "port harcourt"}, got)
}

func TestSavedPostsIDs(t *testing.T) {
	now := time.Now()
	s := &SavedPosts{Items: map[string]SavedItem{
		"old": {PostID: "old", SavedAt: now.Add(-time.Hour)},
		"new": {PostID: "new", SavedAt: now},
	}}
	assert.Equal(t, []string{"new", "old"}, s.PostIDs())

	var empty *SavedPosts
	assert.Empty(t, empty.PostIDs())
}

func TestCommentValidation(t *testing.T) {
	c := &Comment{PostID: " 12 ", UserID: uuid.New(), Text: "  great vibes  "}
	c.Sanitize()
	c.BeforeCreate(time.Now())
	require.NoError(t, c.ValidateComment())
	assert.Equal(t, "12", c.PostID)
	assert.Equal(t, "great vibes", c.Text)
	assert.NotEqual(t, uuid.Nil, c.ID)

	c.Rating = 9
	err := c.ValidateComment()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	blank := &Comment{PostID: "1", UserID: uuid.New(), Text: "   "}
	blank.Sanitize()
	assert.Error(t, blank.ValidateComment())
}

func TestAuthState(t *testing.T) {
	assert.Equal(t, AuthStateProfileCompletion, AuthState(nil))
	assert.Equal(t, AuthStateProfileCompletion, AuthState(&Profile{}))
	assert.Equal(t, AuthStateComplete, AuthState(&Profile{ProfileCompleted: true}))
}

func TestApiResponseEnvelope(t *testing.T) {
	raw, err := json.Marshal(SuccessResponse([]string{"x"}, ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":["x"]}`, string(raw))

	raw, err = json.Marshal(PaginatedResponse([]string{}, Meta{Page: 2, Limit: 12, Total: 13, TotalPages: 2}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":[],"meta":{"page":2,"limit":12,"total":13,"total_pages":2,"has_more":false}}`, string(raw))

	raw, err = json.Marshal(ErrorResponse("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"boom"}`, string(raw))
}
