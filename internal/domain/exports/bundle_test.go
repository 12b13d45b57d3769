//go:build unit
// +build unit

package exports

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MGTheTrain/shelf-export/internal/domain/library"
)

func decodeToMap(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestEncodeBundle_EmptyCollectionsAreArrays(t *testing.T) {
	data, err := EncodeBundle(NewBundle())
	require.NoError(t, err)

	doc := decodeToMap(t, data)
	for _, key := range []string{"goals", "books", "saved_lists", "follows", "blocked_users"} {
		assert.Equal(t, []any{}, doc[key], key)
	}

	user := doc["user"].(map[string]any)
	assert.NotContains(t, user, "avatar")
}

func TestEncodeBundle_BookEntryInlinesBookColumns(t *testing.T) {
	edition := &library.Edition{
		BookID: 12,
		ISBN13: "9780000000002",
		Book:   &library.Book{ID: 12, Title: "The Dispossessed", Cover: "covers/dispossessed.jpg"},
		Authors: []*library.Author{
			{ID: 3, Name: "Ursula K. Le Guin"},
		},
	}
	entry := NewBookEntry(edition)
	entry.Reviews = append(entry.Reviews, &library.Status{
		ID:     5,
		Type:   library.StatusTypeReview,
		Name:   "Ambiguous utopia",
		Rating: library.NewRating(decimal.RequireFromString("4.5")),
	})
	entry.ShelfBooks["read"] = []*library.ShelfBook{{ID: 1, BookID: 12, ShelfID: 2}}

	bundle := NewBundle()
	bundle.Books = append(bundle.Books, entry)

	data, err := EncodeBundle(bundle)
	require.NoError(t, err)

	doc := decodeToMap(t, data)
	books := doc["books"].([]any)
	require.Len(t, books, 1)

	book := books[0].(map[string]any)
	assert.Equal(t, "The Dispossessed", book["title"])
	assert.Equal(t, "covers/dispossessed.jpg", book["cover"])
	assert.Equal(t, float64(12), book["id"])
	assert.Equal(t, "9780000000002", book["edition"].(map[string]any)["isbn_13"])
	assert.Len(t, book["authors"], 1)
	assert.Equal(t, []any{}, book["comments"])
	assert.Equal(t, map[string]any{}, book["list_items"])
	assert.Contains(t, book["shelf_books"], "read")

	review := book["reviews"].([]any)[0].(map[string]any)
	assert.Equal(t, "4.50", review["rating"])
	assert.Equal(t, "Review", review["status_type"])
}

func TestDecodeBundle(t *testing.T) {
	bundle := NewBundle()
	bundle.User = ExportedUser{Username: "mouse", Avatar: "https://books.example.org/images/avatars/m.png"}
	bundle.Goals = append(bundle.Goals, Goal{Goal: 12, Year: 2025, Privacy: "public"})
	bundle.Follows = append(bundle.Follows, "https://other.example.org/user/rat")

	data, err := EncodeBundle(bundle)
	require.NoError(t, err)

	decoded, err := DecodeBundle(data)
	require.NoError(t, err)
	assert.Equal(t, bundle.User, decoded.User)
	assert.Equal(t, bundle.Goals, decoded.Goals)
	assert.Equal(t, bundle.Follows, decoded.Follows)
	assert.Empty(t, decoded.Books)
}

func TestDecodeBundle_Invalid(t *testing.T) {
	_, err := DecodeBundle([]byte("{not json"))
	assert.Error(t, err)
}
