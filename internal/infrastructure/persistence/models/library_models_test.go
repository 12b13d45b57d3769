//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MGTheTrain/shelf-export/internal/domain/library"
)

func TestUserModel_ToDomain(t *testing.T) {
	model := &UserModel{
		ID:                 1,
		Username:           "mouse@example.com",
		Name:               "Mouse",
		Summary:            "reads a lot",
		ShowGoal:           true,
		DefaultPostPrivacy: "followers",
		Avatar:             "avatars/mouse.png",
		RemoteID:           "https://example.com/user/mouse",
		Local:              true,
	}

	user := model.ToDomain()

	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "mouse@example.com", user.Username)
	assert.True(t, user.ShowGoal)
	assert.False(t, user.Discoverable)
	assert.Equal(t, "followers", user.DefaultPostPrivacy)
	assert.True(t, user.HasAvatar())
	assert.Equal(t, model.RemoteID, user.RemoteID)
}

func TestEditionModel_ToDomain(t *testing.T) {
	pages := 320
	published := time.Date(1937, 9, 21, 0, 0, 0, 0, time.UTC)
	model := &EditionModel{
		BookID:         4,
		ISBN13:         "9780261102217",
		Pages:          &pages,
		PhysicalFormat: "Paperback",
		EditionRank:    2,
		Book: BookModel{
			ID:            4,
			Title:         "The Hobbit",
			Cover:         "covers/hobbit.jpg",
			PublishedDate: &published,
			Authors: []AuthorModel{
				{ID: 1, Name: "J.R.R. Tolkien"},
			},
		},
	}

	edition := model.ToDomain()

	assert.Equal(t, uint(4), edition.BookID)
	assert.Equal(t, "9780261102217", edition.ISBN13)
	require.NotNil(t, edition.Pages)
	assert.Equal(t, 320, *edition.Pages)
	require.NotNil(t, edition.Book)
	assert.Equal(t, "The Hobbit", edition.Book.Title)
	assert.True(t, edition.Book.HasCover())
	assert.Equal(t, &published, edition.Book.PublishedDate)
	require.Len(t, edition.Authors, 1)
	assert.Equal(t, "J.R.R. Tolkien", edition.Authors[0].Name)
}

func TestEditionModel_ToDomain_NoAuthors(t *testing.T) {
	model := &EditionModel{BookID: 1, Book: BookModel{ID: 1, Title: "Anonymous"}}

	edition := model.ToDomain()

	assert.NotNil(t, edition.Authors)
	assert.Empty(t, edition.Authors)
}

func TestStatusModel_ToDomain(t *testing.T) {
	model := &StatusModel{
		ID:         3,
		UserID:     1,
		BookID:     4,
		StatusType: "Review",
		Name:       "Loved it",
		Rating:     decimal.NewNullDecimal(decimal.RequireFromString("4.5")),
		Privacy:    "public",
	}

	status := model.ToDomain()

	assert.Equal(t, library.StatusTypeReview, status.Type)
	assert.True(t, status.Rating.Valid)
	assert.Equal(t, "4.5", status.Rating.Decimal.String())
	assert.Equal(t, "Loved it", status.Name)
}

func TestShelfAndListModels_ToDomain(t *testing.T) {
	shelf := (&ShelfModel{ID: 2, UserID: 1, Name: "To Read", Identifier: "to-read", Privacy: "public"}).ToDomain()
	assert.Equal(t, "to-read", shelf.Identifier)

	shelfBook := (&ShelfBookModel{ID: 5, ShelfID: 2, BookID: 4, UserID: 1}).ToDomain()
	assert.Equal(t, uint(2), shelfBook.ShelfID)

	list := (&ListModel{ID: 6, UserID: 1, Name: "Favourites", Curation: "closed"}).ToDomain()
	assert.Equal(t, "closed", list.Curation)

	item := (&ListItemModel{ID: 8, BookListID: 6, BookID: 4, Order: 3, Approved: true}).ToDomain()
	assert.Equal(t, uint(6), item.BookListID)
	assert.Equal(t, 3, item.Order)
	assert.True(t, item.Approved)
}
