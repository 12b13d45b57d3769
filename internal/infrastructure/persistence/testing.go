//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/domain/library"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/testutil"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB            *gorm.DB
	LibraryRepo   library.Repository
	ExportJobRepo exports.ExportJobRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	logger := testutil.SetupTestLogger(t)

	db, err := NewDBConnection(settings, logger)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	libraryRepo, err := NewGormLibraryRepository(db, logger)
	require.NoError(t, err, "Failed to create library repository")

	exportJobRepo, err := NewGormExportJobRepository(db, logger)
	require.NoError(t, err, "Failed to create export job repository")

	return &TestContext{
		DB:            db,
		LibraryRepo:   libraryRepo,
		ExportJobRepo: exportJobRepo,
	}
}

// LibraryFixture references the rows created by SeedLibrary
type LibraryFixture struct {
	User      *models.UserModel
	OtherUser *models.UserModel
	Followed  *models.UserModel
	Blocked   *models.UserModel

	// Hobbit is on the user's to-read shelf and has a cover
	Hobbit *models.EditionModel
	// Dune was read by the user
	Dune *models.EditionModel
	// Emma was reviewed, commented on and quoted by the user
	Emma *models.EditionModel
	// Ulysses is on the user's list
	Ulysses *models.EditionModel
	// Moby is only shelved by the other user
	Moby *models.EditionModel

	ToReadShelf    *models.ShelfModel
	FavouritesList *models.ListModel
	SavedList      *models.ListModel
}

// SeedLibrary creates a small library for one user plus unrelated rows of another user
func SeedLibrary(t *testing.T, db *gorm.DB) *LibraryFixture {
	t.Helper()

	f := &LibraryFixture{}
	now := time.Now().UTC().Truncate(time.Second)

	f.User = createUser(t, db, "mouse", "avatars/mouse.png")
	f.OtherUser = createUser(t, db, "rat", "")
	f.Followed = createUser(t, db, "cat", "")
	f.Blocked = createUser(t, db, "dog", "")

	tolkien := &models.AuthorModel{Name: "J.R.R. Tolkien", RemoteID: "https://example.com/author/1"}
	f.Hobbit = createEdition(t, db, "The Hobbit", "covers/hobbit.jpg", tolkien)
	f.Dune = createEdition(t, db, "Dune", "", &models.AuthorModel{Name: "Frank Herbert"})
	f.Emma = createEdition(t, db, "Emma", "", &models.AuthorModel{Name: "Jane Austen"})
	f.Ulysses = createEdition(t, db, "Ulysses", "", &models.AuthorModel{Name: "James Joyce"})
	f.Moby = createEdition(t, db, "Moby Dick", "covers/moby.jpg", &models.AuthorModel{Name: "Herman Melville"})

	require.NoError(t, db.Create(&models.AnnualGoalModel{UserID: f.User.ID, Goal: 12, Year: 2024, Privacy: "public"}).Error)
	require.NoError(t, db.Create(&models.AnnualGoalModel{UserID: f.OtherUser.ID, Goal: 3, Year: 2024, Privacy: "public"}).Error)

	f.ToReadShelf = &models.ShelfModel{UserID: f.User.ID, Name: "To Read", Identifier: "to-read", Privacy: "public"}
	require.NoError(t, db.Create(f.ToReadShelf).Error)
	require.NoError(t, db.Create(&models.ShelfBookModel{ShelfID: f.ToReadShelf.ID, BookID: f.Hobbit.BookID, UserID: f.User.ID, ShelvedDate: now}).Error)

	otherShelf := &models.ShelfModel{UserID: f.OtherUser.ID, Name: "Read", Identifier: "read", Privacy: "public"}
	require.NoError(t, db.Create(otherShelf).Error)
	require.NoError(t, db.Create(&models.ShelfBookModel{ShelfID: otherShelf.ID, BookID: f.Moby.BookID, UserID: f.OtherUser.ID, ShelvedDate: now}).Error)

	start := now.Add(-72 * time.Hour)
	require.NoError(t, db.Create(&models.ReadThroughModel{UserID: f.User.ID, BookID: f.Dune.BookID, StartDate: &start, FinishDate: &now}).Error)
	require.NoError(t, db.Create(&models.ReadThroughModel{UserID: f.OtherUser.ID, BookID: f.Moby.BookID, IsActive: true}).Error)

	rating := decimal.NewNullDecimal(decimal.RequireFromString("4.5"))
	statuses := []*models.StatusModel{
		{UserID: f.User.ID, BookID: f.Emma.BookID, StatusType: string(library.StatusTypeReview), Name: "Witty", Content: "<p>Loved it</p>", Rating: rating, Privacy: "public", PublishedDate: now},
		{UserID: f.User.ID, BookID: f.Emma.BookID, StatusType: string(library.StatusTypeComment), Content: "<p>Chapter 3</p>", Privacy: "public", PublishedDate: now},
		{UserID: f.User.ID, BookID: f.Emma.BookID, StatusType: string(library.StatusTypeQuotation), Quote: "<p>Badly done, Emma!</p>", Privacy: "public", PublishedDate: now},
		{UserID: f.OtherUser.ID, BookID: f.Moby.BookID, StatusType: string(library.StatusTypeReview), Name: "Long", Privacy: "public", PublishedDate: now},
	}
	require.NoError(t, db.Create(statuses).Error)

	f.FavouritesList = &models.ListModel{UserID: f.User.ID, Name: "Favourites", Privacy: "public", Curation: "closed", RemoteID: "https://example.com/list/1"}
	require.NoError(t, db.Create(f.FavouritesList).Error)
	require.NoError(t, db.Create(&models.ListItemModel{BookListID: f.FavouritesList.ID, BookID: f.Ulysses.BookID, UserID: f.User.ID, Approved: true, Order: 1}).Error)

	f.SavedList = &models.ListModel{UserID: f.OtherUser.ID, Name: "Whales", Privacy: "public", Curation: "open", RemoteID: "https://example.com/list/2"}
	require.NoError(t, db.Create(f.SavedList).Error)
	require.NoError(t, db.Create(&models.ListItemModel{BookListID: f.SavedList.ID, BookID: f.Moby.BookID, UserID: f.OtherUser.ID, Approved: true, Order: 1}).Error)
	require.NoError(t, db.Create(&models.SavedListModel{UserID: f.User.ID, ListID: f.SavedList.ID}).Error)

	require.NoError(t, db.Create(&models.UserFollowsModel{UserSubjectID: f.User.ID, UserObjectID: f.Followed.ID}).Error)
	require.NoError(t, db.Create(&models.UserBlocksModel{UserSubjectID: f.User.ID, UserObjectID: f.Blocked.ID}).Error)
	require.NoError(t, db.Create(&models.UserFollowsModel{UserSubjectID: f.OtherUser.ID, UserObjectID: f.Blocked.ID}).Error)

	return f
}

func createUser(t *testing.T, db *gorm.DB, username, avatar string) *models.UserModel {
	t.Helper()

	user := &models.UserModel{
		Username:           username + "@example.com",
		Name:               strings.ToUpper(username[:1]) + username[1:],
		ShowGoal:           true,
		ShowSuggestedUsers: true,
		Discoverable:       true,
		PreferredTimezone:  "UTC",
		DefaultPostPrivacy: "public",
		Avatar:             avatar,
		RemoteID:           "https://example.com/user/" + username,
		Local:              true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createEdition(t *testing.T, db *gorm.DB, title, cover string, author *models.AuthorModel) *models.EditionModel {
	t.Helper()

	book := &models.BookModel{
		Title:    title,
		Cover:    cover,
		RemoteID: "https://example.com/book/" + strings.ReplaceAll(strings.ToLower(title), " ", "-"),
		Authors:  []models.AuthorModel{*author},
	}
	require.NoError(t, db.Create(book).Error)

	edition := &models.EditionModel{
		BookID:         book.ID,
		ISBN13:         "978" + uuid.NewString()[:10],
		PhysicalFormat: "Paperback",
		EditionRank:    1,
	}
	require.NoError(t, db.Create(edition).Error)
	edition.Book = *book
	return edition
}
