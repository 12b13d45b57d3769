package app

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/domain/library"
	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// exportDataCollector implements the DataCollector interface on top of the library repository
type exportDataCollector struct {
	repo     library.Repository
	settings *config.ExportSettings
	logger   logger.Logger
}

// NewExportDataCollector creates a new instance of DataCollector
func NewExportDataCollector(repo library.Repository, settings *config.ExportSettings, logger logger.Logger) (exports.DataCollector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &exportDataCollector{
		repo:     repo,
		settings: settings,
		logger:   logger,
	}, nil
}

// Collect assembles the user's bundle. Goals and readthroughs are best-effort;
// any other failure aborts the collection.
func (c *exportDataCollector) Collect(ctx context.Context, userID uint) (*exports.Bundle, *library.User, []*library.Edition, error) {
	user, err := c.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	bundle := exports.NewBundle()
	bundle.User = c.exportUser(user)
	bundle.Goals = c.collectGoals(ctx, user.ID)

	editions, err := c.repo.ListEditionsForUser(ctx, user.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, edition := range editions {
		entry, err := c.collectBook(ctx, user.ID, edition)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to collect book %d: %w", edition.BookID, err)
		}
		bundle.Books = append(bundle.Books, entry)
	}

	if bundle.SavedLists, err = c.repo.ListSavedListRemoteIDs(ctx, user.ID); err != nil {
		return nil, nil, nil, err
	}
	if bundle.Follows, err = c.repo.ListFollowingRemoteIDs(ctx, user.ID); err != nil {
		return nil, nil, nil, err
	}
	if bundle.BlockedUsers, err = c.repo.ListBlockedRemoteIDs(ctx, user.ID); err != nil {
		return nil, nil, nil, err
	}

	bundle.SavedLists = emptyIfNil(bundle.SavedLists)
	bundle.Follows = emptyIfNil(bundle.Follows)
	bundle.BlockedUsers = emptyIfNil(bundle.BlockedUsers)

	c.logger.Info("Collected export data",
		"user_id", user.ID,
		"books", len(bundle.Books),
		"goals", len(bundle.Goals))
	return bundle, user, editions, nil
}

func (c *exportDataCollector) exportUser(user *library.User) exports.ExportedUser {
	exported := exports.ExportedUser{
		Username:                  user.Username,
		Name:                      user.Name,
		Summary:                   user.Summary,
		ManuallyApprovesFollowers: user.ManuallyApprovesFollowers,
		HideFollows:               user.HideFollows,
		ShowGoal:                  user.ShowGoal,
		ShowSuggestedUsers:        user.ShowSuggestedUsers,
		Discoverable:              user.Discoverable,
		PreferredTimezone:         user.PreferredTimezone,
		DefaultPostPrivacy:        user.DefaultPostPrivacy,
	}
	if user.HasAvatar() {
		exported.Avatar = fmt.Sprintf("https://%s%s%s", c.settings.Domain, c.settings.MediaURL, user.Avatar)
	}
	return exported
}

func (c *exportDataCollector) collectGoals(ctx context.Context, userID uint) []exports.Goal {
	goals, err := c.repo.ListAnnualGoals(ctx, userID)
	if err != nil {
		c.logger.Warn("Skipping reading goals", "user_id", userID, "error", err)
		return []exports.Goal{}
	}

	list := make([]exports.Goal, len(goals))
	for i, goal := range goals {
		list[i] = exports.Goal{Goal: goal.Goal, Year: goal.Year, Privacy: goal.Privacy}
	}
	return list
}

func (c *exportDataCollector) collectBook(ctx context.Context, userID uint, edition *library.Edition) (*exports.BookEntry, error) {
	if edition.Book == nil {
		return nil, fmt.Errorf("edition %d has no book", edition.BookID)
	}
	entry := exports.NewBookEntry(edition)
	bookID := edition.BookID

	readThroughs, err := c.repo.ListReadThroughs(ctx, userID, &bookID)
	if err != nil {
		c.logger.Warn("Skipping readthroughs", "user_id", userID, "book_id", bookID, "error", err)
	} else {
		entry.ReadThroughs = emptyIfNil(readThroughs)
	}

	if entry.Shelves, err = c.repo.ListShelvesForBook(ctx, userID, bookID); err != nil {
		return nil, err
	}
	for _, shelf := range entry.Shelves {
		shelfBooks, err := c.repo.ListShelfBooks(ctx, userID, shelf.ID)
		if err != nil {
			return nil, err
		}
		entry.ShelfBooks[shelf.Identifier] = emptyIfNil(shelfBooks)
	}

	if entry.Lists, err = c.repo.ListListsForBook(ctx, userID, bookID); err != nil {
		return nil, err
	}
	for _, list := range entry.Lists {
		items, err := c.repo.ListListItems(ctx, list.ID)
		if err != nil {
			return nil, err
		}
		entry.ListItems[list.Name] = emptyIfNil(items)
	}

	if entry.Reviews, err = c.repo.ListStatuses(ctx, userID, bookID, library.StatusTypeReview); err != nil {
		return nil, err
	}
	if entry.Comments, err = c.repo.ListStatuses(ctx, userID, bookID, library.StatusTypeComment); err != nil {
		return nil, err
	}
	if entry.Quotes, err = c.repo.ListStatuses(ctx, userID, bookID, library.StatusTypeQuotation); err != nil {
		return nil, err
	}

	entry.Shelves = emptyIfNil(entry.Shelves)
	entry.Lists = emptyIfNil(entry.Lists)
	entry.Reviews = emptyIfNil(entry.Reviews)
	entry.Comments = emptyIfNil(entry.Comments)
	entry.Quotes = emptyIfNil(entry.Quotes)
	return entry, nil
}

// emptyIfNil keeps empty collections encoding as [] instead of null
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
