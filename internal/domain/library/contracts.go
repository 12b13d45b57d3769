package library

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when no user row matches the requested ID
var ErrUserNotFound = errors.New("user not found")

// Repository defines the read-only queries an export needs. Every method that
// takes a userID scopes its result to rows owned or created by that user.
type Repository interface {
	// GetUserByID returns the user or ErrUserNotFound
	GetUserByID(ctx context.Context, userID uint) (*User, error)

	// ListAnnualGoals returns the user's reading goals
	ListAnnualGoals(ctx context.Context, userID uint) ([]*AnnualGoal, error)

	// ListReadThroughs returns the user's readthroughs, restricted to one book when bookID is non-nil
	ListReadThroughs(ctx context.Context, userID uint, bookID *uint) ([]*ReadThrough, error)

	// ListEditionsForUser returns, without duplicates, every edition the user
	// shelved on one of their shelves, read, reviewed, commented on, quoted
	// or put on one of their lists. Book and Authors are populated.
	ListEditionsForUser(ctx context.Context, userID uint) ([]*Edition, error)

	// ListShelvesForBook returns the user's shelves on which the user placed the book
	ListShelvesForBook(ctx context.Context, userID, bookID uint) ([]*Shelf, error)

	// ListShelfBooks returns the rows of a shelf added by the user
	ListShelfBooks(ctx context.Context, userID, shelfID uint) ([]*ShelfBook, error)

	// ListListsForBook returns the user's lists containing the book
	ListListsForBook(ctx context.Context, userID, bookID uint) ([]*List, error)

	// ListListItems returns all items of a list
	ListListItems(ctx context.Context, listID uint) ([]*ListItem, error)

	// ListStatuses returns the user's statuses of one type about a book
	ListStatuses(ctx context.Context, userID, bookID uint, statusType StatusType) ([]*Status, error)

	// ListSavedListRemoteIDs returns the remote IDs of lists the user saved
	ListSavedListRemoteIDs(ctx context.Context, userID uint) ([]string, error)

	// ListFollowingRemoteIDs returns the remote IDs of users the user follows
	ListFollowingRemoteIDs(ctx context.Context, userID uint) ([]string, error)

	// ListBlockedRemoteIDs returns the remote IDs of users the user blocks
	ListBlockedRemoteIDs(ctx context.Context, userID uint) ([]string, error)
}
