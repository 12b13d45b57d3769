package library

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the owner of an export and the subject of follow/block relations
type User struct {
	ID                        uint      `json:"id"`
	Username                  string    `json:"username"`
	Name                      string    `json:"name"`
	Summary                   string    `json:"summary"`
	ManuallyApprovesFollowers bool      `json:"manually_approves_followers"`
	HideFollows               bool      `json:"hide_follows"`
	ShowGoal                  bool      `json:"show_goal"`
	ShowSuggestedUsers        bool      `json:"show_suggested_users"`
	Discoverable              bool      `json:"discoverable"`
	PreferredTimezone         string    `json:"preferred_timezone"`
	DefaultPostPrivacy        string    `json:"default_post_privacy"`
	Avatar                    string    `json:"avatar"` // storage path, empty when unset
	RemoteID                  string    `json:"remote_id"`
	Local                     bool      `json:"local"`
	CreatedDate               time.Time `json:"created_date"`
}

// HasAvatar reports whether the user uploaded an avatar image
func (u *User) HasAvatar() bool {
	return u.Avatar != ""
}

// AnnualGoal is a user's reading goal for one year
type AnnualGoal struct {
	ID      uint   `json:"id"`
	UserID  uint   `json:"user_id"`
	Goal    int    `json:"goal"`
	Year    int    `json:"year"`
	Privacy string `json:"privacy"`
}

// Author of one or more books
type Author struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Bio            string     `json:"bio"`
	Born           *time.Time `json:"born"`
	Died           *time.Time `json:"died"`
	OpenLibraryKey string     `json:"openlibrary_key"`
	RemoteID       string     `json:"remote_id"`
	CreatedDate    time.Time  `json:"created_date"`
	UpdatedDate    time.Time  `json:"updated_date"`
}

// Book holds the columns shared by every edition of a work
type Book struct {
	ID                 uint       `json:"id"`
	Title              string     `json:"title"`
	Subtitle           string     `json:"subtitle"`
	Description        string     `json:"description"`
	Series             string     `json:"series"`
	SeriesNumber       string     `json:"series_number"`
	Cover              string     `json:"cover"` // storage path, empty when unset
	FirstPublishedDate *time.Time `json:"first_published_date"`
	PublishedDate      *time.Time `json:"published_date"`
	OpenLibraryKey     string     `json:"openlibrary_key"`
	RemoteID           string     `json:"remote_id"`
	CreatedDate        time.Time  `json:"created_date"`
	UpdatedDate        time.Time  `json:"updated_date"`
}

// HasCover reports whether a cover image is stored for the book
func (b *Book) HasCover() bool {
	return b.Cover != ""
}

// Edition is a concrete publication of a book. It shares its ID with the
// Book row it extends.
type Edition struct {
	BookID         uint      `json:"book_ptr_id"`
	ParentWorkID   *uint     `json:"parent_work_id"`
	ISBN10         string    `json:"isbn_10"`
	ISBN13         string    `json:"isbn_13"`
	OCLCNumber     string    `json:"oclc_number"`
	ASIN           string    `json:"asin"`
	Pages          *int      `json:"pages"`
	PhysicalFormat string    `json:"physical_format"`
	EditionRank    int       `json:"edition_rank"`
	Book           *Book     `json:"-"`
	Authors        []*Author `json:"-"`
}

// ReadThrough records one reading of a book
type ReadThrough struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	BookID      uint       `json:"book_id"`
	StartDate   *time.Time `json:"start_date"`
	FinishDate  *time.Time `json:"finish_date"`
	StoppedDate *time.Time `json:"stopped_date"`
	IsActive    bool       `json:"is_active"`
	CreatedDate time.Time  `json:"created_date"`
	UpdatedDate time.Time  `json:"updated_date"`
}

// Shelf is a named collection of books owned by a user
type Shelf struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	Identifier  string    `json:"identifier"`
	Description string    `json:"description"`
	Editable    bool      `json:"editable"`
	Privacy     string    `json:"privacy"`
	RemoteID    string    `json:"remote_id"`
	CreatedDate time.Time `json:"created_date"`
}

// ShelfBook places a book on a shelf
type ShelfBook struct {
	ID          uint      `json:"id"`
	ShelfID     uint      `json:"shelf_id"`
	BookID      uint      `json:"book_id"`
	UserID      uint      `json:"user_id"`
	ShelvedDate time.Time `json:"shelved_date"`
	CreatedDate time.Time `json:"created_date"`
}

// List is a curated, possibly shared, list of books
type List struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Privacy     string    `json:"privacy"`
	Curation    string    `json:"curation"`
	RemoteID    string    `json:"remote_id"`
	CreatedDate time.Time `json:"created_date"`
}

// ListItem is a book placed on a list
type ListItem struct {
	ID          uint      `json:"id"`
	BookListID  uint      `json:"book_list_id"`
	BookID      uint      `json:"book_id"`
	UserID      uint      `json:"user_id"`
	Notes       string    `json:"notes"`
	Approved    bool      `json:"approved"`
	Order       int       `json:"order"`
	CreatedDate time.Time `json:"created_date"`
}

// StatusType discriminates the kinds of book status a user can post
type StatusType string

// Status types exported per book
const (
	StatusTypeReview    StatusType = "Review"
	StatusTypeComment   StatusType = "Comment"
	StatusTypeQuotation StatusType = "Quotation"
)

// Status is a review, comment or quotation a user posted about a book
type Status struct {
	ID             uint                `json:"id"`
	UserID         uint                `json:"user_id"`
	BookID         uint                `json:"book_id"`
	Type           StatusType          `json:"status_type"`
	Content        string              `json:"content"`
	Name           string              `json:"name"`
	Rating         Rating              `json:"rating"`
	Quote          string              `json:"quote"`
	Position       *int                `json:"position"`
	PositionMode   string              `json:"position_mode"`
	ContentWarning string              `json:"content_warning"`
	Sensitive      bool                `json:"sensitive"`
	Privacy        string              `json:"privacy"`
	PublishedDate  time.Time           `json:"published_date"`
	Deleted        bool                `json:"deleted"`
	RemoteID       string              `json:"remote_id"`
}

// RatingScale is the number of decimal places ratings are stored and exported with
const RatingScale = 2

// Rating is an optional review rating. It encodes with RatingScale decimal
// places, so 4.5 is exported as "4.50" and a missing rating as null.
type Rating struct {
	decimal.NullDecimal
}

// NewRating returns a present rating
func NewRating(d decimal.Decimal) Rating {
	return Rating{NullDecimal: decimal.NewNullDecimal(d)}
}

// MarshalJSON implements json.Marshaler
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return []byte(`"` + r.Decimal.StringFixed(RatingScale) + `"`), nil
}
