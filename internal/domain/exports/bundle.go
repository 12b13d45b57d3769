package exports

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/MGTheTrain/shelf-export/internal/domain/library"
)

// Bundle is the document written to archive.json
type Bundle struct {
	User         ExportedUser `json:"user"`
	Goals        []Goal       `json:"goals"`
	Books        []*BookEntry `json:"books"`
	SavedLists   []string     `json:"saved_lists"`
	Follows      []string     `json:"follows"`
	BlockedUsers []string     `json:"blocked_users"`
}

// NewBundle returns a bundle whose collections encode as empty arrays rather than null
func NewBundle() *Bundle {
	return &Bundle{
		Goals:        []Goal{},
		Books:        []*BookEntry{},
		SavedLists:   []string{},
		Follows:      []string{},
		BlockedUsers: []string{},
	}
}

// ExportedUser holds the profile settings carried over to the importing instance
type ExportedUser struct {
	Username                  string `json:"username"`
	Name                      string `json:"name"`
	Summary                   string `json:"summary"`
	ManuallyApprovesFollowers bool   `json:"manually_approves_followers"`
	HideFollows               bool   `json:"hide_follows"`
	ShowGoal                  bool   `json:"show_goal"`
	ShowSuggestedUsers        bool   `json:"show_suggested_users"`
	Discoverable              bool   `json:"discoverable"`
	PreferredTimezone         string `json:"preferred_timezone"`
	DefaultPostPrivacy        string `json:"default_post_privacy"`
	// Avatar is the absolute URL of the avatar on the exporting instance
	Avatar string `json:"avatar,omitempty"`
}

// Goal is one annual reading goal
type Goal struct {
	Goal    int    `json:"goal"`
	Year    int    `json:"year"`
	Privacy string `json:"privacy"`
}

// BookEntry is the flattened view of one book the user interacted with. The
// base book columns are inlined at the top level of the entry.
type BookEntry struct {
	*library.Book
	Edition      *library.Edition                `json:"edition"`
	Authors      []*library.Author               `json:"authors"`
	ReadThroughs []*library.ReadThrough          `json:"readthroughs"`
	Shelves      []*library.Shelf                `json:"shelves"`
	ShelfBooks   map[string][]*library.ShelfBook `json:"shelf_books"`
	Lists        []*library.List                 `json:"lists"`
	ListItems    map[string][]*library.ListItem  `json:"list_items"`
	Reviews      []*library.Status               `json:"reviews"`
	Comments     []*library.Status               `json:"comments"`
	Quotes       []*library.Status               `json:"quotes"`
}

// NewBookEntry returns an entry for the edition with all collections initialized
func NewBookEntry(edition *library.Edition) *BookEntry {
	authors := edition.Authors
	if authors == nil {
		authors = []*library.Author{}
	}
	return &BookEntry{
		Book:         edition.Book,
		Edition:      edition,
		Authors:      authors,
		ReadThroughs: []*library.ReadThrough{},
		Shelves:      []*library.Shelf{},
		ShelfBooks:   map[string][]*library.ShelfBook{},
		Lists:        []*library.List{},
		ListItems:    map[string][]*library.ListItem{},
		Reviews:      []*library.Status{},
		Comments:     []*library.Status{},
		Quotes:       []*library.Status{},
	}
}

// EncodeBundle serializes the bundle as UTF-8 JSON
func EncodeBundle(bundle *Bundle) ([]byte, error) {
	data, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export bundle: %w", err)
	}
	return data, nil
}

// DecodeBundle parses archive.json contents
func DecodeBundle(data []byte) (*Bundle, error) {
	bundle := NewBundle()
	if err := json.Unmarshal(data, bundle); err != nil {
		return nil, fmt.Errorf("failed to decode export bundle: %w", err)
	}
	return bundle, nil
}
