package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MGTheTrain/shelf-export/internal/domain/library"
)

// UserModel is the GORM database model for users
type UserModel struct {
	ID                        uint      `gorm:"primaryKey"`
	Username                  string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	Name                      string    `gorm:"type:varchar(100)"`
	Summary                   string    `gorm:"type:text"`
	ManuallyApprovesFollowers bool      `gorm:"not null"`
	HideFollows               bool      `gorm:"not null"`
	ShowGoal                  bool      `gorm:"not null"`
	ShowSuggestedUsers        bool      `gorm:"not null"`
	Discoverable              bool      `gorm:"not null"`
	PreferredTimezone         string    `gorm:"type:varchar(255)"`
	DefaultPostPrivacy        string    `gorm:"type:varchar(255)"`
	Avatar                    string    `gorm:"type:varchar(255)"`
	RemoteID                  string    `gorm:"type:varchar(255);index"`
	Local                     bool      `gorm:"not null"`
	CreatedDate               time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *library.User {
	return &library.User{
		ID:                        m.ID,
		Username:                  m.Username,
		Name:                      m.Name,
		Summary:                   m.Summary,
		ManuallyApprovesFollowers: m.ManuallyApprovesFollowers,
		HideFollows:               m.HideFollows,
		ShowGoal:                  m.ShowGoal,
		ShowSuggestedUsers:        m.ShowSuggestedUsers,
		Discoverable:              m.Discoverable,
		PreferredTimezone:         m.PreferredTimezone,
		DefaultPostPrivacy:        m.DefaultPostPrivacy,
		Avatar:                    m.Avatar,
		RemoteID:                  m.RemoteID,
		Local:                     m.Local,
		CreatedDate:               m.CreatedDate,
	}
}

// AnnualGoalModel is the GORM database model for reading goals
type AnnualGoalModel struct {
	ID      uint   `gorm:"primaryKey"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_goal_user_year"`
	Goal    int    `gorm:"not null"`
	Year    int    `gorm:"not null;uniqueIndex:idx_goal_user_year"`
	Privacy string `gorm:"not null;type:varchar(255)"`
}

// TableName specifies the table name for GORM
func (AnnualGoalModel) TableName() string {
	return "annual_goals"
}

// ToDomain converts GORM model to domain entity
func (m *AnnualGoalModel) ToDomain() *library.AnnualGoal {
	return &library.AnnualGoal{
		ID:      m.ID,
		UserID:  m.UserID,
		Goal:    m.Goal,
		Year:    m.Year,
		Privacy: m.Privacy,
	}
}

// AuthorModel is the GORM database model for authors
type AuthorModel struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"not null;type:varchar(255)"`
	Bio            string `gorm:"type:text"`
	Born           *time.Time
	Died           *time.Time
	OpenLibraryKey string    `gorm:"column:openlibrary_key;type:varchar(255)"`
	RemoteID       string    `gorm:"type:varchar(255)"`
	CreatedDate    time.Time `gorm:"autoCreateTime"`
	UpdatedDate    time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (AuthorModel) TableName() string {
	return "authors"
}

// ToDomain converts GORM model to domain entity
func (m *AuthorModel) ToDomain() *library.Author {
	return &library.Author{
		ID:             m.ID,
		Name:           m.Name,
		Bio:            m.Bio,
		Born:           m.Born,
		Died:           m.Died,
		OpenLibraryKey: m.OpenLibraryKey,
		RemoteID:       m.RemoteID,
		CreatedDate:    m.CreatedDate,
		UpdatedDate:    m.UpdatedDate,
	}
}

// BookModel is the GORM database model for the columns shared by all editions
type BookModel struct {
	ID                 uint   `gorm:"primaryKey"`
	Title              string `gorm:"not null;type:varchar(255)"`
	Subtitle           string `gorm:"type:varchar(255)"`
	Description        string `gorm:"type:text"`
	Series             string `gorm:"type:varchar(255)"`
	SeriesNumber       string `gorm:"type:varchar(255)"`
	Cover              string `gorm:"type:varchar(255)"`
	FirstPublishedDate *time.Time
	PublishedDate      *time.Time
	OpenLibraryKey     string        `gorm:"column:openlibrary_key;type:varchar(255)"`
	RemoteID           string        `gorm:"type:varchar(255)"`
	CreatedDate        time.Time     `gorm:"autoCreateTime"`
	UpdatedDate        time.Time     `gorm:"autoUpdateTime"`
	Authors            []AuthorModel `gorm:"many2many:book_authors;joinForeignKey:BookID;joinReferences:AuthorID"`
}

// TableName specifies the table name for GORM
func (BookModel) TableName() string {
	return "books"
}

// ToDomain converts GORM model to domain entity
func (m *BookModel) ToDomain() *library.Book {
	return &library.Book{
		ID:                 m.ID,
		Title:              m.Title,
		Subtitle:           m.Subtitle,
		Description:        m.Description,
		Series:             m.Series,
		SeriesNumber:       m.SeriesNumber,
		Cover:              m.Cover,
		FirstPublishedDate: m.FirstPublishedDate,
		PublishedDate:      m.PublishedDate,
		OpenLibraryKey:     m.OpenLibraryKey,
		RemoteID:           m.RemoteID,
		CreatedDate:        m.CreatedDate,
		UpdatedDate:        m.UpdatedDate,
	}
}

// EditionModel is the GORM database model for editions; BookID is both the
// primary key and the reference to the extended book row
type EditionModel struct {
	BookID         uint      `gorm:"primaryKey;autoIncrement:false"`
	Book           BookModel `gorm:"foreignKey:BookID;references:ID"`
	ParentWorkID   *uint     `gorm:"index"`
	ISBN10         string    `gorm:"column:isbn_10;type:varchar(255);index"`
	ISBN13         string    `gorm:"column:isbn_13;type:varchar(255);index"`
	OCLCNumber     string    `gorm:"column:oclc_number;type:varchar(255)"`
	ASIN           string    `gorm:"column:asin;type:varchar(255)"`
	Pages          *int
	PhysicalFormat string `gorm:"type:varchar(255)"`
	EditionRank    int    `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (EditionModel) TableName() string {
	return "editions"
}

// ToDomain converts GORM model to domain entity, including the preloaded book and authors
func (m *EditionModel) ToDomain() *library.Edition {
	authors := make([]*library.Author, len(m.Book.Authors))
	for i := range m.Book.Authors {
		authors[i] = m.Book.Authors[i].ToDomain()
	}

	return &library.Edition{
		BookID:         m.BookID,
		ParentWorkID:   m.ParentWorkID,
		ISBN10:         m.ISBN10,
		ISBN13:         m.ISBN13,
		OCLCNumber:     m.OCLCNumber,
		ASIN:           m.ASIN,
		Pages:          m.Pages,
		PhysicalFormat: m.PhysicalFormat,
		EditionRank:    m.EditionRank,
		Book:           m.Book.ToDomain(),
		Authors:        authors,
	}
}

// ReadThroughModel is the GORM database model for reading progress
type ReadThroughModel struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"not null;index"`
	BookID      uint `gorm:"not null;index"`
	StartDate   *time.Time
	FinishDate  *time.Time
	StoppedDate *time.Time
	IsActive    bool      `gorm:"not null"`
	CreatedDate time.Time `gorm:"autoCreateTime"`
	UpdatedDate time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ReadThroughModel) TableName() string {
	return "readthroughs"
}

// ToDomain converts GORM model to domain entity
func (m *ReadThroughModel) ToDomain() *library.ReadThrough {
	return &library.ReadThrough{
		ID:          m.ID,
		UserID:      m.UserID,
		BookID:      m.BookID,
		StartDate:   m.StartDate,
		FinishDate:  m.FinishDate,
		StoppedDate: m.StoppedDate,
		IsActive:    m.IsActive,
		CreatedDate: m.CreatedDate,
		UpdatedDate: m.UpdatedDate,
	}
}

// ShelfModel is the GORM database model for shelves
type ShelfModel struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_shelf_user_identifier"`
	Name        string    `gorm:"not null;type:varchar(100)"`
	Identifier  string    `gorm:"not null;type:varchar(100);uniqueIndex:idx_shelf_user_identifier"`
	Description string    `gorm:"type:text"`
	Editable    bool      `gorm:"not null"`
	Privacy     string    `gorm:"not null;type:varchar(255)"`
	RemoteID    string    `gorm:"type:varchar(255)"`
	CreatedDate time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ShelfModel) TableName() string {
	return "shelves"
}

// ToDomain converts GORM model to domain entity
func (m *ShelfModel) ToDomain() *library.Shelf {
	return &library.Shelf{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Identifier:  m.Identifier,
		Description: m.Description,
		Editable:    m.Editable,
		Privacy:     m.Privacy,
		RemoteID:    m.RemoteID,
		CreatedDate: m.CreatedDate,
	}
}

// ShelfBookModel is the GORM database model placing a book on a shelf
type ShelfBookModel struct {
	ID          uint      `gorm:"primaryKey"`
	ShelfID     uint      `gorm:"not null;uniqueIndex:idx_shelf_book"`
	BookID      uint      `gorm:"not null;uniqueIndex:idx_shelf_book"`
	UserID      uint      `gorm:"not null;index"`
	ShelvedDate time.Time `gorm:"not null"`
	CreatedDate time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ShelfBookModel) TableName() string {
	return "shelf_books"
}

// ToDomain converts GORM model to domain entity
func (m *ShelfBookModel) ToDomain() *library.ShelfBook {
	return &library.ShelfBook{
		ID:          m.ID,
		ShelfID:     m.ShelfID,
		BookID:      m.BookID,
		UserID:      m.UserID,
		ShelvedDate: m.ShelvedDate,
		CreatedDate: m.CreatedDate,
	}
}

// ListModel is the GORM database model for book lists
type ListModel struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	Name        string    `gorm:"not null;type:varchar(100)"`
	Description string    `gorm:"type:text"`
	Privacy     string    `gorm:"not null;type:varchar(255)"`
	Curation    string    `gorm:"not null;type:varchar(255)"`
	RemoteID    string    `gorm:"type:varchar(255)"`
	CreatedDate time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ListModel) TableName() string {
	return "lists"
}

// ToDomain converts GORM model to domain entity
func (m *ListModel) ToDomain() *library.List {
	return &library.List{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		Privacy:     m.Privacy,
		Curation:    m.Curation,
		RemoteID:    m.RemoteID,
		CreatedDate: m.CreatedDate,
	}
}

// ListItemModel is the GORM database model placing a book on a list
type ListItemModel struct {
	ID          uint      `gorm:"primaryKey"`
	BookListID  uint      `gorm:"not null;uniqueIndex:idx_list_book"`
	BookID      uint      `gorm:"not null;uniqueIndex:idx_list_book"`
	UserID      uint      `gorm:"not null;index"`
	Notes       string    `gorm:"type:text"`
	Approved    bool      `gorm:"not null"`
	Order       int       `gorm:"not null"`
	CreatedDate time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ListItemModel) TableName() string {
	return "list_items"
}

// ToDomain converts GORM model to domain entity
func (m *ListItemModel) ToDomain() *library.ListItem {
	return &library.ListItem{
		ID:          m.ID,
		BookListID:  m.BookListID,
		BookID:      m.BookID,
		UserID:      m.UserID,
		Notes:       m.Notes,
		Approved:    m.Approved,
		Order:       m.Order,
		CreatedDate: m.CreatedDate,
	}
}

// StatusModel is the GORM database model for reviews, comments and quotations
type StatusModel struct {
	ID             uint                `gorm:"primaryKey"`
	UserID         uint                `gorm:"not null;index:idx_status_user_book"`
	BookID         uint                `gorm:"not null;index:idx_status_user_book"`
	StatusType     string              `gorm:"not null;type:varchar(255);index"`
	Content        string              `gorm:"type:text"`
	Name           string              `gorm:"type:varchar(255)"`
	Rating         decimal.NullDecimal `gorm:"type:decimal(3,2)"`
	Quote          string              `gorm:"type:text"`
	Position       *int
	PositionMode   string    `gorm:"type:varchar(3)"`
	ContentWarning string    `gorm:"type:varchar(500)"`
	Sensitive      bool      `gorm:"not null"`
	Privacy        string    `gorm:"not null;type:varchar(255)"`
	PublishedDate  time.Time `gorm:"not null"`
	Deleted        bool      `gorm:"not null"`
	RemoteID       string    `gorm:"type:varchar(255)"`
}

// TableName specifies the table name for GORM
func (StatusModel) TableName() string {
	return "statuses"
}

// ToDomain converts GORM model to domain entity
func (m *StatusModel) ToDomain() *library.Status {
	return &library.Status{
		ID:             m.ID,
		UserID:         m.UserID,
		BookID:         m.BookID,
		Type:           library.StatusType(m.StatusType),
		Content:        m.Content,
		Name:           m.Name,
		Rating:         library.Rating{NullDecimal: m.Rating},
		Quote:          m.Quote,
		Position:       m.Position,
		PositionMode:   m.PositionMode,
		ContentWarning: m.ContentWarning,
		Sensitive:      m.Sensitive,
		Privacy:        m.Privacy,
		PublishedDate:  m.PublishedDate,
		Deleted:        m.Deleted,
		RemoteID:       m.RemoteID,
	}
}

// UserFollowsModel is the GORM database model of an accepted follow relation
type UserFollowsModel struct {
	ID            uint      `gorm:"primaryKey"`
	UserSubjectID uint      `gorm:"not null;uniqueIndex:idx_follow_pair"`
	UserObjectID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair"`
	CreatedDate   time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (UserFollowsModel) TableName() string {
	return "user_follows"
}

// UserBlocksModel is the GORM database model of a block relation
type UserBlocksModel struct {
	ID            uint      `gorm:"primaryKey"`
	UserSubjectID uint      `gorm:"not null;uniqueIndex:idx_block_pair"`
	UserObjectID  uint      `gorm:"not null;uniqueIndex:idx_block_pair"`
	CreatedDate   time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (UserBlocksModel) TableName() string {
	return "user_blocks"
}

// SavedListModel is the join row of a user saving someone's list
type SavedListModel struct {
	UserID uint `gorm:"primaryKey"`
	ListID uint `gorm:"primaryKey"`
}

// TableName specifies the table name for GORM
func (SavedListModel) TableName() string {
	return "user_saved_lists"
}
