package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/shelf-export/internal/domain/library"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormLibraryRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormLibraryRepository creates a new GORM-based library.Repository implementation
func NewGormLibraryRepository(db *gorm.DB, logger logger.Logger) (library.Repository, error) {
	return &gormLibraryRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormLibraryRepository) GetUserByID(ctx context.Context, userID uint) (*library.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", library.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormLibraryRepository) ListAnnualGoals(ctx context.Context, userID uint) ([]*library.AnnualGoal, error) {
	var modelList []*models.AnnualGoalModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("year").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch annual goals: %w", err)
	}

	domainList := make([]*library.AnnualGoal, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormLibraryRepository) ListReadThroughs(ctx context.Context, userID uint, bookID *uint) ([]*library.ReadThrough, error) {
	dbQuery := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if bookID != nil {
		dbQuery = dbQuery.Where("book_id = ?", *bookID)
	}

	var modelList []*models.ReadThroughModel
	if err := dbQuery.Order("id").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch readthroughs: %w", err)
	}

	domainList := make([]*library.ReadThrough, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormLibraryRepository) ListEditionsForUser(ctx context.Context, userID uint) ([]*library.Edition, error) {
	db := r.db.WithContext(ctx)

	shelved := db.Model(&models.ShelfBookModel{}).
		Select("shelf_books.book_id").
		Joins("JOIN shelves ON shelves.id = shelf_books.shelf_id").
		Where("shelves.user_id = ?", userID)
	read := db.Model(&models.ReadThroughModel{}).
		Select("book_id").
		Where("user_id = ?", userID)
	listed := db.Model(&models.ListItemModel{}).
		Select("list_items.book_id").
		Joins("JOIN lists ON lists.id = list_items.book_list_id").
		Where("lists.user_id = ?", userID)
	posted := db.Model(&models.StatusModel{}).
		Select("book_id").
		Where("user_id = ? AND status_type IN ?", userID, []string{
			string(library.StatusTypeReview),
			string(library.StatusTypeComment),
			string(library.StatusTypeQuotation),
		})

	var modelList []*models.EditionModel
	err := db.Preload("Book.Authors").
		Where("book_id IN (?)", shelved).
		Or("book_id IN (?)", read).
		Or("book_id IN (?)", listed).
		Or("book_id IN (?)", posted).
		Order("book_id").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch editions: %w", err)
	}

	domainList := make([]*library.Edition, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	r.logger.Debug("Selected editions for export", "user_id", userID, "count", len(domainList))
	return domainList, nil
}

func (r *gormLibraryRepository) ListShelvesForBook(ctx context.Context, userID, bookID uint) ([]*library.Shelf, error) {
	var modelList []*models.ShelfModel
	err := r.db.WithContext(ctx).
		Select("shelves.*").
		Joins("JOIN shelf_books ON shelf_books.shelf_id = shelves.id").
		Where("shelves.user_id = ? AND shelf_books.book_id = ? AND shelf_books.user_id = ?", userID, bookID, userID).
		Order("shelves.id").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shelves: %w", err)
	}

	domainList := make([]*library.Shelf, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormLibraryRepository) ListShelfBooks(ctx context.Context, userID, shelfID uint) ([]*library.ShelfBook, error) {
	var modelList []*models.ShelfBookModel
	err := r.db.WithContext(ctx).
		Where("shelf_id = ? AND user_id = ?", shelfID, userID).
		Order("shelved_date").
		Order("id").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shelf books: %w", err)
	}

	domainList := make([]*library.ShelfBook, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormLibraryRepository) ListListsForBook(ctx context.Context, userID, bookID uint) ([]*library.List, error) {
	var modelList []*models.ListModel
	err := r.db.WithContext(ctx).
		Select("lists.*").
		Joins("JOIN list_items ON list_items.book_list_id = lists.id").
		Where("lists.user_id = ? AND list_items.book_id = ?", userID, bookID).
		Order("lists.id").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lists: %w", err)
	}

	domainList := make([]*library.List, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormLibraryRepository) ListListItems(ctx context.Context, listID uint) ([]*library.ListItem, error) {
	var modelList []*models.ListItemModel
	err := r.db.WithContext(ctx).
		Where("book_list_id = ?", listID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Order("id").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch list items: %w", err)
	}

	domainList := make([]*library.ListItem, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormLibraryRepository) ListStatuses(ctx context.Context, userID, bookID uint, statusType library.StatusType) ([]*library.Status, error) {
	var modelList []*models.StatusModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ? AND status_type = ?", userID, bookID, string(statusType)).
		Order("published_date").
		Order("id").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s statuses: %w", statusType, err)
	}

	domainList := make([]*library.Status, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormLibraryRepository) ListSavedListRemoteIDs(ctx context.Context, userID uint) ([]string, error) {
	remoteIDs := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&models.ListModel{}).
		Joins("JOIN user_saved_lists ON user_saved_lists.list_id = lists.id").
		Where("user_saved_lists.user_id = ?", userID).
		Order("lists.id").
		Pluck("lists.remote_id", &remoteIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved lists: %w", err)
	}
	return remoteIDs, nil
}

func (r *gormLibraryRepository) ListFollowingRemoteIDs(ctx context.Context, userID uint) ([]string, error) {
	remoteIDs, err := r.relatedUserRemoteIDs(ctx, models.UserFollowsModel{}.TableName(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch follows: %w", err)
	}
	return remoteIDs, nil
}

func (r *gormLibraryRepository) ListBlockedRemoteIDs(ctx context.Context, userID uint) ([]string, error) {
	remoteIDs, err := r.relatedUserRemoteIDs(ctx, models.UserBlocksModel{}.TableName(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocks: %w", err)
	}
	return remoteIDs, nil
}

// relatedUserRemoteIDs returns the remote IDs of the objects of a subject/object relation table
func (r *gormLibraryRepository) relatedUserRemoteIDs(ctx context.Context, table string, userID uint) ([]string, error) {
	remoteIDs := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Joins(fmt.Sprintf("JOIN %s ON %s.user_object_id = users.id", table, table)).
		Where(fmt.Sprintf("%s.user_subject_id = ?", table), userID).
		Order("users.id").
		Pluck("users.remote_id", &remoteIDs).Error
	if err != nil {
		return nil, err
	}
	return remoteIDs, nil
}
