package persistence

import (
	"fmt"

	"github.com/MGTheTrain/shelf-export/internal/infrastructure/persistence/models"

	"gorm.io/gorm"
)

// Models returns every model managed by this service in migration order
func Models() []any {
	return []any{
		&models.UserModel{},
		&models.AnnualGoalModel{},
		&models.AuthorModel{},
		&models.BookModel{},
		&models.EditionModel{},
		&models.ReadThroughModel{},
		&models.ShelfModel{},
		&models.ShelfBookModel{},
		&models.ListModel{},
		&models.ListItemModel{},
		&models.StatusModel{},
		&models.UserFollowsModel{},
		&models.UserBlocksModel{},
		&models.SavedListModel{},
		&models.ExportJobModel{},
	}
}

// Migrate creates or updates the schema of all models
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
