package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository persists application rows. Update takes a column map so each
// mutation writes exactly the subset of fields its operation owns.
type Repository interface {
	// List returns applications joined with customer (account + premise),
	// installer, system and ordered status history, most recent first.
	List(ctx context.Context, db *gorm.DB) ([]Application, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Application, error)
	Insert(ctx context.Context, db *gorm.DB, application *Application) error
	Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
