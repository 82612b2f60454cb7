package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, installer *Installer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Installer, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
