package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, system *System) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*System, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
