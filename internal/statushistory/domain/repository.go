package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository appends and reads the status audit log. Append runs on the
// caller's db handle so a transition and its history entry share one
// transaction.
type Repository interface {
	Append(ctx context.Context, db *gorm.DB, entry *Entry) error
	// ListByApplication returns entries most recent first.
	ListByApplication(ctx context.Context, db *gorm.DB, applicationID snowflake.ID) ([]Entry, error)
	DeleteByApplication(ctx context.Context, db *gorm.DB, applicationID snowflake.ID) error
}
