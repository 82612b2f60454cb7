package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository persists accounts, premises and customer links. Every method
// takes the *gorm.DB so callers can run several inserts or deletes inside
// one transaction.
type Repository interface {
	InsertAccount(ctx context.Context, db *gorm.DB, account *Account) error
	InsertPremise(ctx context.Context, db *gorm.DB, premise *Premise) error
	InsertCustomer(ctx context.Context, db *gorm.DB, customer *Customer) error

	FindCustomerByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)

	// Deletes are tolerant of absent rows: deleting an id that no longer
	// exists is a no-op.
	DeleteCustomer(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeletePremise(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteAccount(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
