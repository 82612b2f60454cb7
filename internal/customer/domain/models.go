package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Account is the applicant identity created alongside each application.
type Account struct {
	ID        snowflake.ID `gorm:"column:account_id;primaryKey" json:"account_id"`
	Email     string       `gorm:"not null" json:"email"`
	FullName  string       `gorm:"column:full_name;not null" json:"full_name"`
	Phone     string       `json:"phone,omitempty"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
}

func (Account) TableName() string { return "account" }

// Premise is the installation address.
type Premise struct {
	ID            snowflake.ID `gorm:"column:prem_id;primaryKey" json:"prem_id"`
	StreetAddress string       `gorm:"column:street_address;not null" json:"street_address"`
	City          string       `gorm:"not null" json:"city"`
	State         string       `gorm:"not null" json:"state"`
	ZipCode       string       `gorm:"column:zip_code;not null" json:"zip_code"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
}

func (Premise) TableName() string { return "premise" }

// Customer links an account to its premise. One customer owns one
// application in this portal.
type Customer struct {
	ID        snowflake.ID `gorm:"column:cust_id;primaryKey" json:"cust_id"`
	AccountID snowflake.ID `gorm:"column:account_id;not null" json:"account_id"`
	PremID    snowflake.ID `gorm:"column:prem_id;not null" json:"prem_id"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`

	Account *Account `gorm:"foreignKey:AccountID;references:ID" json:"account,omitempty"`
	Premise *Premise `gorm:"foreignKey:PremID;references:ID" json:"premise,omitempty"`
}

func (Customer) TableName() string { return "customer" }
