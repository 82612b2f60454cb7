package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Installer is the company performing the installation.
type Installer struct {
	ID          snowflake.ID `gorm:"column:ix_installer_id;primaryKey" json:"ix_installer_id"`
	CompanyName string       `gorm:"column:company_name;not null" json:"company_name"`
	Slug        string       `gorm:"index" json:"slug,omitempty"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
}

func (Installer) TableName() string { return "interconnection_installer" }
