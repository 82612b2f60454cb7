package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// System holds the solar equipment details for one application.
type System struct {
	ID                   snowflake.ID `gorm:"column:ix_system_id;primaryKey" json:"ix_system_id"`
	SystemSizeKW         float64      `gorm:"column:system_size_kw;not null" json:"system_size_kw"`
	PanelManufacturer    string       `gorm:"column:panel_manufacturer;not null" json:"panel_manufacturer"`
	InverterManufacturer string       `gorm:"column:inverter_manufacturer;not null" json:"inverter_manufacturer"`
	CreatedAt            time.Time    `gorm:"not null" json:"created_at"`
}

func (System) TableName() string { return "interconnection_system" }
