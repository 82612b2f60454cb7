package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gridpoint/interconnect/internal/workflow"
)

// Entry is one immutable audit record of a status transition. Rows are
// append-only: nothing updates or rewrites an entry after it is written.
type Entry struct {
	ID            snowflake.ID    `gorm:"column:history_id;primaryKey" json:"history_id"`
	ApplicationID snowflake.ID    `gorm:"column:ix_application_id;not null;index" json:"ix_application_id"`
	OldStatus     workflow.Status `gorm:"column:old_status;not null" json:"old_status"`
	NewStatus     workflow.Status `gorm:"column:new_status;not null" json:"new_status"`
	ChangedAt     time.Time       `gorm:"column:changed_at;not null" json:"changed_at"`
	Notes         string          `json:"notes,omitempty"`
	ChangedBy     string          `gorm:"column:changed_by" json:"changed_by,omitempty"`
}

func (Entry) TableName() string { return "application_status_history" }

// OldStatusLabel re-derives the display label from the stored key. Labels
// are never persisted so renames in the stage table flow through history.
func (e Entry) OldStatusLabel() string { return workflow.DisplayLabel(e.OldStatus) }

// NewStatusLabel is the display label for the transition target.
func (e Entry) NewStatusLabel() string { return workflow.DisplayLabel(e.NewStatus) }
