package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/gridpoint/interconnect/internal/customer/domain"
	installerdomain "github.com/gridpoint/interconnect/internal/installer/domain"
	statushistorydomain "github.com/gridpoint/interconnect/internal/statushistory/domain"
	systemdomain "github.com/gridpoint/interconnect/internal/system/domain"
	"github.com/gridpoint/interconnect/internal/workflow"
	"gorm.io/datatypes"
)

// Application is the tracked interconnection application. One nullable
// timestamp exists per workflow stage; created_at doubles as the
// site_selection stage timestamp. Notes holds the free text for the
// current stage only, past notes live in the status history.
type Application struct {
	ID          snowflake.ID    `gorm:"column:ix_application_id;primaryKey" json:"ix_application_id"`
	CustID      snowflake.ID    `gorm:"column:cust_id;not null" json:"cust_id"`
	InstallerID snowflake.ID    `gorm:"column:ix_installer_id;not null" json:"ix_installer_id"`
	SystemID    snowflake.ID    `gorm:"column:ix_system_id;not null" json:"ix_system_id"`
	Status      workflow.Status `gorm:"not null" json:"status"`
	Notes       string          `json:"notes"`

	CreatedAt             time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	SubmittedAt           *time.Time `gorm:"column:submitted_at" json:"submitted_at"`
	AgreementApprovedAt   *time.Time `gorm:"column:agreement_approved_at" json:"agreement_approved_at"`
	ConstructionStartedAt *time.Time `gorm:"column:construction_started_at" json:"construction_started_at"`
	CompletedAt           *time.Time `gorm:"column:completed_at" json:"completed_at"`
	UpdatedAt             time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`

	Metadata datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`

	Customer  *customerdomain.Customer    `gorm:"foreignKey:CustID;references:ID" json:"customer,omitempty"`
	Installer *installerdomain.Installer  `gorm:"foreignKey:InstallerID;references:ID" json:"installer,omitempty"`
	System    *systemdomain.System        `gorm:"foreignKey:SystemID;references:ID" json:"system,omitempty"`
	History   []statushistorydomain.Entry `gorm:"foreignKey:ApplicationID;references:ID" json:"history,omitempty"`
}

func (Application) TableName() string { return "interconnection_application" }

// StageIndex is the application's position in the workflow. Withdrawn and
// unknown statuses clamp to the first stage for timeline rendering.
func (a Application) StageIndex() int {
	return workflow.StageIndex(a.Status)
}

// StatusLabel is the uniform "Step N: <Label>" rendering of the current
// status, or the raw status for the withdrawn sentinel.
func (a Application) StatusLabel() string {
	return workflow.DisplayLabel(a.Status)
}

// StageTimestamp returns the stored timestamp for one stage key, nil when
// that stage has not been reached or the key is unknown.
func (a Application) StageTimestamp(key workflow.Status) *time.Time {
	switch workflow.TimestampField(key) {
	case "created_at":
		t := a.CreatedAt
		return &t
	case "submitted_at":
		return a.SubmittedAt
	case "agreement_approved_at":
		return a.AgreementApprovedAt
	case "construction_started_at":
		return a.ConstructionStartedAt
	case "completed_at":
		return a.CompletedAt
	default:
		return nil
	}
}
