package domain

import (
	"context"
	"errors"

	"github.com/gridpoint/interconnect/internal/statushistory/domain"
	"github.com/gridpoint/interconnect/internal/workflow"
)

// CreateRequest carries the new-application form. Every field is required;
// validation happens before any insert is issued.
type CreateRequest struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	StreetAddress        string `json:"street_address"`
	City                 string `json:"city"`
	State                string `json:"state"`
	ZipCode              string `json:"zip_code"`
	SystemSizeKW         string `json:"system_size_kw"`
	PanelManufacturer    string `json:"panel_manufacturer"`
	InverterManufacturer string `json:"inverter_manufacturer"`
	InstallerCompany     string `json:"installer_company"`
}

type GetRequest struct {
	ID string
}

type AdvanceRequest struct {
	ID        string
	ChangedBy string
}

// AdvanceResponse reports the post-call row. Advanced is false when the
// application was already terminal or withdrawn; that call is a no-op and
// writes no history entry.
type AdvanceResponse struct {
	Application Application   `json:"application"`
	Advanced    bool          `json:"advanced"`
	Entry       *domain.Entry `json:"entry,omitempty"`
}

type WithdrawRequest struct {
	ID        string
	ChangedBy string
}

type WithdrawResponse struct {
	Application Application   `json:"application"`
	Withdrawn   bool          `json:"withdrawn"`
	Entry       *domain.Entry `json:"entry,omitempty"`
}

// SetStageDateRequest corrects a single stage timestamp. Date is a
// calendar date in YYYY-MM-DD form; status and history are untouched.
type SetStageDateRequest struct {
	ID    string
	Stage workflow.Status
	Date  string
}

type SaveNotesRequest struct {
	ID    string
	Notes string
}

type DeleteRequest struct {
	ID string
}

type Service interface {
	List(ctx context.Context) ([]Application, error)
	GetByID(ctx context.Context, req GetRequest) (Application, error)
	Create(ctx context.Context, req CreateRequest) (Application, error)
	Advance(ctx context.Context, req AdvanceRequest) (AdvanceResponse, error)
	Withdraw(ctx context.Context, req WithdrawRequest) (WithdrawResponse, error)
	SetStageDate(ctx context.Context, req SetStageDateRequest) (Application, error)
	SaveNotes(ctx context.Context, req SaveNotesRequest) (Application, error)
	Delete(ctx context.Context, req DeleteRequest) error
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("not_found")
	ErrMissingField      = errors.New("missing_field")
	ErrInvalidSystemSize = errors.New("invalid_system_size")
	ErrUnknownStage      = errors.New("unknown_stage")
	ErrInvalidDate       = errors.New("invalid_date")
)
