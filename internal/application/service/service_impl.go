package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/gridpoint/interconnect/internal/application/domain"
	"github.com/gridpoint/interconnect/internal/config"
	customerdomain "github.com/gridpoint/interconnect/internal/customer/domain"
	installerdomain "github.com/gridpoint/interconnect/internal/installer/domain"
	statushistorydomain "github.com/gridpoint/interconnect/internal/statushistory/domain"
	systemdomain "github.com/gridpoint/interconnect/internal/system/domain"
	"github.com/gridpoint/interconnect/internal/workflow"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Cfg        config.Config
	Repo       domain.Repository
	Customers  customerdomain.Repository
	Installers installerdomain.Repository
	Systems    systemdomain.Repository
	History    statushistorydomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	customers  customerdomain.Repository
	installers installerdomain.Repository
	systems    systemdomain.Repository
	history    statushistorydomain.Repository

	resetNotesOnAdvance bool
}

func New(p Params) domain.Service {
	return &Service{
		db:                  p.DB,
		log:                 p.Log.Named("application.service"),
		genID:               p.GenID,
		repo:                p.Repo,
		customers:           p.Customers,
		installers:          p.Installers,
		systems:             p.Systems,
		history:             p.History,
		resetNotesOnAdvance: p.Cfg.ResetNotesOnAdvance,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Application, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, req domain.GetRequest) (domain.Application, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Application{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Application{}, err
	}
	if item == nil {
		return domain.Application{}, domain.ErrNotFound
	}
	return *item, nil
}

// Create validates the whole form up front, then inserts account, premise,
// customer, installer, system and the application row in dependency order
// inside one transaction, seeded at the first stage with its default note.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Application, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"first_name", req.FirstName},
		{"last_name", req.LastName},
		{"street_address", req.StreetAddress},
		{"city", req.City},
		{"state", req.State},
		{"zip_code", req.ZipCode},
		{"system_size_kw", req.SystemSizeKW},
		{"panel_manufacturer", req.PanelManufacturer},
		{"inverter_manufacturer", req.InverterManufacturer},
		{"installer_company", req.InstallerCompany},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.Application{}, fmt.Errorf("%w: %s", domain.ErrMissingField, f.name)
		}
	}

	sizeKW, err := strconv.ParseFloat(strings.TrimSpace(req.SystemSizeKW), 64)
	if err != nil || sizeKW <= 0 {
		return domain.Application{}, domain.ErrInvalidSystemSize
	}

	now := time.Now().UTC()
	firstStage := workflow.Stages[0]

	account := customerdomain.Account{
		ID:        s.genID.Generate(),
		FullName:  strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName),
		Phone:     "555-0100",
		CreatedAt: now,
	}
	account.Email = fmt.Sprintf("customer%d@example.com", account.ID)

	premise := customerdomain.Premise{
		ID:            s.genID.Generate(),
		StreetAddress: strings.TrimSpace(req.StreetAddress),
		City:          strings.TrimSpace(req.City),
		State:         strings.ToUpper(strings.TrimSpace(req.State)),
		ZipCode:       strings.TrimSpace(req.ZipCode),
		CreatedAt:     now,
	}

	customer := customerdomain.Customer{
		ID:        s.genID.Generate(),
		AccountID: account.ID,
		PremID:    premise.ID,
		CreatedAt: now,
	}

	installer := installerdomain.Installer{
		ID:          s.genID.Generate(),
		CompanyName: strings.TrimSpace(req.InstallerCompany),
		Slug:        slug.Make(req.InstallerCompany),
		CreatedAt:   now,
	}

	system := systemdomain.System{
		ID:                   s.genID.Generate(),
		SystemSizeKW:         sizeKW,
		PanelManufacturer:    strings.TrimSpace(req.PanelManufacturer),
		InverterManufacturer: strings.TrimSpace(req.InverterManufacturer),
		CreatedAt:            now,
	}

	application := domain.Application{
		ID:          s.genID.Generate(),
		CustID:      customer.ID,
		InstallerID: installer.ID,
		SystemID:    system.ID,
		Status:      firstStage.Key,
		Notes:       firstStage.DefaultNote,
		CreatedAt:   now,
		UpdatedAt:   now,
		Metadata:    datatypes.JSONMap{},
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.customers.InsertAccount(ctx, tx, &account); err != nil {
			return err
		}
		if err := s.customers.InsertPremise(ctx, tx, &premise); err != nil {
			return err
		}
		if err := s.customers.InsertCustomer(ctx, tx, &customer); err != nil {
			return err
		}
		if err := s.installers.Insert(ctx, tx, &installer); err != nil {
			return err
		}
		if err := s.systems.Insert(ctx, tx, &system); err != nil {
			return err
		}
		return s.repo.Insert(ctx, tx, &application)
	})
	if err != nil {
		return domain.Application{}, err
	}

	s.log.Info("application created",
		zap.String("application_id", application.ID.String()),
		zap.String("status", string(application.Status)),
	)

	created, err := s.repo.FindByID(ctx, s.db, application.ID)
	if err != nil {
		return domain.Application{}, err
	}
	if created == nil {
		return domain.Application{}, domain.ErrNotFound
	}
	return *created, nil
}

// Advance moves the application exactly one stage forward and appends the
// matching history entry in the same transaction. Advancing a terminal or
// withdrawn application is a no-op, not an error, so a duplicate submit of
// the same advance cannot produce a second transition.
func (s *Service) Advance(ctx context.Context, req domain.AdvanceRequest) (domain.AdvanceResponse, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.AdvanceResponse{}, err
	}

	var resp domain.AdvanceResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if app == nil {
			return domain.ErrNotFound
		}

		next, ok := workflow.NextStage(app.Status)
		if workflow.IsTerminal(app.Status) || !ok {
			resp = domain.AdvanceResponse{Application: *app, Advanced: false}
			return nil
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"status":            next.Key,
			next.TimestampField: now,
			"updated_at":        now,
		}
		if s.resetNotesOnAdvance {
			updates["notes"] = next.DefaultNote
		}
		if err := s.repo.Update(ctx, tx, app.ID, updates); err != nil {
			return err
		}

		entry := statushistorydomain.Entry{
			ID:            s.genID.Generate(),
			ApplicationID: app.ID,
			OldStatus:     app.Status,
			NewStatus:     next.Key,
			ChangedAt:     now,
			Notes:         app.Notes,
			ChangedBy:     strings.TrimSpace(req.ChangedBy),
		}
		if err := s.history.Append(ctx, tx, &entry); err != nil {
			return err
		}

		resp = domain.AdvanceResponse{Advanced: true, Entry: &entry}
		return nil
	})
	if err != nil {
		return domain.AdvanceResponse{}, err
	}

	if resp.Advanced {
		s.log.Info("application advanced",
			zap.String("application_id", id.String()),
			zap.String("old_status", string(resp.Entry.OldStatus)),
			zap.String("new_status", string(resp.Entry.NewStatus)),
		)
	}

	current, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.AdvanceResponse{}, err
	}
	if current != nil {
		resp.Application = *current
	}
	return resp, nil
}

// Withdraw parks the application on the terminal withdrawn sentinel. No
// stage timestamp is touched; the transition is still audited.
func (s *Service) Withdraw(ctx context.Context, req domain.WithdrawRequest) (domain.WithdrawResponse, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.WithdrawResponse{}, err
	}

	var resp domain.WithdrawResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if app == nil {
			return domain.ErrNotFound
		}
		if workflow.IsTerminal(app.Status) {
			resp = domain.WithdrawResponse{Application: *app, Withdrawn: false}
			return nil
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"status":     workflow.StatusWithdrawn,
			"updated_at": now,
		}
		if err := s.repo.Update(ctx, tx, app.ID, updates); err != nil {
			return err
		}

		entry := statushistorydomain.Entry{
			ID:            s.genID.Generate(),
			ApplicationID: app.ID,
			OldStatus:     app.Status,
			NewStatus:     workflow.StatusWithdrawn,
			ChangedAt:     now,
			Notes:         app.Notes,
			ChangedBy:     strings.TrimSpace(req.ChangedBy),
		}
		if err := s.history.Append(ctx, tx, &entry); err != nil {
			return err
		}

		resp = domain.WithdrawResponse{Withdrawn: true, Entry: &entry}
		return nil
	})
	if err != nil {
		return domain.WithdrawResponse{}, err
	}

	current, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.WithdrawResponse{}, err
	}
	if current != nil {
		resp.Application = *current
	}
	return resp, nil
}

// SetStageDate backdates one stage timestamp without touching status or
// history. Invalid stage keys and dates are rejected before any write.
func (s *Service) SetStageDate(ctx context.Context, req domain.SetStageDateRequest) (domain.Application, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Application{}, err
	}

	field := workflow.TimestampField(req.Stage)
	if field == "" {
		return domain.Application{}, domain.ErrUnknownStage
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		return domain.Application{}, domain.ErrInvalidDate
	}

	app, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Application{}, err
	}
	if app == nil {
		return domain.Application{}, domain.ErrNotFound
	}

	err = s.repo.Update(ctx, s.db, id, map[string]any{
		field:        date.UTC(),
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return domain.Application{}, err
	}

	updated, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Application{}, err
	}
	return *updated, nil
}

// SaveNotes replaces the current stage's free-text note. Nothing else
// changes, including history.
func (s *Service) SaveNotes(ctx context.Context, req domain.SaveNotesRequest) (domain.Application, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Application{}, err
	}

	app, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Application{}, err
	}
	if app == nil {
		return domain.Application{}, domain.ErrNotFound
	}

	err = s.repo.Update(ctx, s.db, id, map[string]any{
		"notes":      req.Notes,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return domain.Application{}, err
	}

	updated, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Application{}, err
	}
	return *updated, nil
}

// Delete cascades in the order the satellites depend on captured ids:
// application, its history, system, installer, premise, customer. Absent
// satellites are skipped. The whole cascade is one transaction so a
// failure partway leaves no orphaned rows behind.
func (s *Service) Delete(ctx context.Context, req domain.DeleteRequest) error {
	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if app == nil {
			return domain.ErrNotFound
		}

		var premID snowflake.ID
		if app.CustID != 0 {
			customer, err := s.customers.FindCustomerByID(ctx, tx, app.CustID)
			if err != nil {
				return err
			}
			if customer != nil {
				premID = customer.PremID
			}
		}

		if err := s.repo.Delete(ctx, tx, app.ID); err != nil {
			return err
		}
		if err := s.history.DeleteByApplication(ctx, tx, app.ID); err != nil {
			return err
		}
		if app.SystemID != 0 {
			if err := s.systems.Delete(ctx, tx, app.SystemID); err != nil {
				return err
			}
		}
		if app.InstallerID != 0 {
			if err := s.installers.Delete(ctx, tx, app.InstallerID); err != nil {
				return err
			}
		}
		if premID != 0 {
			if err := s.customers.DeletePremise(ctx, tx, premID); err != nil {
				return err
			}
		}
		if app.CustID != 0 {
			if err := s.customers.DeleteCustomer(ctx, tx, app.CustID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("application deleted", zap.String("application_id", id.String()))
	return nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
