package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	applicationdomain "github.com/gridpoint/interconnect/internal/application/domain"
	"github.com/gridpoint/interconnect/internal/config"
	"github.com/gridpoint/interconnect/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubService struct {
	list         func(ctx context.Context) ([]applicationdomain.Application, error)
	getByID      func(ctx context.Context, req applicationdomain.GetRequest) (applicationdomain.Application, error)
	create       func(ctx context.Context, req applicationdomain.CreateRequest) (applicationdomain.Application, error)
	advance      func(ctx context.Context, req applicationdomain.AdvanceRequest) (applicationdomain.AdvanceResponse, error)
	withdraw     func(ctx context.Context, req applicationdomain.WithdrawRequest) (applicationdomain.WithdrawResponse, error)
	setStageDate func(ctx context.Context, req applicationdomain.SetStageDateRequest) (applicationdomain.Application, error)
	saveNotes    func(ctx context.Context, req applicationdomain.SaveNotesRequest) (applicationdomain.Application, error)
	delete       func(ctx context.Context, req applicationdomain.DeleteRequest) error
}

func (s *stubService) List(ctx context.Context) ([]applicationdomain.Application, error) {
	return s.list(ctx)
}

func (s *stubService) GetByID(ctx context.Context, req applicationdomain.GetRequest) (applicationdomain.Application, error) {
	return s.getByID(ctx, req)
}

func (s *stubService) Create(ctx context.Context, req applicationdomain.CreateRequest) (applicationdomain.Application, error) {
	return s.create(ctx, req)
}

func (s *stubService) Advance(ctx context.Context, req applicationdomain.AdvanceRequest) (applicationdomain.AdvanceResponse, error) {
	return s.advance(ctx, req)
}

func (s *stubService) Withdraw(ctx context.Context, req applicationdomain.WithdrawRequest) (applicationdomain.WithdrawResponse, error) {
	return s.withdraw(ctx, req)
}

func (s *stubService) SetStageDate(ctx context.Context, req applicationdomain.SetStageDateRequest) (applicationdomain.Application, error) {
	return s.setStageDate(ctx, req)
}

func (s *stubService) SaveNotes(ctx context.Context, req applicationdomain.SaveNotesRequest) (applicationdomain.Application, error) {
	return s.saveNotes(ctx, req)
}

func (s *stubService) Delete(ctx context.Context, req applicationdomain.DeleteRequest) error {
	return s.delete(ctx, req)
}

func newTestRouter(t *testing.T, svc applicationdomain.Service) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	s := NewServer(ServerParams{
		Gin:            engine,
		Cfg:            config.Config{},
		Log:            zap.NewNop(),
		ApplicationSvc: svc,
	})
	s.RegisterRoutes()
	return engine
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListStagesEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubService{})

	w := doRequest(t, router, http.MethodGet, "/api/v1/workflow/stages", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			Key          workflow.Status `json:"key"`
			Label        string          `json:"label"`
			DisplayLabel string          `json:"display_label"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, len(workflow.Stages))
	assert.Equal(t, workflow.StatusSiteSelection, resp.Data[0].Key)
	assert.Equal(t, "Step 1: Site Selection", resp.Data[0].DisplayLabel)
	assert.Equal(t, "Step 4: Construction & Installation", resp.Data[3].DisplayLabel)
}

func TestListApplicationsEndpoint(t *testing.T) {
	svc := &stubService{
		list: func(ctx context.Context) ([]applicationdomain.Application, error) {
			return []applicationdomain.Application{
				{ID: snowflake.ID(1001), Status: workflow.StatusSubmitted},
			}, nil
		},
	}
	router := newTestRouter(t, svc)

	w := doRequest(t, router, http.MethodGet, "/api/v1/applications", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []applicationdomain.Application `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, workflow.StatusSubmitted, resp.Data[0].Status)
}

func TestCreateApplicationEndpoint(t *testing.T) {
	var captured applicationdomain.CreateRequest
	svc := &stubService{
		create: func(ctx context.Context, req applicationdomain.CreateRequest) (applicationdomain.Application, error) {
			captured = req
			return applicationdomain.Application{ID: snowflake.ID(42), Status: workflow.StatusSiteSelection}, nil
		},
	}
	router := newTestRouter(t, svc)

	w := doRequest(t, router, http.MethodPost, "/api/v1/applications", gin.H{
		"first_name":            "Alex",
		"last_name":             "Smith",
		"street_address":        "123 Maple Street",
		"city":                  "San Francisco",
		"state":                 "CA",
		"zip_code":              "94102",
		"system_size_kw":        "7.5",
		"panel_manufacturer":    "SunPower",
		"inverter_manufacturer": "Enphase",
		"installer_company":     "SolarGood LLC",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Alex", captured.FirstName)
	assert.Equal(t, "SolarGood LLC", captured.InstallerCompany)
	assert.Equal(t, "7.5", captured.SystemSizeKW)
}

func TestCreateApplicationMissingField(t *testing.T) {
	svc := &stubService{
		create: func(ctx context.Context, req applicationdomain.CreateRequest) (applicationdomain.Application, error) {
			return applicationdomain.Application{}, fmt.Errorf("%w: city", applicationdomain.ErrMissingField)
		},
	}
	router := newTestRouter(t, svc)

	w := doRequest(t, router, http.MethodPost, "/api/v1/applications", gin.H{"first_name": "Alex"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Field string `json:"field"`
				Code  string `json:"code"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	require.Len(t, resp.Error.Errors, 1)
	assert.Equal(t, "city", resp.Error.Errors[0].Field)
	assert.Equal(t, "missing_field: city", resp.Error.Errors[0].Code)
}

func TestCreateApplicationMalformedBody(t *testing.T) {
	router := newTestRouter(t, &stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestCreateApplicationDuplicateKey(t *testing.T) {
	svc := &stubService{
		create: func(ctx context.Context, req applicationdomain.CreateRequest) (applicationdomain.Application, error) {
			return applicationdomain.Application{}, gorm.ErrDuplicatedKey
		},
	}
	router := newTestRouter(t, svc)

	w := doRequest(t, router, http.MethodPost, "/api/v1/applications", gin.H{"first_name": "Alex"})
	require.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "conflict", resp.Error.Type)
}

func TestGetApplicationNotFound(t *testing.T) {
	svc := &stubService{
		getByID: func(ctx context.Context, req applicationdomain.GetRequest) (applicationdomain.Application, error) {
			return applicationdomain.Application{}, applicationdomain.ErrNotFound
		},
	}
	router := newTestRouter(t, svc)

	w := doRequest(t, router, http.MethodGet, "/api/v1/applications/12345", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestAdvanceAcceptsEmptyBody(t *testing.T) {
	var captured applicationdomain.AdvanceRequest
	svc := &stubService{
		advance: func(ctx context.Context, req applicationdomain.AdvanceRequest) (applicationdomain.AdvanceResponse, error) {
			captured = req
			return applicationdomain.AdvanceResponse{
				Application: applicationdomain.Application{ID: snowflake.ID(42), Status: workflow.StatusSubmitted},
				Advanced:    true,
			}, nil
		},
	}
	router := newTestRouter(t, svc)

	w := doRequest(t, router, http.MethodPost, "/api/v1/applications/42/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", captured.ID)
	assert.Empty(t, captured.ChangedBy)
}

func TestAdvancePassesActor(t *testing.T) {
	var captured applicationdomain.AdvanceRequest
	svc := &stubService{
		advance: func(ctx context.Context, req applicationdomain.AdvanceRequest) (applicationdomain.AdvanceResponse, error) {
			captured = req
			return applicationdomain.AdvanceResponse{}, nil
		},
	}
	router := newTestRouter(t, svc)

	w := doRequest(t, router, http.MethodPost, "/api/v1/applications/42/advance", gin.H{"changed_by": "admin"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", captured.ChangedBy)
}

func TestWithdrawEndpoint(t *testing.T) {
	svc := &stubService{
		withdraw: func(ctx context.Context, req applicationdomain.WithdrawRequest) (applicationdomain.WithdrawResponse, error) {
			return applicationdomain.WithdrawResponse{
				Application: applicationdomain.Application{Status: workflow.StatusWithdrawn},
				Withdrawn:   true,
			}, nil
		},
	}
	router := newTestRouter(t, svc)

	w := doRequest(t, router, http.MethodPost, "/api/v1/applications/42/withdraw", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"withdrawn":true`)
}

func TestSetStageDateEndpoint(t *testing.T) {
	var captured applicationdomain.SetStageDateRequest
	svc := &stubService{
		setStageDate: func(ctx context.Context, req applicationdomain.SetStageDateRequest) (applicationdomain.Application, error) {
			captured = req
			return applicationdomain.Application{}, nil
		},
	}
	router := newTestRouter(t, svc)

	w := doRequest(t, router, http.MethodPatch, "/api/v1/applications/42/dates", gin.H{
		"stage": "submitted",
		"date":  "2026-03-01",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, workflow.StatusSubmitted, captured.Stage)
	assert.Equal(t, "2026-03-01", captured.Date)
}

func TestSetStageDateRejectsBadDate(t *testing.T) {
	svc := &stubService{
		setStageDate: func(ctx context.Context, req applicationdomain.SetStageDateRequest) (applicationdomain.Application, error) {
			return applicationdomain.Application{}, applicationdomain.ErrInvalidDate
		},
	}
	router := newTestRouter(t, svc)

	w := doRequest(t, router, http.MethodPatch, "/api/v1/applications/42/dates", gin.H{
		"stage": "submitted",
		"date":  "bogus",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_date")
}

func TestSaveNotesEndpoint(t *testing.T) {
	var captured applicationdomain.SaveNotesRequest
	svc := &stubService{
		saveNotes: func(ctx context.Context, req applicationdomain.SaveNotesRequest) (applicationdomain.Application, error) {
			captured = req
			return applicationdomain.Application{Notes: req.Notes}, nil
		},
	}
	router := newTestRouter(t, svc)

	w := doRequest(t, router, http.MethodPatch, "/api/v1/applications/42/notes", gin.H{"notes": "Inspection passed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Inspection passed", captured.Notes)
}

func TestDeleteApplicationEndpoint(t *testing.T) {
	var captured applicationdomain.DeleteRequest
	svc := &stubService{
		delete: func(ctx context.Context, req applicationdomain.DeleteRequest) error {
			captured = req
			return nil
		},
	}
	router := newTestRouter(t, svc)

	w := doRequest(t, router, http.MethodDelete, "/api/v1/applications/42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", captured.ID)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}
