package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	applicationdomain "github.com/gridpoint/interconnect/internal/application/domain"
	"github.com/gridpoint/interconnect/internal/workflow"
)

// ListStages exposes the workflow table so clients render timelines from
// the same source of truth the server transitions on.
func (s *Server) ListStages(c *gin.Context) {
	type stageView struct {
		workflow.Stage
		DisplayLabel string `json:"display_label"`
	}

	stages := make([]stageView, 0, len(workflow.Stages))
	for _, stage := range workflow.Stages {
		stages = append(stages, stageView{
			Stage:        stage,
			DisplayLabel: workflow.DisplayLabel(stage.Key),
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": stages})
}

func (s *Server) ListApplications(c *gin.Context) {
	resp, err := s.applicationSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetApplicationByID(c *gin.Context) {
	resp, err := s.applicationSvc.GetByID(c.Request.Context(), applicationdomain.GetRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateApplication(c *gin.Context) {
	var req applicationdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.applicationSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

type actorRequest struct {
	ChangedBy string `json:"changed_by"`
}

func (s *Server) AdvanceApplication(c *gin.Context) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.applicationSvc.Advance(c.Request.Context(), applicationdomain.AdvanceRequest{
		ID:        strings.TrimSpace(c.Param("id")),
		ChangedBy: strings.TrimSpace(req.ChangedBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) WithdrawApplication(c *gin.Context) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.applicationSvc.Withdraw(c.Request.Context(), applicationdomain.WithdrawRequest{
		ID:        strings.TrimSpace(c.Param("id")),
		ChangedBy: strings.TrimSpace(req.ChangedBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type setStageDateRequest struct {
	Stage string `json:"stage"`
	Date  string `json:"date"`
}

func (s *Server) SetApplicationStageDate(c *gin.Context) {
	var req setStageDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.applicationSvc.SetStageDate(c.Request.Context(), applicationdomain.SetStageDateRequest{
		ID:    strings.TrimSpace(c.Param("id")),
		Stage: workflow.Status(strings.TrimSpace(req.Stage)),
		Date:  strings.TrimSpace(req.Date),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type saveNotesRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) SaveApplicationNotes(c *gin.Context) {
	var req saveNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.applicationSvc.SaveNotes(c.Request.Context(), applicationdomain.SaveNotesRequest{
		ID:    strings.TrimSpace(c.Param("id")),
		Notes: req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteApplication(c *gin.Context) {
	err := s.applicationSvc.Delete(c.Request.Context(), applicationdomain.DeleteRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
