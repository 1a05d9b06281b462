package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
	"github.com/noah-isme/erolls-portal/pkg/response"
)

type migrationWorkflowService interface {
	List(ctx context.Context, caller models.Caller, filter string) (*dto.WorkflowListResponse, error)
	Approve(ctx context.Context, caller models.Caller, id string) (*dto.WorkflowActionResponse, error)
	Reject(ctx context.Context, caller models.Caller, id, reason string) (*dto.WorkflowActionResponse, error)
}

// MigrationHandler exposes the migration approval workflow.
type MigrationHandler struct {
	service migrationWorkflowService
}

// NewMigrationHandler constructs the handler.
func NewMigrationHandler(service migrationWorkflowService) *MigrationHandler {
	return &MigrationHandler{service: service}
}

// List godoc
// @Summary List migration applications with the caller's permitted actions
// @Tags Migrations
// @Produce json
// @Security BearerAuth
// @Param status query string false "all, pending, partial, completed or rejected"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /migrations/workflow [get]
func (h *MigrationHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "migration workflow not configured"))
		return
	}
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.List(c.Request.Context(), caller, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Approve godoc
// @Summary Approve a migration application
// @Tags Migrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Migration ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /migrations/workflow/{id}/approve [post]
func (h *MigrationHandler) Approve(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "migration workflow not configured"))
		return
	}
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Approve(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Reject godoc
// @Summary Reject a migration application
// @Description The reason may be sent as a JSON body or as the reason query parameter.
// @Tags Migrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Migration ID"
// @Param payload body dto.RejectRequest false "Rejection reason"
// @Param reason query string false "Rejection reason"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /migrations/workflow/{id}/reject [post]
func (h *MigrationHandler) Reject(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "migration workflow not configured"))
		return
	}
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	reason, err := rejectReason(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Reject(c.Request.Context(), caller, c.Param("id"), reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// rejectReason reads the reason from a JSON body when one is sent, falling
// back to the query string.
func rejectReason(c *gin.Context) (string, error) {
	if c.Request.ContentLength != 0 && strings.Contains(c.GetHeader("Content-Type"), "json") {
		var req dto.RejectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reject payload")
		}
		if strings.TrimSpace(req.Reason) != "" {
			return req.Reason, nil
		}
	}
	return c.Query("reason"), nil
}
