package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
	"github.com/noah-isme/erolls-portal/pkg/response"
)

type dashboardService interface {
	National(ctx context.Context, caller models.Caller) (*dto.NationalDashboardResponse, bool, error)
	State(ctx context.Context, caller models.Caller, state, district string) (*dto.StateDashboardResponse, bool, error)
	ERO(ctx context.Context, caller models.Caller, status string) (*dto.ERODashboardResponse, bool, error)
}

type applicationService interface {
	Verify(ctx context.Context, caller models.Caller, id string) (*dto.ApplicationActionResponse, error)
	Reject(ctx context.Context, caller models.Caller, id, reason string) (*dto.ApplicationActionResponse, error)
}

// DashboardHandler wires dashboard and application review services to HTTP endpoints.
type DashboardHandler struct {
	service      dashboardService
	applications applicationService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService, applications applicationService) *DashboardHandler {
	return &DashboardHandler{service: service, applications: applications}
}

// National godoc
// @Summary National dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/national [get]
func (h *DashboardHandler) National(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.service.National(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, start, summary, cacheHit)
}

// State godoc
// @Summary State or district dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param state query string false "State name (pinned for CEO, DEO and RO)"
// @Param district query string false "District name (pinned for DEO and RO)"
// @Success 200 {object} response.Envelope
// @Router /dashboard/state [get]
func (h *DashboardHandler) State(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.service.State(c.Request.Context(), caller,
		strings.TrimSpace(c.Query("state")), strings.TrimSpace(c.Query("district")))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, start, summary, cacheHit)
}

// ERO godoc
// @Summary Electoral registration officer dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param status query string false "Application status filter, defaults to all"
// @Success 200 {object} response.Envelope
// @Router /dashboard/ero [get]
func (h *DashboardHandler) ERO(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.service.ERO(c.Request.Context(), caller, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, start, summary, cacheHit)
}

// VerifyApplication godoc
// @Summary Verify a registration application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /applications/{id}/verify [post]
func (h *DashboardHandler) VerifyApplication(c *gin.Context) {
	if h.applications == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "application service not configured"))
		return
	}
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.applications.Verify(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// RejectApplication godoc
// @Summary Reject a registration application
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param payload body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /applications/{id}/reject [post]
func (h *DashboardHandler) RejectApplication(c *gin.Context) {
	if h.applications == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "application service not configured"))
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
	result, err := h.applications.Reject(c.Request.Context(), caller, c.Param("id"), reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
