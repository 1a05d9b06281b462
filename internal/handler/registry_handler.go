package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
	"github.com/noah-isme/erolls-portal/pkg/export"
	"github.com/noah-isme/erolls-portal/pkg/response"
)

type pollingStationService interface {
	List(ctx context.Context, caller models.Caller, filter models.PollingStationFilter) ([]models.PollingStation, error)
	Export(ctx context.Context, caller models.Caller, filter models.PollingStationFilter, format string) (*export.File, error)
}

type auditService interface {
	List(ctx context.Context, caller models.Caller, filter models.AuditFilter) ([]models.AuditEntry, *models.Pagination, error)
	Export(ctx context.Context, caller models.Caller, filter models.AuditFilter, format string) (*export.File, error)
}

type analysisService interface {
	Scores(ctx context.Context, caller models.Caller, metric, level, state string) (*dto.ScoresResponse, bool, error)
}

// RegistryHandler serves polling stations, audit logs and statistical analysis.
type RegistryHandler struct {
	stations pollingStationService
	audit    auditService
	analysis analysisService
}

// NewRegistryHandler constructs the handler.
func NewRegistryHandler(stations pollingStationService, audit auditService, analysis analysisService) *RegistryHandler {
	return &RegistryHandler{stations: stations, audit: audit, analysis: analysis}
}

// PollingStations godoc
// @Summary List polling stations in the caller's jurisdiction
// @Tags Polling Stations
// @Produce json
// @Security BearerAuth
// @Param state query string false "State"
// @Param district query string false "District"
// @Param constituency query string false "Constituency"
// @Param q query string false "Free text"
// @Success 200 {object} response.Envelope
// @Router /polling-stations [get]
func (h *RegistryHandler) PollingStations(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	stations, err := h.stations.List(c.Request.Context(), caller, stationFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stations, nil)
}

// ExportPollingStations godoc
// @Summary Export polling stations
// @Tags Polling Stations
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /polling-stations/export [get]
func (h *RegistryHandler) ExportPollingStations(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.stations.Export(c.Request.Context(), caller, stationFilter(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Name, file.ContentType, file.Body)
}

// AuditLogs godoc
// @Summary Audit and activity log
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param user query string false "User filter"
// @Param action query string false "Action type, all by default"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size (max 100)"
// @Success 200 {object} response.Envelope
// @Router /audit/logs [get]
func (h *RegistryHandler) AuditLogs(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter, err := auditFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	entries, pagination, err := h.audit.List(c.Request.Context(), caller, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// ExportAuditLogs godoc
// @Summary Export the audit log
// @Tags Audit
// @Produce text/csv
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /audit/logs/export [get]
func (h *RegistryHandler) ExportAuditLogs(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter, err := auditFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.audit.Export(c.Request.Context(), caller, filter, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Name, file.ContentType, file.Body)
}

// Scores godoc
// @Summary Ranked health or migration scores
// @Tags Analysis
// @Produce json
// @Security BearerAuth
// @Param metric query string false "health (default) or migration"
// @Param level query string false "national, state or constituency"
// @Param state query string false "State (pinned for CEO)"
// @Success 200 {object} response.Envelope
// @Router /analysis/scores [get]
func (h *RegistryHandler) Scores(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	scores, cacheHit, err := h.analysis.Scores(c.Request.Context(), caller, c.Query("metric"), c.Query("level"), c.Query("state"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, start, scores, cacheHit)
}

func stationFilter(c *gin.Context) models.PollingStationFilter {
	return models.PollingStationFilter{
		State:        strings.TrimSpace(c.Query("state")),
		District:     strings.TrimSpace(c.Query("district")),
		Constituency: c.Query("constituency"),
		Query:        c.Query("q"),
	}
}

func auditFilter(c *gin.Context) (models.AuditFilter, error) {
	filter := models.AuditFilter{
		User:       c.Query("user"),
		ActionType: c.Query("action"),
		State:      strings.TrimSpace(c.Query("state")),
		District:   strings.TrimSpace(c.Query("district")),
	}
	var err error
	if filter.Page, err = optionalInt(c, "page"); err != nil {
		return filter, err
	}
	if filter.PageSize, err = optionalInt(c, "pageSize"); err != nil {
		return filter, err
	}
	return filter, nil
}

func optionalInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, key+" must be a positive integer")
	}
	return n, nil
}
