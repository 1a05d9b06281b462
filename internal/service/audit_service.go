package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
	"github.com/noah-isme/erolls-portal/pkg/export"
)

const (
	defaultAuditPageSize = 20
	maxAuditPageSize     = 100
	auditExportPageSize  = 1000
)

type auditUpstream interface {
	AuditLogs(ctx context.Context, token string, filter models.AuditFilter) ([]models.AuditEntry, int, error)
}

var auditHeaders = []string{"Timestamp", "User", "Action", "Type", "Details", "IP Address", "Location"}

// AuditService reads backend activity logs within the caller's scope.
type AuditService struct {
	repo     auditUpstream
	renderer *export.Renderer
	logger   *zap.Logger
}

// NewAuditService constructs the service.
func NewAuditService(repo auditUpstream, renderer *export.Renderer, logger *zap.Logger) *AuditService {
	if renderer == nil {
		renderer = export.NewRenderer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, renderer: renderer, logger: logger}
}

// List returns one page of audit entries.
func (s *AuditService) List(ctx context.Context, caller models.Caller, filter models.AuditFilter) ([]models.AuditEntry, *models.Pagination, error) {
	state, district, err := oversightScope(caller.Actor, "audit logs", filter.State, filter.District)
	if err != nil {
		return nil, nil, err
	}
	filter.State, filter.District = state, district
	filter.User = strings.TrimSpace(filter.User)
	filter.ActionType = strings.ToLower(strings.TrimSpace(filter.ActionType))
	if filter.ActionType == "all" {
		filter.ActionType = ""
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultAuditPageSize
	}
	if filter.PageSize > maxAuditPageSize {
		filter.PageSize = maxAuditPageSize
	}

	entries, total, err := s.repo.AuditLogs(ctx, caller.Token, filter)
	if err != nil {
		return nil, nil, err
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	if total < len(entries) {
		total = len(entries)
	}
	return entries, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Export renders matching audit entries.
func (s *AuditService) Export(ctx context.Context, caller models.Caller, filter models.AuditFilter, format string) (*export.File, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	state, district, err := oversightScope(caller.Actor, "audit logs", filter.State, filter.District)
	if err != nil {
		return nil, err
	}
	filter.State, filter.District = state, district
	filter.Page, filter.PageSize = 1, auditExportPageSize

	entries, _, err := s.repo.AuditLogs(ctx, caller.Token, filter)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{Headers: auditHeaders, Rows: make([]map[string]string, 0, len(entries))}
	for _, e := range entries {
		data.Rows = append(data.Rows, map[string]string{
			"Timestamp":  e.Timestamp,
			"User":       e.User,
			"Action":     e.Action,
			"Type":       e.ActionType,
			"Details":    e.Details,
			"IP Address": e.IPAddress,
			"Location":   e.Location,
		})
	}
	file, err := s.renderer.Render(f, data, "Audit & Activity Log", "audit-log")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render audit export")
	}
	return file, nil
}
