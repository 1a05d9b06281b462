package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
	"github.com/noah-isme/erolls-portal/pkg/export"
)

type pollingStationUpstream interface {
	PollingStations(ctx context.Context, token string, filter models.PollingStationFilter) ([]models.PollingStation, error)
}

var pollingStationHeaders = []string{"ID", "Name", "Constituency", "Address", "Electors", "Male", "Female", "Status", "Accessibility"}

// PollingStationService lists and exports polling stations.
type PollingStationService struct {
	repo     pollingStationUpstream
	renderer *export.Renderer
	logger   *zap.Logger
}

// NewPollingStationService constructs the service.
func NewPollingStationService(repo pollingStationUpstream, renderer *export.Renderer, logger *zap.Logger) *PollingStationService {
	if renderer == nil {
		renderer = export.NewRenderer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PollingStationService{repo: repo, renderer: renderer, logger: logger}
}

// List returns stations inside the caller's jurisdiction.
func (s *PollingStationService) List(ctx context.Context, caller models.Caller, filter models.PollingStationFilter) ([]models.PollingStation, error) {
	state, district, err := oversightScope(caller.Actor, "polling stations", filter.State, filter.District)
	if err != nil {
		return nil, err
	}
	filter.State, filter.District = state, district
	filter.Constituency = strings.TrimSpace(filter.Constituency)
	filter.Query = strings.TrimSpace(filter.Query)

	stations, err := s.repo.PollingStations(ctx, caller.Token, filter)
	if err != nil {
		return nil, err
	}
	if stations == nil {
		stations = []models.PollingStation{}
	}
	return stations, nil
}

// Export renders the filtered station list as CSV or PDF.
func (s *PollingStationService) Export(ctx context.Context, caller models.Caller, filter models.PollingStationFilter, format string) (*export.File, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	stations, err := s.List(ctx, caller, filter)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{Headers: pollingStationHeaders, Rows: make([]map[string]string, 0, len(stations))}
	for _, st := range stations {
		data.Rows = append(data.Rows, map[string]string{
			"ID":            st.ID,
			"Name":          st.Name,
			"Constituency":  st.Constituency,
			"Address":       st.Address,
			"Electors":      strconv.FormatInt(st.Electors, 10),
			"Male":          strconv.FormatInt(st.Male, 10),
			"Female":        strconv.FormatInt(st.Female, 10),
			"Status":        st.Status,
			"Accessibility": st.Accessibility,
		})
	}
	file, err := s.renderer.Render(f, data, "Polling Stations", "polling-stations")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render polling station export")
	}
	s.logger.Info("polling stations exported", zap.String("actor_id", caller.Actor.ID), zap.String("format", string(f)), zap.Int("rows", len(stations)))
	return file, nil
}
