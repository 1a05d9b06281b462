package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

const dashboardCachePrefix = "dashboard:"

type dashboardUpstream interface {
	National(ctx context.Context, token string) (*models.NationalDashboard, error)
	State(ctx context.Context, token, state, district string) (*models.StateDashboard, error)
	ERO(ctx context.Context, token string) (*models.ERODashboard, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService composes role-scoped dashboards from backend payloads.
type DashboardService struct {
	repo   dashboardUpstream
	cache  *CacheService
	logger *zap.Logger
	cfg    DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(repo dashboardUpstream, cache *CacheService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, cache: cache, logger: logger, cfg: cfg}
}

// National returns the nationwide dashboard and indicates cache utilisation.
func (s *DashboardService) National(ctx context.Context, caller models.Caller) (*dto.NationalDashboardResponse, bool, error) {
	if !caller.Actor.Role.IsNational() {
		return nil, false, appErrors.Clone(appErrors.ErrForbidden, "national dashboard is limited to CEC and EC")
	}
	key := dashboardCachePrefix + "national"

	var data models.NationalDashboard
	hit := s.tryCache(ctx, key, &data)
	if !hit {
		fetched, err := s.repo.National(ctx, caller.Token)
		if err != nil {
			return nil, false, err
		}
		data = *fetched
		s.persistCache(ctx, key, data)
	}

	resp := &dto.NationalDashboardResponse{
		NationalDashboard: data,
		CardsDisplay: map[string]string{
			"totalElectors":     CompactCount(data.Cards.TotalElectors),
			"pendingMigrations": CompactCount(data.Cards.PendingMigrations),
			"duplicateAlerts":   CompactCount(data.Cards.DuplicateAlerts),
			"pollingStations":   CompactCount(data.Cards.PollingStations),
		},
		StateChart: make([]dto.StateChartPoint, 0, len(data.StateDistribution)),
	}
	for _, item := range data.StateDistribution {
		resp.StateChart = append(resp.StateChart, dto.StateChartPoint{
			State:         ShortStateName(item.State),
			FullStateName: item.State,
			Electors:      item.Count,
			Display:       CompactCount(item.Count),
		})
	}
	return resp, hit, nil
}

// State returns the state dashboard. Officers are pinned to their own
// jurisdiction whatever they request.
func (s *DashboardService) State(ctx context.Context, caller models.Caller, state, district string) (*dto.StateDashboardResponse, bool, error) {
	actor := caller.Actor
	switch actor.Role {
	case models.RoleCEO:
		state = actor.State
	case models.RoleDEO, models.RoleRO:
		state, district = actor.State, actor.District
	default:
		return nil, false, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s role cannot open the state dashboard", roleName(actor.Role)))
	}
	if missing := actor.MissingJurisdiction(); len(missing) > 0 {
		return nil, false, missingScope(missing)
	}
	state, district = strings.TrimSpace(state), strings.TrimSpace(district)
	key := fmt.Sprintf("%sstate:%s:%s", dashboardCachePrefix, cacheSegment(state), cacheSegment(district))

	var data models.StateDashboard
	hit := s.tryCache(ctx, key, &data)
	if !hit {
		fetched, err := s.repo.State(ctx, caller.Token, state, district)
		if err != nil {
			return nil, false, err
		}
		data = *fetched
		s.persistCache(ctx, key, data)
	}

	return &dto.StateDashboardResponse{
		StateDashboard: data,
		CardsDisplay: map[string]string{
			"totalElectors":     CompactCount(data.Cards.TotalElectors),
			"pendingMigrations": CompactCount(data.Cards.PendingMigrations),
			"pollingStations":   CompactCount(data.Cards.PollingStations),
			"verificationQueue": CompactCount(data.Cards.VerificationQueue),
		},
	}, hit, nil
}

// ERO returns the application queue dashboard filtered by status.
func (s *DashboardService) ERO(ctx context.Context, caller models.Caller, status string) (*dto.ERODashboardResponse, bool, error) {
	actor := caller.Actor
	if actor.Role != models.RoleDEO && actor.Role != models.RoleRO {
		return nil, false, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s role cannot open the application dashboard", roleName(actor.Role)))
	}
	filter := strings.ToLower(strings.TrimSpace(status))
	if filter == "" {
		filter = "all"
	}
	key := eroCacheKey(actor)

	var data models.ERODashboard
	hit := s.tryCache(ctx, key, &data)
	if !hit {
		fetched, err := s.repo.ERO(ctx, caller.Token)
		if err != nil {
			return nil, false, err
		}
		data = *fetched
		s.persistCache(ctx, key, data)
	}

	filtered := make([]models.Application, 0, len(data.RecentApplications))
	for _, app := range data.RecentApplications {
		if filter == "all" || strings.ToLower(app.Status) == filter {
			filtered = append(filtered, app)
		}
	}

	return &dto.ERODashboardResponse{
		ERODashboard:         data,
		Filter:               filter,
		FilteredApplications: filtered,
		CardsDisplay: map[string]string{
			"totalElectors":        CompactCount(data.Cards.TotalElectors),
			"pendingApplications":  CompactCount(data.Cards.PendingApplications),
			"todaysVerifications":  CompactCount(data.Cards.TodaysVerifications),
			"rejectedApplications": CompactCount(data.Cards.RejectedApplications),
		},
	}, hit, nil
}

// InvalidateScope drops cached dashboards touched by the actor's work.
func (s *DashboardService) InvalidateScope(ctx context.Context, actor models.Actor) {
	if s.cache == nil {
		return
	}
	patterns := []string{
		eroCacheKey(actor),
		fmt.Sprintf("%sstate:%s:*", dashboardCachePrefix, cacheSegment(actor.State)),
		dashboardCachePrefix + "national",
	}
	for _, pattern := range patterns {
		_ = s.cache.Invalidate(ctx, pattern)
	}
}

func (s *DashboardService) tryCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		return false
	}
	return hit
}

func (s *DashboardService) persistCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func eroCacheKey(actor models.Actor) string {
	return fmt.Sprintf("%sero:%s:%s:%s", dashboardCachePrefix, cacheSegment(actor.State), cacheSegment(actor.District), cacheSegment(actor.Constituency))
}

func cacheSegment(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "_"
	}
	return strings.NewReplacer(" ", "-", ":", "-", "*", "-").Replace(value)
}
