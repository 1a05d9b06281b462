package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

const scoreBoardSize = 5

type scoreUpstream interface {
	Scores(ctx context.Context, token string, q models.ScoreQuery) ([]models.ScoreItem, error)
}

// AnalysisService serves ranked statistical indicators.
type AnalysisService struct {
	repo   scoreUpstream
	cache  *CacheService
	logger *zap.Logger
}

// NewAnalysisService constructs the service.
func NewAnalysisService(repo scoreUpstream, cache *CacheService, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{repo: repo, cache: cache, logger: logger}
}

// Scores returns the best and worst ranked entities of a metric. CEOs are
// limited to their own state.
func (s *AnalysisService) Scores(ctx context.Context, caller models.Caller, metric, level, state string) (*dto.ScoresResponse, bool, error) {
	q, err := s.query(caller.Actor, metric, level, state)
	if err != nil {
		return nil, false, err
	}

	key := fmt.Sprintf("analysis:%s:%s:%s", q.Metric, q.Level, cacheSegment(q.State))
	var items []models.ScoreItem
	hit := false
	if s.cache != nil {
		if ok, err := s.cache.Get(ctx, key, &items); err == nil && ok {
			hit = true
		}
	}
	if !hit {
		items, err = s.repo.Scores(ctx, caller.Token, q)
		if err != nil {
			return nil, false, err
		}
		if s.cache != nil {
			_ = s.cache.Set(ctx, key, items, 0)
		}
	}

	top, bottom := rankScores(items, scoreBoardSize)
	return &dto.ScoresResponse{Metric: q.Metric, Level: q.Level, State: q.State, Top: top, Bottom: bottom}, hit, nil
}

func (s *AnalysisService) query(actor models.Actor, metric, level, state string) (models.ScoreQuery, error) {
	q := models.ScoreQuery{
		Metric: models.ScoreMetric(strings.ToLower(strings.TrimSpace(metric))),
		Level:  models.ScoreLevel(strings.ToLower(strings.TrimSpace(level))),
		State:  strings.TrimSpace(state),
	}
	switch q.Metric {
	case models.MetricHealth, models.MetricMigration, models.MetricAbuse:
	case "":
		q.Metric = models.MetricHealth
	default:
		return q, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown metric %q", metric))
	}

	switch actor.Role {
	case models.RoleCEC, models.RoleEC:
		switch q.Level {
		case "":
			q.Level = models.LevelNational
		case models.LevelNational, models.LevelState, models.LevelConstituency:
		default:
			return q, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown level %q", level))
		}
		if q.Level == models.LevelNational {
			q.State = ""
		}
	case models.RoleCEO:
		switch q.Level {
		case "":
			q.Level = models.LevelState
		case models.LevelState, models.LevelConstituency:
		default:
			return q, appErrors.Clone(appErrors.ErrForbidden, "state officers see state and constituency level data only")
		}
		if missing := actor.MissingJurisdiction(); len(missing) > 0 {
			return q, missingScope(missing)
		}
		q.State = actor.State
	default:
		return q, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s role cannot access statistical analysis", roleName(actor.Role)))
	}
	return q, nil
}

// rankScores orders items best first and returns the top n and the bottom n
// (worst first) without overlap.
func rankScores(items []models.ScoreItem, n int) ([]models.ScoreItem, []models.ScoreItem) {
	sorted := make([]models.ScoreItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	for i := range sorted {
		sorted[i].Rank = i + 1
	}

	topN := n
	if topN > len(sorted) {
		topN = len(sorted)
	}
	top := sorted[:topN]

	rest := sorted[topN:]
	if len(rest) > n {
		rest = rest[len(rest)-n:]
	}
	bottom := make([]models.ScoreItem, 0, len(rest))
	for i := len(rest) - 1; i >= 0; i-- {
		bottom = append(bottom, rest[i])
	}
	return top, bottom
}
