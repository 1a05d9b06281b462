package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

var (
	epicPattern   = regexp.MustCompile(`^[A-Z]{3}[0-9]{7}$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

const minNameQuery = 3

type electorUpstream interface {
	Search(ctx context.Context, token string, kind models.ElectorSearchType, query string) ([]models.Elector, error)
	CitizenProfile(ctx context.Context, token string) (*models.CitizenProfile, error)
}

// ElectorService searches the roll and serves the citizen self-view.
type ElectorService struct {
	repo   electorUpstream
	logger *zap.Logger
}

// NewElectorService constructs the service.
func NewElectorService(repo electorUpstream, logger *zap.Logger) *ElectorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ElectorService{repo: repo, logger: logger}
}

// NormalizeSearch validates a search query for the given type.
func NormalizeSearch(kind, query string) (models.ElectorSearchType, string, error) {
	query = strings.TrimSpace(query)
	switch models.ElectorSearchType(strings.ToLower(strings.TrimSpace(kind))) {
	case "", models.SearchByEPIC:
		epic := strings.ToUpper(query)
		if !epicPattern.MatchString(epic) {
			return "", "", appErrors.Clone(appErrors.ErrValidation, "EPIC number must be 3 letters followed by 7 digits")
		}
		return models.SearchByEPIC, epic, nil
	case models.SearchByMobile:
		if !mobilePattern.MatchString(query) {
			return "", "", appErrors.Clone(appErrors.ErrValidation, "mobile number must be 10 digits")
		}
		return models.SearchByMobile, query, nil
	case models.SearchByName:
		if utf8.RuneCountInString(query) < minNameQuery {
			return "", "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("name search needs at least %d characters", minNameQuery))
		}
		return models.SearchByName, query, nil
	}
	return "", "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported search type %q", kind))
}

// Search looks up electors. Citizens may only search by EPIC number.
func (s *ElectorService) Search(ctx context.Context, caller models.Caller, kind, query string) (*dto.ElectorSearchResponse, error) {
	if !caller.Actor.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "unknown role cannot search electors")
	}
	searchType, normalized, err := NormalizeSearch(kind, query)
	if err != nil {
		return nil, err
	}
	if caller.Actor.Role == models.RoleCitizen && searchType != models.SearchByEPIC {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "citizens can search by EPIC number only")
	}
	results, err := s.repo.Search(ctx, caller.Token, searchType, normalized)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.Elector{}
	}
	return &dto.ElectorSearchResponse{Type: searchType, Query: normalized, Results: results}, nil
}

// CitizenProfile returns the logged-in elector's own record.
func (s *ElectorService) CitizenProfile(ctx context.Context, caller models.Caller) (*models.CitizenProfile, error) {
	if caller.Actor.Role != models.RoleCitizen {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "citizen portal is available to electors only")
	}
	return s.repo.CitizenProfile(ctx, caller.Token)
}
