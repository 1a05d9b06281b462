package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
)

type menuUpstream interface {
	Menu(ctx context.Context, token string, role models.RoleID) ([]models.MenuItem, error)
}

// MenuService resolves the sidebar for the caller's role.
type MenuService struct {
	repo   menuUpstream
	logger *zap.Logger
}

// NewMenuService constructs the service.
func NewMenuService(repo menuUpstream, logger *zap.Logger) *MenuService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MenuService{repo: repo, logger: logger}
}

// Menu returns the configured sidebar. When the menu service fails or has
// nothing for the role the built-in menu is served and fallback is true.
func (s *MenuService) Menu(ctx context.Context, caller models.Caller) (*dto.MenuResponse, bool) {
	role := caller.Actor.Role
	resp := &dto.MenuResponse{
		Role:        role,
		RoleLabel:   role.Label(),
		LandingView: models.LandingView(role),
	}
	items, err := s.repo.Menu(ctx, caller.Token, role)
	if err != nil || len(items) == 0 {
		if err != nil {
			s.logger.Warn("menu service unavailable, serving default menu", zap.String("role", string(role)), zap.Error(err))
		}
		resp.Items = models.DefaultMenu(role)
		return resp, true
	}
	resp.Items = items
	return resp, false
}
