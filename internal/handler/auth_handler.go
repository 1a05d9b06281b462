package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/middleware"
	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
	"github.com/noah-isme/erolls-portal/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, caller models.Caller) (*models.Session, error)
}

type menuService interface {
	Menu(ctx context.Context, caller models.Caller) (*dto.MenuResponse, bool)
}

// AuthHandler wires HTTP endpoints to the auth and menu services.
type AuthHandler struct {
	service authService
	menu    menuService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService, menu menuService) *AuthHandler {
	return &AuthHandler{service: svc, menu: menu}
}

// Login godoc
// @Summary Authenticate a portal user
// @Description Validates the login form against the role's jurisdiction requirements and exchanges it for a backend token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// Logout godoc
// @Summary Logout current session
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 204 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextTokenKey)
	if token == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Me godoc
// @Summary Current session profile
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.service.Me(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// Menu godoc
// @Summary Sidebar menu for the caller's role
// @Description Falls back to the built-in menu when the menu service is unavailable (meta.fallback=true)
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /user/menu [get]
func (h *AuthHandler) Menu(c *gin.Context) {
	if h.menu == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "menu service not configured"))
		return
	}
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	menu, fallback := h.menu.Menu(c.Request.Context(), caller)
	response.Fallback(c, menu, middleware.ExtractMeta(c), fallback)
}
