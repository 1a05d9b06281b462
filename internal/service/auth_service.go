package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

type authUpstream interface {
	Login(ctx context.Context, req dto.LoginRequest) (string, models.Actor, error)
}

type sessionStore interface {
	Save(ctx context.Context, key string, session models.Session, ttl time.Duration) error
	Get(ctx context.Context, key string) (*models.Session, error)
	Delete(ctx context.Context, key string) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	TokenSecret string
	Issuer      string
	SessionTTL  time.Duration
}

// AuthService forwards logins to the backend and verifies the tokens it
// issues.
type AuthService struct {
	repo      authUpstream
	sessions  sessionStore
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance. A nil session store
// disables server-side logout.
func NewAuthService(repo authUpstream, sessions sessionStore, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 8 * time.Hour
	}
	return &AuthService{repo: repo, sessions: sessions, validator: validate, logger: logger, config: config, now: time.Now}
}

// Login validates the form against the role registry and exchanges it for a
// backend token.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}
	role := models.ParseRole(req.Role)
	if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role %q", req.Role))
	}
	req.Role = string(role)
	form := models.Actor{Role: role, State: req.State, District: req.District}
	if missing := form.MissingJurisdiction(); len(missing) > 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s login requires %s", role, strings.Join(missing, " and ")))
	}

	token, actor, err := s.repo.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrUpstream, "no token received")
	}

	issued := s.now().UTC()
	expires := issued.Add(s.config.SessionTTL)
	claims, err := s.parse(token)
	if err != nil {
		s.logger.Warn("backend issued an unverifiable token", zap.String("username", req.Username), zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrUpstream, "backend issued an unverifiable token")
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(expires) {
		expires = claims.ExpiresAt.Time.UTC()
	}

	session := models.Session{
		Actor:       actor,
		RoleLabel:   actor.Role.Label(),
		LandingView: models.LandingView(actor.Role),
		IssuedAt:    issued,
		ExpiresAt:   expires,
	}
	if s.sessions != nil {
		if err := s.sessions.Save(ctx, Fingerprint(token), session, expires.Sub(issued)); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
		}
	}

	s.logger.Info("login succeeded", zap.String("actor_id", actor.ID), zap.String("actor_role", string(actor.Role)))
	return &dto.LoginResponse{
		Token:       token,
		ExpiresAt:   expires,
		User:        actor,
		RoleLabel:   session.RoleLabel,
		LandingView: session.LandingView,
	}, nil
}

// ValidateToken verifies the signature and, when sessions are tracked,
// that the session has not been logged out.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.ActorClaims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	if s.sessions != nil {
		if _, err := s.sessions.Get(ctx, Fingerprint(token)); err != nil {
			return nil, appErrors.FromError(sessionError(err))
		}
	}
	return claims, nil
}

// Logout drops the server-side session for the token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.sessions == nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, Fingerprint(token)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to drop session")
	}
	return nil
}

// Me returns the cached profile of the caller.
func (s *AuthService) Me(ctx context.Context, caller models.Caller) (*models.Session, error) {
	if s.sessions != nil {
		session, err := s.sessions.Get(ctx, Fingerprint(caller.Token))
		if err == nil {
			return session, nil
		}
		s.logger.Debug("session lookup failed, using token claims", zap.Error(err))
	}
	return &models.Session{
		Actor:       caller.Actor,
		RoleLabel:   caller.Actor.Role.Label(),
		LandingView: models.LandingView(caller.Actor.Role),
	}, nil
}

func (s *AuthService) parse(token string) (*models.ActorClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	claims := &models.ActorClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.config.TokenSecret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	if strings.TrimSpace(claims.Actor().ID) == "" {
		return nil, errors.New("token carries no subject")
	}
	return claims, nil
}

func sessionError(err error) error {
	if appErrors.IsCode(err, appErrors.ErrUnauthorized.Code) {
		return err
	}
	return appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "session could not be verified")
}

// Fingerprint derives the session key of a token.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
