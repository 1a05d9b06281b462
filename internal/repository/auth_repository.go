package repository

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
	"github.com/noah-isme/erolls-portal/pkg/upstream"
)

// AuthRepository forwards login and menu lookups to the backend.
type AuthRepository struct {
	client *upstream.Client
}

// NewAuthRepository constructs the repository.
func NewAuthRepository(client *upstream.Client) *AuthRepository {
	return &AuthRepository{client: client}
}

type loginPayload struct {
	Data struct {
		Token string `json:"token"`
		User  struct {
			ID           string `json:"id"`
			Name         string `json:"name"`
			Role         string `json:"role"`
			State        string `json:"state"`
			District     string `json:"district"`
			Constituency string `json:"constituency"`
		} `json:"user"`
	} `json:"data"`
}

// Login exchanges credentials for a backend-issued token. Profile fields the
// backend leaves blank are filled from the login form.
func (r *AuthRepository) Login(ctx context.Context, req dto.LoginRequest) (string, models.Actor, error) {
	var payload loginPayload
	err := r.client.Do(ctx, upstream.Request{
		Method:   http.MethodPost,
		Path:     "/auth/login",
		Endpoint: "auth.login",
		Body:     req,
		Result:   &payload,
	})
	if err != nil {
		return "", models.Actor{}, err
	}
	user := payload.Data.User
	actor := models.Actor{
		ID:           user.ID,
		Name:         firstNonEmpty(user.Name, req.Username),
		Role:         models.ParseRole(firstNonEmpty(user.Role, req.Role)),
		State:        firstNonEmpty(user.State, req.State),
		District:     firstNonEmpty(user.District, req.District),
		Constituency: firstNonEmpty(user.Constituency, req.Constituency),
	}
	if actor.ID == "" {
		actor.ID = req.Username
	}
	return payload.Data.Token, actor, nil
}

// Menu fetches the sidebar configured for a role.
func (r *AuthRepository) Menu(ctx context.Context, token string, role models.RoleID) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.client.Do(ctx, upstream.Request{
		Path:     "/user/menu",
		Endpoint: "user.menu",
		Token:    token,
		Query:    url.Values{"role": []string{string(role)}},
		Result:   &items,
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
