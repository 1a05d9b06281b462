package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/erolls-portal/internal/models"
	"github.com/noah-isme/erolls-portal/pkg/upstream"
)

// MigrationRepository talks to the backend migration workflow API.
type MigrationRepository struct {
	client *upstream.Client
}

// NewMigrationRepository constructs the repository.
func NewMigrationRepository(client *upstream.Client) *MigrationRepository {
	return &MigrationRepository{client: client}
}

type migrationListPayload struct {
	Migrations   []models.MigrationRecord `json:"migrations"`
	StatusCounts *models.StatusCounts     `json:"statusCounts"`
}

type messagePayload struct {
	Message string `json:"message"`
}

// List fetches migrations for a status; the empty status lists everything.
// Counts are nil when the backend omits them.
func (r *MigrationRepository) List(ctx context.Context, token string, status models.MigrationStatus) ([]models.MigrationRecord, *models.StatusCounts, error) {
	filter := "all"
	if status != "" {
		filter = status.UpstreamFilter()
	}
	var payload migrationListPayload
	err := r.client.Do(ctx, upstream.Request{
		Path:     "/migrations/workflow",
		Endpoint: "migrations.list",
		Token:    token,
		Query:    url.Values{"status": []string{filter}},
		Result:   &payload,
	})
	if err != nil {
		return nil, nil, err
	}
	return payload.Migrations, payload.StatusCounts, nil
}

// Approve records the caller's approval.
func (r *MigrationRepository) Approve(ctx context.Context, token, id string) (string, error) {
	var payload messagePayload
	err := r.client.Do(ctx, upstream.Request{
		Method:   http.MethodPost,
		Path:     "/migrations/workflow/" + url.PathEscape(id) + "/approve",
		Endpoint: "migrations.approve",
		Token:    token,
		Result:   &payload,
	})
	return payload.Message, err
}

// Reject records the caller's rejection with its reason.
func (r *MigrationRepository) Reject(ctx context.Context, token, id, reason string) (string, error) {
	var payload messagePayload
	err := r.client.Do(ctx, upstream.Request{
		Method:   http.MethodPost,
		Path:     "/migrations/workflow/" + url.PathEscape(id) + "/reject",
		Endpoint: "migrations.reject",
		Token:    token,
		Query:    url.Values{"reason": []string{reason}},
		Result:   &payload,
	})
	return payload.Message, err
}
