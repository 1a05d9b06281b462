package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/erolls-portal/internal/models"
	"github.com/noah-isme/erolls-portal/pkg/upstream"
)

// DashboardRepository reads dashboard aggregates and acts on applications.
type DashboardRepository struct {
	client *upstream.Client
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(client *upstream.Client) *DashboardRepository {
	return &DashboardRepository{client: client}
}

// National fetches the nationwide dashboard.
func (r *DashboardRepository) National(ctx context.Context, token string) (*models.NationalDashboard, error) {
	var out models.NationalDashboard
	err := r.client.Do(ctx, upstream.Request{Path: "/dashboard/national", Endpoint: "dashboard.national", Token: token, Result: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// State fetches the dashboard for a state and optional district.
func (r *DashboardRepository) State(ctx context.Context, token, state, district string) (*models.StateDashboard, error) {
	query := url.Values{"state_name": []string{state}}
	if district != "" {
		query.Set("district_name", district)
	}
	var out models.StateDashboard
	err := r.client.Do(ctx, upstream.Request{Path: "/dashboard/state", Endpoint: "dashboard.state", Token: token, Query: query, Result: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ERO fetches the application dashboard for the caller's jurisdiction.
func (r *DashboardRepository) ERO(ctx context.Context, token string) (*models.ERODashboard, error) {
	var out models.ERODashboard
	err := r.client.Do(ctx, upstream.Request{Path: "/dashboard/ero", Endpoint: "dashboard.ero", Token: token, Result: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyApplication marks an application verified.
func (r *DashboardRepository) VerifyApplication(ctx context.Context, token, id string) (string, error) {
	var payload messagePayload
	err := r.client.Do(ctx, upstream.Request{
		Method:   http.MethodPost,
		Path:     "/applications/" + url.PathEscape(id) + "/verify",
		Endpoint: "applications.verify",
		Token:    token,
		Result:   &payload,
	})
	return payload.Message, err
}

// RejectApplication rejects an application with a reason.
func (r *DashboardRepository) RejectApplication(ctx context.Context, token, id, reason string) (string, error) {
	var payload messagePayload
	err := r.client.Do(ctx, upstream.Request{
		Method:   http.MethodPost,
		Path:     "/applications/" + url.PathEscape(id) + "/reject",
		Endpoint: "applications.reject",
		Token:    token,
		Body:     map[string]string{"reason": reason},
		Result:   &payload,
	})
	return payload.Message, err
}
