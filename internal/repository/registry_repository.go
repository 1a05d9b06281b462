package repository

import (
	"context"
	"net/url"
	"strconv"

	"github.com/noah-isme/erolls-portal/internal/models"
	"github.com/noah-isme/erolls-portal/pkg/upstream"
)

// RegistryRepository reads reference data: polling stations, audit logs and
// statistical scores.
type RegistryRepository struct {
	client *upstream.Client
}

// NewRegistryRepository constructs the repository.
func NewRegistryRepository(client *upstream.Client) *RegistryRepository {
	return &RegistryRepository{client: client}
}

// PollingStations lists booths matching the filter.
func (r *RegistryRepository) PollingStations(ctx context.Context, token string, filter models.PollingStationFilter) ([]models.PollingStation, error) {
	query := url.Values{}
	setIf(query, "state", filter.State)
	setIf(query, "district", filter.District)
	setIf(query, "constituency", filter.Constituency)
	setIf(query, "q", filter.Query)
	var payload struct {
		Stations []models.PollingStation `json:"stations"`
	}
	err := r.client.Do(ctx, upstream.Request{Path: "/polling-stations", Endpoint: "polling_stations.list", Token: token, Query: query, Result: &payload})
	if err != nil {
		return nil, err
	}
	return payload.Stations, nil
}

// AuditLogs lists activity records and the backend's total count.
func (r *RegistryRepository) AuditLogs(ctx context.Context, token string, filter models.AuditFilter) ([]models.AuditEntry, int, error) {
	query := url.Values{}
	setIf(query, "user", filter.User)
	setIf(query, "action", filter.ActionType)
	setIf(query, "state", filter.State)
	setIf(query, "district", filter.District)
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(filter.PageSize))
	}
	var payload struct {
		Logs  []models.AuditEntry `json:"logs"`
		Total int                 `json:"total"`
	}
	err := r.client.Do(ctx, upstream.Request{Path: "/audit/logs", Endpoint: "audit.logs", Token: token, Query: query, Result: &payload})
	if err != nil {
		return nil, 0, err
	}
	if payload.Total < len(payload.Logs) {
		payload.Total = len(payload.Logs)
	}
	return payload.Logs, payload.Total, nil
}

// Scores fetches a ranked score board.
func (r *RegistryRepository) Scores(ctx context.Context, token string, q models.ScoreQuery) ([]models.ScoreItem, error) {
	query := url.Values{"metric": []string{string(q.Metric)}, "level": []string{string(q.Level)}}
	setIf(query, "state", q.State)
	var payload struct {
		Items []models.ScoreItem `json:"items"`
	}
	err := r.client.Do(ctx, upstream.Request{Path: "/analytics/scores", Endpoint: "analytics.scores", Token: token, Query: query, Result: &payload})
	if err != nil {
		return nil, err
	}
	return payload.Items, nil
}

func setIf(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}
