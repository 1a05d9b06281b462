package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/erolls-portal/internal/models"
	"github.com/noah-isme/erolls-portal/pkg/config"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
	"github.com/noah-isme/erolls-portal/pkg/upstream"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return upstream.New(config.UpstreamConfig{BaseURL: srv.URL}, zap.NewNop())
}

func TestMigrationRepositoryListSendsUpstreamFilter(t *testing.T) {
	var gotStatus, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"migrations": []map[string]interface{}{
				{"id": "m-1", "status": "IN_PROGRESS", "oldState": "Goa", "newState": "Kerala"},
			},
			"statusCounts": map[string]int{"all": 1, "partial": 1},
		})
	})

	records, counts, err := NewMigrationRepository(client).List(context.Background(), "tok", models.MigrationPartial)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", gotStatus)
	assert.Equal(t, "Bearer tok", gotAuth)
	require.Len(t, records, 1)
	assert.Equal(t, models.MigrationPartial, records[0].Status)
	require.NotNil(t, counts)
	assert.Equal(t, 1, counts.Partial)
}

func TestMigrationRepositoryListAll(t *testing.T) {
	var gotStatus string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"migrations":[]}`))
	})

	_, counts, err := NewMigrationRepository(client).List(context.Background(), "tok", "")
	require.NoError(t, err)
	assert.Equal(t, "all", gotStatus)
	assert.Nil(t, counts)
}

func TestMigrationRepositoryRejectPassesReasonAsQuery(t *testing.T) {
	var gotPath, gotReason string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotReason = r.URL.Query().Get("reason")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Migration rejected"}`))
	})

	msg, err := NewMigrationRepository(client).Reject(context.Background(), "tok", "m-1", "address proof mismatch")
	require.NoError(t, err)
	assert.Equal(t, "Migration rejected", msg)
	assert.Equal(t, "/migrations/workflow/m-1/reject", gotPath)
	assert.Equal(t, "address proof mismatch", gotReason)
}

func TestMigrationRepositoryApproveSurfacesDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":"Source RO must approve first"}`))
	})

	_, err := NewMigrationRepository(client).Approve(context.Background(), "tok", "m-1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusForbidden, appErr.Status)
	assert.Equal(t, "Source RO must approve first", appErr.Message)
}
