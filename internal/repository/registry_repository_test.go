package repository

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
)

func TestRegistryRepositoryAuditLogsQuery(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"logs":[{"id":"AUD-1","actionType":"approval"},{"id":"AUD-2","actionType":"approval"}]}`))
	})

	logs, total, err := NewRegistryRepository(client).AuditLogs(context.Background(), "tok", models.AuditFilter{ActionType: "approval", Page: 2})
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, 2, total)
	assert.Equal(t, "action=approval&page=2", gotQuery)
}

func TestRegistryRepositoryScores(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/scores", r.URL.Path)
		assert.Equal(t, "Kerala", r.URL.Query().Get("state"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"rank":1,"entity":"Kochi","score":91.2}]}`))
	})

	items, err := NewRegistryRepository(client).Scores(context.Background(), "tok", models.ScoreQuery{Metric: models.MetricHealth, Level: models.LevelConstituency, State: "Kerala"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Kochi", items[0].Entity)
}

func TestElectorRepositoryUploadDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "el-7", r.FormValue("electorId"))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "proof.pdf", header.Filename)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"doc-1"}`))
	})

	res, err := NewElectorRepository(client).UploadDocument(context.Background(), "tok",
		dto.DocumentUploadRequest{ElectorID: "el-7", DocumentType: "address_proof"}, "proof.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "doc-1", res.ID)
	assert.Equal(t, "el-7", res.ElectorID)
	assert.Equal(t, "address_proof", res.DocumentType)
}

func TestElectorRepositorySubmitEntryWithoutData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Draft saved"}`))
	})

	res, err := NewElectorRepository(client).SubmitEntry(context.Background(), "tok", dto.BLOEntryRequest{Action: "draft"})
	require.NoError(t, err)
	assert.Equal(t, "draft", res.Status)
	assert.Equal(t, "Draft saved", res.Message)
}
