package repository

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
	"github.com/noah-isme/erolls-portal/pkg/upstream"
)

// ElectorRepository covers elector search, the citizen profile and BLO
// data entry.
type ElectorRepository struct {
	client *upstream.Client
}

// NewElectorRepository constructs the repository.
func NewElectorRepository(client *upstream.Client) *ElectorRepository {
	return &ElectorRepository{client: client}
}

// Search looks electors up by EPIC number, name or mobile.
func (r *ElectorRepository) Search(ctx context.Context, token string, kind models.ElectorSearchType, query string) ([]models.Elector, error) {
	var payload struct {
		Results []models.Elector `json:"results"`
	}
	err := r.client.Do(ctx, upstream.Request{
		Path:     "/electors/search",
		Endpoint: "electors.search",
		Token:    token,
		Query:    url.Values{"type": []string{string(kind)}, "q": []string{query}},
		Result:   &payload,
	})
	if err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// CitizenProfile returns the logged-in elector's own record.
func (r *ElectorRepository) CitizenProfile(ctx context.Context, token string) (*models.CitizenProfile, error) {
	var out models.CitizenProfile
	err := r.client.Do(ctx, upstream.Request{Path: "/citizen/me", Endpoint: "citizen.me", Token: token, Result: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitEntry stores a BLO draft or submission.
func (r *ElectorRepository) SubmitEntry(ctx context.Context, token string, entry dto.BLOEntryRequest) (*models.BLOEntryResult, error) {
	var payload struct {
		Success bool                   `json:"success"`
		Data    *models.BLOEntryResult `json:"data"`
		Message string                 `json:"message"`
	}
	err := r.client.Do(ctx, upstream.Request{
		Method:   http.MethodPost,
		Path:     "/blo/electors",
		Endpoint: "blo.electors",
		Token:    token,
		Body:     entry,
		Result:   &payload,
	})
	if err != nil {
		return nil, err
	}
	if payload.Data == nil {
		return &models.BLOEntryResult{Status: entry.Action, Message: payload.Message}, nil
	}
	if payload.Data.Message == "" {
		payload.Data.Message = payload.Message
	}
	return payload.Data, nil
}

// UploadDocument streams a supporting document to the backend.
func (r *ElectorRepository) UploadDocument(ctx context.Context, token string, meta dto.DocumentUploadRequest, filename string, body io.Reader) (*models.DocumentUploadResult, error) {
	var out models.DocumentUploadResult
	fields := map[string]string{"electorId": meta.ElectorID, "documentType": meta.DocumentType}
	err := r.client.Upload(ctx, "/blo/documents/upload", "blo.upload", token, fields,
		upstream.File{Field: "file", Name: filename, Reader: body}, &out)
	if err != nil {
		return nil, err
	}
	if out.ElectorID == "" {
		out.ElectorID = meta.ElectorID
	}
	if out.DocumentType == "" {
		out.DocumentType = meta.DocumentType
	}
	return &out, nil
}
