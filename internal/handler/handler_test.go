package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/middleware"
	"github.com/noah-isme/erolls-portal/internal/models"
	"github.com/noah-isme/erolls-portal/internal/service"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Meta  map[string]interface{} `json:"meta"`
	Error *appErrors.Error       `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func authedContext(rec *httptest.ResponseRecorder, req *http.Request, claims *models.ActorClaims) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(rec)
	c.Request = req
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
		c.Set(middleware.ContextTokenKey, "tok-"+claims.UserID)
	}
	return c
}

var roClaims = &models.ActorClaims{UserID: "ro-1", Role: "RO", State: "Maharashtra", District: "Nagpur", Constituency: "Nagpur South"}

type fakeWorkflowSrv struct {
	listResp   *dto.WorkflowListResponse
	actionResp *dto.WorkflowActionResponse
	err        error
	lastCaller models.Caller
	lastFilter string
	lastID     string
	lastReason string
}

func (f *fakeWorkflowSrv) List(_ context.Context, caller models.Caller, filter string) (*dto.WorkflowListResponse, error) {
	f.lastCaller, f.lastFilter = caller, filter
	return f.listResp, f.err
}

func (f *fakeWorkflowSrv) Approve(_ context.Context, caller models.Caller, id string) (*dto.WorkflowActionResponse, error) {
	f.lastCaller, f.lastID = caller, id
	return f.actionResp, f.err
}

func (f *fakeWorkflowSrv) Reject(_ context.Context, caller models.Caller, id, reason string) (*dto.WorkflowActionResponse, error) {
	f.lastCaller, f.lastID, f.lastReason = caller, id, reason
	return f.actionResp, f.err
}

func TestMigrationHandlerListPassesCallerAndFilter(t *testing.T) {
	srv := &fakeWorkflowSrv{listResp: &dto.WorkflowListResponse{Filter: "pending"}}
	h := NewMigrationHandler(srv)

	rec := httptest.NewRecorder()
	c := authedContext(rec, httptest.NewRequest(http.MethodGet, "/migrations/workflow?status=pending", nil), roClaims)
	h.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", srv.lastFilter)
	assert.Equal(t, models.RoleRO, srv.lastCaller.Actor.Role)
	assert.Equal(t, "Nagpur South", srv.lastCaller.Actor.Constituency)
	assert.Equal(t, "tok-ro-1", srv.lastCaller.Token)
	assert.Equal(t, "pending", decodeEnvelope(t, rec).Data["filter"])
}

func TestMigrationHandlerRequiresClaims(t *testing.T) {
	h := NewMigrationHandler(&fakeWorkflowSrv{})

	rec := httptest.NewRecorder()
	c := authedContext(rec, httptest.NewRequest(http.MethodGet, "/migrations/workflow", nil), nil)
	h.List(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMigrationHandlerApproveUsesPathID(t *testing.T) {
	srv := &fakeWorkflowSrv{actionResp: &dto.WorkflowActionResponse{Message: "Migration approved successfully."}}
	h := NewMigrationHandler(srv)

	rec := httptest.NewRecorder()
	c := authedContext(rec, httptest.NewRequest(http.MethodPost, "/migrations/workflow/m-7/approve", nil), roClaims)
	c.Params = gin.Params{{Key: "id", Value: "m-7"}}
	h.Approve(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "m-7", srv.lastID)
	assert.Equal(t, "Migration approved successfully.", decodeEnvelope(t, rec).Data["message"])
}

func TestMigrationHandlerRejectReadsBodyThenQuery(t *testing.T) {
	srv := &fakeWorkflowSrv{actionResp: &dto.WorkflowActionResponse{Message: "ok"}}
	h := NewMigrationHandler(srv)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/migrations/workflow/m-1/reject?reason=ignored", bytes.NewBufferString(`{"reason":"documents are forged"}`))
	req.Header.Set("Content-Type", "application/json")
	c := authedContext(rec, req, roClaims)
	c.Params = gin.Params{{Key: "id", Value: "m-1"}}
	h.Reject(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "documents are forged", srv.lastReason)

	rec = httptest.NewRecorder()
	c = authedContext(rec, httptest.NewRequest(http.MethodPost, "/migrations/workflow/m-1/reject?reason=address+not+verified", nil), roClaims)
	c.Params = gin.Params{{Key: "id", Value: "m-1"}}
	h.Reject(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "address not verified", srv.lastReason)
}

func TestMigrationHandlerRejectBadJSON(t *testing.T) {
	srv := &fakeWorkflowSrv{}
	h := NewMigrationHandler(srv)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/migrations/workflow/m-1/reject", bytes.NewBufferString(`{"reason":`))
	req.Header.Set("Content-Type", "application/json")
	c := authedContext(rec, req, roClaims)
	h.Reject(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, srv.lastID)
}

func TestMigrationHandlerRendersServiceErrors(t *testing.T) {
	srv := &fakeWorkflowSrv{err: appErrors.Clone(appErrors.ErrActionInFlight, "")}
	h := NewMigrationHandler(srv)

	rec := httptest.NewRecorder()
	c := authedContext(rec, httptest.NewRequest(http.MethodPost, "/migrations/workflow/m-1/approve", nil), roClaims)
	h.Approve(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "ACTION_IN_FLIGHT", envelope.Error.Code)
}

type fakeMenuSrv struct {
	fallback bool
}

func (f fakeMenuSrv) Menu(_ context.Context, caller models.Caller) (*dto.MenuResponse, bool) {
	return &dto.MenuResponse{Role: caller.Actor.Role, Items: models.DefaultMenu(caller.Actor.Role)}, f.fallback
}

func TestAuthHandlerMenuFlagsFallback(t *testing.T) {
	h := NewAuthHandler(nil, fakeMenuSrv{fallback: true})

	rec := httptest.NewRecorder()
	c := authedContext(rec, httptest.NewRequest(http.MethodGet, "/user/menu", nil), roClaims)
	h.Menu(c)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope.Meta["fallback"])
	assert.Equal(t, "RO", envelope.Data["role"])
}

type fakeDashboardSrv struct {
	stateCalls struct{ state, district string }
	hit        bool
}

func (f *fakeDashboardSrv) National(context.Context, models.Caller) (*dto.NationalDashboardResponse, bool, error) {
	return nil, false, appErrors.ErrForbidden
}

func (f *fakeDashboardSrv) State(_ context.Context, _ models.Caller, state, district string) (*dto.StateDashboardResponse, bool, error) {
	f.stateCalls.state, f.stateCalls.district = state, district
	return &dto.StateDashboardResponse{CardsDisplay: map[string]string{"totalElectors": "1.2Cr"}}, f.hit, nil
}

func (f *fakeDashboardSrv) ERO(context.Context, models.Caller, string) (*dto.ERODashboardResponse, bool, error) {
	return &dto.ERODashboardResponse{Filter: "all"}, false, nil
}

func TestDashboardHandlerStateReportsCacheHit(t *testing.T) {
	srv := &fakeDashboardSrv{hit: true}
	h := NewDashboardHandler(srv, nil)

	rec := httptest.NewRecorder()
	c := authedContext(rec, httptest.NewRequest(http.MethodGet, "/dashboard/state?state=+Maharashtra+&district=Nagpur", nil), roClaims)
	h.State(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Maharashtra", srv.stateCalls.state)
	assert.Equal(t, "Nagpur", srv.stateCalls.district)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
}

func TestDashboardHandlerApplicationsNotConfigured(t *testing.T) {
	h := NewDashboardHandler(&fakeDashboardSrv{}, nil)

	rec := httptest.NewRecorder()
	c := authedContext(rec, httptest.NewRequest(http.MethodPost, "/applications/a-1/verify", nil), roClaims)
	h.VerifyApplication(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type fakeBLOSrv struct {
	meta   dto.DocumentUploadRequest
	upload service.Upload
	body   string
}

func (f *fakeBLOSrv) SubmitEntry(_ context.Context, _ models.Caller, req dto.BLOEntryRequest) (*models.BLOEntryResult, error) {
	return &models.BLOEntryResult{ID: "entry-1", Status: req.Action}, nil
}

func (f *fakeBLOSrv) UploadDocument(_ context.Context, _ models.Caller, meta dto.DocumentUploadRequest, file service.Upload) (*models.DocumentUploadResult, error) {
	f.meta, f.upload = meta, file
	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(file.Body)
	f.body = buf.String()
	return &models.DocumentUploadResult{ID: "doc-1", ElectorID: meta.ElectorID, DocumentType: meta.DocumentType}, nil
}

func TestElectorHandlerUploadStreamsMultipart(t *testing.T) {
	blo := &fakeBLOSrv{}
	h := NewElectorHandler(nil, blo)

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("electorId", "el-9"))
	require.NoError(t, writer.WriteField("documentType", "photo"))
	part, err := writer.CreateFormFile("file", "face.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/blo/documents/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := authedContext(rec, req, &models.ActorClaims{UserID: "blo-1", Role: "BLO", State: "Kerala", District: "Idukki"})
	h.UploadDocument(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "el-9", blo.meta.ElectorID)
	assert.Equal(t, "photo", blo.meta.DocumentType)
	assert.Equal(t, "face.jpg", blo.upload.Filename)
	assert.Equal(t, int64(len("jpeg-bytes")), blo.upload.Size)
	assert.Equal(t, "jpeg-bytes", blo.body)
}

func TestElectorHandlerUploadRequiresFile(t *testing.T) {
	h := NewElectorHandler(nil, &fakeBLOSrv{})

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("electorId", "el-9"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/blo/documents/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := authedContext(rec, req, &models.ActorClaims{UserID: "blo-1", Role: "BLO"})
	h.UploadDocument(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegistryHandlerAuditRejectsBadPage(t *testing.T) {
	h := NewRegistryHandler(nil, nil, nil)

	rec := httptest.NewRecorder()
	c := authedContext(rec, httptest.NewRequest(http.MethodGet, "/audit/logs?page=two", nil), roClaims)
	h.AuditLogs(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type pingStub struct{ err error }

func (p pingStub) Ping(context.Context) error { return p.err }

func TestMetricsHandlerReadyReportsDegraded(t *testing.T) {
	h := NewMetricsHandler(service.NewMetricsService(), map[string]Pinger{
		"redis":    pingStub{},
		"postgres": pingStub{err: assert.AnError},
		"skipped":  nil,
	})

	rec := httptest.NewRecorder()
	c := authedContext(rec, httptest.NewRequest(http.MethodGet, "/ready", nil), nil)
	h.Ready(c)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Checks["redis"])
	assert.NotContains(t, body.Checks, "skipped")
}
