package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
	"github.com/noah-isme/erolls-portal/internal/service"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
	"github.com/noah-isme/erolls-portal/pkg/response"
)

type electorService interface {
	Search(ctx context.Context, caller models.Caller, kind, query string) (*dto.ElectorSearchResponse, error)
	CitizenProfile(ctx context.Context, caller models.Caller) (*models.CitizenProfile, error)
}

type bloService interface {
	SubmitEntry(ctx context.Context, caller models.Caller, req dto.BLOEntryRequest) (*models.BLOEntryResult, error)
	UploadDocument(ctx context.Context, caller models.Caller, meta dto.DocumentUploadRequest, file service.Upload) (*models.DocumentUploadResult, error)
}

// ElectorHandler serves elector search, the citizen portal and BLO data entry.
type ElectorHandler struct {
	electors electorService
	blo      bloService
}

// NewElectorHandler constructs the handler.
func NewElectorHandler(electors electorService, blo bloService) *ElectorHandler {
	return &ElectorHandler{electors: electors, blo: blo}
}

// Search godoc
// @Summary Search the electoral roll
// @Tags Electors
// @Produce json
// @Security BearerAuth
// @Param type query string false "epic (default), name or mobile"
// @Param q query string true "Search term"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /electors/search [get]
func (h *ElectorHandler) Search(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.electors.Search(c.Request.Context(), caller, c.Query("type"), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// CitizenProfile godoc
// @Summary Logged-in elector profile
// @Tags Citizen
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /citizen/profile [get]
func (h *ElectorHandler) CitizenProfile(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	profile, err := h.electors.CitizenProfile(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// SubmitEntry godoc
// @Summary Save or submit a BLO elector entry
// @Tags BLO
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.BLOEntryRequest true "Elector entry"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /blo/electors [post]
func (h *ElectorHandler) SubmitEntry(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.BLOEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid elector entry payload"))
		return
	}
	result, err := h.blo.SubmitEntry(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UploadDocument godoc
// @Summary Upload a supporting document
// @Tags BLO
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document"
// @Param electorId formData string true "Elector ID"
// @Param documentType formData string true "photo, age_proof, address_proof, identity_proof or other"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /blo/documents/upload [post]
func (h *ElectorHandler) UploadDocument(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var meta dto.DocumentUploadRequest
	if err := c.ShouldBind(&meta); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document metadata"))
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unable to read upload"))
		return
	}
	defer file.Close()

	result, err := h.blo.UploadDocument(c.Request.Context(), caller, meta, service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
