package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/erolls-portal/internal/models"
	"github.com/noah-isme/erolls-portal/pkg/response"
)

type journalService interface {
	List(ctx context.Context, caller models.Caller, filter models.JournalFilter) ([]models.JournalEntry, error)
}

// JournalHandler exposes the gateway's action journal.
type JournalHandler struct {
	service journalService
}

// NewJournalHandler constructs the handler.
func NewJournalHandler(service journalService) *JournalHandler {
	return &JournalHandler{service: service}
}

// List godoc
// @Summary Recent approve, reject and verify attempts
// @Tags System
// @Produce json
// @Security BearerAuth
// @Param actorId query string false "Actor ID"
// @Param targetType query string false "migration or application"
// @Param targetId query string false "Record ID"
// @Param limit query int false "Maximum entries (default 100, max 500)"
// @Success 200 {object} response.Envelope
// @Router /journal [get]
func (h *JournalHandler) List(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, err := optionalInt(c, "limit")
	if err != nil {
		response.Error(c, err)
		return
	}
	entries, err := h.service.List(c.Request.Context(), caller, models.JournalFilter{
		ActorID:    strings.TrimSpace(c.Query("actorId")),
		TargetType: strings.TrimSpace(c.Query("targetType")),
		TargetID:   strings.TrimSpace(c.Query("targetId")),
		Limit:      limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
