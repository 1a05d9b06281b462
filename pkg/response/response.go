package response

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
	"github.com/noah-isme/erolls-portal/pkg/middleware/requestid"
)

// Meta keys understood by the portal frontend.
const (
	MetaCacheHit       = "cache_hit"
	MetaFallback       = "fallback"
	MetaProcessingTime = "processing_time_ms"
	MetaRequestID      = "request_id"
)

// Envelope is the gateway's response contract.
type Envelope struct {
	Data       interface{}            `json:"data,omitempty"`
	Error      *appErrors.Error       `json:"error,omitempty"`
	Pagination *models.Pagination     `json:"pagination,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response with optional pagination and meta.
func JSON(c *gin.Context, status int, data interface{}, pagination *models.Pagination, meta ...map[string]interface{}) {
	noStore(c)
	envelope := Envelope{Data: data, Pagination: pagination}
	if len(meta) > 0 && len(meta[0]) > 0 {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Cached sends data that may have come from the dashboard cache. The cache
// flag and the elapsed time since start are merged into meta.
func Cached(c *gin.Context, data interface{}, meta map[string]interface{}, hit bool, start time.Time) {
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta[MetaCacheHit] = hit
	meta[MetaProcessingTime] = time.Since(start).Milliseconds()
	JSON(c, http.StatusOK, data, nil, meta)
}

// Fallback sends data, flagging it when it was built from local defaults
// because the backend could not be reached.
func Fallback(c *gin.Context, data interface{}, meta map[string]interface{}, fallback bool) {
	if fallback {
		if meta == nil {
			meta = map[string]interface{}{}
		}
		meta[MetaFallback] = true
	}
	JSON(c, http.StatusOK, data, nil, meta)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data, nil)
}

// Error sends the normalised error. The request id is echoed in meta so a
// refusal can be traced to its journal entry and upstream call.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	envelope := Envelope{Error: appErr}
	if id := requestid.Value(c); id != "" {
		envelope.Meta = map[string]interface{}{MetaRequestID: id}
	}
	c.JSON(appErr.Status, envelope)
}

// TooManyRequests refuses a throttled call with a Retry-After hint in whole
// seconds, never less than one.
func TooManyRequests(c *gin.Context, retryAfter time.Duration, message string) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))
	Error(c, appErrors.Clone(appErrors.ErrTooManyRequests, message))
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Attachment sends an export as a file download.
func Attachment(c *gin.Context, name, contentType string, body []byte) {
	noStore(c)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, body)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
