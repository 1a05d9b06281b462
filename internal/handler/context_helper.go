package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/erolls-portal/internal/middleware"
	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
	"github.com/noah-isme/erolls-portal/pkg/middleware/requestid"
	"github.com/noah-isme/erolls-portal/pkg/response"
)

// callerFromContext assembles the authenticated caller placed on the context by
// the JWT middleware.
func callerFromContext(c *gin.Context) (models.Caller, error) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return models.Caller{}, appErrors.ErrUnauthorized
	}
	token := c.GetString(middleware.ContextTokenKey)
	return models.Caller{
		Actor:     claims.Actor(),
		Token:     token,
		RequestID: requestid.Value(c),
	}, nil
}

// respondCached writes data together with the cache flag and elapsed time.
func respondCached(c *gin.Context, start time.Time, data interface{}, cacheHit bool) {
	response.Cached(c, data, middleware.ExtractMeta(c), cacheHit, start)
}
