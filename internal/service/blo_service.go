package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

type bloUpstream interface {
	SubmitEntry(ctx context.Context, token string, entry dto.BLOEntryRequest) (*models.BLOEntryResult, error)
	UploadDocument(ctx context.Context, token string, meta dto.DocumentUploadRequest, filename string, body io.Reader) (*models.DocumentUploadResult, error)
}

// UploadPolicy limits document uploads.
type UploadPolicy struct {
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// Upload is one incoming document.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// BLOService handles booth level data entry.
type BLOService struct {
	repo      bloUpstream
	validator *validator.Validate
	policy    UploadPolicy
	logger    *zap.Logger
	now       func() time.Time
}

// NewBLOService constructs the service.
func NewBLOService(repo bloUpstream, validate *validator.Validate, policy UploadPolicy, logger *zap.Logger) *BLOService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy.MaxFileSizeBytes <= 0 {
		policy.MaxFileSizeBytes = 5 * 1024 * 1024
	}
	return &BLOService{repo: repo, validator: validate, policy: policy, logger: logger, now: time.Now}
}

// SubmitEntry validates and forwards a draft or final elector entry.
func (s *BLOService) SubmitEntry(ctx context.Context, caller models.Caller, req dto.BLOEntryRequest) (*models.BLOEntryResult, error) {
	if err := s.authorize(caller.Actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid elector entry")
	}
	actor := caller.Actor
	if !models.SameJurisdiction(actor.State, req.State) || !models.SameJurisdiction(actor.District, req.District) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("entries must belong to %s, %s", actor.District, actor.State))
	}
	req.SubmittedBy = actor.ID
	req.SubmittedAt = s.now().UTC().Format(time.RFC3339)

	result, err := s.repo.SubmitEntry(ctx, caller.Token, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("blo entry forwarded",
		zap.String("actor_id", actor.ID),
		zap.String("action", req.Action),
		zap.String("entry_id", result.ID),
	)
	return result, nil
}

// UploadDocument checks size and type before streaming the file upstream.
func (s *BLOService) UploadDocument(ctx context.Context, caller models.Caller, meta dto.DocumentUploadRequest, file Upload) (*models.DocumentUploadResult, error) {
	if err := s.authorize(caller.Actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(meta); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid document metadata")
	}
	if file.Body == nil || file.Size <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	if file.Size > s.policy.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the %d byte limit", s.policy.MaxFileSizeBytes))
	}
	if !s.allowed(file) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file type %q is not accepted", file.ContentType))
	}
	name := filepath.Base(strings.ReplaceAll(file.Filename, "\\", "/"))
	return s.repo.UploadDocument(ctx, caller.Token, meta, name, io.LimitReader(file.Body, s.policy.MaxFileSizeBytes))
}

func (s *BLOService) authorize(actor models.Actor) error {
	if actor.Role != models.RoleBLO {
		return appErrors.Clone(appErrors.ErrForbidden, "data entry is limited to booth level officers")
	}
	if missing := actor.MissingJurisdiction(); len(missing) > 0 {
		return missingScope(missing)
	}
	return nil
}

func (s *BLOService) allowed(file Upload) bool {
	if len(s.policy.AllowedMIMEs) == 0 {
		return true
	}
	contentType := file.ContentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = parsed
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename)))
		if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
			contentType = parsed
		}
	}
	for _, allowed := range s.policy.AllowedMIMEs {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}
