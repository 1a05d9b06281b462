package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
	"github.com/noah-isme/erolls-portal/pkg/jobs"
)

const journalJobType = "journal.write"

type journalStore interface {
	Insert(ctx context.Context, entry *models.JournalEntry) error
	List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error)
}

// JournalConfig tunes the asynchronous journal writer.
type JournalConfig struct {
	Enabled      bool
	Workers      int
	BufferSize   int
	MaxRetries   int
	RetryDelay   time.Duration
	WriteTimeout time.Duration
}

// JournalService records attempted workflow actions. Writes go through a
// worker queue so request latency does not depend on Postgres.
type JournalService struct {
	repo    journalStore
	queue   *jobs.Queue
	metrics *MetricsService
	logger  *zap.Logger
	cfg     JournalConfig
	now     func() time.Time
}

// NewJournalService constructs the journal. A nil repo or disabled config
// turns Record into a structured log line.
func NewJournalService(repo journalStore, metrics *MetricsService, logger *zap.Logger, cfg JournalConfig) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	svc := &JournalService{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
	}
	if cfg.Enabled && repo != nil {
		svc.queue = jobs.NewQueue("action-journal", svc.handle, jobs.QueueConfig{
			Workers:    cfg.Workers,
			BufferSize: cfg.BufferSize,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
			Logger:     logger,
		})
	}
	return svc
}

// Enabled reports whether entries are persisted.
func (s *JournalService) Enabled() bool {
	return s != nil && s.queue != nil
}

// Start launches the writer workers.
func (s *JournalService) Start(ctx context.Context) {
	if s.Enabled() {
		s.queue.Start(ctx)
	}
}

// Stop flushes buffered entries and stops the workers.
func (s *JournalService) Stop() {
	if s.Enabled() {
		s.queue.Stop()
	}
}

// Record journals one attempted action. It never fails the caller.
func (s *JournalService) Record(ctx context.Context, entry models.JournalEntry) {
	if s == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	fields := []zap.Field{
		zap.String("journal_id", entry.ID),
		zap.String("actor_id", entry.ActorID),
		zap.String("actor_role", entry.ActorRole),
		zap.String("target_type", entry.TargetType),
		zap.String("target_id", entry.TargetID),
		zap.String("action", entry.Action),
		zap.String("outcome", string(entry.Outcome)),
		zap.String("request_id", entry.RequestID),
	}
	if !s.Enabled() {
		s.logger.Info("workflow action", append(fields, zap.String("detail", entry.Detail))...)
		return
	}
	if err := s.queue.Enqueue(jobs.Job{ID: entry.ID, Type: journalJobType, Payload: entry}); err != nil {
		s.metrics.RecordJournalWrite(err)
		s.logger.Warn("journal enqueue failed", append(fields, zap.Error(err))...)
	}
}

// List returns recent journal entries, newest first.
func (s *JournalService) List(ctx context.Context, caller models.Caller, filter models.JournalFilter) ([]models.JournalEntry, error) {
	if !caller.Actor.Role.IsNational() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only national oversight roles can read the action journal")
	}
	if s == nil || s.repo == nil || !s.cfg.Enabled {
		return []models.JournalEntry{}, nil
	}
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list action journal")
	}
	return entries, nil
}

func (s *JournalService) handle(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(models.JournalEntry)
	if !ok {
		return fmt.Errorf("unexpected journal payload %T", job.Payload)
	}
	writeCtx, cancel := context.WithTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()
	err := s.repo.Insert(writeCtx, &entry)
	s.metrics.RecordJournalWrite(err)
	return err
}
