// Package usecase implements the audit trail: a single-writer queue that
// persists every authorization decision without ever influencing one.
package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/glennballman/Community-Canvas-sub004/internal/audit/domain"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	"github.com/glennballman/Community-Canvas-sub004/internal/metrics"
)

const (
	defaultQueueSize = 1024
	writeAttempts    = 3
	retryBackoff     = 100 * time.Millisecond
)

// AuditUsecase implements the Audit interface. Records are queued and written
// by one background goroutine; a full queue blocks the caller rather than
// dropping a record. Write failures are retried, then logged and counted, and
// never surface to the authorization path.
type AuditUsecase struct {
	auditRepo       AuditRepository
	logger          *slog.Logger
	businessMetrics metrics.BusinessMetrics

	queue  chan *auditDomain.Record
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// NewAuditUsecase creates a new audit usecase and starts its writer goroutine.
// A queueSize of zero or less falls back to the default.
func NewAuditUsecase(
	auditRepo AuditRepository,
	logger *slog.Logger,
	businessMetrics metrics.BusinessMetrics,
	queueSize int,
) *AuditUsecase {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	u := &AuditUsecase{
		auditRepo:       auditRepo,
		logger:          logger,
		businessMetrics: businessMetrics,
		queue:           make(chan *auditDomain.Record, queueSize),
		done:            make(chan struct{}),
	}
	go u.writer()
	return u
}

// Record enqueues an authorization decision for persistence. It blocks only
// when the queue is full, so records are never dropped under load. Records
// arriving after Close are logged and discarded.
func (u *AuditUsecase) Record(input RecordInput) {
	record := &auditDomain.Record{
		ID:                  uuid.Must(uuid.NewV7()),
		PrincipalID:         input.PrincipalID,
		OriginalPrincipalID: input.OriginalPrincipalID,
		CapabilityCode:      input.CapabilityCode,
		ScopeID:             input.ScopeID,
		ResourceKey:         input.ResourceKey,
		Effect:              input.Effect,
		Reason:              input.Reason,
		RequestID:           input.RequestID,
		CreatedAt:           time.Now().UTC(),
	}

	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		u.logger.Error("audit record after close",
			slog.String("principal_id", record.PrincipalID.String()),
			slog.String("capability", record.CapabilityCode),
		)
		return
	}
	u.queue <- record
	u.mu.Unlock()
}

// List retrieves audit records for a principal, newest first.
func (u *AuditUsecase) List(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*auditDomain.Record, error) {
	return u.auditRepo.ListByPrincipal(ctx, principalID, offset, limit)
}

// CleanOldRecords deletes audit records older than the retention window.
func (u *AuditUsecase) CleanOldRecords(
	ctx context.Context,
	retention time.Duration,
) (int64, error) {
	if retention <= 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "retention must be positive")
	}
	return u.auditRepo.DeleteOlderThan(ctx, time.Now().UTC().Add(-retention))
}

// Close stops accepting records and waits for the queue to drain or the
// context to expire.
func (u *AuditUsecase) Close(ctx context.Context) error {
	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return nil
	}
	u.closed = true
	close(u.queue)
	u.mu.Unlock()

	select {
	case <-u.done:
		return nil
	case <-ctx.Done():
		return apperrors.Wrap(ctx.Err(), "audit queue drain interrupted")
	}
}

// writer is the single persistence goroutine.
func (u *AuditUsecase) writer() {
	defer close(u.done)

	for record := range u.queue {
		u.write(record)
	}
}

// write persists one record with bounded retries. A record that still fails
// after the last attempt is logged and counted, not requeued: the decision it
// documents has already been returned.
func (u *AuditUsecase) write(record *auditDomain.Record) {
	ctx := context.Background()

	var err error
	for attempt := 1; attempt <= writeAttempts; attempt++ {
		if err = u.auditRepo.Create(ctx, record); err == nil {
			u.businessMetrics.RecordOperation(ctx, "audit", "write", "success")
			return
		}
		if attempt < writeAttempts {
			time.Sleep(retryBackoff * time.Duration(attempt))
		}
	}

	u.businessMetrics.RecordOperation(ctx, "audit", "write", "error")
	u.logger.Error("audit record write failed",
		slog.String("record_id", record.ID.String()),
		slog.String("principal_id", record.PrincipalID.String()),
		slog.String("capability", record.CapabilityCode),
		slog.String("effect", string(record.Effect)),
		slog.Any("error", err),
	)
}
