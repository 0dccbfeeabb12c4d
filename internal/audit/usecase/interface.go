package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/glennballman/Community-Canvas-sub004/internal/audit/domain"
)

// AuditRepository defines the interface for audit record persistence.
type AuditRepository interface {
	Create(ctx context.Context, record *auditDomain.Record) error
	ListByPrincipal(ctx context.Context, principalID uuid.UUID, offset, limit int) ([]*auditDomain.Record, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RecordInput carries one authorization decision to be audited.
type RecordInput struct {
	PrincipalID         uuid.UUID
	OriginalPrincipalID uuid.UUID
	CapabilityCode      string
	ScopeID             *uuid.UUID
	ResourceKey         string
	Effect              auditDomain.Effect
	Reason              string
	RequestID           string
}

// Audit defines the audit trail operations. Record enqueues; persistence
// happens on a single background writer.
type Audit interface {
	Record(input RecordInput)
	List(ctx context.Context, principalID uuid.UUID, offset, limit int) ([]*auditDomain.Record, error)
	CleanOldRecords(ctx context.Context, retention time.Duration) (int64, error)
	Close(ctx context.Context) error
}
