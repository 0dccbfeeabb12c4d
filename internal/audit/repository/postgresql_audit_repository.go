// Package repository implements audit record persistence.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/glennballman/Community-Canvas-sub004/internal/audit/domain"
	"github.com/glennballman/Community-Canvas-sub004/internal/database"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
)

const auditColumns = `id, principal_id, original_principal_id, capability_code,
	scope_id, resource_key, effect, reason, request_id, created_at`

// PostgreSQLAuditRepository implements audit persistence for PostgreSQL. The
// audit_records table is append-only; there is no update path.
type PostgreSQLAuditRepository struct {
	db *sql.DB
}

// NewPostgreSQLAuditRepository creates a new PostgreSQL audit repository.
func NewPostgreSQLAuditRepository(db *sql.DB) *PostgreSQLAuditRepository {
	return &PostgreSQLAuditRepository{db: db}
}

// Create inserts an audit record.
func (p *PostgreSQLAuditRepository) Create(
	ctx context.Context,
	record *auditDomain.Record,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO audit_records (id, principal_id, original_principal_id,
			  capability_code, scope_id, resource_key, effect, reason, request_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	var scopeID sql.Null[uuid.UUID]
	if record.ScopeID != nil {
		scopeID = sql.Null[uuid.UUID]{V: *record.ScopeID, Valid: true}
	}

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.PrincipalID,
		record.OriginalPrincipalID,
		record.CapabilityCode,
		scopeID,
		record.ResourceKey,
		record.Effect,
		record.Reason,
		record.RequestID,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit record")
	}
	return nil
}

// ListByPrincipal retrieves audit records for a principal, newest first.
func (p *PostgreSQLAuditRepository) ListByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*auditDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + auditColumns + ` FROM audit_records
			  WHERE principal_id = $1
			  ORDER BY created_at DESC OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, principalID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit records")
	}
	defer rows.Close()

	return scanRecordsPG(rows)
}

// DeleteOlderThan removes audit records created before the cutoff. Retention
// cleanup is the one sanctioned delete on an otherwise append-only table.
func (p *PostgreSQLAuditRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM audit_records WHERE created_at < $1`

	result, err := querier.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit records")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted audit records")
	}
	return rows, nil
}

func scanRecordsPG(rows *sql.Rows) ([]*auditDomain.Record, error) {
	var records []*auditDomain.Record
	for rows.Next() {
		var record auditDomain.Record
		var scopeID sql.Null[uuid.UUID]

		err := rows.Scan(
			&record.ID,
			&record.PrincipalID,
			&record.OriginalPrincipalID,
			&record.CapabilityCode,
			&scopeID,
			&record.ResourceKey,
			&record.Effect,
			&record.Reason,
			&record.RequestID,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit record")
		}
		if scopeID.Valid {
			id := scopeID.V
			record.ScopeID = &id
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit records")
	}
	return records, nil
}
