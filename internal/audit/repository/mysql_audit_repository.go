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

// MySQLAuditRepository implements audit persistence for MySQL.
type MySQLAuditRepository struct {
	db *sql.DB
}

// NewMySQLAuditRepository creates a new MySQL audit repository.
func NewMySQLAuditRepository(db *sql.DB) *MySQLAuditRepository {
	return &MySQLAuditRepository{db: db}
}

// Create inserts an audit record.
func (m *MySQLAuditRepository) Create(
	ctx context.Context,
	record *auditDomain.Record,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO audit_records (id, principal_id, original_principal_id,
			  capability_code, scope_id, resource_key, effect, reason, request_id, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var scopeID sql.NullString
	if record.ScopeID != nil {
		scopeID = sql.NullString{String: record.ScopeID.String(), Valid: true}
	}

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID.String(),
		record.PrincipalID.String(),
		record.OriginalPrincipalID.String(),
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
func (m *MySQLAuditRepository) ListByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*auditDomain.Record, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + auditColumns + ` FROM audit_records
			  WHERE principal_id = ?
			  ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, principalID.String(), limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit records")
	}
	defer rows.Close()

	return scanRecordsMySQL(rows)
}

// DeleteOlderThan removes audit records created before the cutoff.
func (m *MySQLAuditRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM audit_records WHERE created_at < ?`

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

func scanRecordsMySQL(rows *sql.Rows) ([]*auditDomain.Record, error) {
	var records []*auditDomain.Record
	for rows.Next() {
		var record auditDomain.Record
		var id, principalID, originalPrincipalID string
		var scopeID sql.NullString

		err := rows.Scan(
			&id,
			&principalID,
			&originalPrincipalID,
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

		if record.ID, err = uuid.Parse(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse audit record id")
		}
		if record.PrincipalID, err = uuid.Parse(principalID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse principal id")
		}
		if record.OriginalPrincipalID, err = uuid.Parse(originalPrincipalID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse original principal id")
		}
		if scopeID.Valid {
			parsed, err := uuid.Parse(scopeID.String)
			if err != nil {
				return nil, apperrors.Wrap(err, "failed to parse scope id")
			}
			record.ScopeID = &parsed
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit records")
	}
	return records, nil
}
