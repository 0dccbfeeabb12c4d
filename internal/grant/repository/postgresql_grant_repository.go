// Package repository implements grant persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/glennballman/Community-Canvas-sub004/internal/database"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	grantDomain "github.com/glennballman/Community-Canvas-sub004/internal/grant/domain"
)

const grantColumns = `id, principal_id, scope_id, role_name, capability_code,
	conditions, expires_at, revoked_at, created_at`

// PostgreSQLGrantRepository implements grant persistence for PostgreSQL.
type PostgreSQLGrantRepository struct {
	db *sql.DB
}

// NewPostgreSQLGrantRepository creates a new PostgreSQL grant repository.
func NewPostgreSQLGrantRepository(db *sql.DB) *PostgreSQLGrantRepository {
	return &PostgreSQLGrantRepository{db: db}
}

// Create inserts a grant.
func (p *PostgreSQLGrantRepository) Create(ctx context.Context, grant *grantDomain.Grant) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO grants (id, principal_id, scope_id, role_name, capability_code,
			  conditions, expires_at, revoked_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		grant.ID,
		grant.PrincipalID,
		grant.ScopeID,
		grant.RoleName,
		grant.CapabilityCode,
		nullableJSON(grant.Conditions),
		grant.ExpiresAt,
		grant.RevokedAt,
		grant.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create grant")
	}
	return nil
}

// GetByID retrieves a grant by ID.
func (p *PostgreSQLGrantRepository) GetByID(
	ctx context.Context,
	grantID uuid.UUID,
) (*grantDomain.Grant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + grantColumns + ` FROM grants WHERE id = $1`

	rows, err := querier.QueryContext(ctx, query, grantID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get grant")
	}
	defer rows.Close()

	grants, err := scanGrantsPG(rows)
	if err != nil {
		return nil, err
	}
	if len(grants) == 0 {
		return nil, grantDomain.ErrGrantNotFound
	}
	return grants[0], nil
}

// ListForPrincipalInScopes returns every grant for the principal whose scope is
// one of the given scope IDs, including expired and revoked grants. The
// evaluator partitions them so it can report GRANT_EXPIRED and GRANT_REVOKED
// instead of a bare not-granted.
func (p *PostgreSQLGrantRepository) ListForPrincipalInScopes(
	ctx context.Context,
	principalID uuid.UUID,
	scopeIDs []uuid.UUID,
) ([]*grantDomain.Grant, error) {
	if len(scopeIDs) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + grantColumns + ` FROM grants
			  WHERE principal_id = $1 AND scope_id = ANY($2)
			  ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, principalID, pq.Array(scopeIDs))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list grants for principal")
	}
	defer rows.Close()

	return scanGrantsPG(rows)
}

// ListByPrincipal returns a page of grants for a principal, newest first.
func (p *PostgreSQLGrantRepository) ListByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*grantDomain.Grant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + grantColumns + ` FROM grants
			  WHERE principal_id = $1
			  ORDER BY created_at DESC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, principalID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list grants")
	}
	defer rows.Close()

	return scanGrantsPG(rows)
}

// Revoke marks a grant revoked. Revoking twice is a conflict; revocation is an
// auditable event and must not be silently absorbed.
func (p *PostgreSQLGrantRepository) Revoke(
	ctx context.Context,
	grantID uuid.UUID,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE grants SET revoked_at = $1 WHERE id = $2 AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, revokedAt, grantID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke grant")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check revocation result")
	}
	if rows == 0 {
		if _, getErr := p.GetByID(ctx, grantID); getErr != nil {
			return getErr
		}
		return grantDomain.ErrGrantAlreadyRevoked
	}
	return nil
}

// nullableJSON maps an empty payload to SQL NULL.
func nullableJSON(payload []byte) any {
	if len(payload) == 0 {
		return nil
	}
	return []byte(payload)
}

func scanGrantsPG(rows *sql.Rows) ([]*grantDomain.Grant, error) {
	var grants []*grantDomain.Grant

	for rows.Next() {
		var grant grantDomain.Grant
		var roleName, capabilityCode sql.NullString
		var conditions []byte
		var expiresAt, revokedAt sql.NullTime

		err := rows.Scan(
			&grant.ID,
			&grant.PrincipalID,
			&grant.ScopeID,
			&roleName,
			&capabilityCode,
			&conditions,
			&expiresAt,
			&revokedAt,
			&grant.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan grant")
		}

		if roleName.Valid {
			grant.RoleName = &roleName.String
		}
		if capabilityCode.Valid {
			grant.CapabilityCode = &capabilityCode.String
		}
		if len(conditions) > 0 {
			grant.Conditions = conditions
		}
		if expiresAt.Valid {
			t := expiresAt.Time
			grant.ExpiresAt = &t
		}
		if revokedAt.Valid {
			t := revokedAt.Time
			grant.RevokedAt = &t
		}
		grants = append(grants, &grant)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate grants")
	}
	return grants, nil
}
