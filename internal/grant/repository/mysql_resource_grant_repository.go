package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/glennballman/Community-Canvas-sub004/internal/database"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	grantDomain "github.com/glennballman/Community-Canvas-sub004/internal/grant/domain"
)

// MySQLResourceGrantRepository implements resource grant persistence for MySQL.
type MySQLResourceGrantRepository struct {
	db *sql.DB
}

// NewMySQLResourceGrantRepository creates a new MySQL resource grant repository.
func NewMySQLResourceGrantRepository(db *sql.DB) *MySQLResourceGrantRepository {
	return &MySQLResourceGrantRepository{db: db}
}

// Create inserts a resource grant.
func (m *MySQLResourceGrantRepository) Create(
	ctx context.Context,
	grant *grantDomain.ResourceGrant,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO resource_grants (id, principal_id, scope_id, capability_code,
			  revoked_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		grant.ID.String(),
		grant.PrincipalID.String(),
		grant.ScopeID.String(),
		grant.CapabilityCode,
		grant.RevokedAt,
		grant.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create resource grant")
	}
	return nil
}

// Exists reports whether an active resource grant names (principal, resource
// scope, capability).
func (m *MySQLResourceGrantRepository) Exists(
	ctx context.Context,
	principalID, scopeID uuid.UUID,
	capabilityCode string,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS (
			  SELECT 1 FROM resource_grants
			  WHERE principal_id = ? AND scope_id = ? AND capability_code = ?
			  AND revoked_at IS NULL)`

	var exists bool
	err := querier.QueryRowContext(
		ctx, query, principalID.String(), scopeID.String(), capabilityCode,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check resource grant")
	}
	return exists, nil
}

// Revoke marks a resource grant revoked.
func (m *MySQLResourceGrantRepository) Revoke(
	ctx context.Context,
	grantID uuid.UUID,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE resource_grants SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, revokedAt, grantID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke resource grant")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check revocation result")
	}
	if rows == 0 {
		var exists bool
		checkErr := querier.QueryRowContext(
			ctx, `SELECT EXISTS (SELECT 1 FROM resource_grants WHERE id = ?)`, grantID.String(),
		).Scan(&exists)
		if checkErr != nil {
			return apperrors.Wrap(checkErr, "failed to check resource grant")
		}
		if !exists {
			return grantDomain.ErrGrantNotFound
		}
		return grantDomain.ErrGrantAlreadyRevoked
	}
	return nil
}

// ListByPrincipal returns a page of resource grants for a principal, newest first.
func (m *MySQLResourceGrantRepository) ListByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*grantDomain.ResourceGrant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + resourceGrantColumns + ` FROM resource_grants
			  WHERE principal_id = ?
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, principalID.String(), limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list resource grants")
	}
	defer rows.Close()

	var grants []*grantDomain.ResourceGrant
	for rows.Next() {
		var grant grantDomain.ResourceGrant
		var id, principalIDStr, scopeID string
		var revokedAt sql.NullTime

		err := rows.Scan(
			&id,
			&principalIDStr,
			&scopeID,
			&grant.CapabilityCode,
			&revokedAt,
			&grant.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan resource grant")
		}

		if grant.ID, err = uuid.Parse(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse resource grant id")
		}
		if grant.PrincipalID, err = uuid.Parse(principalIDStr); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse resource grant principal id")
		}
		if grant.ScopeID, err = uuid.Parse(scopeID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse resource grant scope id")
		}
		if revokedAt.Valid {
			t := revokedAt.Time
			grant.RevokedAt = &t
		}
		grants = append(grants, &grant)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate resource grants")
	}
	return grants, nil
}
