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

const resourceGrantColumns = `id, principal_id, scope_id, capability_code, revoked_at, created_at`

// PostgreSQLResourceGrantRepository implements resource grant persistence for PostgreSQL.
type PostgreSQLResourceGrantRepository struct {
	db *sql.DB
}

// NewPostgreSQLResourceGrantRepository creates a new PostgreSQL resource grant repository.
func NewPostgreSQLResourceGrantRepository(db *sql.DB) *PostgreSQLResourceGrantRepository {
	return &PostgreSQLResourceGrantRepository{db: db}
}

// Create inserts a resource grant.
func (p *PostgreSQLResourceGrantRepository) Create(
	ctx context.Context,
	grant *grantDomain.ResourceGrant,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO resource_grants (id, principal_id, scope_id, capability_code,
			  revoked_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		grant.ID,
		grant.PrincipalID,
		grant.ScopeID,
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
func (p *PostgreSQLResourceGrantRepository) Exists(
	ctx context.Context,
	principalID, scopeID uuid.UUID,
	capabilityCode string,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (
			  SELECT 1 FROM resource_grants
			  WHERE principal_id = $1 AND scope_id = $2 AND capability_code = $3
			  AND revoked_at IS NULL)`

	var exists bool
	err := querier.QueryRowContext(ctx, query, principalID, scopeID, capabilityCode).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check resource grant")
	}
	return exists, nil
}

// Revoke marks a resource grant revoked.
func (p *PostgreSQLResourceGrantRepository) Revoke(
	ctx context.Context,
	grantID uuid.UUID,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE resource_grants SET revoked_at = $1 WHERE id = $2 AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, revokedAt, grantID)
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
			ctx, `SELECT EXISTS (SELECT 1 FROM resource_grants WHERE id = $1)`, grantID,
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
func (p *PostgreSQLResourceGrantRepository) ListByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*grantDomain.ResourceGrant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + resourceGrantColumns + ` FROM resource_grants
			  WHERE principal_id = $1
			  ORDER BY created_at DESC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, principalID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list resource grants")
	}
	defer rows.Close()

	var grants []*grantDomain.ResourceGrant
	for rows.Next() {
		var grant grantDomain.ResourceGrant
		var revokedAt sql.NullTime

		err := rows.Scan(
			&grant.ID,
			&grant.PrincipalID,
			&grant.ScopeID,
			&grant.CapabilityCode,
			&revokedAt,
			&grant.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan resource grant")
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
