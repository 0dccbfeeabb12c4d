package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glennballman/Community-Canvas-sub004/internal/database"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	grantDomain "github.com/glennballman/Community-Canvas-sub004/internal/grant/domain"
)

// MySQLGrantRepository implements grant persistence for MySQL.
type MySQLGrantRepository struct {
	db *sql.DB
}

// NewMySQLGrantRepository creates a new MySQL grant repository.
func NewMySQLGrantRepository(db *sql.DB) *MySQLGrantRepository {
	return &MySQLGrantRepository{db: db}
}

// Create inserts a grant.
func (m *MySQLGrantRepository) Create(ctx context.Context, grant *grantDomain.Grant) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO grants (id, principal_id, scope_id, role_name, capability_code,
			  conditions, expires_at, revoked_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		grant.ID.String(),
		grant.PrincipalID.String(),
		grant.ScopeID.String(),
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
func (m *MySQLGrantRepository) GetByID(
	ctx context.Context,
	grantID uuid.UUID,
) (*grantDomain.Grant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + grantColumns + ` FROM grants WHERE id = ?`

	rows, err := querier.QueryContext(ctx, query, grantID.String())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get grant")
	}
	defer rows.Close()

	grants, err := scanGrantsMySQL(rows)
	if err != nil {
		return nil, err
	}
	if len(grants) == 0 {
		return nil, grantDomain.ErrGrantNotFound
	}
	return grants[0], nil
}

// ListForPrincipalInScopes returns every grant for the principal whose scope is
// one of the given scope IDs, including expired and revoked grants.
func (m *MySQLGrantRepository) ListForPrincipalInScopes(
	ctx context.Context,
	principalID uuid.UUID,
	scopeIDs []uuid.UUID,
) ([]*grantDomain.Grant, error) {
	if len(scopeIDs) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, m.db)

	placeholders := strings.Repeat("?,", len(scopeIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := `SELECT ` + grantColumns + ` FROM grants
			  WHERE principal_id = ? AND scope_id IN (` + placeholders + `)
			  ORDER BY created_at`

	args := make([]any, 0, len(scopeIDs)+1)
	args = append(args, principalID.String())
	for _, id := range scopeIDs {
		args = append(args, id.String())
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list grants for principal")
	}
	defer rows.Close()

	return scanGrantsMySQL(rows)
}

// ListByPrincipal returns a page of grants for a principal, newest first.
func (m *MySQLGrantRepository) ListByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*grantDomain.Grant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + grantColumns + ` FROM grants
			  WHERE principal_id = ?
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, principalID.String(), limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list grants")
	}
	defer rows.Close()

	return scanGrantsMySQL(rows)
}

// Revoke marks a grant revoked. Revoking twice is a conflict.
func (m *MySQLGrantRepository) Revoke(
	ctx context.Context,
	grantID uuid.UUID,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE grants SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, revokedAt, grantID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke grant")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check revocation result")
	}
	if rows == 0 {
		if _, getErr := m.GetByID(ctx, grantID); getErr != nil {
			return getErr
		}
		return grantDomain.ErrGrantAlreadyRevoked
	}
	return nil
}

func scanGrantsMySQL(rows *sql.Rows) ([]*grantDomain.Grant, error) {
	var grants []*grantDomain.Grant

	for rows.Next() {
		var grant grantDomain.Grant
		var id, principalID, scopeID string
		var roleName, capabilityCode sql.NullString
		var conditions []byte
		var expiresAt, revokedAt sql.NullTime

		err := rows.Scan(
			&id,
			&principalID,
			&scopeID,
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

		if grant.ID, err = uuid.Parse(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse grant id")
		}
		if grant.PrincipalID, err = uuid.Parse(principalID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse grant principal id")
		}
		if grant.ScopeID, err = uuid.Parse(scopeID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse grant scope id")
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
