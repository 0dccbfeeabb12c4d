// Package repository implements data persistence for the scope hierarchy.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses CHAR(36).
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/glennballman/Community-Canvas-sub004/internal/database"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

// PostgreSQLScopeRepository implements Scope persistence for PostgreSQL.
type PostgreSQLScopeRepository struct {
	db *sql.DB
}

// NewPostgreSQLScopeRepository creates a new PostgreSQL Scope repository.
func NewPostgreSQLScopeRepository(db *sql.DB) *PostgreSQLScopeRepository {
	return &PostgreSQLScopeRepository{db: db}
}

// Create inserts a scope node. Concurrent creation of the same node is expected
// during auto-vivification, so duplicate inserts are silently ignored; callers
// re-read after Create to pick up the winner.
func (p *PostgreSQLScopeRepository) Create(ctx context.Context, scope *scopeDomain.Scope) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO scopes (id, scope_type, parent_id, external_ref, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (scope_type, parent_key, external_ref) DO NOTHING`

	_, err := querier.ExecContext(
		ctx,
		query,
		scope.ID,
		scope.Type,
		scope.ParentID,
		scope.ExternalRef,
		scope.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create scope")
	}
	return nil
}

// Get retrieves a scope node by ID.
func (p *PostgreSQLScopeRepository) Get(
	ctx context.Context,
	scopeID uuid.UUID,
) (*scopeDomain.Scope, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, scope_type, parent_id, external_ref, created_at FROM scopes WHERE id = $1`

	return p.scanScope(querier.QueryRowContext(ctx, query, scopeID))
}

// GetByTypeAndRef retrieves a node by level and external reference. Used for
// platform/organization/tenant nodes whose refs are globally unique.
func (p *PostgreSQLScopeRepository) GetByTypeAndRef(
	ctx context.Context,
	scopeType scopeDomain.Type,
	externalRef string,
) (*scopeDomain.Scope, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, scope_type, parent_id, external_ref, created_at
			  FROM scopes WHERE scope_type = $1 AND external_ref = $2`

	return p.scanScope(querier.QueryRowContext(ctx, query, scopeType, externalRef))
}

// GetChild retrieves a node by parent, level, and external reference. Used for
// resource-type and resource nodes whose refs are unique under their parent.
func (p *PostgreSQLScopeRepository) GetChild(
	ctx context.Context,
	parentID uuid.UUID,
	scopeType scopeDomain.Type,
	externalRef string,
) (*scopeDomain.Scope, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, scope_type, parent_id, external_ref, created_at
			  FROM scopes WHERE parent_id = $1 AND scope_type = $2 AND external_ref = $3`

	return p.scanScope(querier.QueryRowContext(ctx, query, parentID, scopeType, externalRef))
}

// scanScope reads one scope row, mapping sql.ErrNoRows to ErrScopeNotFound.
func (p *PostgreSQLScopeRepository) scanScope(row *sql.Row) (*scopeDomain.Scope, error) {
	var scope scopeDomain.Scope
	var parentID sql.Null[uuid.UUID]

	err := row.Scan(&scope.ID, &scope.Type, &parentID, &scope.ExternalRef, &scope.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, scopeDomain.ErrScopeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get scope")
	}

	if parentID.Valid {
		scope.ParentID = &parentID.V
	}
	return &scope, nil
}
