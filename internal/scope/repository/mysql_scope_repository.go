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

// MySQLScopeRepository implements Scope persistence for MySQL.
type MySQLScopeRepository struct {
	db *sql.DB
}

// NewMySQLScopeRepository creates a new MySQL Scope repository.
func NewMySQLScopeRepository(db *sql.DB) *MySQLScopeRepository {
	return &MySQLScopeRepository{db: db}
}

// Create inserts a scope node, ignoring duplicates from concurrent
// auto-vivification. Callers re-read after Create to pick up the winner.
func (m *MySQLScopeRepository) Create(ctx context.Context, scope *scopeDomain.Scope) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT IGNORE INTO scopes (id, scope_type, parent_id, external_ref, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	var parentID any
	if scope.ParentID != nil {
		parentID = scope.ParentID.String()
	}

	_, err := querier.ExecContext(
		ctx,
		query,
		scope.ID.String(),
		scope.Type,
		parentID,
		scope.ExternalRef,
		scope.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create scope")
	}
	return nil
}

// Get retrieves a scope node by ID.
func (m *MySQLScopeRepository) Get(
	ctx context.Context,
	scopeID uuid.UUID,
) (*scopeDomain.Scope, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, scope_type, parent_id, external_ref, created_at FROM scopes WHERE id = ?`

	return m.scanScope(querier.QueryRowContext(ctx, query, scopeID.String()))
}

// GetByTypeAndRef retrieves a node by level and external reference.
func (m *MySQLScopeRepository) GetByTypeAndRef(
	ctx context.Context,
	scopeType scopeDomain.Type,
	externalRef string,
) (*scopeDomain.Scope, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, scope_type, parent_id, external_ref, created_at
			  FROM scopes WHERE scope_type = ? AND external_ref = ?`

	return m.scanScope(querier.QueryRowContext(ctx, query, scopeType, externalRef))
}

// GetChild retrieves a node by parent, level, and external reference.
func (m *MySQLScopeRepository) GetChild(
	ctx context.Context,
	parentID uuid.UUID,
	scopeType scopeDomain.Type,
	externalRef string,
) (*scopeDomain.Scope, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, scope_type, parent_id, external_ref, created_at
			  FROM scopes WHERE parent_id = ? AND scope_type = ? AND external_ref = ?`

	return m.scanScope(querier.QueryRowContext(ctx, query, parentID.String(), scopeType, externalRef))
}

func (m *MySQLScopeRepository) scanScope(row *sql.Row) (*scopeDomain.Scope, error) {
	var scope scopeDomain.Scope
	var id string
	var parentID sql.NullString

	err := row.Scan(&id, &scope.Type, &parentID, &scope.ExternalRef, &scope.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, scopeDomain.ErrScopeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get scope")
	}

	scope.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse scope id")
	}
	if parentID.Valid {
		parsed, err := uuid.Parse(parentID.String)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse scope parent id")
		}
		scope.ParentID = &parsed
	}
	return &scope, nil
}
