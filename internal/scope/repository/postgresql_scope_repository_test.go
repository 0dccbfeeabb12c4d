package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

var scopeColumns = []string{"id", "scope_type", "parent_id", "external_ref", "created_at"}

// TestPostgreSQLScopeRepository_Get tests scope retrieval by ID.
func TestPostgreSQLScopeRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPostgreSQLScopeRepository(db)
		scopeID := uuid.Must(uuid.NewV7())
		parentID := uuid.Must(uuid.NewV7())
		createdAt := time.Now().UTC()

		mock.ExpectQuery("SELECT id, scope_type, parent_id, external_ref, created_at FROM scopes WHERE id = \\$1").
			WithArgs(scopeID).
			WillReturnRows(sqlmock.NewRows(scopeColumns).
				AddRow(scopeID.String(), "tenant", parentID.String(), "ref", createdAt))

		scope, err := repo.Get(ctx, scopeID)
		assert.NoError(t, err)
		assert.Equal(t, scopeID, scope.ID)
		assert.Equal(t, scopeDomain.TypeTenant, scope.Type)
		require.NotNil(t, scope.ParentID)
		assert.Equal(t, parentID, *scope.ParentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPostgreSQLScopeRepository(db)
		scopeID := uuid.Must(uuid.NewV7())

		mock.ExpectQuery("SELECT id, scope_type, parent_id, external_ref, created_at FROM scopes WHERE id = \\$1").
			WithArgs(scopeID).
			WillReturnRows(sqlmock.NewRows(scopeColumns))

		_, err = repo.Get(ctx, scopeID)
		assert.ErrorIs(t, err, scopeDomain.ErrScopeNotFound)
	})
}

// TestPostgreSQLScopeRepository_Create tests conflict-tolerant node creation.
func TestPostgreSQLScopeRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPostgreSQLScopeRepository(db)
		parentID := uuid.Must(uuid.NewV7())
		scope := &scopeDomain.Scope{
			ID:          uuid.Must(uuid.NewV7()),
			Type:        scopeDomain.TypeResource,
			ParentID:    &parentID,
			ExternalRef: "run-42",
			CreatedAt:   time.Now().UTC(),
		}

		mock.ExpectExec("INSERT INTO scopes").
			WithArgs(scope.ID, scope.Type, scope.ParentID, scope.ExternalRef, scope.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, scope))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_DuplicateIgnored", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPostgreSQLScopeRepository(db)
		scope := &scopeDomain.Scope{
			ID:          uuid.Must(uuid.NewV7()),
			Type:        scopeDomain.TypePlatform,
			ExternalRef: "platform",
			CreatedAt:   time.Now().UTC(),
		}

		// ON CONFLICT DO NOTHING reports zero affected rows for the loser.
		mock.ExpectExec("INSERT INTO scopes").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Create(ctx, scope))
	})
}

// TestPostgreSQLScopeRepository_GetChild tests child lookup under a parent.
func TestPostgreSQLScopeRepository_GetChild(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPostgreSQLScopeRepository(db)
		parentID := uuid.Must(uuid.NewV7())
		childID := uuid.Must(uuid.NewV7())

		mock.ExpectQuery("SELECT id, scope_type, parent_id, external_ref, created_at").
			WithArgs(parentID, scopeDomain.TypeResourceType, "service_runs").
			WillReturnRows(sqlmock.NewRows(scopeColumns).
				AddRow(childID.String(), "resource_type", parentID.String(), "service_runs", time.Now().UTC()))

		child, err := repo.GetChild(ctx, parentID, scopeDomain.TypeResourceType, "service_runs")
		assert.NoError(t, err)
		assert.Equal(t, childID, child.ID)
		assert.Equal(t, "service_runs", child.ExternalRef)
	})
}
