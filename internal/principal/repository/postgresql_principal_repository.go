// Package repository implements principal persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/glennballman/Community-Canvas-sub004/internal/database"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	principalDomain "github.com/glennballman/Community-Canvas-sub004/internal/principal/domain"
)

const principalColumns = `id, account_ref, kind, display_name, person_profile_id,
	device_registration_id, active, created_at, updated_at`

// PostgreSQLPrincipalRepository implements principal persistence for PostgreSQL.
type PostgreSQLPrincipalRepository struct {
	db *sql.DB
}

// NewPostgreSQLPrincipalRepository creates a new PostgreSQL principal repository.
func NewPostgreSQLPrincipalRepository(db *sql.DB) *PostgreSQLPrincipalRepository {
	return &PostgreSQLPrincipalRepository{db: db}
}

// Create inserts a principal. A duplicate account ref maps to ErrConflict so the
// resolver can fall back to re-reading the winner.
func (p *PostgreSQLPrincipalRepository) Create(
	ctx context.Context,
	principal *principalDomain.Principal,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO principals (id, account_ref, kind, display_name, person_profile_id,
			  device_registration_id, active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		principal.ID,
		principal.AccountRef,
		principal.Kind,
		principal.DisplayName,
		principal.PersonProfileID,
		principal.DeviceRegistrationID,
		principal.Active,
		principal.CreatedAt,
		principal.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKeyErrorPG(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "principal already exists for account")
		}
		return apperrors.Wrap(err, "failed to create principal")
	}
	return nil
}

// isDuplicateKeyErrorPG checks if the error is a PostgreSQL unique constraint violation.
func isDuplicateKeyErrorPG(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// GetByID retrieves a principal by ID.
func (p *PostgreSQLPrincipalRepository) GetByID(
	ctx context.Context,
	principalID uuid.UUID,
) (*principalDomain.Principal, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + principalColumns + ` FROM principals WHERE id = $1`

	return scanPrincipalPG(querier.QueryRowContext(ctx, query, principalID))
}

// GetByAccountRef retrieves a principal by its external account reference.
func (p *PostgreSQLPrincipalRepository) GetByAccountRef(
	ctx context.Context,
	accountRef string,
) (*principalDomain.Principal, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + principalColumns + ` FROM principals WHERE account_ref = $1`

	return scanPrincipalPG(querier.QueryRowContext(ctx, query, accountRef))
}

// Deactivate marks a principal inactive. Principals are never deleted.
func (p *PostgreSQLPrincipalRepository) Deactivate(
	ctx context.Context,
	principalID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE principals SET active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, principalID)
	if err != nil {
		return apperrors.Wrap(err, "failed to deactivate principal")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check deactivation result")
	}
	if rows == 0 {
		return principalDomain.ErrPrincipalNotFound
	}
	return nil
}

// CreatePersonProfile inserts the profile behind a human principal.
func (p *PostgreSQLPrincipalRepository) CreatePersonProfile(
	ctx context.Context,
	profile *principalDomain.PersonProfile,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO person_profiles (id, display_name, created_at) VALUES ($1, $2, $3)`

	_, err := querier.ExecContext(ctx, query, profile.ID, profile.DisplayName, profile.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create person profile")
	}
	return nil
}

// CreateDeviceRegistration inserts the device record behind a machine principal.
func (p *PostgreSQLPrincipalRepository) CreateDeviceRegistration(
	ctx context.Context,
	registration *principalDomain.DeviceRegistration,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO device_registrations (id, device_ref, created_at) VALUES ($1, $2, $3)`

	_, err := querier.ExecContext(ctx, query, registration.ID, registration.DeviceRef, registration.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create device registration")
	}
	return nil
}

// scanPrincipalPG reads one principal row, mapping sql.ErrNoRows to
// ErrPrincipalNotFound.
func scanPrincipalPG(row *sql.Row) (*principalDomain.Principal, error) {
	var principal principalDomain.Principal
	var profileID, deviceID sql.Null[uuid.UUID]

	err := row.Scan(
		&principal.ID,
		&principal.AccountRef,
		&principal.Kind,
		&principal.DisplayName,
		&profileID,
		&deviceID,
		&principal.Active,
		&principal.CreatedAt,
		&principal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, principalDomain.ErrPrincipalNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get principal")
	}

	if profileID.Valid {
		principal.PersonProfileID = &profileID.V
	}
	if deviceID.Valid {
		principal.DeviceRegistrationID = &deviceID.V
	}
	return &principal, nil
}
