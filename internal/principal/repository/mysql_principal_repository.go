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

// MySQLPrincipalRepository implements principal persistence for MySQL.
type MySQLPrincipalRepository struct {
	db *sql.DB
}

// NewMySQLPrincipalRepository creates a new MySQL principal repository.
func NewMySQLPrincipalRepository(db *sql.DB) *MySQLPrincipalRepository {
	return &MySQLPrincipalRepository{db: db}
}

// Create inserts a principal. A duplicate account ref maps to ErrConflict so the
// resolver can fall back to re-reading the winner.
func (m *MySQLPrincipalRepository) Create(
	ctx context.Context,
	principal *principalDomain.Principal,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO principals (id, account_ref, kind, display_name, person_profile_id,
			  device_registration_id, active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		principal.ID.String(),
		principal.AccountRef,
		principal.Kind,
		principal.DisplayName,
		uuidPtrToString(principal.PersonProfileID),
		uuidPtrToString(principal.DeviceRegistrationID),
		principal.Active,
		principal.CreatedAt,
		principal.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKeyErrorMySQL(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "principal already exists for account")
		}
		return apperrors.Wrap(err, "failed to create principal")
	}
	return nil
}

// GetByID retrieves a principal by ID.
func (m *MySQLPrincipalRepository) GetByID(
	ctx context.Context,
	principalID uuid.UUID,
) (*principalDomain.Principal, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + principalColumns + ` FROM principals WHERE id = ?`

	return scanPrincipalMySQL(querier.QueryRowContext(ctx, query, principalID.String()))
}

// GetByAccountRef retrieves a principal by its external account reference.
func (m *MySQLPrincipalRepository) GetByAccountRef(
	ctx context.Context,
	accountRef string,
) (*principalDomain.Principal, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + principalColumns + ` FROM principals WHERE account_ref = ?`

	return scanPrincipalMySQL(querier.QueryRowContext(ctx, query, accountRef))
}

// Deactivate marks a principal inactive. Principals are never deleted.
func (m *MySQLPrincipalRepository) Deactivate(
	ctx context.Context,
	principalID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE principals SET active = FALSE, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, principalID.String())
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
func (m *MySQLPrincipalRepository) CreatePersonProfile(
	ctx context.Context,
	profile *principalDomain.PersonProfile,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO person_profiles (id, display_name, created_at) VALUES (?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, profile.ID.String(), profile.DisplayName, profile.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create person profile")
	}
	return nil
}

// CreateDeviceRegistration inserts the device record behind a machine principal.
func (m *MySQLPrincipalRepository) CreateDeviceRegistration(
	ctx context.Context,
	registration *principalDomain.DeviceRegistration,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO device_registrations (id, device_ref, created_at) VALUES (?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, registration.ID.String(), registration.DeviceRef, registration.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create device registration")
	}
	return nil
}

// isDuplicateKeyErrorMySQL checks if the error is a MySQL unique constraint violation.
func isDuplicateKeyErrorMySQL(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}

// uuidPtrToString converts an optional UUID to a nullable CHAR(36) value.
func uuidPtrToString(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func scanPrincipalMySQL(row *sql.Row) (*principalDomain.Principal, error) {
	var principal principalDomain.Principal
	var id string
	var profileID, deviceID sql.NullString

	err := row.Scan(
		&id,
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

	principal.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse principal id")
	}
	if profileID.Valid {
		parsed, err := uuid.Parse(profileID.String)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse person profile id")
		}
		principal.PersonProfileID = &parsed
	}
	if deviceID.Valid {
		parsed, err := uuid.Parse(deviceID.String)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse device registration id")
		}
		principal.DeviceRegistrationID = &parsed
	}
	return &principal, nil
}
