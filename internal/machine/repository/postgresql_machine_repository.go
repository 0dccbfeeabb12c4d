// Package repository implements machine session and certification persistence
// for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/glennballman/Community-Canvas-sub004/internal/database"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	machineDomain "github.com/glennballman/Community-Canvas-sub004/internal/machine/domain"
)

const sessionColumns = `id, machine_principal_id, operator_principal_id, mode, status,
	started_at, ended_at`

// PostgreSQLMachineRepository implements machine persistence for PostgreSQL.
type PostgreSQLMachineRepository struct {
	db *sql.DB
}

// NewPostgreSQLMachineRepository creates a new PostgreSQL machine repository.
func NewPostgreSQLMachineRepository(db *sql.DB) *PostgreSQLMachineRepository {
	return &PostgreSQLMachineRepository{db: db}
}

// CreateSession inserts a control session.
func (p *PostgreSQLMachineRepository) CreateSession(
	ctx context.Context,
	session *machineDomain.ControlSession,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO machine_control_sessions (id, machine_principal_id,
			  operator_principal_id, mode, status, started_at, ended_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		session.ID,
		session.MachinePrincipalID,
		session.OperatorPrincipalID,
		session.Mode,
		session.Status,
		session.StartedAt,
		session.EndedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create machine control session")
	}
	return nil
}

// GetSessionForUpdate retrieves a session and row-locks it for the enclosing
// transaction, serializing concurrent transitions on the same session.
func (p *PostgreSQLMachineRepository) GetSessionForUpdate(
	ctx context.Context,
	sessionID uuid.UUID,
) (*machineDomain.ControlSession, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + sessionColumns + ` FROM machine_control_sessions
			  WHERE id = $1 FOR UPDATE`

	return scanSessionPG(querier.QueryRowContext(ctx, query, sessionID))
}

// GetSession retrieves a session by ID.
func (p *PostgreSQLMachineRepository) GetSession(
	ctx context.Context,
	sessionID uuid.UUID,
) (*machineDomain.ControlSession, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + sessionColumns + ` FROM machine_control_sessions WHERE id = $1`

	return scanSessionPG(querier.QueryRowContext(ctx, query, sessionID))
}

// UpdateSessionStatus transitions a session to a terminal status.
func (p *PostgreSQLMachineRepository) UpdateSessionStatus(
	ctx context.Context,
	sessionID uuid.UUID,
	status machineDomain.SessionStatus,
	endedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE machine_control_sessions SET status = $1, ended_at = $2 WHERE id = $3`

	_, err := querier.ExecContext(ctx, query, status, endedAt, sessionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update machine control session")
	}
	return nil
}

// HasActiveSupervisedSession reports whether the principal is involved in an
// active session in a human-in-the-loop mode, as operator or as machine.
func (p *PostgreSQLMachineRepository) HasActiveSupervisedSession(
	ctx context.Context,
	principalID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (
			  SELECT 1 FROM machine_control_sessions
			  WHERE (machine_principal_id = $1 OR operator_principal_id = $1)
			  AND status = 'active' AND mode <> 'autonomous')`

	var exists bool
	err := querier.QueryRowContext(ctx, query, principalID).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check supervised session")
	}
	return exists, nil
}

// ExpireStaleSessions times out active sessions started before the cutoff and
// returns how many were transitioned.
func (p *PostgreSQLMachineRepository) ExpireStaleSessions(
	ctx context.Context,
	cutoff time.Time,
	endedAt time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE machine_control_sessions SET status = 'timed_out', ended_at = $1
			  WHERE status = 'active' AND started_at < $2`

	result, err := querier.ExecContext(ctx, query, endedAt, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to expire machine control sessions")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired sessions")
	}
	return rows, nil
}

// CreateCertification inserts a certification record.
func (p *PostgreSQLMachineRepository) CreateCertification(
	ctx context.Context,
	certification *machineDomain.Certification,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO machine_certifications (id, principal_id, certification_code,
			  issued_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		certification.ID,
		certification.PrincipalID,
		certification.CertificationCode,
		certification.IssuedAt,
		certification.ExpiresAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create certification")
	}
	return nil
}

// ListCurrentCertificationCodes returns the certification codes currently held
// by a principal.
func (p *PostgreSQLMachineRepository) ListCurrentCertificationCodes(
	ctx context.Context,
	principalID uuid.UUID,
	now time.Time,
) ([]string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT certification_code FROM machine_certifications
			  WHERE principal_id = $1 AND (expires_at IS NULL OR expires_at > $2)`

	rows, err := querier.QueryContext(ctx, query, principalID, now)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list certifications")
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan certification")
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate certifications")
	}
	return codes, nil
}

func scanSessionPG(row *sql.Row) (*machineDomain.ControlSession, error) {
	var session machineDomain.ControlSession
	var endedAt sql.NullTime

	err := row.Scan(
		&session.ID,
		&session.MachinePrincipalID,
		&session.OperatorPrincipalID,
		&session.Mode,
		&session.Status,
		&session.StartedAt,
		&endedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, machineDomain.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get machine control session")
	}

	if endedAt.Valid {
		t := endedAt.Time
		session.EndedAt = &t
	}
	return &session, nil
}
