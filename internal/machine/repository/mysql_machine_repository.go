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

// MySQLMachineRepository implements machine persistence for MySQL.
type MySQLMachineRepository struct {
	db *sql.DB
}

// NewMySQLMachineRepository creates a new MySQL machine repository.
func NewMySQLMachineRepository(db *sql.DB) *MySQLMachineRepository {
	return &MySQLMachineRepository{db: db}
}

// CreateSession inserts a control session.
func (m *MySQLMachineRepository) CreateSession(
	ctx context.Context,
	session *machineDomain.ControlSession,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO machine_control_sessions (id, machine_principal_id,
			  operator_principal_id, mode, status, started_at, ended_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		session.ID.String(),
		session.MachinePrincipalID.String(),
		session.OperatorPrincipalID.String(),
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
// transaction.
func (m *MySQLMachineRepository) GetSessionForUpdate(
	ctx context.Context,
	sessionID uuid.UUID,
) (*machineDomain.ControlSession, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + sessionColumns + ` FROM machine_control_sessions
			  WHERE id = ? FOR UPDATE`

	return scanSessionMySQL(querier.QueryRowContext(ctx, query, sessionID.String()))
}

// GetSession retrieves a session by ID.
func (m *MySQLMachineRepository) GetSession(
	ctx context.Context,
	sessionID uuid.UUID,
) (*machineDomain.ControlSession, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + sessionColumns + ` FROM machine_control_sessions WHERE id = ?`

	return scanSessionMySQL(querier.QueryRowContext(ctx, query, sessionID.String()))
}

// UpdateSessionStatus transitions a session to a terminal status.
func (m *MySQLMachineRepository) UpdateSessionStatus(
	ctx context.Context,
	sessionID uuid.UUID,
	status machineDomain.SessionStatus,
	endedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE machine_control_sessions SET status = ?, ended_at = ? WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, status, endedAt, sessionID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to update machine control session")
	}
	return nil
}

// HasActiveSupervisedSession reports whether the principal is involved in an
// active session in a human-in-the-loop mode, as operator or as machine.
func (m *MySQLMachineRepository) HasActiveSupervisedSession(
	ctx context.Context,
	principalID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS (
			  SELECT 1 FROM machine_control_sessions
			  WHERE (machine_principal_id = ? OR operator_principal_id = ?)
			  AND status = 'active' AND mode <> 'autonomous')`

	var exists bool
	err := querier.QueryRowContext(ctx, query, principalID.String(), principalID.String()).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check supervised session")
	}
	return exists, nil
}

// ExpireStaleSessions times out active sessions started before the cutoff.
func (m *MySQLMachineRepository) ExpireStaleSessions(
	ctx context.Context,
	cutoff time.Time,
	endedAt time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE machine_control_sessions SET status = 'timed_out', ended_at = ?
			  WHERE status = 'active' AND started_at < ?`

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
func (m *MySQLMachineRepository) CreateCertification(
	ctx context.Context,
	certification *machineDomain.Certification,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO machine_certifications (id, principal_id, certification_code,
			  issued_at, expires_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		certification.ID.String(),
		certification.PrincipalID.String(),
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
func (m *MySQLMachineRepository) ListCurrentCertificationCodes(
	ctx context.Context,
	principalID uuid.UUID,
	now time.Time,
) ([]string, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT certification_code FROM machine_certifications
			  WHERE principal_id = ? AND (expires_at IS NULL OR expires_at > ?)`

	rows, err := querier.QueryContext(ctx, query, principalID.String(), now)
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

func scanSessionMySQL(row *sql.Row) (*machineDomain.ControlSession, error) {
	var session machineDomain.ControlSession
	var id, machineID, operatorID string
	var endedAt sql.NullTime

	err := row.Scan(
		&id,
		&machineID,
		&operatorID,
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

	if session.ID, err = uuid.Parse(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse session id")
	}
	if session.MachinePrincipalID, err = uuid.Parse(machineID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse machine principal id")
	}
	if session.OperatorPrincipalID, err = uuid.Parse(operatorID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse operator principal id")
	}
	if endedAt.Valid {
		t := endedAt.Time
		session.EndedAt = &t
	}
	return &session, nil
}
