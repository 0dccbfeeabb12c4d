// Package repository mirrors the compiled capability catalog into the database
// for PostgreSQL and MySQL. The seeded tables exist for reporting and foreign
// keys; decisions always evaluate against the compiled definitions.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	catalogDomain "github.com/glennballman/Community-Canvas-sub004/internal/catalog/domain"
	"github.com/glennballman/Community-Canvas-sub004/internal/database"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
)

// PostgreSQLCatalogRepository seeds the catalog tables on PostgreSQL.
type PostgreSQLCatalogRepository struct {
	db *sql.DB
}

// NewPostgreSQLCatalogRepository creates a new PostgreSQL catalog repository.
func NewPostgreSQLCatalogRepository(db *sql.DB) *PostgreSQLCatalogRepository {
	return &PostgreSQLCatalogRepository{db: db}
}

// Seed upserts every compiled capability, role, role membership, and condition
// definition. Idempotent: re-running after a release updates changed rows and
// leaves the rest alone. Rows for codes no longer in the catalog are kept so
// old audit records and grants stay explicable.
func (p *PostgreSQLCatalogRepository) Seed(ctx context.Context) error {
	querier := database.GetTx(ctx, p.db)
	now := time.Now().UTC()

	capabilityQuery := `INSERT INTO capabilities (code, domain, qualifier, action, risk_tier,
		requires_human_supervision, requires_safety_certification, certification_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (code) DO UPDATE SET
		domain = EXCLUDED.domain,
		qualifier = EXCLUDED.qualifier,
		action = EXCLUDED.action,
		risk_tier = EXCLUDED.risk_tier,
		requires_human_supervision = EXCLUDED.requires_human_supervision,
		requires_safety_certification = EXCLUDED.requires_safety_certification,
		certification_code = EXCLUDED.certification_code`

	for _, capability := range catalogDomain.All() {
		_, err := querier.ExecContext(
			ctx,
			capabilityQuery,
			capability.Code,
			capability.Domain,
			string(capability.Qualifier),
			capability.Action,
			string(capability.Risk),
			capability.RequiresHumanSupervision,
			capability.RequiresSafetyCertification,
			capability.CertificationCode,
			now,
		)
		if err != nil {
			return apperrors.Wrap(err, "failed to seed capability")
		}
	}

	roleQuery := `INSERT INTO roles (name, scope_kind, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET scope_kind = EXCLUDED.scope_kind`

	roleCapabilityQuery := `INSERT INTO role_capabilities (role_name, capability_code)
		VALUES ($1, $2)
		ON CONFLICT (role_name, capability_code) DO NOTHING`

	for _, role := range catalogDomain.AllRoles() {
		if _, err := querier.ExecContext(ctx, roleQuery, role.Name, string(role.ScopeKind), now); err != nil {
			return apperrors.Wrap(err, "failed to seed role")
		}
		// Memberships removed from a role are deleted so the mirror matches
		// the compiled bundle exactly.
		_, err := querier.ExecContext(ctx,
			`DELETE FROM role_capabilities WHERE role_name = $1 AND capability_code != ALL($2)`,
			role.Name, pq.Array(role.Capabilities))
		if err != nil {
			return apperrors.Wrap(err, "failed to prune role capabilities")
		}
		for _, code := range role.Capabilities {
			if _, err := querier.ExecContext(ctx, roleCapabilityQuery, role.Name, code); err != nil {
				return apperrors.Wrap(err, "failed to seed role capability")
			}
		}
	}

	conditionQuery := `INSERT INTO condition_definitions (key, description, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET description = EXCLUDED.description`

	for _, definition := range catalogDomain.ConditionRegistry() {
		_, err := querier.ExecContext(ctx, conditionQuery, definition.Key, definition.Description, now)
		if err != nil {
			return apperrors.Wrap(err, "failed to seed condition definition")
		}
	}

	return nil
}
