package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	catalogDomain "github.com/glennballman/Community-Canvas-sub004/internal/catalog/domain"
	"github.com/glennballman/Community-Canvas-sub004/internal/database"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
)

// MySQLCatalogRepository seeds the catalog tables on MySQL.
type MySQLCatalogRepository struct {
	db *sql.DB
}

// NewMySQLCatalogRepository creates a new MySQL catalog repository.
func NewMySQLCatalogRepository(db *sql.DB) *MySQLCatalogRepository {
	return &MySQLCatalogRepository{db: db}
}

// Seed upserts every compiled capability, role, role membership, and condition
// definition. Idempotent; rows for codes no longer in the catalog are kept so
// old audit records and grants stay explicable.
func (m *MySQLCatalogRepository) Seed(ctx context.Context) error {
	querier := database.GetTx(ctx, m.db)
	now := time.Now().UTC()

	capabilityQuery := `INSERT INTO capabilities (code, domain, qualifier, action, risk_tier,
		requires_human_supervision, requires_safety_certification, certification_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		domain = VALUES(domain),
		qualifier = VALUES(qualifier),
		action = VALUES(action),
		risk_tier = VALUES(risk_tier),
		requires_human_supervision = VALUES(requires_human_supervision),
		requires_safety_certification = VALUES(requires_safety_certification),
		certification_code = VALUES(certification_code)`

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
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE scope_kind = VALUES(scope_kind)`

	roleCapabilityQuery := `INSERT IGNORE INTO role_capabilities (role_name, capability_code)
		VALUES (?, ?)`

	for _, role := range catalogDomain.AllRoles() {
		if _, err := querier.ExecContext(ctx, roleQuery, role.Name, string(role.ScopeKind), now); err != nil {
			return apperrors.Wrap(err, "failed to seed role")
		}
		// Memberships removed from a role are deleted so the mirror matches
		// the compiled bundle exactly.
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(role.Capabilities)), ",")
		args := make([]interface{}, 0, len(role.Capabilities)+1)
		args = append(args, role.Name)
		for _, code := range role.Capabilities {
			args = append(args, code)
		}
		pruneQuery := `DELETE FROM role_capabilities WHERE role_name = ? AND capability_code NOT IN (` +
			placeholders + `)`
		if _, err := querier.ExecContext(ctx, pruneQuery, args...); err != nil {
			return apperrors.Wrap(err, "failed to prune role capabilities")
		}
		for _, code := range role.Capabilities {
			if _, err := querier.ExecContext(ctx, roleCapabilityQuery, role.Name, code); err != nil {
				return apperrors.Wrap(err, "failed to seed role capability")
			}
		}
	}

	conditionQuery := "INSERT INTO condition_definitions (`key`, description, created_at)" +
		` VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE description = VALUES(description)`

	for _, definition := range catalogDomain.ConditionRegistry() {
		_, err := querier.ExecContext(ctx, conditionQuery, definition.Key, definition.Description, now)
		if err != nil {
			return apperrors.Wrap(err, "failed to seed condition definition")
		}
	}

	return nil
}
