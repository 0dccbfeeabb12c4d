package domain

import (
	"fmt"

	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
)

// ScopeKind mirrors the scope hierarchy levels a role may be granted at.
// Kept here (rather than importing the scope module) so role definitions stay
// self-contained compiled data.
type ScopeKind string

const (
	ScopePlatform     ScopeKind = "platform"
	ScopeOrganization ScopeKind = "organization"
	ScopeTenant       ScopeKind = "tenant"
	ScopeResourceType ScopeKind = "resource_type"
	ScopeResource     ScopeKind = "resource"
)

// Role is a named convenience bundle of capabilities at a given scope kind.
// Roles are sugar only: the evaluator always expands them to capabilities before
// deciding, so a role can never grant anything a direct capability grant could not.
type Role struct {
	Name         string
	ScopeKind    ScopeKind
	Capabilities []string
}

// viewCapabilities is the read-only subset shared by the viewer and coordinator bundles.
var viewCapabilities = []string{
	"tenant.view",
	"reservations.own.view",
	"reservations.all.view",
	"jobs.own.view",
	"jobs.all.view",
	"service_runs.own.view",
	"service_runs.all.view",
	"emergency_runs.all.view",
	"documents.own.view",
	"documents.all.view",
	"machines.own.view",
	"machines.all.view",
	"billing.view",
	"principals.view",
}

// roles is the fixed set of role bundles. Validated against the catalog at
// package init: a role naming an unknown capability is a programming error.
var roles = []Role{
	{
		Name:         "viewer",
		ScopeKind:    ScopeTenant,
		Capabilities: viewCapabilities,
	},
	{
		Name:      "coordinator",
		ScopeKind: ScopeTenant,
		Capabilities: append(append([]string{}, viewCapabilities...),
			"reservations.create",
			"reservations.all.update",
			"reservations.all.cancel",
			"jobs.create",
			"jobs.all.update",
			"jobs.all.close",
			"service_runs.schedule",
			"service_runs.all.update",
		),
	},
	{
		Name:      "tenant_admin",
		ScopeKind: ScopeTenant,
		Capabilities: append(append([]string{}, viewCapabilities...),
			"reservations.create",
			"reservations.all.update",
			"reservations.all.cancel",
			"jobs.create",
			"jobs.all.update",
			"jobs.all.close",
			"service_runs.schedule",
			"service_runs.all.update",
			"tenant.invite",
			"tenant.configure",
			"documents.all.export",
			"grants.manage",
			"audit.view",
		),
	},
	{
		Name:      "machine_operator",
		ScopeKind: ScopeTenant,
		Capabilities: []string{
			"machines.own.view",
			"machines.all.view",
			"machines.operate",
			"machines.teleop",
			"machines.emergency_stop",
		},
	},
	{
		Name:      "platform_admin",
		ScopeKind: ScopePlatform,
		Capabilities: func() []string {
			codes := make([]string, 0, len(catalog))
			for _, c := range catalog {
				codes = append(codes, c.Code)
			}
			return codes
		}(),
	},
}

// roleIndex keys roles by name and scope kind.
var roleIndex = func() map[string]Role {
	m := make(map[string]Role, len(roles))
	for _, r := range roles {
		for _, code := range r.Capabilities {
			if _, ok := byCode[code]; !ok {
				panic(fmt.Sprintf("role %q references unknown capability %q", r.Name, code))
			}
		}
		if _, dup := m[r.Name]; dup {
			panic("duplicate role name: " + r.Name)
		}
		m[r.Name] = r
	}
	return m
}()

// ErrRoleNotFound indicates the named role does not exist in the catalog.
var ErrRoleNotFound = apperrors.Wrap(apperrors.ErrNotFound, "role not found")

// ExpandRole resolves a role name into its capability set. The scope kind the
// role is being applied at must match the role's definition; a viewer bundle
// defined for tenants cannot be attached to a platform grant.
func ExpandRole(name string, kind ScopeKind) ([]Capability, error) {
	r, ok := roleIndex[name]
	if !ok {
		return nil, ErrRoleNotFound
	}
	if r.ScopeKind != kind {
		return nil, fmt.Errorf("role %q is defined for %s scopes, not %s: %w",
			name, r.ScopeKind, kind, apperrors.ErrInvalidInput)
	}
	out := make([]Capability, 0, len(r.Capabilities))
	for _, code := range r.Capabilities {
		out = append(out, byCode[code])
	}
	return out, nil
}

// LookupRole returns the role definition for a name.
func LookupRole(name string) (Role, bool) {
	r, ok := roleIndex[name]
	return r, ok
}

// AllRoles returns the fixed role bundles. Used by seeding and by tests.
func AllRoles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}
