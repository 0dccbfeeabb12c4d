// Package domain defines the scope hierarchy: the immutable 5-level tree
// (platform -> organization -> tenant -> resource type -> resource) authorization
// decisions are scoped against.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies the level of a scope node.
type Type string

const (
	TypePlatform     Type = "platform"
	TypeOrganization Type = "organization"
	TypeTenant       Type = "tenant"
	TypeResourceType Type = "resource_type"
	TypeResource     Type = "resource"
)

// MaxDepth bounds the parent-chain walk. The hierarchy has five levels; a longer
// chain means corrupted data, not a deeper tree.
const MaxDepth = 5

// Scope is a node in the hierarchy. Nodes are immutable once created: the tree
// only grows, so ancestry computed by parent-chain walk can never go stale.
type Scope struct {
	ID uuid.UUID
	// Type is the hierarchy level of this node.
	Type Type
	// ParentID is nil only for the single platform root.
	ParentID *uuid.UUID
	// ExternalRef ties the node to the collaborator's identifier: the tenant
	// UUID for tenant nodes, the resource-type name ("service_runs") for
	// resource-type nodes, the resource id for resource nodes.
	ExternalRef string
	CreatedAt   time.Time
}

// Ref is how collaborators name a scope in an authorization call. Either ScopeID
// points at an existing node, or the TenantID/ResourceType/ResourceKey triple
// describes a path whose resource-type and resource nodes are auto-vivified on
// first reference.
type Ref struct {
	ScopeID      *uuid.UUID
	TenantID     *uuid.UUID
	ResourceType string
	ResourceKey  string
}

// IsZero reports whether the ref names nothing at all.
func (r Ref) IsZero() bool {
	return r.ScopeID == nil && r.TenantID == nil && r.ResourceType == "" && r.ResourceKey == ""
}
