// Package usecase implements the authorization engine: grant evaluation,
// ownership enforcement, the machine safety gate, and impersonation.
package usecase

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	catalogDomain "github.com/glennballman/Community-Canvas-sub004/internal/catalog/domain"
	engineDomain "github.com/glennballman/Community-Canvas-sub004/internal/engine/domain"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	grantDomain "github.com/glennballman/Community-Canvas-sub004/internal/grant/domain"
	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

// EngineUsecase implements the Engine interface. Every call decides over a
// fresh per-call snapshot of principals, scopes, and grants; nothing about a
// decision is cached between calls.
type EngineUsecase struct {
	principalReader     PrincipalReader
	scopeReader         ScopeReader
	grantReader         GrantReader
	resourceGrantReader ResourceGrantReader
	safetyReader        SafetyReader
	impersonation       Impersonation
	auditRecorder       AuditRecorder
}

// NewEngineUsecase creates a new engine usecase.
func NewEngineUsecase(
	principalReader PrincipalReader,
	scopeReader ScopeReader,
	grantReader GrantReader,
	resourceGrantReader ResourceGrantReader,
	safetyReader SafetyReader,
	impersonation Impersonation,
	auditRecorder AuditRecorder,
) *EngineUsecase {
	return &EngineUsecase{
		principalReader:     principalReader,
		scopeReader:         scopeReader,
		grantReader:         grantReader,
		resourceGrantReader: resourceGrantReader,
		safetyReader:        safetyReader,
		impersonation:       impersonation,
		auditRecorder:       auditRecorder,
	}
}

// evaluation carries the per-call state of one authorize run.
type evaluation struct {
	input      engineDomain.AuthorizeInput
	authCtx    engineDomain.AuthContext
	capability catalogDomain.Capability
	scope      *scopeDomain.Scope

	certifications       []string
	certificationsLoaded bool
}

// Authorize answers one authorization question per the grant evaluation
// algorithm: resolve the acting principal, collect grants along the scope
// chain, expand roles, validate conditions, then pass the candidate Allow
// through the ownership enforcer and the machine safety gate. Every decision,
// including denials, is handed to the audit logger before returning.
func (u *EngineUsecase) Authorize(
	ctx context.Context,
	input engineDomain.AuthorizeInput,
) (*engineDomain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(err, "authorize cancelled")
	}

	ev := &evaluation{
		input:   input,
		authCtx: u.impersonation.Acting(input.SessionID, input.PrincipalID),
	}

	principal, err := u.principalReader.Get(ctx, ev.authCtx.ActingPrincipalID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return u.finish(ev, engineDomain.Deny(engineDomain.ReasonNoPrincipal)), nil
		}
		return nil, err
	}
	if !principal.Active {
		return u.finish(ev, engineDomain.Deny(engineDomain.ReasonNoPrincipal)), nil
	}

	capability, ok := catalogDomain.Lookup(input.CapabilityCode)
	if !ok {
		return u.finish(ev, engineDomain.Deny(engineDomain.ReasonUnknownCapability)), nil
	}
	ev.capability = capability

	scope, err := u.scopeReader.Resolve(ctx, input.ScopeRef)
	if err != nil {
		return nil, err
	}
	ev.scope = scope

	chain, err := u.scopeReader.Chain(ctx, scope.ID)
	if err != nil {
		return nil, err
	}
	scopeIDs := make([]uuid.UUID, 0, len(chain))
	scopeTypes := make(map[uuid.UUID]scopeDomain.Type, len(chain))
	for _, node := range chain {
		scopeIDs = append(scopeIDs, node.ID)
		scopeTypes[node.ID] = node.Type
	}

	grants, err := u.grantReader.ListForPrincipalInScopes(ctx, ev.authCtx.ActingPrincipalID, scopeIDs)
	if err != nil {
		return nil, err
	}

	decision, err := u.evaluateGrants(ctx, ev, grants, scopeTypes)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return u.finish(ev, decision), nil
	}

	if decision, err = u.enforceOwnership(ctx, ev); err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return u.finish(ev, decision), nil
	}

	if decision, err = u.applySafetyGate(ctx, ev); err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return u.finish(ev, decision), nil
	}

	// A cancelled call discards its result; it must never land as Allow.
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(err, "authorize cancelled")
	}

	return u.finish(ev, engineDomain.Allow()), nil
}

// evaluateGrants walks the principal's grants along the scope chain and
// returns the candidate decision. Grants are additive: one satisfied grant is
// an Allow regardless of how many others miss. An unparseable condition
// payload anywhere aborts the whole call as HardFail, because a condition the
// engine cannot understand cannot be assumed safe.
func (u *EngineUsecase) evaluateGrants(
	ctx context.Context,
	ev *evaluation,
	grants []*grantDomain.Grant,
	scopeTypes map[uuid.UUID]scopeDomain.Type,
) (*engineDomain.Decision, error) {
	now := time.Now().UTC()

	var candidate, sawUnmetCondition, sawExpired, sawRevoked bool

	for _, grant := range grants {
		if !grantCarries(grant, ev.capability.Code, scopeTypes) {
			continue
		}
		if grant.Revoked() {
			sawRevoked = true
			continue
		}
		if grant.Expired(now) {
			sawExpired = true
			continue
		}

		conditions, err := catalogDomain.ParseConditions(grant.Conditions)
		if err != nil {
			return engineDomain.HardFail(engineDomain.ReasonUnknownConditionKey), nil
		}

		satisfied, err := u.conditionsSatisfied(ctx, ev, conditions, now)
		if err != nil {
			return nil, err
		}
		if satisfied {
			candidate = true
		} else {
			sawUnmetCondition = true
		}
	}

	if candidate {
		return engineDomain.Allow(), nil
	}
	switch {
	case sawUnmetCondition:
		return engineDomain.Deny(engineDomain.ReasonConditionNotMet), nil
	case sawExpired:
		return engineDomain.Deny(engineDomain.ReasonGrantExpired), nil
	case sawRevoked:
		return engineDomain.Deny(engineDomain.ReasonGrantRevoked), nil
	default:
		return engineDomain.Deny(engineDomain.ReasonCapabilityNotGranted), nil
	}
}

// conditionsSatisfied evaluates a grant's parsed conditions against the
// request facts. Certification codes are fetched once per call, only when a
// condition needs them.
func (u *EngineUsecase) conditionsSatisfied(
	ctx context.Context,
	ev *evaluation,
	conditions []catalogDomain.Condition,
	now time.Time,
) (bool, error) {
	cc := catalogDomain.ConditionContext{
		Now:         now,
		AmountCents: ev.input.Request.AmountCents,
	}
	for _, condition := range conditions {
		if condition.Key() == "required_certification" {
			certs, err := u.loadCertifications(ctx, ev)
			if err != nil {
				return false, err
			}
			cc.Certifications = certs
			break
		}
	}

	for _, condition := range conditions {
		if !condition.Satisfied(cc) {
			return false, nil
		}
	}
	return true, nil
}

// enforceOwnership narrows own-qualified decisions on resource-level targets.
func (u *EngineUsecase) enforceOwnership(
	ctx context.Context,
	ev *evaluation,
) (*engineDomain.Decision, error) {
	if ev.capability.Qualifier != catalogDomain.QualifierOwn ||
		ev.scope.Type != scopeDomain.TypeResource {
		return engineDomain.Allow(), nil
	}

	hasResourceGrant, err := u.resourceGrantReader.Exists(
		ctx, ev.authCtx.ActingPrincipalID, ev.scope.ID, ev.capability.Code)
	if err != nil {
		return nil, err
	}

	return engineDomain.RestrictToOwned(
		ev.authCtx.ActingPrincipalID,
		ev.capability,
		ev.input.Request.ResourceOwnerID,
		hasResourceGrant,
	), nil
}

// applySafetyGate hard-fails safety-flagged capabilities whose supervision or
// certification requirements are unmet, regardless of any Allow computed
// upstream.
func (u *EngineUsecase) applySafetyGate(
	ctx context.Context,
	ev *evaluation,
) (*engineDomain.Decision, error) {
	if !ev.capability.SafetyFlagged() {
		return engineDomain.Allow(), nil
	}

	if ev.capability.RequiresHumanSupervision {
		supervised, err := u.safetyReader.HasActiveSupervisedSession(ctx, ev.authCtx.ActingPrincipalID)
		if err != nil {
			return nil, err
		}
		if !supervised {
			return engineDomain.HardFail(engineDomain.ReasonMachineSafetyUnmet), nil
		}
	}

	if ev.capability.RequiresSafetyCertification {
		certs, err := u.loadCertifications(ctx, ev)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(certs, ev.capability.CertificationCode) {
			return engineDomain.HardFail(engineDomain.ReasonMachineSafetyUnmet), nil
		}
	}

	return engineDomain.Allow(), nil
}

// loadCertifications fetches the acting principal's current certification
// codes at most once per call.
func (u *EngineUsecase) loadCertifications(ctx context.Context, ev *evaluation) ([]string, error) {
	if ev.certificationsLoaded {
		return ev.certifications, nil
	}
	certs, err := u.safetyReader.CurrentCertificationCodes(ctx, ev.authCtx.ActingPrincipalID)
	if err != nil {
		return nil, err
	}
	ev.certifications = certs
	ev.certificationsLoaded = true
	return certs, nil
}

// finish records the decision in the audit trail and returns it.
func (u *EngineUsecase) finish(
	ev *evaluation,
	decision *engineDomain.Decision,
) *engineDomain.Decision {
	record := RecordedDecision{
		PrincipalID:         ev.authCtx.ActingPrincipalID,
		OriginalPrincipalID: ev.authCtx.OriginalPrincipalID,
		CapabilityCode:      ev.input.CapabilityCode,
		ResourceKey:         ev.input.ScopeRef.ResourceKey,
		Effect:              decision.Effect,
		Reason:              decision.Reason,
		RequestID:           ev.input.Request.RequestID,
	}
	if ev.scope != nil {
		id := ev.scope.ID
		record.ScopeID = &id
	}
	u.auditRecorder.Record(record)
	return decision
}

// ListEffectiveCapabilities reports the capability codes the principal's
// active grants carry at a scope. Conditions are not evaluated: the listing
// answers "what could render", never "what is permitted right now".
func (u *EngineUsecase) ListEffectiveCapabilities(
	ctx context.Context,
	principalID uuid.UUID,
	ref scopeDomain.Ref,
) ([]string, error) {
	principal, err := u.principalReader.Get(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if !principal.Active {
		return []string{}, nil
	}

	scope, err := u.scopeReader.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	chain, err := u.scopeReader.Chain(ctx, scope.ID)
	if err != nil {
		return nil, err
	}
	scopeIDs := make([]uuid.UUID, 0, len(chain))
	scopeTypes := make(map[uuid.UUID]scopeDomain.Type, len(chain))
	for _, node := range chain {
		scopeIDs = append(scopeIDs, node.ID)
		scopeTypes[node.ID] = node.Type
	}

	grants, err := u.grantReader.ListForPrincipalInScopes(ctx, principalID, scopeIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	codes := make(map[string]struct{})
	for _, grant := range grants {
		if !grant.Active(now) {
			continue
		}
		for _, capability := range grantCapabilities(grant, scopeTypes) {
			codes[capability.Code] = struct{}{}
		}
	}

	out := make([]string, 0, len(codes))
	for code := range codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out, nil
}

// grantCapabilities expands one grant into the capabilities it carries. Role
// grants expand against the scope kind they were issued at; a role that no
// longer matches its scope kind (stale data) carries nothing.
func grantCapabilities(
	grant *grantDomain.Grant,
	scopeTypes map[uuid.UUID]scopeDomain.Type,
) []catalogDomain.Capability {
	if grant.CapabilityCode != nil {
		if capability, ok := catalogDomain.Lookup(*grant.CapabilityCode); ok {
			return []catalogDomain.Capability{capability}
		}
		return nil
	}
	if grant.RoleName != nil {
		kind := catalogDomain.ScopeKind(scopeTypes[grant.ScopeID])
		capabilities, err := catalogDomain.ExpandRole(*grant.RoleName, kind)
		if err != nil {
			return nil
		}
		return capabilities
	}
	return nil
}

// grantCarries reports whether a grant carries the requested capability,
// expanding role grants.
func grantCarries(
	grant *grantDomain.Grant,
	capabilityCode string,
	scopeTypes map[uuid.UUID]scopeDomain.Type,
) bool {
	for _, capability := range grantCapabilities(grant, scopeTypes) {
		if capability.Code == capabilityCode {
			return true
		}
	}
	return false
}
