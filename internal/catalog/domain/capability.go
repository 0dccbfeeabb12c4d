// Package domain defines the capability catalog: the fixed vocabulary of atomic
// permissions, the role bundles that expand into them, and the closed registry of
// grant condition kinds.
//
// The catalog is compiled data. It is never editable at runtime; the seed-catalog
// command mirrors it into the database for reporting and foreign keys, but every
// authorization decision evaluates against the compiled definitions.
package domain

import (
	"fmt"
	"strings"
)

// Qualifier narrows a resource-scoped capability to owned resources or to all
// resources in scope.
type Qualifier string

const (
	QualifierNone Qualifier = ""
	QualifierOwn  Qualifier = "own"
	QualifierAll  Qualifier = "all"
)

// RiskTier classifies how dangerous a capability is when misused.
type RiskTier string

const (
	RiskLow      RiskTier = "low"
	RiskMedium   RiskTier = "medium"
	RiskHigh     RiskTier = "high"
	RiskCritical RiskTier = "critical"
)

// Capability is an atomic permission code with the form "domain.action" or
// "domain.{own|all}.action". Capabilities are immutable once published.
type Capability struct {
	Code      string
	Domain    string
	Qualifier Qualifier
	Action    string
	Risk      RiskTier

	// RequiresHumanSupervision demands an active, non-autonomous machine
	// control session at evaluation time.
	RequiresHumanSupervision bool
	// RequiresSafetyCertification demands a current certification record for
	// CertificationCode at evaluation time.
	RequiresSafetyCertification bool
	// CertificationCode names the certification checked by the safety gate.
	// Empty unless RequiresSafetyCertification is set.
	CertificationCode string
}

// SafetyFlagged reports whether the machine safety gate applies to this capability.
func (c Capability) SafetyFlagged() bool {
	return c.RequiresHumanSupervision || c.RequiresSafetyCertification
}

// ParseCode splits a capability code into domain, qualifier, and action.
// Two-segment codes have no qualifier; three-segment codes must use "own" or "all"
// as the middle segment.
func ParseCode(code string) (domain string, qualifier Qualifier, action string, err error) {
	parts := strings.Split(code, ".")
	switch len(parts) {
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return "", "", "", fmt.Errorf("invalid capability code %q", code)
		}
		return parts[0], QualifierNone, parts[1], nil
	case 3:
		q := Qualifier(parts[1])
		if q != QualifierOwn && q != QualifierAll {
			return "", "", "", fmt.Errorf("invalid capability qualifier %q in %q", parts[1], code)
		}
		if parts[0] == "" || parts[2] == "" {
			return "", "", "", fmt.Errorf("invalid capability code %q", code)
		}
		return parts[0], q, parts[2], nil
	default:
		return "", "", "", fmt.Errorf("invalid capability code %q", code)
	}
}
