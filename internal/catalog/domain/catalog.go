package domain

import "sort"

// def builds a catalog entry from a code, deriving domain/qualifier/action.
// Panics on a malformed code: the catalog is compiled data and a bad entry is a
// programming error, not a runtime condition.
func def(code string, risk RiskTier, opts ...func(*Capability)) Capability {
	d, q, a, err := ParseCode(code)
	if err != nil {
		panic(err)
	}
	c := Capability{Code: code, Domain: d, Qualifier: q, Action: a, Risk: risk}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// withSupervision flags a capability as requiring an active human control session.
func withSupervision() func(*Capability) {
	return func(c *Capability) { c.RequiresHumanSupervision = true }
}

// withCertification flags a capability as requiring a current certification record.
func withCertification(code string) func(*Capability) {
	return func(c *Capability) {
		c.RequiresSafetyCertification = true
		c.CertificationCode = code
	}
}

// catalog is the fixed vocabulary of atomic permissions for the Community Canvas
// platform. Immutable once published; additions ship as code changes.
var catalog = []Capability{
	// Tenant administration
	def("tenant.view", RiskLow),
	def("tenant.invite", RiskMedium),
	def("tenant.configure", RiskHigh),

	// Reservations
	def("reservations.create", RiskLow),
	def("reservations.own.view", RiskLow),
	def("reservations.all.view", RiskMedium),
	def("reservations.own.update", RiskLow),
	def("reservations.all.update", RiskMedium),
	def("reservations.own.cancel", RiskLow),
	def("reservations.all.cancel", RiskMedium),

	// Jobs
	def("jobs.create", RiskLow),
	def("jobs.own.view", RiskLow),
	def("jobs.all.view", RiskMedium),
	def("jobs.own.update", RiskLow),
	def("jobs.all.update", RiskMedium),
	def("jobs.own.close", RiskLow),
	def("jobs.all.close", RiskMedium),

	// Service runs
	def("service_runs.schedule", RiskMedium),
	def("service_runs.own.view", RiskLow),
	def("service_runs.all.view", RiskMedium),
	def("service_runs.own.update", RiskLow),
	def("service_runs.all.update", RiskMedium),

	// Emergency runs
	def("emergency_runs.initiate", RiskCritical),
	def("emergency_runs.all.view", RiskMedium),

	// Documents
	def("documents.own.view", RiskLow),
	def("documents.all.view", RiskMedium),
	def("documents.own.export", RiskLow),
	def("documents.all.export", RiskMedium),

	// Machines. Operation and dispatch are safety-gated; emergency stop is
	// deliberately ungated so it can never be blocked by a missing record.
	def("machines.register", RiskMedium),
	def("machines.own.view", RiskLow),
	def("machines.all.view", RiskMedium),
	def("machines.operate", RiskHigh, withSupervision()),
	def("machines.teleop", RiskHigh, withSupervision(), withCertification("teleop_operator")),
	def("machines.dispatch", RiskCritical, withSupervision(), withCertification("autonomous_dispatch")),
	def("machines.emergency_stop", RiskCritical),

	// Billing
	def("billing.view", RiskMedium),
	def("billing.charge", RiskCritical),

	// Engine administration
	def("principals.view", RiskMedium),
	def("grants.manage", RiskCritical),
	def("audit.view", RiskHigh),
}

// byCode indexes the catalog for constant-time lookup.
var byCode = func() map[string]Capability {
	m := make(map[string]Capability, len(catalog))
	for _, c := range catalog {
		if _, dup := m[c.Code]; dup {
			panic("duplicate capability code: " + c.Code)
		}
		m[c.Code] = c
	}
	return m
}()

// Lookup returns the capability for a code. Unknown codes return ok=false; the
// evaluator maps that to Deny, never to an error that could be misread as Allow.
func Lookup(code string) (Capability, bool) {
	c, ok := byCode[code]
	return c, ok
}

// All returns the full catalog sorted by code. Used by seeding and by tests.
func All() []Capability {
	out := make([]Capability, len(catalog))
	copy(out, catalog)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
