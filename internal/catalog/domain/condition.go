package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// ConditionContext carries the request facts conditions are evaluated against.
// The evaluator assembles it per call; conditions never reach into ambient state.
type ConditionContext struct {
	// Now is the evaluation instant (UTC).
	Now time.Time
	// AmountCents is the monetary amount of the request, when the caller
	// supplied one. A max_amount_cents condition is unsatisfied without it.
	AmountCents *int64
	// Certifications holds the current certification codes of the acting
	// principal.
	Certifications []string
}

// Condition is one evaluable restriction attached to a grant. The set of kinds
// is closed: any condition key outside this file is unrecognized and makes the
// owning grant unevaluable (hard fail), never silently ignored.
type Condition interface {
	Key() string
	Satisfied(cc ConditionContext) bool
}

// UnknownConditionKeyError marks a grant condition payload that uses a key
// absent from the registry. An unrecognized condition cannot be assumed safe,
// so evaluation must hard-fail rather than skip it.
type UnknownConditionKeyError struct {
	Key string
}

func (e *UnknownConditionKeyError) Error() string {
	return fmt.Sprintf("unknown condition key %q", e.Key)
}

// MaxAmountCondition caps the monetary amount of the request.
type MaxAmountCondition struct {
	LimitCents int64
}

func (c MaxAmountCondition) Key() string { return "max_amount_cents" }

// Satisfied requires an amount at or under the limit. A request without an
// amount fails conservatively.
func (c MaxAmountCondition) Satisfied(cc ConditionContext) bool {
	return cc.AmountCents != nil && *cc.AmountCents <= c.LimitCents
}

// TimeWindowCondition restricts the grant to an absolute time window.
type TimeWindowCondition struct {
	NotBefore time.Time
	NotAfter  time.Time
}

func (c TimeWindowCondition) Key() string { return "time_window" }

func (c TimeWindowCondition) Satisfied(cc ConditionContext) bool {
	if cc.Now.Before(c.NotBefore) {
		return false
	}
	return !cc.Now.After(c.NotAfter)
}

// WeekdayCondition restricts the grant to certain days of the week (UTC).
type WeekdayCondition struct {
	Days []time.Weekday
}

func (c WeekdayCondition) Key() string { return "allowed_weekdays" }

func (c WeekdayCondition) Satisfied(cc ConditionContext) bool {
	return slices.Contains(c.Days, cc.Now.UTC().Weekday())
}

// CertificationCondition requires the acting principal to hold a certification.
type CertificationCondition struct {
	Code string
}

func (c CertificationCondition) Key() string { return "required_certification" }

func (c CertificationCondition) Satisfied(cc ConditionContext) bool {
	return slices.Contains(cc.Certifications, c.Code)
}

// ConditionDefinition describes one registered condition kind for the seeded
// condition_definitions table and operator tooling.
type ConditionDefinition struct {
	Key         string
	Description string
}

// ConditionRegistry returns the closed set of recognized condition kinds.
func ConditionRegistry() []ConditionDefinition {
	return []ConditionDefinition{
		{Key: "max_amount_cents", Description: "maximum request amount in cents"},
		{Key: "time_window", Description: "absolute RFC3339 not_before/not_after window"},
		{Key: "allowed_weekdays", Description: "permitted UTC weekdays"},
		{Key: "required_certification", Description: "certification code the principal must hold"},
	}
}

// timeWindowPayload is the wire shape of a time_window condition.
type timeWindowPayload struct {
	NotBefore time.Time `json:"not_before"`
	NotAfter  time.Time `json:"not_after"`
}

// weekdayNames maps payload strings to weekdays.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseConditions decodes a grant's condition payload into the closed tagged
// union of condition kinds. A nil or empty payload yields no conditions. Any key
// absent from the registry returns *UnknownConditionKeyError; malformed values
// for known keys are likewise errors, since a condition that cannot be decoded
// cannot be evaluated.
func ParseConditions(payload []byte) ([]Condition, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("condition payload is not a JSON object: %w", err)
	}

	// Sorted keys keep parse errors deterministic across calls.
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conditions := make([]Condition, 0, len(keys))
	for _, key := range keys {
		value := raw[key]
		switch key {
		case "max_amount_cents":
			var limit int64
			if err := json.Unmarshal(value, &limit); err != nil {
				return nil, fmt.Errorf("max_amount_cents must be an integer: %w", err)
			}
			if limit < 0 {
				return nil, fmt.Errorf("max_amount_cents must not be negative")
			}
			conditions = append(conditions, MaxAmountCondition{LimitCents: limit})

		case "time_window":
			var tw timeWindowPayload
			if err := json.Unmarshal(value, &tw); err != nil {
				return nil, fmt.Errorf("time_window must hold RFC3339 not_before/not_after: %w", err)
			}
			if tw.NotBefore.IsZero() || tw.NotAfter.IsZero() || tw.NotAfter.Before(tw.NotBefore) {
				return nil, fmt.Errorf("time_window bounds are missing or inverted")
			}
			conditions = append(conditions, TimeWindowCondition{NotBefore: tw.NotBefore, NotAfter: tw.NotAfter})

		case "allowed_weekdays":
			var names []string
			if err := json.Unmarshal(value, &names); err != nil {
				return nil, fmt.Errorf("allowed_weekdays must be a string array: %w", err)
			}
			if len(names) == 0 {
				return nil, fmt.Errorf("allowed_weekdays must not be empty")
			}
			days := make([]time.Weekday, 0, len(names))
			for _, name := range names {
				day, ok := weekdayNames[strings.ToLower(name)]
				if !ok {
					return nil, fmt.Errorf("unknown weekday %q", name)
				}
				days = append(days, day)
			}
			conditions = append(conditions, WeekdayCondition{Days: days})

		case "required_certification":
			var code string
			if err := json.Unmarshal(value, &code); err != nil || code == "" {
				return nil, fmt.Errorf("required_certification must be a non-empty string")
			}
			conditions = append(conditions, CertificationCondition{Code: code})

		default:
			return nil, &UnknownConditionKeyError{Key: key}
		}
	}

	return conditions, nil
}
