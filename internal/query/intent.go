// Package query maps free-text questions (Bengali/English mixed) onto a
// bounded set of filter, sort, and limit intents. Matching is literal
// case-insensitive substring containment, with no tokenization or negation.
package query

import (
	"strings"

	"selectly/internal/domain"
)

// DefaultLimit is the shortlist size when no count phrase is present.
const DefaultLimit = 5

// Filter is one narrowing step of a plan.
type Filter struct {
	Name string
	Keep func(domain.Supplier) bool
}

// Plan is the interpreted form of a question: filters to apply in order,
// whether to pre-sort candidates by ascending price, and how many results
// to return.
type Plan struct {
	Filters        []Filter
	PriceAscending bool
	Limit          int
}

type filterIntent struct {
	name     string
	triggers []string
	keep     func(domain.Supplier) bool
}

// The check order is fixed: locations, then compliance tokens, then
// quality. Filters chain, each narrowing the current candidate set.
var filterIntents = []filterIntent{
	{name: "location:dhaka", triggers: []string{"dhaka"}, keep: locationContains("dhaka")},
	{name: "location:chittagong", triggers: []string{"chittagong"}, keep: locationContains("chittagong")},
	{name: "compliance:oeko-tex", triggers: []string{"oeko-tex"}, keep: complianceContains("OEKO-TEX")},
	{name: "compliance:bsci", triggers: []string{"bsci"}, keep: complianceContains("BSCI")},
	{name: "compliance:iso", triggers: []string{"iso"}, keep: complianceContains("ISO")},
	{name: "quality:min8", triggers: []string{"quality", "কোয়ালিটি"}, keep: minQuality(8)},
}

var priceSortTriggers = []string{"কম দাম", "low price", "cheap"}

// First match wins, so the 3-result phrases take precedence when a
// question somehow contains both.
var limitIntents = []struct {
	limit    int
	triggers []string
}{
	{limit: 3, triggers: []string{"top 3", "টপ 3", "3 টা"}},
	{limit: 10, triggers: []string{"top 10", "টপ 10"}},
}

// Interpret derives a ranking plan from a question. It is pure: the same
// question always yields the same plan.
func Interpret(question string) Plan {
	q := strings.ToLower(question)
	plan := Plan{Limit: DefaultLimit}
	for _, in := range filterIntents {
		if containsAny(q, in.triggers) {
			plan.Filters = append(plan.Filters, Filter{Name: in.name, Keep: in.keep})
		}
	}
	plan.PriceAscending = containsAny(q, priceSortTriggers)
	for _, in := range limitIntents {
		if containsAny(q, in.triggers) {
			plan.Limit = in.limit
			break
		}
	}
	return plan
}

func containsAny(q string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

func locationContains(sub string) func(domain.Supplier) bool {
	return func(s domain.Supplier) bool {
		return strings.Contains(strings.ToLower(s[domain.FieldLocation]), sub)
	}
}

// Compliance tokens match the raw field case-sensitively ("OEKO-TEX",
// "BSCI", "ISO"), while the trigger itself is matched case-insensitively.
func complianceContains(token string) func(domain.Supplier) bool {
	return func(s domain.Supplier) bool {
		return strings.Contains(s[domain.FieldCompliance], token)
	}
}

func minQuality(min int) func(domain.Supplier) bool {
	return func(s domain.Supplier) bool {
		return s.Int(domain.FieldQuality) >= min
	}
}
