package domain

import (
	"context"
	"strconv"
	"strings"
)

// CSV header fields the analyzer understands. Spelling is exact and
// case-sensitive; unrecognized columns ride along unscored.
const (
	FieldName          = "Supplier Name"
	FieldLocation      = "Location"
	FieldPrice         = "Price per meter (USD)"
	FieldLeadTime      = "Lead Time days"
	FieldQuality       = "Quality Rating"
	FieldReliability   = "Reliability (%)"
	FieldFinancial     = "Financial Stability"
	FieldCommunication = "Communication Score"
	FieldPastPerf      = "Past Performance"
	FieldCompliance    = "Sustainability Compliance"
)

// ComplianceNone marks a supplier with no sustainability compliance.
const ComplianceNone = "None"

// Supplier is one CSV data row, keyed by header field. Fields a short row
// did not provide are simply absent.
type Supplier map[string]string

// Float returns the named field as a float under the lenient-zero policy.
// Only the leading numeric prefix is read, so "2.5 USD" is 2.5; a missing
// or non-numeric value is 0, never an error. Scoring degrades silently, it
// does not reject records.
func (s Supplier) Float(field string) float64 {
	v, err := strconv.ParseFloat(numericPrefix(strings.TrimSpace(s[field]), true), 64)
	if err != nil {
		return 0
	}
	return v
}

// Int returns the named field as an integer under the lenient-zero policy.
// Only the leading integer prefix is read, so "90%" is 90 and "8.9" is 8;
// a missing or non-numeric value is 0.
func (s Supplier) Int(field string) int {
	v, err := strconv.Atoi(numericPrefix(strings.TrimSpace(s[field]), false))
	if err != nil {
		return 0
	}
	return v
}

// numericPrefix returns the longest prefix of raw that reads as a number:
// an optional sign, digits, and, when decimal is set, one fractional part.
func numericPrefix(raw string, decimal bool) string {
	i := 0
	if i < len(raw) && (raw[i] == '+' || raw[i] == '-') {
		i++
	}
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	if decimal && i < len(raw) && raw[i] == '.' {
		j := i + 1
		for j < len(raw) && raw[j] >= '0' && raw[j] <= '9' {
			j++
		}
		if j > i+1 {
			i = j
		}
	}
	return raw[:i]
}

// ScoredSupplier pairs a supplier with its calculated fitness score. Scores
// are ephemeral, recomputed on every query and never persisted.
type ScoredSupplier struct {
	Supplier Supplier
	Score    float64
}

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the session transcript. Turns are append-only;
// once recorded they are never mutated.
type Turn struct {
	Role    Role
	Content string
}

// Enricher produces optional commentary on a shortlist. Enrichment is
// best-effort: callers discard failures and deliver the unenriched reply.
type Enricher interface {
	Insight(ctx context.Context, shortlist []ScoredSupplier, question string) (string, error)
}
