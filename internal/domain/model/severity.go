package model

import "strings"

// Severity classifies a review thread by how urgent the reviewer's finding is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityTrivial  Severity = "trivial"
)

// criticalMarkers and majorMarkers are the phrases automated reviewers embed in
// comment bodies. Matching is case-insensitive; critical wins over major.
var criticalMarkers = []string{
	"⚠️ potential issue",
	"potential issue",
	"critical",
	"security",
	"vulnerability",
	"data loss",
}

var majorMarkers = []string{
	"🛠️ refactor suggestion",
	"refactor suggestion",
	"major",
	"outside diff range",
	"performance",
}

// ClassifySeverity infers a severity from a review comment body by scanning for
// known reviewer marker phrases. Bodies with no marker (including nitpicks)
// classify as trivial.
func ClassifySeverity(body string) Severity {
	lower := strings.ToLower(body)

	for _, m := range criticalMarkers {
		if strings.Contains(lower, m) {
			return SeverityCritical
		}
	}
	for _, m := range majorMarkers {
		if strings.Contains(lower, m) {
			return SeverityMajor
		}
	}
	return SeverityTrivial
}

// ParseSeverity validates a user-supplied severity filter value.
func ParseSeverity(value string) (Severity, bool) {
	switch Severity(strings.ToLower(strings.TrimSpace(value))) {
	case SeverityCritical:
		return SeverityCritical, true
	case SeverityMajor:
		return SeverityMajor, true
	case SeverityTrivial:
		return SeverityTrivial, true
	}
	return "", false
}
