package model

import "time"

// Summary is the derived aggregate view of one PR export. It is regenerated
// after every download and after any resolve batch that changed state; it is
// never the source of truth.
type Summary struct {
	PRNumber    int
	PRTitle     string
	PRURL       string
	GeneratedAt time.Time

	Critical int
	Major    int
	Trivial  int

	Resolved   int
	Unresolved int

	Comments int
}

// TotalIssues returns the issue count across all severities.
func (s Summary) TotalIssues() int {
	return s.Critical + s.Major + s.Trivial
}

// CountIssue adds one issue to the severity and resolution tallies.
func (s *Summary) CountIssue(severity Severity, resolution Resolution) {
	switch severity {
	case SeverityCritical:
		s.Critical++
	case SeverityMajor:
		s.Major++
	case SeverityTrivial:
		s.Trivial++
	}

	if resolution == ResolutionResolved {
		s.Resolved++
	} else {
		s.Unresolved++
	}
}
