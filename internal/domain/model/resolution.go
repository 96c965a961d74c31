package model

// Resolution is the two-state lifecycle of an exported issue file. The value is
// persisted redundantly in the filename suffix and the checkbox line inside the
// file; both are updated in a single atomic transition so they never disagree.
type Resolution string

const (
	ResolutionUnresolved Resolution = "unresolved"
	ResolutionResolved   Resolution = "resolved"
)
