package model

import "time"

// Comment is a non-resolvable PR-level comment (from the Issues API) rendered
// as a local markdown file. It participates in no thread and has no resolution
// state.
type Comment struct {
	Seq       int
	Author    string
	Body      string
	URL       string
	CreatedAt time.Time
}
