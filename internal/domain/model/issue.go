package model

import "time"

// Issue is one resolvable review thread rendered as a local markdown file.
type Issue struct {
	Seq        int
	Severity   Severity
	Resolution Resolution
	ThreadID   string // Opaque GraphQL node ID; required for the resolve mutation.
	Path       string
	Line       int
	Author     string
	Body       string
	URL        string
	CreatedAt  time.Time
}
