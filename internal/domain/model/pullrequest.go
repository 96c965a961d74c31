package model

import "time"

// PullRequest holds the PR metadata needed to head the export and summary.
type PullRequest struct {
	Number    int
	Title     string
	Author    string
	URL       string
	CreatedAt time.Time
}

// ReviewThread is a resolvable review comment thread as fetched from the host,
// before it is classified and rendered into an Issue.
type ReviewThread struct {
	ThreadID   string
	IsResolved bool
	Path       string
	Line       int
	Author     string
	Body       string
	URL        string
	CreatedAt  time.Time
}

// IssueComment is a PR-level general comment as fetched from the host.
type IssueComment struct {
	Author    string
	Body      string
	URL       string
	CreatedAt time.Time
}
