package driven

import (
	"context"

	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

// ExportStore defines the driven port for the per-PR export directory: one
// markdown file per issue or comment plus a derived summary file.
type ExportStore interface {
	// ResetPR clears the issues/ and comments/ subdirectories for a fresh
	// download, creating the PR directory if needed.
	ResetPR(ctx context.Context, prNumber int) error
	WriteIssue(ctx context.Context, prNumber int, issue model.Issue) error
	WriteComment(ctx context.Context, prNumber int, comment model.Comment) error
	WriteSummary(ctx context.Context, prNumber int, summary model.Summary) error
	// RebuildSummary recounts issue and comment files on disk and rewrites
	// summary.md, preserving the PR header fields of the previous summary.
	RebuildSummary(ctx context.Context, prNumber int) (*model.Summary, error)

	// ListIssueFiles returns issue records sorted by sequence number.
	ListIssueFiles(ctx context.Context, prNumber int) ([]model.IssueFile, error)
	// ListCommentFiles returns comment records sorted by sequence number.
	ListCommentFiles(ctx context.Context, prNumber int) ([]model.CommentFile, error)
	// ReadIssue parses an issue file back into its fields. The returned
	// issue's ThreadID is empty when the file lacks a thread ID line.
	ReadIssue(ctx context.Context, file model.IssueFile) (*model.Issue, error)
	// ReadFile returns the raw content of an exported file.
	ReadFile(ctx context.Context, path string) (string, error)
	// MarkResolved flips an unresolved issue file to resolved: the checkbox
	// line is rewritten and the file renamed in one atomic transition.
	// The updated record is returned.
	MarkResolved(ctx context.Context, file model.IssueFile) (model.IssueFile, error)
}
