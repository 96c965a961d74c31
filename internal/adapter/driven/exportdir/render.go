package exportdir

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

// timeFormat is used for all timestamps rendered into export files.
const timeFormat = "2006-01-02 15:04:05 MST"

const (
	checkboxUnresolved = "- [ ] UNRESOLVED"
	checkboxResolved   = "- [x] RESOLVED ✓"
)

// WriteIssue renders one issue file. The write is atomic (temp file then
// rename) so a crash never leaves a half-written record.
func (s *Store) WriteIssue(_ context.Context, prNumber int, issue model.Issue) error {
	path := filepath.Join(s.issuesDir(prNumber), issueFileName(issue.Seq, issue.Severity, issue.Resolution))
	content := s.renderIssue(issue)

	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("writing issue file %s: %w", path, err)
	}
	return nil
}

// WriteComment renders one comment file atomically.
func (s *Store) WriteComment(_ context.Context, prNumber int, comment model.Comment) error {
	path := filepath.Join(s.commentsDir(prNumber), commentFileName(comment.Seq))
	content := s.renderComment(comment)

	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("writing comment file %s: %w", path, err)
	}
	return nil
}

// WriteSummary renders summary.md atomically.
func (s *Store) WriteSummary(_ context.Context, prNumber int, summary model.Summary) error {
	path := filepath.Join(s.PRDir(prNumber), "summary.md")
	content := s.renderSummary(summary)

	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("writing summary file %s: %w", path, err)
	}
	return nil
}

func (s *Store) renderIssue(issue model.Issue) string {
	var b strings.Builder

	if issue.Path != "" {
		fmt.Fprintf(&b, "# Issue %03d: %s:%d\n\n", issue.Seq, issue.Path, issue.Line)
	} else {
		fmt.Fprintf(&b, "# Issue %03d\n\n", issue.Seq)
	}

	fmt.Fprintf(&b, "- Severity: %s\n", issue.Severity)
	fmt.Fprintf(&b, "- Reviewer: %s\n", issue.Author)
	if issue.Path != "" {
		fmt.Fprintf(&b, "- File: `%s`\n", issue.Path)
		fmt.Fprintf(&b, "- Line: %d\n", issue.Line)
	}
	if !issue.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "- Created: %s\n", issue.CreatedAt.In(s.loc).Format(timeFormat))
	}
	if issue.URL != "" {
		fmt.Fprintf(&b, "- URL: %s\n", issue.URL)
	}
	fmt.Fprintf(&b, "- Thread ID: `%s`\n", issue.ThreadID)

	b.WriteString("\n## Comment\n\n")
	b.WriteString(strings.TrimRight(issue.Body, "\n"))
	b.WriteString("\n\n## Status\n\n")

	if issue.Resolution == model.ResolutionResolved {
		b.WriteString(checkboxResolved)
	} else {
		b.WriteString(checkboxUnresolved)
	}
	b.WriteString("\n")

	return b.String()
}

func (s *Store) renderComment(comment model.Comment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Comment %03d\n\n", comment.Seq)
	fmt.Fprintf(&b, "- Author: %s\n", comment.Author)
	if !comment.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "- Created: %s\n", comment.CreatedAt.In(s.loc).Format(timeFormat))
	}
	if comment.URL != "" {
		fmt.Fprintf(&b, "- URL: %s\n", comment.URL)
	}

	b.WriteString("\n")
	b.WriteString(strings.TrimRight(comment.Body, "\n"))
	b.WriteString("\n")

	return b.String()
}

func (s *Store) renderSummary(summary model.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Review Summary for PR #%d\n\n", summary.PRNumber)
	fmt.Fprintf(&b, "- Title: %s\n", summary.PRTitle)
	if summary.PRURL != "" {
		fmt.Fprintf(&b, "- URL: %s\n", summary.PRURL)
	}
	generatedAt := summary.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	fmt.Fprintf(&b, "- Generated: %s\n", generatedAt.In(s.loc).Format(timeFormat))

	b.WriteString("\n## Issues\n\n")
	fmt.Fprintf(&b, "- Total: %d\n", summary.TotalIssues())
	fmt.Fprintf(&b, "- Critical: %d\n", summary.Critical)
	fmt.Fprintf(&b, "- Major: %d\n", summary.Major)
	fmt.Fprintf(&b, "- Trivial: %d\n", summary.Trivial)

	b.WriteString("\n## Resolution\n\n")
	fmt.Fprintf(&b, "- Resolved: %d\n", summary.Resolved)
	fmt.Fprintf(&b, "- Unresolved: %d\n", summary.Unresolved)

	b.WriteString("\n## Comments\n\n")
	fmt.Fprintf(&b, "- Total: %d\n", summary.Comments)

	return b.String()
}
