package exportdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

var threadIDPattern = regexp.MustCompile("(?m)^- Thread ID: `([^`]*)`$")

// ReadIssue parses an issue file back into its fields. Severity and Seq come
// from the filename; resolution comes from the checkbox line inside the file;
// ThreadID is empty when the file lacks a thread ID line.
func (s *Store) ReadIssue(_ context.Context, file model.IssueFile) (*model.Issue, error) {
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("reading issue file %s: %w", file.Path, err)
	}
	content := string(data)

	issue := &model.Issue{
		Seq:        file.Seq,
		Severity:   file.Severity,
		Resolution: model.ResolutionUnresolved,
	}

	if m := threadIDPattern.FindStringSubmatch(content); m != nil {
		issue.ThreadID = m[1]
	}
	if strings.Contains(content, checkboxResolved) {
		issue.Resolution = model.ResolutionResolved
	}

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "- Reviewer: "):
			issue.Author = strings.TrimPrefix(line, "- Reviewer: ")
		case strings.HasPrefix(line, "- File: `"):
			issue.Path = strings.TrimSuffix(strings.TrimPrefix(line, "- File: `"), "`")
		case strings.HasPrefix(line, "- Line: "):
			issue.Line, _ = strconv.Atoi(strings.TrimPrefix(line, "- Line: "))
		case strings.HasPrefix(line, "- URL: "):
			issue.URL = strings.TrimPrefix(line, "- URL: ")
		}
	}

	if body, ok := sectionBetween(content, "## Comment", "## Status"); ok {
		issue.Body = body
	}

	return issue, nil
}

// MarkResolved flips an unresolved issue file to resolved. The checkbox line
// is rewritten and the file renamed in one transition: the resolved file is
// written atomically first, then the unresolved file is removed, so the
// filename tag and checkbox content can never disagree.
func (s *Store) MarkResolved(_ context.Context, file model.IssueFile) (model.IssueFile, error) {
	if file.Resolution == model.ResolutionResolved {
		return file, nil
	}

	data, err := os.ReadFile(file.Path)
	if err != nil {
		return file, fmt.Errorf("reading issue file %s: %w", file.Path, err)
	}

	content := string(data)
	if !strings.Contains(content, checkboxUnresolved) {
		return file, fmt.Errorf("issue file %s has no unresolved checkbox", file.Path)
	}
	content = strings.Replace(content, checkboxUnresolved, checkboxResolved, 1)

	resolved := model.IssueFile{
		Path:       filepath.Join(filepath.Dir(file.Path), issueFileName(file.Seq, file.Severity, model.ResolutionResolved)),
		Seq:        file.Seq,
		Severity:   file.Severity,
		Resolution: model.ResolutionResolved,
	}

	if err := atomic.WriteFile(resolved.Path, strings.NewReader(content)); err != nil {
		return file, fmt.Errorf("writing resolved issue file %s: %w", resolved.Path, err)
	}
	if err := os.Remove(file.Path); err != nil {
		_ = os.Remove(resolved.Path)
		return file, fmt.Errorf("removing unresolved issue file %s: %w", file.Path, err)
	}

	return resolved, nil
}

// RebuildSummary recounts issue and comment files on disk and rewrites
// summary.md. PR title and URL are carried over from the previous summary
// when one exists.
func (s *Store) RebuildSummary(ctx context.Context, prNumber int) (*model.Summary, error) {
	summary := model.Summary{
		PRNumber:    prNumber,
		GeneratedAt: time.Now().In(s.loc),
	}

	if prev, err := s.ReadFile(ctx, filepath.Join(s.PRDir(prNumber), "summary.md")); err == nil {
		for _, line := range strings.Split(prev, "\n") {
			switch {
			case strings.HasPrefix(line, "- Title: "):
				summary.PRTitle = strings.TrimPrefix(line, "- Title: ")
			case strings.HasPrefix(line, "- URL: "):
				summary.PRURL = strings.TrimPrefix(line, "- URL: ")
			}
		}
	}

	issues, err := s.ListIssueFiles(ctx, prNumber)
	if err != nil {
		return nil, err
	}
	for _, f := range issues {
		summary.CountIssue(f.Severity, f.Resolution)
	}

	comments, err := s.ListCommentFiles(ctx, prNumber)
	if err != nil {
		return nil, err
	}
	summary.Comments = len(comments)

	if err := s.WriteSummary(ctx, prNumber, summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// sectionBetween extracts the trimmed text between two markdown headings.
func sectionBetween(content, start, end string) (string, bool) {
	startIdx := strings.Index(content, start)
	if startIdx < 0 {
		return "", false
	}
	rest := content[startIdx+len(start):]
	endIdx := strings.Index(rest, end)
	if endIdx < 0 {
		return strings.TrimSpace(rest), true
	}
	return strings.TrimSpace(rest[:endIdx]), true
}
