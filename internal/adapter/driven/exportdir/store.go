// Package exportdir implements the ExportStore port on a per-PR directory of
// markdown files: issues/, comments/, and a derived summary.md.
package exportdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
	"github.com/ericfisherdev/reviewdeck/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ExportStore = (*Store)(nil)

var (
	issueFilePattern   = regexp.MustCompile(`^issue_(\d{3})_(critical|major|trivial)_(resolved|unresolved)\.md$`)
	commentFilePattern = regexp.MustCompile(`^comment_(\d{3})\.md$`)
)

// Store reads and writes the export directory layout:
//
//	<root>/reviews-pr-<N>/
//	  summary.md
//	  issues/issue_<seq3>_<severity>_<resolved|unresolved>.md
//	  comments/comment_<seq3>.md
type Store struct {
	root string
	loc  *time.Location
}

// NewStore creates a Store rooted at the given output directory. Timestamps in
// rendered files are formatted in loc; nil falls back to time.Local.
func NewStore(root string, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{root: root, loc: loc}
}

// PRDir returns the export directory for a PR. Log files for the PR live here
// too, next to summary.md.
func (s *Store) PRDir(prNumber int) string {
	return filepath.Join(s.root, fmt.Sprintf("reviews-pr-%d", prNumber))
}

func (s *Store) issuesDir(prNumber int) string {
	return filepath.Join(s.PRDir(prNumber), "issues")
}

func (s *Store) commentsDir(prNumber int) string {
	return filepath.Join(s.PRDir(prNumber), "comments")
}

// ResetPR clears the issues/ and comments/ subdirectories for a fresh
// download, creating the directory tree if needed. summary.md and log files
// are left in place; the summary is rewritten at the end of the download.
func (s *Store) ResetPR(_ context.Context, prNumber int) error {
	for _, dir := range []string{s.issuesDir(prNumber), s.commentsDir(prNumber)} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("clearing %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// ListIssueFiles returns issue records sorted by sequence number. A missing
// issues directory yields an empty slice.
func (s *Store) ListIssueFiles(_ context.Context, prNumber int) ([]model.IssueFile, error) {
	dir := s.issuesDir(prNumber)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.IssueFile{}, nil
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var files []model.IssueFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := issueFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		seq, _ := strconv.Atoi(m[1])
		files = append(files, model.IssueFile{
			Path:       filepath.Join(dir, entry.Name()),
			Seq:        seq,
			Severity:   model.Severity(m[2]),
			Resolution: model.Resolution(m[3]),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Seq < files[j].Seq })
	return files, nil
}

// ListCommentFiles returns comment records sorted by sequence number. A
// missing comments directory yields an empty slice.
func (s *Store) ListCommentFiles(_ context.Context, prNumber int) ([]model.CommentFile, error) {
	dir := s.commentsDir(prNumber)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.CommentFile{}, nil
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var files []model.CommentFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := commentFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		seq, _ := strconv.Atoi(m[1])
		files = append(files, model.CommentFile{
			Path: filepath.Join(dir, entry.Name()),
			Seq:  seq,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Seq < files[j].Seq })
	return files, nil
}

// ReadFile returns the raw content of an exported file.
func (s *Store) ReadFile(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// prDirPattern matches per-PR export directory names under the root.
var prDirPattern = regexp.MustCompile(`^reviews-pr-(\d+)$`)

// PRNumbers returns the PR numbers that have an export directory under the
// root, ascending. Used to pick a default PR when exactly one export exists.
func (s *Store) PRNumbers() ([]int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", s.root, err)
	}

	var numbers []int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m := prDirPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		numbers = append(numbers, n)
	}

	sort.Ints(numbers)
	return numbers, nil
}

func issueFileName(seq int, severity model.Severity, resolution model.Resolution) string {
	return fmt.Sprintf("issue_%03d_%s_%s.md", seq, severity, resolution)
}

func commentFileName(seq int) string {
	return fmt.Sprintf("comment_%03d.md", seq)
}
