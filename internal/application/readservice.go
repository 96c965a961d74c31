package application

import (
	"context"

	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
	"github.com/ericfisherdev/reviewdeck/internal/domain/port/driven"
)

// ReadService projects exported files back out for display. It never mutates
// anything.
type ReadService struct {
	store driven.ExportStore
}

// NewReadService creates a ReadService with the required dependencies.
func NewReadService(store driven.ExportStore) *ReadService {
	return &ReadService{store: store}
}

// ReadOptions selects which exported files to collect.
type ReadOptions struct {
	// Severity restricts the selection to issues of one severity.
	// Empty means all issues plus comments.
	Severity model.Severity
	// All selects every sequence number; otherwise [Start, End] applies.
	All   bool
	Start int
	End   int
}

// ReadEntry is one collected file: its path and full content.
type ReadEntry struct {
	Path    string
	Content string
}

// Collect returns the matching issue files (and, when no severity filter is
// set, comment files) in ascending sequence order. Zero matches is not an
// error; callers report it as an empty result.
func (s *ReadService) Collect(ctx context.Context, prNumber int, opts ReadOptions) ([]ReadEntry, error) {
	var entries []ReadEntry

	issues, err := s.store.ListIssueFiles(ctx, prNumber)
	if err != nil {
		return nil, err
	}
	for _, file := range issues {
		if opts.Severity != "" && file.Severity != opts.Severity {
			continue
		}
		if !opts.All && (file.Seq < opts.Start || file.Seq > opts.End) {
			continue
		}
		content, err := s.store.ReadFile(ctx, file.Path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ReadEntry{Path: file.Path, Content: content})
	}

	if opts.Severity != "" {
		return entries, nil
	}

	comments, err := s.store.ListCommentFiles(ctx, prNumber)
	if err != nil {
		return nil, err
	}
	for _, file := range comments {
		if !opts.All && (file.Seq < opts.Start || file.Seq > opts.End) {
			continue
		}
		content, err := s.store.ReadFile(ctx, file.Path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ReadEntry{Path: file.Path, Content: content})
	}

	return entries, nil
}
