package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
	"github.com/ericfisherdev/reviewdeck/internal/domain/port/driven"
)

// ResolveService runs the resolve batch: for each unresolved issue file in a
// range, call the remote resolve mutation and, on success, flip the local
// file to resolved. Items are independent; one failure never aborts the batch.
type ResolveService struct {
	host  driven.ReviewHost
	store driven.ExportStore
}

// NewResolveService creates a ResolveService with the required dependencies.
func NewResolveService(host driven.ReviewHost, store driven.ExportStore) *ResolveService {
	return &ResolveService{host: host, store: store}
}

// ResolveRange resolves the unresolved issues of a PR whose sequence numbers
// fall in [start, end], or all of them when all is true. Already-resolved
// files are never selected, which makes the operation idempotent.
//
// Per-item failures (missing thread ID, rejected mutation, local rename
// failure) are logged, counted, and skipped over. When at least one issue was
// resolved the summary is rebuilt; a failure there leaves the applied
// resolutions intact and only the summary stale.
func (s *ResolveService) ResolveRange(ctx context.Context, prNumber, start, end int, all bool) (*model.BatchResult, error) {
	files, err := s.store.ListIssueFiles(ctx, prNumber)
	if err != nil {
		return nil, err
	}

	var result model.BatchResult

	for _, file := range files {
		if file.Resolution == model.ResolutionResolved {
			continue
		}
		if !all && (file.Seq < start || file.Seq > end) {
			continue
		}

		issue, err := s.store.ReadIssue(ctx, file)
		if err != nil {
			slog.Warn("skipping unreadable issue file", "file", file.Path, "error", err)
			result.Failed++
			continue
		}

		if issue.ThreadID == "" {
			slog.Warn("issue file has no thread ID, cannot resolve", "file", file.Path, "seq", file.Seq)
			result.Failed++
			continue
		}

		if err := s.host.ResolveThread(ctx, issue.ThreadID); err != nil {
			slog.Warn("resolve mutation failed", "seq", file.Seq, "thread_id", issue.ThreadID, "error", err)
			result.Failed++
			continue
		}

		if _, err := s.store.MarkResolved(ctx, file); err != nil {
			// The remote thread is resolved but the local file is not;
			// a re-download reconciles the two.
			slog.Warn("thread resolved remotely but local transition failed", "file", file.Path, "error", err)
			result.Failed++
			continue
		}

		slog.Info("issue resolved", "pr", prNumber, "seq", file.Seq, "severity", file.Severity)
		result.Resolved++
	}

	if result.Resolved > 0 {
		if _, err := s.store.RebuildSummary(ctx, prNumber); err != nil {
			slog.Warn("summary rebuild failed, counts are stale until the next download", "pr", prNumber, "error", err)
		}
	}

	slog.Info("resolve batch complete",
		"pr", prNumber,
		"resolved", result.Resolved,
		"failed", result.Failed,
		"examined", result.Examined(),
	)

	return &result, nil
}
