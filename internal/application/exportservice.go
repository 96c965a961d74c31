// Package application holds the services that drive the export, resolve, and
// read pipelines. Services depend only on port interfaces.
package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
	"github.com/ericfisherdev/reviewdeck/internal/domain/port/driven"
)

// ExportService runs the download pipeline: fetch review threads and PR
// comments, keep the ones authored by configured reviewer bots, classify them,
// and render the per-PR file tree plus summary.
type ExportService struct {
	host      driven.ReviewHost
	store     driven.ExportStore
	repo      string
	botLogins []string
}

// ExportResult reports what a download produced.
type ExportResult struct {
	PR      model.PullRequest
	Summary model.Summary
}

// NewExportService creates an ExportService for one repository. botLogins are
// the reviewer accounts whose threads and comments get exported.
func NewExportService(host driven.ReviewHost, store driven.ExportStore, repo string, botLogins []string) *ExportService {
	return &ExportService{
		host:      host,
		store:     store,
		repo:      repo,
		botLogins: botLogins,
	}
}

// SelectPR resolves the download target: an explicit PR number, or the most
// recently created open PR when prNumber is 0.
func (s *ExportService) SelectPR(ctx context.Context, prNumber int) (*model.PullRequest, error) {
	if prNumber > 0 {
		return s.host.FetchPullRequest(ctx, s.repo, prNumber)
	}

	pr, err := s.host.FindLatestOpenPR(ctx, s.repo)
	if err != nil {
		return nil, err
	}
	slog.Info("no PR number given, using latest open PR", "pr", pr.Number)
	return pr, nil
}

// Download exports the review state of a PR into the local file tree. The
// export regenerates the PR directory wholesale: previous issue and comment
// files are removed first.
//
// A PR with zero qualifying reviewer comments is not an error: the directory
// is still reset and an all-zero summary written.
func (s *ExportService) Download(ctx context.Context, pr *model.PullRequest) (*ExportResult, error) {
	slog.Info("downloading review state", "repo", s.repo, "pr", pr.Number, "title", pr.Title)

	threads, err := s.host.FetchReviewThreads(ctx, s.repo, pr.Number)
	if err != nil {
		return nil, err
	}

	comments, err := s.host.FetchIssueComments(ctx, s.repo, pr.Number)
	if err != nil {
		return nil, err
	}

	threads = s.filterThreads(threads)
	comments = s.filterComments(comments)
	if len(threads) == 0 && len(comments) == 0 {
		slog.Warn("no qualifying reviewer comments found", "repo", s.repo, "pr", pr.Number, "bots", s.botLogins)
	}

	if err := s.store.ResetPR(ctx, pr.Number); err != nil {
		return nil, err
	}

	summary := model.Summary{
		PRNumber:    pr.Number,
		PRTitle:     pr.Title,
		PRURL:       pr.URL,
		GeneratedAt: time.Now(),
	}

	for i, thread := range threads {
		issue := model.Issue{
			Seq:        i + 1,
			Severity:   model.ClassifySeverity(thread.Body),
			Resolution: model.ResolutionUnresolved,
			ThreadID:   thread.ThreadID,
			Path:       thread.Path,
			Line:       thread.Line,
			Author:     thread.Author,
			Body:       thread.Body,
			URL:        thread.URL,
			CreatedAt:  thread.CreatedAt,
		}
		if thread.IsResolved {
			issue.Resolution = model.ResolutionResolved
		}

		if err := s.store.WriteIssue(ctx, pr.Number, issue); err != nil {
			return nil, err
		}
		summary.CountIssue(issue.Severity, issue.Resolution)
	}

	for i, c := range comments {
		comment := model.Comment{
			Seq:       i + 1,
			Author:    c.Author,
			Body:      c.Body,
			URL:       c.URL,
			CreatedAt: c.CreatedAt,
		}
		if err := s.store.WriteComment(ctx, pr.Number, comment); err != nil {
			return nil, err
		}
	}
	summary.Comments = len(comments)

	if err := s.store.WriteSummary(ctx, pr.Number, summary); err != nil {
		return nil, err
	}

	slog.Info("download complete",
		"pr", pr.Number,
		"issues", summary.TotalIssues(),
		"comments", summary.Comments,
		"unresolved", summary.Unresolved,
	)

	return &ExportResult{PR: *pr, Summary: summary}, nil
}

func (s *ExportService) filterThreads(threads []model.ReviewThread) []model.ReviewThread {
	var kept []model.ReviewThread
	for _, t := range threads {
		if s.isBotReviewer(t.Author) {
			kept = append(kept, t)
		}
	}
	return kept
}

func (s *ExportService) filterComments(comments []model.IssueComment) []model.IssueComment {
	var kept []model.IssueComment
	for _, c := range comments {
		if s.isBotReviewer(c.Author) {
			kept = append(kept, c)
		}
	}
	return kept
}

// isBotReviewer reports whether the login is one of the configured reviewer
// bots. Comparison is case-insensitive; an empty list exports everything.
func (s *ExportService) isBotReviewer(login string) bool {
	if len(s.botLogins) == 0 {
		return true
	}
	for _, bot := range s.botLogins {
		if strings.EqualFold(login, bot) {
			return true
		}
	}
	return false
}
