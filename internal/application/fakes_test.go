package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/ericfisherdev/reviewdeck/internal/adapter/driven/exportdir"
	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

// fakeHost implements driven.ReviewHost in memory for service tests.
type fakeHost struct {
	latest   *model.PullRequest
	prs      map[int]*model.PullRequest
	threads  []model.ReviewThread
	comments []model.IssueComment

	resolveErrs map[string]error // Per-thread mutation failures.
	resolved    []string         // Thread IDs resolved, in call order.
}

func (f *fakeHost) FindLatestOpenPR(_ context.Context, _ string) (*model.PullRequest, error) {
	if f.latest == nil {
		return nil, model.ErrNoOpenPRs
	}
	return f.latest, nil
}

func (f *fakeHost) FetchPullRequest(_ context.Context, _ string, prNumber int) (*model.PullRequest, error) {
	pr, ok := f.prs[prNumber]
	if !ok {
		return nil, model.ErrPRNotFound
	}
	return pr, nil
}

func (f *fakeHost) FetchReviewThreads(_ context.Context, _ string, _ int) ([]model.ReviewThread, error) {
	return f.threads, nil
}

func (f *fakeHost) FetchIssueComments(_ context.Context, _ string, _ int) ([]model.IssueComment, error) {
	return f.comments, nil
}

func (f *fakeHost) ResolveThread(_ context.Context, threadID string) error {
	if err, ok := f.resolveErrs[threadID]; ok {
		return err
	}
	f.resolved = append(f.resolved, threadID)
	return nil
}

func newTestStore(t *testing.T) *exportdir.Store {
	t.Helper()
	return exportdir.NewStore(t.TempDir(), time.UTC)
}

func botThread(id, body string) model.ReviewThread {
	return model.ReviewThread{
		ThreadID:  id,
		Path:      "internal/app/app.go",
		Line:      12,
		Author:    "coderabbitai[bot]",
		Body:      body,
		URL:       "https://github.com/owner/repo/pull/123#discussion_r1",
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func botComment(body string) model.IssueComment {
	return model.IssueComment{
		Author:    "coderabbitai[bot]",
		Body:      body,
		URL:       "https://github.com/owner/repo/pull/123#issuecomment-1",
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}
