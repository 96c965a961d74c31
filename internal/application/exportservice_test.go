package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/reviewdeck/internal/application"
	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

var defaultBots = []string{"coderabbitai[bot]"}

func pr123() *model.PullRequest {
	return &model.PullRequest{
		Number: 123,
		Title:  "Add login flow",
		Author: "alice",
		URL:    "https://github.com/owner/repo/pull/123",
	}
}

func TestDownload_CountsPerSeverity(t *testing.T) {
	host := &fakeHost{
		prs: map[int]*model.PullRequest{123: pr123()},
		threads: []model.ReviewThread{
			botThread("T1", "_⚠️ Potential issue_ nil pointer deref"),
			botThread("T2", "Critical: missing auth check"),
			botThread("T3", "This has a security hole"),
			botThread("T4", "_🛠️ Refactor suggestion_ split this function"),
			botThread("T5", "Major duplication with the sibling package"),
			botThread("T6", "typo in the comment"),
		},
		comments: []model.IssueComment{
			botComment("Walkthrough"), botComment("Summary"),
			botComment("Tips"), botComment("Configuration"),
		},
	}
	store := newTestStore(t)
	svc := application.NewExportService(host, store, "owner/repo", defaultBots)
	ctx := context.Background()

	pr, err := svc.SelectPR(ctx, 123)
	require.NoError(t, err)

	result, err := svc.Download(ctx, pr)
	require.NoError(t, err)

	s := result.Summary
	assert.Equal(t, 6, s.TotalIssues())
	assert.Equal(t, 3, s.Critical)
	assert.Equal(t, 2, s.Major)
	assert.Equal(t, 1, s.Trivial)
	assert.Equal(t, 4, s.Comments)
	assert.Equal(t, 6, s.Unresolved)
	assert.Equal(t, 0, s.Resolved)

	// One file per thread and per comment, and the summary totals must match
	// what was actually written.
	issues, err := store.ListIssueFiles(ctx, 123)
	require.NoError(t, err)
	assert.Len(t, issues, 6)

	comments, err := store.ListCommentFiles(ctx, 123)
	require.NoError(t, err)
	assert.Len(t, comments, 4)
}

func TestDownload_SequenceFollowsFetchOrder(t *testing.T) {
	host := &fakeHost{
		prs: map[int]*model.PullRequest{123: pr123()},
		threads: []model.ReviewThread{
			botThread("T1", "first"),
			botThread("T2", "second"),
			botThread("T3", "third"),
		},
	}
	store := newTestStore(t)
	svc := application.NewExportService(host, store, "owner/repo", defaultBots)
	ctx := context.Background()

	_, err := svc.Download(ctx, pr123())
	require.NoError(t, err)

	files, err := store.ListIssueFiles(ctx, 123)
	require.NoError(t, err)
	require.Len(t, files, 3)

	for i, file := range files {
		issue, err := store.ReadIssue(ctx, file)
		require.NoError(t, err)
		assert.Equal(t, i+1, issue.Seq)
	}
}

func TestDownload_FiltersNonBotAuthors(t *testing.T) {
	human := botThread("T9", "human remark")
	human.Author = "bob"

	host := &fakeHost{
		prs:     map[int]*model.PullRequest{123: pr123()},
		threads: []model.ReviewThread{human, botThread("T1", "bot remark")},
		comments: []model.IssueComment{
			{Author: "alice", Body: "thanks!"},
			botComment("Walkthrough"),
		},
	}
	store := newTestStore(t)
	svc := application.NewExportService(host, store, "owner/repo", defaultBots)
	ctx := context.Background()

	result, err := svc.Download(ctx, pr123())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.TotalIssues())
	assert.Equal(t, 1, result.Summary.Comments)
}

func TestDownload_ResolvedThreadsKeepResolvedState(t *testing.T) {
	resolved := botThread("T1", "already handled")
	resolved.IsResolved = true

	host := &fakeHost{
		prs:     map[int]*model.PullRequest{123: pr123()},
		threads: []model.ReviewThread{resolved},
	}
	store := newTestStore(t)
	svc := application.NewExportService(host, store, "owner/repo", defaultBots)
	ctx := context.Background()

	result, err := svc.Download(ctx, pr123())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Resolved)
	assert.Equal(t, 0, result.Summary.Unresolved)

	files, err := store.ListIssueFiles(ctx, 123)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, model.ResolutionResolved, files[0].Resolution)
}

func TestDownload_EmptyResultIsNotFatal(t *testing.T) {
	host := &fakeHost{prs: map[int]*model.PullRequest{123: pr123()}}
	store := newTestStore(t)
	svc := application.NewExportService(host, store, "owner/repo", defaultBots)
	ctx := context.Background()

	result, err := svc.Download(ctx, pr123())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Summary.TotalIssues())
	assert.Equal(t, 0, result.Summary.Comments)
}

func TestDownload_OverwritesPreviousExport(t *testing.T) {
	host := &fakeHost{
		prs: map[int]*model.PullRequest{123: pr123()},
		threads: []model.ReviewThread{
			botThread("T1", "one"), botThread("T2", "two"),
		},
	}
	store := newTestStore(t)
	svc := application.NewExportService(host, store, "owner/repo", defaultBots)
	ctx := context.Background()

	_, err := svc.Download(ctx, pr123())
	require.NoError(t, err)

	host.threads = []model.ReviewThread{botThread("T3", "only one now")}
	_, err = svc.Download(ctx, pr123())
	require.NoError(t, err)

	files, err := store.ListIssueFiles(ctx, 123)
	require.NoError(t, err)
	require.Len(t, files, 1)

	issue, err := store.ReadIssue(ctx, files[0])
	require.NoError(t, err)
	assert.Equal(t, "T3", issue.ThreadID)
}

func TestSelectPR_LatestOpenFallback(t *testing.T) {
	host := &fakeHost{latest: pr123()}
	svc := application.NewExportService(host, newTestStore(t), "owner/repo", defaultBots)

	pr, err := svc.SelectPR(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 123, pr.Number)
}

func TestSelectPR_NoOpenPRs(t *testing.T) {
	svc := application.NewExportService(&fakeHost{}, newTestStore(t), "owner/repo", defaultBots)

	_, err := svc.SelectPR(context.Background(), 0)
	assert.ErrorIs(t, err, model.ErrNoOpenPRs)
}

func TestSelectPR_UnknownNumber(t *testing.T) {
	svc := application.NewExportService(&fakeHost{prs: map[int]*model.PullRequest{}}, newTestStore(t), "owner/repo", defaultBots)

	_, err := svc.SelectPR(context.Background(), 999)
	assert.ErrorIs(t, err, model.ErrPRNotFound)
}
