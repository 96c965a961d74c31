package exportdir_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

func TestReadIssue_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	written := testIssue(2, model.SeverityMajor)
	require.NoError(t, store.ResetPR(ctx, 7))
	require.NoError(t, store.WriteIssue(ctx, 7, written))

	files, err := store.ListIssueFiles(ctx, 7)
	require.NoError(t, err)
	require.Len(t, files, 1)

	issue, err := store.ReadIssue(ctx, files[0])
	require.NoError(t, err)

	assert.Equal(t, written.Seq, issue.Seq)
	assert.Equal(t, written.Severity, issue.Severity)
	assert.Equal(t, model.ResolutionUnresolved, issue.Resolution)
	assert.Equal(t, written.ThreadID, issue.ThreadID)
	assert.Equal(t, written.Path, issue.Path)
	assert.Equal(t, written.Line, issue.Line)
	assert.Equal(t, written.Author, issue.Author)
	assert.Equal(t, written.URL, issue.URL)
	assert.Equal(t, written.Body, issue.Body)
}

func TestReadIssue_MissingThreadID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	issue := testIssue(1, model.SeverityTrivial)
	issue.ThreadID = ""
	require.NoError(t, store.ResetPR(ctx, 7))
	require.NoError(t, store.WriteIssue(ctx, 7, issue))

	files, err := store.ListIssueFiles(ctx, 7)
	require.NoError(t, err)
	require.Len(t, files, 1)

	parsed, err := store.ReadIssue(ctx, files[0])
	require.NoError(t, err)
	assert.Empty(t, parsed.ThreadID)
}

func TestMarkResolved_RenamesAndFlipsCheckbox(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ResetPR(ctx, 7))
	require.NoError(t, store.WriteIssue(ctx, 7, testIssue(1, model.SeverityCritical)))

	files, err := store.ListIssueFiles(ctx, 7)
	require.NoError(t, err)
	unresolvedPath := files[0].Path

	resolved, err := store.MarkResolved(ctx, files[0])
	require.NoError(t, err)

	assert.Equal(t, "issue_001_critical_resolved.md", filepath.Base(resolved.Path))
	assert.Equal(t, model.ResolutionResolved, resolved.Resolution)

	_, err = os.Stat(unresolvedPath)
	assert.True(t, os.IsNotExist(err), "unresolved file should be gone")

	content, err := store.ReadFile(ctx, resolved.Path)
	require.NoError(t, err)
	assert.Contains(t, content, "- [x] RESOLVED ✓")
	assert.NotContains(t, content, "- [ ] UNRESOLVED")

	// Filename tag and checkbox must agree after the transition.
	assert.True(t, strings.Contains(filepath.Base(resolved.Path), "_resolved"))
}

func TestMarkResolved_AlreadyResolvedIsNoOp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ResetPR(ctx, 7))
	require.NoError(t, store.WriteIssue(ctx, 7, testIssue(1, model.SeverityMajor)))

	files, err := store.ListIssueFiles(ctx, 7)
	require.NoError(t, err)

	resolved, err := store.MarkResolved(ctx, files[0])
	require.NoError(t, err)

	again, err := store.MarkResolved(ctx, resolved)
	require.NoError(t, err)
	assert.Equal(t, resolved, again)
}

func TestRebuildSummary_CountsFilesAndKeepsHeader(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ResetPR(ctx, 7))
	require.NoError(t, store.WriteSummary(ctx, 7, model.Summary{
		PRNumber: 7,
		PRTitle:  "Refactor config loading",
		PRURL:    "https://github.com/owner/repo/pull/7",
	}))

	require.NoError(t, store.WriteIssue(ctx, 7, testIssue(1, model.SeverityCritical)))
	require.NoError(t, store.WriteIssue(ctx, 7, testIssue(2, model.SeverityMajor)))
	require.NoError(t, store.WriteComment(ctx, 7, model.Comment{Seq: 1, Author: "bot", Body: "hi"}))

	files, err := store.ListIssueFiles(ctx, 7)
	require.NoError(t, err)
	_, err = store.MarkResolved(ctx, files[0])
	require.NoError(t, err)

	summary, err := store.RebuildSummary(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, "Refactor config loading", summary.PRTitle)
	assert.Equal(t, "https://github.com/owner/repo/pull/7", summary.PRURL)
	assert.Equal(t, 1, summary.Critical)
	assert.Equal(t, 1, summary.Major)
	assert.Equal(t, 1, summary.Resolved)
	assert.Equal(t, 1, summary.Unresolved)
	assert.Equal(t, 1, summary.Comments)

	content, err := store.ReadFile(ctx, filepath.Join(store.PRDir(7), "summary.md"))
	require.NoError(t, err)
	assert.Contains(t, content, "- Title: Refactor config loading")
	assert.Contains(t, content, "- Resolved: 1")
}
