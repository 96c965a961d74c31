package application_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/reviewdeck/internal/application"
	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

// seedExport downloads a small fixed review set into the store: three issues
// (one per severity) and two comments.
func seedExport(t *testing.T, svc *application.ExportService) {
	t.Helper()
	_, err := svc.Download(context.Background(), pr123())
	require.NoError(t, err)
}

func newSeededRead(t *testing.T) *application.ReadService {
	t.Helper()
	host := &fakeHost{
		prs: map[int]*model.PullRequest{123: pr123()},
		threads: []model.ReviewThread{
			botThread("T1", "_⚠️ Potential issue_ nil deref"),
			botThread("T2", "_🛠️ Refactor suggestion_ simplify"),
			botThread("T3", "nit: rename this"),
		},
		comments: []model.IssueComment{
			botComment("Walkthrough"),
			botComment("Tips"),
		},
	}
	store := newTestStore(t)
	export := application.NewExportService(host, store, "owner/repo", defaultBots)
	seedExport(t, export)
	return application.NewReadService(store)
}

func TestCollect_AllReturnsEveryFileOnceInOrder(t *testing.T) {
	svc := newSeededRead(t)

	entries, err := svc.Collect(context.Background(), 123, application.ReadOptions{All: true})
	require.NoError(t, err)
	require.Len(t, entries, 5)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = filepath.Base(e.Path)
		assert.NotEmpty(t, e.Content)
	}
	assert.Equal(t, []string{
		"issue_001_critical_unresolved.md",
		"issue_002_major_unresolved.md",
		"issue_003_trivial_unresolved.md",
		"comment_001.md",
		"comment_002.md",
	}, names)

	// Each file's body must appear exactly once in the concatenation.
	joined := ""
	for _, e := range entries {
		joined += e.Content
	}
	for _, body := range []string{"nil deref", "simplify", "rename this", "Walkthrough", "Tips"} {
		assert.Equal(t, 1, strings.Count(joined, body), "body %q", body)
	}
}

func TestCollect_SeverityFilterExcludesComments(t *testing.T) {
	svc := newSeededRead(t)

	entries, err := svc.Collect(context.Background(), 123, application.ReadOptions{
		All:      true,
		Severity: model.SeverityCritical,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "issue_001_critical_unresolved.md", filepath.Base(entries[0].Path))
}

func TestCollect_RangeFilter(t *testing.T) {
	svc := newSeededRead(t)

	entries, err := svc.Collect(context.Background(), 123, application.ReadOptions{Start: 2, End: 3})
	require.NoError(t, err)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = filepath.Base(e.Path)
	}
	assert.Equal(t, []string{
		"issue_002_major_unresolved.md",
		"issue_003_trivial_unresolved.md",
		"comment_002.md",
	}, names)
}

func TestCollect_EmptyResultIsNotAnError(t *testing.T) {
	svc := newSeededRead(t)

	entries, err := svc.Collect(context.Background(), 123, application.ReadOptions{Start: 40, End: 50})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
