package driven

import (
	"context"

	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

// ReviewHost defines the driven port for the code-hosting API. Read methods
// fetch PR metadata and review data; ResolveThread is the only remote mutation.
type ReviewHost interface {
	// FindLatestOpenPR returns the most recently created open pull request.
	// Returns model.ErrNoOpenPRs when the repository has none.
	FindLatestOpenPR(ctx context.Context, repoFullName string) (*model.PullRequest, error)
	// FetchPullRequest returns PR metadata by number.
	// Returns model.ErrPRNotFound for unknown numbers.
	FetchPullRequest(ctx context.Context, repoFullName string, prNumber int) (*model.PullRequest, error)
	// FetchReviewThreads returns all review threads of a PR with their opaque
	// thread IDs and resolution status, in the order the host returns them.
	FetchReviewThreads(ctx context.Context, repoFullName string, prNumber int) ([]model.ReviewThread, error)
	// FetchIssueComments returns all PR-level general comments.
	FetchIssueComments(ctx context.Context, repoFullName string, prNumber int) ([]model.IssueComment, error)
	// ResolveThread marks a review thread resolved.
	// threadID is the opaque GraphQL node ID embedded in the issue file.
	ResolveThread(ctx context.Context, threadID string) error
}
