// Package github implements the ReviewHost port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
	"github.com/ericfisherdev/reviewdeck/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReviewHost = (*Client)(nil)

// Client implements the driven.ReviewHost port using the go-github library.
type Client struct {
	gh         *gh.Client
	token      string // Stored for GraphQL Authorization header.
	graphqlURL string // "https://api.github.com/graphql" in production; derived from baseURL in tests.
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	return &Client{
		gh:         client,
		token:      token,
		graphqlURL: "https://api.github.com/graphql",
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	// Derive graphqlURL from baseURL so httptest servers can intercept GraphQL requests.
	graphqlU := *u
	graphqlU.Path = "/graphql"

	return &Client{
		gh:         client,
		token:      token,
		graphqlURL: graphqlU.String(),
	}, nil
}

// ValidateToken verifies the configured token against the authenticated-user
// endpoint and returns the login on success.
func (c *Client) ValidateToken(ctx context.Context) (string, error) {
	user, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", apiError(resp, fmt.Errorf("token validation failed: %w", err))
	}
	return user.GetLogin(), nil
}

// FindLatestOpenPR returns the most recently created open pull request.
// Returns model.ErrNoOpenPRs when the repository has none.
func (c *Client) FindLatestOpenPR(ctx context.Context, repoFullName string) (*model.PullRequest, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.PullRequestListOptions{
		State:     "open",
		Sort:      "created",
		Direction: "desc",
		ListOptions: gh.ListOptions{
			PerPage: 1,
		},
	}

	var prs []*gh.PullRequest
	err = c.withRetry(ctx, func() error {
		var resp *gh.Response
		var listErr error
		prs, resp, listErr = c.gh.PullRequests.List(ctx, owner, repo, opts)
		if listErr != nil {
			return apiError(resp, fmt.Errorf("listing open pull requests for %s: %w", repoFullName, listErr))
		}
		logRateLimit(resp, repoFullName+"/pulls", 0, len(prs))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(prs) == 0 {
		return nil, model.ErrNoOpenPRs
	}

	pr := mapPullRequest(prs[0])
	return &pr, nil
}

// FetchPullRequest returns PR metadata by number.
// Returns model.ErrPRNotFound for unknown numbers.
func (c *Client) FetchPullRequest(ctx context.Context, repoFullName string, prNumber int) (*model.PullRequest, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	var pr *gh.PullRequest
	err = c.withRetry(ctx, func() error {
		var resp *gh.Response
		var getErr error
		pr, resp, getErr = c.gh.PullRequests.Get(ctx, owner, repo, prNumber)
		if getErr != nil {
			if resp != nil && resp.StatusCode == http.StatusNotFound {
				return permanent(model.ErrPRNotFound)
			}
			return apiError(resp, fmt.Errorf("fetching %s#%d: %w", repoFullName, prNumber, getErr))
		}
		logRateLimit(resp, repoFullName+"/pr", 0, 1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	mapped := mapPullRequest(pr)
	return &mapped, nil
}

// FetchIssueComments retrieves all general PR-level comments (from the Issues API)
// for a pull request. It handles pagination automatically and maps go-github
// types to domain model types.
func (c *Client) FetchIssueComments(ctx context.Context, repoFullName string, prNumber int) ([]model.IssueComment, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var allComments []model.IssueComment

	for {
		var comments []*gh.IssueComment
		var resp *gh.Response
		err := c.withRetry(ctx, func() error {
			var listErr error
			comments, resp, listErr = c.gh.Issues.ListComments(ctx, owner, repo, prNumber, opts)
			if listErr != nil {
				return apiError(resp, fmt.Errorf("listing issue comments for %s#%d (page %d): %w", repoFullName, prNumber, opts.Page, listErr))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		logRateLimit(resp, repoFullName+"/comments", opts.Page, len(comments))

		for _, comment := range comments {
			allComments = append(allComments, mapIssueComment(comment))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allComments, nil
}

// mapPullRequest converts a go-github PullRequest to a domain model PullRequest.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapPullRequest(pr *gh.PullRequest) model.PullRequest {
	return model.PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Author:    pr.GetUser().GetLogin(),
		URL:       pr.GetHTMLURL(),
		CreatedAt: pr.GetCreatedAt().Time,
	}
}

// mapIssueComment converts a go-github IssueComment to a domain model IssueComment.
func mapIssueComment(c *gh.IssueComment) model.IssueComment {
	return model.IssueComment{
		Author:    c.GetUser().GetLogin(),
		Body:      c.GetBody(),
		URL:       c.GetHTMLURL(),
		CreatedAt: c.GetCreatedAt().Time,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// splitRepo splits a "owner/repo" string into its two components.
func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
