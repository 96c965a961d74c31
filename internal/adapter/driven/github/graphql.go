package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

// graphqlHTTPClient is the HTTP client used for GraphQL requests.
// It enforces a 30-second timeout as a safety net alongside context cancellation.
var graphqlHTTPClient = &http.Client{Timeout: 30 * time.Second}

const reviewThreadsQuery = `query($owner: String!, $repo: String!, $pr: Int!, $after: String) {
	repository(owner: $owner, name: $repo) {
		pullRequest(number: $pr) {
			reviewThreads(first: 100, after: $after) {
				pageInfo {
					hasNextPage
					endCursor
				}
				nodes {
					id
					isResolved
					path
					line
					comments(first: 1) {
						nodes {
							author { login }
							body
							url
							createdAt
						}
					}
				}
			}
		}
	}
}`

const resolveThreadMutation = `mutation($id: ID!) {
	resolveReviewThread(input: {threadId: $id}) {
		thread { isResolved }
	}
}`

// graphqlRequest is the JSON body sent to the GitHub GraphQL API.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// reviewThreadsResponse represents the expected shape of a GitHub GraphQL
// response for the review threads query.
type reviewThreadsResponse struct {
	Data struct {
		Repository struct {
			PullRequest struct {
				ReviewThreads struct {
					PageInfo struct {
						HasNextPage bool   `json:"hasNextPage"`
						EndCursor   string `json:"endCursor"`
					} `json:"pageInfo"`
					Nodes []struct {
						ID         string `json:"id"`
						IsResolved bool   `json:"isResolved"`
						Path       string `json:"path"`
						Line       int    `json:"line"`
						Comments   struct {
							Nodes []struct {
								Author struct {
									Login string `json:"login"`
								} `json:"author"`
								Body      string    `json:"body"`
								URL       string    `json:"url"`
								CreatedAt time.Time `json:"createdAt"`
							} `json:"nodes"`
						} `json:"comments"`
					} `json:"nodes"`
				} `json:"reviewThreads"`
			} `json:"pullRequest"`
		} `json:"repository"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchReviewThreads queries the GitHub GraphQL API for all review threads of
// a pull request, following the endCursor until the last page. Threads are
// returned in the order GitHub yields them; that order decides local sequence
// numbering.
func (c *Client) FetchReviewThreads(ctx context.Context, repoFullName string, prNumber int) ([]model.ReviewThread, error) {
	if c.token == "" {
		return nil, model.ErrMissingToken
	}

	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	var threads []model.ReviewThread
	var after string

	for {
		vars := map[string]any{
			"owner": owner,
			"repo":  repo,
			"pr":    prNumber,
		}
		if after != "" {
			vars["after"] = after
		}

		var gqlResp reviewThreadsResponse
		err := c.withRetry(ctx, func() error {
			return c.doGraphQL(ctx, reviewThreadsQuery, vars, &gqlResp)
		})
		if err != nil {
			return nil, fmt.Errorf("fetching review threads for %s#%d: %w", repoFullName, prNumber, err)
		}

		if len(gqlResp.Errors) > 0 {
			return nil, fmt.Errorf("fetching review threads for %s#%d: %s", repoFullName, prNumber, gqlResp.Errors[0].Message)
		}

		page := gqlResp.Data.Repository.PullRequest.ReviewThreads
		for _, node := range page.Nodes {
			thread := model.ReviewThread{
				ThreadID:   node.ID,
				IsResolved: node.IsResolved,
				Path:       node.Path,
				Line:       node.Line,
			}
			if len(node.Comments.Nodes) > 0 {
				root := node.Comments.Nodes[0]
				thread.Author = root.Author.Login
				thread.Body = root.Body
				thread.URL = root.URL
				thread.CreatedAt = root.CreatedAt
			}
			threads = append(threads, thread)
		}

		if !page.PageInfo.HasNextPage {
			break
		}
		after = page.PageInfo.EndCursor
	}

	return threads, nil
}

// graphqlMutationResponse represents the minimal response shape for GraphQL
// mutations. We only check for errors; the mutation payload is not inspected.
type graphqlMutationResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// ResolveThread marks a review thread resolved via the resolveReviewThread
// mutation. threadID is the opaque GraphQL node ID stored in the issue file.
func (c *Client) ResolveThread(ctx context.Context, threadID string) error {
	if c.token == "" {
		return model.ErrMissingToken
	}
	if threadID == "" {
		return fmt.Errorf("thread ID is empty")
	}

	var gqlResp graphqlMutationResponse
	err := c.withRetry(ctx, func() error {
		return c.doGraphQL(ctx, resolveThreadMutation, map[string]any{"id": threadID}, &gqlResp)
	})
	if err != nil {
		return fmt.Errorf("resolving thread %s: %w", threadID, err)
	}

	if len(gqlResp.Errors) > 0 {
		return fmt.Errorf("resolving thread %s: %s", threadID, gqlResp.Errors[0].Message)
	}

	return nil
}

// doGraphQL posts one GraphQL request and decodes the response into out.
// Non-200 statuses come back as *model.APIError so withRetry can classify them.
func (c *Client) doGraphQL(ctx context.Context, query string, vars map[string]any, out any) error {
	bodyBytes, err := json.Marshal(graphqlRequest{Query: query, Variables: vars})
	if err != nil {
		return permanent(fmt.Errorf("marshaling graphql request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return permanent(fmt.Errorf("creating graphql request: %w", err))
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("bearer %s", c.token))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := graphqlHTTPClient.Do(httpReq)
	if err != nil {
		return &model.APIError{StatusCode: 599, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &model.APIError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("graphql endpoint returned HTTP %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return permanent(fmt.Errorf("decoding graphql response: %w", err))
	}

	return nil
}
