package github

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

// maxRetries bounds how many times a transient failure is retried before the
// error surfaces. Auth and other 4xx failures are never retried.
const maxRetries = 3

// withRetry runs op under an exponential backoff policy. op must return a
// *model.APIError (or an error wrapping one) for retry classification;
// anything classified non-transient is wrapped as permanent and returned
// after the first attempt.
func (c *Client) withRetry(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 10 * time.Second

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}

		var permanentErr *backoff.PermanentError
		if errors.As(err, &permanentErr) {
			return err
		}

		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.IsTransient() {
			return err
		}

		return backoff.Permanent(err)
	}, policy)
}

// permanent marks an error as non-retryable for withRetry.
func permanent(err error) error {
	return backoff.Permanent(err)
}

// apiError attaches the HTTP status of a failed go-github call so retry
// classification and auth reporting can inspect it. A nil response is a
// transport-level failure; status 599 keeps it retryable.
func apiError(resp *gh.Response, err error) error {
	status := 599
	if resp != nil {
		status = resp.StatusCode
	}
	return &model.APIError{StatusCode: status, Err: err}
}
