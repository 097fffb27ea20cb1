// Package submit implements the client side of the /ask wire contract: one
// multipart submission per invocation, resolving to exactly one answer result.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sync/atomic"

	"github.com/myrjola/snapsolve/internal/answer"
	"github.com/myrjola/snapsolve/internal/capture"
	"github.com/myrjola/snapsolve/internal/errors"
	"github.com/myrjola/snapsolve/internal/flow"
)

// FailureMessage is the only user-facing failure text. Every transport
// failure maps to it; there is no differentiated messaging by cause.
const FailureMessage = "Failed to process the image. Please try again."

var (
	// ErrSubmissionInFlight rejects an overlapping submission attempt.
	// At most one submission may be outstanding.
	ErrSubmissionInFlight = errors.NewSentinel("submission already in flight")
	// ErrEmptyPayload rejects a payload with no image data.
	ErrEmptyPayload = errors.NewSentinel("image payload is empty")
)

// Client delivers submissions to the /ask endpoint of a Snapsolve host.
type Client struct {
	baseURL string
	httpc   *http.Client
	flow    *flow.Controller
	logger  *slog.Logger

	inFlight atomic.Bool
}

// NewClient creates a submission client against baseURL. The flow controller
// receives the Loading and Presented transitions.
//
// The default HTTP client carries no timeout: the submission is a single
// best-effort attempt that resolves when the transport does.
func NewClient(baseURL string, flowController *flow.Controller, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{},
		flow:    flowController,
		logger:  logger.With("source", "submit.Client"),
	}
}

// WithHTTPClient overrides the internal HTTP client, e.g. for tests or
// custom transports.
func (c *Client) WithHTTPClient(httpc *http.Client) *Client {
	if httpc != nil {
		c.httpc = httpc
	}
	return c
}

// Submit sends one payload with the fixed instruction attached verbatim and
// resolves to exactly one result.
//
// The prior result is cleared and Loading signalled before the exchange
// starts; Loading is cleared unconditionally on completion. Transport
// failures never escape: they resolve to the synthesized error result. The
// only error returns are ErrEmptyPayload and ErrSubmissionInFlight, both
// rejected before any state transition.
func (c *Client) Submit(ctx context.Context, payload capture.Payload) (answer.Result, error) {
	if payload.Empty() {
		return answer.Result{}, ErrEmptyPayload
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return answer.Result{}, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	c.flow.Begin()
	result := c.exchange(ctx, payload)
	c.flow.Finish(result)
	return result, nil
}

// exchange performs the single multipart POST and always produces a result.
func (c *Client) exchange(ctx context.Context, payload capture.Payload) answer.Result {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "question-image")
	if err != nil {
		return c.failure(ctx, errors.Wrap(err, "create image part"))
	}
	if _, err = part.Write(payload.Data); err != nil {
		return c.failure(ctx, errors.Wrap(err, "write image part"))
	}
	if err = writer.WriteField("question", answer.QuestionPrompt); err != nil {
		return c.failure(ctx, errors.Wrap(err, "write question part"))
	}
	if err = writer.Close(); err != nil {
		return c.failure(ctx, errors.Wrap(err, "close multipart writer"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", body)
	if err != nil {
		return c.failure(ctx, errors.Wrap(err, "create request"))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return c.failure(ctx, errors.Wrap(err, "post submission"))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return c.failure(ctx, errors.New("unexpected status code", slog.Int("status", resp.StatusCode)))
	}

	var result answer.Result
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return c.failure(ctx, errors.Wrap(err, "decode response body"))
	}
	if (result.Status != answer.StatusSuccess && result.Status != answer.StatusError) || result.Answer == "" {
		return c.failure(ctx, errors.New("malformed answer result", slog.String("status", string(result.Status))))
	}

	// Passed through unchanged to the presenter.
	return result
}

func (c *Client) failure(ctx context.Context, err error) answer.Result {
	c.logger.LogAttrs(ctx, slog.LevelWarn, "submission failed", errors.SlogError(err))
	return answer.Result{
		Status: answer.StatusError,
		Answer: FailureMessage,
	}
}
