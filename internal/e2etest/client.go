package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/snapsolve/internal/answer"
	"github.com/myrjola/snapsolve/internal/errors"
)

type Client struct {
	client *http.Client
	url    string
}

// NewClient creates an HTTP client for exercising a Snapsolve server.
func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, errors.Wrap(err, "create unsafe cookie jar")
	}
	return &Client{
		client: &http.Client{Jar: jar},
		url:    url,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			c.url+urlPath,
			nil,
		); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = c.client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return errors.Wrap(err, "close response body")
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	if req, err = c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil); err != nil {
		return nil, errors.Wrap(err, "create request with context")
	}
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	var (
		err  error
		resp *http.Response
		doc  *goquery.Document
	)
	if resp, err = c.Get(ctx, urlPath); err != nil {
		return nil, errors.Wrap(err, "client get")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}
	if doc, err = goquery.NewDocumentFromReader(resp.Body); err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}

// newRequestWithContext creates a new HTTP request to the server that respects the given context.
func (c *Client) newRequestWithContext(
	ctx context.Context,
	method, urlPath string,
	body io.Reader,
) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)
	if req, err = http.NewRequest(method, c.url+urlPath, body); err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	return req.WithContext(ctx), nil
}

// multipartSubmission builds the multipart body of the wire contract with the
// image bytes and the question text.
func multipartSubmission(image []byte, question string, extraFields map[string]string) (*bytes.Buffer, string, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "question-image")
	if err != nil {
		return nil, "", errors.Wrap(err, "create image part")
	}
	if _, err = part.Write(image); err != nil {
		return nil, "", errors.Wrap(err, "write image part")
	}
	if err = writer.WriteField("question", question); err != nil {
		return nil, "", errors.Wrap(err, "write question part")
	}
	for field, value := range extraFields {
		if err = writer.WriteField(field, value); err != nil {
			return nil, "", errors.Wrap(err, "write extra field", slog.String("field", field))
		}
	}
	if err = writer.Close(); err != nil {
		return nil, "", errors.Wrap(err, "close multipart writer")
	}
	return body, writer.FormDataContentType(), nil
}

// AskImage posts an image to the /ask wire contract and decodes the answer result.
func (c *Client) AskImage(ctx context.Context, image []byte, question string) (answer.Result, error) {
	body, contentType, err := multipartSubmission(image, question, nil)
	if err != nil {
		return answer.Result{}, errors.Wrap(err, "build submission")
	}
	var req *http.Request
	if req, err = c.newRequestWithContext(ctx, http.MethodPost, "/ask", body); err != nil {
		return answer.Result{}, errors.Wrap(err, "new request with context")
	}
	req.Header.Set("Content-Type", contentType)
	var resp *http.Response
	if resp, err = c.client.Do(req); err != nil {
		return answer.Result{}, errors.Wrap(err, "do request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return answer.Result{}, errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}
	var result answer.Result
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return answer.Result{}, errors.Wrap(err, "decode answer result")
	}
	return result, nil
}

// SolveImage submits an image through the server-rendered /solve form and
// returns the response document.
func (c *Client) SolveImage(ctx context.Context, image []byte) (*goquery.Document, error) {
	return c.solveImage(ctx, image, false)
}

// SolveImageFragment submits the same form the way the htmx script does, with
// the HX-Request header set, and returns the fragment document.
func (c *Client) SolveImageFragment(ctx context.Context, image []byte) (*goquery.Document, error) {
	return c.solveImage(ctx, image, true)
}

func (c *Client) solveImage(ctx context.Context, image []byte, hxRequest bool) (*goquery.Document, error) {
	doc, err := c.GetDoc(ctx, "/")
	if err != nil {
		return nil, errors.Wrap(err, "get front page")
	}

	var csrfToken string
	if csrfToken, err = c.ExtractCSRFToken(doc, "/solve"); err != nil {
		return nil, errors.Wrap(err, "extract CSRF token")
	}

	body, contentType, err := multipartSubmission(image, answer.QuestionPrompt, map[string]string{
		"csrf_token": csrfToken,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build submission")
	}
	var req *http.Request
	if req, err = c.newRequestWithContext(ctx, http.MethodPost, "/solve", body); err != nil {
		return nil, errors.Wrap(err, "new request with context")
	}
	req.Header.Set("Content-Type", contentType)
	if hxRequest {
		req.Header.Set("HX-Request", "true")
	}
	var resp *http.Response
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}
	if doc, err = goquery.NewDocumentFromReader(resp.Body); err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}

// ExtractCSRFToken digs the CSRF token out of the form posting to formActionURLPath.
func (c *Client) ExtractCSRFToken(doc *goquery.Document, formActionURLPath string) (string, error) {
	formSelector := fmt.Sprintf("form[action='%s']", formActionURLPath)
	form := doc.Find(formSelector)
	csrfToken, ok := form.Find("input[name=csrf_token]").Attr("value")
	if !ok {
		return "", errors.New("csrf_token not found in form", slog.String("form", formSelector))
	}
	return csrfToken, nil
}
