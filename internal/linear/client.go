package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/machinebox/graphql"
	"golang.org/x/time/rate"
)

const (
	DefaultEndpoint = "https://api.linear.app/graphql"
	pageSize        = 250
)

type Client struct {
	httpClient *http.Client
	endpoint   string
	limiter    *rate.Limiter
	debug      bool
	gql        *graphql.Client
}

type Option func(*Client)

func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithRequestInterval spaces requests at least d apart. Zero disables pacing.
func WithRequestInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
		}
	}
}

func WithDebug(debug bool) Option {
	return func(c *Client) { c.debug = debug }
}

// NewClient wraps an already-authenticated HTTP client (see internal/auth).
// The caller's client is not modified.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		endpoint:   DefaultEndpoint,
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(c)
	}

	wrapped := *c.httpClient
	next := wrapped.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	wrapped.Transport = &errorTransport{next: next}

	c.gql = graphql.NewClient(c.endpoint, graphql.WithHTTPClient(&wrapped))
	if c.debug {
		c.gql.Log = func(s string) { log.Println("linear:", s) }
	}
	return c
}

// ListLabels fetches every non-archived issue label, following pagination to the end.
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	var labels []Label
	after := ""

	for {
		req := graphql.NewRequest(listLabelsQuery)
		req.Var("first", pageSize)
		if after != "" {
			req.Var("after", after)
		}

		var data issueLabelsData
		if err := c.run(ctx, req, &data); err != nil {
			return nil, fmt.Errorf("failed to retrieve labels: %w", err)
		}

		for _, node := range data.IssueLabels.Nodes {
			labels = append(labels, node.toLabel())
		}

		if !data.IssueLabels.PageInfo.HasNextPage || data.IssueLabels.PageInfo.EndCursor == "" {
			break
		}
		after = data.IssueLabels.PageInfo.EndCursor
	}

	return labels, nil
}

func (c *Client) UpdateLabel(ctx context.Context, id string, update LabelUpdate) (Label, error) {
	req := graphql.NewRequest(updateLabelMutation)
	req.Var("id", id)
	req.Var("input", update)

	var data issueLabelUpdateData
	if err := c.run(ctx, req, &data); err != nil {
		return Label{}, fmt.Errorf("failed to update label %s: %w", id, err)
	}
	if !data.IssueLabelUpdate.Success {
		return Label{}, fmt.Errorf("failed to update label %s: update was not successful", id)
	}
	return data.IssueLabelUpdate.IssueLabel.toLabel(), nil
}

func (c *Client) run(ctx context.Context, req *graphql.Request, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	return c.gql.Run(ctx, req, out)
}

// errorTransport turns non-2xx responses and GraphQL error payloads into
// *Error, keeping the status code and extensions.code that the GraphQL
// client would otherwise drop.
type errorTransport struct {
	next http.RoundTripper
}

func (t *errorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if apiErr := responseError(resp.StatusCode, raw); apiErr != nil {
		return nil, apiErr
	}

	resp.Body = io.NopCloser(bytes.NewReader(raw))
	return resp, nil
}

func responseError(status int, body []byte) *Error {
	var envelope struct {
		Errors []graphQLError `json:"errors"`
	}
	// Error bodies are not guaranteed to be JSON; fall back to the status code.
	_ = json.Unmarshal(body, &envelope)

	if len(envelope.Errors) > 0 {
		apiErr := &Error{StatusCode: status, Code: envelope.Errors[0].Extensions.Code}
		for _, e := range envelope.Errors {
			apiErr.Messages = append(apiErr.Messages, e.Message)
		}
		return apiErr
	}
	if status < 200 || status > 299 {
		return &Error{StatusCode: status}
	}
	return nil
}
