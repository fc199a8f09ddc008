// Package client submits contact forms to a remote contactform server. A
// Client satisfies wizard.Submitter so the terminal wizard can run against a
// deployed API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-contactform/pkg/i18n"
	"github.com/goliatone/go-contactform/pkg/model"
)

// DefaultTimeout bounds a whole submission round trip. It exceeds the server's
// send deadline.
const DefaultTimeout = 45 * time.Second

const contactPath = "/api/contact"

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client posts forms to /api/contact.
type Client struct {
	endpoint string
	http     *http.Client
}

// New builds a client for the server at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("client: base url must be http or https, got %q", baseURL)
	}
	endpoint := base.JoinPath(contactPath)

	c := &Client{
		endpoint: endpoint.String(),
		http:     &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Submit posts form and decodes the server's SubmissionResult. Non-2xx
// responses carrying a SubmissionResult body are returned as results; any
// other failure is returned as an error.
func (c *Client) Submit(ctx context.Context, form model.FormData) (model.SubmissionResult, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return model.SubmissionResult{}, fmt.Errorf("client: encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return model.SubmissionResult{}, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if locale := i18n.LocaleFrom(ctx, ""); locale != "" {
		req.Header.Set("Accept-Language", locale)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return model.SubmissionResult{}, fmt.Errorf("client: post: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return model.SubmissionResult{}, fmt.Errorf("client: read response: %w", err)
	}

	var result model.SubmissionResult
	if err := json.Unmarshal(body, &result); err != nil || strings.TrimSpace(result.Message) == "" {
		return model.SubmissionResult{}, &StatusError{Status: resp.StatusCode}
	}
	if resp.StatusCode >= 300 && result.Success {
		return model.SubmissionResult{}, &StatusError{Status: resp.StatusCode}
	}
	return result, nil
}

// StatusError reports a response that did not carry a SubmissionResult.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("client: unexpected response status %d", e.Status)
}

// IsStatus reports whether err is a StatusError with the given status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}
