package mail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// DefaultResendBaseURL is the Resend API root.
const DefaultResendBaseURL = "https://api.resend.com/"

// ResendOption configures a ResendSender.
type ResendOption func(*resendConfig)

type resendConfig struct {
	http    *http.Client
	baseURL string
}

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) ResendOption {
	return func(cfg *resendConfig) {
		if client != nil {
			cfg.http = client
		}
	}
}

// WithBaseURL points the sender at a different API root (tests, proxies).
func WithBaseURL(raw string) ResendOption {
	return func(cfg *resendConfig) {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			cfg.baseURL = trimmed
		}
	}
}

// ResendSender delivers messages through the Resend SDK.
type ResendSender struct {
	client *resend.Client
}

var _ Sender = (*ResendSender)(nil)

// NewResendSender constructs a sender authenticated with apiKey.
func NewResendSender(apiKey string, options ...ResendOption) (*ResendSender, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, errors.New("mail: resend api key is required")
	}
	cfg := &resendConfig{
		http:    &http.Client{Timeout: 60 * time.Second},
		baseURL: DefaultResendBaseURL,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	base, err := url.Parse(cfg.baseURL)
	if err != nil {
		return nil, fmt.Errorf("mail: resend base url: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	hc := *cfg.http
	transport := hc.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	hc.Transport = statusTransport{base: transport}

	client := resend.NewCustomClient(&hc, key)
	client.BaseURL = base
	return &ResendSender{client: client}, nil
}

// Send hands msg to the SDK. Answers outside 2xx are returned as
// *ProviderError carrying the HTTP status.
func (s *ResendSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}

	status := &responseStatus{}
	callCtx := context.WithValue(ctx, responseStatusKey{}, status)

	var (
		sent *resend.SendEmailResponse
		err  error
	)
	if key := strings.TrimSpace(msg.IdempotencyKey); key != "" {
		sent, err = s.client.Emails.SendWithOptions(callCtx, req, &resend.SendEmailOptions{IdempotencyKey: key})
	} else {
		sent, err = s.client.Emails.SendWithContext(callCtx, req)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Receipt{}, ctxErr
		}
		if code := status.code; code != 0 && (code < 200 || code > 299) {
			return Receipt{}, &ProviderError{
				Status:  code,
				Message: strings.TrimSpace(strings.TrimPrefix(err.Error(), "[ERROR]:")),
			}
		}
		return Receipt{}, fmt.Errorf("mail: send: %w", err)
	}
	if sent == nil {
		return Receipt{}, errors.New("mail: send: empty response")
	}
	return Receipt{ID: sent.Id}, nil
}

type responseStatusKey struct{}

// responseStatus records the status of the last response for one Send call;
// the SDK reports provider errors without it.
type responseStatus struct {
	code int
}

type statusTransport struct {
	base http.RoundTripper
}

func (t statusTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(r)
	if resp != nil {
		if status, ok := r.Context().Value(responseStatusKey{}).(*responseStatus); ok {
			status.code = resp.StatusCode
		}
	}
	return resp, err
}
