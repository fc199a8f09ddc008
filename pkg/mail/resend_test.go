package mail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type sentEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

func TestResendSenderSend(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotKey  string
		gotBody sentEmail
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	sender, err := NewResendSender("re_test", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}

	receipt, err := sender.Send(context.Background(), Message{
		From:           "Portfolio <hello@example.com>",
		To:             []string{"me@example.com"},
		ReplyTo:        "jane@co.com",
		Subject:        "New inquiry from Jane",
		HTML:           "<p>hi</p>",
		Text:           "hi",
		IdempotencyKey: "key-1",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if receipt.ID != "email_123" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if gotPath != "/emails" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer re_test" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotKey != "key-1" {
		t.Fatalf("unexpected idempotency key %q", gotKey)
	}
	want := sentEmail{
		From:    "Portfolio <hello@example.com>",
		To:      []string{"me@example.com"},
		ReplyTo: "jane@co.com",
		Subject: "New inquiry from Jane",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	}
	if diff := cmp.Diff(want, gotBody); diff != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestResendSenderBaseURLWithPrefix(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("Idempotency-Key")
		_, _ = w.Write([]byte(`{"id":"email_456"}`))
	}))
	defer srv.Close()

	sender, err := NewResendSender("re_test", WithBaseURL(srv.URL+"/proxy"))
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}
	if _, err := sender.Send(context.Background(), Message{To: []string{"me@example.com"}}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotPath != "/proxy/emails" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "" {
		t.Fatalf("expected no idempotency key, got %q", gotKey)
	}
}

func TestResendSenderProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`))
	}))
	defer srv.Close()

	sender, err := NewResendSender("re_test", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}

	_, err = sender.Send(context.Background(), Message{To: []string{"me@example.com"}})
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.Status != http.StatusUnprocessableEntity || !strings.Contains(perr.Message, "Invalid from field") {
		t.Fatalf("unexpected provider error %+v", perr)
	}
}

func TestResendSenderTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	sender, err := NewResendSender("re_test", WithBaseURL(url))
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}
	_, err = sender.Send(context.Background(), Message{To: []string{"me@example.com"}})
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		t.Fatalf("transport failure must not look like a provider answer: %v", err)
	}
}

func TestResendSenderHonoursCancelledContext(t *testing.T) {
	sender, err := NewResendSender("re_test", WithBaseURL("http://127.0.0.1:0"))
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sender.Send(ctx, Message{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewResendSenderValidatesInput(t *testing.T) {
	if _, err := NewResendSender("  "); err == nil {
		t.Fatalf("expected missing key error")
	}
	if _, err := NewResendSender("re_test", WithBaseURL("://bad")); err == nil {
		t.Fatalf("expected base url error")
	}
}

func TestNewFromConfig(t *testing.T) {
	if Configured(NewFromConfig("   ")) {
		t.Fatalf("blank key must produce the disabled capability")
	}
	if !Configured(NewFromConfig("re_live")) {
		t.Fatalf("key must produce a configured sender")
	}
	if Configured(nil) {
		t.Fatalf("nil sender is not configured")
	}
	if _, err := Disabled().Send(context.Background(), Message{}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
