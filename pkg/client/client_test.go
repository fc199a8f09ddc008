package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/client"
	"github.com/goliatone/go-contactform/pkg/httpapi"
	"github.com/goliatone/go-contactform/pkg/i18n"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/pipeline"
)

func TestClientSubmitAgainstServer(t *testing.T) {
	p, err := pipeline.New()
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	srv, err := httpapi.New(p)
	if err != nil {
		t.Fatalf("server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	c, err := client.New(ts.URL, client.WithHTTPClient(ts.Client()))
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	form := model.FormData{Name: "Jane Doe", Email: "jane@co.com", Project: "Redesign", Engagement: model.EngagementAdvisory}
	got, err := c.Submit(context.Background(), form)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(model.Succeeded("Thank you for your message!"), got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	ctx := i18n.WithLocale(context.Background(), "es")
	got, err = c.Submit(ctx, form.WithEmail("jane@co"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(model.Failed("Correo electrónico no válido"), got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestClientSubmitUnexpectedResponses(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer ts.Close()

	c, err := client.New(ts.URL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	_, err = c.Submit(context.Background(), model.FormData{})
	if !client.IsStatus(err, http.StatusServiceUnavailable) {
		t.Fatalf("expected 503 StatusError, got %v", err)
	}
}

func TestClientSubmitPassesThroughFailureBodies(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/base/api/contact" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(model.Failed("Failed to send email"))
	}))
	defer ts.Close()

	c, err := client.New(ts.URL + "/base")
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	got, err := c.Submit(context.Background(), model.FormData{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(model.Failed("Failed to send email"), got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsBadURLs(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com", "://bad"} {
		if _, err := client.New(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
