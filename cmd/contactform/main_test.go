package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RESEND_API_KEY", "CONTACT_LOCALE", "CONTACT_TO", "CONTACT_LOG_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func decodeResult(t *testing.T, out string) model.SubmissionResult {
	t.Helper()
	var result model.SubmissionResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	return result
}

func TestSubmitFromFlags(t *testing.T) {
	clearEnv(t)

	out, err := runCmd(t, "", "submit",
		"--name", "Jane",
		"--email", "jane@example.com",
		"--project", "Build a dashboard",
		"--engagement", "advisory",
	)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := model.Succeeded("Thank you for your message!")
	if diff := cmp.Diff(want, decodeResult(t, out)); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitFromStdinWithOverride(t *testing.T) {
	clearEnv(t)

	doc := `{"name":"Jane","email":"not-an-email","project":"Build a dashboard"}`
	out, err := runCmd(t, doc, "submit", "--file", "-", "--email", "jane@example.com")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !decodeResult(t, out).Success {
		t.Fatalf("expected success, got %s", out)
	}
}

func TestSubmitReportsValidationFailure(t *testing.T) {
	clearEnv(t)

	out, err := runCmd(t, "", "submit", "--name", "Jane", "--email", "nope", "--project", "x")
	if err == nil || err.Error() != "Invalid email address" {
		t.Fatalf("expected validation error, got %v", err)
	}
	if diff := cmp.Diff(model.Failed("Invalid email address"), decodeResult(t, out)); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitUsesConfiguredLocale(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONTACT_LOCALE", "es")

	out, err := runCmd(t, "", "submit", "--name", "Jane")
	if err == nil {
		t.Fatalf("expected missing fields error")
	}
	if diff := cmp.Diff(model.Failed("Faltan campos obligatorios"), decodeResult(t, out)); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitRejectsUnknownEngagement(t *testing.T) {
	clearEnv(t)

	_, err := runCmd(t, "", "submit", "--name", "Jane", "--engagement", "Weekend hackathon")
	if err == nil || !strings.Contains(err.Error(), "unknown engagement") {
		t.Fatalf("expected unknown engagement error, got %v", err)
	}
}

func TestRootRejectsBadLogFormat(t *testing.T) {
	clearEnv(t)

	_, err := runCmd(t, "", "--log-format", "xml", "submit")
	if err == nil {
		t.Fatalf("expected logger error")
	}
}
