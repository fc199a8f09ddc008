package validation

import (
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Issue codes.
const (
	CodeRequired = "required"
	CodeInvalid  = "invalid"
)

// Issue is a field-level validation message. Key is the message catalog
// identifier; Message is filled in once the issue has been translated.
type Issue struct {
	Field   model.Field `json:"field" msgpack:"field"`
	Code    string      `json:"code" msgpack:"code"`
	Key     string      `json:"key" msgpack:"key"`
	Message string      `json:"message,omitempty" msgpack:"message,omitempty"`
}

// Message catalog keys for field issues.
const (
	KeyNameRequired    = "field.name.required"
	KeyEmailRequired   = "field.email.required"
	KeyEmailInvalid    = "field.email.invalid"
	KeyProjectRequired = "field.project.required"
)

// FieldIssues computes the reactive field errors for form while the wizard
// shows step. The project error is only reported on step 2.
func FieldIssues(form model.FormData, step model.Step) []Issue {
	var issues []Issue

	if strings.TrimSpace(form.Name) == "" {
		issues = append(issues, Issue{Field: model.FieldName, Code: CodeRequired, Key: KeyNameRequired})
	}

	switch {
	case strings.TrimSpace(form.Email) == "":
		issues = append(issues, Issue{Field: model.FieldEmail, Code: CodeRequired, Key: KeyEmailRequired})
	case !IsValidEmail(form.Email):
		issues = append(issues, Issue{Field: model.FieldEmail, Code: CodeInvalid, Key: KeyEmailInvalid})
	}

	if step == model.StepProject && strings.TrimSpace(form.Project) == "" {
		issues = append(issues, Issue{Field: model.FieldProject, Code: CodeRequired, Key: KeyProjectRequired})
	}

	return issues
}

// IssueFor returns the first issue recorded for field.
func IssueFor(issues []Issue, field model.Field) (Issue, bool) {
	for _, issue := range issues {
		if issue.Field == field {
			return issue, true
		}
	}
	return Issue{}, false
}

// ByField groups issue messages by wire field name, the shape HTTP clients
// receive. Issues without a translated message fall back to their key.
func ByField(issues []Issue) map[string][]string {
	if len(issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(issues))
	for _, issue := range issues {
		msg := strings.TrimSpace(issue.Message)
		if msg == "" {
			msg = issue.Key
		}
		out[string(issue.Field)] = append(out[string(issue.Field)], msg)
	}
	return out
}
