package model

import (
	"errors"
	"fmt"
	"strings"
)

// Field identifies a FormData attribute by its wire name.
type Field string

const (
	FieldName       Field = "name"
	FieldEmail      Field = "email"
	FieldCompany    Field = "company"
	FieldWebsite    Field = "website"
	FieldProject    Field = "project"
	FieldSuccess    Field = "success"
	FieldEngagement Field = "engagement"
)

// ErrUnknownField is returned when a field name does not map to FormData.
var ErrUnknownField = errors.New("model: unknown field")

// Fields lists every FormData field in wire order.
func Fields() []Field {
	return []Field{
		FieldName,
		FieldEmail,
		FieldCompany,
		FieldWebsite,
		FieldProject,
		FieldSuccess,
		FieldEngagement,
	}
}

// ParseField resolves a wire name into a Field.
func ParseField(raw string) (Field, error) {
	candidate := Field(strings.ToLower(strings.TrimSpace(raw)))
	for _, field := range Fields() {
		if field == candidate {
			return field, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
}

// FormData carries the visitor's answers. The zero value is the empty form
// a wizard starts with.
type FormData struct {
	Name       string `json:"name" msgpack:"name"`
	Email      string `json:"email" msgpack:"email"`
	Company    string `json:"company" msgpack:"company"`
	Website    string `json:"website" msgpack:"website"`
	Project    string `json:"project" msgpack:"project"`
	Success    string `json:"success" msgpack:"success"`
	Engagement string `json:"engagement" msgpack:"engagement"`
}

// Get returns the value stored for field, or "" when the field is unknown.
func (f FormData) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldCompany:
		return f.Company
	case FieldWebsite:
		return f.Website
	case FieldProject:
		return f.Project
	case FieldSuccess:
		return f.Success
	case FieldEngagement:
		return f.Engagement
	default:
		return ""
	}
}

// Set returns a copy of f with field replaced by value. The receiver is never
// modified.
func (f FormData) Set(field Field, value string) (FormData, error) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldCompany:
		f.Company = value
	case FieldWebsite:
		f.Website = value
	case FieldProject:
		f.Project = value
	case FieldSuccess:
		f.Success = value
	case FieldEngagement:
		f.Engagement = value
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return f, nil
}

// With is Set for callers that already hold a known Field. Unknown fields
// leave the value unchanged.
func (f FormData) With(field Field, value string) FormData {
	next, err := f.Set(field, value)
	if err != nil {
		return f
	}
	return next
}

func (f FormData) WithName(v string) FormData       { return f.With(FieldName, v) }
func (f FormData) WithEmail(v string) FormData      { return f.With(FieldEmail, v) }
func (f FormData) WithCompany(v string) FormData    { return f.With(FieldCompany, v) }
func (f FormData) WithWebsite(v string) FormData    { return f.With(FieldWebsite, v) }
func (f FormData) WithProject(v string) FormData    { return f.With(FieldProject, v) }
func (f FormData) WithSuccess(v string) FormData    { return f.With(FieldSuccess, v) }
func (f FormData) WithEngagement(v string) FormData { return f.With(FieldEngagement, v) }

// DisplayWebsite renders the stored website with the https:// prefix the UI
// always shows. An empty website stays empty.
func (f FormData) DisplayWebsite() string {
	site := strings.TrimSpace(f.Website)
	if site == "" {
		return ""
	}
	return "https://" + site
}

// Map flattens the form into a wire-name keyed map, the payload shape used by
// analytics events.
func (f FormData) Map() map[string]string {
	out := make(map[string]string, len(Fields()))
	for _, field := range Fields() {
		out[string(field)] = f.Get(field)
	}
	return out
}
