package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
)

func TestFormDataSetIsCopyOnWrite(t *testing.T) {
	original := model.FormData{Name: "Jane"}

	updated, err := original.Set(model.FieldProject, "Redesign checkout")
	if err != nil {
		t.Fatalf("set project: %v", err)
	}

	if original.Project != "" {
		t.Fatalf("original mutated: %+v", original)
	}
	want := model.FormData{Name: "Jane", Project: "Redesign checkout"}
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Fatalf("updated form mismatch (-want +got):\n%s", diff)
	}
}

func TestFormDataSetUnknownField(t *testing.T) {
	form := model.FormData{Name: "Jane"}
	got, err := form.Set(model.Field("phone"), "555")
	if !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if got != form {
		t.Fatalf("expected form unchanged, got %+v", got)
	}
	if with := form.With(model.Field("phone"), "555"); with != form {
		t.Fatalf("With should ignore unknown fields, got %+v", with)
	}
}

func TestFormDataGetAndMap(t *testing.T) {
	form := model.FormData{}.
		WithName("Jane Doe").
		WithEmail("jane@co.com").
		WithCompany("Co").
		WithWebsite("co.com").
		WithProject("Checkout").
		WithSuccess("More sales").
		WithEngagement(model.EngagementAdvisory)

	for _, field := range model.Fields() {
		if form.Get(field) == "" {
			t.Fatalf("expected %s to be set", field)
		}
	}

	want := map[string]string{
		"name":       "Jane Doe",
		"email":      "jane@co.com",
		"company":    "Co",
		"website":    "co.com",
		"project":    "Checkout",
		"success":    "More sales",
		"engagement": "Advisory",
	}
	if diff := cmp.Diff(want, form.Map()); diff != "" {
		t.Fatalf("map mismatch (-want +got):\n%s", diff)
	}
}

func TestParseField(t *testing.T) {
	field, err := model.ParseField("  Email ")
	if err != nil {
		t.Fatalf("parse field: %v", err)
	}
	if field != model.FieldEmail {
		t.Fatalf("expected email, got %q", field)
	}
	if _, err := model.ParseField("phone"); !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestDisplayWebsite(t *testing.T) {
	if got := (model.FormData{}).DisplayWebsite(); got != "" {
		t.Fatalf("expected empty website, got %q", got)
	}
	if got := (model.FormData{Website: "example.com/work"}).DisplayWebsite(); got != "https://example.com/work" {
		t.Fatalf("unexpected display website %q", got)
	}
}

func TestEngagementCatalog(t *testing.T) {
	titles := model.EngagementTitles()
	if len(titles) != 4 {
		t.Fatalf("expected four engagement models, got %d", len(titles))
	}
	if !model.IsEngagement("Advisory") {
		t.Fatalf("expected Advisory to be a catalog title")
	}
	if model.IsEngagement("advisory") {
		t.Fatalf("IsEngagement must match exactly")
	}
	got, ok := model.LookupEngagement(" advisory ")
	if !ok || got.Title != model.EngagementAdvisory {
		t.Fatalf("lookup mismatch: %+v %v", got, ok)
	}

	catalog := model.Engagements()
	catalog[0].Title = "mutated"
	if model.Engagements()[0].Title == "mutated" {
		t.Fatalf("Engagements must return a copy")
	}
}

func TestStepBounds(t *testing.T) {
	if model.Step(0).Valid() || model.Step(6).Valid() {
		t.Fatalf("out of range steps must be invalid")
	}
	for _, step := range model.Steps() {
		if !step.Valid() {
			t.Fatalf("step %d should be valid", step)
		}
	}
	if model.StepReview.Title() != "Review" {
		t.Fatalf("unexpected title %q", model.StepReview.Title())
	}
}
