package wizard_test

import (
	"testing"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/wizard"
)

func completeForm() model.FormData {
	return model.FormData{
		Name:       "Jane Doe",
		Email:      "jane@co.com",
		Project:    "Redesign checkout",
		Engagement: model.EngagementAdvisory,
	}
}

func TestCanProceed(t *testing.T) {
	tests := []struct {
		name string
		step model.Step
		data model.FormData
		want bool
	}{
		{"engagement empty", model.StepEngagement, model.FormData{}, false},
		{"engagement set", model.StepEngagement, model.FormData{Engagement: model.EngagementAdvisory}, true},
		{"project blank", model.StepProject, model.FormData{Project: "  \n "}, false},
		{"project set", model.StepProject, model.FormData{Project: "x"}, true},
		{"company optional", model.StepCompany, model.FormData{}, true},
		{"contact missing name", model.StepContact, model.FormData{Email: "a@b.co"}, false},
		{"contact missing email", model.StepContact, model.FormData{Name: "A"}, false},
		{"contact bad email", model.StepContact, model.FormData{Name: "A", Email: "a@b"}, false},
		{"contact complete", model.StepContact, model.FormData{Name: "A", Email: "a@b.co"}, true},
		{"review", model.StepReview, model.FormData{}, true},
		{"out of range", model.Step(9), completeForm(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := wizard.CanProceed(tt.step, tt.data)
			second := wizard.CanProceed(tt.step, tt.data)
			if first != second {
				t.Fatalf("CanProceed is not stable: %v then %v", first, second)
			}
			if first != tt.want {
				t.Fatalf("CanProceed(%d) = %v, want %v", tt.step, first, tt.want)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	full := completeForm()
	empty := model.FormData{}

	tests := []struct {
		name     string
		from, to wizard.State
		data     model.FormData
		want     bool
	}{
		{"begin", wizard.NotStarted(), wizard.Editing(1), empty, true},
		{"begin elsewhere", wizard.NotStarted(), wizard.Editing(2), full, false},
		{"next gated", wizard.Editing(1), wizard.Editing(2), empty, false},
		{"next allowed", wizard.Editing(1), wizard.Editing(2), full, true},
		{"skip ahead", wizard.Editing(1), wizard.Editing(3), full, false},
		{"back", wizard.Editing(2), wizard.Editing(1), empty, true},
		{"jump back", wizard.Editing(5), wizard.Editing(2), empty, true},
		{"stay", wizard.Editing(3), wizard.Editing(3), full, false},
		{"submit from review", wizard.Editing(5), wizard.Submitting(), empty, true},
		{"submit early", wizard.Editing(4), wizard.Submitting(), full, false},
		{"succeed", wizard.Submitting(), wizard.Succeeded(), empty, true},
		{"fail", wizard.Submitting(), wizard.Failed(), empty, true},
		{"retry", wizard.Failed(), wizard.Editing(5), empty, true},
		{"retry elsewhere", wizard.Failed(), wizard.Editing(1), empty, false},
		{"terminal", wizard.Succeeded(), wizard.Editing(5), full, false},
		{"invalid state", wizard.State{Phase: "bogus"}, wizard.Editing(1), full, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wizard.CanTransition(tt.from, tt.to, tt.data); got != tt.want {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if got := wizard.Editing(3).String(); got != "step(3)" {
		t.Fatalf("String() = %q", got)
	}
	if got := wizard.Failed().String(); got != "failed" {
		t.Fatalf("String() = %q", got)
	}
}
