package model

import "fmt"

// Step numbers the wizard pages, starting at one.
type Step int

const (
	StepEngagement Step = iota + 1
	StepProject
	StepCompany
	StepContact
	StepReview
)

const (
	FirstStep = StepEngagement
	LastStep  = StepReview
)

var stepTitles = map[Step]string{
	StepEngagement: "Engagement",
	StepProject:    "Project",
	StepCompany:    "Company",
	StepContact:    "Contact",
	StepReview:     "Review",
}

// Valid reports whether s lies within [FirstStep, LastStep].
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// Title returns the step indicator label.
func (s Step) Title() string {
	if title, ok := stepTitles[s]; ok {
		return title
	}
	return fmt.Sprintf("Step %d", int(s))
}

// Steps lists every step in order.
func Steps() []Step {
	return []Step{StepEngagement, StepProject, StepCompany, StepContact, StepReview}
}
