package model

import "strings"

// Engagement describes one of the fixed service offerings a visitor picks on
// the first wizard step.
type Engagement struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

const (
	EngagementConsulting = "Short-term Consulting"
	EngagementContract   = "Contract Project"
	EngagementFullTime   = "Full-time Role"
	EngagementAdvisory   = "Advisory"
)

var engagements = []Engagement{
	{Title: EngagementConsulting, Description: "Focused help on a specific product or design problem, a few weeks at most."},
	{Title: EngagementContract, Description: "A scoped project with clear deliverables and a defined timeline."},
	{Title: EngagementFullTime, Description: "Joining your team to own product and design end to end."},
	{Title: EngagementAdvisory, Description: "Ongoing guidance for founders and product leaders."},
}

// Engagements returns a copy of the engagement catalog in display order.
func Engagements() []Engagement {
	out := make([]Engagement, len(engagements))
	copy(out, engagements)
	return out
}

// EngagementTitles returns the catalog titles in display order.
func EngagementTitles() []string {
	out := make([]string, 0, len(engagements))
	for _, e := range engagements {
		out = append(out, e.Title)
	}
	return out
}

// IsEngagement reports whether title exactly matches a catalog entry.
func IsEngagement(title string) bool {
	for _, e := range engagements {
		if e.Title == title {
			return true
		}
	}
	return false
}

// LookupEngagement finds a catalog entry ignoring case and surrounding space.
func LookupEngagement(title string) (Engagement, bool) {
	trimmed := strings.TrimSpace(title)
	for _, e := range engagements {
		if strings.EqualFold(e.Title, trimmed) {
			return e, true
		}
	}
	return Engagement{}, false
}
