// Package model defines the values exchanged between the contact wizard and the
// submission pipeline. FormData is an immutable value: every setter returns a
// copy, so a snapshot taken before submission can be restored on retry without
// aliasing. Engagement titles come from a fixed catalog and Step enumerates the
// five wizard pages.
package model
