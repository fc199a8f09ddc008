// Package wizard implements the five-step contact form as a state machine.
//
// A Wizard owns the visitor's FormData, the per-field touched flags and the
// current State. Front-ends (the terminal runner, the HTTP session API) drive
// it through Begin, Set, Blur, Next, Back, JumpTo, Submit and Retry and read
// back State, Data and VisibleErrors. Gating rules are exposed as the pure
// functions CanProceed and CanTransition so callers can disable controls
// without mutating anything.
package wizard
