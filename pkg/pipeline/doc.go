// Package pipeline implements the server side of a contact submission: it
// re-validates the form, sanitizes the optional website, renders the inquiry
// email and hands it to the configured mail.Sender under a bounded wait. Every
// outcome, including panics, is folded into a model.SubmissionResult; Submit
// never returns an error.
package pipeline
