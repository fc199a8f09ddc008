package model

// SubmissionResult is the normalized response of one submission attempt.
// Message is always a user-facing catalog string, never raw error detail.
type SubmissionResult struct {
	Success bool   `json:"success" msgpack:"success"`
	Message string `json:"message" msgpack:"message"`
}

// Succeeded builds a successful result.
func Succeeded(message string) SubmissionResult {
	return SubmissionResult{Success: true, Message: message}
}

// Failed builds a failed result.
func Failed(message string) SubmissionResult {
	return SubmissionResult{Success: false, Message: message}
}
