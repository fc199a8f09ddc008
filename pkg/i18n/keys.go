package i18n

// Message keys understood by the default catalog.
const (
	KeyMissingFields  = "submission.missing_fields"
	KeyInvalidEmail   = "submission.invalid_email"
	KeySendFailed     = "submission.failed"
	KeyTimeout        = "submission.timeout"
	KeyUnexpected     = "submission.unexpected"
	KeySuccess        = "submission.success"
	KeyThanks         = "submission.thanks"
	KeyInvalidRequest = "submission.invalid_request"
	KeyWizardFailure  = "wizard.unexpected"
	KeySessionExpired = "session.not_found"
	KeyEmailSubject   = "email.subject"
	KeyNotProvided    = "email.not_provided"
)
