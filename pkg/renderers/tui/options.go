package tui

// Theme holds prefixes the runner adds to informational, error and success
// lines.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultBanner is printed by the runner's celebrator.
const DefaultBanner = `
  *  .  *   .   *  .  *
 .   Message sent!    .
  *  .  *   .   *  .  *`

// Option configures the Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithBanner replaces DefaultBanner. An empty banner disables it.
func WithBanner(banner string) Option {
	return func(r *Runner) {
		r.banner = banner
	}
}
