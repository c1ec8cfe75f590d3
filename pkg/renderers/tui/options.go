package tui

import (
	"io"

	"github.com/goliatone/go-widgetgen/pkg/logging"
)

// Theme captures optional prefixes applied to prompt and section messages.
type Theme struct {
	PromptPrefix  string
	SectionPrefix string
}

// Option configures the Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithOutput directs section headers printed by the default driver to out.
func WithOutput(out io.Writer) Option {
	return func(f *Filler) {
		f.out = out
	}
}

// WithLabeler overrides how prompt messages are derived from field names.
func WithLabeler(labeler func(name string) string) Option {
	return func(f *Filler) {
		if labeler != nil {
			f.labeler = labeler
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Filler) {
		f.theme = theme
	}
}

// WithLogger sets the logger used for per-field debug entries.
func WithLogger(logger logging.Logger) Option {
	return func(f *Filler) {
		f.logger = logging.OrNoOp(logger)
	}
}
