package constraint

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchor/pkg/errors"
)

// StandardSpacing is the default padding inset and grid gap.
const StandardSpacing = 8

// Option configures an Engine.
type Option func(*options)

type options struct {
	logger          *log.Logger
	standardSpacing float64
	viewMargins     bool
	defaultPriority int
}

func defaultOptions() options {
	return options{
		standardSpacing: StandardSpacing,
		defaultPriority: errors.PriorityRequired,
	}
}

// WithLogger sets the logger used for debug output. A nil logger falls back
// to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithStandardSpacing sets the inset used by padding attributes.
// Negative values are ignored.
func WithStandardSpacing(v float64) Option {
	return func(o *options) {
		if v >= 0 {
			o.standardSpacing = v
		}
	}
}

// WithViewMargins makes padding attributes use the view's own margin insets
// instead of the standard spacing.
func WithViewMargins(on bool) Option {
	return func(o *options) { o.viewMargins = on }
}

// WithDefaultPriority sets the priority of new expressions.
// Values outside 0..1000 are ignored.
func WithDefaultPriority(p int) Option {
	return func(o *options) {
		if p >= errors.PriorityMin && p <= errors.PriorityRequired {
			o.defaultPriority = p
		}
	}
}
