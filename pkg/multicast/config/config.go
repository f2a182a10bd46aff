package config

import (
	"fmt"

	"github.com/randalmurphal/multicast/pkg/multicast"
	"github.com/randalmurphal/multicast/pkg/multicast/observability"
)

// Config holds file-loadable registry settings.
type Config struct {
	// FailurePolicy selects how Notify reacts to callback errors.
	// Valid values: "fail_fast" (default), "continue".
	FailurePolicy string `yaml:"failure_policy" json:"failure_policy"`

	// MaxMembers caps registry membership.
	// Default: 0 (unlimited)
	MaxMembers int `yaml:"max_members" json:"max_members"`

	// Metrics enables OTel metrics recording.
	Metrics bool `yaml:"metrics" json:"metrics"`

	// Tracing enables OTel spans around notify passes.
	Tracing bool `yaml:"tracing" json:"tracing"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		FailurePolicy: string(multicast.FailFast),
	}
}

// Validate checks field values.
func (c Config) Validate() error {
	switch multicast.FailurePolicy(c.FailurePolicy) {
	case multicast.FailFast, multicast.ContinueOnError, "":
	default:
		return fmt.Errorf("unknown failure_policy: %q", c.FailurePolicy)
	}
	if c.MaxMembers < 0 {
		return fmt.Errorf("max_members must be >= 0, got %d", c.MaxMembers)
	}
	return nil
}

// Options converts the configuration into registry options, suitable for
// passing to multicast.New or multicast.NewWeak.
func (c Config) Options() []multicast.Option {
	var opts []multicast.Option
	if c.FailurePolicy != "" {
		opts = append(opts, multicast.WithFailurePolicy(multicast.FailurePolicy(c.FailurePolicy)))
	}
	if c.MaxMembers > 0 {
		opts = append(opts, multicast.WithMaxMembers(c.MaxMembers))
	}
	if c.Metrics {
		opts = append(opts, multicast.WithMetrics(observability.NewMetricsRecorder()))
	}
	if c.Tracing {
		opts = append(opts, multicast.WithSpans(observability.NewSpanManager()))
	}
	return opts
}
