package multicast

import (
	"context"
	"errors"
	"time"

	"github.com/randalmurphal/multicast/pkg/multicast/observability"
)

// notifyAll runs one error-aware fan-out pass over a member snapshot.
// Shared by Registry and WeakRegistry so both flavors carry identical
// failure-policy, logging, metric, and span behavior.
func notifyAll[T any](ctx context.Context, cfg settings, members []T, fn func(context.Context, T) error) error {
	ctx, span := cfg.spans.StartNotifySpan(ctx, cfg.id, len(members))
	observability.LogNotifyStart(cfg.logger, cfg.id, len(members))
	start := time.Now()

	var errs []error
	for i, member := range members {
		err := fn(ctx, member)
		if err == nil {
			continue
		}
		observability.LogNotifyError(cfg.logger, cfg.id, i, err)
		if cfg.onError != nil {
			cfg.onError(err)
		}
		errs = append(errs, err)
		if cfg.policy == FailFast {
			break
		}
	}

	duration := time.Since(start)

	var passErr error
	if len(errs) > 0 {
		passErr = &InvokeError{
			RegistryID: cfg.id,
			Members:    len(members),
			Failed:     len(errs),
			Err:        errors.Join(errs...),
		}
	} else {
		observability.LogNotifyComplete(cfg.logger, cfg.id, len(members), float64(duration.Microseconds())/1000.0)
	}

	cfg.metrics.RecordNotify(ctx, cfg.id, len(members), duration, passErr)
	cfg.spans.EndSpanWithError(span, passErr)
	return passErr
}
