// Package stream consumes live chat events and classifies them as they
// arrive. This path is telemetry: results are logged, not persisted,
// and a malformed event is skipped rather than retried forever.
package stream

import "context"

type Consumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}
