// Package registry asks the external process supervisor which channel
// workers exist and how they are doing.
package registry

import (
	"context"

	"github.com/rileyhilliard/streamdash/internal/probe"
)

// Registry lists the supervisor's workers. Implementations never return an
// error value: a failed query yields an unavailable result whose Value is an
// empty list, so callers can always render "no active streams".
type Registry interface {
	List(ctx context.Context) probe.Result[[]WorkerInfo]
}
