package birthday

import (
	"context"
	"time"
)

// DigestScheduler hands a single owner's digest over to the delivery
// pipeline. Publishing is independent per owner.
type DigestScheduler interface {
	ScheduleDigest(ctx context.Context, owner ChatID, at time.Time) error
}
