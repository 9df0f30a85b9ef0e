package settlement

import (
	"context"
	"time"
)

// SimulatedGateway approves every non-cash authorization after a fixed
// delay. It stands in for a real acquirer; the Authorizer interface is
// where one would plug in.
type SimulatedGateway struct {
	Delay time.Duration
}

func (g SimulatedGateway) Authorize(ctx context.Context, _ Method, _ int64) error {
	if g.Delay <= 0 {
		return nil
	}

	timer := time.NewTimer(g.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
