package settlement_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/okvann/billdesk/internal/settlement"
)

func TestSimulatedGateway_Authorize(t *testing.T) {
	t.Run("ApprovesAfterDelay", func(t *testing.T) {
		gw := settlement.SimulatedGateway{Delay: 10 * time.Millisecond}

		err := gw.Authorize(context.Background(), settlement.MethodCard, 13000)
		assert.NoError(t, err)
	})

	t.Run("ZeroDelayApprovesImmediately", func(t *testing.T) {
		gw := settlement.SimulatedGateway{}

		err := gw.Authorize(context.Background(), settlement.MethodUPI, 13000)
		assert.NoError(t, err)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		gw := settlement.SimulatedGateway{Delay: time.Minute}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := gw.Authorize(ctx, settlement.MethodCard, 13000)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
