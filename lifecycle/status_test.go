package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OrderStatus
		wantErr bool
	}{
		{name: "pending", input: "Pending", want: StatusPending},
		{name: "ready for pickup", input: "Ready for Pickup", want: StatusReadyForPickup},
		{name: "refunded", input: "Refunded", want: StatusRefunded},
		{name: "unknown value", input: "Shipped", wantErr: true},
		{name: "wrong case", input: "pending", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownStatus)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusRefunded.Terminal())

	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusReadyForPickup, StatusOutForDelivery} {
		assert.False(t, s.Terminal(), "status %s", s)
	}
}

// TestCanTransition walks the full from/to matrix: forward moves along
// the delivery chain are legal, backward moves are not, terminal states
// admit nothing, and Cancelled/Refunded are reachable from every
// non-terminal state.
func TestCanTransition(t *testing.T) {
	chain := []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusReadyForPickup, StatusOutForDelivery, StatusDelivered}

	for i, from := range chain {
		for j, to := range chain {
			want := i < 5 && j > i
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	for _, from := range chain[:5] {
		assert.True(t, CanTransition(from, StatusCancelled), "%s -> Cancelled", from)
		assert.True(t, CanTransition(from, StatusRefunded), "%s -> Refunded", from)
	}

	for _, terminal := range []OrderStatus{StatusDelivered, StatusCancelled, StatusRefunded} {
		for _, to := range AllStatuses {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}

	assert.False(t, CanTransition(StatusPending, "Shipped"))
	assert.False(t, CanTransition("Shipped", StatusConfirmed))
}

func TestActiveStatuses(t *testing.T) {
	active := ActiveStatuses()
	assert.Equal(t, []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusReadyForPickup, StatusOutForDelivery}, active)
	for _, s := range active {
		assert.False(t, s.Terminal(), "status %s", s)
	}
}

func TestCancellable(t *testing.T) {
	assert.True(t, Cancellable(StatusPending))
	assert.True(t, Cancellable(StatusOutForDelivery))
	assert.False(t, Cancellable(StatusDelivered))
	assert.False(t, Cancellable(StatusCancelled))
	assert.False(t, Cancellable(StatusRefunded))
	assert.False(t, Cancellable("Shipped"))
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range PaymentMethods {
		assert.True(t, ValidPaymentMethod(m))
	}
	assert.False(t, ValidPaymentMethod("Cheque"))
	assert.False(t, ValidPaymentMethod(""))
}

func TestOnlineMethod(t *testing.T) {
	assert.True(t, OnlineMethod("Credit Card"))
	assert.True(t, OnlineMethod("PayPal"))
	assert.False(t, OnlineMethod("Cash on Delivery"))
	assert.False(t, OnlineMethod("JazzCash"))
}
