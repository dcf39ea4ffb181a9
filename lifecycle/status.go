package lifecycle

import "errors"

// OrderStatus is the closed set of states an order moves through.
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusConfirmed      OrderStatus = "Confirmed"
	StatusPreparing      OrderStatus = "Preparing"
	StatusReadyForPickup OrderStatus = "Ready for Pickup"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
	StatusRefunded       OrderStatus = "Refunded"
)

var ErrUnknownStatus = errors.New("unknown order status")

// statusRank orders the linear delivery progression. Terminal escape
// states are not part of the chain.
var statusRank = map[OrderStatus]int{
	StatusPending:        0,
	StatusConfirmed:      1,
	StatusPreparing:      2,
	StatusReadyForPickup: 3,
	StatusOutForDelivery: 4,
	StatusDelivered:      5,
}

// AllStatuses lists every valid status value.
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReadyForPickup,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
	StatusRefunded,
}

// ActiveStatuses lists the statuses of orders still in flight, the
// complement of the terminal set.
func ActiveStatuses() []OrderStatus {
	active := make([]OrderStatus, 0, len(AllStatuses))
	for _, s := range AllStatuses {
		if !s.Terminal() {
			active = append(active, s)
		}
	}
	return active
}

// ParseStatus validates a raw string against the closed status set.
func ParseStatus(s string) (OrderStatus, error) {
	for _, status := range AllStatuses {
		if OrderStatus(s) == status {
			return status, nil
		}
	}
	return "", ErrUnknownStatus
}

// Valid reports whether s is a member of the closed status set.
func (s OrderStatus) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Terminal reports whether no further status transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// CanTransition is the single dispatch point for the transition matrix.
// Orders move forward along the delivery chain; Cancelled and Refunded
// are reachable from any non-terminal state.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled || to == StatusRefunded {
		return true
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// Cancellable reports whether an order in status s may still be
// cancelled by the customer or the shop owner.
func Cancellable(s OrderStatus) bool {
	return s.Valid() && !s.Terminal()
}
