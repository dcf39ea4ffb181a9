package models

import (
	"errors"
	"fmt"
	"time"

	"foojra-api/lifecycle"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultCancellationReason = "No reason provided"

var (
	ErrIllegalTransition = errors.New("order status transition not permitted")
	ErrNotCancellable    = errors.New("order can no longer be cancelled")
	ErrUnknownOption     = errors.New("chosen option does not exist on menu item")
)

// NewOrderItem snapshots a menu item into an order line: name, images
// and the current (possibly discounted) price are copied, chosen
// variation/add-on ids are resolved against the item and their price
// deltas frozen. The line total is unit price plus deltas, times
// quantity.
func NewOrderItem(item MenuItem, quantity int, variationIDs, addOnIDs []primitive.ObjectID, now time.Time) (OrderItem, error) {
	if quantity < 1 {
		return OrderItem{}, fmt.Errorf("quantity must be at least 1")
	}

	unit := item.CurrentPrice(now)

	variations, err := resolveOptions(item.Variations, variationIDs)
	if err != nil {
		return OrderItem{}, err
	}
	addOns, err := resolveOptions(item.AddOns, addOnIDs)
	if err != nil {
		return OrderItem{}, err
	}

	perUnit := unit
	for _, v := range variations {
		perUnit += v.Price
	}
	for _, a := range addOns {
		perUnit += a.Price
	}

	return OrderItem{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      unit,
		Images:     item.Images,
		Quantity:   quantity,
		Variations: variations,
		AddOns:     addOns,
		ItemTotal:  perUnit * float64(quantity),
	}, nil
}

func resolveOptions(available []ItemOption, chosen []primitive.ObjectID) ([]ChosenOption, error) {
	resolved := make([]ChosenOption, 0, len(chosen))
	for _, id := range chosen {
		found := false
		for _, opt := range available {
			if opt.ID == id {
				resolved = append(resolved, ChosenOption{OptionID: opt.ID, Name: opt.Name, Price: opt.Price})
				found = true
				break
			}
		}
		if !found {
			return nil, ErrUnknownOption
		}
	}
	return resolved, nil
}

// OrderTotal sums the frozen line totals.
func OrderTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.ItemTotal
	}
	return total
}

// ApplyStatus moves the order to target if the transition matrix allows
// it, stamping deliveredAt on Delivered and appending to the status
// history. The order is untouched on error.
func (o *Order) ApplyStatus(target lifecycle.OrderStatus, by primitive.ObjectID, note string, now time.Time) error {
	if !target.Valid() {
		return lifecycle.ErrUnknownStatus
	}
	// Cancellation stamps cancelledAt and a reason; moving to Cancelled
	// through the generic path must not bypass them.
	if target == lifecycle.StatusCancelled {
		return o.ApplyCancellation(note, by, now)
	}
	if !lifecycle.CanTransition(o.Status, target) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.Status, target)
	}

	o.Status = target
	if target == lifecycle.StatusDelivered {
		o.IsDelivered = true
		deliveredAt := now
		o.DeliveredAt = &deliveredAt
	}
	o.StatusHistory = append(o.StatusHistory, StatusEvent{
		Status:    target,
		Timestamp: now,
		Note:      note,
		UpdatedBy: by,
	})
	o.UpdatedAt = now
	return nil
}

// ApplyPayment records a payment confirmation. Returns false without
// touching the order when it is already paid, making confirmation
// replays a no-op. While the order is still Pending, payment itself
// advances it to Confirmed.
func (o *Order) ApplyPayment(result PaymentResult, idempotencyKey string, now time.Time) bool {
	if o.IsPaid {
		return false
	}

	o.IsPaid = true
	o.PaymentStatus = lifecycle.PaymentPaid
	paidAt := now
	o.PaidAt = &paidAt
	o.PaymentResult = &result
	if idempotencyKey != "" {
		o.IdempotencyKey = idempotencyKey
	}
	if o.Status == lifecycle.StatusPending {
		// payment is itself a status-advancing event
		_ = o.ApplyStatus(lifecycle.StatusConfirmed, o.UserID, "Payment confirmed", now)
	}
	o.UpdatedAt = now
	return true
}

// IdempotentReplay reports whether a repeated payment confirmation
// carrying key matches the key stored on first confirmation. A missing
// key on either side matches, since keys are optional.
func (o *Order) IdempotentReplay(key string) bool {
	if key == "" || o.IdempotencyKey == "" {
		return true
	}
	return key == o.IdempotencyKey
}

// ApplyCancellation cancels the order unless it is already terminal.
// The reason defaults when omitted. Refund handling stays a separately
// managed field.
func (o *Order) ApplyCancellation(reason string, by primitive.ObjectID, now time.Time) error {
	if !lifecycle.Cancellable(o.Status) {
		return fmt.Errorf("%w: status is %s", ErrNotCancellable, o.Status)
	}
	if reason == "" {
		reason = defaultCancellationReason
	}

	o.Status = lifecycle.StatusCancelled
	cancelledAt := now
	o.CancelledAt = &cancelledAt
	o.CancellationReason = reason
	o.CancelledBy = by
	o.StatusHistory = append(o.StatusHistory, StatusEvent{
		Status:    lifecycle.StatusCancelled,
		Timestamp: now,
		Note:      reason,
		UpdatedBy: by,
	})
	o.UpdatedAt = now
	return nil
}

// AddTracking appends a customer-facing delivery note.
func (o *Order) AddTracking(id, message, location string, now time.Time) {
	o.TrackingUpdates = append(o.TrackingUpdates, TrackingUpdate{
		ID:        id,
		Message:   message,
		Location:  location,
		Timestamp: now,
	})
	o.UpdatedAt = now
}
