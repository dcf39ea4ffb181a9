package models

import (
	"testing"
	"time"

	"foojra-api/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testMenuItem() MenuItem {
	return MenuItem{
		ID:     primitive.NewObjectID(),
		ShopID: primitive.NewObjectID(),
		Name:   "Chicken Karahi",
		Price:  15,
		Images: []string{"karahi.jpg"},
		Variations: []ItemOption{
			{ID: primitive.NewObjectID(), Name: "Full", Price: 5},
			{ID: primitive.NewObjectID(), Name: "Half", Price: 0},
		},
		AddOns: []ItemOption{
			{ID: primitive.NewObjectID(), Name: "Extra Naan", Price: 1.5},
		},
		IsAvailable: true,
	}
}

func testOrder() *Order {
	userID := primitive.NewObjectID()
	return &Order{
		ID:          primitive.NewObjectID(),
		OrderNumber: "ORD123456789",
		UserID:      userID,
		ShopID:      primitive.NewObjectID(),
		Status:      lifecycle.StatusPending,
		StatusHistory: []StatusEvent{{
			Status:    lifecycle.StatusPending,
			Timestamp: testNow,
			Note:      "Order placed",
			UpdatedBy: userID,
		}},
		PaymentStatus: lifecycle.PaymentPending,
		Version:       1,
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	}
}

func TestNewOrderItemSnapshotsPriceAndOptions(t *testing.T) {
	item := testMenuItem()

	line, err := NewOrderItem(item, 2,
		[]primitive.ObjectID{item.Variations[0].ID},
		[]primitive.ObjectID{item.AddOns[0].ID},
		testNow,
	)
	require.NoError(t, err)

	assert.Equal(t, item.ID, line.MenuItemID)
	assert.Equal(t, "Chicken Karahi", line.Name)
	assert.Equal(t, 15.0, line.Price)
	assert.Equal(t, []string{"karahi.jpg"}, line.Images)
	require.Len(t, line.Variations, 1)
	assert.Equal(t, "Full", line.Variations[0].Name)
	require.Len(t, line.AddOns, 1)
	// (15 + 5 + 1.5) * 2
	assert.InDelta(t, 43.0, line.ItemTotal, 1e-9)
}

func TestNewOrderItemUsesDiscountedPrice(t *testing.T) {
	item := testMenuItem()
	item.Offers = Offers{HasDiscount: true, DiscountPrice: 10, ValidUntil: testNow.Add(time.Hour)}

	line, err := NewOrderItem(item, 3, nil, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, 10.0, line.Price)
	assert.InDelta(t, 30.0, line.ItemTotal, 1e-9)
}

// A line's snapshot is frozen at creation: changing the live catalog
// price afterwards must not move the stored amounts.
func TestOrderItemSnapshotImmutability(t *testing.T) {
	item := testMenuItem()

	line, err := NewOrderItem(item, 1, nil, nil, testNow)
	require.NoError(t, err)
	require.Equal(t, 15.0, line.Price)

	item.Price = 99
	item.Name = "Renamed Dish"

	assert.Equal(t, 15.0, line.Price)
	assert.Equal(t, "Chicken Karahi", line.Name)
	assert.InDelta(t, 15.0, line.ItemTotal, 1e-9)
}

func TestNewOrderItemRejectsUnknownOption(t *testing.T) {
	item := testMenuItem()

	_, err := NewOrderItem(item, 1, []primitive.ObjectID{primitive.NewObjectID()}, nil, testNow)
	assert.ErrorIs(t, err, ErrUnknownOption)

	_, err = NewOrderItem(item, 0, nil, nil, testNow)
	assert.Error(t, err)
}

func TestOrderTotal(t *testing.T) {
	items := []OrderItem{{ItemTotal: 43}, {ItemTotal: 30}}
	assert.InDelta(t, 73.0, OrderTotal(items), 1e-9)
	assert.Zero(t, OrderTotal(nil))
}

func TestApplyStatusAppendsHistory(t *testing.T) {
	order := testOrder()
	owner := primitive.NewObjectID()
	before := append([]StatusEvent(nil), order.StatusHistory...)

	err := order.ApplyStatus(lifecycle.StatusConfirmed, owner, "accepted", testNow.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, lifecycle.StatusConfirmed, order.Status)
	require.Len(t, order.StatusHistory, len(before)+1)
	// prior entries untouched
	assert.Equal(t, before, order.StatusHistory[:len(before)])

	last := order.StatusHistory[len(order.StatusHistory)-1]
	assert.Equal(t, lifecycle.StatusConfirmed, last.Status)
	assert.Equal(t, "accepted", last.Note)
	assert.Equal(t, owner, last.UpdatedBy)
}

func TestApplyStatusRejectsIllegalTransition(t *testing.T) {
	tests := []struct {
		name   string
		from   lifecycle.OrderStatus
		target lifecycle.OrderStatus
	}{
		{name: "backward move", from: lifecycle.StatusPreparing, target: lifecycle.StatusConfirmed},
		{name: "from delivered", from: lifecycle.StatusDelivered, target: lifecycle.StatusPending},
		{name: "from cancelled", from: lifecycle.StatusCancelled, target: lifecycle.StatusConfirmed},
		{name: "same status", from: lifecycle.StatusPreparing, target: lifecycle.StatusPreparing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := testOrder()
			order.Status = tt.from
			snapshot := *order

			err := order.ApplyStatus(tt.target, primitive.NewObjectID(), "", testNow)
			require.ErrorIs(t, err, ErrIllegalTransition)
			// order untouched on rejection
			assert.Equal(t, snapshot.Status, order.Status)
			assert.Len(t, order.StatusHistory, len(snapshot.StatusHistory))
		})
	}
}

func TestApplyStatusRejectsUnknownStatus(t *testing.T) {
	order := testOrder()
	err := order.ApplyStatus("Shipped", primitive.NewObjectID(), "", testNow)
	assert.ErrorIs(t, err, lifecycle.ErrUnknownStatus)
}

func TestApplyStatusStampsDelivery(t *testing.T) {
	order := testOrder()
	order.Status = lifecycle.StatusOutForDelivery
	deliveredAt := testNow.Add(40 * time.Minute)

	err := order.ApplyStatus(lifecycle.StatusDelivered, primitive.NewObjectID(), "", deliveredAt)
	require.NoError(t, err)

	assert.True(t, order.IsDelivered)
	require.NotNil(t, order.DeliveredAt)
	assert.Equal(t, deliveredAt, *order.DeliveredAt)
}

func TestApplyPaymentAdvancesPendingOrder(t *testing.T) {
	order := testOrder()
	paidAt := testNow.Add(2 * time.Minute)

	changed := order.ApplyPayment(PaymentResult{
		TransactionID: "txn_123",
		Method:        "Credit Card",
		Status:        "success",
		PaidAt:        paidAt,
	}, "idem-1", paidAt)

	require.True(t, changed)
	assert.True(t, order.IsPaid)
	assert.Equal(t, lifecycle.PaymentPaid, order.PaymentStatus)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, paidAt, *order.PaidAt)
	require.NotNil(t, order.PaymentResult)
	assert.Equal(t, "txn_123", order.PaymentResult.TransactionID)
	assert.Equal(t, "idem-1", order.IdempotencyKey)

	// payment auto-advances Pending to Confirmed
	assert.Equal(t, lifecycle.StatusConfirmed, order.Status)
	assert.Len(t, order.StatusHistory, 2)
}

func TestApplyPaymentDoesNotAdvanceNonPending(t *testing.T) {
	order := testOrder()
	order.Status = lifecycle.StatusPreparing

	changed := order.ApplyPayment(PaymentResult{TransactionID: "txn_1"}, "", testNow)
	require.True(t, changed)
	assert.Equal(t, lifecycle.StatusPreparing, order.Status)
	assert.Len(t, order.StatusHistory, 1)
}

func TestApplyPaymentReplayIsNoop(t *testing.T) {
	order := testOrder()
	require.True(t, order.ApplyPayment(PaymentResult{TransactionID: "txn_1"}, "", testNow))
	snapshot := *order

	changed := order.ApplyPayment(PaymentResult{TransactionID: "txn_2"}, "", testNow.Add(time.Hour))
	assert.False(t, changed)
	assert.Equal(t, snapshot.PaymentResult, order.PaymentResult)
	assert.Equal(t, snapshot.Status, order.Status)
	assert.Len(t, order.StatusHistory, len(snapshot.StatusHistory))
}

// Moving to Cancelled through the generic status update must stamp the
// same fields as a direct cancellation.
func TestApplyStatusCancelledStampsCancellation(t *testing.T) {
	order := testOrder()
	by := primitive.NewObjectID()
	cancelledAt := testNow.Add(time.Minute)

	err := order.ApplyStatus(lifecycle.StatusCancelled, by, "out of stock", cancelledAt)
	require.NoError(t, err)

	assert.Equal(t, lifecycle.StatusCancelled, order.Status)
	require.NotNil(t, order.CancelledAt)
	assert.Equal(t, cancelledAt, *order.CancelledAt)
	assert.Equal(t, "out of stock", order.CancellationReason)
	assert.Equal(t, by, order.CancelledBy)

	// without a note the reason still defaults
	second := testOrder()
	require.NoError(t, second.ApplyStatus(lifecycle.StatusCancelled, by, "", testNow))
	require.NotNil(t, second.CancelledAt)
	assert.Equal(t, "No reason provided", second.CancellationReason)
}

func TestIdempotentReplayKeyComparison(t *testing.T) {
	order := testOrder()
	require.True(t, order.ApplyPayment(PaymentResult{TransactionID: "txn_1"}, "idem-1", testNow))

	assert.True(t, order.IdempotentReplay("idem-1"))
	assert.True(t, order.IdempotentReplay(""))
	assert.False(t, order.IdempotentReplay("idem-2"))

	// confirmations without a stored key accept any replay
	unkeyed := testOrder()
	require.True(t, unkeyed.ApplyPayment(PaymentResult{TransactionID: "txn_2"}, "", testNow))
	assert.True(t, unkeyed.IdempotentReplay("idem-1"))
}

func TestApplyCancellation(t *testing.T) {
	order := testOrder()
	by := order.UserID
	cancelledAt := testNow.Add(5 * time.Minute)

	err := order.ApplyCancellation("changed my mind", by, cancelledAt)
	require.NoError(t, err)

	assert.Equal(t, lifecycle.StatusCancelled, order.Status)
	require.NotNil(t, order.CancelledAt)
	assert.Equal(t, cancelledAt, *order.CancelledAt)
	assert.Equal(t, "changed my mind", order.CancellationReason)
	assert.Equal(t, by, order.CancelledBy)
	assert.Len(t, order.StatusHistory, 2)
}

func TestApplyCancellationDefaultsReason(t *testing.T) {
	order := testOrder()
	require.NoError(t, order.ApplyCancellation("", order.UserID, testNow))
	assert.Equal(t, "No reason provided", order.CancellationReason)
}

func TestApplyCancellationTerminality(t *testing.T) {
	for _, status := range []lifecycle.OrderStatus{lifecycle.StatusDelivered, lifecycle.StatusCancelled, lifecycle.StatusRefunded} {
		order := testOrder()
		order.Status = status
		snapshot := *order

		err := order.ApplyCancellation("too late", order.UserID, testNow)
		require.ErrorIs(t, err, ErrNotCancellable, "status %s", status)
		assert.Equal(t, snapshot.Status, order.Status)
		assert.Nil(t, order.CancelledAt)
		assert.Empty(t, order.CancellationReason)
	}
}

func TestAddTracking(t *testing.T) {
	order := testOrder()
	order.AddTracking("tu-1", "Courier picked up the order", "Gulberg", testNow)
	order.AddTracking("tu-2", "5 minutes away", "", testNow.Add(20*time.Minute))

	require.Len(t, order.TrackingUpdates, 2)
	assert.Equal(t, "Courier picked up the order", order.TrackingUpdates[0].Message)
	assert.Equal(t, "Gulberg", order.TrackingUpdates[0].Location)
	assert.Equal(t, "5 minutes away", order.TrackingUpdates[1].Message)
}

// Full happy path: place, pay, walk the chain to Delivered.
func TestOrderLifecycleEndToEnd(t *testing.T) {
	item := testMenuItem()
	second := testMenuItem()
	second.Name = "Seekh Kebab"
	second.Price = 8

	lineOne, err := NewOrderItem(item, 2, nil, nil, testNow)
	require.NoError(t, err)
	lineTwo, err := NewOrderItem(second, 1, nil, nil, testNow)
	require.NoError(t, err)

	order := testOrder()
	order.Items = []OrderItem{lineOne, lineTwo}
	order.TotalAmount = OrderTotal(order.Items)
	assert.InDelta(t, 38.0, order.TotalAmount, 1e-9)

	require.True(t, order.ApplyPayment(PaymentResult{TransactionID: "txn_e2e"}, "", testNow.Add(time.Minute)))
	require.Equal(t, lifecycle.StatusConfirmed, order.Status)
	require.NotNil(t, order.PaidAt)

	owner := primitive.NewObjectID()
	chain := []lifecycle.OrderStatus{
		lifecycle.StatusPreparing,
		lifecycle.StatusReadyForPickup,
		lifecycle.StatusOutForDelivery,
		lifecycle.StatusDelivered,
	}
	for i, target := range chain {
		require.NoError(t, order.ApplyStatus(target, owner, "", testNow.Add(time.Duration(i+2)*time.Minute)))
	}

	assert.Equal(t, lifecycle.StatusDelivered, order.Status)
	assert.True(t, order.IsDelivered)
	require.NotNil(t, order.DeliveredAt)
	// placed + payment confirm + 4 owner transitions
	assert.Len(t, order.StatusHistory, 6)

	// and it is now review-eligible but no longer cancellable
	assert.ErrorIs(t, order.ApplyCancellation("", order.UserID, testNow), ErrNotCancellable)
}
