package models

import (
	"time"

	"foojra-api/lifecycle"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChosenOption is a point-in-time copy of a variation or add-on as it
// was priced when the order was placed.
type ChosenOption struct {
	OptionID primitive.ObjectID `bson:"optionId" json:"optionId"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
}

// OrderItem snapshots a menu item at order time. Name, price and images
// are copies, never re-read from the live catalog.
type OrderItem struct {
	MenuItemID primitive.ObjectID `bson:"menuItemId" json:"menuItemId"`
	Name       string             `bson:"name" json:"name"`
	Price      float64            `bson:"price" json:"price"`
	Images     []string           `bson:"images" json:"images"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Variations []ChosenOption     `bson:"variations" json:"variations"`
	AddOns     []ChosenOption     `bson:"addOns" json:"addOns"`
	ItemTotal  float64            `bson:"itemTotal" json:"itemTotal"`
}

// StatusEvent is one entry in the order's append-only status history.
type StatusEvent struct {
	Status    lifecycle.OrderStatus `bson:"status" json:"status"`
	Timestamp time.Time             `bson:"timestamp" json:"timestamp"`
	Note      string                `bson:"note,omitempty" json:"note,omitempty"`
	UpdatedBy primitive.ObjectID    `bson:"updatedBy" json:"updatedBy"`
}

// TrackingUpdate is a customer-facing delivery note, separate from the
// status history.
type TrackingUpdate struct {
	ID        string    `bson:"id" json:"id"`
	Message   string    `bson:"message" json:"message"`
	Location  string    `bson:"location,omitempty" json:"location,omitempty"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type DeliveryAddress struct {
	Street     string `bson:"street" json:"street" validate:"required"`
	City       string `bson:"city" json:"city" validate:"required"`
	State      string `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Phone      string `bson:"phone" json:"phone" validate:"required"`
}

// PaymentResult snapshots the provider confirmation.
type PaymentResult struct {
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	Method        string    `bson:"method" json:"method"`
	Status        string    `bson:"status" json:"status"`
	PaidAt        time.Time `bson:"paidAt" json:"paidAt"`
}

type Order struct {
	ID                   primitive.ObjectID      `bson:"_id" json:"id"`
	OrderNumber          string                  `bson:"orderNumber" json:"orderNumber"`
	UserID               primitive.ObjectID      `bson:"userId" json:"userId"`
	ShopID               primitive.ObjectID      `bson:"shopId" json:"shopId"`
	Items                []OrderItem             `bson:"items" json:"items"`
	TotalAmount          float64                 `bson:"totalAmount" json:"totalAmount"`
	DeliveryAddress      DeliveryAddress         `bson:"deliveryAddress" json:"deliveryAddress"`
	DeliveryInstructions string                  `bson:"deliveryInstructions,omitempty" json:"deliveryInstructions,omitempty"`
	PaymentMethod        string                  `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus        lifecycle.PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	IsPaid               bool                    `bson:"isPaid" json:"isPaid"`
	IsDelivered          bool                    `bson:"isDelivered" json:"isDelivered"`
	PaidAt               *time.Time              `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	DeliveredAt          *time.Time              `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CancelledAt          *time.Time              `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancellationReason   string                  `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancelledBy          primitive.ObjectID      `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	RefundStatus         string                  `bson:"refundStatus,omitempty" json:"refundStatus,omitempty"`
	RazorpayID           string                  `bson:"razorpayId,omitempty" json:"razorpayId,omitempty"`
	IdempotencyKey       string                  `bson:"idempotencyKey,omitempty" json:"idempotencyKey,omitempty"`
	PaymentResult        *PaymentResult          `bson:"paymentResult,omitempty" json:"paymentResult,omitempty"`
	Status               lifecycle.OrderStatus   `bson:"status" json:"status"`
	StatusHistory        []StatusEvent           `bson:"statusHistory" json:"statusHistory"`
	TrackingUpdates      []TrackingUpdate        `bson:"trackingUpdates" json:"trackingUpdates"`
	EstimatedDelivery    time.Time               `bson:"estimatedDeliveryTime" json:"estimatedDeliveryTime"`
	Version              int64                   `bson:"version" json:"version"`
	CreatedAt            time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time               `bson:"updatedAt" json:"updatedAt"`
}
