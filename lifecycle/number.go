package lifecycle

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	// DefaultPreparationMinutes applies when a shop has no preparation
	// time configured and the order does not override it.
	DefaultPreparationMinutes = 30

	// deliveryBufferMinutes is added on top of preparation time.
	deliveryBufferMinutes = 15
)

// GenerateOrderNumber builds a human-readable order number:
// "ORD" + last 6 digits of the current epoch millis + a zero-padded
// 3-digit random suffix. Collisions are possible; the orders collection
// holds a unique index and creation retries with a fresh number.
func GenerateOrderNumber() string {
	return formatOrderNumber(time.Now().UnixMilli(), rand.Intn(1000))
}

func formatOrderNumber(epochMillis int64, suffix int) string {
	return fmt.Sprintf("ORD%06d%03d", epochMillis%1_000_000, suffix)
}

// EstimateDelivery computes the customer-facing delivery estimate.
func EstimateDelivery(now time.Time, preparationMinutes int) time.Time {
	if preparationMinutes <= 0 {
		preparationMinutes = DefaultPreparationMinutes
	}
	return now.Add(time.Duration(preparationMinutes+deliveryBufferMinutes) * time.Minute)
}
