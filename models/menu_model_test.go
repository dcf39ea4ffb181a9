package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentPrice(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		item MenuItem
		want float64
	}{
		{
			name: "no discount",
			item: MenuItem{Price: 12.50},
			want: 12.50,
		},
		{
			name: "active discount price",
			item: MenuItem{Price: 12.50, Offers: Offers{
				HasDiscount:   true,
				DiscountPrice: 9.99,
				ValidUntil:    now.Add(time.Hour),
			}},
			want: 9.99,
		},
		{
			name: "active percentage discount",
			item: MenuItem{Price: 20, Offers: Offers{
				HasDiscount:        true,
				DiscountPercentage: 25,
				ValidUntil:         now.Add(time.Hour),
			}},
			want: 15,
		},
		{
			name: "expired discount falls back to base price",
			item: MenuItem{Price: 12.50, Offers: Offers{
				HasDiscount:   true,
				DiscountPrice: 9.99,
				ValidUntil:    now.Add(-time.Minute),
			}},
			want: 12.50,
		},
		{
			name: "discount flag without validity window",
			item: MenuItem{Price: 12.50, Offers: Offers{
				HasDiscount:   true,
				DiscountPrice: 9.99,
			}},
			want: 12.50,
		},
		{
			name: "discount flag without any discount value",
			item: MenuItem{Price: 12.50, Offers: Offers{
				HasDiscount: true,
				ValidUntil:  now.Add(time.Hour),
			}},
			want: 12.50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.item.CurrentPrice(now), 1e-9)
		})
	}
}
