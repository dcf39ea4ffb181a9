package lifecycle

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD\d{6}\d{3}$`)
	for i := 0; i < 100; i++ {
		n := GenerateOrderNumber()
		assert.True(t, pattern.MatchString(n), "unexpected order number %q", n)
	}
}

// Orders placed at distinct milliseconds get pairwise distinct numbers
// as long as the timestamps span less than the 6-digit wrap window.
// Collisions within a single millisecond are possible, which is why
// creation also retries on the unique index.
func TestOrderNumberUniquenessAcrossTimestamps(t *testing.T) {
	const n = 10000
	base := time.Now().UnixMilli()

	seen := make(map[string]struct{}, n)
	for i := int64(0); i < n; i++ {
		num := formatOrderNumber(base+i, int(i%1000))
		if _, ok := seen[num]; ok {
			t.Fatalf("duplicate order number %q", num)
		}
		seen[num] = struct{}{}
	}
}

func TestEstimateDelivery(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		prepMinutes int
		want        time.Time
	}{
		{name: "explicit preparation time", prepMinutes: 20, want: now.Add(35 * time.Minute)},
		{name: "default when zero", prepMinutes: 0, want: now.Add(45 * time.Minute)},
		{name: "default when negative", prepMinutes: -5, want: now.Add(45 * time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateDelivery(now, tt.prepMinutes)
			require.Equal(t, tt.want, got)
		})
	}
}
