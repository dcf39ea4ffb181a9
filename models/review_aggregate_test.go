package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		want    float64
	}{
		{name: "no reviews falls back to default", ratings: nil, want: 4.0},
		{name: "single review", ratings: []float64{3}, want: 3.0},
		{name: "rounds to one decimal", ratings: []float64{5, 5, 4}, want: 4.7},
		{name: "after removing one review", ratings: []float64{5, 4}, want: 4.5},
		{name: "rounds down", ratings: []float64{4, 4, 4, 5}, want: 4.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AverageRating(tt.ratings), 1e-9)
		})
	}
}

func TestAggregateAspects(t *testing.T) {
	reviews := []MenuItemReview{
		{Aspects: AspectRatings{Taste: 5, Presentation: 4, Portion: 3, Value: 4}},
		{Aspects: AspectRatings{Taste: 4, Presentation: 5, Portion: 4, Value: 3}},
	}

	got := AggregateAspects(reviews)
	assert.InDelta(t, 4.5, got.Taste, 1e-9)
	assert.InDelta(t, 4.5, got.Presentation, 1e-9)
	assert.InDelta(t, 3.5, got.Portion, 1e-9)
	assert.InDelta(t, 3.5, got.Value, 1e-9)

	assert.Equal(t, AspectAverages{}, AggregateAspects(nil))
}

func TestRecommendationRate(t *testing.T) {
	reviews := []MenuItemReview{
		{IsRecommended: true},
		{IsRecommended: true},
		{IsRecommended: false},
	}
	assert.InDelta(t, 66.7, RecommendationRate(reviews), 1e-9)
	assert.Zero(t, RecommendationRate(nil))
}
