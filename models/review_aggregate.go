package models

import "math"

// AverageRating folds ratings to a one-decimal average. With no
// reviews the fixed default applies so listings never show as unrated.
func AverageRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return DefaultRating
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return round1(sum / float64(len(ratings)))
}

// AggregateAspects folds per-aspect scores across item reviews.
func AggregateAspects(reviews []MenuItemReview) AspectAverages {
	if len(reviews) == 0 {
		return AspectAverages{}
	}
	var agg AspectAverages
	for _, r := range reviews {
		agg.Taste += r.Aspects.Taste
		agg.Presentation += r.Aspects.Presentation
		agg.Portion += r.Aspects.Portion
		agg.Value += r.Aspects.Value
	}
	n := float64(len(reviews))
	agg.Taste = round1(agg.Taste / n)
	agg.Presentation = round1(agg.Presentation / n)
	agg.Portion = round1(agg.Portion / n)
	agg.Value = round1(agg.Value / n)
	return agg
}

// RecommendationRate is the percentage of reviewers recommending the
// item, one decimal.
func RecommendationRate(reviews []MenuItemReview) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var recommended int
	for _, r := range reviews {
		if r.IsRecommended {
			recommended++
		}
	}
	return round1(float64(recommended) / float64(len(reviews)) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
