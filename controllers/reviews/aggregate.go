package reviewController

import (
	"context"
	"time"

	"foojra-api/configs"
	"foojra-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// recomputeShopRating refreshes a shop's aggregate rating from scratch
// over all of its current reviews. Failures are logged and swallowed:
// the review write already succeeded and the next write repeats the
// full recomputation, so staleness self-heals.
func recomputeShopRating(shopID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := shopReviewCollection.Find(ctx, bson.M{"shopId": shopID})
	if err != nil {
		configs.Logger.Warn("shop rating recompute failed",
			zap.String("shopId", shopID.Hex()), zap.Error(err))
		return
	}
	defer cursor.Close(ctx)

	var reviews []models.ShopReview
	if err := cursor.All(ctx, &reviews); err != nil {
		configs.Logger.Warn("shop rating recompute failed",
			zap.String("shopId", shopID.Hex()), zap.Error(err))
		return
	}

	ratings := make([]float64, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
	}

	_, err = shopCollection.UpdateOne(ctx,
		bson.M{"_id": shopID},
		bson.M{"$set": bson.M{
			"rating":       models.AverageRating(ratings),
			"totalReviews": len(ratings),
			"updatedAt":    time.Now(),
		}},
	)
	if err != nil {
		configs.Logger.Warn("shop rating recompute failed",
			zap.String("shopId", shopID.Hex()), zap.Error(err))
	}
}

// recomputeItemRating refreshes a menu item's rating, aspect averages
// and recommendation rate. Same swallow semantics as the shop variant.
func recomputeItemRating(itemID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := itemReviewCollection.Find(ctx, bson.M{"menuItemId": itemID})
	if err != nil {
		configs.Logger.Warn("item rating recompute failed",
			zap.String("menuItemId", itemID.Hex()), zap.Error(err))
		return
	}
	defer cursor.Close(ctx)

	var reviews []models.MenuItemReview
	if err := cursor.All(ctx, &reviews); err != nil {
		configs.Logger.Warn("item rating recompute failed",
			zap.String("menuItemId", itemID.Hex()), zap.Error(err))
		return
	}

	ratings := make([]float64, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
	}

	_, err = menuCollection.UpdateOne(ctx,
		bson.M{"_id": itemID},
		bson.M{"$set": bson.M{
			"rating":             models.AverageRating(ratings),
			"reviewCount":        len(ratings),
			"aspects":            models.AggregateAspects(reviews),
			"recommendationRate": models.RecommendationRate(reviews),
			"updatedAt":          time.Now(),
		}},
	)
	if err != nil {
		configs.Logger.Warn("item rating recompute failed",
			zap.String("menuItemId", itemID.Hex()), zap.Error(err))
	}
}
