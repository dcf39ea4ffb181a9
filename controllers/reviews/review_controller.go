package reviewController

import (
	"context"
	"time"

	"foojra-api/configs"
	"foojra-api/lifecycle"
	"foojra-api/models"
	"foojra-api/responses"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var shopReviewCollection *mongo.Collection = configs.GetCollection(configs.DB, "shopreviews")
var itemReviewCollection *mongo.Collection = configs.GetCollection(configs.DB, "itemreviews")
var orderCollection *mongo.Collection = configs.GetCollection(configs.DB, "orders")
var shopCollection *mongo.Collection = configs.GetCollection(configs.DB, "shops")
var menuCollection *mongo.Collection = configs.GetCollection(configs.DB, "menuitems")

var validate = validator.New()

type shopReviewRequest struct {
	OrderID string  `json:"orderId" validate:"required"`
	Rating  float64 `json:"rating" validate:"required,min=1,max=5"`
	Comment string  `json:"comment"`
}

type itemReviewRequest struct {
	OrderID       string               `json:"orderId" validate:"required"`
	MenuItemID    string               `json:"menuItemId" validate:"required"`
	Rating        float64              `json:"rating" validate:"required,min=1,max=5"`
	Comment       string               `json:"comment"`
	Aspects       models.AspectRatings `json:"aspects" validate:"required"`
	IsRecommended bool                 `json:"isRecommended"`
}

func respondError(c *fiber.Ctx, ferr *fiber.Error) error {
	return c.Status(ferr.Code).JSON(responses.UserResponse{
		Status:  ferr.Code,
		Message: ferr.Message,
		Result:  nil,
	})
}

// eligibleOrder is the review eligibility gate: the order must belong
// to the caller and have been delivered.
func eligibleOrder(ctx context.Context, c *fiber.Ctx, orderIDHex string) (*models.Order, primitive.ObjectID, *fiber.Error) {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return nil, primitive.NilObjectID, fiber.NewError(fiber.StatusUnauthorized, "User ID not found in token")
	}
	userObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return nil, primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID format")
	}

	orderObjectID, err := primitive.ObjectIDFromHex(orderIDHex)
	if err != nil {
		return nil, primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid order ID format")
	}

	var order models.Order
	err = orderCollection.FindOne(ctx, bson.M{"_id": orderObjectID, "userId": userObjectID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, primitive.NilObjectID, fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		return nil, primitive.NilObjectID, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch order")
	}

	if order.Status != lifecycle.StatusDelivered {
		return nil, primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Only delivered orders can be reviewed")
	}

	return &order, userObjectID, nil
}

// CreateShopReview creates the caller's review for a delivered order.
// The unique (userId, orderId) index rejects a second review for the
// same order.
func CreateShopReview(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var reqBody shopReviewRequest
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Result:  nil,
		})
	}
	if err := validate.Struct(reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Result:  nil,
		})
	}

	order, userObjectID, ferr := eligibleOrder(ctx, c, reqBody.OrderID)
	if ferr != nil {
		return respondError(c, ferr)
	}

	now := time.Now()
	review := models.ShopReview{
		ID:        primitive.NewObjectID(),
		UserID:    userObjectID,
		ShopID:    order.ShopID,
		OrderID:   order.ID,
		Rating:    reqBody.Rating,
		Comment:   reqBody.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := shopReviewCollection.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(responses.UserResponse{
				Status:  fiber.StatusConflict,
				Message: "You have already reviewed this order",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save review",
			Result:  nil,
		})
	}

	recomputeShopRating(order.ShopID)

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Review created successfully",
		Result:  &fiber.Map{"data": review},
	})
}

// UpdateShopReview edits the caller's own review.
func UpdateShopReview(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ferr := callerID(c)
	if ferr != nil {
		return respondError(c, ferr)
	}

	reviewObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid review ID format",
			Result:  nil,
		})
	}

	var reqBody struct {
		Rating  float64 `json:"rating" validate:"required,min=1,max=5"`
		Comment string  `json:"comment"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Result:  nil,
		})
	}
	if err := validate.Struct(reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Result:  nil,
		})
	}

	var review models.ShopReview
	err = shopReviewCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": reviewObjectID, "userId": userObjectID},
		bson.M{"$set": bson.M{
			"rating":    reqBody.Rating,
			"comment":   reqBody.Comment,
			"updatedAt": time.Now(),
		}},
	).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Review not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update review",
			Result:  nil,
		})
	}

	recomputeShopRating(review.ShopID)

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Review updated successfully",
		Result:  nil,
	})
}

// DeleteShopReview removes the caller's own review.
func DeleteShopReview(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ferr := callerID(c)
	if ferr != nil {
		return respondError(c, ferr)
	}

	reviewObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid review ID format",
			Result:  nil,
		})
	}

	var review models.ShopReview
	err = shopReviewCollection.FindOneAndDelete(ctx,
		bson.M{"_id": reviewObjectID, "userId": userObjectID},
	).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Review not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete review",
			Result:  nil,
		})
	}

	recomputeShopRating(review.ShopID)

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Review deleted successfully",
		Result:  nil,
	})
}

// ListShopReviews returns all reviews for a shop.
func ListShopReviews(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	shopObjectID, err := primitive.ObjectIDFromHex(c.Params("shopId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid shop ID format",
			Result:  nil,
		})
	}

	cursor, err := shopReviewCollection.Find(ctx, bson.M{"shopId": shopObjectID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch reviews",
			Result:  nil,
		})
	}
	defer cursor.Close(ctx)

	var reviews []models.ShopReview
	if err := cursor.All(ctx, &reviews); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to decode reviews",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Reviews fetched successfully",
		Result:  &fiber.Map{"data": reviews},
	})
}

// CreateItemReview creates an item review for a delivered order. The
// item must appear among the order's snapshotted line items; the
// unique (userId, menuItemId, orderId) index rejects duplicates.
func CreateItemReview(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var reqBody itemReviewRequest
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Result:  nil,
		})
	}
	if err := validate.Struct(reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Result:  nil,
		})
	}

	order, userObjectID, ferr := eligibleOrder(ctx, c, reqBody.OrderID)
	if ferr != nil {
		return respondError(c, ferr)
	}

	itemObjectID, err := primitive.ObjectIDFromHex(reqBody.MenuItemID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid menu item ID format",
			Result:  nil,
		})
	}

	inOrder := false
	for _, line := range order.Items {
		if line.MenuItemID == itemObjectID {
			inOrder = true
			break
		}
	}
	if !inOrder {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Item was not part of this order",
			Result:  nil,
		})
	}

	now := time.Now()
	review := models.MenuItemReview{
		ID:            primitive.NewObjectID(),
		UserID:        userObjectID,
		MenuItemID:    itemObjectID,
		ShopID:        order.ShopID,
		OrderID:       order.ID,
		Rating:        reqBody.Rating,
		Comment:       reqBody.Comment,
		Aspects:       reqBody.Aspects,
		IsRecommended: reqBody.IsRecommended,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := itemReviewCollection.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(responses.UserResponse{
				Status:  fiber.StatusConflict,
				Message: "You have already reviewed this item for this order",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save review",
			Result:  nil,
		})
	}

	recomputeItemRating(itemObjectID)

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Review created successfully",
		Result:  &fiber.Map{"data": review},
	})
}

// UpdateItemReview edits the caller's own item review.
func UpdateItemReview(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ferr := callerID(c)
	if ferr != nil {
		return respondError(c, ferr)
	}

	reviewObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid review ID format",
			Result:  nil,
		})
	}

	var reqBody struct {
		Rating        float64              `json:"rating" validate:"required,min=1,max=5"`
		Comment       string               `json:"comment"`
		Aspects       models.AspectRatings `json:"aspects"`
		IsRecommended bool                 `json:"isRecommended"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Result:  nil,
		})
	}
	if err := validate.Struct(reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Result:  nil,
		})
	}

	var review models.MenuItemReview
	err = itemReviewCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": reviewObjectID, "userId": userObjectID},
		bson.M{"$set": bson.M{
			"rating":        reqBody.Rating,
			"comment":       reqBody.Comment,
			"aspects":       reqBody.Aspects,
			"isRecommended": reqBody.IsRecommended,
			"updatedAt":     time.Now(),
		}},
	).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Review not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update review",
			Result:  nil,
		})
	}

	recomputeItemRating(review.MenuItemID)

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Review updated successfully",
		Result:  nil,
	})
}

// DeleteItemReview removes the caller's own item review.
func DeleteItemReview(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userObjectID, ferr := callerID(c)
	if ferr != nil {
		return respondError(c, ferr)
	}

	reviewObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid review ID format",
			Result:  nil,
		})
	}

	var review models.MenuItemReview
	err = itemReviewCollection.FindOneAndDelete(ctx,
		bson.M{"_id": reviewObjectID, "userId": userObjectID},
	).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Review not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete review",
			Result:  nil,
		})
	}

	recomputeItemRating(review.MenuItemID)

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Review deleted successfully",
		Result:  nil,
	})
}

// ListItemReviews returns all reviews for a menu item.
func ListItemReviews(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	itemObjectID, err := primitive.ObjectIDFromHex(c.Params("itemId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid menu item ID format",
			Result:  nil,
		})
	}

	cursor, err := itemReviewCollection.Find(ctx, bson.M{"menuItemId": itemObjectID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch reviews",
			Result:  nil,
		})
	}
	defer cursor.Close(ctx)

	var reviews []models.MenuItemReview
	if err := cursor.All(ctx, &reviews); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to decode reviews",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Reviews fetched successfully",
		Result:  &fiber.Map{"data": reviews},
	})
}

func callerID(c *fiber.Ctx) (primitive.ObjectID, *fiber.Error) {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusUnauthorized, "User ID not found in token")
	}
	objectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID format")
	}
	return objectID, nil
}
