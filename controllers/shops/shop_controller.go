package shopController

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

var shopCollection *mongo.Collection = configs.GetCollection(configs.DB, "shops")
var menuCollection *mongo.Collection = configs.GetCollection(configs.DB, "menuitems")
var orderCollection *mongo.Collection = configs.GetCollection(configs.DB, "orders")

var validate = validator.New()

type shopRequest struct {
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description"`
	Address         string `json:"address" validate:"required"`
	Phone           string `json:"phone"`
	Image           string `json:"image"`
	Cuisine         string `json:"cuisine"`
	PreparationTime int    `json:"preparationTime" validate:"omitempty,min=1"`
}

// CreateShop registers the caller's shop. New shops start as pending
// and stay invisible to customers until an admin approves them. One
// shop per owner, enforced by the unique ownerId index.
func CreateShop(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	ownerObjectID, errResp := callerObjectID(c)
	if errResp != nil {
		return errResp(c)
	}

	var reqBody shopRequest
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

	prepTime := reqBody.PreparationTime
	if prepTime <= 0 {
		prepTime = lifecycle.DefaultPreparationMinutes
	}

	now := time.Now()
	shop := models.Shop{
		ID:              primitive.NewObjectID(),
		OwnerID:         ownerObjectID,
		Name:            reqBody.Name,
		Description:     reqBody.Description,
		Address:         reqBody.Address,
		Phone:           reqBody.Phone,
		Image:           reqBody.Image,
		Cuisine:         reqBody.Cuisine,
		ApprovalStatus:  models.ApprovalPending,
		PreparationTime: prepTime,
		IsOpen:          true,
		Rating:          models.DefaultRating,
		TotalReviews:    0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := shopCollection.InsertOne(ctx, shop); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(responses.UserResponse{
				Status:  fiber.StatusConflict,
				Message: "You already own a shop",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create shop",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Shop created successfully, awaiting approval",
		Result:  &fiber.Map{"data": shop},
	})
}

// UpdateShop lets the owner edit shop details. Approval status and
// rating fields are never writable here.
func UpdateShop(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	ownerObjectID, errResp := callerObjectID(c)
	if errResp != nil {
		return errResp(c)
	}

	var reqBody shopRequest
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

	update := bson.M{"$set": bson.M{
		"name":        reqBody.Name,
		"description": reqBody.Description,
		"address":     reqBody.Address,
		"phone":       reqBody.Phone,
		"image":       reqBody.Image,
		"cuisine":     reqBody.Cuisine,
		"updatedAt":   time.Now(),
	}}
	if reqBody.PreparationTime > 0 {
		update["$set"].(bson.M)["preparationTime"] = reqBody.PreparationTime
	}

	result, err := shopCollection.UpdateOne(ctx, bson.M{"ownerId": ownerObjectID}, update)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update shop",
			Result:  nil,
		})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
			Status:  fiber.StatusNotFound,
			Message: "Shop not found",
			Result:  nil,
		})
	}

	var shop models.Shop
	if err := shopCollection.FindOne(ctx, bson.M{"ownerId": ownerObjectID}).Decode(&shop); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch updated shop",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Shop updated successfully",
		Result:  &fiber.Map{"data": shop},
	})
}

// DeleteShop removes the caller's shop and its menu items. Refused
// while any order against the shop is still in flight; completed
// orders keep their snapshots and are left untouched.
func DeleteShop(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	ownerObjectID, errResp := callerObjectID(c)
	if errResp != nil {
		return errResp(c)
	}

	var shop models.Shop
	if err := shopCollection.FindOne(ctx, bson.M{"ownerId": ownerObjectID}).Decode(&shop); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Shop not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch shop",
			Result:  nil,
		})
	}

	active, err := orderCollection.CountDocuments(ctx, bson.M{
		"shopId": shop.ID,
		"status": bson.M{"$in": lifecycle.ActiveStatuses()},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to check shop orders",
			Result:  nil,
		})
	}
	if active > 0 {
		return c.Status(fiber.StatusConflict).JSON(responses.UserResponse{
			Status:  fiber.StatusConflict,
			Message: "Shop has orders in progress and cannot be deleted",
			Result:  nil,
		})
	}

	if _, err := menuCollection.DeleteMany(ctx, bson.M{"shopId": shop.ID}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete shop menu",
			Result:  nil,
		})
	}
	if _, err := shopCollection.DeleteOne(ctx, bson.M{"_id": shop.ID}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete shop",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Shop deleted successfully",
		Result:  nil,
	})
}

// GetMyShop returns the caller's shop regardless of approval status.
func GetMyShop(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	ownerObjectID, errResp := callerObjectID(c)
	if errResp != nil {
		return errResp(c)
	}

	var shop models.Shop
	if err := shopCollection.FindOne(ctx, bson.M{"ownerId": ownerObjectID}).Decode(&shop); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Shop not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch shop",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Shop fetched successfully",
		Result:  &fiber.Map{"data": shop},
	})
}

// ListShops returns approved shops for customers to browse.
func ListShops(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	cursor, err := shopCollection.Find(ctx, bson.M{"approvalStatus": models.ApprovalApproved})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch shops",
			Result:  nil,
		})
	}
	defer cursor.Close(ctx)

	var shops []models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to decode shops",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Shops fetched successfully",
		Result:  &fiber.Map{"data": shops},
	})
}

// GetShopById returns a single approved shop.
func GetShopById(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	shopObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid shop ID format",
			Result:  nil,
		})
	}

	var shop models.Shop
	err = shopCollection.FindOne(ctx, bson.M{
		"_id":            shopObjectID,
		"approvalStatus": models.ApprovalApproved,
	}).Decode(&shop)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Shop not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch shop",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Shop fetched successfully",
		Result:  &fiber.Map{"data": shop},
	})
}

// callerObjectID pulls the authenticated user id from Locals. Returns a
// handler producing the error response when the id is missing or bad.
func callerObjectID(c *fiber.Ctx) (primitive.ObjectID, func(*fiber.Ctx) error) {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return primitive.NilObjectID, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "User ID not found in token",
				Result:  nil,
			})
		}
	}
	objectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return primitive.NilObjectID, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid user ID format",
				Result:  nil,
			})
		}
	}
	return objectID, nil
}
