package adminController

import (
	"context"
	"time"

	"foojra-api/configs"
	"foojra-api/models"
	"foojra-api/responses"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var shopCollection *mongo.Collection = configs.GetCollection(configs.DB, "shops")

// ListPendingShops returns shops awaiting approval.
func ListPendingShops(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	cursor, err := shopCollection.Find(ctx, bson.M{"approvalStatus": models.ApprovalPending})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch pending shops",
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
		Message: "Pending shops fetched successfully",
		Result:  &fiber.Map{"data": shops},
	})
}

// SetShopApproval approves or rejects a shop.
func SetShopApproval(c *fiber.Ctx) error {
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

	var reqBody struct {
		ApprovalStatus string `json:"approvalStatus"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Result:  nil,
		})
	}

	if reqBody.ApprovalStatus != models.ApprovalApproved && reqBody.ApprovalStatus != models.ApprovalRejected {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Approval status must be approved or rejected",
			Result:  nil,
		})
	}

	result, err := shopCollection.UpdateOne(ctx,
		bson.M{"_id": shopObjectID},
		bson.M{"$set": bson.M{
			"approvalStatus": reqBody.ApprovalStatus,
			"updatedAt":      time.Now(),
		}},
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update shop approval",
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

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Shop approval updated successfully",
		Result:  &fiber.Map{"shopId": c.Params("id"), "approvalStatus": reqBody.ApprovalStatus},
	})
}
