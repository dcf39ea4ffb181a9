package menuController

import (
	"context"
	"time"

	"foojra-api/configs"
	"foojra-api/models"
	"foojra-api/responses"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var menuCollection *mongo.Collection = configs.GetCollection(configs.DB, "menuitems")
var shopCollection *mongo.Collection = configs.GetCollection(configs.DB, "shops")

var validate = validator.New()

type menuItemRequest struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	Price       float64             `json:"price" validate:"required,gt=0"`
	Images      []string            `json:"images"`
	Category    string              `json:"category"`
	IsAvailable *bool               `json:"isAvailable"`
	Variations  []models.ItemOption `json:"variations"`
	AddOns      []models.ItemOption `json:"addOns"`
	Offers      models.Offers       `json:"offers"`
}

// ownedShop resolves the caller's shop, the ownership check for every
// menu mutation.
func ownedShop(ctx context.Context, c *fiber.Ctx) (*models.Shop, error) {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User ID not found in token")
	}
	ownerObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID format")
	}

	var shop models.Shop
	if err := shopCollection.FindOne(ctx, bson.M{"ownerId": ownerObjectID}).Decode(&shop); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fiber.NewError(fiber.StatusNotFound, "You do not own a shop")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch shop")
	}
	return &shop, nil
}

func errResponse(c *fiber.Ctx, err error) error {
	if ferr, ok := err.(*fiber.Error); ok {
		return c.Status(ferr.Code).JSON(responses.UserResponse{
			Status:  ferr.Code,
			Message: ferr.Message,
			Result:  nil,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
		Status:  fiber.StatusInternalServerError,
		Message: err.Error(),
		Result:  nil,
	})
}

// CreateMenuItem adds an item to the caller's shop.
func CreateMenuItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	shop, err := ownedShop(ctx, c)
	if err != nil {
		return errResponse(c, err)
	}

	var reqBody menuItemRequest
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

	available := true
	if reqBody.IsAvailable != nil {
		available = *reqBody.IsAvailable
	}

	// options need ids so orders can reference them
	for i := range reqBody.Variations {
		if reqBody.Variations[i].ID.IsZero() {
			reqBody.Variations[i].ID = primitive.NewObjectID()
		}
	}
	for i := range reqBody.AddOns {
		if reqBody.AddOns[i].ID.IsZero() {
			reqBody.AddOns[i].ID = primitive.NewObjectID()
		}
	}

	now := time.Now()
	item := models.MenuItem{
		ID:          primitive.NewObjectID(),
		ShopID:      shop.ID,
		Name:        reqBody.Name,
		Description: reqBody.Description,
		Price:       reqBody.Price,
		Images:      reqBody.Images,
		Category:    reqBody.Category,
		IsAvailable: available,
		Variations:  reqBody.Variations,
		AddOns:      reqBody.AddOns,
		Offers:      reqBody.Offers,
		Rating:      models.DefaultRating,
		ReviewCount: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := menuCollection.InsertOne(ctx, item); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create menu item",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Menu item created successfully",
		Result:  &fiber.Map{"data": item},
	})
}

// UpdateMenuItem edits an item on the caller's shop. Rating fields are
// owned by the review aggregator and not writable here.
func UpdateMenuItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	shop, err := ownedShop(ctx, c)
	if err != nil {
		return errResponse(c, err)
	}

	itemObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid menu item ID format",
			Result:  nil,
		})
	}

	var reqBody menuItemRequest
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

	for i := range reqBody.Variations {
		if reqBody.Variations[i].ID.IsZero() {
			reqBody.Variations[i].ID = primitive.NewObjectID()
		}
	}
	for i := range reqBody.AddOns {
		if reqBody.AddOns[i].ID.IsZero() {
			reqBody.AddOns[i].ID = primitive.NewObjectID()
		}
	}

	setFields := bson.M{
		"name":        reqBody.Name,
		"description": reqBody.Description,
		"price":       reqBody.Price,
		"images":      reqBody.Images,
		"category":    reqBody.Category,
		"variations":  reqBody.Variations,
		"addOns":      reqBody.AddOns,
		"offers":      reqBody.Offers,
		"updatedAt":   time.Now(),
	}
	if reqBody.IsAvailable != nil {
		setFields["isAvailable"] = *reqBody.IsAvailable
	}

	result, err := menuCollection.UpdateOne(ctx,
		bson.M{"_id": itemObjectID, "shopId": shop.ID},
		bson.M{"$set": setFields},
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update menu item",
			Result:  nil,
		})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
			Status:  fiber.StatusNotFound,
			Message: "Menu item not found",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Menu item updated successfully",
		Result:  nil,
	})
}

// DeleteMenuItem removes an item from the caller's shop.
func DeleteMenuItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	shop, err := ownedShop(ctx, c)
	if err != nil {
		return errResponse(c, err)
	}

	itemObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid menu item ID format",
			Result:  nil,
		})
	}

	result, err := menuCollection.DeleteOne(ctx, bson.M{"_id": itemObjectID, "shopId": shop.ID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete menu item",
			Result:  nil,
		})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
			Status:  fiber.StatusNotFound,
			Message: "Menu item not found",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Menu item deleted successfully",
		Result:  nil,
	})
}

// ListShopMenu returns a shop's menu with the derived current price on
// each item.
func ListShopMenu(c *fiber.Ctx) error {
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

	cursor, err := menuCollection.Find(ctx, bson.M{"shopId": shopObjectID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch menu",
			Result:  nil,
		})
	}
	defer cursor.Close(ctx)

	now := time.Now()
	var items []fiber.Map
	for cursor.Next(ctx) {
		var item models.MenuItem
		if err := cursor.Decode(&item); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to decode menu item",
				Result:  nil,
			})
		}
		items = append(items, fiber.Map{
			"item":         item,
			"currentPrice": item.CurrentPrice(now),
		})
	}

	if err := cursor.Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Cursor error",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Menu fetched successfully",
		Result:  &fiber.Map{"data": items},
	})
}

// GetMenuItem returns a single menu item with its current price.
func GetMenuItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	itemObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid menu item ID format",
			Result:  nil,
		})
	}

	var item models.MenuItem
	if err := menuCollection.FindOne(ctx, bson.M{"_id": itemObjectID}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Menu item not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch menu item",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Menu item fetched successfully",
		Result: &fiber.Map{
			"item":         item,
			"currentPrice": item.CurrentPrice(time.Now()),
		},
	})
}
