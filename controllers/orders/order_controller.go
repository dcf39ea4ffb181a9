package orderController

import (
	"context"
	"strconv"
	"time"

	"foojra-api/configs"
	"foojra-api/lifecycle"
	"foojra-api/models"
	"foojra-api/responses"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/razorpay/razorpay-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var orderCollection *mongo.Collection = configs.GetCollection(configs.DB, "orders")
var menuCollection *mongo.Collection = configs.GetCollection(configs.DB, "menuitems")
var shopCollection *mongo.Collection = configs.GetCollection(configs.DB, "shops")

var validate = validator.New()

// orderNumberRetries bounds regeneration when the unique index reports
// a duplicate order number.
const orderNumberRetries = 3

type orderLine struct {
	MenuItemID   string   `json:"menuItemId" validate:"required"`
	Quantity     int      `json:"quantity" validate:"required,min=1"`
	VariationIDs []string `json:"variationIds"`
	AddOnIDs     []string `json:"addOnIds"`
}

// CreateOrderRequest holds the data required to place an order.
type CreateOrderRequest struct {
	Items                []orderLine            `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress      models.DeliveryAddress `json:"deliveryAddress" validate:"required"`
	PaymentMethod        string                 `json:"paymentMethod" validate:"required"`
	DeliveryInstructions string                 `json:"deliveryInstructions"`
	PreparationTime      int                    `json:"preparationTime"`
}

// MarkPaidRequest holds the provider payment confirmation.
type MarkPaidRequest struct {
	TransactionID string `json:"transactionId"`
	PaymentID     string `json:"paymentId"`
	Signature     string `json:"signature"`
	Status        string `json:"status"`
}

// CreateOrder places an order from the request's cart lines. Each line
// is snapshotted from the live catalog (name, price, images, chosen
// options) so later catalog edits never touch existing orders. All
// lines must belong to a single approved shop.
func CreateOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
			Result:  nil,
		})
	}

	userObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID format",
			Result:  nil,
		})
	}

	var orderReq CreateOrderRequest
	if err := c.BodyParser(&orderReq); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Result:  nil,
		})
	}

	if err := validate.Struct(orderReq); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Result:  nil,
		})
	}

	if !lifecycle.ValidPaymentMethod(orderReq.PaymentMethod) {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid payment method",
			Result:  nil,
		})
	}

	now := time.Now()

	// Resolve and snapshot every line. The first line fixes the shop;
	// mixed-shop carts are rejected.
	var shopID primitive.ObjectID
	var orderItems []models.OrderItem
	for _, line := range orderReq.Items {
		itemObjectID, err := primitive.ObjectIDFromHex(line.MenuItemID)
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
					Message: "Menu item not found: " + line.MenuItemID,
					Result:  nil,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to fetch menu item",
				Result:  nil,
			})
		}

		if !item.IsAvailable {
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: item.Name + " is currently unavailable",
				Result:  nil,
			})
		}

		if shopID.IsZero() {
			shopID = item.ShopID
		} else if item.ShopID != shopID {
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: "All items must belong to the same shop",
				Result:  nil,
			})
		}

		variationIDs, err := parseObjectIDs(line.VariationIDs)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid variation ID format",
				Result:  nil,
			})
		}
		addOnIDs, err := parseObjectIDs(line.AddOnIDs)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid add-on ID format",
				Result:  nil,
			})
		}

		orderItem, err := models.NewOrderItem(item, line.Quantity, variationIDs, addOnIDs, now)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: err.Error(),
				Result:  nil,
			})
		}
		orderItems = append(orderItems, orderItem)
	}

	var shop models.Shop
	if err := shopCollection.FindOne(ctx, bson.M{"_id": shopID}).Decode(&shop); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch shop details",
			Result:  nil,
		})
	}
	if shop.ApprovalStatus != models.ApprovalApproved {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Shop is not accepting orders",
			Result:  nil,
		})
	}

	totalAmount := models.OrderTotal(orderItems)

	prepTime := orderReq.PreparationTime
	if prepTime <= 0 {
		prepTime = shop.PreparationTime
	}

	// Online methods settle through the gateway; the rest are collected
	// out of band.
	var razorpayID string
	if lifecycle.OnlineMethod(orderReq.PaymentMethod) {
		client := razorpay.NewClient(configs.Env().RazorpayKeyID, configs.Env().RazorpayKeySecret)
		data := map[string]interface{}{
			"amount":   int64(totalAmount * 100),
			"currency": "INR",
			"receipt":  "receipt_" + uuid.NewString(),
		}
		razorpayOrder, err := client.Order.Create(data, nil)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to create payment order: " + err.Error(),
				Result:  nil,
			})
		}
		razorpayID, _ = razorpayOrder["id"].(string)
	}

	order := models.Order{
		ID:                   primitive.NewObjectID(),
		OrderNumber:          lifecycle.GenerateOrderNumber(),
		UserID:               userObjectID,
		ShopID:               shop.ID,
		Items:                orderItems,
		TotalAmount:          totalAmount,
		DeliveryAddress:      orderReq.DeliveryAddress,
		DeliveryInstructions: orderReq.DeliveryInstructions,
		PaymentMethod:        orderReq.PaymentMethod,
		PaymentStatus:        lifecycle.PaymentPending,
		RazorpayID:           razorpayID,
		Status:               lifecycle.StatusPending,
		StatusHistory: []models.StatusEvent{{
			Status:    lifecycle.StatusPending,
			Timestamp: now,
			Note:      "Order placed",
			UpdatedBy: userObjectID,
		}},
		TrackingUpdates:   []models.TrackingUpdate{},
		EstimatedDelivery: lifecycle.EstimateDelivery(now, prepTime),
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// The unique index on orderNumber turns the small collision chance
	// into a retryable duplicate-key error.
	inserted := false
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		if _, err := orderCollection.InsertOne(ctx, order); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				order.OrderNumber = lifecycle.GenerateOrderNumber()
				continue
			}
			return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to create order in database",
				Result:  nil,
			})
		}
		inserted = true
		break
	}
	if !inserted {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to allocate a unique order number",
			Result:  nil,
		})
	}

	result := fiber.Map{"order": order}
	if razorpayID != "" {
		result["razorpayId"] = razorpayID
		result["key_id"] = configs.Env().RazorpayKeyID
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order created successfully",
		Result:  &result,
	})
}

// MarkPaid records the payment confirmation on the caller's order.
// Replays on an already-paid order are a no-op returning the order as
// is. While the order is still Pending, payment advances it to
// Confirmed.
func MarkPaid(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
			Result:  nil,
		})
	}

	userObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID format",
			Result:  nil,
		})
	}

	orderObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order ID format",
			Result:  nil,
		})
	}

	var payReq MarkPaidRequest
	if err := c.BodyParser(&payReq); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Result:  nil,
		})
	}

	var order models.Order
	err = orderCollection.FindOne(ctx, bson.M{"_id": orderObjectID, "userId": userObjectID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Order not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch order",
			Result:  nil,
		})
	}

	if order.IsPaid {
		if !order.IdempotentReplay(c.Get("Idempotency-Key")) {
			return c.Status(fiber.StatusConflict).JSON(responses.UserResponse{
				Status:  fiber.StatusConflict,
				Message: "Idempotency-Key does not match the original payment",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
			Status:  fiber.StatusOK,
			Message: "Order already paid",
			Result:  &fiber.Map{"order": order},
		})
	}

	// Gateway-settled methods must carry a signature valid for the
	// gateway order created at checkout, not an arbitrary one.
	if lifecycle.OnlineMethod(order.PaymentMethod) {
		if !lifecycle.VerifyPaymentSignature(configs.Env().RazorpayKeySecret, order.RazorpayID, payReq.PaymentID, payReq.Signature) {
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid payment signature",
				Result:  nil,
			})
		}
	}

	transactionID := payReq.TransactionID
	if transactionID == "" {
		transactionID = payReq.PaymentID
	}
	if transactionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Transaction ID is required",
			Result:  nil,
		})
	}

	status := payReq.Status
	if status == "" {
		status = "success"
	}

	now := time.Now()
	prevVersion := order.Version
	order.ApplyPayment(models.PaymentResult{
		TransactionID: transactionID,
		Method:        order.PaymentMethod,
		Status:        status,
		PaidAt:        now,
	}, c.Get("Idempotency-Key"), now)

	set := bson.M{
		"paymentStatus":  order.PaymentStatus,
		"isPaid":         order.IsPaid,
		"paidAt":         order.PaidAt,
		"paymentResult":  order.PaymentResult,
		"idempotencyKey": order.IdempotencyKey,
		"status":         order.Status,
		"statusHistory":  order.StatusHistory,
		"updatedAt":      order.UpdatedAt,
	}

	if ferr := casUpdate(ctx, order.ID, prevVersion, set); ferr != nil {
		return respondError(c, ferr)
	}
	order.Version = prevVersion + 1

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Payment recorded successfully",
		Result:  &fiber.Map{"order": order},
	})
}

// UpdateStatus moves the order along the delivery chain. Shop owner
// only; the transition matrix decides legality and every transition
// lands in the status history. An optional tracking message is appended
// alongside.
func UpdateStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	shop, order, ferr := shopOwnedOrder(ctx, c)
	if ferr != nil {
		return respondError(c, ferr)
	}

	var reqBody struct {
		Status          string `json:"status"`
		Note            string `json:"note"`
		TrackingMessage string `json:"trackingMessage"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Result:  nil,
		})
	}

	target, err := lifecycle.ParseStatus(reqBody.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order status: " + reqBody.Status,
			Result:  nil,
		})
	}

	now := time.Now()
	prevVersion := order.Version
	if err := order.ApplyStatus(target, shop.OwnerID, reqBody.Note, now); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Result:  nil,
		})
	}

	if reqBody.TrackingMessage != "" {
		order.AddTracking(uuid.NewString(), reqBody.TrackingMessage, "", now)
	}

	set := bson.M{
		"status":          order.Status,
		"isDelivered":     order.IsDelivered,
		"statusHistory":   order.StatusHistory,
		"trackingUpdates": order.TrackingUpdates,
		"updatedAt":       order.UpdatedAt,
	}
	if order.DeliveredAt != nil {
		set["deliveredAt"] = order.DeliveredAt
	}
	if order.CancelledAt != nil {
		set["cancelledAt"] = order.CancelledAt
		set["cancellationReason"] = order.CancellationReason
		set["cancelledBy"] = order.CancelledBy
	}

	if ferr := casUpdate(ctx, order.ID, prevVersion, set); ferr != nil {
		return respondError(c, ferr)
	}
	order.Version = prevVersion + 1

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order status updated successfully",
		Result:  &fiber.Map{"order": order},
	})
}

// CancelOrder cancels an order while it is still cancellable. Allowed
// for the order's customer and the owning shop's owner.
func CancelOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
			Result:  nil,
		})
	}

	callerObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID format",
			Result:  nil,
		})
	}

	orderObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order ID format",
			Result:  nil,
		})
	}

	var order models.Order
	err = orderCollection.FindOne(ctx, bson.M{"_id": orderObjectID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Order not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch order",
			Result:  nil,
		})
	}

	// Either the customer or the owning shop's owner may cancel.
	if order.UserID != callerObjectID {
		var shop models.Shop
		err := shopCollection.FindOne(ctx, bson.M{"_id": order.ShopID, "ownerId": callerObjectID}).Decode(&shop)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "You are not allowed to cancel this order",
				Result:  nil,
			})
		}
	}

	var reqBody struct {
		Reason string `json:"reason"`
	}
	// body is optional on cancellation
	_ = c.BodyParser(&reqBody)

	now := time.Now()
	prevVersion := order.Version
	if err := order.ApplyCancellation(reqBody.Reason, callerObjectID, now); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Result:  nil,
		})
	}

	set := bson.M{
		"status":             order.Status,
		"cancelledAt":        order.CancelledAt,
		"cancellationReason": order.CancellationReason,
		"cancelledBy":        order.CancelledBy,
		"statusHistory":      order.StatusHistory,
		"updatedAt":          order.UpdatedAt,
	}

	if ferr := casUpdate(ctx, order.ID, prevVersion, set); ferr != nil {
		return respondError(c, ferr)
	}
	order.Version = prevVersion + 1

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order cancelled successfully",
		Result:  &fiber.Map{"order": order},
	})
}

// AddTrackingUpdate appends a customer-facing delivery note. Shop owner
// only. The append is a single atomic $push, no read-modify-write.
func AddTrackingUpdate(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	_, order, ferr := shopOwnedOrder(ctx, c)
	if ferr != nil {
		return respondError(c, ferr)
	}

	var reqBody struct {
		Message  string `json:"message"`
		Location string `json:"location"`
	}
	if err := c.BodyParser(&reqBody); err != nil || reqBody.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Tracking message is required",
			Result:  nil,
		})
	}

	update := models.TrackingUpdate{
		ID:        uuid.NewString(),
		Message:   reqBody.Message,
		Location:  reqBody.Location,
		Timestamp: time.Now(),
	}

	_, err := orderCollection.UpdateOne(ctx,
		bson.M{"_id": order.ID},
		bson.M{
			"$push": bson.M{"trackingUpdates": update},
			"$set":  bson.M{"updatedAt": update.Timestamp},
			"$inc":  bson.M{"version": 1},
		},
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to add tracking update",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Tracking update added successfully",
		Result:  &fiber.Map{"trackingUpdate": update},
	})
}

// GetOrders returns the caller's orders, newest first, paginated, with
// an optional status filter.
func GetOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
			Result:  nil,
		})
	}

	userObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID format",
			Result:  nil,
		})
	}

	return listOrders(ctx, c, bson.M{"userId": userObjectID})
}

// GetShopOrders returns orders placed against the caller's shop.
func GetShopOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	shop, ferr := callerShop(ctx, c)
	if ferr != nil {
		return respondError(c, ferr)
	}

	return listOrders(ctx, c, bson.M{"shopId": shop.ID})
}

// GetOrderById returns one order to its customer or the owning shop's
// owner.
func GetOrderById(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
			Result:  nil,
		})
	}

	callerObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID format",
			Result:  nil,
		})
	}

	orderObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid order ID format",
			Result:  nil,
		})
	}

	var order models.Order
	err = orderCollection.FindOne(ctx, bson.M{"_id": orderObjectID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Order not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch order",
			Result:  nil,
		})
	}

	if order.UserID != callerObjectID {
		var shop models.Shop
		err := shopCollection.FindOne(ctx, bson.M{"_id": order.ShopID, "ownerId": callerObjectID}).Decode(&shop)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "You are not allowed to view this order",
				Result:  nil,
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order fetched successfully",
		Result:  &fiber.Map{"order": order},
	})
}

func listOrders(ctx context.Context, c *fiber.Ctx, filter bson.M) error {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if err != nil || limit < 1 {
		limit = 10
	}
	skip := (page - 1) * limit

	if status := c.Query("status", ""); status != "" {
		parsed, err := lifecycle.ParseStatus(status)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid order status: " + status,
				Result:  nil,
			})
		}
		filter["status"] = parsed
	}

	totalOrders, err := orderCollection.CountDocuments(ctx, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to count orders",
			Result:  nil,
		})
	}

	findOpts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := orderCollection.Find(ctx, filter, findOpts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch orders",
			Result:  nil,
		})
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to decode orders",
			Result:  nil,
		})
	}

	totalPages := (totalOrders + limit - 1) / limit

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result: &fiber.Map{
			"orders":      orders,
			"currentPage": page,
			"totalPages":  totalPages,
			"totalOrders": totalOrders,
		},
	})
}

// respondError writes a fiber.Error in the response envelope.
func respondError(c *fiber.Ctx, ferr *fiber.Error) error {
	return c.Status(ferr.Code).JSON(responses.UserResponse{
		Status:  ferr.Code,
		Message: ferr.Message,
		Result:  nil,
	})
}

// casUpdate applies a conditional order update pinned to the version
// read before mutating. A missed match means a concurrent writer won;
// the caller gets a conflict instead of a silent lost update.
func casUpdate(ctx context.Context, orderID primitive.ObjectID, prevVersion int64, set bson.M) *fiber.Error {
	set["version"] = prevVersion + 1

	result, err := orderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID, "version": prevVersion},
		bson.M{"$set": set},
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update order: "+err.Error())
	}
	if result.MatchedCount == 0 {
		return fiber.NewError(fiber.StatusConflict, "Order was modified concurrently, please retry")
	}
	return nil
}

// callerShop resolves the caller's shop.
func callerShop(ctx context.Context, c *fiber.Ctx) (*models.Shop, *fiber.Error) {
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
			return nil, fiber.NewError(fiber.StatusUnauthorized, "You do not own a shop")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch shop")
	}
	return &shop, nil
}

// shopOwnedOrder loads the order in :id and checks it belongs to the
// caller's shop.
func shopOwnedOrder(ctx context.Context, c *fiber.Ctx) (*models.Shop, *models.Order, *fiber.Error) {
	shop, ferr := callerShop(ctx, c)
	if ferr != nil {
		return nil, nil, ferr
	}

	orderObjectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid order ID format")
	}

	var order models.Order
	err = orderCollection.FindOne(ctx, bson.M{"_id": orderObjectID, "shopId": shop.ID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch order")
	}
	return shop, &order, nil
}

func parseObjectIDs(raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, err := primitive.ObjectIDFromHex(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
