package routes

import (
	orderController "foojra-api/controllers/orders"
	"foojra-api/middlewares"
	"foojra-api/models"

	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App) {
	app.Post("/api/orders", middlewares.AuthMiddleware, middlewares.RequireRole(models.RoleCustomer), orderController.CreateOrder)
	app.Get("/api/orders", middlewares.AuthMiddleware, orderController.GetOrders)
	app.Get("/api/orders/shop", middlewares.AuthMiddleware, middlewares.RequireRole(models.RoleShopOwner), orderController.GetShopOrders)
	app.Get("/api/orders/:id", middlewares.AuthMiddleware, orderController.GetOrderById)
	app.Put("/api/orders/:id/pay", middlewares.AuthMiddleware, middlewares.RequireRole(models.RoleCustomer), orderController.MarkPaid)
	app.Put("/api/orders/:id/status", middlewares.AuthMiddleware, middlewares.RequireRole(models.RoleShopOwner), orderController.UpdateStatus)
	app.Put("/api/orders/:id/cancel", middlewares.AuthMiddleware, orderController.CancelOrder)
	app.Post("/api/orders/:id/tracking", middlewares.AuthMiddleware, middlewares.RequireRole(models.RoleShopOwner), orderController.AddTrackingUpdate)
}
