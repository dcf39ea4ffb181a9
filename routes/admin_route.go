package routes

import (
	adminController "foojra-api/controllers/admin"
	"foojra-api/middlewares"
	"foojra-api/models"

	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	admin := middlewares.RequireRole(models.RoleAdmin)

	app.Get("/api/admin/shops/pending", middlewares.AuthMiddleware, admin, adminController.ListPendingShops)
	app.Put("/api/admin/shops/:id/approval", middlewares.AuthMiddleware, admin, adminController.SetShopApproval)
}
