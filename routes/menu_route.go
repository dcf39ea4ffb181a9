package routes

import (
	menuController "foojra-api/controllers/menu"
	"foojra-api/middlewares"
	"foojra-api/models"

	"github.com/gofiber/fiber/v2"
)

func MenuRoutes(app *fiber.App) {
	app.Get("/api/shops/:shopId/menu", menuController.ListShopMenu)
	app.Get("/api/menu/:id", menuController.GetMenuItem)
	app.Post("/api/menu", middlewares.AuthMiddleware, middlewares.RequireRole(models.RoleShopOwner), menuController.CreateMenuItem)
	app.Put("/api/menu/:id", middlewares.AuthMiddleware, middlewares.RequireRole(models.RoleShopOwner), menuController.UpdateMenuItem)
	app.Delete("/api/menu/:id", middlewares.AuthMiddleware, middlewares.RequireRole(models.RoleShopOwner), menuController.DeleteMenuItem)
}
