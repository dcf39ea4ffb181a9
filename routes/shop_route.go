package routes

import (
	shopController "foojra-api/controllers/shops"
	"foojra-api/middlewares"
	"foojra-api/models"

	"github.com/gofiber/fiber/v2"
)

func ShopRoutes(app *fiber.App) {
	app.Get("/api/shops", shopController.ListShops)
	app.Get("/api/shops/mine", middlewares.AuthMiddleware, middlewares.RequireRole(models.RoleShopOwner), shopController.GetMyShop)
	app.Get("/api/shops/:id", shopController.GetShopById)
	app.Post("/api/shops", middlewares.AuthMiddleware, middlewares.RequireRole(models.RoleShopOwner), shopController.CreateShop)
	app.Put("/api/shops", middlewares.AuthMiddleware, middlewares.RequireRole(models.RoleShopOwner), shopController.UpdateShop)
	app.Delete("/api/shops", middlewares.AuthMiddleware, middlewares.RequireRole(models.RoleShopOwner), shopController.DeleteShop)
}
