package routes

import (
	reviewController "foojra-api/controllers/reviews"
	"foojra-api/middlewares"
	"foojra-api/models"

	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App) {
	customer := middlewares.RequireRole(models.RoleCustomer)

	app.Get("/api/reviews/shop/:shopId", reviewController.ListShopReviews)
	app.Post("/api/reviews/shop", middlewares.AuthMiddleware, customer, reviewController.CreateShopReview)
	app.Put("/api/reviews/shop/:id", middlewares.AuthMiddleware, customer, reviewController.UpdateShopReview)
	app.Delete("/api/reviews/shop/:id", middlewares.AuthMiddleware, customer, reviewController.DeleteShopReview)

	app.Get("/api/reviews/item/:itemId", reviewController.ListItemReviews)
	app.Post("/api/reviews/item", middlewares.AuthMiddleware, customer, reviewController.CreateItemReview)
	app.Put("/api/reviews/item/:id", middlewares.AuthMiddleware, customer, reviewController.UpdateItemReview)
	app.Delete("/api/reviews/item/:id", middlewares.AuthMiddleware, customer, reviewController.DeleteItemReview)
}
