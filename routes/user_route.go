package routes

import (
	userController "foojra-api/controllers/users"
	"foojra-api/middlewares"

	"github.com/gofiber/fiber/v2"
)

func UserRoute(app *fiber.App) {
	app.Post("/api/users/signup", userController.UserSignUp)
	app.Post("/api/users/signin", userController.UserSignIn)
	app.Get("/api/users/me", middlewares.AuthMiddleware, userController.GetProfile)
}
