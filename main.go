package main

import (
	"context"
	"time"

	"foojra-api/configs"
	"foojra-api/routes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	app := fiber.New()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := configs.EnsureIndexes(ctx, configs.DB); err != nil {
		configs.Logger.Fatal("failed to create indexes", zap.Error(err))
	}

	routes.UserRoute(app)
	routes.ShopRoutes(app)
	routes.MenuRoutes(app)
	routes.OrderRoutes(app)
	routes.ReviewRoutes(app)
	routes.AdminRoutes(app)

	configs.Logger.Info("starting server", zap.String("port", configs.Env().Port))
	if err := app.Listen(":" + configs.Env().Port); err != nil {
		configs.Logger.Fatal("server stopped", zap.Error(err))
	}
}
