package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"

	"github.com/blockopoly/blockopoly-backend/app/controllers"
	"github.com/blockopoly/blockopoly-backend/app/engine"
	"github.com/blockopoly/blockopoly-backend/pkg/routes"
	"github.com/blockopoly/blockopoly-backend/platform/logging"
	"github.com/blockopoly/blockopoly-backend/platform/randomness"
	"github.com/blockopoly/blockopoly-backend/platform/settlement"
	socket "github.com/blockopoly/blockopoly-backend/platform/sockets"
)

func main() {
	logging.Init()

	dice := randomness.NewService(randomness.NewCryptoSource(), randomness.NewPseudoSource())
	reg := engine.NewRegistry(engine.DefaultConfig(), dice)

	app := fiber.New()

	app.Use(cors.New())
	routes.AuthRoutes(app)
	routes.GameRoutes(app, reg)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
	}))

	app.Get("/user/cur", controllers.Cur)
	go socket.CreateSocketIOServer(reg, dice, settlement.LogSettler{})
	app.Listen(":4101")
}
