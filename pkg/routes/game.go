package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blockopoly/blockopoly-backend/app/controllers"
	"github.com/blockopoly/blockopoly-backend/app/engine"
)

func GameRoutes(a *fiber.App, reg *engine.Registry) {
	route := a.Group("/game")
	route.Post("/create", controllers.CreateGame(reg))
	route.Get("/verify", controllers.VerifyGame(reg))
	route.Get("/all", controllers.GetAllAvailGames)
}
