package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/blockopoly/blockopoly-backend/app/engine"
	"github.com/blockopoly/blockopoly-backend/app/models"
	"github.com/blockopoly/blockopoly-backend/pkg"
	"github.com/blockopoly/blockopoly-backend/platform/database"
)

// CreateGame opens a room in the registry and records the durable game
// row. Players join through the socket transport afterwards.
func CreateGame(reg *engine.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := database.PostgreSQLConnection()
		defer db.Close()

		gameCreateDto := new(models.GameCreateDto)
		if err := c.BodyParser(gameCreateDto); err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}

		id := pkg.RandString(8)
		if _, err := reg.Create(id); err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}

		game := &models.Game{
			Id:     id,
			Name:   gameCreateDto.Name,
			Status: "waiting",
			Type:   gameCreateDto.Type,
		}
		if _, err := db.Model(game).Insert(); err != nil {
			logrus.WithError(err).Error("failed inserting game")
			reg.Delete(id)
			return c.SendStatus(fiber.StatusInternalServerError)
		}

		return c.JSON(fiber.Map{"id": game.Id})
	}
}

func GetAllAvailGames(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	var games []models.Game
	if err := db.Model(&games).Where("status = ?", "waiting").Select(); err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(games)
}

func VerifyGame(reg *engine.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := database.PostgreSQLConnection()
		defer db.Close()

		verifyGameDto := new(models.VerifyGameDto)
		if err := c.QueryParser(verifyGameDto); err != nil {
			return err
		}

		game := &models.Game{Id: verifyGameDto.Code}
		if err := db.Model(game).WherePK().Select(); err != nil {
			return c.JSON(fiber.Map{"status": false})
		}
		room, err := reg.Get(verifyGameDto.Code)
		if err != nil {
			return c.JSON(fiber.Map{"status": false})
		}
		return c.JSON(fiber.Map{"status": !room.IsFull() && room.State == engine.StateWaiting})
	}
}
