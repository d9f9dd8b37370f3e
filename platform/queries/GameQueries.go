package queries

import (
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/gomodule/redigo/redis"

	"github.com/blockopoly/blockopoly-backend/app/models"
	"github.com/blockopoly/blockopoly-backend/platform/cache"
)

// Durable game lifecycle. Live room state belongs to the engine; these
// queries keep only what must outlive the process: game rows, membership
// and final rankings.

func VerifyGame(id string, db *pg.DB) bool {
	game := &models.Game{Id: id}
	return db.Model(game).WherePK().Select() == nil
}

func GetUserData(userId string, db *pg.DB) (*models.User, error) {
	user := new(models.User)
	err := db.Model(user).Where("id = ?", userId).Select()
	if err != nil {
		return nil, err
	}
	return user, nil
}

func CreatePlayer(player models.GamePlayer, db *pg.DB) error {
	_, err := db.Model(&player).Insert()
	return err
}

func DeletePlayer(userId string, gameId string, db *pg.DB) error {
	player := new(models.GamePlayer)
	_, err := db.Model(player).Where("user_id = ? and game_id = ?", userId, gameId).Delete()
	CheckDB(gameId, db)
	return err
}

func SetGameStatus(gameId string, status string, db *pg.DB) error {
	game := &models.Game{Id: gameId}
	_, err := db.Model(game).WherePK().Set("status = ?", status).Update()
	return err
}

// SaveRankings persists the final placements and the reward paid for
// each, keyed by game.
func SaveRankings(gameId string, rankings []models.PlayerRanking, rewards map[string]int, db *pg.DB) error {
	for _, ranking := range rankings {
		row := &models.GameRanking{
			Game_id:   gameId,
			Player_id: ranking.PlayerId,
			Rank:      ranking.Rank,
			Reward:    rewards[ranking.PlayerId],
		}
		if _, err := db.Model(row).Insert(); err != nil {
			return err
		}
	}
	return nil
}

// CheckDB deletes the game row once no memberships remain.
func CheckDB(gameId string, db *pg.DB) {
	var players []models.GamePlayer
	err := db.Model(&players).Where("game_id = ?", gameId).Select()
	if err != nil || len(players) == 0 {
		game := new(models.Game)
		db.Model(game).Where("id = ?", gameId).Delete()
	}
}

// CleanUpGame drops the game's membership rows and its transient redis
// keys. The rankings rows stay.
func CleanUpGame(gameId string, db *pg.DB, conn *redis.Conn) {
	player := new(models.GamePlayer)
	db.Model(player).Where("game_id = ?", gameId).Delete()
	game := new(models.Game)
	db.Model(game).Where("id = ?", gameId).Delete()

	cache.Del(gameId, conn)
	cache.Del(fmt.Sprintf("%s.players", gameId), conn)
}
