package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/go-pg/pg/v10"
	"github.com/gomodule/redigo/redis"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/blockopoly/blockopoly-backend/app/engine"
	"github.com/blockopoly/blockopoly-backend/app/models"
	"github.com/blockopoly/blockopoly-backend/platform/cache"
	"github.com/blockopoly/blockopoly-backend/platform/database"
	"github.com/blockopoly/blockopoly-backend/platform/queries"
	"github.com/blockopoly/blockopoly-backend/platform/randomness"
	"github.com/blockopoly/blockopoly-backend/platform/settlement"
)

type connInfo struct {
	gameId   string
	playerId string
}

// gameServer adapts socket.io connections onto engine rooms: inbound
// client events become engine calls, engine events become emits, in the
// order the engine produced them.
type gameServer struct {
	io      *socketio.Server
	reg     *engine.Registry
	rng     *randomness.Service
	settler settlement.Settler
	db      *pg.DB
	pool    *redis.Pool

	mu      sync.Mutex
	conns   map[string]connInfo      // socket id -> who/where
	players map[string]socketio.Conn // gameId.playerId -> socket
	locks   map[string]*sync.Mutex   // per-room intent serialization
}

// CreateSocketIOServer runs the realtime transport. One inbound intent
// is fully processed per room before the next: the per-room lock is what
// lets the engine stay lock-free.
func CreateSocketIOServer(reg *engine.Registry, rng *randomness.Service, settler settlement.Settler) {
	server, err := socketio.NewServer(nil)
	if err != nil {
		panic(err)
	}
	db := database.PostgreSQLConnection()
	defer db.Close()

	pool := cache.CreateRedisPool()
	defer pool.Close()

	gs := &gameServer{
		io:      server,
		reg:     reg,
		rng:     rng,
		settler: settler,
		db:      db,
		pool:    pool,
		conns:   make(map[string]connInfo),
		players: make(map[string]socketio.Conn),
		locks:   make(map[string]*sync.Mutex),
	}

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "join-game", gs.handleJoin)
	server.OnEvent("/", "leave-game", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		gs.handleLeave(s, result["game_id"], result["user_id"])
		s.Leave(result["game_id"])
	})
	server.OnEvent("/", "start-game", gs.handleStart)

	server.OnEvent("/", "roll-dice", func(s socketio.Conn, jsonStr string) {
		gs.roomIntent(s, jsonStr, func(room *engine.GameRoom, result map[string]string) ([]engine.Event, error) {
			return room.RollTurn(context.Background(), result["user_id"])
		})
	})
	server.OnEvent("/", "buy-property", func(s socketio.Conn, jsonStr string) {
		gs.roomIntent(s, jsonStr, func(room *engine.GameRoom, result map[string]string) ([]engine.Event, error) {
			return room.ResolveBuyOrPass(result["user_id"], true)
		})
	})
	server.OnEvent("/", "pass-property", func(s socketio.Conn, jsonStr string) {
		gs.roomIntent(s, jsonStr, func(room *engine.GameRoom, result map[string]string) ([]engine.Event, error) {
			return room.ResolveBuyOrPass(result["user_id"], false)
		})
	})
	server.OnEvent("/", "sell-property", func(s socketio.Conn, jsonStr string) {
		gs.roomIntent(s, jsonStr, func(room *engine.GameRoom, result map[string]string) ([]engine.Event, error) {
			return room.SellProperty(result["user_id"], result["block_name"])
		})
	})
	server.OnEvent("/", "jail-choice", func(s socketio.Conn, jsonStr string) {
		gs.roomIntent(s, jsonStr, func(room *engine.GameRoom, result map[string]string) ([]engine.Event, error) {
			return room.ResolveJailChoice(context.Background(), result["user_id"], result["choice"] == "pay")
		})
	})

	server.OnEvent("/", "chat", gs.handleChat)
	server.OnEvent("/", "resync", gs.handleResync)

	server.OnError("/", func(s socketio.Conn, e error) {
		logrus.WithError(e).Error("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		gs.mu.Lock()
		info, ok := gs.conns[s.ID()]
		gs.mu.Unlock()
		if ok {
			gs.handleLeave(s, info.gameId, info.playerId)
		}
		s.LeaveAll()
	})

	go server.Serve()
	defer server.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{os.Getenv("CORS_ORIGIN")},
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	http.ListenAndServe(":8000", c.Handler(mux))
}

func (gs *gameServer) handleJoin(s socketio.Conn, jsonStr string) {
	result := parse(jsonStr)
	gameId, ok := result["game_id"]
	if !ok {
		s.Emit("error-message", "game_id not passed")
		return
	}
	userId, ok := result["user_id"]
	if !ok {
		s.Emit("error-message", "User not authenticated")
		return
	}
	if !queries.VerifyGame(gameId, gs.db) {
		s.Emit("error-message", "Invalid game")
		s.Emit("failed")
		return
	}
	room, err := gs.reg.Get(gameId)
	if err != nil {
		s.Emit("error-message", err.Error())
		s.Emit("failed")
		return
	}
	user, err := queries.GetUserData(userId, gs.db)
	if err != nil {
		s.Emit("error-message", "User retrieval failed")
		s.Emit("failed")
		return
	}

	player := engine.NewPlayer(user.Email, result["color"], userId)
	player.ConnRef = s.ID()

	unlock := gs.lockRoom(gameId)
	events, err := room.AddPlayer(player)
	unlock()
	if err != nil {
		s.Emit("error-message", err.Error())
		s.Emit("failed")
		return
	}

	if err := queries.CreatePlayer(models.GamePlayer{
		Game_id:  gameId,
		User_id:  userId,
		Username: user.Email,
		Active:   "true",
	}, gs.db); err != nil {
		logrus.WithError(err).Error("failed persisting player membership")
	}

	s.Join(gameId)
	gs.mu.Lock()
	gs.conns[s.ID()] = connInfo{gameId: gameId, playerId: player.Id}
	gs.players[playerKey(gameId, player.Id)] = s
	gs.mu.Unlock()

	conn := gs.pool.Get()
	cache.HSET(fmt.Sprintf("%s.players", gameId), player.Id, user.Email, &conn)
	conn.Close()

	gs.dispatch(s, gameId, room, events)
	s.Emit("joined-game", mustJSON(room.Board().Blocks()))
}

func (gs *gameServer) handleStart(s socketio.Conn, jsonStr string) {
	result := parse(jsonStr)
	gameId := result["game_id"]

	room, err := gs.reg.Get(gameId)
	if err != nil {
		s.Emit("error-message", err.Error())
		return
	}
	unlock := gs.lockRoom(gameId)
	events, err := room.Start(result["user_id"])
	unlock()
	if err != nil {
		s.Emit("error-message", err.Error())
		return
	}

	// Only the seed prefix is exposed before game end.
	if prefix, err := gs.rng.SeedPrefix(context.Background(), gameId); err == nil {
		for i, ev := range events {
			if started, ok := ev.(engine.GameStarted); ok {
				started.SeedPrefix = prefix
				events[i] = started
			}
		}
	}

	if err := queries.SetGameStatus(gameId, "in progress", gs.db); err != nil {
		logrus.WithError(err).Error("failed updating game status")
	}
	gs.dispatch(s, gameId, room, events)
}

func (gs *gameServer) handleChat(s socketio.Conn, jsonStr string) {
	result := parse(jsonStr)
	room, err := gs.reg.Get(result["game_id"])
	if err != nil {
		s.Emit("error-message", err.Error())
		return
	}
	player := room.GetPlayerById(result["user_id"])
	if player == nil {
		s.Emit("error-message", "Player not found")
		return
	}
	gs.io.BroadcastToRoom("/", room.Id, "chat", mustJSON(map[string]string{
		"playerId":   player.Id,
		"playerName": player.Name,
		"message":    result["message"],
	}))
}

// handleResync hands a reconnecting client the current turn and its own
// snapshot from the cache mirror.
func (gs *gameServer) handleResync(s socketio.Conn, jsonStr string) {
	result := parse(jsonStr)
	conn := gs.pool.Get()
	defer conn.Close()
	if turn, err := cache.Get(result["game_id"], &conn); err == nil {
		s.Emit("change-turn", turn)
	}
	if snap, err := cache.HGET(fmt.Sprintf("%s.state", result["game_id"]), result["user_id"], &conn); err == nil {
		s.Emit("player-state", snap)
	}
}

func (gs *gameServer) handleLeave(s socketio.Conn, gameId, playerId string) {
	if gameId == "" || playerId == "" {
		return
	}
	room, err := gs.reg.Get(gameId)
	if err != nil {
		return
	}
	unlock := gs.lockRoom(gameId)
	events, err := room.RemovePlayer(playerId)
	unlock()
	if err != nil {
		return
	}

	if err := queries.DeletePlayer(playerId, gameId, gs.db); err != nil {
		logrus.WithError(err).Error("failed deleting player membership")
	}

	gs.mu.Lock()
	delete(gs.conns, s.ID())
	delete(gs.players, playerKey(gameId, playerId))
	gs.mu.Unlock()

	gs.dispatch(s, gameId, room, events)

	if room.IsEmpty() && room.State != engine.StateFinished {
		gs.reg.Delete(gameId)
		gs.rng.Forget(gameId)
		conn := gs.pool.Get()
		queries.CleanUpGame(gameId, gs.db, &conn)
		conn.Close()
	}
}

// roomIntent is the shared guard path for in-game intents: look the room
// up, serialize on it, run the engine call, dispatch the events.
func (gs *gameServer) roomIntent(s socketio.Conn, jsonStr string, fn func(*engine.GameRoom, map[string]string) ([]engine.Event, error)) {
	result := parse(jsonStr)
	gameId := result["game_id"]
	room, err := gs.reg.Get(gameId)
	if err != nil {
		s.Emit("error-message", err.Error())
		return
	}
	unlock := gs.lockRoom(gameId)
	events, err := fn(room, result)
	unlock()
	if err != nil {
		s.Emit("error-message", err.Error())
		return
	}
	gs.dispatch(s, gameId, room, events)
	gs.mirrorPlayer(gameId, room.GetPlayerById(result["user_id"]))
}

// dispatch emits engine events in order. Private events go to the player
// they concern, everything else to the whole room. GameEnded triggers
// persistence, seed reveal, and the settlement collaborator.
func (gs *gameServer) dispatch(s socketio.Conn, gameId string, room *engine.GameRoom, events []engine.Event) {
	for _, ev := range events {
		payload := mustJSON(ev)
		if ev.Private() {
			gs.emitPrivate(s, gameId, ev, payload)
		} else {
			gs.io.BroadcastToRoom("/", gameId, ev.Name(), payload)
		}

		switch typed := ev.(type) {
		case engine.TurnAdvanced:
			conn := gs.pool.Get()
			cache.Set(gameId, typed.PlayerId, &conn)
			conn.Close()
		case engine.GameStarted:
			conn := gs.pool.Get()
			cache.Set(gameId, typed.CurrentPlayerId, &conn)
			conn.Close()
		case engine.GameEnded:
			gs.finishGame(gameId, room, typed)
		}
	}
}

// emitPrivate routes a private event to the player it names, falling
// back to the acting socket.
func (gs *gameServer) emitPrivate(s socketio.Conn, gameId string, ev engine.Event, payload string) {
	playerId := ""
	switch typed := ev.(type) {
	case engine.BuyOrPassPrompt:
		playerId = typed.PlayerId
	case engine.InsufficientFunds:
		playerId = typed.PlayerId
	case engine.JailChoicePrompt:
		playerId = typed.PlayerId
	}
	gs.mu.Lock()
	target, ok := gs.players[playerKey(gameId, playerId)]
	gs.mu.Unlock()
	if !ok {
		target = s
	}
	target.Emit(ev.Name(), payload)
}

func (gs *gameServer) finishGame(gameId string, room *engine.GameRoom, ended engine.GameEnded) {
	if err := queries.SetGameStatus(gameId, "finished", gs.db); err != nil {
		logrus.WithError(err).Error("failed updating game status")
	}
	if err := queries.SaveRankings(gameId, ended.Rankings, room.Rewards, gs.db); err != nil {
		logrus.WithError(err).Error("failed saving rankings")
	}

	// Reveal the full seed so anyone can audit the game's rolls.
	if seed, ok := gs.rng.RevealSeed(gameId); ok {
		conn := gs.pool.Get()
		cache.Set(fmt.Sprintf("%s.seed", gameId), seed, &conn)
		conn.Close()
		gs.rng.Forget(gameId)
	}

	if err := gs.settler.Distribute(context.Background(), gameId, ended.Settlement, room.Rewards); err != nil {
		logrus.WithError(err).Error("settlement failed")
	}

	gs.reg.Delete(gameId)
}

// mirrorPlayer keeps a balance:position snapshot in redis for resync.
func (gs *gameServer) mirrorPlayer(gameId string, p *models.Player) {
	if p == nil {
		return
	}
	conn := gs.pool.Get()
	cache.HSET(fmt.Sprintf("%s.state", gameId), p.Id, fmt.Sprintf("%d:%d", p.Balance, p.Position), &conn)
	conn.Close()
}

func (gs *gameServer) lockRoom(gameId string) func() {
	gs.mu.Lock()
	lock, ok := gs.locks[gameId]
	if !ok {
		lock = &sync.Mutex{}
		gs.locks[gameId] = lock
	}
	gs.mu.Unlock()
	lock.Lock()
	return lock.Unlock
}

func playerKey(gameId, playerId string) string {
	return gameId + "." + playerId
}

func parse(jsonStr string) map[string]string {
	var result map[string]string
	json.Unmarshal([]byte(jsonStr), &result)
	return result
}

func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
