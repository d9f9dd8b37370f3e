package engine

import "errors"

// Validation errors. None of these mutate room state; the transport
// surfaces them to the offending client only.
var (
	ErrRoomNotFound    = errors.New("game not found")
	ErrRoomFull        = errors.New("game is full")
	ErrRoomExists      = errors.New("game already exists")
	ErrGameStarted     = errors.New("game already started")
	ErrGameNotStarted  = errors.New("game not started")
	ErrGameFinished    = errors.New("game already finished")
	ErrNotEnoughPlayer = errors.New("not enough players to start")
	ErrNotCreator      = errors.New("only the creator can start the game")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrNoPendingAction = errors.New("no pending action to resolve")
	ErrPendingAction   = errors.New("resolve the pending action first")
	ErrDuplicatePlayer = errors.New("player id already exists in this game")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrBlockNotFound   = errors.New("property not found")
	ErrNotOwned        = errors.New("property not owned")
	ErrCannotAfford    = errors.New("insufficient balance")
	ErrNotInJail       = errors.New("player is not in jail")
	ErrInJail          = errors.New("player must resolve jail first")
	ErrDiceFailed      = errors.New("dice roll failed")
)
