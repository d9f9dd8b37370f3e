package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/blockopoly/blockopoly-backend/app/models"
	"github.com/blockopoly/blockopoly-backend/platform/board"
)

type RoomState int

const (
	StateWaiting RoomState = iota
	StateInProgress
	StateFinished
)

// DiceRoller produces auditable dice totals. platform/randomness provides
// the real one; tests inject deterministic stubs.
type DiceRoller interface {
	VerifiableRoll(ctx context.Context, gameId string, round int, playerIds []string) (models.VerifiableRoll, error)
}

// GameRoom is the orchestrating state machine for one session. A room is
// never mutated concurrently: the transport serializes intents per room.
type GameRoom struct {
	Id                 string
	Players            []*models.Player
	CurrentPlayerIndex int
	State              RoomState
	WaitingForAction   bool
	PendingBlock       *models.Block
	PendingRent        *models.PendingRent
	CreatorId          string
	TotalPool          int
	TempPool           int
	InitialPlayerCount int
	Rankings           []models.PlayerRanking
	Rewards            map[string]int
	Round              int

	cfg   Config
	board *board.Board
	dice  DiceRoller
}

func NewRoom(id string, cfg Config, dice DiceRoller) *GameRoom {
	return &GameRoom{
		Id:      id,
		Rewards: make(map[string]int),
		cfg:     cfg,
		board:   board.New(),
		dice:    dice,
	}
}

func (r *GameRoom) Board() *board.Board { return r.board }

func (r *GameRoom) Config() Config { return r.cfg }

func (r *GameRoom) GetCurrentPlayer() *models.Player {
	if len(r.Players) == 0 {
		return nil
	}
	return r.Players[r.CurrentPlayerIndex]
}

func (r *GameRoom) GetPlayerById(id string) *models.Player {
	return GetPlayerById(r.Players, id)
}

func (r *GameRoom) IsFull() bool { return len(r.Players) >= r.cfg.MaxPlayers }

func (r *GameRoom) IsEmpty() bool { return len(r.Players) == 0 }

// CanPlayerTakeAction guards the roll intent: the player's turn, nothing
// pending, not jailed.
func (r *GameRoom) CanPlayerTakeAction(playerId string) bool {
	current := r.GetCurrentPlayer()
	return ValidateTurn(r, playerId) && !r.WaitingForAction && !current.InJail
}

// CanPlayerBuyOrPass guards the buy-or-pass resolution intent.
func (r *GameRoom) CanPlayerBuyOrPass(playerId string) bool {
	current := r.GetCurrentPlayer()
	return r.WaitingForAction && r.PendingBlock != nil &&
		current != nil && current.Id == playerId
}

func (r *GameRoom) startingPool() int {
	return r.InitialPlayerCount * (r.cfg.StartingBalance + r.cfg.StartBonus)
}

func (r *GameRoom) playerIds() []string {
	ids := make([]string, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.Id
	}
	return ids
}

// AddPlayer joins a player to a room that has not started. The first
// player to join is the creator.
func (r *GameRoom) AddPlayer(p *models.Player) ([]Event, error) {
	if r.State != StateWaiting {
		return nil, ErrGameStarted
	}
	if r.IsFull() {
		return nil, ErrRoomFull
	}
	if IsDuplicateId(r.Players, p.Id) {
		return nil, ErrDuplicatePlayer
	}
	if len(r.Players) == 0 {
		r.CreatorId = p.Id
	}
	p.Balance = r.cfg.StartingBalance
	r.Players = append(r.Players, p)
	return []Event{PlayerJoined{Player: *p, Count: len(r.Players)}}, nil
}

// Start moves the room to IN_PROGRESS and fixes the pools. Only the
// creator may start.
func (r *GameRoom) Start(starterId string) ([]Event, error) {
	if r.State != StateWaiting {
		return nil, ErrGameStarted
	}
	if len(r.Players) < r.cfg.MinPlayers {
		return nil, ErrNotEnoughPlayer
	}
	if starterId != r.CreatorId {
		return nil, ErrNotCreator
	}
	r.State = StateInProgress
	r.CurrentPlayerIndex = 0
	r.InitialPlayerCount = len(r.Players)
	r.Round = 0
	pool := r.startingPool()
	r.TotalPool = pool
	r.TempPool = pool
	return []Event{GameStarted{
		CurrentPlayerId: r.Players[0].Id,
		TotalPool:       pool,
	}}, nil
}

// RollTurn rolls for the current player, moves them, and resolves the
// landing. It is the only suspension point in a turn: the dice source may
// await external entropy.
func (r *GameRoom) RollTurn(ctx context.Context, playerId string) ([]Event, error) {
	if err := r.inProgress(); err != nil {
		return nil, err
	}
	if !ValidateTurn(r, playerId) {
		return nil, ErrNotYourTurn
	}
	if r.WaitingForAction {
		return nil, ErrPendingAction
	}
	current := r.GetCurrentPlayer()
	if current.InJail {
		return nil, ErrInJail
	}

	r.Round++
	roll, err := r.dice.VerifiableRoll(ctx, r.Id, r.Round, r.playerIds())
	if err != nil {
		return nil, ErrDiceFailed
	}

	move := MovePlayer(current, roll.Total, r.board.Length())
	landed := r.board.GetBlock(move.NewPosition)
	if landed == nil {
		panic(fmt.Sprintf("no block at valid position %d", move.NewPosition))
	}
	events := []Event{DiceRolled{
		PlayerId:    current.Id,
		Total:       roll.Total,
		NewPosition: move.NewPosition,
		LandedBlock: *landed,
		Proof:       roll,
	}}
	if move.PassedStart {
		CollectStartBonus(current, r.cfg.StartBonus)
		events = append(events, PassedStart{PlayerId: current.Id, Amount: r.cfg.StartBonus})
	}
	return r.resolveLanding(current, landed, events), nil
}

func (r *GameRoom) resolveLanding(p *models.Player, b *models.Block, events []Event) []Event {
	if b.Corner {
		delta, jailed := applyCornerEffect(b.Kind, b.Amount, p)
		if b.Kind != models.CornerStartBonus {
			events = append(events, CornerEffect{
				PlayerId:     p.Id,
				BlockName:    b.Name,
				AmountChange: delta,
				SkipTurns:    p.SkipTurns,
				SentToJail:   jailed,
			})
		}
		if jailed && r.cfg.JailHoldsTurn {
			return append(events, r.jailPrompt(p))
		}
		return r.nextTurn(events)
	}

	result := ResolveLanding(p, b, r.Players, r.cfg)
	switch result.Action {
	case ActionBuyOrPass:
		r.WaitingForAction = true
		r.PendingBlock = b
		return append(events, BuyOrPassPrompt{PlayerId: p.Id, Block: *b, Balance: p.Balance})
	case ActionPayRent:
		return r.handleRent(p, result.Owner, b, events)
	default:
		return r.nextTurn(events)
	}
}

func (r *GameRoom) handleRent(p, owner *models.Player, b *models.Block, events []Event) []Event {
	result := HandleRentPayment(p, owner, b, r.cfg)
	if result.Success {
		events = append(events, RentPaid{
			PayerId:   p.Id,
			OwnerId:   owner.Id,
			Amount:    result.RentAmount,
			BlockName: b.Name,
		})
		return r.nextTurn(events)
	}

	events = append(events, InsufficientFunds{
		PlayerId:       p.Id,
		RentAmount:     result.RentAmount,
		CurrentBalance: p.Balance,
		OwnedBlocks:    append([]string(nil), p.OwnedBlocks...),
	})
	if !CanCoverRentBySelling(p, result.RentAmount, r.board, r.cfg) {
		return r.eliminate(p, events)
	}
	r.PendingRent = &models.PendingRent{Amount: result.RentAmount, OwnerId: owner.Id, BlockName: b.Name}
	r.WaitingForAction = true
	return events
}

// ResolveBuyOrPass settles a pending buy-or-pass decision.
func (r *GameRoom) ResolveBuyOrPass(playerId string, buy bool) ([]Event, error) {
	if err := r.inProgress(); err != nil {
		return nil, err
	}
	if !r.CanPlayerBuyOrPass(playerId) {
		return nil, ErrNoPendingAction
	}
	p := r.GetCurrentPlayer()
	b := r.PendingBlock

	var events []Event
	if buy {
		if !BuyProperty(p, b, r.cfg.FeeRate) {
			return nil, ErrCannotAfford
		}
		events = append(events, PropertyBought{
			PlayerId:  p.Id,
			BlockName: b.Name,
			Price:     b.Price,
			Balance:   p.Balance,
		})
	} else {
		events = append(events, PropertyPassed{PlayerId: p.Id, BlockName: b.Name})
	}
	r.WaitingForAction = false
	r.PendingBlock = nil
	return r.nextTurn(events), nil
}

// SellProperty liquidates one of the current player's blocks. When a rent
// is pending, solvency is re-checked after the sale: once the player can
// cover the rent it is paid automatically and normal play resumes; when
// no remaining asset can close the gap the player is eliminated.
func (r *GameRoom) SellProperty(playerId, blockName string) ([]Event, error) {
	if err := r.inProgress(); err != nil {
		return nil, err
	}
	p := r.GetPlayerById(playerId)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	current := r.GetCurrentPlayer()
	if current == nil || current.Id != playerId {
		return nil, ErrNotYourTurn
	}
	if r.PendingBlock != nil {
		return nil, ErrPendingAction
	}
	b := r.board.GetBlockByName(blockName)
	if b == nil {
		return nil, ErrBlockNotFound
	}
	gross := SellProperty(p, b, r.cfg.SellRate, r.cfg.FeeRate)
	if gross == 0 {
		return nil, ErrNotOwned
	}

	events := []Event{PropertySold{
		PlayerId:  p.Id,
		BlockName: blockName,
		SalePrice: gross,
		Balance:   p.Balance,
	}}

	if r.PendingRent == nil {
		return events, nil
	}
	pending := r.PendingRent
	if CanAffordRent(p, pending.Amount, r.cfg.FeeRate) {
		owner := r.GetPlayerById(pending.OwnerId)
		if owner == nil {
			panic(fmt.Sprintf("pending rent owner %q not in room %s", pending.OwnerId, r.Id))
		}
		PayRent(p, owner, pending.Amount, r.cfg.FeeRate)
		events = append(events, RentPaid{
			PayerId:   p.Id,
			OwnerId:   owner.Id,
			Amount:    pending.Amount,
			BlockName: pending.BlockName,
		})
		r.PendingRent = nil
		r.WaitingForAction = false
		return r.nextTurn(events), nil
	}
	if !CanCoverRentBySelling(p, pending.Amount, r.board, r.cfg) {
		return r.eliminate(p, events), nil
	}
	return events, nil
}

// ResolveJailChoice settles a jailed player's pay-or-roll decision. A
// failed escape roll keeps the player jailed and passes the turn.
func (r *GameRoom) ResolveJailChoice(ctx context.Context, playerId string, pay bool) ([]Event, error) {
	if err := r.inProgress(); err != nil {
		return nil, err
	}
	if !ValidateTurn(r, playerId) {
		return nil, ErrNotYourTurn
	}
	current := r.GetCurrentPlayer()
	if !current.InJail {
		return nil, ErrNotInJail
	}

	var events []Event
	if pay {
		if current.Balance < r.cfg.JailEscapePayment {
			return nil, ErrCannotAfford
		}
		current.Balance -= r.cfg.JailEscapePayment
		current.InJail = false
		events = append(events, JailRollResult{
			PlayerId: current.Id,
			Escaped:  true,
			Paid:     r.cfg.JailEscapePayment,
		})
		return r.nextTurn(events), nil
	}

	r.Round++
	roll, err := r.dice.VerifiableRoll(ctx, r.Id, r.Round, r.playerIds())
	if err != nil {
		return nil, ErrDiceFailed
	}
	escaped := roll.Total > r.cfg.JailEscapeDiceThreshold
	if escaped {
		current.InJail = false
	}
	events = append(events, JailRollResult{
		PlayerId: current.Id,
		Total:    roll.Total,
		Escaped:  escaped,
	})
	return r.nextTurn(events), nil
}

// RemovePlayer handles a disconnect. Before start the player simply
// leaves; after start leaving is an elimination and goes through the
// same ranking path.
func (r *GameRoom) RemovePlayer(playerId string) ([]Event, error) {
	p := r.GetPlayerById(playerId)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	events := []Event{PlayerLeft{PlayerId: playerId}}
	if r.State != StateInProgress {
		r.dropPlayer(p)
		if r.CreatorId == playerId && len(r.Players) > 0 {
			r.CreatorId = r.Players[0].Id
		}
		return events, nil
	}
	return r.eliminate(p, events), nil
}

// eliminate removes p from play, assigns the next rank from the bottom
// up, pays the elimination reward out of the pools, and finishes the
// game when one player remains.
func (r *GameRoom) eliminate(p *models.Player, events []Event) []Event {
	before := len(r.Players)
	eliminated := r.InitialPlayerCount - before + 1

	for _, name := range p.OwnedBlocks {
		if b := r.board.GetBlockByName(name); b != nil {
			b.Owner = ""
		}
	}
	p.OwnedBlocks = nil

	wasCurrent := r.GetCurrentPlayer() == p
	removedIdx := r.dropPlayer(p)
	remaining := len(r.Players)

	reward := 0
	if eliminated > 1 && remaining > 0 {
		reward = r.TempPool / (2 * remaining)
		r.TempPool -= reward
		r.TotalPool -= reward
	}
	rank := r.InitialPlayerCount - eliminated + 1
	r.Rankings = append(r.Rankings, models.PlayerRanking{PlayerId: p.Id, Rank: rank})
	r.Rewards[p.Id] = reward

	// Pending state belongs to the player awaiting it; a bystander's
	// elimination must not cancel it. A pending rent also dies when its
	// creditor is the one leaving.
	rentOwedToEliminated := r.PendingRent != nil && r.PendingRent.OwnerId == p.Id
	if wasCurrent {
		r.PendingRent = nil
		r.PendingBlock = nil
		r.WaitingForAction = false
	} else if rentOwedToEliminated {
		r.PendingRent = nil
		r.WaitingForAction = false
	}

	events = append(events, PlayerBankrupt{PlayerId: p.Id, Rank: rank, RewardAmount: reward})

	if remaining == 1 {
		winner := r.Players[0]
		winnerReward := r.startingPool() / 2
		r.TotalPool -= winnerReward
		r.Rankings = append(r.Rankings, models.PlayerRanking{PlayerId: winner.Id, Rank: 1})
		r.Rewards[winner.Id] = winnerReward
		r.State = StateFinished
		return append(events, GameEnded{
			Reason:       "player_won",
			WinnerId:     winner.Id,
			WinnerReward: winnerReward,
			Rankings:     r.Rankings,
			Settlement:   r.SettlementList(),
		})
	}
	if remaining == 0 {
		r.State = StateFinished
		return append(events, GameEnded{
			Reason:     "insufficient_players",
			Rankings:   r.Rankings,
			Settlement: r.SettlementList(),
		})
	}
	if wasCurrent {
		// Removal already shifted the turn onto the successor.
		return r.settleTurnOn(removedIdx%remaining, events)
	}
	if rentOwedToEliminated {
		// The debtor already rolled this turn; with the debt gone their
		// turn is over.
		return r.nextTurn(events)
	}
	return events
}

// dropPlayer removes p from the turn order and keeps CurrentPlayerIndex
// pointing at the same live player when possible. Returns the index the
// player occupied.
func (r *GameRoom) dropPlayer(p *models.Player) int {
	idx := -1
	for i, other := range r.Players {
		if other == p {
			idx = i
			break
		}
	}
	if idx == -1 {
		return idx
	}
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	if idx < r.CurrentPlayerIndex {
		r.CurrentPlayerIndex--
	}
	if r.CurrentPlayerIndex >= len(r.Players) {
		r.CurrentPlayerIndex = 0
	}
	return idx
}

// nextTurn rotates to the next live player, consuming skip-turn counters
// along the way.
func (r *GameRoom) nextTurn(events []Event) []Event {
	if len(r.Players) == 0 {
		return events
	}
	return r.settleTurnOn(NextIndex(r.CurrentPlayerIndex, len(r.Players)), events)
}

func (r *GameRoom) settleTurnOn(idx int, events []Event) []Event {
	for i := 0; i < len(r.Players); i++ {
		p := r.Players[idx]
		if p.SkipTurns > 0 {
			p.SkipTurns--
			idx = NextIndex(idx, len(r.Players))
			continue
		}
		break
	}
	r.CurrentPlayerIndex = idx
	current := r.Players[idx]
	events = append(events, TurnAdvanced{PlayerId: current.Id})
	if current.InJail && !r.cfg.JailHoldsTurn {
		events = append(events, r.jailPrompt(current))
	}
	return events
}

func (r *GameRoom) jailPrompt(p *models.Player) JailChoicePrompt {
	return JailChoicePrompt{
		PlayerId:      p.Id,
		EscapePayment: r.cfg.JailEscapePayment,
		DiceThreshold: r.cfg.JailEscapeDiceThreshold,
	}
}

// SettlementList is the fixed four-slot payout order handed to the
// settlement collaborator: winner, runner-ups, last place. With fewer
// than four players the lowest-known rank repeats.
func (r *GameRoom) SettlementList() models.RankedPlayers {
	ranked := append([]models.PlayerRanking(nil), r.Rankings...)
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Rank < ranked[j].Rank })

	var out models.RankedPlayers
	if len(ranked) == 0 {
		return out
	}
	for i := 0; i < len(out); i++ {
		j := i
		if j >= len(ranked) {
			j = len(ranked) - 1
		}
		out[i] = ranked[j].PlayerId
	}
	return out
}

func (r *GameRoom) inProgress() error {
	switch r.State {
	case StateWaiting:
		return ErrGameNotStarted
	case StateFinished:
		return ErrGameFinished
	}
	return nil
}
