package models

type Game struct {
	Id     string
	Name   string
	Status string
	Type   string
}

// GamePlayer is the durable membership row, one per (game, user).
type GamePlayer struct {
	User_id  string
	Game_id  string
	Username string
	Active   string
}

// GameRanking records a final placement and the reward paid for it.
type GameRanking struct {
	Game_id   string
	Player_id string
	Rank      int
	Reward    int
}

type GameCreateDto struct {
	Name string
	Type string
}

type VerifyGameDto struct {
	Code    string
	User_id string
}
