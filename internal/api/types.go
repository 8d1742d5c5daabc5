package api

import (
	"time"

	"github.com/lk16/othengine/internal/game"
	"github.com/lk16/othengine/internal/othello"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// MovesPayload is the body of a legal moves request.
type MovesPayload struct {
	Board string `json:"board" validate:"required"`
}

// MovesResponse lists the legal moves of the side to move.
type MovesResponse struct {
	Turn       othello.Color   `json:"turn"`
	Moves      []othello.Point `json:"moves"`
	BlackScore int             `json:"black_score"`
	WhiteScore int             `json:"white_score"`
	GameOver   bool            `json:"game_over"`
}

// SearchPayload is the body of a search request.
type SearchPayload struct {
	Board    string `json:"board" validate:"required"`
	Depth    int    `json:"depth" validate:"min=1,max=6"`
	PassRule string `json:"pass_rule" validate:"omitempty,oneof=continue sentinel"`
}

// SearchResponse is the best move found by a search.
type SearchResponse struct {
	Move  othello.Point `json:"move"`
	Score int           `json:"score"`
	Nodes uint64        `json:"nodes"`
}

// GameSummary describes an archived game without its moves.
type GameSummary struct {
	ID          string    `json:"id"`
	Size        int       `json:"size"`
	BlackEngine string    `json:"black_engine"`
	WhiteEngine string    `json:"white_engine"`
	BlackScore  int       `json:"black_score"`
	WhiteScore  int       `json:"white_score"`
	Winner      string    `json:"winner"`
	FinishedAt  time.Time `json:"finished_at"`
}

// GameResponse is an archived game including its moves.
type GameResponse struct {
	GameSummary
	StartedAt time.Time   `json:"started_at"`
	Moves     []game.Move `json:"moves"`
	Board     string      `json:"board"`
}

// VersionResponse identifies the running build.
type VersionResponse struct {
	Commit string `json:"commit"`
}
