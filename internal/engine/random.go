package engine

import (
	"github.com/lk16/othengine/internal/othello"
	"golang.org/x/exp/rand"
)

// Random plays a uniformly drawn legal move.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random engine. The same seed gives the same sequence of draws.
func NewRandom(seed uint64) *Random {
	return &Random{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NextMove returns a random legal move for the side to move.
func (r *Random) NextMove(board *othello.Board) (othello.Point, error) {
	moves := board.Moves(board.Turn())
	if len(moves) == 0 {
		return othello.Point{}, ErrNoLegalMoves
	}

	return moves[r.rng.Intn(len(moves))], nil
}
