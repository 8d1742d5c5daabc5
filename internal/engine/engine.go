package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/lk16/othengine/internal/cache"
	"github.com/lk16/othengine/internal/othello"
)

var (
	// ErrPrecondition is returned when an engine is called in a state it must not be called in.
	ErrPrecondition = errors.New("precondition violation")

	// ErrNoLegalMoves is returned when the side to move has nothing to play.
	ErrNoLegalMoves = fmt.Errorf("%w: no legal moves", ErrPrecondition)

	ErrUnknownEngine = errors.New("unknown engine")
)

// Engine picks moves. NextMove returns a legal move for the side to move on board. The board may
// be mutated during the call but must be restored before returning.
type Engine interface {
	NextMove(board *othello.Board) (othello.Point, error)
}

// Kind names an engine implementation.
type Kind string

const (
	KindHuman   Kind = "human"
	KindRandom  Kind = "random"
	KindMinimax Kind = "minimax"
)

// Options configures engines created with New. Fields not used by an engine kind are ignored.
type Options struct {
	Depth    int
	PassRule PassRule
	Cache    cache.Cache
	Seed     uint64
	Input    LineReader
	Output   io.Writer
}

// New creates an engine by kind.
func New(kind Kind, opts Options) (Engine, error) {
	switch kind {
	case KindHuman:
		if opts.Input == nil || opts.Output == nil {
			return nil, fmt.Errorf("human engine needs input and output")
		}
		return NewHuman(opts.Input, opts.Output), nil
	case KindRandom:
		return NewRandom(opts.Seed), nil
	case KindMinimax:
		options := []Option{WithPassRule(opts.PassRule)}
		if opts.Depth > 0 {
			options = append(options, WithDepth(opts.Depth))
		}
		if opts.Cache != nil {
			options = append(options, WithCache(opts.Cache))
		}
		return NewMinimax(options...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, kind)
	}
}
