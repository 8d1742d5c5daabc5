package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/lk16/othengine/internal/cache"
	"github.com/lk16/othengine/internal/othello"
)

const (
	DefaultDepth = 3
	MaxDepth     = 8

	cacheTimeout = 500 * time.Millisecond
)

// PassRule decides what the search does when the side to move has no legal move.
type PassRule int

const (
	// PassContinue lets the side pass and the opponent continue. The pass uses up one ply. When
	// neither side can move the position is scored like a leaf.
	PassContinue PassRule = iota

	// PassSentinel ends the branch: it scores math.MaxInt for the maximizing side and math.MinInt
	// for the minimizing side.
	PassSentinel
)

// String returns the name of the pass rule.
func (r PassRule) String() string {
	if r == PassSentinel {
		return "sentinel"
	}
	return "continue"
}

// ParsePassRule parses the output of PassRule.String.
func ParsePassRule(s string) (PassRule, error) {
	switch s {
	case "continue", "":
		return PassContinue, nil
	case "sentinel":
		return PassSentinel, nil
	}
	return PassContinue, fmt.Errorf("invalid pass rule: %q", s)
}

// Option configures a Minimax engine.
type Option func(m *Minimax)

// WithDepth sets the number of plies searched.
func WithDepth(depth int) Option {
	return func(m *Minimax) {
		m.depth = depth
	}
}

// WithPassRule sets the pass rule.
func WithPassRule(rule PassRule) Option {
	return func(m *Minimax) {
		m.passRule = rule
	}
}

// WithCache makes the engine reuse earlier search results.
func WithCache(c cache.Cache) Option {
	return func(m *Minimax) {
		m.cache = c
	}
}

// Minimax searches all lines up to a fixed depth and scores leaves by piece count of the side it
// plays for. It plays and undoes moves on the board it is given instead of copying it.
type Minimax struct {
	depth    int
	passRule PassRule
	cache    cache.Cache

	// winColor is the color the current search maximizes for
	winColor othello.Color

	startTime time.Time
	nodes     uint64
}

// NewMinimax creates a Minimax engine searching DefaultDepth plies unless configured otherwise.
func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{
		depth:    DefaultDepth,
		passRule: PassContinue,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Depth returns the search depth.
func (m *Minimax) Depth() int {
	return m.depth
}

// Nodes returns the number of nodes visited by the last search.
func (m *Minimax) Nodes() uint64 {
	return m.nodes
}

// NextMove returns the best move for the side to move.
func (m *Minimax) NextMove(board *othello.Board) (othello.Point, error) {
	result, err := m.Search(board)
	if err != nil {
		return othello.Point{}, err
	}
	return result.Move, nil
}

// Search returns the best move for the side to move together with its score.
func (m *Minimax) Search(board *othello.Board) (cache.Entry, error) {
	turn := board.Turn()

	moves := board.Moves(turn)
	if len(moves) == 0 {
		return cache.Entry{}, ErrNoLegalMoves
	}

	key := cache.NewKey(board, m.depth, m.passRule.String())
	if entry, ok := m.lookup(key); ok && board.IsValidMove(turn, entry.Move) {
		m.nodes = 0
		return entry, nil
	}

	m.winColor = turn
	m.startTime = time.Now()
	m.nodes = 0

	var best othello.Point
	bestScore := math.MinInt

	for i, move := range moves {
		board.PlayPiece(turn, move.X, move.Y, true)
		score := m.step(board, 1, turn.Opponent())
		board.UndoMove()

		if i == 0 || score > bestScore {
			best = move
			bestScore = score
		}
	}

	entry := cache.Entry{
		Move:  best,
		Score: bestScore,
		Nodes: m.nodes,
	}

	m.store(key, entry)
	m.logStats(entry)

	return entry, nil
}

// step returns the minimax score of the position with mover to play, ply plies below the root.
func (m *Minimax) step(board *othello.Board, ply int, mover othello.Color) int {
	m.nodes++

	if ply >= m.depth {
		return board.Score(m.winColor)
	}

	maximizing := mover == m.winColor

	// Moves is a copy, the board rebuilds its move sets on every PlayPiece.
	moves := board.Moves(mover)

	if len(moves) == 0 {
		if m.passRule == PassSentinel {
			if maximizing {
				return math.MaxInt
			}
			return math.MinInt
		}

		if !board.HasMoves(mover.Opponent()) {
			return board.Score(m.winColor)
		}

		return m.step(board, ply+1, mover.Opponent())
	}

	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}

	for _, move := range moves {
		board.PlayPiece(mover, move.X, move.Y, true)
		score := m.step(board, ply+1, mover.Opponent())
		board.UndoMove()

		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
		}
	}

	return best
}

func (m *Minimax) lookup(key cache.Key) (cache.Entry, bool) {
	if m.cache == nil {
		return cache.Entry{}, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	entry, ok, err := m.cache.Lookup(ctx, key)
	if err != nil {
		slog.Warn("Failed to look up search result", "error", err)
		return cache.Entry{}, false
	}

	return entry, ok
}

func (m *Minimax) store(key cache.Key, entry cache.Entry) {
	if m.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	if err := m.cache.Store(ctx, key, entry); err != nil {
		slog.Warn("Failed to store search result", "error", err)
	}
}

func (m *Minimax) logStats(entry cache.Entry) {
	elapsedSeconds := time.Since(m.startTime).Seconds()

	nodesPerSecond := int64(0)
	if elapsedSeconds > 0.000001 {
		nodesPerSecond = int64(float64(m.nodes) / elapsedSeconds)
	}

	slog.Debug("Search done",
		"move", entry.Move.String(),
		"score", entry.Score,
		"depth", m.depth,
		"nodes", m.nodes,
		"seconds", fmt.Sprintf("%.4f", elapsedSeconds),
		"nodes_per_second", nodesPerSecond,
	)
}
