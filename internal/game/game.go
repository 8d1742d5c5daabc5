package game

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/othengine/internal/engine"
	"github.com/lk16/othengine/internal/othello"
)

var ErrIllegalMove = errors.New("illegal move")

const pausePrompt = "Press enter to continue "

// prompter is implemented by pause readers that draw their own prompt.
type prompter interface {
	SetPrompt(prompt string)
}

// Move is one turn of a game: either a placed piece or a pass.
type Move struct {
	Color othello.Color `json:"color"`
	Point othello.Point `json:"point"`
	Pass  bool          `json:"pass"`
}

// String returns the move in prompt notation, or "pass".
func (m Move) String() string {
	if m.Pass {
		return "pass"
	}
	return m.Point.String()
}

// Result describes a finished game.
type Result struct {
	ID          uuid.UUID
	Size        int
	BlackEngine string
	WhiteEngine string
	BlackScore  int
	WhiteScore  int
	Winner      othello.Color
	Moves       []Move
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Option configures a Game.
type Option func(g *Game)

// WithOutput draws the board to w after every turn.
func WithOutput(w io.Writer) Option {
	return func(g *Game) {
		g.output = w
	}
}

// WithPause waits for a line from r after every turn.
func WithPause(r engine.LineReader) Option {
	return func(g *Game) {
		g.pause = r
	}
}

// WithEngineNames sets the names stored in the Result.
func WithEngineNames(black, white string) Option {
	return func(g *Game) {
		g.blackName = black
		g.whiteName = white
	}
}

// Game drives two engines on one board until neither side can move.
type Game struct {
	id    uuid.UUID
	board *othello.Board

	blackEngine engine.Engine
	whiteEngine engine.Engine
	blackName   string
	whiteName   string

	// moves is the list of moves in the game, passes included
	moves []Move

	output io.Writer
	pause  engine.LineReader

	startedAt time.Time
}

// New creates a game on board, which is owned by the game from now on.
func New(board *othello.Board, black, white engine.Engine, options ...Option) *Game {
	g := &Game{
		id:          uuid.New(),
		board:       board,
		blackEngine: black,
		whiteEngine: white,
		blackName:   "black",
		whiteName:   "white",
		moves:       make([]Move, 0, board.Size()*board.Size()),
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// ID returns the game id.
func (g *Game) ID() uuid.UUID {
	return g.id
}

// Board returns the board the game is played on.
func (g *Game) Board() *othello.Board {
	return g.board
}

// Moves returns a copy of the moves played so far.
func (g *Game) Moves() []Move {
	return append([]Move(nil), g.moves...)
}

// PushMove plays p for the side to move and hands the turn to the opponent.
func (g *Game) PushMove(p othello.Point) error {
	turn := g.board.Turn()

	if !g.board.IsValidMove(turn, p) {
		return fmt.Errorf("%w: %s for %s", ErrIllegalMove, p, turn)
	}

	g.board.PlayPiece(turn, p.X, p.Y, false)
	g.board.SwitchTurn()
	g.moves = append(g.moves, Move{Color: turn, Point: p})
	return nil
}

// Step plays one turn. A side without moves passes if the opponent can still move. Step returns
// true when neither side can move; engines are never asked for a move in that case.
func (g *Game) Step() (bool, error) {
	turn := g.board.Turn()

	if !g.board.HasMoves(turn) {
		if !g.board.HasMoves(turn.Opponent()) {
			return true, nil
		}

		slog.Debug("Passing", "game_id", g.id, "color", turn)
		g.printf("%s has no moves and passes\n", turn)

		g.moves = append(g.moves, Move{Color: turn, Pass: true})
		g.board.SwitchTurn()
		return false, nil
	}

	e := g.whiteEngine
	if turn == othello.Black {
		e = g.blackEngine
	}

	move, err := e.NextMove(g.board)
	if err != nil {
		return false, fmt.Errorf("failed to get move for %s: %w", turn, err)
	}

	if err = g.PushMove(move); err != nil {
		return false, err
	}

	slog.Debug("Played move", "game_id", g.id, "color", turn, "move", move.String())
	g.printf("%s plays %s\n", turn, move)
	return false, nil
}

// Run plays until the game is over and returns the result.
func (g *Game) Run() (*Result, error) {
	g.startedAt = time.Now()
	g.draw()

	for {
		done, err := g.Step()
		if err != nil {
			return nil, err
		}

		if done {
			break
		}

		g.draw()

		if err = g.waitForEnter(); err != nil {
			return nil, err
		}
	}

	result := g.Result()

	slog.Info("Game finished",
		"game_id", g.id,
		"black", result.BlackScore,
		"white", result.WhiteScore,
		"winner", result.Winner.String(),
		"moves", len(result.Moves),
	)

	switch result.Winner {
	case othello.None:
		g.printf("Draw %d - %d\n", result.BlackScore, result.WhiteScore)
	default:
		g.printf("%s wins %d - %d\n", result.Winner, result.BlackScore, result.WhiteScore)
	}

	return result, nil
}

// Result returns the current state of the game as a Result.
func (g *Game) Result() *Result {
	return &Result{
		ID:          g.id,
		Size:        g.board.Size(),
		BlackEngine: g.blackName,
		WhiteEngine: g.whiteName,
		BlackScore:  g.board.Score(othello.Black),
		WhiteScore:  g.board.Score(othello.White),
		Winner:      g.board.Winner(),
		Moves:       g.Moves(),
		StartedAt:   g.startedAt,
		FinishedAt:  time.Now(),
	}
}

func (g *Game) draw() {
	if g.output == nil {
		return
	}

	if err := g.board.Fprint(g.output); err != nil {
		slog.Warn("Failed to draw board", "error", err)
	}
}

func (g *Game) printf(format string, args ...any) {
	if g.output == nil {
		return
	}
	fmt.Fprintf(g.output, format, args...)
}

func (g *Game) waitForEnter() error {
	if g.pause == nil {
		return nil
	}

	// The reader may be shared with a human engine, which sets its own prompt before every move.
	if p, ok := g.pause.(prompter); ok {
		p.SetPrompt(pausePrompt)
	} else {
		g.printf("%s", pausePrompt)
	}

	if _, err := g.pause.Readline(); err != nil {
		return fmt.Errorf("failed to wait for enter: %w", err)
	}
	return nil
}

// Replay plays moves on a new board of the given size. Passes must be recorded where they
// happened.
func Replay(size int, moves []Move) (*othello.Board, error) {
	board, err := othello.NewBoard(size)
	if err != nil {
		return nil, err
	}

	for i, move := range moves {
		turn := board.Turn()

		if move.Color != turn {
			return nil, fmt.Errorf("%w: move %d is for %s but %s is to move", ErrIllegalMove, i, move.Color, turn)
		}

		if move.Pass {
			if board.HasMoves(turn) {
				return nil, fmt.Errorf("%w: move %d passes with moves available", ErrIllegalMove, i)
			}
			board.SwitchTurn()
			continue
		}

		if !board.IsValidMove(turn, move.Point) {
			return nil, fmt.Errorf("%w: move %d plays %s", ErrIllegalMove, i, move.Point)
		}

		board.PlayPiece(turn, move.Point.X, move.Point.Y, false)
		board.SwitchTurn()
	}

	return board, nil
}
