package game

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/lk16/othengine/internal/engine"
	"github.com/lk16/othengine/internal/othello"
	"github.com/stretchr/testify/require"
)

// recordingEngine fails the test when asked for a move without legal moves.
type recordingEngine struct {
	t     *testing.T
	inner engine.Engine
	calls int
}

func (e *recordingEngine) NextMove(board *othello.Board) (othello.Point, error) {
	e.t.Helper()
	require.True(e.t, board.HasMoves(board.Turn()), "engine called without legal moves")
	e.calls++
	return e.inner.NextMove(board)
}

type fixedEngine struct {
	move othello.Point
}

func (e fixedEngine) NextMove(*othello.Board) (othello.Point, error) {
	return e.move, nil
}

func TestGame_Run_Random(t *testing.T) {
	for _, size := range []int{4, 6, 8} {
		black := &recordingEngine{t: t, inner: engine.NewRandom(1)}
		white := &recordingEngine{t: t, inner: engine.NewRandom(2)}

		g := New(othello.NewBoardMust(size), black, white, WithEngineNames("random", "random"))

		result, err := g.Run()
		require.NoError(t, err)

		require.True(t, g.Board().IsGameOver())
		require.Equal(t, size, result.Size)
		require.Equal(t, g.ID(), result.ID)
		require.Equal(t, "random", result.BlackEngine)
		require.Equal(t, g.Board().Score(othello.Black), result.BlackScore)
		require.Equal(t, g.Board().Score(othello.White), result.WhiteScore)
		require.Equal(t, g.Board().Winner(), result.Winner)
		require.LessOrEqual(t, result.BlackScore+result.WhiteScore, size*size)

		played := 0
		for _, move := range result.Moves {
			if !move.Pass {
				played++
			}
		}
		require.Equal(t, black.calls+white.calls, played)
		require.Equal(t, 4+played, result.BlackScore+result.WhiteScore)

		replayed, err := Replay(size, result.Moves)
		require.NoError(t, err)
		require.True(t, replayed.Equal(g.Board()))
	}
}

func TestGame_Run_Minimax(t *testing.T) {
	black := engine.NewMinimax(engine.WithDepth(2))
	white := engine.NewRandom(5)

	var output bytes.Buffer
	g := New(othello.NewBoardMust(6), black, white, WithOutput(&output))

	result, err := g.Run()
	require.NoError(t, err)
	require.True(t, g.Board().IsGameOver())
	require.Equal(t, 0, g.Board().UndoDepth())

	require.Contains(t, output.String(), "black plays")
	require.Contains(t, output.String(), "White: ")

	if result.Winner == othello.None {
		require.Contains(t, output.String(), "Draw")
	} else {
		require.Contains(t, output.String(), result.Winner.String()+" wins")
	}
}

func TestGame_Step_Pass(t *testing.T) {
	// White has no moves, black plays (2,0) and then nobody can move.
	board, err := othello.NewBoardFromString("bw..............-w")
	require.NoError(t, err)

	black := &recordingEngine{t: t, inner: engine.NewRandom(1)}
	white := &recordingEngine{t: t, inner: engine.NewRandom(1)}

	g := New(board, black, white)

	result, err := g.Run()
	require.NoError(t, err)

	require.Equal(t, 0, white.calls)
	require.Equal(t, 1, black.calls)
	require.Equal(t, []Move{
		{Color: othello.White, Pass: true},
		{Color: othello.Black, Point: othello.Point{X: 2, Y: 0}},
	}, result.Moves)
	require.Equal(t, 3, result.BlackScore)
	require.Equal(t, 0, result.WhiteScore)
	require.Equal(t, othello.Black, result.Winner)
}

func TestGame_Step_GameOver(t *testing.T) {
	board, err := othello.NewBoardFromString("bbbbbbbbbbbbbbb.-b")
	require.NoError(t, err)

	black := &recordingEngine{t: t, inner: engine.NewRandom(1)}
	white := &recordingEngine{t: t, inner: engine.NewRandom(1)}

	done, err := New(board, black, white).Step()
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, 0, black.calls+white.calls)
}

func TestGame_Step_IllegalMove(t *testing.T) {
	g := New(othello.NewBoardMust(8), fixedEngine{move: othello.Point{X: 0, Y: 0}}, engine.NewRandom(1))

	_, err := g.Step()
	require.ErrorIs(t, err, ErrIllegalMove)
	require.Empty(t, g.Moves())
}

func TestGame_Step_EngineError(t *testing.T) {
	human := engine.NewHuman(engine.NewLineReader(strings.NewReader("")), &bytes.Buffer{})
	g := New(othello.NewBoardMust(8), human, engine.NewRandom(1))

	_, err := g.Step()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to get move for black")
}

func TestGame_PushMove(t *testing.T) {
	g := New(othello.NewBoardMust(8), nil, nil)

	require.NoError(t, g.PushMove(othello.Point{X: 2, Y: 3}))
	require.Equal(t, othello.White, g.Board().Turn())
	require.Equal(t, 4, g.Board().Score(othello.Black))

	require.ErrorIs(t, g.PushMove(othello.Point{X: 2, Y: 3}), ErrIllegalMove)
	require.Len(t, g.Moves(), 1)
}

func TestGame_Run_Pause(t *testing.T) {
	pause := engine.NewLineReader(strings.NewReader("\n"))

	board, err := othello.NewBoardFromString("bw..............-b")
	require.NoError(t, err)

	g := New(board, engine.NewRandom(1), engine.NewRandom(1), WithPause(pause))

	_, err = g.Run()
	require.NoError(t, err)
	require.Len(t, g.Moves(), 1)

	// No lines left to wait on.
	board, err = othello.NewBoardFromString("bw..............-b")
	require.NoError(t, err)

	g = New(board, engine.NewRandom(1), engine.NewRandom(1), WithPause(engine.NewLineReader(strings.NewReader(""))))
	_, err = g.Run()
	require.Error(t, err)
}

// promptingReader draws its own prompt, like readline does on a terminal.
type promptingReader struct {
	lines   []string
	prompt  string
	prompts []string
}

func (r *promptingReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

func (r *promptingReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	r.prompts = append(r.prompts, r.prompt)
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func TestGame_Run_PauseSharedWithHuman(t *testing.T) {
	board, err := othello.NewBoardFromString("bw..............-b")
	require.NoError(t, err)

	var output bytes.Buffer
	reader := &promptingReader{lines: []string{"3,1", ""}}

	g := New(board, engine.NewHuman(reader, &output), engine.NewRandom(1), WithPause(reader))

	result, err := g.Run()
	require.NoError(t, err)
	require.Equal(t, []Move{{Color: othello.Black, Point: othello.Point{X: 2, Y: 0}}}, result.Moves)

	require.Len(t, reader.prompts, 2)
	require.Contains(t, reader.prompts[0], "Input your move")
	require.Equal(t, pausePrompt, reader.prompts[1])
	require.Empty(t, reader.lines)
}

func TestReplay_Invalid(t *testing.T) {
	_, err := Replay(8, []Move{{Color: othello.White, Point: othello.Point{X: 4, Y: 2}}})
	require.ErrorIs(t, err, ErrIllegalMove)

	_, err = Replay(8, []Move{{Color: othello.Black, Pass: true}})
	require.ErrorIs(t, err, ErrIllegalMove)

	_, err = Replay(8, []Move{{Color: othello.Black, Point: othello.Point{X: 0, Y: 0}}})
	require.ErrorIs(t, err, ErrIllegalMove)

	_, err = Replay(7, nil)
	require.ErrorIs(t, err, othello.ErrInvalidSize)
}

func TestMove_String(t *testing.T) {
	require.Equal(t, "pass", Move{Pass: true}.String())
	require.Equal(t, "3,4", Move{Point: othello.Point{X: 2, Y: 3}}.String())
}
