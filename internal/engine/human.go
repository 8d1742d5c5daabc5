package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/chzyer/readline"
	"github.com/lk16/othengine/internal/othello"
	"golang.org/x/term"
)

const prompt = "Input your move (Ex. `5,3`): "

var (
	ErrInvalidMove = errors.New("invalid move")

	movePattern = regexp.MustCompile(`^\s*(\d+)\s*,\s*(\d+)\s*$`)
)

// LineReader reads one line of user input at a time.
type LineReader interface {
	Readline() (string, error)
}

// prompter is implemented by line readers that draw their own prompt.
type prompter interface {
	SetPrompt(prompt string)
}

// Human asks the user for moves until a legal one is entered.
type Human struct {
	input  LineReader
	output io.Writer
}

// NewHuman creates a Human engine reading from input and writing prompts to output.
func NewHuman(input LineReader, output io.Writer) *Human {
	return &Human{
		input:  input,
		output: output,
	}
}

// NextMove prompts until a legal move for the side to move is entered. Read errors, including
// io.EOF, are returned.
func (h *Human) NextMove(board *othello.Board) (othello.Point, error) {
	turn := board.Turn()
	if !board.HasMoves(turn) {
		return othello.Point{}, ErrNoLegalMoves
	}

	p, ownPrompt := h.input.(prompter)
	if ownPrompt {
		p.SetPrompt(prompt)
	}

	for {
		if !ownPrompt {
			fmt.Fprint(h.output, prompt)
		}

		line, err := h.input.Readline()
		if err != nil {
			return othello.Point{}, fmt.Errorf("failed to read move: %w", err)
		}

		move, err := ParseMove(line)
		if err == nil && board.IsValidMove(turn, move) {
			return move, nil
		}

		fmt.Fprintln(h.output, "Wrong input")
	}
}

// ParseMove parses a 1-based "column,row" pair into a 0-based point.
func ParseMove(s string) (othello.Point, error) {
	match := movePattern.FindStringSubmatch(s)
	if match == nil {
		return othello.Point{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	x, err := strconv.Atoi(match[1])
	if err != nil {
		return othello.Point{}, fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}

	y, err := strconv.Atoi(match[2])
	if err != nil {
		return othello.Point{}, fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}

	if x < 1 || y < 1 {
		return othello.Point{}, fmt.Errorf("%w: coordinates start at 1", ErrInvalidMove)
	}

	return othello.Point{X: x - 1, Y: y - 1}, nil
}

// scannerReader reads lines from a non-interactive source.
type scannerReader struct {
	scanner *bufio.Scanner
}

// NewLineReader reads lines from r.
func NewLineReader(r io.Reader) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(r)}
}

func (s *scannerReader) Readline() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// NewStdinReader returns a line editing reader when stdin is a terminal and a plain line reader
// otherwise. The returned function releases the terminal.
func NewStdinReader() (LineReader, func() error, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return NewLineReader(os.Stdin), func() error { return nil }, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize readline: %w", err)
	}

	return rl, rl.Close, nil
}
