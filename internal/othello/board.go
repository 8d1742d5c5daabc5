package othello

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

const (
	MinSize     = 4
	MaxSize     = 16
	DefaultSize = 8
)

var (
	ErrInvalidSize        = errors.New("invalid board size")
	ErrInvalidBoardString = errors.New("invalid board string")
)

// Board is a square Othello board. It is mutated in place: real moves through PlayPiece without
// recording, speculative moves with recording so they can be taken back with UndoMove.
type Board struct {
	size  int
	cells []Color

	whiteScore int
	blackScore int

	// activePieces lists every occupied coordinate once, in the order it became occupied
	activePieces []Point

	// whiteMove and blackMove are the legal moves per color, ordered row-major
	whiteMove []Point
	blackMove []Point

	// checked marks candidate cells already evaluated during one updateValidMoves pass
	checked []bool

	turn Color
	log  moveLog
}

func newEmptyBoard(size int) *Board {
	return &Board{
		size:         size,
		cells:        make([]Color, size*size),
		activePieces: make([]Point, 0, size*size),
		whiteMove:    make([]Point, 0, size*size),
		blackMove:    make([]Point, 0, size*size),
		checked:      make([]bool, size*size),
		turn:         Black,
	}
}

func validSize(size int) bool {
	return size >= MinSize && size <= MaxSize && size%2 == 0
}

// NewBoard creates a board with the four starting pieces. Black moves first.
func NewBoard(size int) (*Board, error) {
	if !validSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	b := newEmptyBoard(size)
	half := size / 2

	b.setCell(White, Point{X: half - 1, Y: half - 1}, false)
	b.setCell(Black, Point{X: half - 1, Y: half}, false)
	b.setCell(Black, Point{X: half, Y: half - 1}, false)
	b.setCell(White, Point{X: half, Y: half}, false)

	b.updateValidMoves()
	return b, nil
}

// NewBoardMust works like NewBoard but panics on an invalid size.
func NewBoardMust(size int) *Board {
	b, err := NewBoard(size)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBoardFromString parses the output of Board.String.
func NewBoardFromString(s string) (*Board, error) {
	size := 0
	for n := MinSize; n <= MaxSize; n += 2 {
		if n*n+2 == len(s) {
			size = n
			break
		}
	}

	if size == 0 {
		return nil, fmt.Errorf("%w: unexpected length %d", ErrInvalidBoardString, len(s))
	}

	b := newEmptyBoard(size)

	for i, c := range s[:size*size] {
		p := Point{X: i % size, Y: i / size}
		switch c {
		case '.':
		case 'b':
			b.setCell(Black, p, false)
		case 'w':
			b.setCell(White, p, false)
		default:
			return nil, fmt.Errorf("%w: unexpected character %q at %d", ErrInvalidBoardString, c, i)
		}
	}

	switch s[size*size:] {
	case "-b":
		b.turn = Black
	case "-w":
		b.turn = White
	default:
		return nil, fmt.Errorf("%w: invalid turn %q", ErrInvalidBoardString, s[size*size:])
	}

	b.updateValidMoves()
	return b, nil
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.size
}

// Turn returns the side to move.
func (b *Board) Turn() Color {
	return b.turn
}

// SwitchTurn hands the move to the other side and returns the new side to move.
func (b *Board) SwitchTurn() Color {
	b.turn = b.turn.Opponent()
	return b.turn
}

// Score returns the piece count of a color.
func (b *Board) Score(color Color) int {
	switch color {
	case White:
		return b.whiteScore
	case Black:
		return b.blackScore
	default:
		return 0
	}
}

// Cell returns the color at p, or None when p is off the board.
func (b *Board) Cell(p Point) Color {
	if !b.inBounds(p.X, p.Y) {
		return None
	}
	return b.cells[b.index(p.X, p.Y)]
}

// Pieces returns a copy of all occupied coordinates.
func (b *Board) Pieces() []Point {
	return slices.Clone(b.activePieces)
}

// Moves returns a copy of the legal moves of color.
func (b *Board) Moves(color Color) []Point {
	return slices.Clone(b.moveSet(color))
}

// HasMoves returns whether color has at least one legal move.
func (b *Board) HasMoves(color Color) bool {
	return len(b.moveSet(color)) > 0
}

// IsValidMove returns whether p is a legal move for color.
func (b *Board) IsValidMove(color Color, p Point) bool {
	return slices.Contains(b.moveSet(color), p)
}

// IsGameOver returns true when neither side can move.
func (b *Board) IsGameOver() bool {
	return !b.HasMoves(Black) && !b.HasMoves(White)
}

// Winner returns the color with the most pieces, or None for a draw.
func (b *Board) Winner() Color {
	switch {
	case b.blackScore > b.whiteScore:
		return Black
	case b.whiteScore > b.blackScore:
		return White
	default:
		return None
	}
}

// UndoDepth returns the number of speculative moves that can still be undone.
func (b *Board) UndoDepth() int {
	return b.log.len()
}

func (b *Board) moveSet(color Color) []Point {
	switch color {
	case White:
		return b.whiteMove
	case Black:
		return b.blackMove
	default:
		return nil
	}
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

func (b *Board) index(x, y int) int {
	return y*b.size + x
}

// PlayPiece places color at (x, y) and flips every captured run. Out of bounds coordinates are
// rejected and false is returned. Legality is not checked: callers pick from the legal moves.
//
// With recordUndo the changes are pushed on the move log and the turn passes to the opponent of
// color, so that UndoMove restores the board exactly. Real moves don't record and leave the turn
// to SwitchTurn.
func (b *Board) PlayPiece(color Color, x, y int, recordUndo bool) bool {
	if !b.inBounds(x, y) {
		return false
	}

	p := Point{X: x, Y: y}

	if recordUndo {
		b.log.push(b.turn)
	}

	b.setCell(color, p, recordUndo)

	if color != None {
		for _, dir := range directions {
			if b.walkBoard(x, y, dir) != color {
				continue
			}

			cx, cy := x+dir[1], y+dir[0]
			for b.cells[b.index(cx, cy)] != color {
				b.setCell(color, Point{X: cx, Y: cy}, recordUndo)
				cx += dir[1]
				cy += dir[0]
			}
		}

		if recordUndo {
			b.turn = color.Opponent()
		}
	}

	b.updateValidMoves()
	return true
}

// UndoMove takes back the last recorded move. It does nothing when no move was recorded.
func (b *Board) UndoMove() {
	entry, ok := b.log.pop()
	if !ok {
		return
	}

	for _, flip := range entry.flips {
		b.setCell(flip.Prior, flip.Point, false)
	}

	b.updateValidMoves()
	b.turn = entry.turn
}

// setCell changes one cell, keeping the scores and activePieces in sync.
func (b *Board) setCell(color Color, p Point, record bool) {
	i := b.index(p.X, p.Y)
	prior := b.cells[i]

	if record {
		b.log.record(p, prior)
	}

	b.addScore(prior, -1)
	b.addScore(color, 1)
	b.cells[i] = color

	switch {
	case prior == None && color != None:
		b.activePieces = append(b.activePieces, p)
	case prior != None && color == None:
		if j := slices.Index(b.activePieces, p); j >= 0 {
			b.activePieces = slices.Delete(b.activePieces, j, j+1)
		}
	}
}

func (b *Board) addScore(color Color, delta int) {
	switch color {
	case White:
		b.whiteScore += delta
	case Black:
		b.blackScore += delta
	}
}

// walkBoard steps from (x, y) along dir over a run of one color and returns the color of the
// first cell that differs from that run. It returns None if the neighbour is empty, the run hits
// an empty cell or the run reaches the edge.
func (b *Board) walkBoard(x, y int, dir [2]int) Color {
	x += dir[1]
	y += dir[0]

	if !b.inBounds(x, y) {
		return None
	}

	eaten := b.cells[b.index(x, y)]
	if eaten == None {
		return None
	}

	for {
		x += dir[1]
		y += dir[0]

		if !b.inBounds(x, y) {
			return None
		}

		if c := b.cells[b.index(x, y)]; c != eaten {
			return c
		}
	}
}

// updateValidMoves rebuilds both legal move sets from the empty neighbours of all pieces.
func (b *Board) updateValidMoves() {
	b.whiteMove = b.whiteMove[:0]
	b.blackMove = b.blackMove[:0]
	clear(b.checked)

	for _, p := range b.activePieces {
		for _, dir := range directions {
			cx, cy := p.X+dir[1], p.Y+dir[0]
			if !b.inBounds(cx, cy) {
				continue
			}

			i := b.index(cx, cy)
			if b.checked[i] || b.cells[i] != None {
				continue
			}

			b.checked[i] = true
			b.updatePotentialCell(cx, cy)
		}
	}

	sortPoints(b.whiteMove)
	sortPoints(b.blackMove)
}

// updatePotentialCell adds the empty cell (x, y) to the move set of every color it can capture for.
func (b *Board) updatePotentialCell(x, y int) {
	var white, black bool

	for _, dir := range directions {
		switch b.walkBoard(x, y, dir) {
		case White:
			white = true
		case Black:
			black = true
		}
	}

	p := Point{X: x, Y: y}
	if white {
		b.whiteMove = append(b.whiteMove, p)
	}
	if black {
		b.blackMove = append(b.blackMove, p)
	}
}

func sortPoints(points []Point) {
	slices.SortFunc(points, func(a, b Point) int {
		switch {
		case a.less(b):
			return -1
		case b.less(a):
			return 1
		default:
			return 0
		}
	})
}

// Clone returns a deep copy of the board, including its move log.
func (b *Board) Clone() *Board {
	clone := &Board{
		size:         b.size,
		cells:        slices.Clone(b.cells),
		whiteScore:   b.whiteScore,
		blackScore:   b.blackScore,
		activePieces: slices.Clone(b.activePieces),
		whiteMove:    slices.Clone(b.whiteMove),
		blackMove:    slices.Clone(b.blackMove),
		checked:      make([]bool, len(b.checked)),
		turn:         b.turn,
	}

	for _, entry := range b.log.entries {
		clone.log.entries = append(clone.log.entries, moveEntry{
			flips: slices.Clone(entry.flips),
			turn:  entry.turn,
		})
	}

	return clone
}

// Equal compares cells, scores, legal moves and turn. The move log is not compared.
func (b *Board) Equal(other *Board) bool {
	return b.size == other.size &&
		slices.Equal(b.cells, other.cells) &&
		b.whiteScore == other.whiteScore &&
		b.blackScore == other.blackScore &&
		slices.Equal(b.whiteMove, other.whiteMove) &&
		slices.Equal(b.blackMove, other.blackMove) &&
		b.turn == other.turn
}

// ASCIIArtLines returns the ascii art lines for the board. Legal moves of the side to move are
// shown as dots.
func (b *Board) ASCIIArtLines() []string {
	lines := make([]string, 0, b.size+2)

	var header strings.Builder
	header.WriteString("   ")
	for x := range b.size {
		fmt.Fprintf(&header, "%3d", x+1)
	}
	lines = append(lines, header.String())

	for y := range b.size {
		var line strings.Builder
		fmt.Fprintf(&line, "%3d", y+1)

		for x := range b.size {
			p := Point{X: x, Y: y}

			switch {
			case b.Cell(p) == White:
				line.WriteString("  ○")
			case b.Cell(p) == Black:
				line.WriteString("  ●")
			case b.IsValidMove(b.turn, p):
				line.WriteString("  ·")
			default:
				line.WriteString("   ")
			}
		}

		lines = append(lines, line.String())
	}

	lines = append(lines, fmt.Sprintf("White: %d | Black: %d", b.whiteScore, b.blackScore))
	return lines
}

// Fprint writes the ascii art to w.
func (b *Board) Fprint(w io.Writer) error {
	for _, line := range b.ASCIIArtLines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Print prints the board to the console. This is used for debugging.
func (b *Board) Print() {
	_ = b.Fprint(os.Stdout)
}

// String returns the cells row-major as '.', 'b' or 'w' followed by "-b" or "-w" for the turn.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(len(b.cells) + 2)

	for _, c := range b.cells {
		switch c {
		case Black:
			sb.WriteByte('b')
		case White:
			sb.WriteByte('w')
		default:
			sb.WriteByte('.')
		}
	}

	if b.turn == White {
		sb.WriteString("-w")
	} else {
		sb.WriteString("-b")
	}

	return sb.String()
}
