package othello

import "fmt"

// Color is the content of a cell. None marks an empty cell and is never a player.
type Color uint8

const (
	None Color = iota
	Black
	White
)

// Opponent returns the other player. None has no opponent and returns None.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return None
	}
}

// String returns the name of the color.
func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "none"
	}
}

// ParseColor converts "black"/"b" or "white"/"w" to a Color.
func ParseColor(s string) (Color, error) {
	switch s {
	case "black", "b":
		return Black, nil
	case "white", "w":
		return White, nil
	}
	return None, fmt.Errorf("invalid color: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	if string(text) == "none" {
		*c = None
		return nil
	}

	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}

// Point is a 0-indexed board coordinate: X is the column, Y the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns the 1-based "column,row" form used by the text prompt.
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X+1, p.Y+1)
}

// less orders points row-major.
func (p Point) less(other Point) bool {
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	return p.X < other.X
}

// directions holds the 8 neighbour offsets as (dy, dx).
var directions = [8][2]int{
	{1, 1}, {1, 0}, {1, -1}, {0, -1},
	{-1, -1}, {-1, 0}, {-1, 1}, {0, 1},
}
