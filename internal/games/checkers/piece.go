package checkers

import "fmt"

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

// Piece is the content of a board square.
type Piece uint8

const (
	Empty Piece = iota
	RedMan
	BlackMan
	RedKing
	BlackKing
)

// Side is one of the two players.
type Side uint8

const (
	Red Side = iota
	Black
)

// String returns the side label used in the status bar and winner text.
func (s Side) String() string {
	if s == Red {
		return "RED"
	}
	return "BLACK"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Red {
		return Black
	}
	return Red
}

// forward is the row delta a man of this side moves by.
// Red starts at the bottom (rows 5-7) and moves toward row 0.
func (s Side) forward() int {
	if s == Red {
		return -1
	}
	return 1
}

// crownRow is the row where a man of this side is promoted.
func (s Side) crownRow() int {
	if s == Red {
		return 0
	}
	return BoardSize - 1
}

// Side returns the owner of a piece. ok is false for Empty.
func (p Piece) Side() (side Side, ok bool) {
	switch p {
	case RedMan, RedKing:
		return Red, true
	case BlackMan, BlackKing:
		return Black, true
	default:
		return 0, false
	}
}

// IsKing reports whether the piece has been promoted.
func (p Piece) IsKing() bool {
	return p == RedKing || p == BlackKing
}

// Crowned returns the king of the same side. Empty stays Empty.
func (p Piece) Crowned() Piece {
	switch p {
	case RedMan:
		return RedKing
	case BlackMan:
		return BlackKing
	default:
		return p
	}
}

func (p Piece) String() string {
	switch p {
	case Empty:
		return "empty"
	case RedMan:
		return "red man"
	case BlackMan:
		return "black man"
	case RedKing:
		return "red king"
	case BlackKing:
		return "black king"
	default:
		return fmt.Sprintf("Piece(%d)", uint8(p))
	}
}

// Square is a board coordinate.
type Square struct {
	Row, Col int
}

// Sq is shorthand for Square{row, col}.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// OnBoard reports whether the square lies on the 8x8 grid.
func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// Dark reports whether pieces may stand on the square.
func (s Square) Dark() bool {
	return (s.Row+s.Col)%2 == 1
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// Board is the 8x8 grid indexed [row][col].
type Board [BoardSize][BoardSize]Piece

// At returns the piece on sq. Off-board squares read as Empty.
func (b *Board) At(sq Square) Piece {
	if !sq.OnBoard() {
		return Empty
	}
	return b[sq.Row][sq.Col]
}

func (b *Board) set(sq Square, p Piece) {
	b[sq.Row][sq.Col] = p
}

// Count returns how many pieces of side are on the board.
func (b *Board) Count(side Side) int {
	n := 0
	for r := range BoardSize {
		for c := range BoardSize {
			if s, ok := b[r][c].Side(); ok && s == side {
				n++
			}
		}
	}
	return n
}

// StartingBoard returns the 12-vs-12 opening position: Black on the dark
// squares of rows 0-2, Red on the dark squares of rows 5-7.
func StartingBoard() Board {
	var b Board
	for r := range BoardSize {
		for c := range BoardSize {
			sq := Sq(r, c)
			if !sq.Dark() {
				continue
			}
			switch {
			case r <= 2:
				b.set(sq, BlackMan)
			case r >= 5:
				b.set(sq, RedMan)
			}
		}
	}
	return b
}

// PowerUpKind is the effect granted by a power-up square.
type PowerUpKind uint8

const (
	PowerUpPromote PowerUpKind = iota
	PowerUpSkipTurn
)

// Label is the short text drawn on the power-up square.
func (k PowerUpKind) Label() string {
	if k == PowerUpPromote {
		return "KING"
	}
	return "SKIP"
}

func (k PowerUpKind) String() string {
	if k == PowerUpPromote {
		return "promote"
	}
	return "skip-opponent-turn"
}

// PowerUp is an active power-up on the board.
type PowerUp struct {
	Square Square
	Kind   PowerUpKind
}
