// Package checkers implements simplified checkers with a randomized power-up
// square. The Engine holds all rule state; Game wraps it with a keyboard
// cursor, mouse dragging and rendering for the arcade platform.
//
// Rules differ from standard checkers on purpose: a move is a single slide or
// a single jump, there is no forced capture and no multi-jump chaining.
package checkers

import (
	"github.com/vovakirdan/beep-arcade/internal/audio"
)

// Cues emitted by the engine.
const (
	CueMove    audio.Cue = "move"
	CueCapture audio.Cue = "capture"
	CueKing    audio.Cue = "king"
	CuePowerUp audio.Cue = "powerup"
	CueWin     audio.Cue = "win"
)

// StartingPieces is how many men each side begins with.
const StartingPieces = 12

// powerUpAttempts bounds the rejection sampling in SpawnPowerUp.
const powerUpAttempts = 50

// RandSource is the randomness the engine needs. *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// Engine owns the board, turn, piece counts, power-up and result.
// It performs no I/O; every call finishes after looking at a bounded number
// of squares. Not safe for concurrent use.
type Engine struct {
	board     Board
	turn      Side
	remaining [2]int

	powerUp     PowerUp
	hasPowerUp  bool
	skipPending bool

	over   bool
	winner Side
	moves  int

	rng  RandSource
	cues audio.Emitter
}

// NewEngine creates an engine in the starting position.
// A nil cues emitter discards cues.
func NewEngine(rng RandSource, cues audio.Emitter) *Engine {
	if cues == nil {
		cues = audio.Nop
	}
	e := &Engine{rng: rng, cues: cues}
	e.Restart()
	return e
}

// SetCueEmitter replaces the cue emitter.
func (e *Engine) SetCueEmitter(cues audio.Emitter) {
	if cues == nil {
		cues = audio.Nop
	}
	e.cues = cues
}

// Restart resets every piece of state to the opening position and spawns a
// fresh power-up.
func (e *Engine) Restart() {
	e.board = StartingBoard()
	e.turn = Red
	e.remaining = [2]int{StartingPieces, StartingPieces}
	e.skipPending = false
	e.over = false
	e.winner = Red
	e.moves = 0
	e.SpawnPowerUp()
}

// EnumerateMoves lists the destinations reachable from sq in one hop.
// For each row direction (forward, then backward for kings) and each column
// side (left, then right) it yields the slide, then the jump. It does not
// check whose turn it is.
func (e *Engine) EnumerateMoves(sq Square) []Square {
	piece := e.board.At(sq)
	side, ok := piece.Side()
	if !ok {
		return nil
	}

	dirs := []int{side.forward()}
	if piece.IsKing() {
		dirs = append(dirs, -side.forward())
	}

	var moves []Square
	for _, dr := range dirs {
		for _, dc := range []int{-1, 1} {
			step := Sq(sq.Row+dr, sq.Col+dc)
			if step.OnBoard() && e.board.At(step) == Empty {
				moves = append(moves, step)
			}

			land := Sq(sq.Row+2*dr, sq.Col+2*dc)
			if !land.OnBoard() || e.board.At(land) != Empty {
				continue
			}
			if mid, ok := e.board.At(step).Side(); ok && mid != side {
				moves = append(moves, land)
			}
		}
	}
	return moves
}

// IsLegal reports whether to is among EnumerateMoves(from).
func (e *Engine) IsLegal(from, to Square) bool {
	for _, m := range e.EnumerateMoves(from) {
		if m == to {
			return true
		}
	}
	return false
}

// AttemptMove executes the move from -> to if it is legal and the game is
// still running. Illegal requests change nothing and emit nothing.
func (e *Engine) AttemptMove(from, to Square) bool {
	if e.over || !e.IsLegal(from, to) {
		return false
	}

	piece := e.board.At(from)
	side, _ := piece.Side()

	e.board.set(to, piece)
	e.board.set(from, Empty)

	if abs(to.Row-from.Row) == 2 {
		mid := Sq((from.Row+to.Row)/2, (from.Col+to.Col)/2)
		e.board.set(mid, Empty)
		e.remaining[side.Opponent()]--
		e.cues.Emit(CueCapture)
	} else {
		e.cues.Emit(CueMove)
	}

	if !piece.IsKing() && to.Row == side.crownRow() {
		e.board.set(to, piece.Crowned())
		e.cues.Emit(CueKing)
	}

	if e.hasPowerUp && e.powerUp.Square == to {
		switch e.powerUp.Kind {
		case PowerUpPromote:
			e.board.set(to, e.board.At(to).Crowned())
			e.cues.Emit(CueKing)
		case PowerUpSkipTurn:
			e.skipPending = true
		}
		e.cues.Emit(CuePowerUp)
		e.hasPowerUp = false
		e.SpawnPowerUp()
	}

	e.moves++
	e.turn = e.turn.Opponent()
	if e.skipPending {
		e.turn = e.turn.Opponent()
		e.skipPending = false
	}

	e.checkOver()
	return true
}

// checkOver ends the game once a side has no pieces left.
func (e *Engine) checkOver() {
	for _, side := range []Side{Red, Black} {
		if e.remaining[side] == 0 {
			e.over = true
			e.winner = side.Opponent()
			e.cues.Emit(CueWin)
			return
		}
	}
}

// SpawnPowerUp places a power-up on a random empty dark square. It gives up
// after a fixed number of attempts, leaving no power-up on the board.
func (e *Engine) SpawnPowerUp() {
	e.hasPowerUp = false
	if e.rng == nil {
		return
	}
	for range powerUpAttempts {
		sq := Sq(e.rng.Intn(BoardSize), e.rng.Intn(BoardSize))
		if sq.Dark() && e.board.At(sq) == Empty {
			e.powerUp = PowerUp{Square: sq, Kind: PowerUpKind(e.rng.Intn(2))}
			e.hasPowerUp = true
			return
		}
	}
}

// At returns the piece on sq.
func (e *Engine) At(sq Square) Piece {
	return e.board.At(sq)
}

// Board returns a copy of the board.
func (e *Engine) Board() Board {
	return e.board
}

// Turn returns the side to move.
func (e *Engine) Turn() Side {
	return e.turn
}

// Remaining returns how many pieces side still has.
func (e *Engine) Remaining(side Side) int {
	return e.remaining[side]
}

// PowerUp returns the active power-up, if any.
func (e *Engine) PowerUp() (PowerUp, bool) {
	return e.powerUp, e.hasPowerUp
}

// Over reports whether a side has run out of pieces.
func (e *Engine) Over() bool {
	return e.over
}

// Winner returns the winning side. Only meaningful once Over is true.
func (e *Engine) Winner() Side {
	return e.winner
}

// WinnerLabel returns "RED WINS" / "BLACK WINS", or "" while playing.
func (e *Engine) WinnerLabel() string {
	if !e.over {
		return ""
	}
	return e.winner.String() + " WINS"
}

// Moves returns how many moves have been executed since the last restart.
func (e *Engine) Moves() int {
	return e.moves
}

// CanSelect reports whether the piece on sq may be picked up by the side to
// move. Surfaces use it to gate selection before calling AttemptMove.
func (e *Engine) CanSelect(sq Square) bool {
	if e.over {
		return false
	}
	side, ok := e.board.At(sq).Side()
	return ok && side == e.turn
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
