package checkers

// Snapshot captures the visible game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	Turn       Side
	Red        int
	Black      int
	Moves      int
	PowerUp    PowerUp
	HasPowerUp bool
	Over       bool
	Winner     string
	Cursor     Square
	Selected   Square
	HasSel     bool
	Board      Board
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	pu, ok := g.engine.PowerUp()
	return Snapshot{
		Tick:       g.tick,
		Turn:       g.engine.Turn(),
		Red:        g.engine.Remaining(Red),
		Black:      g.engine.Remaining(Black),
		Moves:      g.engine.Moves(),
		PowerUp:    pu,
		HasPowerUp: ok,
		Over:       g.engine.Over(),
		Winner:     g.engine.WinnerLabel(),
		Cursor:     g.cursor,
		Selected:   g.selected,
		HasSel:     g.hasSel,
		Board:      g.engine.Board(),
	}
}
