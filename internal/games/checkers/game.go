package checkers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/beep-arcade/internal/audio"
	"github.com/vovakirdan/beep-arcade/internal/core"
	"github.com/vovakirdan/beep-arcade/internal/registry"
)

// Tones is the beep for every checkers cue.
var Tones = audio.Bank{
	CueMove:    {Freq: 440, Duration: 100 * time.Millisecond},
	CueCapture: {Freq: 550, Duration: 180 * time.Millisecond},
	CueKing:    {Freq: 800, Duration: 300 * time.Millisecond},
	CuePowerUp: {Freq: 900, Duration: 250 * time.Millisecond},
	CueWin:     {Freq: 660, Duration: time.Second},
}

// Board geometry in screen cells.
const (
	squareW   = 4
	squareH   = 2
	boardTop  = 2
	hudHeight = 2
)

// Game adapts the Engine to the arcade platform: it keeps the keyboard
// cursor, the selected piece with its cached destinations and the mouse drag
// origin, and draws the board.
type Game struct {
	engine *Engine
	cues   audio.Emitter
	tick   uint64

	cursor   Square
	selected Square
	hasSel   bool
	dests    []Square
	dragging bool

	redName   string
	blackName string

	screenW int
	screenH int
}

func init() {
	registry.Register("checkers", func() registry.Game {
		return New()
	})
}

// New creates a checkers game. Reset must be called before Step.
func New() *Game {
	return &Game{cues: audio.Nop}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "checkers" }

// Title returns the display name.
func (g *Game) Title() string { return "Checkers" }

// SetCueEmitter routes engine and surface cues to e.
func (g *Game) SetCueEmitter(e audio.Emitter) {
	if e == nil {
		e = audio.Nop
	}
	g.cues = e
	if g.engine != nil {
		g.engine.SetCueEmitter(e)
	}
}

// Reset starts a new game seeded from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	g.engine = NewEngine(rng, g.cues)
	g.tick = 0
	g.redName = cfg.PlayerName(0, Red.String())
	g.blackName = cfg.PlayerName(1, Black.String())
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.cursor = Sq(BoardSize-1, 0)
	g.clearSelection()
}

// Resize updates the layout without touching game state.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Engine exposes the rule engine, mainly for tests and the console.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step applies one frame of input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) {
		g.engine.Restart()
		g.clearSelection()
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
		g.activate(g.cursor)
	}

	for _, ev := range in.Pointer {
		g.handlePointer(ev)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row--
	case in.Has(core.ActionDown):
		g.cursor.Row++
	}
	switch {
	case in.Has(core.ActionLeft):
		g.cursor.Col--
	case in.Has(core.ActionRight):
		g.cursor.Col++
	}
	g.cursor.Row = core.Clamp(g.cursor.Row, 0, BoardSize-1)
	g.cursor.Col = core.Clamp(g.cursor.Col, 0, BoardSize-1)
}

// activate is the keyboard confirm on sq: pick up an own piece, drop the
// selected piece on a highlighted square, or cancel.
func (g *Game) activate(sq Square) {
	switch {
	case g.engine.CanSelect(sq):
		g.selectSquare(sq)
		g.cues.Emit(CueMove)
	case g.hasSel && g.isDest(sq):
		g.move(g.selected, sq)
	default:
		g.clearSelection()
	}
}

func (g *Game) handlePointer(ev core.PointerEvent) {
	sq, ok := g.squareAt(ev.X, ev.Y)
	if !ok {
		if ev.Kind == core.PointerRelease {
			g.dragging = false
		}
		return
	}

	switch ev.Kind {
	case core.PointerPress:
		g.cursor = sq
		switch {
		case g.engine.CanSelect(sq):
			g.selectSquare(sq)
			g.dragging = true
		case g.hasSel && g.isDest(sq):
			g.move(g.selected, sq)
		default:
			g.clearSelection()
		}
	case core.PointerDrag:
		g.cursor = sq
	case core.PointerRelease:
		if g.dragging && g.hasSel && sq != g.selected {
			g.move(g.selected, sq)
		}
		g.dragging = false
	}
}

func (g *Game) move(from, to Square) {
	g.engine.AttemptMove(from, to)
	g.cursor = to
	g.clearSelection()
}

func (g *Game) selectSquare(sq Square) {
	g.selected = sq
	g.hasSel = true
	g.dests = g.engine.EnumerateMoves(sq)
}

func (g *Game) clearSelection() {
	g.hasSel = false
	g.dests = nil
	g.dragging = false
}

func (g *Game) isDest(sq Square) bool {
	for _, d := range g.dests {
		if d == sq {
			return true
		}
	}
	return false
}

// boardRect is where the board is drawn on the current screen.
func (g *Game) boardRect() core.Rect {
	w := BoardSize * squareW
	h := BoardSize * squareH
	return core.NewRect(max(0, (g.screenW-w)/2), boardTop, w, h)
}

// squareAt maps a screen cell to a board square.
func (g *Game) squareAt(x, y int) (Square, bool) {
	col, row, ok := g.boardRect().Cell(x, y, squareW, squareH)
	if !ok {
		return Square{}, false
	}
	return Sq(row, col), true
}

// Render draws the board, the HUD and the result overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	board := g.boardRect()
	for r := range BoardSize {
		for c := range BoardSize {
			g.renderSquare(dst, board, Sq(r, c))
		}
	}

	help := "arrows cursor  enter select  drag with mouse  r restart  m mute  q quit"
	dst.DrawTextCenteredColored(board.Bottom()+1, help, core.ColorGray)

	if g.engine.Over() {
		dst.DrawMessage(g.engine.WinnerLabel(), "Press R to play again")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	turn := g.redName
	color := core.ColorBrightRed
	if g.engine.Turn() == Black {
		turn = g.blackName
		color = core.ColorWhite
	}
	dst.DrawText(1, 0, "Checkers")
	dst.DrawTextColored(11, 0, fmt.Sprintf("%s to move", turn), color)

	counts := fmt.Sprintf("%s %d  %s %d  moves %d",
		g.redName, g.engine.Remaining(Red), g.blackName, g.engine.Remaining(Black), g.engine.Moves())
	dst.DrawText(max(0, dst.Width()-len(counts)-1), 0, counts)
	dst.DrawHLine(0, hudHeight-1, dst.Width(), '─')
}

func (g *Game) renderSquare(dst *core.Screen, board core.Rect, sq Square) {
	x := board.X + sq.Col*squareW
	y := board.Y + sq.Row*squareH

	fill, color := '░', core.ColorSand
	if sq.Dark() {
		fill, color = '▓', core.ColorWood
	}
	dst.DrawRectColored(core.NewRect(x, y, squareW, squareH), fill, color)

	if pu, ok := g.engine.PowerUp(); ok && pu.Square == sq {
		dst.DrawTextColored(x, y, pu.Kind.Label(), core.ColorCyan)
	}

	if p := g.engine.At(sq); p != Empty {
		side, _ := p.Side()
		pc := core.ColorBrightRed
		if side == Black {
			pc = core.ColorWhite
		}
		top := "()"
		if p.IsKing() {
			top = "KK"
		}
		dst.DrawTextColored(x+1, y, top, pc)
		dst.DrawTextColored(x+1, y+1, "()", pc)
	}

	if g.isDest(sq) {
		dst.DrawTextColored(x+1, y+1, "++", core.ColorBrightGreen)
	}

	switch {
	case g.hasSel && g.selected == sq:
		dst.SetColored(x, y, '[', core.ColorBrightGreen)
		dst.SetColored(x+squareW-1, y, ']', core.ColorBrightGreen)
		dst.SetColored(x, y+1, '[', core.ColorBrightGreen)
		dst.SetColored(x+squareW-1, y+1, ']', core.ColorBrightGreen)
	case g.cursor == sq:
		dst.SetColored(x, y, '[', core.ColorYellow)
		dst.SetColored(x+squareW-1, y, ']', core.ColorYellow)
		dst.SetColored(x, y+1, '[', core.ColorYellow)
		dst.SetColored(x+squareW-1, y+1, ']', core.ColorYellow)
	}
}

// State reports moves as the score; checkers results are stored as matches.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Moves(),
		GameOver: g.engine.Over(),
	}
}

// MatchOutcome reports the finished game. ok is false while playing.
func (g *Game) MatchOutcome() (core.MatchOutcome, bool) {
	if !g.engine.Over() {
		return core.MatchOutcome{}, false
	}
	winner := g.redName
	if g.engine.Winner() == Black {
		winner = g.blackName
	}
	return core.MatchOutcome{
		Left:   g.redName,
		Right:  g.blackName,
		Score1: StartingPieces - g.engine.Remaining(Black),
		Score2: StartingPieces - g.engine.Remaining(Red),
		Winner: winner,
		Moves:  g.engine.Moves(),
	}, true
}
