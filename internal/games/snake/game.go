// Package snake implements classic Snake with speed presets. The snake
// speeds up with every food eaten until it reaches the preset's floor.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beep-arcade/internal/audio"
	"github.com/vovakirdan/beep-arcade/internal/config"
	"github.com/vovakirdan/beep-arcade/internal/core"
	"github.com/vovakirdan/beep-arcade/internal/registry"
)

// Cues emitted by Snake.
const (
	CueMove audio.Cue = "move"
	CueEat  audio.Cue = "eat"
	CueOver audio.Cue = "over"
)

// Tones is the beep for every Snake cue.
var Tones = audio.Bank{
	CueMove: {Freq: 440, Duration: 50 * time.Millisecond},
	CueEat:  {Freq: 659, Duration: 200 * time.Millisecond},
	CueOver: {Freq: 220, Duration: 800 * time.Millisecond},
}

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y int
}

const (
	hudHeight = 2 // Top HUD lines
	minFieldW = 10
	minFieldH = 5
	startLen  = 3
)

// Game implements the Snake game.
type Game struct {
	rng       *rand.Rand
	cues      audio.Emitter
	tick      uint64
	score     int
	foodEaten int

	// Speed
	cfg        config.SnakeConfig
	preset     config.SnakePreset
	presetName string
	msPerTick  int
	elapsedMS  int // Time accumulated toward the next move

	// Snake state
	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction for next move
	growing   bool      // If true, don't remove tail on next move

	// Field
	mapWidth   int
	mapHeight  int
	food       Point
	mapOffsetX int
	mapOffsetY int

	screenW int
	screenH int

	gameOver bool
	paused   bool
	tooSmall bool

	highScores *scoreTable
}

// New creates a new Snake game.
func New() *Game {
	return &Game{
		cues:       audio.Nop,
		highScores: bestScores,
	}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// SetCueEmitter routes sound cues to e.
func (g *Game) SetCueEmitter(e audio.Emitter) {
	if e == nil {
		e = audio.Nop
	}
	g.cues = e
}

// Reset loads the speed preset, lays out the field and starts a new run.
// High scores survive.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.msPerTick = cfg.MillisPerTick()

	sc, err := config.LoadSnake(cfg.ConfigPath)
	if err != nil {
		log.Warn("snake: using built-in presets", "err", err)
		sc = config.DefaultSnakeConfig()
	}
	g.cfg = sc
	g.presetName = cfg.Difficulty
	g.preset, err = sc.Preset(cfg.Difficulty)
	if err != nil {
		log.Warn("snake: falling back to default preset", "err", err)
		g.presetName = ""
		g.preset, _ = sc.Preset("")
	}
	if g.presetName == "" {
		g.presetName = sc.DefaultPreset
	}

	g.restart()
}

// restart begins a new run on the current field.
func (g *Game) restart() {
	g.tick = 0
	g.score = 0
	g.foodEaten = 0
	g.elapsedMS = 0
	g.gameOver = false
	g.paused = false

	g.mapOffsetX = 1
	g.mapOffsetY = hudHeight + 1
	g.mapWidth = g.screenW - 2
	g.mapHeight = g.screenH - hudHeight - 2
	g.tooSmall = g.mapWidth < minFieldW || g.mapHeight < minFieldH
	if g.tooSmall {
		g.snake = nil
		return
	}

	g.initSnake()
	g.spawnFood()
}

// initSnake places a short snake in the middle of the field heading right.
func (g *Game) initSnake() {
	startX := g.mapWidth/2 - 1
	startY := g.mapHeight / 2

	g.snake = make([]Point, 0, startLen)
	for i := range startLen {
		g.snake = append(g.snake, Point{X: startX - i, Y: startY})
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.growing = false
}

// spawnFood places food at a random empty cell.
func (g *Game) spawnFood() {
	var emptyCells []Point
	for y := range g.mapHeight {
		for x := range g.mapWidth {
			p := Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				emptyCells = append(emptyCells, p)
			}
		}
	}

	if len(emptyCells) == 0 {
		// The snake fills the field
		g.food = Point{X: -1, Y: -1}
		return
	}

	g.food = emptyCells[g.rng.Intn(len(emptyCells))]
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Delay returns the current move delay in milliseconds.
func (g *Game) Delay() int {
	return g.preset.DelayAfter(g.foodEaten)
}

// HighScore returns the best score on the current preset this session.
func (g *Game) HighScore() int {
	return g.highScores.get(g.presetName)
}

// Difficulty returns the active preset name.
func (g *Game) Difficulty() string {
	return g.presetName
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	g.elapsedMS += g.msPerTick
	for g.elapsedMS >= g.Delay() && !g.gameOver {
		g.elapsedMS -= g.Delay()
		g.moveSnake()
	}

	return core.StepResult{State: g.State()}
}

// processInput buffers a direction change for the next move.
func (g *Game) processInput(input core.InputFrame) {
	newDir := g.nextDir

	switch {
	case input.Has(core.ActionUp):
		newDir = DirUp
	case input.Has(core.ActionDown):
		newDir = DirDown
	case input.Has(core.ActionLeft):
		newDir = DirLeft
	case input.Has(core.ActionRight):
		newDir = DirRight
	}

	pressed := input.Has(core.ActionUp) || input.Has(core.ActionDown) ||
		input.Has(core.ActionLeft) || input.Has(core.ActionRight)

	// Prevent instant reversal. Any other press clicks, even the current heading.
	if pressed && !isOpposite(newDir, g.direction) {
		g.nextDir = newDir
		g.cues.Emit(CueMove)
	}
}

// isOpposite checks if two directions are opposite.
func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// moveSnake moves the snake one cell in the current direction.
func (g *Game) moveSnake() {
	if len(g.snake) == 0 {
		return
	}

	g.direction = g.nextDir

	head := g.snake[0]
	newHead := head
	switch g.direction {
	case DirUp:
		newHead.Y--
	case DirDown:
		newHead.Y++
	case DirLeft:
		newHead.X--
	case DirRight:
		newHead.X++
	}

	// Field edges are walls
	if newHead.X < 0 || newHead.X >= g.mapWidth || newHead.Y < 0 || newHead.Y >= g.mapHeight {
		g.die()
		return
	}

	// Any segment counts, the tail included
	if g.isSnakeAt(newHead) {
		g.die()
		return
	}

	g.snake = append([]Point{newHead}, g.snake...)

	if newHead == g.food {
		g.score += g.cfg.FoodScore
		g.foodEaten++
		g.growing = true
		g.cues.Emit(CueEat)
		g.spawnFood()
	}

	// Remove tail unless growing
	if g.growing {
		g.growing = false
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}
}

func (g *Game) die() {
	g.gameOver = true
	g.cues.Emit(CueOver)
	g.highScores.record(g.presetName, g.score)
	log.Info("snake run finished", "score", g.score, "difficulty", g.presetName, "length", len(g.snake))
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		dst.DrawMessage("Window too small", "Resize to continue")
		return
	}

	dst.DrawBox(core.NewRect(g.mapOffsetX-1, g.mapOffsetY-1, g.mapWidth+2, g.mapHeight+2))
	g.renderSnake(dst)

	if g.food.X >= 0 && g.food.Y >= 0 {
		dst.SetColored(g.mapOffsetX+g.food.X, g.mapOffsetY+g.food.Y, '*', core.ColorBrightRed)
	}

	switch {
	case g.gameOver:
		dst.DrawMessage("Game Over", fmt.Sprintf("Score %d  Best %d  |  Press R to restart", g.score, g.HighScore()))
	case g.paused:
		dst.DrawMessage("Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Snake  Score: %d  Best: %d  Speed: %s %dms",
		g.score, g.HighScore(), g.presetName, g.Delay())
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderSnake draws the snake.
func (g *Game) renderSnake(dst *core.Screen) {
	for i, seg := range g.snake {
		sx := g.mapOffsetX + seg.X
		sy := g.mapOffsetY + seg.Y
		if i == 0 {
			dst.SetColored(sx, sy, 'O', core.ColorBrightGreen)
		} else {
			dst.SetColored(sx, sy, 'o', core.ColorGreen)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
