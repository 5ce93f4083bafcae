// Package pong implements two-player Pong on one keyboard.
// The left paddle is driven by Player1 (W/S), the right one by Player2
// (arrow keys). First to the preset's win score takes the match.
package pong

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beep-arcade/internal/audio"
	"github.com/vovakirdan/beep-arcade/internal/config"
	"github.com/vovakirdan/beep-arcade/internal/core"
	"github.com/vovakirdan/beep-arcade/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
)

// Cues emitted by Pong.
const (
	CueMove  audio.Cue = "move"
	CueHit   audio.Cue = "hit"
	CueWall  audio.Cue = "wall"
	CueScore audio.Cue = "score"
)

// Tones is the beep for every Pong cue.
var Tones = audio.Bank{
	CueMove:  {Freq: 523, Duration: 80 * time.Millisecond},
	CueHit:   {Freq: 659, Duration: 120 * time.Millisecond},
	CueWall:  {Freq: 784, Duration: 100 * time.Millisecond},
	CueScore: {Freq: 392, Duration: 300 * time.Millisecond},
}

const (
	paddleOffset = 2 // Distance from edge
	paddleWidth  = 1
)

// Game implements the Pong game logic.
type Game struct {
	// Paddles
	paddle1Y float64 // Left paddle top
	paddle2Y float64 // Right paddle top

	// Ball
	ballX  float64
	ballY  float64
	ballVX float64
	ballVY float64

	score1 int
	score2 int

	gameOver   bool
	paused     bool
	winner     int  // 1 or 2
	serving    bool // True when waiting to serve
	serveDelay int  // Ticks left before the ball moves

	// Settings
	runtime      core.RuntimeConfig
	cfg          config.PongConfig
	preset       config.PongPreset
	presetName   string
	paddleHeight int
	leftName     string
	rightName    string

	rng       *rand.Rand
	cues      audio.Emitter
	tickCount int
	started   time.Time
}

// New creates a new Pong game instance.
func New() *Game {
	return &Game{cues: audio.Nop}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// SetCueEmitter routes sound cues to e.
func (g *Game) SetCueEmitter(e audio.Emitter) {
	if e == nil {
		e = audio.Nop
	}
	g.cues = e
}

// Reset loads the difficulty preset and starts a new match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	cfg, err := config.LoadPong(runtime.ConfigPath)
	if err != nil {
		log.Warn("pong: using built-in presets", "err", err)
		cfg = config.DefaultPongConfig()
	}
	g.cfg = cfg
	g.presetName = runtime.Difficulty
	g.preset, err = cfg.Preset(runtime.Difficulty)
	if err != nil {
		log.Warn("pong: falling back to default preset", "err", err)
		g.presetName = cfg.DefaultPreset
		g.preset, _ = cfg.Preset("")
	}
	if g.presetName == "" {
		g.presetName = cfg.DefaultPreset
	}

	g.leftName = runtime.PlayerName(0, cfg.Players.Left)
	g.rightName = runtime.PlayerName(1, cfg.Players.Right)

	g.restart()
}

// restart clears the scores and serves, keeping the loaded settings.
func (g *Game) restart() {
	g.paddleHeight = core.Clamp(g.cfg.PaddleHeight, 2, max(2, g.runtime.ScreenH/3))

	centerY := float64(g.runtime.ScreenH) / 2.0
	g.paddle1Y = centerY - float64(g.paddleHeight)/2.0
	g.paddle2Y = g.paddle1Y

	g.score1 = 0
	g.score2 = 0
	g.gameOver = false
	g.paused = false
	g.winner = 0
	g.tickCount = 0
	g.started = time.Now()

	g.startServe()
}

// Resize keeps the match going on a new screen size.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.clampPaddles()
	g.ballX = core.ClampF(g.ballX, 0, float64(w))
	g.ballY = core.ClampF(g.ballY, 1, float64(max(1, h-2)))
}

// startServe centers the ball and launches it toward a random side with a
// non-zero vertical component once the serve delay runs out.
func (g *Game) startServe() {
	g.serving = true
	g.serveDelay = g.cfg.ServeDelayTicks

	g.ballX = float64(g.runtime.ScreenW) / 2.0
	g.ballY = float64(g.runtime.ScreenH) / 2.0

	speed := g.preset.BallSpeed
	g.ballVX = speed
	if g.rng.Intn(2) == 0 {
		g.ballVX = -speed
	}

	vy := speed * (0.2 + 0.3*g.rng.Float64())
	if g.rng.Intn(2) == 0 {
		vy = -vy
	}
	g.ballVY = vy
}

// Step advances the game with all input applied to the left paddle.
// The platform uses StepMulti so both players can move.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	m := core.NewMultiInputFrame()
	m.SetPlayer(core.Player1, in)
	return g.StepMulti(m)
}

// StepMulti advances the game by one tick with per-player input.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	p1, p2 := in.Player1(), in.Player2()
	either := func(a core.Action) bool { return p1.Has(a) || p2.Has(a) }

	if g.gameOver {
		if either(core.ActionRestart) {
			g.restart()
		}
		return core.StepResult{State: g.State()}
	}

	if either(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	// Paddles move during the serve delay too
	g.paddle1Y += g.paddleDelta(p1)
	g.paddle2Y += g.paddleDelta(p2)
	g.clampPaddles()

	if g.serving {
		g.serveDelay--
		if g.serveDelay <= 0 {
			g.serving = false
		}
		return core.StepResult{State: g.State()}
	}

	g.updateBall()
	return core.StepResult{State: g.State()}
}

// paddleDelta turns one player's key presses into movement.
func (g *Game) paddleDelta(in core.InputFrame) float64 {
	var d float64
	if in.Has(core.ActionUp) {
		d -= g.preset.PaddleSpeed
	}
	if in.Has(core.ActionDown) {
		d += g.preset.PaddleSpeed
	}
	if d != 0 {
		g.cues.Emit(CueMove)
	}
	return d
}

func (g *Game) clampPaddles() {
	maxY := float64(max(1, g.runtime.ScreenH-g.paddleHeight-1))
	g.paddle1Y = core.ClampF(g.paddle1Y, 1, maxY)
	g.paddle2Y = core.ClampF(g.paddle2Y, 1, maxY)
}

// updateBall handles ball physics and collision.
func (g *Game) updateBall() {
	prevX := g.ballX
	g.ballX += g.ballVX
	g.ballY += g.ballVY

	// Bounce off top/bottom walls
	top, bottom := 1.0, float64(g.runtime.ScreenH-2)
	if g.ballY <= top {
		g.ballY = top
		g.ballVY = math.Abs(g.ballVY)
		g.cues.Emit(CueWall)
	}
	if g.ballY >= bottom {
		g.ballY = bottom
		g.ballVY = -math.Abs(g.ballVY)
		g.cues.Emit(CueWall)
	}

	paddle1X := float64(paddleOffset)
	paddle2X := float64(g.runtime.ScreenW - paddleOffset - paddleWidth)

	// A paddle is hit when the ball crosses its face this tick
	if g.ballVX < 0 && prevX >= paddle1X+paddleWidth && g.ballX <= paddle1X+paddleWidth {
		if g.ballY >= g.paddle1Y && g.ballY <= g.paddle1Y+float64(g.paddleHeight) {
			g.ballX = paddle1X + paddleWidth
			g.bounceOffPaddle(g.paddle1Y)
		}
	}

	if g.ballVX > 0 && prevX <= paddle2X && g.ballX >= paddle2X {
		if g.ballY >= g.paddle2Y && g.ballY <= g.paddle2Y+float64(g.paddleHeight) {
			g.ballX = paddle2X - 1
			g.bounceOffPaddle(g.paddle2Y)
		}
	}

	// Limit ball speed
	maxSpeed := g.preset.BallSpeed * 3
	if math.Abs(g.ballVX) > maxSpeed {
		g.ballVX = maxSpeed * math.Copysign(1, g.ballVX)
	}
	if math.Abs(g.ballVY) > maxSpeed/2 {
		g.ballVY = maxSpeed / 2 * math.Copysign(1, g.ballVY)
	}

	// Ball went past a paddle
	if g.ballX < 0 {
		g.point(2)
	} else if g.ballX > float64(g.runtime.ScreenW) {
		g.point(1)
	}
}

// bounceOffPaddle reverses the ball and adds spin based on where it hit.
func (g *Game) bounceOffPaddle(paddleY float64) {
	g.ballVX = -g.ballVX * 1.02
	hitPos := (g.ballY - paddleY) / float64(g.paddleHeight)
	g.ballVY += (hitPos - 0.5) * 0.3
	g.cues.Emit(CueHit)
}

// point awards a point to player 1 or 2 and either serves again or ends
// the match.
func (g *Game) point(player int) {
	g.cues.Emit(CueScore)

	score := &g.score1
	if player == 2 {
		score = &g.score2
	}
	*score++

	if *score >= g.preset.WinScore {
		g.gameOver = true
		g.winner = player
		log.Info("pong match finished", "winner", g.winnerName(), "score", fmt.Sprintf("%d-%d", g.score1, g.score2))
		return
	}
	g.startServe()
}

func (g *Game) winnerName() string {
	switch g.winner {
	case 1:
		return g.leftName
	case 2:
		return g.rightName
	default:
		return ""
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Draw center line (net)
	centerX := dst.Width() / 2
	for y := 1; y < dst.Height()-1; y += 2 {
		dst.SetColored(centerX, y, NetChar, core.ColorGray)
	}

	paddle1X := paddleOffset
	paddle2X := dst.Width() - paddleOffset - paddleWidth
	for i := range g.paddleHeight {
		dst.SetColored(paddle1X, int(g.paddle1Y)+i, PaddleChar, core.ColorCyan)
		dst.SetColored(paddle2X, int(g.paddle2Y)+i, PaddleChar, core.ColorOrange)
	}

	if !g.serving || (g.serveDelay/10)%2 == 0 { // Blink during serve
		dst.SetColored(int(g.ballX), int(g.ballY), BallChar, core.ColorBrightYellow)
	}

	dst.DrawTextColored(centerX-5, 0, fmt.Sprintf("%2d", g.score1), core.ColorCyan)
	dst.DrawTextColored(centerX+4, 0, fmt.Sprintf("%d", g.score2), core.ColorOrange)
	dst.DrawTextColored(1, 0, g.leftName, core.ColorCyan)
	dst.DrawTextColored(dst.Width()-len(g.rightName)-1, 0, g.rightName, core.ColorOrange)

	info := fmt.Sprintf("%s · first to %d", g.presetName, g.preset.WinScore)
	dst.DrawTextCenteredColored(dst.Height()-1, info, core.ColorGray)

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}

	if g.gameOver {
		dst.DrawMessage(fmt.Sprintf("%s WINS!", g.winnerName()),
			fmt.Sprintf("%d - %d  |  Press R to restart", g.score1, g.score2))
	}
}

// State returns the current game state. Score is the leading score.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    max(g.score1, g.score2),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// MatchOutcome reports the finished match. ok is false while playing.
func (g *Game) MatchOutcome() (core.MatchOutcome, bool) {
	if !g.gameOver {
		return core.MatchOutcome{}, false
	}
	return core.MatchOutcome{
		Left:   g.leftName,
		Right:  g.rightName,
		Score1: g.score1,
		Score2: g.score2,
		Winner: g.winnerName(),
		Moves:  g.tickCount,
	}, true
}

// Duration is the wall-clock time since the match started.
func (g *Game) Duration() time.Duration {
	return time.Since(g.started)
}

// Register the game with the registry
func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
}
