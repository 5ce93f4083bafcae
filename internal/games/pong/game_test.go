package pong

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/beep-arcade/internal/audio"
	"github.com/vovakirdan/beep-arcade/internal/core"
)

func newTestGame(t *testing.T, difficulty string) (*Game, *audio.Recorder) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	rec := &audio.Recorder{}
	g := New()
	g.SetCueEmitter(rec)
	g.Reset(core.RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Seed:       7,
		Difficulty: difficulty,
	})
	rec.Reset()
	return g, rec
}

func players(p1, p2 []core.Action) core.MultiInputFrame {
	m := core.NewMultiInputFrame()
	f1, f2 := core.NewInputFrame(), core.NewInputFrame()
	for _, a := range p1 {
		f1.Set(a)
	}
	for _, a := range p2 {
		f2.Set(a)
	}
	m.SetPlayer(core.Player1, f1)
	m.SetPlayer(core.Player2, f2)
	return m
}

// inPlay skips the serve delay so the ball moves on the next step.
func inPlay(g *Game) {
	g.serving = false
	g.serveDelay = 0
}

func TestPresets(t *testing.T) {
	tests := []struct {
		difficulty string
		ball       float64
		paddle     float64
		win        int
	}{
		{"easy", 0.4, 2.0, 10},
		{"normal", 0.6, 1.6, 15},
		{"hard", 0.9, 1.2, 20},
		{"insane", 1.3, 0.8, 25},
		{"", 0.6, 1.6, 15},
		{"bogus", 0.6, 1.6, 15},
	}
	for _, tt := range tests {
		t.Run(tt.difficulty, func(t *testing.T) {
			g, _ := newTestGame(t, tt.difficulty)
			if g.preset.BallSpeed != tt.ball || g.preset.PaddleSpeed != tt.paddle || g.preset.WinScore != tt.win {
				t.Errorf("preset = %+v", g.preset)
			}
		})
	}
}

func TestServeDirection(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	sawLeft, sawRight := false, false
	for seed := int64(1); seed <= 30; seed++ {
		g := New()
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: seed})
		if !g.serving {
			t.Fatal("match should start with a serve delay")
		}
		if g.ballVY == 0 {
			t.Errorf("seed %d: serve has no vertical component", seed)
		}
		switch {
		case g.ballVX < 0:
			sawLeft = true
		case g.ballVX > 0:
			sawRight = true
		default:
			t.Errorf("seed %d: serve has no horizontal component", seed)
		}
	}
	if !sawLeft || !sawRight {
		t.Error("serve never varied its horizontal direction")
	}
}

func TestServeDelay(t *testing.T) {
	g, _ := newTestGame(t, "normal")
	x := g.ballX
	for range g.cfg.ServeDelayTicks - 1 {
		g.StepMulti(players(nil, nil))
	}
	if g.ballX != x || !g.serving {
		t.Fatal("ball moved during the serve delay")
	}
	g.StepMulti(players(nil, nil))
	if g.serving {
		t.Fatal("serve delay did not end")
	}
	g.StepMulti(players(nil, nil))
	if g.ballX == x {
		t.Error("ball did not move after the serve")
	}
}

func TestPaddlesMoveIndependently(t *testing.T) {
	g, rec := newTestGame(t, "easy")
	y1, y2 := g.paddle1Y, g.paddle2Y

	g.StepMulti(players([]core.Action{core.ActionUp}, []core.Action{core.ActionDown}))

	if g.paddle1Y != y1-2.0 {
		t.Errorf("left paddle = %v, want %v", g.paddle1Y, y1-2.0)
	}
	if g.paddle2Y != y2+2.0 {
		t.Errorf("right paddle = %v, want %v", g.paddle2Y, y2+2.0)
	}
	if len(rec.Cues) != 2 || rec.Cues[0] != CueMove || rec.Cues[1] != CueMove {
		t.Errorf("cues = %v, want two move cues", rec.Cues)
	}
}

func TestPaddleClamped(t *testing.T) {
	g, _ := newTestGame(t, "easy")
	for range 40 {
		g.StepMulti(players([]core.Action{core.ActionUp}, []core.Action{core.ActionDown}))
	}
	if g.paddle1Y != 1 {
		t.Errorf("left paddle top = %v, want 1", g.paddle1Y)
	}
	if want := float64(24 - g.paddleHeight - 1); g.paddle2Y != want {
		t.Errorf("right paddle top = %v, want %v", g.paddle2Y, want)
	}
}

func TestWallBounce(t *testing.T) {
	g, rec := newTestGame(t, "normal")
	inPlay(g)
	g.ballX, g.ballY = 40, 1.2
	g.ballVX, g.ballVY = 0.6, -0.5

	g.StepMulti(players(nil, nil))

	if g.ballVY <= 0 {
		t.Errorf("vy = %v, want positive after top wall", g.ballVY)
	}
	if rec.Last() != CueWall {
		t.Errorf("cue = %q, want wall", rec.Last())
	}
}

func TestPaddleHit(t *testing.T) {
	g, rec := newTestGame(t, "normal")
	inPlay(g)
	g.paddle1Y = 10
	g.ballX, g.ballY = 3.4, 12
	g.ballVX, g.ballVY = -0.6, 0

	g.StepMulti(players(nil, nil))

	if g.ballVX <= 0 {
		t.Errorf("vx = %v, want positive after left paddle", g.ballVX)
	}
	if rec.Last() != CueHit {
		t.Errorf("cue = %q, want hit", rec.Last())
	}
}

func TestMissScores(t *testing.T) {
	g, rec := newTestGame(t, "normal")
	inPlay(g)
	g.paddle1Y = 1
	g.ballX, g.ballY = 0.3, 20
	g.ballVX, g.ballVY = -0.6, 0

	g.StepMulti(players(nil, nil))

	if g.score2 != 1 || g.score1 != 0 {
		t.Errorf("score = %d-%d, want 0-1", g.score1, g.score2)
	}
	if rec.Last() != CueScore {
		t.Errorf("cue = %q, want score", rec.Last())
	}
	if !g.serving {
		t.Error("no serve after a point")
	}
}

func TestWinAndRestart(t *testing.T) {
	g, _ := newTestGame(t, "easy")

	// R is ignored while the match is running.
	g.score1 = 3
	g.StepMulti(players([]core.Action{core.ActionRestart}, nil))
	if g.score1 != 3 {
		t.Fatal("restart accepted during play")
	}

	inPlay(g)
	g.score2 = g.preset.WinScore - 1
	g.paddle1Y = 1
	g.ballX, g.ballY = 0.3, 20
	g.ballVX, g.ballVY = -0.6, 0
	g.StepMulti(players(nil, nil))

	if !g.State().GameOver {
		t.Fatal("match should be over")
	}
	out, ok := g.MatchOutcome()
	if !ok || out.Winner != "RIGHT" || out.Score2 != 10 || out.Left != "LEFT" {
		t.Errorf("outcome = %+v, %v", out, ok)
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "RIGHT WINS!") {
		t.Error("winner text missing")
	}

	g.started = time.Now().Add(-time.Minute)
	if g.Duration() < time.Minute {
		t.Errorf("Duration = %v, want at least a minute", g.Duration())
	}

	g.StepMulti(players(nil, []core.Action{core.ActionRestart}))
	if g.State().GameOver || g.score1 != 0 || g.score2 != 0 {
		t.Error("restart after game over did not reset the match")
	}
	if g.Duration() >= time.Minute {
		t.Errorf("Duration = %v after restart, want the new match's clock", g.Duration())
	}
}

func TestPause(t *testing.T) {
	g, _ := newTestGame(t, "normal")
	inPlay(g)

	g.StepMulti(players([]core.Action{core.ActionPause}, nil))
	if !g.State().Paused {
		t.Fatal("not paused")
	}
	x, y := g.ballX, g.paddle1Y
	g.StepMulti(players([]core.Action{core.ActionUp}, nil))
	if g.ballX != x || g.paddle1Y != y {
		t.Error("game advanced while paused")
	}

	g.StepMulti(players([]core.Action{core.ActionPause}, nil))
	if g.State().Paused {
		t.Error("pause did not toggle off")
	}
}

func TestPlayerNames(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Players: []string{"ann", "bob"}})
	if g.leftName != "ann" || g.rightName != "bob" {
		t.Errorf("names = %q %q", g.leftName, g.rightName)
	}
}

func TestDeterminism(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 24, Difficulty: "hard"}

	g1, g2 := New(), New()
	g1.Reset(cfg)
	g2.Reset(cfg)

	for i := range 2000 {
		var p1, p2 []core.Action
		if i%7 == 0 {
			p1 = []core.Action{core.ActionUp}
		}
		if i%5 == 0 {
			p2 = []core.Action{core.ActionDown}
		}
		g1.StepMulti(players(p1, p2))
		g2.StepMulti(players(p1, p2))
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}
