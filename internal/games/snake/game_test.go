package snake

import (
	"strings"
	"testing"

	"github.com/vovakirdan/beep-arcade/internal/audio"
	"github.com/vovakirdan/beep-arcade/internal/core"
	"github.com/vovakirdan/beep-arcade/internal/registry"
)

func newTestGame(t *testing.T, difficulty string, seed int64) (*Game, *audio.Recorder) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	bestScores.clear()

	rec := &audio.Recorder{}
	g := New()
	g.SetCueEmitter(rec)
	g.Reset(core.RuntimeConfig{
		Seed:       seed,
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Difficulty: difficulty,
	})
	rec.Reset()
	return g, rec
}

func TestDeterminism(t *testing.T) {
	g1, _ := newTestGame(t, "fast", 12345)
	g2, _ := newTestGame(t, "fast", 12345)

	input := core.NewInputFrame()
	for i := 0; i < 400; i++ {
		input.Clear()
		switch i {
		case 20:
			input.Set(core.ActionDown)
		case 40:
			input.Set(core.ActionLeft)
		case 90:
			input.Set(core.ActionUp)
		}
		g1.Step(input)
		g2.Step(input)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g, rec := newTestGame(t, "normal", 42)

	if g.direction != DirRight {
		t.Fatalf("Expected initial direction Right, got %v", g.direction)
	}

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)

	if g.nextDir == DirLeft {
		t.Error("Should not allow immediate reversal from Right to Left")
	}
	if len(rec.Cues) != 0 {
		t.Errorf("refused turn emitted %v", rec.Cues)
	}

	input.Clear()
	input.Set(core.ActionDown)
	g.Step(input)

	if g.nextDir != DirDown {
		t.Errorf("Expected nextDir to be Down, got %v", g.nextDir)
	}
	if rec.Last() != CueMove {
		t.Errorf("accepted turn cue = %q, want move", rec.Last())
	}
}

func TestCurrentHeadingKeyCues(t *testing.T) {
	g, rec := newTestGame(t, "normal", 42)

	input := core.NewInputFrame()
	input.Set(core.ActionRight)
	g.Step(input)

	if g.nextDir != DirRight {
		t.Errorf("nextDir = %v, want right", g.nextDir)
	}
	if len(rec.Cues) != 1 || rec.Cues[0] != CueMove {
		t.Errorf("cues = %v, want one move", rec.Cues)
	}

	input.Clear()
	g.Step(input)
	if len(rec.Cues) != 1 {
		t.Errorf("idle tick emitted %v", rec.Cues[1:])
	}
}

func TestMoveTiming(t *testing.T) {
	// normal starts at 160ms; 60 ticks per second gives 16ms per tick.
	g, _ := newTestGame(t, "normal", 1)
	head := g.snake[0]
	input := core.NewInputFrame()

	for range 9 {
		g.Step(input)
	}
	if g.snake[0] != head {
		t.Fatalf("snake moved after 144ms: %v", g.snake[0])
	}
	g.Step(input)
	if g.snake[0] != (Point{X: head.X + 1, Y: head.Y}) {
		t.Errorf("head = %v, want one cell right of %v", g.snake[0], head)
	}
}

func TestSpeedCurve(t *testing.T) {
	tests := []struct {
		difficulty string
		eaten      int
		want       int
	}{
		{"easy", 0, 220},
		{"easy", 10, 200},
		{"easy", 60, 120},
		{"normal", 0, 160},
		{"normal", 5, 145},
		{"fast", 0, 110},
		{"fast", 10, 60},
		{"fast", 11, 60},
	}
	for _, tt := range tests {
		g, _ := newTestGame(t, tt.difficulty, 1)
		g.foodEaten = tt.eaten
		if got := g.Delay(); got != tt.want {
			t.Errorf("%s after %d food: delay %d, want %d", tt.difficulty, tt.eaten, got, tt.want)
		}
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g, _ := newTestGame(t, "normal", 999)

	for i := 0; i < 100; i++ {
		g.spawnFood()

		if g.isSnakeAt(g.food) {
			t.Errorf("Food spawned on snake at (%d, %d)", g.food.X, g.food.Y)
		}
		if g.food.X < 0 || g.food.X >= g.mapWidth || g.food.Y < 0 || g.food.Y >= g.mapHeight {
			t.Errorf("Food spawned out of bounds at (%d, %d)", g.food.X, g.food.Y)
		}
	}
}

func TestWallCollision(t *testing.T) {
	g, rec := newTestGame(t, "normal", 789)

	g.snake = []Point{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	g.direction = DirUp
	g.nextDir = DirUp
	g.score = 30

	g.moveSnake()

	if !g.gameOver {
		t.Fatal("Game should be over after leaving the field")
	}
	if rec.Last() != CueOver {
		t.Errorf("cue = %q, want over", rec.Last())
	}
	if g.HighScore() != 30 {
		t.Errorf("high score = %d, want 30", g.HighScore())
	}
}

func TestSelfCollision(t *testing.T) {
	g, _ := newTestGame(t, "normal", 111)

	g.snake = []Point{
		{X: 5, Y: 5}, // Head
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}
	g.direction = DirRight
	g.nextDir = DirRight

	// Move right would put head at (6, 5) which is occupied
	g.moveSnake()

	if !g.gameOver {
		t.Error("Game should be over after self collision")
	}
}

func TestTailCollision(t *testing.T) {
	g, _ := newTestGame(t, "normal", 112)

	// A closed loop: the head moves onto the cell the tail occupies.
	g.snake = []Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}}
	g.direction = DirUp
	g.nextDir = DirRight

	g.moveSnake()

	if !g.gameOver {
		t.Error("moving onto the tail should end the game")
	}
}

func TestSnakeGrowth(t *testing.T) {
	g, rec := newTestGame(t, "normal", 222)

	initialLen := len(g.snake)
	head := g.snake[0]
	g.food = Point{X: head.X + 1, Y: head.Y}

	g.moveSnake()

	if len(g.snake) != initialLen+1 {
		t.Errorf("Snake should grow by 1 after eating food, got %d vs %d",
			len(g.snake), initialLen+1)
	}
	if g.score != 10 {
		t.Errorf("Score should be 10 after eating food, got %d", g.score)
	}
	if rec.Last() != CueEat {
		t.Errorf("cue = %q, want eat", rec.Last())
	}
	if g.Delay() != 157 {
		t.Errorf("delay = %d, want 157", g.Delay())
	}
}

func TestHighScoreSurvivesReset(t *testing.T) {
	g, _ := newTestGame(t, "easy", 5)
	g.score = 70
	g.die()

	g.Reset(core.RuntimeConfig{Seed: 6, ScreenW: 80, ScreenH: 24, TickRate: 60, Difficulty: "easy"})
	if g.HighScore() != 70 {
		t.Errorf("easy high score = %d, want 70", g.HighScore())
	}
	if g.score != 0 || g.gameOver {
		t.Error("reset did not start a new run")
	}

	g.Reset(core.RuntimeConfig{Seed: 6, ScreenW: 80, ScreenH: 24, TickRate: 60, Difficulty: "fast"})
	if g.HighScore() != 0 {
		t.Errorf("fast high score = %d, want 0", g.HighScore())
	}

	// A lower score does not replace the best
	g.Reset(core.RuntimeConfig{Seed: 6, ScreenW: 80, ScreenH: 24, TickRate: 60, Difficulty: "easy"})
	g.score = 20
	g.die()
	if g.HighScore() != 70 {
		t.Errorf("high score = %d, want 70", g.HighScore())
	}
}

func TestHighScoreSharedAcrossGames(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	bestScores.clear()
	cfg := core.RuntimeConfig{Seed: 3, ScreenW: 80, ScreenH: 24, TickRate: 60, Difficulty: "normal"}

	first, err := registry.Create("snake")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	first.Reset(cfg)
	g1 := first.(*Game)
	g1.score = 50
	g1.die()

	second, err := registry.Create("snake")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second.Reset(cfg)
	if got := second.(*Game).HighScore(); got != 50 {
		t.Errorf("second game HighScore = %d, want 50", got)
	}
}

func TestRestartAnyTime(t *testing.T) {
	g, _ := newTestGame(t, "normal", 9)
	g.score = 40
	g.foodEaten = 4

	input := core.NewInputFrame()
	input.Set(core.ActionRestart)
	g.Step(input)

	if g.score != 0 || g.foodEaten != 0 || len(g.snake) != startLen {
		t.Errorf("restart mid-run left score %d eaten %d len %d", g.score, g.foodEaten, len(g.snake))
	}
}

func TestPause(t *testing.T) {
	g, _ := newTestGame(t, "fast", 3)

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	g.Step(input)
	if !g.State().Paused {
		t.Fatal("not paused")
	}

	head := g.snake[0]
	input.Clear()
	for range 60 {
		g.Step(input)
	}
	if g.snake[0] != head {
		t.Error("snake moved while paused")
	}
}

func TestWindowTooSmall(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 333, ScreenW: 10, ScreenH: 5})

	if !g.tooSmall {
		t.Error("Game should detect window is too small")
	}

	snap := g.Snapshot()
	if snap.State != StatePausedSmall {
		t.Errorf("State should be paused_small_window, got %s", snap.State)
	}
}

func TestRender(t *testing.T) {
	g, _ := newTestGame(t, "normal", 444)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Snake") {
		t.Error("HUD should contain 'Snake'")
	}
	head := g.snake[0]
	if got := screen.Get(g.mapOffsetX+head.X, g.mapOffsetY+head.Y); got != 'O' {
		t.Errorf("head glyph = %q, want 'O'", got)
	}

	g.die()
	g.Render(screen)
	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("game over overlay missing")
	}
}
