package snake

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Score     int
	FoodEaten int
	SnakeLen  int
	HeadX     int
	HeadY     int
	Dir       Direction
	FoodX     int
	FoodY     int
	DelayMS   int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	headX, headY := 0, 0
	if len(g.snake) > 0 {
		headX = g.snake[0].X
		headY = g.snake[0].Y
	}

	return Snapshot{
		Tick:      g.tick,
		Score:     g.score,
		FoodEaten: g.foodEaten,
		SnakeLen:  len(g.snake),
		HeadX:     headX,
		HeadY:     headY,
		Dir:       g.direction,
		FoodX:     g.food.X,
		FoodY:     g.food.Y,
		DelayMS:   g.Delay(),
		State:     state,
	}
}
