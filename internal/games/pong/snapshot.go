package pong

// Snapshot contains the complete state of a Pong match for determinism
// testing. Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick     int
	BallX    int
	BallY    int
	BallVX   int // Velocity scaled by 1000 (for precision)
	BallVY   int // Velocity scaled by 1000
	Paddle1Y int
	Paddle2Y int
	Score1   int
	Score2   int
	GameOver bool
	Winner   int // 0=none, 1=left, 2=right
	Serving  bool
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tickCount,
		BallX:    int(g.ballX),
		BallY:    int(g.ballY),
		BallVX:   int(g.ballVX * 1000),
		BallVY:   int(g.ballVY * 1000),
		Paddle1Y: int(g.paddle1Y),
		Paddle2Y: int(g.paddle2Y),
		Score1:   g.score1,
		Score2:   g.score2,
		GameOver: g.gameOver,
		Winner:   g.winner,
		Serving:  g.serving,
	}
}
