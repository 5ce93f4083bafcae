package snake

import "sync"

// bestScores is shared by every Game.
var bestScores = newScoreTable()

// scoreTable keeps the best score per preset name for the process lifetime.
type scoreTable struct {
	mu   sync.Mutex
	best map[string]int
}

func newScoreTable() *scoreTable {
	return &scoreTable{best: make(map[string]int)}
}

func (t *scoreTable) get(preset string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.best[preset]
}

// record stores score if it beats the preset's best.
func (t *scoreTable) record(preset string, score int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if score > t.best[preset] {
		t.best[preset] = score
	}
}

func (t *scoreTable) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.best)
}
