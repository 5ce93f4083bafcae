package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/beep-arcade/internal/audio"
	"github.com/vovakirdan/beep-arcade/internal/core"
	"github.com/vovakirdan/beep-arcade/internal/storage"
)

// stubGame ends after overAfter steps and records what it was given.
type stubGame struct {
	overAfter int
	score     int
	steps     int
	resets    int
	last      core.InputFrame
	cues      audio.Emitter
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in.Clone()
	if in.Has(core.ActionJump) && g.cues != nil {
		g.cues.Emit("beep")
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.steps >= g.overAfter}
}

func (g *stubGame) SetCueEmitter(e audio.Emitter) { g.cues = e }

// matchGame reports a head-to-head result once over.
type matchGame struct{ stubGame }

func (g *matchGame) ID() string { return "duel" }

func (g *matchGame) MatchOutcome() (core.MatchOutcome, bool) {
	if !g.State().GameOver {
		return core.MatchOutcome{}, false
	}
	return core.MatchOutcome{Left: "ann", Right: "bob", Score1: 3, Score2: 1, Winner: "ann", Moves: g.steps}, true
}

// timedMatchGame reports its own match length.
type timedMatchGame struct{ matchGame }

func (g *timedMatchGame) Duration() time.Duration { return 95 * time.Second }

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	cfg.Difficulty = "normal"
	return cfg
}

func TestModelForwardsInputAndCues(t *testing.T) {
	game := &stubGame{overAfter: 100}
	rec := &audio.Recorder{}
	m := NewModel(game, nil, testConfig(), audio.NewSwitch(rec, false))
	m.Init()

	if game.resets != 1 {
		t.Fatalf("resets = %d, want 1", game.resets)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})

	if !game.last.Has(core.ActionJump) {
		t.Error("jump did not reach the game")
	}
	if len(game.last.Pointer) != 1 || game.last.Pointer[0].X != 5 {
		t.Errorf("pointer = %+v, want one press at x=5", game.last.Pointer)
	}
	if rec.Last() != "beep" {
		t.Errorf("last cue = %q, want beep", rec.Last())
	}

	// Input is consumed by the tick
	update(t, m, TickMsg{})
	if game.last.Has(core.ActionJump) {
		t.Error("input frame was not cleared after the tick")
	}
}

func TestModelMuteToggle(t *testing.T) {
	game := &stubGame{overAfter: 100}
	rec := &audio.Recorder{}
	sound := audio.NewSwitch(rec, false)
	m := NewModel(game, nil, testConfig(), sound)
	m.Init()

	m = update(t, m, runeKey("m"))
	if !sound.Muted() {
		t.Fatal("m should mute")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	update(t, m, TickMsg{})
	if len(rec.Cues) != 0 {
		t.Errorf("cues while muted = %v", rec.Cues)
	}
	if game.last.Has(core.ActionMute) {
		t.Error("mute should not reach the game")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openTestStore(t)
	game := &stubGame{overAfter: 2, score: 42}
	m := NewModel(game, store, testConfig(), nil)
	m.Init()

	for range 5 {
		m = update(t, m, TickMsg{})
	}

	scores, err := store.TopScores("stub", "", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, want 1", len(scores))
	}
	if scores[0].Score != 42 || scores[0].Difficulty != "normal" {
		t.Errorf("saved %+v, want score 42 on normal", scores[0])
	}
}

func TestModelSkipsZeroScore(t *testing.T) {
	store := openTestStore(t)
	game := &stubGame{overAfter: 1}
	m := NewModel(game, store, testConfig(), nil)
	m.Init()
	update(t, m, TickMsg{})

	scores, err := store.TopScores("stub", "", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("saved %d scores for a zero result", len(scores))
	}
}

func TestModelSavesMatch(t *testing.T) {
	store := openTestStore(t)
	game := &matchGame{stubGame{overAfter: 3}}
	m := NewModel(game, store, testConfig(), nil)
	m.Init()

	for range 6 {
		m = update(t, m, TickMsg{})
	}

	matches, err := store.RecentMatches("duel", 10)
	if err != nil {
		t.Fatalf("RecentMatches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("saved %d matches, want 1", len(matches))
	}
	got := matches[0]
	if got.LeftName != "ann" || got.RightName != "bob" || got.Winner != "ann" || got.Score1 != 3 {
		t.Errorf("saved %+v", got)
	}
	if got.MatchID == "" {
		t.Error("match id not assigned")
	}
}

func TestModelUsesGameDuration(t *testing.T) {
	store := openTestStore(t)
	game := &timedMatchGame{matchGame{stubGame{overAfter: 1}}}
	m := NewModel(game, store, testConfig(), nil)
	m.Init()
	update(t, m, TickMsg{})

	matches, err := store.RecentMatches("duel", 10)
	if err != nil {
		t.Fatalf("RecentMatches: %v", err)
	}
	if len(matches) != 1 || matches[0].Duration != 95 {
		t.Errorf("matches = %+v, want one lasting 95s", matches)
	}
}

func TestModelBackAndQuit(t *testing.T) {
	game := &stubGame{overAfter: 100}

	m := NewModel(game, nil, testConfig(), nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("esc should return to the menu")
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving")
	}

	m = NewModel(game, nil, testConfig(), nil)
	m = update(t, m, runeKey("q"))
	if m.BackToMenu() || !m.quitting {
		t.Error("q should quit without returning to the menu")
	}
}

func TestModelViewShowsMute(t *testing.T) {
	game := &stubGame{overAfter: 100}
	m := NewModel(game, nil, testConfig(), audio.NewSwitch(nil, true))
	m.Init()

	m.View()
	if got := m.screen.Row(0); got[:4] != "stub" || got[len(got)-7:] != "[muted]" {
		t.Errorf("row 0 = %q", got)
	}
}
