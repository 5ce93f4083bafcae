package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beep-arcade/internal/audio"
	"github.com/vovakirdan/beep-arcade/internal/core"
	"github.com/vovakirdan/beep-arcade/internal/registry"
	"github.com/vovakirdan/beep-arcade/internal/storage"
)

// difficultyReporter is implemented by games that run a named preset.
type difficultyReporter interface {
	Difficulty() string
}

// durationReporter is implemented by games that time their own matches.
type durationReporter interface {
	Duration() time.Duration
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	sound      *audio.Switch
	logger     *log.Logger
	keyMapper  *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	multiFrame core.MultiInputFrame
	gameState  core.GameState
	started    time.Time
	quitting   bool
	back       bool // Whether the player asked to return to the menu
	saved      bool // Whether the result has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// sound may be nil, in which case cues are dropped.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, sound *audio.Switch) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if sound == nil {
		sound = audio.NewSwitch(audio.Nop, true)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		sound:      sound,
		logger:     log.WithPrefix("tui"),
		keyMapper:  NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		multiFrame: core.NewMultiInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	if src, ok := m.game.(registry.CueSource); ok {
		src.SetCueEmitter(m.sound)
	}
	m.game.Reset(m.config)
	// Note: gameState and started are set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := m.keyMapper.MapMouse(msg); ok {
			m.inputFrame.AddPointer(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.back = true
		return m, tea.Quit
	case action == core.ActionMute:
		muted := m.sound.Toggle()
		m.logger.Debug("sound toggled", "muted", muted)
		return m, nil
	}

	if _, ok := m.game.(registry.MultiPlayerGame); ok {
		m.keyMapper.MapKeyToMultiFrame(msg, &m.multiFrame)
	} else {
		m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Update screen size
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without Resize restart on the new field
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.started.IsZero() {
		m.started = time.Now()
	}

	var result core.StepResult
	if mp, ok := m.game.(registry.MultiPlayerGame); ok {
		// Pointer input still belongs to player one
		p1 := m.multiFrame.Player1()
		for _, ev := range m.inputFrame.Pointer {
			p1.AddPointer(ev)
		}
		m.multiFrame.SetPlayer(core.Player1, p1)
		result = mp.StepMulti(m.multiFrame)
	} else {
		result = m.game.Step(m.inputFrame)
	}

	wasOver := m.gameState.GameOver
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !m.saved:
		m.saveResult()
		m.saved = true
	case wasOver && !m.gameState.GameOver:
		// Restarted by the game
		m.saved = false
		m.started = time.Now()
	}

	// Clear input for next frame
	m.inputFrame.Clear()
	m.multiFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveResult records a finished game. Head-to-head games store a match,
// the others store a score when it is positive.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}

	if rep, ok := m.game.(registry.MatchReporter); ok {
		outcome, done := rep.MatchOutcome()
		if !done {
			return
		}
		elapsed := time.Since(m.started)
		if d, ok := m.game.(durationReporter); ok {
			elapsed = d.Duration()
		}
		id, err := m.store.SaveMatch(storage.MatchResult{
			GameID:    m.game.ID(),
			LeftName:  outcome.Left,
			RightName: outcome.Right,
			Score1:    outcome.Score1,
			Score2:    outcome.Score2,
			Winner:    outcome.Winner,
			Moves:     outcome.Moves,
			Duration:  int(elapsed.Seconds()),
		})
		if err != nil {
			m.logger.Error("save match", "game", m.game.ID(), "err", err)
			return
		}
		m.logger.Info("match saved", "game", m.game.ID(), "id", id, "winner", outcome.Winner)
		return
	}

	if m.gameState.Score <= 0 {
		return
	}
	difficulty := m.config.Difficulty
	if d, ok := m.game.(difficultyReporter); ok {
		difficulty = d.Difficulty()
	}
	if _, err := m.store.SaveScore(m.game.ID(), difficulty, m.gameState.Score); err != nil {
		m.logger.Error("save score", "game", m.game.ID(), "err", err)
		return
	}
	m.logger.Info("score saved", "game", m.game.ID(), "difficulty", difficulty, "score", m.gameState.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".beep-arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot dir", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	if m.sound.Muted() {
		label := "[muted]"
		m.screen.DrawTextColored(m.screen.Width()-len(label), 0, label, core.ColorGray)
	}

	return RenderScreen(m.screen)
}

// BackToMenu reports whether the player left the game with Back.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run starts the Bubble Tea program with the given model.
// It returns true when the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, sound *audio.Switch) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, sound)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Checkers takes clicks and drags
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
