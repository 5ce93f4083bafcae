// Package console is a line-mode checkers client. Two players share one
// terminal and type moves as coordinates; it runs where the full-screen
// TUI cannot, such as over a plain serial line or in a script.
package console

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"

	"github.com/vovakirdan/beep-arcade/internal/audio"
	"github.com/vovakirdan/beep-arcade/internal/games/checkers"
)

// Config configures a console session.
type Config struct {
	Seed        int64
	HistoryFile string // Empty disables history
	Sound       *audio.Switch
	Logger      *log.Logger
}

// Console executes commands against one checkers engine.
type Console struct {
	engine *checkers.Engine
	sound  *audio.Switch
	out    io.Writer
	logger *log.Logger

	red, black, power, dim lipgloss.Style
}

// New creates a console writing to out.
func New(out io.Writer, cfg Config) *Console {
	if cfg.Sound == nil {
		cfg.Sound = audio.NewSwitch(audio.Nop, true)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.WithPrefix("console")
	}

	r := lipgloss.NewRenderer(out)
	c := &Console{
		sound:  cfg.Sound,
		out:    out,
		logger: cfg.Logger,
		red:    r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		black:  r.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		power:  r.NewStyle().Foreground(lipgloss.Color("6")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("245")),
	}
	c.engine = checkers.NewEngine(rand.New(rand.NewSource(cfg.Seed)), cfg.Sound)
	return c
}

// Engine exposes the rule state for callers that inspect it.
func (c *Console) Engine() *checkers.Engine {
	return c.engine
}

// Prompt returns the prompt for the side to move.
func (c *Console) Prompt() string {
	if c.engine.Over() {
		return "checkers [over]> "
	}
	return fmt.Sprintf("checkers [%s]> ", c.engine.Turn())
}

var commandHelp = []struct{ usage, text string }{
	{"board", "show the board"},
	{"moves <row> <col>", "list destinations for a piece"},
	{"move <r1> <c1> <r2> <c2>", "slide or jump a piece"},
	{"status", "show turn, pieces and power-up"},
	{"restart", "start a new game"},
	{"mute", "toggle sound"},
	{"help", "show this list"},
	{"quit", "leave"},
}

// Execute runs one command line. It returns true when the session should end.
func (c *Console) Execute(line string) (quit bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		for _, h := range commandHelp {
			fmt.Fprintf(c.out, "  %-26s %s\n", h.usage, h.text)
		}
	case "board", "b":
		c.printBoard()
	case "status", "s":
		c.printStatus()
	case "moves":
		c.moves(args)
	case "move", "m":
		c.move(args)
	case "restart", "r":
		c.engine.Restart()
		c.logger.Debug("restart")
		fmt.Fprintln(c.out, "New game.")
		c.printBoard()
	case "mute":
		if c.sound.Toggle() {
			fmt.Fprintln(c.out, "Sound off.")
		} else {
			fmt.Fprintln(c.out, "Sound on.")
		}
	default:
		fmt.Fprintf(c.out, "Unknown command %q. Type 'help'.\n", cmd)
	}
	return false
}

func (c *Console) moves(args []string) {
	coords, err := parseCoords(args, 2)
	if err != nil {
		fmt.Fprintf(c.out, "usage: moves <row> <col>: %v\n", err)
		return
	}
	sq := checkers.Sq(coords[0], coords[1])
	dests := c.engine.EnumerateMoves(sq)
	if len(dests) == 0 {
		fmt.Fprintf(c.out, "No moves from %s.\n", sq)
		return
	}
	parts := make([]string, len(dests))
	for i, d := range dests {
		parts[i] = d.String()
	}
	fmt.Fprintf(c.out, "%s -> %s\n", sq, strings.Join(parts, " "))
}

func (c *Console) move(args []string) {
	coords, err := parseCoords(args, 4)
	if err != nil {
		fmt.Fprintf(c.out, "usage: move <r1> <c1> <r2> <c2>: %v\n", err)
		return
	}
	from := checkers.Sq(coords[0], coords[1])
	to := checkers.Sq(coords[2], coords[3])

	if c.engine.Over() {
		fmt.Fprintln(c.out, "Game over. Type 'restart' to play again.")
		return
	}
	if side, ok := c.engine.At(from).Side(); ok && side != c.engine.Turn() {
		fmt.Fprintf(c.out, "It is %s's turn.\n", c.engine.Turn())
		return
	}
	if !c.engine.AttemptMove(from, to) {
		fmt.Fprintf(c.out, "Illegal move %s -> %s.\n", from, to)
		return
	}
	c.logger.Debug("move", "from", from, "to", to, "moves", c.engine.Moves())

	c.printBoard()
	if c.engine.Over() {
		fmt.Fprintln(c.out, c.engine.WinnerLabel())
	}
}

func parseCoords(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(args))
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", a)
		}
		if v < 0 || v >= checkers.BoardSize {
			return nil, fmt.Errorf("%d is off the board", v)
		}
		out[i] = v
	}
	return out, nil
}

func (c *Console) printStatus() {
	e := c.engine
	if e.Over() {
		fmt.Fprintln(c.out, e.WinnerLabel())
	} else {
		fmt.Fprintf(c.out, "%s to move.\n", e.Turn())
	}
	fmt.Fprintf(c.out, "Red %d  Black %d  Moves %d\n",
		e.Remaining(checkers.Red), e.Remaining(checkers.Black), e.Moves())
	if pu, ok := e.PowerUp(); ok {
		fmt.Fprintf(c.out, "Power-up %s at %s\n", pu.Kind, pu.Square)
	}
}

// printBoard draws the board with r/b for men, R/B for kings and * for the
// power-up square.
func (c *Console) printBoard() {
	var b strings.Builder
	b.WriteString("   ")
	for col := range checkers.BoardSize {
		fmt.Fprintf(&b, " %d", col)
	}
	b.WriteString("\n")

	pu, hasPU := c.engine.PowerUp()
	for row := range checkers.BoardSize {
		fmt.Fprintf(&b, " %d ", row)
		for col := range checkers.BoardSize {
			sq := checkers.Sq(row, col)
			b.WriteString(" ")
			b.WriteString(c.cell(sq, hasPU && pu.Square == sq))
		}
		b.WriteString("\n")
	}
	fmt.Fprint(c.out, b.String())
}

func (c *Console) cell(sq checkers.Square, powerUp bool) string {
	switch c.engine.At(sq) {
	case checkers.RedMan:
		return c.red.Render("r")
	case checkers.RedKing:
		return c.red.Render("R")
	case checkers.BlackMan:
		return c.black.Render("b")
	case checkers.BlackKing:
		return c.black.Render("B")
	}
	switch {
	case powerUp:
		return c.power.Render("*")
	case sq.Dark():
		return c.dim.Render(".")
	default:
		return " "
	}
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("board"),
		readline.PcItem("moves"),
		readline.PcItem("move"),
		readline.PcItem("status"),
		readline.PcItem("restart"),
		readline.PcItem("mute"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Run reads commands from the terminal until quit or EOF.
func Run(cfg Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "checkers> ",
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("console: %w", err)
	}
	defer rl.Close()

	c := New(rl.Stdout(), cfg)
	fmt.Fprintln(c.out, "Checkers console. Red moves first. Type 'help' for commands.")
	c.printBoard()

	for {
		rl.SetPrompt(c.Prompt())
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if line == "" {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("console: %w", err)
		}
		if c.Execute(line) {
			return nil
		}
	}
}
