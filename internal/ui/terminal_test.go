package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/pkmnbot/internal/game"
	"github.com/samdwyer/pkmnbot/internal/gamedata"
	"github.com/samdwyer/pkmnbot/internal/session"
)

// fakeCanvas records the first rune and the style of every cell drawn.
type fakeCanvas struct {
	width, height int
	cells         map[[2]int]rune
	styles        map[[2]int]tcell.Style
	shown         int
}

func newFakeCanvas() *fakeCanvas {
	c := &fakeCanvas{width: 80, height: 24}
	c.Clear()
	return c
}

func (c *fakeCanvas) Clear() {
	c.cells = make(map[[2]int]rune)
	c.styles = make(map[[2]int]tcell.Style)
}

func (c *fakeCanvas) Show() { c.shown++ }

func (c *fakeCanvas) Size() (width, height int) { return c.width, c.height }

func (c *fakeCanvas) SetContent(x, y int, r rune, _ []rune, style tcell.Style) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[[2]int{x, y}] = r
	c.styles[[2]int{x, y}] = style
}

// text returns the screen as lines; cells never drawn read as spaces.
func (c *fakeCanvas) text() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if r, ok := c.cells[[2]int{x, y}]; ok {
				b.WriteRune(r)
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func newTestTerminal(t *testing.T) (*Terminal, *fakeCanvas) {
	t.Helper()
	catalog := gamedata.MustLoadCatalog()
	cfg := game.DefaultConfig()
	cfg.Seed = 3

	g, err := game.New(context.Background(), cfg, catalog, session.NewMemoryStore(session.DefaultPrefix), nil)
	if err != nil {
		t.Fatalf("game.New() error = %v", err)
	}
	canvas := newFakeCanvas()
	return newTerminal(nil, canvas, g, catalog.Types, "local"), canvas
}

func TestTerminalStartsWithStarters(t *testing.T) {
	term, canvas := newTestTerminal(t)
	ctx := context.Background()

	term.resume(ctx)
	term.draw()

	screen := canvas.text()
	for _, want := range []string{"pkmnbot", "[1] Bulbizarre", "[3] Carapuce", "q : quitter"} {
		if !strings.Contains(screen, want) {
			t.Errorf("screen missing %q:\n%s", want, screen)
		}
	}
	if canvas.shown != 1 {
		t.Errorf("Show() called %d times, want 1", canvas.shown)
	}
}

func TestTerminalButtonsDriveTheGame(t *testing.T) {
	term, canvas := newTestTerminal(t)
	ctx := context.Background()
	term.resume(ctx)

	// Carapuce, then the only route out of Bourg-Palette
	term.handleKey(ctx, tcell.KeyRune, '3')
	if term.state != game.StateExplore {
		t.Fatalf("state = %v after choosing a starter, want explore", term.state)
	}
	for i, b := range term.renderer.Buttons() {
		if b.ID == "goto_route-1" {
			term.handleKey(ctx, tcell.KeyRune, rune('1'+i))
		}
	}
	term.draw()
	if screen := canvas.text(); !strings.Contains(screen, "Route 1") {
		t.Fatalf("screen should show Route 1:\n%s", screen)
	}

	// First action on route 1 searches for wild Pokémon
	term.handleKey(ctx, tcell.KeyRune, '1')
	if term.state != game.StateBattle {
		t.Fatalf("state = %v after searching, want battle", term.state)
	}
	term.draw()
	screen := canvas.text()
	if !strings.Contains(screen, "[1] Combattre") || !strings.Contains(screen, "raw.githubusercontent.com") {
		t.Errorf("battle screen incomplete:\n%s", screen)
	}

	// Out-of-range keys are ignored
	term.handleKey(ctx, tcell.KeyRune, '9')
	if term.state != game.StateBattle {
		t.Errorf("state = %v after pressing a missing button", term.state)
	}
}

func TestTerminalCommandLine(t *testing.T) {
	term, canvas := newTestTerminal(t)
	ctx := context.Background()
	term.resume(ctx)

	term.handleKey(ctx, tcell.KeyRune, ':')
	for _, r := range "start salamèchX" {
		term.handleKey(ctx, tcell.KeyRune, r)
	}
	term.handleKey(ctx, tcell.KeyBackspace2, 0)
	term.handleKey(ctx, tcell.KeyRune, 'e')

	term.draw()
	if screen := canvas.text(); !strings.Contains(screen, "> start salamèche_") {
		t.Errorf("prompt not shown:\n%s", screen)
	}

	term.handleKey(ctx, tcell.KeyEnter, 0)
	if term.typing {
		t.Error("Enter should leave the command line")
	}
	if term.state != game.StateExplore {
		t.Fatalf("state = %v after start command, want explore", term.state)
	}

	// Errors keep the previous buttons
	before := len(term.renderer.Buttons())
	term.command(ctx, "pkmn flee")
	if got := len(term.renderer.Buttons()); got != before {
		t.Errorf("buttons after error = %d, want %d", got, before)
	}
	term.draw()
	if screen := canvas.text(); !strings.Contains(screen, "Tu n'es pas en combat.") {
		t.Errorf("error not shown:\n%s", screen)
	}
}

func TestTerminalQuit(t *testing.T) {
	tests := []struct {
		key tcell.Key
		r   rune
	}{
		{tcell.KeyRune, 'q'},
		{tcell.KeyRune, 'Q'},
		{tcell.KeyEscape, 0},
		{tcell.KeyCtrlC, 0},
	}

	for _, tt := range tests {
		term, _ := newTestTerminal(t)
		term.handleKey(context.Background(), tt.key, tt.r)
		if term.running {
			t.Errorf("key %v/%q should quit", tt.key, tt.r)
		}
	}

	// Escape while typing only leaves the command line
	term, _ := newTestTerminal(t)
	term.handleKey(context.Background(), tcell.KeyRune, ':')
	term.handleKey(context.Background(), tcell.KeyEscape, 0)
	if !term.running || term.typing {
		t.Errorf("running = %v, typing = %v; want running and not typing", term.running, term.typing)
	}
}
