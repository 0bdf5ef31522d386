package ui

import (
	"context"
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/pkmnbot/internal/game"
	"github.com/samdwyer/pkmnbot/internal/gamedata"
	"github.com/samdwyer/pkmnbot/internal/telemetry"
)

// Terminal plays the game for a single local user with tcell.
type Terminal struct {
	screen   *Screen
	renderer *Renderer
	game     *game.Game
	types    *gamedata.TypeRegistry
	user     string
	state    game.State
	input    []rune
	typing   bool
	running  bool
}

// NewTerminal creates a terminal front-end on screen.
func NewTerminal(screen *Screen, g *game.Game, types *gamedata.TypeRegistry, user string) *Terminal {
	return newTerminal(screen, screen, g, types, user)
}

func newTerminal(screen *Screen, canvas Canvas, g *game.Game, types *gamedata.TypeRegistry, user string) *Terminal {
	return &Terminal{
		screen:   screen,
		renderer: NewRenderer(canvas, types),
		game:     g,
		types:    types,
		user:     user,
		running:  true,
	}
}

// Run executes the input loop until the user quits.
func (t *Terminal) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("ui")
	ctx, span := tracer.Start(ctx, "terminal.session")
	span.SetAttributes(attribute.String("user", t.user))
	defer span.End()

	t.resume(ctx)

	for t.running {
		t.draw()

		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.handleKey(ctx, ev.Key(), ev.Rune())
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	t.screen.Close()
	return nil
}

// resume shows where the user left off: the starters for a new user, the
// battle for a user in one, the location otherwise.
func (t *Terminal) resume(ctx context.Context) {
	prefix := t.game.Config().Prefix

	reply, _ := t.game.HandleCommand(ctx, t.user, prefix+" start")
	if reply.Ephemeral {
		reply = t.game.HandleButton(ctx, t.user, game.ButtonExplore)
	}
	if reply.Ephemeral {
		reply = t.game.HandleButton(ctx, t.user, game.ButtonFight)
	}
	t.show(reply)
}

// show presents a reply. Error replies keep the previous buttons.
func (t *Terminal) show(reply game.Reply) {
	if !reply.Ephemeral {
		t.renderer.Reset()
		t.state = reply.State
	}
	// The renderer never fails
	_ = Present(t.renderer, reply, t.types)
}

func (t *Terminal) draw() {
	title := "pkmnbot · " + t.state.String()
	if t.typing {
		prompt := string(t.input)
		t.renderer.Draw(title, &prompt)
		return
	}
	t.renderer.Draw(title, nil)
}

// handleKey processes keyboard input.
func (t *Terminal) handleKey(ctx context.Context, key tcell.Key, r rune) {
	if t.typing {
		t.handleTyping(ctx, key, r)
		return
	}

	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.running = false
	case tcell.KeyRune:
		switch {
		case r == 'q' || r == 'Q':
			t.running = false
		case r == ':':
			t.typing = true
			t.input = t.input[:0]
		case r >= '1' && r <= '9':
			t.press(ctx, int(r-'1'))
		}
	}
}

func (t *Terminal) handleTyping(ctx context.Context, key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape:
		t.typing = false
	case tcell.KeyEnter:
		t.typing = false
		t.command(ctx, string(t.input))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(t.input) > 0 {
			t.input = t.input[:len(t.input)-1]
		}
	case tcell.KeyRune:
		t.input = append(t.input, r)
	}
}

// press activates the button at index, if any.
func (t *Terminal) press(ctx context.Context, index int) {
	buttons := t.renderer.Buttons()
	if index < 0 || index >= len(buttons) {
		return
	}
	t.show(t.game.HandleButton(ctx, t.user, buttons[index].ID))
}

// command runs typed text, adding the prefix when it is missing.
func (t *Terminal) command(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	prefix := t.game.Config().Prefix
	if fields := strings.Fields(text); !strings.EqualFold(fields[0], prefix) {
		text = prefix + " " + text
	}
	reply, _ := t.game.HandleCommand(ctx, t.user, text)
	t.show(reply)
}
