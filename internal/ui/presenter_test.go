package ui

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/samdwyer/pkmnbot/internal/game"
	"github.com/samdwyer/pkmnbot/internal/gamedata"
)

// recorder is a Presenter that remembers the order of calls.
type recorder struct {
	calls     []string
	lines     []string
	ephemeral bool
	buttons   []game.Button
	image     string
	fail      error
}

func (r *recorder) RenderText(lines []string, ephemeral bool) error {
	r.calls = append(r.calls, "text")
	r.lines, r.ephemeral = lines, ephemeral
	return r.fail
}

func (r *recorder) RenderButtons(buttons []game.Button) error {
	r.calls = append(r.calls, "buttons")
	r.buttons = buttons
	return r.fail
}

func (r *recorder) RenderImage(url string) error {
	r.calls = append(r.calls, "image")
	r.image = url
	return r.fail
}

func testBattleReply() game.Reply {
	return game.Reply{
		State: game.StateBattle,
		Lines: []string{"Un Rattata sauvage (Nv. 5) apparaît !"},
		Battle: &game.BattleView{
			Phase:  "encountered",
			Player: game.PokemonView{Name: "Carapuce", Dex: 7, Types: []string{"Eau"}, Level: 5, HP: 24, MaxHP: 24},
			Wild:   game.PokemonView{Name: "Rattata", Dex: 19, Types: []string{"Normal"}, Level: 5, HP: 11, MaxHP: 22},
		},
		Sprite:  19,
		Buttons: []game.Button{{ID: game.ButtonFight, Label: "Combattre"}, {ID: game.ButtonFlee, Label: "Fuir"}},
	}
}

func TestPresentBattle(t *testing.T) {
	types := gamedata.MustLoadCatalog().Types
	r := &recorder{}

	if err := Present(r, testBattleReply(), types); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	if want := []string{"text", "image", "buttons"}; !reflect.DeepEqual(r.calls, want) {
		t.Errorf("calls = %v, want %v", r.calls, want)
	}
	if r.image != SpriteURL(19) {
		t.Errorf("image = %q, want %q", r.image, SpriteURL(19))
	}
	if len(r.buttons) != 2 {
		t.Errorf("len(buttons) = %d, want 2", len(r.buttons))
	}

	text := strings.Join(r.lines, "\n")
	for _, want := range []string{
		"Rattata sauvage Nv. 5 ⚪",
		"🟨 █████░░░░░ 11/22",
		"Carapuce Nv. 5 💧",
		"🟩 ██████████ 24/24",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
}

func TestPresentEphemeral(t *testing.T) {
	r := &recorder{}
	reply := game.Reply{Lines: []string{"Tu n'es pas en combat."}, Ephemeral: true}

	if err := Present(r, reply, gamedata.MustLoadCatalog().Types); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if !reflect.DeepEqual(r.calls, []string{"text"}) {
		t.Errorf("calls = %v, want only text", r.calls)
	}
	if !r.ephemeral {
		t.Error("text should be ephemeral")
	}
}

func TestPresentTeam(t *testing.T) {
	r := &recorder{}
	reply := game.Reply{
		Lines: []string{"Position : Route 1"},
		Team: []game.PokemonView{{
			Name: "Salamèche", Types: []string{"Feu"}, Level: 5, HP: 23, MaxHP: 23,
			Moves: []game.MoveView{{Name: "Flammèche", Type: "Feu", PP: 24, MaxPP: 25}},
		}},
	}

	if err := Present(r, reply, gamedata.MustLoadCatalog().Types); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	text := strings.Join(r.lines, "\n")
	if !strings.Contains(text, "🔥 Flammèche 24/25 PP") {
		t.Errorf("text missing move line:\n%s", text)
	}
}

func TestPresentStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	r := &recorder{fail: boom}

	if err := Present(r, testBattleReply(), gamedata.MustLoadCatalog().Types); !errors.Is(err, boom) {
		t.Errorf("Present() error = %v, want boom", err)
	}
	if len(r.calls) != 1 {
		t.Errorf("calls = %v, want to stop after the first failure", r.calls)
	}
}
