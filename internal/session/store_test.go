package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/samdwyer/pkmnbot/internal/battle"
	"github.com/samdwyer/pkmnbot/internal/entity"
	"github.com/samdwyer/pkmnbot/internal/gamedata"
)

func newTestPlayer(t *testing.T, id string) *entity.Player {
	t.Helper()
	catalog := gamedata.MustLoadCatalog()
	starter, err := entity.NewPokemon(catalog.Species.GetByName("Carapuce"), 5, catalog.Moves)
	if err != nil {
		t.Fatalf("NewPokemon() error = %v", err)
	}
	return entity.NewPlayer(id, "route-1", starter)
}

func newTestBattle(t *testing.T, p *entity.Player) *battle.Battle {
	t.Helper()
	catalog := gamedata.MustLoadCatalog()
	b, err := battle.Encounter(context.Background(), battle.EncounterParams{
		Player: p.Active(),
		Pool:   []*gamedata.SpeciesDef{catalog.Species.GetByName("Rattata")},
		Level:  5,
		Moves:  catalog.Moves,
		Rand:   zeroRand{},
	})
	if err != nil {
		t.Fatalf("Encounter() error = %v", err)
	}
	return b
}

type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func newMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run() error = %v", err)
	}
	t.Cleanup(mr.Close)
	return mr
}

// exerciseStore runs the behaviour every Store must share.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	if _, err := s.Player(ctx, "ash"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Player(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := s.Battle(ctx, "ash"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Battle(missing) error = %v, want ErrNotFound", err)
	}

	p := newTestPlayer(t, "ash")
	if err := s.SavePlayer(ctx, p); err != nil {
		t.Fatalf("SavePlayer() error = %v", err)
	}

	// Saved values are copies
	p.Active().CurrentHP = 1

	loaded, err := s.Player(ctx, "ash")
	if err != nil {
		t.Fatalf("Player() error = %v", err)
	}
	if loaded.ID != "ash" || loaded.Location != "route-1" {
		t.Errorf("Player() = %+v", loaded)
	}
	starter := loaded.Active()
	if starter.Species != "Carapuce" || starter.CurrentHP != starter.Stats.HP {
		t.Errorf("loaded starter = %s with %d/%d HP, want full Carapuce", starter.Species, starter.CurrentHP, starter.Stats.HP)
	}
	if len(starter.Moves) != 3 || starter.Moves[2].Name != "Pistolet à O" || starter.Moves[2].CurrentPP != 25 {
		t.Errorf("loaded moves = %+v", starter.Moves)
	}

	b := newTestBattle(t, loaded)
	b.Player.Moves[0].Use()
	if err := s.SaveBattle(ctx, "ash", b); err != nil {
		t.Fatalf("SaveBattle() error = %v", err)
	}

	lb, err := s.Battle(ctx, "ash")
	if err != nil {
		t.Fatalf("Battle() error = %v", err)
	}
	if lb.ID != b.ID || lb.Phase != battle.PhaseEncountered {
		t.Errorf("Battle() = %s in %v, want %s encountered", lb.ID, lb.Phase, b.ID)
	}
	if lb.Wild.Species != "Rattata" || lb.Wild.CurrentHP != lb.Wild.Stats.HP {
		t.Errorf("loaded wild = %+v", lb.Wild)
	}
	if lb.Player.Moves[0].CurrentPP != lb.Player.Moves[0].PP-1 {
		t.Errorf("loaded player PP = %d, want %d", lb.Player.Moves[0].CurrentPP, lb.Player.Moves[0].PP-1)
	}

	if err := s.DeleteBattle(ctx, "ash"); err != nil {
		t.Fatalf("DeleteBattle() error = %v", err)
	}
	if _, err := s.Battle(ctx, "ash"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Battle() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteBattle(ctx, "ash"); err != nil {
		t.Errorf("DeleteBattle(missing) error = %v", err)
	}

	// A played turn commits the player and the battle together
	fresh, err := s.Player(ctx, "ash")
	if err != nil {
		t.Fatalf("Player() error = %v", err)
	}
	tb := newTestBattle(t, fresh)
	tb.Player.Moves[0].Use()
	if err := s.SaveTurn(ctx, fresh, tb); err != nil {
		t.Fatalf("SaveTurn() error = %v", err)
	}
	sp, err := s.Player(ctx, "ash")
	if err != nil {
		t.Fatalf("Player() after SaveTurn error = %v", err)
	}
	sb, err := s.Battle(ctx, "ash")
	if err != nil {
		t.Fatalf("Battle() after SaveTurn error = %v", err)
	}
	wantPP := tb.Player.Moves[0].PP - 1
	if got := sp.Active().Moves[0].CurrentPP; got != wantPP {
		t.Errorf("stored player PP = %d, want %d", got, wantPP)
	}
	if got := sb.Player.Moves[0].CurrentPP; got != wantPP {
		t.Errorf("stored battle PP = %d, want %d", got, wantPP)
	}

	if _, err := tb.Flee(ctx); err != nil {
		t.Fatalf("Flee() error = %v", err)
	}
	if err := s.SaveTurn(ctx, fresh, tb); err != nil {
		t.Fatalf("SaveTurn(ended) error = %v", err)
	}
	if _, err := s.Battle(ctx, "ash"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Battle() after ended SaveTurn error = %v, want ErrNotFound", err)
	}

	// Players are independent of battles and of each other
	if _, err := s.Player(ctx, "ash"); err != nil {
		t.Errorf("Player() after battle delete error = %v", err)
	}
	if _, err := s.Player(ctx, "misty"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Player(other) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(DefaultPrefix))
}

func TestRedisStore(t *testing.T) {
	mr := newMiniredis(t)
	s := NewRedisStore(&RedisConfig{Addr: mr.Addr(), Prefix: "test"})
	defer s.Close()

	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	exerciseStore(t, s)

	if !mr.Exists("test:player:ash") {
		t.Error("expected key test:player:ash")
	}
}

func TestRedisStoreBattleTTL(t *testing.T) {
	mr := newMiniredis(t)
	s := NewRedisStore(&RedisConfig{Addr: mr.Addr(), BattleTTL: time.Minute})
	defer s.Close()

	ctx := context.Background()
	p := newTestPlayer(t, "ash")
	if err := s.SavePlayer(ctx, p); err != nil {
		t.Fatalf("SavePlayer() error = %v", err)
	}
	if err := s.SaveBattle(ctx, "ash", newTestBattle(t, p)); err != nil {
		t.Fatalf("SaveBattle() error = %v", err)
	}

	if ttl := mr.TTL("pkmn:battle:ash"); ttl != time.Minute {
		t.Errorf("battle TTL = %v, want 1m", ttl)
	}
	if ttl := mr.TTL("pkmn:player:ash"); ttl != 0 {
		t.Errorf("player TTL = %v, want none", ttl)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := s.Battle(ctx, "ash"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Battle() after TTL error = %v, want ErrNotFound", err)
	}
	if _, err := s.Player(ctx, "ash"); err != nil {
		t.Errorf("Player() after battle TTL error = %v", err)
	}
}

func TestRedisStoreSubSecondTTL(t *testing.T) {
	mr := newMiniredis(t)
	s := NewRedisStore(&RedisConfig{Addr: mr.Addr(), BattleTTL: 500 * time.Millisecond})
	defer s.Close()

	ctx := context.Background()
	p := newTestPlayer(t, "ash")
	b := newTestBattle(t, p)
	if err := s.SaveBattle(ctx, "ash", b); err != nil {
		t.Fatalf("SaveBattle() error = %v", err)
	}
	if ttl := mr.TTL("pkmn:battle:ash"); ttl != 500*time.Millisecond {
		t.Errorf("battle TTL = %v, want 500ms", ttl)
	}

	if err := s.SaveTurn(ctx, p, b); err != nil {
		t.Fatalf("SaveTurn() error = %v", err)
	}
	if ttl := mr.TTL("pkmn:battle:ash"); ttl != 500*time.Millisecond {
		t.Errorf("battle TTL after SaveTurn = %v, want 500ms", ttl)
	}
	if ttl := mr.TTL("pkmn:player:ash"); ttl != 0 {
		t.Errorf("player TTL = %v, want none", ttl)
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr := newMiniredis(t)
	addr := mr.Addr()
	mr.Close()

	s := NewRedisStore(&RedisConfig{Addr: addr})
	defer s.Close()

	if err := s.Ping(context.Background()); err == nil {
		t.Error("Ping() against a stopped server should fail")
	}
	if _, err := s.Player(context.Background(), "ash"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Player() error = %v, want a connection error", err)
	}
}

func TestOpen(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	store, closeFn, err := Open(ctx, &RedisConfig{}, logger)
	if err != nil {
		t.Fatalf("Open(no addr) error = %v", err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Errorf("Open(no addr) = %T, want *MemoryStore", store)
	}
	closeFn()

	mr := newMiniredis(t)
	store, closeFn, err = Open(ctx, &RedisConfig{Addr: mr.Addr()}, logger)
	if err != nil {
		t.Fatalf("Open(redis) error = %v", err)
	}
	if _, ok := store.(*RedisStore); !ok {
		t.Errorf("Open(redis) = %T, want *RedisStore", store)
	}
	closeFn()
}

func TestLoadRedisConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6380")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("PKMN_BATTLE_TTL", "30m")

	cfg, err := LoadRedisConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadRedisConfigFromEnv() error = %v", err)
	}
	want := RedisConfig{Addr: "localhost:6380", Password: "secret", DB: 2, BattleTTL: 30 * time.Minute, Prefix: DefaultPrefix}
	if *cfg != want {
		t.Errorf("LoadRedisConfigFromEnv() = %+v, want %+v", *cfg, want)
	}

	for _, tt := range []struct{ key, value string }{
		{"REDIS_DB", "two"},
		{"PKMN_BATTLE_TTL", "soon"},
		{"PKMN_BATTLE_TTL", "-1m"},
		{"PKMN_BATTLE_TTL", "500us"},
	} {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadRedisConfigFromEnv(); err == nil {
				t.Errorf("LoadRedisConfigFromEnv() with %s=%q should fail", tt.key, tt.value)
			}
		})
	}
}
