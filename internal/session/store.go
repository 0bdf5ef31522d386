// Package session persists players and their live battles between chat
// interactions.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samdwyer/pkmnbot/internal/battle"
	"github.com/samdwyer/pkmnbot/internal/entity"
)

// ErrNotFound is returned when no record exists for a user.
var ErrNotFound = errors.New("session: not found")

// Store persists players and battles keyed by user ID. Values are copied on
// save and on load: mutating a loaded value has no effect until it is saved.
type Store interface {
	Player(ctx context.Context, userID string) (*entity.Player, error)
	SavePlayer(ctx context.Context, p *entity.Player) error
	Battle(ctx context.Context, userID string) (*battle.Battle, error)
	SaveBattle(ctx context.Context, userID string, b *battle.Battle) error
	DeleteBattle(ctx context.Context, userID string) error
	// SaveTurn commits a played turn: the player is saved and the battle is
	// saved, or deleted once it has ended. Both writes happen or neither does.
	SaveTurn(ctx context.Context, p *entity.Player, b *battle.Battle) error
}

// Open returns a Redis store when cfg has an address and a memory store
// otherwise.
func Open(ctx context.Context, cfg *RedisConfig, logger *slog.Logger) (Store, func() error, error) {
	if cfg == nil || cfg.Addr == "" {
		logger.Info("using in-memory session store")
		return NewMemoryStore(cfg.prefix()), func() error { return nil }, nil
	}

	store := NewRedisStore(cfg)
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr, err)
	}
	logger.Info("using redis session store", "addr", cfg.Addr, "db", cfg.DB, "battle_ttl", cfg.BattleTTL)
	return store, store.Close, nil
}

type keys struct {
	prefix string
}

func (k keys) player(userID string) string { return k.prefix + ":player:" + userID }
func (k keys) battle(userID string) string { return k.prefix + ":battle:" + userID }

func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding session value: %w", err)
	}
	return data, nil
}

func decodePlayer(data []byte) (*entity.Player, error) {
	var p entity.Player
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding player: %w", err)
	}
	return &p, nil
}

func decodeBattle(data []byte) (*battle.Battle, error) {
	var b battle.Battle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decoding battle: %w", err)
	}
	return &b, nil
}
