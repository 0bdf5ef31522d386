package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garyburd/redigo/redis"

	"github.com/samdwyer/pkmnbot/internal/battle"
	"github.com/samdwyer/pkmnbot/internal/entity"
)

// RedisStore keeps sessions in Redis as JSON strings.
type RedisStore struct {
	pool      *redis.Pool
	keys      keys
	battleTTL time.Duration
}

// NewRedisStore creates a store backed by a connection pool. Connections are
// dialled lazily.
func NewRedisStore(cfg *RedisConfig) *RedisStore {
	return &RedisStore{
		pool:      newPool(cfg.Addr, cfg.Password, cfg.DB),
		keys:      keys{prefix: cfg.prefix()},
		battleTTL: cfg.BattleTTL,
	}
}

func newPool(server, password string, db int) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     16,
		MaxActive:   64,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			c, err := redis.Dial("tcp", server)
			if err != nil {
				return nil, err
			}
			if password != "" {
				if _, err := c.Do("AUTH", password); err != nil {
					c.Close()
					return nil, err
				}
			}
			if _, err := c.Do("SELECT", db); err != nil {
				c.Close()
				return nil, err
			}
			return c, nil
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// Ping checks that Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conn := s.pool.Get()
	defer conn.Close()

	if _, err := conn.Do("PING"); err != nil {
		return fmt.Errorf("redis PING failed: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.pool.Close()
}

func (s *RedisStore) get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conn := s.pool.Get()
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", key))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis GET failed: %w", err)
	}
	return data, nil
}

func (s *RedisStore) set(ctx context.Context, key string, v any, expiration time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encode(v)
	if err != nil {
		return err
	}

	conn := s.pool.Get()
	defer conn.Close()

	if _, err := conn.Do("SET", setArgs(key, data, expiration)...); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}
	return nil
}

// setArgs builds SET arguments with a millisecond expiry when expiration is
// positive.
func setArgs(key string, data []byte, expiration time.Duration) []any {
	if expiration > 0 {
		return []any{key, data, "PX", expiration.Milliseconds()}
	}
	return []any{key, data}
}

// Player loads a player.
func (s *RedisStore) Player(ctx context.Context, userID string) (*entity.Player, error) {
	data, err := s.get(ctx, s.keys.player(userID))
	if err != nil {
		return nil, err
	}
	return decodePlayer(data)
}

// SavePlayer stores a player under its ID. Players never expire.
func (s *RedisStore) SavePlayer(ctx context.Context, p *entity.Player) error {
	return s.set(ctx, s.keys.player(p.ID), p, 0)
}

// Battle loads the live battle of a user.
func (s *RedisStore) Battle(ctx context.Context, userID string) (*battle.Battle, error) {
	data, err := s.get(ctx, s.keys.battle(userID))
	if err != nil {
		return nil, err
	}
	return decodeBattle(data)
}

// SaveBattle stores the live battle of a user. Each save refreshes the TTL.
func (s *RedisStore) SaveBattle(ctx context.Context, userID string, b *battle.Battle) error {
	return s.set(ctx, s.keys.battle(userID), b, s.battleTTL)
}

// DeleteBattle removes the live battle of a user.
func (s *RedisStore) DeleteBattle(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conn := s.pool.Get()
	defer conn.Close()

	if _, err := conn.Do("DEL", s.keys.battle(userID)); err != nil {
		return fmt.Errorf("redis DEL failed: %w", err)
	}
	return nil
}

// SaveTurn writes the player and the battle in one MULTI/EXEC transaction.
func (s *RedisStore) SaveTurn(ctx context.Context, p *entity.Player, b *battle.Battle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	player, err := encode(p)
	if err != nil {
		return err
	}
	var live []byte
	if !b.Terminal() {
		if live, err = encode(b); err != nil {
			return err
		}
	}

	conn := s.pool.Get()
	defer conn.Close()

	conn.Send("MULTI")
	conn.Send("SET", setArgs(s.keys.player(p.ID), player, 0)...)
	if live == nil {
		conn.Send("DEL", s.keys.battle(p.ID))
	} else {
		conn.Send("SET", setArgs(s.keys.battle(p.ID), live, s.battleTTL)...)
	}
	replies, err := redis.Values(conn.Do("EXEC"))
	if err != nil {
		return fmt.Errorf("redis EXEC failed: %w", err)
	}
	for _, r := range replies {
		if e, ok := r.(redis.Error); ok {
			return fmt.Errorf("redis EXEC failed: %w", e)
		}
	}
	return nil
}
