package session

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultPrefix namespaces every key the stores write.
const DefaultPrefix = "pkmn"

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr      string        // Empty selects the in-memory store
	Password  string        // Sent with AUTH when set
	DB        int           // Selected on every new connection
	BattleTTL time.Duration // 0 keeps battles until they end
	Prefix    string        // Key namespace, DefaultPrefix if empty
}

// LoadRedisConfigFromEnv reads REDIS_ADDR, REDIS_PASSWORD, REDIS_DB and
// PKMN_BATTLE_TTL.
func LoadRedisConfigFromEnv() (*RedisConfig, error) {
	cfg := &RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		Prefix:   DefaultPrefix,
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", dbStr, err)
		}
		cfg.DB = db
	}

	if ttlStr := os.Getenv("PKMN_BATTLE_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PKMN_BATTLE_TTL %q: %w", ttlStr, err)
		}
		if ttl < 0 {
			return nil, fmt.Errorf("invalid PKMN_BATTLE_TTL %q: must not be negative", ttlStr)
		}
		if ttl > 0 && ttl < time.Millisecond {
			return nil, fmt.Errorf("invalid PKMN_BATTLE_TTL %q: must be at least 1ms", ttlStr)
		}
		cfg.BattleTTL = ttl
	}

	return cfg, nil
}

func (c *RedisConfig) prefix() string {
	if c == nil || c.Prefix == "" {
		return DefaultPrefix
	}
	return c.Prefix
}
