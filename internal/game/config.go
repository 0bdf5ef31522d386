package game

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. A seed of 0 means a random seed
	// will be generated.
	Seed int64

	// Level of the starter Pokémon.
	StarterLevel int `validate:"min=1,max=100"`

	// Level of every wild Pokémon.
	EncounterLevel int `validate:"min=1,max=100"`

	// Species offered by the start command.
	Starters []string `validate:"min=1,dive,required"`

	// Location ID new players start from.
	StartLocation string `validate:"required"`

	// Word chat messages must start with to reach the bot.
	Prefix string `validate:"required,alphanum"`
}

// DefaultConfig returns the Kanto starter setup.
func DefaultConfig() Config {
	return Config{
		StarterLevel:   5,
		EncounterLevel: 5,
		Starters:       []string{"Bulbizarre", "Salamèche", "Carapuce"},
		StartLocation:  "bourg-palette",
		Prefix:         "pkmn",
	}
}

// Validate checks the configuration's bounds.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}
	return nil
}

// LoadConfigFromEnv starts from DefaultConfig and overrides it with
// PKMN_SEED, PKMN_STARTER_LEVEL, PKMN_ENCOUNTER_LEVEL, PKMN_STARTERS
// (comma separated), PKMN_START_LOCATION and PKMN_PREFIX.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("PKMN_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid PKMN_SEED %q: %w", v, err)
		}
		cfg.Seed = seed
	}

	for key, dst := range map[string]*int{
		"PKMN_STARTER_LEVEL":   &cfg.StarterLevel,
		"PKMN_ENCOUNTER_LEVEL": &cfg.EncounterLevel,
	} {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return cfg, fmt.Errorf("invalid %s %q: %w", key, v, err)
			}
			*dst = n
		}
	}

	if v := os.Getenv("PKMN_STARTERS"); v != "" {
		cfg.Starters = nil
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Starters = append(cfg.Starters, name)
			}
		}
	}
	if v := os.Getenv("PKMN_START_LOCATION"); v != "" {
		cfg.StartLocation = v
	}
	if v := os.Getenv("PKMN_PREFIX"); v != "" {
		cfg.Prefix = v
	}

	return cfg, cfg.Validate()
}
