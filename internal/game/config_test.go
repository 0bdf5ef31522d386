package game

import (
	"reflect"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"starter level 0", func(c *Config) { c.StarterLevel = 0 }},
		{"encounter level 101", func(c *Config) { c.EncounterLevel = 101 }},
		{"no starters", func(c *Config) { c.Starters = nil }},
		{"blank starter", func(c *Config) { c.Starters = []string{"Carapuce", ""} }},
		{"no start location", func(c *Config) { c.StartLocation = "" }},
		{"prefix with spaces", func(c *Config) { c.Prefix = "pk mn" }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() should fail", tt.name)
		}
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PKMN_SEED", "42")
	t.Setenv("PKMN_STARTER_LEVEL", "10")
	t.Setenv("PKMN_ENCOUNTER_LEVEL", "3")
	t.Setenv("PKMN_STARTERS", "Carapuce, Salamèche ,")
	t.Setenv("PKMN_START_LOCATION", "route-1")
	t.Setenv("PKMN_PREFIX", "poke")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv() error = %v", err)
	}

	want := Config{
		Seed:           42,
		StarterLevel:   10,
		EncounterLevel: 3,
		Starters:       []string{"Carapuce", "Salamèche"},
		StartLocation:  "route-1",
		Prefix:         "poke",
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("LoadConfigFromEnv() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigFromEnvErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PKMN_SEED", "graine"},
		{"PKMN_STARTER_LEVEL", "cinq"},
		{"PKMN_ENCOUNTER_LEVEL", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfigFromEnv(); err == nil {
				t.Errorf("LoadConfigFromEnv() with %s=%q should fail", tt.key, tt.value)
			}
		})
	}
}
