// Package main is the entry point for pkmnbot.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/pkmnbot/internal/game"
	"github.com/samdwyer/pkmnbot/internal/gamedata"
	"github.com/samdwyer/pkmnbot/internal/gateway"
	"github.com/samdwyer/pkmnbot/internal/session"
	"github.com/samdwyer/pkmnbot/internal/telemetry"
	"github.com/samdwyer/pkmnbot/internal/ui"
)

const honeycombEndpoint = "https://api.honeycomb.io"

func main() {
	mode := flag.String("mode", "terminal", "front-end to run: terminal or ws")
	addr := flag.String("addr", ":8080", "listen address in ws mode")
	user := flag.String("user", "", "user id in terminal mode (default: $USER)")
	logPath := flag.String("log", "", "log file (default: stderr in ws mode, none in terminal mode)")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	logger, closeLog, err := newLogger(*mode, *logPath)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, telemetryOptions())
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Bot will run without observability")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	if err := run(ctx, *mode, *addr, *user, logger); err != nil {
		stop()
		log.Fatalf("pkmnbot: %v", err)
	}
}

func run(ctx context.Context, mode, addr, user string, logger *slog.Logger) error {
	cfg, err := game.LoadConfigFromEnv()
	if err != nil {
		return fmt.Errorf("game config: %w", err)
	}
	redisCfg, err := session.LoadRedisConfigFromEnv()
	if err != nil {
		return fmt.Errorf("redis config: %w", err)
	}
	redisCfg.Prefix = cfg.Prefix

	store, closeStore, err := session.Open(ctx, redisCfg, logger)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	defer closeStore()

	catalog := gamedata.MustLoadCatalog()
	g, err := game.New(ctx, cfg, catalog, store, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}

	switch mode {
	case "terminal":
		if user == "" {
			user = os.Getenv("USER")
		}
		if user == "" {
			user = "local"
		}
		screen, err := ui.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to create screen: %w", err)
		}
		defer screen.Close()
		return ui.NewTerminal(screen, g, catalog.Types, user).Run(ctx)
	case "ws":
		return gateway.NewServer(g, logger).ListenAndServe(ctx, addr)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// newLogger builds the slog logger for mode. The terminal owns stdout and
// stderr, so it only logs to a file.
func newLogger(mode, path string) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if os.Getenv("PKMN_DEBUG") != "" {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closer := func() error { return nil }
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, f.Close
	case mode == "terminal":
		return slog.New(slog.DiscardHandler), closer, nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closer, nil
}

// telemetryOptions reads the OTLP settings, falling back to Honeycomb when
// only an API key is given.
func telemetryOptions() telemetry.Options {
	opts := telemetry.OptionsFromEnv()

	apiKey := os.Getenv("HONEYCOMB_PKMNBOT_API_KEY")
	if apiKey == "" {
		return opts
	}
	if opts.Endpoint == "" {
		opts.Endpoint = honeycombEndpoint
	}
	dataset := os.Getenv("HONEYCOMB_PKMNBOT_DATASET")
	if dataset == "" {
		dataset = "pkmnbot"
	}
	opts.Headers = map[string]string{
		"x-honeycomb-team":    apiKey,
		"x-honeycomb-dataset": dataset,
	}
	return opts
}
