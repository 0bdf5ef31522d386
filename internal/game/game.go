package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/pkmnbot/internal/battle"
	"github.com/samdwyer/pkmnbot/internal/entity"
	"github.com/samdwyer/pkmnbot/internal/gamedata"
	"github.com/samdwyer/pkmnbot/internal/session"
	"github.com/samdwyer/pkmnbot/internal/telemetry"
	"github.com/samdwyer/pkmnbot/internal/world"
)

// Game holds everything shared between users. Per-user state lives in the
// session store.
type Game struct {
	cfg      Config
	catalog  *gamedata.Catalog
	world    *world.Map
	store    session.Store
	resolver *battle.Resolver
	rng      battle.Rand
	locks    *userLocks
	logger   *slog.Logger
}

// New creates a game. The configured starters and start location are checked
// against the catalog.
func New(ctx context.Context, cfg Config, catalog *gamedata.Catalog, store session.Store, logger *slog.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m, err := world.NewMap(ctx, catalog.Locations, catalog.Species)
	if err != nil {
		return nil, fmt.Errorf("building map: %w", err)
	}
	if _, err := m.Get(cfg.StartLocation); err != nil {
		return nil, fmt.Errorf("start location: %w", err)
	}
	for _, name := range cfg.Starters {
		def, err := catalog.Species.Get(name)
		if err != nil {
			return nil, fmt.Errorf("starter: %w", err)
		}
		if _, err := entity.NewPokemon(def, cfg.StarterLevel, catalog.Moves); err != nil {
			return nil, fmt.Errorf("starter: %w", err)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Game{
		cfg:      cfg,
		catalog:  catalog,
		world:    m,
		store:    store,
		resolver: battle.NewResolver(catalog.Types.Chart),
		rng:      &lockedRand{rng: rand.New(rand.NewSource(seed))},
		locks:    newUserLocks(),
		logger:   logger,
	}, nil
}

// Config returns the configuration the game runs with.
func (g *Game) Config() Config {
	return g.cfg
}

// run executes one action while holding the user's lock.
func (g *Game) run(ctx context.Context, action, userID string, fn func(context.Context) (Reply, error)) (Reply, error) {
	unlock := g.locks.lock(userID)
	defer unlock()

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.action")
	defer span.End()

	span.SetAttributes(
		attribute.String("action", action),
		attribute.String("user", userID),
	)

	reply, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Reply{}, err
	}
	span.SetAttributes(attribute.String("state", reply.State.String()))
	return reply, nil
}

// =============================================================================
// Adventure
// =============================================================================

// Start offers the starters to a new user.
func (g *Game) Start(ctx context.Context, userID string) (Reply, error) {
	return g.run(ctx, "start", userID, func(ctx context.Context) (Reply, error) {
		if err := g.ensureNew(ctx, userID); err != nil {
			return Reply{}, err
		}

		reply := Reply{
			State: StateNew,
			Lines: []string{"Bienvenue dans le monde des Pokémon !", "Choisis ton premier Pokémon :"},
		}
		for _, name := range g.cfg.Starters {
			def := g.catalog.Species.GetByName(name)
			reply.Buttons = append(reply.Buttons, Button{ID: gamedata.ButtonKey(def.Name), Label: def.Name})
		}
		return reply, nil
	})
}

// ChooseStarter creates the user's player with the named starter.
func (g *Game) ChooseStarter(ctx context.Context, userID, name string) (Reply, error) {
	return g.run(ctx, "choose_starter", userID, func(ctx context.Context) (Reply, error) {
		if err := g.ensureNew(ctx, userID); err != nil {
			return Reply{}, err
		}

		def := g.starter(name)
		if def == nil {
			return Reply{}, &gamedata.LookupError{Kind: "starter", Key: name}
		}
		starter, err := entity.NewPokemon(def, g.cfg.StarterLevel, g.catalog.Moves)
		if err != nil {
			return Reply{}, err
		}

		player := entity.NewPlayer(userID, g.cfg.StartLocation, starter)
		if err := g.store.SavePlayer(ctx, player); err != nil {
			return Reply{}, err
		}
		g.logger.Info("adventure started", "user", userID, "starter", starter.Species)

		loc, err := g.world.Get(player.Location)
		if err != nil {
			return Reply{}, err
		}
		reply := g.exploreReply(loc)
		reply.Lines = append([]string{fmt.Sprintf("Tu as choisi %s ! Ton aventure commence à %s.", starter.Species, loc.Name)}, reply.Lines...)
		reply.Sprite = starter.Dex
		return reply, nil
	})
}

// Explore describes the player's location with its actions and routes.
func (g *Game) Explore(ctx context.Context, userID string) (Reply, error) {
	return g.run(ctx, "explore", userID, func(ctx context.Context) (Reply, error) {
		player, err := g.loadPlayer(ctx, userID)
		if err != nil {
			return Reply{}, err
		}
		if err := g.ensureNoBattle(ctx, userID); err != nil {
			return Reply{}, err
		}

		loc, err := g.world.Get(player.Location)
		if err != nil {
			return Reply{}, err
		}
		return g.exploreReply(loc), nil
	})
}

// Travel moves the player to a directly connected location.
func (g *Game) Travel(ctx context.Context, userID, destination string) (Reply, error) {
	return g.run(ctx, "travel", userID, func(ctx context.Context) (Reply, error) {
		player, err := g.loadPlayer(ctx, userID)
		if err != nil {
			return Reply{}, err
		}
		if err := g.ensureNoBattle(ctx, userID); err != nil {
			return Reply{}, err
		}

		loc, err := g.world.Travel(ctx, player.Location, destination)
		if err != nil {
			return Reply{}, err
		}
		player.MoveTo(loc.ID)
		if err := g.store.SavePlayer(ctx, player); err != nil {
			return Reply{}, err
		}

		reply := g.exploreReply(loc)
		reply.Lines = append([]string{fmt.Sprintf("Tu arrives à %s.", loc.Name)}, reply.Lines...)
		return reply, nil
	})
}

// DoAction performs the location action matching button.
func (g *Game) DoAction(ctx context.Context, userID, button string) (Reply, error) {
	return g.run(ctx, "action", userID, func(ctx context.Context) (Reply, error) {
		player, err := g.loadPlayer(ctx, userID)
		if err != nil {
			return Reply{}, err
		}
		if err := g.ensureNoBattle(ctx, userID); err != nil {
			return Reply{}, err
		}

		loc, err := g.world.Get(player.Location)
		if err != nil {
			return Reply{}, err
		}
		action, ok := loc.Action(button)
		if !ok {
			return Reply{}, fmt.Errorf("%w: %s at %s", ErrUnknownAction, button, loc.ID)
		}

		switch action.Kind {
		case world.ActionSearch:
			return g.searchWild(ctx, player, loc)
		case world.ActionHeal:
			player.Heal()
			if err := g.store.SavePlayer(ctx, player); err != nil {
				return Reply{}, err
			}
			g.logger.Info("team healed", "user", userID, "location", loc.ID)
		}

		reply := g.exploreReply(loc)
		reply.Lines = []string{action.Message}
		return reply, nil
	})
}

// SearchWild starts an encounter with a wild Pokémon of the player's
// location.
func (g *Game) SearchWild(ctx context.Context, userID string) (Reply, error) {
	return g.run(ctx, "search", userID, func(ctx context.Context) (Reply, error) {
		player, err := g.loadPlayer(ctx, userID)
		if err != nil {
			return Reply{}, err
		}
		if err := g.ensureNoBattle(ctx, userID); err != nil {
			return Reply{}, err
		}

		loc, err := g.world.Get(player.Location)
		if err != nil {
			return Reply{}, err
		}
		return g.searchWild(ctx, player, loc)
	})
}

func (g *Game) searchWild(ctx context.Context, player *entity.Player, loc *world.Location) (Reply, error) {
	b, err := battle.Encounter(ctx, battle.EncounterParams{
		Player: player.Active(),
		Pool:   loc.WildPool(),
		Level:  g.cfg.EncounterLevel,
		Moves:  g.catalog.Moves,
		Rand:   g.rng,
	})
	if err != nil {
		return Reply{}, err
	}
	if err := g.store.SaveBattle(ctx, player.ID, b); err != nil {
		return Reply{}, err
	}
	g.logger.Info("wild encounter", "user", player.ID, "battle_id", b.ID, "wild", b.Wild.Species, "location", loc.ID)

	return Reply{
		State:  StateBattle,
		Lines:  []string{fmt.Sprintf("Un %s sauvage (Nv. %d) apparaît !", b.Wild.Species, b.Wild.Level)},
		Battle: newBattleView(b),
		Sprite: b.Wild.Dex,
		Buttons: []Button{
			{ID: ButtonFight, Label: "Combattre"},
			{ID: ButtonFlee, Label: "Fuir"},
		},
	}, nil
}

// Status summarises the player's team and whereabouts.
func (g *Game) Status(ctx context.Context, userID string) (Reply, error) {
	return g.run(ctx, "status", userID, func(ctx context.Context) (Reply, error) {
		player, err := g.loadPlayer(ctx, userID)
		if err != nil {
			return Reply{}, err
		}
		loc, err := g.world.Get(player.Location)
		if err != nil {
			return Reply{}, err
		}

		reply := Reply{
			State: StateExplore,
			Lines: []string{fmt.Sprintf("Position : %s", loc.Name)},
		}
		for _, p := range player.Team {
			reply.Team = append(reply.Team, newPokemonView(p))
		}

		b, err := g.store.Battle(ctx, userID)
		switch {
		case err == nil:
			reply.State = StateBattle
			reply.Battle = newBattleView(b)
			reply.Lines = append(reply.Lines, fmt.Sprintf("En combat contre un %s sauvage.", b.Wild.Species))
		case !errors.Is(err, session.ErrNotFound):
			return Reply{}, err
		}
		return reply, nil
	})
}

// =============================================================================
// Battle
// =============================================================================

// Fight confirms the user wants to battle and offers their moves.
func (g *Game) Fight(ctx context.Context, userID string) (Reply, error) {
	return g.run(ctx, "fight", userID, func(ctx context.Context) (Reply, error) {
		b, err := g.loadBattle(ctx, userID)
		if err != nil {
			return Reply{}, err
		}
		if err := b.Fight(); err != nil {
			return Reply{}, err
		}
		if err := g.store.SaveBattle(ctx, userID, b); err != nil {
			return Reply{}, err
		}
		return battleReply(b, []string{fmt.Sprintf("Que doit faire %s ?", b.Player.Species)}), nil
	})
}

// Attack plays one turn with the named move. The move may be given by name
// or by its button key.
func (g *Game) Attack(ctx context.Context, userID, move string) (Reply, error) {
	return g.run(ctx, "attack", userID, func(ctx context.Context) (Reply, error) {
		player, err := g.loadPlayer(ctx, userID)
		if err != nil {
			return Reply{}, err
		}
		b, err := g.loadBattle(ctx, userID)
		if err != nil {
			return Reply{}, err
		}

		name := move
		if b.Player.FindMove(move) == nil {
			if m := b.Player.FindMoveByButton(move); m != nil {
				name = m.Name
			}
		}

		result, err := g.resolver.ResolveTurn(ctx, b, name, g.rng, g.rng)
		if err != nil {
			return Reply{}, err
		}

		// The stored battle holds its own copy of the active Pokémon
		player.Team[0] = b.Player
		if err := g.store.SaveTurn(ctx, player, b); err != nil {
			return Reply{}, err
		}

		if !result.Terminal {
			return battleReply(b, result.Messages), nil
		}
		g.logger.Info("battle ended", "user", userID, "battle_id", b.ID, "outcome", b.Phase, "turns", b.Turns)
		return endReply(b, result.Messages), nil
	})
}

// Flee ends the user's battle.
func (g *Game) Flee(ctx context.Context, userID string) (Reply, error) {
	return g.run(ctx, "flee", userID, func(ctx context.Context) (Reply, error) {
		b, err := g.loadBattle(ctx, userID)
		if err != nil {
			return Reply{}, err
		}
		result, err := b.Flee(ctx)
		if err != nil {
			return Reply{}, err
		}
		if err := g.store.DeleteBattle(ctx, userID); err != nil {
			return Reply{}, err
		}
		g.logger.Info("battle ended", "user", userID, "battle_id", b.ID, "outcome", b.Phase, "turns", b.Turns)
		return endReply(b, result.Messages), nil
	})
}

// =============================================================================
// Helpers
// =============================================================================

func (g *Game) loadPlayer(ctx context.Context, userID string) (*entity.Player, error) {
	p, err := g.store.Player(ctx, userID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrNotStarted
	}
	return p, err
}

func (g *Game) loadBattle(ctx context.Context, userID string) (*battle.Battle, error) {
	b, err := g.store.Battle(ctx, userID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, battle.ErrNoBattle
	}
	return b, err
}

func (g *Game) ensureNew(ctx context.Context, userID string) error {
	_, err := g.store.Player(ctx, userID)
	switch {
	case err == nil:
		return ErrAlreadyStarted
	case errors.Is(err, session.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (g *Game) ensureNoBattle(ctx context.Context, userID string) error {
	_, err := g.store.Battle(ctx, userID)
	switch {
	case err == nil:
		return battle.ErrBattleInProgress
	case errors.Is(err, session.ErrNotFound):
		return nil
	default:
		return err
	}
}

// starter returns the configured starter matching name or button id.
func (g *Game) starter(name string) *gamedata.SpeciesDef {
	key := gamedata.ButtonKey(name)
	for _, s := range g.cfg.Starters {
		if gamedata.ButtonKey(s) == key {
			return g.catalog.Species.GetByName(s)
		}
	}
	return nil
}

func (g *Game) exploreReply(loc *world.Location) Reply {
	reply := Reply{
		State: StateExplore,
		Lines: []string{loc.Name, loc.Description},
	}
	for _, a := range loc.Actions() {
		reply.Buttons = append(reply.Buttons, Button{ID: a.Button(), Label: a.Label})
	}
	for _, id := range loc.Routes {
		label := id
		if dest, err := g.world.Get(id); err == nil {
			label = dest.Name
		}
		reply.Buttons = append(reply.Buttons, Button{ID: world.RouteButton(id), Label: "Aller à " + label})
	}
	return reply
}

func battleReply(b *battle.Battle, lines []string) Reply {
	reply := Reply{
		State:  StateBattle,
		Lines:  lines,
		Battle: newBattleView(b),
		Sprite: b.Wild.Dex,
	}
	for _, m := range reply.Battle.Player.Moves {
		reply.Buttons = append(reply.Buttons, Button{ID: m.Button, Label: fmt.Sprintf("%s (%d/%d)", m.Name, m.PP, m.MaxPP)})
	}
	reply.Buttons = append(reply.Buttons, Button{ID: ButtonFlee, Label: "Fuir"})
	return reply
}

func endReply(b *battle.Battle, lines []string) Reply {
	return Reply{
		State:   StateExplore,
		Lines:   lines,
		Battle:  newBattleView(b),
		Buttons: []Button{{ID: ButtonExplore, Label: "Explorer"}},
	}
}
