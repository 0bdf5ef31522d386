package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/samdwyer/pkmnbot/internal/world"
)

// HandleCommand runs a chat message such as "pkmn explore". It returns false
// if the message is not addressed to the bot. Errors are turned into
// ephemeral replies.
func (g *Game) HandleCommand(ctx context.Context, userID, text string) (Reply, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.EqualFold(fields[0], g.cfg.Prefix) {
		return Reply{}, false
	}

	var cmd, arg string
	if len(fields) > 1 {
		cmd = strings.ToLower(fields[1])
		arg = strings.Join(fields[2:], " ")
	}

	var (
		reply Reply
		err   error
	)
	switch cmd {
	case "", "help":
		reply = g.Help()
	case "start":
		if arg != "" {
			reply, err = g.ChooseStarter(ctx, userID, arg)
		} else {
			reply, err = g.Start(ctx, userID)
		}
	case "explore":
		reply, err = g.Explore(ctx, userID)
	case "status":
		reply, err = g.Status(ctx, userID)
	case "go":
		reply, err = g.Travel(ctx, userID, arg)
	case "search":
		reply, err = g.SearchWild(ctx, userID)
	case "fight":
		reply, err = g.Fight(ctx, userID)
	case "attack":
		reply, err = g.Attack(ctx, userID, arg)
	case "flee":
		reply, err = g.Flee(ctx, userID)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	return g.finish(userID, "command "+cmd, reply, err), true
}

// HandleButton runs a button press. Errors are turned into ephemeral replies.
func (g *Game) HandleButton(ctx context.Context, userID, id string) Reply {
	var (
		reply Reply
		err   error
	)
	switch {
	case id == ButtonFight:
		reply, err = g.Fight(ctx, userID)
	case id == ButtonFlee:
		reply, err = g.Flee(ctx, userID)
	case id == ButtonExplore:
		reply, err = g.Explore(ctx, userID)
	case id == ButtonStatus:
		reply, err = g.Status(ctx, userID)
	case strings.HasPrefix(id, AttackPrefix):
		reply, err = g.Attack(ctx, userID, strings.TrimPrefix(id, AttackPrefix))
	case strings.HasPrefix(id, world.RoutePrefix):
		dest, _ := world.ParseRouteButton(id)
		reply, err = g.Travel(ctx, userID, dest)
	case g.starter(id) != nil:
		reply, err = g.ChooseStarter(ctx, userID, id)
	default:
		reply, err = g.DoAction(ctx, userID, id)
	}
	return g.finish(userID, "button "+id, reply, err)
}

// Help lists the chat commands.
func (g *Game) Help() Reply {
	p := g.cfg.Prefix
	return Reply{
		Ephemeral: true,
		Lines: []string{
			"Commandes disponibles :",
			p + " start : commencer l'aventure",
			p + " explore : explorer les environs",
			p + " status : voir ton équipe",
			p + " go <lieu> : voyager",
			p + " search : chercher des Pokémon sauvages",
			p + " attack <attaque> : attaquer pendant un combat",
			p + " flee : fuir un combat",
		},
	}
}

func (g *Game) finish(userID, action string, reply Reply, err error) Reply {
	if err == nil {
		return reply
	}

	if userError(err) {
		g.logger.Debug("action rejected", "user", userID, "action", action, "error", err)
	} else {
		g.logger.Error("action failed", "user", userID, "action", action, "error", err)
	}
	return Reply{
		Lines:     []string{userMessage(err)},
		Ephemeral: true,
	}
}
