package entity

// Player is a trainer and their team.
// The first Pokémon of the team is the one sent into battle.
type Player struct {
	ID       string     `json:"id"`
	Location string     `json:"location"` // Location ID
	Team     []*Pokemon `json:"team"`
}

// NewPlayer creates a player at location with a single starter.
func NewPlayer(id, location string, starter *Pokemon) *Player {
	return &Player{
		ID:       id,
		Location: location,
		Team:     []*Pokemon{starter},
	}
}

// Active returns the Pokémon at the head of the team, or nil for an empty team.
func (p *Player) Active() *Pokemon {
	if len(p.Team) == 0 {
		return nil
	}
	return p.Team[0]
}

// MoveTo updates the player's location.
func (p *Player) MoveTo(location string) {
	p.Location = location
}

// Heal restores every Pokémon of the team.
func (p *Player) Heal() {
	for _, pk := range p.Team {
		pk.Restore()
	}
}
