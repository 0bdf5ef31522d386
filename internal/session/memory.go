package session

import (
	"context"
	"sync"

	"github.com/samdwyer/pkmnbot/internal/battle"
	"github.com/samdwyer/pkmnbot/internal/entity"
)

// MemoryStore keeps sessions in process memory. Values are stored encoded so
// it behaves like the Redis store.
type MemoryStore struct {
	mu   sync.RWMutex
	keys keys
	data map[string][]byte
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore(prefix string) *MemoryStore {
	return &MemoryStore{
		keys: keys{prefix: prefix},
		data: make(map[string][]byte),
	}
}

func (s *MemoryStore) get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (s *MemoryStore) set(key string, v any) error {
	data, err := encode(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
	return nil
}

// Player loads a player.
func (s *MemoryStore) Player(_ context.Context, userID string) (*entity.Player, error) {
	data, err := s.get(s.keys.player(userID))
	if err != nil {
		return nil, err
	}
	return decodePlayer(data)
}

// SavePlayer stores a player under its ID.
func (s *MemoryStore) SavePlayer(_ context.Context, p *entity.Player) error {
	return s.set(s.keys.player(p.ID), p)
}

// Battle loads the live battle of a user.
func (s *MemoryStore) Battle(_ context.Context, userID string) (*battle.Battle, error) {
	data, err := s.get(s.keys.battle(userID))
	if err != nil {
		return nil, err
	}
	return decodeBattle(data)
}

// SaveBattle stores the live battle of a user, replacing any previous one.
func (s *MemoryStore) SaveBattle(_ context.Context, userID string, b *battle.Battle) error {
	return s.set(s.keys.battle(userID), b)
}

// DeleteBattle removes the live battle of a user. Deleting a missing battle
// is not an error.
func (s *MemoryStore) DeleteBattle(_ context.Context, userID string) error {
	s.mu.Lock()
	delete(s.data, s.keys.battle(userID))
	s.mu.Unlock()
	return nil
}

// SaveTurn stores the player and the battle under one lock.
func (s *MemoryStore) SaveTurn(_ context.Context, p *entity.Player, b *battle.Battle) error {
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

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[s.keys.player(p.ID)] = player
	if live == nil {
		delete(s.data, s.keys.battle(p.ID))
	} else {
		s.data[s.keys.battle(p.ID)] = live
	}
	return nil
}
