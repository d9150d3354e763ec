package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps games, players and rounds in process memory. It backs
// tests and database-less runs; per-call locking gives the same atomic
// per-row update guarantee the SQL store provides.
type MemoryStore struct {
	mu           sync.Mutex
	nextGameID   uint
	nextPlayerID uint
	nextRoundID  uint
	games        map[uint]*Game
	events       map[uint][]MemoryEvent
}

type MemoryEvent struct {
	Type    string
	Payload map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextGameID:   1,
		nextPlayerID: 1,
		nextRoundID:  1,
		games:        make(map[uint]*Game),
		events:       make(map[uint][]MemoryEvent),
	}
}

func (m *MemoryStore) CreateGame(joinCode string, maxPlayers, maxRounds int) (Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.games {
		if g.JoinCode == joinCode {
			return Game{}, fmt.Errorf("join code %q already in use", joinCode)
		}
	}
	g := &Game{
		ID:         m.nextGameID,
		JoinCode:   joinCode,
		MaxPlayers: maxPlayers,
		MaxRounds:  maxRounds,
	}
	m.nextGameID++
	m.games[g.ID] = g
	return copyGame(*g), nil
}

func (m *MemoryStore) GetGame(id uint) (Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return Game{}, ErrGameNotFound
	}
	return copyGame(*g), nil
}

func (m *MemoryStore) FindGameByCode(joinCode string) (Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.games {
		if g.JoinCode == joinCode {
			return copyGame(*g), nil
		}
	}
	return Game{}, ErrGameNotFound
}

func (m *MemoryStore) CreatePlayer(gameID uint, name string) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameID]
	if !ok {
		return Player{}, ErrGameNotFound
	}
	for _, p := range g.Players {
		if p.Name == name {
			return p, nil
		}
	}
	p := Player{
		ID:     m.nextPlayerID,
		GameID: gameID,
		Name:   name,
		Token:  uuid.NewString(),
	}
	m.nextPlayerID++
	g.Players = append(g.Players, p)
	return p, nil
}

func (m *MemoryStore) UpdatePlayer(id uint, fields PlayerUpdate) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.games {
		for i := range g.Players {
			if g.Players[i].ID != id {
				continue
			}
			if fields.Score != nil {
				g.Players[i].Score = *fields.Score
			}
			if fields.Name != nil {
				g.Players[i].Name = *fields.Name
			}
			return g.Players[i], nil
		}
	}
	return Player{}, ErrPlayerNotFound
}

func (m *MemoryStore) CreateRound(gameID, drawerID uint, word string, number int) (Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameID]
	if !ok {
		return Round{}, ErrGameNotFound
	}
	r := Round{
		ID:       m.nextRoundID,
		GameID:   gameID,
		DrawerID: drawerID,
		Word:     word,
		Number:   number,
	}
	m.nextRoundID++
	g.Rounds = append(g.Rounds, r)
	return r, nil
}

func (m *MemoryStore) AppendEvent(gameID uint, eventType string, payload map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[gameID]; !ok {
		return ErrGameNotFound
	}
	m.events[gameID] = append(m.events[gameID], MemoryEvent{Type: eventType, Payload: payload})
	return nil
}

// Events returns the event log recorded for a game, oldest first.
func (m *MemoryStore) Events(gameID uint) []MemoryEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MemoryEvent(nil), m.events[gameID]...)
}
