package game

import "time"

// Game is the session's cached view of a persisted game. The Store owns the
// authoritative rows; the session refreshes this snapshot after every
// successful mutating operation.
type Game struct {
	ID         uint
	JoinCode   string
	MaxPlayers int
	MaxRounds  int
	CreatedAt  time.Time
	Players    []Player
	Rounds     []Round
}

type Player struct {
	ID     uint
	GameID uint
	Name   string
	Token  string
	Score  int
}

type Round struct {
	ID       uint
	GameID   uint
	DrawerID uint
	Word     string
	Number   int
}

// PlayerByName returns the game's player with the given nickname, exact match.
func (g *Game) PlayerByName(name string) (Player, bool) {
	for _, p := range g.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

func (g *Game) PlayerByID(id uint) (Player, bool) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
