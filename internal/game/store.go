package game

import "errors"

// Business-rule failures returned by session operations. Anything else coming
// out of a session call is an opaque store or word-source failure.
var (
	ErrLobbyFull       = errors.New("lobby full")
	ErrAllRoundsPlayed = errors.New("all rounds played")
	ErrRoundInProgress = errors.New("round already started")
	ErrGameNotFound    = errors.New("game not found")
	ErrPlayerNotFound  = errors.New("player not found")
)

// PlayerUpdate lists the mutable player fields; nil means leave unchanged.
type PlayerUpdate struct {
	Score *int
	Name  *string
}

// Store is the persistence boundary for games, players and rounds. Updates
// are atomic per row; the session never asks for cross-row transactions.
type Store interface {
	CreateGame(joinCode string, maxPlayers, maxRounds int) (Game, error)
	GetGame(id uint) (Game, error)
	FindGameByCode(joinCode string) (Game, error)
	CreatePlayer(gameID uint, name string) (Player, error)
	UpdatePlayer(id uint, fields PlayerUpdate) (Player, error)
	CreateRound(gameID, drawerID uint, word string, number int) (Round, error)
	AppendEvent(gameID uint, eventType string, payload map[string]any) error
}

// WordSource supplies secret words for new rounds.
type WordSource interface {
	NextWord(difficulty string) (string, error)
}
