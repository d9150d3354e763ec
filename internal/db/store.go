package db

import (
	"encoding/json"
	"errors"
	"time"

	"sketch-party/internal/game"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store implements game.Store on top of Postgres.
type Store struct {
	conn *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{conn: conn}
}

func (s *Store) CreateGame(joinCode string, maxPlayers, maxRounds int) (game.Game, error) {
	record := Game{
		JoinCode:   joinCode,
		MaxPlayers: maxPlayers,
		MaxRounds:  maxRounds,
	}
	if err := s.conn.Create(&record).Error; err != nil {
		return game.Game{}, err
	}
	return s.GetGame(record.ID)
}

func (s *Store) GetGame(id uint) (game.Game, error) {
	var record Game
	err := s.conn.
		Preload("Players", func(conn *gorm.DB) *gorm.DB { return conn.Order("players.id") }).
		Preload("Rounds", func(conn *gorm.DB) *gorm.DB { return conn.Order("rounds.number") }).
		First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.Game{}, game.ErrGameNotFound
	}
	if err != nil {
		return game.Game{}, err
	}
	return toGame(record), nil
}

func (s *Store) FindGameByCode(joinCode string) (game.Game, error) {
	var record Game
	err := s.conn.Where("join_code = ?", joinCode).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.Game{}, game.ErrGameNotFound
	}
	if err != nil {
		return game.Game{}, err
	}
	return s.GetGame(record.ID)
}

func (s *Store) CreatePlayer(gameID uint, name string) (game.Player, error) {
	record := Player{
		GameID:   gameID,
		Name:     name,
		Token:    uuid.NewString(),
		JoinedAt: time.Now().UTC(),
	}
	if err := s.conn.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost a race against a reconnect; the existing row wins.
			var existing Player
			if lookupErr := s.conn.Where("game_id = ? AND name = ?", gameID, name).First(&existing).Error; lookupErr == nil {
				return toPlayer(existing), nil
			}
		}
		return game.Player{}, err
	}
	return toPlayer(record), nil
}

func (s *Store) UpdatePlayer(id uint, fields game.PlayerUpdate) (game.Player, error) {
	updates := map[string]any{}
	if fields.Score != nil {
		updates["score"] = *fields.Score
	}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if len(updates) > 0 {
		result := s.conn.Model(&Player{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return game.Player{}, result.Error
		}
		if result.RowsAffected == 0 {
			return game.Player{}, game.ErrPlayerNotFound
		}
	}
	var record Player
	err := s.conn.First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.Player{}, game.ErrPlayerNotFound
	}
	if err != nil {
		return game.Player{}, err
	}
	return toPlayer(record), nil
}

func (s *Store) CreateRound(gameID, drawerID uint, word string, number int) (game.Round, error) {
	record := Round{
		GameID:   gameID,
		Number:   number,
		DrawerID: drawerID,
		Word:     word,
	}
	if err := s.conn.Create(&record).Error; err != nil {
		return game.Round{}, err
	}
	return toRound(record), nil
}

func (s *Store) AppendEvent(gameID uint, eventType string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	record := Event{
		GameID:  gameID,
		Type:    eventType,
		Payload: datatypes.JSON(data),
	}
	return s.conn.Create(&record).Error
}

func toGame(record Game) game.Game {
	out := game.Game{
		ID:         record.ID,
		JoinCode:   record.JoinCode,
		MaxPlayers: record.MaxPlayers,
		MaxRounds:  record.MaxRounds,
		CreatedAt:  record.CreatedAt,
		Players:    make([]game.Player, 0, len(record.Players)),
		Rounds:     make([]game.Round, 0, len(record.Rounds)),
	}
	for _, p := range record.Players {
		out.Players = append(out.Players, toPlayer(p))
	}
	for _, r := range record.Rounds {
		out.Rounds = append(out.Rounds, toRound(r))
	}
	return out
}

func toPlayer(record Player) game.Player {
	return game.Player{
		ID:     record.ID,
		GameID: record.GameID,
		Name:   record.Name,
		Token:  record.Token,
		Score:  record.Score,
	}
}

func toRound(record Round) game.Round {
	return game.Round{
		ID:       record.ID,
		GameID:   record.GameID,
		DrawerID: record.DrawerID,
		Word:     record.Word,
		Number:   record.Number,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
