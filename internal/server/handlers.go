package server

import (
	"errors"
	"net/http"
	"strings"

	"sketch-party/internal/game"

	"go.uber.org/zap"
)

type createGameRequest struct {
	MaxPlayers int `json:"max_players"`
	MaxRounds  int `json:"max_rounds"`
}

type joinGameRequest struct {
	Name string `json:"name"`
}

type guessGameRequest struct {
	PlayerID uint   `json:"player_id"`
	Guess    string `json:"guess"`
}

type playerResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token,omitempty"`
	Score int    `json:"score"`
}

type roundResponse struct {
	Number   int  `json:"number"`
	DrawerID uint `json:"drawer_id"`
}

type gameResponse struct {
	JoinCode     string           `json:"join_code"`
	MaxPlayers   int              `json:"max_players"`
	MaxRounds    int              `json:"max_rounds"`
	RoundsPlayed int              `json:"rounds_played"`
	RoundActive  bool             `json:"round_active"`
	Round        *roundResponse   `json:"round,omitempty"`
	Players      []playerResponse `json:"players"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MaxPlayers <= 0 {
		req.MaxPlayers = s.cfg.DefaultMaxPlayers
	}
	if req.MaxRounds <= 0 {
		req.MaxRounds = s.cfg.DefaultMaxRounds
	}

	g, err := s.store.CreateGame(newJoinCode(), req.MaxPlayers, req.MaxRounds)
	if err != nil {
		s.logger.Error("create game failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not create game")
		return
	}
	sess := s.registry.CreateOrGet(g.JoinCode, g)
	s.broadcast(g.ID, g.JoinCode, EventPayload{
		Type:     eventGameCreated,
		JoinCode: g.JoinCode,
	})
	state, err := sess.State()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read game state")
		return
	}
	writeJSON(w, http.StatusCreated, snapshotResponse(state))
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r.PathValue("code"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	state, err := sess.State()
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotResponse(state))
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	joinCode := r.PathValue("code")
	var req joinGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	sess, err := s.session(joinCode)
	if err != nil {
		s.respondError(w, err)
		return
	}
	player, err := sess.Join(name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.broadcast(player.GameID, joinCode, EventPayload{
		Type:       eventPlayerJoined,
		PlayerID:   player.ID,
		PlayerName: player.Name,
	})
	writeJSON(w, http.StatusOK, playerResponse{
		ID:    player.ID,
		Name:  player.Name,
		Token: player.Token,
		Score: player.Score,
	})
}

func (s *Server) handleStartRound(w http.ResponseWriter, r *http.Request) {
	joinCode := r.PathValue("code")
	sess, err := s.session(joinCode)
	if err != nil {
		s.respondError(w, err)
		return
	}
	round, err := sess.StartRound()
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.broadcast(round.GameID, joinCode, EventPayload{
		Type:        eventRoundStarted,
		RoundNumber: round.Number,
		DrawerID:    round.DrawerID,
	})
	// The word goes only to the caller, who relays it to the drawer.
	writeJSON(w, http.StatusOK, map[string]any{
		"number":    round.Number,
		"drawer_id": round.DrawerID,
		"word":      round.Word,
	})
}

func (s *Server) handleEndRound(w http.ResponseWriter, r *http.Request) {
	joinCode := r.PathValue("code")
	sess, err := s.session(joinCode)
	if err != nil {
		s.respondError(w, err)
		return
	}
	g, err := sess.EndRound()
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.broadcast(g.ID, joinCode, EventPayload{
		Type:        eventRoundEnded,
		RoundNumber: len(g.Rounds),
	})
	state, err := sess.State()
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotResponse(state))
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	joinCode := r.PathValue("code")
	var req guessGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := s.session(joinCode)
	if err != nil {
		s.respondError(w, err)
		return
	}
	correct, err := sess.Guess(req.PlayerID, req.Guess)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if correct {
		state, stateErr := sess.State()
		if stateErr == nil {
			payload := EventPayload{Type: eventCorrectGuess, PlayerID: req.PlayerID}
			if player, ok := state.Game.PlayerByID(req.PlayerID); ok {
				payload.PlayerName = player.Name
				payload.Score = player.Score
			}
			s.broadcast(state.Game.ID, joinCode, payload)
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"correct": correct})
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, game.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "player not found")
	case errors.Is(err, game.ErrLobbyFull):
		writeError(w, http.StatusConflict, "lobby full")
	case errors.Is(err, game.ErrRoundInProgress):
		writeError(w, http.StatusConflict, "round already started")
	case errors.Is(err, game.ErrAllRoundsPlayed):
		writeError(w, http.StatusConflict, "all rounds played")
	case errors.Is(err, game.ErrSessionClosed):
		writeError(w, http.StatusServiceUnavailable, "game session closed")
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func snapshotResponse(state game.Snapshot) gameResponse {
	out := gameResponse{
		JoinCode:     state.Game.JoinCode,
		MaxPlayers:   state.Game.MaxPlayers,
		MaxRounds:    state.Game.MaxRounds,
		RoundsPlayed: len(state.Game.Rounds),
		RoundActive:  state.RoundActive,
		Players:      make([]playerResponse, 0, len(state.Game.Players)),
	}
	if state.Round != nil {
		out.Round = &roundResponse{
			Number:   state.Round.Number,
			DrawerID: state.Round.DrawerID,
		}
	}
	for _, p := range state.Game.Players {
		out.Players = append(out.Players, playerResponse{
			ID:    p.ID,
			Name:  p.Name,
			Score: p.Score,
		})
	}
	return out
}
