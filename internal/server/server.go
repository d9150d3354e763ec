package server

import (
	"net/http"

	"sketch-party/internal/config"
	"sketch-party/internal/game"

	"go.uber.org/zap"
)

type Server struct {
	store    game.Store
	registry *game.Registry
	ws       *wsHub
	cfg      config.Config
	logger   *zap.Logger
}

func New(store game.Store, registry *game.Registry, cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:    store,
		registry: registry,
		ws:       newWSHub(),
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games/{code}", s.handleGameState)
	mux.HandleFunc("POST /api/games/{code}/join", s.handleJoin)
	mux.HandleFunc("POST /api/games/{code}/start", s.handleStartRound)
	mux.HandleFunc("POST /api/games/{code}/end", s.handleEndRound)
	mux.HandleFunc("POST /api/games/{code}/guess", s.handleGuess)
	mux.HandleFunc("GET /ws/games/{code}", s.handleWebsocket)
	return mux
}

// session resolves a join code to its live session, starting one from the
// stored game on a registry miss. Racing callers converge on the session
// that registered first.
func (s *Server) session(joinCode string) (*game.Session, error) {
	if sess, ok := s.registry.Lookup(joinCode); ok {
		return sess, nil
	}
	g, err := s.store.FindGameByCode(joinCode)
	if err != nil {
		return nil, err
	}
	return s.registry.CreateOrGet(joinCode, g), nil
}
