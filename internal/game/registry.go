package game

import (
	"sync"

	"go.uber.org/zap"
)

// Registry maps join codes to live sessions. It is the only mutable state
// shared between sessions, so insert and lookup are safe under concurrent
// use; everything else belongs to exactly one session loop.
type Registry struct {
	store      Store
	words      WordSource
	difficulty string
	logger     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(store Store, words WordSource, difficulty string, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		store:      store,
		words:      words,
		difficulty: difficulty,
		logger:     logger,
		sessions:   make(map[string]*Session),
	}
}

// Lookup returns the live session for a join code, if one is running.
func (r *Registry) Lookup(joinCode string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[joinCode]
	return s, ok
}

// CreateOrGet registers a session for the join code, or returns the one that
// got there first. Concurrent callers racing on the same code all receive the
// single winning session; losing candidates are never constructed, so there
// is nothing to discard.
func (r *Registry) CreateOrGet(joinCode string, g Game) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[joinCode]; ok {
		return existing
	}
	s := NewSession(g, r.store, r.words, r.difficulty, nil)
	r.sessions[joinCode] = s
	go s.Run()
	r.logger.Info("game session started",
		zap.String("join_code", joinCode),
		zap.Uint("game_id", g.ID))
	return s
}

// Shutdown stops every live session. Sessions are otherwise kept for the
// process lifetime; there is no idle reaping.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for code, s := range r.sessions {
		s.Stop()
		delete(r.sessions, code)
	}
	r.logger.Info("session registry shut down")
}
