package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// ErrSessionClosed is returned for operations issued after Stop.
var ErrSessionClosed = errors.New("session closed")

// Session is the exclusive owner of one game's live state. All operations go
// through the requests channel into a single consumer loop, so they execute
// strictly one at a time; the state fields below are only ever touched by
// that loop. A request is processed to completion, store calls included,
// before the next one is admitted.
type Session struct {
	code       string
	store      Store
	words      WordSource
	difficulty string
	rng        *rand.Rand

	requests chan any
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	game    Game
	current *Round
	joined  []uint              // join order, used for rotation tie-breaks
	drawn   map[uint]struct{}   // drawers since the last rotation reset
	guessed map[uint]struct{}   // correct guessers in the current round
}

// Snapshot is a copy of the session's state, safe to read outside the actor.
type Snapshot struct {
	Game        Game
	RoundActive bool
	Round       *Round
	Joined      []uint
}

// NewSession builds a session around an initial game snapshot. A nil rng gets
// a time-seeded one; tests pass a fixed seed for deterministic rotation. The
// session does not process requests until Run is started.
func NewSession(g Game, store Store, words WordSource, difficulty string, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	}
	return &Session{
		code:       g.JoinCode,
		store:      store,
		words:      words,
		difficulty: difficulty,
		rng:        rng,
		// Unbuffered: a send that succeeds is guaranteed a reply, because the
		// loop replies before it can observe quit.
		requests: make(chan any),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		game:     g,
		drawn:    make(map[uint]struct{}),
		guessed:  make(map[uint]struct{}),
	}
}

// JoinCode returns the public code addressing this session.
func (s *Session) JoinCode() string { return s.code }

// Run consumes requests until Stop is called. It must run in exactly one
// goroutine, started by whoever registered the session.
func (s *Session) Run() {
	defer close(s.done)
	for {
		select {
		case req := <-s.requests:
			switch r := req.(type) {
			case joinRequest:
				r.reply <- s.handleJoin(r.name)
			case startRequest:
				r.reply <- s.handleStartRound()
			case endRequest:
				r.reply <- s.handleEndRound()
			case guessRequest:
				r.reply <- s.handleGuess(r.playerID, r.text)
			case snapshotRequest:
				r.reply <- s.handleSnapshot()
			}
		case <-s.quit:
			return
		}
	}
}

// Stop shuts the session down. In-flight requests get ErrSessionClosed.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
}

type joinRequest struct {
	name  string
	reply chan joinReply
}

type joinReply struct {
	player Player
	err    error
}

type startRequest struct {
	reply chan startReply
}

type startReply struct {
	round Round
	err   error
}

type endRequest struct {
	reply chan endReply
}

type endReply struct {
	game Game
	err  error
}

type guessRequest struct {
	playerID uint
	text     string
	reply    chan guessReply
}

type guessReply struct {
	correct bool
	err     error
}

type snapshotRequest struct {
	reply chan Snapshot
}

// Join adds a player by nickname, or reconnects an existing one. Reconnecting
// is idempotent: the same player comes back and the lobby does not grow.
func (s *Session) Join(name string) (Player, error) {
	req := joinRequest{name: name, reply: make(chan joinReply, 1)}
	select {
	case s.requests <- req:
	case <-s.done:
		return Player{}, ErrSessionClosed
	}
	r := <-req.reply
	return r.player, r.err
}

// StartRound begins a new round, picking the drawer and a secret word.
func (s *Session) StartRound() (Round, error) {
	req := startRequest{reply: make(chan startReply, 1)}
	select {
	case s.requests <- req:
	case <-s.done:
		return Round{}, ErrSessionClosed
	}
	r := <-req.reply
	return r.round, r.err
}

// EndRound returns the session to idle and hands back a fresh game snapshot.
// Ending an already-idle session is a no-op, not an error.
func (s *Session) EndRound() (Game, error) {
	req := endRequest{reply: make(chan endReply, 1)}
	select {
	case s.requests <- req:
	case <-s.done:
		return Game{}, ErrSessionClosed
	}
	r := <-req.reply
	return r.game, r.err
}

// Guess judges a guess against the current round's word. While idle every
// guess is judged incorrect without error. A player's first correct guess in
// a round scores one point; repeats in the same round are judged but never
// re-awarded.
func (s *Session) Guess(playerID uint, text string) (bool, error) {
	req := guessRequest{playerID: playerID, text: text, reply: make(chan guessReply, 1)}
	select {
	case s.requests <- req:
	case <-s.done:
		return false, ErrSessionClosed
	}
	r := <-req.reply
	return r.correct, r.err
}

// State returns a copy of the session's current state.
func (s *Session) State() (Snapshot, error) {
	req := snapshotRequest{reply: make(chan Snapshot, 1)}
	select {
	case s.requests <- req:
	case <-s.done:
		return Snapshot{}, ErrSessionClosed
	}
	return <-req.reply, nil
}

// Handlers below run on the actor loop. None of them mutate session state
// until every store and word-source call has succeeded, so a failed request
// leaves the session exactly as it was.

func (s *Session) handleJoin(name string) joinReply {
	if len(s.joined) >= s.game.MaxPlayers {
		return joinReply{err: ErrLobbyFull}
	}

	player, known := s.game.PlayerByName(name)
	if !known {
		created, err := s.store.CreatePlayer(s.game.ID, name)
		if err != nil {
			return joinReply{err: fmt.Errorf("create player: %w", err)}
		}
		player = created
	}
	fresh, err := s.store.GetGame(s.game.ID)
	if err != nil {
		return joinReply{err: fmt.Errorf("refresh game: %w", err)}
	}

	s.game = fresh
	if !containsID(s.joined, player.ID) {
		s.joined = append(s.joined, player.ID)
	}
	if current, ok := fresh.PlayerByID(player.ID); ok {
		player = current
	}
	return joinReply{player: player}
}

func (s *Session) handleStartRound() startReply {
	if s.current != nil {
		return startReply{err: ErrRoundInProgress}
	}
	if len(s.game.Rounds) >= s.game.MaxRounds {
		return startReply{err: ErrAllRoundsPlayed}
	}
	if len(s.joined) == 0 {
		return startReply{err: ErrPlayerNotFound}
	}

	drawer, nextDrawn := SelectDrawer(s.rng, s.drawn, s.joined)
	word, err := s.words.NextWord(s.difficulty)
	if err != nil {
		return startReply{err: fmt.Errorf("next word: %w", err)}
	}
	round, err := s.store.CreateRound(s.game.ID, drawer, word, len(s.game.Rounds)+1)
	if err != nil {
		return startReply{err: fmt.Errorf("create round: %w", err)}
	}
	fresh, err := s.store.GetGame(s.game.ID)
	if err != nil {
		return startReply{err: fmt.Errorf("refresh game: %w", err)}
	}

	s.game = fresh
	s.current = &round
	s.drawn = nextDrawn
	s.guessed = make(map[uint]struct{})
	return startReply{round: round}
}

func (s *Session) handleEndRound() endReply {
	fresh, err := s.store.GetGame(s.game.ID)
	if err != nil {
		return endReply{err: fmt.Errorf("refresh game: %w", err)}
	}

	s.game = fresh
	s.current = nil
	s.guessed = make(map[uint]struct{})
	return endReply{game: copyGame(fresh)}
}

func (s *Session) handleGuess(playerID uint, text string) guessReply {
	if s.current == nil {
		return guessReply{correct: false}
	}
	if !containsID(s.joined, playerID) {
		return guessReply{err: ErrPlayerNotFound}
	}

	correct := GuessCorrect(text, s.current.Word)
	if _, already := s.guessed[playerID]; already {
		return guessReply{correct: correct}
	}
	if !correct {
		return guessReply{correct: false}
	}

	player, ok := s.game.PlayerByID(playerID)
	if !ok {
		return guessReply{err: ErrPlayerNotFound}
	}
	score := player.Score + 1
	updated, err := s.store.UpdatePlayer(playerID, PlayerUpdate{Score: &score})
	if err != nil {
		return guessReply{err: fmt.Errorf("award point: %w", err)}
	}

	s.guessed[playerID] = struct{}{}
	for i := range s.game.Players {
		if s.game.Players[i].ID == playerID {
			s.game.Players[i] = updated
			break
		}
	}
	return guessReply{correct: true}
}

func (s *Session) handleSnapshot() Snapshot {
	snap := Snapshot{
		Game:        copyGame(s.game),
		RoundActive: s.current != nil,
		Joined:      append([]uint(nil), s.joined...),
	}
	if s.current != nil {
		round := *s.current
		snap.Round = &round
	}
	return snap
}

func containsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func copyGame(g Game) Game {
	out := g
	out.Players = append([]Player(nil), g.Players...)
	out.Rounds = append([]Round(nil), g.Rounds...)
	return out
}
