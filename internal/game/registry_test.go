package game

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func newTestRegistry(t *testing.T, store Store) *Registry {
	t.Helper()
	r := NewRegistry(store, fixedWords{word: "whale"}, "medium", nil)
	t.Cleanup(r.Shutdown)
	return r
}

func TestRegistryLookupMiss(t *testing.T) {
	r := newTestRegistry(t, NewMemoryStore())
	if _, ok := r.Lookup("NOSUCH1"); ok {
		t.Fatal("lookup of unknown code succeeded")
	}
}

func TestRegistryCreateOrGetReturnsExisting(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRegistry(t, store)
	g, err := store.CreateGame("CODE123", 4, 2)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	first := r.CreateOrGet("CODE123", g)
	second := r.CreateOrGet("CODE123", g)
	if first != second {
		t.Fatal("CreateOrGet returned a second session for the same code")
	}
	found, ok := r.Lookup("CODE123")
	if !ok || found != first {
		t.Fatal("Lookup did not return the registered session")
	}
}

func TestRegistryConcurrentCreateSingleWinner(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRegistry(t, store)
	g, err := store.CreateGame("RACE456", 4, 2)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	const callers = 32
	sessions := make([]*Session, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i] = r.CreateOrGet("RACE456", g)
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if sessions[i] != sessions[0] {
			t.Fatalf("caller %d got a different session", i)
		}
	}
}

func TestRegistryIndependentSessions(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRegistry(t, store)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		code := fmt.Sprintf("GAME%03d", i)
		g, err := store.CreateGame(code, 4, 2)
		if err != nil {
			t.Fatalf("create game %s: %v", code, err)
		}
		sess := r.CreateOrGet(code, g)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := sess.Join("ada"); err != nil {
				t.Errorf("join %s: %v", sess.JoinCode(), err)
			}
			if _, err := sess.StartRound(); err != nil {
				t.Errorf("start %s: %v", sess.JoinCode(), err)
			}
		}()
	}
	wg.Wait()
}

func TestRegistryShutdownStopsSessions(t *testing.T) {
	store := NewMemoryStore()
	r := NewRegistry(store, fixedWords{word: "whale"}, "medium", nil)
	g, err := store.CreateGame("STOP789", 4, 2)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	sess := r.CreateOrGet("STOP789", g)

	r.Shutdown()
	<-sess.done
	if _, err := sess.Join("ada"); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed after shutdown, got %v", err)
	}
	if _, ok := r.Lookup("STOP789"); ok {
		t.Fatal("stopped session still registered")
	}
}

func TestConcurrentJoinsRespectMaxPlayers(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRegistry(t, store)
	g, err := store.CreateGame("FULL001", 3, 2)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	sess := r.CreateOrGet("FULL001", g)

	const callers = 10
	results := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = sess.Join(fmt.Sprintf("player-%d", i))
		}(i)
	}
	wg.Wait()

	joined, rejected := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			joined++
		case errors.Is(err, ErrLobbyFull):
			rejected++
		default:
			t.Fatalf("unexpected join error: %v", err)
		}
	}
	if joined != 3 || rejected != 7 {
		t.Fatalf("expected 3 joins and 7 rejections, got %d/%d", joined, rejected)
	}
}
