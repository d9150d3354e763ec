package game

import (
	"errors"
	"testing"
)

func TestMemoryStoreCreateAndFindGame(t *testing.T) {
	store := NewMemoryStore()
	g, err := store.CreateGame("ABCDEFG", 4, 3)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if g.JoinCode != "ABCDEFG" || g.MaxPlayers != 4 || g.MaxRounds != 3 {
		t.Fatalf("unexpected game: %+v", g)
	}

	found, err := store.FindGameByCode("ABCDEFG")
	if err != nil {
		t.Fatalf("find by code: %v", err)
	}
	if found.ID != g.ID {
		t.Fatalf("found game %d, want %d", found.ID, g.ID)
	}

	if _, err := store.FindGameByCode("MISSING"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if _, err := store.CreateGame("ABCDEFG", 4, 3); err == nil {
		t.Fatal("duplicate join code accepted")
	}
}

func TestMemoryStoreCreatePlayerIsFindOrCreate(t *testing.T) {
	store := NewMemoryStore()
	g, err := store.CreateGame("ABCDEFG", 4, 3)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	first, err := store.CreatePlayer(g.ID, "ada")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if first.Token == "" {
		t.Fatal("player created without a token")
	}
	again, err := store.CreatePlayer(g.ID, "ada")
	if err != nil {
		t.Fatalf("recreate player: %v", err)
	}
	if again.ID != first.ID || again.Token != first.Token {
		t.Fatalf("recreate returned a different player: %+v vs %+v", again, first)
	}

	fresh, err := store.GetGame(g.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if len(fresh.Players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(fresh.Players))
	}
}

func TestMemoryStoreUpdatePlayerScore(t *testing.T) {
	store := NewMemoryStore()
	g, _ := store.CreateGame("ABCDEFG", 4, 3)
	p, _ := store.CreatePlayer(g.ID, "ada")

	score := 5
	updated, err := store.UpdatePlayer(p.ID, PlayerUpdate{Score: &score})
	if err != nil {
		t.Fatalf("update player: %v", err)
	}
	if updated.Score != 5 {
		t.Fatalf("expected score 5, got %d", updated.Score)
	}

	if _, err := store.UpdatePlayer(999, PlayerUpdate{Score: &score}); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestMemoryStoreRoundsAndEvents(t *testing.T) {
	store := NewMemoryStore()
	g, _ := store.CreateGame("ABCDEFG", 4, 3)
	p, _ := store.CreatePlayer(g.ID, "ada")

	r, err := store.CreateRound(g.ID, p.ID, "whale", 1)
	if err != nil {
		t.Fatalf("create round: %v", err)
	}
	if r.Number != 1 || r.DrawerID != p.ID || r.Word != "whale" {
		t.Fatalf("unexpected round: %+v", r)
	}

	if err := store.AppendEvent(g.ID, "round_started", map[string]any{"round_number": 1}); err != nil {
		t.Fatalf("append event: %v", err)
	}
	events := store.Events(g.ID)
	if len(events) != 1 || events[0].Type != "round_started" {
		t.Fatalf("unexpected events: %+v", events)
	}

	if err := store.AppendEvent(999, "x", nil); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}
