package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestWebsocketReceivesJoinEvent(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createGame(t, ts, 2, 1)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/games/" + created.JoinCode
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	defer conn.Close()
	// Give the server a moment to register the connection in the hub.
	time.Sleep(50 * time.Millisecond)

	joinGame(t, ts, created.JoinCode, "ada")

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	var payload EventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode broadcast: %v", err)
	}
	if payload.Type != eventPlayerJoined {
		t.Fatalf("expected %q event, got %q", eventPlayerJoined, payload.Type)
	}
	if payload.PlayerName != "ada" {
		t.Fatalf("expected player ada, got %q", payload.PlayerName)
	}
}

func TestWebsocketUnknownGame(t *testing.T) {
	ts, _ := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/games/NOSUCH1"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("expected dial to fail for unknown game")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 handshake response, got %+v", resp)
	}
}
