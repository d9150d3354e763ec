package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type wsHub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *wsHub) Add(joinCode string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[joinCode]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[joinCode] = group
	}
	group[conn] = struct{}{}
}

func (h *wsHub) Remove(joinCode string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[joinCode]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.Close()
	if len(group) == 0 {
		delete(h.groups, joinCode)
	}
}

func (h *wsHub) Broadcast(joinCode string, payload any) {
	h.mu.Lock()
	group := h.groups[joinCode]
	conns := make([]*websocket.Conn, 0, len(group))
	for conn := range group {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(joinCode, conn)
		}
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	joinCode := r.PathValue("code")
	if _, err := s.session(joinCode); err != nil {
		http.NotFound(w, r)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	s.ws.Add(joinCode, conn)

	// Clients only listen; drain until the peer goes away.
	go func() {
		defer s.ws.Remove(joinCode, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcast fans an event out to the game's websocket subscribers and mirrors
// it to the event log. The log is best-effort observability; a failed append
// never fails the request that produced the event.
func (s *Server) broadcast(gameID uint, joinCode string, payload EventPayload) {
	s.ws.Broadcast(joinCode, payload)
	if err := s.store.AppendEvent(gameID, payload.Type, payload.asMap()); err != nil {
		s.logger.Warn("event append failed",
			zap.String("join_code", joinCode),
			zap.String("event", payload.Type),
			zap.Error(err))
	}
}
