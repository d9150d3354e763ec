package server

const (
	eventGameCreated  = "game_created"
	eventPlayerJoined = "player_joined"
	eventRoundStarted = "round_started"
	eventRoundEnded   = "round_ended"
	eventCorrectGuess = "correct_guess"
)

// EventPayload is broadcast over the websocket hub and mirrored to the event
// log. The secret word never appears here.
type EventPayload struct {
	Type        string `json:"type"`
	JoinCode    string `json:"join_code,omitempty"`
	PlayerID    uint   `json:"player_id,omitempty"`
	PlayerName  string `json:"player,omitempty"`
	Score       int    `json:"score,omitempty"`
	RoundNumber int    `json:"round_number,omitempty"`
	DrawerID    uint   `json:"drawer_id,omitempty"`
	Players     int    `json:"players,omitempty"`
}

func (p EventPayload) asMap() map[string]any {
	out := map[string]any{"type": p.Type}
	if p.JoinCode != "" {
		out["join_code"] = p.JoinCode
	}
	if p.PlayerID != 0 {
		out["player_id"] = p.PlayerID
	}
	if p.PlayerName != "" {
		out["player"] = p.PlayerName
	}
	if p.Score != 0 {
		out["score"] = p.Score
	}
	if p.RoundNumber != 0 {
		out["round_number"] = p.RoundNumber
	}
	if p.DrawerID != 0 {
		out["drawer_id"] = p.DrawerID
	}
	if p.Players != 0 {
		out["players"] = p.Players
	}
	return out
}
