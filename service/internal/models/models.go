// internal/models/models.go
package models

import (
	"github.com/google/uuid"
	engine "github.com/lisajluo/aeroplane-chess/engine"
)

// Player is a seated participant of a match.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Connected bool      `json:"connected"`
}

// Client message types.
const (
	MsgPropose = "propose"
	MsgSync    = "sync"
)

// Server message types.
const (
	MsgState    = "state"
	MsgRejected = "rejected"
	MsgGameEnd  = "game_end"
	MsgError    = "error"
)

// ClientMessage is what a player sends over the websocket.
type ClientMessage struct {
	Type string             `json:"type"`
	Ops  []engine.Operation `json:"ops,omitempty"`
}

// PieceView is one piece as shown to clients.
type PieceView struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	Stacked  bool   `json:"stacked"`
	FaceDown bool   `json:"faceDown"`
}

// ServerMessage is what the referee sends to a player.
type ServerMessage struct {
	Type    string           `json:"type"`
	MatchID uuid.UUID        `json:"matchId"`
	State   engine.WireState `json:"state,omitempty"`
	Turn    *uuid.UUID       `json:"turn,omitempty"`
	Prompt  string           `json:"prompt,omitempty"`
	Movable []PieceView      `json:"movable,omitempty"`
	Message string           `json:"message,omitempty"`
	Winner  *uuid.UUID       `json:"winner,omitempty"`
}

// MatchCreated answers POST /matches.
type MatchCreated struct {
	MatchID uuid.UUID            `json:"matchId"`
	Players []Player             `json:"players"`
	Tokens  map[uuid.UUID]string `json:"tokens"`
}
