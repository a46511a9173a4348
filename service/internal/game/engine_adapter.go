// internal/game/engine_adapter.go
package game

import (
	"fmt"

	"github.com/google/uuid"
	engine "github.com/lisajluo/aeroplane-chess/engine"
)

// playerInfos lists the seated players in engine form.
func (m *Match) playerInfos() []engine.PlayerInfo {
	infos := make([]engine.PlayerInfo, len(m.Players))
	for i, p := range m.Players {
		infos[i] = engine.PlayerInfo{ID: p.ID.String()}
	}
	return infos
}

func (m *Match) playerIDs() []string {
	ids := make([]string, len(m.Players))
	for i, p := range m.Players {
		ids[i] = p.ID.String()
	}
	return ids
}

// apply executes accepted ops: field writes go into a fresh state map, the
// service rolls the die for random-integer requests, and turn and end-game
// operations update the match. Player ids are parsed before anything changes.
// Assumes lock is held by caller.
func (m *Match) apply(ops []engine.Operation) error {
	turn, winner, over := m.Turn, m.Winner, m.GameOver
	for _, op := range ops {
		switch op.Kind {
		case engine.OpSetTurn, engine.OpEndGame:
			id, err := uuid.Parse(op.PlayerID)
			if err != nil {
				return fmt.Errorf("%s player id %q: %w", op.Kind, op.PlayerID, err)
			}
			if op.Kind == engine.OpSetTurn {
				turn = id
			} else {
				winner, over = id, true
			}
		}
	}

	next := m.State.Apply(ops)
	for _, op := range ops {
		if op.Kind == engine.OpSetRandomInteger {
			next[op.Key] = engine.IntValue(m.Roll(op.From, op.To))
		}
	}
	m.State, m.Turn, m.Winner, m.GameOver = next, turn, winner, over
	return nil
}

// engineState decodes the current state from the turn holder's point of view.
// Assumes lock is held by caller.
func (m *Match) engineState() (engine.GameState, error) {
	seat := m.seatOf(m.Turn)
	if seat < 0 {
		return engine.GameState{}, ErrUnknownPlayer
	}
	return engine.DecodeState(m.State, engine.SeatColor(seat), m.playerIDs())
}
