// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	engine "github.com/lisajluo/aeroplane-chess/engine"
	"github.com/lisajluo/aeroplane-chess/service/internal/models"
)

// promptInitialize asks seat 0 to propose the board setup.
const promptInitialize = "initialize"

// Snapshot builds the state message for forPlayer, including what that
// player may do next.
// Assumes lock is held by caller.
func (m *Match) Snapshot(forPlayer uuid.UUID) models.ServerMessage {
	msg := models.ServerMessage{
		Type:    models.MsgState,
		MatchID: m.ID,
		State:   m.State,
	}
	turn := m.Turn
	msg.Turn = &turn
	if m.GameOver {
		winner := m.Winner
		msg.Winner = &winner
		msg.Prompt = engine.PromptGameOver.String()
		return msg
	}

	seat := m.seatOf(forPlayer)
	if len(m.State) == 0 {
		msg.Prompt = engine.PromptWait.String()
		if seat == 0 {
			msg.Prompt = promptInitialize
		}
		return msg
	}
	g, err := m.engineState()
	if err != nil {
		m.log.WithError(err).Error("decode stored state")
		return msg
	}
	prompt := engine.NextPrompt(&g, seat)
	msg.Prompt = prompt.String()
	if prompt == engine.PromptChoosePiece {
		for _, p := range engine.MovablePieces(&g) {
			msg.Movable = append(msg.Movable, models.PieceView{
				Key:      p.Key.String(),
				Location: p.Square.String(),
				Stacked:  p.Stacked,
				FaceDown: p.FaceDown,
			})
		}
	}
	return msg
}

// sendSyncState sends the state to a single player.
// Assumes lock is held by caller.
func (m *Match) sendSyncState(playerID uuid.UUID) {
	m.fireEventToPlayer(playerID, m.Snapshot(playerID))
}

// broadcastSyncStateToAll sends each connected player their own view.
// Assumes lock is held by caller.
func (m *Match) broadcastSyncStateToAll() {
	for _, p := range m.Players {
		if p.Connected {
			m.sendSyncState(p.ID)
		}
	}
}
