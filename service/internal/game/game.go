// internal/game/game.go
package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	engine "github.com/lisajluo/aeroplane-chess/engine"
	"github.com/lisajluo/aeroplane-chess/service/internal/cache"
	"github.com/lisajluo/aeroplane-chess/service/internal/models"
	"github.com/sirupsen/logrus"
)

// OnGameEndFunc is called once when a match ends, with the lock held.
type OnGameEndFunc func(matchID uuid.UUID, winner uuid.UUID)

// PublishFunc sends a verified move to the feed.
type PublishFunc func(ctx context.Context, rec cache.MoveRecord) error

// publishTimeout bounds each feed write.
const publishTimeout = 2 * time.Second

// Match is one authoritative game between two players. The wire state is
// only ever replaced by operation lists the engine accepted.
type Match struct {
	ID      uuid.UUID
	Players []*models.Player // seat order; seat 0 sets up the board and moves first

	State    engine.WireState
	Turn     uuid.UUID
	Winner   uuid.UUID
	GameOver bool

	actionIndex int

	Mu sync.Mutex

	// Roll returns a uniform integer in [from, to).
	Roll    func(from, to int) int
	Publish PublishFunc

	BroadcastFn         func(msg models.ServerMessage)
	BroadcastToPlayerFn func(playerID uuid.UUID, msg models.ServerMessage)
	OnGameEnd           OnGameEndFunc

	log *logrus.Entry
}

// NewMatch seats players in order. The first player is expected to propose
// the board setup.
func NewMatch(log *logrus.Logger, players ...*models.Player) (*Match, error) {
	if len(players) != engine.MaxPlayers {
		return nil, fmt.Errorf("need %d players, got %d", engine.MaxPlayers, len(players))
	}
	id := uuid.New()
	return &Match{
		ID:      id,
		Players: players,
		State:   engine.WireState{},
		Turn:    players[0].ID,
		Roll:    func(from, to int) int { return from + rand.IntN(to-from) },
		log:     log.WithField("match", id),
	}, nil
}

// Propose verifies ops from playerID and applies them if accepted. A
// rejected proposal leaves the match untouched and is reported to the
// proposer only.
func (m *Match) Propose(playerID uuid.UUID, ops []engine.Operation) (engine.Verdict, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	log := m.log.WithField("player", playerID)
	if m.GameOver {
		return engine.Verdict{}, ErrMatchOver
	}
	if m.seatOf(playerID) < 0 {
		return engine.Verdict{}, ErrUnknownPlayer
	}
	if playerID != m.Turn {
		log.Debug("proposal out of turn")
		return engine.Verdict{}, ErrNotYourTurn
	}

	verdict := engine.Verify(engine.VerifyRequest{
		Players:       m.playerInfos(),
		PreviousState: m.State,
		Proposed:      ops,
		Acting:        playerID.String(),
	})
	m.actionIndex++
	m.publish(cache.MoveRecord{
		MatchID:  m.ID,
		PlayerID: playerID,
		Index:    m.actionIndex,
		Accepted: verdict.Accepted,
		Message:  verdict.Message,
		Ops:      ops,
		At:       time.Now().UTC(),
	})

	if !verdict.Accepted {
		log.WithField("reason", verdict.Message).Warn("proposal rejected")
		m.fireEventToPlayer(playerID, models.ServerMessage{
			Type:    models.MsgRejected,
			MatchID: m.ID,
			Message: verdict.Message,
		})
		return verdict, nil
	}

	if err := m.apply(ops); err != nil {
		return verdict, fmt.Errorf("apply accepted ops: %w", err)
	}
	log.WithFields(logrus.Fields{
		"index": m.actionIndex,
		"ops":   len(ops),
		"die":   m.State[engine.KeyDie].Int,
	}).Info("move accepted")

	m.broadcastSyncStateToAll()
	if m.GameOver {
		m.endGame()
	}
	return verdict, nil
}

// Sync sends the current state to playerID.
func (m *Match) Sync(playerID uuid.UUID) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if m.seatOf(playerID) < 0 {
		return ErrUnknownPlayer
	}
	m.sendSyncState(playerID)
	return nil
}

// SetConnected marks a player's connection status and resyncs them on connect.
func (m *Match) SetConnected(playerID uuid.UUID, connected bool) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	seat := m.seatOf(playerID)
	if seat < 0 {
		return ErrUnknownPlayer
	}
	m.Players[seat].Connected = connected
	m.log.WithFields(logrus.Fields{"player": playerID, "connected": connected}).Info("connection changed")
	if connected {
		m.sendSyncState(playerID)
	}
	return nil
}

// endGame announces the winner.
// Assumes lock is held by caller.
func (m *Match) endGame() {
	winner := m.Winner
	m.log.WithField("winner", winner).Info("match over")
	m.fireEvent(models.ServerMessage{Type: models.MsgGameEnd, MatchID: m.ID, Winner: &winner})
	if m.OnGameEnd != nil {
		m.OnGameEnd(m.ID, winner)
	}
}

// publish writes rec to the feed without blocking the match.
// Assumes lock is held by caller.
func (m *Match) publish(rec cache.MoveRecord) {
	if m.Publish == nil {
		return
	}
	pub, log := m.Publish, m.log
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := pub(ctx, rec); err != nil {
			log.WithError(err).WithField("index", rec.Index).Warn("publish move record")
		}
	}()
}

// fireEvent sends msg to every connected player.
// Assumes lock is held by caller.
func (m *Match) fireEvent(msg models.ServerMessage) {
	if m.BroadcastFn == nil {
		m.log.WithField("type", msg.Type).Debug("no broadcaster")
		return
	}
	m.BroadcastFn(msg)
}

// fireEventToPlayer sends msg to one player if they are connected.
// Assumes lock is held by caller.
func (m *Match) fireEventToPlayer(playerID uuid.UUID, msg models.ServerMessage) {
	if m.BroadcastToPlayerFn == nil {
		m.log.WithField("type", msg.Type).Debug("no player broadcaster")
		return
	}
	if seat := m.seatOf(playerID); seat >= 0 && m.Players[seat].Connected {
		m.BroadcastToPlayerFn(playerID, msg)
	}
}

// seatOf returns the seat of playerID or -1.
func (m *Match) seatOf(playerID uuid.UUID) int {
	for i, p := range m.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}
