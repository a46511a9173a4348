// internal/game/manager.go
package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lisajluo/aeroplane-chess/service/internal/models"
	"github.com/sirupsen/logrus"
)

// Manager owns the live matches of the process.
type Manager struct {
	mu      sync.RWMutex
	matches map[uuid.UUID]*Match

	log       *logrus.Logger
	publish   PublishFunc
	retention time.Duration
}

// NewManager returns an empty manager. publish may be nil. Finished matches
// are dropped retention after their last move.
func NewManager(log *logrus.Logger, publish PublishFunc, retention time.Duration) *Manager {
	return &Manager{
		matches:   make(map[uuid.UUID]*Match),
		log:       log,
		publish:   publish,
		retention: retention,
	}
}

// Create seats two new players under the given names and registers the match.
func (mg *Manager) Create(names ...string) (*Match, error) {
	players := make([]*models.Player, len(names))
	for i, name := range names {
		players[i] = &models.Player{ID: uuid.New(), Name: name}
	}
	m, err := NewMatch(mg.log, players...)
	if err != nil {
		return nil, err
	}
	m.Publish = mg.publish
	m.OnGameEnd = func(matchID, winner uuid.UUID) {
		mg.log.WithFields(logrus.Fields{"match": matchID, "winner": winner}).Info("match finished")
		time.AfterFunc(mg.retention, func() {
			mg.Remove(matchID)
			mg.log.WithField("match", matchID).Debug("finished match dropped")
		})
	}

	mg.mu.Lock()
	mg.matches[m.ID] = m
	mg.mu.Unlock()
	mg.log.WithField("match", m.ID).Info("match created")
	return m, nil
}

// Get returns the live match with id, or ErrMatchNotFound.
func (mg *Manager) Get(id uuid.UUID) (*Match, error) {
	mg.mu.RLock()
	defer mg.mu.RUnlock()
	m, ok := mg.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

// Remove forgets a match.
func (mg *Manager) Remove(id uuid.UUID) {
	mg.mu.Lock()
	delete(mg.matches, id)
	mg.mu.Unlock()
}

// Len returns the number of live matches.
func (mg *Manager) Len() int {
	mg.mu.RLock()
	defer mg.mu.RUnlock()
	return len(mg.matches)
}
