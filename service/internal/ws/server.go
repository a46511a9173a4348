// internal/ws/server.go
package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/lisajluo/aeroplane-chess/service/internal/auth"
	"github.com/lisajluo/aeroplane-chess/service/internal/game"
	"github.com/lisajluo/aeroplane-chess/service/internal/models"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 4 << 10

// Server exposes matches over HTTP and websockets.
type Server struct {
	games   *game.Manager
	tokens  *auth.Issuer
	origins []string
	log     *logrus.Logger

	mu      sync.RWMutex
	clients map[uuid.UUID]map[uuid.UUID]*client // match -> player -> live connection
}

// NewServer wires the transport to games. origins are extra host patterns
// allowed to open websockets.
func NewServer(log *logrus.Logger, games *game.Manager, tokens *auth.Issuer, origins []string) *Server {
	return &Server{
		games:   games,
		tokens:  tokens,
		origins: origins,
		log:     log,
		clients: make(map[uuid.UUID]map[uuid.UUID]*client),
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /matches", s.handleCreateMatch)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

type createMatchRequest struct {
	Players []string `json:"players"`
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := s.games.Create(req.Players...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.attach(m)

	resp := models.MatchCreated{MatchID: m.ID, Tokens: make(map[uuid.UUID]string, len(m.Players))}
	for _, p := range m.Players {
		token, err := s.tokens.Issue(m.ID, p.ID)
		if err != nil {
			s.log.WithError(err).WithField("match", m.ID).Error("issue token")
			s.games.Remove(m.ID)
			writeError(w, http.StatusInternalServerError, "could not issue tokens")
			return
		}
		resp.Players = append(resp.Players, *p)
		resp.Tokens[p.ID] = token
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "matches": s.games.Len()})
}

// attach routes the match's outgoing messages to its connections.
func (s *Server) attach(m *game.Match) {
	id := m.ID
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.BroadcastFn = func(msg models.ServerMessage) { s.broadcast(id, msg) }
	m.BroadcastToPlayerFn = func(playerID uuid.UUID, msg models.ServerMessage) { s.sendTo(id, playerID, msg) }
}

// register makes c the player's live connection, closing any older one.
func (s *Server) register(matchID uuid.UUID, c *client) {
	s.mu.Lock()
	players, ok := s.clients[matchID]
	if !ok {
		players = make(map[uuid.UUID]*client)
		s.clients[matchID] = players
	}
	old := players[c.playerID]
	players[c.playerID] = c
	s.mu.Unlock()

	if old != nil {
		old.replaced()
	}
}

// unregister drops c and reports whether it was still the live connection.
func (s *Server) unregister(matchID uuid.UUID, c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	players := s.clients[matchID]
	if players[c.playerID] != c {
		return false
	}
	delete(players, c.playerID)
	if len(players) == 0 {
		delete(s.clients, matchID)
	}
	return true
}

func (s *Server) broadcast(matchID uuid.UUID, msg models.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients[matchID] {
		c.enqueue(msg)
	}
}

func (s *Server) sendTo(matchID, playerID uuid.UUID, msg models.ServerMessage) {
	s.mu.RLock()
	c := s.clients[matchID][playerID]
	s.mu.RUnlock()
	if c != nil {
		c.enqueue(msg)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps lookup and auth failures to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, game.ErrMatchNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
