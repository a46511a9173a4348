// internal/ws/conn.go
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/lisajluo/aeroplane-chess/service/internal/game"
	"github.com/lisajluo/aeroplane-chess/service/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	sendBuffer   = 64
	pingInterval = 15 * time.Second
	writeTimeout = 5 * time.Second
	readLimit    = 64 << 10
)

// client is one player's websocket. Messages are queued on send and written
// by a single goroutine.
type client struct {
	matchID  uuid.UUID
	playerID uuid.UUID
	conn     *websocket.Conn
	send     chan models.ServerMessage
	log      *logrus.Entry
}

// enqueue never blocks; match callbacks run with the match lock held.
func (c *client) enqueue(msg models.ServerMessage) {
	select {
	case c.send <- msg:
	default:
		c.log.WithField("type", msg.Type).Warn("send buffer full, dropping message")
	}
}

func (c *client) replaced() {
	c.log.Info("connection replaced")
	go c.conn.Close(websocket.StatusPolicyViolation, "replaced by a newer connection")
}

func (c *client) reportError(format string, args ...any) {
	c.enqueue(models.ServerMessage{
		Type:    models.MsgError,
		MatchID: c.matchID,
		Message: fmt.Sprintf(format, args...),
	})
}

// handleWS authenticates the token, upgrades the connection and serves the
// player until either side hangs up.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	claims, err := s.tokens.Parse(q.Get("token"))
	if err != nil {
		writeError(w, statusFor(err), "invalid token")
		return
	}
	if id := q.Get("match"); id != "" && id != claims.MatchID.String() {
		writeError(w, http.StatusForbidden, "token is for another match")
		return
	}
	m, err := s.games.Get(claims.MatchID)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.origins})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept")
		return
	}
	conn.SetReadLimit(readLimit)

	c := &client{
		matchID:  m.ID,
		playerID: claims.PlayerID,
		conn:     conn,
		send:     make(chan models.ServerMessage, sendBuffer),
		log:      s.log.WithFields(logrus.Fields{"match": m.ID, "player": claims.PlayerID}),
	}
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s.register(m.ID, c)
	go c.writeLoop(ctx)

	if err := m.SetConnected(c.playerID, true); err != nil {
		s.unregister(m.ID, c)
		_ = conn.Close(websocket.StatusPolicyViolation, "not seated in this match")
		return
	}
	c.log.Info("player connected")

	c.readLoop(ctx, m)

	if s.unregister(m.ID, c) {
		if err := m.SetConnected(c.playerID, false); err != nil {
			c.log.WithError(err).Warn("mark disconnected")
		}
	}
	c.log.Info("player disconnected")
	_ = conn.Close(websocket.StatusNormalClosure, "")
}

func (c *client) writeLoop(ctx context.Context) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-c.send:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, c.conn, msg)
			cancel()
			if err != nil {
				c.log.WithError(err).Debug("write failed")
				_ = c.conn.CloseNow()
				return
			}
		case <-ping.C:
			if err := c.conn.Ping(ctx); err != nil {
				c.log.WithError(err).Debug("ping failed")
				_ = c.conn.CloseNow()
				return
			}
		}
	}
}

// readLoop dispatches client messages to the match. Malformed messages are
// answered with an error and do not end the connection.
func (c *client) readLoop(ctx context.Context, m *game.Match) {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if !errClosed(err) {
				c.log.WithError(err).Debug("read failed")
			}
			return
		}

		var msg models.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reportError("malformed message: %v", err)
			continue
		}
		switch msg.Type {
		case models.MsgPropose:
			if _, err := m.Propose(c.playerID, msg.Ops); err != nil {
				c.reportError("%v", err)
			}
		case models.MsgSync:
			if err := m.Sync(c.playerID); err != nil {
				c.reportError("%v", err)
			}
		default:
			c.reportError("unknown message type %q", msg.Type)
		}
	}
}

// errClosed reports whether err is a normal close rather than a failure.
func errClosed(err error) bool {
	return errors.Is(err, context.Canceled) || websocket.CloseStatus(err) != -1
}
