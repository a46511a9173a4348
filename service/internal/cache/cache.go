// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	engine "github.com/lisajluo/aeroplane-chess/engine"
	"github.com/redis/go-redis/v9"
)

// MoveRecord is one verified proposal as published to the feed.
type MoveRecord struct {
	MatchID  uuid.UUID          `json:"matchId"`
	PlayerID uuid.UUID          `json:"playerId"`
	Index    int                `json:"index"`
	Accepted bool               `json:"accepted"`
	Message  string             `json:"message,omitempty"`
	Ops      []engine.Operation `json:"ops"`
	At       time.Time          `json:"at"`
}

// Feed appends move records to a redis stream.
type Feed struct {
	rdb    *redis.Client
	stream string
}

// NewFeed connects to addr and checks the connection.
func NewFeed(ctx context.Context, addr, stream string) (*Feed, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &Feed{rdb: rdb, stream: stream}, nil
}

// Publish appends rec to the stream.
func (f *Feed) Publish(ctx context.Context, rec MoveRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode move record: %w", err)
	}
	err = f.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: f.stream,
		Values: map[string]interface{}{
			"match":    rec.MatchID.String(),
			"accepted": rec.Accepted,
			"record":   body,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", f.stream, err)
	}
	return nil
}

// Close releases the redis connection.
func (f *Feed) Close() error {
	return f.rdb.Close()
}
