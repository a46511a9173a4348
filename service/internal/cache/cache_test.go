package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	engine "github.com/lisajluo/aeroplane-chess/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeedUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := NewFeed(ctx, "127.0.0.1:1", "test")
	assert.Error(t, err)
}

func TestMoveRecordJSON(t *testing.T) {
	rec := MoveRecord{
		MatchID:  uuid.New(),
		PlayerID: uuid.New(),
		Index:    3,
		Accepted: true,
		Ops:      []engine.Operation{engine.SetTurn("p"), engine.SetRandomInteger(engine.KeyDie, 1, 7)},
		At:       time.Unix(1700000000, 0).UTC(),
	}
	body, err := json.Marshal(rec)
	require.NoError(t, err)

	var back MoveRecord
	require.NoError(t, json.Unmarshal(body, &back))
	assert.Equal(t, rec.MatchID, back.MatchID)
	assert.True(t, engine.EqualOperations(rec.Ops, back.Ops))
	assert.Contains(t, string(body), `"op":"setRandomInteger"`)
}
