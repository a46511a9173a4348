package engine

import (
	"testing"
)

const (
	redID    = "player-red"
	yellowID = "player-yellow"
)

var testPlayers = []string{redID, yellowID}

var hangar = [PiecesPerPlayer]string{"H00", "H01", "H02", "H03"}

// testPiece parses a location with optional suffixes: 's' stacked, 'd' face-down.
func testPiece(t *testing.T, c Color, id uint8, s string) Piece {
	t.Helper()
	sq, err := ParseSquare(s[:3])
	if err != nil {
		t.Fatalf("testPiece %q: %v", s, err)
	}
	p := Piece{Key: PieceKey{Color: c, ID: id}, Square: sq}
	for _, r := range s[3:] {
		switch r {
		case 's':
			p.Stacked = true
		case 'd':
			p.FaceDown = true
		default:
			t.Fatalf("testPiece %q: unknown suffix %q", s, r)
		}
	}
	return p
}

// board builds a wire state with the given die, previous action and piece locations.
func board(t *testing.T, die int, action Action, red, yellow [PiecesPerPlayer]string) WireState {
	t.Helper()
	g := NewGame([MaxPlayers]string{redID, yellowID}, die)
	g.Action = action
	for id := uint8(0); id < PiecesPerPlayer; id++ {
		g.Pieces[0][id] = testPiece(t, Red, id, red[id])
		g.Pieces[1][id] = testPiece(t, Yellow, id, yellow[id])
	}
	return EncodeState(g)
}

// withHistory sets lastTwoRolls and lastTwoMoves on ws.
func withHistory(ws WireState, rolls [2]int, moves [2]string) WireState {
	ws[KeyLastTwoRolls] = IntsValue(rolls[0], rolls[1])
	ws[KeyLastTwoMoves] = StringsValue(moves[0], moves[1])
	return ws
}

// mustDerive returns the legal operation list for a claim by the acting player.
func mustDerive(t *testing.T, ws WireState, acting string, action Action, claim Claim) []Operation {
	t.Helper()
	ops, err := Derive(testPlayers, ws, acting, action, claim)
	if err != nil {
		t.Fatalf("Derive %s: %v", action, err)
	}
	return ops
}

func verifyOps(ws WireState, acting string, ops []Operation) Verdict {
	return Verify(VerifyRequest{
		Players:       []PlayerInfo{{ID: redID}, {ID: yellowID}},
		PreviousState: ws,
		Proposed:      ops,
		Acting:        acting,
	})
}

// claimOf builds a claim from the current pieces of the acting color.
func claimOf(t *testing.T, ws WireState, c Color, ids ...uint8) Claim {
	t.Helper()
	g, err := DecodeState(ws, c, testPlayers)
	if err != nil {
		t.Fatalf("DecodeState: %v", err)
	}
	var claim Claim
	for _, id := range ids {
		claim.Pieces = append(claim.Pieces, g.Piece(PieceKey{Color: c, ID: id}))
	}
	return claim
}

// next applies accepted ops, storing die when the ops request a roll.
func next(ws WireState, ops []Operation, die int) WireState {
	out := ws.Apply(ops)
	for _, op := range ops {
		if op.Kind == OpSetRandomInteger {
			out[op.Key] = IntValue(die)
		}
	}
	return out
}

func pieceSet(c Color, id uint8, loc, stack, face string) Operation {
	return Set(PieceKey{Color: c, ID: id}.String(), StringsValue(loc, stack, face))
}

func historyOps(rolls [2]int, moves [2]string) []Operation {
	return []Operation{
		Set(KeyLastTwoRolls, IntsValue(rolls[0], rolls[1])),
		Set(KeyLastTwoMoves, StringsValue(moves[0], moves[1])),
	}
}

var (
	noRolls = [2]int{-1, -1}
	noMoves = [2]string{"", ""}
)
