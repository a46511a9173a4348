package engine

import (
	"errors"
	"reflect"
	"testing"
)

// assertOps compares a derived list with the expected one and checks that
// Verify accepts it.
func assertOps(t *testing.T, ws WireState, acting string, want, got []Operation) {
	t.Helper()
	if !EqualOperations(want, got) {
		t.Fatalf("want %s\ngot  %s", FormatOperations(want), FormatOperations(got))
	}
	if v := verifyOps(ws, acting, got); !v.Accepted {
		t.Fatalf("Verify rejected derived ops: %s", v.Message)
	}
}

// assertRejected fails unless err is a rejection.
func assertRejected(t *testing.T, err error, what string) {
	t.Helper()
	if !errors.Is(err, ErrRejected) {
		t.Errorf("%s: got %v, want ErrRejected", what, err)
	}
}

func TestTaxi(t *testing.T) {
	t.Run("even die passes the turn", func(t *testing.T) {
		ws := board(t, 2, ActionInitialize, hangar, hangar)
		got := mustDerive(t, ws, redID, ActionTaxi, claimOf(t, ws, Red, 1))
		want := append([]Operation{
			SetTurn(yellowID),
			rollDie(),
			Set(KeyAction, StringValue("taxi")),
			pieceSet(Red, 1, "L00", TagUnstacked, TagFaceUp),
		}, historyOps(noRolls, noMoves)...)
		assertOps(t, ws, redID, want, got)
	})

	t.Run("six keeps the turn and records history", func(t *testing.T) {
		ws := board(t, 6, ActionInitialize, hangar, hangar)
		got := mustDerive(t, ws, redID, ActionTaxi, claimOf(t, ws, Red, 0))
		want := append([]Operation{
			SetTurn(redID),
			rollDie(),
			Set(KeyAction, StringValue("taxi")),
			pieceSet(Red, 0, "L00", TagUnstacked, TagFaceUp),
		}, historyOps([2]int{6, -1}, [2]string{"0", ""})...)
		assertOps(t, ws, redID, want, got)
	})

	t.Run("odd die is rejected", func(t *testing.T) {
		ws := board(t, 5, ActionInitialize, hangar, hangar)
		_, err := Derive(testPlayers, ws, redID, ActionTaxi, claimOf(t, ws, Red, 0))
		assertRejected(t, err, "derive")
	})

	t.Run("only one piece", func(t *testing.T) {
		ws := board(t, 4, ActionInitialize, hangar, hangar)
		_, err := Derive(testPlayers, ws, redID, ActionTaxi, claimOf(t, ws, Red, 0, 1))
		assertRejected(t, err, "derive")
	})

	t.Run("finished piece cannot taxi", func(t *testing.T) {
		ws := board(t, 4, ActionMove,
			[PiecesPerPlayer]string{"H00d", "H01", "H02", "H03"}, hangar)
		_, err := Derive(testPlayers, ws, redID, ActionTaxi, claimOf(t, ws, Red, 0))
		assertRejected(t, err, "derive")
	})
}

func TestMoveCapturesOnTrack(t *testing.T) {
	ws := board(t, 4, ActionTaxi,
		[PiecesPerPlayer]string{"L00", "H01", "H02", "H03"},
		[PiecesPerPlayer]string{"T22s", "T22s", "T40", "H03"})
	got := mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 0))
	want := append([]Operation{
		SetTurn(yellowID),
		rollDie(),
		Set(KeyAction, StringValue("move")),
		pieceSet(Red, 0, "T22", TagUnstacked, TagFaceUp),
		pieceSet(Yellow, 0, "H00", TagUnstacked, TagFaceUp),
		pieceSet(Yellow, 1, "H01", TagUnstacked, TagFaceUp),
	}, historyOps(noRolls, noMoves)...)
	assertOps(t, ws, redID, want, got)
}

func TestMoveIntoOwnStretchNeverCaptures(t *testing.T) {
	ws := board(t, 5, ActionTaxi,
		[PiecesPerPlayer]string{"T13", "H01", "H02", "H03"},
		[PiecesPerPlayer]string{"F01", "H01", "H02", "H03"})
	got := mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 0))
	want := append([]Operation{
		SetTurn(yellowID),
		rollDie(),
		Set(KeyAction, StringValue("move")),
		pieceSet(Red, 0, "F01", TagUnstacked, TagFaceUp),
	}, historyOps(noRolls, noMoves)...)
	assertOps(t, ws, redID, want, got)
}

func TestMoveBouncesBackFromHome(t *testing.T) {
	ws := board(t, 5, ActionTaxi,
		[PiecesPerPlayer]string{"F03", "H01", "H02", "H03"}, hangar)
	got := mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 0))
	if !got[3].Equal(pieceSet(Red, 0, "F02", TagUnstacked, TagFaceUp)) {
		t.Errorf("want a bounce to F02, got %s", FormatOperations(got))
	}
	if v := verifyOps(ws, redID, got); !v.Accepted {
		t.Errorf("bounce rejected: %s", v.Message)
	}
}

func TestLastPieceMustLandExactly(t *testing.T) {
	ws := board(t, 5, ActionMove,
		[PiecesPerPlayer]string{"F03", "H01d", "H02d", "H03d"}, hangar)

	forged := []Operation{
		SetTurn(redID),
		Set(KeyAction, StringValue("move")),
		pieceSet(Red, 0, "H00", TagUnstacked, TagFaceDown),
		EndGame(redID),
	}
	v := verifyOps(ws, redID, forged)
	if v.Accepted {
		t.Fatal("a win on an inexact roll was accepted")
	}
	if v.HackerID != redID {
		t.Errorf("HackerID = %q, want %q", v.HackerID, redID)
	}

	got := mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 0))
	want := append([]Operation{
		SetTurn(yellowID),
		rollDie(),
		Set(KeyAction, StringValue("move")),
		pieceSet(Red, 0, "F02", TagUnstacked, TagFaceUp),
	}, historyOps(noRolls, noMoves)...)
	assertOps(t, ws, redID, want, got)
}

func TestMoveHomeWithoutWinning(t *testing.T) {
	ws := board(t, 2, ActionTaxi,
		[PiecesPerPlayer]string{"F03", "T30", "H02", "H03"}, hangar)
	got := mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 0))
	want := append([]Operation{
		SetTurn(yellowID),
		rollDie(),
		Set(KeyAction, StringValue("move")),
		pieceSet(Red, 0, "H00", TagUnstacked, TagFaceDown),
	}, historyOps(noRolls, noMoves)...)
	assertOps(t, ws, redID, want, got)
}

func TestMoveWinsGame(t *testing.T) {
	ws := board(t, 2, ActionMove,
		[PiecesPerPlayer]string{"H00d", "F03", "H02d", "H03d"},
		[PiecesPerPlayer]string{"T10", "H01", "H02", "H03"})
	got := mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 1))
	want := []Operation{
		SetTurn(redID),
		Set(KeyAction, StringValue("move")),
		pieceSet(Red, 1, "H01", TagUnstacked, TagFaceDown),
		EndGame(redID),
	}
	assertOps(t, ws, redID, want, got)

	g := mustState(t, ws, Red)
	g2 := mustState(t, next(ws, got, 0), Yellow)
	if p := NextPrompt(&g, 0); p != PromptChoosePiece {
		t.Errorf("before: prompt %s, want %s", p, PromptChoosePiece)
	}
	if p := NextPrompt(&g2, 1); p != PromptGameOver {
		t.Errorf("after: prompt %s, want %s", p, PromptGameOver)
	}
}

func TestMovePass(t *testing.T) {
	ws := board(t, 3, ActionInitialize, hangar, hangar)
	got := mustDerive(t, ws, redID, ActionMove, Claim{})
	want := append([]Operation{
		SetTurn(yellowID),
		rollDie(),
		Set(KeyAction, StringValue("move")),
	}, historyOps(noRolls, noMoves)...)
	assertOps(t, ws, redID, want, got)

	even := board(t, 4, ActionInitialize, hangar, hangar)
	_, err := Derive(testPlayers, even, redID, ActionMove, Claim{})
	assertRejected(t, err, "an even die must be used for taxi")

	onBoard := board(t, 3, ActionTaxi, [PiecesPerPlayer]string{"L00", "H01", "H02", "H03"}, hangar)
	_, err = Derive(testPlayers, onBoard, redID, ActionMove, Claim{})
	assertRejected(t, err, "a piece on the board must move")
}

func TestMoveStackTogether(t *testing.T) {
	ws := board(t, 3, ActionMove,
		[PiecesPerPlayer]string{"T22s", "T22s", "T30", "H03"}, hangar)

	_, err := Derive(testPlayers, ws, redID, ActionMove, claimOf(t, ws, Red, 0))
	assertRejected(t, err, "a stacked piece cannot move alone")
	_, err = Derive(testPlayers, ws, redID, ActionMove, claimOf(t, ws, Red, 0, 2))
	assertRejected(t, err, "pieces on different squares")
	_, err = Derive(testPlayers, ws, redID, ActionMove, claimOf(t, ws, Red, 0, 0))
	assertRejected(t, err, "duplicate claim")

	got := mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 0, 1))
	want := append([]Operation{
		SetTurn(yellowID),
		rollDie(),
		Set(KeyAction, StringValue("move")),
		pieceSet(Red, 0, "T25", TagStacked, TagFaceUp),
		pieceSet(Red, 1, "T25", TagStacked, TagFaceUp),
	}, historyOps(noRolls, noMoves)...)
	assertOps(t, ws, redID, want, got)
}

func TestStackDecision(t *testing.T) {
	ws := board(t, 2, ActionMove,
		[PiecesPerPlayer]string{"T22", "T20", "H02", "H03"}, hangar)

	// R1 lands on R0 and the turn stays for the stack decision, no roll yet.
	moved := mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 1))
	want := append([]Operation{
		SetTurn(redID),
		Set(KeyAction, StringValue("move")),
		pieceSet(Red, 1, "T22", TagUnstacked, TagFaceUp),
	}, historyOps([2]int{2, -1}, [2]string{"1", ""})...)
	assertOps(t, ws, redID, want, moved)
	ws = next(ws, moved, 0)

	t.Run("partial claim", func(t *testing.T) {
		c := claimOf(t, ws, Red, 1)
		c.Pieces[0].Stacked = true
		_, err := Derive(testPlayers, ws, redID, ActionStack, c)
		assertRejected(t, err, "derive")
	})

	t.Run("mixed flags", func(t *testing.T) {
		c := claimOf(t, ws, Red, 0, 1)
		c.Pieces[0].Stacked = true
		_, err := Derive(testPlayers, ws, redID, ActionStack, c)
		assertRejected(t, err, "derive")
	})

	t.Run("stack", func(t *testing.T) {
		c := claimOf(t, ws, Red, 0, 1)
		c.Pieces[0].Stacked, c.Pieces[1].Stacked = true, true
		got := mustDerive(t, ws, redID, ActionStack, c)
		want := append([]Operation{
			SetTurn(yellowID),
			rollDie(),
			Set(KeyAction, StringValue("stack")),
			pieceSet(Red, 0, "T22", TagStacked, TagFaceUp),
			pieceSet(Red, 1, "T22", TagStacked, TagFaceUp),
		}, historyOps(noRolls, noMoves)...)
		assertOps(t, ws, redID, want, got)
	})

	t.Run("unstack", func(t *testing.T) {
		g := mustState(t, ws, Red)
		action, c := g.FollowUpClaim(false)
		if action != ActionStack {
			t.Fatalf("follow-up %s, want stack", action)
		}
		got := mustDerive(t, ws, redID, action, c)
		want := append([]Operation{
			SetTurn(yellowID),
			rollDie(),
			Set(KeyAction, StringValue("stack")),
			pieceSet(Red, 0, "T22", TagUnstacked, TagFaceUp),
			pieceSet(Red, 1, "T22", TagUnstacked, TagFaceUp),
		}, historyOps(noRolls, noMoves)...)
		assertOps(t, ws, redID, want, got)
	})
}

func TestStackOnSixMergesHistory(t *testing.T) {
	ws := board(t, 6, ActionMove,
		[PiecesPerPlayer]string{"T26", "T20", "H02", "H03"}, hangar)
	ws = next(ws, mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 1)), 0)

	g := mustState(t, ws, Red)
	action, c := g.FollowUpClaim(true)
	if action != ActionStack {
		t.Fatalf("follow-up %s, want stack", action)
	}
	got := mustDerive(t, ws, redID, action, c)
	want := append([]Operation{
		SetTurn(redID),
		rollDie(),
		Set(KeyAction, StringValue("stack")),
		pieceSet(Red, 0, "T26", TagStacked, TagFaceUp),
		pieceSet(Red, 1, "T26", TagStacked, TagFaceUp),
	}, historyOps([2]int{6, -1}, [2]string{"01", ""})...)
	assertOps(t, ws, redID, want, got)
}

func TestJumpThenShortcut(t *testing.T) {
	ws := board(t, 4, ActionTaxi,
		[PiecesPerPlayer]string{"T28", "H01", "H02", "H03"},
		[PiecesPerPlayer]string{"T48", "F02", "F03", "T40"})

	// T28 + 4 = T32, a red square: the jump is owed before anything else.
	moved := mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 0))
	want := append([]Operation{
		SetTurn(redID),
		Set(KeyAction, StringValue("move")),
		pieceSet(Red, 0, "T32", TagUnstacked, TagFaceUp),
	}, historyOps([2]int{4, -1}, [2]string{"0", ""})...)
	assertOps(t, ws, redID, want, moved)
	ws = next(ws, moved, 0)

	g := mustState(t, ws, Red)
	wantPrompt(t, &g, 0, PromptJump)
	wantPrompt(t, &g, 1, PromptWait)

	// The jump lands on the shortcut entry, which opens the shortcut.
	_, err := Derive(testPlayers, ws, redID, ActionJump, Claim{})
	assertRejected(t, err, "jump must carry the landed pieces")
	jumped := mustDerive(t, ws, redID, ActionJump, claimOf(t, ws, Red, 0))
	want = append([]Operation{
		SetTurn(redID),
		Set(KeyAction, StringValue("jump")),
		pieceSet(Red, 0, "T36", TagUnstacked, TagFaceUp),
	}, historyOps([2]int{4, -1}, [2]string{"0", ""})...)
	assertOps(t, ws, redID, want, jumped)
	ws = next(ws, jumped, 0)

	g = mustState(t, ws, Red)
	wantPrompt(t, &g, 0, PromptShortcut)

	t.Run("take", func(t *testing.T) {
		got := mustDerive(t, ws, redID, ActionTakeShortcut, claimOf(t, ws, Red, 0))
		want := append([]Operation{
			SetTurn(yellowID),
			rollDie(),
			Set(KeyAction, StringValue("take_shortcut")),
			pieceSet(Red, 0, "T48", TagUnstacked, TagFaceUp),
			pieceSet(Yellow, 0, "H00", TagUnstacked, TagFaceUp),
			pieceSet(Yellow, 1, "H01", TagUnstacked, TagFaceUp),
		}, historyOps(noRolls, noMoves)...)
		assertOps(t, ws, redID, want, got)
	})

	t.Run("decline", func(t *testing.T) {
		got := mustDerive(t, ws, redID, ActionTakeShortcut, Claim{})
		want := append([]Operation{
			SetTurn(yellowID),
			rollDie(),
			Set(KeyAction, StringValue("take_shortcut")),
		}, historyOps(noRolls, noMoves)...)
		assertOps(t, ws, redID, want, got)
	})
}

func TestNoSecondJump(t *testing.T) {
	ws := board(t, 2, ActionTaxi,
		[PiecesPerPlayer]string{"T02", "H01", "H02", "H03"}, hangar)
	ws = next(ws, mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 0)), 0)
	jumped := mustDerive(t, ws, redID, ActionJump, claimOf(t, ws, Red, 0))

	// T04 -> T08 is red again, but a jump never chains into another jump.
	want := append([]Operation{
		SetTurn(yellowID),
		rollDie(),
		Set(KeyAction, StringValue("jump")),
		pieceSet(Red, 0, "T08", TagUnstacked, TagFaceUp),
	}, historyOps(noRolls, noMoves)...)
	assertOps(t, ws, redID, want, jumped)
}

func TestTripleSixEviction(t *testing.T) {
	ws := board(t, 6, ActionMove,
		[PiecesPerPlayer]string{"T30", "T41", "H02d", "T05"},
		[PiecesPerPlayer]string{"T31", "H01", "H02", "H03"})
	withHistory(ws, [2]int{6, 6}, [2]string{"0", "12"})

	g := mustState(t, ws, Red)
	wantPrompt(t, &g, 0, PromptBackToHangar)
	if ps := MovablePieces(&g); len(ps) != 0 {
		t.Errorf("MovablePieces = %v, want none", ps)
	}

	got := mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 3))
	want := append([]Operation{
		SetTurn(yellowID),
		rollDie(),
		Set(KeyAction, StringValue("move")),
		pieceSet(Red, 0, "H00", TagUnstacked, TagFaceUp),
		pieceSet(Red, 1, "H01", TagUnstacked, TagFaceUp),
	}, historyOps(noRolls, noMoves)...)
	assertOps(t, ws, redID, want, got)

	_, err := Derive(testPlayers, ws, redID, ActionTaxi, claimOf(t, ws, Red, 2))
	assertRejected(t, err, "derive")
}

func TestMovablePieces(t *testing.T) {
	ws := board(t, 2, ActionTaxi,
		[PiecesPerPlayer]string{"T10s", "T10s", "H02", "H03d"}, hangar)
	g := mustState(t, ws, Red)
	ids := []uint8{}
	for _, p := range MovablePieces(&g) {
		ids = append(ids, p.Key.ID)
	}
	if !reflect.DeepEqual(ids, []uint8{0, 1, 2}) {
		t.Errorf("movable ids = %v, want [0 1 2]", ids)
	}

	action, c := g.SelectPiece(1)
	if action != ActionMove || len(c.Pieces) != 2 {
		t.Errorf("select stacked piece: %s with %d pieces, want move of the whole stack", action, len(c.Pieces))
	}
	action, c = g.SelectPiece(2)
	if action != ActionTaxi || len(c.Pieces) != 1 {
		t.Errorf("select hangar piece: %s with %d pieces, want taxi of one", action, len(c.Pieces))
	}

	odd := board(t, 3, ActionInitialize, hangar, hangar)
	g = mustState(t, odd, Red)
	wantPrompt(t, &g, 0, PromptPass)
}

func mustState(t *testing.T, ws WireState, turn Color) GameState {
	t.Helper()
	g, err := DecodeState(ws, turn, testPlayers)
	if err != nil {
		t.Fatalf("DecodeState: %v", err)
	}
	return g
}

func wantPrompt(t *testing.T, g *GameState, seat int, want Prompt) {
	t.Helper()
	if got := NextPrompt(g, seat); got != want {
		t.Errorf("seat %d prompt %s, want %s", seat, got, want)
	}
}

func TestJumpOntoOwnPieceOffersStack(t *testing.T) {
	ws := board(t, 2, ActionTaxi,
		[PiecesPerPlayer]string{"T18", "T24", "H02", "H03"}, hangar)

	// T20 is red: the jump comes first and carries R0 onto R1.
	moved := mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 0))
	want := append([]Operation{
		SetTurn(redID),
		Set(KeyAction, StringValue("move")),
		pieceSet(Red, 0, "T20", TagUnstacked, TagFaceUp),
	}, historyOps([2]int{2, -1}, [2]string{"0", ""})...)
	assertOps(t, ws, redID, want, moved)
	ws = next(ws, moved, 0)

	jumped := mustDerive(t, ws, redID, ActionJump, claimOf(t, ws, Red, 0))
	want = append([]Operation{
		SetTurn(redID),
		Set(KeyAction, StringValue("jump")),
		pieceSet(Red, 0, "T24", TagUnstacked, TagFaceUp),
	}, historyOps([2]int{2, -1}, [2]string{"0", ""})...)
	assertOps(t, ws, redID, want, jumped)

	skipStack := append([]Operation{
		SetTurn(yellowID),
		rollDie(),
		Set(KeyAction, StringValue("jump")),
		pieceSet(Red, 0, "T24", TagUnstacked, TagFaceUp),
	}, historyOps(noRolls, noMoves)...)
	if v := verifyOps(ws, redID, skipStack); v.Accepted {
		t.Error("a jump onto an own piece passed the turn without a stack decision")
	}
	ws = next(ws, jumped, 0)

	g := mustState(t, ws, Red)
	wantPrompt(t, &g, 0, PromptStack)

	action, c := g.FollowUpClaim(true)
	if action != ActionStack {
		t.Fatalf("follow-up %s, want stack", action)
	}
	got := mustDerive(t, ws, redID, action, c)
	want = append([]Operation{
		SetTurn(yellowID),
		rollDie(),
		Set(KeyAction, StringValue("stack")),
		pieceSet(Red, 0, "T24", TagStacked, TagFaceUp),
		pieceSet(Red, 1, "T24", TagStacked, TagFaceUp),
	}, historyOps(noRolls, noMoves)...)
	assertOps(t, ws, redID, want, got)
}

func TestJumpOntoStackNeedsEveryPiece(t *testing.T) {
	ws := board(t, 2, ActionTaxi,
		[PiecesPerPlayer]string{"T18", "T24s", "T24s", "H03"}, hangar)
	ws = next(ws, mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 0)), 0)
	ws = next(ws, mustDerive(t, ws, redID, ActionJump, claimOf(t, ws, Red, 0)), 0)

	alone := claimOf(t, ws, Red, 0)
	alone.Pieces[0].Stacked = true
	_, err := Derive(testPlayers, ws, redID, ActionStack, alone)
	assertRejected(t, err, "stacking the jumper alone")

	all := claimOf(t, ws, Red, 0, 1, 2)
	for i := range all.Pieces {
		all.Pieces[i].Stacked = true
	}
	got := mustDerive(t, ws, redID, ActionStack, all)
	want := append([]Operation{
		SetTurn(yellowID),
		rollDie(),
		Set(KeyAction, StringValue("stack")),
		pieceSet(Red, 0, "T24", TagStacked, TagFaceUp),
		pieceSet(Red, 1, "T24", TagStacked, TagFaceUp),
		pieceSet(Red, 2, "T24", TagStacked, TagFaceUp),
	}, historyOps(noRolls, noMoves)...)
	assertOps(t, ws, redID, want, got)
}

func TestShortcutOntoOwnPieceOffersStack(t *testing.T) {
	ws := board(t, 2, ActionTaxi,
		[PiecesPerPlayer]string{"T34", "T48", "H02", "H03"}, hangar)
	ws = next(ws, mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 0)), 0)
	g := mustState(t, ws, Red)
	wantPrompt(t, &g, 0, PromptShortcut)

	flown := mustDerive(t, ws, redID, ActionTakeShortcut, claimOf(t, ws, Red, 0))
	want := append([]Operation{
		SetTurn(redID),
		Set(KeyAction, StringValue("take_shortcut")),
		pieceSet(Red, 0, "T48", TagUnstacked, TagFaceUp),
	}, historyOps([2]int{2, -1}, [2]string{"0", ""})...)
	assertOps(t, ws, redID, want, flown)
	ws = next(ws, flown, 0)

	g = mustState(t, ws, Red)
	wantPrompt(t, &g, 0, PromptStack)
	action, c := g.FollowUpClaim(false)
	if action != ActionStack {
		t.Fatalf("follow-up %s, want stack", action)
	}
	got := mustDerive(t, ws, redID, action, c)
	want = append([]Operation{
		SetTurn(yellowID),
		rollDie(),
		Set(KeyAction, StringValue("stack")),
		pieceSet(Red, 0, "T48", TagUnstacked, TagFaceUp),
		pieceSet(Red, 1, "T48", TagUnstacked, TagFaceUp),
	}, historyOps(noRolls, noMoves)...)
	assertOps(t, ws, redID, want, got)
}

func TestJumpCaptures(t *testing.T) {
	ws := board(t, 2, ActionTaxi,
		[PiecesPerPlayer]string{"T18", "H01", "H02", "H03"},
		[PiecesPerPlayer]string{"T24", "H01", "H02", "H03"})
	ws = next(ws, mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 0)), 0)

	got := mustDerive(t, ws, redID, ActionJump, claimOf(t, ws, Red, 0))
	want := append([]Operation{
		SetTurn(yellowID),
		rollDie(),
		Set(KeyAction, StringValue("jump")),
		pieceSet(Red, 0, "T24", TagUnstacked, TagFaceUp),
		pieceSet(Yellow, 0, "H00", TagUnstacked, TagFaceUp),
	}, historyOps(noRolls, noMoves)...)
	assertOps(t, ws, redID, want, got)

	skipped := append(append([]Operation{}, got[:4]...), got[5:]...)
	if v := verifyOps(ws, redID, skipped); v.Accepted {
		t.Error("a jump that skips its capture was accepted")
	}
}

func TestStackOfThreeIsAllOrNone(t *testing.T) {
	ws := board(t, 2, ActionMove,
		[PiecesPerPlayer]string{"T22s", "T20", "T22s", "H03"}, hangar)
	ws = next(ws, mustDerive(t, ws, redID, ActionMove, claimOf(t, ws, Red, 1)), 0)
	g := mustState(t, ws, Red)
	wantPrompt(t, &g, 0, PromptStack)

	claim := func(stacked bool, ids ...uint8) Claim {
		c := claimOf(t, ws, Red, ids...)
		for i := range c.Pieces {
			c.Pieces[i].Stacked = stacked
		}
		return c
	}

	_, err := Derive(testPlayers, ws, redID, ActionStack, claim(true, 0, 1))
	assertRejected(t, err, "two of three stacked")
	_, err = Derive(testPlayers, ws, redID, ActionStack, claim(false, 1, 2))
	assertRejected(t, err, "two of three unstacked")

	for _, tc := range []struct {
		name    string
		stacked bool
		tag     string
	}{
		{"all stacked", true, TagStacked},
		{"none stacked", false, TagUnstacked},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := mustDerive(t, ws, redID, ActionStack, claim(tc.stacked, 0, 1, 2))
			want := append([]Operation{
				SetTurn(yellowID),
				rollDie(),
				Set(KeyAction, StringValue("stack")),
				pieceSet(Red, 0, "T22", tc.tag, TagFaceUp),
				pieceSet(Red, 1, "T22", tc.tag, TagFaceUp),
				pieceSet(Red, 2, "T22", tc.tag, TagFaceUp),
			}, historyOps(noRolls, noMoves)...)
			assertOps(t, ws, redID, want, got)
		})
	}
}
