package engine

// PlayerInfo identifies one seated player.
type PlayerInfo struct {
	ID string
}

// VerifyRequest carries everything a verification needs. ResultingState is
// accepted for interface compatibility and ignored: the proposal itself is
// what gets checked.
type VerifyRequest struct {
	Players        []PlayerInfo
	ResultingState WireState
	PreviousState  WireState
	Proposed       []Operation
	Acting         string
}

// Verdict is the outcome of Verify. HackerID names the proposer of a
// rejected move.
type Verdict struct {
	Accepted bool
	HackerID string
	Message  string
}

// Claim is what a proposal says happened to the pieces.
type Claim struct {
	Pieces   []Piece // turn holder's pieces, in proposal order
	Opponent []Piece
}

// Resolver derives the unique legal operation list for one action.
type Resolver interface {
	Resolve(g *GameState, c Claim) ([]Operation, error)
}

// Verify accepts the proposal only if it is exactly the list the engine
// derives for the declared action.
func Verify(req VerifyRequest) Verdict {
	if err := Check(req); err != nil {
		return Verdict{HackerID: req.Acting, Message: err.Error()}
	}
	return Verdict{Accepted: true}
}

// Check is Verify returning the rejection as an error.
func Check(req VerifyRequest) error {
	want, err := Expected(req)
	if err != nil {
		return err
	}
	if !EqualOperations(want, req.Proposed) {
		i := firstDifference(want, req.Proposed)
		return rejectf(declaredActionOrNone(req.Proposed),
			"proposal differs at operation %d: want %s, got %s",
			i, FormatOperations(want), FormatOperations(req.Proposed))
	}
	return nil
}

// Expected derives the operation list the proposal should have been.
func Expected(req VerifyRequest) ([]Operation, error) {
	players, seat, err := seating(req.Players, req.Acting)
	if err != nil {
		return nil, err
	}
	if len(req.PreviousState) == 0 {
		if seat != 0 {
			return nil, rejectf(ActionInitialize, "only the first player sets up the board")
		}
		return InitialOperations(players[0]), nil
	}

	g, err := DecodeState(req.PreviousState, SeatColor(seat), players)
	if err != nil {
		return nil, rejectErr(ActionNone, "previous state", err)
	}
	action, ok := declaredAction(req.Proposed)
	if !ok {
		return nil, rejectf(ActionNone, "proposal declares no action")
	}
	claim, err := extractClaim(req.Proposed, g.Turn)
	if err != nil {
		return nil, rejectErr(action, "claimed pieces", err)
	}
	return derive(&g, action, claim)
}

// Derive builds the legal operation list for a move the acting player wants
// to make. It is the client-side counterpart of Verify.
func Derive(players []string, prev WireState, acting string, action Action, claim Claim) ([]Operation, error) {
	infos := make([]PlayerInfo, len(players))
	for i, id := range players {
		infos[i] = PlayerInfo{ID: id}
	}
	ids, seat, err := seating(infos, acting)
	if err != nil {
		return nil, err
	}
	if len(prev) == 0 {
		if seat != 0 || action != ActionInitialize {
			return nil, rejectf(action, "the board must be set up first")
		}
		return InitialOperations(ids[0]), nil
	}
	g, err := DecodeState(prev, SeatColor(seat), ids)
	if err != nil {
		return nil, rejectErr(ActionNone, "previous state", err)
	}
	return derive(&g, action, claim)
}

func derive(g *GameState, action Action, claim Claim) ([]Operation, error) {
	r, err := resolverFor(action)
	if err != nil {
		return nil, err
	}
	if err := checkClaimKeys(g, action, claim); err != nil {
		return nil, err
	}
	return r.Resolve(g, claim)
}

// checkClaimKeys rejects claimed pieces that do not exist or belong to the
// wrong side. Resolvers index pieces by key and rely on this.
func checkClaimKeys(g *GameState, a Action, c Claim) error {
	for _, p := range c.Pieces {
		if p.Key.Color != g.Turn || p.Key.ID >= PiecesPerPlayer {
			return rejectf(a, "piece %s%d is not a piece of the mover", p.Key.Color, p.Key.ID)
		}
	}
	for _, p := range c.Opponent {
		if p.Key.Color != g.Turn.Opponent() || p.Key.ID >= PiecesPerPlayer {
			return rejectf(a, "piece %s%d is not an opponent piece", p.Key.Color, p.Key.ID)
		}
	}
	return nil
}

func resolverFor(a Action) (Resolver, error) {
	switch a {
	case ActionTaxi:
		return taxiResolver{}, nil
	case ActionMove:
		return moveResolver{}, nil
	case ActionStack:
		return stackResolver{}, nil
	case ActionJump:
		return jumpResolver{}, nil
	case ActionTakeShortcut:
		return shortcutResolver{}, nil
	case ActionInitialize:
		return nil, rejectf(a, "the board is already set up")
	}
	return nil, rejectf(a, "unknown action")
}

func seating(players []PlayerInfo, acting string) ([]string, int, error) {
	if len(players) != MaxPlayers {
		return nil, -1, rejectf(ActionNone, "need %d players, got %d", MaxPlayers, len(players))
	}
	ids := make([]string, len(players))
	seat := -1
	for i, p := range players {
		ids[i] = p.ID
		if p.ID == acting {
			seat = i
		}
	}
	if seat < 0 {
		return nil, -1, rejectf(ActionNone, "player %q is not seated", acting)
	}
	return ids, seat, nil
}

// declaredAction finds the action tag written by the proposal.
func declaredAction(ops []Operation) (Action, bool) {
	for _, op := range ops {
		if op.Kind == OpSet && op.Key == KeyAction && op.Value.Kind == ValueString {
			return ParseAction(op.Value.Str)
		}
	}
	return ActionNone, false
}

func declaredActionOrNone(ops []Operation) Action {
	a, _ := declaredAction(ops)
	return a
}

// extractClaim decodes every piece write in the proposal. Pieces of the
// unplayed colors are ignored here and fail the final comparison.
func extractClaim(ops []Operation, turn Color) (Claim, error) {
	var c Claim
	for _, op := range ops {
		if op.Kind != OpSet {
			continue
		}
		key, ok := ParsePieceKey(op.Key)
		if !ok || key.Color.Seat() < 0 {
			continue
		}
		if op.Value.Kind != ValueStrings {
			return c, rejectf(ActionNone, "piece %s is not a triple", key)
		}
		p, err := DecodePiece(op.Value.Strs, key.ID, key.Color)
		if err != nil {
			return c, err
		}
		if key.Color == turn {
			c.Pieces = append(c.Pieces, p)
		} else {
			c.Opponent = append(c.Opponent, p)
		}
	}
	return c, nil
}
