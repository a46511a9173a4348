package engine

// shortcutResolver takes or declines the shortcut from the color's entry square.
// An empty claim declines it.
type shortcutResolver struct{}

func (shortcutResolver) Resolve(g *GameState, c Claim) ([]Operation, error) {
	if f := g.pendingFollowUp(); f != followShortcut {
		return nil, rejectf(ActionTakeShortcut, "no shortcut pending (pending: %s)", f)
	}
	mine := g.PiecesOf(g.Turn)
	landed := g.LastTwoMoves[0]
	if len(c.Pieces) == 0 {
		return g.finish(outcome{
			action: ActionTakeShortcut,
			after:  mine,
			landed: landed,
			rolls:  g.LastTwoRolls,
			moves:  g.LastTwoMoves,
		}), nil
	}
	ids, err := claimedSet(ActionTakeShortcut, c.Pieces)
	if err != nil {
		return nil, err
	}
	if ids != landed {
		return nil, rejectf(ActionTakeShortcut, "must fly pieces %q, claimed %q", landed, ids)
	}

	dest := Square{Zone: Track, Pos: uint8(ShortcutExit(g.Turn))}
	after := mine
	movers := make([]Piece, 0, landed.Len())
	for _, id := range landed.IDs() {
		p := mine[id]
		p.Square = dest
		after[id] = p
		movers = append(movers, p)
	}
	return g.finish(outcome{
		action:   ActionTakeShortcut,
		movers:   movers,
		captured: append(g.capturesAt(dest), g.crossingCaptures()...),
		after:    after,
		landed:   landed,
		rolls:    g.LastTwoRolls,
		moves:    g.LastTwoMoves,
	}), nil
}

// crossingCaptures returns the opponent pieces under the shortcut chord.
func (g *GameState) crossingCaptures() []Piece {
	opp := g.Turn.Opponent()
	if ShortcutCrossing(g.Turn) != opp {
		return nil
	}
	under := Square{Zone: FinalStretch, Pos: ShortcutCrossingSpace}
	var out []Piece
	for _, p := range g.PiecesOf(opp) {
		if p.Square == under {
			out = append(out, homePiece(p))
		}
	}
	return out
}
