package engine

// stackResolver records the stack-or-unstack choice for the pieces sharing
// the square the last move landed on.
type stackResolver struct{}

func (stackResolver) Resolve(g *GameState, c Claim) ([]Operation, error) {
	if len(c.Opponent) > 0 {
		return nil, rejectf(ActionStack, "stacking cannot change opponent pieces")
	}
	if f := g.pendingFollowUp(); f != followStack {
		return nil, rejectf(ActionStack, "no stack decision pending (pending: %s)", f)
	}
	if len(c.Pieces) == 0 {
		return nil, rejectf(ActionStack, "no pieces claimed")
	}
	ids, err := claimedSet(ActionStack, c.Pieces)
	if err != nil {
		return nil, err
	}

	mine := g.PiecesOf(g.Turn)
	sq, _ := commonSquare(mine, g.LastTwoMoves[0])
	choice := c.Pieces[0].Stacked
	for _, p := range c.Pieces {
		if p.Square != mine[p.Key.ID].Square {
			return nil, rejectf(ActionStack, "piece %s cannot change square while stacking", p.Key)
		}
		if p.Square != sq {
			return nil, rejectf(ActionStack, "piece %s is not on %s", p.Key, sq)
		}
		if p.Stacked != choice {
			return nil, rejectf(ActionStack, "pieces on %s must all be stacked or all unstacked", sq)
		}
	}
	all := onSquare(mine, sq)
	if ids != all {
		return nil, rejectf(ActionStack, "every piece on %s must be claimed", sq)
	}

	after := mine
	movers := make([]Piece, 0, all.Len())
	for _, id := range all.IDs() {
		p := mine[id]
		p.Stacked = choice
		after[id] = p
		movers = append(movers, p)
	}
	moves := g.LastTwoMoves
	if choice {
		moves[0] = all
	}
	return g.finish(outcome{
		action: ActionStack,
		movers: movers,
		after:  after,
		landed: moves[0],
		rolls:  g.LastTwoRolls,
		moves:  moves,
	}), nil
}
