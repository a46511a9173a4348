package engine

// jumpResolver carries the pieces that just landed on an own-colored square
// forward to the next square of their color.
type jumpResolver struct{}

func (jumpResolver) Resolve(g *GameState, c Claim) ([]Operation, error) {
	if f := g.pendingFollowUp(); f != followJump {
		return nil, rejectf(ActionJump, "no jump pending (pending: %s)", f)
	}
	ids, err := claimedSet(ActionJump, c.Pieces)
	if err != nil {
		return nil, err
	}
	landed := g.LastTwoMoves[0]
	if ids != landed {
		return nil, rejectf(ActionJump, "must jump with pieces %q, claimed %q", landed, ids)
	}

	mine := g.PiecesOf(g.Turn)
	from, _ := commonSquare(mine, landed)
	dest := Square{Zone: Track, Pos: uint8((int(from.Pos) + JumpAmount) % TrackSpaces)}
	after := mine
	movers := make([]Piece, 0, landed.Len())
	for _, id := range landed.IDs() {
		p := mine[id]
		p.Square = dest
		after[id] = p
		movers = append(movers, p)
	}
	return g.finish(outcome{
		action:   ActionJump,
		movers:   movers,
		captured: g.capturesAt(dest),
		after:    after,
		landed:   landed,
		rolls:    g.LastTwoRolls,
		moves:    g.LastTwoMoves,
	}), nil
}
