package engine

// taxiResolver moves one hangar piece to the launch pad on an even roll.
type taxiResolver struct{}

func (taxiResolver) Resolve(g *GameState, c Claim) ([]Operation, error) {
	if len(c.Opponent) > 0 {
		return nil, rejectf(ActionTaxi, "taxi cannot change opponent pieces")
	}
	if g.rolledThreeSixes() {
		return nil, rejectf(ActionTaxi, "third six in a row must send pieces back to the hangar")
	}
	if f := g.pendingFollowUp(); f != followNone {
		return nil, rejectf(ActionTaxi, "%s is pending", f)
	}
	if g.Die%2 != 0 {
		return nil, rejectf(ActionTaxi, "die %d is odd", g.Die)
	}
	if len(c.Pieces) != 1 {
		return nil, rejectf(ActionTaxi, "exactly one piece must be claimed, got %d", len(c.Pieces))
	}
	prev := g.Piece(c.Pieces[0].Key)
	if prev.Zone != Hangar || prev.FaceDown {
		return nil, rejectf(ActionTaxi, "piece %s is not waiting in the hangar", prev)
	}

	moved := Piece{Key: prev.Key, Square: Square{Zone: Launch}}
	after := g.PiecesOf(g.Turn)
	after[moved.Key.ID] = moved
	ids := SetOf(moved.Key.ID)
	return g.finish(outcome{
		action: ActionTaxi,
		movers: []Piece{moved},
		after:  after,
		landed: ids,
		rolls:  g.shiftRolls(),
		moves:  g.shiftMoves(ids),
	}), nil
}
