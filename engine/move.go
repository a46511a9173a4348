package engine

// moveResolver advances one piece, or a whole stack, by the die.
type moveResolver struct{}

func (moveResolver) Resolve(g *GameState, c Claim) ([]Operation, error) {
	if g.rolledThreeSixes() {
		return g.evict(), nil
	}
	if f := g.pendingFollowUp(); f != followNone {
		return nil, rejectf(ActionMove, "%s is pending", f)
	}
	mine := g.PiecesOf(g.Turn)
	if len(c.Pieces) == 0 {
		if g.Die%2 == 0 || onSquareZone(mine, Hangar) != PiecesPerPlayer {
			return nil, rejectf(ActionMove, "a piece must move on die %d", g.Die)
		}
		return g.pass(ActionMove), nil
	}

	ids, err := claimedSet(ActionMove, c.Pieces)
	if err != nil {
		return nil, err
	}
	from, err := g.movingGroup(ids)
	if err != nil {
		return nil, err
	}

	dest, home := advance(g.Turn, from, g.Die)
	stacked := ids.Len() > 1
	after := mine
	movers := make([]Piece, 0, ids.Len())
	for _, id := range ids.IDs() {
		p := Piece{Key: PieceKey{Color: g.Turn, ID: id}}
		if home {
			p.Square = Square{Zone: Hangar, Pos: id}
			p.FaceDown = true
		} else {
			p.Square = dest
			p.Stacked = stacked
		}
		after[id] = p
		movers = append(movers, p)
	}

	if home && allFinished(after) {
		return g.win(ActionMove, movers), nil
	}
	var captured []Piece
	if !home {
		captured = g.capturesAt(dest)
	}
	return g.finish(outcome{
		action:   ActionMove,
		movers:   movers,
		captured: captured,
		after:    after,
		landed:   ids,
		rolls:    g.shiftRolls(),
		moves:    g.shiftMoves(ids),
	}), nil
}

// movingGroup validates that ids is a single unstacked piece or a complete
// stack, all on the board, and returns their square.
func (g *GameState) movingGroup(ids PieceSet) (Square, error) {
	mine := g.PiecesOf(g.Turn)
	list := ids.IDs()
	sq := mine[list[0]].Square
	for _, id := range list {
		p := mine[id]
		if p.Zone == Hangar {
			return Square{}, rejectf(ActionMove, "piece %s is in the hangar", p)
		}
		if p.Square != sq {
			return Square{}, rejectf(ActionMove, "claimed pieces are on different squares")
		}
		if p.Stacked != (len(list) > 1) {
			if p.Stacked {
				return Square{}, rejectf(ActionMove, "piece %s cannot leave its stack", p)
			}
			return Square{}, rejectf(ActionMove, "piece %s is not stacked", p)
		}
	}
	if len(list) > 1 && onSquare(mine, sq) != ids {
		return Square{}, rejectf(ActionMove, "the whole stack on %s must move together", sq)
	}
	return sq, nil
}

// evict answers a third six: every piece moved in the last two sub-moves
// goes back to the hangar and the turn passes.
func (g *GameState) evict() []Operation {
	mine := g.PiecesOf(g.Turn)
	ops := []Operation{
		SetTurn(g.PlayerID(g.Turn.Opponent())),
		rollDie(),
		actionOp(ActionMove),
	}
	for _, id := range g.LastTwoMoves[0].Union(g.LastTwoMoves[1]).IDs() {
		if mine[id].Finished() {
			continue
		}
		ops = append(ops, pieceOp(homePiece(mine[id])))
	}
	return append(ops, rollsOp(EmptyRolls), movesOp(EmptyMoves))
}

func onSquareZone(pieces [PiecesPerPlayer]Piece, z Zone) int {
	n := 0
	for _, p := range pieces {
		if p.Zone == z {
			n++
		}
	}
	return n
}

func allFinished(pieces [PiecesPerPlayer]Piece) bool {
	for _, p := range pieces {
		if !p.Finished() {
			return false
		}
	}
	return true
}
