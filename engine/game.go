// Package engine implements the Aeroplane Chess move referee.
//
// A move arrives as an ordered list of primitive operations. The engine
// rebuilds the structured state from the previous wire state, derives the
// unique operation list the declared action must produce, and accepts the
// proposal only on an exact, order-sensitive match. The package is pure:
// it never rolls the die, keeps no state and performs no I/O.
package engine

// InitialOperations is the fixed list that sets up a fresh board. first is
// the id of the player in seat 0, who moves first.
func InitialOperations(first string) []Operation {
	ops := []Operation{
		SetTurn(first),
		rollDie(),
		actionOp(ActionInitialize),
	}
	for seat := 0; seat < MaxPlayers; seat++ {
		c := SeatColor(seat)
		for id := uint8(0); id < PiecesPerPlayer; id++ {
			ops = append(ops, pieceOp(homePiece(Piece{Key: PieceKey{Color: c, ID: id}})))
		}
	}
	return append(ops, rollsOp(EmptyRolls), movesOp(EmptyMoves))
}

// NewGame returns the structured state right after setup, with die as the
// first roll. It is the state InitialOperations produces.
func NewGame(players [MaxPlayers]string, die int) GameState {
	g := GameState{
		Turn:         Red,
		Players:      players,
		Die:          die,
		Action:       ActionInitialize,
		LastTwoRolls: EmptyRolls,
		LastTwoMoves: EmptyMoves,
	}
	for seat := 0; seat < MaxPlayers; seat++ {
		for id := uint8(0); id < PiecesPerPlayer; id++ {
			g.Pieces[seat][id] = homePiece(Piece{Key: PieceKey{Color: SeatColor(seat), ID: id}})
		}
	}
	return g
}
