package engine

import "sort"

// followUp is the extra action a player owes after a sub-move.
type followUp uint8

const (
	followNone followUp = iota
	followStack
	followJump
	followShortcut
)

func (f followUp) String() string {
	switch f {
	case followStack:
		return "stack"
	case followJump:
		return "jump"
	case followShortcut:
		return "take_shortcut"
	}
	return "none"
}

// action returns the tag that resolves f.
func (f followUp) action() Action {
	switch f {
	case followStack:
		return ActionStack
	case followJump:
		return ActionJump
	case followShortcut:
		return ActionTakeShortcut
	}
	return ActionNone
}

// followUpAfter returns the opportunity open to the pieces in landed, of
// color c, once action has been applied. A move may owe a jump, then a stack
// decision, then a shortcut. Any landing on own pieces owes a stack decision,
// and only a shortcut can follow a stack decision, so a jump is taken at most
// once per die.
func followUpAfter(c Color, action Action, pieces [PiecesPerPlayer]Piece, landed PieceSet) followUp {
	sq, ok := commonSquare(pieces, landed)
	if !ok {
		return followNone
	}
	switch action {
	case ActionMove:
		if jumpEligible(c, sq) {
			return followJump
		}
		fallthrough
	case ActionJump:
		if stackAvailable(pieces, sq, landed) {
			return followStack
		}
		fallthrough
	case ActionStack:
		if shortcutEligible(c, sq) {
			return followShortcut
		}
	case ActionTakeShortcut:
		if stackAvailable(pieces, sq, landed) {
			return followStack
		}
	}
	return followNone
}

// pendingFollowUp is the opportunity the turn holder must resolve next.
func (g *GameState) pendingFollowUp() followUp {
	return followUpAfter(g.Turn, g.Action, g.PiecesOf(g.Turn), g.LastTwoMoves[0])
}

// outcome is what a resolver computed before the shared turn bookkeeping.
type outcome struct {
	action   Action
	movers   []Piece // turn holder's changed pieces
	captured []Piece // opponent pieces sent home
	after    [PiecesPerPlayer]Piece
	landed   PieceSet // pieces that may owe a follow-up
	rolls    [2]int   // history if the turn is kept
	moves    [2]PieceSet
}

// finish lays out the canonical operation list for o:
// turn, optional die roll, action, mover pieces, captures, history.
func (g *GameState) finish(o outcome) []Operation {
	self := g.PlayerID(g.Turn)
	pending := followUpAfter(g.Turn, o.action, o.after, o.landed) != followNone

	ops := make([]Operation, 0, 4+len(o.movers)+len(o.captured)+2)
	rolls, moves := o.rolls, o.moves
	switch {
	case pending:
		ops = append(ops, SetTurn(self))
	case g.Die == 6:
		ops = append(ops, SetTurn(self), rollDie())
	default:
		ops = append(ops, SetTurn(g.PlayerID(g.Turn.Opponent())), rollDie())
		rolls, moves = EmptyRolls, EmptyMoves
	}
	ops = append(ops, actionOp(o.action))
	for _, p := range sortedPieces(o.movers) {
		ops = append(ops, pieceOp(p))
	}
	for _, p := range sortedPieces(o.captured) {
		ops = append(ops, pieceOp(p))
	}
	return append(ops, rollsOp(rolls), movesOp(moves))
}

// pass ends the turn with no piece changes.
func (g *GameState) pass(action Action) []Operation {
	return []Operation{
		SetTurn(g.PlayerID(g.Turn.Opponent())),
		rollDie(),
		actionOp(action),
		rollsOp(EmptyRolls),
		movesOp(EmptyMoves),
	}
}

// win ends the game for the turn holder.
func (g *GameState) win(action Action, movers []Piece) []Operation {
	self := g.PlayerID(g.Turn)
	ops := []Operation{SetTurn(self), actionOp(action)}
	for _, p := range sortedPieces(movers) {
		ops = append(ops, pieceOp(p))
	}
	return append(ops, EndGame(self))
}

// capturesAt returns the opponent pieces on track square sq, sent home.
// Final stretches are private, so only the track captures.
func (g *GameState) capturesAt(sq Square) []Piece {
	if sq.Zone != Track {
		return nil
	}
	var out []Piece
	for _, p := range g.PiecesOf(g.Turn.Opponent()) {
		if !p.Finished() && p.Square == sq {
			out = append(out, homePiece(p))
		}
	}
	return out
}

// sortedPieces orders pieces by id, keeping the caller's slice intact.
func sortedPieces(ps []Piece) []Piece {
	out := make([]Piece, len(ps))
	copy(out, ps)
	sort.Slice(out, func(i, j int) bool { return out[i].Key.ID < out[j].Key.ID })
	return out
}

// claimedSet collects the ids of claimed pieces, rejecting duplicates.
func claimedSet(a Action, pieces []Piece) (PieceSet, error) {
	var s PieceSet
	for _, p := range pieces {
		if s.Has(p.Key.ID) {
			return 0, rejectf(a, "piece %s claimed twice", p.Key)
		}
		s = s.With(p.Key.ID)
	}
	return s, nil
}
