package engine

// Prompt tells a seat what it is expected to do next.
type Prompt uint8

const (
	PromptWait         Prompt = iota // opponent's turn
	PromptChoosePiece                // pick a piece to taxi or move
	PromptPass                       // nothing can move; submit an empty move
	PromptBackToHangar               // third six: submit the eviction move
	PromptStack
	PromptJump
	PromptShortcut
	PromptGameOver
)

var promptNames = [...]string{"wait", "choose_piece", "pass", "back_to_hangar", "stack", "jump", "take_shortcut", "game_over"}

func (p Prompt) String() string {
	if int(p) < len(promptNames) {
		return promptNames[p]
	}
	return "unknown"
}

// NextPrompt reports what seat may do in g, where g.Turn is the color to move.
func NextPrompt(g *GameState, seat int) Prompt {
	for s := range g.Pieces {
		if allFinished(g.Pieces[s]) {
			return PromptGameOver
		}
	}
	if SeatColor(seat) != g.Turn {
		return PromptWait
	}
	if g.rolledThreeSixes() {
		return PromptBackToHangar
	}
	switch g.pendingFollowUp() {
	case followStack:
		return PromptStack
	case followJump:
		return PromptJump
	case followShortcut:
		return PromptShortcut
	}
	if len(MovablePieces(g)) == 0 {
		return PromptPass
	}
	return PromptChoosePiece
}

// MovablePieces lists the turn holder's pieces that may be claimed now.
// Selecting a stacked piece moves its whole stack.
func MovablePieces(g *GameState) []Piece {
	if g.rolledThreeSixes() {
		return nil
	}
	mine := g.PiecesOf(g.Turn)
	if f := g.pendingFollowUp(); f != followNone {
		out := make([]Piece, 0, PiecesPerPlayer)
		for _, id := range g.LastTwoMoves[0].IDs() {
			out = append(out, mine[id])
		}
		return out
	}
	var out []Piece
	for _, p := range mine {
		switch {
		case p.Finished():
		case p.Zone == Hangar:
			if g.Die%2 == 0 {
				out = append(out, p)
			}
		default:
			out = append(out, p)
		}
	}
	return out
}

// SelectPiece builds the action and claim for picking piece id: a taxi from
// the hangar, otherwise a move of the piece or of its whole stack.
func (g *GameState) SelectPiece(id uint8) (Action, Claim) {
	mine := g.PiecesOf(g.Turn)
	p := mine[id]
	if p.Zone == Hangar {
		return ActionTaxi, Claim{Pieces: []Piece{p}}
	}
	ids := SetOf(id)
	if p.Stacked {
		ids = onSquare(mine, p.Square)
	}
	var c Claim
	for _, i := range ids.IDs() {
		c.Pieces = append(c.Pieces, mine[i])
	}
	return ActionMove, c
}

// FollowUpClaim builds the claim resolving the pending follow-up. take
// selects stacking over unstacking, or taking the shortcut over declining.
func (g *GameState) FollowUpClaim(take bool) (Action, Claim) {
	f := g.pendingFollowUp()
	mine := g.PiecesOf(g.Turn)
	var c Claim
	switch f {
	case followStack:
		sq, _ := commonSquare(mine, g.LastTwoMoves[0])
		for _, id := range onSquare(mine, sq).IDs() {
			p := mine[id]
			p.Stacked = take
			c.Pieces = append(c.Pieces, p)
		}
	case followJump:
		for _, id := range g.LastTwoMoves[0].IDs() {
			c.Pieces = append(c.Pieces, mine[id])
		}
	case followShortcut:
		if take {
			for _, id := range g.LastTwoMoves[0].IDs() {
				c.Pieces = append(c.Pieces, mine[id])
			}
		}
	}
	return f.action(), c
}
