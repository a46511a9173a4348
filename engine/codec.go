package engine

import "fmt"

// ParseSquare parses a wire location such as "T07".
func ParseSquare(loc string) (Square, error) {
	if len(loc) != 3 {
		return Square{}, fmt.Errorf("%w: location %q", ErrMalformed, loc)
	}
	zone, ok := zoneFromLetter(loc[0])
	if !ok {
		return Square{}, fmt.Errorf("%w: zone in %q", ErrMalformed, loc)
	}
	hi, lo := loc[1], loc[2]
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return Square{}, fmt.Errorf("%w: index in %q", ErrMalformed, loc)
	}
	pos := int(hi-'0')*10 + int(lo-'0')
	if pos >= zone.size() {
		return Square{}, fmt.Errorf("%w: index out of range in %q", ErrMalformed, loc)
	}
	return Square{Zone: zone, Pos: uint8(pos)}, nil
}

// DecodePiece builds piece id of color c from its wire triple
// [location, stackedTag, faceTag].
func DecodePiece(triple []string, id uint8, c Color) (Piece, error) {
	if len(triple) != 3 {
		return Piece{}, fmt.Errorf("%w: piece %s%d has %d fields", ErrMalformed, c, id, len(triple))
	}
	sq, err := ParseSquare(triple[0])
	if err != nil {
		return Piece{}, err
	}
	p := Piece{Key: PieceKey{Color: c, ID: id}, Square: sq}
	switch triple[1] {
	case TagStacked:
		p.Stacked = true
	case TagUnstacked:
	default:
		return Piece{}, fmt.Errorf("%w: stack tag %q", ErrMalformed, triple[1])
	}
	switch triple[2] {
	case TagFaceDown:
		p.FaceDown = true
	case TagFaceUp:
	default:
		return Piece{}, fmt.Errorf("%w: face tag %q", ErrMalformed, triple[2])
	}
	return p, nil
}

// EncodePiece returns the wire triple of p.
func EncodePiece(p Piece) []string {
	stack, face := TagUnstacked, TagFaceUp
	if p.Stacked {
		stack = TagStacked
	}
	if p.FaceDown {
		face = TagFaceDown
	}
	return []string{p.Square.String(), stack, face}
}

// PieceValue is the wire value of p.
func PieceValue(p Piece) Value { return StringsValue(EncodePiece(p)...) }

// ParsePieceKey parses a wire piece key such as "Y3".
func ParsePieceKey(key string) (PieceKey, bool) {
	if len(key) != 2 {
		return PieceKey{}, false
	}
	c, ok := ColorFromLetter(key[:1])
	if !ok || key[1] < '0' || key[1] >= '0'+PiecesPerPlayer {
		return PieceKey{}, false
	}
	return PieceKey{Color: c, ID: key[1] - '0'}, true
}

// ParsePieceSet parses the canonical wire form of a set: strictly ascending
// digit characters.
func ParsePieceSet(s string) (PieceSet, error) {
	var set PieceSet
	last := -1
	for i := 0; i < len(s); i++ {
		d := int(s[i]) - '0'
		if d < 0 || d >= PiecesPerPlayer || d <= last {
			return 0, fmt.Errorf("%w: piece set %q", ErrMalformed, s)
		}
		set = set.With(uint8(d))
		last = d
	}
	return set, nil
}

// WireState is the flat key/value view of a match.
type WireState map[string]Value

// DecodeState builds the structured state. turn is the color whose player is
// acting; players lists the player ids in seat order.
func DecodeState(ws WireState, turn Color, players []string) (GameState, error) {
	var g GameState
	if len(players) != MaxPlayers {
		return g, fmt.Errorf("%w: need %d players, got %d", ErrMalformed, MaxPlayers, len(players))
	}
	copy(g.Players[:], players)
	g.Turn = turn

	die, ok := ws[KeyDie]
	if !ok || die.Kind != ValueInt || die.Int < DieFrom || die.Int >= DieTo {
		return g, fmt.Errorf("%w: die %v", ErrMalformed, die)
	}
	g.Die = die.Int

	act, ok := ws[KeyAction]
	if !ok || act.Kind != ValueString {
		return g, fmt.Errorf("%w: action %v", ErrMalformed, act)
	}
	if g.Action, ok = ParseAction(act.Str); !ok {
		return g, fmt.Errorf("%w: action %q", ErrMalformed, act.Str)
	}

	for seat := 0; seat < MaxPlayers; seat++ {
		c := SeatColor(seat)
		for id := uint8(0); id < PiecesPerPlayer; id++ {
			key := PieceKey{Color: c, ID: id}.String()
			v, ok := ws[key]
			if !ok || v.Kind != ValueStrings {
				return g, fmt.Errorf("%w: piece %s missing", ErrMalformed, key)
			}
			p, err := DecodePiece(v.Strs, id, c)
			if err != nil {
				return g, err
			}
			g.Pieces[seat][id] = p
		}
	}

	rolls, ok := ws[KeyLastTwoRolls]
	if !ok || rolls.Kind != ValueInts || len(rolls.Ints) != 2 {
		return g, fmt.Errorf("%w: lastTwoRolls %v", ErrMalformed, rolls)
	}
	copy(g.LastTwoRolls[:], rolls.Ints)

	moves, ok := ws[KeyLastTwoMoves]
	if !ok || moves.Kind != ValueStrings || len(moves.Strs) != 2 {
		return g, fmt.Errorf("%w: lastTwoMoves %v", ErrMalformed, moves)
	}
	for i, s := range moves.Strs {
		set, err := ParsePieceSet(s)
		if err != nil {
			return g, err
		}
		g.LastTwoMoves[i] = set
	}
	return g, nil
}

// EncodeState is the inverse of DecodeState. Turn and players live outside
// the wire map and are not encoded.
func EncodeState(g GameState) WireState {
	ws := WireState{
		KeyDie:          IntValue(g.Die),
		KeyAction:       StringValue(g.Action.String()),
		KeyLastTwoRolls: IntsValue(g.LastTwoRolls[0], g.LastTwoRolls[1]),
		KeyLastTwoMoves: StringsValue(g.LastTwoMoves[0].String(), g.LastTwoMoves[1].String()),
	}
	for seat := range g.Pieces {
		for _, p := range g.Pieces[seat] {
			ws[p.Key.String()] = PieceValue(p)
		}
	}
	return ws
}

// Apply writes the field-set operations of ops into a copy of ws. Other
// operation kinds are left to the caller.
func (ws WireState) Apply(ops []Operation) WireState {
	out := make(WireState, len(ws)+len(ops))
	for k, v := range ws {
		out[k] = v
	}
	for _, op := range ops {
		if op.Kind == OpSet {
			out[op.Key] = op.Value
		}
	}
	return out
}
