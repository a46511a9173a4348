package engine

import "strings"

// Board and player numerics.
const (
	NumColors       = 4
	MaxPlayers      = 2
	PiecesPerPlayer = 4
	TrackSpaces     = 52
	FinalSpaces     = 6
	HomeSpace       = 5 // F05: reaching it sends the piece home face-down
	JumpAmount      = 4
	ShortcutAmount  = 12

	// ShortcutCrossingSpace is the final-stretch square every shortcut flies over.
	ShortcutCrossingSpace = 2
)

// Die range is [DieFrom, DieTo).
const (
	DieFrom = 1
	DieTo   = 7
)

// Color is one of the four board colors, in clockwise order.
// Only Red (seat 0) and Yellow (seat 1) are played in the two-player game;
// Blue and Green exist to color the track.
type Color uint8

const (
	Red Color = iota
	Blue
	Yellow
	Green
)

var colorLetters = [NumColors]string{"R", "B", "Y", "G"}

// Letter returns the single-letter wire prefix for the color.
func (c Color) Letter() string {
	if int(c) < NumColors {
		return colorLetters[c]
	}
	return "?"
}

func (c Color) String() string { return c.Letter() }

// ColorFromLetter parses a wire color prefix.
func ColorFromLetter(s string) (Color, bool) {
	for i, l := range colorLetters {
		if l == s {
			return Color(i), true
		}
	}
	return 0, false
}

// SeatColor maps a player's position in the player list to its color.
func SeatColor(seat int) Color {
	if seat == 0 {
		return Red
	}
	return Yellow
}

// Seat returns the player index holding this color, or -1 for the unplayed colors.
func (c Color) Seat() int {
	switch c {
	case Red:
		return 0
	case Yellow:
		return 1
	}
	return -1
}

// Opponent returns the other active color.
func (c Color) Opponent() Color {
	if c == Red {
		return Yellow
	}
	return Red
}

// Zone is a piece's coarse location category.
type Zone uint8

const (
	Hangar Zone = iota
	Launch
	Track
	FinalStretch
)

var zoneLetters = [...]byte{'H', 'L', 'T', 'F'}

// Letter returns the zone's location prefix.
func (z Zone) Letter() byte {
	if int(z) < len(zoneLetters) {
		return zoneLetters[z]
	}
	return '?'
}

func zoneFromLetter(b byte) (Zone, bool) {
	for i, l := range zoneLetters {
		if l == b {
			return Zone(i), true
		}
	}
	return 0, false
}

// size is the number of addressable positions in the zone.
func (z Zone) size() int {
	switch z {
	case Hangar:
		return PiecesPerPlayer
	case Launch:
		return 1
	case Track:
		return TrackSpaces
	case FinalStretch:
		return FinalSpaces
	}
	return 0
}

// Square is a (zone, position) pair. Hangar, Launch and FinalStretch squares
// are private to a color; Track squares are shared.
type Square struct {
	Zone Zone
	Pos  uint8
}

// String renders the wire location, e.g. "T07".
func (s Square) String() string {
	return string([]byte{s.Zone.Letter(), '0' + s.Pos/10, '0' + s.Pos%10})
}

// PieceKey is a piece's immutable identity.
type PieceKey struct {
	Color Color
	ID    uint8
}

// String returns the wire key of the piece, e.g. "R2".
func (k PieceKey) String() string {
	return k.Color.Letter() + string(rune('0'+k.ID))
}

// Piece is an identity key plus mutable attributes. Two Piece values with
// the same Key are the same piece regardless of location; compare with Same.
type Piece struct {
	Key PieceKey
	Square
	Stacked  bool
	FaceDown bool
}

func (p Piece) String() string {
	return p.Key.String() + "@" + p.Square.String()
}

// Same reports whether p and o are the same physical piece.
func (p Piece) Same(o Piece) bool { return p.Key == o.Key }

// Finished reports whether the piece has reached home and left play.
func (p Piece) Finished() bool { return p.Zone == Hangar && p.FaceDown }

// homePiece returns p sent back to its own hangar slot, face-up and unstacked.
func homePiece(p Piece) Piece {
	return Piece{Key: p.Key, Square: Square{Zone: Hangar, Pos: p.Key.ID}}
}

// PieceSet is a small set of piece ids of one color.
type PieceSet uint8

// SetOf builds a PieceSet from ids.
func SetOf(ids ...uint8) PieceSet {
	var s PieceSet
	for _, id := range ids {
		s = s.With(id)
	}
	return s
}

// Has reports whether id is in the set.
func (s PieceSet) Has(id uint8) bool { return s&(1<<id) != 0 }

// With returns the set plus id.
func (s PieceSet) With(id uint8) PieceSet { return s | 1<<id }

// Union returns the ids in either set.
func (s PieceSet) Union(o PieceSet) PieceSet { return s | o }

// Empty reports whether the set has no ids.
func (s PieceSet) Empty() bool { return s == 0 }

// Len returns the number of ids in the set.
func (s PieceSet) Len() int {
	n := 0
	for id := uint8(0); id < PiecesPerPlayer; id++ {
		if s.Has(id) {
			n++
		}
	}
	return n
}

// IDs returns the ids in ascending order.
func (s PieceSet) IDs() []uint8 {
	ids := make([]uint8, 0, PiecesPerPlayer)
	for id := uint8(0); id < PiecesPerPlayer; id++ {
		if s.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// String returns the wire form: ascending digit characters, "" when empty.
func (s PieceSet) String() string {
	var b strings.Builder
	for _, id := range s.IDs() {
		b.WriteByte('0' + id)
	}
	return b.String()
}

// Action is the tag a proposal declares.
type Action uint8

const (
	ActionNone Action = iota
	ActionInitialize
	ActionTaxi
	ActionMove
	ActionStack
	ActionJump
	ActionTakeShortcut
)

var actionNames = [...]string{"", "initialize", "taxi", "move", "stack", "jump", "take_shortcut"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction parses a wire action tag.
func ParseAction(s string) (Action, bool) {
	for i, name := range actionNames {
		if i > 0 && name == s {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// Sentinel history values used whenever the turn changes hands.
var (
	EmptyRolls = [2]int{-1, -1}
	EmptyMoves = [2]PieceSet{}
)

// GameState is the structured form of the wire state. It is rebuilt from the
// wire on every verification and never mutated by the resolvers.
type GameState struct {
	Turn         Color
	Players      [MaxPlayers]string
	Die          int
	Action       Action // tag of the previously accepted move
	Pieces       [MaxPlayers][PiecesPerPlayer]Piece
	LastTwoRolls [2]int
	LastTwoMoves [2]PieceSet
}

// PiecesOf returns a copy of the pieces of an active color.
func (g *GameState) PiecesOf(c Color) [PiecesPerPlayer]Piece {
	return g.Pieces[c.Seat()]
}

// Piece returns the current attributes of the piece with key k.
func (g *GameState) Piece(k PieceKey) Piece {
	return g.Pieces[k.Color.Seat()][k.ID]
}

// PlayerID returns the id of the player holding color c.
func (g *GameState) PlayerID(c Color) string {
	return g.Players[c.Seat()]
}

// rolledThreeSixes reports a third consecutive 6 waiting to be played.
func (g *GameState) rolledThreeSixes() bool {
	return g.Die == 6 && g.LastTwoRolls == [2]int{6, 6} && g.pendingFollowUp() == followNone
}

// shiftRolls records the current die as the most recent roll.
func (g *GameState) shiftRolls() [2]int {
	return [2]int{g.Die, g.LastTwoRolls[0]}
}

// shiftMoves records ids as the most recently moved pieces.
func (g *GameState) shiftMoves(ids PieceSet) [2]PieceSet {
	return [2]PieceSet{ids, g.LastTwoMoves[0]}
}
