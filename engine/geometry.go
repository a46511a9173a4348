package engine

// Per-color track landmarks, indexed by Color.
var (
	shortcutEntries    = [NumColors]int{36, 49, 10, 23}
	finalStretchStarts = [NumColors]int{16, 29, 42, 3}
	launchStarts       = [NumColors]int{18, 31, 44, 5}
)

// ShortcutEntry is the track square where color c may take its shortcut.
func ShortcutEntry(c Color) int { return shortcutEntries[c] }

// ShortcutExit is the track square a shortcut lands on.
func ShortcutExit(c Color) int { return (shortcutEntries[c] + ShortcutAmount) % TrackSpaces }

// FinalStretchStart is the last track square before color c turns into its final stretch.
func FinalStretchStart(c Color) int { return finalStretchStarts[c] }

// LaunchStart is the track square counted from when leaving the launch pad.
func LaunchStart(c Color) int { return launchStarts[c] }

// TrackSpaceColor returns the color painted on a track square.
func TrackSpaceColor(space int) Color { return Color(space % NumColors) }

// shortcutEndOfPriorColor is the own-colored square just before the next
// color's shortcut entry. It coincides with the shortcut exit.
func shortcutEndOfPriorColor(c Color) int {
	next := Color((int(c) + 1) % NumColors)
	return (shortcutEntries[next] - 1 + TrackSpaces) % TrackSpaces
}

// ShortcutCrossing returns the color whose final stretch the shortcut of c
// flies over: the one whose stretch begins halfway along the chord.
func ShortcutCrossing(c Color) Color {
	mid := (shortcutEntries[c] + ShortcutAmount/2) % TrackSpaces
	for i, start := range finalStretchStarts {
		if start == mid {
			return Color(i)
		}
	}
	return c
}

// jumpEligible reports whether a piece of color c standing on sq may jump.
func jumpEligible(c Color, sq Square) bool {
	if sq.Zone != Track {
		return false
	}
	s := int(sq.Pos)
	switch {
	case TrackSpaceColor(s) != c:
		return false
	case s == ShortcutEntry(c), s == shortcutEndOfPriorColor(c), s == FinalStretchStart(c):
		return false
	}
	return true
}

// shortcutEligible reports whether a piece of color c on sq may take the shortcut.
func shortcutEligible(c Color, sq Square) bool {
	return sq.Zone == Track && int(sq.Pos) == ShortcutEntry(c)
}

// distanceHome is the number of steps from sq to home for color c.
// Hangar and Launch squares have no distance.
func distanceHome(c Color, sq Square) (int, bool) {
	switch sq.Zone {
	case FinalStretch:
		return HomeSpace - int(sq.Pos), true
	case Track:
		k := (FinalStretchStart(c) - int(sq.Pos) + TrackSpaces) % TrackSpaces
		return FinalSpaces + k, true
	}
	return 0, false
}

// squareAtDistance converts a positive distance from home back to a square.
func squareAtDistance(c Color, d int) Square {
	if d < FinalSpaces {
		return Square{Zone: FinalStretch, Pos: uint8(HomeSpace - d)}
	}
	k := d - FinalSpaces
	return Square{Zone: Track, Pos: uint8(((FinalStretchStart(c)-k)%TrackSpaces + TrackSpaces) % TrackSpaces)}
}

// advance moves a piece of color c from sq by die steps. home is true when
// the piece lands exactly home; overshooting bounces back from home.
func advance(c Color, from Square, die int) (dest Square, home bool) {
	if from.Zone == Launch {
		return Square{Zone: Track, Pos: uint8((LaunchStart(c) + die) % TrackSpaces)}, false
	}
	dist, _ := distanceHome(c, from)
	rem := dist - die
	if rem == 0 {
		return Square{}, true
	}
	if rem < 0 {
		rem = -rem
	}
	return squareAtDistance(c, rem), false
}

// onSquare returns the ids of the unfinished pieces standing on sq.
func onSquare(pieces [PiecesPerPlayer]Piece, sq Square) PieceSet {
	var s PieceSet
	for i, p := range pieces {
		if !p.Finished() && p.Square == sq {
			s = s.With(uint8(i))
		}
	}
	return s
}

// stackAvailable reports another own piece, outside landed, sharing sq.
func stackAvailable(pieces [PiecesPerPlayer]Piece, sq Square, landed PieceSet) bool {
	if sq.Zone != Track && sq.Zone != FinalStretch {
		return false
	}
	return onSquare(pieces, sq)&^landed != 0
}

// commonSquare returns the square shared by every piece in ids, if any.
func commonSquare(pieces [PiecesPerPlayer]Piece, ids PieceSet) (Square, bool) {
	if ids.Empty() {
		return Square{}, false
	}
	var sq Square
	first := true
	for _, id := range ids.IDs() {
		p := pieces[id]
		if p.Zone == Hangar {
			return Square{}, false
		}
		if first {
			sq, first = p.Square, false
			continue
		}
		if p.Square != sq {
			return Square{}, false
		}
	}
	return sq, true
}
