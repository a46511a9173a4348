package engine

import (
	"fmt"
	"strings"
)

// Wire keys that are not piece keys.
const (
	KeyDie          = "die"
	KeyAction       = "action"
	KeyLastTwoRolls = "lastTwoRolls"
	KeyLastTwoMoves = "lastTwoMoves"
)

// Wire tags for piece attributes.
const (
	TagStacked   = "stacked"
	TagUnstacked = "unstacked"
	TagFaceUp    = "faceup"
	TagFaceDown  = "facedown"
)

// ValueKind discriminates the Value union.
type ValueKind uint8

const (
	ValueInt ValueKind = iota + 1
	ValueString
	ValueStrings
	ValueInts
)

// Value is one state value: an int, a string, a list of strings or a list of ints.
type Value struct {
	Kind ValueKind
	Int  int
	Str  string
	Strs []string
	Ints []int
}

// IntValue, StringValue, StringsValue and IntsValue wrap a Go value in the
// matching Value kind.
func IntValue(n int) Value           { return Value{Kind: ValueInt, Int: n} }
func StringValue(s string) Value     { return Value{Kind: ValueString, Str: s} }
func StringsValue(s ...string) Value { return Value{Kind: ValueStrings, Strs: s} }
func IntsValue(n ...int) Value       { return Value{Kind: ValueInts, Ints: n} }

// Equal compares kind and contents; nil and empty lists are equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValueInt:
		return v.Int == o.Int
	case ValueString:
		return v.Str == o.Str
	case ValueStrings:
		if len(v.Strs) != len(o.Strs) {
			return false
		}
		for i := range v.Strs {
			if v.Strs[i] != o.Strs[i] {
				return false
			}
		}
		return true
	case ValueInts:
		if len(v.Ints) != len(o.Ints) {
			return false
		}
		for i := range v.Ints {
			if v.Ints[i] != o.Ints[i] {
				return false
			}
		}
		return true
	}
	return true
}

func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return fmt.Sprint(v.Int)
	case ValueString:
		return fmt.Sprintf("%q", v.Str)
	case ValueStrings:
		return fmt.Sprintf("%q", v.Strs)
	case ValueInts:
		return fmt.Sprint(v.Ints)
	}
	return "<nil>"
}

// OpKind discriminates Operation.
type OpKind uint8

const (
	OpSet OpKind = iota + 1
	OpSetTurn
	OpSetRandomInteger
	OpEndGame
)

var opKindNames = [...]string{"", "set", "setTurn", "setRandomInteger", "endGame"}

func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "unknown"
}

// Operation is one primitive state mutation. Only the fields relevant to
// Kind are meaningful.
type Operation struct {
	Kind     OpKind
	Key      string
	Value    Value
	PlayerID string
	From     int
	To       int
}

// Set writes value under key.
func Set(key string, value Value) Operation {
	return Operation{Kind: OpSet, Key: key, Value: value}
}

// SetTurn hands the turn to playerID.
func SetTurn(playerID string) Operation {
	return Operation{Kind: OpSetTurn, PlayerID: playerID}
}

// SetRandomInteger asks the service to store a uniform integer in [from, to) under key.
func SetRandomInteger(key string, from, to int) Operation {
	return Operation{Kind: OpSetRandomInteger, Key: key, From: from, To: to}
}

// EndGame declares playerID the winner.
func EndGame(playerID string) Operation {
	return Operation{Kind: OpEndGame, PlayerID: playerID}
}

// Equal compares only the fields relevant to the operation kind.
func (o Operation) Equal(p Operation) bool {
	if o.Kind != p.Kind {
		return false
	}
	switch o.Kind {
	case OpSet:
		return o.Key == p.Key && o.Value.Equal(p.Value)
	case OpSetTurn, OpEndGame:
		return o.PlayerID == p.PlayerID
	case OpSetRandomInteger:
		return o.Key == p.Key && o.From == p.From && o.To == p.To
	}
	return true
}

func (o Operation) String() string {
	switch o.Kind {
	case OpSet:
		return fmt.Sprintf("set(%s=%s)", o.Key, o.Value)
	case OpSetTurn:
		return fmt.Sprintf("setTurn(%s)", o.PlayerID)
	case OpSetRandomInteger:
		return fmt.Sprintf("setRandomInteger(%s,%d,%d)", o.Key, o.From, o.To)
	case OpEndGame:
		return fmt.Sprintf("endGame(%s)", o.PlayerID)
	}
	return "unknown"
}

// EqualOperations is order-sensitive list equality.
func EqualOperations(a, b []Operation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// FormatOperations renders ops for diagnostics.
func FormatOperations(ops []Operation) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = op.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// firstDifference returns the index of the first mismatch between a and b.
func firstDifference(a, b []Operation) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if !a[i].Equal(b[i]) {
			return i
		}
	}
	return n
}

// rollDie is the canonical request for a fresh die value.
func rollDie() Operation { return SetRandomInteger(KeyDie, DieFrom, DieTo) }

func actionOp(a Action) Operation { return Set(KeyAction, StringValue(a.String())) }

func pieceOp(p Piece) Operation { return Set(p.Key.String(), PieceValue(p)) }

func rollsOp(rolls [2]int) Operation { return Set(KeyLastTwoRolls, IntsValue(rolls[0], rolls[1])) }

func movesOp(moves [2]PieceSet) Operation {
	return Set(KeyLastTwoMoves, StringsValue(moves[0].String(), moves[1].String()))
}
