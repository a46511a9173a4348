package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the value as a bare JSON number, string or array.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueInt:
		return json.Marshal(v.Int)
	case ValueString:
		return json.Marshal(v.Str)
	case ValueStrings:
		if v.Strs == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Strs)
	case ValueInts:
		if v.Ints == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Ints)
	}
	return nil, fmt.Errorf("%w: value of unknown kind %d", ErrMalformed, v.Kind)
}

// UnmarshalJSON infers the kind from the JSON shape. An empty array decodes
// as an empty string list.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] == 'n' {
		return fmt.Errorf("%w: empty value", ErrMalformed)
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		*v = StringValue(s)
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(b, &raw); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if len(raw) == 0 {
			*v = StringsValue()
			return nil
		}
		if first := bytes.TrimSpace(raw[0]); len(first) > 0 && first[0] == '"' {
			var ss []string
			if err := json.Unmarshal(b, &ss); err != nil {
				return fmt.Errorf("%w: mixed list: %v", ErrMalformed, err)
			}
			*v = StringsValue(ss...)
			return nil
		}
		var ns []int
		if err := json.Unmarshal(b, &ns); err != nil {
			return fmt.Errorf("%w: mixed list: %v", ErrMalformed, err)
		}
		*v = IntsValue(ns...)
	default:
		var n int
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		*v = IntValue(n)
	}
	return nil
}

type operationJSON struct {
	Op       string `json:"op"`
	Key      string `json:"key,omitempty"`
	Value    *Value `json:"value,omitempty"`
	PlayerID string `json:"playerId,omitempty"`
	From     *int   `json:"from,omitempty"`
	To       *int   `json:"to,omitempty"`
}

// MarshalJSON writes only the fields relevant to the operation kind.
func (o Operation) MarshalJSON() ([]byte, error) {
	out := operationJSON{Op: o.Kind.String()}
	switch o.Kind {
	case OpSet:
		val := o.Value
		out.Key, out.Value = o.Key, &val
	case OpSetTurn, OpEndGame:
		out.PlayerID = o.PlayerID
	case OpSetRandomInteger:
		from, to := o.From, o.To
		out.Key, out.From, out.To = o.Key, &from, &to
	default:
		return nil, fmt.Errorf("%w: operation of unknown kind %d", ErrMalformed, o.Kind)
	}
	return json.Marshal(out)
}

func (o *Operation) UnmarshalJSON(b []byte) error {
	var in operationJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	switch in.Op {
	case "set":
		if in.Key == "" || in.Value == nil {
			return fmt.Errorf("%w: set needs key and value", ErrMalformed)
		}
		*o = Set(in.Key, *in.Value)
	case "setTurn":
		*o = SetTurn(in.PlayerID)
	case "endGame":
		*o = EndGame(in.PlayerID)
	case "setRandomInteger":
		if in.Key == "" || in.From == nil || in.To == nil {
			return fmt.Errorf("%w: setRandomInteger needs key, from and to", ErrMalformed)
		}
		*o = SetRandomInteger(in.Key, *in.From, *in.To)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrMalformed, in.Op)
	}
	return nil
}
