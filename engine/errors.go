package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected marks every verification failure.
	ErrRejected = errors.New("move rejected")
	// ErrMalformed marks wire values that cannot be decoded.
	ErrMalformed = errors.New("malformed wire value")
)

// Rejection explains why a proposal is not the unique legal consequence of
// its declared action. It matches ErrRejected under errors.Is.
type Rejection struct {
	Action Action
	Reason string
	Err    error
}

func (r *Rejection) Error() string {
	msg := "rejected"
	if r.Action != ActionNone {
		msg += " " + r.Action.String()
	}
	msg += ": " + r.Reason
	if r.Err != nil {
		msg += ": " + r.Err.Error()
	}
	return msg
}

func (r *Rejection) Is(target error) bool { return target == ErrRejected }

func (r *Rejection) Unwrap() error { return r.Err }

func rejectf(a Action, format string, args ...any) *Rejection {
	return &Rejection{Action: a, Reason: fmt.Sprintf(format, args...)}
}

func rejectErr(a Action, reason string, err error) *Rejection {
	return &Rejection{Action: a, Reason: reason, Err: err}
}
