package types

import (
	"errors"
	"fmt"
)

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindIO                ErrKind = iota // source read/open failures
	ErrKindNoSource                         // operation requires an open source
	ErrKindRange                            // computed byte window outside [low, high]
	ErrKindInvalidNumber                    // argument is not a canonical integer
	ErrKindOverwriteDeclined                // user refused to replace an existing report
	ErrKindSinkIO                           // report could not be created or written
	ErrKindArgs                             // wrong argument count
	ErrKindCommand                          // unknown command
)

var kindNames = map[ErrKind]string{
	ErrKindIO:                "io",
	ErrKindNoSource:          "no-source",
	ErrKindRange:             "range",
	ErrKindInvalidNumber:     "invalid-number",
	ErrKindOverwriteDeclined: "overwrite-declined",
	ErrKindSinkIO:            "sink-io",
	ErrKindArgs:              "args",
	ErrKindCommand:           "command",
}

func (k ErrKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so wrapped
// errors match the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t != nil && t.Kind == e.Kind
}

// Sentinels commonly returned by implementations.
var (
	ErrNoSource          = &Error{Kind: ErrKindNoSource, Msg: "no file loaded"}
	ErrRange             = &Error{Kind: ErrKindRange, Msg: "out of range"}
	ErrInvalidNumber     = &Error{Kind: ErrKindInvalidNumber, Msg: "invalid integer"}
	ErrOverwriteDeclined = &Error{Kind: ErrKindOverwriteDeclined, Msg: "overwrite declined"}
	ErrSinkIO            = &Error{Kind: ErrKindSinkIO, Msg: "report write failed"}
)

// RangeError describes a window request whose end, pos+length, fell outside
// [Low, High]. It matches ErrRange under errors.Is.
type RangeError struct {
	Pos    int64
	Length int64
	Low    int64
	High   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("'pos + length' (%d + %d = %d) is out of range (%d:%d)",
		e.Pos, e.Length, e.Pos+e.Length, e.Low, e.High)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// NewRangeError builds a RangeError for the given request and bounds.
func NewRangeError(pos, length, low, high int64) error {
	return &RangeError{Pos: pos, Length: length, Low: low, High: high}
}

// InvalidNumber reports that s is not an acceptable integer argument.
func InvalidNumber(s string, cause error) error {
	return &Error{
		Kind: ErrKindInvalidNumber,
		Msg:  fmt.Sprintf("string (%s) could not be converted to an integer", s),
		Err:  cause,
	}
}

// InvalidArgs reports a wrong argument count.
func InvalidArgs(got, want int) error {
	return &Error{Kind: ErrKindArgs, Msg: fmt.Sprintf("expected %d args, got %d", want, got)}
}

// SinkIO wraps a report failure.
func SinkIO(msg string, err error) error {
	if err == nil {
		return nil
	}
	var te *Error
	if errors.As(err, &te) && te.Kind == ErrKindSinkIO {
		return err
	}
	return &Error{Kind: ErrKindSinkIO, Msg: msg, Err: err}
}

// IO wraps a source failure.
func IO(msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: ErrKindIO, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain. Errors that
// carry no kind report ErrKindIO and false.
func KindOf(err error) (ErrKind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return ErrKindIO, false
}
