package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind identifies the step of an open request which failed on the server.
type ErrorKind string

// Error kinds returned by the server in the Err envelope.
const (
	CouldNotRun     ErrorKind = "CouldNotRun"
	CreateDirectory ErrorKind = "CreateDirectory"
	OpenFile        ErrorKind = "OpenFile"
	WriteFile       ErrorKind = "WriteFile"
	UnsafePath      ErrorKind = "UnsafePath"
)

var errorPrefixes = map[ErrorKind]string{
	CouldNotRun:     "Could not run",
	CreateDirectory: "Could not create directory",
	OpenFile:        "Could not open file",
	WriteFile:       "Could not write file",
	UnsafePath:      "Unsafe path",
}

// RunError is a failure reported by the server while handling an open request.
// It is encoded on the wire as {"<Kind>": "<Msg>"}.
type RunError struct {
	Kind ErrorKind
	Msg  string
}

// NewRunError returns a RunError of a given kind, using err as the message.
func NewRunError(kind ErrorKind, err error) *RunError {
	return &RunError{Kind: kind, Msg: err.Error()}
}

// Error converts a RunError to a string.
func (e *RunError) Error() string {
	prefix, ok := errorPrefixes[e.Kind]
	if !ok {
		prefix = string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Msg)
}

// MarshalJSON encodes the error as a single-key object.
func (e *RunError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[ErrorKind]string{e.Kind: e.Msg})
}

// UnmarshalJSON decodes a single-key object into the error.
func (e *RunError) UnmarshalJSON(data []byte) error {
	var variants map[ErrorKind]string
	if err := json.Unmarshal(data, &variants); err != nil {
		return err
	}
	if len(variants) != 1 {
		return fmt.Errorf("expected exactly one error variant, got %d", len(variants))
	}
	for kind, msg := range variants {
		if _, ok := errorPrefixes[kind]; !ok {
			return fmt.Errorf("unknown error variant %q", kind)
		}
		e.Kind = kind
		e.Msg = msg
	}
	return nil
}

// Result is the response envelope of every open route. Exactly one of Ok or Err is set.
type Result struct {
	Ok  *string
	Err *RunError
}

// OK returns a successful Result.
func OK(s string) Result {
	return Result{Ok: &s}
}

// Failure returns a failed Result.
func Failure(err *RunError) Result {
	return Result{Err: err}
}

var errInvalidEnvelope = errors.New("envelope must contain exactly one of Ok or Err")

// MarshalJSON encodes the result as {"Ok": ...} or {"Err": {...}}.
func (r Result) MarshalJSON() ([]byte, error) {
	switch {
	case r.Ok != nil && r.Err == nil:
		return json.Marshal(map[string]string{"Ok": *r.Ok})
	case r.Err != nil && r.Ok == nil:
		return json.Marshal(map[string]*RunError{"Err": r.Err})
	default:
		return nil, errInvalidEnvelope
	}
}

// UnmarshalJSON decodes an envelope, rejecting those with both or neither variant.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return errInvalidEnvelope
	}
	if okData, ok := raw["Ok"]; ok {
		var s string
		if err := json.Unmarshal(okData, &s); err != nil {
			return err
		}
		*r = OK(s)
		return nil
	}
	if errData, ok := raw["Err"]; ok {
		var runErr RunError
		if err := json.Unmarshal(errData, &runErr); err != nil {
			return err
		}
		*r = Failure(&runErr)
		return nil
	}
	return errInvalidEnvelope
}
