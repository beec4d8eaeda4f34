package protocol

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedJSON  = errors.New("protocol: malformed json")
	ErrNotObject      = errors.New("protocol: message is not a json object")
	ErrMissingType    = errors.New("protocol: missing type tag")
	ErrUnknownType    = errors.New("protocol: unknown message type")
	ErrMissingField   = errors.New("protocol: missing required field")
	ErrInvalidField   = errors.New("protocol: invalid field value")
	ErrEncode         = errors.New("protocol: encode failed")
	ErrBadTransition  = errors.New("protocol: timer vote transition not allowed")
	ErrUnknownErrCode = errors.New("protocol: unknown error code")
)

var errDuplicateKey = errors.New("key appears more than once")

// DecodeError is returned for every input that does not decode into exactly
// one declared variant. Kind is one of the Err* sentinels above, so callers
// can use errors.Is(err, ErrUnknownType) without unpacking.
type DecodeError struct {
	Kind  error
	Type  string // variant tag, when it was readable
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString(e.kind().Error())
	if e.Field != "" {
		fmt.Fprintf(&b, " %q", e.Field)
	}
	if e.Type != "" {
		fmt.Fprintf(&b, " in %q", e.Type)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DecodeError) Is(target error) bool { return target == e.kind() }

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) kind() error {
	if e.Kind == nil {
		return ErrInvalidField
	}
	return e.Kind
}

// EncodeError means a value could not be represented on the wire. Well-formed
// messages never produce one; treat it as a bug, log it, and drop the frame.
type EncodeError struct {
	Type string
	Err  error
}

func (e *EncodeError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%v: %v", ErrEncode, e.Err)
	}
	return fmt.Sprintf("%v (%s): %v", ErrEncode, e.Type, e.Err)
}

func (e *EncodeError) Is(target error) bool { return target == ErrEncode }

func (e *EncodeError) Unwrap() error { return e.Err }

// WithType stamps the variant tag onto a DecodeError that bubbled up from a
// nested decode. Other errors are wrapped as invalid field errors.
func WithType(err error, tag string) error {
	if err == nil {
		return nil
	}
	var de *DecodeError
	if errors.As(err, &de) {
		if de.Type == "" {
			de.Type = tag
		}
		return de
	}
	return &DecodeError{Kind: ErrInvalidField, Type: tag, Err: err}
}
