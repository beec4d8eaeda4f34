package protocol

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// Envelope carries a payload with delivery metadata. Seq is assigned by the
// sender and grows per connection; Ack names the highest seq the sender has
// seen from its peer.
type Envelope[T any] struct {
	Seq       uint64  `json:"seq"`
	Ack       *uint64 `json:"ack"`
	Timestamp uint64  `json:"timestamp"`
	Payload   T       `json:"payload"`
}

// Wrap builds an envelope stamped with the current time.
func Wrap[T any](payload T, seq uint64, ack *uint64) Envelope[T] {
	return Envelope[T]{
		Seq:       seq,
		Ack:       copyUint(ack),
		Timestamp: NowMillis(),
		Payload:   payload,
	}
}

// Map swaps the payload and keeps the metadata.
func Map[T, U any](e Envelope[T], f func(T) U) Envelope[U] {
	return Envelope[U]{Seq: e.Seq, Ack: copyUint(e.Ack), Timestamp: e.Timestamp, Payload: f(e.Payload)}
}

type envelopeWire struct {
	Seq       uint64          `json:"seq"`
	Ack       *uint64         `json:"ack"`
	Timestamp *uint64         `json:"timestamp"`
	TS        *uint64         `json:"ts"`
	Payload   json.RawMessage `json:"payload"`
}

// DecodeEnvelope reads an enveloped frame and hands the payload to decode.
// Older peers write the timestamp under "ts"; both keys are read.
func DecodeEnvelope[T any](data []byte, decode func([]byte) (T, error)) (Envelope[T], error) {
	var w envelopeWire
	if err := DecodeObject(data, &w); err != nil {
		return Envelope[T]{}, err
	}
	if len(w.Payload) == 0 || isNull(w.Payload) {
		return Envelope[T]{}, &DecodeError{Kind: ErrMissingField, Field: "payload"}
	}

	payload, err := decode(w.Payload)
	if err != nil {
		return Envelope[T]{}, err
	}

	env := Envelope[T]{Seq: w.Seq, Ack: w.Ack, Payload: payload}
	switch {
	case w.Timestamp != nil:
		env.Timestamp = *w.Timestamp
	case w.TS != nil:
		env.Timestamp = *w.TS
	}
	return env, nil
}

// Shape is the outer layout of an inbound frame.
type Shape int

const (
	ShapeBare Shape = iota
	ShapeEnveloped
)

func (s Shape) String() string {
	if s == ShapeEnveloped {
		return "enveloped"
	}
	return "bare"
}

// DetectShape decides the layout before any payload is decoded. A frame is
// enveloped only when seq is a number and payload is an object, so a bare
// message that happens to carry a payload field is still read as bare.
func DetectShape(data []byte) (Shape, error) {
	obj, err := parseObject(data)
	if err != nil {
		return ShapeBare, err
	}
	seq, payload := obj.Get("seq"), obj.Get("payload")
	if seq.Type == gjson.Number && payload.IsObject() {
		return ShapeEnveloped, nil
	}
	return ShapeBare, nil
}

// MaybeEnveloped is a decoded frame in either layout.
type MaybeEnveloped[T any] struct {
	env  *Envelope[T]
	bare T
}

func Enveloped[T any](e Envelope[T]) MaybeEnveloped[T] {
	return MaybeEnveloped[T]{env: &e}
}

func Bare[T any](payload T) MaybeEnveloped[T] {
	return MaybeEnveloped[T]{bare: payload}
}

func (m MaybeEnveloped[T]) IsEnveloped() bool { return m.env != nil }

// Envelope returns the envelope, if the frame had one.
func (m MaybeEnveloped[T]) Envelope() (Envelope[T], bool) {
	if m.env == nil {
		return Envelope[T]{}, false
	}
	return *m.env, true
}

func (m MaybeEnveloped[T]) Payload() T {
	if m.env != nil {
		return m.env.Payload
	}
	return m.bare
}

func (m MaybeEnveloped[T]) Seq() *uint64 {
	if m.env == nil {
		return nil
	}
	seq := m.env.Seq
	return &seq
}

func (m MaybeEnveloped[T]) Ack() *uint64 {
	if m.env == nil {
		return nil
	}
	return copyUint(m.env.Ack)
}

// Resolve flattens either layout to (payload, seq, ack).
func (m MaybeEnveloped[T]) Resolve() (T, *uint64, *uint64) {
	return m.Payload(), m.Seq(), m.Ack()
}

func (m MaybeEnveloped[T]) MarshalJSON() ([]byte, error) {
	if m.env != nil {
		return json.Marshal(*m.env)
	}
	return json.Marshal(m.bare)
}

// DecodeMaybeEnveloped detects the layout of data and decodes it.
func DecodeMaybeEnveloped[T any](data []byte, decode func([]byte) (T, error)) (MaybeEnveloped[T], error) {
	shape, err := DetectShape(data)
	if err != nil {
		return MaybeEnveloped[T]{}, err
	}
	if shape == ShapeEnveloped {
		env, err := DecodeEnvelope(data, decode)
		if err != nil {
			return MaybeEnveloped[T]{}, err
		}
		return Enveloped(env), nil
	}
	payload, err := decode(data)
	if err != nil {
		return MaybeEnveloped[T]{}, err
	}
	return Bare(payload), nil
}

// Resolve decodes a frame in either layout straight to (payload, seq, ack).
func Resolve[T any](data []byte, decode func([]byte) (T, error)) (T, *uint64, *uint64, error) {
	m, err := DecodeMaybeEnveloped(data, decode)
	if err != nil {
		var zero T
		return zero, nil, nil, err
	}
	payload, seq, ack := m.Resolve()
	return payload, seq, ack, nil
}

// EncodeEnvelope is json.Marshal with encode failures typed as EncodeError.
func EncodeEnvelope[T any](e Envelope[T]) ([]byte, error) {
	out, err := json.Marshal(e)
	if err != nil {
		var ee *EncodeError
		if errors.As(err, &ee) {
			return nil, ee
		}
		return nil, &EncodeError{Err: err}
	}
	return out, nil
}

func copyUint(p *uint64) *uint64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
