package protocol

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// probe is a tiny tagged payload so envelope tests do not depend on the
// message packages.
type probe struct {
	Kind string `json:"type"`
	N    int    `json:"n"`
}

func decodeProbe(data []byte) (probe, error) {
	var p probe
	if err := DecodeObject(data, &p); err != nil {
		return probe{}, err
	}
	return p, nil
}

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func u64(v uint64) *uint64 { return &v }

func TestWrap_StampsTimestamp(t *testing.T) {
	freezeClock(t, time.UnixMilli(1699900000000))

	env := Wrap(probe{Kind: "p", N: 1}, 7, u64(3))
	assert.Equal(t, uint64(7), env.Seq)
	assert.Equal(t, uint64(3), *env.Ack)
	assert.Equal(t, uint64(1699900000000), env.Timestamp)

	out, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"seq":7,"ack":3,"timestamp":1699900000000,"payload":{"type":"p","n":1}}`, string(out))
}

func TestWrap_NoAckEncodesNull(t *testing.T) {
	freezeClock(t, time.UnixMilli(5))

	out, err := EncodeEnvelope(Wrap(probe{Kind: "p"}, 1, nil))
	require.NoError(t, err)
	ack := gjson.GetBytes(out, "ack")
	assert.True(t, ack.Exists())
	assert.Equal(t, gjson.Null, ack.Type)
}

func TestDetectShape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Shape
		err  error
	}{
		{"bare", `{"type":"heartbeat"}`, ShapeBare, nil},
		{"enveloped", `{"seq":1,"timestamp":0,"payload":{"type":"heartbeat"}}`, ShapeEnveloped, nil},
		{"payload field without seq", `{"type":"x","payload":{"a":1}}`, ShapeBare, nil},
		{"string seq", `{"seq":"1","payload":{"type":"x"}}`, ShapeBare, nil},
		{"scalar payload", `{"seq":1,"payload":"heartbeat"}`, ShapeBare, nil},
		{"seq without payload", `{"type":"ack","seq":4}`, ShapeBare, nil},
		{"array", `[{"type":"heartbeat"}]`, ShapeBare, ErrNotObject},
		{"garbage", `{"type":`, ShapeBare, ErrMalformedJSON},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectShape([]byte(tc.in))
			if tc.err != nil {
				assert.True(t, errors.Is(err, tc.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolve_BothShapesYieldSamePayload(t *testing.T) {
	bare := `{"type":"p","n":9}`
	enveloped := `{"seq":7,"ack":3,"timestamp":1,"payload":` + bare + `}`

	p, seq, ack, err := Resolve([]byte(bare), decodeProbe)
	require.NoError(t, err)
	assert.Equal(t, probe{Kind: "p", N: 9}, p)
	assert.Nil(t, seq)
	assert.Nil(t, ack)

	p2, seq, ack, err := Resolve([]byte(enveloped), decodeProbe)
	require.NoError(t, err)
	assert.Equal(t, p, p2)
	require.NotNil(t, seq)
	require.NotNil(t, ack)
	assert.Equal(t, uint64(7), *seq)
	assert.Equal(t, uint64(3), *ack)
}

func TestResolve_NullAckAndLegacyTimestampKey(t *testing.T) {
	m, err := DecodeMaybeEnveloped([]byte(`{"seq":5,"ack":null,"ts":42,"payload":{"type":"p","n":1}}`), decodeProbe)
	require.NoError(t, err)
	require.True(t, m.IsEnveloped())
	assert.Nil(t, m.Ack())
	assert.Equal(t, uint64(5), *m.Seq())

	env, ok := m.Envelope()
	require.True(t, ok)
	assert.Equal(t, uint64(42), env.Timestamp)
}

func TestResolve_PayloadErrorsSurface(t *testing.T) {
	_, _, _, err := Resolve([]byte(`{"seq":5,"payload":{"type":"p"}}`), decodeProbe)
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ErrMissingField, de.Kind)
	assert.Equal(t, "n", de.Field)

	_, _, _, err = Resolve([]byte(`{"seq":-1,"payload":{"type":"p","n":1}}`), decodeProbe)
	assert.True(t, errors.Is(err, ErrInvalidField), "got %v", err)
}

func TestMaybeEnveloped_MarshalKeepsShape(t *testing.T) {
	freezeClock(t, time.UnixMilli(10))

	out, err := json.Marshal(Bare(probe{Kind: "p", N: 2}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"p","n":2}`, string(out))

	out, err = json.Marshal(Enveloped(Wrap(probe{Kind: "p", N: 2}, 1, nil)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"seq":1,"ack":null,"timestamp":10,"payload":{"type":"p","n":2}}`, string(out))
}

func TestMap_KeepsMetadata(t *testing.T) {
	env := Envelope[int]{Seq: 4, Ack: u64(2), Timestamp: 99, Payload: 21}
	doubled := Map(env, func(v int) int { return v * 2 })
	assert.Equal(t, Envelope[int]{Seq: 4, Ack: u64(2), Timestamp: 99, Payload: 42}, doubled)
}
