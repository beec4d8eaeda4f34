package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/server"
)

func passed(n int) server.Message {
	return server.TurnPassed{PlayerID: server.UserID(n), GameID: "g"}
}

func TestSequencer_NumbersAndBuffers(t *testing.T) {
	s := NewSequencer(10)

	assert.Equal(t, uint64(1), s.Next(server.HeartbeatAck{ServerTime: 1}))
	assert.Equal(t, uint64(2), s.Next(passed(1)))
	assert.Equal(t, uint64(3), s.Skip())
	assert.Equal(t, uint64(4), s.Next(passed(2)))

	assert.Equal(t, uint64(4), s.LastSent())
	assert.Equal(t, 2, s.Buffered(), "heartbeat_ack and skipped seqs are not kept")
	assert.Equal(t, server.Messages{passed(2)}, s.MissedSince(2))
	assert.Equal(t, server.Messages{passed(1), passed(2)}, s.MissedSince(0))
	assert.Equal(t, server.Messages{}, s.MissedSince(4))
}

func TestSequencer_LimitEvictsOldest(t *testing.T) {
	s := NewSequencer(2)
	for i := 1; i <= 3; i++ {
		s.Next(passed(i))
	}
	require.Equal(t, 2, s.Buffered())
	assert.Equal(t, server.Messages{passed(2), passed(3)}, s.MissedSince(0))

	off := NewSequencer(0)
	off.Next(passed(1))
	assert.Equal(t, 0, off.Buffered())
}

func TestSequencer_AckTrims(t *testing.T) {
	s := NewSequencer(10)
	for i := 1; i <= 4; i++ {
		s.Next(passed(i))
	}
	s.Ack(2)
	assert.Equal(t, server.Messages{passed(3), passed(4)}, s.MissedSince(0))
	s.Ack(1) // stale ack is harmless
	assert.Equal(t, 2, s.Buffered())
	s.Ack(99)
	assert.Equal(t, 0, s.Buffered())
}

func TestSequencer_ObserveDropsRepeats(t *testing.T) {
	s := NewSequencer(0)
	assert.Nil(t, s.LastInbound())

	tests := []struct {
		seq  uint64
		want bool
	}{
		{0, true},
		{0, false},
		{3, true},
		{2, false},
		{3, false},
		{4, true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, s.Observe(tc.seq), "seq %d", tc.seq)
	}
	require.NotNil(t, s.LastInbound())
	assert.Equal(t, uint64(4), *s.LastInbound())
}
