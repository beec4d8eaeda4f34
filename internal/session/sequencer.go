package session

import "github.com/DoyleJ11/runecast-protocol/pkg/protocol/server"

// Stored is one replayable outbound message.
type Stored struct {
	Seq uint64
	Msg server.Message
}

// Sequencer numbers outbound messages, remembers what the peer has not yet
// acknowledged and filters repeated inbound sequence numbers. It is not safe
// for concurrent use; the owning Session serializes access.
type Sequencer struct {
	lastSent    uint64
	lastInbound uint64
	seenInbound bool
	buffer      []Stored
	limit       int
}

// NewSequencer keeps at most limit messages for replay. Zero disables replay.
func NewSequencer(limit int) *Sequencer {
	return &Sequencer{limit: max(limit, 0)}
}

// Next assigns the next outbound seq to msg and buffers msg when it is worth
// replaying. Sequence numbers start at 1.
func (s *Sequencer) Next(msg server.Message) uint64 {
	s.lastSent++
	if s.limit > 0 && server.ShouldStoreForReplay(msg) {
		if len(s.buffer) == s.limit {
			s.buffer = append(s.buffer[:0], s.buffer[1:]...)
		}
		s.buffer = append(s.buffer, Stored{Seq: s.lastSent, Msg: msg})
	}
	return s.lastSent
}

// Skip assigns a seq without buffering.
func (s *Sequencer) Skip() uint64 {
	s.lastSent++
	return s.lastSent
}

func (s *Sequencer) LastSent() uint64 { return s.lastSent }

// Observe records an inbound seq and reports whether it is new. Anything at
// or below the highest seq seen so far is a repeat.
func (s *Sequencer) Observe(seq uint64) bool {
	if s.seenInbound && seq <= s.lastInbound {
		return false
	}
	s.lastInbound = seq
	s.seenInbound = true
	return true
}

// LastInbound is the ack to send back, nil until the peer sends a seq.
func (s *Sequencer) LastInbound() *uint64 {
	if !s.seenInbound {
		return nil
	}
	v := s.lastInbound
	return &v
}

// Ack drops every buffered message up to and including seq.
func (s *Sequencer) Ack(seq uint64) {
	i := 0
	for i < len(s.buffer) && s.buffer[i].Seq <= seq {
		i++
	}
	s.buffer = append(s.buffer[:0], s.buffer[i:]...)
}

// MissedSince returns the buffered messages after seq, oldest first.
func (s *Sequencer) MissedSince(seq uint64) server.Messages {
	out := server.Messages{}
	for _, st := range s.buffer {
		if st.Seq > seq {
			out = append(out, st.Msg)
		}
	}
	return out
}

func (s *Sequencer) Buffered() int { return len(s.buffer) }
