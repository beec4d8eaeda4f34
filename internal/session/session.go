package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/runecast-protocol/pkg/protocol"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/compat"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/server"
)

type Msg interface{ isSessionMsg() }

// Attach hands the session a connection outbox. The session greets it with
// hello, or with resumed when LastSeq is set. A previous outbox is closed.
type Attach struct {
	Outbox  chan []byte
	LastSeq *uint64
}

func (Attach) isSessionMsg() {}

// Detach parks the session if Outbox is still the attached one. Reply, when
// set, receives whether it was.
type Detach struct {
	Outbox chan []byte
	Reply  chan bool
}

func (Detach) isSessionMsg() {}

type Send struct {
	Msg server.Message
}

func (Send) isSessionMsg() {}

// Inbound reports the envelope metadata of a client frame. Reply receives
// false for a repeated seq, which the caller must drop.
type Inbound struct {
	Seq   uint64
	Ack   *uint64
	Reply chan bool
}

func (Inbound) isSessionMsg() {}

type Ack struct {
	Seq uint64
}

func (Ack) isSessionMsg() {}

// Identify binds a player to the session.
type Identify struct {
	Player protocol.PlayerInfo
}

func (Identify) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type View struct {
	ID          string
	Attached    bool
	Enveloped   bool
	LastSent    uint64
	LastInbound *uint64
	Buffered    int
	Player      *protocol.PlayerInfo
}

type Options struct {
	ReplayLimit int

	// Envelope sends enveloped frames from the first message on. Otherwise
	// the session switches once the peer sends an envelope.
	Envelope bool

	// Grace is how long a detached session waits for a reconnect.
	Grace time.Duration

	Logger   *zap.Logger
	OnExpire func(id string)
}

type Session struct {
	id        string
	inbox     chan Msg
	seq       *Sequencer
	outbox    chan []byte
	dropped   chan []byte // outbox closed for being slow, not yet detached
	enveloped bool
	player    *protocol.PlayerInfo
	grace     time.Duration
	expiry    *time.Timer
	onExpire  func(string)
	log       *zap.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

func New(parent context.Context, id string, opts Options) *Session {
	ctx, cancel := context.WithCancel(parent)
	if opts.Grace <= 0 {
		opts.Grace = protocol.ReconnectGrace
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		id:        id,
		inbox:     make(chan Msg, 64),
		seq:       NewSequencer(opts.ReplayLimit),
		enveloped: opts.Envelope,
		grace:     opts.Grace,
		onExpire:  opts.OnExpire,
		log:       log.With(zap.String("session_id", id)),
		ctx:       ctx,
		cancel:    cancel,
	}
	// Unattached sessions expire like parked ones.
	s.expiry = time.NewTimer(s.grace)

	go s.loop()
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Done is closed once the session has shut down.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

func (s *Session) loop() {
	for {
		var expired <-chan time.Time
		if s.expiry != nil {
			expired = s.expiry.C
		}

		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case <-expired:
			s.log.Info("session expired", zap.Uint64("last_sent", s.seq.LastSent()))
			if s.onExpire != nil {
				s.onExpire(s.id)
			}
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Attach:
				s.stopExpiry()
				if s.outbox != nil && s.outbox != msg.Outbox {
					close(s.outbox)
				}
				s.outbox = msg.Outbox
				s.dropped = nil
				if msg.LastSeq == nil {
					s.deliver(server.Hello{
						SessionID:           s.id,
						ServerTime:          protocol.NowMillis(),
						HeartbeatIntervalMS: protocol.HeartbeatIntervalMS,
						ServerVersion:       ptr(protocol.ProtocolVersion),
					}, true)
					break
				}
				missed := s.seq.MissedSince(*msg.LastSeq)
				s.log.Info("session resumed", zap.Uint64("last_seq", *msg.LastSeq), zap.Int("missed", len(missed)))
				// resumed carries stored messages, so it is never stored itself
				s.deliver(server.Resumed{MissedEvents: missed}, false)

			case Detach:
				parked := false
				switch {
				case s.outbox != nil && s.outbox == msg.Outbox:
					s.park()
					parked = true
				case s.dropped != nil && s.dropped == msg.Outbox:
					s.dropped = nil
					parked = true
				}
				if msg.Reply != nil {
					msg.Reply <- parked
				}

			case Send:
				s.deliver(msg.Msg, true)

			case Inbound:
				s.enveloped = true
				fresh := s.seq.Observe(msg.Seq)
				if fresh && msg.Ack != nil {
					s.seq.Ack(*msg.Ack)
				}
				msg.Reply <- fresh

			case Ack:
				s.seq.Ack(msg.Seq)

			case Identify:
				p := msg.Player
				s.player = &p
				s.log.Info("session identified", zap.Stringer("user_id", p.UserID))

			case GetState:
				v := View{
					ID:          s.id,
					Attached:    s.outbox != nil,
					Enveloped:   s.enveloped,
					LastSent:    s.seq.LastSent(),
					LastInbound: s.seq.LastInbound(),
					Buffered:    s.seq.Buffered(),
				}
				if s.player != nil {
					p := *s.player
					v.Player = &p
				}
				msg.Reply <- v

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

// deliver numbers msg and queues it on the outbox. Messages sent while
// parked are only numbered and buffered.
func (s *Session) deliver(msg server.Message, store bool) {
	var seq uint64
	if store {
		seq = s.seq.Next(msg)
	} else {
		seq = s.seq.Skip()
	}
	if s.outbox == nil {
		return
	}

	var frame []byte
	var err error
	if s.enveloped {
		frame, err = compat.SerializeServerMessage(msg, &seq, s.seq.LastInbound())
	} else {
		frame, err = compat.SerializeServerMessage(msg, nil, nil)
	}
	if err != nil {
		s.log.Error("encode server message", zap.String("type", msg.Type()), zap.Error(err))
		return
	}

	select {
	case s.outbox <- frame:
	default:
		// Client is slow/full - drop the connection, keep the session.
		s.log.Warn("outbox full, dropping connection", zap.String("type", msg.Type()))
		close(s.outbox)
		s.dropped = s.outbox
		s.park()
	}
}

func (s *Session) park() {
	s.outbox = nil
	s.stopExpiry()
	s.expiry = time.NewTimer(s.grace)
}

func (s *Session) stopExpiry() {
	if s.expiry != nil {
		s.expiry.Stop()
		s.expiry = nil
	}
}

func (s *Session) shutdown() {
	s.stopExpiry()
	if s.outbox != nil {
		close(s.outbox) // Tell the connection no more frames
		s.outbox = nil
	}
	s.cancel()
}

func ptr[T any](v T) *T { return &v }
