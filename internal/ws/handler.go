package ws

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/DoyleJ11/runecast-protocol/internal/hub"
	"github.com/DoyleJ11/runecast-protocol/internal/session"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/client"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/compat"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/server"
)

// MessageHandler answers the client messages the gateway does not handle
// itself. Replies go back to the sender in order.
type MessageHandler interface {
	Handle(ctx context.Context, s *session.Session, m client.Message) []server.Message
}

type Options struct {
	SendBuffer int
	Logger     *zap.Logger

	// OriginPatterns is passed to websocket.Accept. Empty means same-origin only.
	OriginPatterns []string
}

const writeTimeout = 3 * time.Second

// Handler upgrades GET /ws. A session_id query parameter resumes a parked
// session; last_seq names the last server seq the client saw.
func Handler(h *hub.Hub, app MessageHandler, opts Options) http.HandlerFunc {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.SendBuffer < 1 {
		opts.SendBuffer = 64
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		resumeID := q.Get("session_id")

		var lastSeq *uint64
		if raw := q.Get("last_seq"); raw != "" {
			n, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				http.Error(w, "bad last_seq", http.StatusBadRequest)
				return
			}
			lastSeq = &n
		}

		var s *session.Session
		if resumeID != "" {
			s = ask(h, func(reply chan *session.Session) hub.HubMsg {
				return hub.GetSession{ID: resumeID, Reply: reply}
			})
		} else {
			s = ask(h, func(reply chan *session.Session) hub.HubMsg {
				return hub.CreateSession{Reply: reply}
			})
			lastSeq = nil
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: opts.OriginPatterns,
		})
		if err != nil {
			log.Debug("websocket accept", zap.Error(err))
			return
		}
		defer conn.CloseNow()

		if s == nil {
			if resumeID != "" {
				frame, _ := compat.SerializeServerMessage(server.InvalidSession{Reason: "unknown or expired session"}, nil, nil)
				_ = writeFrame(r.Context(), conn, frame)
			}
			conn.Close(websocket.StatusNormalClosure, "no session")
			return
		}

		log := log.With(zap.String("session_id", s.ID()))
		// Frames up to twice the limit are read so they can be answered with
		// message_too_large; anything bigger is cut off by the transport.
		conn.SetReadLimit(2 * protocol.MaxMessageSize)

		out := make(chan []byte, opts.SendBuffer)
		if !post(s, session.Attach{Outbox: out, LastSeq: lastSeq}) {
			conn.Close(websocket.StatusGoingAway, "session closed")
			return
		}

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					return
				case frame, ok := <-out:
					if !ok {
						// the session replaced or dropped this connection
						conn.Close(websocket.StatusPolicyViolation, "connection replaced or too slow")
						return
					}
					if err := writeFrame(writeCtx, conn, frame); err != nil {
						conn.CloseNow()
						return
					}
				}
			}
		}()

		c := &peer{s: s, out: out, app: app, log: log}

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), protocol.HeartbeatTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("read", zap.Error(err))
				}
				c.disconnected(r.Context())
				return
			}

			if len(data) > protocol.MaxMessageSize {
				frame, _ := compat.SerializeServerMessage(server.NewError(protocol.CodeMessageTooLarge), nil, nil)
				_ = writeFrame(r.Context(), conn, frame)
				conn.Close(websocket.StatusMessageTooBig, "message too large")
				c.disconnected(r.Context())
				return
			}

			c.receive(r.Context(), data)
		}
	}
}

// peer is the read side of one connection.
type peer struct {
	s   *session.Session
	out chan []byte
	app MessageHandler
	log *zap.Logger
}

func (c *peer) receive(ctx context.Context, data []byte) {
	m, seq, ack, err := compat.ParseClientMessage(data)
	if err != nil {
		c.log.Debug("bad client frame", zap.Error(err))
		c.send(decodeFailure(err))
		return
	}

	if seq != nil {
		reply := make(chan bool, 1)
		if !post(c.s, session.Inbound{Seq: *seq, Ack: ack, Reply: reply}) {
			return
		}
		select {
		case fresh := <-reply:
			if !fresh {
				c.log.Debug("dropping repeated frame", zap.Uint64("seq", *seq), zap.String("type", m.Type()))
				return
			}
		case <-c.s.Done():
			return
		}
	}

	switch msg := m.(type) {
	case client.Heartbeat:
		c.send(server.HeartbeatAck{ServerTime: protocol.NowMillis()})
	case client.Ack:
		post(c.s, session.Ack{Seq: msg.Seq})
	case client.PlayerDisconnected:
		// only disconnected may report this
		c.send(server.NewErrorMessage(protocol.CodeInvalidAction, "player_disconnected is sent by the server only"))
	default:
		for _, out := range c.app.Handle(ctx, c.s, m) {
			c.send(out)
		}
	}
}

// disconnected parks the session and tells the handler the socket is gone,
// the same way a client reporting its own disconnect would. Nothing is
// reported when another connection already took the session over.
func (c *peer) disconnected(ctx context.Context) {
	reply := make(chan bool, 1)
	if !post(c.s, session.Detach{Outbox: c.out, Reply: reply}) {
		return
	}
	select {
	case parked := <-reply:
		if !parked {
			return
		}
	case <-c.s.Done():
		return
	}
	c.app.Handle(context.WithoutCancel(ctx), c.s, client.PlayerDisconnected{})
}

func (c *peer) send(m server.Message) {
	post(c.s, session.Send{Msg: m})
}

func decodeFailure(err error) server.Error {
	message := "could not read message"
	if errors.Is(err, protocol.ErrUnknownType) {
		message = "unknown message type"
	}
	e, derr := server.NewErrorDetails(protocol.CodeInvalidAction, message, map[string]string{"error": err.Error()})
	if derr != nil {
		return server.NewErrorMessage(protocol.CodeInvalidAction, message)
	}
	return e
}

// post delivers m unless the session has already shut down.
func post(s *session.Session, m session.Msg) bool {
	select {
	case s.Inbox() <- m:
		return true
	case <-s.Done():
		return false
	}
}

func ask(h *hub.Hub, build func(chan *session.Session) hub.HubMsg) *session.Session {
	reply := make(chan *session.Session, 1)
	select {
	case h.Inbox() <- build(reply):
	case <-h.Done():
		return nil
	}
	select {
	case s := <-reply:
		return s
	case <-h.Done():
		return nil
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, frame []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, frame)
}
