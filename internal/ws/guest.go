package ws

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/DoyleJ11/runecast-protocol/internal/session"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/client"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/server"
)

// GuestHandler is the handler used when no game service is attached. It
// identifies any non-empty token as a numbered guest and rejects everything
// else, which is enough to drive the protocol end to end.
type GuestHandler struct {
	next atomic.Int64
}

func (g *GuestHandler) Handle(ctx context.Context, s *session.Session, m client.Message) []server.Message {
	view, ok := state(ctx, s)
	if !ok {
		return nil
	}

	switch msg := m.(type) {
	case client.Identify:
		if msg.Token == "" {
			return []server.Message{server.NewError(protocol.CodeNotAuthenticated)}
		}
		player := view.Player
		if player == nil {
			id := g.next.Add(1)
			player = &protocol.PlayerInfo{
				UserID:      protocol.UserID(id),
				Username:    fmt.Sprintf("guest-%d", id),
				IsConnected: true,
			}
			if !post(s, session.Identify{Player: *player}) {
				return nil
			}
		}
		return []server.Message{server.Ready{SessionID: s.ID(), Player: *player}}

	case client.PlayerDisconnected:
		return nil
	}

	if view.Player == nil {
		return []server.Message{server.NewError(protocol.CodeNotAuthenticated)}
	}
	return []server.Message{server.NewErrorMessage(protocol.CodeInvalidAction, fmt.Sprintf("%s is not available on this server", m.Type()))}
}

func state(ctx context.Context, s *session.Session) (session.View, bool) {
	reply := make(chan session.View, 1)
	if !post(s, session.GetState{Reply: reply}) {
		return session.View{}, false
	}
	select {
	case v := <-reply:
		return v, true
	case <-s.Done():
		return session.View{}, false
	case <-ctx.Done():
		return session.View{}, false
	}
}
