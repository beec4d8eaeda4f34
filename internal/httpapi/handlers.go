package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/DoyleJ11/runecast-protocol/pkg/protocol"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/compat"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/server"
)

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type protocolInfo struct {
	Version             string               `json:"protocol_version"`
	HeartbeatIntervalMS uint64               `json:"heartbeat_interval_ms"`
	HeartbeatTimeoutMS  uint64               `json:"heartbeat_timeout_ms"`
	ReconnectGraceMS    uint64               `json:"reconnect_grace_ms"`
	MaxMessageSize      int                  `json:"max_message_size"`
	ErrorCodes          []protocol.ErrorCode `json:"error_codes"`
}

// Protocol describes the limits a client has to respect.
func Protocol(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, protocolInfo{
		Version:             protocol.ProtocolVersion,
		HeartbeatIntervalMS: protocol.HeartbeatIntervalMS,
		HeartbeatTimeoutMS:  protocol.HeartbeatTimeoutMS,
		ReconnectGraceMS:    protocol.ReconnectGraceMS,
		MaxMessageSize:      protocol.MaxMessageSize,
		ErrorCodes:          protocol.AllErrorCodes(),
	})
}

type decodedFrame struct {
	Type    string          `json:"type"`
	Seq     *uint64         `json:"seq"`
	Ack     *uint64         `json:"ack"`
	Message json.RawMessage `json:"message"`
}

// DecodeClientFrame reads one client frame in either layout and echoes what
// the gateway would see. Failures answer with a protocol error message.
func DecodeClientFrame(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, protocol.MaxMessageSize))
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				writeMessage(w, http.StatusRequestEntityTooLarge, server.NewError(protocol.CodeMessageTooLarge))
				return
			}
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}

		m, seq, ack, err := compat.ParseClientMessage(body)
		if err != nil {
			e, derr := server.NewErrorDetails(protocol.CodeInvalidAction, "could not read message", map[string]string{"error": err.Error()})
			if derr != nil {
				e = server.NewError(protocol.CodeInvalidAction)
			}
			writeMessage(w, http.StatusBadRequest, e)
			return
		}

		raw, err := json.Marshal(m)
		if err != nil {
			log.Error("re-encode client message", zap.String("type", m.Type()), zap.Error(err))
			http.Error(w, "failed to encode message", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, decodedFrame{Type: m.Type(), Seq: seq, Ack: ack, Message: raw})
	}
}

func writeMessage(w http.ResponseWriter, status int, m server.Message) {
	body, err := compat.SerializeServerMessage(m, nil, nil)
	if err != nil {
		http.Error(w, "failed to encode error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
