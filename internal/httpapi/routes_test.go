package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/DoyleJ11/runecast-protocol/internal/hub"
	"github.com/DoyleJ11/runecast-protocol/internal/session"
	"github.com/DoyleJ11/runecast-protocol/internal/ws"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol"
)

func router(t *testing.T) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return SetupRoutes(hub.NewHub(ctx, session.Options{}), &ws.GuestHandler{}, ws.Options{})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, router(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtocol(t *testing.T) {
	rec := do(t, router(t), http.MethodGet, "/protocol", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.Bytes()
	assert.Equal(t, protocol.ProtocolVersion, gjson.GetBytes(body, "protocol_version").String())
	assert.Equal(t, int64(30_000), gjson.GetBytes(body, "heartbeat_interval_ms").Int())
	assert.Equal(t, int64(45_000), gjson.GetBytes(body, "heartbeat_timeout_ms").Int())
	assert.Equal(t, int64(60_000), gjson.GetBytes(body, "reconnect_grace_ms").Int())
	assert.Equal(t, int64(65_536), gjson.GetBytes(body, "max_message_size").Int())
	assert.Len(t, gjson.GetBytes(body, "error_codes").Array(), 22)
}

func TestDecodeClientFrame(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		check  func(t *testing.T, body []byte)
	}{
		{
			name:   "bare",
			body:   `{"type":"heartbeat"}`,
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.Equal(t, "heartbeat", gjson.GetBytes(body, "type").String())
				assert.Equal(t, gjson.Null, gjson.GetBytes(body, "seq").Type)
				assert.Equal(t, gjson.Null, gjson.GetBytes(body, "ack").Type)
				assert.JSONEq(t, `{"type":"heartbeat"}`, gjson.GetBytes(body, "message").Raw)
			},
		},
		{
			name:   "enveloped",
			body:   `{"seq":5,"ack":null,"timestamp":1699900000000,"payload":{"type":"pass_turn"}}`,
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.Equal(t, "pass_turn", gjson.GetBytes(body, "type").String())
				assert.Equal(t, int64(5), gjson.GetBytes(body, "seq").Int())
				assert.Equal(t, gjson.Null, gjson.GetBytes(body, "ack").Type)
			},
		},
		{
			name:   "unknown type",
			body:   `{"type":"not_a_real_message"}`,
			status: http.StatusBadRequest,
			check: func(t *testing.T, body []byte) {
				assert.Equal(t, "error", gjson.GetBytes(body, "type").String())
				assert.Equal(t, "invalid_action", gjson.GetBytes(body, "code").String())
				assert.Contains(t, gjson.GetBytes(body, "details.error").String(), "unknown message type")
			},
		},
		{
			name:   "too large",
			body:   `{"type":"identify","token":"` + strings.Repeat("x", protocol.MaxMessageSize) + `"}`,
			status: http.StatusRequestEntityTooLarge,
			check: func(t *testing.T, body []byte) {
				assert.Equal(t, "message_too_large", gjson.GetBytes(body, "code").String())
				assert.False(t, gjson.GetBytes(body, "details").Exists())
			},
		},
	}
	h := router(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/frames/client", tc.body)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			tc.check(t, rec.Body.Bytes())
		})
	}
}
