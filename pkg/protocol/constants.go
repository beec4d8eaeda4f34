package protocol

import "time"

const (
	HeartbeatIntervalMS = 30_000
	HeartbeatTimeoutMS  = 45_000
	ReconnectGraceMS    = 60_000

	// MaxMessageSize is the largest inbound frame in bytes. The transport
	// rejects bigger frames with CodeMessageTooLarge before decoding.
	MaxMessageSize = 64 * 1024

	ProtocolVersion = "1.0.0"
)

const (
	HeartbeatInterval = HeartbeatIntervalMS * time.Millisecond
	HeartbeatTimeout  = HeartbeatTimeoutMS * time.Millisecond
	ReconnectGrace    = ReconnectGraceMS * time.Millisecond
)

// now is swapped out in tests.
var now = time.Now

// NowMillis is the wall clock in epoch milliseconds.
func NowMillis() uint64 {
	return uint64(now().UnixMilli())
}
