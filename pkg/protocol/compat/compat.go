// Package compat bridges the bare legacy wire format and the enveloped one.
// Peers on either format talk to the same server through these functions.
package compat

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/DoyleJ11/runecast-protocol/pkg/protocol"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/client"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/server"
)

// ParseClientMessage decodes one inbound frame in either layout. seq and ack
// are nil for bare frames; ack is also nil when an envelope carries none.
func ParseClientMessage(data []byte) (client.Message, *uint64, *uint64, error) {
	return protocol.Resolve(data, client.Decode)
}

// SerializeServerMessage encodes msg, inside an envelope when seq is set.
// An error here means msg was not well formed and is a bug in the caller.
func SerializeServerMessage(msg server.Message, seq, ack *uint64) ([]byte, error) {
	if seq == nil || msg == nil {
		return server.Encode(msg)
	}
	return protocol.EncodeEnvelope(protocol.Wrap(msg, *seq, ack))
}

// LegacyGameStateToSnapshot converts an untyped legacy game_state object.
// It reports false instead of failing when a required piece is missing or
// unreadable. Optional pieces fall back to empty values and an unknown state
// string is read as idle.
func LegacyGameStateToSnapshot(raw []byte) (protocol.GameSnapshot, bool) {
	if !gjson.ValidBytes(raw) {
		return protocol.GameSnapshot{}, false
	}
	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return protocol.GameSnapshot{}, false
	}

	gameID := obj.Get("game_id")
	state := obj.Get("state")
	if gameID.Type != gjson.String || state.Type != gjson.String {
		return protocol.GameSnapshot{}, false
	}
	turn, ok := userID(obj.Get("current_turn"))
	if !ok {
		return protocol.GameSnapshot{}, false
	}
	round, maxRounds := obj.Get("round"), obj.Get("max_rounds")
	if round.Type != gjson.Number || maxRounds.Type != gjson.Number {
		return protocol.GameSnapshot{}, false
	}

	snap := protocol.GameSnapshot{
		GameID:      gameID.String(),
		State:       protocol.GameState(state.String()),
		CurrentTurn: turn,
		Round:       int(round.Int()),
		MaxRounds:   int(maxRounds.Int()),
	}
	if !snap.State.Valid() {
		snap.State = protocol.StateIdle
	}

	if !decodeField(obj.Get("grid"), &snap.Grid) || !decodeField(obj.Get("players"), &snap.Players) {
		return protocol.GameSnapshot{}, false
	}

	// spectators and used_words must be present; a malformed value is
	// replaced with an empty list.
	spectators, usedWords := obj.Get("spectators"), obj.Get("used_words")
	if !spectators.Exists() || !usedWords.Exists() {
		return protocol.GameSnapshot{}, false
	}
	if !decodeField(spectators, &snap.Spectators) || snap.Spectators == nil {
		snap.Spectators = []protocol.SpectatorInfo{}
	}
	if !decodeField(usedWords, &snap.UsedWords) || snap.UsedWords == nil {
		snap.UsedWords = []string{}
	}
	if !decodeField(obj.Get("timer_vote_state"), &snap.TimerVoteState) {
		snap.TimerVoteState = protocol.IdleVote()
	}
	return snap, true
}

// SnapshotToLegacyGameState renders a snapshot for clients that still expect
// game_state pushes.
func SnapshotToLegacyGameState(s protocol.GameSnapshot) server.GameStateUpdate {
	return server.GameStateUpdate{
		GameID:         s.GameID,
		State:          string(s.State),
		Grid:           s.Grid,
		Players:        nonNil(s.Players),
		CurrentTurn:    s.CurrentTurn,
		Round:          s.Round,
		MaxRounds:      s.MaxRounds,
		UsedWords:      nonNil(s.UsedWords),
		Spectators:     nonNil(s.Spectators),
		TimerVoteState: s.TimerVoteState,
	}
}

// SnapshotToLegacyLobbyState is the lobby counterpart of
// SnapshotToLegacyGameState.
func SnapshotToLegacyLobbyState(s protocol.LobbySnapshot) server.LobbyStateUpdate {
	return server.LobbyStateUpdate{
		LobbyID: s.LobbyID,
		Players: nonNil(s.Players),
		Games:   nonNil(s.Games),
	}
}

func userID(v gjson.Result) (protocol.UserID, bool) {
	if v.Type != gjson.String {
		return 0, false
	}
	var id protocol.UserID
	if err := id.UnmarshalJSON([]byte(v.Raw)); err != nil {
		return 0, false
	}
	return id, true
}

func decodeField(v gjson.Result, dst any) bool {
	if !v.Exists() || v.Type == gjson.Null {
		return false
	}
	return json.Unmarshal([]byte(v.Raw), dst) == nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
