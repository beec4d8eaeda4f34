package client

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/runecast-protocol/pkg/protocol"
)

func strPtr(s string) *string { return &s }

// samples holds at least one populated value per variant.
func samples() []Message {
	return []Message{
		Identify{Token: "tok-123"},
		Heartbeat{},
		Ack{Seq: 41},
		JoinChannelLobby{ChannelID: "123456", GuildID: strPtr("789")},
		JoinChannelLobby{ChannelID: "123456"},
		CreateCustomLobby{},
		JoinCustomLobby{LobbyCode: "ZED123"},
		LeaveLobby{},
		ToggleReady{},
		CreateGame{Mode: protocol.ModeMultiplayer},
		StartGame{},
		SubmitWord{Word: "HELLO", Positions: []protocol.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}}},
		PassTurn{},
		ShuffleBoard{},
		SwapTile{Row: 2, Col: 3, NewLetter: 'Q'},
		EnterSwapMode{},
		ExitSwapMode{},
		SelectionUpdate{Positions: []protocol.Position{{Row: 4, Col: 4}}},
		SpectateGame{GameID: "g1"},
		JoinGameAsPlayer{GameID: "g1"},
		LeaveSpectator{GameID: "g1"},
		LeaveGame{GameID: "g1"},
		InitiateTimerVote{},
		VoteForTimer{},
		AdminGetGames{},
		AdminDeleteGame{GameID: "g9"},
		PlayerDisconnected{LobbyID: strPtr("l1"), GameID: strPtr("g1")},
		PlayerDisconnected{},
	}
}

func TestSamplesCoverEveryVariant(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range samples() {
		seen[m.Type()] = true
	}
	got := make([]string, 0, len(seen))
	for tag := range seen {
		got = append(got, tag)
	}
	want := Types()
	sort.Strings(got)
	sort.Strings(want)
	assert.Equal(t, want, got)
	assert.Len(t, want, 26)
}

func TestRoundTrip(t *testing.T) {
	for _, m := range samples() {
		t.Run(m.Type(), func(t *testing.T) {
			data, err := Encode(m)
			require.NoError(t, err)

			back, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, m, back)
		})
	}
}

func TestEncode_WireShape(t *testing.T) {
	tests := []struct {
		msg  Message
		want string
	}{
		{Heartbeat{}, `{"type":"heartbeat"}`},
		{Ack{Seq: 3}, `{"type":"ack","seq":3}`},
		{JoinChannelLobby{ChannelID: "1"}, `{"type":"join_channel_lobby","channel_id":"1"}`},
		{SwapTile{Row: 1, Col: 2, NewLetter: 'E'}, `{"type":"swap_tile","row":1,"col":2,"new_letter":"E"}`},
		{SpectateGame{GameID: "g"}, `{"type":"spectate_game","game_id":"g"}`},
	}
	for _, tc := range tests {
		t.Run(tc.msg.Type(), func(t *testing.T) {
			out, err := Encode(tc.msg)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(out))
		})
	}
}

func TestDecode_LegacySpectateTag(t *testing.T) {
	m, err := Decode([]byte(`{"type":"join_game","game_id":"g7"}`))
	require.NoError(t, err)
	assert.Equal(t, SpectateGame{GameID: "g7"}, m)
}

func TestDecode_NullOptionalField(t *testing.T) {
	m, err := Decode([]byte(`{"type":"join_channel_lobby","channel_id":"123","guild_id":null}`))
	require.NoError(t, err)
	assert.Equal(t, JoinChannelLobby{ChannelID: "123"}, m)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		kind  error
		field string
	}{
		{"unknown type", `{"type":"not_a_real_message"}`, protocol.ErrUnknownType, ""},
		{"no type", `{"token":"x"}`, protocol.ErrMissingType, ""},
		{"not json", `heartbeat`, protocol.ErrMalformedJSON, ""},
		{"not an object", `["heartbeat"]`, protocol.ErrNotObject, ""},
		{"missing token", `{"type":"identify"}`, protocol.ErrMissingField, "token"},
		{"missing positions", `{"type":"submit_word","word":"HI"}`, protocol.ErrMissingField, "positions"},
		{"position missing col", `{"type":"submit_word","word":"HI","positions":[{"row":1}]}`, protocol.ErrMissingField, "positions[0].col"},
		{"mistyped seq", `{"type":"ack","seq":"four"}`, protocol.ErrInvalidField, "seq"},
		{"two letters", `{"type":"swap_tile","row":0,"col":0,"new_letter":"QU"}`, protocol.ErrInvalidField, ""},
		{"unknown mode", `{"type":"create_game","mode":"battle"}`, protocol.ErrInvalidField, ""},
		{"null game id", `{"type":"leave_game","game_id":null}`, protocol.ErrMissingField, "game_id"},
		{"repeated type", `{"type":"heartbeat","type":"identify","token":"x"}`, protocol.ErrInvalidField, "type"},
		{"repeated field", `{"type":"identify","token":"a","token":"b"}`, protocol.ErrInvalidField, "token"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Decode([]byte(tc.in))
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, tc.kind), "got %v", err)

			var de *protocol.DecodeError
			require.True(t, errors.As(err, &de))
			if tc.field != "" {
				assert.Equal(t, tc.field, de.Field)
			}
		})
	}
}

func TestDecode_ErrorNamesVariant(t *testing.T) {
	_, err := Decode([]byte(`{"type":"join_custom_lobby"}`))
	var de *protocol.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, TypeJoinCustomLobby, de.Type)
	assert.Equal(t, "lobby_code", de.Field)
}

func TestEncode_Nil(t *testing.T) {
	_, err := Encode(nil)
	assert.True(t, errors.Is(err, protocol.ErrEncode))
}

func TestRequirements(t *testing.T) {
	tests := []struct {
		msg                    Message
		lobby, activeGame, turn bool
	}{
		{Heartbeat{}, false, false, false},
		{CreateCustomLobby{}, false, false, false},
		{StartGame{}, true, false, false},
		{ToggleReady{}, true, false, false},
		{SpectateGame{GameID: "g"}, true, false, false},
		{LeaveGame{GameID: "g"}, false, false, false},
		{InitiateTimerVote{}, true, true, false},
		{SelectionUpdate{}, true, true, false},
		{PassTurn{}, true, true, true},
		{SubmitWord{Word: "HI"}, true, true, true},
		{SwapTile{}, true, true, true},
		{AdminDeleteGame{GameID: "g"}, true, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.msg.Type(), func(t *testing.T) {
			assert.Equal(t, tc.lobby, RequiresLobby(tc.msg), "lobby")
			assert.Equal(t, tc.activeGame, RequiresActiveGame(tc.msg), "active game")
			assert.Equal(t, tc.turn, RequiresTurn(tc.msg), "turn")
		})
	}
}

func TestNormalizeLobbyCode(t *testing.T) {
	assert.Equal(t, "ZED123", NormalizeLobbyCode("  zed123 "))
	assert.Equal(t, "ZED123", JoinCustomLobby{LobbyCode: "Zed123"}.Code())
}
