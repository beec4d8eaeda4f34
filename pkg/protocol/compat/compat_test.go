package compat

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/DoyleJ11/runecast-protocol/pkg/protocol"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/client"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol/server"
)

func u64(v uint64) *uint64 { return &v }

func clientMessages() []client.Message {
	guild := "g-1"
	return []client.Message{
		client.Identify{Token: "t"},
		client.Heartbeat{},
		client.Ack{Seq: 12},
		client.JoinChannelLobby{ChannelID: "c", GuildID: &guild},
		client.CreateCustomLobby{},
		client.JoinCustomLobby{LobbyCode: "ABC123"},
		client.LeaveLobby{},
		client.ToggleReady{},
		client.CreateGame{Mode: protocol.ModeSolo},
		client.StartGame{},
		client.SubmitWord{Word: "AT", Positions: []protocol.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}}},
		client.PassTurn{},
		client.ShuffleBoard{},
		client.SwapTile{Row: 4, Col: 4, NewLetter: 'Z'},
		client.EnterSwapMode{},
		client.ExitSwapMode{},
		client.SelectionUpdate{Positions: []protocol.Position{}},
		client.SpectateGame{GameID: "g"},
		client.JoinGameAsPlayer{GameID: "g"},
		client.LeaveSpectator{GameID: "g"},
		client.LeaveGame{GameID: "g"},
		client.InitiateTimerVote{},
		client.VoteForTimer{},
		client.AdminGetGames{},
		client.AdminDeleteGame{GameID: "g"},
		client.PlayerDisconnected{},
	}
}

func TestParseClientMessage_BothLayoutsAgree(t *testing.T) {
	msgs := clientMessages()
	require.Len(t, msgs, len(client.Types()))

	for _, m := range msgs {
		t.Run(m.Type(), func(t *testing.T) {
			bare, err := client.Encode(m)
			require.NoError(t, err)
			enveloped := fmt.Sprintf(`{"seq":7,"ack":3,"timestamp":1699900000000,"payload":%s}`, bare)

			fromBare, seq, ack, err := ParseClientMessage(bare)
			require.NoError(t, err)
			assert.Nil(t, seq)
			assert.Nil(t, ack)

			fromEnv, seq, ack, err := ParseClientMessage([]byte(enveloped))
			require.NoError(t, err)
			assert.Equal(t, u64(7), seq)
			assert.Equal(t, u64(3), ack)

			assert.Equal(t, m, fromBare)
			assert.Equal(t, fromBare, fromEnv)
		})
	}
}

func TestParseClientMessage_Scenarios(t *testing.T) {
	m, seq, ack, err := ParseClientMessage([]byte(`{"type":"heartbeat"}`))
	require.NoError(t, err)
	assert.Equal(t, client.Heartbeat{}, m)
	assert.Nil(t, seq)
	assert.Nil(t, ack)

	m, seq, ack, err = ParseClientMessage([]byte(`{"seq":5,"ack":null,"timestamp":1699900000000,"payload":{"type":"pass_turn"}}`))
	require.NoError(t, err)
	assert.Equal(t, client.PassTurn{}, m)
	assert.Equal(t, u64(5), seq)
	assert.Nil(t, ack)
}

func TestParseClientMessage_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind error
	}{
		{"garbage", `not json`, protocol.ErrMalformedJSON},
		{"unknown bare", `{"type":"not_a_real_message"}`, protocol.ErrUnknownType},
		{"unknown enveloped", `{"seq":1,"timestamp":0,"payload":{"type":"not_a_real_message"}}`, protocol.ErrUnknownType},
		{"missing field enveloped", `{"seq":1,"timestamp":0,"payload":{"type":"submit_word","word":"AT"}}`, protocol.ErrMissingField},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, seq, ack, err := ParseClientMessage([]byte(tc.in))
			assert.True(t, errors.Is(err, tc.kind), "got %v", err)
			assert.Nil(t, m)
			assert.Nil(t, seq)
			assert.Nil(t, ack)
		})
	}
}

func TestSerializeServerMessage(t *testing.T) {
	msg := server.NewError(protocol.CodeNotYourTurn)

	bare, err := SerializeServerMessage(msg, nil, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","code":"not_your_turn","message":"It's not your turn"}`, string(bare))
	assert.False(t, gjson.GetBytes(bare, "details").Exists())

	before := uint64(time.Now().UnixMilli())
	env, err := SerializeServerMessage(msg, u64(9), u64(4))
	require.NoError(t, err)
	assert.Equal(t, uint64(9), gjson.GetBytes(env, "seq").Uint())
	assert.Equal(t, uint64(4), gjson.GetBytes(env, "ack").Uint())
	assert.GreaterOrEqual(t, gjson.GetBytes(env, "timestamp").Uint(), before)
	assert.JSONEq(t, string(bare), gjson.GetBytes(env, "payload").Raw)

	env, err = SerializeServerMessage(msg, u64(10), nil)
	require.NoError(t, err)
	assert.Equal(t, gjson.Null, gjson.GetBytes(env, "ack").Type)

	_, err = SerializeServerMessage(nil, u64(1), nil)
	assert.True(t, errors.Is(err, protocol.ErrEncode))
}

const legacyState = `{
	"type": "game_state",
	"game_id": "g1",
	"state": "in_progress",
	"grid": %s,
	"players": [{"user_id": "1", "username": "ada", "score": 12}],
	"current_turn": "1",
	"round": 2,
	"max_rounds": 5,
	"spectators": [],
	"used_words": []
	%s
}`

func legacyGrid() string {
	row := `[{"letter":"A","value":1},{"letter":"B","value":1},{"letter":"C","value":1},{"letter":"D","value":1},{"letter":"E","value":1}]`
	return "[" + row + "," + row + "," + row + "," + row + "," + row + "]"
}

func TestLegacyGameStateToSnapshot(t *testing.T) {
	snap, ok := LegacyGameStateToSnapshot([]byte(fmt.Sprintf(legacyState, legacyGrid(), "")))
	require.True(t, ok)
	assert.Equal(t, "g1", snap.GameID)
	assert.Equal(t, protocol.StateInProgress, snap.State)
	assert.Equal(t, protocol.UserID(1), snap.CurrentTurn)
	assert.Equal(t, 2, snap.Round)
	assert.Equal(t, 5, snap.MaxRounds)
	assert.Equal(t, protocol.Letter('E'), snap.Grid[4][4].Letter)
	require.Len(t, snap.Players, 1)
	assert.True(t, snap.Players[0].IsConnected)

	assert.Equal(t, []protocol.SpectatorInfo{}, snap.Spectators)
	assert.Equal(t, []string{}, snap.UsedWords)
	assert.Equal(t, protocol.IdleVote(), snap.TimerVoteState)
}

func TestLegacyGameStateToSnapshot_MalformedListsBecomeEmpty(t *testing.T) {
	in := fmt.Sprintf(legacyState, legacyGrid(), "")
	in = strings.Replace(in, `"spectators": []`, `"spectators": "nobody"`, 1)
	in = strings.Replace(in, `"used_words": []`, `"used_words": null`, 1)

	snap, ok := LegacyGameStateToSnapshot([]byte(in))
	require.True(t, ok)
	assert.Equal(t, []protocol.SpectatorInfo{}, snap.Spectators)
	assert.Equal(t, []string{}, snap.UsedWords)
}

func TestLegacyGameStateToSnapshot_OptionalPieces(t *testing.T) {
	in := fmt.Sprintf(legacyState, legacyGrid(), `,"timer_vote_state":{"status":"disabled"}`)
	in = strings.Replace(in, `"spectators": []`, `"spectators": [{"user_id":"3","username":"cy"}]`, 1)
	in = strings.Replace(in, `"used_words": []`, `"used_words": ["AB"]`, 1)
	snap, ok := LegacyGameStateToSnapshot([]byte(in))
	require.True(t, ok)
	assert.Equal(t, []string{"AB"}, snap.UsedWords)
	assert.Equal(t, []protocol.SpectatorInfo{{UserID: 3, Username: "cy"}}, snap.Spectators)
	assert.Equal(t, protocol.DisabledVote(), snap.TimerVoteState)

	in = fmt.Sprintf(legacyState, legacyGrid(), `,"timer_vote_state":{"status":"paused"}`)
	in = strings.Replace(in, `"state": "in_progress"`, `"state": "warming_up"`, 1)
	snap, ok = LegacyGameStateToSnapshot([]byte(in))
	require.True(t, ok)
	assert.Equal(t, protocol.StateIdle, snap.State)
	assert.Equal(t, protocol.IdleVote(), snap.TimerVoteState)
}

func TestLegacyGameStateToSnapshot_Rejects(t *testing.T) {
	full := fmt.Sprintf(legacyState, legacyGrid(), "")
	tests := map[string]string{
		"missing grid":    fmt.Sprintf(legacyState, "null", ""),
		"short grid":      fmt.Sprintf(legacyState, "[[]]", ""),
		"not an object":   `["game_state"]`,
		"not json":        `{"game_id":`,
		"numeric game id": strings.Replace(full, `"game_id": "g1"`, `"game_id": 7`, 1),
		"bad turn":        strings.Replace(full, `"current_turn": "1"`, `"current_turn": "someone"`, 1),
		"numeric turn":    strings.Replace(full, `"current_turn": "1"`, `"current_turn": 1`, 1),
		"no spectators":   strings.Replace(full, `"spectators": [],`, ``, 1),
		"no used words":   strings.Replace(full, `"used_words": []`, `"words": []`, 1),
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, ok := LegacyGameStateToSnapshot([]byte(in))
			assert.False(t, ok)
		})
	}

	noLists := `{"game_id":"g1","state":"in_progress","grid":` + legacyGrid() + `,"players":[],"current_turn":"1","round":1,"max_rounds":3}`
	_, ok := LegacyGameStateToSnapshot([]byte(noLists))
	assert.False(t, ok)
}

func TestLegacyRoundTrip(t *testing.T) {
	var grid protocol.Grid
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = protocol.GridCell{Letter: 'O', Value: 1}
		}
	}
	snap := protocol.GameSnapshot{
		GameID:         "g1",
		State:          protocol.StateFinished,
		Grid:           grid,
		Players:        []protocol.PlayerInfo{{UserID: 1, Username: "ada", Score: 50, IsConnected: true}},
		Spectators:     []protocol.SpectatorInfo{},
		CurrentTurn:    1,
		Round:          5,
		MaxRounds:      5,
		UsedWords:      []string{"OO"},
		TimerVoteState: protocol.IdleVote(),
	}

	legacy := SnapshotToLegacyGameState(snap)
	raw, err := server.Encode(legacy)
	require.NoError(t, err)
	assert.Equal(t, server.TypeGameStateUpdate, gjson.GetBytes(raw, "type").String())

	back, ok := LegacyGameStateToSnapshot(raw)
	require.True(t, ok)
	assert.Equal(t, snap, back)
}

func TestSnapshotToLegacyLobbyState(t *testing.T) {
	got := SnapshotToLegacyLobbyState(protocol.LobbySnapshot{LobbyID: "l1", LobbyType: protocol.LobbyChannel})
	assert.Equal(t, server.LobbyStateUpdate{LobbyID: "l1", Players: []protocol.LobbyPlayerInfo{}, Games: []protocol.LobbyGameInfo{}}, got)

	raw, err := server.Encode(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"lobby_state","lobby_id":"l1","players":[],"games":[]}`, string(raw))
}
