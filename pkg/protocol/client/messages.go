// Package client defines every message a game client may send.
package client

import (
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/DoyleJ11/runecast-protocol/pkg/protocol"
)

// Message is the closed set of client requests. Switch on the concrete type.
type Message interface {
	Type() string
	isClientMessage()
}

const (
	TypeIdentify           = "identify"
	TypeHeartbeat          = "heartbeat"
	TypeAck                = "ack"
	TypeJoinChannelLobby   = "join_channel_lobby"
	TypeCreateCustomLobby  = "create_custom_lobby"
	TypeJoinCustomLobby    = "join_custom_lobby"
	TypeLeaveLobby         = "leave_lobby"
	TypeToggleReady        = "toggle_ready"
	TypeCreateGame         = "create_game"
	TypeStartGame          = "start_game"
	TypeSubmitWord         = "submit_word"
	TypePassTurn           = "pass_turn"
	TypeShuffleBoard       = "shuffle_board"
	TypeSwapTile           = "swap_tile"
	TypeEnterSwapMode      = "enter_swap_mode"
	TypeExitSwapMode       = "exit_swap_mode"
	TypeSelectionUpdate    = "selection_update"
	TypeSpectateGame       = "spectate_game"
	TypeJoinGameAsPlayer   = "join_game_as_player"
	TypeLeaveSpectator     = "leave_spectator"
	TypeLeaveGame          = "leave_game"
	TypeInitiateTimerVote  = "initiate_timer_vote"
	TypeVoteForTimer       = "vote_for_timer"
	TypeAdminGetGames      = "admin_get_games"
	TypeAdminDeleteGame    = "admin_delete_game"
	TypePlayerDisconnected = "player_disconnected"

	// legacySpectateGame is what older clients send for spectate_game.
	legacySpectateGame = "join_game"
)

// Connection

type Identify struct {
	Token string `json:"token"`
}

type Heartbeat struct{}

// Ack confirms every server message up to and including Seq.
type Ack struct {
	Seq uint64 `json:"seq"`
}

// Lobby

type JoinChannelLobby struct {
	ChannelID string  `json:"channel_id"`
	GuildID   *string `json:"guild_id,omitempty"`
}

type CreateCustomLobby struct{}

type JoinCustomLobby struct {
	LobbyCode string `json:"lobby_code"`
}

// Code is the lobby code as the lobby service stores it.
func (m JoinCustomLobby) Code() string { return NormalizeLobbyCode(m.LobbyCode) }

type LeaveLobby struct{}

type ToggleReady struct{}

// Game lifecycle

type CreateGame struct {
	Mode protocol.GameMode `json:"mode"`
}

type StartGame struct{}

// Game actions. These always target the sender's current game.

type SubmitWord struct {
	Word      string              `json:"word"`
	Positions []protocol.Position `json:"positions"`
}

type PassTurn struct{}

type ShuffleBoard struct{}

type SwapTile struct {
	Row       int             `json:"row"`
	Col       int             `json:"col"`
	NewLetter protocol.Letter `json:"new_letter"`
}

type EnterSwapMode struct{}

type ExitSwapMode struct{}

// SelectionUpdate streams the sender's in-progress path to other players.
type SelectionUpdate struct {
	Positions []protocol.Position `json:"positions"`
}

// Spectating. These name the game because the sender is not necessarily in it.

type SpectateGame struct {
	GameID string `json:"game_id"`
}

type JoinGameAsPlayer struct {
	GameID string `json:"game_id"`
}

type LeaveSpectator struct {
	GameID string `json:"game_id"`
}

type LeaveGame struct {
	GameID string `json:"game_id"`
}

// Timer voting

type InitiateTimerVote struct{}

type VoteForTimer struct{}

// Admin

type AdminGetGames struct{}

type AdminDeleteGame struct {
	GameID string `json:"game_id"`
}

// PlayerDisconnected is synthesized by the gateway when a socket drops, so
// the game side sees disconnects on the same path as requests. It still
// decodes from the wire; the gateway refuses it from peers.
type PlayerDisconnected struct {
	LobbyID *string `json:"lobby_id,omitempty"`
	GameID  *string `json:"game_id,omitempty"`
}

func (Identify) Type() string           { return TypeIdentify }
func (Heartbeat) Type() string          { return TypeHeartbeat }
func (Ack) Type() string                { return TypeAck }
func (JoinChannelLobby) Type() string   { return TypeJoinChannelLobby }
func (CreateCustomLobby) Type() string  { return TypeCreateCustomLobby }
func (JoinCustomLobby) Type() string    { return TypeJoinCustomLobby }
func (LeaveLobby) Type() string         { return TypeLeaveLobby }
func (ToggleReady) Type() string        { return TypeToggleReady }
func (CreateGame) Type() string         { return TypeCreateGame }
func (StartGame) Type() string          { return TypeStartGame }
func (SubmitWord) Type() string         { return TypeSubmitWord }
func (PassTurn) Type() string           { return TypePassTurn }
func (ShuffleBoard) Type() string       { return TypeShuffleBoard }
func (SwapTile) Type() string           { return TypeSwapTile }
func (EnterSwapMode) Type() string      { return TypeEnterSwapMode }
func (ExitSwapMode) Type() string       { return TypeExitSwapMode }
func (SelectionUpdate) Type() string    { return TypeSelectionUpdate }
func (SpectateGame) Type() string       { return TypeSpectateGame }
func (JoinGameAsPlayer) Type() string   { return TypeJoinGameAsPlayer }
func (LeaveSpectator) Type() string     { return TypeLeaveSpectator }
func (LeaveGame) Type() string          { return TypeLeaveGame }
func (InitiateTimerVote) Type() string  { return TypeInitiateTimerVote }
func (VoteForTimer) Type() string       { return TypeVoteForTimer }
func (AdminGetGames) Type() string      { return TypeAdminGetGames }
func (AdminDeleteGame) Type() string    { return TypeAdminDeleteGame }
func (PlayerDisconnected) Type() string { return TypePlayerDisconnected }

func (Identify) isClientMessage()           {}
func (Heartbeat) isClientMessage()          {}
func (Ack) isClientMessage()                {}
func (JoinChannelLobby) isClientMessage()   {}
func (CreateCustomLobby) isClientMessage()  {}
func (JoinCustomLobby) isClientMessage()    {}
func (LeaveLobby) isClientMessage()         {}
func (ToggleReady) isClientMessage()        {}
func (CreateGame) isClientMessage()         {}
func (StartGame) isClientMessage()          {}
func (SubmitWord) isClientMessage()         {}
func (PassTurn) isClientMessage()           {}
func (ShuffleBoard) isClientMessage()       {}
func (SwapTile) isClientMessage()           {}
func (EnterSwapMode) isClientMessage()      {}
func (ExitSwapMode) isClientMessage()       {}
func (SelectionUpdate) isClientMessage()    {}
func (SpectateGame) isClientMessage()       {}
func (JoinGameAsPlayer) isClientMessage()   {}
func (LeaveSpectator) isClientMessage()     {}
func (LeaveGame) isClientMessage()          {}
func (InitiateTimerVote) isClientMessage()  {}
func (VoteForTimer) isClientMessage()       {}
func (AdminGetGames) isClientMessage()      {}
func (AdminDeleteGame) isClientMessage()    {}
func (PlayerDisconnected) isClientMessage() {}

var variants = map[string]func([]byte) (Message, error){
	TypeIdentify:           protocol.Variant[Identify, Message],
	TypeHeartbeat:          protocol.Variant[Heartbeat, Message],
	TypeAck:                protocol.Variant[Ack, Message],
	TypeJoinChannelLobby:   protocol.Variant[JoinChannelLobby, Message],
	TypeCreateCustomLobby:  protocol.Variant[CreateCustomLobby, Message],
	TypeJoinCustomLobby:    protocol.Variant[JoinCustomLobby, Message],
	TypeLeaveLobby:         protocol.Variant[LeaveLobby, Message],
	TypeToggleReady:        protocol.Variant[ToggleReady, Message],
	TypeCreateGame:         protocol.Variant[CreateGame, Message],
	TypeStartGame:          protocol.Variant[StartGame, Message],
	TypeSubmitWord:         protocol.Variant[SubmitWord, Message],
	TypePassTurn:           protocol.Variant[PassTurn, Message],
	TypeShuffleBoard:       protocol.Variant[ShuffleBoard, Message],
	TypeSwapTile:           protocol.Variant[SwapTile, Message],
	TypeEnterSwapMode:      protocol.Variant[EnterSwapMode, Message],
	TypeExitSwapMode:       protocol.Variant[ExitSwapMode, Message],
	TypeSelectionUpdate:    protocol.Variant[SelectionUpdate, Message],
	TypeSpectateGame:       protocol.Variant[SpectateGame, Message],
	legacySpectateGame:     protocol.Variant[SpectateGame, Message],
	TypeJoinGameAsPlayer:   protocol.Variant[JoinGameAsPlayer, Message],
	TypeLeaveSpectator:     protocol.Variant[LeaveSpectator, Message],
	TypeLeaveGame:          protocol.Variant[LeaveGame, Message],
	TypeInitiateTimerVote:  protocol.Variant[InitiateTimerVote, Message],
	TypeVoteForTimer:       protocol.Variant[VoteForTimer, Message],
	TypeAdminGetGames:      protocol.Variant[AdminGetGames, Message],
	TypeAdminDeleteGame:    protocol.Variant[AdminDeleteGame, Message],
	TypePlayerDisconnected: protocol.Variant[PlayerDisconnected, Message],
}

// Types lists every tag Encode can produce.
func Types() []string {
	out := make([]string, 0, len(variants))
	for tag := range variants {
		if tag != legacySpectateGame {
			out = append(out, tag)
		}
	}
	return out
}

// Decode reads one bare client message. Unknown tags, missing required
// fields and mistyped fields all fail with a *protocol.DecodeError.
func Decode(data []byte) (Message, error) {
	return protocol.DecodeUnion(data, protocol.TypeKey, variants)
}

// Encode writes m in bare form.
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, &protocol.EncodeError{Err: errors.New("nil client message")}
	}
	out, err := json.Marshal(m)
	if err != nil {
		var ee *protocol.EncodeError
		if errors.As(err, &ee) {
			return nil, ee
		}
		return nil, &protocol.EncodeError{Type: m.Type(), Err: err}
	}
	return out, nil
}

// RequiresLobby reports messages that only make sense inside a lobby.
func RequiresLobby(m Message) bool {
	switch m.(type) {
	case LeaveLobby, ToggleReady, StartGame,
		SubmitWord, PassTurn, ShuffleBoard, EnterSwapMode, ExitSwapMode, SwapTile,
		SpectateGame, JoinGameAsPlayer, LeaveSpectator, SelectionUpdate,
		InitiateTimerVote, VoteForTimer, AdminGetGames, AdminDeleteGame:
		return true
	}
	return false
}

// RequiresActiveGame reports messages that need the sender in a running game.
func RequiresActiveGame(m Message) bool {
	switch m.(type) {
	case SubmitWord, PassTurn, ShuffleBoard, EnterSwapMode, ExitSwapMode, SwapTile,
		SelectionUpdate, InitiateTimerVote, VoteForTimer:
		return true
	}
	return false
}

// RequiresTurn reports messages only the current player may send.
func RequiresTurn(m Message) bool {
	switch m.(type) {
	case SubmitWord, PassTurn, ShuffleBoard, SwapTile:
		return true
	}
	return false
}

// NormalizeLobbyCode trims and upper-cases a code typed by a user.
func NormalizeLobbyCode(code string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(code))
}
