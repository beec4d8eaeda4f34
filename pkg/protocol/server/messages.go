// Package server defines every message the backend may push to a client.
package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DoyleJ11/runecast-protocol/pkg/protocol"
)

// Message is the closed set of server responses and events.
type Message interface {
	Type() string
	isServerMessage()
}

type (
	UserID   = protocol.UserID
	Grid     = protocol.Grid
	Position = protocol.Position
)

// Connection

// Hello is the first frame on every new socket, before identify.
type Hello struct {
	SessionID           string  `json:"session_id"`
	ServerTime          uint64  `json:"server_time"`
	HeartbeatIntervalMS uint32  `json:"heartbeat_interval_ms"`
	ServerVersion       *string `json:"server_version,omitempty"`
}

type Ready struct {
	SessionID string                  `json:"session_id"`
	Player    protocol.PlayerInfo     `json:"player"`
	Lobby     *protocol.LobbySnapshot `json:"lobby,omitempty"`
	Game      *protocol.GameSnapshot  `json:"game,omitempty"`
}

// Resumed replays what a reconnecting client missed, oldest first.
type Resumed struct {
	MissedEvents Messages `json:"missed_events"`
}

type HeartbeatAck struct {
	ServerTime uint64 `json:"server_time"`
}

// InvalidSession tells the client to drop its session and identify again.
type InvalidSession struct {
	Reason string `json:"reason"`
}

// Lobby

type LobbyJoined struct {
	LobbyID   string                 `json:"lobby_id"`
	LobbyCode *string                `json:"lobby_code,omitempty"`
	Lobby     protocol.LobbySnapshot `json:"lobby"`
}

type LobbySnapshot struct {
	Lobby protocol.LobbySnapshot `json:"lobby"`
}

type LobbyDelta struct {
	Changes protocol.LobbyChanges `json:"changes"`
}

type LobbyLeft struct{}

type CustomLobbyCreated struct {
	LobbyID   string `json:"lobby_id"`
	LobbyCode string `json:"lobby_code"`
}

// Game lifecycle

type GameStarted struct {
	GameID        string                    `json:"game_id"`
	Grid          Grid                      `json:"grid"`
	Players       []protocol.GamePlayerInfo `json:"players"`
	YourTurnOrder int                       `json:"your_turn_order"`
	CurrentTurn   UserID                    `json:"current_turn"`
	Round         int                       `json:"round"`
	MaxRounds     int                       `json:"max_rounds"`
	TurnTimeLimit *int                      `json:"turn_time_limit,omitempty"`
}

type GameSnapshot struct {
	GameID string                `json:"game_id"`
	Game   protocol.GameSnapshot `json:"game"`
}

type GameDelta struct {
	GameID  string               `json:"game_id"`
	Changes protocol.GameChanges `json:"changes"`
}

// GameOver has no WinnerID on a draw.
type GameOver struct {
	GameID      string               `json:"game_id"`
	FinalScores []protocol.ScoreInfo `json:"final_scores"`
	WinnerID    *UserID              `json:"winner_id,omitempty"`
	IsDraw      bool                 `json:"is_draw" protocol:"optional"`
}

type GameCancelled struct {
	GameID string `json:"game_id"`
	Reason string `json:"reason"`
}

// Events

type PlayerJoined struct {
	Player protocol.LobbyPlayerInfo `json:"player"`
}

type PlayerLeft struct {
	PlayerID UserID  `json:"player_id"`
	Reason   *string `json:"reason,omitempty"`
}

type PlayerReconnected struct {
	PlayerID UserID `json:"player_id"`
}

type PlayerDisconnected struct {
	GameID             *string `json:"game_id,omitempty"`
	PlayerID           UserID  `json:"player_id"`
	GracePeriodSeconds int     `json:"grace_period_seconds"`
}

type WordScored struct {
	PlayerID   UserID     `json:"player_id"`
	GameID     string     `json:"game_id"`
	Word       string     `json:"word"`
	Score      int        `json:"score"`
	Path       []Position `json:"path"`
	TotalScore int        `json:"total_score"`
	GemsEarned int        `json:"gems_earned"`
	TotalGems  int        `json:"total_gems"`
	NewGrid    Grid       `json:"new_grid"`
}

type TurnChanged struct {
	PlayerID      UserID `json:"player_id"`
	GameID        string `json:"game_id"`
	Round         int    `json:"round"`
	TimeRemaining *int   `json:"time_remaining,omitempty"`
}

type TurnPassed struct {
	PlayerID UserID `json:"player_id"`
	GameID   string `json:"game_id"`
}

type RoundChanged struct {
	GameID    string `json:"game_id"`
	Round     int    `json:"round"`
	MaxRounds int    `json:"max_rounds"`
	NewGrid   *Grid  `json:"new_grid,omitempty"`
}

type BoardShuffled struct {
	PlayerID  UserID `json:"player_id"`
	GameID    string `json:"game_id"`
	NewGrid   Grid   `json:"new_grid"`
	GemsSpent int    `json:"gems_spent"`
	TotalGems int    `json:"total_gems"`
}

type TileSwapped struct {
	PlayerID  UserID          `json:"player_id"`
	GameID    string          `json:"game_id"`
	Row       int             `json:"row"`
	Col       int             `json:"col"`
	OldLetter protocol.Letter `json:"old_letter"`
	NewLetter protocol.Letter `json:"new_letter"`
	GemsSpent int             `json:"gems_spent"`
	TotalGems int             `json:"total_gems"`
}

type SwapModeEntered struct {
	PlayerID UserID `json:"player_id"`
	GameID   string `json:"game_id"`
}

type SwapModeExited struct {
	PlayerID UserID `json:"player_id"`
	GameID   string `json:"game_id"`
}

// Spectators

// SpectatorJoined goes to the new spectator with the state to render.
type SpectatorJoined struct {
	GameID string                `json:"game_id"`
	Game   protocol.GameSnapshot `json:"game"`
}

// SpectatorAdded goes to everyone already watching or playing.
type SpectatorAdded struct {
	Spectator protocol.SpectatorInfo `json:"spectator"`
	GameID    string                 `json:"game_id"`
}

type SpectatorRemoved struct {
	SpectatorID UserID `json:"spectator_id"`
	GameID      string `json:"game_id"`
}

type SpectatorBecamePlayer struct {
	PlayerID UserID `json:"player_id"`
	Username string `json:"username"`
	GameID   string `json:"game_id"`
}

type SpectatorLeft struct{}

type SelectionUpdate struct {
	PlayerID  UserID     `json:"player_id"`
	GameID    string     `json:"game_id"`
	Positions []Position `json:"positions"`
}

// Timer vote

type TimerVoteUpdate struct {
	State  protocol.TimerVoteState `json:"state"`
	GameID string                  `json:"game_id"`
}

type TurnTimerStarted struct {
	TargetPlayerID UserID `json:"target_player_id"`
	GameID         string `json:"game_id"`
	Seconds        int    `json:"seconds"`
}

type TurnTimerExpired struct {
	PlayerID UserID `json:"player_id"`
	GameID   string `json:"game_id"`
}

// Rematch

type RematchCountdownUpdate struct {
	State          protocol.RematchCountdownState `json:"state"`
	PreviousGameID string                         `json:"previous_game_id"`
}

type PlayerLeftRematch struct {
	PlayerID       UserID `json:"player_id"`
	PreviousGameID string `json:"previous_game_id"`
}

type RematchStarting struct {
	TriggeredBy    *UserID `json:"triggered_by,omitempty"`
	PreviousGameID string  `json:"previous_game_id"`
}

// Matchmaking pools. A nil pool means "not queued".

type PlayerPoolChanged struct {
	PlayerID UserID             `json:"player_id"`
	OldPool  *protocol.GameType `json:"old_pool"`
	NewPool  *protocol.GameType `json:"new_pool"`
}

type PoolJoined struct {
	Position    int    `json:"position"`
	TotalInPool int    `json:"total_in_pool"`
	GameID      string `json:"game_id"`
}

type PoolUpdate struct {
	Position    int    `json:"position"`
	TotalInPool int    `json:"total_in_pool"`
	GameID      string `json:"game_id"`
}

type PoolLeft struct{}

// Admin

type AdminGamesList struct {
	Games []protocol.AdminGameInfo `json:"games"`
}

type AdminGameDeleted struct {
	GameID string `json:"game_id"`
}

// Legacy full-state pushes for clients that predate snapshots and deltas.

type GameStateUpdate struct {
	GameID         string                   `json:"game_id"`
	State          string                   `json:"state"`
	Grid           Grid                     `json:"grid"`
	Players        []protocol.PlayerInfo    `json:"players"`
	CurrentTurn    UserID                   `json:"current_turn"`
	Round          int                      `json:"round"`
	MaxRounds      int                      `json:"max_rounds"`
	UsedWords      []string                 `json:"used_words"`
	Spectators     []protocol.SpectatorInfo `json:"spectators"`
	TimerVoteState protocol.TimerVoteState  `json:"timer_vote_state"`
}

type LobbyStateUpdate struct {
	LobbyID string                     `json:"lobby_id"`
	Players []protocol.LobbyPlayerInfo `json:"players"`
	Games   []protocol.LobbyGameInfo   `json:"games"`
}

// Error is the only way a failure reaches a client.
type Error struct {
	Code    protocol.ErrorCode `json:"code"`
	Message string             `json:"message"`
	Details json.RawMessage    `json:"details,omitempty"`
}

// UnmarshalJSON reads "details": null as no details.
func (m *Error) UnmarshalJSON(data []byte) error {
	type wire Error
	var w wire
	if err := protocol.DecodeObject(data, &w); err != nil {
		return err
	}
	if string(w.Details) == "null" {
		w.Details = nil
	}
	*m = Error(w)
	return nil
}

// NewError builds an error with the code's default message.
func NewError(code protocol.ErrorCode) Error {
	return Error{Code: code, Message: code.Message()}
}

func NewErrorMessage(code protocol.ErrorCode, message string) Error {
	return Error{Code: code, Message: message}
}

// NewErrorDetails attaches a structured details value.
func NewErrorDetails(code protocol.ErrorCode, message string, details any) (Error, error) {
	raw, err := json.Marshal(details)
	if err != nil {
		return Error{}, &protocol.EncodeError{Type: TypeError, Err: fmt.Errorf("details: %w", err)}
	}
	if string(raw) == "null" {
		raw = nil
	}
	return Error{Code: code, Message: message, Details: raw}, nil
}

// Messages is a list of server messages, as carried by resumed.
type Messages []Message

func (ms *Messages) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return protocol.WithType(err, TypeResumed)
	}
	if raws == nil {
		*ms = nil
		return nil
	}
	out := make(Messages, 0, len(raws))
	for _, raw := range raws {
		m, err := Decode(raw)
		if err != nil {
			return err
		}
		out = append(out, m)
	}
	*ms = out
	return nil
}

// Decode reads one bare server message.
func Decode(data []byte) (Message, error) {
	return protocol.DecodeUnion(data, protocol.TypeKey, variants)
}

// Encode writes m in bare form.
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, &protocol.EncodeError{Err: errors.New("nil server message")}
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

func IsError(m Message) bool {
	_, ok := m.(Error)
	return ok
}

// ShouldStoreForReplay reports whether m belongs in a session's replay
// buffer. Transient traffic that is stale by the time a client reconnects
// is skipped.
func ShouldStoreForReplay(m Message) bool {
	switch v := m.(type) {
	case Hello, HeartbeatAck, SelectionUpdate, PlayerPoolChanged, TurnTimerStarted, TurnTimerExpired:
		return false
	case TimerVoteUpdate:
		return v.State.Status != protocol.VoteIdle
	}
	return true
}
