package protocol

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// UserID is a platform user id. It travels as a decimal string so browser
// clients do not lose precision; numbers are accepted on decode.
type UserID int64

func (id UserID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id UserID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

func (id *UserID) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return &DecodeError{Kind: ErrInvalidField, Err: fmt.Errorf("user id %s: %w", data, err)}
	}
	*id = UserID(n)
	return nil
}

// Position is a 0-indexed grid coordinate. Bounds are the consumer's problem.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Letter is a single tile character, a one-rune string on the wire.
type Letter rune

func (l Letter) String() string { return string(rune(l)) }

func (l Letter) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(rune(l)))
}

func (l *Letter) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &DecodeError{Kind: ErrInvalidField, Err: fmt.Errorf("letter: %w", err)}
	}
	if utf8.RuneCountInString(s) != 1 {
		return &DecodeError{Kind: ErrInvalidField, Err: fmt.Errorf("letter %q is not a single character", s)}
	}
	r, _ := utf8.DecodeRuneInString(s)
	*l = Letter(r)
	return nil
}

type Multiplier string

const (
	DoubleLetter Multiplier = "double_letter"
	TripleLetter Multiplier = "triple_letter"
	DoubleWord   Multiplier = "double_word"
)

func (m *Multiplier) UnmarshalText(b []byte) error {
	switch v := Multiplier(b); v {
	case DoubleLetter, TripleLetter, DoubleWord:
		*m = v
		return nil
	}
	return fmt.Errorf("unknown multiplier %q", b)
}

type GridCell struct {
	Letter     Letter      `json:"letter"`
	Value      int         `json:"value"`
	Multiplier *Multiplier `json:"multiplier,omitempty"`
	HasGem     bool        `json:"has_gem" protocol:"optional"`
}

func (c *GridCell) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	type wire GridCell
	var w wire
	if err := DecodeObject(data, &w); err != nil {
		return err
	}
	*c = GridCell(w)
	return nil
}

// GridSize is the side length of every board.
const GridSize = 5

// Grid is the board, row-major.
type Grid [GridSize][GridSize]GridCell

func (g *Grid) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var rows [][]GridCell
	if err := json.Unmarshal(data, &rows); err != nil {
		return translate(err)
	}
	if len(rows) != GridSize {
		return &DecodeError{Kind: ErrInvalidField, Err: fmt.Errorf("grid has %d rows, want %d", len(rows), GridSize)}
	}
	var out Grid
	for r, row := range rows {
		if len(row) != GridSize {
			return &DecodeError{Kind: ErrInvalidField, Err: fmt.Errorf("grid row %d has %d cells, want %d", r, len(row), GridSize)}
		}
		copy(out[r][:], row)
	}
	*g = out
	return nil
}

// GameMode picks the rule set for a new game.
type GameMode string

const (
	ModeSolo        GameMode = "solo"
	ModeMultiplayer GameMode = "multiplayer"
	ModeAdventure   GameMode = "adventure"
)

func (m *GameMode) UnmarshalText(b []byte) error {
	switch v := GameMode(b); v {
	case ModeSolo, ModeMultiplayer, ModeAdventure:
		*m = v
		return nil
	}
	return fmt.Errorf("unknown game mode %q", b)
}

type LobbyType string

const (
	LobbyChannel LobbyType = "channel"
	LobbyCustom  LobbyType = "custom"
)

func (t *LobbyType) UnmarshalText(b []byte) error {
	switch v := LobbyType(b); v {
	case LobbyChannel, LobbyCustom:
		*t = v
		return nil
	}
	return fmt.Errorf("unknown lobby type %q", b)
}

// GameType names a matchmaking queue inside a lobby.
type GameType string

const (
	GameOpen      GameType = "open"
	GameTwoVTwo   GameType = "two_v_two"
	GameAdventure GameType = "adventure"
)

func (t *GameType) UnmarshalText(b []byte) error {
	switch v := GameType(b); v {
	case GameOpen, GameTwoVTwo, GameAdventure:
		*t = v
		return nil
	}
	return fmt.Errorf("unknown game type %q", b)
}

// GameState is the coarse lifecycle of a game.
type GameState string

const (
	StateIdle       GameState = "idle"
	StateQueueing   GameState = "queueing"
	StateStarting   GameState = "starting"
	StateInProgress GameState = "in_progress"
	StateFinished   GameState = "finished"
	StateCancelled  GameState = "cancelled"
)

func (s GameState) Valid() bool {
	switch s {
	case StateIdle, StateQueueing, StateStarting, StateInProgress, StateFinished, StateCancelled:
		return true
	}
	return false
}

func (s *GameState) UnmarshalText(b []byte) error {
	v := GameState(b)
	if !v.Valid() {
		return fmt.Errorf("unknown game state %q", b)
	}
	*s = v
	return nil
}

type PlayerInfo struct {
	UserID      UserID  `json:"user_id"`
	Username    string  `json:"username"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Score       int     `json:"score"`
	Gems        int     `json:"gems" protocol:"optional"`
	Team        *int    `json:"team,omitempty"`
	IsConnected bool    `json:"is_connected" protocol:"optional"`
}

// UnmarshalJSON treats a missing is_connected as connected.
func (p *PlayerInfo) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	type wire PlayerInfo
	w := wire{IsConnected: true}
	if err := DecodeObject(data, &w); err != nil {
		return err
	}
	*p = PlayerInfo(w)
	return nil
}

// GamePlayerInfo is the per-player entry of game_started.
type GamePlayerInfo struct {
	UserID      UserID  `json:"user_id"`
	Username    string  `json:"username"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	TurnOrder   int     `json:"turn_order"`
	Score       int     `json:"score"`
	Gems        int     `json:"gems"`
	IsConnected bool    `json:"is_connected"`
	Team        *int    `json:"team,omitempty"`
}

type SpectatorInfo struct {
	UserID    UserID  `json:"user_id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type ScoreInfo struct {
	UserID   UserID `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type LobbyPlayerInfo struct {
	UserID       UserID    `json:"user_id"`
	Username     string    `json:"username"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	IsReady      bool      `json:"is_ready" protocol:"optional"`
	CurrentQueue *GameType `json:"current_queue,omitempty"`
}

type LobbyGamePlayerInfo struct {
	UserID   UserID `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// LobbyGameInfo is a running game as listed inside a lobby.
type LobbyGameInfo struct {
	GameID       string                `json:"game_id"`
	CurrentRound int                   `json:"current_round"`
	MaxRounds    int                   `json:"max_rounds"`
	Players      []LobbyGamePlayerInfo `json:"players"`
}

type AdminGameInfo struct {
	GameID    string    `json:"game_id"`
	State     GameState `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	Players   []UserID  `json:"players"`
}

type RematchCountdownState struct {
	SecondsRemaining int      `json:"seconds_remaining"`
	PlayerIDs        []UserID `json:"player_ids"`
}
