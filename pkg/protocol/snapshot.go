package protocol

import (
	"encoding/json"
	"time"
)

const DefaultMaxPlayers = 6

// LobbySnapshot is the full lobby state as assembled by the lobby service.
type LobbySnapshot struct {
	LobbyID    string            `json:"lobby_id"`
	LobbyType  LobbyType         `json:"lobby_type"`
	LobbyCode  *string           `json:"lobby_code,omitempty"`
	Players    []LobbyPlayerInfo `json:"players"`
	Games      []LobbyGameInfo   `json:"games"`
	MaxPlayers int               `json:"max_players" protocol:"optional"`
}

func (l *LobbySnapshot) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	type wire LobbySnapshot
	w := wire{MaxPlayers: DefaultMaxPlayers}
	if err := DecodeObject(data, &w); err != nil {
		return err
	}
	*l = LobbySnapshot(w)
	return nil
}

// GameSnapshot is the full state of one game, addressed to one receiver.
type GameSnapshot struct {
	GameID         string          `json:"game_id"`
	State          GameState       `json:"state"`
	Grid           Grid            `json:"grid"`
	Players        []PlayerInfo    `json:"players"`
	Spectators     []SpectatorInfo `json:"spectators" protocol:"optional"`
	CurrentTurn    UserID          `json:"current_turn"`
	Round          int             `json:"round"`
	MaxRounds      int             `json:"max_rounds"`
	UsedWords      []string        `json:"used_words" protocol:"optional"`
	TimerVoteState TimerVoteState  `json:"timer_vote_state" protocol:"optional"`

	YourPlayer          *PlayerInfo `json:"your_player,omitempty"`
	TimerExpirationTime *time.Time  `json:"timer_expiration_time,omitempty"`
}

// LobbyChange is one entry of a lobby_delta.
type LobbyChange interface {
	ChangeType() string
	isLobbyChange()
}

// GameChange is one entry of a game_delta.
type GameChange interface {
	ChangeType() string
	isGameChange()
}

// ChangeTypeKey discriminates delta entries.
const ChangeTypeKey = "change_type"

type PlayerJoinedChange struct {
	Player LobbyPlayerInfo `json:"player"`
}

type PlayerLeftChange struct {
	PlayerID UserID  `json:"player_id"`
	Reason   *string `json:"reason,omitempty"`
}

type PlayerReadyChanged struct {
	PlayerID UserID `json:"player_id"`
	IsReady  bool   `json:"is_ready"`
}

// PlayerConnectionChanged appears in both lobby and game deltas.
type PlayerConnectionChanged struct {
	PlayerID    UserID `json:"player_id"`
	IsConnected bool   `json:"is_connected"`
}

type GameStateChanged struct {
	GameID string    `json:"game_id"`
	State  GameState `json:"state"`
}

type QueueUpdated struct {
	GameID     string `json:"game_id"`
	QueueCount int    `json:"queue_count"`
}

type HostChanged struct {
	NewHostID string `json:"new_host_id"`
}

type GridUpdated struct {
	Grid              Grid       `json:"grid"`
	ReplacedPositions []Position `json:"replaced_positions,omitempty"`
}

type ScoreUpdated struct {
	PlayerID UserID `json:"player_id"`
	Score    int    `json:"score"`
	Gems     int    `json:"gems"`
}

type TurnChangedChange struct {
	PlayerID UserID `json:"player_id"`
}

type RoundChangedChange struct {
	Round int `json:"round"`
}

type WordUsed struct {
	Word string `json:"word"`
}

type SpectatorJoinedChange struct {
	Spectator SpectatorInfo `json:"spectator"`
}

type SpectatorLeftChange struct {
	SpectatorID UserID `json:"spectator_id"`
}

func (PlayerJoinedChange) ChangeType() string      { return "player_joined" }
func (PlayerLeftChange) ChangeType() string        { return "player_left" }
func (PlayerReadyChanged) ChangeType() string      { return "player_ready_changed" }
func (PlayerConnectionChanged) ChangeType() string { return "player_connection_changed" }
func (GameStateChanged) ChangeType() string        { return "game_state_changed" }
func (QueueUpdated) ChangeType() string            { return "queue_updated" }
func (HostChanged) ChangeType() string             { return "host_changed" }
func (GridUpdated) ChangeType() string             { return "grid_updated" }
func (ScoreUpdated) ChangeType() string            { return "score_updated" }
func (TurnChangedChange) ChangeType() string       { return "turn_changed" }
func (RoundChangedChange) ChangeType() string      { return "round_changed" }
func (WordUsed) ChangeType() string                { return "word_used" }
func (SpectatorJoinedChange) ChangeType() string   { return "spectator_joined" }
func (SpectatorLeftChange) ChangeType() string     { return "spectator_left" }

func (PlayerJoinedChange) isLobbyChange()      {}
func (PlayerLeftChange) isLobbyChange()        {}
func (PlayerReadyChanged) isLobbyChange()      {}
func (PlayerConnectionChanged) isLobbyChange() {}
func (GameStateChanged) isLobbyChange()        {}
func (QueueUpdated) isLobbyChange()            {}
func (HostChanged) isLobbyChange()             {}

func (GridUpdated) isGameChange()             {}
func (ScoreUpdated) isGameChange()            {}
func (TurnChangedChange) isGameChange()       {}
func (RoundChangedChange) isGameChange()      {}
func (WordUsed) isGameChange()                {}
func (SpectatorJoinedChange) isGameChange()   {}
func (SpectatorLeftChange) isGameChange()     {}
func (PlayerConnectionChanged) isGameChange() {}

func (c PlayerJoinedChange) MarshalJSON() ([]byte, error) {
	type wire PlayerJoinedChange
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

func (c PlayerLeftChange) MarshalJSON() ([]byte, error) {
	type wire PlayerLeftChange
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

func (c PlayerReadyChanged) MarshalJSON() ([]byte, error) {
	type wire PlayerReadyChanged
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

func (c PlayerConnectionChanged) MarshalJSON() ([]byte, error) {
	type wire PlayerConnectionChanged
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

func (c GameStateChanged) MarshalJSON() ([]byte, error) {
	type wire GameStateChanged
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

func (c QueueUpdated) MarshalJSON() ([]byte, error) {
	type wire QueueUpdated
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

func (c HostChanged) MarshalJSON() ([]byte, error) {
	type wire HostChanged
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

func (c GridUpdated) MarshalJSON() ([]byte, error) {
	type wire GridUpdated
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

func (c ScoreUpdated) MarshalJSON() ([]byte, error) {
	type wire ScoreUpdated
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

func (c TurnChangedChange) MarshalJSON() ([]byte, error) {
	type wire TurnChangedChange
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

func (c RoundChangedChange) MarshalJSON() ([]byte, error) {
	type wire RoundChangedChange
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

func (c WordUsed) MarshalJSON() ([]byte, error) {
	type wire WordUsed
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

func (c SpectatorJoinedChange) MarshalJSON() ([]byte, error) {
	type wire SpectatorJoinedChange
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

func (c SpectatorLeftChange) MarshalJSON() ([]byte, error) {
	type wire SpectatorLeftChange
	return EncodeTagged(ChangeTypeKey, c.ChangeType(), wire(c))
}

// Variant decodes one concrete tagged struct. The message packages build
// their type tables out of it.
func Variant[T any, I any](data []byte) (I, error) {
	var v T
	var zero I
	if err := DecodeObject(data, &v); err != nil {
		return zero, err
	}
	out, ok := any(v).(I)
	if !ok {
		return zero, &DecodeError{Kind: ErrUnknownType}
	}
	return out, nil
}

// DecodeUnion peeks tagKey and dispatches to the matching decoder.
func DecodeUnion[I any](data []byte, tagKey string, table map[string]func([]byte) (I, error)) (I, error) {
	var zero I
	tag, err := PeekTag(data, tagKey)
	if err != nil {
		return zero, err
	}
	decode, ok := table[tag]
	if !ok {
		return zero, &DecodeError{Kind: ErrUnknownType, Type: tag}
	}
	v, err := decode(data)
	if err != nil {
		return zero, WithType(err, tag)
	}
	return v, nil
}

var lobbyChanges = map[string]func([]byte) (LobbyChange, error){
	"player_joined":             Variant[PlayerJoinedChange, LobbyChange],
	"player_left":               Variant[PlayerLeftChange, LobbyChange],
	"player_ready_changed":      Variant[PlayerReadyChanged, LobbyChange],
	"player_connection_changed": Variant[PlayerConnectionChanged, LobbyChange],
	"game_state_changed":        Variant[GameStateChanged, LobbyChange],
	"queue_updated":             Variant[QueueUpdated, LobbyChange],
	"host_changed":              Variant[HostChanged, LobbyChange],
}

var gameChanges = map[string]func([]byte) (GameChange, error){
	"grid_updated":              Variant[GridUpdated, GameChange],
	"score_updated":             Variant[ScoreUpdated, GameChange],
	"turn_changed":              Variant[TurnChangedChange, GameChange],
	"round_changed":             Variant[RoundChangedChange, GameChange],
	"word_used":                 Variant[WordUsed, GameChange],
	"spectator_joined":          Variant[SpectatorJoinedChange, GameChange],
	"spectator_left":            Variant[SpectatorLeftChange, GameChange],
	"player_connection_changed": Variant[PlayerConnectionChanged, GameChange],
}

// LobbyChanges is a lobby_delta change list.
type LobbyChanges []LobbyChange

func (c *LobbyChanges) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return translate(err)
	}
	if raws == nil {
		*c = nil
		return nil
	}
	out := make(LobbyChanges, 0, len(raws))
	for _, raw := range raws {
		ch, err := DecodeUnion(raw, ChangeTypeKey, lobbyChanges)
		if err != nil {
			return err
		}
		out = append(out, ch)
	}
	*c = out
	return nil
}

// GameChanges is a game_delta change list.
type GameChanges []GameChange

func (c *GameChanges) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return translate(err)
	}
	if raws == nil {
		*c = nil
		return nil
	}
	out := make(GameChanges, 0, len(raws))
	for _, raw := range raws {
		ch, err := DecodeUnion(raw, ChangeTypeKey, gameChanges)
		if err != nil {
			return err
		}
		out = append(out, ch)
	}
	*c = out
	return nil
}
