package server

import "github.com/DoyleJ11/runecast-protocol/pkg/protocol"

const (
	TypeHello                  = "hello"
	TypeReady                  = "ready"
	TypeResumed                = "resumed"
	TypeHeartbeatAck           = "heartbeat_ack"
	TypeInvalidSession         = "invalid_session"
	TypeLobbyJoined            = "lobby_joined"
	TypeLobbySnapshot          = "lobby_snapshot"
	TypeLobbyDelta             = "lobby_delta"
	TypeLobbyLeft              = "lobby_left"
	TypeCustomLobbyCreated     = "custom_lobby_created"
	TypeGameStarted            = "game_started"
	TypeGameSnapshot           = "game_snapshot"
	TypeGameDelta              = "game_delta"
	TypeGameOver               = "game_over"
	TypeGameCancelled          = "game_cancelled"
	TypePlayerJoined           = "player_joined"
	TypePlayerLeft             = "player_left"
	TypePlayerReconnected      = "player_reconnected"
	TypePlayerDisconnected     = "player_disconnected"
	TypeWordScored             = "word_scored"
	TypeTurnChanged            = "turn_changed"
	TypeTurnPassed             = "turn_passed"
	TypeRoundChanged           = "round_changed"
	TypeBoardShuffled          = "board_shuffled"
	TypeTileSwapped            = "tile_swapped"
	TypeSwapModeEntered        = "swap_mode_entered"
	TypeSwapModeExited         = "swap_mode_exited"
	TypeSpectatorJoined        = "spectator_joined"
	TypeSpectatorAdded         = "spectator_added"
	TypeSpectatorRemoved       = "spectator_removed"
	TypeSpectatorBecamePlayer  = "spectator_became_player"
	TypeSpectatorLeft          = "spectator_left"
	TypeSelectionUpdate        = "selection_update"
	TypeTimerVoteUpdate        = "timer_vote_update"
	TypeTurnTimerStarted       = "turn_timer_started"
	TypeTurnTimerExpired       = "turn_timer_expired"
	TypeRematchCountdownUpdate = "rematch_countdown_update"
	TypePlayerLeftRematch      = "player_left_rematch"
	TypeRematchStarting        = "rematch_starting"
	TypePlayerPoolChanged      = "player_pool_changed"
	TypePoolJoined             = "pool_joined"
	TypePoolUpdate             = "pool_update"
	TypePoolLeft               = "pool_left"
	TypeAdminGamesList         = "admin_games_list"
	TypeAdminGameDeleted       = "admin_game_deleted"
	TypeGameStateUpdate        = "game_state"
	TypeLobbyStateUpdate       = "lobby_state"
	TypeError                  = "error"
)

func (Hello) Type() string                  { return TypeHello }
func (Ready) Type() string                  { return TypeReady }
func (Resumed) Type() string                { return TypeResumed }
func (HeartbeatAck) Type() string           { return TypeHeartbeatAck }
func (InvalidSession) Type() string         { return TypeInvalidSession }
func (LobbyJoined) Type() string            { return TypeLobbyJoined }
func (LobbySnapshot) Type() string          { return TypeLobbySnapshot }
func (LobbyDelta) Type() string             { return TypeLobbyDelta }
func (LobbyLeft) Type() string              { return TypeLobbyLeft }
func (CustomLobbyCreated) Type() string     { return TypeCustomLobbyCreated }
func (GameStarted) Type() string            { return TypeGameStarted }
func (GameSnapshot) Type() string           { return TypeGameSnapshot }
func (GameDelta) Type() string              { return TypeGameDelta }
func (GameOver) Type() string               { return TypeGameOver }
func (GameCancelled) Type() string          { return TypeGameCancelled }
func (PlayerJoined) Type() string           { return TypePlayerJoined }
func (PlayerLeft) Type() string             { return TypePlayerLeft }
func (PlayerReconnected) Type() string      { return TypePlayerReconnected }
func (PlayerDisconnected) Type() string     { return TypePlayerDisconnected }
func (WordScored) Type() string             { return TypeWordScored }
func (TurnChanged) Type() string            { return TypeTurnChanged }
func (TurnPassed) Type() string             { return TypeTurnPassed }
func (RoundChanged) Type() string           { return TypeRoundChanged }
func (BoardShuffled) Type() string          { return TypeBoardShuffled }
func (TileSwapped) Type() string            { return TypeTileSwapped }
func (SwapModeEntered) Type() string        { return TypeSwapModeEntered }
func (SwapModeExited) Type() string         { return TypeSwapModeExited }
func (SpectatorJoined) Type() string        { return TypeSpectatorJoined }
func (SpectatorAdded) Type() string         { return TypeSpectatorAdded }
func (SpectatorRemoved) Type() string       { return TypeSpectatorRemoved }
func (SpectatorBecamePlayer) Type() string  { return TypeSpectatorBecamePlayer }
func (SpectatorLeft) Type() string          { return TypeSpectatorLeft }
func (SelectionUpdate) Type() string        { return TypeSelectionUpdate }
func (TimerVoteUpdate) Type() string        { return TypeTimerVoteUpdate }
func (TurnTimerStarted) Type() string       { return TypeTurnTimerStarted }
func (TurnTimerExpired) Type() string       { return TypeTurnTimerExpired }
func (RematchCountdownUpdate) Type() string { return TypeRematchCountdownUpdate }
func (PlayerLeftRematch) Type() string      { return TypePlayerLeftRematch }
func (RematchStarting) Type() string        { return TypeRematchStarting }
func (PlayerPoolChanged) Type() string      { return TypePlayerPoolChanged }
func (PoolJoined) Type() string             { return TypePoolJoined }
func (PoolUpdate) Type() string             { return TypePoolUpdate }
func (PoolLeft) Type() string               { return TypePoolLeft }
func (AdminGamesList) Type() string         { return TypeAdminGamesList }
func (AdminGameDeleted) Type() string       { return TypeAdminGameDeleted }
func (GameStateUpdate) Type() string        { return TypeGameStateUpdate }
func (LobbyStateUpdate) Type() string       { return TypeLobbyStateUpdate }
func (Error) Type() string                  { return TypeError }

func (Hello) isServerMessage()                  {}
func (Ready) isServerMessage()                  {}
func (Resumed) isServerMessage()                {}
func (HeartbeatAck) isServerMessage()           {}
func (InvalidSession) isServerMessage()         {}
func (LobbyJoined) isServerMessage()            {}
func (LobbySnapshot) isServerMessage()          {}
func (LobbyDelta) isServerMessage()             {}
func (LobbyLeft) isServerMessage()              {}
func (CustomLobbyCreated) isServerMessage()     {}
func (GameStarted) isServerMessage()            {}
func (GameSnapshot) isServerMessage()           {}
func (GameDelta) isServerMessage()              {}
func (GameOver) isServerMessage()               {}
func (GameCancelled) isServerMessage()          {}
func (PlayerJoined) isServerMessage()           {}
func (PlayerLeft) isServerMessage()             {}
func (PlayerReconnected) isServerMessage()      {}
func (PlayerDisconnected) isServerMessage()     {}
func (WordScored) isServerMessage()             {}
func (TurnChanged) isServerMessage()            {}
func (TurnPassed) isServerMessage()             {}
func (RoundChanged) isServerMessage()           {}
func (BoardShuffled) isServerMessage()          {}
func (TileSwapped) isServerMessage()            {}
func (SwapModeEntered) isServerMessage()        {}
func (SwapModeExited) isServerMessage()         {}
func (SpectatorJoined) isServerMessage()        {}
func (SpectatorAdded) isServerMessage()         {}
func (SpectatorRemoved) isServerMessage()       {}
func (SpectatorBecamePlayer) isServerMessage()  {}
func (SpectatorLeft) isServerMessage()          {}
func (SelectionUpdate) isServerMessage()        {}
func (TimerVoteUpdate) isServerMessage()        {}
func (TurnTimerStarted) isServerMessage()       {}
func (TurnTimerExpired) isServerMessage()       {}
func (RematchCountdownUpdate) isServerMessage() {}
func (PlayerLeftRematch) isServerMessage()      {}
func (RematchStarting) isServerMessage()        {}
func (PlayerPoolChanged) isServerMessage()      {}
func (PoolJoined) isServerMessage()             {}
func (PoolUpdate) isServerMessage()             {}
func (PoolLeft) isServerMessage()               {}
func (AdminGamesList) isServerMessage()         {}
func (AdminGameDeleted) isServerMessage()       {}
func (GameStateUpdate) isServerMessage()        {}
func (LobbyStateUpdate) isServerMessage()       {}
func (Error) isServerMessage()                  {}

var variants = map[string]func([]byte) (Message, error){
	TypeHello:                  protocol.Variant[Hello, Message],
	TypeReady:                  protocol.Variant[Ready, Message],
	TypeResumed:                protocol.Variant[Resumed, Message],
	TypeHeartbeatAck:           protocol.Variant[HeartbeatAck, Message],
	TypeInvalidSession:         protocol.Variant[InvalidSession, Message],
	TypeLobbyJoined:            protocol.Variant[LobbyJoined, Message],
	TypeLobbySnapshot:          protocol.Variant[LobbySnapshot, Message],
	TypeLobbyDelta:             protocol.Variant[LobbyDelta, Message],
	TypeLobbyLeft:              protocol.Variant[LobbyLeft, Message],
	TypeCustomLobbyCreated:     protocol.Variant[CustomLobbyCreated, Message],
	TypeGameStarted:            protocol.Variant[GameStarted, Message],
	TypeGameSnapshot:           protocol.Variant[GameSnapshot, Message],
	TypeGameDelta:              protocol.Variant[GameDelta, Message],
	TypeGameOver:               protocol.Variant[GameOver, Message],
	TypeGameCancelled:          protocol.Variant[GameCancelled, Message],
	TypePlayerJoined:           protocol.Variant[PlayerJoined, Message],
	TypePlayerLeft:             protocol.Variant[PlayerLeft, Message],
	TypePlayerReconnected:      protocol.Variant[PlayerReconnected, Message],
	TypePlayerDisconnected:     protocol.Variant[PlayerDisconnected, Message],
	TypeWordScored:             protocol.Variant[WordScored, Message],
	TypeTurnChanged:            protocol.Variant[TurnChanged, Message],
	TypeTurnPassed:             protocol.Variant[TurnPassed, Message],
	TypeRoundChanged:           protocol.Variant[RoundChanged, Message],
	TypeBoardShuffled:          protocol.Variant[BoardShuffled, Message],
	TypeTileSwapped:            protocol.Variant[TileSwapped, Message],
	TypeSwapModeEntered:        protocol.Variant[SwapModeEntered, Message],
	TypeSwapModeExited:         protocol.Variant[SwapModeExited, Message],
	TypeSpectatorJoined:        protocol.Variant[SpectatorJoined, Message],
	TypeSpectatorAdded:         protocol.Variant[SpectatorAdded, Message],
	TypeSpectatorRemoved:       protocol.Variant[SpectatorRemoved, Message],
	TypeSpectatorBecamePlayer:  protocol.Variant[SpectatorBecamePlayer, Message],
	TypeSpectatorLeft:          protocol.Variant[SpectatorLeft, Message],
	TypeSelectionUpdate:        protocol.Variant[SelectionUpdate, Message],
	TypeTimerVoteUpdate:        protocol.Variant[TimerVoteUpdate, Message],
	TypeTurnTimerStarted:       protocol.Variant[TurnTimerStarted, Message],
	TypeTurnTimerExpired:       protocol.Variant[TurnTimerExpired, Message],
	TypeRematchCountdownUpdate: protocol.Variant[RematchCountdownUpdate, Message],
	TypePlayerLeftRematch:      protocol.Variant[PlayerLeftRematch, Message],
	TypeRematchStarting:        protocol.Variant[RematchStarting, Message],
	TypePlayerPoolChanged:      protocol.Variant[PlayerPoolChanged, Message],
	TypePoolJoined:             protocol.Variant[PoolJoined, Message],
	TypePoolUpdate:             protocol.Variant[PoolUpdate, Message],
	TypePoolLeft:               protocol.Variant[PoolLeft, Message],
	TypeAdminGamesList:         protocol.Variant[AdminGamesList, Message],
	TypeAdminGameDeleted:       protocol.Variant[AdminGameDeleted, Message],
	TypeGameStateUpdate:        protocol.Variant[GameStateUpdate, Message],
	TypeLobbyStateUpdate:       protocol.Variant[LobbyStateUpdate, Message],
	TypeError:                  protocol.Variant[Error, Message],
}

// Types lists every server message tag.
func Types() []string {
	out := make([]string, 0, len(variants))
	for tag := range variants {
		out = append(out, tag)
	}
	return out
}

func (m Hello) MarshalJSON() ([]byte, error) {
	type wire Hello
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m Ready) MarshalJSON() ([]byte, error) {
	type wire Ready
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m Resumed) MarshalJSON() ([]byte, error) {
	type wire Resumed
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m HeartbeatAck) MarshalJSON() ([]byte, error) {
	type wire HeartbeatAck
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m InvalidSession) MarshalJSON() ([]byte, error) {
	type wire InvalidSession
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m LobbyJoined) MarshalJSON() ([]byte, error) {
	type wire LobbyJoined
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m LobbySnapshot) MarshalJSON() ([]byte, error) {
	type wire LobbySnapshot
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m LobbyDelta) MarshalJSON() ([]byte, error) {
	type wire LobbyDelta
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m LobbyLeft) MarshalJSON() ([]byte, error) {
	type wire LobbyLeft
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m CustomLobbyCreated) MarshalJSON() ([]byte, error) {
	type wire CustomLobbyCreated
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m GameStarted) MarshalJSON() ([]byte, error) {
	type wire GameStarted
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m GameSnapshot) MarshalJSON() ([]byte, error) {
	type wire GameSnapshot
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m GameDelta) MarshalJSON() ([]byte, error) {
	type wire GameDelta
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m GameOver) MarshalJSON() ([]byte, error) {
	type wire GameOver
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m GameCancelled) MarshalJSON() ([]byte, error) {
	type wire GameCancelled
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m PlayerJoined) MarshalJSON() ([]byte, error) {
	type wire PlayerJoined
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m PlayerLeft) MarshalJSON() ([]byte, error) {
	type wire PlayerLeft
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m PlayerReconnected) MarshalJSON() ([]byte, error) {
	type wire PlayerReconnected
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m PlayerDisconnected) MarshalJSON() ([]byte, error) {
	type wire PlayerDisconnected
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m WordScored) MarshalJSON() ([]byte, error) {
	type wire WordScored
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m TurnChanged) MarshalJSON() ([]byte, error) {
	type wire TurnChanged
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m TurnPassed) MarshalJSON() ([]byte, error) {
	type wire TurnPassed
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m RoundChanged) MarshalJSON() ([]byte, error) {
	type wire RoundChanged
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m BoardShuffled) MarshalJSON() ([]byte, error) {
	type wire BoardShuffled
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m TileSwapped) MarshalJSON() ([]byte, error) {
	type wire TileSwapped
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m SwapModeEntered) MarshalJSON() ([]byte, error) {
	type wire SwapModeEntered
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m SwapModeExited) MarshalJSON() ([]byte, error) {
	type wire SwapModeExited
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m SpectatorJoined) MarshalJSON() ([]byte, error) {
	type wire SpectatorJoined
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m SpectatorAdded) MarshalJSON() ([]byte, error) {
	type wire SpectatorAdded
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m SpectatorRemoved) MarshalJSON() ([]byte, error) {
	type wire SpectatorRemoved
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m SpectatorBecamePlayer) MarshalJSON() ([]byte, error) {
	type wire SpectatorBecamePlayer
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m SpectatorLeft) MarshalJSON() ([]byte, error) {
	type wire SpectatorLeft
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m SelectionUpdate) MarshalJSON() ([]byte, error) {
	type wire SelectionUpdate
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m TimerVoteUpdate) MarshalJSON() ([]byte, error) {
	type wire TimerVoteUpdate
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m TurnTimerStarted) MarshalJSON() ([]byte, error) {
	type wire TurnTimerStarted
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m TurnTimerExpired) MarshalJSON() ([]byte, error) {
	type wire TurnTimerExpired
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m RematchCountdownUpdate) MarshalJSON() ([]byte, error) {
	type wire RematchCountdownUpdate
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m PlayerLeftRematch) MarshalJSON() ([]byte, error) {
	type wire PlayerLeftRematch
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m RematchStarting) MarshalJSON() ([]byte, error) {
	type wire RematchStarting
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m PlayerPoolChanged) MarshalJSON() ([]byte, error) {
	type wire PlayerPoolChanged
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m PoolJoined) MarshalJSON() ([]byte, error) {
	type wire PoolJoined
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m PoolUpdate) MarshalJSON() ([]byte, error) {
	type wire PoolUpdate
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m PoolLeft) MarshalJSON() ([]byte, error) {
	type wire PoolLeft
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m AdminGamesList) MarshalJSON() ([]byte, error) {
	type wire AdminGamesList
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m AdminGameDeleted) MarshalJSON() ([]byte, error) {
	type wire AdminGameDeleted
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m GameStateUpdate) MarshalJSON() ([]byte, error) {
	type wire GameStateUpdate
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m LobbyStateUpdate) MarshalJSON() ([]byte, error) {
	type wire LobbyStateUpdate
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m Error) MarshalJSON() ([]byte, error) {
	type wire Error
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}
