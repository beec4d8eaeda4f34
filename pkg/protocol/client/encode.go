package client

import "github.com/DoyleJ11/runecast-protocol/pkg/protocol"

// Each variant encodes through a method-less copy of itself so the type tag
// lands next to its fields.

func (m Identify) MarshalJSON() ([]byte, error) {
	type wire Identify
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m Heartbeat) MarshalJSON() ([]byte, error) {
	type wire Heartbeat
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m Ack) MarshalJSON() ([]byte, error) {
	type wire Ack
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m JoinChannelLobby) MarshalJSON() ([]byte, error) {
	type wire JoinChannelLobby
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m CreateCustomLobby) MarshalJSON() ([]byte, error) {
	type wire CreateCustomLobby
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m JoinCustomLobby) MarshalJSON() ([]byte, error) {
	type wire JoinCustomLobby
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m LeaveLobby) MarshalJSON() ([]byte, error) {
	type wire LeaveLobby
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m ToggleReady) MarshalJSON() ([]byte, error) {
	type wire ToggleReady
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m CreateGame) MarshalJSON() ([]byte, error) {
	type wire CreateGame
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m StartGame) MarshalJSON() ([]byte, error) {
	type wire StartGame
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m SubmitWord) MarshalJSON() ([]byte, error) {
	type wire SubmitWord
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m PassTurn) MarshalJSON() ([]byte, error) {
	type wire PassTurn
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m ShuffleBoard) MarshalJSON() ([]byte, error) {
	type wire ShuffleBoard
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m SwapTile) MarshalJSON() ([]byte, error) {
	type wire SwapTile
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m EnterSwapMode) MarshalJSON() ([]byte, error) {
	type wire EnterSwapMode
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m ExitSwapMode) MarshalJSON() ([]byte, error) {
	type wire ExitSwapMode
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m SelectionUpdate) MarshalJSON() ([]byte, error) {
	type wire SelectionUpdate
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m SpectateGame) MarshalJSON() ([]byte, error) {
	type wire SpectateGame
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m JoinGameAsPlayer) MarshalJSON() ([]byte, error) {
	type wire JoinGameAsPlayer
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m LeaveSpectator) MarshalJSON() ([]byte, error) {
	type wire LeaveSpectator
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m LeaveGame) MarshalJSON() ([]byte, error) {
	type wire LeaveGame
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m InitiateTimerVote) MarshalJSON() ([]byte, error) {
	type wire InitiateTimerVote
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m VoteForTimer) MarshalJSON() ([]byte, error) {
	type wire VoteForTimer
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m AdminGetGames) MarshalJSON() ([]byte, error) {
	type wire AdminGetGames
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m AdminDeleteGame) MarshalJSON() ([]byte, error) {
	type wire AdminDeleteGame
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}

func (m PlayerDisconnected) MarshalJSON() ([]byte, error) {
	type wire PlayerDisconnected
	return protocol.EncodeTagged(protocol.TypeKey, m.Type(), wire(m))
}
