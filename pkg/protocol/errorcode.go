package protocol

import "fmt"

// ErrorCode is the machine-readable reason carried by every error message
// sent to a client.
type ErrorCode string

const (
	CodeNotAuthenticated ErrorCode = "not_authenticated"
	CodeSessionExpired   ErrorCode = "session_expired"
	CodeInvalidSession   ErrorCode = "invalid_session"

	CodeLobbyNotFound  ErrorCode = "lobby_not_found"
	CodeLobbyFull      ErrorCode = "lobby_full"
	CodeNotInLobby     ErrorCode = "not_in_lobby"
	CodeAlreadyInLobby ErrorCode = "already_in_lobby"

	CodeGameNotFound   ErrorCode = "game_not_found"
	CodeGameInProgress ErrorCode = "game_in_progress"
	CodeGameNotActive  ErrorCode = "game_not_active"
	CodeNotInGame      ErrorCode = "not_in_game"
	CodeAlreadyInGame  ErrorCode = "already_in_game"
	CodeNotYourTurn    ErrorCode = "not_your_turn"
	CodeInvalidAction  ErrorCode = "invalid_action"
	CodeActionTimeout  ErrorCode = "action_timeout"

	CodeInvalidPath         ErrorCode = "invalid_path"
	CodePathTooShort        ErrorCode = "path_too_short"
	CodeWordNotInDictionary ErrorCode = "word_not_in_dictionary"
	CodeWordAlreadyUsed     ErrorCode = "word_already_used"

	CodeInsufficientGems ErrorCode = "insufficient_gems"

	CodeTooManyRequests ErrorCode = "too_many_requests"
	CodeMessageTooLarge ErrorCode = "message_too_large"
)

// ErrorGroup is the family an ErrorCode belongs to.
type ErrorGroup string

const (
	GroupConnection     ErrorGroup = "connection"
	GroupLobby          ErrorGroup = "lobby"
	GroupGame           ErrorGroup = "game"
	GroupWordValidation ErrorGroup = "word_validation"
	GroupResource       ErrorGroup = "resource"
	GroupRateLimit      ErrorGroup = "rate_limiting"
)

// AllErrorCodes lists every code in declaration order.
func AllErrorCodes() []ErrorCode {
	return []ErrorCode{
		CodeNotAuthenticated, CodeSessionExpired, CodeInvalidSession,
		CodeLobbyNotFound, CodeLobbyFull, CodeNotInLobby, CodeAlreadyInLobby,
		CodeGameNotFound, CodeGameInProgress, CodeGameNotActive, CodeNotInGame,
		CodeAlreadyInGame, CodeNotYourTurn, CodeInvalidAction, CodeActionTimeout,
		CodeInvalidPath, CodePathTooShort, CodeWordNotInDictionary, CodeWordAlreadyUsed,
		CodeInsufficientGems,
		CodeTooManyRequests, CodeMessageTooLarge,
	}
}

// Message is the default human-readable text for the code. It panics on a
// value outside the declared set, which can only be built by a conversion in
// Go code; decoding rejects unknown codes.
func (c ErrorCode) Message() string {
	switch c {
	case CodeNotAuthenticated:
		return "Not authenticated"
	case CodeSessionExpired:
		return "Session expired"
	case CodeInvalidSession:
		return "Invalid session"
	case CodeLobbyNotFound:
		return "Lobby not found"
	case CodeLobbyFull:
		return "Lobby is full"
	case CodeNotInLobby:
		return "You must be in a lobby"
	case CodeAlreadyInLobby:
		return "Already in a lobby"
	case CodeGameNotFound:
		return "Game not found"
	case CodeGameInProgress:
		return "A game is already in progress"
	case CodeGameNotActive:
		return "Game is not active"
	case CodeNotInGame:
		return "You are not in this game"
	case CodeAlreadyInGame:
		return "You are already in this game"
	case CodeNotYourTurn:
		return "It's not your turn"
	case CodeInvalidAction:
		return "Invalid action"
	case CodeActionTimeout:
		return "Action timed out"
	case CodeInvalidPath:
		return "Invalid path - letters must be adjacent"
	case CodePathTooShort:
		return "Word must be at least 3 letters"
	case CodeWordNotInDictionary:
		return "Word not found in dictionary"
	case CodeWordAlreadyUsed:
		return "Word has already been used"
	case CodeInsufficientGems:
		return "Not enough gems"
	case CodeTooManyRequests:
		return "Too many requests"
	case CodeMessageTooLarge:
		return "Message too large"
	}
	panic(fmt.Sprintf("%v: %q", ErrUnknownErrCode, string(c)))
}

func (c ErrorCode) Group() ErrorGroup {
	switch c {
	case CodeNotAuthenticated, CodeSessionExpired, CodeInvalidSession:
		return GroupConnection
	case CodeLobbyNotFound, CodeLobbyFull, CodeNotInLobby, CodeAlreadyInLobby:
		return GroupLobby
	case CodeGameNotFound, CodeGameInProgress, CodeGameNotActive, CodeNotInGame,
		CodeAlreadyInGame, CodeNotYourTurn, CodeInvalidAction, CodeActionTimeout:
		return GroupGame
	case CodeInvalidPath, CodePathTooShort, CodeWordNotInDictionary, CodeWordAlreadyUsed:
		return GroupWordValidation
	case CodeInsufficientGems:
		return GroupResource
	case CodeTooManyRequests, CodeMessageTooLarge:
		return GroupRateLimit
	}
	panic(fmt.Sprintf("%v: %q", ErrUnknownErrCode, string(c)))
}

func (c ErrorCode) Valid() bool {
	for _, k := range AllErrorCodes() {
		if c == k {
			return true
		}
	}
	return false
}

func (c ErrorCode) String() string { return string(c) }

func (c *ErrorCode) UnmarshalText(b []byte) error {
	v := ErrorCode(b)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownErrCode, b)
	}
	*c = v
	return nil
}
