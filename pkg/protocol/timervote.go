package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimerVoteStatus is the phase of the turn-timer vote. The zero value is idle.
type TimerVoteStatus int

const (
	VoteIdle TimerVoteStatus = iota
	VoteInProgress
	VoteTimerActive
	VoteCooldown
	VoteDisabled
)

var voteStatusNames = [...]string{
	VoteIdle:        "idle",
	VoteInProgress:  "vote_in_progress",
	VoteTimerActive: "timer_active",
	VoteCooldown:    "cooldown",
	VoteDisabled:    "disabled",
}

func (s TimerVoteStatus) String() string {
	if s < 0 || int(s) >= len(voteStatusNames) {
		return fmt.Sprintf("TimerVoteStatus(%d)", int(s))
	}
	return voteStatusNames[s]
}

func (s TimerVoteStatus) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(voteStatusNames) {
		return nil, fmt.Errorf("unknown timer vote status %d", int(s))
	}
	return []byte(voteStatusNames[s]), nil
}

func (s *TimerVoteStatus) UnmarshalText(b []byte) error {
	for i, name := range voteStatusNames {
		if name == string(b) {
			*s = TimerVoteStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown timer vote status %q", b)
}

// CanTransitionTo reports whether the vote machine may move from s to next.
// Disabled is reachable from every other phase and only leaves to idle.
func (s TimerVoteStatus) CanTransitionTo(next TimerVoteStatus) bool {
	if next == VoteDisabled {
		return s != VoteDisabled
	}
	switch s {
	case VoteIdle:
		return next == VoteInProgress
	case VoteInProgress:
		return next == VoteTimerActive || next == VoteIdle
	case VoteTimerActive:
		return next == VoteCooldown
	case VoteCooldown:
		return next == VoteIdle
	case VoteDisabled:
		return next == VoteIdle
	}
	return false
}

// TimerVoteState is the vote phase plus the data that phase carries. Fields
// that do not belong to Status are zero and are not encoded.
type TimerVoteState struct {
	Status TimerVoteStatus

	// vote_in_progress
	InitiatorID UserID
	Voters      []UserID
	VotesNeeded int

	// vote_in_progress, timer_active, cooldown
	ExpiresAt time.Time

	// timer_active
	TargetPlayerID UserID
}

func IdleVote() TimerVoteState { return TimerVoteState{} }

func VoteStarted(initiator UserID, voters []UserID, votesNeeded int, expiresAt time.Time) TimerVoteState {
	return TimerVoteState{
		Status:      VoteInProgress,
		InitiatorID: initiator,
		Voters:      voters,
		VotesNeeded: votesNeeded,
		ExpiresAt:   expiresAt,
	}
}

func TimerRunning(target UserID, expiresAt time.Time) TimerVoteState {
	return TimerVoteState{Status: VoteTimerActive, TargetPlayerID: target, ExpiresAt: expiresAt}
}

func VoteCoolingDown(expiresAt time.Time) TimerVoteState {
	return TimerVoteState{Status: VoteCooldown, ExpiresAt: expiresAt}
}

func DisabledVote() TimerVoteState { return TimerVoteState{Status: VoteDisabled} }

// Transition returns next if the move from s is allowed. s is never modified.
func (s TimerVoteState) Transition(next TimerVoteState) (TimerVoteState, error) {
	if !s.Status.CanTransitionTo(next.Status) {
		return s, fmt.Errorf("%w: %s -> %s", ErrBadTransition, s.Status, next.Status)
	}
	return next, nil
}

// Disable is the administrative override.
func (s TimerVoteState) Disable() (TimerVoteState, error) {
	return s.Transition(DisabledVote())
}

// Enable re-arms a disabled vote.
func (s TimerVoteState) Enable() (TimerVoteState, error) {
	if s.Status != VoteDisabled {
		return s, fmt.Errorf("%w: enable from %s", ErrBadTransition, s.Status)
	}
	return IdleVote(), nil
}

type voteInProgressWire struct {
	InitiatorID UserID    `json:"initiator_id"`
	Voters      []UserID  `json:"voters"`
	VotesNeeded int       `json:"votes_needed"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type timerActiveWire struct {
	ExpiresAt      time.Time `json:"expires_at"`
	TargetPlayerID UserID    `json:"target_player_id"`
}

type cooldownWire struct {
	ExpiresAt time.Time `json:"expires_at"`
}

const voteStatusKey = "status"

func (s TimerVoteState) MarshalJSON() ([]byte, error) {
	tag, err := s.Status.MarshalText()
	if err != nil {
		return nil, &EncodeError{Type: "timer_vote_state", Err: err}
	}
	var body any = struct{}{}
	switch s.Status {
	case VoteInProgress:
		body = voteInProgressWire{s.InitiatorID, s.Voters, s.VotesNeeded, s.ExpiresAt}
	case VoteTimerActive:
		body = timerActiveWire{s.ExpiresAt, s.TargetPlayerID}
	case VoteCooldown:
		body = cooldownWire{s.ExpiresAt}
	}
	return EncodeTagged(voteStatusKey, string(tag), body)
}

func (s *TimerVoteState) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	tag, err := PeekTag(data, voteStatusKey)
	if err != nil {
		return err
	}
	var status TimerVoteStatus
	if err := status.UnmarshalText([]byte(tag)); err != nil {
		return &DecodeError{Kind: ErrInvalidField, Field: voteStatusKey, Err: err}
	}

	switch status {
	case VoteInProgress:
		var w voteInProgressWire
		if err := DecodeObject(data, &w); err != nil {
			return err
		}
		*s = VoteStarted(w.InitiatorID, w.Voters, w.VotesNeeded, w.ExpiresAt)
	case VoteTimerActive:
		var w timerActiveWire
		if err := DecodeObject(data, &w); err != nil {
			return err
		}
		*s = TimerRunning(w.TargetPlayerID, w.ExpiresAt)
	case VoteCooldown:
		var w cooldownWire
		if err := DecodeObject(data, &w); err != nil {
			return err
		}
		*s = VoteCoolingDown(w.ExpiresAt)
	default:
		*s = TimerVoteState{Status: status}
	}
	return nil
}

var _ json.Marshaler = TimerVoteState{}
