package game

import "errors"

// Precondition violations. These reject an intent synchronously with no
// state change; they are surfaced to the acting player only.
var (
	ErrRoomFull          = errors.New("room is at capacity")
	ErrNotWaiting        = errors.New("room is not in the waiting state")
	ErrNotPlaying        = errors.New("room is not in the playing state")
	ErrNotFinished       = errors.New("room is not finished")
	ErrAlreadyStarted    = errors.New("game has already started")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrDuplicatePlayer   = errors.New("player is already in the room")
	ErrNotHost           = errors.New("only the host can do that")
	ErrNotEnoughPlayers  = errors.New("not enough players to start")
	ErrNotAllReady       = errors.New("not every player is ready")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrWrongPhase        = errors.New("invalid action for the current round phase")
	ErrNoActiveClaim     = errors.New("no claim to challenge")
	ErrChallengePending  = errors.New("a challenge window is open")
)

// Claim-legality violations, a distinct sub-taxonomy surfaced to the acting
// player only.
var (
	ErrValueOutOfRange   = errors.New("claimed face value out of range")
	ErrCountOutOfRange   = errors.New("claimed count out of range")
	ErrCountRegressed    = errors.New("claimed count may not decrease")
	ErrValueNotIncreased = errors.New("claimed value must increase when count is unchanged")
)

// ErrorCode maps an engine error to the wire-level code sent to clients.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrRoomFull):
		return "room_full"
	case errors.Is(err, ErrNotWaiting):
		return "not_waiting"
	case errors.Is(err, ErrNotPlaying):
		return "not_playing"
	case errors.Is(err, ErrNotFinished):
		return "not_finished"
	case errors.Is(err, ErrAlreadyStarted):
		return "already_started"
	case errors.Is(err, ErrPlayerNotFound):
		return "player_not_found"
	case errors.Is(err, ErrDuplicatePlayer):
		return "duplicate_player"
	case errors.Is(err, ErrNotHost):
		return "not_host"
	case errors.Is(err, ErrNotEnoughPlayers):
		return "not_enough_players"
	case errors.Is(err, ErrNotAllReady):
		return "not_all_ready"
	case errors.Is(err, ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, ErrWrongPhase):
		return "wrong_phase"
	case errors.Is(err, ErrNoActiveClaim):
		return "no_active_claim"
	case errors.Is(err, ErrChallengePending):
		return "challenge_pending"
	case errors.Is(err, ErrValueOutOfRange):
		return "value_out_of_range"
	case errors.Is(err, ErrCountOutOfRange):
		return "count_out_of_range"
	case errors.Is(err, ErrCountRegressed):
		return "count_regressed"
	case errors.Is(err, ErrValueNotIncreased):
		return "value_not_increased"
	default:
		return "internal_error"
	}
}
