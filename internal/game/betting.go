package game

import "github.com/parkrye/WebProject-PirateDice/internal/dice"

// Claim is a public assertion that at least Count dice across all hidden
// hands show Value. Immutable once created; superseded by the next claim or
// terminated by a bluff call.
type Claim struct {
	PlayerID string `json:"playerId"`
	Value    int    `json:"diceValue"`
	Count    int    `json:"diceCount"`
	Seq      int    `json:"seq"`
}

// Claim-legality bounds.
const (
	MinClaimValue = 1
	MaxClaimValue = dice.Faces
	MinClaimCount = 1
)

// ValidateClaim enforces the escalation rules against the previous claim
// (nil for the first claim of a round):
//
//   - value and count must be in bounds
//   - the count may never decrease
//   - an unchanged count requires a strictly greater value
//   - a greater count frees the value
func ValidateClaim(prev *Claim, value, count int) error {
	if value < MinClaimValue || value > MaxClaimValue {
		return ErrValueOutOfRange
	}
	if count < MinClaimCount {
		return ErrCountOutOfRange
	}

	if prev == nil {
		return nil
	}

	if count < prev.Count {
		return ErrCountRegressed
	}
	if count > prev.Count {
		return nil
	}
	if value <= prev.Value {
		return ErrValueNotIncreased
	}
	return nil
}
