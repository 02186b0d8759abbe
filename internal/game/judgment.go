package game

import "github.com/parkrye/WebProject-PirateDice/internal/dice"

// Side identifies which party a judgment favored.
type Side string

const (
	SideClaimant Side = "claimant"
	SideCaller   Side = "caller"
)

// ResultKind is the branch a judgment took.
type ResultKind string

const (
	ResultClaimantWins ResultKind = "claimant_wins" // actual > claimed
	ResultCallerWins   ResultKind = "caller_wins"   // actual < claimed
	ResultExactMatch   ResultKind = "exact_match"   // actual == claimed
)

// Outcome is the result of judging a bluff call. It is derived from its
// inputs alone and not stored beyond the round; the caller applies the dice
// losses it describes.
type Outcome struct {
	Winner        Side             `json:"winner"`
	Kind          ResultKind       `json:"resultType"`
	ClaimantID    string           `json:"claimantId"`
	CallerID      string           `json:"callerId"`
	LoserIDs      []string         `json:"loserIds"`
	DicePerLoser  int              `json:"dicePerLoser"`
	ActualCount   int              `json:"actualCount"`
	ClaimedCount  int              `json:"claimedCount"`
	ClaimedValue  int              `json:"claimedValue"`
	RevealedHands map[string][]int `json:"revealedHands"`
}

// Judge computes the outcome of a bluff call. hands must hold the dealt
// hands of the living players only; callerID is the player who called the
// bluff. Wild dice and the house wild bonus count per the dice package
// rules.
//
//   - actual > claimed: the claim was conservative, the caller loses the
//     difference
//   - actual < claimed: the claim overreached, the claimant loses the
//     difference
//   - actual == claimed: exact hit, every living player except the claimant
//     loses one die
func Judge(hands map[string][]int, claim Claim, callerID string, living []string) Outcome {
	actual := dice.CountTotal(hands, claim.Value)
	diff := actual - claim.Count

	outcome := Outcome{
		ClaimantID:    claim.PlayerID,
		CallerID:      callerID,
		ActualCount:   actual,
		ClaimedCount:  claim.Count,
		ClaimedValue:  claim.Value,
		RevealedHands: hands,
	}

	switch {
	case diff > 0:
		outcome.Winner = SideClaimant
		outcome.Kind = ResultClaimantWins
		outcome.LoserIDs = []string{callerID}
		outcome.DicePerLoser = diff
	case diff < 0:
		outcome.Winner = SideCaller
		outcome.Kind = ResultCallerWins
		outcome.LoserIDs = []string{claim.PlayerID}
		outcome.DicePerLoser = -diff
	default:
		outcome.Winner = SideClaimant
		outcome.Kind = ResultExactMatch
		outcome.DicePerLoser = 1
		for _, id := range living {
			if id != claim.PlayerID {
				outcome.LoserIDs = append(outcome.LoserIDs, id)
			}
		}
	}

	return outcome
}
