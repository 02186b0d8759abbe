package game

import "github.com/parkrye/WebProject-PirateDice/internal/dice"

// RoundPhase is the state of the round coordinator's state machine.
type RoundPhase string

const (
	PhaseDealing   RoundPhase = "dealing"
	PhaseClaiming  RoundPhase = "claiming"
	PhaseResolving RoundPhase = "resolving"
	PhaseClosed    RoundPhase = "closed"
)

// Round holds one round's server-private state: the dealt hands, the claim
// history, and the resolution outcome once judged.
type Round struct {
	Number          int
	Phase           RoundPhase
	FirstClaimantID string
	Hands           map[string][]int
	Claims          []Claim
	Outcome         *Outcome
}

// RoundCoordinator orchestrates one round at a time: dealing, the claim
// history, and triggering judgment. Turn legality is checked against the
// sequencer shared with the engine.
type RoundCoordinator struct {
	roller *dice.Roller
	turns  *TurnSequencer
	round  *Round
	number int
	seq    int
}

// NewRoundCoordinator creates a coordinator that deals with roller and
// validates turn order against turns.
func NewRoundCoordinator(roller *dice.Roller, turns *TurnSequencer) *RoundCoordinator {
	return &RoundCoordinator{roller: roller, turns: turns}
}

// Start opens a new round: every living player is dealt a fresh hand sized
// to their current dice count and the phase moves to claiming. The returned
// map holds the per-player private hands.
func (rc *RoundCoordinator) Start(firstClaimantID string, living []*Player) map[string][]int {
	rc.number++
	round := &Round{
		Number:          rc.number,
		Phase:           PhaseDealing,
		FirstClaimantID: firstClaimantID,
		Hands:           make(map[string][]int, len(living)),
	}

	for _, p := range living {
		if !p.Alive {
			continue
		}
		p.Hand = rc.roller.Roll(p.DiceCount)
		round.Hands[p.ID] = p.Hand
	}

	round.Phase = PhaseClaiming
	rc.round = round
	return round.Hands
}

// Current returns the live round, or nil before the first deal.
func (rc *RoundCoordinator) Current() *Round {
	return rc.round
}

// Number returns the current round number.
func (rc *RoundCoordinator) Number() int {
	return rc.number
}

// CurrentClaim returns the most recent claim of the live round, or nil.
func (rc *RoundCoordinator) CurrentClaim() *Claim {
	if rc.round == nil || len(rc.round.Claims) == 0 {
		return nil
	}
	return &rc.round.Claims[len(rc.round.Claims)-1]
}

// HandOf returns the private hand dealt to the player this round.
func (rc *RoundCoordinator) HandOf(playerID string) []int {
	if rc.round == nil {
		return nil
	}
	return rc.round.Hands[playerID]
}

// PlaceClaim validates and records a claim. Only legal during the claiming
// phase and only for the current turn holder; the turn advance itself is
// the engine's responsibility.
func (rc *RoundCoordinator) PlaceClaim(playerID string, value, count int) (*Claim, error) {
	if rc.round == nil || rc.round.Phase != PhaseClaiming {
		return nil, ErrWrongPhase
	}
	if rc.turns.Current() != playerID {
		return nil, ErrNotYourTurn
	}
	if err := ValidateClaim(rc.CurrentClaim(), value, count); err != nil {
		return nil, err
	}

	rc.seq++
	claim := Claim{PlayerID: playerID, Value: value, Count: count, Seq: rc.seq}
	rc.round.Claims = append(rc.round.Claims, claim)
	return &claim, nil
}

// VoidCurrentClaim discards the most recent claim as if it were never
// placed. Used when the claimant leaves while their claim is under
// scrutiny.
func (rc *RoundCoordinator) VoidCurrentClaim() {
	if rc.round == nil || len(rc.round.Claims) == 0 {
		return
	}
	rc.round.Claims = rc.round.Claims[:len(rc.round.Claims)-1]
}

// ResolveChallenge judges the active claim against the hidden hands of the
// living players. Only legal during the claiming phase with at least one
// claim placed. The round moves through resolving to closed.
func (rc *RoundCoordinator) ResolveChallenge(callerID string, living []string) (*Outcome, error) {
	if rc.round == nil || rc.round.Phase != PhaseClaiming {
		return nil, ErrWrongPhase
	}
	claim := rc.CurrentClaim()
	if claim == nil {
		return nil, ErrNoActiveClaim
	}

	rc.round.Phase = PhaseResolving

	hands := make(map[string][]int, len(living))
	for _, id := range living {
		if hand, ok := rc.round.Hands[id]; ok {
			hands[id] = hand
		}
	}

	outcome := Judge(hands, *claim, callerID, living)
	rc.round.Outcome = &outcome
	rc.round.Phase = PhaseClosed
	return &outcome, nil
}

// Reset clears all round state, for returning a finished room to waiting.
func (rc *RoundCoordinator) Reset() {
	rc.round = nil
	rc.number = 0
	rc.seq = 0
}
