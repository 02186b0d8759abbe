package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkrye/WebProject-PirateDice/internal/dice"
)

func newTestRound(t *testing.T, ids ...string) (*RoundCoordinator, *TurnSequencer, []*Player) {
	t.Helper()
	players := make([]*Player, len(ids))
	for i, id := range ids {
		players[i] = NewPlayer(id, id)
		players[i].DiceCount = 5
	}
	turns := NewTurnSequencer(ids)
	rc := NewRoundCoordinator(dice.NewSeededRoller(7), turns)
	rc.Start(ids[0], players)
	return rc, turns, players
}

func TestRoundCoordinator_DealsToLivingBySize(t *testing.T) {
	players := []*Player{NewPlayer("a", "a"), NewPlayer("b", "b"), NewPlayer("c", "c")}
	players[0].DiceCount = 5
	players[1].DiceCount = 2
	players[2].DiceCount = 3
	players[2].Alive = false

	turns := NewTurnSequencer([]string{"a", "b"})
	rc := NewRoundCoordinator(dice.NewSeededRoller(1), turns)
	hands := rc.Start("a", players)

	require.Len(t, hands, 2)
	assert.Len(t, hands["a"], 5)
	assert.Len(t, hands["b"], 2)
	assert.NotContains(t, hands, "c")
	assert.Equal(t, PhaseClaiming, rc.Current().Phase)
	assert.Equal(t, 1, rc.Number())
}

func TestRoundCoordinator_PlaceClaim(t *testing.T) {
	rc, _, _ := newTestRound(t, "a", "b")

	claim, err := rc.PlaceClaim("a", 4, 2)
	require.NoError(t, err)
	assert.Equal(t, "a", claim.PlayerID)
	assert.Equal(t, claim, rc.CurrentClaim())
}

func TestRoundCoordinator_PlaceClaimNotYourTurn(t *testing.T) {
	rc, _, _ := newTestRound(t, "a", "b")

	_, err := rc.PlaceClaim("b", 4, 2)
	assert.ErrorIs(t, err, ErrNotYourTurn)
}

func TestRoundCoordinator_PlaceClaimMustEscalate(t *testing.T) {
	rc, turns, _ := newTestRound(t, "a", "b")

	_, err := rc.PlaceClaim("a", 4, 2)
	require.NoError(t, err)
	turns.Advance()

	_, err = rc.PlaceClaim("b", 4, 1)
	assert.ErrorIs(t, err, ErrCountRegressed)

	_, err = rc.PlaceClaim("b", 4, 2)
	assert.ErrorIs(t, err, ErrValueNotIncreased)

	_, err = rc.PlaceClaim("b", 5, 2)
	assert.NoError(t, err)
}

func TestRoundCoordinator_ChallengeOnEmptyRoundRejected(t *testing.T) {
	rc, _, _ := newTestRound(t, "a", "b")

	_, err := rc.ResolveChallenge("b", []string{"a", "b"})
	assert.ErrorIs(t, err, ErrNoActiveClaim)
}

func TestRoundCoordinator_ResolveClosesRound(t *testing.T) {
	rc, _, _ := newTestRound(t, "a", "b")

	_, err := rc.PlaceClaim("a", 4, 2)
	require.NoError(t, err)

	outcome, err := rc.ResolveChallenge("b", []string{"a", "b"})
	require.NoError(t, err)
	assert.NotNil(t, outcome)
	assert.Equal(t, PhaseClosed, rc.Current().Phase)

	// No further claims or challenges once closed.
	_, err = rc.PlaceClaim("a", 5, 3)
	assert.ErrorIs(t, err, ErrWrongPhase)
	_, err = rc.ResolveChallenge("b", []string{"a", "b"})
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestRoundCoordinator_ResolveExcludesDeadHands(t *testing.T) {
	rc, turns, _ := newTestRound(t, "a", "b", "c")

	_, err := rc.PlaceClaim("a", 4, 1)
	require.NoError(t, err)
	turns.Advance()

	// c was eliminated mid-round; only living hands are judged.
	outcome, err := rc.ResolveChallenge("b", []string{"a", "b"})
	require.NoError(t, err)
	assert.NotContains(t, outcome.RevealedHands, "c")
}

func TestRoundCoordinator_VoidCurrentClaim(t *testing.T) {
	rc, turns, _ := newTestRound(t, "a", "b")

	_, err := rc.PlaceClaim("a", 4, 2)
	require.NoError(t, err)
	turns.Advance()
	_, err = rc.PlaceClaim("b", 4, 3)
	require.NoError(t, err)

	rc.VoidCurrentClaim()
	require.NotNil(t, rc.CurrentClaim())
	assert.Equal(t, "a", rc.CurrentClaim().PlayerID)

	rc.VoidCurrentClaim()
	assert.Nil(t, rc.CurrentClaim())

	// Voiding an empty history is a no-op.
	rc.VoidCurrentClaim()
	assert.Nil(t, rc.CurrentClaim())
}

func TestRoundCoordinator_Reset(t *testing.T) {
	rc, _, _ := newTestRound(t, "a", "b")
	rc.Reset()

	assert.Nil(t, rc.Current())
	assert.Zero(t, rc.Number())
}
