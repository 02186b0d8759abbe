package game

import (
	"time"

	"github.com/coder/quartz"
)

// CloseReason says how a challenge window resolved. Exactly one reason wins
// per window.
type CloseReason string

const (
	ReasonChallenged   CloseReason = "challenged"
	ReasonAllAbstained CloseReason = "all-abstained"
	ReasonTimedOut     CloseReason = "timed-out"
	ReasonClaimantLeft CloseReason = "claimant-left"
)

// ChallengePhaseController runs the timed decision window that follows
// every claim: each living player other than the claimant may call the
// bluff or abstain before the deadline.
//
// Resolution is at-most-once. The window status is a tagged open/resolved
// variant and every transition checks it first, so a challenge arriving in
// the same tick as the deadline firing loses cleanly instead of racing. The
// deadline never mutates state directly: the timer invokes notify, whose
// owner is expected to re-enter Expire through the room's serial intent
// queue.
type ChallengePhaseController struct {
	clock   quartz.Clock
	timeout time.Duration
	notify  func(generation uint64)

	generation uint64
	win        *challengeWindow
}

type challengeWindow struct {
	claim         Claim
	claimantID    string
	eligible      map[string]struct{}
	abstained     []string
	nextOnTimeout string
	generation    uint64
	timer         *quartz.Timer
	resolved      bool
	reason        CloseReason
}

// NewChallengePhaseController creates a controller. notify is called from
// the clock's timer goroutine when the deadline elapses and must route back
// into Expire on the room's own goroutine; it may be nil in tests that
// drive Expire directly.
func NewChallengePhaseController(clock quartz.Clock, timeout time.Duration, notify func(generation uint64)) *ChallengePhaseController {
	return &ChallengePhaseController{
		clock:   clock,
		timeout: timeout,
		notify:  notify,
	}
}

// Timeout returns the configured window duration.
func (c *ChallengePhaseController) Timeout() time.Duration {
	return c.timeout
}

// Open starts a fresh window for the given claim. eligible holds the living
// players other than the claimant; nextOnTimeout is the frozen turn target
// should the window expire or fully abstain. Returns the window generation,
// which stale timer firings are checked against.
func (c *ChallengePhaseController) Open(claim Claim, eligible []string, nextOnTimeout string) uint64 {
	c.generation++

	win := &challengeWindow{
		claim:         claim,
		claimantID:    claim.PlayerID,
		eligible:      make(map[string]struct{}, len(eligible)),
		nextOnTimeout: nextOnTimeout,
		generation:    c.generation,
	}
	for _, id := range eligible {
		win.eligible[id] = struct{}{}
	}

	if c.notify != nil && c.timeout > 0 {
		generation := c.generation
		win.timer = c.clock.AfterFunc(c.timeout, func() {
			c.notify(generation)
		})
	}

	c.win = win
	return c.generation
}

// IsOpen reports whether a window is open and unresolved.
func (c *ChallengePhaseController) IsOpen() bool {
	return c.win != nil && !c.win.resolved
}

// Claim returns the claim under scrutiny while a window exists.
func (c *ChallengePhaseController) Claim() (Claim, bool) {
	if c.win == nil {
		return Claim{}, false
	}
	return c.win.claim, true
}

// NextOnTimeout returns the frozen turn target computed when the window
// opened.
func (c *ChallengePhaseController) NextOnTimeout() string {
	if c.win == nil {
		return ""
	}
	return c.win.nextOnTimeout
}

// AbstainedIDs returns the responders who have abstained so far, in order.
func (c *ChallengePhaseController) AbstainedIDs() []string {
	if c.win == nil {
		return nil
	}
	out := make([]string, len(c.win.abstained))
	copy(out, c.win.abstained)
	return out
}

// RecordAbstain marks an eligible responder as abstaining. recorded is
// false for duplicate, ineligible, or late submissions, which are silently
// dropped per the protocol. allAbstained is true when this abstention was
// the last one outstanding, which resolves the window.
func (c *ChallengePhaseController) RecordAbstain(id string) (recorded, allAbstained bool) {
	if !c.IsOpen() {
		return false, false
	}
	if _, ok := c.win.eligible[id]; !ok {
		return false, false
	}
	for _, existing := range c.win.abstained {
		if existing == id {
			return false, false
		}
	}

	c.win.abstained = append(c.win.abstained, id)
	if len(c.win.abstained) == len(c.win.eligible) {
		c.resolve(ReasonAllAbstained)
		return true, true
	}
	return true, false
}

// RecordChallenge resolves the window in favor of a bluff call by an
// eligible responder. Returns false when the submission lost the race or
// the caller is not eligible; losers are dropped, not errored.
func (c *ChallengePhaseController) RecordChallenge(id string) bool {
	if !c.IsOpen() {
		return false
	}
	if _, ok := c.win.eligible[id]; !ok {
		return false
	}
	return c.resolve(ReasonChallenged)
}

// Expire resolves the window by deadline. The generation guards against a
// timer that fired for an earlier window; a cancelled or already-resolved
// window makes this a no-op.
func (c *ChallengePhaseController) Expire(generation uint64) bool {
	if !c.IsOpen() || c.win.generation != generation {
		return false
	}
	return c.resolve(ReasonTimedOut)
}

// RemoveResponder handles a player leaving mid-window. Removing the
// claimant voids the window entirely; removing a responder who had not yet
// answered may leave everyone remaining abstained, which auto-closes.
func (c *ChallengePhaseController) RemoveResponder(id string) (voided, allAbstained bool) {
	if !c.IsOpen() {
		return false, false
	}

	if id == c.win.claimantID {
		c.resolve(ReasonClaimantLeft)
		return true, false
	}

	if _, ok := c.win.eligible[id]; !ok {
		return false, false
	}
	delete(c.win.eligible, id)
	for i, existing := range c.win.abstained {
		if existing == id {
			c.win.abstained = append(c.win.abstained[:i], c.win.abstained[i+1:]...)
			break
		}
	}

	if len(c.win.abstained) >= len(c.win.eligible) {
		c.resolve(ReasonAllAbstained)
		return false, true
	}
	return false, false
}

// Reason returns how the window resolved.
func (c *ChallengePhaseController) Reason() (CloseReason, bool) {
	if c.win == nil || !c.win.resolved {
		return "", false
	}
	return c.win.reason, true
}

// Clear drops the window state once the engine has consumed the resolution.
func (c *ChallengePhaseController) Clear() {
	if c.win != nil && c.win.timer != nil {
		c.win.timer.Stop()
	}
	c.win = nil
}

// resolve performs the single open -> resolved transition. Any attempt on
// an already-resolved window is rejected, which is what closes the
// challenge-versus-timeout race.
func (c *ChallengePhaseController) resolve(reason CloseReason) bool {
	if c.win == nil || c.win.resolved {
		return false
	}
	c.win.resolved = true
	c.win.reason = reason
	if c.win.timer != nil {
		c.win.timer.Stop()
	}
	return true
}
