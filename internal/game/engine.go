package game

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/parkrye/WebProject-PirateDice/internal/dice"
)

// DefaultChallengeTimeout is the challenge window duration used when the
// config does not override it.
const DefaultChallengeTimeout = 15 * time.Second

// EngineConfig configures a per-room engine.
type EngineConfig struct {
	RoomID           string
	HostID           string
	MaxPlayers       int
	ChallengeTimeout time.Duration
	Roller           *dice.Roller
	Clock            quartz.Clock
	Logger           *log.Logger

	// OnDeadline is invoked from the clock's timer goroutine when a
	// challenge window expires. It must route the generation back into
	// HandleChallengeTimeout through the same serial queue that delivers
	// player intents; it never runs engine code itself.
	OnDeadline func(generation uint64)
}

// Engine is the authoritative state machine for one room. It is the single
// owner of the Room and the only component that mutates it. Engine methods
// are not safe for concurrent use: the caller must serialize them, one
// room's intents at a time (see the server's room actor).
//
// Every operation validates its preconditions, mutates state, and returns
// the outbound notifications for the transport to deliver. The engine never
// performs I/O and never blocks; the only asynchrony is the challenge-phase
// deadline, which re-enters through HandleChallengeTimeout.
type Engine struct {
	room   *Room
	roller *dice.Roller
	turns  *TurnSequencer
	rounds *RoundCoordinator
	window *ChallengePhaseController
	logger *log.Logger
}

// NewEngine creates an engine owning a fresh waiting room.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Roller == nil {
		cfg.Roller = dice.NewSeededRoller(time.Now().UnixNano())
	}
	if cfg.ChallengeTimeout <= 0 {
		cfg.ChallengeTimeout = DefaultChallengeTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	return &Engine{
		room:   NewRoom(cfg.RoomID, cfg.HostID, cfg.MaxPlayers),
		roller: cfg.Roller,
		window: NewChallengePhaseController(cfg.Clock, cfg.ChallengeTimeout, cfg.OnDeadline),
		logger: cfg.Logger.WithPrefix("engine").With("room", cfg.RoomID),
	}
}

// Room returns the engine's room. The returned value is owned by the
// engine and must only be read from the room's own goroutine.
func (e *Engine) Room() *Room {
	return e.room
}

// AddPlayer seats a player in a waiting room.
func (e *Engine) AddPlayer(id, nickname string) ([]Event, error) {
	if e.room.Status != StatusWaiting {
		return nil, ErrNotWaiting
	}
	if len(e.room.Players) >= e.room.MaxPlayers {
		return nil, ErrRoomFull
	}
	if e.room.Player(id) != nil {
		return nil, ErrDuplicatePlayer
	}

	e.room.Players = append(e.room.Players, NewPlayer(id, nickname))
	if e.room.HostID == "" {
		e.room.HostID = id
	}
	e.logger.Debug("player joined", "player", id, "seated", len(e.room.Players))

	return []Event{
		broadcast(EventPlayerJoined, PlayerJoinedPayload{
			PlayerID:    id,
			DisplayName: nickname,
			LivingCount: len(e.room.Players),
			Roster:      e.room.Roster(),
		}),
		broadcast(EventCanStart, CanStartPayload{Value: e.CanStart()}),
	}, nil
}

// RemovePlayer unseats a player from a waiting room. Mid-game departures
// route through HandleDisconnect instead.
func (e *Engine) RemovePlayer(id string) ([]Event, error) {
	if e.room.Status != StatusWaiting {
		return nil, ErrNotWaiting
	}
	if !e.room.removePlayer(id) {
		return nil, ErrPlayerNotFound
	}

	e.transferHostFrom(id)
	e.logger.Debug("player left", "player", id, "seated", len(e.room.Players))

	return []Event{
		broadcast(EventPlayerLeft, PlayerLeftPayload{
			PlayerID:    id,
			LivingCount: len(e.room.Players),
			HostID:      e.room.HostID,
		}),
		broadcast(EventCanStart, CanStartPayload{Value: e.CanStart()}),
	}, nil
}

// SetReady flips a player's readiness while waiting.
func (e *Engine) SetReady(id string, ready bool) ([]Event, error) {
	if e.room.Status != StatusWaiting {
		return nil, ErrNotWaiting
	}
	p := e.room.Player(id)
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	p.Ready = ready
	return []Event{
		broadcast(EventReadyChanged, ReadyChangedPayload{PlayerID: id, IsReady: ready}),
		broadcast(EventCanStart, CanStartPayload{Value: e.CanStart()}),
	}, nil
}

// CanStart reports whether the game can begin: enough players, all ready.
func (e *Engine) CanStart() bool {
	if e.room.Status != StatusWaiting || len(e.room.Players) < MinPlayers {
		return false
	}
	for _, p := range e.room.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Start begins the game: assigns dice counts, rolls off for turn order,
// and opens round one. Only the host may start.
func (e *Engine) Start(callerID string) ([]Event, error) {
	if e.room.Status == StatusPlaying {
		return nil, ErrAlreadyStarted
	}
	if e.room.Status != StatusWaiting {
		return nil, ErrNotWaiting
	}
	if callerID != e.room.HostID {
		return nil, ErrNotHost
	}
	if len(e.room.Players) < MinPlayers {
		return nil, ErrNotEnoughPlayers
	}
	for _, p := range e.room.Players {
		if !p.Ready {
			return nil, ErrNotAllReady
		}
	}

	e.room.Status = StatusPlaying
	initial := InitialDiceCount(len(e.room.Players))

	// Roll-off for turn order: highest sorted-descending hand goes first,
	// full ties stay in seating order.
	type rollOff struct {
		player *Player
		roll   []int
	}
	rolls := make([]rollOff, len(e.room.Players))
	for i, p := range e.room.Players {
		p.DiceCount = initial
		p.Alive = true
		rolls[i] = rollOff{player: p, roll: e.roller.Roll(initial)}
	}
	sort.SliceStable(rolls, func(i, j int) bool {
		return dice.CompareForOrder(rolls[i].roll, rolls[j].roll) < 0
	})

	ordered := make([]string, len(rolls))
	for i, r := range rolls {
		r.player.Order = i
		ordered[i] = r.player.ID
	}

	e.turns = NewTurnSequencer(ordered)
	e.rounds = NewRoundCoordinator(e.roller, e.turns)

	first := e.turns.Current()
	e.logger.Info("game started", "players", len(ordered), "dice", initial, "first", first)

	events := []Event{
		broadcast(EventGameStarted, GameStartedPayload{
			Roster:        e.room.Roster(),
			FirstPlayerID: first,
		}),
	}
	return append(events, e.startRound(first)...), nil
}

// startRound deals a new round with the given first claimant and returns
// the notifications: a private hand per living player plus the turn marker.
func (e *Engine) startRound(firstClaimantID string) []Event {
	e.turns.SetCurrent(firstClaimantID)
	e.rounds.Start(firstClaimantID, e.room.LivingPlayers())
	e.room.CurrentRound = e.rounds.Number()
	e.room.CurrentClaim = nil

	events := make([]Event, 0, len(e.room.Players)+1)
	for _, p := range e.room.LivingPlayers() {
		events = append(events, direct(EventRoundStarted, p.ID, RoundStartedPayload{
			RoundNumber: e.rounds.Number(),
			Hand:        e.rounds.HandOf(p.ID),
		}))
	}
	return append(events, broadcast(EventClaimPlaced, ClaimPlacedPayload{
		CurrentPlayerID: firstClaimantID,
		Claim:           nil,
	}))
}

// PlaceClaim records an escalated claim by the current turn holder,
// advances the turn, and opens the challenge window.
func (e *Engine) PlaceClaim(id string, value, count int) ([]Event, error) {
	if e.room.Status != StatusPlaying {
		return nil, ErrNotPlaying
	}
	if e.window.IsOpen() {
		return nil, ErrChallengePending
	}

	claim, err := e.rounds.PlaceClaim(id, value, count)
	if err != nil {
		return nil, err
	}
	e.room.CurrentClaim = claim

	next := e.turns.Advance()
	eligible := make([]string, 0, e.turns.LivingCount())
	for _, living := range e.turns.Living() {
		if living != id {
			eligible = append(eligible, living)
		}
	}
	e.window.Open(*claim, eligible, next)

	e.logger.Debug("claim placed",
		"player", id, "value", value, "count", count, "next", next)

	return []Event{
		broadcast(EventClaimPlaced, ClaimPlacedPayload{
			CurrentPlayerID: next,
			Claim:           claim,
		}),
		broadcast(EventChallengeWindowOpened, ChallengeWindowOpenedPayload{
			ClaimantID: id,
			Claim:      *claim,
			TimeoutMs:  int(e.window.Timeout() / time.Millisecond),
		}),
	}, nil
}

// Abstain records a responder declining to challenge the active claim.
// Late, duplicate, or ineligible submissions are dropped without error per
// the window protocol.
func (e *Engine) Abstain(id string) ([]Event, error) {
	if e.room.Status != StatusPlaying {
		return nil, ErrNotPlaying
	}

	recorded, allAbstained := e.window.RecordAbstain(id)
	if !recorded {
		return nil, nil
	}

	events := []Event{
		broadcast(EventPlayerAbstained, PlayerAbstainedPayload{
			PlayerID:     id,
			AbstainedIDs: e.window.AbstainedIDs(),
		}),
	}
	if allAbstained {
		events = append(events, e.closeUnchallenged(ReasonAllAbstained)...)
	}
	return events, nil
}

// CallBluff resolves the window in the caller's favor, judges the claim
// against the revealed hands, applies dice losses, and either ends the game
// or opens the next round. A call that lost the race against another
// resolution is dropped without error.
func (e *Engine) CallBluff(id string) ([]Event, error) {
	if e.room.Status != StatusPlaying {
		return nil, ErrNotPlaying
	}
	if !e.window.RecordChallenge(id) {
		return nil, nil
	}
	e.window.Clear()

	outcome, err := e.rounds.ResolveChallenge(id, e.turns.Living())
	if err != nil {
		return nil, err
	}
	e.room.CurrentClaim = nil

	e.logger.Info("bluff called",
		"caller", id,
		"claimant", outcome.ClaimantID,
		"actual", outcome.ActualCount,
		"claimed", outcome.ClaimedCount,
		"result", outcome.Kind)

	lossEvents := e.applyOutcome(outcome)

	if e.turns.LivingCount() <= 1 {
		events := []Event{
			broadcast(EventChallengeWindowClosed, ChallengeWindowClosedPayload{
				Reason:       ReasonChallenged,
				NextPlayerID: e.turns.Current(),
			}),
			broadcast(EventChallengeResolved, ChallengeResolvedPayload{Outcome: *outcome}),
		}
		events = append(events, lossEvents...)
		return append(events, e.finish()...), nil
	}

	// The next round's first claimant is the challenger when they survived,
	// otherwise the player after them in turn order.
	next := id
	if !e.turns.Contains(next) {
		next = e.turns.NextAfter(id)
	}

	events := []Event{
		broadcast(EventChallengeWindowClosed, ChallengeWindowClosedPayload{
			Reason:       ReasonChallenged,
			NextPlayerID: next,
		}),
		broadcast(EventChallengeResolved, ChallengeResolvedPayload{Outcome: *outcome}),
	}
	events = append(events, lossEvents...)
	return append(events, e.startRound(next)...), nil
}

// HandleChallengeTimeout is re-entered (through the room's serial queue)
// when a window deadline fires. Stale generations and already-resolved
// windows are no-ops.
func (e *Engine) HandleChallengeTimeout(generation uint64) ([]Event, error) {
	if e.room.Status != StatusPlaying {
		return nil, nil
	}
	if !e.window.Expire(generation) {
		return nil, nil
	}
	e.logger.Debug("challenge window timed out", "generation", generation)
	return e.closeUnchallenged(ReasonTimedOut), nil
}

// closeUnchallenged ends a resolved-without-judgment window: the claim
// stands, dice are unchanged, and the turn jumps to the target frozen when
// the window opened.
func (e *Engine) closeUnchallenged(reason CloseReason) []Event {
	next := e.window.NextOnTimeout()
	if !e.turns.Contains(next) {
		next = e.turns.NextAfter(next)
	}
	e.turns.SetCurrent(next)
	e.window.Clear()

	return []Event{
		broadcast(EventChallengeWindowClosed, ChallengeWindowClosedPayload{
			Reason:       reason,
			NextPlayerID: next,
		}),
	}
}

// HandleDisconnect processes a dropped connection. In the waiting room the
// player simply leaves; mid-game it is a forced elimination through the
// same path as losing the last die, including the mid-window bookkeeping.
func (e *Engine) HandleDisconnect(id string) ([]Event, error) {
	p := e.room.Player(id)
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	switch e.room.Status {
	case StatusWaiting:
		return e.RemovePlayer(id)
	case StatusFinished:
		p.Connected = false
		return nil, nil
	}

	if !p.Alive {
		// Replayed disconnect of an already-eliminated player.
		p.Connected = false
		return nil, nil
	}
	p.Connected = false
	e.logger.Info("player disconnected mid-game", "player", id)

	var (
		voided       bool
		allAbstained bool
		voidNext     string
	)
	if e.window.IsOpen() {
		voidNext = e.turns.NextAfter(id)
		voided, allAbstained = e.window.RemoveResponder(id)
	}

	// Forced elimination: remaining dice go to the discard pile.
	e.room.DiscardedDice += p.DiceCount
	p.DiceCount = 0
	events := e.eliminate(p)

	if voided {
		// The claim is voided: history and turn revert as if it had never
		// been placed.
		e.rounds.VoidCurrentClaim()
		e.room.CurrentClaim = e.rounds.CurrentClaim()
		next := voidNext
		if !e.turns.Contains(next) {
			next = e.turns.NextAfter(next)
		}
		e.turns.SetCurrent(next)
		e.window.Clear()
		events = append(events, broadcast(EventChallengeWindowClosed, ChallengeWindowClosedPayload{
			Reason:       ReasonClaimantLeft,
			NextPlayerID: next,
		}))
	} else if allAbstained {
		events = append(events, e.closeUnchallenged(ReasonAllAbstained)...)
	}

	if e.turns.LivingCount() <= 1 {
		events = append(events, e.finish()...)
	}
	return events, nil
}

// Reset returns a finished room to the waiting state with dice counts and
// readiness cleared. Players who dropped during the game are unseated.
func (e *Engine) Reset() ([]Event, error) {
	if e.room.Status != StatusFinished {
		return nil, ErrNotFinished
	}

	remaining := e.room.Players[:0]
	for _, p := range e.room.Players {
		if !p.Connected {
			continue
		}
		p.Ready = false
		p.DiceCount = 0
		p.Hand = nil
		p.Alive = true
		p.Order = 0
		remaining = append(remaining, p)
	}
	e.room.Players = remaining
	if e.room.Player(e.room.HostID) == nil {
		e.transferHostFrom(e.room.HostID)
	}

	e.room.Status = StatusWaiting
	e.room.CurrentRound = 0
	e.room.CurrentClaim = nil
	e.room.DiscardedDice = 0
	e.room.WinnerID = ""
	e.rounds = nil
	e.turns = nil
	e.window.Clear()

	e.logger.Info("room reset", "seated", len(e.room.Players))
	return []Event{
		broadcast(EventGameReset, GameResetPayload{Roster: e.room.Roster()}),
		broadcast(EventCanStart, CanStartPayload{Value: e.CanStart()}),
	}, nil
}

// applyOutcome deducts the dice losses a judgment describes, bounded by
// each loser's hand size, and eliminates anyone who reaches zero.
func (e *Engine) applyOutcome(o *Outcome) []Event {
	var events []Event
	for _, loserID := range o.LoserIDs {
		p := e.room.Player(loserID)
		if p == nil || !p.Alive {
			continue
		}
		lost := o.DicePerLoser
		if lost > p.DiceCount {
			lost = p.DiceCount
		}
		p.DiceCount -= lost
		e.room.DiscardedDice += lost

		if p.DiceCount == 0 {
			events = append(events, e.eliminate(p)...)
		}
	}
	return events
}

// eliminate removes a player from the living set. Idempotent: a dead
// player stays dead with no further events.
func (e *Engine) eliminate(p *Player) []Event {
	if !p.Alive {
		return nil
	}
	p.Alive = false
	p.Hand = nil
	e.turns.RemoveIfPresent(p.ID)
	e.logger.Info("player eliminated", "player", p.ID)

	return []Event{
		broadcast(EventPlayerEliminated, PlayerEliminatedPayload{PlayerID: p.ID}),
	}
}

// finish ends the game; the sole remaining living player wins.
func (e *Engine) finish() []Event {
	e.room.Status = StatusFinished
	e.room.WinnerID = e.turns.Current()
	e.room.CurrentClaim = nil
	e.window.Clear()
	e.logger.Info("game ended", "winner", e.room.WinnerID)

	return []Event{
		broadcast(EventGameEnded, GameEndedPayload{WinnerID: e.room.WinnerID}),
	}
}

func (e *Engine) transferHostFrom(departedID string) {
	if e.room.HostID != departedID {
		return
	}
	if len(e.room.Players) > 0 {
		e.room.HostID = e.room.Players[0].ID
	} else {
		e.room.HostID = ""
	}
}
