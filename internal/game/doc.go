// Package game implements the authoritative state machine for a pirate
// dice room: the waiting/playing/finished lifecycle, turn ordering, claim
// escalation, bluff judgment, elimination and win detection, and the timed
// challenge window that follows every claim.
//
// The main type is Engine, which owns one Room and is the only component
// that mutates it. Engine methods are synchronous and non-blocking; each
// validates the intent, applies it, and returns the outbound notifications
// for the transport to deliver. Callers serialize all of a room's intents
// onto a single goroutine, so the engine needs no internal locking.
//
// # Deterministic testing
//
// Both sources of nondeterminism are injectable: dice come from a seeded
// dice.Roller and the challenge deadline runs on a quartz.Clock, so tests
// pin a seed and drive time with quartz.NewMock:
//
//	eng := game.NewEngine(game.EngineConfig{
//	    RoomID: "r1",
//	    HostID: "alice",
//	    Roller: dice.NewSeededRoller(42),
//	    Clock:  quartz.NewMock(t),
//	})
//
// # Architecture
//
// Engine delegates to specialized components:
//   - TurnSequencer: living-player order and the turn pointer
//   - RoundCoordinator: dealing, claim history, judgment trigger
//   - ChallengePhaseController: the timed call-bluff/abstain window with
//     at-most-once resolution
//   - dice.Roller / Judge / ValidateClaim: the pure rules
package game
