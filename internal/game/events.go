package game

// EventType identifies a notification produced by the engine.
type EventType string

const (
	EventPlayerJoined          EventType = "player-joined"
	EventPlayerLeft            EventType = "player-left"
	EventReadyChanged          EventType = "ready-changed"
	EventCanStart              EventType = "can-start"
	EventGameStarted           EventType = "game-started"
	EventRoundStarted          EventType = "round-started"
	EventClaimPlaced           EventType = "claim-placed"
	EventChallengeWindowOpened EventType = "challenge-window-opened"
	EventPlayerAbstained       EventType = "player-abstained"
	EventChallengeWindowClosed EventType = "challenge-window-closed"
	EventChallengeResolved     EventType = "challenge-resolved"
	EventPlayerEliminated      EventType = "player-eliminated"
	EventGameEnded             EventType = "game-ended"
	EventGameReset             EventType = "game-reset"
)

// String returns the string representation of the event type.
func (et EventType) String() string { return string(et) }

// Event is one outbound notification. Events with an empty To are broadcast
// to the whole room; otherwise they are delivered only to the named player
// (private hands).
type Event struct {
	Type    EventType
	To      string
	Payload any
}

func broadcast(t EventType, payload any) Event {
	return Event{Type: t, Payload: payload}
}

func direct(t EventType, playerID string, payload any) Event {
	return Event{Type: t, To: playerID, Payload: payload}
}

// Payloads. The json field names are the wire contract; framing is the
// transport's concern.

type PlayerJoinedPayload struct {
	PlayerID    string         `json:"playerId"`
	DisplayName string         `json:"displayName"`
	LivingCount int            `json:"livingCount"`
	Roster      []PublicPlayer `json:"roster"`
}

type PlayerLeftPayload struct {
	PlayerID    string `json:"playerId"`
	LivingCount int    `json:"livingCount"`
	HostID      string `json:"hostId"`
}

type ReadyChangedPayload struct {
	PlayerID string `json:"playerId"`
	IsReady  bool   `json:"isReady"`
}

type CanStartPayload struct {
	Value bool `json:"value"`
}

type GameStartedPayload struct {
	Roster        []PublicPlayer `json:"roster"`
	FirstPlayerID string         `json:"firstPlayerId"`
}

type RoundStartedPayload struct {
	RoundNumber int   `json:"roundNumber"`
	Hand        []int `json:"hand"`
}

type ClaimPlacedPayload struct {
	CurrentPlayerID string `json:"currentPlayerId"`
	Claim           *Claim `json:"claim"`
}

type ChallengeWindowOpenedPayload struct {
	ClaimantID string `json:"claimantId"`
	Claim      Claim  `json:"claim"`
	TimeoutMs  int    `json:"timeoutMs"`
}

type PlayerAbstainedPayload struct {
	PlayerID     string   `json:"playerId"`
	AbstainedIDs []string `json:"abstainedIds"`
}

type ChallengeWindowClosedPayload struct {
	Reason       CloseReason `json:"reason"`
	NextPlayerID string      `json:"nextPlayerId"`
}

type ChallengeResolvedPayload struct {
	Outcome Outcome `json:"outcome"`
}

type PlayerEliminatedPayload struct {
	PlayerID string `json:"playerId"`
}

type GameEndedPayload struct {
	WinnerID string `json:"winnerId"`
}

type GameResetPayload struct {
	Roster []PublicPlayer `json:"roster"`
}
