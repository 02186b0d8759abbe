package server

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/parkrye/WebProject-PirateDice/internal/dice"
	"github.com/parkrye/WebProject-PirateDice/internal/game"
	"github.com/parkrye/WebProject-PirateDice/internal/roomid"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomClosed   = errors.New("room closed")
)

// Sender delivers outbound messages. Implemented by Server; tests plug in
// a recording fake.
type Sender interface {
	BroadcastToRoom(roomID string, msg *Message)
	SendToPlayer(playerID string, msg *Message) error
}

// RoomService owns the room registry. Every room gets one actor goroutine
// that drains a serial intent queue, so all engine calls for a room happen
// one at a time; the challenge deadline re-enters through the same queue.
type RoomService struct {
	cfg    *ServerConfig
	sender Sender
	clock  quartz.Clock
	codes  *roomid.Generator
	logger *log.Logger

	mu    sync.RWMutex
	rooms map[string]*roomActor
}

// NewRoomService creates the registry. clock may be nil for wall time.
func NewRoomService(cfg *ServerConfig, sender Sender, logger *log.Logger, clock quartz.Clock) *RoomService {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &RoomService{
		cfg:    cfg,
		sender: sender,
		clock:  clock,
		codes:  roomid.NewGenerator(nil),
		logger: logger.WithPrefix("rooms"),
		rooms:  make(map[string]*roomActor),
	}
}

// NewPlayerID mints a fresh player identity for clients that join without
// one.
func (s *RoomService) NewPlayerID() string {
	return uuid.NewString()
}

// CreateRoom registers a new waiting room and returns its join code.
func (s *RoomService) CreateRoom(maxPlayers int) string {
	if maxPlayers < game.MinPlayers || maxPlayers > s.cfg.Game.MaxPlayers {
		maxPlayers = s.cfg.Game.MaxPlayers
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.codes.Generate()
	for s.rooms[id] != nil {
		id = s.codes.Generate()
	}

	actor := newRoomActor(id, s, maxPlayers)
	s.rooms[id] = actor
	go actor.run()

	s.logger.Info("room created", "room", id, "maxPlayers", maxPlayers)
	return id
}

// ListRooms snapshots the registry for the REST listing.
func (s *RoomService) ListRooms() []RoomInfo {
	s.mu.RLock()
	actors := make([]*roomActor, 0, len(s.rooms))
	for _, a := range s.rooms {
		actors = append(actors, a)
	}
	s.mu.RUnlock()

	infos := make([]RoomInfo, 0, len(actors))
	for _, a := range actors {
		infos = append(infos, a.info())
	}
	return infos
}

func (s *RoomService) actor(roomID string) (*roomActor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return a, nil
}

// Join seats a player. The room code is normalized first so hand-typed
// codes work.
func (s *RoomService) Join(roomID, playerID, nickname string) error {
	a, err := s.actor(roomid.Normalize(roomID))
	if err != nil {
		return err
	}
	return a.do(roomIntent{kind: intentJoin, playerID: playerID, nickname: nickname})
}

// Leave removes a player; mid-game this is a forced elimination.
func (s *RoomService) Leave(roomID, playerID string) error {
	a, err := s.actor(roomID)
	if err != nil {
		return err
	}
	return a.do(roomIntent{kind: intentLeave, playerID: playerID})
}

// Disconnect routes a dropped connection; unknown rooms are ignored.
func (s *RoomService) Disconnect(roomID, playerID string) {
	a, err := s.actor(roomID)
	if err != nil {
		return
	}
	_ = a.do(roomIntent{kind: intentLeave, playerID: playerID})
}

// SetReady flips a player's lobby readiness.
func (s *RoomService) SetReady(roomID, playerID string, ready bool) error {
	a, err := s.actor(roomID)
	if err != nil {
		return err
	}
	return a.do(roomIntent{kind: intentReady, playerID: playerID, ready: ready})
}

// Start begins the game on behalf of the host.
func (s *RoomService) Start(roomID, playerID string) error {
	a, err := s.actor(roomID)
	if err != nil {
		return err
	}
	return a.do(roomIntent{kind: intentStart, playerID: playerID})
}

// PlaceClaim submits an escalated claim.
func (s *RoomService) PlaceClaim(roomID, playerID string, value, count int) error {
	a, err := s.actor(roomID)
	if err != nil {
		return err
	}
	return a.do(roomIntent{kind: intentClaim, playerID: playerID, value: value, count: count})
}

// CallBluff challenges the active claim.
func (s *RoomService) CallBluff(roomID, playerID string) error {
	a, err := s.actor(roomID)
	if err != nil {
		return err
	}
	return a.do(roomIntent{kind: intentCallBluff, playerID: playerID})
}

// Abstain declines to challenge the active claim.
func (s *RoomService) Abstain(roomID, playerID string) error {
	a, err := s.actor(roomID)
	if err != nil {
		return err
	}
	return a.do(roomIntent{kind: intentAbstain, playerID: playerID})
}

// Reset returns a finished room to the lobby.
func (s *RoomService) Reset(roomID, playerID string) error {
	a, err := s.actor(roomID)
	if err != nil {
		return err
	}
	return a.do(roomIntent{kind: intentReset, playerID: playerID})
}

// Stop shuts down every room actor.
func (s *RoomService) Stop() {
	s.mu.Lock()
	actors := make([]*roomActor, 0, len(s.rooms))
	for _, a := range s.rooms {
		actors = append(actors, a)
	}
	s.rooms = make(map[string]*roomActor)
	s.mu.Unlock()

	for _, a := range actors {
		a.stop()
	}
}

func (s *RoomService) removeRoom(roomID string) {
	s.mu.Lock()
	delete(s.rooms, roomID)
	s.mu.Unlock()
	s.logger.Info("room removed", "room", roomID)
}

type intentKind int

const (
	intentJoin intentKind = iota
	intentLeave
	intentReady
	intentStart
	intentClaim
	intentCallBluff
	intentAbstain
	intentReset
	intentDeadline
)

type roomIntent struct {
	kind       intentKind
	playerID   string
	nickname   string
	ready      bool
	value      int
	count      int
	generation uint64
	reply      chan error
}

// roomActor serializes all engine access for one room. Player intents are
// answered synchronously through a reply channel; deadline intents are
// fire-and-forget from the timer goroutine.
type roomActor struct {
	id       string
	engine   *game.Engine
	service  *RoomService
	logger   *log.Logger
	intents  chan roomIntent
	done     chan struct{}
	stopOnce sync.Once

	mu      sync.RWMutex
	players int
	status  game.Status
	max     int
}

func newRoomActor(id string, service *RoomService, maxPlayers int) *roomActor {
	a := &roomActor{
		id:      id,
		service: service,
		logger:  service.logger.WithPrefix("room").With("room", id),
		intents: make(chan roomIntent, 64),
		done:    make(chan struct{}),
		status:  game.StatusWaiting,
		max:     maxPlayers,
	}

	seed := service.cfg.Game.Seed
	var roller *dice.Roller
	if seed != 0 {
		roller = dice.NewSeededRoller(seed)
	}

	a.engine = game.NewEngine(game.EngineConfig{
		RoomID:           id,
		MaxPlayers:       maxPlayers,
		ChallengeTimeout: service.cfg.ChallengeTimeout(),
		Roller:           roller,
		Clock:            service.clock,
		Logger:           service.logger,
		OnDeadline:       a.enqueueDeadline,
	})
	return a
}

// do submits a player intent and waits for the engine's verdict.
func (a *roomActor) do(it roomIntent) error {
	it.reply = make(chan error, 1)
	select {
	case a.intents <- it:
	case <-a.done:
		return ErrRoomClosed
	}
	select {
	case err := <-it.reply:
		return err
	case <-a.done:
		return ErrRoomClosed
	}
}

// enqueueDeadline is called from the clock's timer goroutine. A room that
// shut down in the meantime just drops the firing.
func (a *roomActor) enqueueDeadline(generation uint64) {
	select {
	case a.intents <- roomIntent{kind: intentDeadline, generation: generation}:
	case <-a.done:
	}
}

func (a *roomActor) stop() {
	a.stopOnce.Do(func() { close(a.done) })
}

func (a *roomActor) info() RoomInfo {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return RoomInfo{
		ID:          a.id,
		PlayerCount: a.players,
		MaxPlayers:  a.max,
		Status:      string(a.status),
	}
}

func (a *roomActor) run() {
	for {
		select {
		case it := <-a.intents:
			a.handle(it)
			if len(a.engine.Room().Players) == 0 {
				a.service.removeRoom(a.id)
				a.stop()
				return
			}
		case <-a.done:
			return
		}
	}
}

func (a *roomActor) handle(it roomIntent) {
	events, err := a.dispatch(it)
	if it.reply != nil {
		it.reply <- err
	}
	if err != nil {
		a.logger.Debug("intent rejected",
			"kind", it.kind, "player", it.playerID, "error", err)
		return
	}
	a.deliver(events)
	a.snapshot()
}

func (a *roomActor) dispatch(it roomIntent) ([]game.Event, error) {
	switch it.kind {
	case intentJoin:
		return a.engine.AddPlayer(it.playerID, it.nickname)
	case intentLeave:
		return a.engine.HandleDisconnect(it.playerID)
	case intentReady:
		return a.engine.SetReady(it.playerID, it.ready)
	case intentStart:
		return a.engine.Start(it.playerID)
	case intentClaim:
		return a.engine.PlaceClaim(it.playerID, it.value, it.count)
	case intentCallBluff:
		return a.engine.CallBluff(it.playerID)
	case intentAbstain:
		return a.engine.Abstain(it.playerID)
	case intentReset:
		return a.engine.Reset()
	case intentDeadline:
		return a.engine.HandleChallengeTimeout(it.generation)
	default:
		return nil, nil
	}
}

// deliver fans the engine's notifications out through the sender:
// broadcasts to the room, private events to their addressee.
func (a *roomActor) deliver(events []game.Event) {
	for _, ev := range events {
		msg, err := MessageFromEvent(ev)
		if err != nil {
			a.logger.Error("failed to encode event", "type", ev.Type, "error", err)
			continue
		}
		if ev.To == "" {
			a.service.sender.BroadcastToRoom(a.id, msg)
			continue
		}
		if err := a.service.sender.SendToPlayer(ev.To, msg); err != nil {
			a.logger.Debug("failed to deliver private event",
				"type", ev.Type, "player", ev.To, "error", err)
		}
	}
}

// snapshot caches the listing fields so ListRooms never touches the engine
// from outside the actor goroutine.
func (a *roomActor) snapshot() {
	room := a.engine.Room()
	a.mu.Lock()
	a.players = len(room.Players)
	a.status = room.Status
	a.mu.Unlock()
}
