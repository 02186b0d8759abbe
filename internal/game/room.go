package game

import "time"

// Status is the room lifecycle state.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

const (
	// MinPlayers is the minimum number of players required to start.
	MinPlayers = 2

	// MaxPlayers is the room capacity bound.
	MaxPlayers = 6
)

// initialDiceByPlayerCount maps the number of seated players to each
// player's starting dice count.
var initialDiceByPlayerCount = map[int]int{
	2: 15,
	3: 10,
	4: 7,
	5: 6,
	6: 5,
}

const fallbackInitialDice = 5

// InitialDiceCount returns the starting dice per player for the given
// player count.
func InitialDiceCount(players int) int {
	if n, ok := initialDiceByPlayerCount[players]; ok {
		return n
	}
	return fallbackInitialDice
}

// Room is the per-engine game room. It is owned exclusively by one Engine
// and mutated only through Engine operations.
type Room struct {
	ID            string
	HostID        string
	Players       []*Player // insertion order, for display
	Status        Status
	CurrentRound  int
	CurrentClaim  *Claim
	DiscardedDice int
	WinnerID      string
	MaxPlayers    int
	CreatedAt     time.Time
}

// NewRoom creates an empty waiting room.
func NewRoom(id, hostID string, maxPlayers int) *Room {
	if maxPlayers <= 0 || maxPlayers > MaxPlayers {
		maxPlayers = MaxPlayers
	}
	return &Room{
		ID:         id,
		HostID:     hostID,
		Status:     StatusWaiting,
		MaxPlayers: maxPlayers,
		CreatedAt:  time.Now(),
	}
}

// Player returns the player with the given ID, or nil.
func (r *Room) Player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// LivingPlayers returns the players still holding dice, in insertion order.
func (r *Room) LivingPlayers() []*Player {
	living := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Alive {
			living = append(living, p)
		}
	}
	return living
}

// Roster returns the broadcast-safe view of every seated player.
func (r *Room) Roster() []PublicPlayer {
	roster := make([]PublicPlayer, 0, len(r.Players))
	for _, p := range r.Players {
		roster = append(roster, p.Public())
	}
	return roster
}

func (r *Room) removePlayer(id string) bool {
	for i, p := range r.Players {
		if p.ID == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true
		}
	}
	return false
}
