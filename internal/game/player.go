package game

// Player is a participant in a room. The Hand field is server-private and
// only ever sent to the owning player.
type Player struct {
	ID        string
	Nickname  string
	DiceCount int
	Hand      []int
	Alive     bool
	Order     int
	Ready     bool
	Connected bool
}

// NewPlayer creates a player in the waiting-room state.
func NewPlayer(id, nickname string) *Player {
	return &Player{
		ID:        id,
		Nickname:  nickname,
		Alive:     true,
		Connected: true,
	}
}

// PublicPlayer is the view of a player shared with the whole room. It never
// carries the hidden hand.
type PublicPlayer struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	DiceCount int    `json:"diceCount"`
	Alive     bool   `json:"isAlive"`
	Order     int    `json:"order"`
	Ready     bool   `json:"isReady"`
	Connected bool   `json:"isConnected"`
}

// Public returns the broadcast-safe view of the player.
func (p *Player) Public() PublicPlayer {
	return PublicPlayer{
		ID:        p.ID,
		Nickname:  p.Nickname,
		DiceCount: p.DiceCount,
		Alive:     p.Alive,
		Order:     p.Order,
		Ready:     p.Ready,
		Connected: p.Connected,
	}
}
