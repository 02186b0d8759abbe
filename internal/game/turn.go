package game

// TurnSequencer maintains the ordered list of living players and the turn
// pointer. The order is fixed once at game start; removals re-index without
// disturbing the relative order of the rest.
type TurnSequencer struct {
	order []string
	idx   int
}

// NewTurnSequencer creates a sequencer over the given player IDs in turn
// order, pointing at the first.
func NewTurnSequencer(ids []string) *TurnSequencer {
	order := make([]string, len(ids))
	copy(order, ids)
	return &TurnSequencer{order: order}
}

// Current returns the player whose turn it is, or "" when empty.
func (ts *TurnSequencer) Current() string {
	if len(ts.order) == 0 {
		return ""
	}
	return ts.order[ts.idx]
}

// Advance moves the pointer to the next living player, wrapping, and
// returns it.
func (ts *TurnSequencer) Advance() string {
	if len(ts.order) == 0 {
		return ""
	}
	ts.idx = (ts.idx + 1) % len(ts.order)
	return ts.order[ts.idx]
}

// SetCurrent points the turn at the given player. Returns false when the
// player is not in the order.
func (ts *TurnSequencer) SetCurrent(id string) bool {
	for i, existing := range ts.order {
		if existing == id {
			ts.idx = i
			return true
		}
	}
	return false
}

// RemoveIfPresent removes a player from the order, clamping the pointer so
// that no other player's turn is skipped or repeated. Removing the current
// player leaves the pointer on their successor.
func (ts *TurnSequencer) RemoveIfPresent(id string) bool {
	for i, existing := range ts.order {
		if existing != id {
			continue
		}
		ts.order = append(ts.order[:i], ts.order[i+1:]...)
		if i < ts.idx {
			ts.idx--
		}
		if ts.idx >= len(ts.order) {
			ts.idx = 0
		}
		return true
	}
	return false
}

// NextAfter returns the living player immediately after the given one,
// wrapping. When the reference player is absent (eliminated), it falls back
// to the first living player.
func (ts *TurnSequencer) NextAfter(id string) string {
	if len(ts.order) == 0 {
		return ""
	}
	for i, existing := range ts.order {
		if existing == id {
			return ts.order[(i+1)%len(ts.order)]
		}
	}
	return ts.order[0]
}

// Contains reports whether the player is still in the turn order.
func (ts *TurnSequencer) Contains(id string) bool {
	for _, existing := range ts.order {
		if existing == id {
			return true
		}
	}
	return false
}

// Living returns a copy of the turn order.
func (ts *TurnSequencer) Living() []string {
	living := make([]string, len(ts.order))
	copy(living, ts.order)
	return living
}

// LivingCount returns the number of players remaining in the order.
func (ts *TurnSequencer) LivingCount() int {
	return len(ts.order)
}
