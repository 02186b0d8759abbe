// Package dice implements dice rolling and the wild-aware counting rules
// used by the pirate dice game.
//
// Face 1 is wild: it counts toward any claimed face except when the claim
// targets the wild face itself. An extra undealt "house" wild die is added
// to every total for the same reason.
package dice

import (
	rand "math/rand/v2"
	"sort"
)

const (
	// Faces is the number of sides on every die.
	Faces = 6

	// WildFace is the face value that counts toward any other claimed face.
	WildFace = 1

	// HouseWildCount is the number of undealt center wild dice added to
	// every non-wild total.
	HouseWildCount = 1
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// Roller produces random hand values. It carries its own random source so
// tests can substitute a deterministic one.
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a roller backed by the provided random source.
func NewRoller(rng *rand.Rand) *Roller {
	return &Roller{rng: rng}
}

// NewSeededRoller creates a roller with a reproducible sequence derived from
// seed. The mixer spreads low-entropy seeds across both PCG words.
func NewSeededRoller(seed int64) *Roller {
	u := uint64(seed)
	return &Roller{rng: rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))}
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Roll returns count independent uniform values in [1, Faces]. A count of
// zero or less yields an empty hand.
func (r *Roller) Roll(count int) []int {
	if count <= 0 {
		return []int{}
	}

	hand := make([]int, count)
	for i := range hand {
		hand[i] = r.rng.IntN(Faces) + 1
	}
	return hand
}

// CountValue counts how many dice in hand count toward target, including
// wilds unless the target is the wild face itself.
func CountValue(hand []int, target int) int {
	count := 0
	for _, die := range hand {
		if die == target {
			count++
		} else if die == WildFace && target != WildFace {
			count++
		}
	}
	return count
}

// CountTotal counts how many dice across all hands count toward target,
// plus the house wild bonus when the target is not the wild face.
func CountTotal(hands map[string][]int, target int) int {
	total := 0
	for _, hand := range hands {
		total += CountValue(hand, target)
	}
	if target != WildFace {
		total += HouseWildCount
	}
	return total
}

// CompareForOrder compares two roll-off hands for turn ordering. Each hand
// is sorted descending and compared lexicographically. The result is
// negative when a ranks first, positive when b ranks first, and zero on a
// full tie.
func CompareForOrder(a, b []int) int {
	sortedA := sortDescending(a)
	sortedB := sortDescending(b)

	n := len(sortedA)
	if len(sortedB) > n {
		n = len(sortedB)
	}

	for i := 0; i < n; i++ {
		va, vb := 0, 0
		if i < len(sortedA) {
			va = sortedA[i]
		}
		if i < len(sortedB) {
			vb = sortedB[i]
		}
		if va != vb {
			return vb - va
		}
	}
	return 0
}

func sortDescending(hand []int) []int {
	sorted := make([]int, len(hand))
	copy(sorted, hand)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	return sorted
}
