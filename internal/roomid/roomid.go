package roomid

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Crockford's base32 alphabet. No I, L, O, or U, so codes survive being
// read aloud or typed from a screenshot.
const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// Length of a room code. Six characters gives ~10^9 codes, plenty for the
// number of concurrently live rooms a single server hosts.
const Length = 6

// RandSource interface for dependency injection of randomness
type RandSource interface {
	Intn(n int) int
}

// Generator produces room codes with configurable randomness.
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a new generator with optional RandSource
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a new room code using crypto/rand.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new room code using the generator's RandSource.
func (g *Generator) Generate() string {
	var buf [Length]byte

	if g.randSource != nil {
		// Use provided RandSource for deterministic testing
		for i := range buf {
			buf[i] = alphabet[g.randSource.Intn(len(alphabet))]
		}
		return string(buf[:])
	}

	var raw [Length]byte
	if _, err := rand.Read(raw[:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	for i, b := range raw {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf[:])
}

// Normalize maps user input onto the canonical code form: uppercase, with
// the characters Crockford's alphabet deliberately excludes folded onto
// their look-alikes (O to 0, I and L to 1).
func Normalize(id string) string {
	id = strings.ToUpper(strings.TrimSpace(id))
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch r {
		case 'O':
			b.WriteRune('0')
		case 'I', 'L':
			b.WriteRune('1')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks that id is a canonical room code. Callers that accept
// user input should Normalize first.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("room code must be exactly %d characters, got %d", Length, len(id))
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
