package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClaim_FirstClaim(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		count   int
		wantErr error
	}{
		{"any in-bounds claim is valid", 4, 3, nil},
		{"minimum bounds", 1, 1, nil},
		{"maximum value", 6, 30, nil},
		{"value below range", 0, 3, ErrValueOutOfRange},
		{"value above range", 7, 3, ErrValueOutOfRange},
		{"count below range", 4, 0, ErrCountOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClaim(nil, tt.value, tt.count)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateClaim_Escalation(t *testing.T) {
	prev := &Claim{PlayerID: "a", Value: 4, Count: 3}

	tests := []struct {
		name    string
		value   int
		count   int
		wantErr error
	}{
		{"higher count any value", 1, 4, nil},
		{"higher count same value", 4, 4, nil},
		{"higher count lower value", 2, 5, nil},
		{"same count higher value", 5, 3, nil},
		{"same count same value", 4, 3, ErrValueNotIncreased},
		{"same count lower value", 3, 3, ErrValueNotIncreased},
		{"lower count", 6, 2, ErrCountRegressed},
		{"out of range beats escalation check", 9, 5, ErrValueOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClaim(prev, tt.value, tt.count)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// Exhaustive property check over a bounded grid: a candidate is accepted
// iff count rises, or count holds and value rises, within bounds.
func TestValidateClaim_Property(t *testing.T) {
	prev := &Claim{PlayerID: "a", Value: 3, Count: 4}

	for value := MinClaimValue; value <= MaxClaimValue; value++ {
		for count := MinClaimCount; count <= 10; count++ {
			err := ValidateClaim(prev, value, count)
			shouldAccept := count > prev.Count || (count == prev.Count && value > prev.Value)
			if shouldAccept {
				require.NoError(t, err, "value=%d count=%d", value, count)
			} else {
				require.Error(t, err, "value=%d count=%d", value, count)
			}
		}
	}
}
