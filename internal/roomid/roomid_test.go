package roomid

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	id := Generate()

	if len(id) != Length {
		t.Errorf("expected %d characters, got %d", Length, len(id))
	}

	if err := Validate(id); err != nil {
		t.Errorf("generated code failed validation: %v", err)
	}
}

func TestGenerateUnique(t *testing.T) {
	// Collisions are possible in principle but vanishingly unlikely over
	// a hundred draws from a 32^6 space.
	ids := make(map[string]bool)

	for i := 0; i < 100; i++ {
		id := Generate()
		if ids[id] {
			t.Errorf("duplicate code generated: %s", id)
		}
		ids[id] = true
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{
			name:    "valid code",
			id:      "7KQ2XV",
			wantErr: false,
		},
		{
			name:    "too short",
			id:      "7KQ2X",
			wantErr: true,
		},
		{
			name:    "too long",
			id:      "7KQ2XV9",
			wantErr: true,
		},
		{
			name:    "excluded letter",
			id:      "7KQ2XO",
			wantErr: true,
		},
		{
			name:    "lowercase not canonical",
			id:      "7kq2xv",
			wantErr: true,
		},
		{
			name:    "empty",
			id:      "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"7kq2xv", "7KQ2XV"},
		{" 7KQ2XV ", "7KQ2XV"},
		{"7KQ2XO", "7KQ2X0"},
		{"7KQ2XI", "7KQ2X1"},
		{"7kq2xl", "7KQ2X1"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if err := Validate(Normalize(tt.in)); err != nil {
			t.Errorf("normalized %q failed validation: %v", tt.in, err)
		}
	}
}

func TestAlphabet(t *testing.T) {
	if len(alphabet) != 32 {
		t.Errorf("alphabet should have 32 characters, got %d", len(alphabet))
	}

	seen := make(map[rune]bool)
	for _, char := range alphabet {
		if seen[char] {
			t.Errorf("duplicate character in alphabet: %c", char)
		}
		seen[char] = true
	}

	forbidden := "ILOU"
	for _, char := range forbidden {
		if strings.ContainsRune(alphabet, char) {
			t.Errorf("alphabet should not contain %c", char)
		}
	}
}

// MockRandSource for deterministic testing
type MockRandSource struct {
	values []int
	index  int
}

func NewMockRandSource(values ...int) *MockRandSource {
	return &MockRandSource{values: values, index: 0}
}

func (m *MockRandSource) Intn(n int) int {
	if m.index >= len(m.values) {
		return 0
	}
	val := m.values[m.index] % n
	m.index++
	return val
}

func TestGeneratorDeterministic(t *testing.T) {
	gen1 := NewGenerator(NewMockRandSource(1, 2, 3, 4, 5, 6))
	gen2 := NewGenerator(NewMockRandSource(1, 2, 3, 4, 5, 6))

	id1 := gen1.Generate()
	id2 := gen2.Generate()

	if id1 != id2 {
		t.Errorf("same source should produce the same code: %s != %s", id1, id2)
	}
	if err := Validate(id1); err != nil {
		t.Errorf("generated code failed validation: %v", err)
	}
}
