package router

import (
	"errors"
	"math"
	"testing"
)

func TestQuantizeExactLevels(t *testing.T) {
	levels, err := Quantize(100, 4)
	if err != nil {
		t.Fatalf("Quantize(100, 4) returned error: %v", err)
	}

	expected := []uint64{25, 50, 75, 100}
	if len(levels) != len(expected) {
		t.Fatalf("expected %d levels, got %d", len(expected), len(levels))
	}
	for i, want := range expected {
		if levels[i] != want {
			t.Errorf("level %d: expected %d, got %d", i, want, levels[i])
		}
	}
}

func TestQuantizeProperties(t *testing.T) {
	tests := []struct {
		name   string
		amount uint64
		steps  uint8
	}{
		{"single step", 1_000_000_000, 1},
		{"even split", 1_000_000_000, 8},
		{"uneven split", 999_999_937, 7},
		{"amount smaller than steps", 3, 10},
		{"amount one", 1, 255},
		{"max amount", math.MaxUint64, 255},
		{"max amount few steps", math.MaxUint64, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels, err := Quantize(tt.amount, tt.steps)
			if err != nil {
				t.Fatalf("Quantize(%d, %d) returned error: %v", tt.amount, tt.steps, err)
			}

			if len(levels) != int(tt.steps) {
				t.Fatalf("expected %d levels, got %d", tt.steps, len(levels))
			}
			for i := 1; i < len(levels); i++ {
				if levels[i] < levels[i-1] {
					t.Errorf("levels not non-decreasing at %d: %d < %d", i, levels[i], levels[i-1])
				}
			}
			if last := levels[len(levels)-1]; last != tt.amount {
				t.Errorf("last level must equal the trade amount: got %d, want %d", last, tt.amount)
			}
		})
	}
}

func TestQuantizeRepeatedLevels(t *testing.T) {
	// 3 units over 10 steps: duplicate cumulative levels are expected and
	// harmless, they just produce duplicate quotes.
	levels, err := Quantize(3, 10)
	if err != nil {
		t.Fatalf("Quantize(3, 10) returned error: %v", err)
	}

	seen := map[uint64]int{}
	for _, l := range levels {
		seen[l]++
	}
	if len(seen) >= len(levels) {
		t.Errorf("expected repeated levels for small amount, got all distinct: %v", levels)
	}
}

func TestQuantizeInvalidInputs(t *testing.T) {
	if _, err := Quantize(100, 0); !errors.Is(err, ErrInvalidStepCount) {
		t.Errorf("expected ErrInvalidStepCount for zero steps, got %v", err)
	}
	if _, err := Quantize(0, 4); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for zero amount, got %v", err)
	}
}

func BenchmarkQuantize(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Quantize(1_000_000_000, 64)
	}
}
