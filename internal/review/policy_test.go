package review

import (
	"math/rand/v2"
	"testing"
)

func TestMaxDifficulty(t *testing.T) {
	tests := []struct {
		name        string
		activeCount int
		expected    int
	}{
		{"empty", 0, 0},
		{"single item", 1, 0},
		{"two items", 2, 1},
		{"three items", 3, 1},
		{"four items", 4, 2},
		{"seven items", 7, 2},
		{"eight items", 8, 3},
		{"hundred items", 100, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaxDifficulty(tc.activeCount); got != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestSpacedInsertPosition(t *testing.T) {
	tests := []struct {
		name          string
		maxDifficulty int
		difficulty    int
		remaining     int
		expected      int
	}{
		{"graduated goes to tail", 3, 0, 10, 10},
		{"just failed reappears next", 3, 3, 10, 1},
		{"one step toward mastery", 3, 2, 10, 2},
		{"two steps toward mastery", 3, 1, 10, 4},
		{"clamped to remaining", 3, 1, 3, 3},
		{"difficulty above max clamps gap", 1, 3, 10, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SpacedInsertPosition(tc.maxDifficulty, tc.difficulty, tc.remaining)
			if got != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestRandomInsertPositionBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))

	for i := 0; i < 200; i++ {
		pos := RandomInsertPosition(rng, 9)
		if pos < 0 || pos > 9 {
			t.Fatalf("Expected position in [0, 9], got %d", pos)
		}
	}

	if pos := RandomInsertPosition(rng, 0); pos != 0 {
		t.Errorf("Expected 0 for empty remainder, got %d", pos)
	}
}

func TestSequentialInsertPosition(t *testing.T) {
	for _, remaining := range []int{0, 1, 5, 100} {
		if got := SequentialInsertPosition(remaining); got != remaining {
			t.Errorf("Expected %d, got %d", remaining, got)
		}
	}
}
