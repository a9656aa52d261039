package review

import (
	"math/bits"
	"math/rand/v2"
)

// MaxDifficulty returns floor(log2(activeCount)) for populations larger
// than one, otherwise 0. It is a function of the current active
// population and must be recomputed before every reinsertion.
func MaxDifficulty(activeCount int) int {
	if activeCount <= 1 {
		return 0
	}
	return bits.Len(uint(activeCount)) - 1
}

// SpacedInsertPosition maps a judged item's difficulty to its reinsertion
// index. Graduated items (difficulty 0) go to the tail; otherwise the
// item lands 2^(maxDifficulty-difficulty) slots in, so items closer to
// mastery are deferred further and just-failed items reappear almost
// immediately.
func SpacedInsertPosition(maxDifficulty, difficulty, remaining int) int {
	if difficulty == 0 {
		return remaining
	}
	gap := maxDifficulty - difficulty
	if gap < 0 {
		gap = 0
	}
	pos := 1 << gap
	if pos > remaining {
		return remaining
	}
	return pos
}

// RandomInsertPosition returns a uniform index in [0, remaining].
func RandomInsertPosition(rng *rand.Rand, remaining int) int {
	if remaining <= 0 {
		return 0
	}
	return rng.IntN(remaining + 1)
}

// SequentialInsertPosition always appends: strict round-robin.
func SequentialInsertPosition(remaining int) int {
	return remaining
}
