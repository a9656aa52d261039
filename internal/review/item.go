package review

// Banned is the difficulty sentinel for items excluded from rotation.
// Banned items stay in the deck so they can be listed and unbanned, but
// they are never presented as the current item.
const Banned = -1

// Mode selects the reinsertion policy applied after a judgement.
type Mode string

const (
	Spaced     Mode = "spaced"
	Random     Mode = "random"
	Sequential Mode = "sequential"
)

// ValidMode reports whether m is one of the three supported modes.
func ValidMode(m Mode) bool {
	return m == Spaced || m == Random || m == Sequential
}

// Item wraps an opaque payload with scheduling metadata. The scheduler
// never inspects the payload.
type Item[T any] struct {
	Payload            T
	Difficulty         int // Banned (-1), or 0..maxDifficulty; 0 means mastered for the pass
	Seen               bool
	MasteredOnFirstTry bool

	// position in the input order, used to restore Sequential decks on restart
	ord int
}

// Meta is the caller-visible scheduling metadata of an item.
type Meta struct {
	Difficulty         int  `json:"difficulty"`
	Seen               bool `json:"seen"`
	MasteredOnFirstTry bool `json:"mastered_on_first_try"`
}

func (it Item[T]) meta() Meta {
	return Meta{
		Difficulty:         it.Difficulty,
		Seen:               it.Seen,
		MasteredOnFirstTry: it.MasteredOnFirstTry,
	}
}
