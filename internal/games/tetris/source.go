package tetris

import "math/rand"

// PieceSource supplies the type and spawn column of each new piece.
type PieceSource interface {
	// Next returns the type of the next piece.
	Next() PieceType
	// Column returns a spawn column in [0, n).
	Column(n int) int
}

// RandomSource draws types and columns uniformly from a seeded generator.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a source seeded with seed.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomSource) Next() PieceType {
	return PieceType(r.rng.Intn(PieceCount))
}

func (r *RandomSource) Column(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}
