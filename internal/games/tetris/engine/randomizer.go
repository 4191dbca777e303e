package engine

import "math/rand"

// Randomizer produces an unending stream of piece kinds.
type Randomizer interface {
	Next() Kind
}

// Bag is the 7-bag randomizer: each kind appears exactly once per
// seven draws taken from one full bag.
type Bag struct {
	rng *rand.Rand
	bag []Kind
}

// NewBag creates a bag randomizer drawing from rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{
		rng: rng,
		bag: make([]Kind, 0, KindCount),
	}
}

// Next pops the front of the bag, refilling and shuffling it when empty.
func (b *Bag) Next() Kind {
	if len(b.bag) == 0 {
		b.refill()
	}
	k := b.bag[0]
	b.bag = b.bag[1:]
	return k
}

// refill loads all seven kinds and applies a Fisher-Yates shuffle,
// walking from the last index down to 1.
func (b *Bag) refill() {
	b.bag = b.bag[:0]
	b.bag = append(b.bag, Kinds[:]...)
	for i := len(b.bag) - 1; i >= 1; i-- {
		j := b.rng.Intn(i + 1)
		b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
	}
}

// Uniform draws every kind independently with equal probability.
// Used when fair randomization is disabled.
type Uniform struct {
	rng *rand.Rand
}

// NewUniform creates a memoryless randomizer drawing from rng.
func NewUniform(rng *rand.Rand) *Uniform {
	return &Uniform{rng: rng}
}

// Next returns a uniformly random kind.
func (u *Uniform) Next() Kind {
	return Kinds[u.rng.Intn(KindCount)]
}
