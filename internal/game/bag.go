package game

import "math/rand"

// Bag is the 7-bag randomizer: every group of seven draws is a permutation
// of all kinds. Two bags created with the same seed produce identical
// sequences.
type Bag struct {
	rng  *rand.Rand
	bag  []Kind
	seed int64
}

// NewBag creates a seeded bag.
func NewBag(seed int64) *Bag {
	return &Bag{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the bag was created with.
func (b *Bag) Seed() int64 {
	return b.seed
}

// Next pops the next kind, refilling the bag when it is empty.
func (b *Bag) Next() Kind {
	if len(b.bag) == 0 {
		b.refill()
	}
	k := b.bag[0]
	b.bag = b.bag[1:]
	return k
}

// Remaining returns how many kinds are left before the next refill.
func (b *Bag) Remaining() int {
	return len(b.bag)
}

func (b *Bag) refill() {
	b.bag = append(b.bag[:0], Kinds[:]...)
	// Fisher-Yates
	for i := len(b.bag) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
	}
}
