// Gear cascade construction and advancement, generalizing the hard-coded
// wheel11 table in wheel11.go to an arbitrary gear level. Each gear stage
// is a bitset over the positions already coprime to the lower stages,
// marking which of those positions are additionally a multiple of the
// stage's prime. Advancing pops the low bit of the first stage; if that
// bit is clear, the candidate also belongs to the next stage, which pops
// its own low bit, cascading like a gear train. A set bit at any stage
// marks the candidate as a multiple: it is skipped, the later stages stay
// where they are, and advancing moves on to the next integer.
package wheel

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"
)

// MaxGearLevel is the largest gear/wheel level the engine honors; both
// gear_level and wheel_level are silently clamped to this.
const MaxGearLevel = 11

// Generator holds one bitset per gear stage. It is the shared, read-only
// template built once at startup; workers clone it (Clone) before
// mutating their own copy via Advance.
type Generator struct {
	primes []int64
	stages []*bitset.BitSet
}

// NewGenerator builds the gear cascade for the given ascending primes
// (e.g. the sieve's output up to the gear level). limit caps the radius
// for gear levels whose full product would dwarf the number being
// factored.
func NewGenerator(primes []int64, limit *big.Int) *Generator {
	g := &Generator{primes: append([]int64(nil), primes...)}

	var stagePrimes []int64
	for _, p := range primes {
		stagePrimes = append(stagePrimes, p)
		g.stages = append(g.stages, buildStage(stagePrimes, limit))
	}
	return g
}

// buildStage builds the bitset for the newest prime in stagePrimes: one
// bit per position already coprime to every earlier prime in the list,
// set when that position is a multiple of the newest prime.
func buildStage(stagePrimes []int64, limit *big.Int) *bitset.BitSet {
	radius := int64(1)
	for _, p := range stagePrimes {
		radius *= p
	}
	if limit != nil && limit.IsInt64() && limit.Int64() < radius {
		radius = limit.Int64()
	}
	if radius < 1 {
		radius = 1
	}

	prime := stagePrimes[len(stagePrimes)-1]
	earlier := stagePrimes[:len(stagePrimes)-1]

	var positions []bool
	for i := int64(1); i <= radius; i++ {
		if isMultipleOfAny(i, earlier) {
			continue
		}
		positions = append(positions, i%prime == 0)
	}

	stage := bitset.New(uint(len(positions)))
	for i, isMultiple := range positions {
		if isMultiple {
			stage.Set(uint(i))
		}
	}
	// Rotate once so position 0 always starts "already consumed" and the
	// first Advance() call reads the state for the first real candidate.
	return rotateRight(stage, uint(len(positions)))
}

func isMultipleOfAny(n int64, primes []int64) bool {
	for _, p := range primes {
		if n%p == 0 {
			return true
		}
	}
	return false
}

// rotateRight pops bit 0 and appends it at the top, len(bits)-aware.
func rotateRight(b *bitset.BitSet, length uint) *bitset.BitSet {
	if length == 0 {
		return b
	}
	popped := b.Test(0)
	out := bitset.New(length)
	for i := uint(0); i < length-1; i++ {
		if b.Test(i + 1) {
			out.Set(i)
		}
	}
	if popped {
		out.Set(length - 1)
	}
	return out
}

// Clone returns a thread-local copy of the cascade, safe for one worker's
// exclusive use. Cloned from the shared template, never shared across
// goroutines afterward.
func (g *Generator) Clone() *Cascade {
	clones := make([]*bitset.BitSet, len(g.stages))
	for i, s := range g.stages {
		clones[i] = s.Clone()
	}
	return &Cascade{stages: clones}
}

// Cascade is a worker-owned, mutable clone of a Generator's bitset stages.
type Cascade struct {
	stages []*bitset.BitSet
}

// Advance rotates the cascade until it reaches the next value coprime to
// every gear prime and returns the distance from the current value to it.
func (c *Cascade) Advance() uint64 {
	var increment uint64
	for {
		increment++
		fellThrough := false
		for _, stage := range c.stages {
			length := stage.Len()
			if length == 0 {
				continue
			}
			popped := stage.Test(0)
			shiftLeft(stage, length)
			if popped {
				stage.Set(length - 1)
				fellThrough = true
				break
			}
		}
		if !fellThrough {
			return increment
		}
	}
}

// shiftLeft drops bit 0 and shifts every other bit down by one, the
// logical-rotate-without-the-wraparound-bit half of Advance (the caller
// re-sets the top bit itself when the popped bit cascades).
func shiftLeft(b *bitset.BitSet, length uint) {
	for i := uint(0); i < length-1; i++ {
		if b.Test(i + 1) {
			b.Set(i)
		} else {
			b.Clear(i)
		}
	}
	b.Clear(length - 1)
}
