// Package smooth implements the smooth-number builder: it factorizes
// buffered semi-smooth parts over the factor base, shuffles them with a
// per-thread PRNG (the engine's one nondeterministic step), and
// multiplies them together into composites whose parity vector is
// retained in a shared table for the linear-algebra driver to consume.
package smooth

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
	mathrand "math/rand/v2"
	"sync"
)

// SeededRand returns a math/rand/v2 source seeded from OS entropy: a
// fresh per-thread PRNG, seeded independently rather than shared.
// Shuffling is the engine's only nondeterministic step; everything else
// is deterministic given the same inputs.
func SeededRand() *mathrand.Rand {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic("smooth: failed to read OS entropy for PRNG seed: " + err.Error())
	}
	s1 := binary.LittleEndian.Uint64(seed[0:8])
	s2 := binary.LittleEndian.Uint64(seed[8:16])
	return mathrand.New(mathrand.NewPCG(s1, s2))
}

// Record is one row of the shared smooth-number table: a product k of
// smooth parts together with the XOR of their factor-base parity
// vectors.
type Record struct {
	K *big.Int
	V []bool
}

// Table is the shared, mutex-guarded accumulator: records accumulate
// monotonically per round, kept in a shared table keyed by insertion
// order. Coarse-grained locking is sufficient because appenders are
// infrequent relative to candidate work.
type Table struct {
	mu      sync.Mutex
	records []Record
}

// NewTable returns an empty shared table.
func NewTable() *Table { return &Table{} }

// Append adds one record under the table's mutex.
func (t *Table) Append(r Record) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = append(t.records, r)
}

// Snapshot returns a copy of the current records, safe to hand to the
// linear-algebra driver without holding the table's lock during
// elimination.
func (t *Table) Snapshot() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Record(nil), t.records...)
}

// Replace swaps the table's contents wholesale: used by the
// linear-algebra driver after a round to drop rows it has already tried
// (e.g. struck duplicate-row pairs, or rows beyond the pivot count in
// full-Gaussian mode).
func (t *Table) Replace(records []Record) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = records
}

// Len reports the current row count.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}

// Builder turns buffers of semi-smooth parts into Table rows. One
// Builder is shared read-only across workers (factor base, threshold and
// table are fixed at construction); each worker carries its own
// per-thread PRNG, seeded from OS entropy, via NewLocal.
type Builder struct {
	factorBase  []*big.Int
	threshold   *big.Int // sqrt(N) in duplicate-row mode, N in full-Gaussian mode
	table       *Table
	rngSeedFunc func() *mathrand.Rand
}

// NewBuilder constructs a shared Builder. seedFunc produces a fresh,
// independently-seeded PRNG for each worker; pass SeededRand to seed from
// crypto/rand-backed OS entropy.
func NewBuilder(factorBase []*big.Int, threshold *big.Int, table *Table, seedFunc func() *mathrand.Rand) *Builder {
	return &Builder{factorBase: factorBase, threshold: threshold, table: table, rngSeedFunc: seedFunc}
}

// Local is a worker-owned handle on the shared Builder, carrying that
// worker's own PRNG so shuffling never contends across goroutines.
type Local struct {
	b   *Builder
	rng *mathrand.Rand
}

// NewLocal returns a worker-local handle with its own PRNG.
func (b *Builder) NewLocal() *Local {
	return &Local{b: b, rng: b.rngSeedFunc()}
}

// Ingest factorizes buf over the factor base, shuffles the P-smooth
// subset with this worker's local PRNG, and walks the shuffled list
// accumulating a running product/parity-vector pair, appending a row to
// the shared table each time the product exceeds the builder's
// threshold. The caller (internal/worker) retains responsibility for the
// exact-factor short-circuit on each candidate; Ingest only ever grows
// the table.
func (l *Local) Ingest(buf []*big.Int) {
	type factored struct {
		x *big.Int
		v []bool
	}

	var smooth []factored
	for _, x := range buf {
		v, ok := FactorizationVector(x, l.b.factorBase)
		if !ok {
			continue
		}
		smooth = append(smooth, factored{x: x, v: v})
	}

	l.rng.Shuffle(len(smooth), func(i, j int) { smooth[i], smooth[j] = smooth[j], smooth[i] })

	k := big.NewInt(1)
	v := make([]bool, len(l.b.factorBase))
	for _, f := range smooth {
		k.Mul(k, f.x)
		xorInto(v, f.v)
		if k.Cmp(l.b.threshold) > 0 {
			l.b.table.Append(Record{K: new(big.Int).Set(k), V: append([]bool(nil), v...)})
			k.SetInt64(1)
			for i := range v {
				v[i] = false
			}
		}
	}
}

// FactorizationVector trial-divides x by each factor-base prime,
// toggling the parity bit per division. ok is false if x does not fully
// reduce to 1 (it is not P-smooth), in which case the vector is
// discarded by the caller.
func FactorizationVector(x *big.Int, primes []*big.Int) (v []bool, ok bool) {
	n := new(big.Int).Set(x)
	v = make([]bool, len(primes))
	mod := new(big.Int)

	for i, p := range primes {
		count := false
		for {
			mod.Mod(n, p)
			if mod.Sign() != 0 {
				break
			}
			n.Div(n, p)
			count = !count
		}
		v[i] = count
	}

	return v, n.Cmp(one) == 0
}

var one = big.NewInt(1)

func xorInto(dst []bool, src []bool) {
	for i := range dst {
		dst[i] = dst[i] != src[i]
	}
}
