// Package sieve builds the ascending prime list the rest of the engine
// treats as ground truth: the trial-division list and, after slicing off
// the gear/wheel primes, the factor base.
//
// The segmented Sieve of Eratosthenes below keeps one flag per integer in
// each segment (multiples of 2, 3 and 5 are marked like any other
// composite; no wheel is applied), and dispatches each
// segment's composite-marking across an errgroup so the sieve scales
// with the machine the same way the rest of the engine does.
package sieve

import (
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// segmentSize bounds the amount of work handed to a single dispatch task.
// Small enough to keep segments cache-resident, large enough to keep
// dispatch overhead from dominating for small bounds.
const segmentSize = 1 << 16

// Primes returns the ascending list of primes <= bound. Deterministic and
// order-preserving; the only failure mode is allocation exhaustion, which
// surfaces as the usual Go out-of-memory crash rather than an error return.
func Primes(bound int64) []int64 {
	if bound < 2 {
		return nil
	}

	base := basePrimes(bound)
	if bound < segmentSize {
		return base
	}

	primes := append([]int64(nil), base...)

	var mu sync.Mutex
	var g errgroup.Group

	for low := int64(segmentSize); low <= bound; low += segmentSize {
		low := low
		high := low + segmentSize - 1
		if high > bound {
			high = bound
		}
		g.Go(func() error {
			segPrimes := sieveSegment(low, high, base)
			mu.Lock()
			defer mu.Unlock()
			primes = append(primes, segPrimes...)
			return nil
		})
	}
	_ = g.Wait()

	sortInt64s(primes)
	return primes
}

// basePrimes runs a plain, unsegmented sieve over [2, min(bound,
// segmentSize)) to seed the segmented pass with small primes to mark
// against.
func basePrimes(bound int64) []int64 {
	limit := bound
	if limit >= segmentSize {
		limit = segmentSize - 1
	}
	if limit < 2 {
		return nil
	}

	isComposite := make([]bool, limit+1)
	var primes []int64
	for p := int64(2); p <= limit; p++ {
		if isComposite[p] {
			continue
		}
		primes = append(primes, p)
		for m := p * p; m <= limit; m += p {
			isComposite[m] = true
		}
	}
	return primes
}

// sieveSegment marks composites in [low, high] using the previously
// discovered base primes, one dispatch-pool task per call. Squared
// boundaries: a prime p only needs to start marking at max(p*p, first
// multiple of p >= low), so segments below p*p never touch p at all.
func sieveSegment(low, high int64, base []int64) []int64 {
	size := high - low + 1
	isComposite := make([]bool, size)

	for _, p := range base {
		if p*p > high {
			break
		}
		start := p * p
		if start < low {
			start = ((low + p - 1) / p) * p
			if start < p*p {
				start = p * p
			}
		}
		for m := start; m <= high; m += p {
			isComposite[m-low] = true
		}
	}

	var out []int64
	for i, composite := range isComposite {
		n := low + int64(i)
		if n < 2 || composite {
			continue
		}
		out = append(out, n)
	}
	return out
}

// sortInt64s sorts ascending. Segments are appended out of goroutine-
// completion order (not index order), so the merged slice needs a real
// sort before callers can binary-search it.
func sortInt64s(xs []int64) {
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
}
