// Package engine drives the top-level search: INIT -> TRIAL_DIVISION ->
// SIEVE_SETUP -> ENUMERATE_ROUND -> BUILD_SMOOTH -> LINALG ->
// {DONE | ENUMERATE_ROUND} -> EXHAUST. It owns the shared, read-only
// factor base and wheel template, and the per-round shared state
// (enumerator, smooth-number table, done flag) that internal/worker and
// internal/linalg operate on.
package engine

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/xdars/findafactor/internal/bigint"
	"github.com/xdars/findafactor/internal/config"
	"github.com/xdars/findafactor/internal/progress"
	"github.com/xdars/findafactor/internal/sieve"
	"github.com/xdars/findafactor/internal/wheel"
)

var (
	one = big.NewInt(1)
)

// Run implements find_a_factor, the package's sole external operation.
// It always returns a decimal string in [1, N] and never an error to the
// caller for exhaustion: only malformed input or an unrecoverable
// failure surfaces as an error here, everything else collapses to "1".
func Run(ctx context.Context, p config.Params) (string, error) {
	n, ok := new(big.Int).SetString(p.N, 10)
	if !ok || n.Sign() <= 0 {
		return "", fmt.Errorf("findafactor: %q is not a positive decimal integer", p.N)
	}
	if n.Cmp(big.NewInt(1)) == 0 {
		return "1", nil
	}

	if r, isSquare := bigint.IsPerfectSquare(n); isSquare {
		log.Printf("findafactor: N is a perfect square, short-circuiting to sqrt")
		return r.String(), nil
	}

	reporter := progress.NewReporter(2 * time.Second)

	// check_small_factors gates whether the TRIAL_DIVISION pre-pass runs
	// at all, not whether its absence of a hit blocks SIEVE_SETUP: a miss
	// always falls through to the wheel/QS machinery regardless of this
	// flag.
	if p.CheckSmallFactors {
		if d := trialDivision(n, p.SievingBoundMultiplier); d != nil {
			log.Printf("findafactor: trial division found a factor directly")
			return d.String(), nil
		}
	}

	gearPrimes, factorBase, err := buildPrimeSets(n, p)
	if err != nil {
		return "", err
	}

	gen := wheel.NewGenerator(gearPrimes, bigint.Isqrt(n))

	entriesPerBatch := uint64(float64(wheel.EntriesPerLap) * p.BatchSizeMultiplier)
	if entriesPerBatch == 0 {
		entriesPerBatch = 1
	}

	switch p.Method {
	case config.BruteForce:
		return runBruteForce(ctx, n, gen, entriesPerBatch, p, reporter)
	case config.SmoothExhaustDuplicates, config.SmoothExhaustGaussian:
		return runSmoothExhaust(ctx, n, gen, entriesPerBatch, factorBase, p, reporter)
	case config.PrimeProver:
		return runPrimeProver(ctx, n, gen, entriesPerBatch, factorBase, p, reporter)
	default:
		return runBruteForce(ctx, n, gen, entriesPerBatch, p, reporter)
	}
}

// trialDivision is the TRIAL_DIVISION state, run before SIEVE_SETUP when
// check_small_factors is set: trial division by every prime up to
// scaledBound(N, sieving_bound_multiplier), which is
// sieving_bound_multiplier * sqrt(N) clamped to at most 1<<24. Prime
// factors above that cap are not found here.
func trialDivision(n *big.Int, multiplier float64) *big.Int {
	bound := scaledBound(n, multiplier)
	primes := sieve.Primes(bound)
	mod := new(big.Int)
	for _, pr := range primes {
		bp := big.NewInt(pr)
		mod.Mod(n, bp)
		if mod.Sign() == 0 && bp.Cmp(n) != 0 {
			return bp
		}
	}
	return nil
}

// scaledBound converts a multiplier and N into an int64 sieve bound,
// clamping to a sane range so a huge N with a tiny multiplier doesn't
// produce a zero-length sieve and a huge one doesn't overflow.
func scaledBound(n *big.Int, multiplier float64) int64 {
	root := bigint.Isqrt(n)
	scaled := new(big.Int).Mul(root, big.NewInt(int64(multiplier*1000)))
	scaled.Div(scaled, big.NewInt(1000))
	if scaled.Sign() <= 0 {
		return 1 << 16
	}
	if !scaled.IsInt64() || scaled.Int64() > 1<<24 {
		return 1 << 24
	}
	return scaled.Int64()
}

// maxSieveBound caps how far buildPrimeSets will grow its sieve before
// giving up: well beyond anything a real gear_level/smoothness_bound
// combination should need.
const maxSieveBound = 1 << 26

// buildPrimeSets returns (gear primes, factor base): gear primes are the
// first gear_level primes (used for the wheel/gear cascade); the factor
// base is the primes strictly above the gear level for which N is a
// quadratic residue, capped at ceil(smoothness_bound_multiplier *
// log2(N)). The sqrt(N)-scaled sieve
// bound is only a starting point: for small N it can undershoot the
// prime count gear_level alone needs, so the bound doubles until both
// the gear set and a non-trivial factor base are satisfied or the hard
// cap is reached.
func buildPrimeSets(n *big.Int, p config.Params) ([]int64, []*big.Int, error) {
	target := float64(bigint.Ilog2(n)) * p.SmoothnessBoundMultiplier
	maxFactorBase := int(target) + 1
	if maxFactorBase < 1 {
		maxFactorBase = 1
	}

	bound := scaledBound(n, p.SievingBoundMultiplier)
	var primes []int64
	var factorBase []*big.Int
	for {
		primes = sieve.Primes(bound)
		factorBase = nil
		if len(primes) > p.GearLevel {
			for _, pr := range primes[p.GearLevel:] {
				if len(factorBase) >= maxFactorBase {
					break
				}
				bp := big.NewInt(pr)
				if isQuadraticResidue(n, bp) {
					factorBase = append(factorBase, bp)
				}
			}
		}
		if (len(primes) > p.GearLevel && len(factorBase) >= maxFactorBase) || bound >= maxSieveBound {
			break
		}
		bound *= 2
	}

	if len(primes) <= p.GearLevel {
		return nil, nil, fmt.Errorf("findafactor: sieving bound too small to produce %d gear primes", p.GearLevel)
	}

	return primes[:p.GearLevel], factorBase, nil
}

// isQuadraticResidue reports whether N mod p is a perfect square of an
// integer: the factor-base selection rule.
func isQuadraticResidue(n, p *big.Int) bool {
	r := new(big.Int).Mod(n, p)
	_, ok := bigint.IsPerfectSquare(r)
	return ok
}
