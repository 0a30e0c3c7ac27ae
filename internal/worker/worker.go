// Package worker runs the parallel candidate loops (brute-force trial
// division and smooth-number collection) across an errgroup. Within one
// worker, candidate enumeration and buffer appends are sequentially
// consistent with its own local state; coordination with siblings
// happens only through the shared Enumerator and, in exhaust mode, the
// shared smooth-number table.
package worker

import (
	"context"
	"math/big"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/xdars/findafactor/internal/enumerator"
	"github.com/xdars/findafactor/internal/smooth"
	"github.com/xdars/findafactor/internal/wheel"
)

// Config bundles everything a worker needs that is shared, read-only
// state: the target, the gear template to clone, and how many wheel
// positions make up one batch.
type Config struct {
	N               *big.Int
	Gears           *wheel.Generator
	EntriesPerBatch uint64
	Builder         *smooth.Builder // nil in brute-force mode
	SemiSmoothBound int             // buffer size before invoking Builder
}

// Run fans workerCount goroutines out across the enumerator and collects
// the best (largest nontrivial, preferring over 1) result: the driver
// consolidates results, preferring the larger nontrivial divisor != N.
// done is the shared cooperative-cancellation flag: any worker that
// finds a factor sets it, and siblings observe it within at most one
// batch.
func Run(ctx context.Context, cfg Config, enum *enumerator.Enumerator, workerCount int, done *atomic.Bool) *big.Int {
	g, gctx := errgroup.WithContext(ctx)
	results := make(chan *big.Int, workerCount)

	for i := 0; i < workerCount; i++ {
		g.Go(func() error {
			r := runOne(gctx, cfg, enum, done)
			results <- r
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	best := big.NewInt(1)
	for r := range results {
		if r.Cmp(best) > 0 {
			best = r
		}
	}
	return best
}

// runOne is one goroutine's worker loop. smoothExhaust selects §4.6
// behavior (buffer candidates for the smooth-number builder) versus
// §4.5's plain brute force, based on whether cfg.Builder is set.
func runOne(ctx context.Context, cfg Config, enum *enumerator.Enumerator, done *atomic.Bool) *big.Int {
	cascade := cfg.Gears.Clone()
	var buffer []*big.Int
	var local *smooth.Local
	if cfg.Builder != nil {
		local = cfg.Builder.NewLocal()
	}

	for {
		if done.Load() {
			return big.NewInt(1)
		}
		select {
		case <-ctx.Done():
			return big.NewInt(1)
		default:
		}

		batchNum, ok := enum.NextBatch()
		if !ok {
			return big.NewInt(1)
		}

		start, end := enumerator.BatchRange(batchNum, cfg.EntriesPerBatch)
		for idx := start; idx < end; {
			idx += cascade.Advance()
			candidate := wheel.Forward11(idx)

			v := new(big.Int).SetUint64(candidate)
			if cfg.Builder == nil {
				// Exact trial division, not gcd.
				if isNontrivial(v, cfg.N) && new(big.Int).Mod(cfg.N, v).Sign() == 0 {
					done.Store(true)
					return v
				}
				if done.Load() {
					return big.NewInt(1)
				}
				continue
			}

			// gcd(candidate, N) catches a shared factor directly; the
			// candidate itself is what goes into the semi-smooth buffer.
			n := new(big.Int).GCD(nil, nil, v, cfg.N)
			if isNontrivial(n, cfg.N) {
				done.Store(true)
				return n
			}
			if v.Cmp(bigOne) != 0 {
				buffer = append(buffer, v)
			}
			if len(buffer) >= cfg.SemiSmoothBound {
				// Hand the buffer to the builder, then return 1 so the
				// driver can run a linear-algebra pass over everything
				// accumulated so far this round.
				local.Ingest(buffer)
				return big.NewInt(1)
			}
			if done.Load() {
				return big.NewInt(1)
			}
		}
	}
}

var bigOne = big.NewInt(1)

func isNontrivial(n, target *big.Int) bool {
	return n.Cmp(bigOne) != 0 && n.Cmp(target) != 0
}
