package engine

import (
	"context"
	"log"
	"math/big"
	"sync/atomic"

	"github.com/xdars/findafactor/internal/bigint"
	"github.com/xdars/findafactor/internal/config"
	"github.com/xdars/findafactor/internal/enumerator"
	"github.com/xdars/findafactor/internal/linalg"
	"github.com/xdars/findafactor/internal/progress"
	"github.com/xdars/findafactor/internal/smooth"
	"github.com/xdars/findafactor/internal/wheel"
	"github.com/xdars/findafactor/internal/worker"
)

// batchesPerNode sizes the per-node batch range so the full node_count *
// batchesPerNode space covers the batch indices
// [0, (sqrt(N)/Radius11)*EntriesPerLap/entriesPerBatch].
func batchesPerNode(n *big.Int, entriesPerBatch uint64, nodeCount int) uint64 {
	root := bigint.Isqrt(n)
	idx := new(big.Int).Div(root, big.NewInt(wheel.Radius11))
	idx.Mul(idx, big.NewInt(wheel.EntriesPerLap))
	totalBatches := idx.Uint64()/entriesPerBatch + 1
	perNode := (totalBatches + uint64(nodeCount) - 1) / uint64(nodeCount)
	if perNode == 0 {
		perNode = 1
	}
	return perNode
}

// runBruteForce drives ENUMERATE_ROUND with no smooth builder: one pass
// across the node's batch range, consolidated via worker.Run, then
// EXHAUST (return "1") if nothing surfaced.
func runBruteForce(ctx context.Context, n *big.Int, gen *wheel.Generator, entriesPerBatch uint64, p config.Params, reporter *progress.Reporter) (string, error) {
	perNode := batchesPerNode(n, entriesPerBatch, p.NodeCount)
	enum := enumerator.New(uint64(p.NodeID), uint64(p.NodeCount), perNode)

	var done atomic.Bool
	cfg := worker.Config{N: n, Gears: gen, EntriesPerBatch: entriesPerBatch}

	reporter.Note(func() { log.Printf("findafactor: brute-force round still searching") })
	result := worker.Run(ctx, cfg, enum, p.ThreadCount, &done)

	if result.Cmp(one) != 0 {
		return result.String(), nil
	}
	return "1", nil
}

// runSmoothExhaust drives repeated ENUMERATE_ROUND -> BUILD_SMOOTH ->
// LINALG passes until a factor surfaces or the enumerator exhausts its
// range (EXHAUST).
func runSmoothExhaust(ctx context.Context, n *big.Int, gen *wheel.Generator, entriesPerBatch uint64, factorBase []*big.Int, p config.Params, reporter *progress.Reporter) (string, error) {
	perNode := batchesPerNode(n, entriesPerBatch, p.NodeCount)
	enum := enumerator.New(uint64(p.NodeID), uint64(p.NodeCount), perNode)

	threshold := bigint.Isqrt(n)
	if p.Method == config.SmoothExhaustGaussian {
		threshold = n
	}
	table := smooth.NewTable()
	builder := smooth.NewBuilder(factorBase, threshold, table, smooth.SeededRand)

	semiSmoothBound := int(float64(entriesPerBatch) * p.BatchSizeMultiplier)
	if semiSmoothBound < 1 {
		semiSmoothBound = 1
	}

	for !enum.Done() {
		var done atomic.Bool
		cfg := worker.Config{
			N:               n,
			Gears:           gen,
			EntriesPerBatch: entriesPerBatch,
			Builder:         builder,
			SemiSmoothBound: semiSmoothBound,
		}

		reporter.Note(func() { log.Printf("findafactor: smooth-exhaust round still searching, table has %d rows", table.Len()) })
		result := worker.Run(ctx, cfg, enum, p.ThreadCount, &done)
		if result.Cmp(one) != 0 {
			return result.String(), nil
		}

		var factor *big.Int
		if p.Method == config.SmoothExhaustGaussian {
			factor = linalg.FullGaussian(ctx, table, n, len(factorBase))
		} else {
			factor = linalg.DuplicateRowScan(table, n, p.GaussianEliminationOffset)
		}
		if factor != nil {
			return factor.String(), nil
		}
	}

	return "1", nil
}

// runPrimeProver implements PRIME_PROVER as a policy wrapper: run
// BRUTE_FORCE over the node's whole batch range first; if that exhausts
// without a factor, run SMOOTH_EXHAUST_GAUSSIAN over the same range again
// with a fresh enumerator and an empty smooth-number table.
func runPrimeProver(ctx context.Context, n *big.Int, gen *wheel.Generator, entriesPerBatch uint64, factorBase []*big.Int, p config.Params, reporter *progress.Reporter) (string, error) {
	brute := p
	brute.Method = config.BruteForce
	if d, err := runBruteForce(ctx, n, gen, entriesPerBatch, brute, reporter); err != nil || d != "1" {
		return d, err
	}

	exhaust := p
	exhaust.Method = config.SmoothExhaustGaussian
	return runSmoothExhaust(ctx, n, gen, entriesPerBatch, factorBase, exhaust, reporter)
}
