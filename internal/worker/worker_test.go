package worker

import (
	"context"
	"math/big"
	"sync/atomic"
	"testing"

	"github.com/xdars/findafactor/internal/enumerator"
	"github.com/xdars/findafactor/internal/wheel"
)

func TestRunBruteForceFindsFactor(t *testing.T) {
	// Factors chosen strictly above the gear level (2, 3, 5, 7, 11) so the
	// wheel-filtered candidate stream actually visits them; trial division
	// by the gear primes themselves is a different stage's job.
	cases := []struct {
		n    int64
		want []int64 // any of these is acceptable
	}{
		{221, []int64{13, 17}},
		{247, []int64{13, 19}},
	}

	for i := range cases {
		n := big.NewInt(cases[i].n)
		gen := wheel.NewGenerator([]int64{2, 3, 5, 7, 11}, n)
		// A batch size of 1 keeps the early wheel indices (where 13, 17,
		// 19 live) each in their own batch, so next_batch()'s always-skip
		// of batch 0 (which only ever holds the trivial candidate 1)
		// never costs us the batch a target prime lives in.
		enum := enumerator.New(0, 1, 20)
		var done atomic.Bool

		cfg := Config{N: n, Gears: gen, EntriesPerBatch: 1}
		got := Run(context.Background(), cfg, enum, 2, &done)

		ok := false
		for _, w := range cases[i].want {
			if got.Cmp(big.NewInt(w)) == 0 {
				ok = true
				break
			}
		}
		if !ok {
			t.Errorf("Run(N=%d) = %v, want one of %v", cases[i].n, got, cases[i].want)
		}
	}
}

func TestRunBruteForcePrimeReturnsOne(t *testing.T) {
	n := big.NewInt(17)
	gen := wheel.NewGenerator([]int64{2, 3, 5, 7, 11}, n)
	enum := enumerator.New(0, 1, 4)
	var done atomic.Bool

	cfg := Config{N: n, Gears: gen, EntriesPerBatch: 64}
	got := Run(context.Background(), cfg, enum, 2, &done)

	if got.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("Run(N=17) = %v, want 1", got)
	}
}

func TestIsNontrivial(t *testing.T) {
	n := big.NewInt(35)
	cases := []struct {
		v    int64
		want bool
	}{
		{1, false},
		{35, false},
		{5, true},
		{7, true},
	}
	for i := range cases {
		got := isNontrivial(big.NewInt(cases[i].v), n)
		if got != cases[i].want {
			t.Errorf("isNontrivial(%d, 35) = %v, want %v", cases[i].v, got, cases[i].want)
		}
	}
}
