package sieve

import (
	"testing"
)

func TestPrimesSmall(t *testing.T) {
	cases := []struct {
		bound int64
		want  []int64
	}{
		{1, nil},
		{2, []int64{2}},
		{10, []int64{2, 3, 5, 7}},
		{30, []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}},
	}

	for i := range cases {
		got := Primes(cases[i].bound)
		if len(got) != len(cases[i].want) {
			t.Fatalf("Primes(%d) = %v, want %v", cases[i].bound, got, cases[i].want)
		}
		for j := range got {
			if got[j] != cases[i].want[j] {
				t.Errorf("Primes(%d)[%d] = %d, want %d", cases[i].bound, j, got[j], cases[i].want[j])
			}
		}
	}
}

func TestPrimesAcrossSegmentBoundary(t *testing.T) {
	got := Primes(segmentSize + 100)

	seen := make(map[int64]bool)
	for _, p := range got {
		if seen[p] {
			t.Fatalf("Primes returned duplicate %d", p)
		}
		seen[p] = true
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("Primes not strictly ascending at index %d: %d <= %d", i, got[i], got[i-1])
		}
	}
	if !seen[2] || !seen[segmentSize+97] {
		t.Errorf("expected sieve to include boundary-adjacent primes")
	}
}
