package engine

import (
	"context"
	"math/big"
	"testing"

	"github.com/xdars/findafactor/internal/config"
)

// testParams returns config.Defaults() with ThreadCount resolved, since
// Defaults() alone leaves it at 0 ("auto-detect"), a resolution Load
// normally performs but bare Defaults() does not.
func testParams() config.Params {
	p := config.Defaults()
	p.ThreadCount = 2
	return p
}

func runParams(p config.Params) (string, error) {
	return Run(context.Background(), p)
}

func TestRunPrimeBruteForceReturnsOne(t *testing.T) {
	p := testParams()
	p.N = "17"
	p.Method = config.BruteForce

	got, err := runParams(p)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got != "1" {
		t.Errorf("Run(N=17, BRUTE_FORCE) = %q, want %q", got, "1")
	}
}

func TestRunPerfectSquareShortCircuits(t *testing.T) {
	root := big.NewInt(1000003)
	n := new(big.Int).Mul(root, root)

	p := testParams()
	p.N = n.String()

	got, err := runParams(p)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got != root.String() {
		t.Errorf("Run(N=1000003^2) = %q, want %q", got, root.String())
	}
}

func TestRunCompositeReturnsProperDivisor(t *testing.T) {
	n := big.NewInt(1000)

	p := testParams()
	p.N = n.String()

	got, err := runParams(p)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	d, ok := new(big.Int).SetString(got, 10)
	if !ok {
		t.Fatalf("Run returned non-integer %q", got)
	}
	if d.Cmp(big.NewInt(1)) == 0 {
		t.Skip("engine exhausted without finding a factor for N=1000; acceptable per spec but not exercising the divisor path")
	}
	if new(big.Int).Mod(n, d).Sign() != 0 {
		t.Errorf("Run(N=1000) = %v does not divide 1000", d)
	}
}

func TestRunRejectsNonPositiveInput(t *testing.T) {
	cases := []string{"-5", "abc", ""}
	for _, n := range cases {
		p := testParams()
		p.N = n
		if _, err := runParams(p); err == nil {
			t.Errorf("Run(N=%q) returned no error, want an Input-class failure", n)
		}
	}
}

func TestRunNIsOne(t *testing.T) {
	p := testParams()
	p.N = "1"
	got, err := runParams(p)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got != "1" {
		t.Errorf("Run(N=1) = %q, want %q", got, "1")
	}
}

func TestIsQuadraticResidue(t *testing.T) {
	n := big.NewInt(10) // 10 mod 3 = 1, a perfect square
	if !isQuadraticResidue(n, big.NewInt(3)) {
		t.Errorf("isQuadraticResidue(10, 3) = false, want true")
	}
	if isQuadraticResidue(n, big.NewInt(7)) { // 10 mod 7 = 3, not a perfect square
		t.Errorf("isQuadraticResidue(10, 7) = true, want false")
	}
}
