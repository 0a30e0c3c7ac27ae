package linalg

import (
	"context"
	"math/big"
	"testing"

	"github.com/xdars/findafactor/internal/smooth"
)

func TestCheck(t *testing.T) {
	// N = 35 = 5*7. s=4=2^2: x=4, y=modexp(4,17,35)=9, x!=y, and
	// gcd(35,|4-9|)=5, a proper divisor.
	n := big.NewInt(35)
	got := Check(big.NewInt(4), n)
	if got == nil {
		t.Fatalf("Check(4, 35) = nil, want a proper divisor")
	}
	if got.Cmp(big.NewInt(1)) <= 0 || got.Cmp(n) >= 0 {
		t.Errorf("Check(4, 35) = %v, want a proper divisor of 35", got)
	}
	if new(big.Int).Mod(n, got).Sign() != 0 {
		t.Errorf("Check(4, 35) = %v does not divide 35", got)
	}
}

func TestCheckTrivialCongruenceReturnsNil(t *testing.T) {
	n := big.NewInt(35)
	// s=1: x=1, y=modexp(1, 17, 35)=1, x==y, no information.
	if got := Check(big.NewInt(1), n); got != nil {
		t.Errorf("Check(1, 35) = %v, want nil", got)
	}
}

func TestDuplicateRowScanFindsFactor(t *testing.T) {
	n := big.NewInt(35)
	table := smooth.NewTable()
	// Two rows with identical parity vectors: their product is 2*2=4,
	// and Check(4, 35) yields the proper divisor 5 (see TestCheck).
	table.Append(smooth.Record{K: big.NewInt(2), V: []bool{true, false}})
	table.Append(smooth.Record{K: big.NewInt(2), V: []bool{true, false}})
	table.Append(smooth.Record{K: big.NewInt(3), V: []bool{false, true}})

	got := DuplicateRowScan(table, n, 0)
	if got == nil {
		t.Fatalf("DuplicateRowScan found no factor, want a proper divisor of 35")
	}
	if new(big.Int).Mod(n, got).Sign() != 0 {
		t.Errorf("DuplicateRowScan = %v does not divide 35", got)
	}
}

func TestDuplicateRowScanRespectsOffset(t *testing.T) {
	n := big.NewInt(35)
	table := smooth.NewTable()
	table.Append(smooth.Record{K: big.NewInt(2), V: []bool{true, false}})
	table.Append(smooth.Record{K: big.NewInt(2), V: []bool{true, false}})

	// offset=2 skips both matching rows entirely.
	got := DuplicateRowScan(table, n, 2)
	if got != nil {
		t.Errorf("DuplicateRowScan with offset past all rows = %v, want nil", got)
	}
}

func TestFullGaussianAllZeroRowYieldsFactor(t *testing.T) {
	n := big.NewInt(35)
	table := smooth.NewTable()
	// One factor-base prime (columnCount=1): eliminating column 0 XORs
	// pivot row 0 into row 1, leaving row 1's vector all-zero with
	// K=1*2=2. Check(2, 35) yields the proper divisor 5 (see TestCheck).
	table.Append(smooth.Record{K: big.NewInt(1), V: []bool{true}})
	table.Append(smooth.Record{K: big.NewInt(2), V: []bool{true}})

	got := FullGaussian(context.Background(), table, n, 1)
	if got == nil {
		t.Fatalf("FullGaussian found no factor")
	}
	if new(big.Int).Mod(n, got).Sign() != 0 {
		t.Errorf("FullGaussian = %v does not divide 35", got)
	}
}
