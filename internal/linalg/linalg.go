// Package linalg implements the two congruence-of-squares extraction
// modes (full XOR Gaussian elimination and a cheaper duplicate-row scan)
// plus check(s), the gcd test that turns a candidate square into a
// proper divisor of N. Parallel per-column row updates use the same
// "fan out, join" shape internal/worker and internal/sieve use.
package linalg

import (
	"context"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/xdars/findafactor/internal/bigint"
	"github.com/xdars/findafactor/internal/smooth"
)

// Check tests whether s is a congruence of squares modulo N and, if so,
// returns the proper divisor it exposes. Returns nil if s yields nothing
// (the "no divisor found" case is represented here by a nil *big.Int so
// callers can't mistake it for an actual divisor of 1).
func Check(s, n *big.Int) *big.Int {
	x := new(big.Int).Mod(s, n)
	y := bigint.ModExp(s, bigint.Half(n), n)

	if x.Cmp(y) == 0 {
		return nil
	}

	diff := new(big.Int).Sub(x, y)
	if d := bigint.Gcd(n, diff); isProperDivisor(d, n) {
		return d
	}

	sum := new(big.Int).Add(x, y)
	if d := bigint.Gcd(n, sum); isProperDivisor(d, n) {
		return d
	}

	return nil
}

func isProperDivisor(d, n *big.Int) bool {
	one := big.NewInt(1)
	return d.Cmp(one) > 0 && d.Cmp(n) < 0
}

// FullGaussian runs the "Full Gaussian (XOR elimination)" mode over the
// table's current rows. columnCount is the factor-base size (the
// pivot-column count). Row updates within one column are data-parallel
// (no row depends on another row's update in the same column) and are
// fanned out across an errgroup, joined before moving to the next
// column: elimination proceeds linearly across columns, data-parallel
// within a column.
//
// It returns the divisor, or nil if no tried row yields one. Either way
// it then drops the rows past the pivot count (the rows it tried) from
// the table, keeping the eliminated pivot rows, so a repeated failing
// round does not re-examine the same rows forever.
func FullGaussian(ctx context.Context, table *smooth.Table, n *big.Int, columnCount int) *big.Int {
	rows := table.Snapshot()
	if len(rows) == 0 {
		return nil
	}

	pivots := make([]int, columnCount)
	for i := range pivots {
		pivots[i] = -1
	}

	for col := 0; col < columnCount; col++ {
		pivotRow := -1
		for r := col; r < len(rows); r++ {
			if col < len(rows[r].V) && rows[r].V[col] {
				pivotRow = r
				break
			}
		}
		if pivotRow == -1 {
			continue
		}
		rows[col], rows[pivotRow] = rows[pivotRow], rows[col]
		pivots[col] = col

		g, _ := errgroup.WithContext(ctx)
		for r := range rows {
			r := r
			if r == col || col >= len(rows[r].V) || !rows[r].V[col] {
				continue
			}
			g.Go(func() error {
				xorRow(&rows[r], rows[col])
				return nil
			})
		}
		_ = g.Wait()
	}

	var factor *big.Int
	for _, row := range rows[min(columnCount, len(rows)):] {
		if factor != nil {
			break
		}
		if isAllZero(row.V) {
			factor = Check(row.K, n)
		}
	}

	table.Replace(rows[:min(columnCount, len(rows))])
	return factor
}

// xorRow XORs other's key/vector into row: V ^= other.V, K *= other.K,
// matching gaussianElimination's "row XOR" and the fact that the
// smooth-number table's keys are multiplicative where the vectors are
// additive (mod 2).
func xorRow(row *smooth.Record, other smooth.Record) {
	v := append([]bool(nil), row.V...)
	for i := range v {
		if i < len(other.V) {
			v[i] = v[i] != other.V[i]
		}
	}
	row.V = v
	row.K = new(big.Int).Mul(row.K, other.K)
}

func isAllZero(v []bool) bool {
	for _, b := range v {
		if b {
			return false
		}
	}
	return true
}

// DuplicateRowScan runs the "Duplicate-row scan" mode: without
// elimination, scan pairs (i < j) with i >= offset and v_i == v_j; their
// product yields a candidate square. offset is
// gaussian_elimination_row_offset, which governs only where this scan
// starts, never pivoting (pivoting only exists in FullGaussian mode).
// The first surfaced candidate stops the scan early.
func DuplicateRowScan(table *smooth.Table, n *big.Int, offset int) *big.Int {
	rows := table.Snapshot()

	var struck []int
	var factor *big.Int

scan:
	for i := offset; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if !equalVectors(rows[i].V, rows[j].V) {
				continue
			}

			s := new(big.Int).Mul(rows[i].K, rows[j].K)
			if d := Check(s, n); d != nil {
				factor = d
				struck = append(struck, i)
				break scan
			}
			struck = append(struck, i)
			break
		}
	}

	if len(struck) > 0 {
		rows = removeIndices(rows, struck)
	}
	table.Replace(rows)

	return factor
}

func equalVectors(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func removeIndices(rows []smooth.Record, indices []int) []smooth.Record {
	remove := make(map[int]bool, len(indices))
	for _, i := range indices {
		remove[i] = true
	}
	out := rows[:0]
	for i, r := range rows {
		if !remove[i] {
			out = append(out, r)
		}
	}
	return out
}
