// Package bigint collects the handful of arbitrary-precision operations the
// factoring engine needs beyond what math/big gives for free: integer
// square root, integer log2, gcd, and modular exponentiation.
package bigint

import "math/big"

var one = big.NewInt(1)

// Isqrt returns floor(sqrt(n)) via binary search over [1, n/2], exact for
// any non-negative n. Mirrors the original engine's bisection rather than
// math/big's Sqrt so perfect-square detection is a single extra
// multiply-and-compare at the caller.
func Isqrt(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		return new(big.Int)
	}
	if n.Cmp(one) == 0 {
		return big.NewInt(1)
	}

	start := big.NewInt(1)
	end := new(big.Int).Rsh(n, 1)
	ans := new(big.Int)
	mid := new(big.Int)
	sqr := new(big.Int)

	for start.Cmp(end) <= 0 {
		mid.Add(start, end)
		mid.Rsh(mid, 1)
		sqr.Mul(mid, mid)

		switch sqr.Cmp(n) {
		case 0:
			return new(big.Int).Set(mid)
		case -1:
			ans.Set(mid)
			start.Add(mid, one)
		default:
			end.Sub(mid, one)
		}
	}

	return ans
}

// IsPerfectSquare reports whether n == r*r for the r it also returns.
func IsPerfectSquare(n *big.Int) (*big.Int, bool) {
	r := Isqrt(n)
	sqr := new(big.Int).Mul(r, r)
	return r, sqr.Cmp(n) == 0
}

// Ilog2 returns the number of right-shifts until n becomes 0, minus one,
// i.e. floor(log2(n)) for n >= 1.
func Ilog2(n *big.Int) uint64 {
	if n.Sign() <= 0 {
		return 0
	}
	t := new(big.Int).Set(n)
	var pow uint64
	for t.Sign() > 0 {
		t.Rsh(t, 1)
		if t.Sign() > 0 {
			pow++
		}
	}
	return pow
}

// Gcd is the Euclidean algorithm, exposed directly rather than through
// math/big.Int.GCD so call sites that only want the divisor don't have to
// juggle the Bezout-coefficient output parameters.
func Gcd(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	for y.Sign() != 0 {
		x, y = y, new(big.Int).Mod(x, y)
	}
	return x
}

// ModExp computes b^e mod m by square-and-multiply. m == 0 panics rather
// than silently returning garbage; callers that reach the congruence
// driver never pass a zero modulus.
func ModExp(b, e, m *big.Int) *big.Int {
	if m.Sign() == 0 {
		panic("bigint: ModExp called with zero modulus")
	}

	result := big.NewInt(1)
	base := new(big.Int).Mod(b, m)
	exp := new(big.Int).Set(e)

	for exp.Sign() > 0 {
		if exp.Bit(0) == 1 {
			result.Mul(result, base)
			result.Mod(result, m)
		}
		base.Mul(base, base)
		base.Mod(base, m)
		exp.Rsh(exp, 1)
	}

	return result
}

// Half returns n/2 rounded down, used throughout the driver for the
// Euler-criterion exponent target/2.
func Half(n *big.Int) *big.Int {
	return new(big.Int).Rsh(n, 1)
}
