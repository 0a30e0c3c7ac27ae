package main

import (
	"context"
	"log"
	"math/big"
	"os"

	"github.com/xdars/findafactor/internal/config"
	"github.com/xdars/findafactor/internal/engine"
)

func main() {
	p, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("findafactor: %v", err)
	}

	result, err := engine.Run(context.Background(), p)
	if err != nil {
		log.Fatalf("findafactor: %v", err)
	}

	verify(p.N, result)
	os.Stdout.WriteString(result + "\n")
}

// verify checks d*(N/d) == N before printing. A failure here means the
// engine handed back something inconsistent with its own contract, not
// something to print and move on from.
func verify(nDecimal, dDecimal string) {
	n, _ := new(big.Int).SetString(nDecimal, 10)
	d, ok := new(big.Int).SetString(dDecimal, 10)
	if !ok {
		log.Fatalf("findafactor: engine returned non-integer result %q", dDecimal)
	}
	if d.Sign() == 0 {
		log.Fatalf("findafactor: engine returned zero divisor")
	}

	quotient, remainder := new(big.Int).QuoRem(n, d, new(big.Int))
	if remainder.Sign() != 0 {
		log.Fatalf("findafactor: result %s does not divide N", dDecimal)
	}
	if product := new(big.Int).Mul(d, quotient); product.Cmp(n) != 0 {
		log.Fatalf("findafactor: result %s fails d*(N/d)=N", dDecimal)
	}
}
