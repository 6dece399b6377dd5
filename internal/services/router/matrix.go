package router

import (
	"math/big"
	"sync"

	"github.com/hxuan190/split-engine/internal/domain"
)

// Sentinel marks an unreachable (venue, level) cell: -10^36. Quoted outputs
// are unsigned, so any allocation that touches a sentinel cell drives the
// aggregate below zero and loses every max comparison without wrapping.
var Sentinel = new(big.Int).Neg(new(big.Int).Exp(big.NewInt(10), big.NewInt(36), nil))

// ValueMatrix holds one row per venue and steps+1 columns. Column k (k >= 1)
// is the venue's quoted output for k quanta of input; column 0 is the
// zero-allocation identity. Rows are quoted against the venue's unperturbed
// starting reserves, not a sequential simulation: real depletion across legs
// is the executor's concern.
type ValueMatrix struct {
	Rows  [][]*big.Int
	Steps uint8
}

// Value returns the cell for giving venue v exactly k quanta.
func (m *ValueMatrix) Value(v int, k int) *big.Int {
	return m.Rows[v][k]
}

// BuildValueMatrix quotes every venue at every cumulative level. A quote
// failure never escapes: the cell becomes Sentinel and the optimizer's
// ordinary max comparison routes around it. Rows share no mutable state, so
// they are built concurrently.
func BuildValueMatrix(venues []domain.PairVenue, levels []uint64, quote QuoteFunc) *ValueMatrix {
	steps := len(levels)
	rows := make([][]*big.Int, len(venues))

	var wg sync.WaitGroup
	for v := range venues {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			row := make([]*big.Int, steps+1)
			row[0] = new(big.Int)
			for k := 1; k <= steps; k++ {
				out, err := quote(venues[v].Venue, levels[k-1], venues[v].AToB)
				if err != nil {
					row[k] = Sentinel
					continue
				}
				row[k] = new(big.Int).SetUint64(out)
			}
			rows[v] = row
		}(v)
	}
	wg.Wait()

	return &ValueMatrix{Rows: rows, Steps: uint8(steps)}
}
