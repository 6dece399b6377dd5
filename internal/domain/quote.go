package domain

import (
	"math/big"

	"github.com/gagliardetto/solana-go"
)

// SplitLeg is the allocation given to a single venue: Quanta discretization
// steps, mapped back to a concrete input amount through the same cumulative
// levels the optimizer quoted against.
type SplitLeg struct {
	Venue     *Venue
	AToB      bool
	Quanta    uint8
	AmountIn  uint64
	AmountOut uint64
}

// SplitQuote is the result of one optimal-split computation. Quanta is the
// full venue-indexed allocation (zeros included) in the order the venues were
// presented; Legs keeps only the venues that received volume.
type SplitQuote struct {
	InputMint  solana.PublicKey
	OutputMint solana.PublicKey
	Steps      uint8
	// TotalAmountOut is the DP-optimal aggregate output. The caller compares
	// it against its own minimum-acceptable-output guard; nothing is enforced
	// here.
	TotalAmountIn  uint64
	TotalAmountOut *big.Int
	Quanta         []uint8
	Legs           []SplitLeg
}

// LegCount returns the number of venues with a nonzero allocation.
func (q *SplitQuote) LegCount() int {
	return len(q.Legs)
}
