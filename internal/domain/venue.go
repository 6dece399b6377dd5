package domain

import (
	"github.com/gagliardetto/solana-go"
)

type VenueRegistry map[solana.PublicKey]*Venue

type VenueType uint8

const (
	VenueTypeConstantProduct VenueType = iota
	VenueTypeStableCurve
)

func (t VenueType) String() string {
	switch t {
	case VenueTypeConstantProduct:
		return "ConstantProduct"
	case VenueTypeStableCurve:
		return "StableCurve"
	default:
		return "UNKNOWN"
	}
}

// Venue is one liquidity source the splitter can allocate trade volume to.
// Reserves are a point-in-time snapshot; the splitter quotes every
// discretization level against this snapshot without mutating it.
type Venue struct {
	Address        solana.PublicKey `json:"address"`
	Type           VenueType        `json:"type"`
	ProgramID      solana.PublicKey `json:"programId"`
	Nonce          uint8            `json:"nonce"`
	TokenMintA     solana.PublicKey `json:"tokenMintA"`
	TokenMintB     solana.PublicKey `json:"tokenMintB"`
	TokenVaultA    solana.PublicKey `json:"tokenVaultA"`
	TokenVaultB    solana.PublicKey `json:"tokenVaultB"`
	PoolMint       solana.PublicKey `json:"poolMint"`
	PoolFeeAccount solana.PublicKey `json:"poolFeeAccount"`
	ReserveA       uint64           `json:"reserveA"`
	ReserveB       uint64           `json:"reserveB"`
	// FeeRate is the trade fee in parts per million (3000 = 0.3%).
	FeeRate         uint32 `json:"feeRate"`
	Active          bool   `json:"active"`
	LastUpdatedSlot uint64 `json:"lastUpdatedSlot"`
}

// SupportsPair reports whether the venue trades the given mint pair, and in
// which direction. aToB is true when inputMint is the venue's mint A.
func (v *Venue) SupportsPair(inputMint, outputMint solana.PublicKey) (aToB bool, ok bool) {
	switch {
	case v.TokenMintA.Equals(inputMint) && v.TokenMintB.Equals(outputMint):
		return true, true
	case v.TokenMintB.Equals(inputMint) && v.TokenMintA.Equals(outputMint):
		return false, true
	default:
		return false, false
	}
}

// Reserves returns the (source, destination) reserve snapshot for a trade
// direction.
func (v *Venue) Reserves(aToB bool) (reserveIn, reserveOut uint64) {
	if aToB {
		return v.ReserveA, v.ReserveB
	}
	return v.ReserveB, v.ReserveA
}

// PairVenue is a venue oriented for a specific trade direction. The splitter
// operates on an ordered slice of these; the order is stable within one
// request and only affects tie-break bookkeeping, never the optimal value.
type PairVenue struct {
	Venue *Venue
	AToB  bool
}
