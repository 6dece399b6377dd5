package router

import (
	"github.com/holiman/uint256"

	"github.com/hxuan190/split-engine/internal/domain"
)

// FeeBase is the denominator for venue fee rates (parts per million).
const FeeBase = 1_000_000

// QuoteFunc is the curve adapter capability the matrix builder consumes:
// pure, synchronous, never mutates venue state.
type QuoteFunc func(venue *domain.Venue, amountIn uint64, aToB bool) (uint64, error)

// VenueQuoter quotes a single venue's price-response curve.
type VenueQuoter interface {
	Quote(venue *domain.Venue, amountIn uint64, aToB bool) (uint64, error)
	SupportsVenueType(t domain.VenueType) bool
}

// ConstantProductQuoter prices x*y=k venues with the trade fee taken from the
// input side. All intermediate products are done in 256-bit space so the
// u64*u64 multiplications cannot wrap.
type ConstantProductQuoter struct{}

func NewConstantProductQuoter() *ConstantProductQuoter {
	return &ConstantProductQuoter{}
}

func (q *ConstantProductQuoter) SupportsVenueType(t domain.VenueType) bool {
	return t == domain.VenueTypeConstantProduct
}

// Quote returns the output for swapping amountIn against the venue's current
// reserve snapshot. The reserves are read, never written: every quote for the
// same venue sees the same starting state.
func (q *ConstantProductQuoter) Quote(venue *domain.Venue, amountIn uint64, aToB bool) (uint64, error) {
	if venue == nil {
		return 0, ErrInvalidVenue
	}
	if amountIn == 0 {
		return 0, ErrInvalidAmount
	}
	if venue.FeeRate >= FeeBase {
		return 0, ErrInvalidVenue
	}

	reserveIn, reserveOut := venue.Reserves(aToB)
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrInsufficientLiquidity
	}

	// inAfterFee = amountIn * (FeeBase - feeRate) / FeeBase
	inAfterFee := new(uint256.Int).Mul(
		uint256.NewInt(amountIn),
		uint256.NewInt(uint64(FeeBase-venue.FeeRate)),
	)
	inAfterFee.Div(inAfterFee, uint256.NewInt(FeeBase))

	// out = reserveOut * inAfterFee / (reserveIn + inAfterFee)
	numerator := new(uint256.Int).Mul(uint256.NewInt(reserveOut), inAfterFee)
	denominator := new(uint256.Int).Add(uint256.NewInt(reserveIn), inAfterFee)
	out := numerator.Div(numerator, denominator)

	if out.IsZero() {
		return 0, ErrInsufficientLiquidity
	}
	// The curve asymptotically approaches reserveOut but a quote that drains
	// the venue is not executable.
	if !out.IsUint64() || out.Uint64() >= reserveOut {
		return 0, ErrInsufficientLiquidity
	}
	return out.Uint64(), nil
}
