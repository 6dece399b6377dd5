package router

import (
	"errors"
	"math/big"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/hxuan190/split-engine/internal/domain"
)

// stubQuotes maps venue address -> cumulative input level -> output. Levels
// absent from a venue's table quote as failures, which the matrix builder
// turns into sentinel cells.
type stubQuotes map[solana.PublicKey]map[uint64]uint64

func (s stubQuotes) quote(venue *domain.Venue, amountIn uint64, aToB bool) (uint64, error) {
	table, ok := s[venue.Address]
	if !ok {
		return 0, ErrInsufficientLiquidity
	}
	out, ok := table[amountIn]
	if !ok {
		return 0, ErrInsufficientLiquidity
	}
	return out, nil
}

func pairVenues(venues ...*domain.Venue) []domain.PairVenue {
	out := make([]domain.PairVenue, len(venues))
	for i, v := range venues {
		out[i] = domain.PairVenue{Venue: v, AToB: true}
	}
	return out
}

func TestFindOptimalSplitDominantVenueTakesAll(t *testing.T) {
	v0 := createMockVenue(0, 0, 0)
	v1 := createMockVenue(0, 0, 0)
	quotes := stubQuotes{
		v0.Address: {25: 10, 50: 20, 75: 30, 100: 40},
		v1.Address: {25: 9, 50: 18, 75: 27, 100: 36},
	}

	splitter := NewSplitter(quotes.quote)
	quote, err := splitter.FindOptimalSplit(pairVenues(v0, v1), 100, 4)
	if err != nil {
		t.Fatalf("FindOptimalSplit returned error: %v", err)
	}

	if quote.TotalAmountOut.Cmp(big.NewInt(40)) != 0 {
		t.Errorf("expected total out 40, got %s", quote.TotalAmountOut)
	}
	if len(quote.Legs) != 1 {
		t.Fatalf("expected a single leg, got %d", len(quote.Legs))
	}
	leg := quote.Legs[0]
	if !leg.Venue.Address.Equals(v0.Address) {
		t.Errorf("expected the dominant venue to win, got %s", leg.Venue.Address)
	}
	if leg.AmountIn != 100 || leg.AmountOut != 40 || leg.Quanta != 4 {
		t.Errorf("unexpected leg: in=%d out=%d quanta=%d", leg.AmountIn, leg.AmountOut, leg.Quanta)
	}
}

func TestFindOptimalSplitConcaveCurvesSplit(t *testing.T) {
	v0 := createMockVenue(0, 0, 0)
	v1 := createMockVenue(0, 0, 0)
	quotes := stubQuotes{
		v0.Address: {25: 5, 50: 9, 75: 12, 100: 14},
		v1.Address: {25: 4, 50: 7, 75: 9, 100: 10},
	}

	splitter := NewSplitter(quotes.quote)
	quote, err := splitter.FindOptimalSplit(pairVenues(v0, v1), 100, 4)
	if err != nil {
		t.Fatalf("FindOptimalSplit returned error: %v", err)
	}

	if quote.TotalAmountOut.Cmp(big.NewInt(16)) != 0 {
		t.Errorf("expected total out 16, got %s", quote.TotalAmountOut)
	}
	if len(quote.Legs) != 2 {
		t.Fatalf("expected two legs, got %d", len(quote.Legs))
	}
	// Ascending-scan tie-break settles on 12+4, so venue 0 carries three
	// quanta (75 in) and venue 1 one (25 in).
	var sum uint64
	for _, leg := range quote.Legs {
		sum += leg.AmountIn
		switch {
		case leg.Venue.Address.Equals(v0.Address):
			if leg.Quanta != 3 || leg.AmountIn != 75 || leg.AmountOut != 12 {
				t.Errorf("venue 0 leg: quanta=%d in=%d out=%d", leg.Quanta, leg.AmountIn, leg.AmountOut)
			}
		case leg.Venue.Address.Equals(v1.Address):
			if leg.Quanta != 1 || leg.AmountIn != 25 || leg.AmountOut != 4 {
				t.Errorf("venue 1 leg: quanta=%d in=%d out=%d", leg.Quanta, leg.AmountIn, leg.AmountOut)
			}
		}
	}
	if sum != 100 {
		t.Errorf("leg inputs must sum to the trade amount: got %d", sum)
	}
}

func TestFindOptimalSplitLegInputsSumToAmount(t *testing.T) {
	// 101 over 2 steps quantizes to levels {50, 101}. A 1/1 split assigns
	// 50 + 50; the largest leg absorbs the missing base unit.
	v0 := createMockVenue(0, 0, 0)
	v1 := createMockVenue(0, 0, 0)
	quotes := stubQuotes{
		v0.Address: {50: 10, 101: 11},
		v1.Address: {50: 10, 101: 11},
	}

	splitter := NewSplitter(quotes.quote)
	quote, err := splitter.FindOptimalSplit(pairVenues(v0, v1), 101, 2)
	if err != nil {
		t.Fatalf("FindOptimalSplit returned error: %v", err)
	}

	if len(quote.Legs) != 2 {
		t.Fatalf("expected two legs, got %d", len(quote.Legs))
	}
	var sum uint64
	for _, leg := range quote.Legs {
		sum += leg.AmountIn
	}
	if sum != 101 {
		t.Errorf("leg inputs must sum to the trade amount: got %d, want 101", sum)
	}
}

func TestFindOptimalSplitIgnoresDeadVenue(t *testing.T) {
	v0 := createMockVenue(0, 0, 0)
	dead := createMockVenue(0, 0, 0)
	v1 := createMockVenue(0, 0, 0)
	quotes := stubQuotes{
		v0.Address: {25: 5, 50: 9, 75: 12, 100: 14},
		v1.Address: {25: 4, 50: 7, 75: 9, 100: 10},
	}

	splitter := NewSplitter(quotes.quote)
	quote, err := splitter.FindOptimalSplit(pairVenues(v0, dead, v1), 100, 4)
	if err != nil {
		t.Fatalf("FindOptimalSplit returned error: %v", err)
	}

	if quote.TotalAmountOut.Cmp(big.NewInt(16)) != 0 {
		t.Errorf("dead venue changed the optimum: got %s, want 16", quote.TotalAmountOut)
	}
	for _, leg := range quote.Legs {
		if leg.Venue.Address.Equals(dead.Address) {
			t.Error("unquotable venue received an allocation")
		}
	}
}

func TestFindOptimalSplitNoVenues(t *testing.T) {
	splitter := NewSplitter(stubQuotes{}.quote)
	if _, err := splitter.FindOptimalSplit(nil, 100, 4); !errors.Is(err, ErrNoRoute) {
		t.Errorf("expected ErrNoRoute, got %v", err)
	}
}

func TestFindOptimalSplitAllQuotesFail(t *testing.T) {
	v0 := createMockVenue(0, 0, 0)
	splitter := NewSplitter(stubQuotes{}.quote)
	_, err := splitter.FindOptimalSplit(pairVenues(v0), 100, 4)
	if !errors.Is(err, ErrNoViableRoute) {
		t.Errorf("expected ErrNoViableRoute, got %v", err)
	}
}

func TestFindOptimalSplitValueMonotoneInSteps(t *testing.T) {
	// Doubling the step count nests the cumulative levels, so every coarse
	// allocation remains expressible and the optimum can only improve.
	quoter := NewConstantProductQuoter()
	venues := pairVenues(
		createMockVenue(10_000_000_000, 10_000_000_000, 3_000),
		createMockVenue(4_000_000_000, 4_100_000_000, 2_500),
		createMockVenue(900_000_000, 1_000_000_000, 1_000),
	)
	splitter := NewSplitter(quoter.Quote)

	prev := new(big.Int)
	for _, steps := range []uint8{1, 2, 4, 8, 16} {
		quote, err := splitter.FindOptimalSplit(venues, 500_000_000, steps)
		if err != nil {
			t.Fatalf("steps=%d: %v", steps, err)
		}
		if quote.TotalAmountOut.Cmp(prev) < 0 {
			t.Fatalf("optimum decreased at steps=%d: %s < %s", steps, quote.TotalAmountOut, prev)
		}
		prev = quote.TotalAmountOut
	}
}

func BenchmarkFindOptimalSplit(b *testing.B) {
	quoter := NewConstantProductQuoter()
	venues := make([]domain.PairVenue, 8)
	for i := range venues {
		venues[i] = domain.PairVenue{
			Venue: createMockVenue(uint64(i+1)*1_000_000_000, uint64(i+2)*900_000_000, 3_000),
			AToB:  true,
		}
	}
	splitter := NewSplitter(quoter.Quote)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := splitter.FindOptimalSplit(venues, 1_000_000_000, 32); err != nil {
			b.Fatal(err)
		}
	}
}
