package router

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hxuan190/split-engine/internal/domain"
	"github.com/hxuan190/split-engine/internal/metrics"
)

// Splitter runs the full discretized optimal-split pipeline:
// quantize -> quote matrix -> knapsack DP -> backtrack. Everything is
// recomputed per call against the reserve snapshots it is handed; nothing is
// cached across invocations.
type Splitter struct {
	quote QuoteFunc
}

func NewSplitter(quote QuoteFunc) *Splitter {
	return &Splitter{quote: quote}
}

// FindOptimalSplit allocates amount across the given venues in steps quanta,
// maximizing aggregate output. Cost is O(V*steps^2) and strictly bounded by
// the caller's choice of steps; a caller wanting a latency cap simply caps
// steps.
func (s *Splitter) FindOptimalSplit(venues []domain.PairVenue, amount uint64, steps uint8) (*domain.SplitQuote, error) {
	if len(venues) == 0 {
		return nil, ErrNoRoute
	}

	levels, err := Quantize(amount, steps)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	matrix := BuildValueMatrix(venues, levels, s.quote)
	metrics.MatrixBuildDuration.Observe(time.Since(start).Seconds())

	start = time.Now()
	dist, err := FindDistribution(matrix, steps)
	if err != nil {
		return nil, err
	}
	metrics.OptimizeDuration.Observe(time.Since(start).Seconds())

	quanta, err := dist.Reconstruct()
	if err != nil {
		log.Error().Err(err).
			Int("venues", len(venues)).
			Uint8("steps", steps).
			Msg("[splitter] backtrack produced inconsistent allocation")
		return nil, err
	}

	quote := &domain.SplitQuote{
		Steps:          steps,
		TotalAmountIn:  amount,
		TotalAmountOut: dist.Value,
		Quanta:         quanta,
	}

	// Map quanta back to token amounts through the same cumulative levels the
	// matrix was quoted at. Independent floors can undershoot the total by a
	// few base units; the largest leg absorbs the remainder so leg inputs sum
	// to amount exactly.
	var assigned uint64
	largest := -1
	for v, q := range quanta {
		if q == 0 {
			continue
		}
		amountIn := levels[int(q)-1]
		assigned += amountIn
		quote.Legs = append(quote.Legs, domain.SplitLeg{
			Venue:     venues[v].Venue,
			AToB:      venues[v].AToB,
			Quanta:    q,
			AmountIn:  amountIn,
			AmountOut: matrix.Value(v, int(q)).Uint64(),
		})
		if largest < 0 || amountIn > quote.Legs[largest].AmountIn {
			largest = len(quote.Legs) - 1
		}
	}
	if largest >= 0 && assigned < amount {
		quote.Legs[largest].AmountIn += amount - assigned
	}

	metrics.SplitLegs.Observe(float64(len(quote.Legs)))
	return quote, nil
}
