package market

import (
	"github.com/hxuan190/split-engine/internal/domain"
	"github.com/hxuan190/split-engine/internal/services/router"
)

// Registry dispatches curve quoting by venue type. Venue types without a
// registered quoter fail the quote, which the matrix builder absorbs as a
// sentinel cell instead of an error.
type Registry struct {
	quoters []router.VenueQuoter
}

func NewRegistry() *Registry {
	return &Registry{quoters: make([]router.VenueQuoter, 0)}
}

// NewDefaultRegistry returns a registry with the constant-product quoter
// installed.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterQuoter(router.NewConstantProductQuoter())
	return r
}

func (r *Registry) RegisterQuoter(quoter router.VenueQuoter) {
	r.quoters = append(r.quoters, quoter)
}

// Quote satisfies router.QuoteFunc.
func (r *Registry) Quote(venue *domain.Venue, amountIn uint64, aToB bool) (uint64, error) {
	for _, quoter := range r.quoters {
		if quoter.SupportsVenueType(venue.Type) {
			return quoter.Quote(venue, amountIn, aToB)
		}
	}
	return 0, router.ErrUnsupportedCurve
}
