package market

import (
	"errors"
	"sort"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/hxuan190/split-engine/internal/domain"
	"github.com/hxuan190/split-engine/internal/services/router"
)

var (
	testMintA = solana.NewWallet().PublicKey()
	testMintB = solana.NewWallet().PublicKey()
	testMintC = solana.NewWallet().PublicKey()
)

func newTestService() *Service {
	return &Service{
		venues: make(domain.VenueRegistry),
		dirty:  make(map[solana.PublicKey]struct{}),
	}
}

func newTestVenue(mintA, mintB solana.PublicKey) *domain.Venue {
	return &domain.Venue{
		Address:    solana.NewWallet().PublicKey(),
		Type:       domain.VenueTypeConstantProduct,
		TokenMintA: mintA,
		TokenMintB: mintB,
		ReserveA:   1_000_000_000,
		ReserveB:   1_000_000_000,
		FeeRate:    3_000,
		Active:     true,
	}
}

func TestUpsertAndGetVenue(t *testing.T) {
	svc := newTestService()
	venue := newTestVenue(testMintA, testMintB)

	svc.UpsertVenue(venue)
	if svc.VenueCount() != 1 {
		t.Fatalf("expected 1 venue, got %d", svc.VenueCount())
	}

	got, ok := svc.GetVenue(venue.Address)
	if !ok {
		t.Fatal("venue not found after upsert")
	}
	if !got.Address.Equals(venue.Address) {
		t.Errorf("expected %s, got %s", venue.Address, got.Address)
	}

	// Upserting the same address replaces the snapshot, not adds.
	replacement := *venue
	replacement.ReserveA = 5
	svc.UpsertVenue(&replacement)
	if svc.VenueCount() != 1 {
		t.Errorf("upsert must not duplicate, got %d venues", svc.VenueCount())
	}
	got, _ = svc.GetVenue(venue.Address)
	if got.ReserveA != 5 {
		t.Errorf("expected replaced snapshot, reserveA=%d", got.ReserveA)
	}
}

func TestUpdateReserves(t *testing.T) {
	svc := newTestService()
	venue := newTestVenue(testMintA, testMintB)
	svc.UpsertVenue(venue)

	if !svc.UpdateReserves(venue.Address, 7, 11, 42) {
		t.Fatal("expected update to succeed for known venue")
	}
	got, _ := svc.GetVenue(venue.Address)
	if got.ReserveA != 7 || got.ReserveB != 11 || got.LastUpdatedSlot != 42 {
		t.Errorf("reserves not applied: %+v", got)
	}

	if svc.UpdateReserves(solana.NewWallet().PublicKey(), 1, 1, 1) {
		t.Error("expected update of unknown venue to report false")
	}
}

func TestVenuesForPairFiltersAndOrients(t *testing.T) {
	svc := newTestService()

	forward := newTestVenue(testMintA, testMintB)
	reversed := newTestVenue(testMintB, testMintA)
	otherPair := newTestVenue(testMintA, testMintC)
	inactive := newTestVenue(testMintA, testMintB)
	inactive.Active = false

	svc.UpsertVenue(forward)
	svc.UpsertVenue(reversed)
	svc.UpsertVenue(otherPair)
	svc.UpsertVenue(inactive)

	pairs := svc.VenuesForPair(testMintA, testMintB)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 venues for the pair, got %d", len(pairs))
	}
	for _, p := range pairs {
		switch {
		case p.Venue.Address.Equals(forward.Address):
			if !p.AToB {
				t.Error("venue listing the pair forward must quote A to B")
			}
		case p.Venue.Address.Equals(reversed.Address):
			if p.AToB {
				t.Error("venue listing the pair reversed must quote B to A")
			}
		default:
			t.Errorf("unexpected venue %s in pair result", p.Venue.Address)
		}
	}
}

func TestVenuesForPairDeterministicOrder(t *testing.T) {
	svc := newTestService()
	for i := 0; i < 6; i++ {
		svc.UpsertVenue(newTestVenue(testMintA, testMintB))
	}

	pairs := svc.VenuesForPair(testMintA, testMintB)
	if !sort.SliceIsSorted(pairs, func(i, j int) bool {
		return pairs[i].Venue.Address.String() < pairs[j].Venue.Address.String()
	}) {
		t.Error("pair venues must be ordered by address")
	}

	again := svc.VenuesForPair(testMintA, testMintB)
	for i := range pairs {
		if !pairs[i].Venue.Address.Equals(again[i].Venue.Address) {
			t.Fatalf("order not stable across calls at index %d", i)
		}
	}
}

func TestDeactivateVenueRemovesFromRouting(t *testing.T) {
	svc := newTestService()
	venue := newTestVenue(testMintA, testMintB)
	svc.UpsertVenue(venue)

	if !svc.DeactivateVenue(venue.Address) {
		t.Fatal("expected deactivation of known venue to succeed")
	}
	if pairs := svc.VenuesForPair(testMintA, testMintB); len(pairs) != 0 {
		t.Errorf("deactivated venue still routed: %d venues", len(pairs))
	}

	// The venue is retained for the admin surface.
	if _, ok := svc.GetVenue(venue.Address); !ok {
		t.Error("deactivated venue must remain known")
	}
	if svc.DeactivateVenue(solana.NewWallet().PublicKey()) {
		t.Error("expected deactivation of unknown venue to report false")
	}
}

func TestRegistryDispatchesByVenueType(t *testing.T) {
	registry := NewDefaultRegistry()
	venue := newTestVenue(testMintA, testMintB)

	out, err := registry.Quote(venue, 1_000_000, true)
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if out == 0 {
		t.Error("expected a non-zero quote")
	}

	venue.Type = domain.VenueTypeStableCurve
	if _, err := registry.Quote(venue, 1_000_000, true); !errors.Is(err, router.ErrUnsupportedCurve) {
		t.Errorf("expected ErrUnsupportedCurve, got %v", err)
	}
}
