package persistence

import (
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/hxuan190/split-engine/internal/domain"
)

func newStoredTestVenue() *domain.Venue {
	return &domain.Venue{
		Address:         solana.NewWallet().PublicKey(),
		Type:            domain.VenueTypeConstantProduct,
		ProgramID:       solana.NewWallet().PublicKey(),
		Nonce:           253,
		TokenMintA:      solana.NewWallet().PublicKey(),
		TokenMintB:      solana.NewWallet().PublicKey(),
		TokenVaultA:     solana.NewWallet().PublicKey(),
		TokenVaultB:     solana.NewWallet().PublicKey(),
		PoolMint:        solana.NewWallet().PublicKey(),
		PoolFeeAccount:  solana.NewWallet().PublicKey(),
		ReserveA:        1_000_000_000,
		ReserveB:        2_000_000_000,
		FeeRate:         3_000,
		Active:          true,
		LastUpdatedSlot: 123_456_789,
	}
}

func TestVenueStoredRoundTrip(t *testing.T) {
	original := newStoredTestVenue()

	restored, err := storedToVenue(venueToStored(original))
	if err != nil {
		t.Fatalf("storedToVenue returned error: %v", err)
	}

	if *restored != *original {
		t.Errorf("round trip changed the venue:\n got %+v\nwant %+v", restored, original)
	}
}

func TestStoredToVenueRejectsBadKeys(t *testing.T) {
	stored := venueToStored(newStoredTestVenue())
	stored.TokenVaultA = "not-a-base58-key"

	if _, err := storedToVenue(stored); err == nil {
		t.Error("expected an error for a malformed stored key")
	}
}

func TestStorageSaveAndLoad(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "venues.db")
	storage, err := NewStorage(dbPath)
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}
	defer storage.Close()

	venues := []*domain.Venue{newStoredTestVenue(), newStoredTestVenue(), newStoredTestVenue()}
	if err := storage.SaveVenueBatch(venues); err != nil {
		t.Fatalf("SaveVenueBatch returned error: %v", err)
	}

	count, err := storage.GetVenueCount()
	if err != nil {
		t.Fatalf("GetVenueCount returned error: %v", err)
	}
	if count != len(venues) {
		t.Errorf("expected %d venues on disk, got %d", len(venues), count)
	}

	loaded, err := storage.LoadAllVenues()
	if err != nil {
		t.Fatalf("LoadAllVenues returned error: %v", err)
	}
	if len(loaded) != len(venues) {
		t.Fatalf("expected %d venues loaded, got %d", len(venues), len(loaded))
	}

	byAddress := make(map[solana.PublicKey]*domain.Venue, len(venues))
	for _, v := range venues {
		byAddress[v.Address] = v
	}
	for _, got := range loaded {
		want, ok := byAddress[got.Address]
		if !ok {
			t.Errorf("loaded unknown venue %s", got.Address)
			continue
		}
		if *got != *want {
			t.Errorf("venue %s changed across persistence:\n got %+v\nwant %+v", got.Address, got, want)
		}
	}
}

func TestStorageOverwriteKeepsSingleEntry(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "venues.db")
	storage, err := NewStorage(dbPath)
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}
	defer storage.Close()

	venue := newStoredTestVenue()
	if err := storage.SaveVenue(venue); err != nil {
		t.Fatalf("SaveVenue returned error: %v", err)
	}

	venue.ReserveA = 42
	if err := storage.SaveVenue(venue); err != nil {
		t.Fatalf("SaveVenue (overwrite) returned error: %v", err)
	}

	loaded, err := storage.LoadAllVenues()
	if err != nil {
		t.Fatalf("LoadAllVenues returned error: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 venue after overwrite, got %d", len(loaded))
	}
	if loaded[0].ReserveA != 42 {
		t.Errorf("expected overwritten reserve 42, got %d", loaded[0].ReserveA)
	}
}
