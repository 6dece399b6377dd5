package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	boltdb "github.com/andrew-solarstorm/bolt-db"
	"github.com/bytedance/sonic"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"

	"github.com/hxuan190/split-engine/internal/domain"
)

const (
	VenuesBucket = "venues"

	DefaultDBPath = "./data/split-engine.db"
)

type StoredVenue struct {
	Address         string `json:"address"`
	Type            uint8  `json:"type"`
	ProgramID       string `json:"programId"`
	Nonce           uint8  `json:"nonce"`
	TokenMintA      string `json:"tokenMintA"`
	TokenMintB      string `json:"tokenMintB"`
	TokenVaultA     string `json:"tokenVaultA"`
	TokenVaultB     string `json:"tokenVaultB"`
	PoolMint        string `json:"poolMint"`
	PoolFeeAccount  string `json:"poolFeeAccount"`
	ReserveA        uint64 `json:"reserveA"`
	ReserveB        uint64 `json:"reserveB"`
	FeeRate         uint32 `json:"feeRate"`
	Active          bool   `json:"active"`
	LastUpdatedSlot uint64 `json:"lastUpdatedSlot"`
}

type Storage struct {
	db     *boltdb.BoltDatabase
	dbPath string
}

func NewStorage(dbPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	os.MkdirAll(filepath.Dir(dbPath), 0755)

	db := boltdb.NewBoltDatabase(dbPath)
	if db == nil {
		return nil, fmt.Errorf("failed to open database at %s", dbPath)
	}

	log.Info().Str("path", dbPath).Msg("[venueStorage] opened database")

	return &Storage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) SaveVenue(venue *domain.Venue) error {
	data, err := sonic.Marshal(venueToStored(venue))
	if err != nil {
		return fmt.Errorf("failed to marshal venue: %w", err)
	}

	return s.db.Set(VenuesBucket, []byte(venue.Address.String()), data)
}

func (s *Storage) SaveVenueBatch(venues []*domain.Venue) error {
	if len(venues) == 0 {
		return nil
	}

	batch := s.db.NewBatch()
	for _, venue := range venues {
		data, err := sonic.Marshal(venueToStored(venue))
		if err != nil {
			return fmt.Errorf("failed to marshal venue %s: %w", venue.Address.String(), err)
		}

		value := data
		op := &boltdb.WriteOperation{
			Bucket: []byte(VenuesBucket),
			Key:    []byte(venue.Address.String()),
			Value:  &value,
			Op:     boltdb.OpSet,
		}
		if err := batch.Add(op); err != nil {
			return fmt.Errorf("failed to add venue %s to batch: %w", venue.Address.String(), err)
		}
	}

	if err := batch.Execute(); err != nil {
		log.Error().Err(err).Int("count", len(venues)).Msg("[venueStorage] FAILED to execute batch")
		return err
	}

	log.Info().Int("count", len(venues)).Msg("[venueStorage] saved venue batch")
	return nil
}

func (s *Storage) LoadAllVenues() ([]*domain.Venue, error) {
	data, err := s.db.List(VenuesBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	venues := make([]*domain.Venue, 0, len(data))
	failed := 0

	for address, value := range data {
		var stored StoredVenue
		if err := sonic.Unmarshal(value, &stored); err != nil {
			log.Error().Str("address", address).Err(err).Msg("[venueStorage] failed to unmarshal venue, skipping")
			failed++
			continue
		}

		venue, err := storedToVenue(&stored)
		if err != nil {
			log.Error().Str("address", address).Err(err).Msg("[venueStorage] failed to convert stored venue, skipping")
			failed++
			continue
		}

		venues = append(venues, venue)
	}

	if failed > 0 {
		log.Error().
			Int("total_in_db", len(data)).
			Int("loaded", len(venues)).
			Int("failed", failed).
			Msg("[venueStorage] venue loading completed with errors")
	} else {
		log.Info().
			Int("total_in_db", len(data)).
			Int("loaded", len(venues)).
			Msg("[venueStorage] venue loading completed successfully")
	}

	return venues, nil
}

func (s *Storage) GetVenueCount() (int, error) {
	data, err := s.db.List(VenuesBucket)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

func venueToStored(venue *domain.Venue) *StoredVenue {
	return &StoredVenue{
		Address:         venue.Address.String(),
		Type:            uint8(venue.Type),
		ProgramID:       venue.ProgramID.String(),
		Nonce:           venue.Nonce,
		TokenMintA:      venue.TokenMintA.String(),
		TokenMintB:      venue.TokenMintB.String(),
		TokenVaultA:     venue.TokenVaultA.String(),
		TokenVaultB:     venue.TokenVaultB.String(),
		PoolMint:        venue.PoolMint.String(),
		PoolFeeAccount:  venue.PoolFeeAccount.String(),
		ReserveA:        venue.ReserveA,
		ReserveB:        venue.ReserveB,
		FeeRate:         venue.FeeRate,
		Active:          venue.Active,
		LastUpdatedSlot: venue.LastUpdatedSlot,
	}
}

func storedToVenue(stored *StoredVenue) (*domain.Venue, error) {
	address, err := solana.PublicKeyFromBase58(stored.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}

	programID, err := solana.PublicKeyFromBase58(stored.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("invalid programId: %w", err)
	}

	tokenMintA, err := solana.PublicKeyFromBase58(stored.TokenMintA)
	if err != nil {
		return nil, fmt.Errorf("invalid tokenMintA: %w", err)
	}

	tokenMintB, err := solana.PublicKeyFromBase58(stored.TokenMintB)
	if err != nil {
		return nil, fmt.Errorf("invalid tokenMintB: %w", err)
	}

	tokenVaultA, err := solana.PublicKeyFromBase58(stored.TokenVaultA)
	if err != nil {
		return nil, fmt.Errorf("invalid tokenVaultA: %w", err)
	}

	tokenVaultB, err := solana.PublicKeyFromBase58(stored.TokenVaultB)
	if err != nil {
		return nil, fmt.Errorf("invalid tokenVaultB: %w", err)
	}

	poolMint, err := solana.PublicKeyFromBase58(stored.PoolMint)
	if err != nil {
		return nil, fmt.Errorf("invalid poolMint: %w", err)
	}

	poolFeeAccount, err := solana.PublicKeyFromBase58(stored.PoolFeeAccount)
	if err != nil {
		return nil, fmt.Errorf("invalid poolFeeAccount: %w", err)
	}

	return &domain.Venue{
		Address:         address,
		Type:            domain.VenueType(stored.Type),
		ProgramID:       programID,
		Nonce:           stored.Nonce,
		TokenMintA:      tokenMintA,
		TokenMintB:      tokenMintB,
		TokenVaultA:     tokenVaultA,
		TokenVaultB:     tokenVaultB,
		PoolMint:        poolMint,
		PoolFeeAccount:  poolFeeAccount,
		ReserveA:        stored.ReserveA,
		ReserveB:        stored.ReserveB,
		FeeRate:         stored.FeeRate,
		Active:          stored.Active,
		LastUpdatedSlot: stored.LastUpdatedSlot,
	}, nil
}
