package market

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/split-engine/internal/adapters/persistence"
	"github.com/hxuan190/split-engine/internal/config"
	"github.com/hxuan190/split-engine/internal/domain"
	"github.com/hxuan190/split-engine/internal/metrics"
	"github.com/hxuan190/split-engine/internal/services"
)

const ServiceName = "market-service"

// Service owns the live venue set. Routing reads ordered snapshots; reserve
// updates and admin registration write through here. Venues are periodically
// batch-persisted to BoltDB and reloaded on start.
type Service struct {
	container.BaseDIInstance
	logger *services.ServiceLogger

	mu     sync.RWMutex
	venues domain.VenueRegistry
	dirty  map[solana.PublicKey]struct{}

	storage *persistence.Storage
	conf    *config.SplitterConfig

	stopCh chan struct{}
	doneCh chan struct{}
}

func (svc *Service) ID() string {
	return ServiceName
}

func (svc *Service) Configure(c container.IContainer) error {
	svc.logger = services.NewServiceLogger(svc)
	svc.conf = c.GetConfig(config.SPLITTER_CONFIG_KEY).(*config.SplitterConfig)
	svc.venues = make(domain.VenueRegistry)
	svc.dirty = make(map[solana.PublicKey]struct{})
	svc.stopCh = make(chan struct{})
	svc.doneCh = make(chan struct{})

	if svc.conf.PersistenceEnabled {
		storage, err := persistence.NewStorage(svc.conf.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open venue storage: %w", err)
		}
		svc.storage = storage
	}
	return nil
}

func (svc *Service) Start() error {
	if svc.storage != nil {
		venues, err := svc.storage.LoadAllVenues()
		if err != nil {
			return err
		}
		svc.mu.Lock()
		for _, v := range venues {
			svc.venues[v.Address] = v
		}
		svc.mu.Unlock()
		metrics.VenueCount.Set(float64(len(venues)))
		svc.logger.Info().Int("count", len(venues)).Msg("loaded venues from disk")

		go svc.persistLoop()
	} else {
		close(svc.doneCh)
	}
	return nil
}

func (svc *Service) Stop() error {
	close(svc.stopCh)
	<-svc.doneCh

	if svc.storage != nil {
		svc.flushDirty()
		return svc.storage.Close()
	}
	return nil
}

func (svc *Service) persistLoop() {
	defer close(svc.doneCh)

	interval := time.Duration(svc.conf.PersistInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			svc.flushDirty()
		case <-svc.stopCh:
			return
		}
	}
}

func (svc *Service) flushDirty() {
	svc.mu.Lock()
	if len(svc.dirty) == 0 {
		svc.mu.Unlock()
		return
	}
	batch := make([]*domain.Venue, 0, len(svc.dirty))
	for addr := range svc.dirty {
		if v, ok := svc.venues[addr]; ok {
			batch = append(batch, v)
		}
	}
	svc.dirty = make(map[solana.PublicKey]struct{})
	svc.mu.Unlock()

	if err := svc.storage.SaveVenueBatch(batch); err != nil {
		svc.logger.Error().Err(err).Int("count", len(batch)).Msg("failed to persist venues")
	}
}

// UpsertVenue registers a venue or replaces its snapshot.
func (svc *Service) UpsertVenue(venue *domain.Venue) {
	svc.mu.Lock()
	_, existed := svc.venues[venue.Address]
	svc.venues[venue.Address] = venue
	svc.dirty[venue.Address] = struct{}{}
	count := len(svc.venues)
	svc.mu.Unlock()

	metrics.VenueUpdates.Inc()
	if !existed {
		metrics.VenueCount.Set(float64(count))
	}
}

// UpdateReserves replaces a venue's reserve snapshot in place.
func (svc *Service) UpdateReserves(address solana.PublicKey, reserveA, reserveB, slot uint64) bool {
	svc.mu.Lock()
	venue, ok := svc.venues[address]
	if ok {
		venue.ReserveA = reserveA
		venue.ReserveB = reserveB
		venue.LastUpdatedSlot = slot
		svc.dirty[address] = struct{}{}
	}
	svc.mu.Unlock()

	if ok {
		metrics.VenueUpdates.Inc()
	}
	return ok
}

// DeactivateVenue removes a venue from routing without forgetting it.
func (svc *Service) DeactivateVenue(address solana.PublicKey) bool {
	svc.mu.Lock()
	venue, ok := svc.venues[address]
	if ok {
		venue.Active = false
		svc.dirty[address] = struct{}{}
	}
	svc.mu.Unlock()
	return ok
}

func (svc *Service) GetVenue(address solana.PublicKey) (*domain.Venue, bool) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	v, ok := svc.venues[address]
	return v, ok
}

// VenuesForPair returns the active venues trading the pair, oriented for the
// requested direction and ordered by address. The order is deterministic so
// the optimizer's tie-break bookkeeping is reproducible across identical
// requests.
func (svc *Service) VenuesForPair(inputMint, outputMint solana.PublicKey) []domain.PairVenue {
	svc.mu.RLock()
	result := make([]domain.PairVenue, 0, 8)
	for _, v := range svc.venues {
		if !v.Active {
			continue
		}
		if aToB, ok := v.SupportsPair(inputMint, outputMint); ok {
			result = append(result, domain.PairVenue{Venue: v, AToB: aToB})
		}
	}
	svc.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].Venue.Address.String() < result[j].Venue.Address.String()
	})
	return result
}

// Snapshot returns all venues ordered by address, for the admin surface.
func (svc *Service) Snapshot() []*domain.Venue {
	svc.mu.RLock()
	result := make([]*domain.Venue, 0, len(svc.venues))
	for _, v := range svc.venues {
		result = append(result, v)
	}
	svc.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].Address.String() < result[j].Address.String()
	})
	return result
}

func (svc *Service) VenueCount() int {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return len(svc.venues)
}
