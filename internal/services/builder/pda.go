package builder

import (
	"sync"

	"github.com/gagliardetto/solana-go"
)

var (
	authorityPDACache   = make(map[authorityCacheKey]solana.PublicKey)
	authorityPDACacheMu sync.RWMutex
)

type authorityCacheKey struct {
	venue solana.PublicKey
	nonce uint8
}

// VenueAuthority derives the pool authority for a venue: the program address
// generated from the venue account key and its stored nonce. The derivation
// is deterministic, so results are cached for the life of the process.
func VenueAuthority(programID, venueAddress solana.PublicKey, nonce uint8) (solana.PublicKey, error) {
	key := authorityCacheKey{venue: venueAddress, nonce: nonce}

	authorityPDACacheMu.RLock()
	if cached, ok := authorityPDACache[key]; ok {
		authorityPDACacheMu.RUnlock()
		return cached, nil
	}
	authorityPDACacheMu.RUnlock()

	seeds := [][]byte{venueAddress.Bytes(), {nonce}}
	authority, err := solana.CreateProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, ErrInvalidVenueAuthority
	}

	authorityPDACacheMu.Lock()
	authorityPDACache[key] = authority
	authorityPDACacheMu.Unlock()

	return authority, nil
}
