package common

import (
	"os"
	"runtime"
	"runtime/debug"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Runtime profiles for different server configurations
const (
	// Small server: 2 vCPU, 4GB RAM (test/dev environment)
	SmallServerGOGC     = 500
	SmallServerMemLimit = 2.5 * 1024 * 1024 * 1024

	// Large server: 8+ vCPU (production)
	LargeServerGOGC     = 800
	LargeServerMemLimit = 8 * 1024 * 1024 * 1024
)

func detectServerProfile() (gogc int, memLimit int64, maxProcs int) {
	totalCPU := runtime.NumCPU()
	if totalCPU <= 2 {
		return SmallServerGOGC, int64(SmallServerMemLimit), 1
	}
	return LargeServerGOGC, int64(LargeServerMemLimit), totalCPU / 2
}

// InitRuntime tunes GOGC, GOMEMLIMIT and GOMAXPROCS for the request-scoped
// allocation pattern of the splitter: DP workspaces live in sync.Pool, so an
// aggressive GC would collect pooled tables before they are reused.
// Environment variables GOGC, GOMEMLIMIT and GOMAXPROCS override detection.
func InitRuntime() {
	defaultGOGC, defaultMemLimit, defaultMaxProcs := detectServerProfile()

	if os.Getenv("GOGC") == "" {
		debug.SetGCPercent(defaultGOGC)
	}
	if os.Getenv("GOMEMLIMIT") == "" {
		debug.SetMemoryLimit(defaultMemLimit)
	}
	if v := os.Getenv("GOMAXPROCS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			runtime.GOMAXPROCS(n)
		}
	} else if defaultMaxProcs > 0 {
		runtime.GOMAXPROCS(defaultMaxProcs)
	}

	log.Info().
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Int("numcpu", runtime.NumCPU()).
		Msg("runtime tuned")
}
