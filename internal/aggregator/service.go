package aggregator

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/split-engine/internal/config"
	"github.com/hxuan190/split-engine/internal/domain"
	"github.com/hxuan190/split-engine/internal/metrics"
	"github.com/hxuan190/split-engine/internal/services"
	"github.com/hxuan190/split-engine/internal/services/builder"
	"github.com/hxuan190/split-engine/internal/services/market"
	"github.com/hxuan190/split-engine/internal/services/router"
)

const AGGREGATOR_SERVICE = "aggregator-service"

// Error aliases
var (
	ErrNoRoute         = router.ErrNoRoute
	ErrNoViableRoute   = router.ErrNoViableRoute
	ErrInvalidAmount   = router.ErrInvalidAmount
	ErrEmptyAllocation = builder.ErrEmptyAllocation
)

// Service is the routing facade: it resolves the venue set for a pair, runs
// the optimal-split pipeline and, for swap requests, hands the allocation to
// the builder.
type Service struct {
	container.BaseDIInstance
	logger *services.ServiceLogger

	marketSvc  *market.Service
	builderSvc *builder.BuilderService
	splitter   *router.Splitter

	conf *config.SplitterConfig
}

func (svc *Service) ID() string {
	return AGGREGATOR_SERVICE
}

func (svc *Service) Configure(c container.IContainer) error {
	svc.logger = services.NewServiceLogger(svc)
	svc.conf = c.GetConfig(config.SPLITTER_CONFIG_KEY).(*config.SplitterConfig)
	svc.marketSvc = c.Instance(market.ServiceName).(*market.Service)
	svc.builderSvc = c.Instance(builder.BUILDER_SERVICE_NAME).(*builder.BuilderService)

	registry := market.NewDefaultRegistry()
	svc.splitter = router.NewSplitter(registry.Quote)
	return nil
}

func (svc *Service) Start() error {
	return nil
}

func (svc *Service) Stop() error {
	return nil
}

// clampSteps applies the configured default and ceiling to a requested step
// count. Zero means "use the default"; the DP itself still rejects zero.
func (svc *Service) clampSteps(steps uint8) uint8 {
	if steps == 0 {
		return uint8(svc.conf.DefaultSteps)
	}
	if int(steps) > svc.conf.MaxSteps {
		return uint8(svc.conf.MaxSteps)
	}
	return steps
}

// GetSplitQuote computes the optimal allocation of amount across every
// active venue trading the pair.
func (svc *Service) GetSplitQuote(inputMint, outputMint solana.PublicKey, amount uint64, steps uint8) (*domain.SplitQuote, error) {
	steps = svc.clampSteps(steps)
	metrics.SplitSteps.Observe(float64(steps))

	venues := svc.marketSvc.VenuesForPair(inputMint, outputMint)
	if len(venues) == 0 {
		return nil, ErrNoRoute
	}
	if len(venues) > svc.conf.MaxVenues {
		venues = venues[:svc.conf.MaxVenues]
	}

	start := time.Now()
	quote, err := svc.splitter.FindOptimalSplit(venues, amount, steps)
	metrics.SplitQuoteDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	quote.InputMint = inputMint
	quote.OutputMint = outputMint
	return quote, nil
}

// BuildSplitSwap quotes and builds the unsigned split-swap transaction.
func (svc *Service) BuildSplitSwap(ctx context.Context, req *domain.SwapRequest) (*domain.SwapResponse, error) {
	quote, err := svc.GetSplitQuote(req.InputMint, req.OutputMint, req.Amount, req.Steps)
	if err != nil {
		return nil, err
	}
	return svc.builderSvc.BuildSplitSwapTransaction(ctx, req, quote)
}

func (svc *Service) Market() *market.Service {
	return svc.marketSvc
}
