package http

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"

	"github.com/hxuan190/split-engine/internal/aggregator"
	"github.com/hxuan190/split-engine/internal/domain"
	"github.com/hxuan190/split-engine/internal/http/httputil"
	"github.com/hxuan190/split-engine/internal/metrics"
	"github.com/hxuan190/split-engine/internal/services/router"
)

type SplitQuoteHandler struct {
	aggregatorSvc *aggregator.Service
}

func NewSplitQuoteHandler(aggregatorSvc *aggregator.Service) *SplitQuoteHandler {
	return &SplitQuoteHandler{aggregatorSvc: aggregatorSvc}
}

func (h *SplitQuoteHandler) Root() string {
	return "/split-quote"
}

func (h *SplitQuoteHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.getSplitQuote)
}

// SplitQuoteRequest represents the parameters for requesting a split quote
type SplitQuoteRequest struct {
	// Input token mint address (base58 public key)
	InputMint string `form:"inputMint" binding:"required" example:"So11111111111111111111111111111111111111112"`

	// Output token mint address (base58 public key)
	OutputMint string `form:"outputMint" binding:"required" example:"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"`

	// Amount in smallest token units; always exact-in
	Amount string `form:"amount" binding:"required" example:"1000000000"`

	// Number of discretization steps (1-255). 0 or absent uses the
	// configured default; higher values trade latency for allocation
	// precision at O(venues * steps^2) cost.
	Steps uint8 `form:"steps" example:"8"`

	// Slippage tolerance in basis points, used for the min-out threshold
	// (computed here, enforced by the executor). Default: 50 bps.
	SlippageBps uint16 `form:"slippageBps" example:"50"`
}

// SplitLegInfo describes one venue's share of the split
type SplitLegInfo struct {
	VenueAddress string `json:"venueAddress" example:"HJPjoWUrhoZzkNfRpHuieeFk9WcZWjwy6PBjZ81ngndJ"`
	VenueType    string `json:"venueType" example:"ConstantProduct"`

	// Number of discretization quanta allocated to this venue
	Quanta uint8 `json:"quanta" example:"3"`

	// Share of the total trade in basis points
	ShareBps uint16 `json:"shareBps" example:"3750"`

	AmountIn  uint64 `json:"amountIn" example:"375000000"`
	AmountOut uint64 `json:"amountOut" example:"54230000"`
}

// SplitQuoteResponse contains the optimal split with per-venue allocations
type SplitQuoteResponse struct {
	InputMint  string `json:"inputMint"`
	OutputMint string `json:"outputMint"`

	AmountIn string `json:"amountIn" example:"1000000000"`

	// DP-optimal aggregate output across all legs
	AmountOut string `json:"amountOut" example:"144593400"`

	// Minimum acceptable output after slippage, for the caller's guard
	OtherAmountThreshold string `json:"otherAmountThreshold" example:"143870433"`

	Steps uint8 `json:"steps" example:"8"`

	Legs []SplitLegInfo `json:"legs"`
}

// @Summary Get optimal split quote
// @Description Split a fixed input amount across every venue trading the pair
// @Description to maximize total output. The trade is discretized into steps
// @Description quanta and a dynamic program finds the value-maximizing
// @Description allocation of quanta to venues.
// @Tags split-quote
// @Produce json
// @Param inputMint query string true "Input token mint address"
// @Param outputMint query string true "Output token mint address"
// @Param amount query string true "Amount in smallest token units (exact-in)"
// @Param steps query int false "Discretization steps (1-255, default from config)"
// @Param slippageBps query int false "Slippage tolerance in basis points. Default: 50"
// @Success 200 {object} SplitQuoteResponse "Optimal split with per-venue legs"
// @Failure 400 {object} map[string]string "Invalid request parameters"
// @Failure 404 {object} map[string]string "No venue trades the pair"
// @Failure 422 {object} map[string]string "No viable route (all combinations unreachable)"
// @Router /api/v1/split-quote [get]
func (h *SplitQuoteHandler) getSplitQuote(c *gin.Context) {
	parsed, ok := h.parseSplitQuoteRequest(c)
	if !ok {
		metrics.SplitQuoteRequests.WithLabelValues("bad_request").Inc()
		return
	}

	quote, err := h.aggregatorSvc.GetSplitQuote(parsed.inputMint, parsed.outputMint, parsed.amount, parsed.steps)
	if err != nil {
		switch {
		case errors.Is(err, router.ErrNoRoute):
			metrics.SplitQuoteRequests.WithLabelValues("no_route").Inc()
			httputil.NotFound(c, "no venue trades this pair")
		case errors.Is(err, router.ErrNoViableRoute):
			metrics.SplitQuoteRequests.WithLabelValues("no_viable_route").Inc()
			httputil.Unprocessable(c, "no viable route: "+err.Error())
		case errors.Is(err, router.ErrInvalidStepCount), errors.Is(err, router.ErrInvalidAmount), errors.Is(err, router.ErrArithmeticOverflow):
			metrics.SplitQuoteRequests.WithLabelValues("bad_request").Inc()
			httputil.BadRequest(c, err.Error())
		default:
			metrics.SplitQuoteRequests.WithLabelValues("error").Inc()
			httputil.InternalError(c, err.Error())
		}
		return
	}

	metrics.SplitQuoteRequests.WithLabelValues("ok").Inc()
	httputil.Success(c, buildSplitQuoteResponse(quote, parsed.slippageBps))
}

type parsedSplitQuoteRequest struct {
	inputMint   solana.PublicKey
	outputMint  solana.PublicKey
	amount      uint64
	steps       uint8
	slippageBps uint16
}

func (h *SplitQuoteHandler) parseSplitQuoteRequest(c *gin.Context) (*parsedSplitQuoteRequest, bool) {
	var req SplitQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.BadRequest(c, "invalid query parameters: "+err.Error())
		return nil, false
	}

	inputMint, err := solana.PublicKeyFromBase58(req.InputMint)
	if err != nil {
		httputil.BadRequest(c, "invalid inputMint address")
		return nil, false
	}

	outputMint, err := solana.PublicKeyFromBase58(req.OutputMint)
	if err != nil {
		httputil.BadRequest(c, "invalid outputMint address")
		return nil, false
	}

	if inputMint.Equals(outputMint) {
		httputil.BadRequest(c, "inputMint and outputMint must differ")
		return nil, false
	}

	amount, err := strconv.ParseUint(req.Amount, 10, 64)
	if err != nil || amount == 0 {
		httputil.BadRequest(c, "invalid amount: must be a positive 64-bit integer")
		return nil, false
	}

	slippageBps := req.SlippageBps
	if slippageBps == 0 {
		slippageBps = 50
	}

	return &parsedSplitQuoteRequest{
		inputMint:   inputMint,
		outputMint:  outputMint,
		amount:      amount,
		steps:       req.Steps,
		slippageBps: slippageBps,
	}, true
}

func buildSplitQuoteResponse(quote *domain.SplitQuote, slippageBps uint16) SplitQuoteResponse {
	legs := make([]SplitLegInfo, 0, len(quote.Legs))
	for _, leg := range quote.Legs {
		legs = append(legs, SplitLegInfo{
			VenueAddress: leg.Venue.Address.String(),
			VenueType:    leg.Venue.Type.String(),
			Quanta:       leg.Quanta,
			ShareBps:     uint16(uint32(leg.Quanta) * 10000 / uint32(quote.Steps)),
			AmountIn:     leg.AmountIn,
			AmountOut:    leg.AmountOut,
		})
	}

	// threshold = amountOut * (10000 - slippageBps) / 10000
	threshold := quote.TotalAmountOut
	if slippageBps < 10000 {
		t := new(big.Int).Set(quote.TotalAmountOut)
		t.Mul(t, big.NewInt(int64(10000-slippageBps)))
		t.Div(t, big.NewInt(10000))
		threshold = t
	}

	return SplitQuoteResponse{
		InputMint:            quote.InputMint.String(),
		OutputMint:           quote.OutputMint.String(),
		AmountIn:             strconv.FormatUint(quote.TotalAmountIn, 10),
		AmountOut:            quote.TotalAmountOut.String(),
		OtherAmountThreshold: threshold.String(),
		Steps:                quote.Steps,
		Legs:                 legs,
	}
}
