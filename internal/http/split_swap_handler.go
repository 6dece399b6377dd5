package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"

	"github.com/hxuan190/split-engine/internal/aggregator"
	"github.com/hxuan190/split-engine/internal/domain"
	"github.com/hxuan190/split-engine/internal/http/httputil"
	"github.com/hxuan190/split-engine/internal/metrics"
	"github.com/hxuan190/split-engine/internal/services/builder"
	"github.com/hxuan190/split-engine/internal/services/router"
)

type SplitSwapHandler struct {
	aggregatorSvc *aggregator.Service
}

func NewSplitSwapHandler(aggregatorSvc *aggregator.Service) *SplitSwapHandler {
	return &SplitSwapHandler{aggregatorSvc: aggregatorSvc}
}

func (h *SplitSwapHandler) Root() string {
	return "/split-swap"
}

func (h *SplitSwapHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.POST("", h.buildSplitSwap)
}

// SplitSwapRequest represents a split-swap transaction build request
type SplitSwapRequest struct {
	InputMint  string `json:"inputMint" binding:"required"`
	OutputMint string `json:"outputMint" binding:"required"`
	Amount     string `json:"amount" binding:"required"`

	// Discretization steps; 0 uses the configured default
	Steps uint8 `json:"steps"`

	// Slippage tolerance in basis points. Default: 50
	SlippageBps uint16 `json:"slippageBps"`

	UserWallet    string `json:"userWallet" binding:"required"`
	UserSourceATA string `json:"userSourceAta" binding:"required"`
	UserDestATA   string `json:"userDestAta" binding:"required"`
}

// @Summary Build a split swap transaction
// @Description Compute the optimal split for the pair and return an unsigned
// @Description transaction with one swap instruction per allocated venue.
// @Description Per-leg minimum outputs carry the slippage tolerance;
// @Description execution and atomicity policy are the caller's.
// @Tags split-swap
// @Accept json
// @Produce json
// @Param request body SplitSwapRequest true "Swap build request"
// @Success 200 {object} domain.SwapResponse "Unsigned transaction and leg detail"
// @Failure 400 {object} map[string]string "Invalid request parameters"
// @Failure 404 {object} map[string]string "No venue trades the pair"
// @Failure 422 {object} map[string]string "No viable route"
// @Router /api/v1/split-swap [post]
func (h *SplitSwapHandler) buildSplitSwap(c *gin.Context) {
	var req SplitSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.SwapRequests.WithLabelValues("bad_request").Inc()
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	swapReq, ok := h.parseSwapRequest(c, &req)
	if !ok {
		metrics.SwapRequests.WithLabelValues("bad_request").Inc()
		return
	}

	start := time.Now()
	resp, err := h.aggregatorSvc.BuildSplitSwap(c.Request.Context(), swapReq)
	metrics.SwapBuildDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case errors.Is(err, router.ErrNoRoute):
			metrics.SwapRequests.WithLabelValues("no_route").Inc()
			httputil.NotFound(c, "no venue trades this pair")
		case errors.Is(err, router.ErrNoViableRoute), errors.Is(err, builder.ErrEmptyAllocation):
			metrics.SwapRequests.WithLabelValues("no_viable_route").Inc()
			httputil.Unprocessable(c, err.Error())
		case errors.Is(err, router.ErrInvalidAmount),
			errors.Is(err, router.ErrInvalidStepCount),
			errors.Is(err, builder.ErrInvalidUserWallet),
			errors.Is(err, builder.ErrInvalidSwapAccounts):
			metrics.SwapRequests.WithLabelValues("bad_request").Inc()
			httputil.BadRequest(c, err.Error())
		default:
			metrics.SwapRequests.WithLabelValues("error").Inc()
			httputil.InternalError(c, err.Error())
		}
		return
	}

	metrics.SwapRequests.WithLabelValues("ok").Inc()
	httputil.Success(c, resp)
}

func (h *SplitSwapHandler) parseSwapRequest(c *gin.Context, req *SplitSwapRequest) (*domain.SwapRequest, bool) {
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

	amount, err := strconv.ParseUint(req.Amount, 10, 64)
	if err != nil || amount == 0 {
		httputil.BadRequest(c, "invalid amount: must be a positive 64-bit integer")
		return nil, false
	}

	userWallet, err := solana.PublicKeyFromBase58(req.UserWallet)
	if err != nil {
		httputil.BadRequest(c, "invalid userWallet address")
		return nil, false
	}

	userSourceATA, err := solana.PublicKeyFromBase58(req.UserSourceATA)
	if err != nil {
		httputil.BadRequest(c, "invalid userSourceAta address")
		return nil, false
	}

	userDestATA, err := solana.PublicKeyFromBase58(req.UserDestATA)
	if err != nil {
		httputil.BadRequest(c, "invalid userDestAta address")
		return nil, false
	}

	slippageBps := req.SlippageBps
	if slippageBps == 0 {
		slippageBps = 50
	}

	return &domain.SwapRequest{
		InputMint:     inputMint,
		OutputMint:    outputMint,
		Amount:        amount,
		Steps:         req.Steps,
		SlippageBps:   slippageBps,
		UserWallet:    userWallet,
		UserSourceATA: userSourceATA,
		UserDestATA:   userDestATA,
	}, true
}
