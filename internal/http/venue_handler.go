package http

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"

	"github.com/hxuan190/split-engine/internal/aggregator"
	"github.com/hxuan190/split-engine/internal/domain"
	"github.com/hxuan190/split-engine/internal/http/httputil"
)

type VenueHandler struct {
	aggregatorSvc *aggregator.Service
}

func NewVenueHandler(aggregatorSvc *aggregator.Service) *VenueHandler {
	return &VenueHandler{aggregatorSvc: aggregatorSvc}
}

func (h *VenueHandler) Root() string {
	return "/venues"
}

func (h *VenueHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.listVenues)
	admin.POST("", h.registerVenue)
	admin.DELETE("/:address", h.deactivateVenue)
}

// RegisterVenueRequest registers a liquidity venue with the split engine
type RegisterVenueRequest struct {
	Address        string `json:"address" binding:"required"`
	Type           uint8  `json:"type"`
	ProgramID      string `json:"programId" binding:"required"`
	Nonce          uint8  `json:"nonce"`
	TokenMintA     string `json:"tokenMintA" binding:"required"`
	TokenMintB     string `json:"tokenMintB" binding:"required"`
	TokenVaultA    string `json:"tokenVaultA" binding:"required"`
	TokenVaultB    string `json:"tokenVaultB" binding:"required"`
	PoolMint       string `json:"poolMint" binding:"required"`
	PoolFeeAccount string `json:"poolFeeAccount" binding:"required"`
	ReserveA       uint64 `json:"reserveA"`
	ReserveB       uint64 `json:"reserveB"`
	FeeRate        uint32 `json:"feeRate"`
}

// @Summary List registered venues
// @Tags venues
// @Produce json
// @Success 200 {array} domain.Venue
// @Router /api/v1/venues [get]
func (h *VenueHandler) listVenues(c *gin.Context) {
	httputil.Success(c, h.aggregatorSvc.Market().Snapshot())
}

// @Summary Register or update a venue
// @Tags venues
// @Accept json
// @Produce json
// @Param request body RegisterVenueRequest true "Venue definition"
// @Success 200 {object} domain.Venue
// @Failure 400 {object} map[string]string "Invalid venue definition"
// @Router /api/v1/admin/venues [post]
func (h *VenueHandler) registerVenue(c *gin.Context) {
	var req RegisterVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	venue, err := h.venueFromRequest(&req)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	h.aggregatorSvc.Market().UpsertVenue(venue)
	httputil.Success(c, venue)
}

// @Summary Deactivate a venue
// @Tags venues
// @Produce json
// @Param address path string true "Venue address"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Unknown venue"
// @Router /api/v1/admin/venues/{address} [delete]
func (h *VenueHandler) deactivateVenue(c *gin.Context) {
	address, err := solana.PublicKeyFromBase58(c.Param("address"))
	if err != nil {
		httputil.BadRequest(c, "invalid venue address")
		return
	}

	if !h.aggregatorSvc.Market().DeactivateVenue(address) {
		httputil.NotFound(c, "unknown venue")
		return
	}
	httputil.Success(c, gin.H{"address": address.String(), "active": "false"})
}

func (h *VenueHandler) venueFromRequest(req *RegisterVenueRequest) (*domain.Venue, error) {
	address, err := solana.PublicKeyFromBase58(req.Address)
	if err != nil {
		return nil, err
	}
	programID, err := solana.PublicKeyFromBase58(req.ProgramID)
	if err != nil {
		return nil, err
	}
	mintA, err := solana.PublicKeyFromBase58(req.TokenMintA)
	if err != nil {
		return nil, err
	}
	mintB, err := solana.PublicKeyFromBase58(req.TokenMintB)
	if err != nil {
		return nil, err
	}
	vaultA, err := solana.PublicKeyFromBase58(req.TokenVaultA)
	if err != nil {
		return nil, err
	}
	vaultB, err := solana.PublicKeyFromBase58(req.TokenVaultB)
	if err != nil {
		return nil, err
	}
	poolMint, err := solana.PublicKeyFromBase58(req.PoolMint)
	if err != nil {
		return nil, err
	}
	poolFeeAccount, err := solana.PublicKeyFromBase58(req.PoolFeeAccount)
	if err != nil {
		return nil, err
	}

	return &domain.Venue{
		Address:        address,
		Type:           domain.VenueType(req.Type),
		ProgramID:      programID,
		Nonce:          req.Nonce,
		TokenMintA:     mintA,
		TokenMintB:     mintB,
		TokenVaultA:    vaultA,
		TokenVaultB:    vaultB,
		PoolMint:       poolMint,
		PoolFeeAccount: poolFeeAccount,
		ReserveA:       req.ReserveA,
		ReserveB:       req.ReserveB,
		FeeRate:        req.FeeRate,
		Active:         true,
	}, nil
}
