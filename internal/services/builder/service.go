package builder

import (
	"context"
	"encoding/base64"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/split-engine/internal/config"
	"github.com/hxuan190/split-engine/internal/domain"
	"github.com/hxuan190/split-engine/internal/services"
)

const BUILDER_SERVICE_NAME = "builder-service"

// BuilderService turns an optimal split into the executor's input: one
// token-swap instruction per nonzero leg, packed into an unsigned
// transaction. Atomicity policy across legs is the executor's decision.
type BuilderService struct {
	container.BaseDIInstance
	logger *services.ServiceLogger

	rpcClient  *rpc.Client
	commitment rpc.CommitmentType
}

func (svc *BuilderService) ID() string {
	return BUILDER_SERVICE_NAME
}

func (svc *BuilderService) Configure(c container.IContainer) error {
	svc.logger = services.NewServiceLogger(svc)
	rpcConfig := c.GetConfig(config.RPC_CONFIG_KEY).(*config.RPCConfig)
	svc.rpcClient = rpc.New(rpcConfig.RPCUrl)
	svc.commitment = rpcConfig.Commitment
	return nil
}

func (svc *BuilderService) Start() error {
	return nil
}

func (svc *BuilderService) Stop() error {
	return nil
}

// legMinAmountOut applies the slippage tolerance to one leg's quoted output.
func legMinAmountOut(amountOut uint64, slippageBps uint16) uint64 {
	if slippageBps >= 10000 {
		return 0
	}
	hi := new(big.Int).SetUint64(amountOut)
	hi.Mul(hi, big.NewInt(int64(10000-slippageBps)))
	hi.Div(hi, big.NewInt(10000))
	return hi.Uint64()
}

// BuildSplitSwapTransaction assembles the unsigned split-swap transaction for
// a quote. Every nonzero leg becomes one swap instruction against its venue;
// the per-leg minimum output is the leg quote less the slippage tolerance.
func (svc *BuilderService) BuildSplitSwapTransaction(ctx context.Context, req *domain.SwapRequest, quote *domain.SplitQuote) (*domain.SwapResponse, error) {
	if len(quote.Legs) == 0 {
		return nil, ErrEmptyAllocation
	}
	if req.UserWallet.IsZero() {
		return nil, ErrInvalidUserWallet
	}

	minTotal := new(big.Int)
	instructions := make([]solana.Instruction, 0, len(quote.Legs))
	legs := make([]domain.SwapLegInstruction, 0, len(quote.Legs))

	for i := range quote.Legs {
		leg := &quote.Legs[i]
		minOut := legMinAmountOut(leg.AmountOut, req.SlippageBps)
		minTotal.Add(minTotal, new(big.Int).SetUint64(minOut))

		ix, err := BuildLegInstruction(leg, req.UserWallet, req.UserSourceATA, req.UserDestATA, minOut)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, ix)

		legInfo := domain.SwapLegInstruction{
			VenueAddress: leg.Venue.Address.String(),
			ProgramID:    leg.Venue.ProgramID.String(),
			AmountIn:     leg.AmountIn,
			MinAmountOut: minOut,
		}
		data, err := ix.Data()
		if err != nil {
			return nil, err
		}
		legInfo.Data = base64.StdEncoding.EncodeToString(data)
		for _, acc := range ix.Accounts() {
			legInfo.Accounts = append(legInfo.Accounts, struct {
				Pubkey     string `json:"pubkey"`
				IsSigner   bool   `json:"isSigner"`
				IsWritable bool   `json:"isWritable"`
			}{
				Pubkey:     acc.PublicKey.String(),
				IsSigner:   acc.IsSigner,
				IsWritable: acc.IsWritable,
			})
		}
		legs = append(legs, legInfo)
	}

	blockhash, err := svc.rpcClient.GetLatestBlockhash(ctx, svc.commitment)
	if err != nil {
		svc.logger.Error().Err(err).Msg("failed to fetch recent blockhash")
		return nil, err
	}

	tx, err := solana.NewTransaction(
		instructions,
		blockhash.Value.Blockhash,
		solana.TransactionPayer(req.UserWallet),
	)
	if err != nil {
		return nil, err
	}

	encoded, err := tx.ToBase64()
	if err != nil {
		return nil, err
	}

	return &domain.SwapResponse{
		Transaction:    encoded,
		Legs:           legs,
		TotalAmountIn:  quote.TotalAmountIn,
		TotalAmountOut: quote.TotalAmountOut.String(),
		MinAmountOut:   minTotal.String(),
		Blockhash:      blockhash.Value.Blockhash.String(),
	}, nil
}
