package domain

import (
	"github.com/gagliardetto/solana-go"
)

// SwapRequest describes a split-swap build request. Amount is always the
// exact input quantity; the split engine only supports exact-in trades.
type SwapRequest struct {
	InputMint   solana.PublicKey
	OutputMint  solana.PublicKey
	Amount      uint64
	Steps       uint8
	SlippageBps uint16
	UserWallet  solana.PublicKey
	// UserSourceATA / UserDestATA are the user's token accounts for the
	// input and output mints. Ownership validation is the executor's job.
	UserSourceATA solana.PublicKey
	UserDestATA   solana.PublicKey
}

// SwapLegInstruction is one wire-ready leg of a split swap.
type SwapLegInstruction struct {
	VenueAddress string `json:"venueAddress"`
	ProgramID    string `json:"programId"`
	AmountIn     uint64 `json:"amountIn"`
	MinAmountOut uint64 `json:"minAmountOut"`
	Data         string `json:"data"` // base64 instruction data
	Accounts     []struct {
		Pubkey     string `json:"pubkey"`
		IsSigner   bool   `json:"isSigner"`
		IsWritable bool   `json:"isWritable"`
	} `json:"accounts"`
}

// SwapResponse carries the unsigned split-swap transaction. Execution and
// atomicity policy across legs belong to the caller.
type SwapResponse struct {
	Transaction    string               `json:"transaction"` // base64, unsigned
	Legs           []SwapLegInstruction `json:"legs"`
	TotalAmountIn  uint64               `json:"totalAmountIn"`
	TotalAmountOut string               `json:"totalAmountOut"`
	MinAmountOut   string               `json:"minAmountOut"`
	Blockhash      string               `json:"blockhash"`
}
