package builder

import (
	"bytes"
	"encoding/binary"
	"errors"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/hxuan190/split-engine/internal/common"
	"github.com/hxuan190/split-engine/internal/domain"
)

var (
	ErrInvalidVenueAuthority = errors.New("invalid venue authority address")
	ErrInvalidSwapAccounts   = errors.New("invalid swap accounts")
	ErrInvalidUserWallet     = errors.New("invalid user wallet")
	ErrEmptyAllocation       = errors.New("allocation has no legs")
)

// swapInstructionTag is the token-swap program's Swap discriminant.
const swapInstructionTag = 1

// encodeSwapData encodes the token-swap Swap payload: tag, amount_in and
// minimum_amount_out as little-endian u64s.
func encodeSwapData(amountIn, minAmountOut uint64) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	if err := enc.WriteUint8(swapInstructionTag); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(amountIn, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(minAmountOut, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// validateLegAccounts mirrors the account-shape checks the on-chain program
// performs before invoking a leg, so a malformed venue fails at build time
// instead of on-chain.
func validateLegAccounts(leg *domain.SplitLeg, userSource, userDest solana.PublicKey) error {
	venue := leg.Venue
	if venue.TokenVaultA.Equals(venue.TokenVaultB) {
		return ErrInvalidSwapAccounts
	}
	swapSource, swapDest := venue.TokenVaultA, venue.TokenVaultB
	if !leg.AToB {
		swapSource, swapDest = venue.TokenVaultB, venue.TokenVaultA
	}
	if userSource.Equals(swapSource) || userDest.Equals(swapDest) {
		return ErrInvalidSwapAccounts
	}
	if venue.PoolMint.IsZero() || venue.PoolFeeAccount.IsZero() {
		return ErrInvalidSwapAccounts
	}
	return nil
}

// BuildLegInstruction builds one token-swap Swap instruction for a split leg.
// minAmountOut is the slippage-adjusted floor for this leg only; the global
// minimum-output guard is the caller's to enforce.
func BuildLegInstruction(
	leg *domain.SplitLeg,
	userTransferAuthority solana.PublicKey,
	userSource solana.PublicKey,
	userDest solana.PublicKey,
	minAmountOut uint64,
) (solana.Instruction, error) {
	if userTransferAuthority.IsZero() {
		return nil, ErrInvalidUserWallet
	}
	if err := validateLegAccounts(leg, userSource, userDest); err != nil {
		return nil, err
	}

	venue := leg.Venue
	authority, err := VenueAuthority(venue.ProgramID, venue.Address, venue.Nonce)
	if err != nil {
		return nil, err
	}

	swapSource, swapDest := venue.TokenVaultA, venue.TokenVaultB
	if !leg.AToB {
		swapSource, swapDest = venue.TokenVaultB, venue.TokenVaultA
	}

	data, err := encodeSwapData(leg.AmountIn, minAmountOut)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(venue.Address, false, false),
		solana.NewAccountMeta(authority, false, false),
		solana.NewAccountMeta(userTransferAuthority, false, true),
		solana.NewAccountMeta(userSource, true, false),
		solana.NewAccountMeta(swapSource, true, false),
		solana.NewAccountMeta(swapDest, true, false),
		solana.NewAccountMeta(userDest, true, false),
		solana.NewAccountMeta(venue.PoolMint, true, false),
		solana.NewAccountMeta(venue.PoolFeeAccount, true, false),
		solana.NewAccountMeta(common.TokenProgramID, false, false),
	}

	return solana.NewInstruction(venue.ProgramID, accounts, data), nil
}
