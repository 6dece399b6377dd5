// Package common contains common constants and variables used across services
package common

import "github.com/gagliardetto/solana-go"

var (
	TokenProgramID = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	Token2022ID    = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
	ATAProgramID   = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")

	// TokenSwapProgramID is the default on-chain program backing
	// constant-product venues; individual venues may override it.
	TokenSwapProgramID = solana.MustPublicKeyFromBase58("SwaPpA9LAaLfeLi3a68M4DjnLqgtticKg6CnyNwgAC8")

	SystemProgramID = solana.SystemProgramID
)

const (
	// MaxSplitSteps bounds the DP cost; the wire format encodes the step
	// count in a single byte.
	MaxSplitSteps = 255

	// DefaultSplitSteps is used when a request does not name a step count.
	DefaultSplitSteps = 8
)
