package config

import (
	"errors"
	"os"

	"github.com/gagliardetto/solana-go/rpc"

	gopackages "github.com/andrew-solarstorm/go-packages/common"
)

type RPCConfig struct {
	RPCUrl string

	// Commitment is the confirmation level used when fetching blockhashes
	// for built transactions.
	Commitment rpc.CommitmentType
}

func (r *RPCConfig) Key() string {
	return RPC_CONFIG_KEY
}

func (r *RPCConfig) Load() error {
	r.RPCUrl = os.Getenv("RPC_URL")
	r.Commitment = rpc.CommitmentType(gopackages.GetEnvOrDefault("RPC_COMMITMENT", string(rpc.CommitmentFinalized)))
	return nil
}

func (r *RPCConfig) Validate() error {
	if r.RPCUrl == "" {
		return errors.New("invalid rpc config")
	}
	switch r.Commitment {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
		return nil
	default:
		return errors.New("invalid rpc commitment: " + string(r.Commitment))
	}
}
