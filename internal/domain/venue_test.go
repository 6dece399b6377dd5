package domain

import (
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestSupportsPair(t *testing.T) {
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()
	mintC := solana.NewWallet().PublicKey()

	venue := &Venue{TokenMintA: mintA, TokenMintB: mintB}

	tests := []struct {
		name     string
		input    solana.PublicKey
		output   solana.PublicKey
		wantAToB bool
		wantOK   bool
	}{
		{"forward", mintA, mintB, true, true},
		{"reverse", mintB, mintA, false, true},
		{"unrelated output", mintA, mintC, false, false},
		{"unrelated input", mintC, mintB, false, false},
		{"same mint twice", mintA, mintA, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aToB, ok := venue.SupportsPair(tt.input, tt.output)
			if ok != tt.wantOK || aToB != tt.wantAToB {
				t.Errorf("SupportsPair = (%v, %v), want (%v, %v)", aToB, ok, tt.wantAToB, tt.wantOK)
			}
		})
	}
}

func TestReservesByDirection(t *testing.T) {
	venue := &Venue{ReserveA: 10, ReserveB: 20}

	if in, out := venue.Reserves(true); in != 10 || out != 20 {
		t.Errorf("A to B: got (%d, %d), want (10, 20)", in, out)
	}
	if in, out := venue.Reserves(false); in != 20 || out != 10 {
		t.Errorf("B to A: got (%d, %d), want (20, 10)", in, out)
	}
}
