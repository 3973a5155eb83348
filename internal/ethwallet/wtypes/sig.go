package wtypes

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Wallet is a local EOA signer.
// SignHash signs a 32-byte digest and returns a 65-byte signature (R || S || V),
// where V is 0/1 as produced by go-ethereum's crypto.Sign.
type Wallet interface {
	Address() common.Address
	SignHash(ctx context.Context, digest32 []byte) ([]byte, error)
}

func EnsureDigest32(d []byte) error {
	if len(d) != 32 {
		return fmt.Errorf("digest must be 32 bytes, got %d", len(d))
	}
	return nil
}

func EnsureSig65(sig []byte) error {
	if len(sig) != 65 {
		return fmt.Errorf("signature must be 65 bytes, got %d", len(sig))
	}
	return nil
}
