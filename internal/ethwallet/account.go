// Package ethwallet resolves the account a client signs with and submits
// transactions on its behalf.
package ethwallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Backend is the part of *ethclient.Client needed to build and broadcast a
// locally signed transaction.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// TxRequest is a contract call to submit. From must be one of the account's
// addresses. A nil Value sends no ether.
type TxRequest struct {
	From  common.Address
	To    common.Address
	Data  []byte
	Value *big.Int
}

// Account is a source of signing addresses.
//   - Local accounts (private key, mnemonic) sign in-process and broadcast
//     through the Backend.
//   - Provider accounts hand the request to the provider, which owns signing
//     and transport.
type Account interface {
	Addresses(ctx context.Context) ([]common.Address, error)
	SendTransaction(ctx context.Context, backend Backend, req TxRequest) (common.Hash, error)
}
