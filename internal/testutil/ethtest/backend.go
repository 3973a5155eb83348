// Package ethtest provides in-memory stand-ins for an RPC node and a wallet
// provider.
package ethtest

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Backend records every call it receives. CallResult is returned from
// CallContract; a non-nil Err fails every call.
type Backend struct {
	mu sync.Mutex

	ChainIDValue *big.Int
	BaseFee      *big.Int // nil => legacy chain
	Nonce        uint64
	Gas          uint64
	GasPrice     *big.Int
	TipCap       *big.Int
	CallResult   []byte
	Balance      *big.Int
	Err          error

	Calls []string
	Sent  []*types.Transaction
	Msgs  []ethereum.CallMsg
}

func NewBackend(chainID int64) *Backend {
	return &Backend{
		ChainIDValue: big.NewInt(chainID),
		BaseFee:      big.NewInt(1_000_000_000),
		Nonce:        7,
		Gas:          50_000,
		GasPrice:     big.NewInt(3_000_000_000),
		TipCap:       big.NewInt(1_500_000_000),
	}
}

func (b *Backend) record(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = append(b.Calls, name)
	return b.Err
}

// CallCount returns the number of calls received so far.
func (b *Backend) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Calls)
}

func (b *Backend) ChainID(ctx context.Context) (*big.Int, error) {
	if err := b.record("ChainID"); err != nil {
		return nil, err
	}
	return new(big.Int).Set(b.ChainIDValue), nil
}

func (b *Backend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	if err := b.record("HeaderByNumber"); err != nil {
		return nil, err
	}
	h := &types.Header{Number: big.NewInt(100)}
	if b.BaseFee != nil {
		h.BaseFee = new(big.Int).Set(b.BaseFee)
	}
	return h, nil
}

func (b *Backend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	if err := b.record("PendingNonceAt"); err != nil {
		return 0, err
	}
	return b.Nonce, nil
}

func (b *Backend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	if err := b.record("SuggestGasPrice"); err != nil {
		return nil, err
	}
	return b.GasPrice, nil
}

func (b *Backend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	if err := b.record("SuggestGasTipCap"); err != nil {
		return nil, err
	}
	return b.TipCap, nil
}

func (b *Backend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	if err := b.record("EstimateGas"); err != nil {
		return 0, err
	}
	return b.Gas, nil
}

func (b *Backend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := b.record("SendTransaction"); err != nil {
		return err
	}
	b.mu.Lock()
	b.Sent = append(b.Sent, tx)
	b.mu.Unlock()
	return nil
}

func (b *Backend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if err := b.record("CallContract"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.Msgs = append(b.Msgs, msg)
	b.mu.Unlock()
	return b.CallResult, nil
}

func (b *Backend) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	if err := b.record("BalanceAt"); err != nil {
		return nil, err
	}
	if b.Balance == nil {
		return new(big.Int), nil
	}
	return new(big.Int).Set(b.Balance), nil
}

func (b *Backend) Close() {}

// Provider answers eth_accounts and eth_sendTransaction.
type Provider struct {
	mu sync.Mutex

	Accounts []common.Address
	TxHash   common.Hash
	Err      error

	Methods []string
	Params  []json.RawMessage
}

func (p *Provider) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Methods = append(p.Methods, method)
	raw, err := json.Marshal(args)
	if err != nil {
		return err
	}
	p.Params = append(p.Params, raw)
	if p.Err != nil {
		return p.Err
	}

	var out interface{}
	switch method {
	case "eth_accounts":
		accs := p.Accounts
		if accs == nil {
			accs = []common.Address{}
		}
		out = accs
	case "eth_sendTransaction":
		out = p.TxHash
	default:
		return fmt.Errorf("method %s not supported", method)
	}

	b, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, result)
}
