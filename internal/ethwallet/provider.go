package ethwallet

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Provider is a request-style wallet capability (EIP-1193 shaped). *rpc.Client
// satisfies it, so any node or external signer with managed accounts works.
type Provider interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// ProviderAccount delegates address discovery and signing to a Provider.
type ProviderAccount struct {
	provider Provider
}

var _ Account = (*ProviderAccount)(nil)

func NewProviderAccount(p Provider) (*ProviderAccount, error) {
	if p == nil {
		return nil, errors.New("ethwallet: provider is nil")
	}
	return &ProviderAccount{provider: p}, nil
}

type sendTxArgs struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to"`
	Data  hexutil.Bytes   `json:"data"`
	Value *hexutil.Big    `json:"value,omitempty"`
}

func (a *ProviderAccount) Addresses(ctx context.Context) ([]common.Address, error) {
	var out []common.Address
	if err := a.provider.CallContext(ctx, &out, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts: %w", err)
	}
	return out, nil
}

// SendTransaction forwards to eth_sendTransaction; the backend is unused since
// the provider owns the transport.
func (a *ProviderAccount) SendTransaction(ctx context.Context, backend Backend, req TxRequest) (common.Hash, error) {
	_ = backend

	to := req.To
	args := sendTxArgs{
		From: req.From,
		To:   &to,
		Data: req.Data,
	}
	if req.Value != nil {
		args.Value = (*hexutil.Big)(req.Value)
	}

	var hash common.Hash
	if err := a.provider.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, fmt.Errorf("eth_sendTransaction: %w", err)
	}
	return hash, nil
}
