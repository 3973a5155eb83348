package ethwallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/talentlayer/talentlayer-client/internal/ethwallet/wtypes"
)

var ErrInvalidPrivateKey = errors.New("invalid private key")

// LocalAccount holds a secp256k1 key in memory.
type LocalAccount struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

var (
	_ Account       = (*LocalAccount)(nil)
	_ wtypes.Wallet = (*LocalAccount)(nil)
)

// NewPrivateKeyAccount parses a hex-encoded private key, with or without 0x.
func NewPrivateKeyAccount(hexKey string) (*LocalAccount, error) {
	hexKey = strings.TrimSpace(hexKey)
	if len(hexKey) >= 2 && (hexKey[0:2] == "0x" || hexKey[0:2] == "0X") {
		hexKey = hexKey[2:]
	}
	if len(hexKey) != 64 {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "hex length: got %d want 64", len(hexKey))
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPrivateKey, err.Error())
	}
	return newLocalAccount(key), nil
}

func newLocalAccount(key *ecdsa.PrivateKey) *LocalAccount {
	return &LocalAccount{
		key:  key,
		addr: crypto.PubkeyToAddress(key.PublicKey),
	}
}

func (a *LocalAccount) Address() common.Address {
	return a.addr
}

func (a *LocalAccount) Addresses(ctx context.Context) ([]common.Address, error) {
	_ = ctx
	return []common.Address{a.addr}, nil
}

func (a *LocalAccount) SignHash(ctx context.Context, digest32 []byte) ([]byte, error) {
	_ = ctx
	if err := wtypes.EnsureDigest32(digest32); err != nil {
		return nil, err
	}
	return crypto.Sign(digest32, a.key) // returns V=0/1
}

// SendTransaction builds, signs and broadcasts the request.
// EIP-1559 is used when the latest header carries a base fee, legacy otherwise.
func (a *LocalAccount) SendTransaction(ctx context.Context, backend Backend, req TxRequest) (common.Hash, error) {
	if backend == nil {
		return common.Hash{}, errors.New("ethwallet: backend is nil")
	}
	if req.From != (common.Address{}) && req.From != a.addr {
		return common.Hash{}, fmt.Errorf("ethwallet: account %s cannot sign for %s", a.addr.Hex(), req.From.Hex())
	}
	return sendTxFrom(ctx, backend, a, req)
}

func sendTxFrom(ctx context.Context, backend Backend, w wtypes.Wallet, req TxRequest) (common.Hash, error) {
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("chain id: %w", err)
	}

	from := w.Address()
	to := req.To

	value := req.Value
	if value == nil {
		value = big.NewInt(0)
	}

	nonce, err := backend.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("nonce: %w", err)
	}

	gasLimit, err := backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  req.Data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("estimate gas: %w", err)
	}
	gasLimit += gasLimit / 10 // +10%

	head, err := backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("latest header: %w", err)
	}

	var tx *gethtypes.Transaction
	if head != nil && head.BaseFee != nil {
		tip, err := backend.SuggestGasTipCap(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("gas tip cap: %w", err)
		}
		feeCap := new(big.Int).Mul(head.BaseFee, big.NewInt(2))
		feeCap.Add(feeCap, tip)

		tx = gethtypes.NewTx(&gethtypes.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       gasLimit,
			To:        &to,
			Value:     value,
			Data:      req.Data,
		})
	} else {
		gasPrice, err := backend.SuggestGasPrice(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("gas price: %w", err)
		}
		tx = gethtypes.NewTx(&gethtypes.LegacyTx{
			Nonce:    nonce,
			To:       &to,
			Value:    value,
			Gas:      gasLimit,
			GasPrice: gasPrice,
			Data:     req.Data,
		})
	}

	signer := gethtypes.LatestSignerForChainID(chainID)
	digest := signer.Hash(tx).Bytes()

	sig, err := w.SignHash(ctx, digest)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign: %w", err)
	}
	if err := wtypes.EnsureSig65(sig); err != nil {
		return common.Hash{}, err
	}

	signedTx, err := tx.WithSignature(signer, sig)
	if err != nil {
		return common.Hash{}, fmt.Errorf("with signature: %w", err)
	}

	if err := backend.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, fmt.Errorf("send tx: %w", err)
	}
	return signedTx.Hash(), nil
}
