package client

import (
	"context"
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/talentlayer/talentlayer-client/internal/constants"
	"github.com/talentlayer/talentlayer-client/internal/ethwallet"
)

// WriteContract submits functionName(args...) on the named contract, signed by
// the active account, and returns the transaction hash. It does not wait for
// the transaction to be mined and does not retry.
func (c *Client) WriteContract(
	ctx context.Context,
	contractName, functionName string,
	args []any,
	value *big.Int,
) (common.Hash, error) {
	from, err := c.Address(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	return c.write(ctx, from, contractName, functionName, args, value)
}

// ReadContract executes a non-mutating call against the read-only transport
// and returns the decoded outputs.
func (c *Client) ReadContract(ctx context.Context, contractName, functionName string, args ...any) ([]any, error) {
	ct, err := c.contract(contractName)
	if err != nil {
		return nil, err
	}

	data, err := ct.ABI.Pack(functionName, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "pack %s.%s", contractName, functionName)
	}

	if c.reader == nil {
		return nil, ErrNoTransport
	}

	to := ct.Address
	out, err := c.reader.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "call %s.%s", contractName, functionName)
	}

	res, err := ct.ABI.Unpack(functionName, out)
	if err != nil {
		return nil, errors.Wrapf(err, "unpack %s.%s", contractName, functionName)
	}
	return res, nil
}

// UpdateProfileData points profile userID at a new metadata CID.
func (c *Client) UpdateProfileData(ctx context.Context, userID, cid string) (common.Hash, error) {
	from, err := c.Address(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	profileID, ok := new(big.Int).SetString(strings.TrimSpace(userID), 10)
	if !ok || profileID.Sign() < 0 {
		return common.Hash{}, errors.Newf("invalid profile id %q", userID)
	}

	return c.write(ctx, from, constants.ContractTalentLayerID, constants.FuncUpdateProfileData, []any{profileID, cid}, nil)
}

func (c *Client) write(
	ctx context.Context,
	from common.Address,
	contractName, functionName string,
	args []any,
	value *big.Int,
) (common.Hash, error) {
	ct, err := c.contract(contractName)
	if err != nil {
		return common.Hash{}, err
	}

	data, err := ct.ABI.Pack(functionName, args...)
	if err != nil {
		return common.Hash{}, errors.Wrapf(err, "pack %s.%s", contractName, functionName)
	}

	var backend ethwallet.Backend
	if c.reader != nil {
		backend = c.reader
	}

	hash, err := c.account.SendTransaction(ctx, backend, ethwallet.TxRequest{
		From:  from,
		To:    ct.Address,
		Data:  data,
		Value: value,
	})
	if err != nil {
		return common.Hash{}, errors.Wrapf(err, "write %s.%s", contractName, functionName)
	}

	log.Info("contract write submitted",
		"contract", contractName,
		"function", functionName,
		"from", from.Hex(),
		"tx", hash.Hex(),
	)
	return hash, nil
}
