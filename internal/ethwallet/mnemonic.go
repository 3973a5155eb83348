package ethwallet

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/tyler-smith/go-bip39"

	"github.com/talentlayer/talentlayer-client/internal/constants"
)

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// NewMnemonicAccount derives the first account (m/44'/60'/0'/0/0) of a BIP-39
// phrase with an empty passphrase.
func NewMnemonicAccount(phrase string) (*LocalAccount, error) {
	return NewMnemonicAccountAt(phrase, constants.DefaultDerivationPath)
}

func NewMnemonicAccountAt(phrase, path string) (*LocalAccount, error) {
	phrase = strings.Join(strings.Fields(phrase), " ")

	seed, err := bip39.NewSeedWithErrorChecking(phrase, "")
	if err != nil {
		return nil, errors.Wrap(ErrInvalidMnemonic, err.Error())
	}

	dp, err := accounts.ParseDerivationPath(path)
	if err != nil {
		return nil, errors.Wrapf(err, "derivation path %q", path)
	}

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, errors.Wrap(err, "master key")
	}
	for _, n := range dp {
		key, err = key.Derive(n)
		if err != nil {
			return nil, errors.Wrapf(err, "derive %s", path)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, errors.Wrap(err, "ec private key")
	}
	return newLocalAccount(priv.ToECDSA()), nil
}
