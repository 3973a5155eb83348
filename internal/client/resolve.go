package client

import (
	"strings"

	"github.com/talentlayer/talentlayer-client/internal/ethwallet"
)

// AccountSource names which branch of account resolution won.
type AccountSource string

const (
	SourceNone       AccountSource = "none"
	SourcePrivateKey AccountSource = "private-key"
	SourceMnemonic   AccountSource = "mnemonic"
	SourceProvider   AccountSource = "provider"
)

// resolveAccount applies the fixed precedence: private key, then mnemonic,
// then provider. The first configured source decides; a configured but
// unusable source is an error rather than a fall-through.
func resolveAccount(cfg Config) (ethwallet.Account, AccountSource, error) {
	if strings.TrimSpace(cfg.PrivateKey) != "" {
		acc, err := ethwallet.NewPrivateKeyAccount(cfg.PrivateKey)
		if err != nil {
			return nil, SourcePrivateKey, err
		}
		return acc, SourcePrivateKey, nil
	}

	if strings.TrimSpace(cfg.Mnemonic) != "" {
		acc, err := ethwallet.NewMnemonicAccount(cfg.Mnemonic)
		if err != nil {
			return nil, SourceMnemonic, err
		}
		return acc, SourceMnemonic, nil
	}

	if cfg.Provider != nil {
		acc, err := ethwallet.NewProviderAccount(cfg.Provider)
		if err != nil {
			return nil, SourceProvider, err
		}
		return acc, SourceProvider, nil
	}

	return nil, SourceNone, nil
}
