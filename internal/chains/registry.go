package chains

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/talentlayer/talentlayer-client/internal/contracts"
)

var (
	ErrUnknownNetwork  = errors.New("unknown network")
	ErrUnknownContract = errors.New("unknown contract")
)

// Registry resolves a logical contract name on a network to its address and ABI.
type Registry interface {
	Contract(network, name string) (Contract, error)
}

// StaticRegistry is an immutable Registry built from chain configuration.
type StaticRegistry struct {
	networks map[string]map[string]Contract
}

// NewRegistry parses every configured contract's ABI up front so lookups are
// plain map reads. Contract names match case-insensitively, since config
// loaders may fold map keys.
func NewRegistry(cfg *AllChainsConfig) (*StaticRegistry, error) {
	if cfg == nil {
		return nil, errors.New("chains config is nil")
	}

	parsed := map[string]abi.ABI{}
	reg := &StaticRegistry{networks: make(map[string]map[string]Contract, len(cfg.Networks))}

	for networkName, network := range cfg.Networks {
		key := normalizeNetworkKey(networkName)
		byName := make(map[string]Contract, len(network.Contracts))

		for name, cc := range network.Contracts {
			name = strings.TrimSpace(name)
			addr := strings.TrimSpace(cc.Address)
			if !common.IsHexAddress(addr) {
				return nil, fmt.Errorf("network %q contract %q: invalid address %q", networkName, name, cc.Address)
			}

			a, ok := parsed[cc.ABI]
			if !ok {
				var err error
				a, err = contracts.ParseABI(cc.ABI)
				if err != nil {
					return nil, errors.Wrapf(err, "network %q contract %q", networkName, name)
				}
				parsed[cc.ABI] = a
			}

			byName[strings.ToLower(name)] = Contract{
				Name:    name,
				Address: common.HexToAddress(addr),
				ABI:     a,
			}
		}
		reg.networks[key] = byName
	}

	return reg, nil
}

func (r *StaticRegistry) Contract(network, name string) (Contract, error) {
	byName, ok := r.networks[normalizeNetworkKey(network)]
	if !ok {
		return Contract{}, errors.Wrapf(ErrUnknownNetwork, "%q", network)
	}
	c, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Contract{}, errors.Wrapf(ErrUnknownContract, "%q on %q", name, network)
	}
	return c, nil
}

// Networks returns the configured network keys.
func (r *StaticRegistry) Networks() []string {
	out := make([]string, 0, len(r.networks))
	for k := range r.networks {
		out = append(out, k)
	}
	return out
}
