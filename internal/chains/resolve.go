package chains

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Resolve picks the RPC for networkName: the preferred RPC by name, otherwise
// the first one. A non-empty rpcURL overrides the configured endpoint.
func Resolve(cfg *AllChainsConfig, networkName, preferredRPC, rpcURL string) (ResolvedChain, error) {
	if cfg == nil {
		return ResolvedChain{}, errors.New("chains config is nil")
	}
	networkName = normalizeNetworkKey(networkName)
	if networkName == "" {
		return ResolvedChain{}, errors.New("network name is empty")
	}

	network, ok := cfg.Networks[networkName]
	if !ok {
		return ResolvedChain{}, errors.Wrapf(ErrUnknownNetwork, "%q", networkName)
	}

	out := ResolvedChain{
		NetworkName: networkName,
		ChainID:     network.ChainID,
		Subgraph:    strings.TrimSpace(network.Subgraph),
		Explorer:    strings.TrimSpace(network.Explorer),
	}

	if override := strings.TrimSpace(rpcURL); override != "" {
		out.RPCName = "custom"
		out.URL = override
		return out, nil
	}

	var selectedRPC *RPC
	if preferred := strings.TrimSpace(preferredRPC); preferred != "" {
		for i := range network.RPCs {
			if strings.EqualFold(strings.TrimSpace(network.RPCs[i].Name), preferred) {
				selectedRPC = &network.RPCs[i]
				break
			}
		}
	}
	if selectedRPC == nil {
		if len(network.RPCs) == 0 {
			return ResolvedChain{}, fmt.Errorf("network %q has no RPCs configured", networkName)
		}
		selectedRPC = &network.RPCs[0]
	}

	if strings.TrimSpace(selectedRPC.URL) == "" {
		return ResolvedChain{}, fmt.Errorf("network %q rpc %q url is empty", networkName, selectedRPC.Name)
	}

	out.RPCName = selectedRPC.Name
	out.URL = strings.TrimSpace(selectedRPC.URL)
	return out, nil
}

// ResolveByChainID finds the configured network with the given chain id.
func ResolveByChainID(cfg *AllChainsConfig, chainID uint64, preferredRPC string) (ResolvedChain, error) {
	if cfg == nil {
		return ResolvedChain{}, errors.New("chains config is nil")
	}
	if chainID == 0 {
		return ResolvedChain{}, errors.New("chainID is 0")
	}
	for name, network := range cfg.Networks {
		if network.ChainID == chainID {
			return Resolve(cfg, name, preferredRPC, "")
		}
	}
	return ResolvedChain{}, errors.Wrapf(ErrUnknownNetwork, "chainID %d", chainID)
}
