package chains

import (
	"github.com/talentlayer/talentlayer-client/internal/constants"
	"github.com/talentlayer/talentlayer-client/internal/contracts"
)

// DefaultConfig returns the built-in chain configuration used when the caller
// supplies none.
func DefaultConfig() *AllChainsConfig {
	cfg := &AllChainsConfig{
		ActiveNetwork: constants.DefaultNetwork,
		Networks: map[string]NetworkConfig{
			constants.DefaultNetwork: {
				ChainID: constants.DefaultChainID,
				RPCs: []RPC{
					{Name: "public", URL: "https://rpc-mumbai.maticvigil.com"},
				},
				Subgraph: "https://api.thegraph.com/subgraphs/name/talentlayer/talent-layer-mumbai",
				Explorer: "https://mumbai.polygonscan.com",
				Contracts: map[string]ContractConfig{
					constants.ContractTalentLayerID: {
						Address: "0x3F87289e6Ec2D05C32d8A74CCfb30773fF549306",
						ABI:     contracts.TalentLayerID,
					},
					constants.ContractTalentLayerService: {
						Address: "0x27ED516dC1df64b4c1517A64aa2Bb72a434a5A6D",
						ABI:     contracts.TalentLayerService,
					},
					constants.ContractTalentLayerReview: {
						Address: "0x050F59E1871d3B7ca97e6fb9DCE64b3818b14B18",
						ABI:     contracts.TalentLayerReview,
					},
					constants.ContractTalentLayerPlatformID: {
						Address: "0xEFD8dbC421380Ee04BAdB69216a0FD97F64CbFD4",
						ABI:     contracts.TalentLayerPlatformID,
					},
				},
			},
			"polygon": {
				ChainID: 137,
				RPCs: []RPC{
					{Name: "public", URL: "https://polygon-rpc.com"},
				},
				Subgraph: "https://api.thegraph.com/subgraphs/name/talentlayer/talentlayer-polygon",
				Explorer: "https://polygonscan.com",
			},
		},
	}
	cfg.Normalize()
	return cfg
}
