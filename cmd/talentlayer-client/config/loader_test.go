package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talentlayer/talentlayer-client/internal/chains"
	"github.com/talentlayer/talentlayer-client/internal/constants"
	"github.com/talentlayer/talentlayer-client/internal/contracts"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFinalizeDefaultsAndEnv(t *testing.T) {
	cfg := &Config{}
	err := cfg.Finalize(envMap(map[string]string{
		"TL_PRIVATE_KEY": " 0xabc ",
		"TL_RPC_URL":     "http://localhost:8545",
		"TL_NETWORK":     "Polygon",
	}))
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.ClientSettings.LocalHost)
	require.Equal(t, "8090", cfg.ClientSettings.Port)
	require.Equal(t, "0xabc", cfg.Wallet.PrivateKey)
	require.Equal(t, "polygon", cfg.Wallet.Network)
	require.Equal(t, "polygon", cfg.Chains.ActiveNetwork)

	cc := cfg.ClientConfig()
	require.Equal(t, "0xabc", cc.PrivateKey)
	require.Equal(t, "http://localhost:8545", cc.RPCURL)
	require.Nil(t, cc.Provider)
}

func TestFinalizeUnknownNetwork(t *testing.T) {
	cfg := &Config{Wallet: &WalletSettings{Network: "goerli"}}
	require.ErrorContains(t, cfg.Finalize(envMap(nil)), "unknown network")
}

func TestMergeChains(t *testing.T) {
	override := &chains.AllChainsConfig{
		Networks: map[string]chains.NetworkConfig{
			"MUMBAI": {
				RPCs: []chains.RPC{{Name: "alchemy", URL: "https://polygon-mumbai.example"}},
				Contracts: map[string]chains.ContractConfig{
					"talentlayerid": {Address: "0x0000000000000000000000000000000000000001", ABI: contracts.TalentLayerID},
				},
			},
			"local": {
				ChainID: 31337,
				RPCs:    []chains.RPC{{Name: "anvil", URL: "http://127.0.0.1:8545"}},
			},
		},
	}

	merged := MergeChains(chains.DefaultConfig(), override)

	mumbai := merged.Networks["mumbai"]
	require.Equal(t, uint64(constants.DefaultChainID), mumbai.ChainID)
	require.Equal(t, "alchemy", mumbai.RPCs[0].Name)
	require.NotEmpty(t, mumbai.Subgraph)
	require.Equal(t, "0x0000000000000000000000000000000000000001", mumbai.Contracts[constants.ContractTalentLayerID].Address)
	require.Len(t, mumbai.Contracts, 4)

	require.Equal(t, uint64(31337), merged.Networks["local"].ChainID)
	require.Equal(t, constants.DefaultNetwork, merged.ActiveNetwork)

	_, err := chains.NewRegistry(merged)
	require.NoError(t, err)
}

func TestKeystorePath(t *testing.T) {
	cfg := &Config{Wallet: &WalletSettings{}}
	require.False(t, cfg.KeystoreEnabled())

	cfg.Wallet.Keystore = "default"
	require.True(t, cfg.KeystoreEnabled())
	require.Equal(t, "", cfg.KeystorePath())

	cfg.Wallet.Keystore = "/tmp/key.json"
	require.Equal(t, "/tmp/key.json", cfg.KeystorePath())
}
