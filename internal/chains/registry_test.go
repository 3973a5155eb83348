package chains

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/talentlayer/talentlayer-client/internal/constants"
	"github.com/talentlayer/talentlayer-client/internal/contracts"
)

func TestRegistryLookup(t *testing.T) {
	reg, err := NewRegistry(DefaultConfig())
	require.NoError(t, err)

	c, err := reg.Contract("Mumbai", constants.ContractTalentLayerID)
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0x3F87289e6Ec2D05C32d8A74CCfb30773fF549306"), c.Address)
	require.Contains(t, c.ABI.Methods, constants.FuncUpdateProfileData)

	folded, err := reg.Contract(constants.DefaultNetwork, "talentlayerid")
	require.NoError(t, err)
	require.Equal(t, c.Address, folded.Address)

	_, err = reg.Contract(constants.DefaultNetwork, "talentLayerEscrowV9")
	require.True(t, errors.Is(err, ErrUnknownContract))

	_, err = reg.Contract("goerli", constants.ContractTalentLayerID)
	require.True(t, errors.Is(err, ErrUnknownNetwork))

	require.ElementsMatch(t, []string{"mumbai", "polygon"}, reg.Networks())
}

func TestNewRegistryRejectsBadConfig(t *testing.T) {
	_, err := NewRegistry(nil)
	require.Error(t, err)

	_, err = NewRegistry(&AllChainsConfig{Networks: map[string]NetworkConfig{
		"local": {Contracts: map[string]ContractConfig{
			"talentLayerId": {Address: "not-an-address", ABI: contracts.TalentLayerID},
		}},
	}})
	require.ErrorContains(t, err, "invalid address")

	_, err = NewRegistry(&AllChainsConfig{Networks: map[string]NetworkConfig{
		"local": {Contracts: map[string]ContractConfig{
			"talentLayerId": {Address: "0x3F87289e6Ec2D05C32d8A74CCfb30773fF549306", ABI: "Missing"},
		}},
	}})
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	cfg := &AllChainsConfig{Networks: map[string]NetworkConfig{
		"Local": {
			ChainID:  31337,
			Subgraph: "http://localhost:8000/subgraphs/name/talentlayer",
			RPCs: []RPC{
				{Name: "first", URL: "http://localhost:8545"},
				{Name: "second", URL: "http://localhost:9545"},
			},
		},
		"empty": {ChainID: 5},
	}}
	cfg.Normalize()

	rc, err := Resolve(cfg, "local", "", "")
	require.NoError(t, err)
	require.Equal(t, "first", rc.RPCName)
	require.Equal(t, "http://localhost:8545", rc.URL)
	require.Equal(t, uint64(31337), rc.ChainID)

	rc, err = Resolve(cfg, "local", "SECOND", "")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9545", rc.URL)

	rc, err = Resolve(cfg, "local", "second", " https://rpc.example.org ")
	require.NoError(t, err)
	require.Equal(t, "custom", rc.RPCName)
	require.Equal(t, "https://rpc.example.org", rc.URL)

	_, err = Resolve(cfg, "empty", "", "")
	require.ErrorContains(t, err, "no RPCs configured")

	_, err = Resolve(cfg, "nope", "", "")
	require.True(t, errors.Is(err, ErrUnknownNetwork))

	rc, err = ResolveByChainID(cfg, 31337, "")
	require.NoError(t, err)
	require.Equal(t, "local", rc.NetworkName)

	_, err = ResolveByChainID(cfg, 1, "")
	require.True(t, errors.Is(err, ErrUnknownNetwork))
}
