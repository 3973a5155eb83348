package contracts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseABI(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		TalentLayerID, TalentLayerService, TalentLayerReview, TalentLayerPlatformID,
	}, names)

	for _, name := range names {
		_, err := ParseABI(name)
		require.NoError(t, err, name)
	}

	id, err := ParseABI(TalentLayerID + ".json")
	require.NoError(t, err)

	m, ok := id.Methods["updateProfileData"]
	require.True(t, ok)
	require.Len(t, m.Inputs, 2)
	require.Equal(t, "uint256", m.Inputs[0].Type.String())
	require.Equal(t, "string", m.Inputs[1].Type.String())
}

func TestParseABIUnknown(t *testing.T) {
	_, err := ParseABI("Nope")
	require.Error(t, err)

	_, err = ParseABI(" ")
	require.Error(t, err)
}
