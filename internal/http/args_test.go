package http

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/require"
)

func intArg(t *testing.T, typ string) abi.Arguments {
	t.Helper()
	ty, err := abi.NewType(typ, "", nil)
	require.NoError(t, err)
	return abi.Arguments{{Name: "n", Type: ty}}
}

func pow2(n uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), n)
}

func TestCoerceIntRange(t *testing.T) {
	maxInt256 := new(big.Int).Sub(pow2(255), big.NewInt(1))
	minInt256 := new(big.Int).Neg(pow2(255))

	tests := []struct {
		name string
		typ  string
		raw  string
		want any
		ok   bool
	}{
		{name: "int8 max", typ: "int8", raw: `127`, want: int8(127), ok: true},
		{name: "int8 min", typ: "int8", raw: `-128`, want: int8(-128), ok: true},
		{name: "int8 over", typ: "int8", raw: `128`},
		{name: "int8 under", typ: "int8", raw: `-129`},
		{name: "uint8 max", typ: "uint8", raw: `"0xff"`, want: uint8(255), ok: true},
		{name: "uint8 over", typ: "uint8", raw: `256`},
		{name: "uint8 negative", typ: "uint8", raw: `-1`},
		{name: "int256 max", typ: "int256", raw: `"` + maxInt256.String() + `"`, want: maxInt256, ok: true},
		{name: "int256 min", typ: "int256", raw: `"` + minInt256.String() + `"`, want: minInt256, ok: true},
		{name: "int256 over", typ: "int256", raw: `"` + pow2(255).String() + `"`},
		{name: "uint256 max", typ: "uint256", raw: `"` + new(big.Int).Sub(pow2(256), big.NewInt(1)).String() + `"`,
			want: new(big.Int).Sub(pow2(256), big.NewInt(1)), ok: true},
		{name: "uint256 over", typ: "uint256", raw: `"` + pow2(256).String() + `"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := coerceArgs(intArg(t, tc.typ), []json.RawMessage{json.RawMessage(tc.raw)})
			if !tc.ok {
				require.Error(t, err)
				require.True(t, errors.Is(err, errBadInput))
				return
			}
			require.NoError(t, err)
			require.Equal(t, []any{tc.want}, out)
		})
	}
}
