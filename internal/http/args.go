package http

import (
	"encoding/json"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// coerceArgs converts JSON values into the Go types abi.Arguments.Pack expects.
// Integers may be JSON numbers or decimal/hex strings; addresses and bytes are
// hex strings.
func coerceArgs(inputs abi.Arguments, raw []json.RawMessage) ([]any, error) {
	if len(raw) != len(inputs) {
		return nil, badInput("expected %d arguments, got %d", len(inputs), len(raw))
	}
	out := make([]any, len(inputs))
	for i, in := range inputs {
		v, err := coerce(in.Type, raw[i])
		if err != nil {
			name := in.Name
			if name == "" {
				name = in.Type.String()
			}
			return nil, badInput("argument %d (%s): %v", i, name, err)
		}
		out[i] = v
	}
	return out, nil
}

func coerce(t abi.Type, raw json.RawMessage) (any, error) {
	switch t.T {
	case abi.IntTy, abi.UintTy:
		return coerceInt(t, raw)

	case abi.BoolTy:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, badInput("want bool")
		}
		return b, nil

	case abi.StringTy:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, badInput("want string")
		}
		return s, nil

	case abi.AddressTy:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || !common.IsHexAddress(s) {
			return nil, badInput("want hex address")
		}
		return common.HexToAddress(s), nil

	case abi.BytesTy:
		b, err := decodeHexArg(raw)
		if err != nil {
			return nil, err
		}
		return b, nil

	case abi.FixedBytesTy:
		b, err := decodeHexArg(raw)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, badInput("want %d bytes, got %d", t.Size, len(b))
		}
		v := reflect.New(t.GetType()).Elem()
		reflect.Copy(v, reflect.ValueOf(b))
		return v.Interface(), nil

	case abi.SliceTy, abi.ArrayTy:
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, badInput("want array")
		}
		var v reflect.Value
		if t.T == abi.ArrayTy {
			if len(elems) != t.Size {
				return nil, badInput("want %d elements, got %d", t.Size, len(elems))
			}
			v = reflect.New(t.GetType()).Elem()
		} else {
			v = reflect.MakeSlice(t.GetType(), len(elems), len(elems))
		}
		for i, e := range elems {
			ev, err := coerce(*t.Elem, e)
			if err != nil {
				return nil, err
			}
			v.Index(i).Set(reflect.ValueOf(ev))
		}
		return v.Interface(), nil

	default:
		return nil, badInput("unsupported abi type %s", t.String())
	}
}

func coerceInt(t abi.Type, raw json.RawMessage) (any, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, badInput("want integer")
		}
		s = n.String()
	}
	bi, err := parseBigInt(s)
	if err != nil {
		return nil, err
	}
	if bi == nil {
		return nil, badInput("want integer")
	}
	if t.T == abi.UintTy && bi.Sign() < 0 {
		return nil, badInput("negative value for %s", t.String())
	}
	if !fitsInt(t, bi) {
		return nil, badInput("value overflows %s", t.String())
	}

	typ := t.GetType()
	if typ == bigIntType {
		return bi, nil
	}
	v := reflect.New(typ).Elem()
	if t.T == abi.UintTy {
		v.SetUint(bi.Uint64())
	} else {
		if !bi.IsInt64() || v.OverflowInt(bi.Int64()) {
			return nil, badInput("value overflows %s", t.String())
		}
		v.SetInt(bi.Int64())
	}
	return v.Interface(), nil
}

// fitsInt reports whether bi lies in the range of the uintN or intN type t.
func fitsInt(t abi.Type, bi *big.Int) bool {
	if t.T == abi.UintTy {
		return bi.Sign() >= 0 && bi.BitLen() <= t.Size
	}
	// intN spans [-2^(N-1), 2^(N-1)-1]
	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
	if bi.Sign() < 0 {
		return new(big.Int).Neg(bi).Cmp(limit) <= 0
	}
	return bi.Cmp(limit) < 0
}

func decodeHexArg(raw json.RawMessage) ([]byte, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, badInput("want hex string")
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, badInput("invalid hex: %v", err)
	}
	return b, nil
}

// formatOutputs renders decoded ABI values for JSON: integers as decimal
// strings, byte values as 0x hex.
func formatOutputs(vals []any) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = formatValue(reflect.ValueOf(v))
	}
	return out
}

func formatValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch x := v.Interface().(type) {
	case *big.Int:
		if x == nil {
			return nil
		}
		return x.String()
	case common.Address:
		return x.Hex()
	case common.Hash:
		return x.Hex()
	case []byte:
		return hexutil.Encode(x)
	}

	switch v.Kind() {
	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, v.Len())
			reflect.Copy(reflect.ValueOf(b), v)
			return hexutil.Encode(b)
		}
		fallthrough
	case reflect.Slice:
		items := make([]any, v.Len())
		for i := range items {
			items[i] = formatValue(v.Index(i))
		}
		return items
	case reflect.Struct:
		fields := make(map[string]any, v.NumField())
		for i := 0; i < v.NumField(); i++ {
			f := v.Type().Field(i)
			if !f.IsExported() {
				continue
			}
			fields[f.Name] = formatValue(v.Field(i))
		}
		return fields
	default:
		return v.Interface()
	}
}
