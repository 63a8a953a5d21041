package eip712

import (
	"encoding/json"
	"errors"
	"fmt"
	gomath "math"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

var (
	errNotInteger = errors.New("value is not an integer")
	errNotHex     = errors.New("value is not 0x-prefixed hex")
)

// numericValue converts the numeric runtime types to a big integer. The
// second result is false when v is not a numeric type at all (strings
// included), which the validator treats as "not checked".
func numericValue(v any) (*big.Int, bool, error) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, false, nil
		}
		return new(big.Int).Set(n), true, nil
	case big.Int:
		return new(big.Int).Set(&n), true, nil
	case *math.HexOrDecimal256:
		if n == nil {
			return nil, false, nil
		}
		return new(big.Int).Set((*big.Int)(n)), true, nil
	case math.HexOrDecimal256:
		b := big.Int(n)
		return new(big.Int).Set(&b), true, nil
	case int:
		return big.NewInt(int64(n)), true, nil
	case int8:
		return big.NewInt(int64(n)), true, nil
	case int16:
		return big.NewInt(int64(n)), true, nil
	case int32:
		return big.NewInt(int64(n)), true, nil
	case int64:
		return big.NewInt(n), true, nil
	case uint:
		return new(big.Int).SetUint64(uint64(n)), true, nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), true, nil
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), true, nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), true, nil
	case uint64:
		return new(big.Int).SetUint64(n), true, nil
	case float32:
		return floatValue(float64(n))
	case float64:
		return floatValue(n)
	case json.Number:
		if i, ok := new(big.Int).SetString(string(n), 10); ok {
			return i, true, nil
		}
		f, _, err := big.ParseFloat(string(n), 10, 512, big.ToNearestEven)
		if err != nil || !f.IsInt() {
			return nil, true, errNotInteger
		}
		i, _ := f.Int(nil)
		return i, true, nil
	}
	return nil, false, nil
}

func floatValue(f float64) (*big.Int, bool, error) {
	if gomath.IsNaN(f) || gomath.IsInf(f, 0) || gomath.Trunc(f) != f {
		return nil, true, errNotInteger
	}
	i, _ := new(big.Float).SetFloat64(f).Int(nil)
	return i, true, nil
}

// integerValue accepts every numeric type plus decimal or 0x-hex strings.
func integerValue(v any) (*big.Int, error) {
	n, numeric, err := numericValue(v)
	if err != nil {
		return nil, err
	}
	if numeric {
		return n, nil
	}
	if s, ok := v.(string); ok && s != "" {
		if n, ok := math.ParseBig256(s); ok {
			return n, nil
		}
	}
	return nil, errNotInteger
}

// fitsInteger reports whether n is representable in bits under signedness.
func fitsInteger(n *big.Int, bits int, signed bool) bool {
	if signed {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		minimum := new(big.Int).Neg(limit)
		maximum := new(big.Int).Sub(limit, big.NewInt(1))
		return n.Cmp(minimum) >= 0 && n.Cmp(maximum) <= 0
	}
	maximum := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bits)), big.NewInt(1))
	return n.Sign() >= 0 && n.Cmp(maximum) <= 0
}

// decodeHex decodes a 0x-prefixed hex string; odd lengths are left padded.
func decodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return nil, errNotHex
	}
	for _, c := range s[2:] {
		if !isHexChar(c) {
			return nil, errNotHex
		}
	}
	return common.FromHex(s), nil
}

func isHexChar(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// bytesValue converts the supported byte representations.
func bytesValue(v any) ([]byte, error) {
	switch b := v.(type) {
	case string:
		return decodeHex(b)
	case []byte:
		return b, nil
	case hexutil.Bytes:
		return b, nil
	case common.Hash:
		return b.Bytes(), nil
	case *common.Hash:
		if b != nil {
			return b.Bytes(), nil
		}
	}
	return nil, fmt.Errorf("cannot use %T as bytes", v)
}

func addressValue(v any) (common.Address, error) {
	switch a := v.(type) {
	case string:
		return GetAddress(a)
	case common.Address:
		return a, nil
	case *common.Address:
		if a != nil {
			return *a, nil
		}
	}
	return common.Address{}, fmt.Errorf("cannot use %T as address", v)
}

func recordValue(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Message:
		return m, true
	}
	return nil, false
}

// sliceValue flattens any Go slice or array into its elements.
func sliceValue(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
