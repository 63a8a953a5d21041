package eip712

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleFieldTypedData(fieldType string, value any) TypedData {
	return TypedData{
		Types:       Types{"T": {{Name: "v", Type: fieldType}}},
		PrimaryType: "T",
		Message:     Message{"v": value},
	}
}

func TestValidateTypedData_IntegerRange(t *testing.T) {
	maxUint256, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	overUint256 := new(big.Int).Add(maxUint256, big.NewInt(1))

	tests := []struct {
		name    string
		typ     string
		value   any
		wantErr bool
	}{
		{"uint8 max", "uint8", 255, false},
		{"uint8 overflow", "uint8", 256, true},
		{"uint8 negative", "uint8", -1, true},
		{"int8 min", "int8", -128, false},
		{"int8 max", "int8", 127, false},
		{"int8 underflow", "int8", -129, true},
		{"int8 overflow", "int8", 128, true},
		{"uint16 json number", "uint16", json.Number("65535"), false},
		{"uint16 json number overflow", "uint16", json.Number("65536"), true},
		{"uint256 max", "uint256", maxUint256, false},
		{"uint256 overflow", "uint256", overUint256, true},
		{"uint32 float", "uint32", float64(4294967295), false},
		{"uint32 float overflow", "uint32", float64(4294967296), true},
		{"int256 big negative", "int256", new(big.Int).Neg(maxUint256), true},
		{"bare uint", "uint", maxUint256, false},
		// string-encoded numerics are not range checked
		{"uint8 string skipped", "uint8", "1000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTypedData(singleFieldTypedData(tt.typ, tt.value))
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var target *IntegerOutOfRangeError
			require.ErrorAs(t, err, &target)
			assert.Equal(t, "v", target.Field)
			assert.Equal(t, tt.typ, target.Type)
		})
	}
}

func TestValidateTypedData_IntegerErrorDetails(t *testing.T) {
	err := ValidateTypedData(singleFieldTypedData("int16", 40000))

	var target *IntegerOutOfRangeError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, 16, target.Bits)
	assert.True(t, target.Signed)
	assert.Equal(t, "40000", target.Value)
}

func TestValidateTypedData_NonIntegralFloat(t *testing.T) {
	err := ValidateTypedData(singleFieldTypedData("uint8", 1.5))

	var target *InvalidValueError
	require.ErrorAs(t, err, &target)
}

func TestValidateTypedData_Address(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"checksummed", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", false},
		{"lowercase", "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", false},
		{"uppercase", "0xF39FD6E51AAD88F6F4CE6AB8827279CFFFB92266", false},
		{"bad checksum", "0xF39fd6e51aad88F6F4ce6aB8827279cffFb92266", true},
		{"non hex", "0xZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ", true},
		{"too short", "0xf39fd6e51aad88f6f4ce6ab8827279cfffb922", true},
		{"missing prefix", "f39fd6e51aad88f6f4ce6ab8827279cfffb92266aa", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTypedData(singleFieldTypedData("address", tt.value))
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var target *InvalidAddressError
			require.ErrorAs(t, err, &target)
			assert.Equal(t, tt.value, target.Address)
		})
	}
}

func TestValidateTypedData_FixedBytes(t *testing.T) {
	bytes31 := "0x" + "ab" + "00000000000000000000000000000000000000000000000000000000000000"[:60]
	bytes32 := "0x" + "0000000000000000000000000000000000000000000000000000000000000001"

	err := ValidateTypedData(singleFieldTypedData("bytes32", bytes32))
	require.NoError(t, err)

	err = ValidateTypedData(singleFieldTypedData("bytes32", bytes31))
	var target *BytesSizeMismatchError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, 32, target.ExpectedSize)
	assert.Equal(t, 31, target.GivenSize)

	err = ValidateTypedData(singleFieldTypedData("bytes4", []byte{1, 2, 3, 4}))
	require.NoError(t, err)

	// dynamic bytes are unconstrained
	err = ValidateTypedData(singleFieldTypedData("bytes", "0x01"))
	require.NoError(t, err)
}

func TestValidateTypedData_NestedStruct(t *testing.T) {
	td := mailTypedData()
	td.Message["to"] = map[string]any{
		"name":   "Bob",
		"wallet": "0xnotanaddress",
	}

	err := ValidateTypedData(td)
	var target *InvalidAddressError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "0xnotanaddress", target.Address)
}

func TestValidateTypedData_DomainFirst(t *testing.T) {
	td := mailTypedData()
	bad := "0x1234"
	td.Domain.VerifyingContract = &bad
	td.Message["from"] = map[string]any{"name": "Cow", "wallet": "0xalsobad"}

	err := ValidateTypedData(td)
	var target *InvalidAddressError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "0x1234", target.Address)
}

func TestValidateTypedData_FieldOrder(t *testing.T) {
	td := TypedData{
		Types: Types{"T": {
			{Name: "first", Type: "uint8"},
			{Name: "second", Type: "address"},
		}},
		PrimaryType: "T",
		Message:     Message{"second": "0xbad", "first": 300},
	}

	err := ValidateTypedData(td)
	var target *IntegerOutOfRangeError
	require.ErrorAs(t, err, &target)
}

func TestValidateTypedData_UnsupportedTypes(t *testing.T) {
	for _, typ := range []string{"uint7", "uint264", "int0", "bytes33", "bytes0", "uint08", "Missing", "uint8[0]", "[]"} {
		t.Run(typ, func(t *testing.T) {
			err := ValidateTypedData(singleFieldTypedData(typ, 1))
			var target *UnsupportedTypeError
			require.ErrorAs(t, err, &target)
		})
	}
}

func TestValidateTypedData_SkipsUncheckedKinds(t *testing.T) {
	td := TypedData{
		Types: Types{"T": {
			{Name: "s", Type: "string"},
			{Name: "b", Type: "bool"},
			{Name: "list", Type: "uint8[]"},
		}},
		PrimaryType: "T",
		Message:     Message{"s": "x", "b": true, "list": []any{1000}},
	}
	assert.NoError(t, ValidateTypedData(td))
}

func TestValidateTypedData_PrimaryTypeDomain(t *testing.T) {
	td := mailTypedData()
	td.PrimaryType = DomainType
	td.Message = Message{"anything": "ignored"}
	assert.NoError(t, ValidateTypedData(td))
}
