package eip712

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	types := Types{"Person": {{Name: "name", Type: "string"}}, "bytesLike": {}}

	tests := []struct {
		raw  string
		kind Kind
		size int
	}{
		{"address", KindAddress, 0},
		{"bool", KindBool, 0},
		{"string", KindString, 0},
		{"bytes", KindBytes, 0},
		{"bytes1", KindFixedBytes, 1},
		{"bytes32", KindFixedBytes, 32},
		{"uint", KindUint, 256},
		{"int", KindInt, 256},
		{"uint8", KindUint, 8},
		{"int128", KindInt, 128},
		{"Person", KindStruct, 0},
		{"bytesLike", KindStruct, 0},
		{"uint8[]", KindArray, 0},
		{"Person[3]", KindArray, 3},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			typ, err := ParseType(tt.raw, types)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, typ.Kind)
			assert.Equal(t, tt.size, typ.Size)
			assert.Equal(t, tt.raw, typ.Raw)
		})
	}
}

func TestParseType_NestedArray(t *testing.T) {
	typ, err := ParseType("Person[2][]", Types{"Person": {}})
	require.NoError(t, err)

	assert.Equal(t, KindArray, typ.Kind)
	assert.Equal(t, 0, typ.Size)
	require.NotNil(t, typ.Elem)
	assert.Equal(t, KindArray, typ.Elem.Kind)
	assert.Equal(t, 2, typ.Elem.Size)
	assert.Equal(t, KindStruct, typ.Elem.Elem.Kind)
	assert.Equal(t, "Person", typ.structRef())
}

func TestParseType_Unsupported(t *testing.T) {
	for _, raw := range []string{"uint7", "uint264", "int0", "bytes0", "bytes33", "uint+8", "fixed128x18", "uint8[-1]", "uint8[01]", "[2]", "Unknown"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseType(raw, Types{})
			var target *UnsupportedTypeError
			require.ErrorAs(t, err, &target)
		})
	}
}

func TestCompile_OnlyReachableStructs(t *testing.T) {
	types := Types{
		"Root":   {{Name: "child", Type: "Child[]"}},
		"Child":  {{Name: "v", Type: "uint8"}},
		"Orphan": {{Name: "bad", Type: "uint7"}},
	}

	s, err := compile(types, "Root")
	require.NoError(t, err)
	assert.Contains(t, s.structs, "Root")
	assert.Contains(t, s.structs, "Child")
	assert.NotContains(t, s.structs, "Orphan")

	_, err = compile(types, "Missing")
	var target *UnsupportedTypeError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "Missing", target.Type)
}

func TestType_Dynamic(t *testing.T) {
	for raw, want := range map[string]bool{"string": true, "bytes": true, "bytes32": false, "uint8": false} {
		typ, err := ParseType(raw, nil)
		require.NoError(t, err)
		assert.Equal(t, want, typ.Dynamic(), raw)
	}
}
