package eip712

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDigest_EtherMail(t *testing.T) {
	d, err := ComputeDigest(mailTypedData())
	require.NoError(t, err)

	assert.Equal(t, hashFromHex("0xf2cee375fa42b42143804025fc449deafd50cc031ca257e0b194a650a912090f"), d.DomainSeparator)
	assert.Equal(t, hashFromHex("0xc52c0ee5d84264471806290a3f2c4cecfc5490626bf912d01f240d7a274b371e"), d.StructHash)
	assert.Equal(t, hashFromHex("0xbe609aee343fb3c4b28e1df9e632fca64fcfaede20f02e86244efddf30957bd2"), d.Hash)
	assert.Equal(t, "Mail(Person from,Person to,string contents)Person(string name,address wallet)", d.TypeString)
}

func TestHashTypedData_DerivedDomainTypeMatchesDeclared(t *testing.T) {
	declared := mailTypedData()
	derived := mailTypedData()
	delete(derived.Types, DomainType)

	h1, err := HashTypedData(declared)
	require.NoError(t, err)
	h2, err := HashTypedData(derived)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestHashTypedData_MessageKeyOrderIrrelevant(t *testing.T) {
	wallet := "0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB"

	nameFirst := Message{}
	nameFirst["name"] = "Bob"
	nameFirst["wallet"] = wallet

	walletFirst := Message{}
	walletFirst["wallet"] = wallet
	walletFirst["name"] = "Bob"

	h1, err := HashTypedData(personTypedData(nameFirst))
	require.NoError(t, err)
	h2, err := HashTypedData(personTypedData(walletFirst))
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	// field order in the type definition does change the digest
	swapped := personTypedData(nameFirst)
	swapped.Types["Person"] = []Field{
		{Name: "wallet", Type: "address"},
		{Name: "name", Type: "string"},
	}
	h3, err := HashTypedData(swapped)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestHashTypedData_Deterministic(t *testing.T) {
	td := mailTypedData()
	first, err := HashTypedData(td)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		h, err := HashTypedData(td)
		require.NoError(t, err)
		assert.Equal(t, first, h)
	}
}

func TestHashTypedData_PrimaryTypeDomain(t *testing.T) {
	td := mailTypedData()
	td.PrimaryType = DomainType
	td.Message = nil

	d, err := ComputeDigest(td)
	require.NoError(t, err)

	assert.Equal(t, d.DomainSeparator, d.StructHash)
	expected := crypto.Keccak256Hash([]byte{0x19, 0x01}, d.DomainSeparator.Bytes(), d.DomainSeparator.Bytes())
	assert.Equal(t, expected, d.Hash)
}

func TestHashTypedData_PrimaryTypeDomainWithoutDomain(t *testing.T) {
	td := TypedData{Types: Types{}, PrimaryType: DomainType}

	d, err := ComputeDigest(td)
	require.NoError(t, err)

	emptyDomain := crypto.Keccak256Hash(crypto.Keccak256([]byte("EIP712Domain()")))
	assert.Equal(t, emptyDomain, d.DomainSeparator)
	assert.Equal(t, "EIP712Domain()", d.TypeString)
}

func TestHashDomain_OnlyPresentFields(t *testing.T) {
	domain := &Domain{Name: strPtr("Ether Mail"), Version: strPtr("1")}

	got, err := HashDomain(domain, nil)
	require.NoError(t, err)

	typeHash := crypto.Keccak256([]byte("EIP712Domain(string name,string version)"))
	expected := crypto.Keccak256Hash(typeHash, crypto.Keccak256([]byte("Ether Mail")), crypto.Keccak256([]byte("1")))
	assert.Equal(t, expected, got)
}

func TestHashDomain_Salt(t *testing.T) {
	salt := "0xf2d857f4a3edcb9b78b4d503bfe733db1e3f6cdc2b7971ee739626c97e86a558"
	domain := &Domain{Name: strPtr("Salted"), Salt: &salt}

	got, err := HashDomain(domain, nil)
	require.NoError(t, err)

	typeHash := crypto.Keccak256([]byte("EIP712Domain(string name,bytes32 salt)"))
	expected := crypto.Keccak256Hash(typeHash, crypto.Keccak256([]byte("Salted")), common.HexToHash(salt).Bytes())
	assert.Equal(t, expected, got)
}

func TestEncodeType_SortsAndDeduplicatesDependencies(t *testing.T) {
	types := Types{
		"Transaction": {
			{Name: "from", Type: "Person"},
			{Name: "to", Type: "Person"},
			{Name: "asset", Type: "Asset"},
			{Name: "cc", Type: "Person[]"},
		},
		"Person": {
			{Name: "name", Type: "string"},
			{Name: "wallet", Type: "Wallet"},
		},
		"Wallet": {{Name: "addr", Type: "address"}},
		"Asset":  {{Name: "token", Type: "address"}, {Name: "amount", Type: "uint256"}},
	}

	got, err := EncodeType(types, "Transaction")
	require.NoError(t, err)
	assert.Equal(t,
		"Transaction(Person from,Person to,Asset asset,Person[] cc)"+
			"Asset(address token,uint256 amount)"+
			"Person(string name,Wallet wallet)"+
			"Wallet(address addr)",
		got)
}

func TestEncodeType_RecursiveStruct(t *testing.T) {
	types := Types{
		"Node": {
			{Name: "value", Type: "uint256"},
			{Name: "children", Type: "Node[]"},
		},
	}

	got, err := EncodeType(types, "Node")
	require.NoError(t, err)
	assert.Equal(t, "Node(uint256 value,Node[] children)", got)

	// hashing follows the data, which is finite
	_, err = HashStruct(types, "Node", map[string]any{
		"value": 1,
		"children": []any{
			map[string]any{"value": 2, "children": []any{}},
			map[string]any{"value": 3, "children": []any{
				map[string]any{"value": 4, "children": []any{}},
			}},
		},
	})
	require.NoError(t, err)
}

func TestTypeHash(t *testing.T) {
	got, err := TypeHash(mailTypedData().Types, "Mail")
	require.NoError(t, err)
	assert.Equal(t, hashFromHex("0xa0cedeb2dc280ba39b857546d74f5549c3a1d7bdc2dd96bf881f76108e23dac2"), got)
}

func TestHashTypedData_MatchesGoEthereum(t *testing.T) {
	types := Types{
		"EIP712Domain": {
			{Name: "name", Type: "string"},
			{Name: "version", Type: "string"},
			{Name: "chainId", Type: "uint256"},
			{Name: "verifyingContract", Type: "address"},
		},
		"Order": {
			{Name: "maker", Type: "address"},
			{Name: "tokenIds", Type: "uint256[]"},
			{Name: "delta", Type: "int64"},
			{Name: "memo", Type: "bytes"},
			{Name: "tag", Type: "bytes32"},
			{Name: "active", Type: "bool"},
			{Name: "legs", Type: "Leg[]"},
		},
		"Leg": {
			{Name: "venue", Type: "string"},
			{Name: "price", Type: "uint128"},
		},
	}
	message := map[string]any{
		"maker":    "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		"tokenIds": []any{"1", "2", "115792089237316195423570985008687907853269984665640564039457584007913129639935"},
		"delta":    "-42",
		"memo":     "0xdeadbeef",
		"tag":      "0x0000000000000000000000000000000000000000000000000000000000000001",
		"active":   true,
		"legs": []any{
			map[string]any{"venue": "uniswap", "price": "1000"},
			map[string]any{"venue": "curve", "price": "999"},
		},
	}

	ours, err := HashTypedData(TypedData{
		Domain:      NewDomain("Exchange", "2", 31337, "0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		Types:       types,
		PrimaryType: "Order",
		Message:     message,
	})
	require.NoError(t, err)

	refTypes := apitypes.Types{}
	for name, fields := range types {
		for _, f := range fields {
			refTypes[name] = append(refTypes[name], apitypes.Type{Name: f.Name, Type: f.Type})
		}
	}
	reference, _, err := apitypes.TypedDataAndHash(apitypes.TypedData{
		Types:       refTypes,
		PrimaryType: "Order",
		Domain: apitypes.TypedDataDomain{
			Name:              "Exchange",
			Version:           "2",
			ChainId:           (*math.HexOrDecimal256)(big.NewInt(31337)),
			VerifyingContract: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		},
		Message: message,
	})
	require.NoError(t, err)

	assert.Equal(t, common.BytesToHash(reference), ours)
}

func TestHashTypedData_ValueForms(t *testing.T) {
	types := Types{
		"Values": {
			{Name: "amount", Type: "uint256"},
			{Name: "data", Type: "bytes"},
			{Name: "owner", Type: "address"},
		},
	}
	build := func(amount, data, owner any) TypedData {
		return TypedData{
			Types:       types,
			PrimaryType: "Values",
			Message:     Message{"amount": amount, "data": data, "owner": owner},
		}
	}

	owner := "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	base, err := HashTypedData(build(big.NewInt(255), "0x0102", owner))
	require.NoError(t, err)

	variants := map[string]TypedData{
		"int":          build(255, []byte{1, 2}, common.HexToAddress(owner)),
		"float64":      build(float64(255), "0x0102", owner),
		"hex string":   build("0xff", "0x0102", owner),
		"dec string":   build("255", "0x0102", owner),
		"lower owner":  build(uint8(255), "0x0102", "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"),
		"hexordecimal": build((*math.HexOrDecimal256)(big.NewInt(255)), "0x0102", owner),
	}
	for name, td := range variants {
		t.Run(name, func(t *testing.T) {
			h, err := HashTypedData(td)
			require.NoError(t, err)
			assert.Equal(t, base, h)
		})
	}
}

func TestHashTypedData_Errors(t *testing.T) {
	tests := []struct {
		name    string
		types   Types
		message Message
		check   func(t *testing.T, err error)
	}{
		{
			name:    "missing field",
			types:   Types{"T": {{Name: "a", Type: "uint8"}}},
			message: Message{},
			check: func(t *testing.T, err error) {
				var target *InvalidValueError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "a", target.Field)
			},
		},
		{
			name:    "unknown type",
			types:   Types{"T": {{Name: "a", Type: "Unknown"}}},
			message: Message{"a": 1},
			check: func(t *testing.T, err error) {
				var target *UnsupportedTypeError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "Unknown", target.Type)
			},
		},
		{
			name:    "fixed array length",
			types:   Types{"T": {{Name: "a", Type: "uint8[2]"}}},
			message: Message{"a": []any{1, 2, 3}},
			check: func(t *testing.T, err error) {
				var target *InvalidValueError
				require.ErrorAs(t, err, &target)
			},
		},
		{
			name:    "array element out of range",
			types:   Types{"T": {{Name: "a", Type: "uint8[]"}}},
			message: Message{"a": []any{1, 256}},
			check: func(t *testing.T, err error) {
				var target *IntegerOutOfRangeError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, 8, target.Bits)
			},
		},
		{
			name:    "string encoded integer too wide",
			types:   Types{"T": {{Name: "a", Type: "uint8"}}},
			message: Message{"a": "256"},
			check: func(t *testing.T, err error) {
				var target *IntegerOutOfRangeError
				require.ErrorAs(t, err, &target)
			},
		},
		{
			name:    "bool given as string",
			types:   Types{"T": {{Name: "a", Type: "bool"}}},
			message: Message{"a": "true"},
			check: func(t *testing.T, err error) {
				var target *InvalidValueError
				require.ErrorAs(t, err, &target)
			},
		},
		{
			name:    "undefined primary type",
			types:   Types{},
			message: Message{},
			check: func(t *testing.T, err error) {
				var target *UnsupportedTypeError
				require.ErrorAs(t, err, &target)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HashTypedData(TypedData{Types: tt.types, PrimaryType: "T", Message: tt.message})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestHashStruct_NegativeIntegerTwosComplement(t *testing.T) {
	types := Types{"T": {{Name: "a", Type: "int8"}}}

	got, err := HashStruct(types, "T", map[string]any{"a": -1})
	require.NoError(t, err)

	word := common.HexToHash("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	typeHash := crypto.Keccak256([]byte("T(int8 a)"))
	assert.Equal(t, crypto.Keccak256Hash(typeHash, word.Bytes()), got)
}
