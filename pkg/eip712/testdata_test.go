package eip712

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// Hardhat/Anvil account #0. Test only.
const testPrivateKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

const testSignerAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func strPtr(s string) *string { return &s }

// mailTypedData is the "Ether Mail" example from EIP-712.
func mailTypedData() TypedData {
	return TypedData{
		Domain: NewDomain("Ether Mail", "1", 1, "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC"),
		Types: Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Person": {
				{Name: "name", Type: "string"},
				{Name: "wallet", Type: "address"},
			},
			"Mail": {
				{Name: "from", Type: "Person"},
				{Name: "to", Type: "Person"},
				{Name: "contents", Type: "string"},
			},
		},
		PrimaryType: "Mail",
		Message: Message{
			"from": map[string]any{
				"name":   "Cow",
				"wallet": "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826",
			},
			"to": map[string]any{
				"name":   "Bob",
				"wallet": "0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB",
			},
			"contents": "Hello, Bob!",
		},
	}
}

func personTypedData(message Message) TypedData {
	return TypedData{
		Domain: NewDomain("Ether Mail", "1", 1, "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC"),
		Types: Types{
			"Person": {
				{Name: "name", Type: "string"},
				{Name: "wallet", Type: "address"},
			},
		},
		PrimaryType: "Person",
		Message:     message,
	}
}

func getTestPrivateKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.HexToECDSA(testPrivateKeyHex)
	require.NoError(t, err)
	return key
}

// signTypedData signs td and returns the 65-byte signature with v in {27, 28}.
func signTypedData(t *testing.T, key *ecdsa.PrivateKey, td TypedData) []byte {
	t.Helper()
	hash, err := HashTypedData(td)
	require.NoError(t, err)
	sig, err := crypto.Sign(hash.Bytes(), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27
	return sig
}

func mustSignature(t *testing.T, raw []byte) Signature {
	t.Helper()
	sig, err := ParseSignatureBytes(raw)
	require.NoError(t, err)
	return sig
}

func hashFromHex(s string) common.Hash {
	return common.HexToHash(s)
}
