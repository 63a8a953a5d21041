package eip712

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsAddress reports whether s is a 0x-prefixed 20-byte hex address. All
// lower or all upper case is accepted as is; mixed case must carry a valid
// EIP-55 checksum.
func IsAddress(s string) bool {
	if len(s) != 2+2*common.AddressLength || !strings.HasPrefix(s, "0x") {
		return false
	}
	if !common.IsHexAddress(s) {
		return false
	}
	body := s[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	return common.HexToAddress(s).Hex() == s
}

// GetAddress returns s in checksummed form.
func GetAddress(s string) (common.Address, error) {
	if !IsAddress(s) {
		return common.Address{}, &InvalidAddressError{Address: s}
	}
	return common.HexToAddress(s), nil
}

// IsAddressEqual compares two addresses regardless of case.
func IsAddressEqual(a, b string) (bool, error) {
	addrA, err := GetAddress(a)
	if err != nil {
		return false, err
	}
	addrB, err := GetAddress(b)
	if err != nil {
		return false, err
	}
	return addrA == addrB, nil
}
