package eip712

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAddress(t *testing.T) {
	addr, err := GetAddress("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	require.NoError(t, err)
	assert.Equal(t, testSignerAddress, addr.Hex())

	_, err = GetAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb9226")
	var target *InvalidAddressError
	require.ErrorAs(t, err, &target)
}

func TestIsAddressEqual(t *testing.T) {
	eq, err := IsAddressEqual(testSignerAddress, "0xF39FD6E51AAD88F6F4CE6AB8827279CFFFB92266")
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = IsAddressEqual(testSignerAddress, cowAddress)
	require.NoError(t, err)
	assert.False(t, eq)

	_, err = IsAddressEqual(testSignerAddress, "0x00")
	var target *InvalidAddressError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "0x00", target.Address)
}

func TestIsAddress_PrefixCase(t *testing.T) {
	assert.False(t, IsAddress("0Xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"))
	assert.True(t, IsAddress("0x0000000000000000000000000000000000000000"))
}
