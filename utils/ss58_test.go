package utils

import (
	"encoding/hex"
	"testing"

	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alice(t *testing.T) types.AccountID {
	raw, err := hex.DecodeString("d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d")
	require.NoError(t, err)
	var account types.AccountID
	copy(account[:], raw)
	return account
}

func TestDecodeSS58(t *testing.T) {
	prefix, account, err := DecodeSS58("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY")
	require.NoError(t, err)
	assert.Equal(t, uint16(42), prefix)
	assert.Equal(t, alice(t), account)
}

func TestEncodeSS58(t *testing.T) {
	assert.Equal(t, "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", EncodeSS58(42, alice(t)))
}

func TestSS58RoundTrip(t *testing.T) {
	for _, prefix := range []uint16{0, 2, 42, 63, 64, 1284, 16383} {
		address := EncodeSS58(prefix, alice(t))
		got, account, err := DecodeSS58(address)
		require.NoError(t, err, "prefix=%d", prefix)
		assert.Equal(t, prefix, got)
		assert.Equal(t, alice(t), account)
	}
}

func TestDecodeSS58Invalid(t *testing.T) {
	valid := EncodeSS58(0, alice(t))
	tampered := []byte(valid)
	if tampered[10] == 'a' {
		tampered[10] = 'b'
	} else {
		tampered[10] = 'a'
	}

	for _, address := range []string{"", "0OIl", valid[:20], string(tampered)} {
		_, _, err := DecodeSS58(address)
		assert.ErrorIs(t, err, ErrInvalidAddress, "address=%q", address)
	}
}

func TestParseAddressChecksPrefix(t *testing.T) {
	_, err := ParseAddress(EncodeSS58(2, alice(t)), 0)
	assert.ErrorIs(t, err, ErrInvalidAddress)

	account, err := ParseAddress(EncodeSS58(0, alice(t)), 0)
	require.NoError(t, err)
	assert.Equal(t, alice(t), account)
}
