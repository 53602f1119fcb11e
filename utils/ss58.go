package utils

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

var ss58Prefix = []byte("SS58PRE")

var ErrInvalidAddress = errors.New("invalid ss58 address")

func ss58Checksum(data []byte) []byte {
	h := blake2b.Sum512(append(append([]byte{}, ss58Prefix...), data...))
	return h[:2]
}

func encodeSS58Prefix(prefix uint16) []byte {
	if prefix < 64 {
		return []byte{byte(prefix)}
	}
	// two byte form: lower 6 bits of the first byte are bits 2..7 of the prefix
	first := byte((prefix&0xfc)>>2) | 0x40
	second := byte(prefix>>8) | byte(prefix&0x03)<<6
	return []byte{first, second}
}

// DecodeSS58 decodes an SS58 address into its network prefix and account id
func DecodeSS58(address string) (uint16, types.AccountID, error) {
	var account types.AccountID

	raw, err := base58.Decode(address)
	if err != nil {
		return 0, account, fmt.Errorf("%w %q: %v", ErrInvalidAddress, address, err)
	}
	if len(raw) == 0 {
		return 0, account, fmt.Errorf("%w %q: empty", ErrInvalidAddress, address)
	}

	var prefix uint16
	prefixLen := 1
	switch {
	case raw[0] < 64:
		prefix = uint16(raw[0])
	case raw[0] < 128:
		if len(raw) < 2 {
			return 0, account, fmt.Errorf("%w %q: truncated prefix", ErrInvalidAddress, address)
		}
		lower := (raw[0] << 2) | (raw[1] >> 6)
		upper := raw[1] & 0x3f
		prefix = uint16(lower) | uint16(upper)<<8
		prefixLen = 2
	default:
		return 0, account, fmt.Errorf("%w %q: reserved prefix", ErrInvalidAddress, address)
	}

	if len(raw) != prefixLen+len(account)+2 {
		return 0, account, fmt.Errorf("%w %q: unexpected length %d", ErrInvalidAddress, address, len(raw))
	}
	body := raw[:prefixLen+len(account)]
	if !bytes.Equal(ss58Checksum(body), raw[len(body):]) {
		return 0, account, fmt.Errorf("%w %q: checksum mismatch", ErrInvalidAddress, address)
	}
	copy(account[:], raw[prefixLen:])
	return prefix, account, nil
}

// EncodeSS58 encodes an account id as an SS58 address for the given network prefix
func EncodeSS58(prefix uint16, account types.AccountID) string {
	body := append(encodeSS58Prefix(prefix), account[:]...)
	return base58.Encode(append(body, ss58Checksum(body)...))
}

// ParseAddress decodes an address and checks it belongs to the configured chain
func ParseAddress(address string, expectedPrefix uint16) (types.AccountID, error) {
	prefix, account, err := DecodeSS58(address)
	if err != nil {
		return account, err
	}
	if prefix != expectedPrefix {
		return account, fmt.Errorf("%w %q: network prefix %d, expected %d", ErrInvalidAddress, address, prefix, expectedPrefix)
	}
	return account, nil
}
