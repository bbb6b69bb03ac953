package core

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NormalizeAddress validates that s is a 0x-prefixed 20-byte hex address and
// returns its canonical lower-cased form.
func NormalizeAddress(s string) (string, error) {
	if !strings.HasPrefix(s, "0x") || !common.IsHexAddress(s) {
		return "", ErrInvalidAddress
	}
	return strings.ToLower(s), nil
}

// SameAddress compares two addresses case-insensitively.
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}
