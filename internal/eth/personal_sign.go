// Package eth implements EIP-191 personal-sign signature recovery.
package eth

import (
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/propstack/walletgate/core"
)

// SignatureLength is the byte length of an ECDSA signature in [R || S || V] form.
const SignatureLength = 65

// DecodeSignature parses a 0x-prefixed hex signature and checks its shape.
func DecodeSignature(signature string) ([]byte, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return nil, core.ErrMalformedSignature
	}
	if len(sig) != SignatureLength {
		return nil, core.ErrMalformedSignature
	}
	return sig, nil
}

// RecoverPersonalSigner recovers the address that signed message under the
// EIP-191 personal-sign scheme ("\x19Ethereum Signed Message:\n" prefix).
// The recovery id may be given as 0/1 or in the wallet convention 27/28.
func RecoverPersonalSigner(message string, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, core.ErrMalformedSignature
	}

	// Do not mutate the caller's slice.
	s := make([]byte, SignatureLength)
	copy(s, sig)
	if s[64] >= 27 {
		s[64] -= 27
	}
	if s[64] != 0 && s[64] != 1 {
		return common.Address{}, core.ErrInvalidSignature
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), s)
	if err != nil {
		return common.Address{}, core.ErrInvalidSignature
	}

	return crypto.PubkeyToAddress(*pub), nil
}
