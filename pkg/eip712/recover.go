package eip712

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var errSignatureValues = errors.New("r or s outside the secp256k1 group order")

// Recoverer derives the signer address from a 32-byte hash and a canonical
// 65-byte r||s||v signature with v in {27, 28}.
type Recoverer interface {
	RecoverAddress(hash common.Hash, signature []byte) (common.Address, error)
}

// Secp256k1Recoverer recovers addresses with go-ethereum's secp256k1.
type Secp256k1Recoverer struct{}

// Compile-time interface compliance check
var _ Recoverer = Secp256k1Recoverer{}

// RecoverAddress implements Recoverer.
func (Secp256k1Recoverer) RecoverAddress(hash common.Hash, signature []byte) (common.Address, error) {
	if len(signature) != crypto.SignatureLength {
		return common.Address{}, &SignatureMalformedError{Reason: "signature must be 65 bytes"}
	}
	v := signature[crypto.RecoveryIDOffset]
	if v != 27 && v != 28 {
		return common.Address{}, &SignatureMalformedError{Reason: "v must be 27 or 28"}
	}

	r := new(big.Int).SetBytes(signature[:32])
	s := new(big.Int).SetBytes(signature[32:64])
	if !crypto.ValidateSignatureValues(v-27, r, s, false) {
		return common.Address{}, &RecoveryFailedError{Err: errSignatureValues}
	}

	// go-ethereum expects the raw recovery id (0/1)
	sig := make([]byte, crypto.SignatureLength)
	copy(sig, signature)
	sig[crypto.RecoveryIDOffset] = v - 27

	pubKey, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return common.Address{}, &RecoveryFailedError{Err: err}
	}
	return crypto.PubkeyToAddress(*pubKey), nil
}
