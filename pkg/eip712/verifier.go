package eip712

import (
	"github.com/ethereum/go-ethereum/common"
)

// Result is the outcome of a verification that recovered successfully.
type Result struct {
	Valid     bool
	Claimed   common.Address
	Recovered common.Address
	Digest    common.Hash
}

// Verifier hashes typed data and recovers signers through an injected
// Recoverer. It holds no per-call state and is safe for concurrent use.
type Verifier struct {
	recoverer Recoverer
}

// NewVerifier creates a verifier. A nil recoverer selects Secp256k1Recoverer.
func NewVerifier(recoverer Recoverer) *Verifier {
	if recoverer == nil {
		recoverer = Secp256k1Recoverer{}
	}
	return &Verifier{recoverer: recoverer}
}

var defaultVerifier = NewVerifier(nil)

// RecoverAddress normalises sig and recovers the signer of hash.
func (v *Verifier) RecoverAddress(hash common.Hash, sig Signature) (common.Address, error) {
	raw, err := sig.Bytes()
	if err != nil {
		return common.Address{}, err
	}
	return v.recoverer.RecoverAddress(hash, raw)
}

// RecoverTypedDataAddress hashes td and recovers the signer.
func (v *Verifier) RecoverTypedDataAddress(td TypedData, sig Signature) (common.Address, error) {
	hash, err := HashTypedData(td)
	if err != nil {
		return common.Address{}, err
	}
	return v.RecoverAddress(hash, sig)
}

// Verify recovers the signer of td and compares it with address. A
// mismatch is reported through Result.Valid, never as an error.
func (v *Verifier) Verify(address string, td TypedData, sig Signature) (*Result, error) {
	claimed, err := GetAddress(address)
	if err != nil {
		return nil, err
	}
	hash, err := HashTypedData(td)
	if err != nil {
		return nil, err
	}
	recovered, err := v.RecoverAddress(hash, sig)
	if err != nil {
		return nil, err
	}
	return &Result{
		Valid:     claimed == recovered,
		Claimed:   claimed,
		Recovered: recovered,
		Digest:    hash,
	}, nil
}

// VerifyTypedData reports whether td was signed by address.
func (v *Verifier) VerifyTypedData(address string, td TypedData, sig Signature) (bool, error) {
	res, err := v.Verify(address, td, sig)
	if err != nil {
		return false, err
	}
	return res.Valid, nil
}

// RecoverTypedDataAddress recovers the signer of td with secp256k1.
func RecoverTypedDataAddress(td TypedData, sig Signature) (common.Address, error) {
	return defaultVerifier.RecoverTypedDataAddress(td, sig)
}

// VerifyTypedData reports whether td was signed by address, using secp256k1.
func VerifyTypedData(address string, td TypedData, sig Signature) (bool, error) {
	return defaultVerifier.VerifyTypedData(address, td, sig)
}
