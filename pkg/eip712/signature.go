package eip712

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signature is an ECDSA signature in any of its accepted input forms. Either
// V or YParity must be set; when both are set they must agree.
type Signature struct {
	R       common.Hash
	S       common.Hash
	V       *uint64
	YParity *uint8
}

// ParseSignature decodes a 0x-prefixed 65-byte (r||s||v) or 64-byte
// ERC-2098 compact signature.
func ParseSignature(s string) (Signature, error) {
	b, err := decodeHex(s)
	if err != nil {
		return Signature{}, &SignatureMalformedError{Reason: "signature is not 0x-prefixed hex"}
	}
	return ParseSignatureBytes(b)
}

// ParseSignatureBytes decodes a 65-byte or 64-byte compact signature.
func ParseSignatureBytes(b []byte) (Signature, error) {
	switch len(b) {
	case crypto.SignatureLength:
		v := uint64(b[64])
		return Signature{
			R: common.BytesToHash(b[:32]),
			S: common.BytesToHash(b[32:64]),
			V: &v,
		}, nil
	case 64:
		// ERC-2098: the top bit of s carries yParity.
		yParity := b[32] >> 7
		s := common.BytesToHash(b[32:64])
		s[0] &= 0x7f
		return Signature{
			R:       common.BytesToHash(b[:32]),
			S:       s,
			YParity: &yParity,
		}, nil
	}
	return Signature{}, &SignatureMalformedError{Reason: fmt.Sprintf("expected 64 or 65 bytes, got %d", len(b))}
}

// ParseSignatureJSON accepts either a hex string or an object with r, s and
// v or yParity (numbers or hex/decimal strings).
func ParseSignatureJSON(data []byte) (Signature, error) {
	var sig Signature
	err := sig.UnmarshalJSON(data)
	return sig, err
}

type signatureJSON struct {
	R       string          `json:"r"`
	S       string          `json:"s"`
	V       json.RawMessage `json:"v,omitempty"`
	YParity json.RawMessage `json:"yParity,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (sig *Signature) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &SignatureMalformedError{Reason: err.Error()}
		}
		parsed, err := ParseSignature(s)
		if err != nil {
			return err
		}
		*sig = parsed
		return nil
	}

	var raw signatureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return &SignatureMalformedError{Reason: err.Error()}
	}
	r, err := signatureWord("r", raw.R)
	if err != nil {
		return err
	}
	s, err := signatureWord("s", raw.S)
	if err != nil {
		return err
	}
	parsed := Signature{R: r, S: s}
	if len(raw.V) > 0 && string(raw.V) != "null" {
		v, err := signatureQuantity("v", raw.V)
		if err != nil {
			return err
		}
		parsed.V = &v
	}
	if len(raw.YParity) > 0 && string(raw.YParity) != "null" {
		y, err := signatureQuantity("yParity", raw.YParity)
		if err != nil {
			return err
		}
		if y > 1 {
			return &SignatureMalformedError{Reason: fmt.Sprintf("yParity must be 0 or 1, got %d", y)}
		}
		yParity := uint8(y)
		parsed.YParity = &yParity
	}
	if parsed.V == nil && parsed.YParity == nil {
		return &SignatureMalformedError{Reason: "missing v or yParity"}
	}
	*sig = parsed
	return nil
}

// signatureQuantity reads a JSON number or a hex/decimal string.
func signatureQuantity(name string, raw json.RawMessage) (uint64, error) {
	text := strings.Trim(string(raw), `"`)
	n, ok := math.ParseUint64(text)
	if !ok {
		return 0, &SignatureMalformedError{Reason: fmt.Sprintf("%s is not a valid quantity: %s", name, raw)}
	}
	return n, nil
}

// MarshalJSON encodes the canonical 65-byte hex form.
func (sig Signature) MarshalJSON() ([]byte, error) {
	b, err := sig.Bytes()
	if err != nil {
		return nil, err
	}
	return json.Marshal(hexutil.Encode(b))
}

func signatureWord(name, s string) (common.Hash, error) {
	b, err := decodeHex(s)
	if err != nil || len(b) == 0 || len(b) > common.HashLength {
		return common.Hash{}, &SignatureMalformedError{Reason: fmt.Sprintf("%s must be a 0x-prefixed hex value of at most 32 bytes", name)}
	}
	return common.BytesToHash(b), nil
}

// RecoveryV returns v in the {27, 28} convention.
func (sig Signature) RecoveryV() (byte, error) {
	switch {
	case sig.YParity != nil:
		y := *sig.YParity
		if y > 1 {
			return 0, &SignatureMalformedError{Reason: fmt.Sprintf("yParity must be 0 or 1, got %d", y)}
		}
		if sig.V != nil {
			fromV, err := yParityFromV(*sig.V)
			if err != nil {
				return 0, err
			}
			if fromV != y {
				return 0, &SignatureMalformedError{Reason: "v and yParity disagree"}
			}
		}
		return 27 + y, nil
	case sig.V != nil:
		y, err := yParityFromV(*sig.V)
		if err != nil {
			return 0, err
		}
		return 27 + y, nil
	}
	return 0, &SignatureMalformedError{Reason: "missing v or yParity"}
}

// yParityFromV accepts raw parity (0/1) and the 27/28 form.
func yParityFromV(v uint64) (uint8, error) {
	switch {
	case v == 0 || v == 1:
		return uint8(v), nil
	case v == 27 || v == 28:
		return uint8(v - 27), nil
	}
	return 0, &SignatureMalformedError{Reason: fmt.Sprintf("invalid v value %d", v)}
}

// Bytes returns the canonical r||s||v form with v in {27, 28}.
func (sig Signature) Bytes() ([]byte, error) {
	v, err := sig.RecoveryV()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, crypto.SignatureLength)
	out = append(out, sig.R.Bytes()...)
	out = append(out, sig.S.Bytes()...)
	return append(out, v), nil
}

// Hex returns the canonical form as a 0x-prefixed string.
func (sig Signature) Hex() (string, error) {
	b, err := sig.Bytes()
	if err != nil {
		return "", err
	}
	return hexutil.Encode(b), nil
}
