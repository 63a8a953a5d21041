package eip712

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

// signingPrefix is the EIP-191 version byte pair for structured data.
var signingPrefix = []byte{0x19, 0x01}

// Digest is the final signing hash together with its two halves.
type Digest struct {
	Hash            common.Hash
	DomainSeparator common.Hash
	StructHash      common.Hash
	// TypeString is the canonical encoding of the primary type.
	TypeString string
}

// HashTypedData returns keccak256(0x1901 || domainSeparator || structHash).
func HashTypedData(td TypedData) (common.Hash, error) {
	d, err := ComputeDigest(td)
	if err != nil {
		return common.Hash{}, err
	}
	return d.Hash, nil
}

// ComputeDigest validates td and computes the signing hash. When the primary
// type is EIP712Domain the domain separator doubles as the struct hash.
func ComputeDigest(td TypedData) (*Digest, error) {
	s, err := td.compile()
	if err != nil {
		return nil, err
	}
	if err := td.validate(s); err != nil {
		return nil, err
	}

	h := newHasher(s)
	domainSeparator, err := h.hashStruct(DomainType, td.Domain.Map())
	if err != nil {
		return nil, err
	}

	structHash := domainSeparator
	if td.PrimaryType != DomainType {
		structHash, err = h.hashStruct(td.PrimaryType, td.Message)
		if err != nil {
			return nil, err
		}
	}

	return &Digest{
		Hash:            crypto.Keccak256Hash(signingPrefix, domainSeparator.Bytes(), structHash.Bytes()),
		DomainSeparator: domainSeparator,
		StructHash:      structHash,
		TypeString:      h.typeString(td.PrimaryType),
	}, nil
}

// HashDomain returns the domain separator. A declared EIP712Domain type in
// types takes precedence over the one derived from the domain fields.
func HashDomain(domain *Domain, types Types) (common.Hash, error) {
	td := TypedData{Domain: domain, Types: types, PrimaryType: DomainType}
	d, err := ComputeDigest(td)
	if err != nil {
		return common.Hash{}, err
	}
	return d.DomainSeparator, nil
}

// HashStruct validates data against primaryType and returns its struct hash.
func HashStruct(types Types, primaryType string, data map[string]any) (common.Hash, error) {
	s, err := compile(types, primaryType)
	if err != nil {
		return common.Hash{}, err
	}
	if err := validateStruct(s, primaryType, data); err != nil {
		return common.Hash{}, err
	}
	return newHasher(s).hashStruct(primaryType, data)
}

// EncodeType returns the canonical type string, e.g.
// "Mail(Person from,Person to,string contents)Person(string name,address wallet)".
func EncodeType(types Types, primaryType string) (string, error) {
	s, err := compile(types, primaryType)
	if err != nil {
		return "", err
	}
	return s.encodeType(primaryType), nil
}

// TypeHash returns keccak256 of the canonical type string.
func TypeHash(types Types, primaryType string) (common.Hash, error) {
	typeString, err := EncodeType(types, primaryType)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash([]byte(typeString)), nil
}

// hasher encodes values against a compiled schema. Type hashes are cached
// per call; value recursion follows the data, not the type graph.
type hasher struct {
	s          *schema
	typeHashes map[string]common.Hash
}

func newHasher(s *schema) *hasher {
	return &hasher{s: s, typeHashes: make(map[string]common.Hash)}
}

func (h *hasher) typeString(name string) string {
	if _, ok := h.s.structs[name]; !ok {
		return ""
	}
	return h.s.encodeType(name)
}

func (h *hasher) typeHash(name string) common.Hash {
	if th, ok := h.typeHashes[name]; ok {
		return th
	}
	th := crypto.Keccak256Hash([]byte(h.s.encodeType(name)))
	h.typeHashes[name] = th
	return th
}

func (h *hasher) hashStruct(name string, data map[string]any) (common.Hash, error) {
	fields := h.s.structs[name]
	typeHash := h.typeHash(name)

	buf := make([]byte, 0, common.HashLength*(len(fields)+1))
	buf = append(buf, typeHash.Bytes()...)
	for _, f := range fields {
		value, ok := data[f.Name]
		if !ok || value == nil {
			return common.Hash{}, &InvalidValueError{Field: f.Name, Type: f.Type.Raw, Reason: "missing value"}
		}
		word, err := h.encodeValue(f.Name, f.Type, value)
		if err != nil {
			return common.Hash{}, err
		}
		buf = append(buf, word...)
	}
	return crypto.Keccak256Hash(buf), nil
}

// encodeValue returns the 32-byte encoding of a single field value.
func (h *hasher) encodeValue(field string, t *Type, value any) ([]byte, error) {
	switch t.Kind {
	case KindStruct:
		record, ok := recordValue(value)
		if !ok {
			return nil, &InvalidValueError{Field: field, Type: t.Raw, Reason: "expected a struct value"}
		}
		hash, err := h.hashStruct(t.Struct, record)
		if err != nil {
			return nil, err
		}
		return hash.Bytes(), nil

	case KindString:
		str, ok := value.(string)
		if !ok {
			return nil, &InvalidValueError{Field: field, Type: t.Raw, Reason: "expected a string"}
		}
		return crypto.Keccak256([]byte(str)), nil

	case KindBytes:
		b, err := bytesValue(value)
		if err != nil {
			return nil, &InvalidValueError{Field: field, Type: t.Raw, Reason: err.Error()}
		}
		return crypto.Keccak256(b), nil

	case KindArray:
		items, ok := sliceValue(value)
		if !ok {
			return nil, &InvalidValueError{Field: field, Type: t.Raw, Reason: "expected an array"}
		}
		if t.Size > 0 && len(items) != t.Size {
			return nil, &InvalidValueError{Field: field, Type: t.Raw, Reason: "array length does not match the declared size"}
		}
		buf := make([]byte, 0, common.HashLength*len(items))
		for _, item := range items {
			if item == nil {
				return nil, &InvalidValueError{Field: field, Type: t.Elem.Raw, Reason: "missing array element"}
			}
			word, err := h.encodeValue(field, t.Elem, item)
			if err != nil {
				return nil, err
			}
			buf = append(buf, word...)
		}
		return crypto.Keccak256(buf), nil

	case KindUint, KindInt:
		n, err := integerValue(value)
		if err != nil {
			return nil, &InvalidValueError{Field: field, Type: t.Raw, Reason: err.Error()}
		}
		if !fitsInteger(n, t.Size, t.Kind == KindInt) {
			return nil, &IntegerOutOfRangeError{
				Field:  field,
				Type:   t.Raw,
				Bits:   t.Size,
				Signed: t.Kind == KindInt,
				Value:  n.String(),
			}
		}
		return math.U256Bytes(n), nil

	case KindAddress:
		addr, err := addressValue(value)
		if err != nil {
			if _, ok := err.(*InvalidAddressError); ok {
				return nil, err
			}
			return nil, &InvalidValueError{Field: field, Type: t.Raw, Reason: err.Error()}
		}
		return common.LeftPadBytes(addr.Bytes(), common.HashLength), nil

	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, &InvalidValueError{Field: field, Type: t.Raw, Reason: "expected a bool"}
		}
		word := make([]byte, common.HashLength)
		if b {
			word[common.HashLength-1] = 1
		}
		return word, nil

	case KindFixedBytes:
		b, err := bytesValue(value)
		if err != nil {
			return nil, &InvalidValueError{Field: field, Type: t.Raw, Reason: err.Error()}
		}
		if len(b) != t.Size {
			return nil, &BytesSizeMismatchError{Field: field, ExpectedSize: t.Size, GivenSize: len(b)}
		}
		return common.RightPadBytes(b, common.HashLength), nil
	}

	return nil, &UnsupportedTypeError{Type: t.Raw}
}
