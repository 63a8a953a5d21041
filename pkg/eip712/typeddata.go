// Package eip712 hashes, validates and verifies EIP-712 typed structured data.
package eip712

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// DomainType is the reserved type name of the domain separator struct.
const DomainType = "EIP712Domain"

// Field is a single named member of a struct type.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Types maps a struct name to its ordered field list.
type Types map[string][]Field

// Message is a struct value keyed by field name.
type Message map[string]any

// Domain is the sparse EIP712Domain record. Nil fields are left out of the
// domain type and the domain separator.
type Domain struct {
	Name              *string               `json:"name,omitempty"`
	Version           *string               `json:"version,omitempty"`
	ChainID           *math.HexOrDecimal256 `json:"chainId,omitempty"`
	VerifyingContract *string               `json:"verifyingContract,omitempty"`
	Salt              *string               `json:"salt,omitempty"`
}

// TypedData is a complete EIP-712 definition.
type TypedData struct {
	Domain      *Domain `json:"domain,omitempty"`
	Types       Types   `json:"types"`
	PrimaryType string  `json:"primaryType"`
	Message     Message `json:"message"`
}

// Fields returns the domain type derived from the fields that are set, in
// the fixed EIP-712 vocabulary order.
func (d *Domain) Fields() []Field {
	fields := make([]Field, 0, 5)
	if d == nil {
		return fields
	}
	if d.Name != nil {
		fields = append(fields, Field{Name: "name", Type: "string"})
	}
	if d.Version != nil {
		fields = append(fields, Field{Name: "version", Type: "string"})
	}
	if d.ChainID != nil {
		fields = append(fields, Field{Name: "chainId", Type: "uint256"})
	}
	if d.VerifyingContract != nil {
		fields = append(fields, Field{Name: "verifyingContract", Type: "address"})
	}
	if d.Salt != nil {
		fields = append(fields, Field{Name: "salt", Type: "bytes32"})
	}
	return fields
}

// Map returns the present domain fields as a struct value.
func (d *Domain) Map() map[string]any {
	m := make(map[string]any, 5)
	if d == nil {
		return m
	}
	if d.Name != nil {
		m["name"] = *d.Name
	}
	if d.Version != nil {
		m["version"] = *d.Version
	}
	if d.ChainID != nil {
		m["chainId"] = new(big.Int).Set((*big.Int)(d.ChainID))
	}
	if d.VerifyingContract != nil {
		m["verifyingContract"] = *d.VerifyingContract
	}
	if d.Salt != nil {
		m["salt"] = *d.Salt
	}
	return m
}

// domainFields returns the declared EIP712Domain type when the definition
// carries one, otherwise the type derived from the domain record.
func (td *TypedData) domainFields() []Field {
	if fields, ok := td.Types[DomainType]; ok {
		return fields
	}
	return td.Domain.Fields()
}

// effectiveTypes is td.Types with EIP712Domain filled in.
func (td *TypedData) effectiveTypes() Types {
	types := make(Types, len(td.Types)+1)
	for name, fields := range td.Types {
		types[name] = fields
	}
	types[DomainType] = td.domainFields()
	return types
}

// NewDomain builds a domain with the commonly used fields set.
func NewDomain(name, version string, chainID int64, verifyingContract string) *Domain {
	d := &Domain{
		Name:    &name,
		Version: &version,
		ChainID: (*math.HexOrDecimal256)(big.NewInt(chainID)),
	}
	if verifyingContract != "" {
		d.VerifyingContract = &verifyingContract
	}
	return d
}
