package eip712

import (
	"fmt"
)

// IntegerOutOfRangeError is returned when a numeric value does not fit the
// declared integer width and signedness.
type IntegerOutOfRangeError struct {
	Field  string
	Type   string
	Bits   int
	Signed bool
	Value  string
}

func (e *IntegerOutOfRangeError) Error() string {
	return fmt.Sprintf("integer %s out of range for field %q of type %s (%d-bit, signed=%t)",
		e.Value, e.Field, e.Type, e.Bits, e.Signed)
}

// InvalidAddressError carries a string that is not a well-formed address.
type InvalidAddressError struct {
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("address %q is invalid", e.Address)
}

// BytesSizeMismatchError is returned when a bytesN value has the wrong length.
type BytesSizeMismatchError struct {
	Field        string
	ExpectedSize int
	GivenSize    int
}

func (e *BytesSizeMismatchError) Error() string {
	return fmt.Sprintf("field %q: expected bytes%d, got %d bytes", e.Field, e.ExpectedSize, e.GivenSize)
}

// UnsupportedTypeError is returned for a type that is neither a primitive
// nor a struct defined in the type set.
type UnsupportedTypeError struct {
	Type   string
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported type %q: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("unsupported type %q", e.Type)
}

// InvalidValueError is returned when a value cannot be encoded as its
// declared type (missing, wrong shape, unparsable).
type InvalidValueError struct {
	Field  string
	Type   string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("field %q of type %s: %s", e.Field, e.Type, e.Reason)
}

// SignatureMalformedError is returned for signatures that cannot be
// normalised into r||s||v.
type SignatureMalformedError struct {
	Reason string
}

func (e *SignatureMalformedError) Error() string {
	return "malformed signature: " + e.Reason
}

// RecoveryFailedError is returned when no public key can be recovered from
// the hash and signature.
type RecoveryFailedError struct {
	Err error
}

func (e *RecoveryFailedError) Error() string {
	if e.Err == nil {
		return "signature recovery failed"
	}
	return fmt.Sprintf("signature recovery failed: %v", e.Err)
}

func (e *RecoveryFailedError) Unwrap() error {
	return e.Err
}
