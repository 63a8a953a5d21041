package eip712

// ValidateTypedData checks that the domain and message values fit their
// declared types. The domain is checked first, then the message; fields are
// visited in declaration order and the first failure is returned.
//
// Integer ranges are only checked for numeric runtime values; string-encoded
// integers pass through unchecked.
func ValidateTypedData(td TypedData) error {
	s, err := td.compile()
	if err != nil {
		return err
	}
	return td.validate(s)
}

// compile parses the struct graph reachable from the domain and primary type.
func (td *TypedData) compile() (*schema, error) {
	roots := []string{DomainType}
	if td.PrimaryType != DomainType {
		roots = append(roots, td.PrimaryType)
	}
	return compile(td.effectiveTypes(), roots...)
}

func (td *TypedData) validate(s *schema) error {
	if td.Domain != nil {
		if err := validateStruct(s, DomainType, td.Domain.Map()); err != nil {
			return err
		}
	}
	if td.PrimaryType != DomainType {
		if err := validateStruct(s, td.PrimaryType, td.Message); err != nil {
			return err
		}
	}
	return nil
}

func validateStruct(s *schema, name string, data map[string]any) error {
	for _, f := range s.structs[name] {
		if err := validateValue(s, f.Name, f.Type, data[f.Name]); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(s *schema, field string, t *Type, value any) error {
	if value == nil {
		return nil
	}

	switch t.Kind {
	case KindUint, KindInt:
		n, numeric, err := numericValue(value)
		if err != nil {
			return &InvalidValueError{Field: field, Type: t.Raw, Reason: err.Error()}
		}
		if numeric && !fitsInteger(n, t.Size, t.Kind == KindInt) {
			return &IntegerOutOfRangeError{
				Field:  field,
				Type:   t.Raw,
				Bits:   t.Size,
				Signed: t.Kind == KindInt,
				Value:  n.String(),
			}
		}

	case KindAddress:
		if str, ok := value.(string); ok && !IsAddress(str) {
			return &InvalidAddressError{Address: str}
		}

	case KindFixedBytes:
		b, err := bytesValue(value)
		if err != nil {
			return &InvalidValueError{Field: field, Type: t.Raw, Reason: err.Error()}
		}
		if len(b) != t.Size {
			return &BytesSizeMismatchError{Field: field, ExpectedSize: t.Size, GivenSize: len(b)}
		}

	case KindStruct:
		record, ok := recordValue(value)
		if !ok {
			return &InvalidValueError{Field: field, Type: t.Raw, Reason: "expected a struct value"}
		}
		return validateStruct(s, t.Struct, record)
	}

	return nil
}
