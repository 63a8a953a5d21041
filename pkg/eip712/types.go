package eip712

import (
	"sort"
	"strconv"
	"strings"
)

// Kind enumerates the EIP-712 type variants.
type Kind int

const (
	KindUint Kind = iota + 1
	KindInt
	KindAddress
	KindBool
	KindString
	KindBytes
	KindFixedBytes
	KindArray
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindAddress:
		return "address"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindFixedBytes:
		return "fixed-bytes"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Type is a declared type string parsed once into its variant.
//
// Size holds the bit width for KindUint/KindInt, the byte length for
// KindFixedBytes and the element count for fixed KindArray (0 for dynamic
// arrays).
type Type struct {
	Kind   Kind
	Raw    string
	Size   int
	Elem   *Type
	Struct string
}

// Dynamic reports whether the type is encoded by hashing its content.
func (t *Type) Dynamic() bool {
	return t.Kind == KindString || t.Kind == KindBytes
}

// ParseType parses a declared field type against a type set.
func ParseType(raw string, types Types) (*Type, error) {
	if strings.HasSuffix(raw, "]") {
		open := strings.LastIndex(raw, "[")
		if open <= 0 {
			return nil, &UnsupportedTypeError{Type: raw, Reason: "malformed array"}
		}
		elem, err := ParseType(raw[:open], types)
		if err != nil {
			return nil, err
		}
		t := &Type{Kind: KindArray, Raw: raw, Elem: elem}
		if length := raw[open+1 : len(raw)-1]; length != "" {
			n, ok := parseSize(length)
			if !ok || n == 0 {
				return nil, &UnsupportedTypeError{Type: raw, Reason: "invalid array length"}
			}
			t.Size = n
		}
		return t, nil
	}

	switch raw {
	case "address":
		return &Type{Kind: KindAddress, Raw: raw}, nil
	case "bool":
		return &Type{Kind: KindBool, Raw: raw}, nil
	case "string":
		return &Type{Kind: KindString, Raw: raw}, nil
	case "bytes":
		return &Type{Kind: KindBytes, Raw: raw}, nil
	case "uint":
		return &Type{Kind: KindUint, Raw: raw, Size: 256}, nil
	case "int":
		return &Type{Kind: KindInt, Raw: raw, Size: 256}, nil
	}

	if rest, ok := strings.CutPrefix(raw, "bytes"); ok {
		if n, ok := parseSize(rest); ok {
			if n < 1 || n > 32 {
				return nil, &UnsupportedTypeError{Type: raw, Reason: "fixed bytes size must be 1..32"}
			}
			return &Type{Kind: KindFixedBytes, Raw: raw, Size: n}, nil
		}
	}
	if rest, ok := strings.CutPrefix(raw, "uint"); ok {
		if bits, ok := parseSize(rest); ok {
			return intType(KindUint, raw, bits)
		}
	}
	if rest, ok := strings.CutPrefix(raw, "int"); ok {
		if bits, ok := parseSize(rest); ok {
			return intType(KindInt, raw, bits)
		}
	}

	if _, ok := types[raw]; ok {
		return &Type{Kind: KindStruct, Raw: raw, Struct: raw}, nil
	}
	return nil, &UnsupportedTypeError{Type: raw, Reason: "not a primitive or a defined struct"}
}

func intType(kind Kind, raw string, bits int) (*Type, error) {
	if bits < 8 || bits > 256 || bits%8 != 0 {
		return nil, &UnsupportedTypeError{Type: raw, Reason: "integer width must be a multiple of 8 in 8..256"}
	}
	return &Type{Kind: kind, Raw: raw, Size: bits}, nil
}

// parseSize accepts canonical decimal digits only ("8", not "08" or "+8").
func parseSize(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}

type compiledField struct {
	Name string
	Type *Type
}

// schema is the parsed form of every struct reachable from a set of roots.
type schema struct {
	structs map[string][]compiledField
}

// compile parses the fields of every struct reachable from roots. The walk
// follows the type graph with a visited set, so recursive structs are fine.
func compile(types Types, roots ...string) (*schema, error) {
	s := &schema{structs: make(map[string][]compiledField)}
	stack := make([]string, 0, len(roots))
	for _, root := range roots {
		if _, ok := types[root]; !ok {
			return nil, &UnsupportedTypeError{Type: root, Reason: "struct is not defined"}
		}
		stack = append(stack, root)
	}

	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := s.structs[name]; seen {
			continue
		}
		fields := make([]compiledField, 0, len(types[name]))
		for _, f := range types[name] {
			t, err := ParseType(f.Type, types)
			if err != nil {
				return nil, err
			}
			fields = append(fields, compiledField{Name: f.Name, Type: t})
			if ref := t.structRef(); ref != "" {
				if _, seen := s.structs[ref]; !seen {
					stack = append(stack, ref)
				}
			}
		}
		s.structs[name] = fields
	}
	return s, nil
}

// structRef returns the struct a (possibly nested array) type points at.
func (t *Type) structRef() string {
	for t.Kind == KindArray {
		t = t.Elem
	}
	if t.Kind == KindStruct {
		return t.Struct
	}
	return ""
}

// dependencies returns the structs transitively referenced by name,
// excluding name itself, sorted lexicographically.
func (s *schema) dependencies(name string) []string {
	visited := map[string]bool{name: true}
	stack := []string{name}
	var deps []string
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, f := range s.structs[cur] {
			ref := f.Type.structRef()
			if ref == "" || visited[ref] {
				continue
			}
			visited[ref] = true
			deps = append(deps, ref)
			stack = append(stack, ref)
		}
	}
	sort.Strings(deps)
	return deps
}

// encodeType renders the canonical type string of name and its dependencies.
func (s *schema) encodeType(name string) string {
	var b strings.Builder
	for _, n := range append([]string{name}, s.dependencies(name)...) {
		b.WriteString(n)
		b.WriteByte('(')
		for i, f := range s.structs[n] {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(f.Type.Raw)
			b.WriteByte(' ')
			b.WriteString(f.Name)
		}
		b.WriteByte(')')
	}
	return b.String()
}
