package domain

import "go.trai.ch/zerr"

// Kind classifies a schema element.
type Kind uint8

const (
	// KindUnknown is the zero Kind and is never valid in a graph.
	KindUnknown Kind = iota
	// KindNamespace groups declarations.
	KindNamespace
	// KindModel is a data model.
	KindModel
	// KindProperty is a model property.
	KindProperty
	// KindEnumType is an enumeration.
	KindEnumType
	// KindEnumMember is a member of an enumeration.
	KindEnumMember
	// KindOperation is an API operation.
	KindOperation
	// KindParameter is an operation parameter.
	KindParameter
	// KindResponseVariant is one possible response of an operation.
	KindResponseVariant
)

var kindNames = [...]string{
	KindUnknown:         "unknown",
	KindNamespace:       "namespace",
	KindModel:           "model",
	KindProperty:        "property",
	KindEnumType:        "enum",
	KindEnumMember:      "member",
	KindOperation:       "operation",
	KindParameter:       "parameter",
	KindResponseVariant: "response",
}

// containment lists which kinds each kind may contain.
var containment = map[Kind][]Kind{
	KindNamespace: {KindNamespace, KindModel, KindEnumType, KindOperation},
	KindModel:     {KindProperty},
	KindEnumType:  {KindEnumMember},
	KindOperation: {KindParameter, KindResponseVariant},
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// Valid reports whether k is a concrete kind.
func (k Kind) Valid() bool {
	return k > KindUnknown && int(k) < len(kindNames)
}

// CanContain reports whether an element of kind k may own a child of kind child.
func (k Kind) CanContain(child Kind) bool {
	for _, allowed := range containment[k] {
		if allowed == child {
			return true
		}
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind converts a kind name back into a Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if Kind(i) != KindUnknown && name == s {
			return Kind(i), nil
		}
	}
	return KindUnknown, zerr.With(zerr.Wrap(ErrGraphIntegrity, "unknown element kind"), "kind", s)
}
