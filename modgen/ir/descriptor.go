// Package ir defines the intermediate representation for SDK API descriptors.
// Providers reduce reflected SDK metadata to these types; the emitter renders
// them into Ansible module sources. Everything here is pure data with no I/O.
package ir

// TypeKind identifies the semantic kind of a field type.
// The vocabulary intentionally matches the Ansible argument-spec type names.
type TypeKind int

const (
	TypeString TypeKind = iota
	TypeInt
	TypeBool
	TypeFloat
	TypeDict // nested object or free-form mapping
	TypeList // ordered collection
)

// String returns the Ansible argument-spec name for the kind.
func (k TypeKind) String() string {
	switch k {
	case TypeString:
		return "str"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeFloat:
		return "float"
	case TypeDict:
		return "dict"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// FieldType describes the resolved type of a single field.
type FieldType struct {
	// Kind is the semantic kind of the field.
	Kind TypeKind

	// Choices is the ordered set of allowed string values.
	// Populated only for enumeration-typed fields and for the region field.
	Choices []string
}

// FieldDescriptor describes one request or response field.
// Immutable after construction.
type FieldDescriptor struct {
	// Name is the wire name of the field (snake_case).
	Name string

	// Type is the resolved field type.
	Type FieldType

	// Required reports whether the field must be supplied.
	// Response fields are always required.
	Required bool

	// Description is reserved for future SDK-provided documentation.
	// Currently always empty.
	Description string
}
