package ir

// Schema is the complete result of one discovery pass: every CRUD-complete
// resource descriptor plus the non-fatal issues encountered along the way.
type Schema struct {
	// APIs are the discovered resource descriptors, in deterministic order.
	APIs []*APIDescriptor

	// Warnings are non-fatal issues: methods or resources that were skipped.
	Warnings []Warning
}

// AddAPI appends a resource descriptor to the schema.
func (s *Schema) AddAPI(api *APIDescriptor) {
	s.APIs = append(s.APIs, api)
}

// AddWarning appends a warning to the schema.
func (s *Schema) AddWarning(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// FindAPI looks up a resource descriptor by name. Returns nil if not found.
func (s *Schema) FindAPI(name string) *APIDescriptor {
	for _, api := range s.APIs {
		if api.Name == name {
			return api
		}
	}
	return nil
}

// Warning represents a non-fatal issue encountered during discovery.
// Every warning corresponds to a method or resource omitted from the output.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Symbol is the method or resource that triggered the warning.
	Symbol string
}

// Warning codes emitted by providers.
const (
	// WarnUnsupportedField: a method was skipped because one of its fields
	// has a type outside the supported vocabulary.
	WarnUnsupportedField = "UNSUPPORTED_FIELD_TYPE"

	// WarnIncompleteResource: a resource group was skipped because it lacks
	// the create/get/delete triad.
	WarnIncompleteResource = "INCOMPLETE_RESOURCE"

	// WarnInvalidResource: a resource group was skipped because its
	// descriptor could not be constructed (e.g. no identifier field).
	WarnInvalidResource = "INVALID_RESOURCE"

	// WarnEnumChoicesUnavailable: an enumeration-typed field was emitted
	// without choices because the provider cannot enumerate constants.
	WarnEnumChoicesUnavailable = "ENUM_CHOICES_UNAVAILABLE"
)
