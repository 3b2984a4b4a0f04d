// Package provider implements input providers that introspect a cloud SDK's
// API surface and reduce it to the intermediate representation. The source
// provider analyzes the SDK's packages with go/packages; the reflection
// provider builds the same descriptors from live API values.
package provider

import (
	"fmt"
	"sort"

	"github.com/scaleway/ansible-modgen/modgen/ir"
)

// DefaultRegions is the SDK's current region set, used as the allowed values
// for any field named "region" when the caller does not supply its own list.
var DefaultRegions = []string{"fr-par", "nl-ams", "pl-waw"}

// waitForOptionsTypeName is the marker type excluding polling-configuration
// fields from generated request schemas.
const waitForOptionsTypeName = "WaitForOptions"

// regionFieldName triggers the region choices override.
const regionFieldName = "region"

// UnsupportedTypeError reports a reflected type outside the supported
// vocabulary. It fails the field and, transitively, the enclosing method.
type UnsupportedTypeError struct {
	// Type is the string form of the offending type.
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return "unsupported type: " + e.Type
}

// assembleAPIs builds one APIDescriptor per method group and adds the
// CRUD-complete ones to the schema. Groups whose descriptor cannot be
// constructed, or that lack the create/get/delete triad, are recorded as
// warnings and skipped; discovery continues for the remaining groups.
// Groups are processed in sorted order so output is deterministic.
func assembleAPIs(schema *ir.Schema, namespace, className, importPath string, groups map[string][]*ir.MethodDescriptor) {
	names := make([]string, 0, len(groups))
	for group := range groups {
		names = append(names, group)
	}
	sort.Strings(names)

	for _, group := range names {
		api, err := ir.NewAPIDescriptor(namespace, group, groups[group])
		if err != nil {
			schema.AddWarning(ir.Warning{
				Code:    ir.WarnInvalidResource,
				Message: err.Error(),
				Symbol:  namespace + "." + group,
			})
			continue
		}
		if !api.HasCRUDTriad() {
			schema.AddWarning(ir.Warning{
				Code:    ir.WarnIncompleteResource,
				Message: fmt.Sprintf("resource %s is missing one of create/get/delete", api.Name),
				Symbol:  namespace + "." + group,
			})
			continue
		}
		api.ClassName = className
		api.ImportPath = importPath
		schema.AddAPI(api)
	}
}
