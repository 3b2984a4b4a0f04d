package ir

import (
	"fmt"
	"strings"
)

// APIDescriptor is the in-memory model of one cloud resource's CRUD method
// surface. It is the template-rendering context for one generated module.
type APIDescriptor struct {
	// Namespace is the SDK product namespace (e.g. "rdb_v1").
	Namespace string

	// Group is the resource name fragment within the namespace (e.g. "database").
	Group string

	// Name is "<namespace>_<group>", or just the namespace when the group is empty.
	Name string

	// ClassName is the SDK API class the generated module instantiates
	// (e.g. "RdbV1API").
	ClassName string

	// ImportPath is the SDK import path for ClassName in the generated
	// module's target language (e.g. "scaleway.rdb.v1").
	ImportPath string

	// CRUD method slots. Any of these may be nil.
	Create  *MethodDescriptor
	Get     *MethodDescriptor
	Update  *MethodDescriptor
	Delete  *MethodDescriptor
	List    *MethodDescriptor
	WaitFor *MethodDescriptor

	// RequestIDField is the request field carrying the resource identifier.
	RequestIDField FieldDescriptor

	// ResponseIDField is the response field carrying the resource identifier.
	ResponseIDField FieldDescriptor
}

// NewAPIDescriptor builds an APIDescriptor for one resource group, assigning
// methods to CRUD slots by prefix and inferring the identifier fields.
//
// It fails when no method matches any recognized prefix, when no id-source
// method (get, update or delete) is available, or when the id-source method
// exposes no request or response fields to infer an identifier from.
func NewAPIDescriptor(namespace, group string, methods []*MethodDescriptor) (*APIDescriptor, error) {
	api := &APIDescriptor{
		Namespace: namespace,
		Group:     group,
		Name:      namespace,
	}
	if group != "" {
		api.Name = namespace + "_" + group
	}

	matched := false
	for _, method := range methods {
		role, _, ok := MatchRole(method.Name)
		if !ok {
			continue
		}
		matched = true
		switch role {
		case RoleCreate:
			api.Create = method
		case RoleGet:
			api.Get = method
		case RoleUpdate:
			api.Update = method
		case RoleDelete:
			api.Delete = method
		case RoleList:
			api.List = method
		case RoleWaitFor:
			api.WaitFor = method
		}
	}
	if !matched {
		return nil, fmt.Errorf("no CRUD methods found for %s", api.Name)
	}

	// The id-source method supplies the field shapes for identifier
	// inference. Get is preferred; update and delete follow because their
	// requests address an existing resource and so carry its id as well.
	idSource := api.Get
	if idSource == nil {
		idSource = api.Update
	}
	if idSource == nil {
		idSource = api.Delete
	}
	if idSource == nil {
		return nil, fmt.Errorf("unable to find method with ID field for %s", api.Name)
	}

	requestID, ok := findIDField(idSource.RequestFields, group+"_id")
	if !ok {
		if len(idSource.RequestFields) == 0 {
			return nil, fmt.Errorf("unable to find request ID field for %s (no request fields)", api.Name)
		}
		requestID = idSource.RequestFields[0]
	}
	api.RequestIDField = requestID

	responseID, ok := findIDField(idSource.ResponseFields, "id")
	if !ok {
		if len(idSource.ResponseFields) == 0 {
			return nil, fmt.Errorf("unable to find response ID field for %s (no response fields)", api.Name)
		}
		responseID = idSource.ResponseFields[0]
	}
	api.ResponseIDField = responseID

	return api, nil
}

// HasCRUDTriad reports whether the create, get and delete methods are all
// present. Only resources with the full triad are emitted.
func (api *APIDescriptor) HasCRUDTriad() bool {
	return api.Create != nil && api.Get != nil && api.Delete != nil
}

// findIDField returns the first field whose name contains substr.
func findIDField(fields []FieldDescriptor, substr string) (FieldDescriptor, bool) {
	for _, f := range fields {
		if strings.Contains(f.Name, substr) {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}
