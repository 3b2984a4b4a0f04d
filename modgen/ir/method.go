package ir

import "strings"

// MethodDescriptor describes one SDK method: its name, the fields of its
// request message, and the fields of its response message.
type MethodDescriptor struct {
	// Name is the SDK method name (e.g. "CreateServer").
	Name string

	// RequestFields are the request message fields in declaration order,
	// excluding polling-configuration fields.
	RequestFields []FieldDescriptor

	// ResponseFields are the response message fields in declaration order.
	// Empty when the method returns nothing besides an error.
	ResponseFields []FieldDescriptor
}

// RequiredRequestFields returns the subset of request fields that are required.
func (m *MethodDescriptor) RequiredRequestFields() []FieldDescriptor {
	var fields []FieldDescriptor
	for _, f := range m.RequestFields {
		if f.Required {
			fields = append(fields, f)
		}
	}
	return fields
}

// HasRequestField reports whether a request field with the given name exists.
func (m *MethodDescriptor) HasRequestField(name string) bool {
	for _, f := range m.RequestFields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// HasResponseField reports whether a response field with the given name exists.
func (m *MethodDescriptor) HasResponseField(name string) bool {
	for _, f := range m.ResponseFields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Role identifies the CRUD role of an SDK method.
type Role int

const (
	RoleCreate Role = iota
	RoleGet
	RoleUpdate
	RoleDelete
	RoleList
	RoleWaitFor
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleCreate:
		return "create"
	case RoleGet:
		return "get"
	case RoleUpdate:
		return "update"
	case RoleDelete:
		return "delete"
	case RoleList:
		return "list"
	case RoleWaitFor:
		return "wait_for"
	default:
		return "unknown"
	}
}

// rolePrefixes maps method name prefixes to CRUD roles.
// WaitFor is checked first so that no shorter prefix can shadow it.
var rolePrefixes = []struct {
	prefix string
	role   Role
}{
	{"WaitFor", RoleWaitFor},
	{"Create", RoleCreate},
	{"Get", RoleGet},
	{"Update", RoleUpdate},
	{"Delete", RoleDelete},
	{"List", RoleList},
}

// MatchRole matches a method name against the CRUD prefix convention.
// It returns the role and the remainder of the name after the prefix.
//
// List methods follow the bulk fetch-all convention: only "List<Plural>All"
// qualifies, and the returned remainder has the "All" suffix stripped
// (paginated List methods are not usable as resource enumerators).
func MatchRole(methodName string) (Role, string, bool) {
	for _, p := range rolePrefixes {
		if !strings.HasPrefix(methodName, p.prefix) {
			continue
		}
		rest := strings.TrimPrefix(methodName, p.prefix)
		if rest == "" {
			return 0, "", false
		}
		if p.role == RoleList {
			if !strings.HasSuffix(rest, "All") || rest == "All" {
				return 0, "", false
			}
			rest = strings.TrimSuffix(rest, "All")
		}
		return p.role, rest, true
	}
	return 0, "", false
}
