package ir

import "testing"

func TestTypeKind_String(t *testing.T) {
	tests := []struct {
		kind TypeKind
		want string
	}{
		{TypeString, "str"},
		{TypeInt, "int"},
		{TypeBool, "bool"},
		{TypeFloat, "float"},
		{TypeDict, "dict"},
		{TypeList, "list"},
		{TypeKind(999), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TypeKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRole_String(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleCreate, "create"},
		{RoleGet, "get"},
		{RoleUpdate, "update"},
		{RoleDelete, "delete"},
		{RoleList, "list"},
		{RoleWaitFor, "wait_for"},
		{Role(999), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.role.String(); got != tt.want {
			t.Errorf("Role.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMatchRole(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		wantRole Role
		wantRest string
		wantOK   bool
	}{
		{"create", "CreateServer", RoleCreate, "Server", true},
		{"get", "GetServer", RoleGet, "Server", true},
		{"update", "UpdateServer", RoleUpdate, "Server", true},
		{"delete", "DeleteServer", RoleDelete, "Server", true},
		{"wait for", "WaitForServer", RoleWaitFor, "Server", true},
		{"multi word", "CreateSecurityGroupRule", RoleCreate, "SecurityGroupRule", true},
		{"list all", "ListServersAll", RoleList, "Servers", true},
		{"paginated list excluded", "ListServers", 0, "", false},
		{"bare list all excluded", "ListAll", 0, "", false},
		{"bare prefix excluded", "Create", 0, "", false},
		{"unrecognized", "AttachVolume", 0, "", false},
		{"empty", "", 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, rest, ok := MatchRole(tt.method)
			if ok != tt.wantOK {
				t.Fatalf("MatchRole(%q) ok = %v, want %v", tt.method, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if role != tt.wantRole {
				t.Errorf("MatchRole(%q) role = %v, want %v", tt.method, role, tt.wantRole)
			}
			if rest != tt.wantRest {
				t.Errorf("MatchRole(%q) rest = %q, want %q", tt.method, rest, tt.wantRest)
			}
		})
	}
}

func TestMethodDescriptor_RequiredRequestFields(t *testing.T) {
	m := &MethodDescriptor{
		Name: "CreateServer",
		RequestFields: []FieldDescriptor{
			{Name: "name", Type: FieldType{Kind: TypeString}, Required: true},
			{Name: "tags", Type: FieldType{Kind: TypeList}, Required: false},
			{Name: "zone", Type: FieldType{Kind: TypeString}, Required: true},
		},
	}

	required := m.RequiredRequestFields()
	if len(required) != 2 {
		t.Fatalf("got %d required fields, want 2", len(required))
	}
	if required[0].Name != "name" || required[1].Name != "zone" {
		t.Errorf("required fields = %q, %q; want name, zone", required[0].Name, required[1].Name)
	}
}

func TestMethodDescriptor_HasFields(t *testing.T) {
	m := &MethodDescriptor{
		Name:           "GetServer",
		RequestFields:  []FieldDescriptor{{Name: "server_id"}},
		ResponseFields: []FieldDescriptor{{Name: "id"}, {Name: "name"}},
	}

	if !m.HasRequestField("server_id") {
		t.Error("HasRequestField(server_id) = false, want true")
	}
	if m.HasRequestField("name") {
		t.Error("HasRequestField(name) = true, want false")
	}
	if !m.HasResponseField("name") {
		t.Error("HasResponseField(name) = false, want true")
	}
	if m.HasResponseField("server_id") {
		t.Error("HasResponseField(server_id) = true, want false")
	}
}
