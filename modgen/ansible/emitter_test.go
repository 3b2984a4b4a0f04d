package ansible

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/scaleway/ansible-modgen/modgen/ir"
)

// mapSink captures writes in memory for assertions.
type mapSink struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMapSink() *mapSink {
	return &mapSink{files: make(map[string][]byte)}
}

func (s *mapSink) WriteFile(ctx context.Context, path string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = append([]byte(nil), content...)
	return nil
}

func strField(name string, required bool, choices ...string) ir.FieldDescriptor {
	return ir.FieldDescriptor{
		Name:     name,
		Type:     ir.FieldType{Kind: ir.TypeString, Choices: choices},
		Required: required,
	}
}

func instanceAPI(t *testing.T) *ir.APIDescriptor {
	t.Helper()

	regions := []string{"fr-par", "nl-ams", "pl-waw"}
	response := []ir.FieldDescriptor{
		strField("id", true),
		strField("name", true),
		strField("status", true, "ready", "error"),
		{Name: "tags", Type: ir.FieldType{Kind: ir.TypeList}, Required: true},
		{Name: "is_ha_cluster", Type: ir.FieldType{Kind: ir.TypeBool}, Required: true},
		{Name: "endpoint", Type: ir.FieldType{Kind: ir.TypeDict}, Required: true},
	}

	methods := []*ir.MethodDescriptor{
		{
			Name: "CreateInstance",
			RequestFields: []ir.FieldDescriptor{
				strField("region", false, regions...),
				strField("name", false),
				strField("engine", true),
				strField("password", true),
				strField("volume_type", true, "lssd", "bssd"),
				{Name: "volume_size", Type: ir.FieldType{Kind: ir.TypeInt}, Required: true},
				{Name: "tags", Type: ir.FieldType{Kind: ir.TypeList}, Required: false},
			},
			ResponseFields: response,
		},
		{
			Name: "GetInstance",
			RequestFields: []ir.FieldDescriptor{
				strField("region", false, regions...),
				strField("instance_id", true),
			},
			ResponseFields: response,
		},
		{
			Name: "DeleteInstance",
			RequestFields: []ir.FieldDescriptor{
				strField("region", false, regions...),
				strField("instance_id", true),
			},
		},
		{
			Name: "ListInstancesAll",
			RequestFields: []ir.FieldDescriptor{
				strField("region", false, regions...),
				strField("name", false),
			},
			ResponseFields: response,
		},
	}

	api, err := ir.NewAPIDescriptor("rdb_v1", "instance", methods)
	require.NoError(t, err)
	api.ClassName = "RdbV1API"
	api.ImportPath = "scaleway.rdb.v1"
	return api
}

func TestEmitter_Generate(t *testing.T) {
	schema := &ir.Schema{}
	schema.AddAPI(instanceAPI(t))

	out := newMapSink()
	res, err := (&Emitter{}).Generate(context.Background(), schema, out)
	require.NoError(t, err)

	require.Equal(t, []string{"scaleway_rdb_v1_instance"}, res.Modules)
	require.Equal(t, []string{
		"plugins/modules/scaleway_rdb_v1_instance.py",
		"meta/runtime.yml",
	}, res.Files)

	module := string(out.files["plugins/modules/scaleway_rdb_v1_instance.py"])
	require.NotEmpty(t, module)

	assert.Contains(t, module, "module: scaleway_rdb_v1_instance")
	assert.Contains(t, module, "short_description: Manage Scaleway rdb_v1's instance")
	assert.Contains(t, module, "from scaleway.rdb.v1 import RdbV1API")
	assert.Contains(t, module, "api = RdbV1API(client)")
	assert.Contains(t, module, `resource_id = module.params.pop("instance_id", None)`)
	assert.Contains(t, module, "resource = api.create_instance(**not_none_params)")
	assert.Contains(t, module, "resources = api.list_instances_all(")
	assert.Contains(t, module, "instance_id=resource.id,")

	// Jinja expressions survive rendering verbatim.
	assert.Contains(t, module, `access_key: "{{ scw_access_key }}"`)

	// Argument spec entries.
	assert.Contains(t, module, `instance_id=dict(type="str"),`)
	assert.Contains(t, module, `choices=["lssd", "bssd"],`)
	assert.Contains(t, module, `elements="str",`)
	assert.Contains(t, module, "no_log=True,")
	assert.Contains(t, module, `required_one_of=(["instance_id", "name"],),`)

	// Documentation options.
	assert.Contains(t, module, "    volume_type:\n        description: volume_type\n        type: str\n        required: true\n        choices:\n            - lssd\n            - bssd")
	assert.Contains(t, module, "    tags:\n        description: tags\n        type: list\n        elements: str\n        required: false")

	// RETURN sample.
	assert.Contains(t, module, "        id: 00000000-0000-0000-0000-000000000000")
	assert.Contains(t, module, "        status: ready")
	assert.Contains(t, module, "        is_ha_cluster: true")
	assert.Contains(t, module, "        endpoint:\n            aaaaaa: bbbbbb")
}

func TestEmitter_Manifest(t *testing.T) {
	schema := &ir.Schema{}
	schema.AddAPI(instanceAPI(t))

	out := newMapSink()
	_, err := (&Emitter{}).Generate(context.Background(), schema, out)
	require.NoError(t, err)

	var manifest struct {
		RequiresAnsible string              `yaml:"requires_ansible"`
		ActionGroups    map[string][]string `yaml:"action_groups"`
	}
	require.NoError(t, yaml.Unmarshal(out.files["meta/runtime.yml"], &manifest))

	assert.Equal(t, DefaultRequiresAnsible, manifest.RequiresAnsible)
	assert.Equal(t, []string{"scaleway_rdb_v1_instance"}, manifest.ActionGroups["scaleway"])
}

func TestEmitter_SkipsIncompleteAPIs(t *testing.T) {
	methods := []*ir.MethodDescriptor{
		{
			Name:           "CreateThing",
			RequestFields:  []ir.FieldDescriptor{strField("name", true)},
			ResponseFields: []ir.FieldDescriptor{strField("id", true)},
		},
		{
			Name:           "GetThing",
			RequestFields:  []ir.FieldDescriptor{strField("thing_id", true)},
			ResponseFields: []ir.FieldDescriptor{strField("id", true)},
		},
	}
	api, err := ir.NewAPIDescriptor("test_v1", "thing", methods)
	require.NoError(t, err)

	schema := &ir.Schema{}
	schema.AddAPI(api)

	out := newMapSink()
	res, err := (&Emitter{}).Generate(context.Background(), schema, out)
	require.NoError(t, err)

	assert.Empty(t, res.Modules)
	assert.Equal(t, []string{"meta/runtime.yml"}, res.Files)
}

func TestEmitter_PrefixOverride(t *testing.T) {
	schema := &ir.Schema{}
	schema.AddAPI(instanceAPI(t))

	out := newMapSink()
	e := &Emitter{Prefix: "acme_", RequiresAnsible: ">=2.14", ActionGroup: "acme"}
	res, err := e.Generate(context.Background(), schema, out)
	require.NoError(t, err)

	require.Equal(t, []string{"acme_rdb_v1_instance"}, res.Modules)
	assert.Contains(t, out.files, "plugins/modules/acme_rdb_v1_instance.py")

	var manifest struct {
		RequiresAnsible string              `yaml:"requires_ansible"`
		ActionGroups    map[string][]string `yaml:"action_groups"`
	}
	require.NoError(t, yaml.Unmarshal(out.files["meta/runtime.yml"], &manifest))
	assert.Equal(t, ">=2.14", manifest.RequiresAnsible)
	assert.Equal(t, []string{"acme_rdb_v1_instance"}, manifest.ActionGroups["acme"])
}

func TestEmitter_Idempotence(t *testing.T) {
	schema := &ir.Schema{}
	schema.AddAPI(instanceAPI(t))

	first := newMapSink()
	second := newMapSink()
	_, err := (&Emitter{}).Generate(context.Background(), schema, first)
	require.NoError(t, err)
	_, err = (&Emitter{}).Generate(context.Background(), schema, second)
	require.NoError(t, err)

	assert.Equal(t, first.files, second.files)
}
