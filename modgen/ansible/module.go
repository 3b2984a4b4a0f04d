package ansible

import (
	"strings"

	"github.com/stoewer/go-strcase"

	"github.com/scaleway/ansible-modgen/modgen/ir"
)

// moduleOption is one entry of the generated module's argument spec.
type moduleOption struct {
	Name     string
	Type     string
	Elements string
	Required bool
	Choices  []string
	NoLog    bool
}

// exampleValue is one line of the EXAMPLES block.
type exampleValue struct {
	Name  string
	Value string
}

// returnValue is one field of the RETURN sample, pre-rendered as YAML lines.
type returnValue struct {
	Name  string
	Lines []string
}

// moduleContext is the rendering context for one generated module file.
type moduleContext struct {
	ModuleName string
	Namespace  string
	Group      string
	ClassName  string
	ImportPath string
	RequestID  string
	ResponseID string

	Options  []moduleOption
	Examples []exampleValue
	Returns  []returnValue

	CreateMethod string
	GetMethod    string
	DeleteMethod string
	ListMethod   string

	HasName         bool
	HasListByName   bool
	GetHasRegion    bool
	ListHasRegion   bool
	DeleteHasRegion bool
}

const regionField = "region"

// newModuleContext flattens an API descriptor into the template context.
func newModuleContext(moduleName string, api *ir.APIDescriptor) moduleContext {
	mc := moduleContext{
		ModuleName: moduleName,
		Namespace:  api.Namespace,
		Group:      api.Group,
		ClassName:  api.ClassName,
		ImportPath: api.ImportPath,
		RequestID:  api.RequestIDField.Name,
		ResponseID: api.ResponseIDField.Name,

		CreateMethod: pyMethodName(api.Create.Name),
		GetMethod:    pyMethodName(api.Get.Name),
		DeleteMethod: pyMethodName(api.Delete.Name),

		HasName:         api.Create.HasRequestField("name"),
		GetHasRegion:    api.Get.HasRequestField(regionField),
		DeleteHasRegion: api.Delete.HasRequestField(regionField),
	}

	if api.List != nil {
		mc.ListMethod = pyMethodName(api.List.Name)
		mc.HasListByName = api.List.HasRequestField("name")
		mc.ListHasRegion = api.List.HasRequestField(regionField)
	}

	for _, f := range api.Create.RequestFields {
		if f.Name == mc.RequestID {
			continue
		}
		mc.Options = append(mc.Options, newModuleOption(f))
	}

	for _, f := range api.Create.RequiredRequestFields() {
		if f.Name == mc.RequestID {
			continue
		}
		mc.Examples = append(mc.Examples, exampleValue{Name: f.Name, Value: exampleSample(f)})
	}

	for _, f := range api.Get.ResponseFields {
		mc.Returns = append(mc.Returns, returnValue{Name: f.Name, Lines: returnSample(f)})
	}

	return mc
}

func newModuleOption(f ir.FieldDescriptor) moduleOption {
	opt := moduleOption{
		Name:     f.Name,
		Type:     f.Type.Kind.String(),
		Required: f.Required,
		Choices:  f.Type.Choices,
		NoLog:    strings.Contains(f.Name, "password") || strings.Contains(f.Name, "secret"),
	}
	if f.Type.Kind == ir.TypeList {
		opt.Elements = "str"
	}
	return opt
}

// pyMethodName converts an SDK method name to its Python binding name
// (CreateInstance becomes create_instance, ListInstancesAll becomes
// list_instances_all).
func pyMethodName(name string) string {
	return strcase.SnakeCase(name)
}

func exampleSample(f ir.FieldDescriptor) string {
	if f.Type.Kind == ir.TypeBool {
		return "true"
	}
	return `"aaaaaa"`
}

const sampleIndent = "        "

// returnSample renders one field of the RETURN sample block, key line
// included, indented to sit under "sample:".
func returnSample(f ir.FieldDescriptor) []string {
	switch f.Type.Kind {
	case ir.TypeDict:
		return []string{
			sampleIndent + f.Name + ":",
			sampleIndent + "    aaaaaa: bbbbbb",
			sampleIndent + "    cccccc: dddddd",
		}
	case ir.TypeList:
		return []string{
			sampleIndent + f.Name + ":",
			sampleIndent + "    - aaaaaa",
			sampleIndent + "    - bbbbbb",
		}
	case ir.TypeBool:
		return []string{sampleIndent + f.Name + ": true"}
	case ir.TypeInt:
		return []string{sampleIndent + f.Name + ": 3"}
	case ir.TypeFloat:
		return []string{sampleIndent + f.Name + ": 3.14"}
	default:
		return []string{sampleIndent + f.Name + ": " + stringSample(f)}
	}
}

func stringSample(f ir.FieldDescriptor) string {
	if f.Name == "id" || strings.HasSuffix(f.Name, "_id") {
		return "00000000-0000-0000-0000-000000000000"
	}
	if len(f.Type.Choices) > 0 {
		return f.Type.Choices[0]
	}
	return `"aaaaaa"`
}
