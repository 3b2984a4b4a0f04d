// Package ansible renders Ansible collection files from API descriptors:
// one module under plugins/modules per resource, plus the meta/runtime.yml
// manifest enumerating them.
package ansible

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/scaleway/ansible-modgen/modgen/ir"
	"github.com/scaleway/ansible-modgen/modgen/sink"
)

const (
	// DefaultPrefix is prepended to every resource name to form the module
	// file name.
	DefaultPrefix = "scaleway_"

	// DefaultRequiresAnsible is the collection's supported Ansible range.
	DefaultRequiresAnsible = ">=2.9.10"

	// DefaultActionGroup is the action group all modules are listed under.
	DefaultActionGroup = "scaleway"

	modulesDir   = "plugins/modules"
	manifestPath = "meta/runtime.yml"
)

//go:embed templates/module.py.tmpl
var modulePySource string

// The generated modules contain literal {{ }} Jinja expressions, so the
// template uses [[ ]] delimiters.
var moduleTmpl = template.Must(template.New("module.py").
	Delims("[[", "]]").
	Funcs(template.FuncMap{"pyList": pyList}).
	Parse(modulePySource))

func pyList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Emitter renders a schema into collection files. The zero value uses the
// default prefix, Ansible range and action group.
type Emitter struct {
	// Prefix is prepended to resource names to form module names.
	Prefix string

	// RequiresAnsible is written to the manifest's requires_ansible key.
	RequiresAnsible string

	// ActionGroup is the manifest action group holding the module list.
	ActionGroup string
}

// Result reports what one emitter run produced.
type Result struct {
	// Modules are the emitted module names, in output order.
	Modules []string

	// Files are the paths written to the sink, manifest included.
	Files []string
}

// Generate renders one module file per CRUD-complete API descriptor and the
// manifest, writing everything through the sink. Rendering is deterministic:
// the same schema produces byte-identical output.
func (e *Emitter) Generate(ctx context.Context, schema *ir.Schema, out sink.OutputSink) (*Result, error) {
	prefix := e.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	res := &Result{}
	for _, api := range schema.APIs {
		if !api.HasCRUDTriad() {
			continue
		}

		moduleName := prefix + api.Name

		var buf bytes.Buffer
		if err := moduleTmpl.Execute(&buf, newModuleContext(moduleName, api)); err != nil {
			return nil, fmt.Errorf("failed to render module %s: %w", moduleName, err)
		}

		filePath := path.Join(modulesDir, moduleName+".py")
		if err := out.WriteFile(ctx, filePath, buf.Bytes()); err != nil {
			return nil, fmt.Errorf("failed to write module %s: %w", moduleName, err)
		}

		res.Modules = append(res.Modules, moduleName)
		res.Files = append(res.Files, filePath)
	}

	manifest, err := e.renderManifest(res.Modules)
	if err != nil {
		return nil, fmt.Errorf("failed to render manifest: %w", err)
	}
	if err := out.WriteFile(ctx, manifestPath, manifest); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	res.Files = append(res.Files, manifestPath)

	return res, nil
}

// runtimeManifest is the meta/runtime.yml document.
type runtimeManifest struct {
	RequiresAnsible string              `yaml:"requires_ansible"`
	ActionGroups    map[string][]string `yaml:"action_groups"`
}

func (e *Emitter) renderManifest(modules []string) ([]byte, error) {
	requires := e.RequiresAnsible
	if requires == "" {
		requires = DefaultRequiresAnsible
	}
	group := e.ActionGroup
	if group == "" {
		group = DefaultActionGroup
	}

	names := append([]string(nil), modules...)
	sort.Strings(names)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(runtimeManifest{
		RequiresAnsible: requires,
		ActionGroups:    map[string][]string{group: names},
	}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
