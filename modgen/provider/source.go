package provider

import (
	"context"
	"fmt"
	"go/constant"
	"go/types"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/scaleway/ansible-modgen/modgen/ir"
)

// SourceProvider extracts API descriptors by analyzing SDK source code with
// go/packages. This is the primary provider: unlike reflection it can
// enumerate enum constants, so enumeration-typed fields carry their choices.
type SourceProvider struct{}

// SourceInputOptions configures source-based discovery.
type SourceInputOptions struct {
	// Packages are the SDK package patterns to walk
	// (e.g. "github.com/scaleway/scaleway-sdk-go/api/...").
	Packages []string

	// Regions overrides the allowed values for fields named "region".
	// Defaults to DefaultRegions.
	Regions []string
}

// BuildSchema walks the SDK packages, finds every type whose name ends in
// "API", groups its methods into resources and returns the resulting schema.
// Method- and resource-level failures become schema warnings, never errors.
func (p *SourceProvider) BuildSchema(ctx context.Context, opts SourceInputOptions) (*ir.Schema, error) {
	if len(opts.Packages) == 0 {
		return nil, fmt.Errorf("no packages specified")
	}

	regions := opts.Regions
	if regions == nil {
		regions = DefaultRegions
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, opts.Packages...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found")
	}

	b := &sourceBuilder{
		schema:  &ir.Schema{},
		regions: regions,
	}

	// packages.Load returns packages in dependency order; sort by import
	// path so descriptors come out in a stable order across runs.
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	for _, pkg := range pkgs {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			if !strings.HasSuffix(name, "API") {
				continue
			}
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !tn.Exported() {
				continue
			}
			named, ok := tn.Type().(*types.Named)
			if !ok {
				continue
			}
			b.buildAPIClass(
				namespaceForPackage(pkg.PkgPath, pkg.Name),
				sdkImportPath(pkg.PkgPath, pkg.Name),
				named,
			)
		}
	}

	return b.schema, nil
}

// sourceBuilder maintains state during source-based discovery.
type sourceBuilder struct {
	schema  *ir.Schema
	regions []string
}

// buildAPIClass groups the methods of one API class into resources.
// Methods with unsupported field types are recorded and skipped; the rest of
// the class is still processed.
func (b *sourceBuilder) buildAPIClass(namespace, importPath string, named *types.Named) {
	groups := make(map[string][]*ir.MethodDescriptor)

	mset := types.NewMethodSet(types.NewPointer(named))
	for i := 0; i < mset.Len(); i++ {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		role, remainder, ok := ir.MatchRole(fn.Name())
		if !ok {
			continue
		}

		method, err := b.buildMethod(fn)
		if err != nil {
			b.schema.AddWarning(ir.Warning{
				Code:    ir.WarnUnsupportedField,
				Message: fmt.Sprintf("error processing method %s: %v", fn.Name(), err),
				Symbol:  fn.Name(),
			})
			continue
		}

		group := groupForMethod(role, remainder)
		groups[group] = append(groups[group], method)
	}

	assembleAPIs(b.schema, namespace, named.Obj().Name(), importPath, groups)
}

// buildMethod builds a MethodDescriptor for one SDK method.
//
// Request fields come from the method's request message: the first
// pointer-to-struct parameter, with context.Context and variadic option
// parameters skipped. Response fields come from the first non-error result
// when it resolves to a named struct.
func (b *sourceBuilder) buildMethod(fn *types.Func) (*ir.MethodDescriptor, error) {
	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return nil, fmt.Errorf("%s is not a method", fn.Name())
	}

	method := &ir.MethodDescriptor{Name: fn.Name()}

	for i := 0; i < sig.Params().Len(); i++ {
		pt := sig.Params().At(i).Type()
		if isContextType(pt) {
			continue
		}
		ptr, ok := pt.(*types.Pointer)
		if !ok {
			continue
		}
		if _, ok := ptr.Elem().Underlying().(*types.Struct); !ok {
			continue
		}
		fields, err := b.structFields(ptr.Elem(), true)
		if err != nil {
			return nil, err
		}
		method.RequestFields = fields
		break
	}

	result := firstNonErrorResult(sig.Results())
	if result == nil {
		return method, nil
	}

	resolved := unwrapResult(result)
	named, ok := resolved.(*types.Named)
	if !ok {
		return nil, &UnsupportedTypeError{Type: result.String()}
	}
	if _, ok := named.Underlying().(*types.Struct); !ok {
		return nil, &UnsupportedTypeError{Type: result.String()}
	}
	fields, err := b.structFields(named, false)
	if err != nil {
		return nil, err
	}
	method.ResponseFields = fields

	return method, nil
}

// structFields converts the fields of a struct type to field descriptors, in
// declaration order. For request messages, polling-configuration fields and
// json:"-" fields are excluded and pointer fields are optional; response
// fields are always required.
func (b *sourceBuilder) structFields(t types.Type, request bool) ([]ir.FieldDescriptor, error) {
	st, ok := t.Underlying().(*types.Struct)
	if !ok {
		return nil, &UnsupportedTypeError{Type: t.String()}
	}

	var fields []ir.FieldDescriptor
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Exported() {
			continue
		}

		name, omitEmpty, skip := fieldName(f.Name(), reflect.StructTag(st.Tag(i)).Get("json"))
		if skip {
			continue
		}
		if request && isWaitForOptionsType(f.Type()) {
			continue
		}

		ft, err := b.fieldType(f.Type())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}

		required := true
		if request {
			_, isPtr := f.Type().(*types.Pointer)
			required = !isPtr && !omitEmpty
		}

		fd := ir.FieldDescriptor{Name: name, Type: ft, Required: required}
		if name == regionFieldName {
			fd.Type.Choices = b.regions
		}
		fields = append(fields, fd)
	}

	return fields, nil
}

// fieldType classifies a Go type into the field type vocabulary.
func (b *sourceBuilder) fieldType(t types.Type) (ir.FieldType, error) {
	switch typ := t.(type) {
	case *types.Pointer:
		return b.fieldType(typ.Elem())

	case *types.Basic:
		info := typ.Info()
		switch {
		case info&types.IsString != 0:
			return ir.FieldType{Kind: ir.TypeString}, nil
		case info&types.IsBoolean != 0:
			return ir.FieldType{Kind: ir.TypeBool}, nil
		case info&types.IsInteger != 0:
			return ir.FieldType{Kind: ir.TypeInt}, nil
		case info&types.IsFloat != 0:
			return ir.FieldType{Kind: ir.TypeFloat}, nil
		default:
			return ir.FieldType{}, &UnsupportedTypeError{Type: typ.String()}
		}

	case *types.Slice, *types.Array:
		return ir.FieldType{Kind: ir.TypeList}, nil

	case *types.Map:
		return ir.FieldType{Kind: ir.TypeDict}, nil

	case *types.Alias:
		return b.fieldType(typ.Rhs())

	case *types.Named:
		obj := typ.Obj()
		if obj.Pkg() != nil && obj.Pkg().Path() == "time" {
			switch obj.Name() {
			case "Time":
				// Timestamps travel as RFC 3339 strings.
				return ir.FieldType{Kind: ir.TypeString}, nil
			case "Duration":
				return ir.FieldType{Kind: ir.TypeInt}, nil
			}
		}

		switch underlying := typ.Underlying().(type) {
		case *types.Struct:
			// Nested object.
			return ir.FieldType{Kind: ir.TypeDict}, nil
		case *types.Basic:
			ft, err := b.fieldType(underlying)
			if err != nil {
				return ir.FieldType{}, &UnsupportedTypeError{Type: typ.String()}
			}
			if ft.Kind == ir.TypeString {
				ft.Choices = enumChoices(typ)
			}
			return ft, nil
		default:
			return b.fieldType(underlying)
		}

	default:
		return ir.FieldType{}, &UnsupportedTypeError{Type: t.String()}
	}
}

// enumChoices collects the values of package-level string constants declared
// with the given named type. Returns nil when the type has no constants
// (a plain named string, not an enumeration). Order follows the package
// scope's sorted names, which is stable across runs.
func enumChoices(named *types.Named) []string {
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return nil
	}

	var choices []string
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		cnst, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}
		if !types.Identical(cnst.Type(), named) {
			continue
		}
		if cnst.Val().Kind() != constant.String {
			continue
		}
		choices = append(choices, constant.StringVal(cnst.Val()))
	}
	return choices
}

// unwrapResult unwraps pointers and slices to the element type, so that
// *Server, []*Server and []Server all resolve to Server.
func unwrapResult(t types.Type) types.Type {
	for {
		switch typ := t.(type) {
		case *types.Pointer:
			t = typ.Elem()
		case *types.Slice:
			t = typ.Elem()
		default:
			return t
		}
	}
}

// firstNonErrorResult returns the first result type that is not error, or nil.
func firstNonErrorResult(results *types.Tuple) types.Type {
	errType := types.Universe.Lookup("error").Type()
	for i := 0; i < results.Len(); i++ {
		rt := results.At(i).Type()
		if types.Identical(rt, errType) {
			continue
		}
		return rt
	}
	return nil
}

// isContextType reports whether t is context.Context.
func isContextType(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == "context" && obj.Name() == "Context"
}

// isWaitForOptionsType reports whether t is the polling-configuration marker
// type, directly or behind a pointer.
func isWaitForOptionsType(t types.Type) bool {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	return named.Obj().Name() == waitForOptionsTypeName
}
