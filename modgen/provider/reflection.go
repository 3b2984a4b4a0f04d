package provider

import (
	"context"
	"fmt"
	"path"
	"reflect"
	"time"

	"github.com/scaleway/ansible-modgen/modgen/ir"
)

// ReflectionProvider extracts API descriptors from live API values using
// runtime reflection. This secondary provider exists primarily to validate
// that the descriptor model is not coupled to go/types internals, and for
// callers that already hold SDK clients. Reflection cannot enumerate const
// groups, so enumeration-typed fields are emitted without choices.
type ReflectionProvider struct{}

// RegisteredAPI pairs a namespace with an SDK API value to introspect.
type RegisteredAPI struct {
	// Namespace is the product namespace for the API (e.g. "rdb_v1").
	Namespace string

	// API is a pointer to an SDK API struct (e.g. &rdb.API{}).
	API any
}

// ReflectionInputOptions configures reflection-based discovery.
type ReflectionInputOptions struct {
	// APIs are the API values to introspect.
	APIs []RegisteredAPI

	// Regions overrides the allowed values for fields named "region".
	// Defaults to DefaultRegions.
	Regions []string
}

// BuildSchema introspects the registered APIs and returns a schema.
func (p *ReflectionProvider) BuildSchema(ctx context.Context, opts ReflectionInputOptions) (*ir.Schema, error) {
	if len(opts.APIs) == 0 {
		return nil, fmt.Errorf("no APIs registered")
	}

	regions := opts.Regions
	if regions == nil {
		regions = DefaultRegions
	}

	b := &reflectionBuilder{
		schema:  &ir.Schema{},
		regions: regions,
	}

	for _, reg := range opts.APIs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := b.buildAPIClass(reg); err != nil {
			return nil, err
		}
	}

	return b.schema, nil
}

// reflectionBuilder maintains state during reflection-based discovery.
type reflectionBuilder struct {
	schema  *ir.Schema
	regions []string
}

func (b *reflectionBuilder) buildAPIClass(reg RegisteredAPI) error {
	t := reflect.TypeOf(reg.API)
	if t == nil {
		return fmt.Errorf("nil API registered for %s", reg.Namespace)
	}

	elem := t
	for elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("API for %s is %s, expected a struct or pointer to struct", reg.Namespace, elem.Kind())
	}

	groups := make(map[string][]*ir.MethodDescriptor)

	// Method(i) on a pointer type covers both value and pointer receivers.
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)

		role, remainder, ok := ir.MatchRole(m.Name)
		if !ok {
			continue
		}

		method, err := b.buildMethod(m)
		if err != nil {
			b.schema.AddWarning(ir.Warning{
				Code:    ir.WarnUnsupportedField,
				Message: fmt.Sprintf("error processing method %s: %v", m.Name, err),
				Symbol:  m.Name,
			})
			continue
		}

		group := groupForMethod(role, remainder)
		groups[group] = append(groups[group], method)
	}

	pkgPath := elem.PkgPath()
	assembleAPIs(b.schema, reg.Namespace, elem.Name(), sdkImportPath(pkgPath, path.Base(pkgPath)), groups)
	return nil
}

func (b *reflectionBuilder) buildMethod(m reflect.Method) (*ir.MethodDescriptor, error) {
	method := &ir.MethodDescriptor{Name: m.Name}
	mt := m.Type

	// In(0) is the receiver for methods obtained from a reflect.Type.
	for i := 1; i < mt.NumIn(); i++ {
		in := mt.In(i)
		if in.PkgPath() == "context" && in.Name() == "Context" {
			continue
		}
		if in.Kind() != reflect.Pointer || in.Elem().Kind() != reflect.Struct {
			continue
		}
		fields, err := b.structFields(in.Elem(), true)
		if err != nil {
			return nil, err
		}
		method.RequestFields = fields
		break
	}

	result := firstNonErrorOut(mt)
	if result == nil {
		return method, nil
	}

	resolved := result
	for resolved.Kind() == reflect.Pointer || resolved.Kind() == reflect.Slice {
		resolved = resolved.Elem()
	}
	if resolved.Kind() != reflect.Struct || resolved.Name() == "" {
		return nil, &UnsupportedTypeError{Type: result.String()}
	}
	fields, err := b.structFields(resolved, false)
	if err != nil {
		return nil, err
	}
	method.ResponseFields = fields

	return method, nil
}

func (b *reflectionBuilder) structFields(t reflect.Type, request bool) ([]ir.FieldDescriptor, error) {
	var fields []ir.FieldDescriptor
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name, omitEmpty, skip := fieldName(f.Name, f.Tag.Get("json"))
		if skip {
			continue
		}
		if request && isWaitForOptionsReflect(f.Type) {
			continue
		}

		ft, err := b.fieldType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}

		required := true
		if request {
			required = f.Type.Kind() != reflect.Pointer && !omitEmpty
		}

		fd := ir.FieldDescriptor{Name: name, Type: ft, Required: required}
		if name == regionFieldName {
			fd.Type.Choices = b.regions
		}
		fields = append(fields, fd)
	}

	return fields, nil
}

var timeType = reflect.TypeOf(time.Time{})

func (b *reflectionBuilder) fieldType(t reflect.Type) (ir.FieldType, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == timeType {
		return ir.FieldType{Kind: ir.TypeString}, nil
	}

	switch t.Kind() {
	case reflect.String:
		if t.Name() != "string" && t.PkgPath() != "" {
			// Named string type: likely an enumeration, but reflection
			// cannot enumerate its constants.
			b.schema.AddWarning(ir.Warning{
				Code:    ir.WarnEnumChoicesUnavailable,
				Message: fmt.Sprintf("choices for %s unavailable via reflection", t.String()),
				Symbol:  t.String(),
			})
		}
		return ir.FieldType{Kind: ir.TypeString}, nil
	case reflect.Bool:
		return ir.FieldType{Kind: ir.TypeBool}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ir.FieldType{Kind: ir.TypeInt}, nil
	case reflect.Float32, reflect.Float64:
		return ir.FieldType{Kind: ir.TypeFloat}, nil
	case reflect.Map:
		return ir.FieldType{Kind: ir.TypeDict}, nil
	case reflect.Slice, reflect.Array:
		return ir.FieldType{Kind: ir.TypeList}, nil
	case reflect.Struct:
		// Nested object.
		return ir.FieldType{Kind: ir.TypeDict}, nil
	default:
		return ir.FieldType{}, &UnsupportedTypeError{Type: t.String()}
	}
}

func firstNonErrorOut(mt reflect.Type) reflect.Type {
	errType := reflect.TypeOf((*error)(nil)).Elem()
	for i := 0; i < mt.NumOut(); i++ {
		out := mt.Out(i)
		if out == errType {
			continue
		}
		return out
	}
	return nil
}

func isWaitForOptionsReflect(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name() == waitForOptionsTypeName
}
