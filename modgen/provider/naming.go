package provider

import (
	"regexp"
	"strings"

	"github.com/stoewer/go-strcase"
	"github.com/tangzero/inflector"

	"github.com/scaleway/ansible-modgen/modgen/ir"
)

var versionSegment = regexp.MustCompile(`^v\d+[a-z0-9]*$`)

// groupForMethod derives a resource group name from a matched method name
// remainder. List remainders are plural (ListServersAll -> "Servers") and are
// singularized before conversion to snake_case.
func groupForMethod(role ir.Role, remainder string) string {
	if role == ir.RoleList {
		remainder = inflector.Singularize(remainder)
	}
	return strcase.SnakeCase(remainder)
}

// namespaceForPackage derives the "<product>_<version>" namespace from an SDK
// package import path ending in ".../<product>/<version>". Packages without a
// trailing version segment fall back to the package name.
func namespaceForPackage(pkgPath, pkgName string) string {
	product, version, ok := splitProductVersion(pkgPath)
	if !ok {
		return pkgName
	}
	return product + "_" + version
}

// sdkImportPath derives the Python-side SDK import path for the generated
// module (e.g. "scaleway.rdb.v1").
func sdkImportPath(pkgPath, pkgName string) string {
	product, version, ok := splitProductVersion(pkgPath)
	if !ok {
		return "scaleway." + pkgName
	}
	return "scaleway." + product + "." + version
}

func splitProductVersion(pkgPath string) (product, version string, ok bool) {
	segments := strings.Split(pkgPath, "/")
	if len(segments) < 2 {
		return "", "", false
	}
	last := segments[len(segments)-1]
	if !versionSegment.MatchString(last) {
		return "", "", false
	}
	return segments[len(segments)-2], last, true
}

// fieldName resolves the wire name of a struct field: the json tag name when
// present, else the snake_case form of the Go field name.
func fieldName(goName, jsonTag string) (name string, omitEmpty, skip bool) {
	if jsonTag == "" {
		return strcase.SnakeCase(goName), false, false
	}
	parts := strings.Split(jsonTag, ",")
	name = parts[0]
	if name == "-" && len(parts) == 1 {
		return "", false, true
	}
	if name == "" {
		name = strcase.SnakeCase(goName)
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}
