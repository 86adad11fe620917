package crud

import (
	"path/filepath"
	"strings"

	"github.com/fourchimps/crudgen/internal/types"
)

const (
	formDir       = "Form"
	controllerDir = "Controller"
	viewsDir      = "Resources/views"
	routingDir    = "Resources/config/routing"
	sourceExt     = ".go"
	viewExt       = ".html.tmpl"
)

var (
	readActions  = []string{"index", "show"}
	writeActions = []string{"new", "edit", "delete"}
	viewActions  = map[string]bool{"index": true, "show": true, "new": true, "edit": true}
)

// TypeClassName is the name of the generated form type.
func TypeClassName(ref types.EntityRef) string {
	return ref.Name() + "Type"
}

// ControllerClassName is the name of the generated controller.
func ControllerClassName(ref types.EntityRef) string {
	return ref.Name() + "Controller"
}

// FormIdentifier flattens the host module namespace, the entity namespace and
// the form type name into one lower case token.
func FormIdentifier(hostNamespace, entityNamespace []string, typeClassName string) string {
	parts := make([]string, 0, len(hostNamespace)+len(entityNamespace)+1)
	parts = append(parts, hostNamespace...)
	parts = append(parts, entityNamespace...)
	parts = append(parts, typeClassName)
	return strings.ToLower(strings.Join(parts, "_"))
}

// ClassOutputPath is the destination of the form type of ref inside moduleDir.
func ClassOutputPath(moduleDir string, ref types.EntityRef) string {
	return filepath.Join(moduleDir, formDir, filepath.FromSlash(ref.RelativePath())+"Type"+sourceExt)
}

// ControllerOutputPath is the destination of the controller of ref inside moduleDir.
func ControllerOutputPath(moduleDir string, ref types.EntityRef) string {
	return filepath.Join(moduleDir, controllerDir, filepath.FromSlash(ref.RelativePath())+"Controller"+sourceExt)
}

// ViewOutputPath is the destination of the view of one action.
func ViewOutputPath(moduleDir string, ref types.EntityRef, action string) string {
	return filepath.Join(moduleDir, viewsDir, filepath.FromSlash(ref.RelativePath()), action+viewExt)
}

// RoutingOutputPath is the destination of the routing file for non annotation formats.
func RoutingOutputPath(moduleDir string, ref types.EntityRef, format types.Format) string {
	name := strings.ToLower(strings.Join(ref.Path, "_"))
	return filepath.Join(moduleDir, filepath.FromSlash(routingDir), name+format.Extension())
}

// FormDir is the directory scanned for existing form identifiers.
func FormDir(moduleDir string) string {
	return filepath.Join(moduleDir, formDir)
}

// DefaultRoutePrefix derives the route prefix from the entity path.
func DefaultRoutePrefix(ref types.EntityRef) string {
	return strings.ToLower(strings.Join(ref.Path, "_"))
}

// NormalizeRoutePrefix falls back to the default prefix and strips the leading slash.
func NormalizeRoutePrefix(prefix string, ref types.EntityRef) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return DefaultRoutePrefix(ref)
	}
	return prefix
}

// RouteNamePrefix builds the route name prefix, e.g. "admin_blog_post".
func RouteNamePrefix(target types.Module, prefix string) string {
	name := strings.Trim(strings.ReplaceAll(prefix, "/", "_"), "_")
	host := strings.ToLower(target.Name)
	if name == "" {
		return host
	}
	return host + "_" + strings.ToLower(name)
}

// Actions lists the controller actions.
func Actions(withWrite bool) []string {
	actions := append([]string(nil), readActions...)
	if withWrite {
		actions = append(actions, writeActions...)
	}
	return actions
}

// HasView reports whether the action renders a view.
func HasView(action string) bool {
	return viewActions[action]
}

// packageName is the Go package of a file generated under base for the given namespace.
func packageName(base string, namespace []string) string {
	if len(namespace) > 0 {
		return strings.ToLower(namespace[len(namespace)-1])
	}
	return strings.ToLower(base)
}

func importPath(root, dir string, namespace []string) string {
	parts := append([]string{root, dir}, namespace...)
	return strings.Join(parts, "/")
}
