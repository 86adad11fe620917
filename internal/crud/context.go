package crud

import (
	"strings"

	"github.com/fourchimps/crudgen/internal/types"
)

// Request is a generation request whose modules are resolved.
type Request struct {
	Entity      types.EntityRef
	Source      types.Module // module owning the entity
	Target      types.Module // host module receiving the generated files
	RoutePrefix string
	WithWrite   bool
	Format      types.Format
}

// DeriveFormContext builds the variables of the form type skeleton.
func DeriveFormContext(md *types.EntityMetadata, req *Request) (types.RenderContext, error) {
	fields, err := FormFields(md)
	if err != nil {
		return nil, err
	}
	ns := req.Entity.Namespace()
	typeClass := TypeClassName(req.Entity)
	return types.RenderContext{
		"fields":           fields,
		"identifier":       copyStrings(md.Identifier),
		"namespace":        req.Target.ImportPath,
		"package":          packageName(formDir, ns),
		"entity_bundle":    req.Source.ImportPath,
		"entity_namespace": strings.Join(ns, "/"),
		"entity_class":     req.Entity.Name(),
		"form_class":       typeClass,
		"form_type_name":   FormIdentifier(req.Target.Namespace, ns, typeClass),
		"class_path":       ClassOutputPath(req.Target.Dir, req.Entity),
	}, nil
}

// DeriveControllerContext builds the variables of the controller, view and
// routing skeletons. Composite identifiers are accepted.
func DeriveControllerContext(md *types.EntityMetadata, req *Request) (types.RenderContext, error) {
	fields, err := Fields(md)
	if err != nil {
		return nil, err
	}
	ns := req.Entity.Namespace()
	prefix := NormalizeRoutePrefix(req.RoutePrefix, req.Entity)
	format := req.Format
	if format == "" {
		format = types.FormatAnnotation
	}
	label := md.Label
	if label == "" {
		label = req.Entity.Name()
	}
	return types.RenderContext{
		"fields":               fields,
		"identifier":           copyStrings(md.Identifier),
		"identifier_generated": md.IdentifierGenerated,
		"actions":              Actions(req.WithWrite),
		"with_write":           req.WithWrite,
		"format":               format.String(),
		"route_prefix":         "/" + prefix,
		"route_name_prefix":    RouteNamePrefix(req.Target, prefix),
		"bundle":               req.Target.ImportPath,
		"package":              packageName(controllerDir, ns),
		"entity_bundle":        req.Source.ImportPath,
		"entity":               req.Entity.RelativePath(),
		"entity_class":         req.Entity.Name(),
		"entity_label":         label,
		"entity_namespace":     strings.Join(ns, "/"),
		"controller_class":     ControllerClassName(req.Entity),
		"form_class":           TypeClassName(req.Entity),
		"form_namespace":       importPath(req.Target.ImportPath, formDir, ns),
		"views_dir":            strings.Join(append([]string{viewsDir}, req.Entity.Path...), "/"),
		"class_path":           ControllerOutputPath(req.Target.Dir, req.Entity),
	}, nil
}

func copyStrings(s []string) []string {
	return append([]string(nil), s...)
}
