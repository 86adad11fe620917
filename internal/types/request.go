package types

import (
	"regexp"
	"strings"
)

var identRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether s can be used as a module or entity name.
func ValidIdentifier(s string) bool {
	return identRE.MatchString(s)
}

// EntityRef is a parsed entity shortcut, "Blog:Post" or "Blog:Admin/Post".
type EntityRef struct {
	Module string
	Path   []string
}

// ParseEntityRef parses and validates the shortcut notation.
func ParseEntityRef(s string) (EntityRef, error) {
	raw := strings.TrimSpace(s)
	invalid := func(reason string) (EntityRef, error) {
		return EntityRef{}, &InvalidInputError{Field: "entity", Value: s, Reason: reason}
	}
	module, entity, ok := strings.Cut(raw, ":")
	if !ok {
		return invalid("the entity name must use the shortcut notation like Blog:Post")
	}
	if strings.Contains(entity, ":") {
		return invalid("the shortcut notation accepts a single ':'")
	}
	if !ValidIdentifier(module) {
		return invalid("the module name is not a valid identifier")
	}
	entity = strings.ReplaceAll(entity, `\`, "/")
	var path []string
	for _, seg := range strings.Split(entity, "/") {
		if !ValidIdentifier(seg) {
			return invalid("entity path segment " + `"` + seg + `"` + " is not a valid identifier")
		}
		path = append(path, seg)
	}
	return EntityRef{Module: module, Path: path}, nil
}

// Name is the simple entity name, the last path segment.
func (r EntityRef) Name() string {
	if len(r.Path) == 0 {
		return ""
	}
	return r.Path[len(r.Path)-1]
}

// Namespace returns the path segments before the entity name.
func (r EntityRef) Namespace() []string {
	if len(r.Path) <= 1 {
		return nil
	}
	return append([]string(nil), r.Path[:len(r.Path)-1]...)
}

// RelativePath is the entity path joined with "/".
func (r EntityRef) RelativePath() string {
	return strings.Join(r.Path, "/")
}

func (r EntityRef) String() string {
	return r.Module + ":" + r.RelativePath()
}

// Module is a resolved host or source module.
type Module struct {
	Name       string
	Dir        string   // absolute root directory
	ImportPath string   // Go import path of Dir
	Namespace  []string // segments used to build form identifiers
	SchemaDir  string   // ent schema package directory
}

// GenerationRequest holds the parameters of one generation, as entered by the user.
type GenerationRequest struct {
	Entity      string
	Target      string
	RoutePrefix string
	WithWrite   bool
	Format      string
}

// RenderContext maps template variable names to values.
type RenderContext map[string]any
