// Package module resolves module shortcuts to directories and import paths
// of the enclosing Go module.
package module

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/fourchimps/crudgen/internal/types"
)

// schemaDir is where ent schemas live inside a module by convention.
const schemaDir = "ent/schema"

// Entry declares a module explicitly. Paths are relative to the module root,
// Schema defaults to ent/schema under Dir.
type Entry struct {
	Dir    string `yaml:"dir"`
	Schema string `yaml:"schema,omitempty"`
}

// Resolver maps module names to directories of one Go module.
type Resolver struct {
	root     string
	path     string
	explicit map[string]Entry
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithModules registers module directories, relative to the module root,
// that take precedence over the naming convention.
func WithModules(modules map[string]Entry) Option {
	return func(r *Resolver) {
		for name, e := range modules {
			r.explicit[strings.ToLower(name)] = e
		}
	}
}

// NewResolver finds the go.mod enclosing dir.
func NewResolver(dir string, opts ...Option) (*Resolver, error) {
	path, root, err := FindModule(dir)
	if err != nil {
		return nil, err
	}
	r := &Resolver{
		root:     root,
		path:     path,
		explicit: make(map[string]Entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Root is the directory holding go.mod.
func (r *Resolver) Root() string { return r.root }

// Path is the module path declared in go.mod.
func (r *Resolver) Path() string { return r.path }

// Resolve looks name up in the configured modules first, then under
// internal/<name> and <name>.
func (r *Resolver) Resolve(name string) (*types.Module, error) {
	if !types.ValidIdentifier(name) {
		return nil, &types.InvalidInputError{Field: "module", Value: name, Reason: "must start with a letter and contain only letters, digits and underscores"}
	}
	lower := strings.ToLower(name)

	candidates := []string{filepath.Join("internal", lower), lower}
	schema := ""
	if e, ok := r.explicit[lower]; ok {
		candidates = []string{filepath.FromSlash(e.Dir)}
		schema = e.Schema
	}
	for _, rel := range candidates {
		dir := filepath.Join(r.root, rel)
		fi, err := os.Stat(dir)
		if err == nil && fi.IsDir() {
			return r.module(name, rel, schema), nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
		}
	}
	return nil, &types.ModuleNotFoundError{Name: name}
}

func (r *Resolver) module(name, rel, schema string) *types.Module {
	slashed := filepath.ToSlash(rel)
	var ns []string
	for _, part := range strings.Split(slashed, "/") {
		if part != "" && part != "." && part != "internal" {
			ns = append(ns, pascal(part))
		}
	}
	if len(ns) == 0 {
		ns = []string{pascal(name)}
	}
	importPath := r.path
	if slashed != "." && slashed != "" {
		importPath += "/" + slashed
	}
	dir := filepath.Join(r.root, rel)
	schemaPath := filepath.Join(dir, filepath.FromSlash(schemaDir))
	if schema != "" {
		schemaPath = filepath.Join(r.root, filepath.FromSlash(schema))
	}
	return &types.Module{
		Name:       name,
		Dir:        dir,
		ImportPath: importPath,
		Namespace:  ns,
		SchemaDir:  schemaPath,
	}
}

func pascal(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FindModule walks up from dir to the first go.mod and returns the module
// path and the directory holding it.
func FindModule(dir string) (string, string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}
	for {
		path := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return "", "", err
			}
			f, err := modfile.Parse(path, data, nil)
			if err != nil {
				return "", "", err
			}
			if f.Module == nil {
				return "", "", fmt.Errorf("%s declares no module", path)
			}
			return f.Module.Mod.Path, dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", "", fmt.Errorf("go.mod not found")
}
