package render

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	gotypes "go/types"
	"testing"

	"github.com/stretchr/testify/require"
)

// Standard library packages are checked from GOROOT sources once per test binary.
var stdImporter = importer.ForCompiler(token.NewFileSet(), "source", nil)

// sourcePackages resolves generated packages from their rendered content and
// everything else from the standard library.
type sourcePackages struct {
	fset    *token.FileSet
	sources map[string][]byte
	checked map[string]*gotypes.Package
}

func (p *sourcePackages) Import(path string) (*gotypes.Package, error) {
	if pkg, ok := p.checked[path]; ok {
		return pkg, nil
	}
	src, ok := p.sources[path]
	if !ok {
		return stdImporter.Import(path)
	}
	f, err := parser.ParseFile(p.fset, path+"/generated.go", src, parser.AllErrors)
	if err != nil {
		return nil, err
	}
	conf := gotypes.Config{Importer: p}
	pkg, err := conf.Check(path, p.fset, []*ast.File{f}, nil)
	if err != nil {
		return nil, err
	}
	p.checked[path] = pkg
	return pkg, nil
}

// requireCompiles type-checks the generated package at path. sources maps the
// import path of every generated package involved to its content.
func requireCompiles(t *testing.T, path string, sources map[string][]byte) {
	t.Helper()
	p := &sourcePackages{
		fset:    token.NewFileSet(),
		sources: sources,
		checked: make(map[string]*gotypes.Package),
	}
	_, err := p.Import(path)
	require.NoError(t, err, "generated source of %s:\n%s", path, sources[path])
}
