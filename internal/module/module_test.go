package module

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fourchimps/crudgen/internal/types"
)

func setupModule(t *testing.T, dirs ...string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n\ngo 1.22\n"), 0644); err != nil {
		t.Fatal(err)
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0755); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestFindModule(t *testing.T) {
	root := setupModule(t, "internal/blog/ent")

	path, dir, err := FindModule(filepath.Join(root, "internal", "blog", "ent"))
	if err != nil {
		t.Fatalf("FindModule() error = %v", err)
	}
	if path != "example.com/app" {
		t.Errorf("path = %q, want example.com/app", path)
	}
	want, _ := filepath.EvalSymlinks(root)
	got, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Errorf("dir = %q, want %q", got, want)
	}
}

func TestResolveByConvention(t *testing.T) {
	root := setupModule(t, "internal/blog", "admin")
	r, err := NewResolver(root)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		want types.Module
	}{
		{
			name: "Blog",
			want: types.Module{
				Name:       "Blog",
				Dir:        filepath.Join(r.Root(), "internal", "blog"),
				ImportPath: "example.com/app/internal/blog",
				Namespace:  []string{"Blog"},
				SchemaDir:  filepath.Join(r.Root(), "internal", "blog", "ent", "schema"),
			},
		},
		{
			name: "Admin",
			want: types.Module{
				Name:       "Admin",
				Dir:        filepath.Join(r.Root(), "admin"),
				ImportPath: "example.com/app/admin",
				Namespace:  []string{"Admin"},
				SchemaDir:  filepath.Join(r.Root(), "admin", "ent", "schema"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.name)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveConfiguredModule(t *testing.T) {
	root := setupModule(t, "app/user/internal/data", "internal/user")
	r, err := NewResolver(root, WithModules(map[string]Entry{
		"User": {Dir: "app/user", Schema: "app/user/internal/data/ent/schema"},
	}))
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Resolve("user")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := types.Module{
		Name:       "user",
		Dir:        filepath.Join(r.Root(), "app", "user"),
		ImportPath: "example.com/app/app/user",
		Namespace:  []string{"App", "User"},
		SchemaDir:  filepath.Join(r.Root(), "app", "user", "internal", "data", "ent", "schema"),
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveErrors(t *testing.T) {
	root := setupModule(t, "internal/blog")
	r, err := NewResolver(root, WithModules(map[string]Entry{"Shop": {Dir: "missing/shop"}}))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"Unknown", "Shop"} {
		_, err := r.Resolve(name)
		var notFound *types.ModuleNotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("Resolve(%q) error = %v, want ModuleNotFoundError", name, err)
		}
	}

	_, err = r.Resolve("../etc")
	var invalid *types.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Errorf("Resolve(../etc) error = %v, want InvalidInputError", err)
	}
}

func TestNewResolverWithoutGoMod(t *testing.T) {
	if _, err := NewResolver(t.TempDir()); err == nil {
		// a go.mod above the temp dir would make this test meaningless
		if _, _, err := FindModule(os.TempDir()); err == nil {
			t.Skip("temp dir is inside a Go module")
		}
		t.Error("NewResolver() expected error without go.mod")
	}
}
