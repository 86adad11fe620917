package gen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fourchimps/crudgen/internal/types"
)

type fakeMetadata map[string]*types.EntityMetadata

func (f fakeMetadata) Metadata(ref types.EntityRef) (*types.EntityMetadata, error) {
	md, ok := f[ref.String()]
	if !ok {
		return nil, &types.EntityNotFoundError{Ref: ref.String()}
	}
	return md, nil
}

type fakeModules map[string]*types.Module

func (f fakeModules) Resolve(name string) (*types.Module, error) {
	m, ok := f[name]
	if !ok {
		return nil, &types.ModuleNotFoundError{Name: name}
	}
	return m, nil
}

// fakeStager records every render. Destinations listed in exists fail as if
// the file was on disk.
type fakeStager struct {
	exists    map[string]bool
	missing   map[string]bool
	committed []types.GeneratedFile
	commits   int
}

func (s *fakeStager) Stage() Batch { return &fakeBatch{stager: s} }

type fakeBatch struct {
	stager *fakeStager
	files  []types.GeneratedFile
}

func (b *fakeBatch) Render(templateID, destination string, data types.RenderContext) error {
	if b.stager.missing[templateID] {
		return &types.TemplateNotFoundError{Name: templateID}
	}
	if b.stager.exists[destination] {
		return &types.DestinationExistsError{Path: destination}
	}
	b.files = append(b.files, types.GeneratedFile{Path: destination, Template: templateID, Content: []byte(templateID)})
	return nil
}

func (b *fakeBatch) Files() []types.GeneratedFile { return append([]types.GeneratedFile(nil), b.files...) }

func (b *fakeBatch) Commit() error {
	b.stager.commits++
	b.stager.committed = append(b.stager.committed, b.files...)
	return nil
}

type fixture struct {
	dir      string
	metadata fakeMetadata
	modules  fakeModules
	stager   *fakeStager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	return &fixture{
		dir: dir,
		metadata: fakeMetadata{
			"Blog:Article": {
				Name:                "Article",
				Identifier:          []string{"id"},
				IdentifierGenerated: true,
				Fields:              []string{"id", "title", "body"},
			},
			"Blog:Membership": {
				Name:       "Membership",
				Identifier: []string{"user_id", "group_id"},
				Fields:     []string{"user_id", "group_id", "role"},
			},
		},
		modules: fakeModules{
			"Blog": {Name: "Blog", Dir: filepath.Join(dir, "blog"), ImportPath: "example.com/app/blog", Namespace: []string{"Blog"}},
			"Admin": {Name: "Admin", Dir: filepath.Join(dir, "admin"), ImportPath: "example.com/app/admin", Namespace: []string{"Admin"}},
		},
		stager: &fakeStager{exists: map[string]bool{}, missing: map[string]bool{}},
	}
}

func (f *fixture) generator(conf Config) *Generator {
	return New(conf, f.metadata, f.modules, f.stager)
}

func (f *fixture) admin(rel ...string) string {
	return filepath.Join(append([]string{f.dir, "admin"}, rel...)...)
}

func paths(files []types.GeneratedFile) []string {
	var out []string
	for _, file := range files {
		out = append(out, file.Path)
	}
	sort.Strings(out)
	return out
}

func TestGenerateReadOnly(t *testing.T) {
	f := newFixture(t)
	res, err := f.generator(Config{}).Generate(types.GenerationRequest{Entity: "Blog:Article", Target: "Admin"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := []string{
		f.admin("Controller", "ArticleController.go"),
		f.admin("Resources", "views", "Article", "index.html.tmpl"),
		f.admin("Resources", "views", "Article", "show.html.tmpl"),
	}
	sort.Strings(want)
	if diff := cmp.Diff(want, paths(res.Files)); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	if res.Failed() {
		t.Errorf("Errors = %v", res.Errors)
	}
	if len(res.NextSteps) != 0 {
		t.Errorf("NextSteps = %v, want none for annotations", res.NextSteps)
	}
	if f.stager.commits != 1 {
		t.Errorf("commits = %d, want 1", f.stager.commits)
	}
}

func TestGenerateWithWrite(t *testing.T) {
	f := newFixture(t)
	res, err := f.generator(Config{}).Generate(types.GenerationRequest{
		Entity:    "Blog:Article",
		Target:    "Admin",
		WithWrite: true,
		Format:    "YML",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	routing := f.admin("Resources", "config", "routing", "article.yml")
	want := []string{
		f.admin("Controller", "ArticleController.go"),
		f.admin("Form", "ArticleType.go"),
		routing,
		f.admin("Resources", "views", "Article", "edit.html.tmpl"),
		f.admin("Resources", "views", "Article", "index.html.tmpl"),
		f.admin("Resources", "views", "Article", "new.html.tmpl"),
		f.admin("Resources", "views", "Article", "show.html.tmpl"),
	}
	sort.Strings(want)
	if diff := cmp.Diff(want, paths(res.Files)); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	if f.stager.commits != 2 {
		t.Errorf("commits = %d, want one per step", f.stager.commits)
	}
	wantSteps := []string{"Import " + routing + " from the routing configuration of module Admin"}
	if diff := cmp.Diff(wantSteps, res.NextSteps); diff != "" {
		t.Errorf("NextSteps mismatch (-want +got):\n%s", diff)
	}
	for _, file := range res.Files {
		if file.Path == routing && file.Template != "crud/config/routing.yml.twig" {
			t.Errorf("routing template = %q", file.Template)
		}
	}
}

func TestGenerateCompositeKeySkipsForm(t *testing.T) {
	f := newFixture(t)
	res, err := f.generator(Config{}).Generate(types.GenerationRequest{Entity: "Blog:Membership", Target: "Admin", WithWrite: true})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("Errors = %v, want the form step only", res.Errors)
	}
	var step *StepError
	if !errors.As(res.Errors[0], &step) || step.Step != StepForm {
		t.Fatalf("Errors[0] = %v, want form StepError", res.Errors[0])
	}
	var unsupported *types.UnsupportedSchemaError
	if !errors.As(res.Errors[0], &unsupported) {
		t.Errorf("Errors[0] = %v, want UnsupportedSchemaError", res.Errors[0])
	}
	if !IsRecoverable(res.Errors[0]) {
		t.Error("composite key error should be recoverable")
	}
	// Controller, index, show, new, edit.
	if len(res.Files) != 5 {
		t.Errorf("files = %v", paths(res.Files))
	}
}

func TestGenerateExistingControllerKeepsForm(t *testing.T) {
	f := newFixture(t)
	f.stager.exists[f.admin("Resources", "views", "Article", "show.html.tmpl")] = true

	res, err := f.generator(Config{}).Generate(types.GenerationRequest{Entity: "Blog:Article", Target: "Admin", WithWrite: true})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	var exists *types.DestinationExistsError
	if len(res.Errors) != 1 || !errors.As(res.Errors[0], &exists) {
		t.Fatalf("Errors = %v, want one DestinationExistsError", res.Errors)
	}
	if diff := cmp.Diff([]string{f.admin("Form", "ArticleType.go")}, paths(res.Files)); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	// The controller step did not commit anything.
	if diff := cmp.Diff([]string{f.admin("Form", "ArticleType.go")}, paths(f.stager.committed)); diff != "" {
		t.Errorf("committed mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateFormIdentifierConflict(t *testing.T) {
	f := newFixture(t)
	writeForm(t, f.admin("Form", "Legacy", "ArticleForm.go"), "admin_articletype")

	res, err := f.generator(Config{}).Generate(types.GenerationRequest{Entity: "Blog:Article", Target: "Admin", WithWrite: true})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	var conflict *types.FormIdentifierConflictError
	if len(res.Errors) != 1 || !errors.As(res.Errors[0], &conflict) {
		t.Fatalf("Errors = %v, want FormIdentifierConflictError", res.Errors)
	}
	if conflict.Identifier != "admin_articletype" {
		t.Errorf("Identifier = %q", conflict.Identifier)
	}
}

func TestGenerateMissingTemplate(t *testing.T) {
	f := newFixture(t)
	f.stager.missing[ControllerTemplate] = true

	res, err := f.generator(Config{}).Generate(types.GenerationRequest{Entity: "Blog:Article", Target: "Admin"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	var missing *types.TemplateNotFoundError
	if len(res.Errors) != 1 || !errors.As(res.Errors[0], &missing) {
		t.Fatalf("Errors = %v, want TemplateNotFoundError", res.Errors)
	}
	if f.stager.commits != 0 {
		t.Errorf("commits = %d, want 0", f.stager.commits)
	}
}

func TestGenerateDryRun(t *testing.T) {
	f := newFixture(t)
	res, err := f.generator(Config{DryRun: true}).Generate(types.GenerationRequest{Entity: "Blog:Article", Target: "Admin", WithWrite: true})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(res.Files) != 6 {
		t.Errorf("planned files = %v", paths(res.Files))
	}
	if f.stager.commits != 0 {
		t.Errorf("commits = %d, dry run must not write", f.stager.commits)
	}
}

func TestGenerateAborts(t *testing.T) {
	tests := []struct {
		name  string
		req   types.GenerationRequest
		check func(error) bool
	}{
		{
			name: "invalid shortcut",
			req:  types.GenerationRequest{Entity: "Article", Target: "Admin"},
			check: func(err error) bool {
				var e *types.InvalidInputError
				return errors.As(err, &e)
			},
		},
		{
			name: "invalid format",
			req:  types.GenerationRequest{Entity: "Blog:Article", Target: "Admin", Format: "toml"},
			check: func(err error) bool {
				var e *types.InvalidInputError
				return errors.As(err, &e) && e.Field == "format"
			},
		},
		{
			name: "unknown source module",
			req:  types.GenerationRequest{Entity: "Shop:Order", Target: "Admin"},
			check: func(err error) bool {
				var e *types.ModuleNotFoundError
				return errors.As(err, &e) && e.Name == "Shop"
			},
		},
		{
			name: "unknown target module",
			req:  types.GenerationRequest{Entity: "Blog:Article", Target: "Shop"},
			check: func(err error) bool {
				var e *types.ModuleNotFoundError
				return errors.As(err, &e) && e.Name == "Shop"
			},
		},
		{
			name: "unknown entity",
			req:  types.GenerationRequest{Entity: "Blog:Comment", Target: "Admin"},
			check: func(err error) bool {
				var e *types.EntityNotFoundError
				return errors.As(err, &e)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			res, err := f.generator(Config{}).Generate(tt.req)
			if err == nil || !tt.check(err) {
				t.Fatalf("Generate() error = %v", err)
			}
			if res != nil {
				t.Errorf("Generate() result = %+v, want nil", res)
			}
			if IsRecoverable(err) {
				t.Errorf("IsRecoverable(%v) = true", err)
			}
			if f.stager.commits != 0 {
				t.Errorf("commits = %d", f.stager.commits)
			}
		})
	}
}

func TestGenerateRoutingNextStepNeedsController(t *testing.T) {
	f := newFixture(t)
	f.stager.exists[f.admin("Controller", "ArticleController.go")] = true

	res, err := f.generator(Config{}).Generate(types.GenerationRequest{Entity: "Blog:Article", Target: "Admin", Format: "yml"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("Errors = %v, want the controller step", res.Errors)
	}
	if len(res.NextSteps) != 0 {
		t.Errorf("NextSteps = %v, routing file was not written", res.NextSteps)
	}
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unsupported schema", &types.UnsupportedSchemaError{Entity: "Membership"}, true},
		{"existing destination", &StepError{Step: StepController, Err: &types.DestinationExistsError{Path: "a.go"}}, true},
		{"missing template", &StepError{Step: StepController, Err: &types.TemplateNotFoundError{Name: "x.twig"}}, true},
		{"form identifier conflict", &StepError{Step: StepForm, Err: &types.FormIdentifierConflictError{Identifier: "admin_articletype"}}, true},
		{"write failure", &StepError{Step: StepForm, Err: fmt.Errorf("failed to create a.go: %w", os.ErrPermission)}, false},
		{"unknown module", &types.ModuleNotFoundError{Name: "Shop"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecoverable(tt.err); got != tt.want {
				t.Errorf("IsRecoverable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
