// Package render turns skeleton templates into files on disk.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"
	"golang.org/x/tools/imports"

	"github.com/fourchimps/crudgen/internal/gen"
	"github.com/fourchimps/crudgen/internal/types"
)

//go:embed skeleton
var skeleton embed.FS

// Skeletons returns the built-in skeleton set.
func Skeletons() fs.FS {
	sub, err := fs.Sub(skeleton, "skeleton")
	if err != nil {
		panic(err)
	}
	return sub
}

// Option configures a FileRenderer.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	formatOnly bool
	log        *zap.SugaredLogger
}

// WithBaseDir adds a skeleton override directory, searched before the
// built-in skeletons.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS replaces the built-in skeletons.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithFormatOnly formats generated Go files without resolving missing imports.
func WithFormatOnly(enable bool) Option {
	return func(cfg *config) {
		cfg.formatOnly = enable
	}
}

// WithLogger sets the logger used for formatting warnings.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.log = l
		}
	}
}

// FileRenderer renders pongo2 skeletons to files.
type FileRenderer struct {
	set       *pongo2.TemplateSet
	baseDir   string
	templates fs.FS
	importOpt *imports.Options
	log       *zap.SugaredLogger
}

var (
	_ gen.Renderer = (*FileRenderer)(nil)
	_ gen.Stager   = (*FileRenderer)(nil)
)

// New returns a FileRenderer over the configured skeleton sets.
func New(opts ...Option) (*FileRenderer, error) {
	cfg := &config{
		templates: Skeletons(),
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if err := registerFilters(); err != nil {
		return nil, err
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("render: skeleton dir %s: %w", cfg.baseDir, err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	if len(loaders) == 0 {
		return nil, errors.New("render: need either a skeleton dir or an fs.FS")
	}

	set := pongo2.NewSet("crudgen", loaders...)
	set.Options.TrimBlocks = true
	set.Options.LStripBlocks = true

	return &FileRenderer{
		set:       set,
		baseDir:   cfg.baseDir,
		templates: cfg.templates,
		importOpt: &imports.Options{
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
			FormatOnly: cfg.formatOnly,
		},
		log: cfg.log,
	}, nil
}

// Render writes one file. Existing destinations are refused.
func (r *FileRenderer) Render(templateID, destination string, data types.RenderContext) error {
	tx := r.Stage()
	if err := tx.Render(templateID, destination, data); err != nil {
		return err
	}
	return tx.Commit()
}

// Stage opens a Transaction.
func (r *FileRenderer) Stage() gen.Batch {
	return &Transaction{renderer: r, staged: make(map[string]bool)}
}

// Execute renders templateID without touching the file system. Go sources are
// formatted and their imports fixed; destination names the output for that step.
func (r *FileRenderer) Execute(templateID, destination string, data types.RenderContext) ([]byte, error) {
	tpl, err := r.template(templateID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(pongo2.Context(data), &buf); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", templateID, err)
	}

	content := buf.Bytes()
	if strings.HasSuffix(destination, ".go") {
		formatted, err := imports.Process(destination, content, r.importOpt)
		if err != nil {
			// keep the raw output for debugging
			r.log.Warnw("could not format generated file", "path", destination, "error", err)
		} else {
			content = formatted
		}
	}
	return content, nil
}

// template parses id on every call: block trimming rewrites the token
// stream at execution time, so parsed templates are not reused.
func (r *FileRenderer) template(id string) (*pongo2.Template, error) {
	if !r.exists(id) {
		return nil, &types.TemplateNotFoundError{Name: id}
	}
	tpl, err := r.set.FromFile(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", id, err)
	}
	return tpl, nil
}

func (r *FileRenderer) exists(id string) bool {
	if r.baseDir != "" {
		if fi, err := os.Stat(filepath.Join(r.baseDir, filepath.FromSlash(id))); err == nil && !fi.IsDir() {
			return true
		}
	}
	if r.templates != nil {
		if fi, err := fs.Stat(r.templates, id); err == nil && !fi.IsDir() {
			return true
		}
	}
	return false
}
