package gen

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fourchimps/crudgen/internal/crud"
	"github.com/fourchimps/crudgen/internal/types"
)

// Template identifiers of the skeleton sets.
const (
	ControllerTemplate = "crud/controller.go.twig"
	FormTemplate       = "form/FormType.go.twig"
	viewTemplate       = "crud/views/%s.html.twig"
	routingTemplate    = "crud/config/routing%s.twig"
)

// Generator wires the collaborators around the crud derivations.
type Generator struct {
	conf     Config
	metadata MetadataProvider
	modules  ModuleResolver
	renderer Stager
	log      *zap.SugaredLogger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger, a no-op logger is used otherwise.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// New returns a Generator using the given collaborators.
func New(conf Config, metadata MetadataProvider, modules ModuleResolver, renderer Stager, opts ...Option) *Generator {
	g := &Generator{
		conf:     conf,
		metadata: metadata,
		modules:  modules,
		renderer: renderer,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the controller step and, with write actions, the form step.
// Resolution failures abort and return an error; step failures are collected
// in Result.Errors and leave the files of that step untouched.
func (g *Generator) Generate(in types.GenerationRequest) (*Result, error) {
	req, err := g.resolve(in)
	if err != nil {
		return nil, err
	}
	log := g.log.With("entity", req.Entity.String(), "target", req.Target.Name)

	md, err := g.metadata.Metadata(req.Entity)
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata: %w", err)
	}

	res := &Result{}
	files, err := g.generateController(md, req)
	if err != nil {
		log.Warnw("controller generation skipped", "error", err)
		res.Errors = append(res.Errors, &StepError{Step: StepController, Err: err})
	} else {
		log.Infow("controller generated", "files", len(files))
		res.Files = append(res.Files, files...)
		if req.Format != types.FormatAnnotation {
			res.NextSteps = append(res.NextSteps, fmt.Sprintf("Import %s from the routing configuration of module %s",
				crud.RoutingOutputPath(req.Target.Dir, req.Entity, req.Format), req.Target.Name))
		}
	}

	if req.WithWrite {
		files, err := g.generateForm(md, req)
		if err != nil {
			log.Warnw("form generation skipped", "error", err)
			res.Errors = append(res.Errors, &StepError{Step: StepForm, Err: err})
		} else {
			log.Infow("form generated", "files", len(files))
			res.Files = append(res.Files, files...)
		}
	}

	return res, nil
}

func (g *Generator) resolve(in types.GenerationRequest) (*crud.Request, error) {
	ref, err := types.ParseEntityRef(in.Entity)
	if err != nil {
		return nil, err
	}
	format := types.FormatAnnotation
	if in.Format != "" {
		if format, err = types.ParseFormat(in.Format); err != nil {
			return nil, err
		}
	}
	source, err := g.modules.Resolve(ref.Module)
	if err != nil {
		return nil, err
	}
	target, err := g.modules.Resolve(in.Target)
	if err != nil {
		return nil, err
	}
	return &crud.Request{
		Entity:      ref,
		Source:      *source,
		Target:      *target,
		RoutePrefix: in.RoutePrefix,
		WithWrite:   in.WithWrite,
		Format:      format,
	}, nil
}

func (g *Generator) generateController(md *types.EntityMetadata, req *crud.Request) ([]types.GeneratedFile, error) {
	data, err := crud.DeriveControllerContext(md, req)
	if err != nil {
		return nil, err
	}

	b := g.renderer.Stage()
	if err := b.Render(ControllerTemplate, crud.ControllerOutputPath(req.Target.Dir, req.Entity), data); err != nil {
		return nil, err
	}
	for _, action := range crud.Actions(req.WithWrite) {
		if !crud.HasView(action) {
			continue
		}
		dest := crud.ViewOutputPath(req.Target.Dir, req.Entity, action)
		if err := b.Render(fmt.Sprintf(viewTemplate, action), dest, data); err != nil {
			return nil, err
		}
	}
	if req.Format != types.FormatAnnotation {
		dest := crud.RoutingOutputPath(req.Target.Dir, req.Entity, req.Format)
		if err := b.Render(fmt.Sprintf(routingTemplate, req.Format.Extension()), dest, data); err != nil {
			return nil, err
		}
	}
	return g.commit(b)
}

func (g *Generator) generateForm(md *types.EntityMetadata, req *crud.Request) ([]types.GeneratedFile, error) {
	data, err := crud.DeriveFormContext(md, req)
	if err != nil {
		return nil, err
	}
	dest := crud.ClassOutputPath(req.Target.Dir, req.Entity)
	identifier, _ := data["form_type_name"].(string)
	if err := checkFormIdentifier(crud.FormDir(req.Target.Dir), identifier, dest); err != nil {
		return nil, err
	}

	b := g.renderer.Stage()
	if err := b.Render(FormTemplate, dest, data); err != nil {
		return nil, err
	}
	return g.commit(b)
}

func (g *Generator) commit(b Batch) ([]types.GeneratedFile, error) {
	files := b.Files()
	if g.conf.DryRun {
		return files, nil
	}
	if err := b.Commit(); err != nil {
		return nil, err
	}
	for _, f := range files {
		g.log.Debugw("file written", "path", filepath.ToSlash(f.Path), "bytes", len(f.Content))
	}
	return files, nil
}

// IsRecoverable reports whether err is an expected reason to skip a step:
// an unsupported schema, an existing destination, a missing template or a
// form identifier conflict. Other causes, such as I/O failures, are not.
func IsRecoverable(err error) bool {
	var (
		unsupported *types.UnsupportedSchemaError
		exists      *types.DestinationExistsError
		missing     *types.TemplateNotFoundError
		conflict    *types.FormIdentifierConflictError
	)
	return errors.As(err, &unsupported) || errors.As(err, &exists) ||
		errors.As(err, &missing) || errors.As(err, &conflict)
}
