package crudgen

import (
	"errors"
	"fmt"

	"entgo.io/ent/entc/gen"

	igen "github.com/fourchimps/crudgen/internal/gen"
	"github.com/fourchimps/crudgen/internal/module"
	"github.com/fourchimps/crudgen/internal/render"
	"github.com/fourchimps/crudgen/internal/types"
)

func (e *Extension) GenerateFiles(next gen.Generator) gen.Generator {
	return gen.GenerateFunc(func(g *gen.Graph) error {
		if err := next.Generate(g); err != nil {
			return err
		}
		return e.generate(g)
	})
}

func (e *Extension) generate(g *gen.Graph) error {
	if e.target == "" {
		return errors.New("crudgen: target module is required")
	}
	resolver, err := module.NewResolver(e.workDir, module.WithModules(e.modules))
	if err != nil {
		return fmt.Errorf("failed to get module path: %w", err)
	}

	opts := []render.Option{render.WithLogger(e.log)}
	if e.skeletonDir != "" {
		opts = append(opts, render.WithBaseDir(e.skeletonDir))
	}
	renderer, err := render.New(opts...)
	if err != nil {
		return err
	}

	generator := igen.New(igen.Config{DryRun: e.dryRun}, igen.NewGraphProvider(g), resolver, renderer, igen.WithLogger(e.log))
	for _, name := range e.entityNames(g) {
		req := types.GenerationRequest{
			Entity:    e.source + ":" + name,
			Target:    e.target,
			WithWrite: e.withWrite,
			Format:    e.format,
		}
		if len(e.entities) == 1 {
			req.RoutePrefix = e.routePrefix
		}
		res, err := generator.Generate(req)
		if err != nil {
			return fmt.Errorf("crudgen: %s: %w", name, err)
		}
		for _, err := range res.Errors {
			if !igen.IsRecoverable(err) {
				return fmt.Errorf("crudgen: %s: %w", name, err)
			}
			e.log.Warnw("step skipped", "entity", name, "error", err)
		}
		for _, step := range res.NextSteps {
			e.log.Infow("next step", "entity", name, "step", step)
		}
	}
	return nil
}

// entityNames returns the configured entities, or every node of the graph.
func (e *Extension) entityNames(g *gen.Graph) []string {
	if len(e.entities) > 0 {
		return e.entities
	}
	names := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		names = append(names, n.Name)
	}
	return names
}
