package gen

import (
	"fmt"

	"entgo.io/ent/entc"
	entgen "entgo.io/ent/entc/gen"

	"github.com/fourchimps/crudgen/internal/types"
)

// MetadataProvider returns the metadata of an entity.
// Unknown entities fail with *types.EntityNotFoundError.
type MetadataProvider interface {
	Metadata(ref types.EntityRef) (*types.EntityMetadata, error)
}

// ModuleResolver resolves a module shortcut.
// Unknown modules fail with *types.ModuleNotFoundError.
type ModuleResolver interface {
	Resolve(name string) (*types.Module, error)
}

// Renderer renders a skeleton template to a destination.
// Existing destinations fail with *types.DestinationExistsError and missing
// templates with *types.TemplateNotFoundError.
type Renderer interface {
	Render(templateID, destination string, data types.RenderContext) error
}

// Batch is a Renderer that buffers its output until Commit.
type Batch interface {
	Renderer
	Files() []types.GeneratedFile
	Commit() error
}

// Stager opens render batches.
type Stager interface {
	Stage() Batch
}

// GraphProvider serves metadata from an already loaded ent graph.
type GraphProvider struct {
	nodes map[string]*types.EntityMetadata
}

// NewGraphProvider adapts every node of g.
func NewGraphProvider(g *entgen.Graph) *GraphProvider {
	return &GraphProvider{nodes: AdaptGraph(g)}
}

// Metadata implements MetadataProvider. The module part of ref is ignored,
// a graph holds a single schema package.
func (p *GraphProvider) Metadata(ref types.EntityRef) (*types.EntityMetadata, error) {
	md, ok := p.nodes[ref.Name()]
	if !ok {
		return nil, &types.EntityNotFoundError{Ref: ref.String()}
	}
	return md, nil
}

// EntProvider loads the ent schema package of the entity module on demand.
type EntProvider struct {
	modules ModuleResolver
	load    func(schemaDir string) (*entgen.Graph, error)
	graphs  map[string]*GraphProvider
}

// NewEntProvider returns a provider resolving schema directories through modules.
func NewEntProvider(modules ModuleResolver) *EntProvider {
	return &EntProvider{
		modules: modules,
		load:    loadGraph,
		graphs:  make(map[string]*GraphProvider),
	}
}

// Metadata implements MetadataProvider.
func (p *EntProvider) Metadata(ref types.EntityRef) (*types.EntityMetadata, error) {
	m, err := p.modules.Resolve(ref.Module)
	if err != nil {
		return nil, err
	}
	gp, ok := p.graphs[m.SchemaDir]
	if !ok {
		g, err := p.load(m.SchemaDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load ent schema %s: %w", m.SchemaDir, err)
		}
		gp = NewGraphProvider(g)
		p.graphs[m.SchemaDir] = gp
	}
	return gp.Metadata(ref)
}

func loadGraph(schemaDir string) (*entgen.Graph, error) {
	return entc.LoadGraph(schemaDir, &entgen.Config{})
}
