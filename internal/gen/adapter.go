package gen

import (
	"encoding/json"

	entgen "entgo.io/ent/entc/gen"

	"github.com/fourchimps/crudgen/internal/types"
)

// AdaptGraph converts every node of the graph, keyed by node name.
func AdaptGraph(g *entgen.Graph) map[string]*types.EntityMetadata {
	nodes := make(map[string]*types.EntityMetadata, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n.Name] = AdaptType(n)
	}
	return nodes
}

// AdaptType converts an ent type into entity metadata.
// The ID comes first in Fields, foreign-key fields backing an edge are left to
// the association, and edge schemas with a composite ID get a multi-field identifier.
func AdaptType(n *entgen.Type) *types.EntityMetadata {
	md := &types.EntityMetadata{
		Name: n.Name,
	}
	a := extractAnnotation(n.Annotations)
	if a != nil {
		md.Label = a.Label
	}

	switch {
	case n.HasCompositeID():
		for _, f := range n.EdgeSchema.ID {
			md.Identifier = append(md.Identifier, f.Name)
		}
		// Composite IDs are made of foreign keys, always assigned by the caller.
		md.IdentifierGenerated = false
	case n.ID != nil:
		md.Identifier = []string{n.ID.Name}
		md.IdentifierGenerated = identifierGenerated(n.ID, a)
		md.Fields = append(md.Fields, n.ID.Name)
	}

	for _, f := range n.Fields {
		if f.IsEdgeField() && !md.IsIdentifier(f.Name) {
			continue
		}
		md.Fields = append(md.Fields, f.Name)
	}

	for _, e := range n.Edges {
		assoc := types.Association{
			Name: e.Name,
			Kind: relationKind(e.Rel.Type),
		}
		if e.Type != nil {
			assoc.Target = e.Type.Name
		}
		md.Associations = append(md.Associations, assoc)
	}
	return md
}

// identifierGenerated decides whether ID values are assigned by the system.
// An explicit annotation on the schema or on the ID field wins.
func identifierGenerated(id *entgen.Field, typeAnnotation *types.Annotation) bool {
	if a := extractAnnotation(id.Annotations); a != nil && a.NaturalID != nil {
		return !*a.NaturalID
	}
	if typeAnnotation != nil && typeAnnotation.NaturalID != nil {
		return !*typeAnnotation.NaturalID
	}
	if id.Default {
		return true
	}
	if id.Type != nil && id.Type.Numeric() {
		if ant := id.EntSQL(); ant != nil && ant.Incremental != nil {
			return *ant.Incremental
		}
		return true
	}
	return false
}

func relationKind(r entgen.Rel) types.RelationKind {
	switch r {
	case entgen.O2O:
		return types.OneToOne
	case entgen.O2M:
		return types.OneToMany
	case entgen.M2O:
		return types.ManyToOne
	case entgen.M2M:
		return types.ManyToMany
	default:
		return 0
	}
}

// extractAnnotation reads the annotation either as set in memory or as
// decoded from the JSON schema spec.
func extractAnnotation(ants map[string]interface{}) *types.Annotation {
	v, ok := ants[types.AnnotationName]
	if !ok || v == nil {
		return nil
	}
	switch a := v.(type) {
	case types.Annotation:
		return &a
	case *types.Annotation:
		return a
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	a := &types.Annotation{}
	if err := json.Unmarshal(raw, a); err != nil {
		return nil
	}
	return a
}
