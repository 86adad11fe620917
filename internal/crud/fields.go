// Package crud derives the template variables of the CRUD and form skeletons
// from entity metadata. Everything here is a pure function of its input.
package crud

import (
	"github.com/fourchimps/crudgen/internal/types"
)

// Fields returns the fields eligible for display and edit: the scalar fields
// without generated identifiers, then every association except one-to-many.
func Fields(md *types.EntityMetadata) ([]string, error) {
	if len(md.Identifier) == 0 {
		return nil, &types.UnsupportedSchemaError{
			Entity: md.Name,
			Reason: "entities without identifier are unsupported",
		}
	}
	fields := make([]string, 0, len(md.Fields)+len(md.Associations))
	for _, name := range md.Fields {
		// Generated keys are immutable and never part of the editable set.
		if md.IdentifierGenerated && md.IsIdentifier(name) {
			continue
		}
		fields = append(fields, name)
	}
	for _, assoc := range md.Associations {
		if assoc.Kind == types.OneToMany {
			continue
		}
		fields = append(fields, assoc.Name)
	}
	return fields, nil
}

// FormFields is Fields for single record edit forms, which require a single
// identifier field.
func FormFields(md *types.EntityMetadata) ([]string, error) {
	if len(md.Identifier) > 1 {
		return nil, &types.UnsupportedSchemaError{
			Entity:     md.Name,
			Identifier: append([]string(nil), md.Identifier...),
			Reason:     "composite primary keys unsupported for form generation",
		}
	}
	return Fields(md)
}
