package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"

	"github.com/fourchimps/crudgen"
)

// Order is keyed by its SKU, assigned by the caller.
type Order struct {
	ent.Schema
}

// Fields of the Order.
func (Order) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("sku").
			NotEmpty().
			Immutable().
			Annotations(crudgen.NaturalID()),
		field.Float("total"),
		field.Enum("status").Values("pending", "paid", "shipped").Default("pending"),
	}
}
