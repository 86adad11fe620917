package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"

	"github.com/fourchimps/crudgen"
)

// Article holds the schema definition for the Article entity.
type Article struct {
	ent.Schema
}

// Fields of the Article.
func (Article) Fields() []ent.Field {
	return []ent.Field{
		field.String("title").NotEmpty(),
		field.Text("body"),
		field.String("slug").Unique().Optional(),
		field.Time("published_at").Optional().Nillable(),
		field.Int("author_id"),
	}
}

// Edges of the Article.
func (Article) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("author", User.Type).
			Ref("articles").
			Field("author_id").
			Required().
			Unique(),
		edge.To("comments", Comment.Type),
		edge.To("tags", Tag.Type),
	}
}

func (Article) Mixin() []ent.Mixin {
	return []ent.Mixin{
		BaseMixin{},
	}
}

func (Article) Annotations() []schema.Annotation {
	return []schema.Annotation{
		crudgen.WithLabel("Blog post"),
	}
}

