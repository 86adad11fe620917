package types

// RelationKind is the cardinality of an association.
type RelationKind int

const (
	OneToOne RelationKind = iota + 1
	ManyToOne
	OneToMany
	ManyToMany
)

func (k RelationKind) String() string {
	switch k {
	case OneToOne:
		return "one-to-one"
	case ManyToOne:
		return "many-to-one"
	case OneToMany:
		return "one-to-many"
	case ManyToMany:
		return "many-to-many"
	default:
		return "unknown"
	}
}

// Association is a relation from the entity to another entity.
type Association struct {
	Name   string
	Kind   RelationKind
	Target string
}

// EntityMetadata is the ORM description of an entity as seen by the generator.
type EntityMetadata struct {
	Name                string
	Identifier          []string      // ordered, more than one for composite keys
	IdentifierGenerated bool          // false for natural (caller assigned) identifiers
	Fields              []string      // scalar columns in declaration order, identifier included
	Associations        []Association // declaration order
	Label               string
}

// IsIdentifier reports whether name is one of the identifier fields.
func (m *EntityMetadata) IsIdentifier(name string) bool {
	for _, id := range m.Identifier {
		if id == name {
			return true
		}
	}
	return false
}
