package types

import (
	"fmt"
	"strings"
)

// UnsupportedSchemaError reports entity metadata the generator cannot handle,
// e.g. composite primary keys for form generation.
type UnsupportedSchemaError struct {
	Entity     string
	Identifier []string
	Reason     string
}

func (e *UnsupportedSchemaError) Error() string {
	return fmt.Sprintf("entity %s (identifier [%s]): %s", e.Entity, strings.Join(e.Identifier, ", "), e.Reason)
}

// EntityNotFoundError is returned by metadata providers for unknown entities.
type EntityNotFoundError struct {
	Ref string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %q does not exist", e.Ref)
}

// ModuleNotFoundError is returned by module resolvers for unknown modules.
type ModuleNotFoundError struct {
	Name string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module %q does not exist", e.Name)
}

// DestinationExistsError is returned when a target file is already on disk.
// Generated files are never overwritten.
type DestinationExistsError struct {
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("unable to generate %s as it already exists", e.Path)
}

// TemplateNotFoundError is returned when no loader provides the template.
type TemplateNotFoundError struct {
	Name string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found", e.Name)
}

// FormIdentifierConflictError is returned when another form of the host module
// already registers the same form identifier.
type FormIdentifierConflictError struct {
	Identifier string
	Existing   string
}

func (e *FormIdentifierConflictError) Error() string {
	return fmt.Sprintf("form identifier %q is already used by %s", e.Identifier, e.Existing)
}

// InvalidInputError reports a malformed request value.
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
