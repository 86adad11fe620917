package crudgen

import (
	"github.com/fourchimps/crudgen/internal/types"
)

// Exported types & Consts
type Annotation = types.Annotation
type Format = types.Format

const (
	FormatAnnotation = types.FormatAnnotation
	FormatYAML       = types.FormatYAML
	FormatXML        = types.FormatXML
	FormatGo         = types.FormatGo
)
