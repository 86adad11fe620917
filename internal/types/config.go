package types

import (
	"fmt"
	"strings"
)

// Format is the configuration format of the generated routing.
type Format string

const (
	// FormatAnnotation keeps routes next to the controller actions (default)
	FormatAnnotation Format = "annotation"
	// FormatYAML emits Resources/config/routing/<entity>.yml
	FormatYAML Format = "yml"
	// FormatXML emits Resources/config/routing/<entity>.xml
	FormatXML Format = "xml"
	// FormatGo emits Resources/config/routing/<entity>.go
	FormatGo Format = "go"
)

// Formats lists the accepted formats in prompt order.
var Formats = []Format{FormatAnnotation, FormatYAML, FormatXML, FormatGo}

// ParseFormat validates a user supplied format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", &InvalidInputError{
		Field:  "format",
		Value:  s,
		Reason: fmt.Sprintf("must be one of %s", joinFormats()),
	}
}

// Extension returns the file extension of the routing file, empty for annotations.
func (f Format) Extension() string {
	if f == FormatAnnotation {
		return ""
	}
	return "." + string(f)
}

func (f Format) String() string { return string(f) }

func joinFormats() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
