package render

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	entgen "entgo.io/ent/entc/gen"
	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

// Naming helpers shared with ent's own templates so generated identifiers
// follow the same acronym rules (user_id => UserID).
var (
	pascal = entgen.Funcs["pascal"].(func(string) string)
	camel  = entgen.Funcs["camel"].(func(string) string)
	snake  = entgen.Funcs["snake"].(func(string) string)
)

// Labels come from schema annotations and end up as text in generated views.
var textPolicy = bluemonday.StrictPolicy()

var funcMap = map[string]pongo2.FilterFunction{
	"pascal":     stringFilter(pascal),
	"camel":      stringFilter(camel),
	"snake":      stringFilter(snake),
	"lowerfirst": stringFilter(lowerFirst),
	"pathparams": filterPathParams,
	"member":     filterMember,
	"sanitize":   stringFilter(textPolicy.Sanitize),
}

func registerFilters() error {
	for name, fn := range funcMap {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return fmt.Errorf("register filter %q: %w", name, err)
		}
	}
	return nil
}

func stringFilter(fn func(string) string) pongo2.FilterFunction {
	return func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		s := in.String()
		if s == "" {
			return pongo2.AsValue(""), nil
		}
		return pongo2.AsValue(fn(s)), nil
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// filterMember is pascal for struct members. A name taken by one of the
// comma separated methods in param gets a "_" suffix, which pascal never emits.
//
//	{{ "name"|member:"Name,Fields" }} => Name_
func filterMember(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	name := pascal(in.String())
	for _, method := range strings.Split(param.String(), ",") {
		if name != "" && name == strings.TrimSpace(method) {
			return pongo2.AsValue(name + "_"), nil
		}
	}
	return pongo2.AsValue(name), nil
}

// filterPathParams turns an identifier list into ServeMux wildcards:
// [client_id number] => /{client_id}/{number}
func filterPathParams(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsString() {
		return pongo2.AsValue("/{" + in.String() + "}"), nil
	}
	var b strings.Builder
	in.Iterate(func(_, _ int, key, _ *pongo2.Value) bool {
		b.WriteString("/{")
		b.WriteString(key.String())
		b.WriteString("}")
		return true
	}, func() {})
	return pongo2.AsValue(b.String()), nil
}
