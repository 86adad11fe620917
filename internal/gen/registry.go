package gen

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fourchimps/crudgen/internal/types"
)

// FormMarker prefixes the form identifier in generated form files.
const FormMarker = "crudgen:form"

var formMarkerRE = regexp.MustCompile(regexp.QuoteMeta(FormMarker) + `\s+(\S+)`)

// scanFormIdentifiers maps the form identifiers registered under dir to the
// file declaring them. A missing directory has no forms.
func scanFormIdentifiers(dir string) (map[string]string, error) {
	found := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		id, ok, err := readFormIdentifier(path)
		if err != nil {
			return err
		}
		if ok {
			if _, dup := found[id]; !dup {
				found[id] = path
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func readFormIdentifier(path string) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if m := formMarkerRE.FindStringSubmatch(sc.Text()); m != nil {
			return m[1], true, nil
		}
	}
	return "", false, sc.Err()
}

// checkFormIdentifier fails when another file of the host module already
// declares identifier.
func checkFormIdentifier(dir, identifier, destination string) error {
	found, err := scanFormIdentifiers(dir)
	if err != nil {
		return err
	}
	if existing, ok := found[identifier]; ok && filepath.Clean(existing) != filepath.Clean(destination) {
		return &types.FormIdentifierConflictError{Identifier: identifier, Existing: existing}
	}
	return nil
}
