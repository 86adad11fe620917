package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fourchimps/crudgen/internal/types"
)

// Transaction buffers rendered files and writes them together on Commit.
type Transaction struct {
	renderer *FileRenderer
	files    []types.GeneratedFile
	staged   map[string]bool
	done     bool
}

// Render renders into the buffer. A destination that exists on disk or was
// already staged is refused.
func (tx *Transaction) Render(templateID, destination string, data types.RenderContext) error {
	if tx.done {
		return errors.New("render: transaction already committed")
	}
	dest := filepath.Clean(destination)
	if tx.staged[dest] {
		return &types.DestinationExistsError{Path: dest}
	}
	if err := checkDestination(dest); err != nil {
		return err
	}

	content, err := tx.renderer.Execute(templateID, dest, data)
	if err != nil {
		return err
	}
	tx.staged[dest] = true
	tx.files = append(tx.files, types.GeneratedFile{
		Path:     dest,
		Template: templateID,
		Content:  content,
	})
	return nil
}

// Files returns the staged files in render order.
func (tx *Transaction) Files() []types.GeneratedFile {
	return append([]types.GeneratedFile(nil), tx.files...)
}

// Commit writes every staged file. On failure the files written so far are
// removed and the tree is left as it was.
func (tx *Transaction) Commit() error {
	if tx.done {
		return errors.New("render: transaction already committed")
	}
	tx.done = true

	for _, f := range tx.files {
		if err := checkDestination(f.Path); err != nil {
			return err
		}
	}

	var written, created []string
	for _, f := range tx.files {
		dirs, err := writeFile(f)
		created = append(created, dirs...)
		if err != nil {
			rollback(written, created)
			return err
		}
		written = append(written, f.Path)
	}
	return nil
}

// rollback removes the written files, then the directories created for them,
// innermost first.
func rollback(files, dirs []string) {
	for _, path := range files {
		_ = os.Remove(path)
	}
	for i := len(dirs) - 1; i >= 0; i-- {
		_ = os.Remove(dirs[i])
	}
}

func checkDestination(path string) error {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return &types.DestinationExistsError{Path: path}
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
}

// writeFile writes f and returns the directories it had to create, outermost first.
func writeFile(f types.GeneratedFile) ([]string, error) {
	created, err := mkdirAll(filepath.Dir(f.Path))
	if err != nil {
		return created, fmt.Errorf("failed to create directory for %s: %w", f.Path, err)
	}
	// O_EXCL keeps a file created after the checks from being overwritten.
	fd, err := os.OpenFile(f.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return created, &types.DestinationExistsError{Path: f.Path}
		}
		return created, fmt.Errorf("failed to create %s: %w", f.Path, err)
	}
	if _, err := fd.Write(f.Content); err != nil {
		fd.Close()
		os.Remove(f.Path)
		return created, fmt.Errorf("failed to write %s: %w", f.Path, err)
	}
	return created, fd.Close()
}

// mkdirAll is os.MkdirAll reporting the directories that did not exist before,
// outermost first.
func mkdirAll(dir string) ([]string, error) {
	var missing []string
	for d := dir; ; {
		_, err := os.Stat(d)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		missing = append([]string{d}, missing...)
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return missing, nil
}
