// Package registry discovers GGUF model files and downloads missing ones.
package registry

import (
	"os"
	"path/filepath"

	"recipebot/internal/common/fsutil"
	"recipebot/pkg/types"
)

const modelExt = ".gguf"

// LoadDir scans a directory for *.gguf files and builds a registry from filenames.
// ID is the full filename (including extension); Path is the absolute file path.
func LoadDir(dir string) ([]types.Model, error) {
	abs, err := fsutil.ResolveDir(dir)
	if err != nil {
		return nil, err
	}
	names, err := fsutil.ListByExt(abs, modelExt)
	if err != nil {
		return nil, err
	}
	models := make([]types.Model, 0, len(names))
	for _, name := range names {
		p := filepath.Join(abs, name)
		m := types.Model{ID: name, Name: name, Path: p}
		if fi, err := os.Stat(p); err == nil {
			m.SizeBytes = fi.Size()
		}
		models = append(models, m)
	}
	return models, nil
}

// Find returns the model whose ID or Name equals name.
func Find(models []types.Model, name string) (types.Model, bool) {
	for _, m := range models {
		if m.ID == name || m.Name == name {
			return m, true
		}
	}
	return types.Model{}, false
}
