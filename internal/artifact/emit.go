package artifact

import (
	"path/filepath"

	"github.com/HobanGames/Reckless/internal/errors"
	"github.com/HobanGames/Reckless/internal/fs"
)

// EmitResult holds the outcome of an emit pass for output formatting.
type EmitResult struct {
	Written []string // file names written this pass
}

// Emit writes every artifact body to <scriptsDir>/<name>, overwriting
// unconditionally. Each write is atomic; re-running leaves exactly one file
// per declared name with the latest content. Storage failure is fatal and
// leaves no partially written file behind.
func Emit(fsys fs.FS, scriptsDir string) (EmitResult, error) {
	result := EmitResult{}
	for _, a := range Table() {
		path := filepath.Join(scriptsDir, a.Name)
		if err := fs.WriteFileAtomic(fsys, path, []byte(a.Body), 0644); err != nil {
			return result, errors.WrapWithDetails(errors.EStorage, "failed to write artifact", err,
				map[string]string{"artifact": a.Name})
		}
		result.Written = append(result.Written, a.Name)
	}
	return result, nil
}
