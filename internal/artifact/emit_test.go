package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/HobanGames/Reckless/internal/fs"
)

func TestTableHasOneEntryPerName(t *testing.T) {
	table := Table()
	if len(table) != 6 {
		t.Fatalf("expected 6 artifacts, got %d", len(table))
	}

	seen := make(map[string]bool)
	for _, a := range table {
		if a.Name == "" {
			t.Error("artifact with empty name")
		}
		if a.Body == "" {
			t.Errorf("artifact %s has empty body", a.Name)
		}
		if seen[a.Name] {
			t.Errorf("duplicate artifact name %s", a.Name)
		}
		seen[a.Name] = true
	}
}

func TestEmitWritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()

	result, err := Emit(fs.NewRealFS(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Written) != 6 {
		t.Errorf("expected 6 written, got %d", len(result.Written))
	}

	for _, a := range Table() {
		data, err := os.ReadFile(filepath.Join(dir, a.Name))
		if err != nil {
			t.Errorf("missing artifact %s: %v", a.Name, err)
			continue
		}
		if string(data) != a.Body {
			t.Errorf("artifact %s content mismatch", a.Name)
		}
	}
}

func TestEmitTwiceLeavesExactlyOneFilePerName(t *testing.T) {
	dir := t.TempDir()
	fsys := fs.NewRealFS()

	if _, err := Emit(fsys, dir); err != nil {
		t.Fatalf("first emit: %v", err)
	}
	if _, err := Emit(fsys, dir); err != nil {
		t.Fatalf("second emit: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != len(Table()) {
		t.Errorf("expected %d files after re-emit, got %d", len(Table()), len(entries))
	}
}
