package integration

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/protobuild/protoslice/internal/engine"
)

// writeProject lays out a project directory from a map of relative file
// paths to contents and returns the directory root. The manifest is
// expected at protoslice.yaml.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
	return dir
}

func newTestEngine() *engine.Engine {
	return engine.New(log.New(io.Discard))
}

// runPartition runs the full pipeline against the project's manifest,
// optionally writing slices under outDir.
func runPartition(t *testing.T, projectDir, outDir string) *engine.PartitionResult {
	t.Helper()
	result, err := newTestEngine().Partition(&engine.PartitionRequest{
		ManifestPath: filepath.Join(projectDir, "protoslice.yaml"),
		OutputDir:    outDir,
	})
	if err != nil {
		t.Fatalf("Partition() error = %v", err)
	}
	return result
}
