// Package engine provides the orchestration layer between the CLI and the
// partitioning pipeline: manifest loading, proto parsing, partitioning, and
// writing out the per-module slices.
package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/protobuild/protoslice/internal/depgraph"
	"github.com/protobuild/protoslice/internal/manifest"
	"github.com/protobuild/protoslice/internal/partition"
	"github.com/protobuild/protoslice/internal/protoparse"
	"github.com/protobuild/protoslice/internal/render"
)

// Engine runs the partitioning pipeline. It is the main API surface called
// by the CLI.
type Engine struct {
	log *log.Logger
}

// New creates an Engine logging through the given logger.
func New(logger *log.Logger) *Engine {
	return &Engine{log: logger}
}

// Partition runs the full pipeline for the request's manifest. Diagnostics
// produced by the partitioner are returned inside the result, not as the
// error: the caller decides whether errors block.
func (e *Engine) Partition(req *PartitionRequest) (*PartitionResult, error) {
	man, err := manifest.Load(req.ManifestPath)
	if err != nil {
		return nil, err
	}

	paths, err := man.ResolveProtos()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: patterns %v matched nothing", ErrNoProtoFiles, man.Protos)
	}
	e.log.Debug("resolved proto files", "count", len(paths))

	schema, err := protoparse.ParseFiles(paths)
	if err != nil {
		return nil, err
	}
	e.log.Debug("parsed schema", "files", len(paths), "identities", len(schema.Identities()))

	partitioned := partition.Partition(schema, man.PartitionModules())
	e.log.Debug("partitioned schema",
		"modules", len(partitioned.Modules()),
		"errors", len(partitioned.Errors),
		"warnings", len(partitioned.Warnings))

	result := &PartitionResult{
		Manifest:    man,
		ProtoFiles:  paths,
		Schema:      schema,
		Partitioned: partitioned,
	}

	if req.OutputDir != "" && len(partitioned.Errors) == 0 {
		written, err := e.writeSlices(req.OutputDir, partitioned)
		if err != nil {
			return result, err
		}
		result.Written = written
	}
	return result, nil
}

// Graph loads the manifest and returns the module graph's generation order
// and weakly-connected components.
func (e *Engine) Graph(req *GraphRequest) (*GraphResult, error) {
	man, err := manifest.Load(req.ManifestPath)
	if err != nil {
		return nil, err
	}

	graph := depgraph.New()
	for _, mod := range man.Modules {
		graph.AddNode(mod.Name)
		for _, dep := range mod.Dependencies {
			graph.AddDependency(mod.Name, dep)
		}
	}

	order, err := graph.TopologicalSort()
	if err != nil {
		return nil, err
	}
	return &GraphResult{
		Manifest:   man,
		Order:      order,
		Components: graph.DisjointGraphs(),
	}, nil
}

// writeSlices renders every partition's schema under outDir/<module>/,
// keeping the source file's base name.
func (e *Engine) writeSlices(outDir string, partitioned *partition.PartitionedSchema) ([]string, error) {
	var written []string
	for _, name := range partitioned.Modules() {
		part, _ := partitioned.Partition(name)
		moduleDir := filepath.Join(outDir, name)
		if err := os.MkdirAll(moduleDir, 0755); err != nil {
			return written, fmt.Errorf("failed to create output directory: %w", err)
		}
		for _, f := range part.Schema.Files() {
			path := filepath.Join(moduleDir, filepath.Base(f.Path))
			if err := os.WriteFile(path, []byte(render.File(f)), 0644); err != nil {
				return written, fmt.Errorf("failed to write slice: %w", err)
			}
			written = append(written, path)
		}
		e.log.Debug("wrote module slice", "module", name, "files", len(part.Schema.Files()))
	}
	return written, nil
}
