package engine

import (
	"github.com/protobuild/protoslice/internal/manifest"
	"github.com/protobuild/protoslice/internal/partition"
	"github.com/protobuild/protoslice/internal/protomodel"
)

// PartitionRequest represents a request to partition a schema.
type PartitionRequest struct {
	// ManifestPath is the path to the manifest file.
	ManifestPath string

	// OutputDir, when non-empty, is where per-module .proto slices are
	// written. Slices are only written when partitioning produced no
	// errors.
	OutputDir string
}

// PartitionResult represents the result of a partitioning run.
type PartitionResult struct {
	// Manifest is the loaded manifest.
	Manifest *manifest.Manifest

	// ProtoFiles are the resolved proto source paths, in parse order.
	ProtoFiles []string

	// Schema is the parsed input schema.
	Schema *protomodel.Schema

	// Partitioned is the partitioner's output, including diagnostics.
	Partitioned *partition.PartitionedSchema

	// Written lists the slice files written to the output directory.
	Written []string
}

// GraphRequest represents a request for module graph information.
type GraphRequest struct {
	// ManifestPath is the path to the manifest file.
	ManifestPath string
}

// GraphResult represents the module graph of a manifest.
type GraphResult struct {
	// Manifest is the loaded manifest.
	Manifest *manifest.Manifest

	// Order is the generation order (a topological order).
	Order []string

	// Components are the weakly-connected components of the graph.
	Components [][]string
}
