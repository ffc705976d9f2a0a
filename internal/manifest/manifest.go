// Package manifest loads and validates the protoslice manifest: the proto
// file set and the build-module graph with per-module pruning rules.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/protobuild/protoslice/internal/depgraph"
	"github.com/protobuild/protoslice/internal/partition"
)

// Manifest is the root manifest structure.
type Manifest struct {
	// Protos are glob patterns for the schema's .proto files, relative to
	// the manifest's directory.
	Protos []string `yaml:"protos"`

	// Modules is the build-module graph in declaration order.
	Modules []Module `yaml:"modules"`

	// dir is the directory the manifest was loaded from.
	dir string
}

// Module declares one build module.
type Module struct {
	// Name is the module name, unique within the manifest.
	Name string `yaml:"name"`

	// Dependencies are names of other modules this module depends on.
	Dependencies []string `yaml:"dependencies"`

	// Prune restricts the module's slice to what is reachable from the
	// listed roots. Omitted means the module generates everything it sees.
	Prune *PruneRules `yaml:"prune"`
}

// PruneRules holds a module's pruning configuration.
type PruneRules struct {
	// Roots are fully-qualified type or service names.
	Roots []string `yaml:"roots"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	m.dir = filepath.Dir(path)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for structural problems: duplicate or empty
// module names, dependencies on undeclared modules, self-dependencies,
// empty pruning roots, and dependency cycles.
func (m *Manifest) Validate() error {
	if len(m.Modules) == 0 {
		return fmt.Errorf("manifest declares no modules")
	}

	names := make(map[string]bool, len(m.Modules))
	for _, mod := range m.Modules {
		if mod.Name == "" {
			return fmt.Errorf("module with empty name")
		}
		if names[mod.Name] {
			return fmt.Errorf("duplicate module %q", mod.Name)
		}
		names[mod.Name] = true
	}

	graph := depgraph.New()
	for _, mod := range m.Modules {
		graph.AddNode(mod.Name)
		for _, dep := range mod.Dependencies {
			if dep == mod.Name {
				return fmt.Errorf("module %q depends on itself", mod.Name)
			}
			if !names[dep] {
				return fmt.Errorf("module %q depends on undeclared module %q", mod.Name, dep)
			}
			graph.AddDependency(mod.Name, dep)
		}
		if mod.Prune != nil && len(mod.Prune.Roots) == 0 {
			return fmt.Errorf("module %q has a prune block with no roots", mod.Name)
		}
	}

	if _, err := graph.TopologicalSort(); err != nil {
		return fmt.Errorf("invalid module graph: %w", err)
	}
	return nil
}

// ResolveProtos expands the manifest's proto globs against the manifest
// directory. Matches of each pattern are sorted; patterns are processed in
// declaration order and duplicates removed, so the file list is stable.
func (m *Manifest) ResolveProtos() ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	for _, pattern := range m.Protos {
		matches, err := filepath.Glob(filepath.Join(m.dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid proto pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			paths = append(paths, match)
		}
	}
	return paths, nil
}

// PartitionModules converts the manifest's modules into the partitioner's
// input form, preserving declaration order.
func (m *Manifest) PartitionModules() []partition.Module {
	modules := make([]partition.Module, 0, len(m.Modules))
	for _, mod := range m.Modules {
		pm := partition.Module{
			Name:         mod.Name,
			Dependencies: mod.Dependencies,
		}
		if mod.Prune != nil {
			pm.Prune = &partition.PruneRules{Roots: mod.Prune.Roots}
		}
		modules = append(modules, pm)
	}
	return modules
}
