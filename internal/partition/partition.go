package partition

import (
	"fmt"
	"strings"

	"github.com/protobuild/protoslice/internal/depgraph"
	"github.com/protobuild/protoslice/internal/protomodel"
	"github.com/protobuild/protoslice/internal/prune"
	"github.com/protobuild/protoslice/internal/stub"
)

// Module is one build module as the partitioner sees it: a name, the names
// of the modules it depends on, and optional pruning rules. The caller owns
// the module graph and guarantees it is acyclic.
type Module struct {
	// Name is the module name, unique across the input.
	Name string

	// Dependencies are the names of modules this module depends on.
	Dependencies []string

	// Prune holds the module's pruning rules, nil when the module
	// generates the full schema it sees.
	Prune *PruneRules
}

// PruneRules restricts a module's generated slice to what is reachable from
// the named roots.
type PruneRules struct {
	// Roots are fully-qualified type or service names.
	Roots []string
}

// Partition computes one schema slice per module in generation order.
//
// One topological pass maintains a running ownership map. For each module it
// stubs every type the module's ancestors already generate, applies the
// module's pruning rules, and records the remaining declarations as owned.
// Ancestor ownership collisions become errors. A second pass over
// weakly-connected components warns about types independently generated by
// modules with no dependency relation. Both diagnostic classes are returned
// as data; the caller decides failure policy.
func Partition(schema *protomodel.Schema, modules []Module) *PartitionedSchema {
	result := NewPartitionedSchema()

	byName := make(map[string]*Module, len(modules))
	graph := depgraph.New()
	for i := range modules {
		m := &modules[i]
		byName[m.Name] = m
		graph.AddNode(m.Name)
		for _, dep := range m.Dependencies {
			graph.AddDependency(m.Name, dep)
		}
	}

	order, err := graph.TopologicalSort()
	if err != nil {
		// The caller validates acyclicity before calling; surface the
		// cycle as an error rather than producing a partial result.
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	for _, name := range order {
		module, ok := byName[name]
		if !ok {
			// A dependency name with no module entry: nothing to
			// generate, nothing owned.
			module = &Module{Name: name}
		}

		upstream, collisions := upstreamOwnership(result, graph, name)
		for _, c := range collisions {
			result.Errors = append(result.Errors, ancestorCollisionError(name, c.Type, c.Owners))
		}

		view := schema
		if upstream.Len() > 0 {
			view = stubUpstream(schema, upstream)
		}
		if module.Prune != nil {
			view = prune.Apply(view, module.Prune.Roots)
		}

		var owned []protomodel.ProtoType
		for _, id := range view.Identities() {
			if upstream.Has(id) {
				continue
			}
			owned = append(owned, id)
		}

		result.add(name, &ModulePartition{
			Schema:                  view,
			Types:                   owned,
			TransitiveUpstreamTypes: upstream,
		})
	}

	result.Warnings = append(result.Warnings, peerDuplicates(result, graph, byName)...)
	return result
}

// collision records one type owned by two or more ancestors of a module.
type collision struct {
	Type   protomodel.ProtoType
	Owners []string
}

// upstreamOwnership unions the owned-type sets of every module the named
// module transitively depends on, keyed by the producing module. When
// unrelated ancestor branches both own a type, every such type is reported
// as a collision; the first producer in traversal order keeps the map entry
// so the output stays deterministic even while failing.
func upstreamOwnership(result *PartitionedSchema, graph *depgraph.Graph, name string) (*Ownership, []collision) {
	upstream := NewOwnership()

	var collided []protomodel.ProtoType
	owners := make(map[protomodel.ProtoType][]string)

	for _, dep := range graph.TransitiveNodes(name) {
		p, ok := result.Partition(dep)
		if !ok {
			continue
		}
		for _, id := range p.Types {
			if existing, ok := upstream.Owner(id); ok {
				if len(owners[id]) == 0 {
					owners[id] = []string{existing}
					collided = append(collided, id)
				}
				owners[id] = append(owners[id], dep)
				continue
			}
			upstream.put(id, dep)
		}
	}

	collisions := make([]collision, 0, len(collided))
	for _, id := range collided {
		collisions = append(collisions, collision{Type: id, Owners: owners[id]})
	}
	return upstream, collisions
}

// stubUpstream rebuilds the schema with every top-level type or service
// owned upstream replaced by its stub. The stub keeps the identity and
// nesting structure but severs internal references, so pruning afterwards
// only follows edges the current module is responsible for.
func stubUpstream(schema *protomodel.Schema, upstream *Ownership) *protomodel.Schema {
	files := make([]*protomodel.File, 0, len(schema.Files()))
	for _, f := range schema.Files() {
		types := make([]protomodel.Type, len(f.Types))
		for i, t := range f.Types {
			if upstream.Has(t.Identity()) {
				types[i] = stub.Type(t)
			} else {
				types[i] = t
			}
		}
		services := make([]*protomodel.Service, len(f.Services))
		for i, svc := range f.Services {
			if upstream.Has(svc.Name) {
				services[i] = stub.Service(svc)
			} else {
				services[i] = svc
			}
		}
		files = append(files, &protomodel.File{
			Path:     f.Path,
			Package:  f.Package,
			Types:    types,
			Services: services,
		})
	}
	return protomodel.NewSchema(files)
}

// peerDuplicates examines every unordered pair of modules within each
// weakly-connected component exactly once and warns about types both
// modules generate. Sharing a component does not imply a dependency
// relation: the pass exists precisely for modules with none, e.g. two
// modules pruned from a common ancestor's types. A duplicate is suppressed
// only when the type is listed in both modules' pruning roots — an explicit
// root listing is an acknowledged duplication.
func peerDuplicates(result *PartitionedSchema, graph *depgraph.Graph, byName map[string]*Module) []string {
	var warnings []string
	for _, component := range graph.DisjointGraphs() {
		for i := 0; i < len(component); i++ {
			for j := i + 1; j < len(component); j++ {
				a, b := component[i], component[j]
				pa, okA := result.Partition(a)
				pb, okB := result.Partition(b)
				if !okA || !okB {
					continue
				}

				ownedB := make(map[protomodel.ProtoType]bool, len(pb.Types))
				for _, id := range pb.Types {
					ownedB[id] = true
				}

				for _, id := range pa.Types {
					if !ownedB[id] {
						continue
					}
					if hasRoot(byName[a], id) && hasRoot(byName[b], id) {
						continue
					}
					warnings = append(warnings, peerCollisionWarning(id, a, b))
				}
			}
		}
	}
	return warnings
}

func hasRoot(m *Module, id protomodel.ProtoType) bool {
	if m == nil || m.Prune == nil {
		return false
	}
	for _, root := range m.Prune.Roots {
		if protomodel.ProtoType(root) == id {
			return true
		}
	}
	return false
}

// ancestorCollisionError is the fatal-class diagnostic: a module transitively
// depends on two or more modules that each generate the same type. The text
// is load-bearing for build tooling; do not reword it.
func ancestorCollisionError(module string, id protomodel.ProtoType, owners []string) string {
	return fmt.Sprintf("%s sees %s in %s.\n"+
		"  In order to avoid confusion and incompatibility, either make one of these modules\n"+
		"  depend on the other or move this type up into a common dependency.",
		module, id, strings.Join(owners, ", "))
}

// peerCollisionWarning is the advisory-class diagnostic: two modules with no
// dependency relation both generate a type. The text is load-bearing for
// build tooling; do not reword it.
func peerCollisionWarning(id protomodel.ProtoType, a, b string) string {
	return fmt.Sprintf("%s is generated twice in peer modules %s and %s.\n"+
		"  Consider moving this type into a common dependency of both modules.\n"+
		"  To suppress this warning, explicitly add the type to the roots of both modules.",
		id, a, b)
}
