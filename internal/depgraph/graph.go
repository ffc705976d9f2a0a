// Package depgraph provides the module dependency graph: deterministic
// topological ordering, transitive ancestor sets, and weakly-connected
// component decomposition. Node and edge insertion order is preserved so
// identical inputs always produce identical orderings.
package depgraph

import (
	"fmt"
	"strings"
)

// CycleError indicates that the graph contains a dependency cycle,
// preventing topological ordering.
type CycleError struct {
	// Cycle contains the nodes involved in the cycle (enough of them to
	// identify the problem, not necessarily a minimal cycle).
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// Graph is a directed graph over module names. An edge from a module to a
// dependency means the dependency must be generated first.
type Graph struct {
	// nodes tracks all nodes in insertion order for deterministic output.
	nodes []string
	// nodeSet provides O(1) lookup for node existence.
	nodeSet map[string]bool
	// deps maps each node to its direct dependencies in insertion order.
	deps map[string][]string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodeSet: make(map[string]bool),
		deps:    make(map[string][]string),
	}
}

// AddNode adds a node to the graph. If the node already exists, this is a
// no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddDependency records that node depends on dep. Both nodes are implicitly
// added if they don't exist. Duplicate edges are ignored.
func (g *Graph) AddDependency(node, dep string) {
	g.AddNode(node)
	g.AddNode(dep)
	for _, existing := range g.deps[node] {
		if existing == dep {
			return
		}
	}
	g.deps[node] = append(g.deps[node], dep)
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []string {
	return g.nodes
}

// TopologicalSort returns a generation order in which every node appears
// after all of its dependencies, using Kahn's algorithm. The order is
// deterministic: nodes at the same depth appear in insertion order.
// Returns a CycleError if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	// Out-degree here is the number of unsatisfied dependencies.
	pending := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string, len(g.nodes))
	for _, node := range g.nodes {
		pending[node] = len(g.deps[node])
		for _, dep := range g.deps[node] {
			dependents[dep] = append(dependents[dep], node)
		}
	}

	queue := make([]string, 0, len(g.nodes))
	for _, node := range g.nodes {
		if pending[node] == 0 {
			queue = append(queue, node)
		}
	}

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, dependent := range dependents[node] {
			pending[dependent]--
			if pending[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(g.nodes) {
		var cycleNodes []string
		for _, node := range g.nodes {
			if pending[node] > 0 {
				cycleNodes = append(cycleNodes, node)
			}
		}
		return nil, &CycleError{Cycle: cycleNodes}
	}

	return result, nil
}

// TransitiveNodes returns every node reachable from name by following
// dependency edges (the modules name depends on, directly or indirectly),
// excluding name itself. The result is in deterministic first-visit order:
// depth-first over dependency lists in insertion order.
func (g *Graph) TransitiveNodes(name string) []string {
	seen := map[string]bool{name: true}
	var result []string

	var visit func(node string)
	visit = func(node string) {
		for _, dep := range g.deps[node] {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			result = append(result, dep)
			visit(dep)
		}
	}
	visit(name)

	return result
}

// DisjointGraphs decomposes the graph into weakly-connected components,
// treating dependency edges as undirected. Components are ordered by their
// first member's insertion order; members within a component appear in
// insertion order.
func (g *Graph) DisjointGraphs() [][]string {
	// Undirected adjacency.
	adj := make(map[string][]string, len(g.nodes))
	for _, node := range g.nodes {
		for _, dep := range g.deps[node] {
			adj[node] = append(adj[node], dep)
			adj[dep] = append(adj[dep], node)
		}
	}

	component := make(map[string]int, len(g.nodes))
	next := 0
	for _, node := range g.nodes {
		if _, ok := component[node]; ok {
			continue
		}
		id := next
		next++

		queue := []string{node}
		component[node] = id
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, peer := range adj[cur] {
				if _, ok := component[peer]; ok {
					continue
				}
				component[peer] = id
				queue = append(queue, peer)
			}
		}
	}

	groups := make([][]string, next)
	for _, node := range g.nodes {
		id := component[node]
		groups[id] = append(groups[id], node)
	}
	return groups
}
