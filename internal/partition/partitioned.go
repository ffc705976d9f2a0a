package partition

import "github.com/protobuild/protoslice/internal/protomodel"

// ModulePartition is one module's slice of the schema: the schema view it
// generates from, the identities it owns (generates itself), and the
// identities it borrows from upstream modules. Every identity appearing in
// Schema is in exactly one of Types or TransitiveUpstreamTypes.
type ModulePartition struct {
	// Schema is the module's generated-plus-referenced view: upstream
	// types stubbed, pruning rules applied.
	Schema *protomodel.Schema

	// Types are the identities this module generates, in declaration
	// order of the partition schema.
	Types []protomodel.ProtoType

	// TransitiveUpstreamTypes maps every identity generated by a
	// transitive dependency to the module that owns it.
	TransitiveUpstreamTypes *Ownership
}

// Ownership is an ordered map from type identity to owning module name.
// Insertion order is preserved so diagnostics and report output are
// reproducible across runs.
type Ownership struct {
	keys   []protomodel.ProtoType
	owners map[protomodel.ProtoType]string
}

// NewOwnership creates an empty ownership map.
func NewOwnership() *Ownership {
	return &Ownership{owners: make(map[protomodel.ProtoType]string)}
}

func (o *Ownership) put(id protomodel.ProtoType, owner string) {
	if _, ok := o.owners[id]; !ok {
		o.keys = append(o.keys, id)
	}
	o.owners[id] = owner
}

// Len returns the number of entries.
func (o *Ownership) Len() int {
	return len(o.keys)
}

// Has reports whether the identity is owned upstream.
func (o *Ownership) Has(id protomodel.ProtoType) bool {
	_, ok := o.owners[id]
	return ok
}

// Owner returns the owning module of the identity.
func (o *Ownership) Owner(id protomodel.ProtoType) (string, bool) {
	owner, ok := o.owners[id]
	return owner, ok
}

// Types returns the owned identities in insertion order.
func (o *Ownership) Types() []protomodel.ProtoType {
	return o.keys
}

// PartitionedSchema is the immutable result of one partitioning run: one
// partition per module in generation order, plus batched diagnostics.
// Errors indicate a broken module graph and should block the build;
// Warnings are advisory.
type PartitionedSchema struct {
	order      []string
	partitions map[string]*ModulePartition

	// Warnings are advisory diagnostics (peer-module duplicates).
	Warnings []string

	// Errors are fatal diagnostics (ancestor ownership collisions).
	Errors []string
}

// NewPartitionedSchema creates an empty result.
func NewPartitionedSchema() *PartitionedSchema {
	return &PartitionedSchema{partitions: make(map[string]*ModulePartition)}
}

func (p *PartitionedSchema) add(name string, part *ModulePartition) {
	if _, ok := p.partitions[name]; !ok {
		p.order = append(p.order, name)
	}
	p.partitions[name] = part
}

// Modules returns the module names in generation order: a topological order
// of the module graph, so a module always follows its dependencies.
func (p *PartitionedSchema) Modules() []string {
	return p.order
}

// Partition returns the named module's partition.
func (p *PartitionedSchema) Partition(name string) (*ModulePartition, bool) {
	part, ok := p.partitions[name]
	return part, ok
}
