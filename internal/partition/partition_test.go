package partition

import (
	"reflect"
	"strings"
	"testing"

	"github.com/protobuild/protoslice/internal/protomodel"
)

// message builds a message with optional field references for tests.
func message(name protomodel.ProtoType, refs ...string) *protomodel.Message {
	m := &protomodel.Message{Name: name}
	for i, ref := range refs {
		m.Fields = append(m.Fields, protomodel.Field{
			Name:     "f" + ref,
			TypeName: ref,
			Tag:      i + 1,
		})
	}
	return m
}

func schemaOf(types ...protomodel.Type) *protomodel.Schema {
	return protomodel.NewSchema([]*protomodel.File{{
		Path:    "schema.proto",
		Package: "acme",
		Types:   types,
	}})
}

func TestPartition_LinearChain(t *testing.T) {
	// A depends on B; B owns everything, A borrows everything as stubs.
	schema := protomodel.NewSchema([]*protomodel.File{{
		Path:    "xy.proto",
		Package: "acme",
		Types: []protomodel.Type{
			message("acme.X", "Y"),
			&protomodel.Message{Name: "acme.Y", Fields: []protomodel.Field{{Name: "id", TypeName: "string", Tag: 1}}},
		},
	}})

	result := Partition(schema, []Module{
		{Name: "A", Dependencies: []string{"B"}},
		{Name: "B"},
	})

	if len(result.Errors) != 0 || len(result.Warnings) != 0 {
		t.Fatalf("unexpected diagnostics: errors=%v warnings=%v", result.Errors, result.Warnings)
	}
	if !reflect.DeepEqual(result.Modules(), []string{"B", "A"}) {
		t.Fatalf("generation order = %v, want [B A]", result.Modules())
	}

	b, _ := result.Partition("B")
	if !reflect.DeepEqual(b.Types, []protomodel.ProtoType{"acme.X", "acme.Y"}) {
		t.Errorf("B.Types = %v, want [acme.X acme.Y]", b.Types)
	}
	if b.TransitiveUpstreamTypes.Len() != 0 {
		t.Errorf("B has %d upstream types, want 0", b.TransitiveUpstreamTypes.Len())
	}

	a, _ := result.Partition("A")
	if len(a.Types) != 0 {
		t.Errorf("A.Types = %v, want empty", a.Types)
	}
	for _, id := range []protomodel.ProtoType{"acme.X", "acme.Y"} {
		owner, ok := a.TransitiveUpstreamTypes.Owner(id)
		if !ok || owner != "B" {
			t.Errorf("A upstream owner of %s = %q, %v, want B", id, owner, ok)
		}
	}

	// A's schema shows X and Y as empty stubs.
	for _, id := range []protomodel.ProtoType{"acme.X", "acme.Y"} {
		typ, ok := a.Schema.LookupType(id)
		if !ok {
			t.Fatalf("A's schema lost %s", id)
		}
		if m := typ.(*protomodel.Message); len(m.Fields) != 0 {
			t.Errorf("%s not stubbed in A's schema: %d fields", id, len(m.Fields))
		}
	}
}

func TestPartition_DiamondConflict(t *testing.T) {
	// A depends on B and C; B and C independently own Z.
	schema := schemaOf(message("acme.Z"))

	result := Partition(schema, []Module{
		{Name: "A", Dependencies: []string{"B", "C"}},
		{Name: "B"},
		{Name: "C"},
	})

	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", result.Errors)
	}
	errMsg := result.Errors[0]
	for _, needle := range []string{"A sees acme.Z in ", "B", "C", "common dependency"} {
		if !strings.Contains(errMsg, needle) {
			t.Errorf("error %q missing %q", errMsg, needle)
		}
	}
}

func TestPartition_DiamondConflictMessage(t *testing.T) {
	schema := schemaOf(message("acme.Z"))

	result := Partition(schema, []Module{
		{Name: "A", Dependencies: []string{"B", "C"}},
		{Name: "B"},
		{Name: "C"},
	})

	want := "A sees acme.Z in B, C.\n" +
		"  In order to avoid confusion and incompatibility, either make one of these modules\n" +
		"  depend on the other or move this type up into a common dependency."
	if len(result.Errors) != 1 || result.Errors[0] != want {
		t.Errorf("error = %q, want %q", result.Errors, want)
	}
}

func TestPartition_DisjointPeers(t *testing.T) {
	schema := schemaOf(message("acme.Z"))

	tests := []struct {
		name         string
		rootsB       *PruneRules
		rootsC       *PruneRules
		wantWarnings int
	}{
		{
			name:         "no roots warns",
			wantWarnings: 1,
		},
		{
			name:         "one-sided root still warns",
			rootsB:       &PruneRules{Roots: []string{"acme.Z"}},
			wantWarnings: 1,
		},
		{
			name:         "both roots suppress",
			rootsB:       &PruneRules{Roots: []string{"acme.Z"}},
			rootsC:       &PruneRules{Roots: []string{"acme.Z"}},
			wantWarnings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// B and C share a component through A but have no
			// dependency relation to each other. A also gets an
			// ancestor-chain error for Z; only peer warnings are
			// counted here.
			result := Partition(schema, []Module{
				{Name: "A", Dependencies: []string{"B", "C"}},
				{Name: "B", Prune: tt.rootsB},
				{Name: "C", Prune: tt.rootsC},
			})

			var peer []string
			for _, w := range result.Warnings {
				if strings.Contains(w, "peer modules") {
					peer = append(peer, w)
				}
			}
			if len(peer) != tt.wantWarnings {
				t.Fatalf("peer warnings = %v, want %d", peer, tt.wantWarnings)
			}
			if tt.wantWarnings == 1 {
				want := "acme.Z is generated twice in peer modules B and C.\n" +
					"  Consider moving this type into a common dependency of both modules.\n" +
					"  To suppress this warning, explicitly add the type to the roots of both modules."
				if peer[0] != want {
					t.Errorf("warning = %q, want %q", peer[0], want)
				}
			}
		})
	}
}

func TestPartition_PruningNarrowsOwnership(t *testing.T) {
	schema := schemaOf(
		message("acme.Foo"),
		message("acme.Bar"),
	)

	result := Partition(schema, []Module{
		{Name: "only", Prune: &PruneRules{Roots: []string{"acme.Foo"}}},
	})

	p, _ := result.Partition("only")
	if !reflect.DeepEqual(p.Types, []protomodel.ProtoType{"acme.Foo"}) {
		t.Errorf("Types = %v, want [acme.Foo]", p.Types)
	}
	if p.Schema.Contains("acme.Bar") {
		t.Error("unreachable acme.Bar survived in the partition schema")
	}
}

func TestPartition_StubbingBeforePruning(t *testing.T) {
	// leaf owns Outer and, through Outer's field, Inner. app's root App
	// references Outer; Inner is reachable only through Outer's
	// internals, which leaf already generates. Stubbing Outer before
	// pruning severs that edge, so app's slice borrows Outer but never
	// sees Inner.
	schema := schemaOf(
		message("acme.App", "Outer"),
		message("acme.Outer", "Inner"),
		message("acme.Inner"),
	)

	result := Partition(schema, []Module{
		{Name: "app", Dependencies: []string{"leaf"}, Prune: &PruneRules{Roots: []string{"acme.App"}}},
		{Name: "leaf", Prune: &PruneRules{Roots: []string{"acme.Outer"}}},
	})

	app, _ := result.Partition("app")
	if !reflect.DeepEqual(app.Types, []protomodel.ProtoType{"acme.App"}) {
		t.Errorf("app.Types = %v, want [acme.App]", app.Types)
	}
	if !app.Schema.Contains("acme.Outer") {
		t.Error("referenced upstream type missing from app's slice")
	}
	if owner, ok := app.TransitiveUpstreamTypes.Owner("acme.Outer"); !ok || owner != "leaf" {
		t.Errorf("Outer owner = %q, %v, want leaf", owner, ok)
	}
	if app.Schema.Contains("acme.Inner") {
		t.Error("pruning followed a reference through a stubbed upstream type")
	}
}

func TestPartition_OwnedXorUpstream(t *testing.T) {
	schema := schemaOf(
		message("acme.X", "Y"),
		message("acme.Y"),
		message("acme.Z"),
	)

	result := Partition(schema, []Module{
		{Name: "app", Dependencies: []string{"base"}},
		{Name: "base", Prune: &PruneRules{Roots: []string{"acme.X"}}},
	})

	for _, name := range result.Modules() {
		p, _ := result.Partition(name)
		owned := make(map[protomodel.ProtoType]bool, len(p.Types))
		for _, id := range p.Types {
			owned[id] = true
		}
		for _, id := range p.Schema.Identities() {
			isOwned := owned[id]
			isUpstream := p.TransitiveUpstreamTypes.Has(id)
			if isOwned == isUpstream {
				t.Errorf("module %s: %s owned=%v upstream=%v, want exactly one", name, id, isOwned, isUpstream)
			}
		}
	}
}

func TestPartition_Deterministic(t *testing.T) {
	schema := schemaOf(message("acme.Z"))
	modules := []Module{
		{Name: "A", Dependencies: []string{"B", "C"}},
		{Name: "B"},
		{Name: "C"},
	}

	first := Partition(schema, modules)
	for i := 0; i < 5; i++ {
		again := Partition(schema, modules)
		if !reflect.DeepEqual(first.Errors, again.Errors) {
			t.Fatalf("errors differ across runs: %v vs %v", first.Errors, again.Errors)
		}
		if !reflect.DeepEqual(first.Warnings, again.Warnings) {
			t.Fatalf("warnings differ across runs: %v vs %v", first.Warnings, again.Warnings)
		}
		if !reflect.DeepEqual(first.Modules(), again.Modules()) {
			t.Fatalf("order differs across runs: %v vs %v", first.Modules(), again.Modules())
		}
	}
}

func TestPartition_TopologicalOrder(t *testing.T) {
	schema := schemaOf(message("acme.A"))
	modules := []Module{
		{Name: "top", Dependencies: []string{"mid1", "mid2"}},
		{Name: "mid1", Dependencies: []string{"base"}},
		{Name: "mid2", Dependencies: []string{"base"}},
		{Name: "base"},
	}

	result := Partition(schema, modules)
	pos := make(map[string]int)
	for i, name := range result.Modules() {
		pos[name] = i
	}
	for _, m := range modules {
		for _, dep := range m.Dependencies {
			if pos[dep] > pos[m.Name] {
				t.Errorf("%s generated before its dependency %s: %v", m.Name, dep, result.Modules())
			}
		}
	}
}

func TestPartition_CycleReported(t *testing.T) {
	schema := schemaOf(message("acme.A"))
	result := Partition(schema, []Module{
		{Name: "a", Dependencies: []string{"b"}},
		{Name: "b", Dependencies: []string{"a"}},
	})

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "cycle") {
		t.Errorf("errors = %v, want one cycle error", result.Errors)
	}
	if len(result.Modules()) != 0 {
		t.Errorf("partial partitions produced for cyclic graph: %v", result.Modules())
	}
}
