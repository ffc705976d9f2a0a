package render

import (
	"strings"
	"testing"

	"github.com/protobuild/protoslice/internal/protomodel"
)

func TestFile(t *testing.T) {
	f := &protomodel.File{
		Path:    "shop.proto",
		Package: "acme.shop",
		Types: []protomodel.Type{
			&protomodel.Message{
				Name: "acme.shop.Order",
				Fields: []protomodel.Field{
					{Name: "id", TypeName: "string", Tag: 1},
					{Name: "items", TypeName: "Item", Tag: 2, Repeated: true},
				},
				Options: []protomodel.Option{{Name: "deprecated", Value: "true"}},
				Nested: []protomodel.Type{
					&protomodel.Enum{
						Name:      "acme.shop.Order.Status",
						Constants: []protomodel.EnumConstant{{Name: "OPEN", Value: 0}},
					},
				},
			},
		},
		Services: []*protomodel.Service{
			{
				Name: "acme.shop.Checkout",
				Methods: []protomodel.Method{
					{Name: "Submit", RequestType: "Order", ResponseType: "Receipt"},
					{Name: "Watch", RequestType: "Order", ResponseType: "Receipt", ServerStreaming: true},
				},
			},
		},
	}

	got := File(f)
	for _, want := range []string{
		"package acme.shop;",
		"message Order {",
		"option deprecated = true;",
		"string id = 1;",
		"repeated Item items = 2;",
		"enum Status {",
		"OPEN = 0;",
		"service Checkout {",
		"rpc Submit (Order) returns (Receipt);",
		"rpc Watch (Order) returns (stream Receipt);",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered output missing %q:\n%s", want, got)
		}
	}
}

func TestFile_StubRendersEmptyBody(t *testing.T) {
	f := &protomodel.File{
		Path:    "stub.proto",
		Package: "acme",
		Types:   []protomodel.Type{&protomodel.Message{Name: "acme.Borrowed"}},
	}

	got := File(f)
	if !strings.Contains(got, "message Borrowed {\n}") {
		t.Errorf("stub not rendered as empty declaration:\n%s", got)
	}
}

func TestFile_Enclosing(t *testing.T) {
	f := &protomodel.File{
		Path:    "wrap.proto",
		Package: "acme",
		Types: []protomodel.Type{
			&protomodel.Enclosing{
				Name: "acme.Wrap",
				Nested: []protomodel.Type{
					&protomodel.Message{
						Name:   "acme.Wrap.Deep",
						Fields: []protomodel.Field{{Name: "y", TypeName: "int64", Tag: 1}},
					},
				},
			},
		},
	}

	got := File(f)
	if !strings.Contains(got, "message Wrap {\n  message Deep {\n    int64 y = 1;\n  }\n}") {
		t.Errorf("nested rendering wrong:\n%s", got)
	}
}

func TestFile_Extensions(t *testing.T) {
	f := &protomodel.File{
		Path:    "ext.proto",
		Package: "acme",
		Types: []protomodel.Type{
			&protomodel.Message{
				Name: "acme.Annotated",
				Extensions: []protomodel.Field{
					{Name: "priority", TypeName: "int32", Tag: 100, Extendee: "acme.Meta"},
				},
			},
		},
	}

	got := File(f)
	if !strings.Contains(got, "extend acme.Meta {") {
		t.Errorf("extend block missing:\n%s", got)
	}
	if !strings.Contains(got, "int32 priority = 100;") {
		t.Errorf("extension field missing:\n%s", got)
	}
}
