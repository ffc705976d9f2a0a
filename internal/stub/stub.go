// Package stub produces reference-free replacements for types and services.
// A stub keeps the identity and nesting structure of the original but
// discards fields, constants, methods, and options — everything that could
// create a compile-time or link-time dependency on the type's internals.
// The name stays resolvable downstream; the content is generated upstream.
package stub

import (
	"fmt"

	"github.com/protobuild/protoslice/internal/protomodel"
)

// Type returns a stubbed copy of t. Nested types are stubbed recursively so
// their identities remain resolvable for downstream lookups. Types under the
// reserved google.protobuf namespace are returned unmodified: they model
// options themselves and must keep their structure for option parsing.
// Idempotent: Type(Type(t)) equals Type(t).
func Type(t protomodel.Type) protomodel.Type {
	if t.Identity().IsBuiltin() {
		return t
	}

	switch v := t.(type) {
	case *protomodel.Message:
		return &protomodel.Message{
			Name:   v.Name,
			Nested: nested(v.Nested),
		}
	case *protomodel.Enum:
		return &protomodel.Enum{
			Name: v.Name,
		}
	case *protomodel.Enclosing:
		return &protomodel.Enclosing{
			Name:   v.Name,
			Nested: nested(v.Nested),
		}
	}

	// The Type variant set is closed (protomodel seals it); this is only
	// reachable if a variant was added without updating the stubber.
	panic(fmt.Sprintf("stub: unhandled type variant %T", t))
}

// Service returns a stubbed copy of svc: identity kept, methods and options
// cleared. Builtin services do not exist, but the namespace exemption is
// honored for symmetry with Type.
func Service(svc *protomodel.Service) *protomodel.Service {
	if svc.Name.IsBuiltin() {
		return svc
	}
	return &protomodel.Service{
		Name: svc.Name,
	}
}

func nested(types []protomodel.Type) []protomodel.Type {
	if len(types) == 0 {
		return nil
	}
	out := make([]protomodel.Type, len(types))
	for i, t := range types {
		out[i] = Type(t)
	}
	return out
}
