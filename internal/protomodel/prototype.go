package protomodel

import "strings"

// BuiltinNamespace is the reserved namespace for protobuf's own well-known
// types. Types under it model options themselves and are never stubbed or
// pruned away.
const BuiltinNamespace = "google.protobuf."

// ProtoType is the fully-qualified name of a schema type or service.
// It is an immutable value used as a map and set key throughout.
type ProtoType string

// String returns the fully-qualified name.
func (t ProtoType) String() string {
	return string(t)
}

// IsBuiltin reports whether the type lives under the reserved
// google.protobuf namespace.
func (t ProtoType) IsBuiltin() bool {
	return strings.HasPrefix(string(t), BuiltinNamespace)
}

// Parent returns the enclosing scope of the type (the name up to the last
// dot), or the empty ProtoType for top-level names.
func (t ProtoType) Parent() ProtoType {
	idx := strings.LastIndex(string(t), ".")
	if idx < 0 {
		return ""
	}
	return t[:idx]
}

// Join appends a simple name to the scope, producing a nested name.
func (t ProtoType) Join(name string) ProtoType {
	if t == "" {
		return ProtoType(name)
	}
	return ProtoType(string(t) + "." + name)
}
