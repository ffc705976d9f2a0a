// Package prune removes schema elements unreachable from a set of declared
// root types and services. Reachability follows real references: field
// types, extension fields and their extendees, and RPC request/response
// types. References resolve innermost-first, the way protobuf resolves
// relative names. Enclosing parents of a kept nested type are kept as empty
// shells so the nesting path stays valid.
package prune

import (
	"strings"

	"github.com/protobuild/protoslice/internal/protomodel"
)

// Apply returns the sub-schema of s reachable from roots. Root names are
// fully-qualified; names that do not exist in the schema are ignored, as are
// scalar and unresolvable field type references. The input schema is not
// modified.
func Apply(s *protomodel.Schema, roots []string) *protomodel.Schema {
	kept := make(map[protomodel.ProtoType]bool)

	var queue []protomodel.ProtoType
	for _, root := range roots {
		id := protomodel.ProtoType(root)
		if s.Contains(id) {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if kept[id] {
			continue
		}
		kept[id] = true

		if t, ok := s.LookupType(id); ok {
			queue = append(queue, typeReferences(s, t)...)
		}
		if svc, ok := s.LookupService(id); ok {
			queue = append(queue, serviceReferences(s, svc)...)
		}
	}

	var files []*protomodel.File
	for _, f := range s.Files() {
		var types []protomodel.Type
		for _, t := range f.Types {
			if filtered, ok := filterType(t, kept); ok {
				types = append(types, filtered)
			}
		}
		var services []*protomodel.Service
		for _, svc := range f.Services {
			if kept[svc.Name] {
				services = append(services, svc)
			}
		}
		if len(types) == 0 && len(services) == 0 {
			continue
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

// typeReferences returns the resolved identities a type refers to.
func typeReferences(s *protomodel.Schema, t protomodel.Type) []protomodel.ProtoType {
	m, ok := t.(*protomodel.Message)
	if !ok {
		// Enums and enclosing namespaces carry no outgoing references.
		return nil
	}

	var refs []protomodel.ProtoType
	scope := m.Name
	for _, f := range m.Fields {
		if id, ok := resolve(s, f.TypeName, scope); ok {
			refs = append(refs, id)
		}
	}
	for _, f := range m.Extensions {
		if id, ok := resolve(s, f.TypeName, scope); ok {
			refs = append(refs, id)
		}
		if f.Extendee != "" {
			if id, ok := resolve(s, f.Extendee, scope); ok {
				refs = append(refs, id)
			}
		}
	}
	return refs
}

func serviceReferences(s *protomodel.Schema, svc *protomodel.Service) []protomodel.ProtoType {
	var refs []protomodel.ProtoType
	for _, m := range svc.Methods {
		if id, ok := resolve(s, m.RequestType, svc.Name); ok {
			refs = append(refs, id)
		}
		if id, ok := resolve(s, m.ResponseType, svc.Name); ok {
			refs = append(refs, id)
		}
	}
	return refs
}

// resolve maps a type reference as written in source to a schema identity.
// A leading dot makes the reference fully qualified; otherwise enclosing
// scopes are tried innermost-first, ending with the bare name.
func resolve(s *protomodel.Schema, ref string, scope protomodel.ProtoType) (protomodel.ProtoType, bool) {
	if ref == "" {
		return "", false
	}
	if strings.HasPrefix(ref, ".") {
		id := protomodel.ProtoType(ref[1:])
		return id, s.Contains(id)
	}

	for sc := scope; ; sc = sc.Parent() {
		candidate := sc.Join(ref)
		if s.Contains(candidate) {
			return candidate, true
		}
		if sc == "" {
			return "", false
		}
	}
}

// filterType rebuilds a type keeping only reachable declarations. An
// unreachable type with reachable descendants survives as a contentless
// shell so the descendants keep their nesting path.
func filterType(t protomodel.Type, kept map[protomodel.ProtoType]bool) (protomodel.Type, bool) {
	var nested []protomodel.Type
	for _, n := range t.NestedTypes() {
		if filtered, ok := filterType(n, kept); ok {
			nested = append(nested, filtered)
		}
	}

	if kept[t.Identity()] {
		switch v := t.(type) {
		case *protomodel.Message:
			return &protomodel.Message{
				Name:       v.Name,
				Fields:     v.Fields,
				Extensions: v.Extensions,
				Options:    v.Options,
				Nested:     nested,
			}, true
		case *protomodel.Enum:
			return v, true
		case *protomodel.Enclosing:
			return &protomodel.Enclosing{Name: v.Name, Nested: nested}, true
		}
	}

	if len(nested) > 0 {
		switch v := t.(type) {
		case *protomodel.Message:
			return &protomodel.Message{Name: v.Name, Nested: nested}, true
		case *protomodel.Enclosing:
			return &protomodel.Enclosing{Name: v.Name, Nested: nested}, true
		}
	}

	return nil, false
}
