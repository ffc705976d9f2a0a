package protomodel

// File is one proto source file: a package name, its top-level type
// declarations (recursively nested), and its service declarations.
type File struct {
	// Path is the source path the file was loaded from.
	Path string

	// Package is the declared proto package, empty if none.
	Package string

	// Types are the top-level type declarations in declaration order.
	Types []Type

	// Services are the service declarations in declaration order.
	Services []*Service
}

// Schema is an immutable collection of proto files with a flattened type
// index. Build one with NewSchema; never mutate a published Schema — earlier
// partitions hold references to earlier snapshots.
type Schema struct {
	files []*File

	// identities holds every type and service identity in declaration
	// order: file order, then top-level order, depth-first through nesting.
	identities []ProtoType

	types    map[ProtoType]Type
	services map[ProtoType]*Service
}

// NewSchema builds a schema from a flat file list, rebuilding the type
// index from scratch. Rebuilding is cheap: one pass over the declarations.
func NewSchema(files []*File) *Schema {
	s := &Schema{
		files:    files,
		types:    make(map[ProtoType]Type),
		services: make(map[ProtoType]*Service),
	}
	for _, f := range files {
		for _, t := range f.Types {
			s.indexType(t)
		}
		for _, svc := range f.Services {
			if _, ok := s.services[svc.Name]; !ok {
				s.identities = append(s.identities, svc.Name)
			}
			s.services[svc.Name] = svc
		}
	}
	return s
}

func (s *Schema) indexType(t Type) {
	id := t.Identity()
	if _, ok := s.types[id]; !ok {
		s.identities = append(s.identities, id)
	}
	s.types[id] = t
	for _, nested := range t.NestedTypes() {
		s.indexType(nested)
	}
}

// Files returns the schema's files in order.
func (s *Schema) Files() []*File {
	return s.files
}

// Identities returns every type and service identity declared anywhere in
// the schema, nested types included, in declaration order.
func (s *Schema) Identities() []ProtoType {
	return s.identities
}

// LookupType returns the type with the given identity.
func (s *Schema) LookupType(id ProtoType) (Type, bool) {
	t, ok := s.types[id]
	return t, ok
}

// LookupService returns the service with the given identity.
func (s *Schema) LookupService(id ProtoType) (*Service, bool) {
	svc, ok := s.services[id]
	return svc, ok
}

// Contains reports whether any type or service declares the given identity.
func (s *Schema) Contains(id ProtoType) bool {
	if _, ok := s.types[id]; ok {
		return true
	}
	_, ok := s.services[id]
	return ok
}
