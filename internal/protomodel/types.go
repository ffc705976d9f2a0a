package protomodel

// Type is a schema type declaration. The variant set is closed: Message,
// Enum, and Enclosing are the only implementations, enforced by the
// unexported isType method. Dispatch sites switch over all three; the
// variant set cannot grow outside this package.
type Type interface {
	// Identity returns the fully-qualified name of the type.
	Identity() ProtoType

	// NestedTypes returns the types declared directly inside this one.
	NestedTypes() []Type

	isType()
}

// Field is a single declared field of a message, or an extension field when
// Extendee is non-empty.
type Field struct {
	// Name is the field name as declared.
	Name string

	// TypeName is the field's type reference exactly as written in source.
	// Scalar types and unresolvable names are left as-is.
	TypeName string

	// Tag is the wire tag number.
	Tag int

	// Repeated marks repeated (or map) fields.
	Repeated bool

	// Optional marks explicitly optional fields.
	Optional bool

	// Extendee is the fully-qualified name of the extended message for
	// extension fields, empty for regular fields.
	Extendee string
}

// Option is a declared option, kept as source text.
type Option struct {
	// Name is the option name, including parentheses for custom options.
	Name string

	// Value is the option value as written in source.
	Value string
}

// Message is a message declaration: fields, extension fields, nested types,
// and options.
type Message struct {
	Name       ProtoType
	Fields     []Field
	Extensions []Field
	Options    []Option
	Nested     []Type
}

func (m *Message) Identity() ProtoType { return m.Name }
func (m *Message) NestedTypes() []Type { return m.Nested }
func (m *Message) isType() {}

// Enum is an enum declaration: constants and options. Enums have no nested
// structure.
type Enum struct {
	Name      ProtoType
	Constants []EnumConstant
	Options   []Option
}

func (e *Enum) Identity() ProtoType { return e.Name }
func (e *Enum) NestedTypes() []Type { return nil }
func (e *Enum) isType() {}

// EnumConstant is a single enum value.
type EnumConstant struct {
	Name  string
	Value int
}

// Enclosing is a pure namespace holder: a message that declares only nested
// types and no content of its own.
type Enclosing struct {
	Name   ProtoType
	Nested []Type
}

func (e *Enclosing) Identity() ProtoType { return e.Name }
func (e *Enclosing) NestedTypes() []Type { return e.Nested }
func (e *Enclosing) isType() {}
