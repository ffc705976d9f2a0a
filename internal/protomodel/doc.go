// Package protomodel defines the in-memory schema model: proto files, the
// closed set of type variants (message, enum, enclosing namespace), services,
// and the fully-qualified ProtoType identity used as a key everywhere else.
//
// Values in this package are treated as immutable once published. Derived
// schemas (stubbed, pruned) are always built as fresh values via NewSchema
// rather than by mutating an existing one.
package protomodel
