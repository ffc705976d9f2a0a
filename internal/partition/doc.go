// Package partition assigns every schema type to exactly one build module.
//
// Given the module dependency graph and per-module pruning rules, it
// computes for each module the subset of types it must generate, the subset
// it references but borrows from upstream, and diagnostics for ownership
// conflicts. The whole structure is computed in one pass over immutable
// inputs and returned as an immutable snapshot; there is no caching or
// incremental update.
package partition
