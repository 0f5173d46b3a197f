// Package compiler turns a node graph into Sequencer macro text.
//
// The package has three parts:
//
//   - [Registry]: the catalog of node types. Each type is described by a
//     [Descriptor] carrying presentation metadata, its role (root, child or
//     utility), family membership, a field schema used to seed new nodes,
//     and exactly one compile entry point matching the role.
//   - [Block] and [Context]: the transient buffers a descriptor writes into.
//     A Block holds one root's method chain; the Context holds standalone
//     instructions and hoisted declarations for the current statement.
//   - [Compiler]: walks a [graph.Document] and assembles a [Script].
//
// # Compilation
//
// Top-level nodes are visited in document order. A root opens a Block and
// compiles its own opening lines; when it emits nothing the Block and all of
// its children are dropped. Otherwise each attached child is compiled into
// the same Block in sibling order, provided its family set admits the
// root's family. Utilities compile straight into the Context and always
// produce semicolon-terminated statements.
//
// Compilation never fails. Unknown types, family mismatches, misplaced
// nodes and empty roots contribute nothing and are reported as
// [Diagnostic] values on the resulting Script (and to an optional
// [DiagnosticHandler]).
//
// # Determinism
//
// The compiler holds no state between calls. Compiling the same document
// with the same registry always yields byte-identical text, which is what
// live preview relies on.
//
// # Concurrency
//
// A Registry may be read by any number of concurrent compilations. Register
// takes a write lock, but callers should finish registration before the
// first compile so every pass sees the same catalog.
package compiler
