// Package graph provides the node-graph document consumed by the compiler.
//
// This package is the boundary with the graph provider (the visual editor,
// a file on disk, the graph store or an HTTP request body). It defines the
// canonical wire format, decodes it from JSON, YAML or TOML, and validates
// the structure before any compilation pass runs.
//
// # Core Types
//
//   - [Document]: an ordered list of nodes plus an optional name
//   - [Node]: one configurable unit with a type id, a parent link and an
//     ordering index among its siblings
//   - [Config]: a flat option map with total accessors; missing or malformed
//     values degrade to safe defaults instead of failing
//
// # Document Format
//
//	{
//	  "name": "fireball",
//	  "nodes": [
//	    {"id": "fx", "type": "effect", "config": {"file": "jb2a.fireball"}},
//	    {"id": "at", "type": "atLocation", "parent": "fx", "order": 0,
//	     "config": {"mode": "selected-token"}},
//	    {"id": "w", "type": "wait", "config": {"ms": 500}}
//	  ]
//	}
//
// Node order in the document is load-bearing: roots and utilities are
// emitted top to bottom in document order, and attached children follow
// their "order" field (ties keep document order).
//
// Common operations:
//
//	doc, _ := graph.ReadFile("fireball.yaml")   // File → Document
//	_ = graph.Validate(doc)                     // structural checks
//	data, _ := graph.Marshal(doc)               // Document → canonical JSON
//	_ = graph.WriteFile(doc, "out.toml")        // Document → File
//
// # Concurrency
//
// Documents are plain values. The compiler only reads them; concurrent
// compilation of the same document is safe as long as nobody mutates it.
package graph
