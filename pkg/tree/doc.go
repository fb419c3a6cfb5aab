// Package tree provides the domain model for nested entities rendered by arbor.
//
// # Overview
//
// A tree document describes lots and transfers as a hierarchy: every [Node]
// carries a display name, an arbitrary payload, an ordered list of children,
// and the expansion flag the document was authored with. The package treats
// the tree as read-only once loaded; runtime expand/collapse state lives in
// package expand, keyed by [Key].
//
// # Loading Documents
//
// Documents are JSON or YAML with the same shape:
//
//	{
//	  "name": "A",
//	  "isExpanded": true,
//	  "amount_transferred": 120,
//	  "lot_code": "L-001",
//	  "children": [{"name": "B"}, {"name": "C"}]
//	}
//
// Use [ReadFile] (format chosen by extension) or [Read] with an explicit
// [Format]. Every key other than name, children and isExpanded/expanded is
// preserved in [Node.Payload].
//
// # Node Identity
//
// [KeyFor] derives a name-based UUID from a node's child-index path. Keys are
// stable across reloads of the same document shape and do not depend on
// labels, so two nodes with the same name still get distinct keys.
//
// # Concurrency
//
// Nodes are safe for concurrent reads. The package never mutates a loaded tree.
package tree
