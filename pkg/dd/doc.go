// Package dd provides a hash-consed node store for weighted decision
// diagrams.
//
// # Overview
//
// A weighted decision diagram is a rooted, directed acyclic graph in which
// every node branches on one index of a fixed global ordering and every
// outgoing edge carries a complex [Weight]. Diagrams compress large tensors
// by sharing identical sub-structure: any two nodes that represent the same
// sub-diagram (within a numeric tolerance) are the *same* Go object.
//
// That guarantee is enforced by the [Table], a hash-consing unique table.
// Callers never construct nodes directly; they assemble a candidate
// (order, successor list) and ask the table for the canonical node:
//
//	t := dd.New()
//	leaf := t.Unique(2, []dd.Succ{{Weight: 1}, {Weight: 0}})
//	root := t.Unique(1, []dd.Succ{{Weight: 1, Node: leaf}, {Weight: 0}})
//
// Because structurally equal candidates always yield the identical node,
// sub-diagram equality reduces to pointer equality, and [Node.Size] counts
// shared sub-DAGs once.
//
// # Terminal edges
//
// A nil child in a [Succ] is the terminal sentinel: the edge contributes its
// weight and nothing below it. A node may mix terminal and non-terminal
// successors.
//
// # Tolerance
//
// Weights are compared within an epsilon fixed per table (see [WithEps]).
// For hashing, each weight component is bucketed to the nearest multiple of
// the epsilon, which keeps the hash consistent with the equality predicate.
// Two weights within epsilon of each other that straddle a bucket boundary
// may still intern as distinct nodes; this is an accepted approximation of
// the tolerance semantics, not a defect.
//
// # Concurrency
//
// [Table.Unique] serializes lookup-and-insert under the table's lock and is
// safe for concurrent use. [Table.UniqueUnlocked] skips the lock for
// single-threaded call sites and for recursive construction that already
// runs under an exclusive section; the lock is not reentrant, so never call
// the locking variant from inside another's critical section on the same
// table. Returned nodes are immutable and need no further synchronization.
//
// [Table.Reset] rebuilds the table around a root set and invalidates every
// node pointer obtained before the call; it must not run concurrently with
// any other access to the same table.
package dd
