package dd

// Terminal is the child value marking an edge with no structure below it.
// It is a sentinel, not a node: the edge weight alone is the contribution.
var Terminal *Node

// Succ is one outgoing edge of a node: a weight and either a child node or
// [Terminal]. The position of a Succ in a node's successor list encodes
// which discrete index value selects it.
type Succ struct {
	Weight Weight
	Node   *Node // nil = Terminal
}

// IsTerminal reports whether the edge ends at the terminal sentinel.
func (s Succ) IsTerminal() bool { return s.Node == nil }

// Node is an immutable vertex of a weighted decision diagram. Nodes are
// created only by [Table.Unique] and [Table.UniqueUnlocked]; two nodes with
// the same structural key never coexist in a live table, so pointer equality
// doubles as structural equality.
//
// A node owns its successor slice but never the child nodes it references -
// those are owned by the table, which guarantees they outlive the node.
type Node struct {
	id    int
	order int
	succs []Succ
}

// ID returns the node's table-assigned identifier. IDs are unique within
// the owning table and are reassigned from zero by [Table.Reset].
func (n *Node) ID() int { return n.id }

// Order returns the node's level in the fixed index ordering. Every
// non-terminal child of a node has a strictly greater order, which keeps
// the diagram acyclic by construction.
func (n *Node) Order() int { return n.order }

// Range returns the node's branching factor (its successor count).
func (n *Node) Range() int { return len(n.succs) }

// Successors returns the node's ordered successor list.
// The returned slice should not be modified - use it as a read-only view.
func (n *Node) Successors() []Succ { return n.succs }

// Size returns the number of distinct nodes reachable from n, plus one for
// the terminal sentinel. Shared sub-DAGs are counted once: the traversal
// deduplicates by node identity, which also terminates the plain DFS on the
// acyclic graph. A nil receiver (the terminal itself) has size 1.
func (n *Node) Size() int {
	seen := make(map[*Node]struct{})
	n.search(seen)
	return len(seen) + 1
}

// search inserts n and every node below it into seen, skipping nodes
// already visited.
func (n *Node) search(seen map[*Node]struct{}) {
	if n == nil {
		return
	}
	if _, ok := seen[n]; ok {
		return
	}
	seen[n] = struct{}{}
	for _, s := range n.succs {
		if !s.IsTerminal() {
			s.Node.search(seen)
		}
	}
}
