package dd

import (
	"encoding/binary"
	"sync"

	"github.com/ddkit/weightdd/pkg/observability"
)

// Table is the unique table: a hash-consing cache mapping structural keys
// (order plus successor list, weights bucketed by the table's epsilon) to
// the single canonical [Node] for that structure. The table owns every node
// it returns; nodes are reclaimed only when [Table.Reset] rebuilds the
// table without them.
//
// Each table has its own lock and its own epsilon; operations on different
// tables are independent. The epsilon must stay fixed for the table's
// lifetime - keys computed under a different tolerance would no longer
// match the stored ones.
type Table struct {
	mu     sync.RWMutex
	eps    float64
	nodes  map[string]*Node
	nextID int
}

// Option configures a [Table] at construction.
type Option func(*Table)

// WithEps sets the tolerance used for weight equality and key bucketing.
// Non-positive values are ignored and the table keeps [DefaultEps].
func WithEps(eps float64) Option {
	return func(t *Table) {
		if eps > 0 {
			t.eps = eps
		}
	}
}

// New creates an empty unique table.
func New(opts ...Option) *Table {
	t := &Table{
		eps:   DefaultEps,
		nodes: make(map[string]*Node),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Eps returns the table's tolerance.
func (t *Table) Eps() float64 {
	return t.eps
}

// Len returns the number of canonical nodes the table currently holds.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Unique returns the canonical node for (order, succs), inserting a new one
// if no structurally equal node exists. Lookup and insert run as a single
// exclusive critical section, so concurrent callers racing on the same key
// still observe exactly one canonical instance.
//
// Ownership of succs transfers to the table: the caller must not retain or
// modify the slice after the call. On a hit the candidate slice is simply
// discarded in favor of the stored node's.
//
// Never call Unique from code already inside this table's critical section
// (the lock is not reentrant); use [Table.UniqueUnlocked] there.
func (t *Table) Unique(order int, succs []Succ) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unique(order, succs)
}

// UniqueUnlocked is [Table.Unique] without the lock, for call sites that
// are single-threaded or already hold exclusive access to the table (for
// example recursive construction during a rebuild). Calling it while other
// goroutines use the table is caller misuse and corrupts the store.
func (t *Table) UniqueUnlocked(order int, succs []Succ) *Node {
	return t.unique(order, succs)
}

func (t *Table) unique(order int, succs []Succ) *Node {
	key := t.key(order, succs)
	if n, ok := t.nodes[key]; ok {
		observability.Table().OnHit()
		return n
	}
	observability.Table().OnMiss()
	n := &Node{id: t.nextID, order: order, succs: succs}
	t.nextID++
	t.nodes[key] = n
	observability.Table().OnInsert(len(t.nodes))
	return n
}

// key builds the canonical structural key: order, range, then per successor
// the eps-bucketed weight components and the child's table id (-1 for the
// terminal). Children participate by identity - a child id is only
// meaningful within this table, which is why foreign nodes must be
// re-interned rather than referenced across tables.
func (t *Table) key(order int, succs []Succ) string {
	buf := make([]byte, 0, 4+20*len(succs))
	buf = binary.AppendVarint(buf, int64(order))
	buf = binary.AppendVarint(buf, int64(len(succs)))
	for _, s := range succs {
		buf = binary.AppendVarint(buf, bucket(real(s.Weight), t.eps))
		buf = binary.AppendVarint(buf, bucket(imag(s.Weight), t.eps))
		child := int64(-1)
		if !s.IsTerminal() {
			child = int64(s.Node.id)
		}
		buf = binary.AppendVarint(buf, child)
	}
	return string(buf)
}

// Reset discards every node not reachable from roots and rebuilds the table
// around the survivors. For each root it returns the rebuilt counterpart,
// in input order; reachable sharing is preserved because the rebuild goes
// through the ordinary unique-insert path. Node ids are reassigned from
// zero.
//
// After Reset returns, any node pointer obtained before the call is stale:
// it is no longer registered in the table and must not be passed back to
// table operations. Use the returned roots instead.
//
// Reset assumes exclusive access to the table for its full duration. It
// takes the table lock, but that does not make concurrent use safe - other
// goroutines may still hold stale pointers across the call - so callers
// must quiesce all table users first.
func (t *Table) Reset(roots ...*Node) []*Node {
	t.mu.Lock()
	defer t.mu.Unlock()

	before := len(t.nodes)
	t.nodes = make(map[string]*Node)
	t.nextID = 0

	moved := make(map[*Node]*Node, before)
	out := make([]*Node, len(roots))
	for i, r := range roots {
		out[i] = t.rebuild(r, moved)
	}

	observability.Table().OnReset(len(t.nodes), before-len(t.nodes))
	return out
}

// rebuild copies n into the new table, children first, reusing the
// replacement recorded in moved when the same old node is reached again.
func (t *Table) rebuild(n *Node, moved map[*Node]*Node) *Node {
	if n == nil {
		return nil
	}
	if m, ok := moved[n]; ok {
		return m
	}
	succs := make([]Succ, len(n.succs))
	for i, s := range n.succs {
		succs[i] = Succ{Weight: s.Weight, Node: t.rebuild(s.Node, moved)}
	}
	m := t.unique(n.order, succs)
	moved[n] = m
	return m
}
