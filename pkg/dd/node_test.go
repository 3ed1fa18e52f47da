package dd

import "testing"

func TestSize_Terminal(t *testing.T) {
	if got := Terminal.Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
}

func TestSize_SingleNode(t *testing.T) {
	tbl := New()
	n := tbl.Unique(0, []Succ{{Weight: 1}, {Weight: 0}})

	if got := n.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2 (node + terminal)", got)
	}
}

func TestSize_Chain(t *testing.T) {
	tbl := New()
	bottom := tbl.Unique(2, []Succ{{Weight: 1}, {Weight: 0}})
	mid := tbl.Unique(1, []Succ{{Weight: 1, Node: bottom}, {Weight: 0}})
	top := tbl.Unique(0, []Succ{{Weight: 1, Node: mid}, {Weight: 0}})

	if got := top.Size(); got != 4 {
		t.Errorf("Size() = %d, want 4", got)
	}
}

func TestSize_DiamondSharing(t *testing.T) {
	// Two parents share one child; the child must be counted once.
	tbl := New()
	shared := tbl.Unique(2, []Succ{{Weight: 1}, {Weight: 0}})
	left := tbl.Unique(1, []Succ{{Weight: 1, Node: shared}, {Weight: 0}})
	right := tbl.Unique(1, []Succ{{Weight: 0}, {Weight: 1, Node: shared}})
	top := tbl.Unique(0, []Succ{{Weight: 1, Node: left}, {Weight: 1, Node: right}})

	if got := top.Size(); got != 5 {
		t.Errorf("Size() = %d, want 5 (no double count of the shared child)", got)
	}
}

func TestNode_Accessors(t *testing.T) {
	tbl := New()
	child := tbl.Unique(3, []Succ{{Weight: 1}, {Weight: 0}})
	n := tbl.Unique(1, []Succ{{Weight: 0.5, Node: child}, {Weight: 0.5}, {Weight: 0}})

	if n.Order() != 1 {
		t.Errorf("Order() = %d, want 1", n.Order())
	}
	if n.Range() != 3 {
		t.Errorf("Range() = %d, want 3", n.Range())
	}
	succs := n.Successors()
	if len(succs) != 3 {
		t.Fatalf("len(Successors()) = %d, want 3", len(succs))
	}
	if succs[0].Node != child {
		t.Error("Successors()[0] does not reference the interned child")
	}
	if succs[0].IsTerminal() {
		t.Error("IsTerminal() = true for a non-terminal edge")
	}
	if !succs[1].IsTerminal() {
		t.Error("IsTerminal() = false for a terminal edge")
	}
}
