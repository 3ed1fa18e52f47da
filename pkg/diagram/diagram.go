// Package diagram wraps the node store with a tensor-level view: a diagram
// is a dangling edge (weight plus root node) together with the shape of the
// tensor it represents.
//
// [FromTensor] builds a reduced, normalized diagram from dense tensor data,
// interning every node through a [dd.Table] so that equal sub-tensors share
// structure. [Diagram.Value] evaluates single entries, and the JSON
// functions in this package persist diagrams in a canonical
// child-before-parent format.
package diagram

import (
	"math/cmplx"
	"slices"

	"github.com/ddkit/weightdd/pkg/dd"
	"github.com/ddkit/weightdd/pkg/errors"
)

// Diagram is a weighted decision diagram for a tensor of the given shape.
// The dangling Weight scales everything below the root; a nil Root means
// the diagram is the constant tensor Weight.
type Diagram struct {
	Weight dd.Weight
	Root   *dd.Node
	Shape  []int
}

// Size returns the number of distinct nodes in the diagram, terminal
// included.
func (d *Diagram) Size() int {
	return d.Root.Size()
}

// Compact rebuilds t around the diagram's root, discarding all nodes the
// diagram does not reach, and repoints the diagram at its rebuilt root.
// The quiescence rules of [dd.Table.Reset] apply: no other user of t may
// be active, and nodes obtained from t before the call become stale.
func (d *Diagram) Compact(t *dd.Table) {
	roots := t.Reset(d.Root)
	d.Root = roots[0]
}

// Equal reports whether a and b represent the same tensor within the
// table's tolerance. Both diagrams must have been interned in the same
// table: root comparison is by canonical node identity.
func Equal(a, b *Diagram, eps float64) bool {
	return slices.Equal(a.Shape, b.Shape) &&
		a.Root == b.Root &&
		dd.Close(a.Weight, b.Weight, eps)
}

// FromTensor builds the diagram for a dense tensor in row-major order,
// interning every node through t. The result is reduced (no node whose
// successors are all equal) and normalized (the first nonzero successor
// weight of every node is factored out to the incoming edge), so two
// tensors equal within tolerance produce identical structure.
//
// An empty shape yields a scalar diagram from the single data value.
func FromTensor(t *dd.Table, data []dd.Weight, shape []int) (*Diagram, error) {
	size := 1
	for _, dim := range shape {
		if dim < 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "shape dimension %d must be positive", dim)
		}
		size *= dim
	}
	if len(data) != size {
		return nil, errors.New(errors.ErrCodeInvalidInput, "tensor has %d entries, shape wants %d", len(data), size)
	}

	s := build(t, data, shape, 0)
	return &Diagram{Weight: s.Weight, Root: s.Node, Shape: slices.Clone(shape)}, nil
}

// build constructs the sub-diagram for one slice of the tensor, splitting
// on the index at depth.
func build(t *dd.Table, data []dd.Weight, shape []int, depth int) dd.Succ {
	if depth == len(shape) {
		return dd.Succ{Weight: data[0]}
	}
	stride := len(data) / shape[depth]
	succs := make([]dd.Succ, shape[depth])
	for k := range succs {
		succs[k] = build(t, data[k*stride:(k+1)*stride], shape, depth+1)
	}
	return normalize(t, depth, succs)
}

// normalize reduces and normalizes one level: zero edges are redirected to
// the terminal, a node whose successors are all equal is elided, and
// otherwise the first nonzero weight is factored out to the incoming edge
// before the node is interned.
func normalize(t *dd.Table, order int, succs []dd.Succ) dd.Succ {
	eps := t.Eps()

	for i, s := range succs {
		if dd.IsZero(s.Weight, eps) {
			succs[i] = dd.Succ{Weight: dd.Zero}
		}
	}

	allSame := true
	for _, s := range succs[1:] {
		if s.Node != succs[0].Node || !dd.Close(s.Weight, succs[0].Weight, eps) {
			allSame = false
			break
		}
	}
	if allSame {
		return succs[0]
	}

	var factor dd.Weight
	for _, s := range succs {
		if !dd.IsZero(s.Weight, eps) {
			factor = s.Weight
			break
		}
	}
	for i := range succs {
		succs[i].Weight /= factor
	}
	return dd.Succ{Weight: factor, Node: t.Unique(order, succs)}
}

// Value evaluates one tensor entry by walking the diagram and multiplying
// edge weights. Levels the diagram does not branch on contribute [dd.One].
func (d *Diagram) Value(indices []int) (dd.Weight, error) {
	if len(indices) != len(d.Shape) {
		return dd.Zero, errors.New(errors.ErrCodeInvalidInput, "got %d indices, shape wants %d", len(indices), len(d.Shape))
	}
	for depth, idx := range indices {
		if idx < 0 || idx >= d.Shape[depth] {
			return dd.Zero, errors.New(errors.ErrCodeInvalidInput, "index %d out of range for dimension %d", idx, depth)
		}
	}

	w := d.Weight
	n := d.Root
	for depth := range indices {
		if n == nil || n.Order() > depth {
			continue
		}
		s := n.Successors()[indices[depth]]
		w *= s.Weight
		n = s.Node
	}
	return w, nil
}

// Norm returns the modulus of the dangling weight. A zero norm means the
// whole diagram is the zero tensor.
func (d *Diagram) Norm() float64 {
	return cmplx.Abs(complex128(d.Weight))
}
