package diagram

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ddkit/weightdd/pkg/dd"
	"github.com/ddkit/weightdd/pkg/errors"
)

// terminalID marks the terminal sentinel in serialized successor lists.
const terminalID = -1

type diagramFile struct {
	Shape  []int      `json:"shape"`
	Weight [2]float64 `json:"weight"`
	Root   int        `json:"root"`
	Nodes  []nodeRec  `json:"nodes"`
}

type nodeRec struct {
	ID    int       `json:"id"`
	Order int       `json:"order"`
	Succs []succRec `json:"succs"`
}

type succRec struct {
	Weight [2]float64 `json:"weight"`
	Node   int        `json:"node"`
}

func packWeight(w dd.Weight) [2]float64 {
	return [2]float64{real(w), imag(w)}
}

func unpackWeight(p [2]float64) dd.Weight {
	return dd.Weight(complex(p[0], p[1]))
}

// WriteJSON encodes a diagram as JSON and writes it to w. Nodes are listed
// children before parents with their table ids, so [ReadJSON] can rebuild
// the DAG in one pass. The format round-trips through ReadJSON.
func WriteJSON(d *Diagram, w io.Writer) error {
	out := diagramFile{
		Shape:  d.Shape,
		Weight: packWeight(d.Weight),
		Root:   terminalID,
	}

	var emit func(n *dd.Node)
	visited := make(map[*dd.Node]bool)
	emit = func(n *dd.Node) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		rec := nodeRec{ID: n.ID(), Order: n.Order(), Succs: make([]succRec, n.Range())}
		for i, s := range n.Successors() {
			child := terminalID
			if !s.IsTerminal() {
				emit(s.Node)
				child = s.Node.ID()
			}
			rec.Succs[i] = succRec{Weight: packWeight(s.Weight), Node: child}
		}
		out.Nodes = append(out.Nodes, rec)
	}
	emit(d.Root)
	if d.Root != nil {
		out.Root = d.Root.ID()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode diagram")
	}
	return nil
}

// ReadJSON decodes a JSON diagram from r, re-interning every node through
// t. Because decoding goes through the ordinary unique path, the loaded
// diagram is canonical in t: loading the same file twice yields the
// identical root node.
//
// ReadJSON returns an [errors.ErrCodeInvalidDiagram] error if a successor
// references an id not defined earlier in the node list, a node id is
// duplicated, the root id is unknown, or a node does not fit the declared
// shape (order outside the shape's rank, successor count different from
// the dimension at that order, or a successor that does not descend in
// order). The shape checks are what keep [Diagram.Value] total on loaded
// diagrams.
func ReadJSON(t *dd.Table, r io.Reader) (*Diagram, error) {
	var in diagramFile
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode diagram")
	}
	for _, dim := range in.Shape {
		if dim < 1 {
			return nil, errors.New(errors.ErrCodeInvalidDiagram, "shape dimension %d must be positive", dim)
		}
	}

	byID := make(map[int]*dd.Node, len(in.Nodes))
	for _, rec := range in.Nodes {
		if _, dup := byID[rec.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidDiagram, "duplicate node id %d", rec.ID)
		}
		if rec.Order < 0 || rec.Order >= len(in.Shape) {
			return nil, errors.New(errors.ErrCodeInvalidDiagram, "node %d order %d outside shape of rank %d", rec.ID, rec.Order, len(in.Shape))
		}
		if len(rec.Succs) != in.Shape[rec.Order] {
			return nil, errors.New(errors.ErrCodeInvalidDiagram, "node %d has %d successors, dimension %d wants %d", rec.ID, len(rec.Succs), rec.Order, in.Shape[rec.Order])
		}
		succs := make([]dd.Succ, len(rec.Succs))
		for i, s := range rec.Succs {
			var child *dd.Node
			if s.Node != terminalID {
				var ok bool
				if child, ok = byID[s.Node]; !ok {
					return nil, errors.New(errors.ErrCodeInvalidDiagram, "node %d references unknown successor %d", rec.ID, s.Node)
				}
				if child.Order() <= rec.Order {
					return nil, errors.New(errors.ErrCodeInvalidDiagram, "node %d successor %d does not descend in order", rec.ID, s.Node)
				}
			}
			succs[i] = dd.Succ{Weight: unpackWeight(s.Weight), Node: child}
		}
		byID[rec.ID] = t.Unique(rec.Order, succs)
	}

	var root *dd.Node
	if in.Root != terminalID {
		var ok bool
		if root, ok = byID[in.Root]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidDiagram, "unknown root id %d", in.Root)
		}
	}

	return &Diagram{Weight: unpackWeight(in.Weight), Root: root, Shape: in.Shape}, nil
}

// ExportJSON writes a diagram to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(d *Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

// ImportJSON reads a JSON file at path and returns the decoded diagram,
// interned in t. Returns an [errors.ErrCodeFileNotFound] error if the file
// does not exist, and the same validation errors as [ReadJSON] for
// malformed diagrams.
func ImportJSON(t *dd.Table, path string) (*Diagram, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(t, f)
}
