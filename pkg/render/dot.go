// Package render converts diagrams to Graphviz DOT and renders them to SVG.
//
// [ToDOT] lays the diagram out top-down: a phantom source carries the
// dangling weight into the root, internal nodes are circles labeled with
// their branching order, and the terminal is a single box. Edge labels
// show the successor index and its weight, which together fully determine
// the tensor the diagram represents.
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no external Graphviz installation is required.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ddkit/weightdd/pkg/dd"
	"github.com/ddkit/weightdd/pkg/diagram"
)

// ToDOT converts a diagram to Graphviz DOT format.
// The resulting DOT string can be rendered with [SVG].
func ToDOT(d *diagram.Diagram) string {
	var buf bytes.Buffer
	buf.WriteString("digraph weightdd {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	buf.WriteString("  source [shape=none, label=\"\"];\n")
	buf.WriteString("  terminal [shape=box, label=\"1\"];\n")

	var emit func(n *dd.Node)
	visited := make(map[*dd.Node]bool)
	emit = func(n *dd.Node) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", n.ID(), fmt.Sprintf("x%d", n.Order()))
		for i, s := range n.Successors() {
			if s.IsTerminal() {
				fmt.Fprintf(&buf, "  n%d -> terminal [label=%q];\n", n.ID(), edgeLabel(i, s.Weight))
				continue
			}
			emit(s.Node)
			fmt.Fprintf(&buf, "  n%d -> n%d [label=%q];\n", n.ID(), s.Node.ID(), edgeLabel(i, s.Weight))
		}
	}
	emit(d.Root)

	target := "terminal"
	if d.Root != nil {
		target = fmt.Sprintf("n%d", d.Root.ID())
	}
	fmt.Fprintf(&buf, "  source -> %s [color=blue, label=%q];\n", target, FmtWeight(d.Weight))

	buf.WriteString("}\n")
	return buf.String()
}

// edgeLabel formats one successor edge: the index value that selects the
// edge, then its weight.
func edgeLabel(index int, w dd.Weight) string {
	return fmt.Sprintf("%d: %s", index, FmtWeight(w))
}

// FmtWeight formats a weight for display, omitting a zero imaginary part.
func FmtWeight(w dd.Weight) string {
	re, im := real(w), imag(w)
	if im == 0 {
		return fmt.Sprintf("%.4g", re)
	}
	if re == 0 {
		return fmt.Sprintf("%.4gi", im)
	}
	return fmt.Sprintf("%.4g%+.4gi", re, im)
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// Stats summarizes a diagram for display.
type Stats struct {
	Nodes    int     // distinct nodes including the terminal
	Depth    int     // deepest branching order + 1, 0 for a scalar
	MaxRange int     // largest branching factor
	Norm     float64 // modulus of the dangling weight
}

// Summarize computes display statistics for a diagram in one traversal.
func Summarize(d *diagram.Diagram) Stats {
	s := Stats{Nodes: d.Size(), Norm: d.Norm()}

	var walk func(n *dd.Node)
	visited := make(map[*dd.Node]bool)
	walk = func(n *dd.Node) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		if n.Order()+1 > s.Depth {
			s.Depth = n.Order() + 1
		}
		if n.Range() > s.MaxRange {
			s.MaxRange = n.Range()
		}
		for _, succ := range n.Successors() {
			walk(succ.Node)
		}
	}
	walk(d.Root)
	return s
}

// Formats supported by the render command.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormat reports whether format names a supported output format.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatDOT, FormatSVG:
		return true
	}
	return false
}
