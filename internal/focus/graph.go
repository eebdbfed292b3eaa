// Package focus builds the directional navigation graph of a page of
// positioned controls for keyboard and gamepad focus traversal.
package focus

import (
	"sort"

	"github.com/vovakirdan/worldforge/internal/core"
)

// NoLink marks a direction with no neighbor.
const NoLink = -1

// Control is a selectable control placed by the presentation layer.
// Controls sharing a Group form one row ordered by Ordinal.
type Control struct {
	Group    string
	Ordinal  int
	Position core.Point
}

// Node is a control with its neighbor ids.
type Node struct {
	ID      int
	Control Control
	Up      int
	Down    int
	Left    int
	Right   int
}

func newNode(id int, c Control) *Node {
	return &Node{ID: id, Control: c, Up: NoLink, Down: NoLink, Left: NoLink, Right: NoLink}
}

// Neighbor returns the node id in the direction of a, or NoLink.
func (n *Node) Neighbor(a core.Action) int {
	switch a {
	case core.ActionUp:
		return n.Up
	case core.ActionDown:
		return n.Down
	case core.ActionLeft:
		return n.Left
	case core.ActionRight:
		return n.Right
	default:
		return NoLink
	}
}

// Group returns the controls of one group sorted by ordinal.
func Group(controls []Control, name string) []Control {
	var out []Control
	for _, c := range controls {
		if c.Group == name {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ordinal < out[j].Ordinal
	})
	return out
}

// LinkLine links a row left to right. The ends are not wrapped.
func LinkLine(row []*Node) {
	for i := 1; i < len(row); i++ {
		row[i-1].Right = row[i].ID
		row[i].Left = row[i-1].ID
	}
}

// LinkStacked links two rows vertically. Rows of different lengths pair by
// clamped index, so the extra nodes of the longer row all link to the last
// node of the shorter one.
func LinkStacked(top, bottom []*Node) {
	if len(top) == 0 || len(bottom) == 0 {
		return
	}
	n := max(len(top), len(bottom))
	for i := 0; i < n; i++ {
		t := top[core.Clamp(i, 0, len(top)-1)]
		b := bottom[core.Clamp(i, 0, len(bottom)-1)]
		t.Down = b.ID
		b.Up = t.ID
	}
}

// PointTable receives the position of every node for the platform's
// navigation engine.
type PointTable interface {
	SetPosition(id int, p core.Point)
}

// Table is an in-memory PointTable.
type Table map[int]core.Point

func (t Table) SetPosition(id int, p core.Point) {
	t[id] = p
}

// Graph is a set of linked nodes.
type Graph struct {
	nodes []*Node
	byID  map[int]*Node
}

func newGraph() *Graph {
	return &Graph{byID: make(map[int]*Node)}
}

func (g *Graph) add(n *Node) {
	g.nodes = append(g.nodes, n)
	g.byID[n.ID] = n
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// Nodes returns the nodes in id order.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Find returns the node of the control at (group, ordinal).
func (g *Graph) Find(group string, ordinal int) (*Node, bool) {
	for _, n := range g.nodes {
		if n.Control.Group == group && n.Control.Ordinal == ordinal {
			return n, true
		}
	}
	return nil, false
}

// Move returns the node reached from id in the direction of a. Without a
// link the focus stays on id.
func (g *Graph) Move(id int, a core.Action) int {
	n, ok := g.byID[id]
	if !ok {
		return id
	}
	if next := n.Neighbor(a); next != NoLink {
		return next
	}
	return id
}
