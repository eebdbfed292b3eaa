package focus

import (
	"errors"
	"fmt"
)

// Groups of the world creation page.
const (
	GroupBack          = "Back"
	GroupCreate        = "Create"
	GroupName          = "Name"
	GroupSeed          = "Seed"
	GroupRandomizeName = "RandomizeName"
	GroupRandomizeSeed = "RandomizeSeed"
	GroupSize          = "size"
	GroupDifficulty    = "difficulty"
	GroupEvil          = "evil"
)

// BaseID is the first node id of the world creation page.
const BaseID = 3000

// ErrMissingControl reports that a required control is not on the page.
var ErrMissingControl = errors.New("focus: missing control")

// BuildWorldCreation links the controls of the world creation page.
//
// Layout, top to bottom: randomize-name and name, randomize-seed and seed,
// then the size, difficulty and evil rows, then back and create. Every node
// is registered in table when it is not nil.
func BuildWorldCreation(controls []Control, table PointTable) (*Graph, error) {
	g := newGraph()
	id := BaseID

	single := func(group string) (*Node, error) {
		row := Group(controls, group)
		if len(row) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingControl, group)
		}
		n := newNode(id, row[0])
		id++
		g.add(n)
		return n, nil
	}
	rowOf := func(group string) ([]*Node, error) {
		row := Group(controls, group)
		if len(row) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingControl, group)
		}
		nodes := make([]*Node, len(row))
		for i, c := range row {
			nodes[i] = newNode(id, c)
			id++
			g.add(nodes[i])
		}
		return nodes, nil
	}

	var singles [6]*Node
	for i, group := range []string{GroupBack, GroupCreate, GroupRandomizeName, GroupName, GroupRandomizeSeed, GroupSeed} {
		n, err := single(group)
		if err != nil {
			return nil, err
		}
		singles[i] = n
	}
	back, create, randName, name, randSeed, seed := singles[0], singles[1], singles[2], singles[3], singles[4], singles[5]

	size, err := rowOf(GroupSize)
	if err != nil {
		return nil, err
	}
	diff, err := rowOf(GroupDifficulty)
	if err != nil {
		return nil, err
	}
	evil, err := rowOf(GroupEvil)
	if err != nil {
		return nil, err
	}

	LinkLine(size)
	LinkLine(diff)
	LinkStacked(size, diff)
	for _, n := range size {
		n.Up = seed.ID
	}

	LinkLine(evil)
	LinkStacked(diff, evil)
	for _, n := range evil {
		n.Down = back.ID
	}

	last := evil[len(evil)-1]
	last.Down = create.ID
	create.Up = last.ID
	back.Up = evil[0].ID
	create.Left = back.ID
	back.Right = create.ID

	name.Down = seed.ID
	name.Left = randName.ID
	randName.Right = name.ID
	randName.Down = randSeed.ID

	seed.Up = name.ID
	seed.Down = size[0].ID
	seed.Left = randSeed.ID
	randSeed.Right = seed.ID
	randSeed.Up = randName.ID
	randSeed.Down = size[0].ID

	if table != nil {
		for _, n := range g.nodes {
			table.SetPosition(n.ID, n.Control.Position)
		}
	}
	return g, nil
}
