package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/graphscape/pkg/graph"
)

func TestCircularGeometry(t *testing.T) {
	const radius = 150.0
	d := graph.Data{Nodes: nodes("a", "b", "c", "d", "e")}

	e := NewEngine()
	out, err := e.Apply(Circular, d, Params{"radius": radius, "center_x": 10.0, "center_y": -5.0})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	n := len(out.Nodes)
	wantAngle := 2 * math.Pi / float64(n)
	center := graph.Position{X: 10, Y: -5}

	var prev float64
	for i, node := range out.Nodes {
		p := *node.Position
		if got := center.DistanceTo(p); math.Abs(got-radius) > 1e-9 {
			t.Errorf("node %s radius = %v, want %v", node.ID, got, radius)
		}
		angle := math.Atan2(p.Y-center.Y, p.X-center.X)
		if i > 0 {
			diff := math.Mod(angle-prev+2*math.Pi, 2*math.Pi)
			if math.Abs(diff-wantAngle) > 1e-9 {
				t.Errorf("angular separation before %s = %v, want %v", node.ID, diff, wantAngle)
			}
		}
		prev = angle
	}
}

func TestGridPlacement(t *testing.T) {
	d := graph.Data{Nodes: nodes("a", "b", "c", "d", "e")}

	e := NewEngine()
	out, err := e.Apply(Grid, d, Params{"columns": 2, "spacing": 50.0})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := []graph.Position{
		{X: 0, Y: 0}, {X: 50, Y: 0},
		{X: 0, Y: 50}, {X: 50, Y: 50},
		{X: 0, Y: 100},
	}
	for i, n := range out.Nodes {
		if *n.Position != want[i] {
			t.Errorf("node %s at %+v, want %+v", n.ID, *n.Position, want[i])
		}
	}
}

func TestHierarchicalLevels(t *testing.T) {
	// a -> b -> d, a -> c: a is the only root; rows follow BFS depth.
	d := graph.Data{
		Nodes: nodes("a", "b", "c", "d"),
		Links: []graph.Link{
			link("l1", "a", "b"),
			link("l2", "a", "c"),
			link("l3", "b", "d"),
		},
	}

	e := NewEngine()
	out, err := e.Apply(Hierarchical, d, Params{"level_separation": 100.0})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	idx := out.NodeIndex()
	y := func(id string) float64 { return out.Nodes[idx[id]].Position.Y }

	if y("a") != 0 {
		t.Errorf("root y = %v, want 0", y("a"))
	}
	if y("b") != 100 || y("c") != 100 {
		t.Errorf("level-1 y = %v/%v, want 100", y("b"), y("c"))
	}
	if y("d") != 200 {
		t.Errorf("level-2 y = %v, want 200", y("d"))
	}
}

func TestHierarchicalCycleFallback(t *testing.T) {
	// A pure cycle has no root; all nodes land in the catch-all row.
	d := graph.Data{
		Nodes: nodes("a", "b"),
		Links: []graph.Link{link("l1", "a", "b"), link("l2", "b", "a")},
	}

	e := NewEngine()
	out, err := e.Apply(Hierarchical, d, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for _, n := range out.Nodes {
		if n.Position == nil {
			t.Errorf("cycle node %s left unpositioned", n.ID)
		}
	}
}

func TestRadialRings(t *testing.T) {
	d := graph.Data{Nodes: nodes("a", "b", "c", "d", "e", "f")}

	e := NewEngine()
	out, err := e.Apply(Radial, d, Params{"levels": 2, "ring_spacing": 100.0})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	center := graph.Position{}
	for i, n := range out.Nodes {
		wantRadius := 100.0
		if i%2 == 1 {
			wantRadius = 200.0
		}
		if got := center.DistanceTo(*n.Position); math.Abs(got-wantRadius) > 1e-9 {
			t.Errorf("node %s radius = %v, want %v", n.ID, got, wantRadius)
		}
	}
}
