package cluster

import (
	"testing"

	gserrors "github.com/matzehuels/graphscape/pkg/errors"
	"github.com/matzehuels/graphscape/pkg/graph"
)

func nodes(ids ...string) []graph.Node {
	out := make([]graph.Node, len(ids))
	for i, id := range ids {
		out[i] = graph.Node{ID: id, Type: graph.NodeNote}
	}
	return out
}

func link(id, src, dst string) graph.Link {
	return graph.Link{ID: id, Source: src, Target: dst, Type: graph.LinkReference}
}

func weightedLink(id, src, dst string, w float64) graph.Link {
	l := link(id, src, dst)
	l.Weight = w
	return l
}

func TestApplyUnknownStrategy(t *testing.T) {
	e := NewEngine()
	_, err := e.Apply("voronoi", graph.Data{}, nil)
	if err == nil {
		t.Fatal("expected error for unknown strategy")
	}
	if !gserrors.Is(err, gserrors.ErrCodeUnknownStrategy) {
		t.Errorf("error code = %q, want UNKNOWN_STRATEGY", gserrors.GetCode(err))
	}
}

func TestStrategiesRegistered(t *testing.T) {
	e := NewEngine()
	got := e.Strategies()
	want := []string{Component, KMeans, Louvain, Spectral}
	if len(got) != len(want) {
		t.Fatalf("strategies = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("strategies[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	d := graph.Data{
		Nodes: nodes("a", "b", "c"),
		Links: []graph.Link{link("l1", "a", "b")},
	}
	for i := range d.Nodes {
		d.Nodes[i].Position = &graph.Position{X: float64(i) * 10, Y: 0}
	}

	e := NewEngine()
	for _, name := range e.Strategies() {
		t.Run(name, func(t *testing.T) {
			_, err := e.Apply(name, d, nil)
			if err != nil {
				t.Fatalf("Apply(%s): %v", name, err)
			}
			for _, n := range d.Nodes {
				if n.Cluster != "" {
					t.Fatalf("%s mutated its input", name)
				}
			}
		})
	}
}

func TestApplyEmptyGraph(t *testing.T) {
	e := NewEngine()
	for _, name := range e.Strategies() {
		if _, err := e.Apply(name, graph.Data{}, nil); err != nil {
			t.Errorf("Apply(%s) on empty graph: %v", name, err)
		}
	}
}

func TestApplyDeterministic(t *testing.T) {
	d := graph.Data{
		Nodes: nodes("a", "b", "c", "d", "e", "f"),
		Links: []graph.Link{
			link("l1", "a", "b"), link("l2", "b", "c"), link("l3", "a", "c"),
			link("l4", "d", "e"), link("l5", "e", "f"), link("l6", "d", "f"),
			link("l7", "c", "d"),
		},
	}
	for i := range d.Nodes {
		d.Nodes[i].Position = &graph.Position{X: float64(i * 7), Y: float64(i % 3)}
	}

	e := NewEngine()
	for _, name := range e.Strategies() {
		t.Run(name, func(t *testing.T) {
			first, err := e.Apply(name, d, Params{"seed": 7})
			if err != nil {
				t.Fatalf("Apply(%s): %v", name, err)
			}
			second, err := e.Apply(name, d, Params{"seed": 7})
			if err != nil {
				t.Fatalf("Apply(%s): %v", name, err)
			}
			for i := range first.Nodes {
				if first.Nodes[i].Cluster != second.Nodes[i].Cluster {
					t.Errorf("%s: node %s labeled %q then %q under the same seed",
						name, first.Nodes[i].ID, first.Nodes[i].Cluster, second.Nodes[i].Cluster)
				}
			}
		})
	}
}

// labelsOf collects node ID → cluster label.
func labelsOf(d graph.Data) map[string]string {
	out := make(map[string]string, len(d.Nodes))
	for _, n := range d.Nodes {
		out[n.ID] = n.Cluster
	}
	return out
}
