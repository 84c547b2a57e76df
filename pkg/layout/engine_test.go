package layout

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

func TestApplyUnknownAlgorithm(t *testing.T) {
	e := NewEngine()
	_, err := e.Apply("swirl", graph.Data{}, nil)
	if err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
	if !gserrors.Is(err, gserrors.ErrCodeUnknownAlgorithm) {
		t.Errorf("error code = %q, want UNKNOWN_ALGORITHM", gserrors.GetCode(err))
	}
}

func TestAlgorithmsRegistered(t *testing.T) {
	e := NewEngine()
	got := e.Algorithms()
	want := []string{Circular, ForceDirected, Grid, Hierarchical, Radial}
	if len(got) != len(want) {
		t.Fatalf("algorithms = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("algorithms[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	d := graph.Data{Nodes: nodes("a", "b"), Links: []graph.Link{link("l1", "a", "b")}}

	e := NewEngine()
	for _, name := range e.Algorithms() {
		t.Run(name, func(t *testing.T) {
			out, err := e.Apply(name, d, nil)
			if err != nil {
				t.Fatalf("Apply(%s): %v", name, err)
			}
			for _, n := range d.Nodes {
				if n.Position != nil {
					t.Fatalf("%s mutated its input", name)
				}
			}
			for _, n := range out.Nodes {
				if n.Position == nil {
					t.Errorf("%s left node %s without position", name, n.ID)
				}
			}
		})
	}
}

func TestApplyEmptyGraph(t *testing.T) {
	e := NewEngine()
	for _, name := range e.Algorithms() {
		if _, err := e.Apply(name, graph.Data{}, nil); err != nil {
			t.Errorf("Apply(%s) on empty graph: %v", name, err)
		}
	}
}

func TestParamsHelpers(t *testing.T) {
	p := Params{"f": 1.5, "i": 3, "fi": 2.0}
	if got := p.Float("f", 0); got != 1.5 {
		t.Errorf("Float(f) = %v", got)
	}
	if got := p.Float("i", 0); got != 3 {
		t.Errorf("Float(i) = %v", got)
	}
	if got := p.Float("missing", 7); got != 7 {
		t.Errorf("Float(missing) = %v", got)
	}
	if got := p.Int("fi", 0); got != 2 {
		t.Errorf("Int(fi) = %v", got)
	}
	if got := p.Int("missing", 9); got != 9 {
		t.Errorf("Int(missing) = %v", got)
	}
}
